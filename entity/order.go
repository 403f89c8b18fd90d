package entity

type OrderStatus string

const (
	OrderPreparing OrderStatus = "preparing"
	OrderOnTheWay  OrderStatus = "on_the_way"
	OrderDelivered OrderStatus = "delivered"
	OrderDone      OrderStatus = "done"
	OrderCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	MenuID   uint   `json:"menuId"`
	MenuName string `json:"menuName"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
}

// RestaurantOrder is one restaurant's part of a multi-restaurant order.
type RestaurantOrder struct {
	Restaurant RestaurantRef `json:"restaurant"`
	Items      []OrderItem   `json:"items"`
}

type OrderPricing struct {
	TotalPrice int64 `json:"totalPrice"`
}

type Order struct {
	ID            uint              `json:"id"`
	TransactionID string            `json:"transactionId"`
	Status        OrderStatus       `json:"status"`
	Pricing       OrderPricing      `json:"pricing"`
	Restaurants   []RestaurantOrder `json:"restaurants"`
}

// OrderPage is one page of /api/order/my-order.
type OrderPage struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}
