package entity

import "time"

// PaymentMethods are the supported payment method labels. The payment
// step is a mocked bank transfer; the label travels with the order as-is.
var PaymentMethods = []string{
	"BNI Bank Negara Indonesia",
	"BRI Bank Rakyat Indonesia",
	"BCA Bank Central Asia",
	"Mandiri",
}

type CheckoutItem struct {
	MenuID   uint `json:"menuId"`
	Quantity int  `json:"quantity"`
}

type CheckoutRestaurant struct {
	RestaurantID uint           `json:"restaurantId"`
	Items        []CheckoutItem `json:"items"`
}

// CheckoutRequest is the POST /api/order/checkout payload. It is built
// from a cart snapshot at submission time and lives only for that one
// submission.
type CheckoutRequest struct {
	Restaurants     []CheckoutRestaurant `json:"restaurants"`
	DeliveryAddress string               `json:"deliveryAddress"`
	Phone           string               `json:"phone"`
	PaymentMethod   string               `json:"paymentMethod"`
	Notes           string               `json:"notes"`
}

// BuildCheckoutRequest projects a cart snapshot into the checkout payload:
// one restaurant block per cart group with its {menuId, quantity} pairs.
func BuildCheckoutRequest(snap CartSnapshot, address, phone, paymentMethod, notes string) CheckoutRequest {
	restaurants := make([]CheckoutRestaurant, 0, len(snap.Cart))
	for _, g := range snap.Cart {
		items := make([]CheckoutItem, 0, len(g.Items))
		for _, it := range g.Items {
			items = append(items, CheckoutItem{MenuID: it.Menu.ID, Quantity: it.Quantity})
		}
		restaurants = append(restaurants, CheckoutRestaurant{
			RestaurantID: g.Restaurant.ID,
			Items:        items,
		})
	}
	return CheckoutRequest{
		Restaurants:     restaurants,
		DeliveryAddress: address,
		Phone:           phone,
		PaymentMethod:   paymentMethod,
		Notes:           notes,
	}
}

// OrderConfirmation is the terminal artifact of a successful checkout.
// It is handed to the caller in memory only and never persisted; once the
// caller lets it go it is gone.
type OrderConfirmation struct {
	OrderID       string    `json:"orderId"`
	PaymentMethod string    `json:"paymentMethod"`
	TotalPrice    int64     `json:"totalPrice"`
	TotalItems    int       `json:"totalItems"`
	DeliveryFee   int64     `json:"deliveryFee"`
	ServiceFee    int64     `json:"serviceFee"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (c OrderConfirmation) GrandTotal() int64 {
	return c.TotalPrice + c.DeliveryFee + c.ServiceFee
}
