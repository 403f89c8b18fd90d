package entity

import "fmt"

// CartMenu is the denormalized menu summary carried on a cart entry.
type CartMenu struct {
	ID       uint   `json:"id"`
	FoodName string `json:"foodName"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
}

// CartEntry is one menu line in the cart. The id is the cart item id
// issued by the backend, not the menu id.
type CartEntry struct {
	ID       uint     `json:"id"`
	Menu     CartMenu `json:"menu"`
	Quantity int      `json:"quantity"`
}

func (e CartEntry) LineTotal() int64 {
	return e.Menu.Price * int64(e.Quantity)
}

// RestaurantRef is the restaurant summary denormalized onto cart groups
// and order history rows.
type RestaurantRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// CartGroup holds every cart entry for one restaurant.
type CartGroup struct {
	Restaurant RestaurantRef `json:"restaurant"`
	Items      []CartEntry   `json:"items"`
	Subtotal   int64         `json:"subtotal"`
}

type CartSummary struct {
	TotalItems      int   `json:"totalItems"`
	TotalPrice      int64 `json:"totalPrice"`
	RestaurantCount int   `json:"restaurantCount"`
}

// CartSnapshot is the full remote cart as returned by GET /api/cart.
type CartSnapshot struct {
	Cart    []CartGroup `json:"cart"`
	Summary CartSummary `json:"summary"`
}

func (s CartSnapshot) Empty() bool { return len(s.Cart) == 0 }

// Validate checks the payload against the cart invariants: no empty
// groups, positive quantities, subtotals equal to the sum of line totals
// and a summary consistent with the groups. The backend owns the cart, so
// any mismatch means the response cannot be trusted.
func (s CartSnapshot) Validate() error {
	var totalItems int
	var totalPrice int64

	for _, g := range s.Cart {
		if len(g.Items) == 0 {
			return fmt.Errorf("restaurant %d: cart group without items", g.Restaurant.ID)
		}
		var subtotal int64
		for _, it := range g.Items {
			if it.Quantity <= 0 {
				return fmt.Errorf("cart item %d: quantity must be positive", it.ID)
			}
			subtotal += it.LineTotal()
			totalItems += it.Quantity
		}
		if subtotal != g.Subtotal {
			return fmt.Errorf("restaurant %d: subtotal %d does not match items total %d",
				g.Restaurant.ID, g.Subtotal, subtotal)
		}
		totalPrice += subtotal
	}

	if s.Summary.TotalItems != totalItems {
		return fmt.Errorf("summary totalItems %d does not match items %d", s.Summary.TotalItems, totalItems)
	}
	if s.Summary.TotalPrice != totalPrice {
		return fmt.Errorf("summary totalPrice %d does not match groups %d", s.Summary.TotalPrice, totalPrice)
	}
	if s.Summary.RestaurantCount != len(s.Cart) {
		return fmt.Errorf("summary restaurantCount %d does not match groups %d", s.Summary.RestaurantCount, len(s.Cart))
	}
	return nil
}
