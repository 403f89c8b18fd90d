package entity

type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

type Restaurant struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	Star        float64     `json:"star"`
	Place       string      `json:"place"`
	Logo        string      `json:"logo"`
	Images      []string    `json:"images"`
	Category    string      `json:"category"`
	ReviewCount int         `json:"reviewCount"`
	MenuCount   int         `json:"menuCount"`
	PriceRange  *PriceRange `json:"priceRange,omitempty"`
	Distance    float64     `json:"distance"`
}

// RestaurantDetail is the /api/resto/{id} payload: the restaurant plus
// its full menu list.
type RestaurantDetail struct {
	Restaurant
	Menus []MenuItem `json:"menus"`
}

type MenuItem struct {
	ID          uint    `json:"id"`
	FoodName    string  `json:"foodName"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
