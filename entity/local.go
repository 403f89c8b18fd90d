package entity

import (
	"gorm.io/gorm"
)

// Client-local state. These rows live in the sqlite store next to the
// binary and are never synced to the server.

// DeliveryProfile is the saved delivery address + phone pair. There is at
// most one row; checkout reads it on entry and overwrites it on save.
type DeliveryProfile struct {
	gorm.Model
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// ReviewMark records that the user already reviewed one restaurant of one
// transaction. It gates the review action client-side.
type ReviewMark struct {
	gorm.Model
	TransactionID string `json:"transactionId" gorm:"index:idx_review_tx_resto,unique"`
	RestaurantID  uint   `json:"restaurantId" gorm:"index:idx_review_tx_resto,unique"`
}

// SavedSession keeps the bearer token across runs ("remember me").
type SavedSession struct {
	gorm.Model
	Token string `json:"-"`
}
