package repository

import (
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/entity"

	"gorm.io/gorm"
)

// ReviewRepository stores the per-(transaction, restaurant) reviewed
// flags that gate the review action.
type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Reviewed(transactionID string, restaurantID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&entity.ReviewMark{}).
		Where("transaction_id = ? AND restaurant_id = ?", transactionID, restaurantID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ReviewRepository) Mark(transactionID string, restaurantID uint) error {
	mark := entity.ReviewMark{TransactionID: transactionID, RestaurantID: restaurantID}
	return r.DB.
		Where("transaction_id = ? AND restaurant_id = ?", transactionID, restaurantID).
		FirstOrCreate(&mark).Error
}
