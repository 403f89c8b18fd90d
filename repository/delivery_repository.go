package repository

import (
	"errors"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/entity"

	"gorm.io/gorm"
)

// DeliveryProfileRepository keeps the single saved address/phone pair.
type DeliveryProfileRepository struct {
	DB *gorm.DB
}

func NewDeliveryProfileRepository(db *gorm.DB) *DeliveryProfileRepository {
	return &DeliveryProfileRepository{DB: db}
}

// Get returns the saved profile, or nil when none was saved yet.
func (r *DeliveryProfileRepository) Get() (*entity.DeliveryProfile, error) {
	var p entity.DeliveryProfile
	if err := r.DB.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Save overwrites the profile; there is never more than one row.
func (r *DeliveryProfileRepository) Save(address, phone string) error {
	var p entity.DeliveryProfile
	err := r.DB.First(&p).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.DB.Create(&entity.DeliveryProfile{Address: address, Phone: phone}).Error
	case err != nil:
		return err
	}
	p.Address = address
	p.Phone = phone
	return r.DB.Save(&p).Error
}
