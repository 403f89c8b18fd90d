package repository

import (
	"errors"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/entity"

	"gorm.io/gorm"
)

// SessionRepository persists the bearer token between runs.
type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

// Token returns the saved token, or "" when the user never logged in or
// logged out.
func (r *SessionRepository) Token() (string, error) {
	var s entity.SavedSession
	if err := r.DB.First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return s.Token, nil
}

func (r *SessionRepository) Save(token string) error {
	var s entity.SavedSession
	err := r.DB.First(&s).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return r.DB.Create(&entity.SavedSession{Token: token}).Error
	case err != nil:
		return err
	}
	s.Token = token
	return r.DB.Save(&s).Error
}

func (r *SessionRepository) Delete() error {
	return r.DB.Where("1 = 1").Delete(&entity.SavedSession{}).Error
}
