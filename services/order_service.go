package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/api"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/entity"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/repository"

	"go.uber.org/zap"
)

// ErrAlreadyReviewed gates a second review of the same restaurant within
// the same transaction. The flag is client-local.
var ErrAlreadyReviewed = errors.New("this restaurant was already reviewed for this order")

// OrderService lists order history and submits reviews.
type OrderService struct {
	api     *api.Client
	session *api.Session
	reviews *repository.ReviewRepository
	log     *zap.Logger
}

func NewOrderService(client *api.Client, session *api.Session, reviews *repository.ReviewRepository, log *zap.Logger) *OrderService {
	return &OrderService{api: client, session: session, reviews: reviews, log: log}
}

// MyOrders fetches one page of the user's orders, filtered by status.
func (s *OrderService) MyOrders(ctx context.Context, status entity.OrderStatus, page, limit int) (*entity.OrderPage, error) {
	if !s.session.Authenticated() {
		return nil, api.ErrUnauthenticated
	}

	vals := url.Values{}
	vals.Set("status", string(status))
	vals.Set("page", strconv.Itoa(max(page, 1)))
	vals.Set("limit", strconv.Itoa(max(limit, 1)))

	var out entity.OrderPage
	if err := s.api.Get(ctx, "/api/order/my-order?"+vals.Encode(), &out); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", api.ErrFetchFailed, err)
	}
	return &out, nil
}

// Reviewed reports the local reviewed flag for one restaurant of one
// transaction.
func (s *OrderService) Reviewed(transactionID string, restaurantID uint) bool {
	done, err := s.reviews.Reviewed(transactionID, restaurantID)
	if err != nil {
		s.log.Warn("read reviewed flag failed", zap.Error(err))
		return false
	}
	return done
}

type ReviewIn struct {
	TransactionID string `json:"transactionId"`
	RestaurantID  uint   `json:"restaurantId"`
	Star          int    `json:"star"`
	Comment       string `json:"comment"`
	MenuIDs       []uint `json:"menuIds"`
}

// SubmitReview posts the review and marks the (transaction, restaurant)
// pair as reviewed locally on success.
func (s *OrderService) SubmitReview(ctx context.Context, in ReviewIn) error {
	if in.Star < 1 || in.Star > 5 {
		return errors.New("star must be between 1 and 5")
	}
	if s.Reviewed(in.TransactionID, in.RestaurantID) {
		return ErrAlreadyReviewed
	}
	if !s.session.Authenticated() {
		return api.ErrUnauthenticated
	}

	if err := s.api.Post(ctx, "/api/review", in, nil); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return err
		}
		return fmt.Errorf("%w: %v", api.ErrMutationFailed, err)
	}

	if err := s.reviews.Mark(in.TransactionID, in.RestaurantID); err != nil {
		s.log.Warn("save reviewed flag failed", zap.Error(err))
	}
	return nil
}
