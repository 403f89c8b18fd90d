package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/api"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/entity"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/repository"

	"go.uber.org/zap"
)

// defaultNote travels with every order.
const defaultNote = "Please ring the doorbell"

const clearTimeout = 10 * time.Second

// CheckoutService turns the current cart plus the user's delivery and
// payment choices into a submitted order. The order call is the one
// mandatory step; clearing the remote cart afterwards is housekeeping
// that must never block or fail the success path.
type CheckoutService struct {
	api      *api.Client
	session  *api.Session
	carts    *CartService
	profiles *repository.DeliveryProfileRepository
	log      *zap.Logger

	deliveryFee int64
	serviceFee  int64
}

func NewCheckoutService(
	client *api.Client,
	session *api.Session,
	carts *CartService,
	profiles *repository.DeliveryProfileRepository,
	deliveryFee, serviceFee int64,
	log *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		api:         client,
		session:     session,
		carts:       carts,
		profiles:    profiles,
		log:         log,
		deliveryFee: deliveryFee,
		serviceFee:  serviceFee,
	}
}

// CheckoutContext is everything the checkout screen needs on entry.
type CheckoutContext struct {
	Snapshot       entity.CartSnapshot
	Profile        entity.DeliveryProfile
	PaymentMethods []string
}

// LoadCheckoutContext fetches the cart and the saved delivery profile.
// Any failure to obtain the cart comes back as ErrUnauthenticated so the
// caller redirects to login instead of rendering a broken checkout. An
// empty cart is not a failure; the backend rejects empty orders itself.
func (s *CheckoutService) LoadCheckoutContext(ctx context.Context) (*CheckoutContext, error) {
	if !s.session.Authenticated() {
		return nil, api.ErrUnauthenticated
	}

	snap, err := s.carts.Load(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return nil, err
		}
		return nil, errors.Join(api.ErrUnauthenticated, err)
	}

	out := &CheckoutContext{Snapshot: snap, PaymentMethods: entity.PaymentMethods}
	profile, err := s.profiles.Get()
	if err != nil {
		// A broken local store should not keep the user from checking
		// out; they just retype the address.
		s.log.Warn("load delivery profile failed", zap.Error(err))
	} else if profile != nil {
		out.Profile = *profile
	}
	return out, nil
}

// ValidateDeliveryProfile requires a non-blank address and phone. Runs
// before any network call.
func (s *CheckoutService) ValidateDeliveryProfile(p entity.DeliveryProfile) error {
	if strings.TrimSpace(p.Address) == "" || strings.TrimSpace(p.Phone) == "" {
		return api.ErrIncompleteDeliveryInfo
	}
	return nil
}

// SaveDeliveryProfile validates and persists the address/phone pair to
// the local store.
func (s *CheckoutService) SaveDeliveryProfile(p entity.DeliveryProfile) error {
	if err := s.ValidateDeliveryProfile(p); err != nil {
		return err
	}
	return s.profiles.Save(strings.TrimSpace(p.Address), strings.TrimSpace(p.Phone))
}

// Submit sends the order and returns the confirmation on success.
//
// The submission shares the cart synchronizer's in-flight gate, so a slow
// checkout cannot interleave with a quantity change; if a cart mutation
// is pending the submit is rejected with ErrAnotherOperationInFlight.
//
// On success the remote cart is cleared on a detached goroutine. Its
// outcome is logged and discarded: the backend accepted the order, cart
// residue is not the user's problem.
func (s *CheckoutService) Submit(ctx context.Context, snap entity.CartSnapshot, p entity.DeliveryProfile, paymentMethod string) (*entity.OrderConfirmation, error) {
	if err := s.ValidateDeliveryProfile(p); err != nil {
		return nil, err
	}
	if !s.session.Authenticated() {
		return nil, api.ErrUnauthenticated
	}
	if !s.carts.gate.tryAcquire() {
		return nil, ErrAnotherOperationInFlight
	}
	defer s.carts.gate.release()

	req := entity.BuildCheckoutRequest(snap, strings.TrimSpace(p.Address), strings.TrimSpace(p.Phone), paymentMethod, defaultNote)

	var created struct {
		OrderID string `json:"orderId"`
	}
	if err := s.api.Post(ctx, "/api/order/checkout", req, &created); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return nil, err
		}
		var se *api.StatusError
		if errors.As(err, &se) {
			return nil, &api.CheckoutError{Message: se.Message}
		}
		s.log.Warn("checkout request failed", zap.Error(err))
		return nil, &api.CheckoutError{}
	}

	conf := &entity.OrderConfirmation{
		OrderID:       created.OrderID,
		PaymentMethod: paymentMethod,
		TotalPrice:    snap.Summary.TotalPrice,
		TotalItems:    snap.Summary.TotalItems,
		DeliveryFee:   s.deliveryFee,
		ServiceFee:    s.serviceFee,
		CreatedAt:     time.Now(),
	}

	go s.clearCartDetached(ctx)

	return conf, nil
}

func (s *CheckoutService) clearCartDetached(ctx context.Context) {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), clearTimeout)
	defer cancel()

	if err := s.carts.Clear(cctx); err != nil {
		s.log.Warn("post-checkout cart clear failed", zap.Error(err))
	}
}
