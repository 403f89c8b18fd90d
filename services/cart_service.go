package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/api"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/entity"

	"go.uber.org/zap"
)

// ErrAnotherOperationInFlight is returned when a cart-touching call finds
// the gate already taken, for callers that want to tell the user instead
// of dropping silently.
var ErrAnotherOperationInFlight = errors.New("another cart operation is in flight")

// CartService keeps the local view of the remote cart in step with the
// backend. The remote cart is the only authority: mutations never patch
// the local snapshot, every write is followed by a full reload. That
// trades a round-trip for never having to reconcile an optimistic guess —
// carts are small, keep it that way.
//
// At most one mutation is in flight at a time; a second call while one is
// pending is dropped, not queued.
type CartService struct {
	api     *api.Client
	session *api.Session
	log     *zap.Logger

	gate flightGate

	mu        sync.RWMutex
	snapshot  entity.CartSnapshot
	onChanged func()
}

func NewCartService(client *api.Client, session *api.Session, log *zap.Logger) *CartService {
	return &CartService{api: client, session: session, log: log}
}

// OnChanged registers the hook fired after every successful mutation, so
// out-of-band cart indicators (the header badge) can refresh themselves.
func (s *CartService) OnChanged(fn func()) {
	s.mu.Lock()
	s.onChanged = fn
	s.mu.Unlock()
}

// Snapshot returns the last loaded cart view.
func (s *CartService) Snapshot() entity.CartSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Count is the total item count of the current view, for the badge.
func (s *CartService) Count() int {
	return s.Snapshot().Summary.TotalItems
}

// Load fetches the full cart from the backend. On any failure the local
// view is emptied rather than left half-populated.
func (s *CartService) Load(ctx context.Context) (entity.CartSnapshot, error) {
	if !s.session.Authenticated() {
		s.reset()
		return entity.CartSnapshot{}, api.ErrUnauthenticated
	}

	var snap entity.CartSnapshot
	if err := s.api.Get(ctx, "/api/cart", &snap); err != nil {
		s.reset()
		if errors.Is(err, api.ErrUnauthenticated) {
			return entity.CartSnapshot{}, err
		}
		return entity.CartSnapshot{}, fmt.Errorf("%w: %v", api.ErrFetchFailed, err)
	}
	if err := snap.Validate(); err != nil {
		s.reset()
		s.log.Warn("cart payload failed validation", zap.Error(err))
		return entity.CartSnapshot{}, fmt.Errorf("%w: %v", api.ErrFetchFailed, err)
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
	return snap, nil
}

// Add puts one menu item into the cart and reloads. Dropped when another
// mutation is pending.
func (s *CartService) Add(ctx context.Context, restaurantID, menuID uint, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	if !s.session.Authenticated() {
		return api.ErrUnauthenticated
	}
	if !s.gate.tryAcquire() {
		s.log.Debug("add dropped, mutation in flight", zap.Uint("menuId", menuID))
		return nil
	}
	defer s.gate.release()

	body := map[string]any{
		"restaurantId": restaurantID,
		"menuId":       menuID,
		"quantity":     quantity,
	}
	mutErr := s.api.Post(ctx, "/api/cart", body, nil)
	return s.finishMutation(ctx, mutErr)
}

// SetQuantity changes one cart entry to quantity, deleting the entry when
// quantity is zero. Negative quantities are rejected. While a mutation is
// pending any further call is a no-op.
//
// Success or failure, the full snapshot is reloaded afterwards so the
// view reflects server truth, not what we hoped the write did.
func (s *CartService) SetQuantity(ctx context.Context, entryID uint, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", api.ErrMutationFailed)
	}
	if !s.session.Authenticated() {
		return api.ErrUnauthenticated
	}
	if !s.gate.tryAcquire() {
		s.log.Debug("set quantity dropped, mutation in flight", zap.Uint("entryId", entryID))
		return nil
	}
	defer s.gate.release()

	var mutErr error
	if quantity == 0 {
		mutErr = s.api.Delete(ctx, fmt.Sprintf("/api/cart/%d", entryID))
	} else {
		mutErr = s.api.Put(ctx, fmt.Sprintf("/api/cart/%d", entryID), map[string]int{"quantity": quantity}, nil)
	}
	return s.finishMutation(ctx, mutErr)
}

// Clear deletes the whole remote cart. Post-checkout callers run this
// detached and only log the error.
func (s *CartService) Clear(ctx context.Context) error {
	if !s.session.Authenticated() {
		return api.ErrUnauthenticated
	}
	if err := s.api.Delete(ctx, "/api/cart"); err != nil {
		if errors.Is(err, api.ErrUnauthenticated) {
			return err
		}
		return fmt.Errorf("%w: %v", api.ErrMutationFailed, err)
	}

	s.reset()
	s.notifyChanged()
	return nil
}

// finishMutation reloads the snapshot and folds the two outcomes into one
// error, with the mutation failure taking precedence.
func (s *CartService) finishMutation(ctx context.Context, mutErr error) error {
	_, loadErr := s.Load(ctx)

	if mutErr != nil {
		if errors.Is(mutErr, api.ErrUnauthenticated) {
			return mutErr
		}
		return fmt.Errorf("%w: %v", api.ErrMutationFailed, mutErr)
	}
	if loadErr != nil {
		return loadErr
	}

	s.notifyChanged()
	return nil
}

func (s *CartService) notifyChanged() {
	s.mu.RLock()
	fn := s.onChanged
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

func (s *CartService) reset() {
	s.mu.Lock()
	s.snapshot = entity.CartSnapshot{}
	s.mu.Unlock()
}
