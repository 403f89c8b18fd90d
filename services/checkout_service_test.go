package services

import (
	"context"
	"testing"
	"time"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/api"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/entity"
	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCheckoutFixture(t *testing.T) (*fixture, *CheckoutService) {
	t.Helper()

	f := newFixture(t)
	db, err := repository.Open(t.TempDir())
	require.NoError(t, err)
	profiles := repository.NewDeliveryProfileRepository(db)

	co := NewCheckoutService(f.client, f.session, f.carts, profiles, 10000, 1000, zap.NewNop())
	return f, co
}

func validProfile() entity.DeliveryProfile {
	return entity.DeliveryProfile{Address: "Jl. Sudirman No. 25, Jakarta", Phone: "081234567890"}
}

func TestValidateDeliveryProfile(t *testing.T) {
	_, co := newCheckoutFixture(t)

	assert.NoError(t, co.ValidateDeliveryProfile(validProfile()))

	err := co.ValidateDeliveryProfile(entity.DeliveryProfile{Address: "", Phone: "081234567890"})
	assert.ErrorIs(t, err, api.ErrIncompleteDeliveryInfo)

	err = co.ValidateDeliveryProfile(entity.DeliveryProfile{Address: "Jl. Sudirman", Phone: "   "})
	assert.ErrorIs(t, err, api.ErrIncompleteDeliveryInfo)
}

func TestSubmit_ValidatesBeforeAnyNetworkCall(t *testing.T) {
	f, co := newCheckoutFixture(t)

	_, err := co.Submit(context.Background(), entity.CartSnapshot{}, entity.DeliveryProfile{}, entity.PaymentMethods[0])

	require.ErrorIs(t, err, api.ErrIncompleteDeliveryInfo)
	assert.EqualValues(t, 0, f.backend.ClearCalls.Load())
}

func TestLoadCheckoutContext_RedirectsWithoutCredential(t *testing.T) {
	f, co := newCheckoutFixture(t)
	f.session.Clear()

	_, err := co.LoadCheckoutContext(context.Background())

	require.ErrorIs(t, err, api.ErrUnauthenticated)
}

func TestLoadCheckoutContext_EmptyCartStillRenders(t *testing.T) {
	_, co := newCheckoutFixture(t)

	cc, err := co.LoadCheckoutContext(context.Background())

	require.NoError(t, err)
	assert.True(t, cc.Snapshot.Empty())
	assert.Equal(t, entity.PaymentMethods, cc.PaymentMethods)
}

func TestSaveDeliveryProfile_RoundTrip(t *testing.T) {
	_, co := newCheckoutFixture(t)

	require.NoError(t, co.SaveDeliveryProfile(entity.DeliveryProfile{
		Address: "  Jl. Melati 7  ", Phone: " 0812000 ",
	}))

	cc, err := co.LoadCheckoutContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Jl. Melati 7", cc.Profile.Address)
	assert.Equal(t, "0812000", cc.Profile.Phone)
}

func TestSubmit_Success(t *testing.T) {
	f, co := newCheckoutFixture(t)
	ctx := context.Background()
	f.seedTwoRestaurants(t, ctx)
	snap, err := f.carts.Load(ctx)
	require.NoError(t, err)

	conf, err := co.Submit(ctx, snap, validProfile(), "BCA Bank Central Asia")

	require.NoError(t, err)
	require.NotNil(t, conf)
	assert.NotEmpty(t, conf.OrderID)
	assert.Equal(t, "BCA Bank Central Asia", conf.PaymentMethod)
	assert.EqualValues(t, 60000, conf.TotalPrice)
	assert.Equal(t, 3, conf.TotalItems)
	assert.EqualValues(t, 10000, conf.DeliveryFee)
	assert.EqualValues(t, 1000, conf.ServiceFee)
	assert.EqualValues(t, 71000, conf.GrandTotal())
	assert.WithinDuration(t, time.Now(), conf.CreatedAt, 5*time.Second)

	// The detached clear eventually empties the remote cart.
	require.Eventually(t, func() bool {
		return f.backend.ClearCalls.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)
	snap, err = f.carts.Load(ctx)
	require.NoError(t, err)
	assert.True(t, snap.Empty())
}

func TestSubmit_RejectionLeavesCartUntouched(t *testing.T) {
	f, co := newCheckoutFixture(t)
	ctx := context.Background()
	f.seedTwoRestaurants(t, ctx)
	before, err := f.carts.Load(ctx)
	require.NoError(t, err)

	f.backend.CheckoutReject.Store("payment window closed")
	conf, err := co.Submit(ctx, before, validProfile(), entity.PaymentMethods[0])

	require.Nil(t, conf)
	var ce *api.CheckoutError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "payment window closed", ce.Message)

	// No clear was issued and the remote cart is exactly as before.
	assert.EqualValues(t, 0, f.backend.ClearCalls.Load())
	f.backend.CheckoutReject.Store("")
	after, err := f.carts.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSubmit_EmptyCartSurfacesBackendErrorVerbatim(t *testing.T) {
	f, co := newCheckoutFixture(t)
	ctx := context.Background()

	snap, err := f.carts.Load(ctx)
	require.NoError(t, err)
	require.True(t, snap.Empty())

	conf, err := co.Submit(ctx, snap, validProfile(), entity.PaymentMethods[0])

	require.Nil(t, conf)
	var ce *api.CheckoutError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "cart is empty", ce.Message)
	assert.EqualValues(t, 0, f.backend.ClearCalls.Load())
}

func TestSubmit_ClearFailureNeverReachesTheUser(t *testing.T) {
	f, co := newCheckoutFixture(t)
	ctx := context.Background()
	f.seedTwoRestaurants(t, ctx)
	snap, err := f.carts.Load(ctx)
	require.NoError(t, err)

	f.backend.FailNextCartClear.Store(true)
	conf, err := co.Submit(ctx, snap, validProfile(), entity.PaymentMethods[0])

	require.NoError(t, err)
	require.NotNil(t, conf)
	assert.NotEmpty(t, conf.OrderID)
	assert.EqualValues(t, 60000, conf.TotalPrice)

	// The clear was attempted, failed, and the confirmation stood anyway.
	require.Eventually(t, func() bool {
		return f.backend.ClearCalls.Load() >= 1
	}, 2*time.Second, 10*time.Millisecond)
	after, err := f.carts.Load(ctx)
	require.NoError(t, err)
	assert.False(t, after.Empty())
}

func TestSubmit_SerializedWithCartMutations(t *testing.T) {
	f, co := newCheckoutFixture(t)
	ctx := context.Background()
	f.seedTwoRestaurants(t, ctx)
	snap, err := f.carts.Load(ctx)
	require.NoError(t, err)
	entryID := snap.Cart[0].Items[0].ID

	f.backend.MutationDelay = 200 * time.Millisecond
	done := make(chan error, 1)
	go func() { done <- f.carts.SetQuantity(ctx, entryID, 3) }()
	time.Sleep(50 * time.Millisecond)

	_, err = co.Submit(ctx, snap, validProfile(), entity.PaymentMethods[0])

	require.ErrorIs(t, err, ErrAnotherOperationInFlight)
	require.NoError(t, <-done)
}
