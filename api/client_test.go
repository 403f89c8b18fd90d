package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/WPH-Bootcamp/challenge-9-rudigunawan83/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_InjectsBearerToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"success":true,"data":{"status":"up"}}`)
	}))
	defer ts.Close()

	session := NewSession()
	session.SetToken("tok123")
	c := NewClient(ts.URL, time.Second, session, zap.NewNop())

	var out struct {
		Status string `json:"status"`
	}
	require.NoError(t, c.Get(context.Background(), "/health", &out))
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, "up", out.Status)
}

func TestClient_UnauthorizedInvalidatesSession(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"success":false,"message":"invalid token"}`)
	}))
	defer ts.Close()

	session := NewSession()
	session.SetToken("stale")
	var hookFired bool
	session.OnUnauthorized(func() { hookFired = true })
	c := NewClient(ts.URL, time.Second, session, zap.NewNop())

	err := c.Get(context.Background(), "/api/cart", &struct{}{})

	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.Empty(t, session.Token())
	assert.True(t, hookFired)
}

func TestClient_StatusErrorCarriesServerMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"success":false,"message":"cart is empty"}`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second, NewSession(), zap.NewNop())
	err := c.Post(context.Background(), "/api/order/checkout", struct{}{}, nil)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, "cart is empty", se.Message)
}

func TestClient_MissingDataIsAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true}`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second, NewSession(), zap.NewNop())

	var out struct{}
	err := c.Get(context.Background(), "/api/cart", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data")
}

func TestClient_GarbageBodyIsAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	}))
	defer ts.Close()

	c := NewClient(ts.URL, time.Second, NewSession(), zap.NewNop())

	var out struct{}
	require.Error(t, c.Get(context.Background(), "/api/cart", &out))
}

func TestSession_Authenticated(t *testing.T) {
	s := NewSession()
	assert.False(t, s.Authenticated())

	fresh, err := utils.GenerateToken(1, "customer", "secret", time.Hour)
	require.NoError(t, err)
	s.SetToken(fresh)
	assert.True(t, s.Authenticated())

	expired, err := utils.GenerateToken(1, "customer", "secret", -time.Hour)
	require.NoError(t, err)
	s.SetToken(expired)
	assert.False(t, s.Authenticated())

	s.Clear()
	assert.Empty(t, s.Token())
}
