package mockapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return res, out
}

func TestAuthFlow(t *testing.T) {
	ts := httptest.NewServer(NewServer("test-secret").Router())
	defer ts.Close()

	res, out := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Sari", "email": "sari@example.com", "phone": "0812", "password": "rahasia",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	data := out["data"].(map[string]any)
	require.NotEmpty(t, data["token"])

	res, _ = doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Sari", "email": "sari@example.com", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, out = doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "sari@example.com", "password": "rahasia",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)
	token := out["data"].(map[string]any)["token"].(string)

	res, out = doJSON(t, ts, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Sari", out["data"].(map[string]any)["name"])

	res, _ = doJSON(t, ts, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestCartGroupingAndTotals(t *testing.T) {
	srv := NewServer("test-secret")
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()
	token := srv.MustToken("Tester", "t@example.com")

	res, _ := doJSON(t, ts, http.MethodPost, "/api/cart", token, map[string]any{
		"restaurantId": 1, "menuId": 10, "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	res, _ = doJSON(t, ts, http.MethodPost, "/api/cart", token, map[string]any{
		"restaurantId": 2, "menuId": 20, "quantity": 1,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res, out := doJSON(t, ts, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	data := out["data"].(map[string]any)
	summary := data["summary"].(map[string]any)
	assert.EqualValues(t, 60000, summary["totalPrice"])
	assert.EqualValues(t, 3, summary["totalItems"])
	assert.EqualValues(t, 2, summary["restaurantCount"])
	assert.Len(t, data["cart"].([]any), 2)

	// Menu outside the restaurant is rejected.
	res, _ = doJSON(t, ts, http.MethodPost, "/api/cart", token, map[string]any{
		"restaurantId": 1, "menuId": 20, "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestCheckoutRejectsEmptyOrder(t *testing.T) {
	srv := NewServer("test-secret")
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()
	token := srv.MustToken("Tester", "t@example.com")

	res, out := doJSON(t, ts, http.MethodPost, "/api/order/checkout", token, map[string]any{
		"restaurants":     []any{},
		"deliveryAddress": "Jl. Melati 7",
		"phone":           "0812000",
		"paymentMethod":   "Mandiri",
		"notes":           "",
	})

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "cart is empty", out["message"])
}

func TestCheckoutComputesServerSideTotal(t *testing.T) {
	srv := NewServer("test-secret")
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()
	token := srv.MustToken("Tester", "t@example.com")

	res, out := doJSON(t, ts, http.MethodPost, "/api/order/checkout", token, map[string]any{
		"restaurants": []map[string]any{
			{"restaurantId": 1, "items": []map[string]any{{"menuId": 10, "quantity": 2}}},
			{"restaurantId": 2, "items": []map[string]any{{"menuId": 20, "quantity": 1}}},
		},
		"deliveryAddress": "Jl. Melati 7",
		"phone":           "0812000",
		"paymentMethod":   "Mandiri",
		"notes":           "",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	orderID := out["data"].(map[string]any)["orderId"].(string)
	require.NotEmpty(t, orderID)

	res, out = doJSON(t, ts, http.MethodGet, "/api/order/my-order?status=preparing&page=1&limit=10", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	orders := out["data"].(map[string]any)["orders"].([]any)
	require.Len(t, orders, 1)
	pricing := orders[0].(map[string]any)["pricing"].(map[string]any)
	assert.EqualValues(t, 60000, pricing["totalPrice"])
}
