package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solegrid/storefront/internal/domain"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

func TestLogin_SendsOAuthForm(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		require.NoError(t, r.ParseForm())
		// the backend wants the email under "username"
		assert.Equal(t, "ana@example.com", r.PostFormValue("username"))
		assert.Equal(t, "secret", r.PostFormValue("password"))

		json.NewEncoder(w).Encode(domain.Token{AccessToken: "tok-1", TokenType: "bearer"})
	})
	defer srv.Close()

	token, err := client.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token.AccessToken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer srv.Close()

	_, err := client.Login(context.Background(), "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCurrentUser_SendsBearer(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(domain.User{ID: 1, Email: "ana@example.com", IsActive: true})
	})
	defer srv.Close()

	user, err := client.CurrentUser(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
}

func TestCurrentUser_RejectedToken(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	defer srv.Close()

	_, err := client.CurrentUser(context.Background(), "stale")
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestRegister_SurfacesStringDetail(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"detail":"Email already registered"}`)
	})
	defer srv.Close()

	_, err := client.Register(context.Background(), "ana@example.com", "Ana Pop", "secret")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Email already registered", apiErr.Message)
}

func TestRegister_SurfacesValidationListDetail(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"detail":[{"msg":"value is not a valid email address"}]}`)
	})
	defer srv.Close()

	_, err := client.Register(context.Background(), "nope", "Ana Pop", "secret")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "value is not a valid email address", apiErr.Message)
}

func TestListSneakers_GenderFilter(t *testing.T) {
	var gotQuery string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sneakers", r.URL.Path)
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]domain.Sneaker{{ID: 1, Name: "Air Zoom"}})
	})
	defer srv.Close()

	_, err := client.ListSneakers(context.Background(), "women")
	require.NoError(t, err)
	assert.Equal(t, "gender=women", gotQuery)

	_, err = client.ListSneakers(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "", gotQuery)
}

func TestGetSneaker_NotFound(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	defer srv.Close()

	_, err := client.GetSneaker(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddCartItem_Body(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cart/", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 3, body["sneaker_id"])
		assert.EqualValues(t, 1, body["quantity"])
		assert.EqualValues(t, 41, body["size"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.CartItem{ID: 10, Quantity: 1, Size: 41})
	})
	defer srv.Close()

	item, err := client.AddCartItem(context.Background(), "tok-1", 3, 1, 41)
	require.NoError(t, err)
	assert.Equal(t, int64(10), item.ID)
}

func TestAddCartItem_OmitsZeroSize(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasSize := body["size"]
		assert.False(t, hasSize)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.CartItem{ID: 10, Quantity: 1})
	})
	defer srv.Close()

	_, err := client.AddCartItem(context.Background(), "tok-1", 3, 1, 0)
	require.NoError(t, err)
}

func TestUpdateCartItem_ServerValueWins(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/cart/10", r.URL.Path)

		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 5, body["quantity"])

		// backend clamps to available stock
		json.NewEncoder(w).Encode(domain.CartItem{ID: 10, Quantity: 3})
	})
	defer srv.Close()

	item, err := client.UpdateCartItem(context.Background(), "tok-1", 10, 5)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 3, item.Quantity)
}

func TestUpdateCartItem_NoContent(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	defer srv.Close()

	item, err := client.UpdateCartItem(context.Background(), "tok-1", 10, 2)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestUpdateCartItem_SurfacesStockMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"detail":"Only 2 items left in stock"}`)
	})
	defer srv.Close()

	_, err := client.UpdateCartItem(context.Background(), "tok-1", 10, 9)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Only 2 items left in stock", apiErr.Message)
}

func TestRemoveCartItem(t *testing.T) {
	var gotPath, gotMethod string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	})
	defer srv.Close()

	require.NoError(t, client.RemoveCartItem(context.Background(), "tok-1", 10))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/cart/10", gotPath)
}

func TestClearCart_UsesBulkEndpoint(t *testing.T) {
	var gotPath string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})
	defer srv.Close()

	require.NoError(t, client.ClearCart(context.Background(), "tok-1"))
	assert.Equal(t, "/cart/clear-after-checkout/all", gotPath)
}

func TestCheckout_CreatesOrder(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders/checkout", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(domain.Order{ID: 7, Total: 298.00})
	})
	defer srv.Close()

	order, err := client.Checkout(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), order.ID)
	assert.InDelta(t, 298.00, order.Total, 0.0001)
}

func TestListOrders(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/", r.URL.Path)
		json.NewEncoder(w).Encode([]domain.Order{{ID: 7}, {ID: 8}})
	})
	defer srv.Close()

	orders, err := client.ListOrders(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestTransportFailureIsWrapped(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 500*time.Millisecond)

	_, err := client.GetCart(context.Background(), "tok-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotAuthorized)
}
