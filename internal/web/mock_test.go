package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/solegrid/storefront/internal/checkout"
	"github.com/solegrid/storefront/internal/domain"
	"github.com/solegrid/storefront/internal/session"
)

const (
	testSID   = "sid-test"
	testToken = "tok-good"
	testEmail = "ana@example.com"
)

type backendMock struct {
	calls map[string]int

	loginToken  domain.Token
	loginErr    error
	user        domain.User
	userErr     error
	sneakers    []domain.Sneaker
	listErr     error
	sneaker     domain.Sneaker
	getErr      error
	cart        []domain.CartItem
	cartErr     error
	added       domain.CartItem
	addErr      error
	updated     *domain.CartItem
	updateErr   error
	removeErr   error
	clearErr    error
	order       domain.Order
	checkoutErr error
	orders      []domain.Order
	ordersErr   error

	lastGender    string
	lastAddSize   int
	lastUpdateQty int
	lastRemovedID int64
}

func (m *backendMock) record(name string) {
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[name]++
}

func (m *backendMock) Login(_ context.Context, _, _ string) (domain.Token, error) {
	m.record("Login")
	return m.loginToken, m.loginErr
}

func (m *backendMock) Register(_ context.Context, _, _, _ string) (domain.User, error) {
	m.record("Register")
	return m.user, m.userErr
}

func (m *backendMock) CurrentUser(_ context.Context, token string) (domain.User, error) {
	m.record("CurrentUser")
	if m.userErr != nil {
		return domain.User{}, m.userErr
	}
	if token != testToken {
		return domain.User{}, context.Canceled
	}
	return m.user, nil
}

func (m *backendMock) ListSneakers(_ context.Context, gender string) ([]domain.Sneaker, error) {
	m.record("ListSneakers")
	m.lastGender = gender
	return m.sneakers, m.listErr
}

func (m *backendMock) GetSneaker(_ context.Context, _ int64) (domain.Sneaker, error) {
	m.record("GetSneaker")
	return m.sneaker, m.getErr
}

func (m *backendMock) GetCart(_ context.Context, _ string) ([]domain.CartItem, error) {
	m.record("GetCart")
	return m.cart, m.cartErr
}

func (m *backendMock) AddCartItem(_ context.Context, _ string, _ int64, _, size int) (domain.CartItem, error) {
	m.record("AddCartItem")
	m.lastAddSize = size
	return m.added, m.addErr
}

func (m *backendMock) UpdateCartItem(_ context.Context, _ string, _ int64, quantity int) (*domain.CartItem, error) {
	m.record("UpdateCartItem")
	m.lastUpdateQty = quantity
	return m.updated, m.updateErr
}

func (m *backendMock) RemoveCartItem(_ context.Context, _ string, itemID int64) error {
	m.record("RemoveCartItem")
	m.lastRemovedID = itemID
	return m.removeErr
}

func (m *backendMock) ClearCart(_ context.Context, _ string) error {
	m.record("ClearCart")
	return m.clearErr
}

func (m *backendMock) Checkout(_ context.Context, _ string) (domain.Order, error) {
	m.record("Checkout")
	return m.order, m.checkoutErr
}

func (m *backendMock) ListOrders(_ context.Context, _ string) ([]domain.Order, error) {
	m.record("ListOrders")
	return m.orders, m.ordersErr
}

type testApp struct {
	mock     *backendMock
	router   http.Handler
	sessions session.Store
	guard    *checkout.SubmitGuard
}

func setupApp(t *testing.T, mock *backendMock) *testApp {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	sessions := session.NewRedisStore(client)
	guard := checkout.NewSubmitGuard(client)

	renderer, err := NewRenderer("http://backend:8000")
	require.NoError(t, err)

	handlers := NewHandlers(mock, sessions, guard, renderer, 5*time.Second)
	router := NewRouter(handlers, 5*time.Second)

	return &testApp{mock: mock, router: router, sessions: sessions, guard: guard}
}

// signIn seeds a stored session the way a successful login would.
func (a *testApp) signIn(t *testing.T) {
	t.Helper()
	err := a.sessions.Save(context.Background(), testSID, session.Session{Token: testToken, Email: testEmail})
	require.NoError(t, err)
}

func (a *testApp) issueToken(t *testing.T) string {
	t.Helper()
	token, err := a.guard.Issue(context.Background(), testSID)
	require.NoError(t, err)
	return token
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: testSID})
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func flashFrom(rec *httptest.ResponseRecorder) string {
	resp := rec.Result()
	for _, c := range resp.Cookies() {
		if c.Name == flashCookie && c.MaxAge >= 0 && c.Value != "" {
			msg, _ := url.QueryUnescape(c.Value)
			return msg
		}
	}
	return ""
}
