package web

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/solegrid/storefront/internal/checkout"
	"github.com/solegrid/storefront/internal/domain"
	"github.com/solegrid/storefront/internal/session"
)

// BackendClient is everything the views need from the shop backend. The
// concrete implementation lives in internal/backend; tests swap in a mock.
type BackendClient interface {
	Login(ctx context.Context, email, password string) (domain.Token, error)
	Register(ctx context.Context, email, fullName, password string) (domain.User, error)
	CurrentUser(ctx context.Context, token string) (domain.User, error)
	ListSneakers(ctx context.Context, gender string) ([]domain.Sneaker, error)
	GetSneaker(ctx context.Context, id int64) (domain.Sneaker, error)
	GetCart(ctx context.Context, token string) ([]domain.CartItem, error)
	AddCartItem(ctx context.Context, token string, sneakerID int64, quantity, size int) (domain.CartItem, error)
	UpdateCartItem(ctx context.Context, token string, itemID int64, quantity int) (*domain.CartItem, error)
	RemoveCartItem(ctx context.Context, token string, itemID int64) error
	ClearCart(ctx context.Context, token string) error
	Checkout(ctx context.Context, token string) (domain.Order, error)
	ListOrders(ctx context.Context, token string) ([]domain.Order, error)
}

type Handlers struct {
	backend  BackendClient
	sessions session.Store
	guard    *checkout.SubmitGuard
	render   *Renderer
	timeout  time.Duration

	// lines serializes quantity mutations per cart line so rapid repeated
	// clicks collapse into one in-flight request instead of interleaving.
	lines singleflight.Group
}

func NewHandlers(backend BackendClient, sessions session.Store, guard *checkout.SubmitGuard, render *Renderer, timeout time.Duration) *Handlers {
	return &Handlers{
		backend:  backend,
		sessions: sessions,
		guard:    guard,
		render:   render,
		timeout:  timeout,
	}
}

// basePage carries the fields every template expects.
type basePage struct {
	Title string
	Email string
	Flash string
}

func (h *Handlers) basePage(w http.ResponseWriter, r *http.Request, title string) basePage {
	page := basePage{Title: title, Flash: takeFlash(w, r)}
	if id, ok := identityFromContext(r.Context()); ok {
		page.Email = id.Email
	}
	return page
}

func (h *Handlers) callCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), h.timeout)
}

const flashCookie = "storefront_flash"

// Flash messages survive exactly one redirect; the next page render consumes
// the cookie.
func setFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

func takeFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	msg, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return msg
}
