package web

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires every view behind the session middleware.
func NewRouter(h *Handlers, requestTimeout time.Duration) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	staticFS, _ := fs.Sub(assetsFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Group(func(r chi.Router) {
		r.Use(h.WithSession)

		r.Get("/", h.Home)
		r.Get("/men", h.MenListing)
		r.Get("/women", h.WomenListing)
		r.Get("/sneakers/{id}", h.SneakerDetail)

		r.Get("/login", h.ShowLogin)
		r.Post("/login", h.SubmitLogin)
		r.Get("/signup", h.ShowSignup)
		r.Post("/signup", h.SubmitSignup)
		r.Post("/logout", h.Logout)

		r.Get("/cart", h.ViewCart)
		r.Post("/cart/items", h.AddToCart)
		r.Post("/cart/items/{itemID}/quantity", h.UpdateQuantity)
		r.Post("/cart/clear", h.EmptyCart)

		r.Get("/checkout", h.ShowCheckout)
		r.Post("/checkout", h.SubmitCheckout)
		r.Get("/checkout/card", h.ShowCardPayment)
		r.Post("/checkout/card/pay", h.SubmitPayment)

		r.Get("/my-orders", h.ViewOrders)
	})

	return r
}
