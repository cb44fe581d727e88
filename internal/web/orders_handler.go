package web

import (
	"log"
	"net/http"

	"github.com/solegrid/storefront/internal/domain"
)

type ordersPage struct {
	basePage
	SignedOut bool
	LoadErr   bool
	Orders    []domain.Order
}

// ViewOrders fetches the order list once per render. Signed-out visitors get
// the placeholder without touching the backend.
func (h *Handlers) ViewOrders(w http.ResponseWriter, r *http.Request) {
	page := ordersPage{basePage: h.basePage(w, r, "My orders")}

	id, ok := identityFromContext(r.Context())
	if !ok {
		page.SignedOut = true
		h.render.Render(w, http.StatusOK, "orders", page)
		return
	}

	ctx, cancel := h.callCtx(r)
	defer cancel()

	orders, err := h.backend.ListOrders(ctx, id.Token)
	if err != nil {
		log.Printf("load orders: %v", err)
		page.LoadErr = true
		h.render.Render(w, http.StatusOK, "orders", page)
		return
	}

	page.Orders = orders
	h.render.Render(w, http.StatusOK, "orders", page)
}
