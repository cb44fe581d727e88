package web

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/solegrid/storefront/internal/domain"
)

type cartPage struct {
	basePage
	SignedOut bool
	LoadErr   bool
	Items     []domain.CartItem
	Total     float64
}

// ViewCart always renders the backend's snapshot. Signed-out visitors get
// the placeholder without any backend call.
func (h *Handlers) ViewCart(w http.ResponseWriter, r *http.Request) {
	page := cartPage{basePage: h.basePage(w, r, "Your cart")}

	id, ok := identityFromContext(r.Context())
	if !ok {
		page.SignedOut = true
		h.render.Render(w, http.StatusOK, "cart", page)
		return
	}

	ctx, cancel := h.callCtx(r)
	defer cancel()

	items, err := h.backend.GetCart(ctx, id.Token)
	if err != nil {
		log.Printf("load cart: %v", err)
		page.LoadErr = true
		h.render.Render(w, http.StatusOK, "cart", page)
		return
	}

	page.Items = items
	page.Total = domain.CartTotal(items)
	h.render.Render(w, http.StatusOK, "cart", page)
}

// UpdateQuantity applies one quantity change. Zero or less deletes the line;
// anything else patches it and the backend's returned value wins. Mutations
// on the same line are serialized through the singleflight group, so a burst
// of clicks issues one request instead of several interleaved ones.
func (h *Handlers) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil || itemID <= 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	ctx, cancel := h.callCtx(r)
	defer cancel()

	sid := sessionIDFromContext(r.Context())
	_, err, _ = h.lines.Do(fmt.Sprintf("%s:%d", sid, itemID), func() (interface{}, error) {
		if quantity <= 0 {
			return nil, h.backend.RemoveCartItem(ctx, id.Token, itemID)
		}
		_, errUpdate := h.backend.UpdateCartItem(ctx, id.Token, itemID, quantity)
		return nil, errUpdate
	})
	if err != nil {
		log.Printf("cart mutation item=%d qty=%d: %v", itemID, quantity, err)
		setFlash(w, userMessage(err, "Could not update quantity."))
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// EmptyCart wipes every line in one backend call.
func (h *Handlers) EmptyCart(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := h.callCtx(r)
	defer cancel()

	if err := h.backend.ClearCart(ctx, id.Token); err != nil {
		log.Printf("clear cart: %v", err)
		setFlash(w, userMessage(err, "Could not empty your cart."))
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
