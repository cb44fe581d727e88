package web

import (
	"log"
	"net/http"
	"strconv"

	"github.com/solegrid/storefront/internal/checkout"
	"github.com/solegrid/storefront/internal/domain"
)

type checkoutPage struct {
	basePage
	Items       []domain.CartItem
	Total       float64
	SubmitToken string
	Error       string
	Selection   checkout.Selection
}

type paymentPage struct {
	basePage
	Pending     checkout.PendingPayment
	SubmitToken string
	Error       string
}

func (h *Handlers) ShowCheckout(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := h.callCtx(r)
	defer cancel()

	page := checkoutPage{
		basePage:  h.basePage(w, r, "Checkout"),
		Selection: checkout.Selection{Method: checkout.MethodCash},
	}

	items, err := h.backend.GetCart(ctx, id.Token)
	if err != nil {
		log.Printf("checkout load cart: %v", err)
		page.Error = "Could not load cart."
		h.render.Render(w, http.StatusOK, "checkout", page)
		return
	}

	page.Items = items
	page.Total = domain.CartTotal(items)

	token, err := h.guard.Issue(ctx, sessionIDFromContext(r.Context()))
	if err != nil {
		log.Printf("issue submit token: %v", err)
		page.Error = "Something went wrong, please try again."
		h.render.Render(w, http.StatusOK, "checkout", page)
		return
	}
	page.SubmitToken = token

	h.render.Render(w, http.StatusOK, "checkout", page)
}

// SubmitCheckout runs the delivery-method branch. Cash and easybox place the
// order right here; online card never does, it only carries the address and
// total forward to the payment step.
func (h *Handlers) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := h.callCtx(r)
	defer cancel()

	sel := checkout.Selection{
		Method:      checkout.DeliveryMethod(r.FormValue("method")),
		City:        r.FormValue("city"),
		Street:      r.FormValue("street"),
		Number:      r.FormValue("number"),
		EasyboxCode: r.FormValue("easybox_code"),
	}

	// local validation first, no backend call on a bad form
	if err := sel.Validate(); err != nil {
		h.rerenderCheckout(w, r, id.Token, sel, err.Error())
		return
	}

	items, err := h.backend.GetCart(ctx, id.Token)
	if err != nil {
		log.Printf("checkout load cart: %v", err)
		h.rerenderCheckout(w, r, id.Token, sel, "Could not load cart.")
		return
	}
	if len(items) == 0 {
		h.rerenderCheckout(w, r, id.Token, sel, checkout.ErrEmptyCart.Error())
		return
	}

	sid := sessionIDFromContext(r.Context())
	live, err := h.guard.Consume(ctx, sid, r.FormValue("submit_token"))
	if err != nil {
		log.Printf("consume submit token: %v", err)
		h.rerenderCheckout(w, r, id.Token, sel, "Something went wrong, please try again.")
		return
	}
	if !live {
		setFlash(w, "This order was already submitted.")
		http.Redirect(w, r, "/my-orders", http.StatusSeeOther)
		return
	}

	if !sel.CreatesOrderNow() {
		// card payment: hand the address and total to the payment step
		pending := checkout.PendingPayment{
			City:   sel.City,
			Street: sel.Street,
			Number: sel.Number,
			Total:  domain.CartTotal(items),
		}
		h.renderPayment(w, r, pending, "")
		return
	}

	if _, err := h.backend.Checkout(ctx, id.Token); err != nil {
		log.Printf("checkout (%s): %v", sel.Method, err)
		h.rerenderCheckout(w, r, id.Token, sel, userMessage(err, "Something went wrong placing your order."))
		return
	}

	setFlash(w, "Order placed!")
	http.Redirect(w, r, "/my-orders", http.StatusSeeOther)
}

func (h *Handlers) rerenderCheckout(w http.ResponseWriter, r *http.Request, token string, sel checkout.Selection, msg string) {
	ctx, cancel := h.callCtx(r)
	defer cancel()

	page := checkoutPage{
		basePage:  h.basePage(w, r, "Checkout"),
		Selection: sel,
		Error:     msg,
	}

	if items, err := h.backend.GetCart(ctx, token); err == nil {
		page.Items = items
		page.Total = domain.CartTotal(items)
	}
	if submitToken, err := h.guard.Issue(ctx, sessionIDFromContext(r.Context())); err == nil {
		page.SubmitToken = submitToken
	}

	h.render.Render(w, http.StatusOK, "checkout", page)
}

// ShowCardPayment is only ever reached by direct navigation; the carried
// state arrives through SubmitCheckout. Without it the page is a dead end
// that points back at the cart.
func (h *Handlers) ShowCardPayment(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "payment_missing", h.basePage(w, r, "Card payment"))
}

// SubmitPayment is where a card order is actually created.
func (h *Handlers) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := identityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := h.callCtx(r)
	defer cancel()

	total, _ := strconv.ParseFloat(r.FormValue("total"), 64)
	pending := checkout.PendingPayment{
		City:   r.FormValue("city"),
		Street: r.FormValue("street"),
		Number: r.FormValue("number"),
		Total:  total,
	}
	if !pending.Complete() {
		h.render.Render(w, http.StatusOK, "payment_missing", h.basePage(w, r, "Card payment"))
		return
	}

	sid := sessionIDFromContext(r.Context())
	live, err := h.guard.Consume(ctx, sid, r.FormValue("submit_token"))
	if err != nil {
		log.Printf("consume submit token: %v", err)
		h.renderPayment(w, r, pending, "Something went wrong, please try again.")
		return
	}
	if !live {
		setFlash(w, "This order was already submitted.")
		http.Redirect(w, r, "/my-orders", http.StatusSeeOther)
		return
	}

	if _, err := h.backend.Checkout(ctx, id.Token); err != nil {
		log.Printf("card checkout: %v", err)
		h.renderPayment(w, r, pending, userMessage(err, "Payment failed, please try again."))
		return
	}

	setFlash(w, "Payment successful! Your order has been placed.")
	http.Redirect(w, r, "/my-orders", http.StatusSeeOther)
}

func (h *Handlers) renderPayment(w http.ResponseWriter, r *http.Request, pending checkout.PendingPayment, msg string) {
	ctx, cancel := h.callCtx(r)
	defer cancel()

	page := paymentPage{
		basePage: h.basePage(w, r, "Card payment"),
		Pending:  pending,
		Error:    msg,
	}
	if token, err := h.guard.Issue(ctx, sessionIDFromContext(r.Context())); err == nil {
		page.SubmitToken = token
	}

	h.render.Render(w, http.StatusOK, "payment", page)
}
