package web

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/solegrid/storefront/internal/domain"
)

type listingPage struct {
	basePage
	Heading  string
	Sneakers []domain.Sneaker
	LoadErr  bool
}

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.renderListing(w, r, "home", "", "Fresh drops")
}

func (h *Handlers) MenListing(w http.ResponseWriter, r *http.Request) {
	h.renderListing(w, r, "listing", "men", "Men's sneakers")
}

func (h *Handlers) WomenListing(w http.ResponseWriter, r *http.Request) {
	h.renderListing(w, r, "listing", "women", "Women's sneakers")
}

func (h *Handlers) renderListing(w http.ResponseWriter, r *http.Request, tmpl, gender, heading string) {
	ctx, cancel := h.callCtx(r)
	defer cancel()

	page := listingPage{basePage: h.basePage(w, r, heading), Heading: heading}

	sneakers, err := h.backend.ListSneakers(ctx, gender)
	if err != nil {
		log.Printf("list sneakers (gender=%q): %v", gender, err)
		page.LoadErr = true
		h.render.Render(w, http.StatusOK, tmpl, page)
		return
	}

	page.Sneakers = sneakers
	h.render.Render(w, http.StatusOK, tmpl, page)
}

type detailPage struct {
	basePage
	Sneaker domain.Sneaker
	Sizes   []int
}

// SneakerDetail renders one product. Any failure, network or not-found,
// becomes the not-found page rather than an error response.
func (h *Handlers) SneakerDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.callCtx(r)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.render.Render(w, http.StatusNotFound, "notfound", h.basePage(w, r, "Not found"))
		return
	}

	sneaker, err := h.backend.GetSneaker(ctx, id)
	if err != nil {
		log.Printf("get sneaker %d: %v", id, err)
		h.render.Render(w, http.StatusNotFound, "notfound", h.basePage(w, r, "Not found"))
		return
	}

	page := detailPage{
		basePage: h.basePage(w, r, sneaker.Name),
		Sneaker:  sneaker,
		Sizes:    sneaker.SizeRange(),
	}
	h.render.Render(w, http.StatusOK, "detail", page)
}

// AddToCart handles both entry points. Listing forms post no size and fall
// back to quantity one; detail forms declare source=detail and must carry a
// chosen size, enforced locally before any backend call.
func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.callCtx(r)
	defer cancel()

	backTo := r.FormValue("back")
	if backTo == "" {
		backTo = "/"
	}

	id, ok := identityFromContext(r.Context())
	if !ok {
		setFlash(w, "Please sign in to add items to your cart.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	sneakerID, err := strconv.ParseInt(r.FormValue("sneaker_id"), 10, 64)
	if err != nil || sneakerID <= 0 {
		setFlash(w, "Could not add to cart.")
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return
	}

	quantity := 1
	if q := r.FormValue("quantity"); q != "" {
		if parsed, errQ := strconv.Atoi(q); errQ == nil && parsed > 0 {
			quantity = parsed
		}
	}

	size, _ := strconv.Atoi(r.FormValue("size"))
	if r.FormValue("source") == "detail" && size == 0 {
		setFlash(w, "Please choose a size first.")
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return
	}

	if _, err := h.backend.AddCartItem(ctx, id.Token, sneakerID, quantity, size); err != nil {
		log.Printf("add to cart sneaker=%d: %v", sneakerID, err)
		setFlash(w, userMessage(err, "Could not add to cart."))
		http.Redirect(w, r, backTo, http.StatusSeeOther)
		return
	}

	if r.FormValue("source") == "detail" {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	setFlash(w, "Added to cart.")
	http.Redirect(w, r, backTo, http.StatusSeeOther)
}
