package web

import (
	"log"
	"net/http"

	"github.com/solegrid/storefront/internal/session"
)

type authPage struct {
	basePage
	Error string

	// submitted values echoed back so a failed form keeps its input
	FormEmail    string
	FormFullName string
}

func (h *Handlers) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "login", authPage{basePage: h.basePage(w, r, "Sign in")})
}

// SubmitLogin exchanges credentials for a token and persists the session.
// The failure message is deliberately generic.
func (h *Handlers) SubmitLogin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.callCtx(r)
	defer cancel()

	email := r.FormValue("email")
	password := r.FormValue("password")

	token, err := h.backend.Login(ctx, email, password)
	if err != nil {
		log.Printf("login failed for %s: %v", email, err)
		h.render.Render(w, http.StatusOK, "login", authPage{
			basePage:  h.basePage(w, r, "Sign in"),
			Error:     "Email or password is incorrect.",
			FormEmail: email,
		})
		return
	}

	sid := sessionIDFromContext(r.Context())
	if err := h.sessions.Save(ctx, sid, session.Session{Token: token.AccessToken, Email: email}); err != nil {
		log.Printf("save session: %v", err)
		h.render.Render(w, http.StatusOK, "login", authPage{
			basePage:  h.basePage(w, r, "Sign in"),
			Error:     "Something went wrong, please try again.",
			FormEmail: email,
		})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) ShowSignup(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "signup", authPage{basePage: h.basePage(w, r, "Create account")})
}

// SubmitSignup registers an account and sends the visitor to the login page.
// Server validation messages are shown verbatim.
func (h *Handlers) SubmitSignup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.callCtx(r)
	defer cancel()

	email := r.FormValue("email")
	fullName := r.FormValue("full_name")
	password := r.FormValue("password")

	page := authPage{
		basePage:     h.basePage(w, r, "Create account"),
		FormEmail:    email,
		FormFullName: fullName,
	}

	if email == "" || fullName == "" || password == "" {
		page.Error = "Please fill in all fields."
		h.render.Render(w, http.StatusOK, "signup", page)
		return
	}

	if _, err := h.backend.Register(ctx, email, fullName, password); err != nil {
		log.Printf("signup failed for %s: %v", email, err)
		page.Error = userMessage(err, "Could not create account.")
		h.render.Render(w, http.StatusOK, "signup", page)
		return
	}

	setFlash(w, "Account created, you can sign in now.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout clears the stored credentials and lands on the home page.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.callCtx(r)
	defer cancel()

	sid := sessionIDFromContext(r.Context())
	if err := h.sessions.Delete(ctx, sid); err != nil {
		log.Printf("delete session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
