package web

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/solegrid/storefront/internal/session"
)

type ctxKey int

const (
	sidKey ctxKey = iota
	identityKey
)

// SessionCookie names the cookie carrying the opaque browser session id.
const SessionCookie = "storefront_sid"

// Identity is the restored login state for one request: the bearer token
// used for backend calls and the email shown in the navbar.
type Identity struct {
	Email string
	Token string
}

// WithSession assigns every visitor a session id cookie and, when stored
// credentials exist, validates them against the backend before adopting the
// identity. A rejected token is discarded silently and the request proceeds
// anonymous; the visitor is never shown an error for it.
func (h *Handlers) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := h.ensureSessionID(w, r)
		ctx := context.WithValue(r.Context(), sidKey, sid)

		s, err := h.sessions.Load(ctx, sid)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				log.Printf("session load error: %v", err)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		if _, err := h.backend.CurrentUser(ctx, s.Token); err != nil {
			log.Printf("stored token rejected, clearing session: %v", err)
			if errDel := h.sessions.Delete(ctx, sid); errDel != nil {
				log.Printf("session delete error: %v", errDel)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		ctx = context.WithValue(ctx, identityKey, Identity{Email: s.Email, Token: s.Token})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handlers) ensureSessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sid := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

func sessionIDFromContext(ctx context.Context) string {
	if sid, ok := ctx.Value(sidKey).(string); ok {
		return sid
	}
	return ""
}

func identityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
