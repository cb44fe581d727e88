package web

import (
	"errors"

	"github.com/solegrid/storefront/internal/backend"
)

// userMessage picks what the visitor sees for a failed backend call: the
// server's own message when there is one, the fallback otherwise. Transport
// details never reach the page.
func userMessage(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, backend.ErrNotAuthorized) {
		return "Please sign in."
	}
	return fallback
}
