package session

import (
	"context"
	"errors"
)

// Session is the only state the storefront persists for a visitor: the
// bearer token issued at login and the email shown in the navbar.
type Session struct {
	Token string
	Email string
}

type Store interface {
	Save(ctx context.Context, sid string, s Session) error
	Load(ctx context.Context, sid string) (Session, error)
	Delete(ctx context.Context, sid string) error
}

var ErrNoSession = errors.New("no session")
