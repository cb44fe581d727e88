package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SubmitGuard hands out one-shot tokens for checkout and payment forms.
// Each rendered form embeds a fresh token; consuming it is atomic, so a
// double click or a back-navigation resubmit finds the token already gone
// and never reaches the backend a second time.
type SubmitGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSubmitGuard(client *redis.Client) *SubmitGuard {
	return &SubmitGuard{
		client: client,
		ttl:    15 * time.Minute,
	}
}

func (g *SubmitGuard) Issue(ctx context.Context, sid string) (string, error) {
	token := uuid.NewString()
	if err := g.client.Set(ctx, submitKey(sid, token), "1", g.ttl).Err(); err != nil {
		return "", fmt.Errorf("redis set failed: %w", err)
	}
	return token, nil
}

// Consume removes the token and reports whether it was still live. GETDEL
// keeps check-and-delete a single round trip.
func (g *SubmitGuard) Consume(ctx context.Context, sid, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	err := g.client.GetDel(ctx, submitKey(sid, token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis getdel failed: %w", err)
	}
	return true, nil
}

func submitKey(sid, token string) string {
	return fmt.Sprintf("submit:%s:%s", sid, token)
}
