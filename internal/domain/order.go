package domain

import (
	"fmt"
	"strings"
	"time"
)

// Order is immutable from the storefront's point of view once the backend
// has created it.
type Order struct {
	ID        int64       `json:"id"`
	Total     float64     `json:"total"`
	CreatedAt Timestamp   `json:"created_at"`
	Items     []OrderItem `json:"items"`
}

// Timestamp accepts both RFC 3339 and the backend's naive datetime strings
// (no timezone suffix).
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", raw)
}

type OrderItem struct {
	ID       int64   `json:"id"`
	Quantity int     `json:"quantity"`
	Size     int     `json:"size,omitempty"`
	Sneaker  Sneaker `json:"sneaker"`
}

func (i OrderItem) LineTotal() float64 {
	return i.Sneaker.Price * float64(i.Quantity)
}
