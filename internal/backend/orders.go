package backend

import (
	"context"
	"net/http"

	"github.com/solegrid/storefront/internal/domain"
)

// Checkout asks the backend to turn the current cart into an order. The
// backend snapshots the cart, decrements stock and clears the cart in the
// same transaction; the storefront never performs any of those steps itself.
func (c *Client) Checkout(ctx context.Context, token string) (domain.Order, error) {
	var order domain.Order
	if err := c.doJSON(ctx, http.MethodPost, "/orders/checkout", token, nil, &order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (c *Client) ListOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.doJSON(ctx, http.MethodGet, "/orders/", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
