package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/solegrid/storefront/internal/domain"
)

type addCartItemRequest struct {
	SneakerID int64 `json:"sneaker_id"`
	Quantity  int   `json:"quantity"`
	Size      int   `json:"size,omitempty"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the full remote cart snapshot. The storefront never infers
// cart contents from earlier actions; this call is the only source of truth.
func (c *Client) GetCart(ctx context.Context, token string) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := c.doJSON(ctx, http.MethodGet, "/cart/", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddCartItem adds a sneaker to the cart. Size zero means a size-less add
// (listing pages add without a size, detail pages always send one).
func (c *Client) AddCartItem(ctx context.Context, token string, sneakerID int64, quantity, size int) (domain.CartItem, error) {
	var item domain.CartItem
	payload := addCartItemRequest{SneakerID: sneakerID, Quantity: quantity, Size: size}
	if err := c.doJSON(ctx, http.MethodPost, "/cart/", token, payload, &item); err != nil {
		return domain.CartItem{}, err
	}
	return item, nil
}

// UpdateCartItem patches a line's quantity and returns the server's version
// of the line, which is authoritative and may differ from the requested
// quantity (e.g. clamped to stock). A 204 response returns (nil, nil).
func (c *Client) UpdateCartItem(ctx context.Context, token string, itemID int64, quantity int) (*domain.CartItem, error) {
	path := fmt.Sprintf("/cart/%d", itemID)
	payload := updateCartItemRequest{Quantity: quantity}

	var item domain.CartItem
	err := c.doJSON(ctx, http.MethodPatch, path, token, payload, &item)
	if err != nil {
		return nil, err
	}
	if item.ID == 0 {
		// no-content response, nothing to adopt
		return nil, nil
	}
	return &item, nil
}

func (c *Client) RemoveCartItem(ctx context.Context, token string, itemID int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", itemID), token, nil, nil)
}

// ClearCart empties the whole cart. Checkout does not need it (the backend
// clears the cart itself when it creates the order); it exists for the bulk
// clear endpoint the backend exposes.
func (c *Client) ClearCart(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodDelete, "/cart/clear-after-checkout/all", token, nil, nil)
}
