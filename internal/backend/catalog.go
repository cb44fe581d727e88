package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/solegrid/storefront/internal/domain"
)

// ListSneakers fetches the catalog, optionally filtered by gender. An empty
// gender returns the unfiltered collection.
func (c *Client) ListSneakers(ctx context.Context, gender string) ([]domain.Sneaker, error) {
	path := "/sneakers"
	if gender != "" {
		path += "?gender=" + url.QueryEscape(gender)
	}

	var sneakers []domain.Sneaker
	if err := c.doJSON(ctx, http.MethodGet, path, "", nil, &sneakers); err != nil {
		return nil, err
	}
	return sneakers, nil
}

func (c *Client) GetSneaker(ctx context.Context, id int64) (domain.Sneaker, error) {
	var sneaker domain.Sneaker
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/sneakers/%d", id), "", nil, &sneaker); err != nil {
		return domain.Sneaker{}, err
	}
	return sneaker, nil
}
