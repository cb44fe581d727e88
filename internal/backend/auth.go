package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/solegrid/storefront/internal/domain"
)

// Login exchanges credentials for a bearer token. The backend speaks the
// OAuth2 password form and expects the email under "username".
func (c *Client) Login(ctx context.Context, email, password string) (domain.Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", "", strings.NewReader(form.Encode()))
	if err != nil {
		return domain.Token{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Token{}, fmt.Errorf("POST /auth/login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Token{}, ErrInvalidCredentials
	}

	var token domain.Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return domain.Token{}, fmt.Errorf("decode login response: %w", err)
	}
	return token, nil
}

// CurrentUser validates a stored token. Any non-success response means the
// token is no longer good.
func (c *Client) CurrentUser(ctx context.Context, token string) (domain.User, error) {
	var user domain.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", token, nil, &user); err != nil {
		if _, ok := err.(*APIError); ok {
			return domain.User{}, ErrNotAuthorized
		}
		return domain.User{}, err
	}
	return user, nil
}

type registerRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// Register creates an account. Validation failures come back as *APIError
// with the server's own message so the signup form can show it verbatim.
func (c *Client) Register(ctx context.Context, email, fullName, password string) (domain.User, error) {
	var user domain.User
	payload := registerRequest{Email: email, FullName: fullName, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", payload, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
