package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrNotFound           = errors.New("not found")
)

// APIError carries the backend's own message for a non-success status, e.g.
// "Only 3 items left in stock" on a cart update.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// errorDetail matches the backend's error envelope. detail is either a plain
// string or a list of validation objects with a msg field.
type errorDetail struct {
	Detail json.RawMessage `json:"detail"`
}

func errorFromResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrNotAuthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return &APIError{Status: resp.StatusCode, Message: detailMessage(resp)}
}

func detailMessage(resp *http.Response) string {
	var envelope errorDetail
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var msg string
	if err := json.Unmarshal(envelope.Detail, &msg); err == nil {
		return msg
	}

	var list []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &list); err == nil && len(list) > 0 {
		return list[0].Msg
	}
	return ""
}
