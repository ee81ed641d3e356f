// internal/openlist/errors.go
package openlist

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized indicates the server rejected the credentials or token.
	ErrUnauthorized = errors.New("unauthorized: invalid credentials or expired token")

	// ErrNotLoggedIn indicates a call that needs a token was made without one.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrNoToken indicates no token has been saved yet.
	ErrNoToken = errors.New("no saved token")
)

// APIError is a response whose envelope code is not 200.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openlist error %d: %s", e.Code, e.Message)
}

// Is lets errors.Is(err, ErrUnauthorized) match a 401 envelope.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Code == 401
}
