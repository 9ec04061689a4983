package auth

import (
	"errors"
	"fmt"

	"github.com/ghaggin/internhub/internal/api"
)

const (
	msgLoginFailed        = "Login failed"
	msgRegistrationFailed = "Registration failed. Please try again."
)

var (
	ErrOperationInFlight = errors.New("another sign-in is already in progress")
	ErrNotAuthenticated  = errors.New("no active session")
	ErrRoleChanged       = errors.New("user role cannot change during a session")
	ErrNilUser           = errors.New("user is required")

	errMalformedAuth = errors.New("backend returned no user or token")
)

// RegistrationError is returned by Register when the backend refuses the
// account or its answer cannot be used.
type RegistrationError struct {
	Err error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registration rejected: %v", e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// Message prefers the server message, then the first email error.
func (e *RegistrationError) Message() string {
	var re *api.RequestError
	if !errors.As(e.Err, &re) {
		return msgRegistrationFailed
	}
	if msg := re.Message(); msg != "" {
		return msg
	}
	if errs := re.FieldErrors()["email"]; len(errs) > 0 {
		return errs[0]
	}
	return msgRegistrationFailed
}

func (e *RegistrationError) FieldErrors() map[string][]string {
	var re *api.RequestError
	if errors.As(e.Err, &re) {
		return re.FieldErrors()
	}
	return nil
}

func loginMessage(err error) string {
	var re *api.RequestError
	if errors.As(err, &re) {
		if msg := re.Message(); msg != "" {
			return msg
		}
	}
	return msgLoginFailed
}
