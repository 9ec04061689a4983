package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrBadBaseURL = errors.New("api: base url must be absolute")
)

// RequestError is a non-2xx answer from the Backend API.
type RequestError struct {
	Method string
	Path   string
	Status int
	Body   json.RawMessage
}

func (e *RequestError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, msg)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// Message is the server supplied "message" field, if any.
func (e *RequestError) Message() string {
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(e.Body, &body) != nil {
		return ""
	}
	return body.Message
}

// FieldErrors decodes a validation body of the form {"errors": {"field": ["msg"]}}.
func (e *RequestError) FieldErrors() map[string][]string {
	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	if json.Unmarshal(e.Body, &body) != nil {
		return nil
	}
	return body.Errors
}

func IsUnauthorized(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status == http.StatusUnauthorized
}
