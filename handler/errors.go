package handler

import (
	"errors"
	"net/http"
)

var (
	ErrNilResponse     = errors.New("handler returned nil response")
	ErrNotDataStar     = errors.New("request is not a datastar request")
	ErrInvalidSignals  = errors.New("invalid datastar signals")
	ErrSignalsEncoding = errors.New("failed to encode signals")
)

// HTTPError is an error with an HTTP status code and a message safe to show
// to the client.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

func (e HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e HTTPError) Unwrap() error { return e.Err }

func (e HTTPError) Status() int { return e.Code }

// StatusError is implemented by errors that map to an HTTP status.
type StatusError interface {
	error
	Status() int
}

// NewHTTPError builds an HTTPError; an empty message falls back to the
// status text.
func NewHTTPError(code int, message string, cause error) HTTPError {
	if message == "" {
		message = http.StatusText(code)
	}
	return HTTPError{Code: code, Message: message, Err: cause}
}

func BadRequest(cause error) HTTPError {
	return NewHTTPError(http.StatusBadRequest, "", cause)
}

func NotFound(cause error) HTTPError {
	return NewHTTPError(http.StatusNotFound, "", cause)
}

// StatusOf returns the status carried by err, or 500.
func StatusOf(err error) int {
	var se StatusError
	if errors.As(err, &se) {
		return se.Status()
	}
	return http.StatusInternalServerError
}
