// Package cerr defines the errors which may cross the use cases layer
// boundary. Each Error carries an HTTP status code which describes its
// class, so adapters can report it without knowing the use case which
// has produced it:
//
//	BadRequest      local validation failures (ValidationError)
//	Authentication  no signed-in identity (Unauthenticated)
//	Authorization   ownership check failures (Unauthorized)
//	NotFound        missing resources on the server
//	Conflict        duplicate or concurrent submissions
//	Upstream        any other network or server failure
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func Authentication(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusUnauthorized}
}

func Authorization(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusForbidden}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}

func Upstream(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadGateway}
}

// StatusCode returns the HTTP status code of the outermost *Error in
// the err chain, or http.StatusBadGateway if err carries no *Error.
func StatusCode(err error) int {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.HTTPStatusCode
	}
	return http.StatusBadGateway
}

// Is reports whether err has an *Error with the given status code.
func Is(err error, code int) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.HTTPStatusCode == code
}
