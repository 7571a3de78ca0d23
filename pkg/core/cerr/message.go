// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import "errors"

// ServerMessage is an error message which is taken from the payload of
// a failed server response as is. Adapters wrap it (usually by one of
// the status-specific constructors), so use cases can prefer it over
// their generic messages when reporting a failure to users.
type ServerMessage string

// Error implements the error interface.
func (sm ServerMessage) Error() string {
	return string(sm)
}

// Message returns the ServerMessage of the err chain if there is one,
// otherwise, the fallback message is returned.
func Message(err error, fallback string) string {
	var sm ServerMessage
	if errors.As(err, &sm) && sm != "" {
		return string(sm)
	}
	return fallback
}

// Rephrase converts err into a user-facing *Error. Its message is
// chosen by the Message function and its status code is taken from
// err (see StatusCode). The err itself is kept in the chain, so it is
// still possible to inspect it with errors.Is and errors.As.
func Rephrase(err error, fallback string) *Error {
	return &Error{
		Err: &rephrased{
			msg:   Message(err, fallback),
			cause: err,
		},
		HTTPStatusCode: StatusCode(err),
	}
}

type rephrased struct {
	msg   string
	cause error
}

func (r *rephrased) Error() string {
	return r.msg
}

func (r *rephrased) Unwrap() error {
	return r.cause
}
