// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package identityuc

import (
	"errors"
	"fmt"
	"time"
)

// Hashing iterations bounds. RFC 5802 requires at least 4096
// iterations and RFC 7677 recommends 15000 or more.
const (
	MinHashIterations     = 4096
	DefaultHashIterations = 15000
)

// Option is a functional option for the identity use case.
type Option func(uc *UseCase) error

// WithHashIterations option configures an identity UseCase instance in
// order to hash new passwords with n iterations. Existing hashes keep
// their own iterations count. This option may be passed to New().
func WithHashIterations(n int) Option {
	return func(uc *UseCase) error {
		if n < MinHashIterations {
			return fmt.Errorf(
				"hash iterations (%d) is less than %d",
				n, MinHashIterations,
			)
		}
		if uc.hashIters != 0 {
			return errors.New("hash iterations is already configured")
		}
		uc.hashIters = n
		return nil
	}
}

// WithClock option configures the time source of an identity UseCase
// instance which is used for the accounts creation time and tokens
// issuing time.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock must be non-nil")
		}
		uc.now = now
		return nil
	}
}
