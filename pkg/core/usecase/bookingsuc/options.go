// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package bookingsuc

import (
	"errors"
	"fmt"
	"time"
)

// Option is a functional option for the bookings use case.
type Option func(uc *UseCase) error

// WithSubmitTimeout option configures a bookings UseCase instance in
// order to give up a submission if the bookings API does not respond
// within the given timeout. This option may be passed to New().
func WithSubmitTimeout(timeout time.Duration) Option {
	return func(uc *UseCase) error {
		if d := int64(timeout); d <= 0 {
			return fmt.Errorf("timeout (%d) is not positive", d)
		}
		if uc.submitTimeout != 0 {
			return errors.New("timeout is already configured")
		}
		uc.submitTimeout = timeout
		return nil
	}
}
