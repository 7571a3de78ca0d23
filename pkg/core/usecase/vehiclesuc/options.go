// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vehiclesuc

import (
	"errors"
	"fmt"
	"time"

	"github.com/goride/goride/pkg/core/model"
)

// CatalogOption is a functional option for the CatalogStore.
type CatalogOption func(s *CatalogStore) error

// WithInitialQuery option configures a CatalogStore instance in order
// to start with the q query instead of an empty one. The q query is
// not fetched until the first refetch. This option may be passed to
// the NewCatalogStore() function.
func WithInitialQuery(q model.FilterState) CatalogOption {
	return func(s *CatalogStore) error {
		if err := validateQuery(q); err != nil {
			return err
		}
		s.query = q
		return nil
	}
}

// WithFetchTimeout option configures a CatalogStore instance in order
// to give up each vehicles listing call after the given timeout.
func WithFetchTimeout(timeout time.Duration) CatalogOption {
	return func(s *CatalogStore) error {
		if d := int64(timeout); d <= 0 {
			return fmt.Errorf("timeout (%d) is not positive", d)
		}
		if s.fetchTimeout != 0 {
			return errors.New("timeout is already configured")
		}
		s.fetchTimeout = timeout
		return nil
	}
}
