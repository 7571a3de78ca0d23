// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"net/url"
	"regexp"

	"gopkg.in/yaml.v3"
)

const redacted = "REDACTED"

var passwordPair = regexp.MustCompile(`(password\s*=\s*)('[^']*'|\S+)`)

// Redacted returns a copy of c whose token secret and database
// password are replaced by a placeholder.
func (c Config) Redacted() Config {
	if c.Identity.TokenSecret != "" {
		c.Identity.TokenSecret = redacted
	}
	c.Database.URL = redactDatabaseURL(c.Database.URL)
	return c
}

func redactDatabaseURL(s string) string {
	u, err := url.Parse(s)
	if err == nil && u.Scheme != "" && u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), redacted)
		}
		return u.String()
	}
	return passwordPair.ReplaceAllString(s, "${1}"+redacted)
}

// Marshal encodes the redacted c in the yaml format which is accepted
// by Parse, with all defaults filled in.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c.Redacted())
	if err != nil {
		return nil, fmt.Errorf("marshalling yaml: %w", err)
	}
	return data, nil
}
