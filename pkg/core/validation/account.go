// Copyright (c) 2026 The GoRide Authors
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the minimum number of characters of a password.
const MinPasswordLength = 6

var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email checks the local@domain.tld shape of s: exactly one @ sign, a
// non-empty local part, and a domain part containing a dot. It does
// not guarantee deliverability.
func Email(s string) bool {
	return emailRE.MatchString(s)
}

// PasswordResult is the outcome of a Password check. IsValid is true
// iff all other checks hold.
type PasswordResult struct {
	IsValid      bool `json:"isValid"`
	HasUpperCase bool `json:"hasUpperCase"`
	HasLowerCase bool `json:"hasLowerCase"`
	HasMinLength bool `json:"hasMinLength"`
}

// Password checks that s has an upper case and a lower case ASCII
// letter and at least MinPasswordLength characters.
func Password(s string) PasswordResult {
	r := PasswordResult{
		HasUpperCase: strings.ContainsFunc(s, func(c rune) bool {
			return c >= 'A' && c <= 'Z'
		}),
		HasLowerCase: strings.ContainsFunc(s, func(c rune) bool {
			return c >= 'a' && c <= 'z'
		}),
		HasMinLength: utf8.RuneCountInString(s) >= MinPasswordLength,
	}
	r.IsValid = r.HasUpperCase && r.HasLowerCase && r.HasMinLength
	return r
}
