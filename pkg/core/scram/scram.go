// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram defines the password hashing expectations of the
// identity use case. Passwords are received in plaintext over a secure
// channel, so no SCRAM conversation takes place; a hash is computed
// when an account is registered and verified when it signs in.
// The pkg/adapter/hash/scram package implements it.
package scram

// Hasher hashes passwords in the scram stored password format of one
// mechanism (e.g., SCRAM-SHA-256), deriving keys by PBKDF2 so that
// dictionary attacks are slowed down.
type Hasher interface {
	// Hash derives the stored keys of pass with the base64 encoded
	// salt (random if empty) and the iters count (at least 4096) and
	// returns them like this:
	//
	//	SCRAM-SHA-256${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	Hash(pass, salt string, iters int) (string, error)

	// Verify reports whether pass has produced hash. Since salt and
	// iters are read from hash, old hashes stay valid when the
	// configured iterations count changes. Malformed hashes, or hashes
	// of another mechanism, give an error.
	Verify(pass, hash string) (bool, error)
}
