// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram hashes and verifies the passwords of local accounts
// with the SCRAM-SHA-1 or SCRAM-SHA-256 mechanisms (RFC 5802 and RFC
// 7677), using the github.com/xdg-go/scram module. Hashes are kept in
// the scram stored password format, which cannot be reversed:
//
//	SCRAM-SHA-256${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
package scram

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xdg-go/scram"
)

// MinIterations is the least accepted PBKDF2 iterations count.
const MinIterations = 4096

var b64 = base64.StdEncoding

// Mechanism implements the pkg/core/scram.Hasher interface for one
// underlying hash function.
type Mechanism struct {
	gen     scram.HashGeneratorFcn
	keySize int // bytes of a key, also used as the random salt size
	name    string
}

// SHA1 returns the SCRAM-SHA-1 mechanism.
func SHA1() *Mechanism {
	return &Mechanism{gen: scram.SHA1, keySize: 20, name: "SCRAM-SHA-1"}
}

// SHA256 returns the SCRAM-SHA-256 mechanism.
func SHA256() *Mechanism {
	return &Mechanism{gen: scram.SHA256, keySize: 32, name: "SCRAM-SHA-256"}
}

// Name returns the mechanism name, as it prefixes its hashes.
func (m *Mechanism) Name() string {
	return m.name
}

// stored is a parsed hash string.
type stored struct {
	mechanism string
	iters     int
	salt      string // base64 encoded
	storedKey []byte
	serverKey []byte
}

func (s stored) String() string {
	return fmt.Sprintf(
		"%s$%d:%s$%s:%s", s.mechanism, s.iters, s.salt,
		b64.EncodeToString(s.storedKey), b64.EncodeToString(s.serverKey),
	)
}

func parseStored(hash string) (s stored, err error) {
	mech, rest, ok1 := strings.Cut(hash, "$")
	params, keys, ok2 := strings.Cut(rest, "$")
	iters, salt, ok3 := strings.Cut(params, ":")
	storedKey, serverKey, ok4 := strings.Cut(keys, ":")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return s, errors.New("malformed scram hash")
	}
	s.mechanism, s.salt = mech, salt
	if s.iters, err = strconv.Atoi(iters); err != nil {
		return s, fmt.Errorf("parsing iters: %w", err)
	}
	if s.storedKey, err = b64.DecodeString(storedKey); err != nil {
		return s, fmt.Errorf("decoding storedKey: %w", err)
	}
	if s.serverKey, err = b64.DecodeString(serverKey); err != nil {
		return s, fmt.Errorf("decoding serverKey: %w", err)
	}
	return s, nil
}

// Hash returns the stored password format of pass. The salt must be
// base64 encoded; an empty salt is replaced by random bytes. The pass
// must be non-empty and is normalized by SASLprep (RFC 4013) first.
func (m *Mechanism) Hash(pass, salt string, iters int) (string, error) {
	switch {
	case pass == "":
		return "", errors.New("password must be non-empty")
	case iters < MinIterations:
		return "", fmt.Errorf("iters (%d) is less than %d", iters, MinIterations)
	}
	if salt == "" {
		raw := make([]byte, m.keySize)
		if _, err := rand.Read(raw); err != nil {
			return "", fmt.Errorf("creating random salt: %w", err)
		}
		salt = b64.EncodeToString(raw)
	}
	s, err := m.derive(pass, salt, iters)
	if err != nil {
		return "", err
	}
	return s.String(), nil
}

// derive computes the keys of pass with the salt and iters factors.
func (m *Mechanism) derive(pass, salt string, iters int) (stored, error) {
	rawSalt, err := b64.DecodeString(salt)
	if err != nil {
		return stored{}, fmt.Errorf("decoding base64 salt: %w", err)
	}
	// Only the credentials derivation of the client is used, so the
	// user names are placeholders.
	c, err := m.gen.NewClient("account", pass, "")
	if err != nil {
		return stored{}, fmt.Errorf("creating SCRAM client: %w", err)
	}
	sc := c.GetStoredCredentials(scram.KeyFactors{
		Salt:  string(rawSalt),
		Iters: iters,
	})
	return stored{
		mechanism: m.name,
		iters:     iters,
		salt:      salt,
		storedKey: sc.StoredKey,
		serverKey: sc.ServerKey,
	}, nil
}

// Verify reports whether pass produces the hash string. The hash must
// belong to m, so a SCRAM-SHA-1 hash cannot be verified by SHA256.
// Keys are compared in constant time.
func (m *Mechanism) Verify(pass, hash string) (bool, error) {
	want, err := parseStored(hash)
	if err != nil {
		return false, fmt.Errorf("parsing hash: %w", err)
	}
	if want.mechanism != m.name {
		return false, fmt.Errorf(
			"parsing hash: mechanism %q is not %q", want.mechanism, m.name,
		)
	}
	if pass == "" {
		return false, nil
	}
	got, err := m.derive(pass, want.salt, want.iters)
	if err != nil {
		return false, err
	}
	ok := subtle.ConstantTimeCompare(got.storedKey, want.storedKey) == 1
	ok = subtle.ConstantTimeCompare(got.serverKey, want.serverKey) == 1 && ok
	return ok, nil
}
