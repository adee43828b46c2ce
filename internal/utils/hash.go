// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"hash"
	"strings"
	"sync"
)

// Signer appends and checks HMAC-SHA256 signatures on short string values
// such as session cookie ids.
//
// Hash instances are kept in a sync.Pool to avoid an allocation per
// request on the cookie path.
type Signer struct {
	hasherPool sync.Pool
}

// NewSigner returns a Signer keyed with key.
//
// Example usage:
//
//	signer := utils.NewSigner(sessionKey)
//	cookie.Value = signer.Sign(sessionID)
func NewSigner(key []byte) *Signer {
	key = append([]byte(nil), key...)
	return &Signer{
		hasherPool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, key)
			},
		},
	}
}

// Sign returns value followed by a dot and the base64url encoded
// HMAC-SHA256 of value.
func (s *Signer) Sign(value string) string {
	return value + "." + base64.RawURLEncoding.EncodeToString(s.mac([]byte(value)))
}

// Verify checks a value produced by Sign and returns the original value.
//
// Returns:
//
//	string - the unsigned value, empty when ok is false
//	bool   - false if signed is malformed or the signature does not match
func (s *Signer) Verify(signed string) (string, bool) {
	i := strings.LastIndexByte(signed, '.')
	if i < 0 {
		return "", false
	}
	value, sig := signed[:i], signed[i+1:]

	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(got, s.mac([]byte(value))) {
		return "", false
	}
	return value, true
}

// mac computes the HMAC-SHA256 digest of data using a pooled hasher.
//
// Behavior:
//   - Retrieves a hash.Hash instance from the pool
//   - Resets it, writes the data, computes the sum
//   - Resets again and returns it to the pool
func (s *Signer) mac(data []byte) []byte {
	h := s.hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	s.hasherPool.Put(h)

	return sum
}
