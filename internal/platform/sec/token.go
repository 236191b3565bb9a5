// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a hex-encoded random token of byteLength bytes.
//
// Used for refresh tokens. 32 bytes (256 bits) of entropy makes brute-force
// enumeration infeasible.
func GenerateSecureToken(byteLength int) (string, error) {
	raw := make([]byte, byteLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
//
// Refresh tokens are stored only as digests so a leaked session store cannot
// be replayed. SHA-256 (not a salted password hash) because the digest must
// be a deterministic lookup key and the input is already high-entropy.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
