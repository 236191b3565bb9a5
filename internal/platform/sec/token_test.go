// Copyright (c) 2026 GDLists. All rights reserved.
// Author: dev@gdlists.gg

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdlists/demonlist/internal/platform/sec"
)

/*
TestGenerateSecureToken verifies token length and uniqueness.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	// 32 bytes hex-encoded
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}

/*
TestHashToken verifies the hash is deterministic and never the input.
*/
func TestHashToken(t *testing.T) {
	token := "some-refresh-token"

	hash := sec.HashToken(token)

	assert.NotEmpty(t, hash)
	assert.NotEqual(t, token, hash)
	assert.Equal(t, hash, sec.HashToken(token))
	assert.NotEqual(t, hash, sec.HashToken("other-token"))
}
