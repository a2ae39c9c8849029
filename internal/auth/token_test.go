// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mintToken builds a signed token. The signature key is irrelevant; the
// codec never verifies it.
func mintToken(t *testing.T, sub string, iat, exp time.Time) string {
	t.Helper()
	claims := rawClaims{
		Authorities: "ROLE_CUSTOMER",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    "deerbank",
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func fixedCodec(now time.Time) *Codec {
	c := NewCodec()
	c.now = func() time.Time { return now }
	return c
}

func TestDecode_ValidToken(t *testing.T) {
	now := time.Now()
	token := mintToken(t, "jdoe", now, now.Add(60*time.Second))

	claims, err := NewCodec().Decode(token)
	require.NoError(t, err)

	assert.Equal(t, "jdoe", claims.Subject)
	assert.Equal(t, "deerbank", claims.Issuer)
	assert.Equal(t, "ROLE_CUSTOMER", claims.Authorities)
	assert.Equal(t, now.Unix(), claims.IssuedAt)
	assert.Equal(t, now.Add(60*time.Second).Unix(), claims.ExpiresAt)
}

func TestDecode_Malformed(t *testing.T) {
	codec := NewCodec()

	malformed := []string{
		"",
		"justonepart",
		"two.parts",
		"four.whole.dot.parts",
		"aaa.!!!notbase64!!!.ccc",
		"aaa.bm90anNvbg.ccc", // payload decodes but is not JSON
	}

	for _, token := range malformed {
		_, err := codec.Decode(token)
		assert.ErrorIs(t, err, ErrMalformedToken, "token %q", token)
		assert.Zero(t, codec.SecondsUntilExpiry(token), "token %q", token)
		assert.True(t, codec.IsExpired(token), "token %q", token)
	}
}

func TestSecondsUntilExpiry_Future(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	token := mintToken(t, "jdoe", now, now.Add(45*time.Second))

	codec := fixedCodec(now)
	assert.Equal(t, int64(45), codec.SecondsUntilExpiry(token))
	assert.False(t, codec.IsExpired(token))
}

func TestSecondsUntilExpiry_Past(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	token := mintToken(t, "jdoe", now.Add(-120*time.Second), now.Add(-60*time.Second))

	codec := fixedCodec(now)
	assert.Zero(t, codec.SecondsUntilExpiry(token))
	assert.True(t, codec.IsExpired(token))
}

func TestSecondsUntilExpiry_ExactBoundary(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	token := mintToken(t, "jdoe", now.Add(-60*time.Second), now)

	// exp == now reads as expired, not as one last valid second
	codec := fixedCodec(now)
	assert.Zero(t, codec.SecondsUntilExpiry(token))
	assert.True(t, codec.IsExpired(token))
}

func TestSecondsUntilExpiry_MissingExp(t *testing.T) {
	// No exp claim at all: fail-closed, treated as already expired
	claims := jwt.RegisteredClaims{Subject: "jdoe"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)

	codec := NewCodec()
	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Zero(t, decoded.ExpiresAt)
	assert.Zero(t, codec.SecondsUntilExpiry(token))
	assert.True(t, codec.IsExpired(token))
}

func TestDecode_IgnoresSignature(t *testing.T) {
	now := time.Now()
	token := mintToken(t, "jdoe", now, now.Add(time.Minute))

	// Corrupt the signature segment; decode must still succeed
	tampered := token[:len(token)-4] + "AAAA"
	claims, err := NewCodec().Decode(tampered)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", claims.Subject)
}
