package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	k1 := DeriveKey([]byte("secret"), []byte("salt-1"))
	k2 := DeriveKey([]byte("secret"), []byte("salt-1"))
	k3 := DeriveKey([]byte("secret"), []byte("salt-2"))

	assert.Len(t, k1, KeySize)
	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}

func TestSealer_RoundTrip(t *testing.T) {
	s, err := NewSealer(DeriveKey([]byte("secret"), []byte("salt")))
	require.NoError(t, err)

	plain := []byte("%PDF-1.4 deed of ownership")
	ct, nonce, err := s.Seal(plain)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(ct, plain))

	got, err := s.Open(ct, nonce)
	require.NoError(t, err)
	assert.Equal(t, plain, got)

	// fresh nonce per call
	_, nonce2, err := s.Seal(plain)
	require.NoError(t, err)
	assert.NotEqual(t, nonce, nonce2)
}

func TestSealer_WrongKeyOrTamperFails(t *testing.T) {
	a, err := NewSealer(DeriveKey([]byte("a"), []byte("salt")))
	require.NoError(t, err)
	b, err := NewSealer(DeriveKey([]byte("b"), []byte("salt")))
	require.NoError(t, err)

	ct, nonce, err := a.Seal([]byte("data"))
	require.NoError(t, err)

	_, err = b.Open(ct, nonce)
	assert.Error(t, err)

	ct[0] ^= 0xff
	_, err = a.Open(ct, nonce)
	assert.Error(t, err)
}

func TestNewSealer_BadKey(t *testing.T) {
	_, err := NewSealer([]byte("short"))
	assert.ErrorIs(t, err, ErrKeySize)
}
