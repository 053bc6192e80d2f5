// Package cryptox seals document bytes at rest with AES-256-GCM under a key
// derived from a server secret.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"

	"golang.org/x/crypto/argon2"
)

// KeySize is the AES-256 key length.
const KeySize = 32

var ErrKeySize = errors.New("cryptox: key must be 32 bytes")

// DeriveKey stretches secret into an AES-256 key with Argon2id. The same
// secret and salt always give the same key.
func DeriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, KeySize)
}

// Sealer encrypts and decrypts blobs with a fixed key. Safe for concurrent
// use.
type Sealer struct {
	aead cipher.AEAD
}

func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != KeySize {
		return nil, ErrKeySize
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts plaintext under a fresh random nonce. The nonce is returned
// separately and must be kept alongside the ciphertext.
func (s *Sealer) Seal(plaintext []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}
	return s.aead.Seal(nil, nonce, plaintext, nil), nonce, nil
}

// Open reverses Seal. Tampered data or the wrong key fail authentication.
func (s *Sealer) Open(ciphertext, nonce []byte) ([]byte, error) {
	return s.aead.Open(nil, nonce, ciphertext, nil)
}
