// Package cryptosuite provides a symmetric encryption suite as an
// alternative to the core's per-block RSA-OAEP scheme. It is never
// invoked by pathoram.Client's default path — exactly as the reference
// implementation exposes a symmetric suite it never calls from the
// core protocol — but is available to callers who want to encrypt
// payloads under a shared secret instead of a key pair, the way
// rickcollette-kayveedb's BTree takes an explicit key and nonce from
// its caller rather than owning one internally.
package cryptosuite

import (
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

// KeySize and NonceSize match golang.org/x/crypto/nacl/secretbox.
const (
	KeySize   = 32
	NonceSize = 24
)

var errCiphertextTooShort = errors.New("cryptosuite: ciphertext shorter than nonce")

// GenerateKey returns a fresh random 32-byte secretbox key.
func GenerateKey() (*[KeySize]byte, error) {
	var key [KeySize]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return nil, err
	}
	return &key, nil
}

// Seal encrypts message under key with a freshly drawn random nonce,
// prepending the nonce to the returned ciphertext.
func Seal(key *[KeySize]byte, message []byte) ([]byte, error) {
	var nonce [NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, err
	}
	return secretbox.Seal(nonce[:], message, &nonce, key), nil
}

// Open decrypts a ciphertext produced by Seal.
func Open(key *[KeySize]byte, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < NonceSize {
		return nil, errCiphertextTooShort
	}
	var nonce [NonceSize]byte
	copy(nonce[:], ciphertext[:NonceSize])
	out, ok := secretbox.Open(nil, ciphertext[NonceSize:], &nonce, key)
	if !ok {
		return nil, errors.New("cryptosuite: decryption failed")
	}
	return out, nil
}
