// Package fieldcrypt seals individual text columns before they are written and
// opens them again on read.
package fieldcrypt

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

const prefix = "enc:v1:"

var ErrMalformedCiphertext = errors.New("malformed field ciphertext")

// Codec encrypts with XChaCha20-Poly1305. A Codec built without a key passes
// values through unchanged, and values written before encryption was enabled
// are returned as they are.
type Codec struct {
	aead cipher.AEAD
}

func NewCodec(key []byte) (*Codec, error) {
	if len(key) == 0 {
		return &Codec{}, nil
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create field cipher: %w", err)
	}
	return &Codec{aead: aead}, nil
}

func (c *Codec) Enabled() bool {
	return c.aead != nil
}

func (c *Codec) EncryptField(plaintext string) (string, error) {
	if c.aead == nil || plaintext == "" {
		return plaintext, nil
	}

	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return prefix + base64.RawStdEncoding.EncodeToString(sealed), nil
}

func (c *Codec) DecryptField(value string) (string, error) {
	if !strings.HasPrefix(value, prefix) {
		return value, nil
	}
	if c.aead == nil {
		return "", errors.New("encrypted field found but no field key is configured")
	}

	raw, err := base64.RawStdEncoding.DecodeString(strings.TrimPrefix(value, prefix))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	if len(raw) < c.aead.NonceSize()+c.aead.Overhead() {
		return "", ErrMalformedCiphertext
	}

	nonce, sealed := raw[:c.aead.NonceSize()], raw[c.aead.NonceSize():]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}
	return string(plain), nil
}
