package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/chacha20poly1305"
)

// ErrInvalidToken is returned when a state token is malformed, truncated,
// or fails authentication. Callers must treat any token failing with this
// error as untrusted input, never as a recoverable identity.
var ErrInvalidToken = errors.New("invalid state token")

// StateTokenCodec encrypts a Discord user id into an opaque, URL-safe
// string used as the OAuth state parameter, and recovers it when the
// authorization redirect returns. The scheme is authenticated: a tampered
// token fails to decode instead of decrypting to garbage.
//
// The codec enforces no expiry and no single-use semantics. Rotating the
// key invalidates every outstanding token.
type StateTokenCodec struct {
	key []byte
}

func NewStateTokenCodec(key []byte) (*StateTokenCodec, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, errors.New("state token key must be 32 bytes")
	}

	codec := &StateTokenCodec{key: make([]byte, len(key))}
	copy(codec.key, key)
	return codec, nil
}

func (c *StateTokenCodec) Encode(userID string) (string, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aead.Seal(nonce, nonce, []byte(userID), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (c *StateTokenCodec) Decode(token string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", ErrInvalidToken
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", err
	}

	if len(raw) < aead.NonceSize() {
		return "", ErrInvalidToken
	}

	plaintext, err := aead.Open(nil, raw[:aead.NonceSize()], raw[aead.NonceSize():], nil)
	if err != nil {
		return "", ErrInvalidToken
	}

	return string(plaintext), nil
}
