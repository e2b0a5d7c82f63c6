// Package auth implements the bridge's optional client authentication: a
// nonce handshake proving knowledge of a pre-shared key, followed by a
// ChaCha20-Poly1305 encrypted connection. Overlay clients on other machines
// get confidentiality for what is, after all, a keystroke stream.
package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"errors"

	"golang.org/x/crypto/pbkdf2"
)

const (
	AutoGenKeyLength = 16
	Base62Chars      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	PBKDF2Iterations = 100000
	PBKDF2Salt       = "YXA-Key-v1"

	authContext    = "YXA-Auth-v1"
	sessionContext = "YXA-Session-v1"
)

// GenerateKey creates a random 16-char base62 key.
func GenerateKey() (string, error) {
	randomBytes := make([]byte, AutoGenKeyLength)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}

	key := make([]byte, AutoGenKeyLength)
	for i, b := range randomBytes {
		key[i] = Base62Chars[int(b)%62]
	}
	return string(key), nil
}

// DeriveKey stretches the pre-shared key to 32 bytes with PBKDF2.
func DeriveKey(password string) ([]byte, error) {
	if password == "" {
		return nil, errors.New("key cannot be empty")
	}
	return pbkdf2.Key(
		[]byte(password),
		[]byte(PBKDF2Salt),
		PBKDF2Iterations,
		32,
		sha256.New,
	), nil
}

// Proof computes the client's possession proof over both nonces.
func Proof(key, clientNonce, serverNonce []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(authContext))
	mac.Write(clientNonce)
	mac.Write(serverNonce)
	return mac.Sum(nil)
}

// DeriveSessionKey creates the per-connection key from the stretched key and
// both nonces. Plain SHA mixing keeps client implementations simple.
func DeriveSessionKey(key, serverNonce, clientNonce []byte) []byte {
	h := sha256.New()
	h.Write(key)
	h.Write(serverNonce)
	h.Write(clientNonce)
	h.Write([]byte(sessionContext))
	return h.Sum(nil)
}
