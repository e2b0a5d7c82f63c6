package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"fmt"
	"io"
	"net"
)

// Handshake wire sequence:
//
//	client -> "YXA1\x00" + client_nonce[32]
//	server -> "OK\x00"   + server_nonce[32]
//	client -> proof[32]
//
// then both sides switch to the encrypted connection.
const (
	HandshakeMagic = "YXA1\x00"
	NonceSize      = 32
)

// ServerHandshake authenticates an inbound client against the pre-shared key
// and returns the encrypted connection.
func ServerHandshake(conn net.Conn, key string) (net.Conn, error) {
	derived, err := DeriveKey(key)
	if err != nil {
		return nil, err
	}

	magic := make([]byte, len(HandshakeMagic))
	if _, err := io.ReadFull(conn, magic); err != nil {
		return nil, fmt.Errorf("read handshake magic: %w", err)
	}
	if string(magic) != HandshakeMagic {
		return nil, fmt.Errorf("bad handshake magic")
	}

	clientNonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(conn, clientNonce); err != nil {
		return nil, fmt.Errorf("read client nonce: %w", err)
	}

	serverNonce := make([]byte, NonceSize)
	if _, err := rand.Read(serverNonce); err != nil {
		return nil, fmt.Errorf("generate server nonce: %w", err)
	}
	if _, err := conn.Write(append([]byte("OK\x00"), serverNonce...)); err != nil {
		return nil, fmt.Errorf("write server handshake: %w", err)
	}

	proof := make([]byte, 32)
	if _, err := io.ReadFull(conn, proof); err != nil {
		return nil, fmt.Errorf("read proof: %w", err)
	}
	if !hmac.Equal(proof, Proof(derived, clientNonce, serverNonce)) {
		return nil, fmt.Errorf("client proof mismatch")
	}

	return WrapConn(conn, DeriveSessionKey(derived, serverNonce, clientNonce))
}

// ClientHandshake authenticates to a bridge and returns the encrypted
// connection.
func ClientHandshake(conn net.Conn, key string) (net.Conn, error) {
	derived, err := DeriveKey(key)
	if err != nil {
		return nil, err
	}

	clientNonce := make([]byte, NonceSize)
	if _, err := rand.Read(clientNonce); err != nil {
		return nil, fmt.Errorf("generate client nonce: %w", err)
	}
	if _, err := conn.Write(append([]byte(HandshakeMagic), clientNonce...)); err != nil {
		return nil, fmt.Errorf("write handshake: %w", err)
	}

	response := make([]byte, 3+NonceSize)
	if _, err := io.ReadFull(conn, response); err != nil {
		return nil, fmt.Errorf("read server handshake: %w", err)
	}
	if string(response[:3]) != "OK\x00" {
		return nil, fmt.Errorf("server rejected handshake")
	}
	serverNonce := response[3:]

	if _, err := conn.Write(Proof(derived, clientNonce, serverNonce)); err != nil {
		return nil, fmt.Errorf("write proof: %w", err)
	}

	return WrapConn(conn, DeriveSessionKey(derived, serverNonce, clientNonce))
}
