package app

import (
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateVAPIDPublicKey creates a P-256 key pair and returns the public key in
// the uncompressed, URL-safe base64 form browsers expect as applicationServerKey.
// The private half is discarded since this server never sends pushes.
func GenerateVAPIDPublicKey() (string, error) {
	key, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return "", fmt.Errorf("generate vapid key: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(key.PublicKey().Bytes()), nil
}
