package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewToken generates an opaque session token: "sess_" + 64 hex characters.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return fmt.Sprintf("sess_%s", hex.EncodeToString(b)), nil
}
