// Package fcrypt wraps age encryption for files kept alongside the
// configuration, such as the serials file.
package fcrypt

import (
	"fmt"
	"strings"

	"filippo.io/age"
)

// LoadPublicKey parses an age1... recipient.
func LoadPublicKey(key string) (*age.X25519Recipient, error) {
	ageRecipient, err := age.ParseX25519Recipient(strings.TrimSpace(key))
	if err != nil {
		return nil, fmt.Errorf("error parsing age public key='%s': %w", key, err)
	}

	return ageRecipient, nil
}

// LoadPrivateKey parses an AGE-SECRET-KEY-1... identity.
func LoadPrivateKey(key string) (*age.X25519Identity, error) {
	ageIdentity, err := age.ParseX25519Identity(strings.TrimSpace(key))
	if err != nil {
		return nil, fmt.Errorf("error parsing age private key: %w", err)
	}

	return ageIdentity, nil
}
