package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const wrapInfo = "cognitia/video-key-wrap/v1"

// Keyring generates fresh per-clip data keys and wraps them under a key
// derived from the master secret. Metadata rows store only the wrapped form,
// so compromise of the metadata store alone does not expose content.
type Keyring struct {
	wrapKey []byte
}

// NewKeyring derives the wrapping key from the configured master secret via
// HKDF-SHA256.
func NewKeyring(masterSecret string) (*Keyring, error) {
	if len(masterSecret) < KeySize {
		return nil, fmt.Errorf("master secret must be at least %d bytes", KeySize)
	}

	wrapKey := make([]byte, KeySize)
	kdf := hkdf.New(sha256.New, []byte(masterSecret), nil, []byte(wrapInfo))
	if _, err := io.ReadFull(kdf, wrapKey); err != nil {
		return nil, fmt.Errorf("derive wrapping key: %w", err)
	}

	return &Keyring{wrapKey: wrapKey}, nil
}

// NewDataKey returns a fresh high-entropy data key together with its wrapped,
// storable representation.
func (k *Keyring) NewDataKey() (key []byte, wrapped string, err error) {
	key = make([]byte, KeySize)
	if _, err = rand.Read(key); err != nil {
		return nil, "", fmt.Errorf("generate data key: %w", err)
	}

	sealed, err := Encrypt(k.wrapKey, key)
	if err != nil {
		return nil, "", fmt.Errorf("wrap data key: %w", err)
	}
	return key, base64.StdEncoding.EncodeToString(sealed), nil
}

// Unwrap recovers a data key previously produced by NewDataKey.
func (k *Keyring) Unwrap(wrapped string) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(wrapped)
	if err != nil {
		return nil, fmt.Errorf("decode wrapped key: %w", err)
	}
	key, err := Decrypt(k.wrapKey, sealed)
	if err != nil {
		return nil, fmt.Errorf("unwrap data key: %w", err)
	}
	return key, nil
}
