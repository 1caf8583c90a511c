package repository

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var errSealedValue = errors.New("sealed value is corrupt or was sealed with another key")

// Sealer encrypts bearer tokens before they are written to disk.
type Sealer struct {
	key [32]byte
}

// NewSealer derives the secretbox key from secret.
func NewSealer(secret string) *Sealer {
	return &Sealer{key: sha256.Sum256([]byte(secret))}
}

// Seal returns base64(nonce || box).
func (s *Sealer) Seal(plain string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("read nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(plain), &nonce, &s.key)
	return base64.RawURLEncoding.EncodeToString(box), nil
}

func (s *Sealer) Open(sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("decode sealed value: %w", err)
	}
	if len(raw) < nonceSize+secretbox.Overhead {
		return "", errSealedValue
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", errSealedValue
	}
	return string(plain), nil
}
