// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the durable slot store for the entropy TUI.
package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// =============================================================================
// ENCRYPTION PARAMETERS
// =============================================================================

const (
	// saltSize is the size of the key-derivation salt.
	saltSize = 32

	// keySize is the AES-256 key size.
	keySize = 32

	// pbkdf2Iterations for key derivation. OWASP-recommended minimum
	// for PBKDF2-SHA-256.
	pbkdf2Iterations = 600_000

	// saltSlot is the reserved slot holding the key-derivation salt.
	saltSlot = "encryption-salt"
)

// ErrBadPassphrase is returned when decryption fails, which in AES-GCM
// means the passphrase is wrong or the ciphertext was tampered with.
var ErrBadPassphrase = errors.New("decryption failed: wrong passphrase or corrupted data")

// =============================================================================
// ENCRYPTED SLOTS
// =============================================================================

// EncryptedSlots wraps another Slots backend and encrypts slot values at
// rest with AES-256-GCM. The key is derived from a passphrase with
// PBKDF2-SHA-256; the random salt is stored (in the clear) in a reserved
// slot of the underlying backend.
type EncryptedSlots struct {
	inner Slots
	aead  cipher.AEAD
}

// NewEncryptedSlots wraps inner with encryption keyed by passphrase.
// On first use a fresh salt is generated and persisted; subsequent opens
// re-derive the same key from the stored salt.
func NewEncryptedSlots(inner Slots, passphrase string) (*EncryptedSlots, error) {
	if passphrase == "" {
		return nil, errors.New("empty passphrase")
	}

	salt, err := loadOrCreateSalt(inner)
	if err != nil {
		return nil, err
	}

	key := pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iterations, keySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &EncryptedSlots{inner: inner, aead: aead}, nil
}

// loadOrCreateSalt reads the stored salt or generates and persists a new one.
func loadOrCreateSalt(inner Slots) ([]byte, error) {
	stored, err := inner.Get(saltSlot)
	if err == nil {
		salt, decErr := base64.StdEncoding.DecodeString(stored)
		if decErr != nil || len(salt) != saltSize {
			return nil, errors.New("corrupted encryption salt")
		}
		return salt, nil
	}
	if !errors.Is(err, ErrSlotNotFound) {
		return nil, err
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	if err := inner.Set(saltSlot, base64.StdEncoding.EncodeToString(salt)); err != nil {
		return nil, fmt.Errorf("failed to save salt: %w", err)
	}
	return salt, nil
}

// Get decrypts and returns the value stored under key.
func (s *EncryptedSlots) Get(key string) (string, error) {
	stored, err := s.inner.Get(key)
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(stored)
	if err != nil {
		return "", ErrBadPassphrase
	}
	if len(raw) < s.aead.NonceSize() {
		return "", ErrBadPassphrase
	}

	nonce, ciphertext := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	plaintext, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrBadPassphrase
	}
	return string(plaintext), nil
}

// Set encrypts value and writes it under key. The nonce is prepended to
// the ciphertext, so every write produces a distinct stored value.
func (s *EncryptedSlots) Set(key, value string) error {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}
	ciphertext := s.aead.Seal(nonce, nonce, []byte(value), nil)
	return s.inner.Set(key, base64.StdEncoding.EncodeToString(ciphertext))
}

// Delete removes the slot from the underlying backend.
func (s *EncryptedSlots) Delete(key string) error {
	return s.inner.Delete(key)
}

// Close closes the underlying backend.
func (s *EncryptedSlots) Close() error {
	return s.inner.Close()
}

var _ Slots = (*EncryptedSlots)(nil)
