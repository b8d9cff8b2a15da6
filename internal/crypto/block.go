package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// Key sizes
	KeySize   = 32 // ChaCha20-Poly1305 key
	SaltSize  = 16
	NonceSize = chacha20poly1305.NonceSize // 12
	TagSize   = chacha20poly1305.Overhead  // 16

	// KeyIterations is the PBKDF2 stretch count. Changing it breaks
	// decryption of previously written trees.
	KeyIterations = 100000

	// ChunkSize is the plaintext read size for content streaming.
	ChunkSize = 16384

	// WireOverhead is the per-block cost of the salt, nonce, and tag.
	WireOverhead = SaltSize + NonceSize + TagSize

	// WireChunkSize is the on-disk size of one encrypted content chunk.
	WireChunkSize = ChunkSize + WireOverhead
)

// Wire block layout offsets, used when splitting a block in Open.
const (
	nonceStart      = SaltSize
	nonceEnd        = nonceStart + NonceSize
	ciphertextStart = nonceEnd
)

// ErrMalformed reports a block that cannot be decrypted: truncated input,
// an authentication tag mismatch, or a wrong password. Callers cannot
// distinguish the three, which is deliberate.
var ErrMalformed = errors.New("malformed block")

// deriveKey stretches the password into a cipher key. Each block carries
// its own salt, so the derivation runs once per block. That keeps every
// block independently decryptable and sidesteps nonce reuse under a
// shared key, at the cost of one KDF invocation per block.
func deriveKey(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, KeyIterations, KeySize, sha256.New)
}

// Seal encrypts one plaintext chunk under the password, returning the
// self-describing wire block salt || nonce || ciphertext || tag.
func Seal(plaintext, password []byte) ([]byte, error) {
	header := make([]byte, SaltSize+NonceSize, WireOverhead+len(plaintext))
	if _, err := io.ReadFull(rand.Reader, header); err != nil {
		return nil, fmt.Errorf("generate salt and nonce: %w", err)
	}

	salt := header[:SaltSize]
	nonce := header[nonceStart:nonceEnd]

	aead, err := chacha20poly1305.New(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	return aead.Seal(header, nonce, plaintext, nil), nil
}

// Open decrypts a wire block produced by Seal. It fails closed: on any
// integrity failure no plaintext is returned, only ErrMalformed.
func Open(block, password []byte) ([]byte, error) {
	// Shortest legal block is an empty plaintext: salt + nonce + tag.
	if len(block) < WireOverhead {
		return nil, ErrMalformed
	}

	salt := block[:SaltSize]
	nonce := block[nonceStart:nonceEnd]
	ciphertextAndTag := block[ciphertextStart:]

	aead, err := chacha20poly1305.New(deriveKey(password, salt))
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	plaintext, err := aead.Open(nil, nonce, ciphertextAndTag, nil)
	if err != nil {
		return nil, ErrMalformed
	}

	return plaintext, nil
}
