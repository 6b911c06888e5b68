package keystore

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

type engine struct {
	kdfIterations int
}

// NewEngine creates a new EncryptionEngine. Iteration counts below the floor
// are raised to the default.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewEngine(kdfIterations int) Engine {
	if kdfIterations < MinKDFIterations {
		kdfIterations = DefaultKDFIterations
	}

	return &engine{
		kdfIterations: kdfIterations,
	}
}

// deriveKey derives the 256-bit AES key from the PIN and salt.
// The caller must wipe the returned buffer.
func deriveKey(pin string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(pin), salt, iterations, keySize, sha256.New)
}
