package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github/chapool/wallet-core/internal/util"
)

// Encrypt encrypts the plaintext using PBKDF2-HMAC-SHA256 + AES-256-GCM.
// Salt and IV are drawn fresh from the secure RNG on every call so they never
// repeat within a vault generation.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func (e *engine) Encrypt(plaintext []byte, pin string) (*EncryptedRecord, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "failed to generate salt")
	}

	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, errors.Wrap(err, "failed to generate IV")
	}

	derivedKey := deriveKey(pin, salt, e.kdfIterations)
	defer util.WipeBytes(derivedKey)

	aead, err := newAEAD(derivedKey)
	if err != nil {
		return nil, err
	}

	// Seal appends the 16-byte auth tag to the ciphertext.
	sealed := aead.Seal(nil, iv, plaintext, nil)
	tagOffset := len(sealed) - authTagSize

	return &EncryptedRecord{
		Version:       RecordVersion,
		ID:            uuid.New().String(),
		KDF:           kdfPBKDF2SHA256,
		KDFIterations: e.kdfIterations,
		Cipher:        cipherAES256GCM,
		Salt:          hex.EncodeToString(salt),
		IV:            hex.EncodeToString(iv),
		Ciphertext:    hex.EncodeToString(sealed[:tagOffset]),
		AuthTag:       hex.EncodeToString(sealed[tagOffset:]),
	}, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create GCM")
	}

	return aead, nil
}
