package keystore

import (
	"encoding/hex"

	"github/chapool/wallet-core/internal/util"
)

// Decrypt re-derives the key from PIN and stored salt and opens the record.
// A wrong PIN, a tampered record and a structurally broken record all report
// ErrAuthenticationFailed; callers must not learn which check failed.
//
//nolint:varnamelen // iv is a common abbreviation for initialization vector
func (e *engine) Decrypt(record *EncryptedRecord, pin string) ([]byte, error) {
	// Only records written by this engine are decryptable. Anything claiming
	// a different layout, KDF or cipher must not be fed to these primitives.
	if record.Version != RecordVersion || record.KDF != kdfPBKDF2SHA256 || record.Cipher != cipherAES256GCM {
		return nil, ErrAuthenticationFailed
	}

	salt, errSalt := hex.DecodeString(record.Salt)
	iv, errIV := hex.DecodeString(record.IV)
	ciphertext, errCiphertext := hex.DecodeString(record.Ciphertext)
	authTag, errTag := hex.DecodeString(record.AuthTag)

	if errSalt != nil || errIV != nil || errCiphertext != nil || errTag != nil {
		return nil, ErrAuthenticationFailed
	}

	if len(salt) != saltSize || len(iv) != ivSize || len(authTag) != authTagSize {
		return nil, ErrAuthenticationFailed
	}

	if record.KDFIterations < MinKDFIterations {
		return nil, ErrAuthenticationFailed
	}

	derivedKey := deriveKey(pin, salt, record.KDFIterations)
	defer util.WipeBytes(derivedKey)

	aead, err := newAEAD(derivedKey)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(ciphertext)+len(authTag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, authTag...)

	plaintext, err := aead.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	return plaintext, nil
}
