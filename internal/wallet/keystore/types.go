package keystore

import "github.com/pkg/errors"

// RecordVersion identifies the encrypted wallet record layout.
const RecordVersion = 1

const (
	// DefaultKDFIterations is the PBKDF2 iteration count for new records.
	DefaultKDFIterations = 100000
	// MinKDFIterations is the floor accepted when decrypting records.
	MinKDFIterations = 100000

	kdfPBKDF2SHA256 = "pbkdf2-sha256"
	cipherAES256GCM = "aes-256-gcm"

	saltSize    = 32
	ivSize      = 12
	authTagSize = 16
	keySize     = 32
)

// ErrAuthenticationFailed is returned for a wrong PIN as well as for tampered
// or structurally broken records. Callers cannot tell which check failed.
var ErrAuthenticationFailed = errors.New("authentication failed")

// EncryptedRecord is the persisted encrypted wallet. Binary fields are
// hex-encoded so the record serializes to plain JSON.
type EncryptedRecord struct {
	Version       int    `json:"version"`
	ID            string `json:"id"`
	KDF           string `json:"kdf"`
	KDFIterations int    `json:"kdfIterations"`
	Cipher        string `json:"cipher"`
	Salt          string `json:"salt"`
	IV            string `json:"iv"`
	Ciphertext    string `json:"ciphertext"`
	AuthTag       string `json:"authTag"`
}

// Engine encrypts and decrypts wallet payloads with a PIN-derived key.
// The engine is PIN-format-agnostic; format rules live with the caller.
type Engine interface {
	// Encrypt encrypts the plaintext under a key derived from the PIN, with
	// fresh random salt and IV on every call.
	Encrypt(plaintext []byte, pin string) (*EncryptedRecord, error)

	// Decrypt re-derives the key and authenticates the record. Any failure
	// is ErrAuthenticationFailed.
	Decrypt(record *EncryptedRecord, pin string) ([]byte, error)
}
