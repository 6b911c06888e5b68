package mnemonic

import "github.com/pkg/errors"

// Supported word counts for wallet generation.
const (
	WordCount12 = 12
	WordCount24 = 24
)

var (
	// ErrInvalidWordCount is returned by Generate for unsupported word counts.
	ErrInvalidWordCount = errors.New("mnemonic word count must be 12 or 24")

	// ErrEntropySource is returned when the secure RNG is unavailable.
	ErrEntropySource = errors.New("secure entropy source unavailable")

	// ErrInvalidMnemonic is returned for phrases that fail BIP39 validation.
	// The error never reveals which word or check failed.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
)

// Service provides BIP39 mnemonic generation, validation and seed derivation.
// Mnemonics only ever exist transiently in memory; nothing here persists or
// caches them.
type Service interface {
	// Generate draws fresh entropy and returns a new 12 or 24 word mnemonic.
	Generate(wordCount int) (string, error)

	// Validate checks wordlist membership, length and checksum as a whole,
	// without signalling which part failed.
	Validate(mnemonic string) bool

	// Normalize collapses runs of whitespace so that user-pasted phrases
	// validate, persist and derive identically.
	Normalize(mnemonic string) string

	// ToSeed derives the 64-byte BIP39 seed. Deterministic for the same
	// mnemonic and passphrase. The caller owns the buffer and must wipe it.
	ToSeed(mnemonic string, passphrase string) []byte
}
