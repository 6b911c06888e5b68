package mnemonic

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"github/chapool/wallet-core/internal/util"
)

const (
	entropyBits12Words = 128
	entropyBits24Words = 256
)

type service struct{}

// NewService creates a new MnemonicService
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService() Service {
	return &service{}
}

// Generate draws fresh entropy and returns a new mnemonic.
func (s *service) Generate(wordCount int) (string, error) {
	var bits int

	switch wordCount {
	case WordCount12:
		bits = entropyBits12Words
	case WordCount24:
		bits = entropyBits24Words
	default:
		return "", ErrInvalidWordCount
	}

	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", errors.Wrap(ErrEntropySource, err.Error())
	}
	defer util.WipeBytes(entropy)

	phrase, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "failed to map entropy to mnemonic")
	}

	return phrase, nil
}

// Validate checks the phrase as a whole.
func (s *service) Validate(mnemonic string) bool {
	return bip39.IsMnemonicValid(normalize(mnemonic))
}

// Normalize returns the canonical single-spaced form of the phrase.
func (s *service) Normalize(mnemonic string) string {
	return normalize(mnemonic)
}

// ToSeed derives the BIP39 seed.
// BIP39: seed = PBKDF2(mnemonic, "mnemonic" + passphrase, 2048, 64, SHA512)
func (s *service) ToSeed(mnemonic string, passphrase string) []byte {
	return bip39.NewSeed(normalize(mnemonic), passphrase)
}

// normalize collapses runs of whitespace so that user-pasted phrases with
// stray spacing validate and derive identically.
func normalize(mnemonic string) string {
	return strings.Join(strings.Fields(mnemonic), " ")
}
