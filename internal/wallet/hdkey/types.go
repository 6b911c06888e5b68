package hdkey

import (
	"context"

	"github.com/pkg/errors"
)

// ErrInvalidDerivation is returned when a child key repeatedly falls outside
// the curve order. With honest entropy this is astronomically unlikely.
var ErrInvalidDerivation = errors.New("derived key outside curve order")

// Account is a derived EVM account. The address is public and safe to cache;
// an Account never carries key material.
type Account struct {
	Index          uint32 `json:"index"`
	Address        string `json:"address"`
	DerivationPath string `json:"derivationPath"`
}

// Service provides BIP32/BIP44 key and address derivation for EVM chains.
// Every derivation starts from the caller-supplied mnemonic; no method caches
// mnemonics, seeds or derived keys between calls.
type Service interface {
	// DeriveAccount derives the account at m/44'/60'/0'/0/{index}.
	DeriveAccount(ctx context.Context, mnemonic string, index uint32) (*Account, error)

	// DerivePrivateKey derives the 32-byte private key for the account index.
	// The caller owns the buffer and must wipe it after use.
	DerivePrivateKey(ctx context.Context, mnemonic string, index uint32) ([]byte, error)

	// BIP44Path returns the fixed EVM derivation path for the index.
	// Format: m/44'/60'/0'/0/{index}
	BIP44Path(index uint32) string
}
