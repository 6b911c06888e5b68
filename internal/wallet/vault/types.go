package vault

import (
	"context"

	"github.com/pkg/errors"
)

var (
	// ErrWalletExists is returned when a wallet record already exists on the
	// device. Callers must delete the existing wallet first.
	ErrWalletExists = errors.New("wallet already exists")

	// ErrNoWallet is returned when no wallet record exists.
	ErrNoWallet = errors.New("no wallet exists")

	// ErrInvalidPIN is returned for PINs that are not 6 to 8 digits.
	ErrInvalidPIN = errors.New("pin must be 6 to 8 digits")
)

// CreateResult is handed back exactly once after Create. The vault retains
// neither the mnemonic nor any other key material.
type CreateResult struct {
	Mnemonic string
	Address  string
}

// Service is the single persisted-wallet store. It enforces the
// one-wallet-per-device invariant and keeps the encrypted record and the
// cached display address consistent with each other.
type Service interface {
	// Create generates a fresh wallet, persists it encrypted under the PIN
	// and returns the mnemonic once for backup display.
	Create(ctx context.Context, pin string) (*CreateResult, error)

	// Import validates and persists an existing mnemonic, returning the
	// account 0 address.
	Import(ctx context.Context, mnemonic string, pin string) (string, error)

	// Unlock decrypts and returns the mnemonic transiently. Decryption
	// success is the sole proof of authorization; no lock state is involved.
	Unlock(ctx context.Context, pin string) (string, error)

	// CachedAddress returns the account 0 address without decrypting.
	CachedAddress(ctx context.Context) (string, error)

	// Exists reports whether a wallet record is stored.
	Exists(ctx context.Context) (bool, error)

	// Delete removes the wallet record and cached address together.
	// Idempotent.
	Delete(ctx context.Context) error
}
