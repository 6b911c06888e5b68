package signer

import (
	"context"
	"math/big"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidTransaction is returned for malformed transaction input.
	// Caller bug; not retried.
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrSigningFailed is returned for key or curve level failures. Fatal
	// for the call, safe to retry with the same inputs.
	ErrSigningFailed = errors.New("signing failed")
)

// SignRequest describes an EIP-155 transaction to sign. Nonce, gas price and
// chain ID are supplied by the RPC collaborator.
type SignRequest struct {
	ChainID      int64  // Chain ID (1 for Ethereum mainnet, 11155111 for Sepolia, etc.)
	Nonce        uint64 // Transaction nonce
	GasPrice     string // Gas price in wei (as string to avoid precision loss)
	GasLimit     uint64 // Gas limit
	To           string // Recipient address (hex string with 0x prefix)
	Value        string // Amount in wei (as string to avoid precision loss)
	Data         []byte // Transaction data (for contract calls)
	From         string // Optional; when set the derived sender must match
	AccountIndex uint32 // BIP44 account index used by Sign
}

// SignedTransaction is the replay-protected result handed back to the RPC
// collaborator for broadcast.
type SignedTransaction struct {
	Raw  []byte // RLP-encoded signed transaction
	Hash string // Transaction hash (hex string with 0x prefix)
	R    *big.Int
	S    *big.Int
	V    *big.Int // chainId*2 + 35 + recovery id per EIP-155
}

// Service provides transaction signing functionality. Identical inputs
// always produce identical signatures.
type Service interface {
	// Sign derives the account key from the supplied mnemonic, signs the
	// transaction and wipes the key before returning.
	Sign(ctx context.Context, req *SignRequest, mnemonic string) (*SignedTransaction, error)

	// SignWithKey consumes the supplied 32-byte private key exactly once.
	// The buffer is zeroed on every return path, success or error.
	SignWithKey(ctx context.Context, req *SignRequest, privateKey []byte) (*SignedTransaction, error)
}
