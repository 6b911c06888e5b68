package signer

import (
	"context"

	"github.com/pkg/errors"
	"github/chapool/wallet-core/internal/util"
	"github/chapool/wallet-core/internal/wallet/hdkey"
)

type service struct {
	keys hdkey.Service
}

// NewService creates a new SignerService
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(keys hdkey.Service) Service {
	return &service{
		keys: keys,
	}
}

// Sign derives the account key from the mnemonic, signs and wipes the key.
func (s *service) Sign(ctx context.Context, req *SignRequest, mnemonic string) (*SignedTransaction, error) {
	privateKey, err := s.keys.DerivePrivateKey(ctx, mnemonic, req.AccountIndex)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive private key")
	}

	return s.SignWithKey(ctx, req, privateKey)
}

// SignWithKey consumes the private key exactly once.
func (s *service) SignWithKey(ctx context.Context, req *SignRequest, privateKey []byte) (*SignedTransaction, error) {
	// The buffer is wiped on every path out of the signing call, including
	// validation failures.
	defer util.WipeBytes(privateKey)

	return s.signLegacyTransaction(ctx, req, privateKey)
}
