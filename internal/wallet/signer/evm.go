package signer

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// signLegacyTransaction signs a legacy transaction with EIP-155 replay
// protection: the chain id is folded into v, so the same transaction signed
// for different chains yields different signatures.
func (s *service) signLegacyTransaction(_ context.Context, req *SignRequest, privateKey []byte) (*SignedTransaction, error) {
	if req.ChainID <= 0 {
		return nil, errors.Wrap(ErrInvalidTransaction, "chain id must be positive")
	}

	if !common.IsHexAddress(req.To) {
		return nil, errors.Wrap(ErrInvalidTransaction, "malformed recipient address")
	}

	value, err := parseWei(req.Value)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidTransaction, "malformed value")
	}

	gasPrice, err := parseWei(req.GasPrice)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidTransaction, "malformed gas price")
	}

	// Convert private key to ECDSA
	ecdsaPrivateKey, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return nil, errors.Wrap(ErrSigningFailed, err.Error())
	}

	// Verify the derived sender when the caller pinned one
	if req.From != "" {
		publicKey, ok := ecdsaPrivateKey.Public().(*ecdsa.PublicKey)
		if !ok {
			return nil, errors.Wrap(ErrSigningFailed, "failed to cast public key to ECDSA")
		}

		if crypto.PubkeyToAddress(*publicKey) != common.HexToAddress(req.From) {
			return nil, errors.Wrap(ErrInvalidTransaction, "from address does not match private key")
		}
	}

	toAddress := common.HexToAddress(req.To)

	//nolint:varnamelen // tx is a common abbreviation for transaction
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    req.Nonce,
		GasPrice: gasPrice,
		Gas:      req.GasLimit,
		To:       &toAddress,
		Value:    value,
		Data:     req.Data,
	})

	// Sign transaction
	eip155Signer := types.NewEIP155Signer(big.NewInt(req.ChainID))
	signedTx, err := types.SignTx(tx, eip155Signer, ecdsaPrivateKey)
	if err != nil {
		return nil, errors.Wrap(ErrSigningFailed, err.Error())
	}

	// Encode transaction to RLP
	raw, err := signedTx.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal transaction")
	}

	v, r, sigS := signedTx.RawSignatureValues()

	return &SignedTransaction{
		Raw:  raw,
		Hash: signedTx.Hash().Hex(),
		R:    r,
		S:    sigS,
		V:    v,
	}, nil
}

func parseWei(value string) (*big.Int, error) {
	const base10 = 10

	parsed, ok := new(big.Int).SetString(value, base10)
	if !ok || parsed.Sign() < 0 {
		return nil, errors.Errorf("not a base-10 wei amount: %q", value)
	}

	return parsed, nil
}
