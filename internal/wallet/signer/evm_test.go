package signer_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/wallet-core/internal/util"
	"github/chapool/wallet-core/internal/wallet/hdkey"
	"github/chapool/wallet-core/internal/wallet/mnemonic"
	"github/chapool/wallet-core/internal/wallet/signer"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	testAddress  = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"
)

func newTestSigner() (signer.Service, hdkey.Service) {
	keys := hdkey.NewService(mnemonic.NewService())

	return signer.NewService(keys), keys
}

func newTestRequest(chainID int64) *signer.SignRequest {
	return &signer.SignRequest{
		ChainID:  chainID,
		Nonce:    7,
		GasPrice: "20000000000",
		GasLimit: 21000,
		To:       "0x000000000000000000000000000000000000dEaD",
		Value:    "1000000000000000000",
	}
}

func TestSignProducesValidEIP155Transaction(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSigner()

	signed, err := svc.Sign(ctx, newTestRequest(1), testMnemonic)
	require.NoError(t, err)
	require.NotEmpty(t, signed.Raw)
	require.NotEmpty(t, signed.Hash)

	// v = chainId*2 + 35 + recoveryId with recoveryId in {0, 1}.
	recoveryID := new(big.Int).Sub(signed.V, big.NewInt(1*2+35))
	require.LessOrEqual(t, recoveryID.Int64(), int64(1))
	require.GreaterOrEqual(t, recoveryID.Int64(), int64(0))

	// The raw bytes decode back to a transaction whose recovered sender is
	// the account 0 address of the test mnemonic.
	var decoded types.Transaction
	require.NoError(t, decoded.UnmarshalBinary(signed.Raw))

	sender, err := types.Sender(types.NewEIP155Signer(big.NewInt(1)), &decoded)
	require.NoError(t, err)
	require.Equal(t, testAddress, sender.Hex())
}

func TestSignIsDeterministic(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSigner()

	first, err := svc.Sign(ctx, newTestRequest(1), testMnemonic)
	require.NoError(t, err)

	second, err := svc.Sign(ctx, newTestRequest(1), testMnemonic)
	require.NoError(t, err)

	require.Equal(t, first.Raw, second.Raw)
	require.Equal(t, first.Hash, second.Hash)
	require.Equal(t, 0, first.R.Cmp(second.R))
	require.Equal(t, 0, first.S.Cmp(second.S))
	require.Equal(t, 0, first.V.Cmp(second.V))
}

func TestSignBindsChainID(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSigner()

	mainnet, err := svc.Sign(ctx, newTestRequest(1), testMnemonic)
	require.NoError(t, err)

	sepolia, err := svc.Sign(ctx, newTestRequest(11155111), testMnemonic)
	require.NoError(t, err)

	assert.NotEqual(t, mainnet.V, sepolia.V)
	assert.NotEqual(t, mainnet.Raw, sepolia.Raw)

	// Both v values follow chainId*2 + 35 + recoveryId for their chain.
	assert.Contains(t, []int64{0, 1}, recoveryID(mainnet.V, 1))
	assert.Contains(t, []int64{0, 1}, recoveryID(sepolia.V, 11155111))
}

// recoveryID extracts the recovery id from an EIP-155 v value.
func recoveryID(v *big.Int, chainID int64) int64 {
	return new(big.Int).Sub(v, big.NewInt(chainID*2+35)).Int64()
}

func TestSignVerifiesFromAddress(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSigner()

	req := newTestRequest(1)
	req.From = testAddress
	_, err := svc.Sign(ctx, req, testMnemonic)
	require.NoError(t, err)

	req = newTestRequest(1)
	req.From = "0x000000000000000000000000000000000000dEaD"
	_, err = svc.Sign(ctx, req, testMnemonic)
	require.ErrorIs(t, err, signer.ErrInvalidTransaction)
}

func TestSignRejectsMalformedInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestSigner()

	req := newTestRequest(1)
	req.To = "not-an-address"
	_, err := svc.Sign(ctx, req, testMnemonic)
	require.ErrorIs(t, err, signer.ErrInvalidTransaction)

	req = newTestRequest(1)
	req.Value = "12.5"
	_, err = svc.Sign(ctx, req, testMnemonic)
	require.ErrorIs(t, err, signer.ErrInvalidTransaction)

	req = newTestRequest(1)
	req.Value = "-1"
	_, err = svc.Sign(ctx, req, testMnemonic)
	require.ErrorIs(t, err, signer.ErrInvalidTransaction)

	req = newTestRequest(1)
	req.GasPrice = "fast"
	_, err = svc.Sign(ctx, req, testMnemonic)
	require.ErrorIs(t, err, signer.ErrInvalidTransaction)

	req = newTestRequest(0)
	_, err = svc.Sign(ctx, req, testMnemonic)
	require.ErrorIs(t, err, signer.ErrInvalidTransaction)
}

func TestSignWithKeyWipesKeyOnSuccess(t *testing.T) {
	ctx := context.Background()
	svc, keys := newTestSigner()

	privateKey, err := keys.DerivePrivateKey(ctx, testMnemonic, 0)
	require.NoError(t, err)
	require.False(t, util.IsZeroed(privateKey))

	_, err = svc.SignWithKey(ctx, newTestRequest(1), privateKey)
	require.NoError(t, err)
	require.True(t, util.IsZeroed(privateKey))
}

func TestSignWithKeyWipesKeyOnError(t *testing.T) {
	ctx := context.Background()
	svc, keys := newTestSigner()

	privateKey, err := keys.DerivePrivateKey(ctx, testMnemonic, 0)
	require.NoError(t, err)

	req := newTestRequest(1)
	req.To = "garbage"
	_, err = svc.SignWithKey(ctx, req, privateKey)
	require.Error(t, err)
	require.True(t, util.IsZeroed(privateKey))
}
