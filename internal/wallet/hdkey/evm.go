package hdkey

import (
	"context"
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
	"github/chapool/wallet-core/internal/util"
)

const (
	bip44Purpose     = 44
	bip44CoinTypeEVM = 60

	// maxDerivationRetries bounds the BIP32 skip-to-next-index rule for
	// child keys that fall outside the curve order.
	maxDerivationRetries = 4
)

// DeriveAccount derives the EVM account at m/44'/60'/0'/0/{index}.
func (s *service) DeriveAccount(ctx context.Context, mnemonic string, index uint32) (*Account, error) {
	privateKey, err := s.DerivePrivateKey(ctx, mnemonic, index)
	if err != nil {
		return nil, err
	}
	defer util.WipeBytes(privateKey)

	ecdsaPrivateKey, err := crypto.ToECDSA(privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert to ECDSA private key")
	}

	publicKey, ok := ecdsaPrivateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, errors.New("failed to cast public key to ECDSA")
	}

	return &Account{
		Index:          index,
		Address:        crypto.PubkeyToAddress(*publicKey).Hex(),
		DerivationPath: s.BIP44Path(index),
	}, nil
}

// DerivePrivateKey derives the 32-byte private key for the account index.
// WARNING: Caller must clear the private key after use
func (s *service) DerivePrivateKey(_ context.Context, mnemonic string, index uint32) ([]byte, error) {
	seed := s.mnemonics.ToSeed(mnemonic, "")
	defer util.WipeBytes(seed)

	key, err := derivePathKey(seed, index)
	if err != nil {
		return nil, err
	}

	defer wipeExtendedKey(key)

	privateKey := make([]byte, len(key.Key))
	copy(privateKey, key.Key)

	return privateKey, nil
}

// derivePathKey walks m/44'/60'/0'/0/{index} from the seed. Master and
// intermediate key material is wiped on every path out.
func derivePathKey(seed []byte, index uint32) (*bip32.Key, error) {
	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create master key")
	}

	path := []uint32{
		bip32.FirstHardenedChild + bip44Purpose,
		bip32.FirstHardenedChild + bip44CoinTypeEVM,
		bip32.FirstHardenedChild, // account 0'
		0,                        // external chain
		index,
	}

	key := masterKey
	for _, childIndex := range path {
		child, err := deriveChild(key, childIndex)

		// The parent is no longer needed whether or not the step succeeded.
		wipeExtendedKey(key)

		if err != nil {
			return nil, err
		}

		key = child
	}

	return key, nil
}

// wipeExtendedKey clears both buffers of an extended key. The private key
// and the chain code together reconstruct the extended key, so both must go.
func wipeExtendedKey(key *bip32.Key) {
	util.WipeBytes(key.Key)
	util.WipeBytes(key.ChainCode)
}

// deriveChild derives a child key, skipping to the next index when the
// derived key is out of range (BIP32 rule). Callers never observe the retry.
func deriveChild(parent *bip32.Key, index uint32) (*bip32.Key, error) {
	for attempt := 0; attempt < maxDerivationRetries; attempt++ {
		child, err := parent.NewChildKey(index)
		if err == nil {
			return child, nil
		}

		if !errors.Is(err, bip32.ErrInvalidPrivateKey) && !errors.Is(err, bip32.ErrInvalidPublicKey) {
			return nil, errors.Wrapf(err, "failed to derive child key at index %d", index)
		}

		index++
	}

	return nil, ErrInvalidDerivation
}
