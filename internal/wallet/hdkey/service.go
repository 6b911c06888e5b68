package hdkey

import (
	"fmt"

	"github/chapool/wallet-core/internal/wallet/mnemonic"
)

type service struct {
	mnemonics mnemonic.Service
}

// NewService creates a new HdKeyService
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(mnemonics mnemonic.Service) Service {
	return &service{
		mnemonics: mnemonics,
	}
}

// BIP44Path returns the fixed EVM derivation path for the index.
func (s *service) BIP44Path(index uint32) string {
	return fmt.Sprintf("m/44'/60'/0'/0/%d", index)
}
