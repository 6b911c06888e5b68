package vault

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github/chapool/wallet-core/internal/storage"
	"github/chapool/wallet-core/internal/util"
	"github/chapool/wallet-core/internal/wallet/hdkey"
	"github/chapool/wallet-core/internal/wallet/keystore"
	"github/chapool/wallet-core/internal/wallet/mnemonic"
)

// Storage keys of the single persisted wallet. The two keys are always
// written and deleted in the same storage transaction.
const (
	recordKey        = "wallet/record"
	cachedAddressKey = "wallet/address"
)

const (
	minPINLength = 6
	maxPINLength = 8
)

type service struct {
	store     storage.Store
	engine    keystore.Engine
	mnemonics mnemonic.Service
	keys      hdkey.Service
	wordCount int

	// writeMu serializes create/import/delete so the existence check and the
	// write happen in one critical section. Reads stay lock-free.
	writeMu sync.Mutex
}

// NewService creates a new SecureVault. wordCount selects the mnemonic length
// for Create; zero means 24 words.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(store storage.Store, engine keystore.Engine, mnemonics mnemonic.Service, keys hdkey.Service, wordCount int) Service {
	if wordCount == 0 {
		wordCount = mnemonic.WordCount24
	}

	return &service{
		store:     store,
		engine:    engine,
		mnemonics: mnemonics,
		keys:      keys,
		wordCount: wordCount,
	}
}

// ValidatePIN enforces the PIN format: numeric, 6 to 8 digits.
func ValidatePIN(pin string) error {
	if len(pin) < minPINLength || len(pin) > maxPINLength {
		return ErrInvalidPIN
	}

	for _, r := range pin {
		if r < '0' || r > '9' {
			return ErrInvalidPIN
		}
	}

	return nil
}

// Create generates a fresh wallet and persists it encrypted under the PIN.
func (s *service) Create(ctx context.Context, pin string) (*CreateResult, error) {
	log := util.LogFromContext(ctx)

	if err := ValidatePIN(pin); err != nil {
		return nil, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.ensureEmpty(ctx); err != nil {
		return nil, err
	}

	phrase, err := s.mnemonics.Generate(s.wordCount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate mnemonic")
	}

	address, err := s.persist(ctx, phrase, pin)
	if err != nil {
		return nil, err
	}

	log.Info().Str("address", address).Msg("Created wallet")

	return &CreateResult{
		Mnemonic: phrase,
		Address:  address,
	}, nil
}

// Import validates and persists an existing mnemonic.
func (s *service) Import(ctx context.Context, phrase string, pin string) (string, error) {
	log := util.LogFromContext(ctx)

	if err := ValidatePIN(pin); err != nil {
		return "", err
	}

	// Persist the canonical form so Unlock returns the phrase free of the
	// caller's stray whitespace.
	phrase = s.mnemonics.Normalize(phrase)
	if !s.mnemonics.Validate(phrase) {
		return "", mnemonic.ErrInvalidMnemonic
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.ensureEmpty(ctx); err != nil {
		return "", err
	}

	address, err := s.persist(ctx, phrase, pin)
	if err != nil {
		return "", err
	}

	log.Info().Str("address", address).Msg("Imported wallet")

	return address, nil
}

// Unlock decrypts and returns the mnemonic transiently.
func (s *service) Unlock(ctx context.Context, pin string) (string, error) {
	recordData, err := s.store.Get(ctx, recordKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return "", ErrNoWallet
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to read wallet record")
	}

	var record keystore.EncryptedRecord
	if err := json.Unmarshal(recordData, &record); err != nil {
		// A record that no longer parses is corrupted storage; report it
		// exactly like a failed decryption.
		return "", keystore.ErrAuthenticationFailed
	}

	plaintext, err := s.engine.Decrypt(&record, pin)
	if err != nil {
		return "", err
	}

	phrase := string(plaintext)
	util.WipeBytes(plaintext)

	return phrase, nil
}

// CachedAddress returns the stored display address without decrypting.
func (s *service) CachedAddress(ctx context.Context) (string, error) {
	data, err := s.store.Get(ctx, cachedAddressKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return "", ErrNoWallet
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to read cached address")
	}

	return string(data), nil
}

// Exists reports whether a wallet record is stored.
func (s *service) Exists(ctx context.Context) (bool, error) {
	return s.exists(ctx)
}

// Delete removes record and cached address in one transaction. Idempotent.
func (s *service) Delete(ctx context.Context) error {
	log := util.LogFromContext(ctx)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.store.Delete(ctx, recordKey, cachedAddressKey); err != nil {
		return errors.Wrap(err, "failed to delete wallet")
	}

	log.Info().Msg("Deleted wallet")

	return nil
}

func (s *service) exists(ctx context.Context) (bool, error) {
	_, err := s.store.Get(ctx, recordKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to read wallet record")
	}

	return true, nil
}

func (s *service) ensureEmpty(ctx context.Context) error {
	exists, err := s.exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return ErrWalletExists
	}

	return nil
}

// persist derives the account 0 address, encrypts the mnemonic and writes
// record plus cached address in a single both-or-neither batch.
func (s *service) persist(ctx context.Context, phrase string, pin string) (string, error) {
	account, err := s.keys.DeriveAccount(ctx, phrase, 0)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive account")
	}

	plaintext := []byte(phrase)
	record, err := s.engine.Encrypt(plaintext, pin)
	util.WipeBytes(plaintext)
	if err != nil {
		return "", errors.Wrap(err, "failed to encrypt mnemonic")
	}

	recordData, err := json.Marshal(record)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal wallet record")
	}

	err = s.store.SetBatch(ctx, map[string][]byte{
		recordKey:        recordData,
		cachedAddressKey: []byte(account.Address),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to persist wallet record")
	}

	return account.Address, nil
}
