package wallet

import (
	"context"

	"github.com/pkg/errors"
	"github/chapool/wallet-core/internal/config"
	"github/chapool/wallet-core/internal/metrics"
	"github/chapool/wallet-core/internal/storage"
	"github/chapool/wallet-core/internal/util"
	"github/chapool/wallet-core/internal/wallet/hdkey"
	"github/chapool/wallet-core/internal/wallet/keystore"
	"github/chapool/wallet-core/internal/wallet/mnemonic"
	"github/chapool/wallet-core/internal/wallet/session"
	"github/chapool/wallet-core/internal/wallet/signer"
	"github/chapool/wallet-core/internal/wallet/vault"
)

// Service is the narrow surface the UI/controller layer talks to. It wires
// the core components together, constructed leaf first and held by plain
// ownership. Decrypted mnemonics are threaded as explicit parameters through
// the derive/sign call chain and never stored on the service.
//
// The session only throttles PIN attempts and reflects UX lock state; every
// operation that touches key material is authorized by the vault's
// PIN-derived decryption alone.
type Service struct {
	vault   vault.Service
	signer  signer.Service
	session *session.Session
	metrics *metrics.Service
}

// NewService constructs the core over the given storage collaborator.
func NewService(store storage.Store, cfg config.VaultConfig, m *metrics.Service) *Service {
	mnemonics := mnemonic.NewService()
	keys := hdkey.NewService(mnemonics)
	engine := keystore.NewEngine(cfg.KDFIterations)

	return &Service{
		vault:  vault.NewService(store, engine, mnemonics, keys, cfg.MnemonicWordCount),
		signer: signer.NewService(keys),
		session: session.New(session.Config{
			AutoLockAfter:     cfg.AutoLockAfter,
			MaxFailedAttempts: cfg.MaxFailedAttempts,
			LockoutCooldown:   cfg.LockoutCooldown,
		}),
		metrics: m,
	}
}

// CreateWallet generates and persists a new wallet. The returned mnemonic is
// shown to the user exactly once and retained nowhere.
func (s *Service) CreateWallet(ctx context.Context, pin string) (*vault.CreateResult, error) {
	result, err := s.vault.Create(ctx, pin)
	if err != nil {
		return nil, err
	}

	s.metrics.WalletOperations.WithLabelValues("create").Inc()

	return result, nil
}

// ImportWallet persists an existing mnemonic and returns the account 0
// address.
func (s *Service) ImportWallet(ctx context.Context, phrase string, pin string) (string, error) {
	address, err := s.vault.Import(ctx, phrase, pin)
	if err != nil {
		return "", err
	}

	s.metrics.WalletOperations.WithLabelValues("import").Inc()

	return address, nil
}

// Unlock verifies the PIN against the vault and returns the mnemonic
// transiently. The session lockout throttles attempts; the decryption is the
// actual check.
func (s *Service) Unlock(ctx context.Context, pin string) (string, error) {
	if err := s.session.CheckAttemptAllowed(); err != nil {
		s.metrics.UnlockAttempts.WithLabelValues("throttled").Inc()
		return "", err
	}

	phrase, err := s.vault.Unlock(ctx, pin)
	if err != nil {
		s.recordPINFailure(ctx, err)
		return "", err
	}

	s.session.RecordSuccess()
	s.metrics.UnlockAttempts.WithLabelValues("ok").Inc()

	return phrase, nil
}

// SignTransaction decrypts the mnemonic under the PIN, derives the account
// key, signs and discards everything. Gated by PIN alone: a merely Locked
// session never blocks signing, only an active lockout cooldown throttles
// the attempt.
func (s *Service) SignTransaction(ctx context.Context, pin string, req *signer.SignRequest) (*signer.SignedTransaction, error) {
	if err := s.session.CheckAttemptAllowed(); err != nil {
		return nil, err
	}

	phrase, err := s.vault.Unlock(ctx, pin)
	if err != nil {
		s.recordPINFailure(ctx, err)
		return nil, err
	}

	s.session.RecordSuccess()

	signed, err := s.signer.Sign(ctx, req, phrase)
	if err != nil {
		return nil, err
	}

	s.metrics.SignedTransactions.Inc()

	return signed, nil
}

// Address returns the cached account 0 address without decrypting.
func (s *Service) Address(ctx context.Context) (string, error) {
	return s.vault.CachedAddress(ctx)
}

// HasWallet reports whether a wallet exists on this device.
func (s *Service) HasWallet(ctx context.Context) (bool, error) {
	return s.vault.Exists(ctx)
}

// DeleteWallet removes the wallet and relocks the session.
func (s *Service) DeleteWallet(ctx context.Context) error {
	if err := s.vault.Delete(ctx); err != nil {
		return err
	}

	s.session.Lock()
	s.metrics.WalletOperations.WithLabelValues("delete").Inc()

	return nil
}

// Lock forces the session into the Locked state (explicit lock or app
// backgrounding).
func (s *Service) Lock() {
	s.session.Lock()
}

// Touch registers user activity, resetting the auto-lock countdown.
func (s *Service) Touch() {
	s.session.Touch()
}

// SessionState returns the UX lock state.
func (s *Service) SessionState() session.State {
	return s.session.State()
}

// recordPINFailure feeds failed PIN verifications into the session counter.
// Storage or input errors are not PIN failures and do not count.
func (s *Service) recordPINFailure(ctx context.Context, err error) {
	if !errors.Is(err, keystore.ErrAuthenticationFailed) {
		return
	}

	log := util.LogFromContext(ctx)

	state := s.session.RecordFailure()
	s.metrics.UnlockAttempts.WithLabelValues("failed").Inc()

	if state == session.StateLockedOut {
		s.metrics.Lockouts.Inc()
		log.Warn().Msg("Too many failed PIN attempts, lockout cooldown started")
	}
}
