package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Service bundles the prometheus collectors of the key management core.
type Service struct {
	UnlockAttempts     *prometheus.CounterVec
	Lockouts           prometheus.Counter
	SignedTransactions prometheus.Counter
	WalletOperations   *prometheus.CounterVec
}

// New registers the collectors with the given registerer.
func New(registerer prometheus.Registerer) *Service {
	factory := promauto.With(registerer)

	return &Service{
		UnlockAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_unlock_attempts_total",
			Help: "PIN unlock attempts partitioned by result.",
		}, []string{"result"}),
		Lockouts: factory.NewCounter(prometheus.CounterOpts{
			Name: "wallet_lockouts_total",
			Help: "Times the session entered the lockout cooldown.",
		}),
		SignedTransactions: factory.NewCounter(prometheus.CounterOpts{
			Name: "wallet_signed_transactions_total",
			Help: "Successfully signed transactions.",
		}),
		WalletOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_operations_total",
			Help: "Wallet lifecycle operations partitioned by operation.",
		}, []string{"operation"}),
	}
}
