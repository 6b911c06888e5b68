package vault

import (
	"context"
	"fmt"
	"syscall"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github/chapool/wallet-core/internal/config"
	"github/chapool/wallet-core/internal/metrics"
	"github/chapool/wallet-core/internal/storage"
	"github/chapool/wallet-core/internal/util/command"
	"github/chapool/wallet-core/internal/wallet"
	"golang.org/x/term"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("vault",
		newCreate(),
		newImport(),
		newAddress(),
		newStatus(),
		newSign(),
		newDelete(),
	)
}

// withService constructs the core leaf first over the configured storage,
// runs fn and closes the store afterwards.
func withService(fn func(ctx context.Context, svc *wallet.Service) error) error {
	ctx := context.Background()
	cfg := config.DefaultVaultConfigFromEnv()

	store, err := storage.NewBadgerStore(cfg.StoragePath)
	if err != nil {
		return errors.Wrap(err, "failed to open wallet storage")
	}
	defer store.Close()

	svc := wallet.NewService(store, cfg, metrics.New(prometheus.NewRegistry()))

	return fn(ctx, svc)
}

// promptPIN reads a PIN from the terminal without echoing it.
func promptPIN(prompt string) (string, error) {
	fmt.Print(prompt)

	pin, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", errors.Wrap(err, "failed to read PIN")
	}

	return string(pin), nil
}
