package vault

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github/chapool/wallet-core/internal/wallet"
)

func newStatus() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a wallet exists on this device",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withService(func(ctx context.Context, svc *wallet.Service) error {
				exists, err := svc.HasWallet(ctx)
				if err != nil {
					return err
				}

				if !exists {
					fmt.Println("No wallet on this device.")
					return nil
				}

				address, err := svc.Address(ctx)
				if err != nil {
					return err
				}

				fmt.Println("Wallet exists.")
				fmt.Println("Address:", address)
				fmt.Println("Session:", svc.SessionState())

				return nil
			})
		},
	}
}
