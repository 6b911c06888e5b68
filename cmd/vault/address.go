package vault

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github/chapool/wallet-core/internal/wallet"
)

func newAddress() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the wallet address without decrypting anything",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withService(func(ctx context.Context, svc *wallet.Service) error {
				address, err := svc.Address(ctx)
				if err != nil {
					return err
				}

				fmt.Println(address)

				return nil
			})
		},
	}
}
