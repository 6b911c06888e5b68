package vault

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/wallet-core/internal/wallet"
)

func newCreate() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Generate a new wallet protected by a PIN",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withService(func(ctx context.Context, svc *wallet.Service) error {
				pin, err := promptPIN("Enter PIN (6-8 digits): ")
				if err != nil {
					return err
				}

				pinConfirm, err := promptPIN("Confirm PIN: ")
				if err != nil {
					return err
				}

				if pin != pinConfirm {
					return errors.New("PINs do not match")
				}

				result, err := svc.CreateWallet(ctx, pin)
				if err != nil {
					return err
				}

				// The recovery phrase is displayed exactly once and stored
				// nowhere in plaintext.
				fmt.Println("Address:", result.Address)
				fmt.Println()
				fmt.Println("Recovery phrase (write it down now, it will not be shown again):")
				fmt.Println()
				fmt.Println(result.Mnemonic)

				return nil
			})
		},
	}
}
