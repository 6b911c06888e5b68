package vault

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/wallet-core/internal/wallet"
)

func newImport() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import an existing recovery phrase",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withService(func(ctx context.Context, svc *wallet.Service) error {
				fmt.Print("Enter recovery phrase: ")

				reader := bufio.NewReader(os.Stdin)
				phrase, err := reader.ReadString('\n')
				if err != nil {
					return errors.Wrap(err, "failed to read recovery phrase")
				}

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

				address, err := svc.ImportWallet(ctx, phrase, pin)
				if err != nil {
					return err
				}

				fmt.Println("Address:", address)

				return nil
			})
		},
	}
}
