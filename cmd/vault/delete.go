package vault

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/wallet-core/internal/wallet"
)

func newDelete() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Remove the wallet and its cached address from this device",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withService(func(ctx context.Context, svc *wallet.Service) error {
				if !yes {
					fmt.Print("This removes the encrypted wallet from this device. Without the recovery phrase the funds are unrecoverable. Type 'delete' to confirm: ")

					reader := bufio.NewReader(os.Stdin)
					answer, err := reader.ReadString('\n')
					if err != nil {
						return errors.Wrap(err, "failed to read confirmation")
					}

					if strings.TrimSpace(answer) != "delete" {
						return errors.New("aborted")
					}
				}

				if err := svc.DeleteWallet(ctx); err != nil {
					return err
				}

				fmt.Println("Wallet deleted.")

				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
