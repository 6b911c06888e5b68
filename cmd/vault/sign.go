package vault

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github/chapool/wallet-core/internal/wallet"
	"github/chapool/wallet-core/internal/wallet/signer"
)

// newSign signs a transaction and prints the raw RLP bytes for broadcast.
// Nonce, gas price and chain id come in as flags; fetching them from a node
// is the RPC collaborator's job, not this core's.
func newSign() *cobra.Command {
	req := &signer.SignRequest{}

	var dataHex string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign an EIP-155 transaction with the wallet key",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withService(func(ctx context.Context, svc *wallet.Service) error {
				if dataHex != "" {
					data, err := hex.DecodeString(strings.TrimPrefix(dataHex, "0x"))
					if err != nil {
						return errors.Wrap(err, "failed to decode data hex")
					}
					req.Data = data
				}

				pin, err := promptPIN("Enter PIN: ")
				if err != nil {
					return err
				}

				signed, err := svc.SignTransaction(ctx, pin, req)
				if err != nil {
					return err
				}

				fmt.Println("Hash:", signed.Hash)
				fmt.Printf("Raw:  0x%x\n", signed.Raw)

				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&req.ChainID, "chain-id", 1, "Chain ID to bind the signature to")
	cmd.Flags().Uint64Var(&req.Nonce, "nonce", 0, "Transaction nonce")
	cmd.Flags().StringVar(&req.GasPrice, "gas-price", "", "Gas price in wei")
	cmd.Flags().Uint64Var(&req.GasLimit, "gas-limit", 21000, "Gas limit")
	cmd.Flags().StringVar(&req.To, "to", "", "Recipient address")
	cmd.Flags().StringVar(&req.Value, "value", "0", "Amount in wei")
	cmd.Flags().Uint32Var(&req.AccountIndex, "account", 0, "BIP44 account index")
	cmd.Flags().StringVar(&dataHex, "data", "", "Transaction data as hex")

	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("gas-price")
	_ = cmd.MarkFlagRequired("nonce")

	return cmd
}
