package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// walletCmd shows the signed-in user's wallet.
func walletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet operations",
	}

	cmd.AddCommand(walletBalanceCmd())

	return cmd
}

func walletBalanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the current wallet balance",
		Run: func(cmd *cobra.Command, args []string) {
			stack, err := newAPIStack()
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			balance, err := stack.api.WalletBalance(context.Background())
			if err != nil {
				log.Error().Err(err).Msg("Failed to fetch the wallet balance")
				cmd.PrintErrln("Error:", describeError(err).Error())
				return
			}
			cmd.Printf("Balance: %.2f %s\n", balance.Balance, balance.Currency)
		},
	}
}
