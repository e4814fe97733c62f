package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"nfino-trader/pkg/utils"
)

// addFundsCommands adds the wallet command group.
func addFundsCommands(rootCmd *cobra.Command, app *App) {
	fundsCmd := &cobra.Command{
		Use:   "funds",
		Short: "Wallet and balance operations",
		Long: `Manage the three-tier wallet: INR deposits, NXO reward tokens
(purchased 1:1 with INR), and virtual trading currency (1 NXO = 1,000
virtual units).`,
	}

	fundsCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show wallet balances",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			balance := app.Ledger.Balance()
			if output.IsJSON() {
				output.JSON(balance)
				return
			}
			output.Header("Wallet")
			output.Printf("  INR:     %s\n", utils.FormatIndianCurrency(balance.Fiat))
			output.Printf("  NXO:     %g\n", balance.Tokens)
			output.Printf("  Virtual: %s\n", utils.FormatIndianCurrency(balance.Virtual))
		},
	})

	fundsCmd.AddCommand(&cobra.Command{
		Use:   "deposit AMOUNT",
		Short: "Deposit INR into the wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				output.Error("Invalid amount: %s", args[0])
				return err
			}
			if err := app.Ledger.Deposit(amount); err != nil {
				output.Error("Deposit failed: %v", err)
				return err
			}
			output.Success("Deposited %s", utils.FormatIndianCurrency(amount))
			return nil
		},
	})

	fundsCmd.AddCommand(&cobra.Command{
		Use:   "buy-tokens AMOUNT",
		Short: "Purchase NXO tokens with INR (1:1)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				output.Error("Invalid amount: %s", args[0])
				return err
			}
			if err := app.Ledger.PurchaseTokens(amount); err != nil {
				output.Error("Token purchase failed: %v", err)
				return err
			}
			output.Success("Purchased %g NXO", amount)
			return nil
		},
	})

	fundsCmd.AddCommand(&cobra.Command{
		Use:   "convert AMOUNT",
		Short: "Convert NXO tokens to virtual trading currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				output.Error("Invalid amount: %s", args[0])
				return err
			}
			if err := app.Ledger.ConvertTokens(amount); err != nil {
				output.Error("Conversion failed: %v", err)
				return err
			}
			granted := amount * app.Config.Trading.TokenConversionRate
			output.Success("Converted %g NXO into %s virtual", amount, utils.FormatIndianCurrency(granted))
			return nil
		},
	})

	fundsCmd.AddCommand(&cobra.Command{
		Use:   "claim-bonus",
		Short: "Claim the daily login bonus",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			granted, err := app.Ledger.ClaimDailyReward()
			if err != nil {
				output.Warning("Claim failed: %v", err)
				return err
			}
			output.Success("Claimed %g NXO daily bonus", granted)
			return nil
		},
	})

	rootCmd.AddCommand(fundsCmd)
}
