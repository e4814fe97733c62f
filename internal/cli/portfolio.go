package cli

import (
	"github.com/spf13/cobra"

	"nfino-trader/pkg/utils"
)

// addPortfolioCommands adds portfolio, orders, history and quotes.
func addPortfolioCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newPortfolioCmd(app))
	rootCmd.AddCommand(newOrdersCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))
	rootCmd.AddCommand(newQuotesCmd(app))
}

func newPortfolioCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio",
		Short: "Show positions and portfolio summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			summary := app.Ledger.MarkToMarket()
			positions := app.Ledger.Positions()

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"positions": positions,
					"summary":   summary,
				})
			}

			if len(positions) == 0 {
				output.Println("No open positions.")
			} else {
				output.Header("Positions")
				for _, p := range positions {
					output.Printf("%-16s qty %-5d avg %-12s ltp %-12s P&L %s\n",
						p.Symbol, p.Quantity,
						utils.FormatIndianCurrency(p.AvgPrice),
						utils.FormatIndianCurrency(p.LTP),
						utils.FormatPnL(p.PnL))
				}
			}

			output.Header("Summary")
			output.Printf("Invested:      %s\n", utils.FormatIndianCurrency(summary.TotalInvested))
			output.Printf("Current value: %s\n", utils.FormatIndianCurrency(summary.TotalCurrentValue))
			output.Printf("Total P&L:     %s\n", utils.FormatPnL(summary.TotalPnL))
			output.Printf("Today's P&L:   %s\n", utils.FormatPnL(summary.TodayPnL))
			output.Printf("Margin used:   %s\n", utils.FormatIndianCurrency(summary.MarginUsed))
			return nil
		},
	}
}

func newOrdersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "orders",
		Short: "Show order history, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			orders := app.Ledger.Orders()
			if output.IsJSON() {
				return output.JSON(orders)
			}
			if len(orders) == 0 {
				output.Println("No orders.")
				return nil
			}
			output.Header("Orders")
			for _, o := range orders {
				output.Printf("%s  %-6s %-16s qty %-5d @ %-12s %-18s [%s]\n",
					o.ID, o.Side, o.Symbol, o.Quantity,
					utils.FormatIndianCurrency(o.Price), o.Kind, o.Status)
			}
			return nil
		},
	}
}

func newHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show fund transaction history, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			txns := app.Ledger.Transactions()
			if output.IsJSON() {
				return output.JSON(txns)
			}
			if len(txns) == 0 {
				output.Println("No transactions.")
				return nil
			}
			output.Header("Transactions")
			for _, t := range txns {
				output.Printf("%s  %-14s %-40s %s\n",
					t.Timestamp.Format("2006-01-02 15:04:05"), t.Type, t.Description, t.Amount)
			}
			return nil
		},
	}
}

func newQuotesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quotes",
		Short: "Show the instrument board",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			quotes := app.Board.Snapshot()
			if output.IsJSON() {
				return output.JSON(quotes)
			}
			output.Header("Quotes")
			for _, q := range quotes {
				output.Printf("%-18s %-12s %s (%s)\n",
					q.Symbol,
					utils.FormatIndianCurrency(q.LTP),
					utils.FormatPnL(q.Change),
					utils.FormatPercent(q.ChangePercent))
			}
			return nil
		},
	}
}
