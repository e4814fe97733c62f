package cli

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"nfino-trader/internal/logging"
	"nfino-trader/internal/models"
	"nfino-trader/internal/portfolio"
	"nfino-trader/pkg/utils"
)

// addTradingCommands adds buy, sell and bracket.
func addTradingCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newTradeCmd(app, models.OrderSideBuy))
	rootCmd.AddCommand(newTradeCmd(app, models.OrderSideSell))
	rootCmd.AddCommand(newBracketCmd(app))
}

func newTradeCmd(app *App, side models.OrderSide) *cobra.Command {
	use, short := "buy SYMBOL QUANTITY", "Buy a symbol at market or limit price"
	if side == models.OrderSideSell {
		use, short = "sell SYMBOL QUANTITY", "Sell a held symbol at market or limit price"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			req, err := parseOrderArgs(cmd, args, side)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			order, err := app.Ledger.ExecuteTrade(req)
			if err != nil {
				reportTradeError(output, err)
				return err
			}
			logging.LogTrade(app.Logger, order.Symbol, string(order.Side), order.Quantity, order.Price)
			reportExecuted(output, order)
			return nil
		},
	}
	cmd.Flags().Float64("limit", 0, "limit price (order executes at this price)")
	return cmd
}

func newBracketCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bracket SYMBOL QUANTITY",
		Short: "Buy with stop-loss and take-profit protective orders",
		Long: `Executes the entry order immediately and records two PENDING
protective orders (stop-loss and take-profit) for visibility.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			req, err := parseOrderArgs(cmd, args, models.OrderSideBuy)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			stopLoss, _ := cmd.Flags().GetFloat64("stoploss")
			takeProfit, _ := cmd.Flags().GetFloat64("target")
			if stopLoss <= 0 || takeProfit <= 0 {
				output.Error("bracket orders require --stoploss and --target prices")
				return errors.New("missing bracket prices")
			}

			order, err := app.Ledger.ExecuteBracketOrder(req, stopLoss, takeProfit)
			if err != nil {
				reportTradeError(output, err)
				return err
			}
			logging.LogTrade(app.Logger, order.Symbol, string(order.Side), order.Quantity, order.Price)
			reportExecuted(output, order)
			output.Dim("Protective orders recorded: stop-loss @ %s, take-profit @ %s",
				utils.FormatIndianCurrency(stopLoss), utils.FormatIndianCurrency(takeProfit))
			return nil
		},
	}
	cmd.Flags().Float64("limit", 0, "limit price for the entry order")
	cmd.Flags().Float64("stoploss", 0, "stop-loss price")
	cmd.Flags().Float64("target", 0, "take-profit price")
	return cmd
}

func parseOrderArgs(cmd *cobra.Command, args []string, side models.OrderSide) (portfolio.OrderRequest, error) {
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return portfolio.OrderRequest{}, errors.New("invalid quantity: " + args[1])
	}

	limit, _ := cmd.Flags().GetFloat64("limit")
	kind := models.OrderKindMarket
	if limit > 0 {
		kind = models.OrderKindLimit
	}

	return portfolio.OrderRequest{
		Symbol:     args[0],
		Quantity:   qty,
		Side:       side,
		Kind:       kind,
		LimitPrice: limit,
	}, nil
}

// reportTradeError maps the failure taxonomy to user-facing output. An
// insufficient virtual balance on BUY routes to the refill prompt rather
// than a generic error.
func reportTradeError(output *Output, err error) {
	switch {
	case errors.Is(err, portfolio.ErrInsufficientBalance):
		output.Warning("Insufficient virtual balance.")
		output.Println("Refill your trading balance: 'funds deposit', then 'funds buy-tokens' and 'funds convert'.")
	case errors.Is(err, portfolio.ErrNoPosition):
		output.Error("You don't own this stock to sell.")
	case errors.Is(err, portfolio.ErrInsufficientQuantity):
		output.Error("You cannot sell more shares than you own.")
	default:
		output.Error("Trade failed: %v", err)
	}
}

func reportExecuted(output *Output, order models.Order) {
	if output.IsJSON() {
		output.JSON(order)
		return
	}
	output.Success("%s %d %s @ %s [%s]",
		order.Side, order.Quantity, order.Symbol,
		utils.FormatIndianCurrency(order.Price), order.ID)
}
