package cli

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"nfino-trader/internal/models"
	"nfino-trader/pkg/utils"
)

// addGTTCommands adds the gtt command group.
func addGTTCommands(rootCmd *cobra.Command, app *App) {
	gttCmd := &cobra.Command{
		Use:   "gtt",
		Short: "Manage GTT (Good Till Triggered) orders",
	}

	createSingleCmd := &cobra.Command{
		Use:   "create-single SIDE SYMBOL QUANTITY TRIGGER LIMIT",
		Short: "Create a single-leg GTT order",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			side := models.OrderSide(args[0])
			if side != models.OrderSideBuy && side != models.OrderSideSell {
				output.Error("side must be BUY or SELL, got %q", args[0])
				return errors.New("invalid side")
			}
			qty, trigger, limit, err := parseGTTNumbers(args[2], args[3], args[4])
			if err != nil {
				output.Error("%v", err)
				return err
			}

			gtt, err := app.Ledger.CreateSingleGTT(args[1], side, qty, trigger, limit)
			if err != nil {
				output.Error("Failed to create GTT: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(gtt)
			}
			output.Success("GTT created: %s %s %d %s, triggers @ %s",
				gtt.ID, gtt.Side, gtt.Quantity, gtt.Symbol,
				utils.FormatIndianCurrency(gtt.TriggerPrice))
			return nil
		},
	}

	createOCOCmd := &cobra.Command{
		Use:   "create-oco SYMBOL QUANTITY SL_TRIGGER SL_LIMIT TARGET_TRIGGER TARGET_LIMIT",
		Short: "Create a two-leg OCO GTT order (stop-loss + target)",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			qty, err := strconv.Atoi(args[1])
			if err != nil {
				output.Error("invalid quantity: %s", args[1])
				return err
			}
			prices := make([]float64, 4)
			for i, raw := range args[2:] {
				prices[i], err = strconv.ParseFloat(raw, 64)
				if err != nil {
					output.Error("invalid price: %s", raw)
					return err
				}
			}

			gtt, err := app.Ledger.CreateOCOGTT(args[0], qty, prices[0], prices[1], prices[2], prices[3])
			if err != nil {
				output.Error("Failed to create GTT: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(gtt)
			}
			output.Success("OCO GTT created: %s SELL %d %s, stop-loss @ %s / target @ %s",
				gtt.ID, gtt.Quantity, gtt.Symbol,
				utils.FormatIndianCurrency(gtt.StopLossTrigger),
				utils.FormatIndianCurrency(gtt.TargetTrigger))
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List GTT orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			gtts := app.Ledger.GTTOrders()
			if output.IsJSON() {
				return output.JSON(gtts)
			}
			if len(gtts) == 0 {
				output.Println("No GTT orders.")
				return nil
			}
			output.Header("GTT Orders")
			for _, g := range gtts {
				switch g.TriggerType {
				case models.GTTOCO:
					output.Printf("%s  %-6s %-16s qty %-5d SL %s / TGT %s  [%s]\n",
						g.ID, g.Side, g.Symbol, g.Quantity,
						utils.FormatIndianCurrency(g.StopLossTrigger),
						utils.FormatIndianCurrency(g.TargetTrigger), g.Status)
				default:
					output.Printf("%s  %-6s %-16s qty %-5d trigger %s  [%s]\n",
						g.ID, g.Side, g.Symbol, g.Quantity,
						utils.FormatIndianCurrency(g.TriggerPrice), g.Status)
				}
			}
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete GTT_ID",
		Short: "Delete a GTT order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if !app.Ledger.DeleteGTT(args[0]) {
				output.Error("No GTT order with ID %s", args[0])
				return errors.New("gtt not found")
			}
			output.Success("GTT %s deleted", args[0])
			return nil
		},
	}

	gttCmd.AddCommand(createSingleCmd, createOCOCmd, listCmd, deleteCmd)
	rootCmd.AddCommand(gttCmd)
}

func parseGTTNumbers(qtyRaw, triggerRaw, limitRaw string) (int, float64, float64, error) {
	qty, err := strconv.Atoi(qtyRaw)
	if err != nil {
		return 0, 0, 0, errors.New("invalid quantity: " + qtyRaw)
	}
	trigger, err := strconv.ParseFloat(triggerRaw, 64)
	if err != nil {
		return 0, 0, 0, errors.New("invalid trigger price: " + triggerRaw)
	}
	limit, err := strconv.ParseFloat(limitRaw, 64)
	if err != nil {
		return 0, 0, 0, errors.New("invalid limit price: " + limitRaw)
	}
	return qty, trigger, limit, nil
}
