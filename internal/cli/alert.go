package cli

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"nfino-trader/internal/models"
)

// addAlertCommands adds the alert command group.
func addAlertCommands(rootCmd *cobra.Command, app *App) {
	alertCmd := &cobra.Command{
		Use:   "alert",
		Short: "Manage price alerts",
	}

	createCmd := &cobra.Command{
		Use:   "create SYMBOL FIELD OPERATOR VALUE",
		Short: "Create a price alert",
		Long: `Creates an alert that fires once when the condition holds.

Fields:    ltp, open, high, low, prev_close, change, change_percent, volume
Operators: >=, >, <=, <, ==`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			value, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				output.Error("invalid value: %s", args[3])
				return err
			}
			kind := models.AlertKindOnly
			if ato, _ := cmd.Flags().GetBool("ato"); ato {
				kind = models.AlertKindATO
			}

			alert, err := app.Ledger.CreateAlert(args[0],
				models.AlertField(args[1]), models.AlertOperator(args[2]), value, kind)
			if err != nil {
				output.Error("Failed to create alert: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(alert)
			}
			output.Success("Alert created: %s %s %s %s %g", alert.ID, alert.Symbol, alert.Field, alert.Operator, alert.Value)
			return nil
		},
	}
	createCmd.Flags().Bool("ato", false, "alert-triggers-order kind (notification only, no auto trade)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			alerts := app.Ledger.Alerts()
			if output.IsJSON() {
				return output.JSON(alerts)
			}
			if len(alerts) == 0 {
				output.Println("No alerts.")
				return nil
			}
			output.Header("Alerts")
			for _, a := range alerts {
				output.Printf("%s  %-16s %-14s %-2s %-12g [%s]\n",
					a.ID, a.Symbol, a.Field, a.Operator, a.Value, a.Status)
			}
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete ALERT_ID",
		Short: "Delete an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if !app.Ledger.DeleteAlert(args[0]) {
				output.Error("No alert with ID %s", args[0])
				return errors.New("alert not found")
			}
			output.Success("Alert %s deleted", args[0])
			return nil
		},
	}

	alertCmd.AddCommand(createCmd, listCmd, deleteCmd)
	rootCmd.AddCommand(alertCmd)
}
