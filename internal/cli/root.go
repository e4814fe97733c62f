package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"nfino-trader/internal/config"
	"nfino-trader/internal/logging"
	"nfino-trader/internal/market"
	"nfino-trader/internal/notify"
	"nfino-trader/internal/portfolio"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies. Each CLI invocation is one
// in-memory session: the board is seeded from the instrument catalog and
// the ledger starts from the configured balances.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Board    *market.Board
	Ledger   *portfolio.Ledger
	Notifier *notify.MultiNotifier
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	board := market.NewBoard()
	board.Seed(market.Catalog())

	ledger := portfolio.New(board, portfolio.Config{
		InitialFiat:         cfg.Trading.InitialFiat,
		InitialTokens:       cfg.Trading.InitialTokens,
		InitialVirtual:      cfg.Trading.InitialVirtual,
		DailyRewardTokens:   cfg.Trading.DailyRewardTokens,
		TokenConversionRate: cfg.Trading.TokenConversionRate,
	})

	notifier := notify.NewMultiNotifier(
		notify.Level(cfg.Notifications.Level),
		notify.NewTerminalChannel(cfg.Notifications.Enabled && cfg.UI.ColorEnabled),
		notify.NewWebhookChannel(cfg.Notifications.Webhook.URL, cfg.Notifications.Webhook.Enabled),
	)

	app := &App{
		Config:   cfg,
		Logger:   logger,
		Board:    board,
		Ledger:   ledger,
		Notifier: notifier,
	}

	rootCmd := &cobra.Command{
		Use:   "nfino-trader",
		Short: "NFINO paper trading engine",
		Long: `NFINO is a simulated equities trading application: a virtual wallet
funded through reward tokens, market and limit orders executed against a
live or simulated price feed, GTT conditional orders, and price alerts.

All state lives in process memory; every run is a fresh session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/nfino-trader)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addFundsCommands(rootCmd, app)
	addTradingCommands(rootCmd, app)
	addGTTCommands(rootCmd, app)
	addAlertCommands(rootCmd, app)
	addPortfolioCommands(rootCmd, app)
	addWatchCommand(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds version and config commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("nfino-trader v%s\n", Version)
			}
		},
	})

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewOutput(cmd).JSON(app.Config)
		},
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			NewOutput(cmd).Println(config.DefaultConfigDir())
		},
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			output.Success("Configuration is valid")
			return nil
		},
	})
	rootCmd.AddCommand(configCmd)
}
