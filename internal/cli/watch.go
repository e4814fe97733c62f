package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"nfino-trader/internal/market"
	"nfino-trader/internal/models"
	"nfino-trader/internal/portfolio"
	"nfino-trader/internal/stream"
	"nfino-trader/pkg/utils"
)

// addWatchCommand adds the live watch command.
func addWatchCommand(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "watch [SYMBOL...]",
		Short: "Stream live prices and run the trading engine",
		Long: `Connects to the price feed (or simulates one locally), applies every tick
cycle to the board, revalues positions, evaluates GTT orders and alerts,
and prints quote updates until interrupted.

Orders, GTTs and alerts can be armed up front. Arguments are
colon-separated because instrument symbols contain spaces:

  nfino-trader watch --buy "RELIANCE:10"
  nfino-trader watch --gtt "SELL:RELIANCE:10:1500:1500"
  nfino-trader watch --oco "RELIANCE:10:1400:1400:1600:1600"
  nfino-trader watch --alert "NIFTY 50:ltp:>=:26000"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, app)
		},
	}
	cmd.Flags().StringArray("buy", nil, "market buy at start: SYMBOL:QTY")
	cmd.Flags().StringArray("gtt", nil, "arm a single GTT: SIDE:SYMBOL:QTY:TRIGGER:LIMIT")
	cmd.Flags().StringArray("oco", nil, "arm an OCO GTT: SYMBOL:QTY:SL_TRIGGER:SL_LIMIT:TGT_TRIGGER:TGT_LIMIT")
	cmd.Flags().StringArray("alert", nil, "arm an alert: SYMBOL:FIELD:OP:VALUE")
	cmd.Flags().Duration("for", 0, "stop after this duration (0 runs until interrupted)")
	rootCmd.AddCommand(cmd)
}

func runWatch(cmd *cobra.Command, args []string, app *App) error {
	output := NewOutput(cmd)

	if err := armFromFlags(cmd, app, output); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if d, _ := cmd.Flags().GetDuration("for"); d > 0 {
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	hub := stream.NewHub()
	hub.SetFeed(buildFeed(app, output))

	engine := portfolio.NewEngine(app.Ledger, app.Board, app.Notifier, app.Logger)
	hub.RegisterConsumer(engine)

	watched := make(map[string]bool, len(args))
	for _, s := range args {
		watched[s] = true
	}
	updates := hub.Subscribe()

	if err := hub.Start(ctx); err != nil {
		// The WebSocket feed failed its first dial. Fall back to the
		// local simulator so the session still runs.
		output.Warning("Feed unavailable (%v), simulating locally", err)
		app.Logger.Warn().Err(err).Msg("feed connect failed, falling back to simulator")
		hub.SetFeed(newSimulator(app))
		if err := hub.Start(ctx); err != nil {
			return err
		}
	}
	defer hub.Stop()

	output.Header("Watching (Ctrl+C to stop)")
	for {
		select {
		case <-ctx.Done():
			printSessionSummary(app, output)
			return nil
		case ticks, ok := <-updates:
			if !ok {
				printSessionSummary(app, output)
				return nil
			}
			printCycle(app, output, ticks, watched)
		}
	}
}

func buildFeed(app *App, output *Output) market.Feed {
	if app.Config.Feed.URL == "" {
		return newSimulator(app)
	}
	output.Dim("Connecting to %s", app.Config.Feed.URL)
	feed := market.NewWebSocketFeed(market.WebSocketFeedConfig{
		URL:       app.Config.Feed.URL,
		BaseDelay: app.Config.Feed.ReconnectBaseDelay,
		MaxDelay:  app.Config.Feed.ReconnectMaxDelay,
	})
	feed.OnError(func(err error) {
		app.Logger.Warn().Err(err).Msg("feed error")
	})
	return feed
}

func newSimulator(app *App) *market.SimulatedFeed {
	return market.NewSimulatedFeed(market.SimulatedFeedConfig{
		Interval: app.Config.Feed.Interval,
	})
}

func printCycle(app *App, output *Output, ticks []models.Tick, watched map[string]bool) {
	ts := time.Now().Format(app.Config.UI.TimeFormat)
	for _, t := range ticks {
		if len(watched) > 0 && !watched[t.Symbol] {
			continue
		}
		q, ok := app.Board.Get(t.Symbol)
		if !ok {
			continue
		}
		output.Printf("%s  %-18s %-12s %s (%s)\n",
			ts, q.Symbol,
			utils.FormatIndianCurrency(q.LTP),
			utils.FormatPnL(q.Change),
			utils.FormatPercent(q.ChangePercent))
	}
}

func printSessionSummary(app *App, output *Output) {
	summary := app.Ledger.Summary()
	output.Header("Session summary")
	output.Printf("Invested: %s  Current: %s  P&L: %s  Today: %s\n",
		utils.FormatIndianCurrency(summary.TotalInvested),
		utils.FormatIndianCurrency(summary.TotalCurrentValue),
		utils.FormatPnL(summary.TotalPnL),
		utils.FormatPnL(summary.TodayPnL))
}

// armFromFlags places the orders, GTTs and alerts requested on the
// command line before the feed starts.
func armFromFlags(cmd *cobra.Command, app *App, output *Output) error {
	buys, _ := cmd.Flags().GetStringArray("buy")
	for _, raw := range buys {
		parts := strings.Split(raw, ":")
		if len(parts) != 2 {
			return fmt.Errorf("invalid --buy %q, want SYMBOL:QTY", raw)
		}
		qty, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("invalid --buy quantity %q", parts[1])
		}
		order, err := app.Ledger.ExecuteTrade(portfolio.OrderRequest{
			Symbol:   parts[0],
			Quantity: qty,
			Side:     models.OrderSideBuy,
			Kind:     models.OrderKindMarket,
		})
		if err != nil {
			reportTradeError(output, err)
			return err
		}
		reportExecuted(output, order)
	}

	gtts, _ := cmd.Flags().GetStringArray("gtt")
	for _, raw := range gtts {
		parts := strings.Split(raw, ":")
		if len(parts) != 5 {
			return fmt.Errorf("invalid --gtt %q, want SIDE:SYMBOL:QTY:TRIGGER:LIMIT", raw)
		}
		side := models.OrderSide(parts[0])
		if side != models.OrderSideBuy && side != models.OrderSideSell {
			return errors.New("gtt side must be BUY or SELL")
		}
		qty, trigger, limit, err := parseGTTNumbers(parts[2], parts[3], parts[4])
		if err != nil {
			return err
		}
		gtt, err := app.Ledger.CreateSingleGTT(parts[1], side, qty, trigger, limit)
		if err != nil {
			return err
		}
		output.Success("GTT armed: %s", gtt.ID)
	}

	ocos, _ := cmd.Flags().GetStringArray("oco")
	for _, raw := range ocos {
		parts := strings.Split(raw, ":")
		if len(parts) != 6 {
			return fmt.Errorf("invalid --oco %q, want SYMBOL:QTY:SL_TRIGGER:SL_LIMIT:TGT_TRIGGER:TGT_LIMIT", raw)
		}
		qty, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("invalid --oco quantity %q", parts[1])
		}
		prices := make([]float64, 4)
		for i, p := range parts[2:] {
			prices[i], err = strconv.ParseFloat(p, 64)
			if err != nil {
				return fmt.Errorf("invalid --oco price %q", p)
			}
		}
		gtt, err := app.Ledger.CreateOCOGTT(parts[0], qty, prices[0], prices[1], prices[2], prices[3])
		if err != nil {
			return err
		}
		output.Success("OCO GTT armed: %s", gtt.ID)
	}

	alerts, _ := cmd.Flags().GetStringArray("alert")
	for _, raw := range alerts {
		parts := strings.Split(raw, ":")
		if len(parts) != 4 {
			return fmt.Errorf("invalid --alert %q, want SYMBOL:FIELD:OP:VALUE", raw)
		}
		value, err := strconv.ParseFloat(parts[3], 64)
		if err != nil {
			return fmt.Errorf("invalid --alert value %q", parts[3])
		}
		alert, err := app.Ledger.CreateAlert(parts[0],
			models.AlertField(parts[1]), models.AlertOperator(parts[2]), value, models.AlertKindOnly)
		if err != nil {
			return err
		}
		output.Success("Alert armed: %s", alert.ID)
	}
	return nil
}
