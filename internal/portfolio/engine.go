package portfolio

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"nfino-trader/internal/logging"
	"nfino-trader/internal/market"
	"nfino-trader/internal/models"
	"nfino-trader/internal/notify"
)

// Engine drives one evaluation cycle per feed update. Within a cycle the
// order is fixed: apply ticks to the board, mark-to-market, evaluate GTTs,
// evaluate alerts. GTT and alert decisions therefore always see the
// freshest marks. The hub delivers cycles on a single goroutine, so the
// whole pass runs serialized.
type Engine struct {
	ledger   *Ledger
	board    *market.Board
	notifier notify.Notifier
	logger   zerolog.Logger
}

// NewEngine creates an engine over the given ledger and board.
func NewEngine(ledger *Ledger, board *market.Board, notifier notify.Notifier, logger zerolog.Logger) *Engine {
	return &Engine{
		ledger:   ledger,
		board:    board,
		notifier: notifier,
		logger:   logger.With().Str("component", "engine").Logger(),
	}
}

// OnCycle processes one feed cycle.
func (e *Engine) OnCycle(ticks []models.Tick) {
	e.board.ApplyAll(ticks)

	now := time.Now()
	summary := e.ledger.MarkToMarket()
	gttEvents := e.ledger.EvaluateGTTs(now)
	alertEvents := e.ledger.EvaluateAlerts(now)

	e.logger.Debug().
		Int("ticks", len(ticks)).
		Float64("total_pnl", summary.TotalPnL).
		Int("gtt_triggers", len(gttEvents)).
		Int("alert_triggers", len(alertEvents)).
		Msg("Cycle evaluated")

	ctx := context.Background()
	for _, ev := range gttEvents {
		if ev.Err != nil {
			e.logger.Warn().
				Str("gtt_id", ev.GTT.ID).
				Str("symbol", ev.GTT.Symbol).
				Err(ev.Err).
				Msg("GTT trigger fired but execution failed")
		} else {
			logging.LogGTT(logging.WithOrderID(e.logger, ev.Order.ID), ev.GTT.ID, ev.GTT.Symbol, string(ev.GTT.Status))
		}
		if e.notifier != nil {
			e.notifier.SendGTT(ctx, ev.GTT, ev.Order, ev.Err)
		}
	}

	for _, ev := range alertEvents {
		logging.LogAlert(e.logger, ev.Alert.ID, ev.Alert.Symbol, string(ev.Alert.Field), ev.Value)
		if e.notifier != nil {
			e.notifier.SendAlert(ctx, ev.Alert, ev.Value)
		}
	}
}
