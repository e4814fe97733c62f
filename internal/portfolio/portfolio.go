// Package portfolio implements the simulated portfolio ledger and the
// order, GTT and alert lifecycles evaluated against the live quote board.
package portfolio

import (
	"fmt"
	"sync"
	"time"

	"nfino-trader/internal/models"
)

// QuoteSource supplies the latest quote per symbol. The market board
// satisfies it; tests inject fixed quote sets.
type QuoteSource interface {
	Get(symbol string) (models.Quote, bool)
}

// Config holds ledger configuration.
type Config struct {
	InitialFiat    float64
	InitialTokens  float64
	InitialVirtual float64
	// DailyRewardTokens is the fixed NXO amount of the one-time session
	// reward. Defaults to 10.
	DailyRewardTokens float64
	// TokenConversionRate is the virtual units granted per NXO token.
	// Defaults to 1000.
	TokenConversionRate float64
}

// Ledger owns all simulated session state: balances, positions, order
// history, GTT orders, alerts and the transaction log. A single mutex
// serializes every mutation, so each operation is atomic: validation
// happens under the lock before any state changes.
type Ledger struct {
	mu     sync.RWMutex
	quotes QuoteSource
	cfg    Config

	balance       models.Balance
	positions     []models.Position
	orders        []models.Order // newest first
	gtts          []models.GTTOrder
	alerts        []models.Alert
	transactions  []models.Transaction // newest first
	summary       models.PortfolioSummary
	rewardClaimed bool

	orderSeq int
	gttSeq   int
	alertSeq int
	txnSeq   int
}

// New creates a ledger against the given quote source.
func New(quotes QuoteSource, cfg Config) *Ledger {
	if cfg.DailyRewardTokens == 0 {
		cfg.DailyRewardTokens = 10
	}
	if cfg.TokenConversionRate == 0 {
		cfg.TokenConversionRate = 1000
	}

	return &Ledger{
		quotes: quotes,
		cfg:    cfg,
		balance: models.Balance{
			Fiat:    cfg.InitialFiat,
			Tokens:  cfg.InitialTokens,
			Virtual: cfg.InitialVirtual,
		},
	}
}

// Balance returns the current balances.
func (l *Ledger) Balance() models.Balance {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balance
}

// Positions returns a copy of the open positions.
func (l *Ledger) Positions() []models.Position {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Position, len(l.positions))
	copy(out, l.positions)
	return out
}

// Position returns the open position for a symbol, if any.
func (l *Ledger) Position(symbol string) (models.Position, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.findPosition(symbol); i >= 0 {
		return l.positions[i], true
	}
	return models.Position{}, false
}

// Orders returns a copy of the order history, newest first.
func (l *Ledger) Orders() []models.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// GTTOrders returns a copy of the GTT collection, newest first.
func (l *Ledger) GTTOrders() []models.GTTOrder {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.GTTOrder, len(l.gtts))
	copy(out, l.gtts)
	return out
}

// Alerts returns a copy of the alert collection, newest first.
func (l *Ledger) Alerts() []models.Alert {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Alert, len(l.alerts))
	copy(out, l.alerts)
	return out
}

// Transactions returns a copy of the transaction log, newest first.
func (l *Ledger) Transactions() []models.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Summary returns the last computed mark-to-market aggregates.
func (l *Ledger) Summary() models.PortfolioSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.summary
}

// RewardClaimed reports whether the session reward has been claimed.
func (l *Ledger) RewardClaimed() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.rewardClaimed
}

// findPosition returns the index of the position for symbol, or -1.
// Callers must hold the lock.
func (l *Ledger) findPosition(symbol string) int {
	for i := range l.positions {
		if l.positions[i].Symbol == symbol {
			return i
		}
	}
	return -1
}

// addTransaction prepends an audit entry. Callers must hold the lock.
func (l *Ledger) addTransaction(txType models.TransactionType, description, amount string) {
	l.txnSeq++
	txn := models.Transaction{
		ID:          fmt.Sprintf("txn_%d_%d", time.Now().Unix(), l.txnSeq),
		Type:        txType,
		Description: description,
		Amount:      amount,
		Timestamp:   time.Now(),
	}
	l.transactions = append([]models.Transaction{txn}, l.transactions...)
}
