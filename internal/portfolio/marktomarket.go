package portfolio

import (
	"nfino-trader/internal/models"
)

// MarkToMarket recomputes every position's value and P&L from the latest
// quotes and refreshes the aggregate summary. Positions whose quote is
// momentarily missing keep their last computed values for this cycle.
// Margin used is simplified to the invested value (no leverage model).
func (l *Ledger) MarkToMarket() models.PortfolioSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	var summary models.PortfolioSummary
	for i := range l.positions {
		pos := &l.positions[i]
		quote, ok := l.quotes.Get(pos.Symbol)
		if ok {
			pos.LTP = quote.LTP
			pos.CurrentValue = float64(pos.Quantity) * quote.LTP
			pos.InvestedValue = float64(pos.Quantity) * pos.AvgPrice
			pos.PnL = pos.CurrentValue - pos.InvestedValue

			summary.TodayPnL += (quote.LTP - quote.PrevClose) * float64(pos.Quantity)
		}
		summary.TotalInvested += pos.InvestedValue
		summary.TotalCurrentValue += pos.CurrentValue
	}

	summary.TotalPnL = summary.TotalCurrentValue - summary.TotalInvested
	summary.MarginUsed = summary.TotalInvested

	l.summary = summary
	return summary
}
