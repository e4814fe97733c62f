package market

import (
	"context"

	"nfino-trader/internal/models"
)

// Feed defines the interface for a price feed delivering tick batches.
// One call to the OnTicks handler corresponds to one evaluation cycle.
type Feed interface {
	Connect(ctx context.Context) error
	Disconnect() error
	OnTicks(handler func([]models.Tick))
	OnError(handler func(error))
}

// Catalog returns the seed instrument set with their reference prices.
// The previous close equals the seed price so day change starts at zero.
func Catalog() []models.Quote {
	seed := []struct {
		symbol   string
		name     string
		exchange string
		price    float64
	}{
		{"NIFTY 50", "Nifty 50 Index", "NSE", 25910.05},
		{"NIFTY BANK", "Nifty Bank Index", "NSE", 58517.20},
		{"RELIANCE", "Reliance Industries", "NSE", 1480.00},
		{"TCS", "Tata Consultancy Services", "NSE", 2993.50},
		{"HDFCBANK", "HDFC Bank", "NSE", 1650.00},
		{"INFY", "Infosys", "NSE", 1478.00},
		{"TATASTEEL", "Tata Steel", "NSE", 181.50},
		{"NIFTY OCT FUT", "Nifty October Futures", "NFO", 26050.00},
		{"BANKNIFTY OCT FUT", "Bank Nifty October Futures", "NFO", 58700.00},
	}

	quotes := make([]models.Quote, 0, len(seed))
	for _, s := range seed {
		quotes = append(quotes, models.Quote{
			Symbol:    s.symbol,
			Name:      s.name,
			Exchange:  s.exchange,
			LTP:       s.price,
			Open:      s.price,
			High:      s.price,
			Low:       s.price,
			PrevClose: s.price,
		})
	}
	return quotes
}
