package portfolio

import "errors"

// Sentinel errors for the recoverable failure taxonomy. Callers route on
// them with errors.Is; the wrapped message carries the user-facing reason.
var (
	// ErrInvalidAmount rejects non-positive amounts and quantities.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientBalance rejects operations the relevant balance cannot
	// cover. On a BUY this is the condition that surfaces the refill prompt.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrAlreadyClaimed rejects a second daily reward claim in one session.
	ErrAlreadyClaimed = errors.New("daily reward already claimed")
	// ErrUnknownSymbol rejects orders for symbols with no quote.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrNoPosition rejects a SELL for a symbol not held.
	ErrNoPosition = errors.New("no open position")
	// ErrInsufficientQuantity rejects a SELL for more than the held quantity.
	ErrInsufficientQuantity = errors.New("insufficient quantity")
)
