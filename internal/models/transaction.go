package models

import "time"

// TransactionType represents the kind of a wallet transaction.
type TransactionType string

const (
	TransactionDeposit       TransactionType = "DEPOSIT_INR"
	TransactionTokenPurchase TransactionType = "BUY_NXO"
	TransactionTokenConvert  TransactionType = "CONVERT_NXO"
	TransactionTokenReward   TransactionType = "REWARD_NXO"
)

// Transaction is an append-only audit log entry for wallet operations.
// Amount is a signed display string, never used for arithmetic.
type Transaction struct {
	ID          string
	Type        TransactionType
	Description string
	Amount      string
	Timestamp   time.Time
}
