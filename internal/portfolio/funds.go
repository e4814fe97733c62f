package portfolio

import (
	"fmt"

	"nfino-trader/internal/models"
	"nfino-trader/pkg/utils"
)

// Deposit credits the fiat wallet.
func (l *Ledger) Deposit(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("deposit: %w", ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.balance.Fiat += amount
	l.addTransaction(models.TransactionDeposit, "Added funds to wallet",
		"+ "+utils.FormatIndianCurrency(amount))
	return nil
}

// PurchaseTokens exchanges fiat for reward tokens at 1:1.
func (l *Ledger) PurchaseTokens(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("token purchase: %w", ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balance.Fiat < amount {
		return fmt.Errorf("%w: INR balance %s cannot cover %s",
			ErrInsufficientBalance,
			utils.FormatIndianCurrency(l.balance.Fiat),
			utils.FormatIndianCurrency(amount))
	}

	l.balance.Fiat -= amount
	l.balance.Tokens += amount
	l.addTransaction(models.TransactionTokenPurchase,
		fmt.Sprintf("Purchased %g NXO", amount),
		"- "+utils.FormatIndianCurrency(amount))
	return nil
}

// ConvertTokens exchanges reward tokens for virtual trading currency at the
// configured conversion rate.
func (l *Ledger) ConvertTokens(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("token conversion: %w", ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balance.Tokens < amount {
		return fmt.Errorf("%w: NXO balance %g cannot cover %g",
			ErrInsufficientBalance, l.balance.Tokens, amount)
	}

	granted := amount * l.cfg.TokenConversionRate
	l.balance.Tokens -= amount
	l.balance.Virtual += granted
	l.addTransaction(models.TransactionTokenConvert,
		fmt.Sprintf("Converted %g NXO", amount),
		fmt.Sprintf("+ %s Virtual", utils.FormatIndianCurrency(granted)))
	return nil
}

// ClaimDailyReward grants the fixed reward token amount once per session.
func (l *Ledger) ClaimDailyReward() (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.rewardClaimed {
		return 0, ErrAlreadyClaimed
	}

	l.balance.Tokens += l.cfg.DailyRewardTokens
	l.rewardClaimed = true
	l.addTransaction(models.TransactionTokenReward, "Daily Login Bonus",
		fmt.Sprintf("+ %g NXO", l.cfg.DailyRewardTokens))
	return l.cfg.DailyRewardTokens, nil
}
