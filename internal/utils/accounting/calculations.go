package accounting

import (
	"fmt"

	"github.com/saldohq/saldo-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedLineAmount converts a journal line into the account's normal-balance
// convention. Asset and Expense accounts carry a debit normal balance
// (debit - credit); Liability, Equity and Revenue accounts carry a credit
// normal balance (credit - debit). Services and reports share this helper so
// the sign convention is applied in exactly one place.
func SignedLineAmount(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return line.Debit.Sub(line.Credit), nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return line.Credit.Sub(line.Debit), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account ID %s", accountType, line.AccountID)
	}
}

// NormalBalance reduces raw debit and credit totals to a single signed balance
// per the account type's convention.
func NormalBalance(accountType domain.AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	if accountType.HasDebitNormalBalance() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}
