package repositories

import (
	"context"
	"time"

	"github.com/saldohq/saldo-backend/internal/core/domain"
)

// ReportingRepository aggregates posted journal lines into report rows. All
// queries are read-only projections over POSTED entries and are safe to run
// concurrently with posting.
type ReportingRepository interface {
	// GetProfitAndLossData returns per-account net amounts (normal-balance
	// signed) for revenue and expense accounts over [from, to].
	GetProfitAndLossData(ctx context.Context, tenantID string, from, to time.Time) (revenue []domain.AccountAmount, expenses []domain.AccountAmount, err error)
	// GetBalanceSheetData returns per-account net amounts for asset, liability
	// and equity accounts over all posted entries dated on or before asOf.
	GetBalanceSheetData(ctx context.Context, tenantID string, asOf time.Time) (assets []domain.AccountAmount, liabilities []domain.AccountAmount, equity []domain.AccountAmount, err error)
	// GetTrialBalanceData returns raw per-account debit/credit totals as of a date.
	GetTrialBalanceData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
