package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saldohq/saldo-backend/internal/core/domain"
	portsrepo "github.com/saldohq/saldo-backend/internal/core/ports/repositories"
	portssvc "github.com/saldohq/saldo-backend/internal/core/ports/services"
	"github.com/saldohq/saldo-backend/internal/middleware"
)

// reportingService derives financial statements from posted entries. It is a
// pure read-side projection: nothing here mutates the ledger, and every report
// is safe to run concurrently with posting.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// ProfitAndLoss aggregates posted revenue and expense lines over [from, to].
func (s *reportingService) ProfitAndLoss(ctx context.Context, tenantID string, from, to time.Time) (*domain.ProfitAndLossReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	revenue, expenses, err := s.reportingRepo.GetProfitAndLossData(ctx, tenantID, from, to)
	if err != nil {
		logger.Error("Failed to retrieve profit and loss data",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve profit and loss data: %w", err)
	}

	totalRevenue := decimal.Zero
	for _, r := range revenue {
		totalRevenue = totalRevenue.Add(r.NetAmount)
	}

	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.NetAmount)
	}

	report := &domain.ProfitAndLossReport{
		Revenue:       revenue,
		Expenses:      expenses,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		NetIncome:     totalRevenue.Sub(totalExpenses),
	}

	logger.Info("Profit and loss report generated",
		slog.String("tenant_id", tenantID),
		slog.Int("revenue_accounts", len(revenue)),
		slog.Int("expense_accounts", len(expenses)))
	return report, nil
}

// BalanceSheet aggregates posted asset/liability/equity lines as of a date.
// The Balance field must come out zero for a ledger containing only balanced
// entries; it is exposed so callers can assert consistency.
func (s *reportingService) BalanceSheet(ctx context.Context, tenantID string, asOf time.Time) (*domain.BalanceSheetReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, tenantID, asOf)
	if err != nil {
		logger.Error("Failed to retrieve balance sheet data",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	totalAssets := decimal.Zero
	for _, a := range assets {
		totalAssets = totalAssets.Add(a.NetAmount)
	}

	totalLiabilities := decimal.Zero
	for _, l := range liabilities {
		totalLiabilities = totalLiabilities.Add(l.NetAmount)
	}

	totalEquity := decimal.Zero
	for _, e := range equity {
		totalEquity = totalEquity.Add(e.NetAmount)
	}

	report := &domain.BalanceSheetReport{
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		TotalEquity:      totalEquity,
		Balance:          totalAssets.Sub(totalLiabilities.Add(totalEquity)),
	}

	logger.Info("Balance sheet report generated",
		slog.String("tenant_id", tenantID),
		slog.String("asOf", asOf.Format(time.RFC3339)))
	return report, nil
}

// TrialBalance returns raw per-account debit/credit totals as of a date.
func (s *reportingService) TrialBalance(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, tenantID, asOf)
	if err != nil {
		logger.Error("Failed to retrieve trial balance data",
			slog.String("tenant_id", tenantID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}
	if rows == nil {
		rows = []domain.TrialBalanceRow{}
	}
	return rows, nil
}
