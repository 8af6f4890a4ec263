package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saldohq/saldo-backend/internal/core/domain"
	portsrepo "github.com/saldohq/saldo-backend/internal/core/ports/repositories"
)

// reportingRepository aggregates posted journal lines into report rows.
// Only POSTED entries contribute: drafts are invisible and reversed originals
// drop out the moment their reversal supersedes them.
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// netByTypeQuery nets each account per its normal-balance convention:
// debit - credit for ASSET/EXPENSE, credit - debit for the rest. Lines whose
// account row is missing fall out of the join.
const netByTypeQuery = `
	SELECT
		a.account_type,
		a.account_id,
		a.code,
		a.name,
		SUM(CASE WHEN a.account_type IN ('ASSET', 'EXPENSE')
		         THEN l.debit - l.credit
		         ELSE l.credit - l.debit END) AS net
	FROM journal_lines l
	JOIN journal_entries e ON l.entry_id = e.entry_id
	JOIN accounts a ON l.account_id = a.account_id
	WHERE e.tenant_id = $1
		AND e.status = 'POSTED'
		AND a.account_type = ANY($2)
		%s
	GROUP BY a.account_type, a.account_id, a.code, a.name
	ORDER BY a.code;
`

func (r *reportingRepository) queryNetAmounts(ctx context.Context, tenantID string, types []string, dateClause string, dateArgs ...any) (map[domain.AccountType][]domain.AccountAmount, error) {
	query := fmt.Sprintf(netByTypeQuery, dateClause)
	args := append([]any{tenantID, types}, dateArgs...)

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying account net amounts: %w", err)
	}
	defer rows.Close()

	result := make(map[domain.AccountType][]domain.AccountAmount)
	for rows.Next() {
		var accountType string
		var row domain.AccountAmount
		if err := rows.Scan(&accountType, &row.AccountID, &row.Code, &row.Name, &row.NetAmount); err != nil {
			return nil, fmt.Errorf("error scanning account net amount row: %w", err)
		}
		t := domain.AccountType(accountType)
		result[t] = append(result[t], row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account net amount rows: %w", err)
	}
	return result, nil
}

// GetProfitAndLossData retrieves per-account revenue and expense nets over [from, to].
func (r *reportingRepository) GetProfitAndLossData(ctx context.Context, tenantID string, from, to time.Time) ([]domain.AccountAmount, []domain.AccountAmount, error) {
	byType, err := r.queryNetAmounts(ctx, tenantID,
		[]string{"REVENUE", "EXPENSE"},
		"AND e.entry_date >= $3 AND e.entry_date <= $4",
		from, to,
	)
	if err != nil {
		return nil, nil, err
	}
	return emptyIfNil(byType[domain.Revenue]), emptyIfNil(byType[domain.Expense]), nil
}

// GetBalanceSheetData retrieves per-account asset/liability/equity nets as of a date.
func (r *reportingRepository) GetBalanceSheetData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.AccountAmount, []domain.AccountAmount, []domain.AccountAmount, error) {
	byType, err := r.queryNetAmounts(ctx, tenantID,
		[]string{"ASSET", "LIABILITY", "EQUITY"},
		"AND e.entry_date <= $3",
		asOf,
	)
	if err != nil {
		return nil, nil, nil, err
	}
	return emptyIfNil(byType[domain.Asset]), emptyIfNil(byType[domain.Liability]), emptyIfNil(byType[domain.Equity]), nil
}

// GetTrialBalanceData retrieves raw per-account debit/credit totals as of a date.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, tenantID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			SUM(l.debit) AS total_debit,
			SUM(l.credit) AS total_credit
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.tenant_id = $1
			AND e.status = 'POSTED'
			AND e.entry_date <= $2
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.db(ctx).Query(ctx, query, tenantID, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string
		if err := rows.Scan(&row.AccountID, &row.AccountCode, &row.AccountName, &accountType, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}
		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

func emptyIfNil(rows []domain.AccountAmount) []domain.AccountAmount {
	if rows == nil {
		return []domain.AccountAmount{}
	}
	return rows
}
