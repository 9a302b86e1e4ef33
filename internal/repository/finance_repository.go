package repository

import (
	"context"
	"fmt"

	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/jmoiron/sqlx"
)

type FinanceRepository interface {
	UpsertSnapshot(ctx context.Context, snapshot *domain.FinancialSnapshot) error
	ListSnapshots(ctx context.Context, filter domain.ReportFilter) ([]domain.FinancialSnapshot, error)
	GetSnapshotForPeriod(ctx context.Context, storeID int64, period domain.Period) (*domain.FinancialSnapshot, error)
}

type financeRepository struct {
	db *sqlx.DB
}

func NewFinanceRepository(db *sqlx.DB) FinanceRepository {
	return &financeRepository{db: db}
}

func (r *financeRepository) UpsertSnapshot(ctx context.Context, snapshot *domain.FinancialSnapshot) error {
	query := `
		INSERT INTO financial_snapshots
			(id, store_id, period_year, period_month,
			 total_sales, target_sales, cogs_achieved, cogs_target,
			 total_opex, opex_target_pct, total_crew,
			 sales_score, cogs_score, opex_score, productivity_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (store_id, period_year, period_month) DO UPDATE SET
			total_sales = EXCLUDED.total_sales,
			target_sales = EXCLUDED.target_sales,
			cogs_achieved = EXCLUDED.cogs_achieved,
			cogs_target = EXCLUDED.cogs_target,
			total_opex = EXCLUDED.total_opex,
			opex_target_pct = EXCLUDED.opex_target_pct,
			total_crew = EXCLUDED.total_crew,
			sales_score = EXCLUDED.sales_score,
			cogs_score = EXCLUDED.cogs_score,
			opex_score = EXCLUDED.opex_score,
			productivity_score = EXCLUDED.productivity_score
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(ctx, query,
		snapshot.ID, snapshot.StoreID, snapshot.Period.Year, snapshot.Period.Month,
		snapshot.TotalSales, snapshot.TargetSales, snapshot.COGSAchieved, snapshot.COGSTarget,
		snapshot.TotalOpex, snapshot.OpexTargetPct, snapshot.TotalCrew,
		snapshot.SalesScore, snapshot.COGSScore, snapshot.OpexScore, snapshot.ProductivityScore,
	).Scan(&snapshot.ID, &snapshot.CreatedAt); err != nil {
		return fmt.Errorf("error upserting financial snapshot: %w", err)
	}

	return nil
}

func (r *financeRepository) ListSnapshots(ctx context.Context, filter domain.ReportFilter) ([]domain.FinancialSnapshot, error) {
	clause, args := buildPeriodFilterClause(filter, "f.", 1)

	query := fmt.Sprintf(`
		SELECT f.id, f.store_id, s.name AS store_name,
		       f.period_year, f.period_month,
		       f.total_sales, f.target_sales, f.cogs_achieved, f.cogs_target,
		       f.total_opex, f.opex_target_pct, f.total_crew,
		       f.sales_score, f.cogs_score, f.opex_score, f.productivity_score,
		       f.created_at
		FROM financial_snapshots f
		JOIN stores s ON s.id = f.store_id
		%s
		ORDER BY f.period_year DESC, f.period_month DESC, s.name
		%s
	`, clause, buildPagingClause(filter, len(args)+1))

	args = appendPagingArgs(args, filter)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing financial snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []domain.FinancialSnapshot
	for rows.Next() {
		var snap domain.FinancialSnapshot
		if err := rows.Scan(
			&snap.ID, &snap.StoreID, &snap.StoreName,
			&snap.Period.Year, &snap.Period.Month,
			&snap.TotalSales, &snap.TargetSales, &snap.COGSAchieved, &snap.COGSTarget,
			&snap.TotalOpex, &snap.OpexTargetPct, &snap.TotalCrew,
			&snap.SalesScore, &snap.COGSScore, &snap.OpexScore, &snap.ProductivityScore,
			&snap.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning financial snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}

func (r *financeRepository) GetSnapshotForPeriod(ctx context.Context, storeID int64, period domain.Period) (*domain.FinancialSnapshot, error) {
	snapshots, err := r.ListSnapshots(ctx, domain.ReportFilter{
		StoreIDs: []int64{storeID},
		Year:     period.Year,
		Month:    period.Month,
	})
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, nil
	}
	return &snapshots[0], nil
}
