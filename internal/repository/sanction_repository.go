package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/jmoiron/sqlx"
)

type SanctionRepository interface {
	CreateSanction(ctx context.Context, record *domain.SanctionRecord) error
	ListSanctions(ctx context.Context, filter domain.ReportFilter, activeOnly bool) ([]domain.SanctionRecord, error)
	ListActiveTypes(ctx context.Context, storeID int64) ([]string, error)
	RevokeSanction(ctx context.Context, id string) error
}

type sanctionRepository struct {
	db *sqlx.DB
}

func NewSanctionRepository(db *sqlx.DB) SanctionRepository {
	return &sanctionRepository{db: db}
}

// isActiveExpr derives the active flag the scoring core consumes: a sanction
// is active until revoked or until duration_months have elapsed since the
// sanction date.
const isActiveExpr = `(r.revoked_at IS NULL AND r.sanction_date + (r.duration_months || ' months')::interval > now())`

func (r *sanctionRepository) CreateSanction(ctx context.Context, record *domain.SanctionRecord) error {
	query := `
		INSERT INTO sanction_records
			(id, store_id, employee_name, sanction_type, sanction_date, duration_months, kpi_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	if err := r.db.QueryRowxContext(ctx, query,
		record.ID, record.StoreID, record.EmployeeName, record.SanctionType,
		record.SanctionDate, record.DurationMonths, record.KPIScore,
	).Scan(&record.CreatedAt); err != nil {
		return fmt.Errorf("error creating sanction: %w", err)
	}

	record.IsActive = true
	return nil
}

func (r *sanctionRepository) ListSanctions(ctx context.Context, filter domain.ReportFilter, activeOnly bool) ([]domain.SanctionRecord, error) {
	var (
		clauses []string
		args    []interface{}
	)
	idx := 1

	if len(filter.StoreIDs) > 0 {
		placeholders := make([]string, len(filter.StoreIDs))
		for i, id := range filter.StoreIDs {
			placeholders[i] = fmt.Sprintf("$%d", idx)
			args = append(args, id)
			idx++
		}
		clauses = append(clauses, fmt.Sprintf("r.store_id IN (%s)", strings.Join(placeholders, ",")))
	}

	if activeOnly {
		clauses = append(clauses, isActiveExpr)
	}

	clause := ""
	if len(clauses) > 0 {
		clause = "WHERE " + strings.Join(clauses, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT r.id, r.store_id, s.name AS store_name, r.employee_name,
		       r.sanction_type, r.sanction_date, r.duration_months,
		       %s AS is_active, r.kpi_score, r.created_at
		FROM sanction_records r
		JOIN stores s ON s.id = r.store_id
		%s
		ORDER BY r.sanction_date DESC
		%s
	`, isActiveExpr, clause, buildPagingClause(filter, len(args)+1))

	args = appendPagingArgs(args, filter)

	var records []domain.SanctionRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("error listing sanctions: %w", err)
	}

	return records, nil
}

func (r *sanctionRepository) ListActiveTypes(ctx context.Context, storeID int64) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT r.sanction_type
		FROM sanction_records r
		WHERE r.store_id = $1 AND %s
	`, isActiveExpr)

	var types []string
	if err := r.db.SelectContext(ctx, &types, query, storeID); err != nil {
		return nil, fmt.Errorf("error listing active sanctions for store %d: %w", storeID, err)
	}

	return types, nil
}

func (r *sanctionRepository) RevokeSanction(ctx context.Context, id string) error {
	query := `UPDATE sanction_records SET revoked_at = now() WHERE id = $1 AND revoked_at IS NULL`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("error revoking sanction %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking revoke of sanction %s: %w", id, err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
