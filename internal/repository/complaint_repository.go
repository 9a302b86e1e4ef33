package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/jmoiron/sqlx"
)

type ComplaintRepository interface {
	GetWeights(ctx context.Context) ([]domain.ComplaintWeight, error)
	UpsertWeight(ctx context.Context, weight *domain.ComplaintWeight) error
	UpsertRecord(ctx context.Context, record *domain.ComplaintRecord) error
	ListRecords(ctx context.Context, filter domain.ReportFilter) ([]domain.ComplaintRecord, error)
	GetRecordForPeriod(ctx context.Context, storeID int64, period domain.Period) (*domain.ComplaintRecord, error)
}

type complaintRepository struct {
	db *sqlx.DB
}

func NewComplaintRepository(db *sqlx.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) GetWeights(ctx context.Context) ([]domain.ComplaintWeight, error) {
	query := `SELECT channel, weight, updated_at FROM complaint_weights ORDER BY channel`

	var weights []domain.ComplaintWeight
	if err := r.db.SelectContext(ctx, &weights, query); err != nil {
		return nil, fmt.Errorf("error listing complaint weights: %w", err)
	}

	return weights, nil
}

func (r *complaintRepository) UpsertWeight(ctx context.Context, weight *domain.ComplaintWeight) error {
	query := `
		INSERT INTO complaint_weights (channel, weight, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (channel) DO UPDATE SET weight = EXCLUDED.weight, updated_at = now()
		RETURNING updated_at
	`

	if err := r.db.QueryRowxContext(ctx, query, weight.Channel, weight.Weight).
		Scan(&weight.UpdatedAt); err != nil {
		return fmt.Errorf("error upserting complaint weight %s: %w", weight.Channel, err)
	}

	return nil
}

// UpsertRecord writes one store month of complaint counts. Resubmitting the
// same period replaces the previous row, last write wins.
func (r *complaintRepository) UpsertRecord(ctx context.Context, record *domain.ComplaintRecord) error {
	query := `
		INSERT INTO complaint_records
			(id, store_id, period_year, period_month,
			 whatsapp, social_media, gmaps, online_order, late_handling,
			 weighted_total, kpi_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (store_id, period_year, period_month) DO UPDATE SET
			whatsapp = EXCLUDED.whatsapp,
			social_media = EXCLUDED.social_media,
			gmaps = EXCLUDED.gmaps,
			online_order = EXCLUDED.online_order,
			late_handling = EXCLUDED.late_handling,
			weighted_total = EXCLUDED.weighted_total,
			kpi_score = EXCLUDED.kpi_score
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(ctx, query,
		record.ID, record.StoreID, record.Period.Year, record.Period.Month,
		record.WhatsApp, record.SocialMedia, record.GMaps, record.OnlineOrder, record.LateHandling,
		record.WeightedTotal, record.KPIScore,
	).Scan(&record.ID, &record.CreatedAt); err != nil {
		return fmt.Errorf("error upserting complaint record: %w", err)
	}

	return nil
}

func (r *complaintRepository) ListRecords(ctx context.Context, filter domain.ReportFilter) ([]domain.ComplaintRecord, error) {
	clause, args := buildPeriodFilterClause(filter, "c.", 1)

	query := fmt.Sprintf(`
		SELECT c.id, c.store_id, s.name AS store_name,
		       c.period_year, c.period_month,
		       c.whatsapp, c.social_media, c.gmaps, c.online_order, c.late_handling,
		       c.weighted_total, c.kpi_score, c.created_at
		FROM complaint_records c
		JOIN stores s ON s.id = c.store_id
		%s
		ORDER BY c.period_year DESC, c.period_month DESC, s.name
		%s
	`, clause, buildPagingClause(filter, len(args)+1))

	args = appendPagingArgs(args, filter)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing complaint records: %w", err)
	}
	defer rows.Close()

	var records []domain.ComplaintRecord
	for rows.Next() {
		var rec domain.ComplaintRecord
		if err := rows.Scan(
			&rec.ID, &rec.StoreID, &rec.StoreName,
			&rec.Period.Year, &rec.Period.Month,
			&rec.WhatsApp, &rec.SocialMedia, &rec.GMaps, &rec.OnlineOrder, &rec.LateHandling,
			&rec.WeightedTotal, &rec.KPIScore, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning complaint record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *complaintRepository) GetRecordForPeriod(ctx context.Context, storeID int64, period domain.Period) (*domain.ComplaintRecord, error) {
	records, err := r.ListRecords(ctx, domain.ReportFilter{
		StoreIDs: []int64{storeID},
		Year:     period.Year,
		Month:    period.Month,
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// ErrNotFound reports a missing row to callers that distinguish absence
// from failure.
var ErrNotFound = errors.New("not found")
