package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/jmoiron/sqlx"
)

type EvaluationRepository interface {
	ListTemplates(ctx context.Context) ([]domain.ChecklistTemplate, error)
	GetTemplateItems(ctx context.Context, templateID int64) ([]domain.ChecklistTemplateItem, error)
	CreateSubmission(ctx context.Context, submission *domain.EvaluationSubmission, items []domain.EvaluationItemResult) error
	ListSubmissions(ctx context.Context, filter domain.ReportFilter) ([]domain.EvaluationSubmission, error)
	GetSubmission(ctx context.Context, id string) (*domain.EvaluationSubmission, []domain.EvaluationItemResult, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type evaluationRepository struct {
	db *sqlx.DB
	tx txRunner
}

func NewEvaluationRepository(db *sqlx.DB, tx txRunner) EvaluationRepository {
	return &evaluationRepository{db: db, tx: tx}
}

func (r *evaluationRepository) ListTemplates(ctx context.Context) ([]domain.ChecklistTemplate, error) {
	query := `SELECT id, name, created_at FROM checklist_templates ORDER BY id`

	var templates []domain.ChecklistTemplate
	if err := r.db.SelectContext(ctx, &templates, query); err != nil {
		return nil, fmt.Errorf("error listing checklist templates: %w", err)
	}

	return templates, nil
}

func (r *evaluationRepository) GetTemplateItems(ctx context.Context, templateID int64) ([]domain.ChecklistTemplateItem, error) {
	query := `
		SELECT id, template_id, text, point_value, sort_order
		FROM checklist_template_items
		WHERE template_id = $1
		ORDER BY sort_order, id
	`

	var items []domain.ChecklistTemplateItem
	if err := r.db.SelectContext(ctx, &items, query, templateID); err != nil {
		return nil, fmt.Errorf("error listing template items: %w", err)
	}

	return items, nil
}

// CreateSubmission persists the submission header and all item results in
// one transaction. Scores arrive already computed and are stored verbatim.
func (r *evaluationRepository) CreateSubmission(ctx context.Context, submission *domain.EvaluationSubmission, items []domain.EvaluationItemResult) error {
	return r.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		headerQuery := `
			INSERT INTO evaluation_submissions
				(id, store_id, template_id, evaluated_by, period_year, period_month,
				 initial_total, adjusted_total, earned_points, percentage, kpi_score)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING created_at
		`
		if err := tx.QueryRowxContext(ctx, headerQuery,
			submission.ID, submission.StoreID, submission.TemplateID, submission.EvaluatedBy,
			submission.Period.Year, submission.Period.Month,
			submission.InitialTotal, submission.AdjustedTotal, submission.EarnedPoints,
			submission.Percentage, submission.KPIScore,
		).Scan(&submission.CreatedAt); err != nil {
			return fmt.Errorf("error inserting submission: %w", err)
		}

		itemQuery := `
			INSERT INTO evaluation_item_results (submission_id, item_id, status, score)
			VALUES ($1, $2, $3, $4)
		`
		for i := range items {
			items[i].SubmissionID = submission.ID
			if _, err := tx.ExecContext(ctx, itemQuery,
				submission.ID, items[i].ItemID, items[i].Status, items[i].Score); err != nil {
				return fmt.Errorf("error inserting item result: %w", err)
			}
		}

		return nil
	})
}

func (r *evaluationRepository) ListSubmissions(ctx context.Context, filter domain.ReportFilter) ([]domain.EvaluationSubmission, error) {
	clause, args := buildPeriodFilterClause(filter, "e.", 1)

	query := fmt.Sprintf(`
		SELECT e.id, e.store_id, s.name AS store_name, e.template_id,
		       t.name AS template_name, e.evaluated_by,
		       e.period_year, e.period_month,
		       e.initial_total, e.adjusted_total, e.earned_points,
		       e.percentage, e.kpi_score, e.created_at
		FROM evaluation_submissions e
		JOIN stores s ON s.id = e.store_id
		JOIN checklist_templates t ON t.id = e.template_id
		%s
		ORDER BY e.created_at DESC
		%s
	`, clause, buildPagingClause(filter, len(args)+1))

	args = appendPagingArgs(args, filter)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing submissions: %w", err)
	}
	defer rows.Close()

	var submissions []domain.EvaluationSubmission
	for rows.Next() {
		var sub domain.EvaluationSubmission
		if err := rows.Scan(
			&sub.ID, &sub.StoreID, &sub.StoreName, &sub.TemplateID,
			&sub.TemplateName, &sub.EvaluatedBy,
			&sub.Period.Year, &sub.Period.Month,
			&sub.InitialTotal, &sub.AdjustedTotal, &sub.EarnedPoints,
			&sub.Percentage, &sub.KPIScore, &sub.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning submission: %w", err)
		}
		submissions = append(submissions, sub)
	}

	return submissions, rows.Err()
}

func (r *evaluationRepository) GetSubmission(ctx context.Context, id string) (*domain.EvaluationSubmission, []domain.EvaluationItemResult, error) {
	headerQuery := `
		SELECT e.id, e.store_id, s.name AS store_name, e.template_id,
		       t.name AS template_name, e.evaluated_by,
		       e.period_year, e.period_month,
		       e.initial_total, e.adjusted_total, e.earned_points,
		       e.percentage, e.kpi_score, e.created_at
		FROM evaluation_submissions e
		JOIN stores s ON s.id = e.store_id
		JOIN checklist_templates t ON t.id = e.template_id
		WHERE e.id = $1
	`

	var sub domain.EvaluationSubmission
	row := r.db.QueryRowxContext(ctx, headerQuery, id)
	if err := row.Scan(
		&sub.ID, &sub.StoreID, &sub.StoreName, &sub.TemplateID,
		&sub.TemplateName, &sub.EvaluatedBy,
		&sub.Period.Year, &sub.Period.Month,
		&sub.InitialTotal, &sub.AdjustedTotal, &sub.EarnedPoints,
		&sub.Percentage, &sub.KPIScore, &sub.CreatedAt,
	); err != nil {
		return nil, nil, fmt.Errorf("error getting submission %s: %w", id, err)
	}

	itemQuery := `
		SELECT r.id, r.submission_id, r.item_id, i.text, i.point_value, r.status, r.score
		FROM evaluation_item_results r
		JOIN checklist_template_items i ON i.id = r.item_id
		WHERE r.submission_id = $1
		ORDER BY i.sort_order, i.id
	`

	var items []domain.EvaluationItemResult
	if err := r.db.SelectContext(ctx, &items, itemQuery, id); err != nil {
		return nil, nil, fmt.Errorf("error getting submission items: %w", err)
	}

	return &sub, items, nil
}

// buildPeriodFilterClause constructs a WHERE clause for store/period filters.
func buildPeriodFilterClause(filter domain.ReportFilter, alias string, startIndex int) (string, []interface{}) {
	var (
		clauses []string
		args    []interface{}
	)
	idx := startIndex

	if filter.Year > 0 {
		clauses = append(clauses, fmt.Sprintf("%speriod_year = $%d", alias, idx))
		args = append(args, filter.Year)
		idx++
	}

	if filter.Month > 0 {
		clauses = append(clauses, fmt.Sprintf("%speriod_month = $%d", alias, idx))
		args = append(args, filter.Month)
		idx++
	}

	if len(filter.StoreIDs) > 0 {
		placeholders := make([]string, len(filter.StoreIDs))
		for i, id := range filter.StoreIDs {
			placeholders[i] = fmt.Sprintf("$%d", idx)
			args = append(args, id)
			idx++
		}
		clauses = append(clauses, fmt.Sprintf("%sstore_id IN (%s)", alias, strings.Join(placeholders, ",")))
	}

	if len(clauses) == 0 {
		return "", nil
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func buildPagingClause(filter domain.ReportFilter, startIndex int) string {
	if filter.PageSize <= 0 {
		return ""
	}
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", startIndex, startIndex+1)
}

func appendPagingArgs(args []interface{}, filter domain.ReportFilter) []interface{} {
	if filter.PageSize <= 0 {
		return args
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	return append(args, filter.PageSize, (page-1)*filter.PageSize)
}
