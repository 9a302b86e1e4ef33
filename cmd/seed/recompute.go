package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/andresuchdata/storeops/internal/kpi"
	"github.com/urfave/cli/v2"
)

// runRecompute re-derives every stored KPI score from the raw figures in
// the database. Used after a scoring rule or weight change so historical
// months match what the API would compute today.
func runRecompute(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := recomputeFinancials(ctx, tx); err != nil {
		return err
	}
	if err := recomputeComplaints(ctx, tx); err != nil {
		return err
	}
	if err := recomputeEvaluations(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	log.Println("Score recomputation completed successfully!")
	return nil
}

func recomputeFinancials(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, `
        SELECT id, total_sales, target_sales, cogs_achieved, cogs_target,
               total_opex, opex_target_pct, total_crew
        FROM financial_snapshots
    `)
	if err != nil {
		return fmt.Errorf("failed to load financial snapshots: %w", err)
	}
	defer rows.Close()

	type update struct {
		id     string
		scores kpi.FinancialScores
	}
	var updates []update

	for rows.Next() {
		var (
			id    string
			input kpi.FinancialInput
		)
		if err := rows.Scan(&id, &input.TotalSales, &input.TargetSales, &input.COGSAchieved,
			&input.COGSTarget, &input.TotalOpex, &input.OpexTargetPct, &input.TotalCrew); err != nil {
			return fmt.Errorf("failed to scan financial snapshot: %w", err)
		}
		updates = append(updates, update{id: id, scores: kpi.ScoreFinancial(input)})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate financial snapshots: %w", err)
	}

	for _, u := range updates {
		if _, err := tx.ExecContext(ctx, `
            UPDATE financial_snapshots
            SET sales_score = $2, cogs_score = $3, opex_score = $4, productivity_score = $5
            WHERE id = $1
        `, u.id, u.scores.Sales, u.scores.COGS, u.scores.Opex, u.scores.Productivity); err != nil {
			return fmt.Errorf("failed to update financial snapshot %s: %w", u.id, err)
		}
	}

	log.Printf("Recomputed %d financial snapshots\n", len(updates))
	return nil
}

func recomputeComplaints(ctx context.Context, tx *sql.Tx) error {
	weights, err := loadComplaintWeights(ctx, tx)
	if err != nil {
		return err
	}

	rows, err := tx.QueryContext(ctx, `
        SELECT r.id, r.whatsapp, r.social_media, r.gmaps, r.online_order, r.late_handling,
               s.avg_customers_per_day
        FROM complaint_records r
        JOIN stores s ON s.id = r.store_id
    `)
	if err != nil {
		return fmt.Errorf("failed to load complaint records: %w", err)
	}
	defer rows.Close()

	type update struct {
		id       string
		weighted float64
		score    float64
	}
	var updates []update

	for rows.Next() {
		var (
			id           string
			avgCustomers float64
		)
		var whatsapp, socialMedia, gmaps, onlineOrder, lateHandling int
		if err := rows.Scan(&id, &whatsapp, &socialMedia, &gmaps, &onlineOrder, &lateHandling, &avgCustomers); err != nil {
			return fmt.Errorf("failed to scan complaint record: %w", err)
		}

		counts := map[string]int{
			kpi.ChannelWhatsApp:     whatsapp,
			kpi.ChannelSocialMedia:  socialMedia,
			kpi.ChannelGMaps:        gmaps,
			kpi.ChannelOnlineOrder:  onlineOrder,
			kpi.ChannelLateHandling: lateHandling,
		}
		weighted, err := kpi.WeightedComplaints(counts, weights)
		if err != nil {
			return fmt.Errorf("complaint record %s: %w", id, err)
		}
		updates = append(updates, update{
			id:       id,
			weighted: weighted,
			score:    kpi.ComplaintScore(weighted, avgCustomers),
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate complaint records: %w", err)
	}

	for _, u := range updates {
		if _, err := tx.ExecContext(ctx, `
            UPDATE complaint_records SET weighted_total = $2, kpi_score = $3 WHERE id = $1
        `, u.id, u.weighted, u.score); err != nil {
			return fmt.Errorf("failed to update complaint record %s: %w", u.id, err)
		}
	}

	log.Printf("Recomputed %d complaint records\n", len(updates))
	return nil
}

func loadComplaintWeights(ctx context.Context, tx *sql.Tx) (map[string]float64, error) {
	rows, err := tx.QueryContext(ctx, "SELECT channel, weight FROM complaint_weights")
	if err != nil {
		return nil, fmt.Errorf("failed to load complaint weights: %w", err)
	}
	defer rows.Close()

	weights := make(map[string]float64)
	for rows.Next() {
		var (
			channel string
			weight  float64
		)
		if err := rows.Scan(&channel, &weight); err != nil {
			return nil, fmt.Errorf("failed to scan complaint weight: %w", err)
		}
		weights[channel] = weight
	}
	return weights, rows.Err()
}

func recomputeEvaluations(ctx context.Context, tx *sql.Tx) error {
	rows, err := tx.QueryContext(ctx, `
        SELECT r.submission_id, i.point_value, r.status
        FROM evaluation_item_results r
        JOIN checklist_template_items i ON i.id = r.item_id
        ORDER BY r.submission_id
    `)
	if err != nil {
		return fmt.Errorf("failed to load evaluation items: %w", err)
	}
	defer rows.Close()

	itemsBySubmission := make(map[string][]kpi.ChecklistItem)
	for rows.Next() {
		var (
			submissionID string
			pointValue   float64
			status       string
		)
		if err := rows.Scan(&submissionID, &pointValue, &status); err != nil {
			return fmt.Errorf("failed to scan evaluation item: %w", err)
		}
		itemsBySubmission[submissionID] = append(itemsBySubmission[submissionID], kpi.ChecklistItem{
			PointValue: pointValue,
			Status:     kpi.ItemStatus(status),
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate evaluation items: %w", err)
	}

	for submissionID, items := range itemsBySubmission {
		result, err := kpi.AdjustChecklist(items)
		if err != nil {
			return fmt.Errorf("submission %s: %w", submissionID, err)
		}
		if _, err := tx.ExecContext(ctx, `
            UPDATE evaluation_submissions
            SET initial_total = $2, adjusted_total = $3, earned_points = $4,
                percentage = $5, kpi_score = $6
            WHERE id = $1
        `, submissionID, result.InitialTotal, result.AdjustedTotal, result.EarnedPoints,
			result.Percentage, result.Score); err != nil {
			return fmt.Errorf("failed to update submission %s: %w", submissionID, err)
		}
	}

	log.Printf("Recomputed %d evaluation submissions\n", len(itemsBySubmission))
	return nil
}
