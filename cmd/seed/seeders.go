package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
)

func openDB(c *cli.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func runSeedStores(c *cli.Context) error {
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

	if err := seedStores(ctx, tx, c.String("stores-file")); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	log.Println("Store seeding completed successfully!")
	return nil
}

func seedStores(ctx context.Context, tx *sql.Tx, filePath string) error {
	log.Printf("Seeding stores from %s\n", filePath)

	records, header, err := readCSV(filePath)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO stores (name, city, total_crew, avg_customers_per_day, target_sales, cogs_target, opex_target_pct)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (name) DO UPDATE SET
            city = EXCLUDED.city,
            total_crew = EXCLUDED.total_crew,
            avg_customers_per_day = EXCLUDED.avg_customers_per_day,
            target_sales = EXCLUDED.target_sales,
            cogs_target = EXCLUDED.cogs_target,
            opex_target_pct = EXCLUDED.opex_target_pct,
            updated_at = now()
    `

	count := 0
	for _, record := range records {
		name := field(header, record, "name")
		if name == "" {
			return fmt.Errorf("store row %d has no name", count+1)
		}

		totalCrew, err := intField(header, record, "total_crew")
		if err != nil {
			return fmt.Errorf("store %s: %w", name, err)
		}

		args := []interface{}{
			name,
			field(header, record, "city"),
			totalCrew,
		}
		for _, col := range []string{"avg_customers_per_day", "target_sales", "cogs_target", "opex_target_pct"} {
			value, err := floatField(header, record, col)
			if err != nil {
				return fmt.Errorf("store %s: %w", name, err)
			}
			args = append(args, value)
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to upsert store %s: %w", name, err)
		}
		count++
	}

	log.Printf("Successfully seeded %d stores\n", count)
	return nil
}

func runSeedChecklistItems(c *cli.Context) error {
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

	if err := seedChecklistItems(ctx, tx, c.String("items-file")); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	log.Println("Checklist item seeding completed successfully!")
	return nil
}

func seedChecklistItems(ctx context.Context, tx *sql.Tx, filePath string) error {
	log.Printf("Seeding checklist items from %s\n", filePath)

	records, header, err := readCSV(filePath)
	if err != nil {
		return err
	}

	templateIDs, err := loadTemplateIDs(ctx, tx)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO checklist_template_items (template_id, text, point_value, sort_order)
        VALUES ($1, $2, $3, $4)
    `

	count := 0
	for _, record := range records {
		templateName := field(header, record, "template")
		templateID, ok := templateIDs[templateName]
		if !ok {
			return fmt.Errorf("unknown checklist template %q", templateName)
		}

		pointValue, err := floatField(header, record, "point_value")
		if err != nil {
			return fmt.Errorf("template %s: %w", templateName, err)
		}
		sortOrder, err := intField(header, record, "sort_order")
		if err != nil {
			return fmt.Errorf("template %s: %w", templateName, err)
		}

		if _, err := tx.ExecContext(ctx, query,
			templateID,
			field(header, record, "text"),
			pointValue,
			sortOrder,
		); err != nil {
			return fmt.Errorf("failed to insert checklist item: %w", err)
		}
		count++
	}

	log.Printf("Successfully seeded %d checklist items\n", count)
	return nil
}

func runSeedWeights(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	records, header, err := readCSV(c.String("weights-file"))
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO complaint_weights (channel, weight, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (channel) DO UPDATE SET weight = EXCLUDED.weight, updated_at = now()
    `

	count := 0
	for _, record := range records {
		channel := field(header, record, "channel")
		if channel == "" {
			return fmt.Errorf("weight row %d has no channel", count+1)
		}
		weight, err := floatField(header, record, "weight")
		if err != nil {
			return fmt.Errorf("channel %s: %w", channel, err)
		}
		if weight < 0 {
			return fmt.Errorf("channel %s: weight must not be negative", channel)
		}

		if _, err := db.ExecContext(ctx, query, channel, weight); err != nil {
			return fmt.Errorf("failed to upsert weight for %s: %w", channel, err)
		}
		count++
	}

	log.Printf("Successfully seeded %d complaint weights\n", count)
	return nil
}

func loadTemplateIDs(ctx context.Context, tx *sql.Tx) (map[string]int64, error) {
	rows, err := tx.QueryContext(ctx, "SELECT name, id FROM checklist_templates")
	if err != nil {
		return nil, fmt.Errorf("failed to load checklist templates: %w", err)
	}
	defer rows.Close()

	result := make(map[string]int64)
	for rows.Next() {
		var (
			name string
			id   int64
		)
		if err := rows.Scan(&name, &id); err != nil {
			return nil, fmt.Errorf("failed to scan checklist template: %w", err)
		}
		result[name] = id
	}
	return result, rows.Err()
}

func readCSV(filePath string) ([][]string, []string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var records [][]string
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		records = append(records, record)
	}
	return records, header, nil
}

func field(header, record []string, column string) string {
	for i, h := range header {
		if h == column && i < len(record) {
			return strings.TrimSpace(record[i])
		}
	}
	return ""
}

func intField(header, record []string, column string) (int, error) {
	raw := field(header, record, column)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", column, raw)
	}
	return value, nil
}

func floatField(header, record []string, column string) (float64, error) {
	raw := field(header, record, column)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", column, raw)
	}
	return value, nil
}
