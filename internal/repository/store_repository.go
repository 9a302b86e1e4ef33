package repository

import (
	"context"
	"fmt"

	"github.com/andresuchdata/storeops/internal/domain"
	"github.com/jmoiron/sqlx"
)

type StoreRepository interface {
	ListStores(ctx context.Context) ([]domain.Store, error)
	GetStore(ctx context.Context, id int64) (*domain.Store, error)
	CreateStore(ctx context.Context, store *domain.Store) error
	UpdateStore(ctx context.Context, store *domain.Store) error
}

type storeRepository struct {
	db *sqlx.DB
}

func NewStoreRepository(db *sqlx.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) ListStores(ctx context.Context) ([]domain.Store, error) {
	query := `
		SELECT id, name, city, total_crew, avg_customers_per_day,
		       target_sales, cogs_target, opex_target_pct, created_at, updated_at
		FROM stores
		ORDER BY name
	`

	var stores []domain.Store
	if err := r.db.SelectContext(ctx, &stores, query); err != nil {
		return nil, fmt.Errorf("error listing stores: %w", err)
	}

	return stores, nil
}

func (r *storeRepository) GetStore(ctx context.Context, id int64) (*domain.Store, error) {
	query := `
		SELECT id, name, city, total_crew, avg_customers_per_day,
		       target_sales, cogs_target, opex_target_pct, created_at, updated_at
		FROM stores
		WHERE id = $1
	`

	var store domain.Store
	if err := r.db.GetContext(ctx, &store, query, id); err != nil {
		return nil, fmt.Errorf("error getting store %d: %w", id, err)
	}

	return &store, nil
}

func (r *storeRepository) CreateStore(ctx context.Context, store *domain.Store) error {
	query := `
		INSERT INTO stores (name, city, total_crew, avg_customers_per_day,
		                    target_sales, cogs_target, opex_target_pct)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(ctx, query,
		store.Name, store.City, store.TotalCrew, store.AvgCustomersPerDay,
		store.TargetSales, store.COGSTarget, store.OpexTargetPct,
	).Scan(&store.ID, &store.CreatedAt, &store.UpdatedAt); err != nil {
		return fmt.Errorf("error creating store: %w", err)
	}

	return nil
}

func (r *storeRepository) UpdateStore(ctx context.Context, store *domain.Store) error {
	query := `
		UPDATE stores
		SET name = $2, city = $3, total_crew = $4, avg_customers_per_day = $5,
		    target_sales = $6, cogs_target = $7, opex_target_pct = $8, updated_at = now()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		store.ID, store.Name, store.City, store.TotalCrew, store.AvgCustomersPerDay,
		store.TargetSales, store.COGSTarget, store.OpexTargetPct)
	if err != nil {
		return fmt.Errorf("error updating store %d: %w", store.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking update of store %d: %w", store.ID, err)
	}
	if rows == 0 {
		return fmt.Errorf("store %d not found", store.ID)
	}

	return nil
}
