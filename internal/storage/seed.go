package storage

import (
	"context"
	"fmt"
	"time"
)

// Write helpers used by cmd/seed to populate demo data. The predictor itself
// never writes.

func (r *Repository) InsertRecipe(ctx context.Context, name, difficulty string, prepMinutes, cookMinutes int) (string, error) {
	var id string
	err := r.db.QueryRow(ctx, `
        INSERT INTO recipes (name, difficulty, prep_time_minutes, cook_time_minutes)
        VALUES ($1, $2, $3, $4)
        RETURNING id::text
    `, name, difficulty, prepMinutes, cookMinutes).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert recipe: %w", err)
	}
	return id, nil
}

func (r *Repository) InsertProductionBatch(ctx context.Context, recipeID, status string, plannedQuantity, qualityScore float64, startedAt *time.Time, createdAt time.Time) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO production_batches (recipe_id, status, planned_quantity, quality_score, started_at, created_at)
        VALUES (NULLIF($1, '')::uuid, $2, $3, NULLIF($4, 0), $5, $6)
    `, recipeID, status, plannedQuantity, qualityScore, startedAt, createdAt)
	if err != nil {
		return fmt.Errorf("insert production batch: %w", err)
	}
	return nil
}

func (r *Repository) InsertInventoryItem(ctx context.Context, category, qualityStatus string, quantity float64, expiry *time.Time, createdAt time.Time) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO inventory_items (raw_material_category, quality_status, quantity, expiry_date, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `, category, qualityStatus, quantity, expiry, createdAt)
	if err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

func (r *Repository) InsertDistribution(ctx context.Context, status string, plannedTime, departedAt, arrivedAt *time.Time, createdAt time.Time) (string, error) {
	var id string
	err := r.db.QueryRow(ctx, `
        INSERT INTO distributions (status, planned_time, departed_at, arrived_at, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id::text
    `, status, plannedTime, departedAt, arrivedAt, createdAt).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("insert distribution: %w", err)
	}
	return id, nil
}

func (r *Repository) InsertQualityCheck(ctx context.Context, distributionID, checkpoint string, passed bool) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO quality_checks (distribution_id, checkpoint, passed)
        VALUES ($1::uuid, $2, $3)
    `, distributionID, checkpoint, passed)
	if err != nil {
		return fmt.Errorf("insert quality check: %w", err)
	}
	return nil
}
