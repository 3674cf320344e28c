package storage

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yasunstudio/sppg-app-sub005/internal/contracts"
)

// DB is the slice of pgxpool.Pool the repository needs. Narrowed so pgxmock
// can stand in during tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db  DB
	now func() time.Time
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// WithClock replaces the clock used for derived fields. Intended for tests.
func (r *Repository) WithClock(now func() time.Time) *Repository {
	r.now = now
	return r
}

// Historical loads past records for a domain created on or after since.
// Unrecognized domains yield an empty set, not an error.
func (r *Repository) Historical(ctx context.Context, domain contracts.Domain, since time.Time) ([]contracts.HistoricalRecord, error) {
	switch domain {
	case contracts.DomainProduction:
		return r.historicalProduction(ctx, since)
	case contracts.DomainInventory:
		return r.historicalInventory(ctx, since)
	case contracts.DomainDistribution:
		return r.historicalDistribution(ctx, since)
	default:
		return []contracts.HistoricalRecord{}, nil
	}
}

// Live loads current records for a domain. A non-empty ids list restricts to
// those IDs; otherwise the domain's active subset is selected.
func (r *Repository) Live(ctx context.Context, domain contracts.Domain, ids []string) ([]contracts.LiveCondition, error) {
	switch domain {
	case contracts.DomainProduction:
		return r.liveProduction(ctx, ids)
	case contracts.DomainInventory:
		return r.liveInventory(ctx, ids)
	case contracts.DomainDistribution:
		return r.liveDistribution(ctx, ids)
	default:
		return []contracts.LiveCondition{}, nil
	}
}

func (r *Repository) historicalProduction(ctx context.Context, since time.Time) ([]contracts.HistoricalRecord, error) {
	rows, err := r.db.Query(ctx, `
        SELECT b.id::text, b.created_at, COALESCE(b.quality_score, 0),
               COALESCE(r.prep_time_minutes, 0), COALESCE(r.cook_time_minutes, 0),
               COALESCE(r.difficulty, ''), b.planned_quantity
        FROM production_batches b
        LEFT JOIN recipes r ON r.id = b.recipe_id
        WHERE b.created_at >= $1
        ORDER BY b.created_at DESC
    `, since)
	if err != nil {
		return nil, fmt.Errorf("query historical production: %w", err)
	}
	defer rows.Close()

	records := make([]contracts.HistoricalRecord, 0)
	for rows.Next() {
		var rec contracts.HistoricalRecord
		var prep, cook int
		var difficulty string
		var plannedQuantity float64
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.QualityScore, &prep, &cook, &difficulty, &plannedQuantity); err != nil {
			return nil, fmt.Errorf("scan historical production: %w", err)
		}
		rec.Domain = contracts.DomainProduction
		rec.RecipeComplexity = contracts.RecipeComplexity(prep, cook, difficulty, plannedQuantity)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Repository) historicalInventory(ctx context.Context, since time.Time) ([]contracts.HistoricalRecord, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id::text, created_at, quality_status, raw_material_category
        FROM inventory_items
        WHERE created_at >= $1
        ORDER BY created_at DESC
    `, since)
	if err != nil {
		return nil, fmt.Errorf("query historical inventory: %w", err)
	}
	defer rows.Close()

	records := make([]contracts.HistoricalRecord, 0)
	for rows.Next() {
		var rec contracts.HistoricalRecord
		var status string
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &status, &rec.RawMaterialCategory); err != nil {
			return nil, fmt.Errorf("scan historical inventory: %w", err)
		}
		rec.Domain = contracts.DomainInventory
		rec.QualityScore = contracts.InventoryStatusScore(status)
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Repository) historicalDistribution(ctx context.Context, since time.Time) ([]contracts.HistoricalRecord, error) {
	rows, err := r.db.Query(ctx, `
        SELECT d.id::text, d.created_at, d.departed_at, d.arrived_at,
               EXISTS (SELECT 1 FROM quality_checks q WHERE q.distribution_id = d.id) AS checked
        FROM distributions d
        WHERE d.created_at >= $1
        ORDER BY d.created_at DESC
    `, since)
	if err != nil {
		return nil, fmt.Errorf("query historical distribution: %w", err)
	}
	defer rows.Close()

	records := make([]contracts.HistoricalRecord, 0)
	for rows.Next() {
		var rec contracts.HistoricalRecord
		var departed, arrived *time.Time
		var checked bool
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &departed, &arrived, &checked); err != nil {
			return nil, fmt.Errorf("scan historical distribution: %w", err)
		}
		rec.Domain = contracts.DomainDistribution
		if checked {
			rec.QualityScore = 0.85
		} else {
			rec.QualityScore = 0.8
		}
		if departed != nil && arrived != nil {
			rec.TransitTimeHours = arrived.Sub(*departed).Hours()
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *Repository) liveProduction(ctx context.Context, ids []string) ([]contracts.LiveCondition, error) {
	rows, err := r.db.Query(ctx, `
        SELECT b.id::text, b.status, b.planned_quantity, COALESCE(b.actual_quantity, 0),
               b.started_at, COALESCE(b.quality_score, 0),
               COALESCE(r.prep_time_minutes, 0), COALESCE(r.cook_time_minutes, 0),
               COALESCE(r.difficulty, '')
        FROM production_batches b
        LEFT JOIN recipes r ON r.id = b.recipe_id
        WHERE CASE WHEN COALESCE(array_length($1::text[], 1), 0) > 0
              THEN b.id::text = ANY($1::text[])
              ELSE b.status IN ('PENDING', 'IN_PROGRESS') END
        ORDER BY b.created_at DESC
    `, ids)
	if err != nil {
		return nil, fmt.Errorf("query live production: %w", err)
	}
	defer rows.Close()

	conditions := make([]contracts.LiveCondition, 0)
	for rows.Next() {
		var cond contracts.LiveCondition
		var prep, cook int
		var difficulty string
		if err := rows.Scan(&cond.ID, &cond.Status, &cond.PlannedQuantity, &cond.ActualQuantity,
			&cond.StartedAt, &cond.CurrentQualityScore, &prep, &cook, &difficulty); err != nil {
			return nil, fmt.Errorf("scan live production: %w", err)
		}
		cond.Domain = contracts.DomainProduction
		cond.Complexity = contracts.RecipeComplexity(prep, cook, difficulty, cond.PlannedQuantity)
		conditions = append(conditions, cond)
	}
	return conditions, rows.Err()
}

func (r *Repository) liveInventory(ctx context.Context, ids []string) ([]contracts.LiveCondition, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id::text, raw_material_category, quantity, quality_status, expiry_date, created_at
        FROM inventory_items
        WHERE CASE WHEN COALESCE(array_length($1::text[], 1), 0) > 0
              THEN id::text = ANY($1::text[])
              ELSE quality_status <> 'REJECTED' END
        ORDER BY created_at DESC
    `, ids)
	if err != nil {
		return nil, fmt.Errorf("query live inventory: %w", err)
	}
	defer rows.Close()

	now := r.now()
	conditions := make([]contracts.LiveCondition, 0)
	for rows.Next() {
		var cond contracts.LiveCondition
		var expiry *time.Time
		var createdAt time.Time
		if err := rows.Scan(&cond.ID, &cond.RawMaterialCategory, &cond.Quantity, &cond.QualityStatus, &expiry, &createdAt); err != nil {
			return nil, fmt.Errorf("scan live inventory: %w", err)
		}
		cond.Domain = contracts.DomainInventory
		cond.DaysSinceCreated = int(math.Floor(now.Sub(createdAt).Hours() / 24))
		if expiry != nil {
			days := int(math.Floor(expiry.Sub(now).Hours() / 24))
			cond.DaysUntilExpiry = &days
		}
		conditions = append(conditions, cond)
	}
	return conditions, rows.Err()
}

func (r *Repository) liveDistribution(ctx context.Context, ids []string) ([]contracts.LiveCondition, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id::text, status, planned_time
        FROM distributions
        WHERE CASE WHEN COALESCE(array_length($1::text[], 1), 0) > 0
              THEN id::text = ANY($1::text[])
              ELSE status IN ('PENDING', 'IN_TRANSIT') END
        ORDER BY created_at DESC
    `, ids)
	if err != nil {
		return nil, fmt.Errorf("query live distribution: %w", err)
	}
	defer rows.Close()

	now := r.now()
	conditions := make([]contracts.LiveCondition, 0)
	for rows.Next() {
		var cond contracts.LiveCondition
		if err := rows.Scan(&cond.ID, &cond.Status, &cond.PlannedTime); err != nil {
			return nil, fmt.Errorf("scan live distribution: %w", err)
		}
		cond.Domain = contracts.DomainDistribution
		if cond.PlannedTime != nil {
			cond.TransitTimeHours = math.Max(0, math.Floor(cond.PlannedTime.Sub(now).Hours()))
		}
		conditions = append(conditions, cond)
	}
	return conditions, rows.Err()
}
