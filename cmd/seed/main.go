package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/yasunstudio/sppg-app-sub005/internal/config"
	"github.com/yasunstudio/sppg-app-sub005/internal/storage"
)

// Seeds demo rows so the prediction endpoint has something to analyze in a
// fresh local environment.

func main() {
	count := flag.Int("count", 10, "rows to seed per table")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	dbPool, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("seed database error: %v", err)
	}
	defer dbPool.Close()

	if err := storage.RunMigrations(ctx, dbPool); err != nil {
		log.Fatalf("seed migration error: %v", err)
	}

	repo := storage.NewRepository(dbPool)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	recipeIDs := make([]string, 0, 4)
	recipes := []struct {
		name       string
		difficulty string
		prep, cook int
	}{
		{"Nasi Ayam Goreng", "MEDIUM", 30, 45},
		{"Sayur Sop", "EASY", 20, 25},
		{"Rendang Daging", "HARD", 45, 120},
		{"Bubur Kacang Hijau", "EASY", 15, 30},
	}
	for _, r := range recipes {
		id, err := repo.InsertRecipe(ctx, r.name, r.difficulty, r.prep, r.cook)
		if err != nil {
			log.Fatalf("seed recipe error: %v", err)
		}
		recipeIDs = append(recipeIDs, id)
	}

	statuses := []string{"PENDING", "IN_PROGRESS", "COMPLETED"}
	for i := 0; i < *count; i++ {
		status := statuses[rng.Intn(len(statuses))]
		createdAt := now.Add(-time.Duration(rng.Intn(28*24)) * time.Hour)
		var startedAt *time.Time
		var quality float64
		if status != "PENDING" {
			t := createdAt.Add(time.Duration(rng.Intn(6)) * time.Hour)
			startedAt = &t
		}
		if status == "COMPLETED" {
			quality = 0.7 + rng.Float64()*0.3
		}
		planned := float64(200 + rng.Intn(1400))
		if err := repo.InsertProductionBatch(ctx, recipeIDs[rng.Intn(len(recipeIDs))], status, planned, quality, startedAt, createdAt); err != nil {
			log.Fatalf("seed batch error: %v", err)
		}
	}

	categories := []string{"PROTEIN", "VEGETABLE", "GRAIN", "DAIRY"}
	qualityStatuses := []string{"GOOD", "GOOD", "FAIR", "POOR"}
	for i := 0; i < *count; i++ {
		createdAt := now.Add(-time.Duration(rng.Intn(40*24)) * time.Hour)
		expiry := now.Add(time.Duration(1+rng.Intn(14)) * 24 * time.Hour)
		if err := repo.InsertInventoryItem(ctx,
			categories[rng.Intn(len(categories))],
			qualityStatuses[rng.Intn(len(qualityStatuses))],
			float64(20+rng.Intn(480)), &expiry, createdAt); err != nil {
			log.Fatalf("seed inventory error: %v", err)
		}
	}

	deliveryStatuses := []string{"PENDING", "IN_TRANSIT", "DELIVERED"}
	for i := 0; i < *count; i++ {
		status := deliveryStatuses[rng.Intn(len(deliveryStatuses))]
		createdAt := now.Add(-time.Duration(rng.Intn(28*24)) * time.Hour)
		planned := now.Add(time.Duration(1+rng.Intn(12)) * time.Hour)
		var departed, arrived *time.Time
		if status == "DELIVERED" {
			d := createdAt.Add(time.Hour)
			a := d.Add(time.Duration(1+rng.Intn(10)) * time.Hour)
			departed, arrived = &d, &a
		}
		id, err := repo.InsertDistribution(ctx, status, &planned, departed, arrived, createdAt)
		if err != nil {
			log.Fatalf("seed distribution error: %v", err)
		}
		if status == "DELIVERED" && rng.Intn(2) == 0 {
			if err := repo.InsertQualityCheck(ctx, id, "DELIVERY", rng.Intn(5) > 0); err != nil {
				log.Fatalf("seed quality check error: %v", err)
			}
		}
	}

	log.Printf("seeded %d production batches, %d inventory items, %d distributions", *count, *count, *count)
}
