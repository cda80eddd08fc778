package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/loadrush/loadrush-backend/internal/repositories"
	"github.com/loadrush/loadrush-backend/internal/shared/config"
	"github.com/loadrush/loadrush-backend/internal/shared/database"
)

// Backfills pickup/drop addresses on loads created before the address fields
// existed. Loads that already carry full addresses are left alone.
func main() {
	var dryRun bool
	flag.BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")
	flag.Parse()

	cfg := config.LoadConfig()
	db := database.NewDB(cfg.DatabaseURL)
	defer database.Close(db)

	loadRepo := repositories.NewLoadRepo(db)

	loads, err := loadRepo.AllLoads()
	if err != nil {
		log.Fatalf("❌ Failed to fetch loads: %v", err)
	}
	log.Printf("🔄 Scanning %d loads for missing addresses (dry-run: %t)", len(loads), dryRun)

	var updated, skipped, failed int
	for _, load := range loads {
		if load.HasAddresses() {
			skipped++
			continue
		}

		pickup := syntheticAddress(load.Origin)
		drop := syntheticAddress(load.Destination)

		if dryRun {
			log.Printf("📝 Would update %s: %q -> %q", load.ID, pickup, drop)
			updated++
			continue
		}

		if err := loadRepo.UpdateAddresses(load.ID.String(), pickup, drop); err != nil {
			log.Printf("⚠️ Failed to update %s: %v", load.ID, err)
			failed++
			continue
		}
		updated++
	}

	log.Printf("✅ Backfill done: %d updated, %d skipped, %d failed", updated, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// syntheticAddress expands a bare city name into a usable terminal address.
func syntheticAddress(city string) string {
	if city == "" {
		city = "Unknown"
	}
	return fmt.Sprintf("Central Freight Terminal, %s, USA", city)
}
