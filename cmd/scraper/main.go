package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"musiccharts/internal/charts"
	"musiccharts/internal/scraper"
	"musiccharts/pkg/database"
)

// One full scrape cycle: fetch every region, normalize, then load the
// whole batch in a single transaction. Killing the process before the
// final commit persists nothing; the next scheduled run is idempotent.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}
	if err := charts.SeedRegions(ctx, db); err != nil {
		log.Fatalf("seed regions failed: %v", err)
	}

	runLog := charts.NewRunLog(db)
	runID, err := runLog.Start(ctx)
	if err != nil {
		log.Fatalf("start run failed: %v", err)
	}
	log.Printf("[scraper] run %s started", runID)

	runner := scraper.NewRunner(scraper.NewAppleSource(), charts.RegionCodes())
	if p := os.Getenv("MUSICCHARTS_PAUSE_MS"); p != "" {
		if ms, err := strconv.Atoi(p); err == nil && ms >= 0 {
			runner.Pause = time.Duration(ms) * time.Millisecond
		}
	}

	result := runner.Run(ctx)
	log.Printf("[scraper] fetched %d records (%d regions ok, %d failed)",
		len(result.Records), result.RegionsOK, result.RegionsFailed)

	batch := scraper.NormalizeBatch(result.Records)

	stats, err := charts.NewLoader(db).Load(ctx, batch)
	if err != nil {
		log.Fatalf("load failed: %v", err)
	}
	log.Printf("[scraper] loaded: %d entries, %d songs, %d artists, %d genres, %d links",
		stats.Entries, stats.Songs, stats.Artists, stats.Genres, stats.Links)

	if err := runLog.Finish(ctx, runID, result.RegionsOK, result.RegionsFailed, len(result.Records)); err != nil {
		log.Printf("[scraper] finish run failed: %v", err)
	}

	log.Printf("[scraper] run %s complete", runID)
}
