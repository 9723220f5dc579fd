package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"musiccharts/internal/charts"
	"musiccharts/pkg/database"
	"musiccharts/pkg/models"
)

// Dumps the analytical views to CSV for the reporting layer. Rank-change
// exports carry the latest-date filter by default, matching what the
// dashboard consumes.
func main() {
	var (
		chartsOut  = flag.String("charts", "data/charts_with_genres.csv", "output CSV path for the latest genre-resolved chart")
		dailyOut   = flag.String("daily", "data/rank_changes_daily.csv", "output CSV path for daily rank changes")
		weeklyOut  = flag.String("weekly", "data/rank_changes_weekly.csv", "output CSV path for weekly rank changes")
		regionsOut = flag.String("regions", "data/region_names.csv", "output CSV path for the region catalog")
		allDates   = flag.Bool("all-dates", false, "export rank changes for the full history, not just the latest date")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	repo := charts.NewRepo(db)

	if err := exportLatestChart(ctx, repo, *chartsOut); err != nil {
		log.Fatalf("export charts failed: %v", err)
	}
	if err := exportChanges(ctx, repo.DailyChanges, !*allDates, *dailyOut); err != nil {
		log.Fatalf("export daily changes failed: %v", err)
	}
	if err := exportChanges(ctx, repo.WeeklyChanges, !*allDates, *weeklyOut); err != nil {
		log.Fatalf("export weekly changes failed: %v", err)
	}
	if err := exportRegions(ctx, repo, *regionsOut); err != nil {
		log.Fatalf("export regions failed: %v", err)
	}

	log.Printf("exported charts to %s, daily to %s, weekly to %s, regions to %s",
		*chartsOut, *dailyOut, *weeklyOut, *regionsOut)
}

func createCSV(outPath string) (*os.File, *csv.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	return f, csv.NewWriter(f), nil
}

func exportLatestChart(ctx context.Context, repo *charts.Repo, outPath string) error {
	rows, err := repo.LatestChart(ctx, "")
	if err != nil {
		return err
	}

	f, w, err := createCSV(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	header := []string{"platform", "region", "rank", "chart_date", "song_id", "song_title",
		"artist_id", "artist_name", "release_date", "artwork_url", "song_url", "genre"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		if err := w.Write([]string{
			r.Platform, r.Region, strconv.Itoa(r.Rank), r.ChartDate,
			r.SongID, r.SongTitle, r.ArtistID, r.ArtistName,
			r.ReleaseDate, r.ArtworkURL, r.SongURL, r.Genre,
		}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func exportChanges(
	ctx context.Context,
	query func(ctx context.Context, region string, latestOnly bool) ([]models.RankChangeRow, error),
	latestOnly bool,
	outPath string,
) error {
	rows, err := query(ctx, "", latestOnly)
	if err != nil {
		return err
	}

	f, w, err := createCSV(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	header := []string{"platform", "region", "chart_date", "rank", "song_id", "song_title",
		"artist_name", "prev_date", "prev_rank", "rank_change"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		prevRank := ""
		if r.PrevRank != nil {
			prevRank = strconv.Itoa(*r.PrevRank)
		}
		if err := w.Write([]string{
			r.Platform, r.Region, r.ChartDate, strconv.Itoa(r.Rank),
			r.SongID, r.SongTitle, r.ArtistName,
			r.PrevDate, prevRank, strconv.Itoa(r.RankChange),
		}); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func exportRegions(ctx context.Context, repo *charts.Repo, outPath string) error {
	regions, err := repo.Regions(ctx)
	if err != nil {
		return err
	}

	f, w, err := createCSV(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := w.Write([]string{"code", "name"}); err != nil {
		return err
	}
	for _, r := range regions {
		if err := w.Write([]string{r.Code, r.Name}); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", outPath, err)
	}
	return nil
}
