package scraper

import (
	"context"
	"log"
	"time"

	"musiccharts/pkg/models"
)

// Source is implemented by each chart provider. A source fetches one
// region's ranked list and maps it into RawChartRecord.
type Source interface {
	Name() string
	Platform() string
	FetchRegion(ctx context.Context, region string) ([]models.RawChartRecord, error)
}

// Runner walks the region list sequentially, pausing between requests to
// stay polite with the provider. A failed region is logged and skipped;
// the run continues with fewer records rather than aborting.
type Runner struct {
	Source  Source
	Regions []string
	Pause   time.Duration
	Date    string // chart date stamped on every record, YYYY-MM-DD
}

func NewRunner(src Source, regions []string) *Runner {
	return &Runner{
		Source:  src,
		Regions: regions,
		Pause:   500 * time.Millisecond,
		Date:    time.Now().Format("2006-01-02"),
	}
}

// RunResult carries the raw records of one cycle plus region coverage
// counters for the run log.
type RunResult struct {
	Records       []models.RawChartRecord
	RegionsOK     int
	RegionsFailed int
}

// Run fetches every region once. Only the network fetch blocks; results
// accumulate in memory for a single load at the end of the cycle.
func (r *Runner) Run(ctx context.Context) RunResult {
	var result RunResult

	for i, region := range r.Regions {
		log.Printf("[scraper] fetching %s region %d/%d: %s", r.Source.Name(), i+1, len(r.Regions), region)

		records, err := r.Source.FetchRegion(ctx, region)
		if err != nil {
			log.Printf("[scraper] region %s failed: %v", region, err)
			result.RegionsFailed++
		} else {
			if len(records) == 0 {
				log.Printf("[scraper] region %s returned no records", region)
			}
			for j := range records {
				records[j].ChartDate = r.Date
			}
			result.Records = append(result.Records, records...)
			result.RegionsOK++
		}

		if i < len(r.Regions)-1 && r.Pause > 0 {
			time.Sleep(r.Pause)
		}
	}

	return result
}
