package scraper

import (
	"context"
	"errors"
	"testing"

	"musiccharts/pkg/models"
)

// fakeSource exercises the runner without a network.
type fakeSource struct {
	fail map[string]bool
}

func (f *fakeSource) Name() string     { return "fake" }
func (f *fakeSource) Platform() string { return "FakePlatform" }

func (f *fakeSource) FetchRegion(ctx context.Context, region string) ([]models.RawChartRecord, error) {
	if f.fail[region] {
		return nil, errors.New("boom")
	}
	return []models.RawChartRecord{
		{Platform: f.Platform(), Region: region, Rank: 1, SongTitle: "Song", SongID: "s-" + region},
	}, nil
}

func TestRunnerSkipsFailedRegions(t *testing.T) {
	runner := NewRunner(&fakeSource{fail: map[string]bool{"gb": true}}, []string{"us", "gb", "de"})
	runner.Pause = 0
	runner.Date = "2024-06-01"

	result := runner.Run(context.Background())

	if result.RegionsOK != 2 || result.RegionsFailed != 1 {
		t.Fatalf("coverage: got %d ok / %d failed, want 2/1", result.RegionsOK, result.RegionsFailed)
	}
	if len(result.Records) != 2 {
		t.Fatalf("records: got %d, want 2", len(result.Records))
	}
	for _, r := range result.Records {
		if r.ChartDate != "2024-06-01" {
			t.Errorf("record %s missing chart date stamp: %q", r.SongID, r.ChartDate)
		}
		if r.Region == "gb" {
			t.Errorf("failed region leaked into results: %+v", r)
		}
	}
}
