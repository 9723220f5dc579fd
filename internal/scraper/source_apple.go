package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"musiccharts/pkg/models"
)

// Apple Music marketing-tools RSS base (public, no auth)
const appleBase = "https://rss.marketingtools.apple.com"

// AppleSource fetches the "most played 100 songs" feed per region.
type AppleSource struct {
	Client  *http.Client
	BaseURL string
	Limit   int // max ranked items per region
}

func NewAppleSource() *AppleSource {
	return &AppleSource{
		Client:  &http.Client{Timeout: 15 * time.Second},
		BaseURL: appleBase,
		Limit:   100,
	}
}

func (s *AppleSource) Name() string     { return "applemusic" }
func (s *AppleSource) Platform() string { return "AppleMusic" }

type appleFeedResponse struct {
	Feed struct {
		Results []struct {
			ID            string `json:"id"`
			ArtistID      string `json:"artistId"`
			Name          string `json:"name"`
			ArtistName    string `json:"artistName"`
			ReleaseDate   string `json:"releaseDate"`
			ArtworkURL100 string `json:"artworkUrl100"`
			URL           string `json:"url"`
			Genres        []struct {
				GenreID string `json:"genreId"`
				Name    string `json:"name"`
				URL     string `json:"url"`
			} `json:"genres"`
		} `json:"results"`
	} `json:"feed"`
}

// FetchRegion fetches one region's chart. Rank is the item's position in
// the feed, starting at 1. Items keep their rank even when the feed
// omits song or artist ids.
func (s *AppleSource) FetchRegion(ctx context.Context, region string) ([]models.RawChartRecord, error) {
	u := fmt.Sprintf("%s/api/v2/%s/music/most-played/100/songs.json", s.BaseURL, region)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("applemusic: build request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("applemusic: request: %w", err)
	}

	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("applemusic: status %d: %s", resp.StatusCode, string(body))
	}

	var feed appleFeedResponse
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("applemusic: decode: %w", err)
	}
	if feed.Feed.Results == nil {
		return nil, fmt.Errorf("applemusic: response missing feed.results for region %s", region)
	}

	results := feed.Feed.Results
	if len(results) > s.Limit {
		results = results[:s.Limit]
	}

	records := make([]models.RawChartRecord, 0, len(results))
	for i, item := range results {
		genres := make([]models.RawGenre, 0, len(item.Genres))
		for _, g := range item.Genres {
			genres = append(genres, models.RawGenre{
				GenreID: g.GenreID,
				Name:    g.Name,
				URL:     g.URL,
			})
		}

		records = append(records, models.RawChartRecord{
			Platform:    s.Platform(),
			Region:      region,
			Rank:        i + 1,
			SongTitle:   item.Name,
			ArtistName:  item.ArtistName,
			SongID:      item.ID,
			ArtistID:    item.ArtistID,
			ReleaseDate: item.ReleaseDate,
			ArtworkURL:  item.ArtworkURL100,
			SongURL:     item.URL,
			Genres:      genres,
		})
	}

	return records, nil
}
