package scraper

import (
	"strconv"

	"musiccharts/pkg/models"
)

// Normalize converts one raw record into its candidate entities. Pure
// transformation; storage never sees a raw record.
//
// The chart entry is always emitted, rank coverage comes first. Song and
// artist candidates need both an id and a name; genre and link candidates
// additionally need the song id, since a link without its song key can
// never be joined. Genre ids that fail to parse are dropped, and genres
// repeated within one record are deduplicated before emission.
func Normalize(r models.RawChartRecord) models.Batch {
	batch := models.Batch{
		Entries: []models.ChartEntry{{
			Platform:  r.Platform,
			Region:    r.Region,
			Rank:      r.Rank,
			SongID:    r.SongID,
			ArtistID:  r.ArtistID,
			ChartDate: r.ChartDate,
		}},
	}

	if r.SongID != "" && r.SongTitle != "" {
		batch.Songs = append(batch.Songs, models.Song{
			SongID:      r.SongID,
			Title:       r.SongTitle,
			ReleaseDate: r.ReleaseDate,
			ArtworkURL:  r.ArtworkURL,
			SongURL:     r.SongURL,
		})
	}

	if r.ArtistID != "" && r.ArtistName != "" {
		batch.Artists = append(batch.Artists, models.Artist{
			ArtistID: r.ArtistID,
			Name:     r.ArtistName,
		})
	}

	if r.SongID == "" || len(r.Genres) == 0 {
		return batch
	}

	seen := make(map[int64]bool, len(r.Genres))
	for _, g := range r.Genres {
		if g.GenreID == "" || g.Name == "" {
			continue
		}
		id, err := strconv.ParseInt(g.GenreID, 10, 64)
		if err != nil {
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true

		batch.Genres = append(batch.Genres, models.Genre{
			GenreID: id,
			Name:    g.Name,
			URL:     g.URL,
		})
		batch.Links = append(batch.Links, models.SongGenre{
			SongID:  r.SongID,
			GenreID: id,
		})
	}

	return batch
}

// NormalizeBatch normalizes a full cycle's raw records into one batch.
func NormalizeBatch(records []models.RawChartRecord) models.Batch {
	var batch models.Batch
	for _, r := range records {
		batch.Merge(Normalize(r))
	}
	return batch
}
