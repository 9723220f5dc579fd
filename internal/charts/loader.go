package charts

import (
	"context"
	"database/sql"
	"fmt"

	"musiccharts/pkg/models"
)

// Loader merges a normalized batch into the store. One call is one
// transaction: either the whole scrape cycle lands or none of it does,
// which keeps the rank-change views consistent when they compare the
// latest date against history.
type Loader struct {
	DB *sql.DB
}

func NewLoader(db *sql.DB) *Loader {
	return &Loader{DB: db}
}

// LoadStats counts rows actually written. Re-running the same batch
// yields all-zero stats because every statement is insert-or-ignore
// (or an upsert whose WHERE clause no longer matches).
type LoadStats struct {
	Entries int
	Songs   int
	Artists int
	Genres  int
	Links   int
}

// Load applies the batch inside a single transaction.
//
// Chart entries colliding on (platform, region, rank, date) are skipped
// silently: that collision is the idempotence mechanism, not an error.
// Songs and artists follow the smallest-name-wins rule: the stored title
// or name is replaced only when the incoming one sorts lower; all other
// song attributes keep their first observed values. Genres and song-genre
// links are insert-or-ignore only. Any other failure aborts and rolls
// back the whole batch.
func (l *Loader) Load(ctx context.Context, batch models.Batch) (LoadStats, error) {
	var stats LoadStats

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	songStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO songs (song_id, title, release_date, artwork_url, song_url)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(song_id) DO UPDATE SET
		  title = excluded.title
		WHERE excluded.title < songs.title
	`)
	if err != nil {
		return stats, fmt.Errorf("prepare songs stmt: %w", err)
	}
	defer songStmt.Close()

	artistStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO artists (artist_id, name)
		VALUES (?, ?)
		ON CONFLICT(artist_id) DO UPDATE SET
		  name = excluded.name
		WHERE excluded.name < artists.name
	`)
	if err != nil {
		return stats, fmt.Errorf("prepare artists stmt: %w", err)
	}
	defer artistStmt.Close()

	genreStmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO genres (genre_id, name, url)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return stats, fmt.Errorf("prepare genres stmt: %w", err)
	}
	defer genreStmt.Close()

	entryStmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO chart_entries (platform, region, rank, song_id, artist_id, chart_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return stats, fmt.Errorf("prepare entries stmt: %w", err)
	}
	defer entryStmt.Close()

	linkStmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO song_genres (song_id, genre_id)
		VALUES (?, ?)
	`)
	if err != nil {
		return stats, fmt.Errorf("prepare links stmt: %w", err)
	}
	defer linkStmt.Close()

	// Reference entities first so genre links never hit a missing parent.
	for _, s := range batch.Songs {
		res, err := songStmt.ExecContext(ctx,
			s.SongID, s.Title, nullable(s.ReleaseDate), nullable(s.ArtworkURL), nullable(s.SongURL))
		if err != nil {
			return stats, fmt.Errorf("upsert song %s: %w", s.SongID, err)
		}
		stats.Songs += affected(res)
	}

	for _, a := range batch.Artists {
		res, err := artistStmt.ExecContext(ctx, a.ArtistID, a.Name)
		if err != nil {
			return stats, fmt.Errorf("upsert artist %s: %w", a.ArtistID, err)
		}
		stats.Artists += affected(res)
	}

	for _, g := range batch.Genres {
		res, err := genreStmt.ExecContext(ctx, g.GenreID, g.Name, nullable(g.URL))
		if err != nil {
			return stats, fmt.Errorf("insert genre %d: %w", g.GenreID, err)
		}
		stats.Genres += affected(res)
	}

	for _, e := range batch.Entries {
		res, err := entryStmt.ExecContext(ctx,
			e.Platform, e.Region, e.Rank, nullable(e.SongID), nullable(e.ArtistID), e.ChartDate)
		if err != nil {
			return stats, fmt.Errorf("insert entry %s/%s/%d/%s: %w", e.Platform, e.Region, e.Rank, e.ChartDate, err)
		}
		stats.Entries += affected(res)
	}

	for _, ln := range batch.Links {
		res, err := linkStmt.ExecContext(ctx, ln.SongID, ln.GenreID)
		if err != nil {
			return stats, fmt.Errorf("insert song-genre %s/%d: %w", ln.SongID, ln.GenreID, err)
		}
		stats.Links += affected(res)
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("commit tx: %w", err)
	}
	return stats, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func affected(res sql.Result) int {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return int(n)
}
