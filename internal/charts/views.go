package charts

import (
	"context"
	"database/sql"
	"fmt"

	"musiccharts/pkg/models"
)

// Repo is the read side over the snapshot store and its derived views.
// All three views compute over the full history; pass latestOnly to the
// rank-change queries to get just the newest day, the filter consumers
// normally want.
type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// LatestChart returns the genre-resolved chart for the most recent date
// in the store. An empty region returns all regions.
func (r *Repo) LatestChart(ctx context.Context, region string) ([]models.ChartRow, error) {
	q := `
		SELECT platform, region, rank, chart_date,
		       song_id, song_title, artist_id, artist_name,
		       release_date, artwork_url, song_url, genre_name
		FROM view_charts_with_genres
	`
	var args []any
	if region != "" {
		q += " WHERE region = ?"
		args = append(args, region)
	}
	q += " ORDER BY region, rank, genre_name"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("latest chart query: %w", err)
	}
	defer rows.Close()

	var out []models.ChartRow
	for rows.Next() {
		var (
			row         models.ChartRow
			songID      sql.NullString
			songTitle   sql.NullString
			artistID    sql.NullString
			artistName  sql.NullString
			releaseDate sql.NullString
			artworkURL  sql.NullString
			songURL     sql.NullString
			genre       sql.NullString
		)
		if err := rows.Scan(
			&row.Platform, &row.Region, &row.Rank, &row.ChartDate,
			&songID, &songTitle, &artistID, &artistName,
			&releaseDate, &artworkURL, &songURL, &genre,
		); err != nil {
			return nil, fmt.Errorf("latest chart scan: %w", err)
		}
		row.SongID = songID.String
		row.SongTitle = songTitle.String
		row.ArtistID = artistID.String
		row.ArtistName = artistName.String
		row.ReleaseDate = releaseDate.String
		row.ArtworkURL = artworkURL.String
		row.SongURL = songURL.String
		row.Genre = genre.String
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("latest chart rows: %w", err)
	}
	return out, nil
}

// DailyChanges returns day-over-day rank deltas.
func (r *Repo) DailyChanges(ctx context.Context, region string, latestOnly bool) ([]models.RankChangeRow, error) {
	return r.rankChanges(ctx, "view_rank_changes_daily", region, latestOnly)
}

// WeeklyChanges returns rank deltas against the entry exactly seven days
// earlier.
func (r *Repo) WeeklyChanges(ctx context.Context, region string, latestOnly bool) ([]models.RankChangeRow, error) {
	return r.rankChanges(ctx, "view_rank_changes_weekly", region, latestOnly)
}

func (r *Repo) rankChanges(ctx context.Context, view, region string, latestOnly bool) ([]models.RankChangeRow, error) {
	q := `
		SELECT platform, region, chart_date, rank,
		       song_id, song_title, artist_name,
		       prev_date, prev_rank, rank_change
		FROM ` + view

	var where []string
	var args []any
	if latestOnly {
		where = append(where, "chart_date = (SELECT MAX(chart_date) FROM chart_entries)")
	}
	if region != "" {
		where = append(where, "region = ?")
		args = append(args, region)
	}
	for i, w := range where {
		if i == 0 {
			q += " WHERE " + w
		} else {
			q += " AND " + w
		}
	}
	q += " ORDER BY region, chart_date, rank"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s query: %w", view, err)
	}
	defer rows.Close()

	var out []models.RankChangeRow
	for rows.Next() {
		var (
			row        models.RankChangeRow
			songID     sql.NullString
			songTitle  sql.NullString
			artistName sql.NullString
			prevDate   sql.NullString
			prevRank   sql.NullInt64
		)
		if err := rows.Scan(
			&row.Platform, &row.Region, &row.ChartDate, &row.Rank,
			&songID, &songTitle, &artistName,
			&prevDate, &prevRank, &row.RankChange,
		); err != nil {
			return nil, fmt.Errorf("%s scan: %w", view, err)
		}
		row.SongID = songID.String
		row.SongTitle = songTitle.String
		row.ArtistName = artistName.String
		row.PrevDate = prevDate.String
		if prevRank.Valid {
			n := int(prevRank.Int64)
			row.PrevRank = &n
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", view, err)
	}
	return out, nil
}

// Dates returns the distinct chart dates present, oldest first.
func (r *Repo) Dates(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT DISTINCT chart_date FROM chart_entries ORDER BY chart_date
	`)
	if err != nil {
		return nil, fmt.Errorf("dates query: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("dates scan: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dates rows: %w", err)
	}
	return out, nil
}

// MaxDate returns the newest chart date present, or "" on an empty store.
func (r *Repo) MaxDate(ctx context.Context) (string, error) {
	var d sql.NullString
	err := r.DB.QueryRowContext(ctx, `SELECT MAX(chart_date) FROM chart_entries`).Scan(&d)
	if err != nil {
		return "", fmt.Errorf("max date scan: %w", err)
	}
	return d.String, nil
}

// SongHistory returns every observation of one song in one region,
// ordered by date.
func (r *Repo) SongHistory(ctx context.Context, platform, region, songID string) ([]models.ChartEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT platform, region, rank, song_id, artist_id, chart_date
		FROM chart_entries
		WHERE platform = ? AND region = ? AND song_id = ?
		ORDER BY chart_date
	`, platform, region, songID)
	if err != nil {
		return nil, fmt.Errorf("song history query: %w", err)
	}
	defer rows.Close()

	var out []models.ChartEntry
	for rows.Next() {
		var (
			e        models.ChartEntry
			sid      sql.NullString
			artistID sql.NullString
		)
		if err := rows.Scan(&e.Platform, &e.Region, &e.Rank, &sid, &artistID, &e.ChartDate); err != nil {
			return nil, fmt.Errorf("song history scan: %w", err)
		}
		e.SongID = sid.String
		e.ArtistID = artistID.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("song history rows: %w", err)
	}
	return out, nil
}

// DeleteGenre removes a genre; its song links go with it via the cascade.
// Returns the number of genre rows deleted (0 or 1).
func (r *Repo) DeleteGenre(ctx context.Context, genreID int64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM genres WHERE genre_id = ?`, genreID)
	if err != nil {
		return 0, fmt.Errorf("delete genre %d: %w", genreID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete genre rows affected: %w", err)
	}
	return n, nil
}

// Regions returns the region catalog, ordered by code.
func (r *Repo) Regions(ctx context.Context) ([]models.RegionName, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT code, name FROM region_names ORDER BY code
	`)
	if err != nil {
		return nil, fmt.Errorf("regions query: %w", err)
	}
	defer rows.Close()

	var out []models.RegionName
	for rows.Next() {
		var rn models.RegionName
		if err := rows.Scan(&rn.Code, &rn.Name); err != nil {
			return nil, fmt.Errorf("regions scan: %w", err)
		}
		out = append(out, rn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("regions rows: %w", err)
	}
	return out, nil
}
