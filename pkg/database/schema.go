package database

import (
	"database/sql"
	"fmt"
)

// genericGenre is the provider's umbrella tag attached to almost every
// song. It is stored like any other genre but hidden by the resolved
// chart view whenever a more specific genre exists.
const genericGenre = "Music"

// schema holds every table, index and view. All statements are
// IF NOT EXISTS so Migrate is safe to run before every cycle.
const schema = `
CREATE TABLE IF NOT EXISTS chart_entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  platform TEXT NOT NULL,
  region TEXT NOT NULL,
  rank INTEGER NOT NULL,
  song_id TEXT,
  artist_id TEXT,
  chart_date TEXT NOT NULL,
  UNIQUE (platform, region, rank, chart_date)
);

CREATE TABLE IF NOT EXISTS songs (
  song_id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  release_date TEXT,
  artwork_url TEXT,
  song_url TEXT
);

CREATE TABLE IF NOT EXISTS artists (
  artist_id TEXT PRIMARY KEY,
  name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS genres (
  genre_id INTEGER PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  url TEXT
);

CREATE TABLE IF NOT EXISTS song_genres (
  song_id TEXT NOT NULL,
  genre_id INTEGER NOT NULL,
  PRIMARY KEY (song_id, genre_id),
  FOREIGN KEY (genre_id) REFERENCES genres(genre_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS region_names (
  code TEXT PRIMARY KEY,
  name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS scrape_runs (
  run_id TEXT PRIMARY KEY,
  started_at TEXT NOT NULL,
  finished_at TEXT,
  regions_ok INTEGER NOT NULL DEFAULT 0,
  regions_failed INTEGER NOT NULL DEFAULT 0,
  records INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_chart_entries_lookup
  ON chart_entries (platform, region, chart_date, rank);
CREATE INDEX IF NOT EXISTS idx_chart_entries_song
  ON chart_entries (platform, region, song_id, chart_date);
CREATE INDEX IF NOT EXISTS idx_song_genres_genre
  ON song_genres (genre_id);
`

// views are computed on query, never materialized.
//
// view_charts_with_genres resolves the latest day's chart against songs,
// artists and genres. The generic umbrella genre is filtered inside the
// genre subquery: a song keeps only its specific genres, and a song with
// nothing more specific comes out with a NULL genre via the outer join.
//
// view_rank_changes_daily compares each entry against the chronologically
// previous entry for the same (platform, region, song). A missing previous
// entry or a gap of more than one day scores as a re-entry (101 - rank).
// The previous entry is found with a correlated subquery rather than a
// window lag so that entries with a NULL song id never pair up.
//
// view_rank_changes_weekly compares against the entry exactly seven days
// earlier via a date(-7 days) join; no match scores as a re-entry.
const views = `
CREATE VIEW IF NOT EXISTS view_charts_with_genres AS
SELECT
  c.platform,
  c.region,
  c.rank,
  c.chart_date,
  c.song_id,
  s.title AS song_title,
  c.artist_id,
  a.name AS artist_name,
  s.release_date,
  s.artwork_url,
  s.song_url,
  g.name AS genre_name
FROM chart_entries c
LEFT JOIN songs s ON s.song_id = c.song_id
LEFT JOIN artists a ON a.artist_id = c.artist_id
LEFT JOIN (
  SELECT sg.song_id, ge.name
  FROM song_genres sg
  JOIN genres ge ON ge.genre_id = sg.genre_id
  WHERE ge.name <> '` + genericGenre + `'
) g ON g.song_id = c.song_id
WHERE c.chart_date = (SELECT MAX(chart_date) FROM chart_entries);

CREATE VIEW IF NOT EXISTS view_rank_changes_daily AS
SELECT
  c.platform,
  c.region,
  c.chart_date,
  c.rank,
  c.song_id,
  s.title AS song_title,
  a.name AS artist_name,
  p.chart_date AS prev_date,
  p.rank AS prev_rank,
  CASE
    WHEN p.id IS NULL THEN 101 - c.rank
    WHEN julianday(c.chart_date) - julianday(p.chart_date) = 1 THEN p.rank - c.rank
    ELSE 101 - c.rank
  END AS rank_change
FROM chart_entries c
LEFT JOIN chart_entries p ON p.id = (
  SELECT id FROM chart_entries
  WHERE platform = c.platform
    AND region = c.region
    AND song_id = c.song_id
    AND chart_date < c.chart_date
  ORDER BY chart_date DESC
  LIMIT 1
)
LEFT JOIN songs s ON s.song_id = c.song_id
LEFT JOIN artists a ON a.artist_id = c.artist_id;

CREATE VIEW IF NOT EXISTS view_rank_changes_weekly AS
SELECT
  c.platform,
  c.region,
  c.chart_date,
  c.rank,
  c.song_id,
  s.title AS song_title,
  a.name AS artist_name,
  p.chart_date AS prev_date,
  p.rank AS prev_rank,
  CASE
    WHEN p.rank IS NULL THEN 101 - c.rank
    ELSE p.rank - c.rank
  END AS rank_change
FROM chart_entries c
LEFT JOIN chart_entries p
  ON p.platform = c.platform
  AND p.region = c.region
  AND p.song_id = c.song_id
  AND p.chart_date = date(c.chart_date, '-7 days')
LEFT JOIN songs s ON s.song_id = c.song_id
LEFT JOIN artists a ON a.artist_id = c.artist_id;
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	if _, err := db.Exec(views); err != nil {
		return fmt.Errorf("apply views: %w", err)
	}
	return nil
}
