package charts

import (
	"context"
	"database/sql"
	"testing"

	"musiccharts/pkg/database"
	"musiccharts/pkg/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// a second connection would see a different in-memory database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		t.Fatalf("pragma foreign_keys: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func tableCount(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func testBatch(date string) models.Batch {
	return models.Batch{
		Entries: []models.ChartEntry{
			{Platform: "AppleMusic", Region: "us", Rank: 1, SongID: "s1", ArtistID: "a1", ChartDate: date},
			{Platform: "AppleMusic", Region: "us", Rank: 2, SongID: "s2", ArtistID: "a2", ChartDate: date},
		},
		Songs: []models.Song{
			{SongID: "s1", Title: "Midnight Drive", ArtworkURL: "http://img/s1.jpg"},
			{SongID: "s2", Title: "Glass House"},
		},
		Artists: []models.Artist{
			{ArtistID: "a1", Name: "The Lanterns"},
			{ArtistID: "a2", Name: "Nova Reyes"},
		},
		Genres: []models.Genre{
			{GenreID: 21, Name: "Rock"},
			{GenreID: 14, Name: "Pop"},
		},
		Links: []models.SongGenre{
			{SongID: "s1", GenreID: 21},
			{SongID: "s2", GenreID: 14},
		},
	}
}

func TestLoadIdempotent(t *testing.T) {
	db := openTestDB(t)
	loader := NewLoader(db)
	ctx := context.Background()

	batch := testBatch("2024-06-01")

	stats, err := loader.Load(ctx, batch)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if stats.Entries != 2 || stats.Songs != 2 || stats.Artists != 2 || stats.Genres != 2 || stats.Links != 2 {
		t.Fatalf("unexpected first-load stats: %+v", stats)
	}

	stats, err = loader.Load(ctx, batch)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if stats != (LoadStats{}) {
		t.Fatalf("second load should write nothing, got %+v", stats)
	}

	for _, tc := range []struct {
		table string
		want  int
	}{
		{"chart_entries", 2},
		{"songs", 2},
		{"artists", 2},
		{"genres", 2},
		{"song_genres", 2},
	} {
		if got := tableCount(t, db, tc.table); got != tc.want {
			t.Errorf("%s: got %d rows, want %d", tc.table, got, tc.want)
		}
	}
}

func TestEntryUniqueness(t *testing.T) {
	db := openTestDB(t)
	loader := NewLoader(db)
	ctx := context.Background()

	batch := models.Batch{
		Entries: []models.ChartEntry{
			{Platform: "AppleMusic", Region: "us", Rank: 1, SongID: "s1", ChartDate: "2024-06-01"},
			{Platform: "AppleMusic", Region: "us", Rank: 1, SongID: "s2", ChartDate: "2024-06-01"},
		},
	}
	if _, err := loader.Load(ctx, batch); err != nil {
		t.Fatalf("load: %v", err)
	}

	if got := tableCount(t, db, "chart_entries"); got != 1 {
		t.Fatalf("expected 1 chart entry after rank collision, got %d", got)
	}

	// same rank on a different day is a new observation
	more := models.Batch{
		Entries: []models.ChartEntry{
			{Platform: "AppleMusic", Region: "us", Rank: 1, SongID: "s1", ChartDate: "2024-06-02"},
		},
	}
	if _, err := loader.Load(ctx, more); err != nil {
		t.Fatalf("load next day: %v", err)
	}
	if got := tableCount(t, db, "chart_entries"); got != 2 {
		t.Fatalf("expected 2 chart entries, got %d", got)
	}
}

func TestSmallestNameWins(t *testing.T) {
	db := openTestDB(t)
	loader := NewLoader(db)
	ctx := context.Background()

	names := []string{"Banana Song", "Apple Song", "Cherry Song"}
	for _, name := range names {
		batch := models.Batch{
			Songs:   []models.Song{{SongID: "s1", Title: name}},
			Artists: []models.Artist{{ArtistID: "a1", Name: name}},
		}
		if _, err := loader.Load(ctx, batch); err != nil {
			t.Fatalf("load %q: %v", name, err)
		}
	}

	var title string
	if err := db.QueryRow(`SELECT title FROM songs WHERE song_id = 's1'`).Scan(&title); err != nil {
		t.Fatalf("scan title: %v", err)
	}
	if title != "Apple Song" {
		t.Errorf("song title: got %q, want lexicographic minimum %q", title, "Apple Song")
	}

	var name string
	if err := db.QueryRow(`SELECT name FROM artists WHERE artist_id = 'a1'`).Scan(&name); err != nil {
		t.Fatalf("scan name: %v", err)
	}
	if name != "Apple Song" {
		t.Errorf("artist name: got %q, want %q", name, "Apple Song")
	}
}

func TestFirstWriteWinsAttributes(t *testing.T) {
	db := openTestDB(t)
	loader := NewLoader(db)
	ctx := context.Background()

	first := models.Batch{Songs: []models.Song{
		{SongID: "s1", Title: "Banana Song", ArtworkURL: "http://img/first.jpg", ReleaseDate: "2024-01-01"},
	}}
	if _, err := loader.Load(ctx, first); err != nil {
		t.Fatalf("first load: %v", err)
	}

	// smaller title triggers the name update, but attributes stay as
	// first observed
	second := models.Batch{Songs: []models.Song{
		{SongID: "s1", Title: "Apple Song", ArtworkURL: "http://img/second.jpg", ReleaseDate: "2024-02-02"},
	}}
	if _, err := loader.Load(ctx, second); err != nil {
		t.Fatalf("second load: %v", err)
	}

	var title, artwork, release string
	err := db.QueryRow(`SELECT title, artwork_url, release_date FROM songs WHERE song_id = 's1'`).
		Scan(&title, &artwork, &release)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if title != "Apple Song" {
		t.Errorf("title: got %q, want %q", title, "Apple Song")
	}
	if artwork != "http://img/first.jpg" {
		t.Errorf("artwork: got %q, want first-observed value", artwork)
	}
	if release != "2024-01-01" {
		t.Errorf("release date: got %q, want first-observed value", release)
	}
}

func TestSongGenreSingleRow(t *testing.T) {
	db := openTestDB(t)
	loader := NewLoader(db)
	ctx := context.Background()

	batch := models.Batch{
		Genres: []models.Genre{{GenreID: 14, Name: "Pop"}},
		Links: []models.SongGenre{
			{SongID: "s1", GenreID: 14},
			{SongID: "s1", GenreID: 14},
		},
	}
	if _, err := loader.Load(ctx, batch); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := loader.Load(ctx, batch); err != nil {
		t.Fatalf("reload: %v", err)
	}

	if got := tableCount(t, db, "song_genres"); got != 1 {
		t.Fatalf("expected exactly 1 song-genre row, got %d", got)
	}
}

func TestMissingIDsStillRecorded(t *testing.T) {
	db := openTestDB(t)
	loader := NewLoader(db)
	ctx := context.Background()

	batch := models.Batch{
		Entries: []models.ChartEntry{
			{Platform: "AppleMusic", Region: "jp", Rank: 5, ChartDate: "2024-06-01"},
		},
	}
	if _, err := loader.Load(ctx, batch); err != nil {
		t.Fatalf("load: %v", err)
	}

	var songID, artistID sql.NullString
	err := db.QueryRow(`SELECT song_id, artist_id FROM chart_entries WHERE region = 'jp' AND rank = 5`).
		Scan(&songID, &artistID)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if songID.Valid || artistID.Valid {
		t.Errorf("expected NULL join keys, got song_id=%v artist_id=%v", songID, artistID)
	}
}
