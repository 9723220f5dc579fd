package models

// RawChartRecord is one ranked item as delivered by a chart feed, before
// normalization. Platform, region, rank and chart date are context stamped
// on by the fetch layer; everything else comes straight from the payload
// and may be empty.
type RawChartRecord struct {
	Platform    string     `json:"platform"`
	Region      string     `json:"region"`
	Rank        int        `json:"rank"`
	SongTitle   string     `json:"song_title"`
	ArtistName  string     `json:"artist_name"`
	SongID      string     `json:"song_id"`
	ArtistID    string     `json:"artist_id"`
	ReleaseDate string     `json:"release_date,omitempty"`
	ArtworkURL  string     `json:"artwork_url,omitempty"`
	SongURL     string     `json:"song_url,omitempty"`
	Genres      []RawGenre `json:"genres,omitempty"`
	ChartDate   string     `json:"chart_date"` // YYYY-MM-DD
}

// RawGenre is a nested genre tag on a raw chart record.
type RawGenre struct {
	GenreID string `json:"genre_id"`
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
}

// ChartEntry is one (platform, region, rank, date) observation.
// Rows are append-only; song/artist ids may be empty when the feed
// omitted them (the rank observation is still worth keeping).
type ChartEntry struct {
	Platform  string `json:"platform"`
	Region    string `json:"region"`
	Rank      int    `json:"rank"`
	SongID    string `json:"song_id,omitempty"`
	ArtistID  string `json:"artist_id,omitempty"`
	ChartDate string `json:"chart_date"`
}

// Song is the canonical record for an external song id. Title follows the
// smallest-name-wins reconciliation rule; the remaining attributes keep
// their first observed values.
type Song struct {
	SongID      string `json:"song_id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date,omitempty"`
	ArtworkURL  string `json:"artwork_url,omitempty"`
	SongURL     string `json:"song_url,omitempty"`
}

// Artist is the canonical record for an external artist id.
type Artist struct {
	ArtistID string `json:"artist_id"`
	Name     string `json:"name"`
}

// Genre is a lookup entity keyed by the provider's genre id.
type Genre struct {
	GenreID int64  `json:"genre_id"`
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
}

// SongGenre links a song to a genre. Links are created on first observed
// co-occurrence and never pruned.
type SongGenre struct {
	SongID  string `json:"song_id"`
	GenreID int64  `json:"genre_id"`
}

// Batch holds the normalized candidates for one scrape cycle. Candidate
// slices may contain repeats across records; the loader's insert-or-ignore
// semantics make that harmless.
type Batch struct {
	Entries []ChartEntry
	Songs   []Song
	Artists []Artist
	Genres  []Genre
	Links   []SongGenre
}

// Merge appends all candidates from other into b.
func (b *Batch) Merge(other Batch) {
	b.Entries = append(b.Entries, other.Entries...)
	b.Songs = append(b.Songs, other.Songs...)
	b.Artists = append(b.Artists, other.Artists...)
	b.Genres = append(b.Genres, other.Genres...)
	b.Links = append(b.Links, other.Links...)
}

// ChartRow is one row of the genre-resolved latest chart view. Genre is
// empty when the song has no genre more specific than the provider's
// generic umbrella tag.
type ChartRow struct {
	Platform    string `json:"platform"`
	Region      string `json:"region"`
	Rank        int    `json:"rank"`
	ChartDate   string `json:"chart_date"`
	SongID      string `json:"song_id,omitempty"`
	SongTitle   string `json:"song_title,omitempty"`
	ArtistID    string `json:"artist_id,omitempty"`
	ArtistName  string `json:"artist_name,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`
	ArtworkURL  string `json:"artwork_url,omitempty"`
	SongURL     string `json:"song_url,omitempty"`
	Genre       string `json:"genre,omitempty"`
}

// RankChangeRow is one row of a rank-change view (daily or weekly).
// PrevRank is nil on a re-entry, in which case RankChange carries the
// 101-minus-rank re-entry score.
type RankChangeRow struct {
	Platform   string `json:"platform"`
	Region     string `json:"region"`
	ChartDate  string `json:"chart_date"`
	Rank       int    `json:"rank"`
	SongID     string `json:"song_id,omitempty"`
	SongTitle  string `json:"song_title,omitempty"`
	ArtistName string `json:"artist_name,omitempty"`
	PrevDate   string `json:"prev_date,omitempty"`
	PrevRank   *int   `json:"prev_rank,omitempty"`
	RankChange int    `json:"rank_change"`
}

// RegionName maps a feed region code to a display name.
type RegionName struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
