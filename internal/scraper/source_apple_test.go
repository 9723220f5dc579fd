package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

const appleFeedFixture = `{
  "feed": {
    "title": "Top 100: US",
    "results": [
      {
        "id": "1001",
        "artistId": "2001",
        "name": "Midnight Drive",
        "artistName": "The Lanterns",
        "releaseDate": "2024-01-05",
        "artworkUrl100": "http://img/1001.jpg",
        "url": "http://songs/1001",
        "genres": [
          {"genreId": "14", "name": "Pop", "url": "http://genres/14"},
          {"genreId": "34", "name": "Music", "url": "http://genres/34"}
        ]
      },
      {
        "id": "1002",
        "name": "Glass House",
        "artistName": "Nova Reyes",
        "genres": []
      }
    ]
  }
}`

func TestAppleSourceFetchRegion(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, appleFeedFixture)
	}))
	defer srv.Close()

	src := NewAppleSource()
	src.BaseURL = srv.URL
	src.Client = srv.Client()

	records, err := src.FetchRegion(context.Background(), "us")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if want := "/api/v2/us/music/most-played/100/songs.json"; gotPath != want {
		t.Errorf("request path: got %q, want %q", gotPath, want)
	}
	if len(records) != 2 {
		t.Fatalf("records: got %d, want 2", len(records))
	}

	first := records[0]
	if first.Rank != 1 || first.SongID != "1001" || first.ArtistID != "2001" {
		t.Errorf("first record: %+v", first)
	}
	if first.Platform != "AppleMusic" || first.Region != "us" {
		t.Errorf("context fields: %+v", first)
	}
	if len(first.Genres) != 2 || first.Genres[0].GenreID != "14" {
		t.Errorf("genres: %+v", first.Genres)
	}

	second := records[1]
	if second.Rank != 2 || second.ArtistID != "" || len(second.Genres) != 0 {
		t.Errorf("second record: %+v", second)
	}
}

func TestAppleSourceCapsAtLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"feed":{"results":[`)
		for i := 0; i < 5; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, `{"id":"s%d","name":"Song %d","artistName":"A"}`, i, i)
		}
		fmt.Fprint(w, `]}}`)
	}))
	defer srv.Close()

	src := NewAppleSource()
	src.BaseURL = srv.URL
	src.Client = srv.Client()
	src.Limit = 3

	records, err := src.FetchRegion(context.Background(), "gb")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records: got %d, want limit 3", len(records))
	}
	if records[2].Rank != 3 {
		t.Errorf("last rank: got %d, want 3", records[2].Rank)
	}
}

func TestAppleSourceErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer srv.Close()

	src := NewAppleSource()
	src.BaseURL = srv.URL
	src.Client = srv.Client()

	if _, err := src.FetchRegion(context.Background(), "us"); err == nil {
		t.Fatal("expected error on 502 response")
	}
}

func TestAppleSourceMissingResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"feed":{"title":"empty"}}`)
	}))
	defer srv.Close()

	src := NewAppleSource()
	src.BaseURL = srv.URL
	src.Client = srv.Client()

	if _, err := src.FetchRegion(context.Background(), "us"); err == nil {
		t.Fatal("expected error when feed.results is absent")
	}
}
