package ingest

import (
	"context"
	"testing"

	"cine-trivia/storage"
	"cine-trivia/tmdb"
)

// stubAPI is a canned provider for pipeline tests.
type stubAPI struct {
	moviePages []tmdb.ListingPage
	tvPages    []tmdb.ListingPage

	movieDetails map[int64]*tmdb.MovieDetail
	tvDetails    map[int64]*tmdb.TVDetail

	externalIDs   map[int64]string
	externalIDErr error
	detailErr     error

	profileImages map[int64][]tmdb.Image
	profileErr    error

	moviePageCalls int
	tvPageCalls    int
}

func (s *stubAPI) PopularMovies(ctx context.Context, page int) (*tmdb.ListingPage, error) {
	s.moviePageCalls++
	if page <= len(s.moviePages) {
		p := s.moviePages[page-1]
		return &p, nil
	}
	return &tmdb.ListingPage{Page: page}, nil
}

func (s *stubAPI) PopularTV(ctx context.Context, page int) (*tmdb.ListingPage, error) {
	s.tvPageCalls++
	if page <= len(s.tvPages) {
		p := s.tvPages[page-1]
		return &p, nil
	}
	return &tmdb.ListingPage{Page: page}, nil
}

func (s *stubAPI) externalIDsFor(id int64) (*tmdb.ExternalIDs, error) {
	if s.externalIDErr != nil {
		return nil, s.externalIDErr
	}
	if v, ok := s.externalIDs[id]; ok {
		return &tmdb.ExternalIDs{IMDBID: &v}, nil
	}
	return &tmdb.ExternalIDs{}, nil
}

func (s *stubAPI) MovieExternalIDs(ctx context.Context, id int64) (*tmdb.ExternalIDs, error) {
	return s.externalIDsFor(id)
}

func (s *stubAPI) TVExternalIDs(ctx context.Context, id int64) (*tmdb.ExternalIDs, error) {
	return s.externalIDsFor(id)
}

func (s *stubAPI) PersonExternalIDs(ctx context.Context, id int64) (*tmdb.ExternalIDs, error) {
	return s.externalIDsFor(id)
}

func (s *stubAPI) MovieDetails(ctx context.Context, id int64) (*tmdb.MovieDetail, error) {
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	return s.movieDetails[id], nil
}

func (s *stubAPI) TVDetails(ctx context.Context, id int64) (*tmdb.TVDetail, error) {
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	return s.tvDetails[id], nil
}

func (s *stubAPI) PersonProfileImages(ctx context.Context, id int64) (*tmdb.PersonImages, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return &tmdb.PersonImages{Profiles: s.profileImages[id]}, nil
}

func newTestStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store := storage.NewSQLiteStorage(t.TempDir())
	if err := store.Initialize(); err != nil {
		t.Fatalf("Failed to initialize storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PageDelay = 0
	cfg.TitleDelay = 0
	return cfg
}

func catalogRow(rank int, id, votes int64) storage.CatalogEntry {
	return storage.CatalogEntry{
		Rank:      rank,
		TMDBID:    id,
		Title:     "Seeded Title",
		VoteCount: i64Ptr(votes),
		CheckedAt: "2026-09-01",
	}
}
