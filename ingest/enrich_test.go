package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"cine-trivia/storage"
	"cine-trivia/tmdb"
)

func testMovieDetail(id int64) *tmdb.MovieDetail {
	return &tmdb.MovieDetail{
		ID:            id,
		Title:         "Heat",
		OriginalTitle: "Heat",
		ReleaseDate:   "1995-12-15",
		Runtime:       i64Ptr(170),
		VoteCount:     i64Ptr(2000),
		ExternalIDs:   tmdb.ExternalIDs{IMDBID: strPtr("tt0113277")},
		Genres: []tmdb.Genre{
			{ID: 80, Name: "Crime"},
			{ID: 18, Name: "Drama"},
		},
		ProductionCountries: []tmdb.ProductionCountry{
			{ISO3166: "US", Name: "United States of America"},
		},
		Images: tmdb.ImageGroups{
			Backdrops: []tmdb.Image{{FilePath: "/backdrop.jpg"}},
			Posters:   []tmdb.Image{{FilePath: "/poster.jpg"}},
		},
		Credits: tmdb.Credits{
			Cast: []tmdb.CastMember{
				{ID: 9001, Name: "Al Pacino", Character: "Vincent Hanna", Order: i64Ptr(0), Popularity: f64Ptr(9.9)},
				{ID: 9002, Name: "Robert De Niro", Character: "Neil McCauley", Order: i64Ptr(1), Popularity: f64Ptr(9.5)},
			},
			Crew: []tmdb.CrewMember{
				{ID: 9100, Name: "Michael Mann", Job: "Director", Department: "Directing"},
				{ID: 9101, Name: "Dante Spinotti", Job: "Director of Photography", Department: "Camera"},
			},
		},
	}
}

func TestEnrichMovieWritesAllTables(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveCatalogPage(storage.KindMovie, []storage.CatalogEntry{catalogRow(1, 949, 2000)}))

	api := &stubAPI{
		movieDetails:  map[int64]*tmdb.MovieDetail{949: testMovieDetail(949)},
		profileImages: map[int64][]tmdb.Image{9001: {{FilePath: "/pacino.jpg"}}},
	}

	job := NewEnrichmentJob(api, store, testConfig())
	require.NoError(t, job.Run(context.Background()))

	db, err := store.GetDB()
	require.NoError(t, err)

	counts := map[string]int{
		"movie_details":   1,
		"movie_genres":    2,
		"movie_countries": 1,
		"movie_images":    2,
		"movie_cast":      2,
		"movie_directors": 1,
		"people":          3,
		"person_images":   1,
	}
	for table, want := range counts {
		var got int
		require.NoError(t, db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&got))
		require.Equal(t, want, got, "table %s", table)
	}

	// Only the credited director lands in movie_directors
	var directorID int64
	require.NoError(t, db.QueryRow("SELECT person_id FROM movie_directors WHERE tmdb_id = 949").Scan(&directorID))
	require.EqualValues(t, 9100, directorID)

	// A detailed title drops out of the work queue
	ids, err := store.PendingTitleIDs(storage.KindMovie, 100)
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestFailedDetailFetchLeavesTitlePending(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveCatalogPage(storage.KindMovie, []storage.CatalogEntry{catalogRow(1, 949, 2000)}))

	api := &stubAPI{detailErr: errors.New("upstream down")}

	job := NewEnrichmentJob(api, store, testConfig())
	require.NoError(t, job.Run(context.Background()))

	db, err := store.GetDB()
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM movie_details").Scan(&count))
	require.Zero(t, count)

	ids, err := store.PendingTitleIDs(storage.KindMovie, 100)
	require.NoError(t, err)
	require.Equal(t, []int64{949}, ids)
}

func TestEnrichMovieCapsCast(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveCatalogPage(storage.KindMovie, []storage.CatalogEntry{catalogRow(1, 949, 2000)}))

	d := testMovieDetail(949)
	d.Credits.Cast = nil
	for i := 0; i < 25; i++ {
		d.Credits.Cast = append(d.Credits.Cast, tmdb.CastMember{
			ID:    int64(100 + i),
			Name:  fmt.Sprintf("Actor %d", i),
			Order: i64Ptr(int64(i)),
		})
	}
	api := &stubAPI{movieDetails: map[int64]*tmdb.MovieDetail{949: d}}

	job := NewEnrichmentJob(api, store, testConfig())
	require.NoError(t, job.Run(context.Background()))

	db, err := store.GetDB()
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM movie_cast WHERE tmdb_id = 949").Scan(&count))
	require.Equal(t, 20, count)

	// The 20 lowest billing orders make the cut
	var maxOrder int64
	require.NoError(t, db.QueryRow("SELECT MAX(order_in_cast) FROM movie_cast WHERE tmdb_id = 949").Scan(&maxOrder))
	require.EqualValues(t, 19, maxOrder)
}

func TestEnrichTVAggregatesDirectors(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveCatalogPage(storage.KindTV, []storage.CatalogEntry{catalogRow(1, 1396, 10000)}))

	api := &stubAPI{
		tvDetails: map[int64]*tmdb.TVDetail{1396: {
			ID:               1396,
			Name:             "Breaking Bad",
			OriginalName:     "Breaking Bad",
			FirstAirDate:     "2008-01-20",
			NumberOfSeasons:  i64Ptr(5),
			NumberOfEpisodes: i64Ptr(62),
			OriginCountry:    []string{"US"},
			Genres:           []tmdb.Genre{{ID: 18, Name: "Drama"}},
			AggregateCredits: tmdb.AggregateCredits{
				Cast: []tmdb.AggregateCastMember{
					{ID: 9001, Name: "Bryan Cranston", TotalEpisodeCount: i64Ptr(62), Popularity: f64Ptr(8.0)},
				},
				Crew: []tmdb.AggregateCrewMember{
					{ID: 9200, Name: "Michelle MacLaren", Jobs: []tmdb.CrewJob{
						{Job: "Director", EpisodeCount: i64Ptr(2)},
						{Job: "Director", EpisodeCount: i64Ptr(3)},
						{Job: "Producer", EpisodeCount: i64Ptr(40)},
					}},
					{ID: 9201, Name: "Vince Gilligan", Jobs: []tmdb.CrewJob{
						{Job: "Writer", EpisodeCount: i64Ptr(62)},
					}},
				},
			},
		}},
	}

	job := NewEnrichmentJob(api, store, testConfig())
	require.NoError(t, job.Run(context.Background()))

	db, err := store.GetDB()
	require.NoError(t, err)

	// Only Director job episode counts contribute to the stored total
	var total int64
	require.NoError(t, db.QueryRow("SELECT total_episode_count FROM tv_directors WHERE tmdb_id = 1396 AND person_id = 9200").Scan(&total))
	require.EqualValues(t, 5, total)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM tv_directors WHERE tmdb_id = 1396").Scan(&count))
	require.Equal(t, 1, count)

	// The origin country code doubles as its display name
	var name string
	require.NoError(t, db.QueryRow("SELECT country_name FROM tv_countries WHERE tmdb_id = 1396 AND iso_3166_1 = 'US'").Scan(&name))
	require.Equal(t, "US", name)
}

func TestHeadshotFailureDoesNotAbortTitle(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveCatalogPage(storage.KindMovie, []storage.CatalogEntry{catalogRow(1, 949, 2000)}))

	api := &stubAPI{
		movieDetails: map[int64]*tmdb.MovieDetail{949: testMovieDetail(949)},
		profileErr:   errors.New("images unavailable"),
	}

	job := NewEnrichmentJob(api, store, testConfig())
	require.NoError(t, job.Run(context.Background()))

	db, err := store.GetDB()
	require.NoError(t, err)

	var details, headshots int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM movie_details").Scan(&details))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM person_images").Scan(&headshots))
	require.Equal(t, 1, details)
	require.Zero(t, headshots)
}

var _ MetadataAPI = (*stubAPI)(nil)
