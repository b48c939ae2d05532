package ingest

import (
	"context"
	"log"
	"time"

	"cine-trivia/storage"
	"cine-trivia/tmdb"
)

// CatalogImportJob is phase one of the pipeline: it walks the popular
// listings for both kinds, assigns a dense rank per kind from the
// provider's enumeration order, resolves imdb ids and upserts the ranked
// catalog tables, committing once per page.
type CatalogImportJob struct {
	api   MetadataAPI
	store *storage.SQLiteStorage
	cfg   Config
}

// NewCatalogImportJob creates the catalog import job.
func NewCatalogImportJob(api MetadataAPI, store *storage.SQLiteStorage, cfg Config) *CatalogImportJob {
	return &CatalogImportJob{api: api, store: store, cfg: cfg}
}

// Name returns the name of the job.
func (j *CatalogImportJob) Name() string {
	return "catalog_import"
}

// Run executes a full discovery pass: movies first, then TV.
func (j *CatalogImportJob) Run(ctx context.Context) error {
	log.Printf("Running catalog import (up to %d pages per kind)", j.cfg.MaxPages)

	if err := j.importKind(ctx, storage.KindMovie); err != nil {
		return err
	}
	return j.importKind(ctx, storage.KindTV)
}

func (j *CatalogImportJob) importKind(ctx context.Context, kind storage.Kind) error {
	checkedAt := time.Now().Format("2006-01-02")

	// One running rank counter across all pages for this kind.
	rank := 1

	for page := 1; page <= j.cfg.MaxPages; page++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		listing, err := j.fetchPage(ctx, kind, page)
		if err != nil {
			return err
		}

		if len(listing.Results) == 0 {
			log.Printf("%s page %d returned 0 results, stopping", kind, page)
			break
		}

		entries := make([]storage.CatalogEntry, 0, len(listing.Results))
		for _, item := range listing.Results {
			entries = append(entries, j.catalogEntry(ctx, kind, item, rank, checkedAt))
			rank++
		}

		if err := j.store.SaveCatalogPage(kind, entries); err != nil {
			// A failed page only loses its own rows; the next page still runs.
			log.Printf("%s page %d save failed: %v", kind, page, err)
			continue
		}

		log.Printf("%s page %d committed (+%d rows), rank now %d", kind, page, len(entries), rank-1)
		time.Sleep(j.cfg.PageDelay)
	}
	return nil
}

func (j *CatalogImportJob) fetchPage(ctx context.Context, kind storage.Kind, page int) (*tmdb.ListingPage, error) {
	if kind == storage.KindMovie {
		return j.api.PopularMovies(ctx, page)
	}
	return j.api.PopularTV(ctx, page)
}

func (j *CatalogImportJob) catalogEntry(ctx context.Context, kind storage.Kind, item tmdb.ListingItem, rank int, checkedAt string) storage.CatalogEntry {
	var title, date string
	if kind == storage.KindMovie {
		title = item.Title
		if title == "" {
			title = item.OriginalTitle
		}
		date = item.ReleaseDate
	} else {
		title = item.Name
		if title == "" {
			title = item.OriginalName
		}
		date = item.FirstAirDate
	}

	return storage.CatalogEntry{
		Rank:        rank,
		TMDBID:      item.ID,
		IMDBID:      j.resolveIMDBID(ctx, kind, item.ID),
		Title:       truncate(title, 255),
		ReleaseDate: nullable(date),
		Popularity:  item.Popularity,
		VoteAverage: item.VoteAverage,
		VoteCount:   item.VoteCount,
		CheckedAt:   checkedAt,
	}
}

// resolveIMDBID is a best-effort secondary lookup. A failure is never a
// hard error: the entry keeps a nil cross-reference id and the page goes on.
func (j *CatalogImportJob) resolveIMDBID(ctx context.Context, kind storage.Kind, id int64) *string {
	var (
		ext *tmdb.ExternalIDs
		err error
	)
	if kind == storage.KindMovie {
		ext, err = j.api.MovieExternalIDs(ctx, id)
	} else {
		ext, err = j.api.TVExternalIDs(ctx, id)
	}
	if err != nil {
		log.Printf("%s %d external_ids lookup failed: %v", kind, id, err)
		return nil
	}
	return ext.IMDBID
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// nullable turns the provider's empty string into nil so it is stored as
// NULL rather than an empty value.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
