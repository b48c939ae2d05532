package ingest

import (
	"context"
	"log"
	"time"

	"cine-trivia/storage"
	"cine-trivia/tmdb"
)

// actingDepartment is the department recorded for everyone credited as cast.
var actingDepartment = "Acting"

// EnrichmentJob is phase two of the pipeline: it consumes the catalog as a
// work queue, fetches one detail payload per pending title and fans it out
// into the detail and child tables inside a single transaction per title.
type EnrichmentJob struct {
	api   MetadataAPI
	store *storage.SQLiteStorage
	cfg   Config
}

// NewEnrichmentJob creates the detail enrichment job.
func NewEnrichmentJob(api MetadataAPI, store *storage.SQLiteStorage, cfg Config) *EnrichmentJob {
	return &EnrichmentJob{api: api, store: store, cfg: cfg}
}

// Name returns the name of the job.
func (j *EnrichmentJob) Name() string {
	return "detail_enrichment"
}

// Run enriches every pending movie, then every pending TV show. A title
// that fails is logged and skipped; its transaction rolls back, leaving it
// pending for the next run.
func (j *EnrichmentJob) Run(ctx context.Context) error {
	if err := j.enrichKind(ctx, storage.KindMovie); err != nil {
		return err
	}
	return j.enrichKind(ctx, storage.KindTV)
}

func (j *EnrichmentJob) enrichKind(ctx context.Context, kind storage.Kind) error {
	// The queue is computed once per run; titles detailed by this pass drop
	// out of the next run's queue via the same query.
	ids, err := j.store.PendingTitleIDs(kind, j.cfg.VoteCountFloor)
	if err != nil {
		return err
	}
	log.Printf("%s titles needing enrichment (no details yet, vote_count>=%d): %d",
		kind, j.cfg.VoteCountFloor, len(ids))

	for i, id := range ids {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if kind == storage.KindMovie {
			err = j.enrichMovie(ctx, id)
		} else {
			err = j.enrichTV(ctx, id)
		}
		if err != nil {
			log.Printf("%s %d enrichment failed: %v", kind, id, err)
		}

		if (i+1)%j.cfg.ProgressInterval == 0 || i+1 == len(ids) {
			log.Printf("%s processed %d/%d", kind, i+1, len(ids))
		}
		time.Sleep(j.cfg.TitleDelay)
	}
	return nil
}

func (j *EnrichmentJob) enrichMovie(ctx context.Context, id int64) error {
	d, err := j.api.MovieDetails(ctx, id)
	if err != nil {
		return err
	}
	return j.store.SaveMovieEnrichment(j.buildMovieEnrichment(ctx, d))
}

func (j *EnrichmentJob) buildMovieEnrichment(ctx context.Context, d *tmdb.MovieDetail) storage.MovieEnrichment {
	checkedAt := time.Now().Format("2006-01-02")

	e := storage.MovieEnrichment{
		Detail: storage.MovieDetailRow{
			TMDBID:           d.ID,
			IMDBID:           d.ExternalIDs.IMDBID,
			Title:            truncate(d.Title, 255),
			OriginalTitle:    truncate(d.OriginalTitle, 255),
			ReleaseDate:      nullable(d.ReleaseDate),
			Runtime:          d.Runtime,
			OriginalLanguage: d.OriginalLanguage,
			Homepage:         d.Homepage,
			Status:           d.Status,
			Overview:         d.Overview,
			Popularity:       d.Popularity,
			VoteAverage:      d.VoteAverage,
			VoteCount:        d.VoteCount,
			Revenue:          d.Revenue,
			Budget:           d.Budget,
			CheckedAt:        checkedAt,
		},
		Images: imageRows(d.Images),
	}

	for _, g := range d.Genres {
		e.Genres = append(e.Genres, storage.GenreRow{GenreID: g.ID, Name: g.Name})
	}
	for _, c := range d.ProductionCountries {
		e.Countries = append(e.Countries, storage.CountryRow{Code: c.ISO3166, Name: c.Name})
	}

	cast := sortMovieCast(d.Credits.Cast, j.cfg.MaxCastPerTitle)
	directors := movieDirectors(d.Credits.Crew, j.cfg.MaxDirectorsPerTitle)

	var headshotTargets []int64
	for i, c := range cast {
		e.Cast = append(e.Cast, storage.MovieCastRow{
			PersonID:   c.ID,
			Order:      c.Order,
			Character:  nullable(c.Character),
			Popularity: c.Popularity,
		})
		e.People = append(e.People,
			j.person(ctx, c.ID, c.Name, c.ProfilePath, &actingDepartment, c.Gender, c.Popularity, checkedAt))
		if i < j.cfg.HeadshotCastLimit {
			headshotTargets = append(headshotTargets, c.ID)
		}
	}
	for _, m := range directors {
		e.Directors = append(e.Directors, storage.MovieDirectorRow{PersonID: m.ID})
		e.People = append(e.People,
			j.person(ctx, m.ID, m.Name, m.ProfilePath, m.KnownForDepartment, m.Gender, m.Popularity, checkedAt))
		headshotTargets = append(headshotTargets, m.ID)
	}

	e.PersonImages = j.headshots(ctx, headshotTargets)
	return e
}

func (j *EnrichmentJob) enrichTV(ctx context.Context, id int64) error {
	d, err := j.api.TVDetails(ctx, id)
	if err != nil {
		return err
	}
	return j.store.SaveTVEnrichment(j.buildTVEnrichment(ctx, d))
}

func (j *EnrichmentJob) buildTVEnrichment(ctx context.Context, d *tmdb.TVDetail) storage.TVEnrichment {
	checkedAt := time.Now().Format("2006-01-02")

	e := storage.TVEnrichment{
		Detail: storage.TVDetailRow{
			TMDBID:           d.ID,
			IMDBID:           d.ExternalIDs.IMDBID,
			Name:             truncate(d.Name, 255),
			OriginalName:     truncate(d.OriginalName, 255),
			FirstAirDate:     nullable(d.FirstAirDate),
			LastAirDate:      nullable(d.LastAirDate),
			NumberOfSeasons:  d.NumberOfSeasons,
			NumberOfEpisodes: d.NumberOfEpisodes,
			OriginalLanguage: d.OriginalLanguage,
			Homepage:         d.Homepage,
			Status:           d.Status,
			Overview:         d.Overview,
			Popularity:       d.Popularity,
			VoteAverage:      d.VoteAverage,
			VoteCount:        d.VoteCount,
			CheckedAt:        checkedAt,
		},
		Images: imageRows(d.Images),
	}

	for _, g := range d.Genres {
		e.Genres = append(e.Genres, storage.GenreRow{GenreID: g.ID, Name: g.Name})
	}
	// TV payloads carry origin country iso codes only, no display name.
	for _, iso := range d.OriginCountry {
		e.Countries = append(e.Countries, storage.CountryRow{Code: iso, Name: iso})
	}

	cast := sortTVCast(d.AggregateCredits.Cast, j.cfg.MaxCastPerTitle)
	directors := seriesDirectors(d.AggregateCredits.Crew, j.cfg.MaxDirectorsPerTitle)

	var headshotTargets []int64
	for i, c := range cast {
		e.Cast = append(e.Cast, storage.TVCastRow{
			PersonID:          c.ID,
			TotalEpisodeCount: c.TotalEpisodeCount,
			Popularity:        c.Popularity,
		})
		e.People = append(e.People,
			j.person(ctx, c.ID, c.Name, c.ProfilePath, &actingDepartment, c.Gender, c.Popularity, checkedAt))
		if i < j.cfg.HeadshotCastLimit {
			headshotTargets = append(headshotTargets, c.ID)
		}
	}
	for _, dir := range directors {
		m := dir.Member
		e.Directors = append(e.Directors, storage.TVDirectorRow{
			PersonID:          m.ID,
			TotalEpisodeCount: dir.Episodes,
		})
		e.People = append(e.People,
			j.person(ctx, m.ID, m.Name, m.ProfilePath, m.KnownForDepartment, m.Gender, m.Popularity, checkedAt))
		headshotTargets = append(headshotTargets, m.ID)
	}

	e.PersonImages = j.headshots(ctx, headshotTargets)
	return e
}

func (j *EnrichmentJob) person(ctx context.Context, id int64, name string, profile, dept *string, gender *int64, popularity *float64, checkedAt string) storage.Person {
	return storage.Person{
		ID:          id,
		IMDBID:      j.lookupPersonIMDB(ctx, id),
		Name:        truncate(name, 255),
		Department:  dept,
		Gender:      gender,
		Popularity:  popularity,
		ProfilePath: profile,
		CheckedAt:   checkedAt,
	}
}

// lookupPersonIMDB is best-effort; failure leaves the cross-reference nil.
func (j *EnrichmentJob) lookupPersonIMDB(ctx context.Context, id int64) *string {
	ext, err := j.api.PersonExternalIDs(ctx, id)
	if err != nil {
		log.Printf("person %d external_ids lookup failed: %v", id, err)
		return nil
	}
	return ext.IMDBID
}

// headshots fetches headshot variants for the given people. Failures are
// swallowed entirely; they must never abort a title's enrichment.
func (j *EnrichmentJob) headshots(ctx context.Context, personIDs []int64) []storage.PersonImage {
	var out []storage.PersonImage
	for _, id := range personIDs {
		imgs, err := j.api.PersonProfileImages(ctx, id)
		if err != nil {
			log.Printf("person %d images lookup failed: %v", id, err)
			continue
		}
		for _, p := range imgs.Profiles {
			out = append(out, storage.PersonImage{
				PersonID:    id,
				FilePath:    p.FilePath,
				Width:       p.Width,
				Height:      p.Height,
				VoteAverage: p.VoteAverage,
				VoteCount:   p.VoteCount,
				AspectRatio: p.AspectRatio,
			})
		}
	}
	return out
}

func imageRows(groups tmdb.ImageGroups) []storage.ImageRow {
	var out []storage.ImageRow
	add := func(t storage.ImageType, imgs []tmdb.Image) {
		for _, img := range imgs {
			out = append(out, storage.ImageRow{
				Type:        t,
				FilePath:    img.FilePath,
				Width:       img.Width,
				Height:      img.Height,
				ISO639:      img.ISO639,
				AspectRatio: img.AspectRatio,
				VoteAverage: img.VoteAverage,
				VoteCount:   img.VoteCount,
			})
		}
	}
	add(storage.ImageBackdrop, groups.Backdrops)
	add(storage.ImagePoster, groups.Posters)
	add(storage.ImageLogo, groups.Logos)
	return out
}
