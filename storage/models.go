package storage

// Kind selects which sibling table set applies to a title.
type Kind string

const (
	KindMovie Kind = "movie"
	KindTV    Kind = "tv"
)

// ImageType classifies a title's artwork rows.
type ImageType string

const (
	ImageBackdrop ImageType = "backdrop"
	ImagePoster   ImageType = "poster"
	ImageLogo     ImageType = "logo"
)

// CatalogEntry is one ranked row of a popular-titles catalog. Rank is
// 1-based and spans the whole discovery pass for a kind, not a single page.
// Nullable columns are pointers; nil is stored as NULL.
type CatalogEntry struct {
	Rank        int
	TMDBID      int64
	IMDBID      *string
	Title       string
	ReleaseDate *string
	Popularity  *float64
	VoteAverage *float64
	VoteCount   *int64
	CheckedAt   string
}

// Person is a globally shared person row, referenced by cast and director
// credits across every title. Conflicting values from different titles'
// payloads resolve last-write-wins.
type Person struct {
	ID          int64
	IMDBID      *string
	Name        string
	Department  *string
	Gender      *int64
	Popularity  *float64
	ProfilePath *string
	CheckedAt   string
}

// PersonImage is one headshot variant. Rows are append-only and never
// deleted.
type PersonImage struct {
	PersonID    int64
	FilePath    string
	Width       *int64
	Height      *int64
	VoteAverage *float64
	VoteCount   *int64
	AspectRatio *float64
}

// GenreRow links a title to a genre.
type GenreRow struct {
	GenreID int64
	Name    string
}

// CountryRow links a title to a country.
type CountryRow struct {
	Code string
	Name string
}

// ImageRow is one artwork entry for a title.
type ImageRow struct {
	Type        ImageType
	FilePath    string
	Width       *int64
	Height      *int64
	ISO639      *string
	AspectRatio *float64
	VoteAverage *float64
	VoteCount   *int64
}

// MovieDetailRow mirrors one movie_details row.
type MovieDetailRow struct {
	TMDBID           int64
	IMDBID           *string
	Title            string
	OriginalTitle    string
	ReleaseDate      *string
	Runtime          *int64
	OriginalLanguage *string
	Homepage         *string
	Status           *string
	Overview         *string
	Popularity       *float64
	VoteAverage      *float64
	VoteCount        *int64
	Revenue          *int64
	Budget           *int64
	CheckedAt        string
}

// TVDetailRow mirrors one tv_details row.
type TVDetailRow struct {
	TMDBID           int64
	IMDBID           *string
	Name             string
	OriginalName     string
	FirstAirDate     *string
	LastAirDate      *string
	NumberOfSeasons  *int64
	NumberOfEpisodes *int64
	OriginalLanguage *string
	Homepage         *string
	Status           *string
	Overview         *string
	Popularity       *float64
	VoteAverage      *float64
	VoteCount        *int64
	CheckedAt        string
}

// MovieCastRow is one movie cast credit.
type MovieCastRow struct {
	PersonID   int64
	Order      *int64
	Character  *string
	Popularity *float64
}

// MovieDirectorRow is one movie director credit.
type MovieDirectorRow struct {
	PersonID int64
}

// TVCastRow is one TV cast credit with its all-episode appearance count.
type TVCastRow struct {
	PersonID          int64
	TotalEpisodeCount *int64
	Popularity        *float64
}

// TVDirectorRow is one TV director credit with the summed count of episodes
// the person directed.
type TVDirectorRow struct {
	PersonID          int64
	TotalEpisodeCount int64
}

// MovieEnrichment bundles everything written for one movie in a single
// transaction.
type MovieEnrichment struct {
	Detail       MovieDetailRow
	Genres       []GenreRow
	Countries    []CountryRow
	Images       []ImageRow
	Cast         []MovieCastRow
	Directors    []MovieDirectorRow
	People       []Person
	PersonImages []PersonImage
}

// TVEnrichment bundles everything written for one TV show in a single
// transaction.
type TVEnrichment struct {
	Detail       TVDetailRow
	Genres       []GenreRow
	Countries    []CountryRow
	Images       []ImageRow
	Cast         []TVCastRow
	Directors    []TVDirectorRow
	People       []Person
	PersonImages []PersonImage
}
