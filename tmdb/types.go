package tmdb

// Payload types for the TMDb endpoints this project consumes. Optional
// numeric fields are pointers so a missing value survives decoding as nil
// instead of collapsing to zero.

// ListingPage is one page of a popular-titles listing.
type ListingPage struct {
	Page         int           `json:"page"`
	Results      []ListingItem `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// ListingItem is a single entry in a popular-titles listing. Movie and TV
// listings share the shape but populate different name/date fields.
type ListingItem struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title"`
	Name          string   `json:"name"`
	OriginalName  string   `json:"original_name"`
	ReleaseDate   string   `json:"release_date"`
	FirstAirDate  string   `json:"first_air_date"`
	Popularity    *float64 `json:"popularity"`
	VoteAverage   *float64 `json:"vote_average"`
	VoteCount     *int64   `json:"vote_count"`
}

// Genre is a genre tag attached to a title.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductionCountry is a production country attached to a movie.
type ProductionCountry struct {
	ISO3166 string `json:"iso_3166_1"`
	Name    string `json:"name"`
}

// Image is one artwork entry (backdrop, poster, logo or headshot).
type Image struct {
	FilePath    string   `json:"file_path"`
	Width       *int64   `json:"width"`
	Height      *int64   `json:"height"`
	ISO639      *string  `json:"iso_639_1"`
	AspectRatio *float64 `json:"aspect_ratio"`
	VoteAverage *float64 `json:"vote_average"`
	VoteCount   *int64   `json:"vote_count"`
}

// ImageGroups holds the artwork lists appended to a detail response.
type ImageGroups struct {
	Backdrops []Image `json:"backdrops"`
	Posters   []Image `json:"posters"`
	Logos     []Image `json:"logos"`
}

// CastMember is a movie cast entry.
type CastMember struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Character   string   `json:"character"`
	Order       *int64   `json:"order"`
	Gender      *int64   `json:"gender"`
	Popularity  *float64 `json:"popularity"`
	ProfilePath *string  `json:"profile_path"`
}

// CrewMember is a movie crew entry.
type CrewMember struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Job                string   `json:"job"`
	Department         string   `json:"department"`
	KnownForDepartment *string  `json:"known_for_department"`
	Gender             *int64   `json:"gender"`
	Popularity         *float64 `json:"popularity"`
	ProfilePath        *string  `json:"profile_path"`
}

// Credits wraps a movie's cast and crew lists.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// AggregateCastMember is a TV cast entry spanning all episodes.
type AggregateCastMember struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	TotalEpisodeCount *int64   `json:"total_episode_count"`
	Gender            *int64   `json:"gender"`
	Popularity        *float64 `json:"popularity"`
	ProfilePath       *string  `json:"profile_path"`
}

// CrewJob is one job a TV crew member held, with its episode count.
type CrewJob struct {
	Job          string `json:"job"`
	EpisodeCount *int64 `json:"episode_count"`
}

// AggregateCrewMember is a TV crew entry spanning all episodes. A member can
// hold several jobs across the run of a show.
type AggregateCrewMember struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Jobs               []CrewJob `json:"jobs"`
	KnownForDepartment *string   `json:"known_for_department"`
	Gender             *int64    `json:"gender"`
	Popularity         *float64  `json:"popularity"`
	ProfilePath        *string   `json:"profile_path"`
}

// AggregateCredits wraps a TV show's aggregate cast and crew lists.
type AggregateCredits struct {
	Cast []AggregateCastMember `json:"cast"`
	Crew []AggregateCrewMember `json:"crew"`
}

// ExternalIDs carries cross-reference identifiers for a title or person.
type ExternalIDs struct {
	IMDBID *string `json:"imdb_id"`
}

// PersonImages is the response of the person images endpoint.
type PersonImages struct {
	Profiles []Image `json:"profiles"`
}

// MovieDetail is the movie detail response with appended images, credits and
// external ids.
type MovieDetail struct {
	ID                  int64               `json:"id"`
	Title               string              `json:"title"`
	OriginalTitle       string              `json:"original_title"`
	ReleaseDate         string              `json:"release_date"`
	Runtime             *int64              `json:"runtime"`
	OriginalLanguage    *string             `json:"original_language"`
	Homepage            *string             `json:"homepage"`
	Status              *string             `json:"status"`
	Overview            *string             `json:"overview"`
	Popularity          *float64            `json:"popularity"`
	VoteAverage         *float64            `json:"vote_average"`
	VoteCount           *int64              `json:"vote_count"`
	Revenue             *int64              `json:"revenue"`
	Budget              *int64              `json:"budget"`
	Genres              []Genre             `json:"genres"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	Images              ImageGroups         `json:"images"`
	Credits             Credits             `json:"credits"`
	ExternalIDs         ExternalIDs         `json:"external_ids"`
}

// TVDetail is the TV detail response with appended images, aggregate credits
// and external ids.
type TVDetail struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	OriginalName     string           `json:"original_name"`
	FirstAirDate     string           `json:"first_air_date"`
	LastAirDate      string           `json:"last_air_date"`
	NumberOfSeasons  *int64           `json:"number_of_seasons"`
	NumberOfEpisodes *int64           `json:"number_of_episodes"`
	OriginalLanguage *string          `json:"original_language"`
	Homepage         *string          `json:"homepage"`
	Status           *string          `json:"status"`
	Overview         *string          `json:"overview"`
	Popularity       *float64         `json:"popularity"`
	VoteAverage      *float64         `json:"vote_average"`
	VoteCount        *int64           `json:"vote_count"`
	OriginCountry    []string         `json:"origin_country"`
	Genres           []Genre          `json:"genres"`
	Images           ImageGroups      `json:"images"`
	AggregateCredits AggregateCredits `json:"aggregate_credits"`
	ExternalIDs      ExternalIDs      `json:"external_ids"`
}
