package ingest

import (
	"context"

	"cine-trivia/tmdb"
)

// MetadataAPI is the slice of the TMDb client both pipeline phases consume.
// Tests substitute a stub provider.
type MetadataAPI interface {
	PopularMovies(ctx context.Context, page int) (*tmdb.ListingPage, error)
	PopularTV(ctx context.Context, page int) (*tmdb.ListingPage, error)
	MovieExternalIDs(ctx context.Context, id int64) (*tmdb.ExternalIDs, error)
	TVExternalIDs(ctx context.Context, id int64) (*tmdb.ExternalIDs, error)
	PersonExternalIDs(ctx context.Context, id int64) (*tmdb.ExternalIDs, error)
	MovieDetails(ctx context.Context, id int64) (*tmdb.MovieDetail, error)
	TVDetails(ctx context.Context, id int64) (*tmdb.TVDetail, error)
	PersonProfileImages(ctx context.Context, id int64) (*tmdb.PersonImages, error)
}
