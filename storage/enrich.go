package storage

import (
	"database/sql"
	"fmt"
)

// Write policies per table family:
//   - detail rows, people and credit rows: upsert-on-conflict
//   - genres, countries, images, person images: insert-or-ignore
//   - per-title child sets (genres, countries, images, cast, directors):
//     deleted and reinserted so removed associations disappear locally
//   - person_images: append-only, never deleted

const upsertPersonSQL = `
INSERT INTO people (person_id, imdb_id, name, known_for_department, gender, popularity, profile_path, checked_at)
VALUES (?,?,?,?,?,?,?,?)
ON CONFLICT(person_id) DO UPDATE SET
	imdb_id=excluded.imdb_id, name=excluded.name,
	known_for_department=excluded.known_for_department, gender=excluded.gender,
	popularity=excluded.popularity, profile_path=excluded.profile_path,
	checked_at=excluded.checked_at
`

const insertPersonImageSQL = `
INSERT OR IGNORE INTO person_images (person_id, file_path, width, height, vote_average, vote_count, aspect_ratio)
VALUES (?,?,?,?,?,?,?)
`

const upsertMovieDetailSQL = `
INSERT INTO movie_details
	(tmdb_id, imdb_id, title, original_title, release_date, runtime, original_language,
	 homepage, status, overview, popularity, vote_average, vote_count, revenue, budget, checked_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(tmdb_id) DO UPDATE SET
	imdb_id=excluded.imdb_id, title=excluded.title, original_title=excluded.original_title,
	release_date=excluded.release_date, runtime=excluded.runtime,
	original_language=excluded.original_language, homepage=excluded.homepage,
	status=excluded.status, overview=excluded.overview, popularity=excluded.popularity,
	vote_average=excluded.vote_average, vote_count=excluded.vote_count,
	revenue=excluded.revenue, budget=excluded.budget, checked_at=excluded.checked_at
`

const upsertTVDetailSQL = `
INSERT INTO tv_details
	(tmdb_id, imdb_id, name, original_name, first_air_date, last_air_date,
	 number_of_seasons, number_of_episodes, original_language, homepage, status,
	 overview, popularity, vote_average, vote_count, checked_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(tmdb_id) DO UPDATE SET
	imdb_id=excluded.imdb_id, name=excluded.name, original_name=excluded.original_name,
	first_air_date=excluded.first_air_date, last_air_date=excluded.last_air_date,
	number_of_seasons=excluded.number_of_seasons, number_of_episodes=excluded.number_of_episodes,
	original_language=excluded.original_language, homepage=excluded.homepage,
	status=excluded.status, overview=excluded.overview, popularity=excluded.popularity,
	vote_average=excluded.vote_average, vote_count=excluded.vote_count,
	checked_at=excluded.checked_at
`

// SaveMovieEnrichment writes one movie's detail row and every child row in
// a single transaction. Either everything lands or nothing does, so a crash
// mid-title never leaves a detail row with missing children.
func (s *SQLiteStorage) SaveMovieEnrichment(e MovieEnrichment) error {
	return s.withTx(func(tx *sql.Tx) error {
		d := e.Detail
		_, err := tx.Exec(upsertMovieDetailSQL,
			d.TMDBID, d.IMDBID, d.Title, d.OriginalTitle, d.ReleaseDate, d.Runtime,
			d.OriginalLanguage, d.Homepage, d.Status, d.Overview, d.Popularity,
			d.VoteAverage, d.VoteCount, d.Revenue, d.Budget, d.CheckedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert movie details %d: %v", d.TMDBID, err)
		}

		if err := replaceGenres(tx, "movie_genres", d.TMDBID, e.Genres); err != nil {
			return err
		}
		if err := replaceCountries(tx, "movie_countries", d.TMDBID, e.Countries); err != nil {
			return err
		}
		if err := replaceImages(tx, "movie_images", d.TMDBID, e.Images); err != nil {
			return err
		}

		if _, err := tx.Exec("DELETE FROM movie_cast WHERE tmdb_id = ?", d.TMDBID); err != nil {
			return fmt.Errorf("failed to clear movie cast %d: %v", d.TMDBID, err)
		}
		for _, c := range e.Cast {
			_, err := tx.Exec(`
			INSERT INTO movie_cast (tmdb_id, person_id, order_in_cast, character_name, popularity)
			VALUES (?,?,?,?,?)
			ON CONFLICT(tmdb_id, person_id) DO UPDATE SET
				order_in_cast=excluded.order_in_cast, character_name=excluded.character_name,
				popularity=excluded.popularity`,
				d.TMDBID, c.PersonID, c.Order, c.Character, c.Popularity)
			if err != nil {
				return fmt.Errorf("failed to insert movie cast %d/%d: %v", d.TMDBID, c.PersonID, err)
			}
		}

		if _, err := tx.Exec("DELETE FROM movie_directors WHERE tmdb_id = ?", d.TMDBID); err != nil {
			return fmt.Errorf("failed to clear movie directors %d: %v", d.TMDBID, err)
		}
		for _, dir := range e.Directors {
			_, err := tx.Exec(
				"INSERT OR IGNORE INTO movie_directors (tmdb_id, person_id) VALUES (?,?)",
				d.TMDBID, dir.PersonID)
			if err != nil {
				return fmt.Errorf("failed to insert movie director %d/%d: %v", d.TMDBID, dir.PersonID, err)
			}
		}

		return savePeople(tx, e.People, e.PersonImages)
	})
}

// SaveTVEnrichment writes one TV show's detail row and every child row in a
// single transaction.
func (s *SQLiteStorage) SaveTVEnrichment(e TVEnrichment) error {
	return s.withTx(func(tx *sql.Tx) error {
		d := e.Detail
		_, err := tx.Exec(upsertTVDetailSQL,
			d.TMDBID, d.IMDBID, d.Name, d.OriginalName, d.FirstAirDate, d.LastAirDate,
			d.NumberOfSeasons, d.NumberOfEpisodes, d.OriginalLanguage, d.Homepage,
			d.Status, d.Overview, d.Popularity, d.VoteAverage, d.VoteCount, d.CheckedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert tv details %d: %v", d.TMDBID, err)
		}

		if err := replaceGenres(tx, "tv_genres", d.TMDBID, e.Genres); err != nil {
			return err
		}
		if err := replaceCountries(tx, "tv_countries", d.TMDBID, e.Countries); err != nil {
			return err
		}
		if err := replaceImages(tx, "tv_images", d.TMDBID, e.Images); err != nil {
			return err
		}

		if _, err := tx.Exec("DELETE FROM tv_cast WHERE tmdb_id = ?", d.TMDBID); err != nil {
			return fmt.Errorf("failed to clear tv cast %d: %v", d.TMDBID, err)
		}
		for _, c := range e.Cast {
			_, err := tx.Exec(`
			INSERT INTO tv_cast (tmdb_id, person_id, total_episode_count, popularity)
			VALUES (?,?,?,?)
			ON CONFLICT(tmdb_id, person_id) DO UPDATE SET
				total_episode_count=excluded.total_episode_count, popularity=excluded.popularity`,
				d.TMDBID, c.PersonID, c.TotalEpisodeCount, c.Popularity)
			if err != nil {
				return fmt.Errorf("failed to insert tv cast %d/%d: %v", d.TMDBID, c.PersonID, err)
			}
		}

		if _, err := tx.Exec("DELETE FROM tv_directors WHERE tmdb_id = ?", d.TMDBID); err != nil {
			return fmt.Errorf("failed to clear tv directors %d: %v", d.TMDBID, err)
		}
		for _, dir := range e.Directors {
			_, err := tx.Exec(`
			INSERT INTO tv_directors (tmdb_id, person_id, total_episode_count)
			VALUES (?,?,?)
			ON CONFLICT(tmdb_id, person_id) DO UPDATE SET
				total_episode_count=excluded.total_episode_count`,
				d.TMDBID, dir.PersonID, dir.TotalEpisodeCount)
			if err != nil {
				return fmt.Errorf("failed to insert tv director %d/%d: %v", d.TMDBID, dir.PersonID, err)
			}
		}

		return savePeople(tx, e.People, e.PersonImages)
	})
}

func replaceGenres(tx *sql.Tx, table string, tmdbID int64, genres []GenreRow) error {
	if _, err := tx.Exec("DELETE FROM "+table+" WHERE tmdb_id = ?", tmdbID); err != nil {
		return fmt.Errorf("failed to clear %s for %d: %v", table, tmdbID, err)
	}
	for _, g := range genres {
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO "+table+" (tmdb_id, genre_id, genre_name) VALUES (?,?,?)",
			tmdbID, g.GenreID, g.Name)
		if err != nil {
			return fmt.Errorf("failed to insert %s row for %d: %v", table, tmdbID, err)
		}
	}
	return nil
}

func replaceCountries(tx *sql.Tx, table string, tmdbID int64, countries []CountryRow) error {
	if _, err := tx.Exec("DELETE FROM "+table+" WHERE tmdb_id = ?", tmdbID); err != nil {
		return fmt.Errorf("failed to clear %s for %d: %v", table, tmdbID, err)
	}
	for _, c := range countries {
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO "+table+" (tmdb_id, iso_3166_1, country_name) VALUES (?,?,?)",
			tmdbID, c.Code, c.Name)
		if err != nil {
			return fmt.Errorf("failed to insert %s row for %d: %v", table, tmdbID, err)
		}
	}
	return nil
}

func replaceImages(tx *sql.Tx, table string, tmdbID int64, images []ImageRow) error {
	if _, err := tx.Exec("DELETE FROM "+table+" WHERE tmdb_id = ?", tmdbID); err != nil {
		return fmt.Errorf("failed to clear %s for %d: %v", table, tmdbID, err)
	}
	for _, img := range images {
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO "+table+
				" (tmdb_id, img_type, file_path, width, height, iso_639_1, aspect_ratio, vote_average, vote_count)"+
				" VALUES (?,?,?,?,?,?,?,?,?)",
			tmdbID, string(img.Type), img.FilePath, img.Width, img.Height,
			img.ISO639, img.AspectRatio, img.VoteAverage, img.VoteCount)
		if err != nil {
			return fmt.Errorf("failed to insert %s row for %d: %v", table, tmdbID, err)
		}
	}
	return nil
}

func savePeople(tx *sql.Tx, people []Person, images []PersonImage) error {
	for _, p := range people {
		_, err := tx.Exec(upsertPersonSQL,
			p.ID, p.IMDBID, p.Name, p.Department, p.Gender, p.Popularity, p.ProfilePath, p.CheckedAt)
		if err != nil {
			return fmt.Errorf("failed to upsert person %d: %v", p.ID, err)
		}
	}
	for _, img := range images {
		_, err := tx.Exec(insertPersonImageSQL,
			img.PersonID, img.FilePath, img.Width, img.Height,
			img.VoteAverage, img.VoteCount, img.AspectRatio)
		if err != nil {
			return fmt.Errorf("failed to insert person image %d: %v", img.PersonID, err)
		}
	}
	return nil
}
