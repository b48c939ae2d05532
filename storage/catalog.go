package storage

import (
	"database/sql"
	"fmt"
)

// Per-kind SQL for the ranked catalog tables. The movie and TV tables are
// symmetric apart from their name and date column names.
var catalogSQL = map[Kind]struct {
	upsert  string
	pending string
}{
	KindMovie: {
		upsert: `
		INSERT INTO popular_movies
			("rank", tmdb_id, imdb_id, title, release_date, popularity, vote_average, vote_count, checked_at)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON CONFLICT(tmdb_id) DO UPDATE SET
			"rank"=excluded."rank", imdb_id=excluded.imdb_id, title=excluded.title,
			release_date=excluded.release_date, popularity=excluded.popularity,
			vote_average=excluded.vote_average, vote_count=excluded.vote_count,
			checked_at=excluded.checked_at
		`,
		pending: `
		SELECT pm.tmdb_id
		FROM popular_movies pm
		LEFT JOIN movie_details md ON md.tmdb_id = pm.tmdb_id
		WHERE COALESCE(pm.vote_count, 0) >= ?
		  AND md.tmdb_id IS NULL
		ORDER BY pm."rank"
		`,
	},
	KindTV: {
		upsert: `
		INSERT INTO popular_tv
			("rank", tmdb_id, imdb_id, name, first_air_date, popularity, vote_average, vote_count, checked_at)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON CONFLICT(tmdb_id) DO UPDATE SET
			"rank"=excluded."rank", imdb_id=excluded.imdb_id, name=excluded.name,
			first_air_date=excluded.first_air_date, popularity=excluded.popularity,
			vote_average=excluded.vote_average, vote_count=excluded.vote_count,
			checked_at=excluded.checked_at
		`,
		pending: `
		SELECT pt.tmdb_id
		FROM popular_tv pt
		LEFT JOIN tv_details td ON td.tmdb_id = pt.tmdb_id
		WHERE COALESCE(pt.vote_count, 0) >= ?
		  AND td.tmdb_id IS NULL
		ORDER BY pt."rank"
		`,
	},
}

// SaveCatalogPage upserts one listing page's entries in a single
// transaction, so a failure mid-page loses only that page's rows.
func (s *SQLiteStorage) SaveCatalogPage(kind Kind, entries []CatalogEntry) error {
	stmts, ok := catalogSQL[kind]
	if !ok {
		return fmt.Errorf("unknown kind: %s", kind)
	}

	return s.withTx(func(tx *sql.Tx) error {
		for _, e := range entries {
			_, err := tx.Exec(stmts.upsert,
				e.Rank, e.TMDBID, e.IMDBID, e.Title, e.ReleaseDate,
				e.Popularity, e.VoteAverage, e.VoteCount, e.CheckedAt)
			if err != nil {
				return fmt.Errorf("failed to upsert %s catalog row %d: %v", kind, e.TMDBID, err)
			}
		}
		return nil
	})
}

// PendingTitleIDs returns the ids of catalog titles at or above the vote
// floor that have no detail row yet, ordered by rank. The result is the
// work queue for one enrichment run; it is computed once and not
// re-evaluated mid-run.
func (s *SQLiteStorage) PendingTitleIDs(kind Kind, voteFloor int64) ([]int64, error) {
	stmts, ok := catalogSQL[kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind: %s", kind)
	}

	rows, err := s.db.Query(stmts.pending, voteFloor)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending %s titles: %v", kind, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan pending %s title: %v", kind, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
