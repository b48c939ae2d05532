package ingest

import (
	"sort"

	"cine-trivia/tmdb"
)

// Credit selection policy: who gets a cast or director row, and in what
// order, before the per-title caps apply.

// unbilledOrder sorts cast members without a billing order behind everyone
// who has one.
const unbilledOrder int64 = 9999

const directorJob = "Director"

// sortMovieCast orders movie cast ascending by billing order (missing order
// last), breaking ties by descending popularity, and truncates to max.
func sortMovieCast(cast []tmdb.CastMember, max int) []tmdb.CastMember {
	out := append([]tmdb.CastMember(nil), cast...)
	sort.SliceStable(out, func(i, k int) bool {
		oi, ok := billingOrder(out[i].Order), billingOrder(out[k].Order)
		if oi != ok {
			return oi < ok
		}
		return popularityOf(out[i].Popularity) > popularityOf(out[k].Popularity)
	})
	if len(out) > max {
		out = out[:max]
	}
	return out
}

// sortTVCast orders TV cast descending by total episode appearances, then
// descending by popularity, and truncates to max.
func sortTVCast(cast []tmdb.AggregateCastMember, max int) []tmdb.AggregateCastMember {
	out := append([]tmdb.AggregateCastMember(nil), cast...)
	sort.SliceStable(out, func(i, k int) bool {
		ei, ek := episodeCount(out[i].TotalEpisodeCount), episodeCount(out[k].TotalEpisodeCount)
		if ei != ek {
			return ei > ek
		}
		return popularityOf(out[i].Popularity) > popularityOf(out[k].Popularity)
	})
	if len(out) > max {
		out = out[:max]
	}
	return out
}

// movieDirectors keeps crew entries whose job is Director, in payload
// order, capped at max.
func movieDirectors(crew []tmdb.CrewMember, max int) []tmdb.CrewMember {
	var out []tmdb.CrewMember
	for _, m := range crew {
		if m.Job == directorJob {
			out = append(out, m)
			if len(out) == max {
				break
			}
		}
	}
	return out
}

// seriesDirector pairs a TV crew member with the summed count of episodes
// they directed across all their Director job entries.
type seriesDirector struct {
	Member   tmdb.AggregateCrewMember
	Episodes int64
}

// seriesDirectors aggregates directed-episode totals per crew member,
// keeps only strictly positive totals, sorts descending by total and caps
// at max. Ties keep the payload's order.
func seriesDirectors(crew []tmdb.AggregateCrewMember, max int) []seriesDirector {
	var out []seriesDirector
	for _, m := range crew {
		var total int64
		for _, job := range m.Jobs {
			if job.Job == directorJob {
				total += episodeCount(job.EpisodeCount)
			}
		}
		if total > 0 {
			out = append(out, seriesDirector{Member: m, Episodes: total})
		}
	}
	sort.SliceStable(out, func(i, k int) bool {
		return out[i].Episodes > out[k].Episodes
	})
	if len(out) > max {
		out = out[:max]
	}
	return out
}

func billingOrder(o *int64) int64 {
	if o == nil {
		return unbilledOrder
	}
	return *o
}

func popularityOf(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func episodeCount(c *int64) int64 {
	if c == nil {
		return 0
	}
	return *c
}
