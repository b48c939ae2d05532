package ingest

import "time"

// Config holds the run parameters for both pipeline phases. These are
// deliberate constants of the run, not command-line flags.
type Config struct {
	MaxPages             int           // pagination ceiling per kind
	VoteCountFloor       int64         // minimum vote_count for enrichment
	MaxCastPerTitle      int           // cast credits kept per title
	MaxDirectorsPerTitle int           // director credits kept per title
	HeadshotCastLimit    int           // top-N cast that get headshot variants
	PageDelay            time.Duration // sleep between listing pages
	TitleDelay           time.Duration // sleep between enriched titles
	ProgressInterval     int           // log progress every N titles
}

// DefaultConfig returns the parameters used by the daily import.
func DefaultConfig() Config {
	return Config{
		MaxPages:             60,
		VoteCountFloor:       100,
		MaxCastPerTitle:      20,
		MaxDirectorsPerTitle: 10,
		HeadshotCastLimit:    10,
		PageDelay:            250 * time.Millisecond,
		TitleDelay:           50 * time.Millisecond,
		ProgressInterval:     20,
	}
}
