package cgdfa

import "sync/atomic"

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// Searches counts search-policy attempts (Match, Find*).
	Searches uint64

	// FullMatches counts full-match attempts (FullMatch*, ReverseMatch).
	FullMatches uint64

	// PrefilterCandidates counts candidate positions the prefilter produced
	PrefilterCandidates uint64

	// PrefilterMisses counts candidates where no match started
	PrefilterMisses uint64

	// PrefilterRetired counts searches that abandoned the prefilter because
	// too few of its candidates started a match.
	PrefilterRetired uint64

	// FastScanSkipped counts characters passed over by the loop fast-scanner
	FastScanSkipped uint64
}

// counters is the concurrently updated form of Stats.
type counters struct {
	searches            atomic.Uint64
	fullMatches         atomic.Uint64
	prefilterCandidates atomic.Uint64
	prefilterMisses     atomic.Uint64
	prefilterRetired    atomic.Uint64
	fastScanSkipped     atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Searches:            c.searches.Load(),
		FullMatches:         c.fullMatches.Load(),
		PrefilterCandidates: c.prefilterCandidates.Load(),
		PrefilterMisses:     c.prefilterMisses.Load(),
		PrefilterRetired:    c.prefilterRetired.Load(),
		FastScanSkipped:     c.fastScanSkipped.Load(),
	}
}

func (c *counters) reset() {
	c.searches.Store(0)
	c.fullMatches.Store(0)
	c.prefilterCandidates.Store(0)
	c.prefilterMisses.Store(0)
	c.prefilterRetired.Store(0)
	c.fastScanSkipped.Store(0)
}
