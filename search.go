package cgdfa

import (
	"github.com/coregx/cgdfa/dfa/tracking"
	"github.com/coregx/cgdfa/prefilter"
)

// search finds the leftmost match in b starting at or after at. The result
// is owned by st.
//
// With a prefilter, the automaton runs anchored at each candidate the
// prefilter reports; every match starts with a prefix, so the first
// candidate that matches holds the leftmost match. When candidates keep
// failing, the tracker retires the prefilter and a single unanchored run
// covers the rest of b.
//
// Backward automatons have no leftmost search and never match here.
func (r *Regex) search(b []byte, at int, st *searchState) []int {
	if r.dfa.Direction() != tracking.Forward {
		return nil
	}
	r.stats.searches.Add(1)
	in := tracking.Bytes(b)
	unanchored := r.mode(tracking.Forward, tracking.Search, false)

	t := st.tracker
	if t == nil {
		return r.exec(in, at, len(b), unanchored, st.cache)
	}

	t.Reset()
	defer r.recordTracker(t)

	anchored := r.mode(tracking.Forward, tracking.Search, true)
	pos := at
	for t.IsActive() {
		cand := t.Find(b, pos)
		if cand < 0 {
			return nil
		}
		if m := r.exec(in, cand, len(b), anchored, st.cache); m != nil {
			t.ConfirmMatch()
			return m
		}
		pos = cand + 1
	}

	if pos > len(b) {
		return nil
	}
	return r.exec(in, pos, len(b), unanchored, st.cache)
}

// recordTracker adds the prefilter activity of one search to the stats.
func (r *Regex) recordTracker(t *prefilter.Tracker) {
	candidates, confirms, _, active := t.Stats()
	r.stats.prefilterCandidates.Add(candidates)
	r.stats.prefilterMisses.Add(candidates - confirms)
	if !active {
		r.stats.prefilterRetired.Add(1)
	}
}
