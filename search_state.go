package cgdfa

import (
	"github.com/coregx/cgdfa/dfa/tracking"
	"github.com/coregx/cgdfa/prefilter"
)

// searchState holds the per-call mutable state of a Regex. It comes from
// the Regex's sync.Pool and is never shared between goroutines.
type searchState struct {
	cache *tracking.Cache

	// tracker is nil when the Regex has no prefilter.
	tracker *prefilter.Tracker
}

func newSearchState(d *tracking.DFA, pf prefilter.Prefilter) *searchState {
	return &searchState{
		cache:   d.NewCache(),
		tracker: prefilter.NewTracker(pf),
	}
}

func (r *Regex) getState() *searchState {
	return r.states.Get().(*searchState)
}

func (r *Regex) putState(st *searchState) {
	r.states.Put(st)
}
