package prefilter

// Tracker wraps a Prefilter with effectiveness tracking for one search.
//
// Every candidate costs an anchored automaton run. When most candidates fail
// to start a match, a single unanchored run over the rest of the input is
// cheaper, so the tracker retires the prefilter once the ratio of confirmed
// candidates drops below a threshold.
//
// Algorithm:
//  1. Count candidates (prefilter finds) and confirms (anchored matches)
//  2. After the warmup period, check the ratio every CheckInterval candidates
//  3. If the ratio is below MinEfficiency, retire the prefilter
//  4. Once retired, it stays retired until Reset
//
// Example usage:
//
//	t := prefilter.NewTracker(pf)
//	for t.IsActive() {
//	    pos := t.Find(haystack, start)
//	    if pos == -1 {
//	        return nil
//	    }
//	    if m := anchoredRun(haystack, pos); m != nil {
//	        t.ConfirmMatch()
//	        return m
//	    }
//	    start = pos + 1
//	}
//	return unanchoredRun(haystack, start)
type Tracker struct {
	inner Prefilter

	candidates     uint64
	confirms       uint64
	lastCheckpoint uint64

	config TrackerConfig
	active bool
}

// TrackerConfig holds configuration for the effectiveness tracker.
type TrackerConfig struct {
	// CheckInterval is how often to check effectiveness (in candidates).
	// Default: 64
	CheckInterval uint64

	// MinEfficiency is the minimum acceptable ratio of confirms/candidates.
	// Default: 0.1
	MinEfficiency float64

	// WarmupPeriod is the number of candidates seen before the first check.
	// Default: 128
	WarmupPeriod uint64
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		CheckInterval: 64,
		MinEfficiency: 0.1,
		WarmupPeriod:  128,
	}
}

// NewTracker creates a tracker with the default configuration.
// Returns nil if inner is nil.
func NewTracker(inner Prefilter) *Tracker {
	return NewTrackerWithConfig(inner, DefaultTrackerConfig())
}

// NewTrackerWithConfig creates a tracker with a custom configuration.
// Returns nil if inner is nil.
func NewTrackerWithConfig(inner Prefilter, config TrackerConfig) *Tracker {
	if inner == nil {
		return nil
	}
	return &Tracker{
		inner:  inner,
		config: config,
		active: true,
	}
}

// Find returns the next candidate position, or -1 if there is none or the
// prefilter has been retired. Callers distinguish the two with IsActive.
func (t *Tracker) Find(haystack []byte, start int) int {
	if !t.active {
		return -1
	}
	pos := t.inner.Find(haystack, start)
	if pos >= 0 {
		t.candidates++
		t.checkEffectiveness()
	}
	return pos
}

// ConfirmMatch records that the last candidate started a match.
func (t *Tracker) ConfirmMatch() {
	t.confirms++
}

// IsActive reports whether the prefilter is still in use.
func (t *Tracker) IsActive() bool {
	return t.active
}

// Stats returns (candidates, confirms, efficiency, active).
func (t *Tracker) Stats() (candidates, confirms uint64, efficiency float64, active bool) {
	candidates = t.candidates
	confirms = t.confirms
	if candidates > 0 {
		efficiency = float64(confirms) / float64(candidates)
	}
	active = t.active
	return
}

// Reset clears statistics and re-enables the prefilter.
func (t *Tracker) Reset() {
	t.candidates = 0
	t.confirms = 0
	t.lastCheckpoint = 0
	t.active = true
}

func (t *Tracker) checkEffectiveness() {
	if t.candidates < t.config.WarmupPeriod {
		return
	}
	if t.candidates-t.lastCheckpoint < t.config.CheckInterval {
		return
	}
	t.lastCheckpoint = t.candidates

	if float64(t.confirms)/float64(t.candidates) < t.config.MinEfficiency {
		t.active = false
	}
}
