package tracking

// Policy selects how a match attempt ends.
type Policy uint8

const (
	// FullMatch accepts only a match ending at the bound of the attempt.
	FullMatch Policy = iota

	// Search records every final state visited on the way as a candidate,
	// each replacing the previous one, and stops when no edge accepts the
	// next character.
	Search
)

// String returns the policy name.
func (p Policy) String() string {
	if p == Search {
		return "search"
	}
	return "full-match"
}

// Mode describes one match attempt.
type Mode struct {
	Direction Direction
	Policy    Policy

	// Anchored starts from the automaton's anchored start state.
	Anchored bool

	// NoFastScan disables loop fast-scanning. Results are identical either
	// way; this exists for differential testing and benchmarking.
	NoFastScan bool
}

// Cache holds the per-attempt state of a DFA execution.
// A Cache is reused across attempts but never shared between goroutines.
type Cache struct {
	regs    *Registers
	skipped int
}

// NewCache allocates a cache sized for d.
func (d *DFA) NewCache() *Cache {
	return &Cache{regs: NewRegisters(d.a.NumRows, d.a.SlotCount())}
}

// Reset prepares the cache for a new attempt.
func (c *Cache) Reset() {
	c.regs.Reset()
	c.skipped = 0
}

// Registers returns the cache's register file.
func (c *Cache) Registers() *Registers {
	return c.regs
}

// Skipped returns the number of characters the last attempt passed over
// with the loop fast-scanner.
func (c *Cache) Skipped() int {
	return c.skipped
}

// Exec runs one match attempt from start to the natural end of in: its
// length when stepping forward, 0 when stepping backward.
//
// It returns the capture slots [start0, end0, start1, end1, ...] with -1 for
// unset groups, or nil if there is no match. The slice is owned by cache
// and valid until its next use.
func (d *DFA) Exec(in Input, start int, mode Mode, cache *Cache) ([]int, error) {
	bound := in.Len()
	if mode.Direction == Backward {
		bound = 0
	}
	return d.ExecRange(in, start, bound, mode, cache)
}

// ExecRange runs one match attempt over the characters between start and
// bound. Forward attempts need start <= bound, backward attempts
// bound <= start. An anchored-final state only matches when bound is the
// natural end of in.
func (d *DFA) ExecRange(in Input, start, bound int, mode Mode, cache *Cache) ([]int, error) {
	if in.Width() != d.a.Width {
		return nil, ErrInputWidth
	}
	n := in.Len()
	if start < 0 || start > n || bound < 0 || bound > n {
		return nil, ErrInvalidRange
	}
	if mode.Direction == Backward && bound > start || mode.Direction == Forward && start > bound {
		return nil, ErrInvalidRange
	}
	if cache.regs.NumRows() != d.a.NumRows || len(cache.regs.Result()) != d.a.SlotCount() {
		cache.regs = NewRegisters(d.a.NumRows, d.a.SlotCount())
	}
	cache.Reset()

	e := executor{
		d:         d,
		in:        in,
		regs:      cache.regs,
		index:     start,
		bound:     bound,
		trueEnd:   n,
		step:      mode.Direction.step(),
		searching: mode.Policy == Search,
		direction: mode.Direction,
		fastScan:  !mode.NoFastScan,
	}
	if mode.Direction == Backward {
		e.trueEnd = 0
	}

	s, last := d.a.UnanchoredStart, d.a.UnanchoredEntry
	if mode.Anchored {
		s, last = d.a.AnchoredStart, d.a.AnchoredEntry
	}
	e.last = last
	found := e.run(s)
	cache.skipped = e.skipped
	if !found {
		return nil, nil
	}
	return cache.regs.Result(), nil
}
