// Package cgdfa executes capture-group tracking DFAs.
//
// A tracking DFA is a deterministic automaton whose transitions carry small
// register programs. While the automaton steps over the input, those
// programs record where capture groups start and end, so a single linear
// pass yields the full submatch positions without backtracking or an NFA
// simulation.
//
// cgdfa does not compile patterns. Automatons come from a pattern compiler,
// either built in memory as a *tracking.Automaton or loaded from a YAML
// table with package table.
//
// Basic usage:
//
//	re, err := cgdfa.LoadBuiltin("key-value") // ([a-z]+)=([0-9]+)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	loc := re.FindSubmatchIndex([]byte("retries=3"))
//	fmt.Println(loc) // [0 9 0 7 8 9]
//
// Performance characteristics:
//   - One pass over the input per attempt, O(n) in the input length
//   - Self-looping states skip runs of characters with memchr-style scans
//   - Automatons declaring literal prefixes search with a prefilter
//     (memchr, memmem or Aho-Corasick) and run anchored at candidates
package cgdfa

import (
	"slices"
	"sync"

	"github.com/coregx/cgdfa/dfa/tracking"
	"github.com/coregx/cgdfa/prefilter"
	"github.com/coregx/cgdfa/table"
)

// Regex is an executable capture-group tracking DFA.
//
// A Regex is safe to use concurrently from multiple goroutines. Each
// attempt borrows a searchState from an internal pool.
//
// The automaton's direction decides which methods apply. Forward automatons
// serve every method except ReverseMatch. Backward automatons serve the
// full-match methods and ReverseMatch; searching with them finds nothing.
type Regex struct {
	dfa       *tracking.DFA
	config    Config
	prefilter prefilter.Prefilter
	name      string

	states sync.Pool
	stats  counters
}

// New prepares a for execution with the default configuration.
// Returns an error wrapping tracking.ErrInvalidAutomaton if a is malformed.
func New(a *tracking.Automaton) (*Regex, error) {
	return NewWithConfig(a, DefaultConfig())
}

// MustNew is like New but panics if the automaton is invalid.
//
// This is useful for automatons built by code known to be correct.
func MustNew(a *tracking.Automaton) *Regex {
	re, err := New(a)
	if err != nil {
		panic("cgdfa: New: " + err.Error())
	}
	return re
}

// NewWithConfig prepares a for execution with a custom configuration.
//
// Example:
//
//	config := cgdfa.DefaultConfig().WithFastScan(false)
//	re, err := cgdfa.NewWithConfig(a, config)
func NewWithConfig(a *tracking.Automaton, config Config) (*Regex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	d, err := tracking.New(a)
	if err != nil {
		return nil, err
	}

	re := &Regex{
		dfa:    d,
		config: config,
	}
	if config.EnablePrefilter && d.Width() == tracking.Width8 && d.Direction() == tracking.Forward {
		if pf := prefilter.New(d.Prefixes()); pf != nil && pf.MinLen() >= config.MinPrefixLen {
			re.prefilter = pf
		}
	}
	re.states.New = func() any {
		return newSearchState(d, re.prefilter)
	}
	return re, nil
}

// FromTable prepares a loaded table for execution with the default
// configuration. The Regex takes its name from the table.
func FromTable(t *table.Table) (*Regex, error) {
	re, err := New(t.Automaton)
	if err != nil {
		return nil, err
	}
	re.name = t.Name
	return re, nil
}

// LoadBuiltin loads one of the built-in tables shipped with package table.
func LoadBuiltin(name string) (*Regex, error) {
	t, err := table.NewLoader().LoadBuiltin(name)
	if err != nil {
		return nil, err
	}
	return FromTable(t)
}

// String returns the name of the table the Regex was loaded from, or the
// empty string for automatons built in memory.
func (r *Regex) String() string {
	return r.name
}

// NumSubexp returns the number of capture groups, not counting the whole
// match.
func (r *Regex) NumSubexp() int {
	return r.dfa.NumGroups() - 1
}

// Stats returns execution statistics.
//
// Example:
//
//	stats := re.Stats()
//	println("prefilter misses:", stats.PrefilterMisses)
func (r *Regex) Stats() Stats {
	return r.stats.snapshot()
}

// ResetStats resets execution statistics to zero.
func (r *Regex) ResetStats() {
	r.stats.reset()
}

// FullMatch reports the capture slots of a match spanning all of b, or nil.
// Slots of groups that did not participate are -1. Backward automatons
// step from the end of b.
//
// FullMatch panics if the automaton reads 16-bit code units.
func (r *Regex) FullMatch(b []byte) []int {
	return r.fullMatch(tracking.Bytes(b))
}

// FullMatchUTF16 is like FullMatch for UTF-16 code units.
//
// FullMatchUTF16 panics if the automaton reads bytes.
func (r *Regex) FullMatchUTF16(u []uint16) []int {
	return r.fullMatch(tracking.UTF16(u))
}

// ReverseMatch runs a backward automaton from end and reports the capture
// slots of a match spanning b[:end], or nil.
//
// ReverseMatch returns nil for forward automatons and if end is outside
// [0, len(b)].
func (r *Regex) ReverseMatch(b []byte, end int) []int {
	if r.dfa.Direction() != tracking.Backward || end < 0 || end > len(b) {
		return nil
	}
	r.stats.fullMatches.Add(1)
	mode := r.mode(tracking.Backward, tracking.FullMatch, true)
	return r.run(tracking.Bytes(b), end, 0, mode)
}

// Match reports whether b contains a match.
func (r *Regex) Match(b []byte) bool {
	st := r.getState()
	defer r.putState(st)
	return r.search(b, 0, st) != nil
}

// FindIndex returns the start and end of the leftmost match in b, or nil.
func (r *Regex) FindIndex(b []byte) []int {
	st := r.getState()
	defer r.putState(st)
	m := r.search(b, 0, st)
	if m == nil {
		return nil
	}
	return []int{m[0], m[1]}
}

// FindSubmatchIndex returns the capture slots of the leftmost match in b,
// or nil. Slot 2i and 2i+1 hold the bounds of group i.
func (r *Regex) FindSubmatchIndex(b []byte) []int {
	return r.FindSubmatchIndexAt(b, 0)
}

// FindSubmatchIndexAt is like FindSubmatchIndex but ignores matches
// starting before at. Positions stay relative to b.
func (r *Regex) FindSubmatchIndexAt(b []byte, at int) []int {
	if at < 0 || at > len(b) {
		return nil
	}
	st := r.getState()
	defer r.putState(st)
	return slices.Clone(r.search(b, at, st))
}

// FindAllSubmatchIndex returns the capture slots of successive
// non-overlapping matches. If n >= 0, it returns at most n matches.
// As in package regexp, an empty match directly after a previous match
// is skipped.
func (r *Regex) FindAllSubmatchIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}
	st := r.getState()
	defer r.putState(st)

	var out [][]int
	pos, prevEnd := 0, -1
	for pos <= len(b) {
		m := r.search(b, pos, st)
		if m == nil {
			break
		}
		if m[0] != m[1] || m[0] != prevEnd {
			out = append(out, slices.Clone(m))
			if n > 0 && len(out) == n {
				break
			}
		}
		prevEnd = m[1]
		pos = nextSearchPos(pos, m)
	}
	return out
}

// nextSearchPos returns where the search after match m, found from pos,
// resumes. It always lies past pos.
func nextSearchPos(pos int, m []int) int {
	next := m[1]
	if m[0] == m[1] {
		next++
	}
	if next <= pos {
		next = pos + 1
	}
	return next
}

func (r *Regex) fullMatch(in tracking.Input) []int {
	r.stats.fullMatches.Add(1)
	if r.dfa.Direction() == tracking.Backward {
		return r.run(in, in.Len(), 0, r.mode(tracking.Backward, tracking.FullMatch, true))
	}
	return r.run(in, 0, in.Len(), r.mode(tracking.Forward, tracking.FullMatch, true))
}

// run executes one attempt with pooled state and returns a copy of the
// result.
func (r *Regex) run(in tracking.Input, start, bound int, mode tracking.Mode) []int {
	st := r.getState()
	defer r.putState(st)
	return slices.Clone(r.exec(in, start, bound, mode, st.cache))
}

// exec runs one attempt. The result is owned by cache.
func (r *Regex) exec(in tracking.Input, start, bound int, mode tracking.Mode, cache *tracking.Cache) []int {
	m, err := r.dfa.ExecRange(in, start, bound, mode, cache)
	if err != nil {
		// Ranges are checked by the callers, so only a width mismatch gets here.
		panic("cgdfa: " + err.Error())
	}
	if s := cache.Skipped(); s > 0 {
		r.stats.fastScanSkipped.Add(uint64(s))
	}
	return m
}

func (r *Regex) mode(dir tracking.Direction, policy tracking.Policy, anchored bool) tracking.Mode {
	return tracking.Mode{
		Direction:  dir,
		Policy:     policy,
		Anchored:   anchored,
		NoFastScan: !r.config.EnableFastScan,
	}
}
