package tracking

import "github.com/coregx/cgdfa/charclass"

// Hand-built automata shared by the tests. Slot numbering follows the
// result layout: group g occupies slots 2g and 2g+1.

func upd(row uint8, slots ...uint8) PartialTransition {
	return PartialTransition{Updates: []IndexOp{{Row: row, Slots: slots}}}
}

// aPlusB is a+b for full matching. State 1 loops on a and can be
// fast-scanned; state 2 is final and anchored final.
func aPlusB(a, b charclass.Char, width Width) *Automaton {
	return &Automaton{
		Width:     width,
		NumGroups: 1,
		NumRows:   1,
		States: []State{
			{
				Matchers:    []charclass.Matcher{charclass.Single(a)},
				Successors:  []StateID{1},
				Transitions: []TransitionID{1},
				LoopToSelf:  NoLoop,
				Preceding:   []TransitionID{0},
			},
			{
				Matchers:    []charclass.Matcher{charclass.Single(a), charclass.Single(b)},
				Successors:  []StateID{1, 2},
				Transitions: []TransitionID{2, 3},
				LoopToSelf:  0,
				FastScan:    NewFastScan(charclass.Single(a), Forward),
				Preceding:   []TransitionID{1, 2},
			},
			{
				Flags:      FlagFinal | FlagAnchoredFinal,
				LoopToSelf: NoLoop,
				Preceding:  []TransitionID{3},
			},
		},
		Transitions: []LazyTransition{
			{Partials: []PartialTransition{upd(0, 0)}},
			{Partials: make([]PartialTransition, 2)},
			{Partials: make([]PartialTransition, 2)},
			{ToFinal: upd(0, 1), ToAnchoredFinal: upd(0, 1)},
		},
	}
}

// twoGroups is (a)(b) with three groups.
func twoGroups() *Automaton {
	return &Automaton{
		Width:     Width8,
		NumGroups: 3,
		NumRows:   1,
		States: []State{
			{
				Matchers:    []charclass.Matcher{charclass.Single('a')},
				Successors:  []StateID{1},
				Transitions: []TransitionID{1},
				LoopToSelf:  NoLoop,
				Preceding:   []TransitionID{0},
			},
			{
				Matchers:    []charclass.Matcher{charclass.Single('b')},
				Successors:  []StateID{2},
				Transitions: []TransitionID{2},
				LoopToSelf:  NoLoop,
				Preceding:   []TransitionID{1},
			},
			{
				Flags:      FlagFinal | FlagAnchoredFinal,
				LoopToSelf: NoLoop,
				Preceding:  []TransitionID{2},
			},
		},
		Transitions: []LazyTransition{
			{Partials: []PartialTransition{upd(0, 0, 2)}},
			{Partials: []PartialTransition{upd(0, 3, 4)}},
			{ToFinal: upd(0, 1, 5), ToAnchoredFinal: upd(0, 1, 5)},
		},
	}
}

// twoGroupsBackward is (a)(b) stepping from the end of the input.
func twoGroupsBackward() *Automaton {
	a := twoGroups()
	a.Direction = Backward
	a.States[0].Matchers = []charclass.Matcher{charclass.Single('b')}
	a.States[1].Matchers = []charclass.Matcher{charclass.Single('a')}
	a.Transitions[0].Partials = []PartialTransition{upd(0, 1, 5)}
	a.Transitions[2] = LazyTransition{ToFinal: upd(0, 0, 2), ToAnchoredFinal: upd(0, 0, 2)}
	return a
}

// aPlusBackward reads b then a+ from the end of the input. The a+ loop is
// final and fast-scanned backward.
func aPlusBackward() *Automaton {
	return &Automaton{
		Width:     Width8,
		Direction: Backward,
		NumGroups: 1,
		NumRows:   1,
		States: []State{
			{
				Matchers:    []charclass.Matcher{charclass.Single('b')},
				Successors:  []StateID{1},
				Transitions: []TransitionID{1},
				LoopToSelf:  NoLoop,
				Preceding:   []TransitionID{0},
			},
			{
				Matchers:    []charclass.Matcher{charclass.Single('a')},
				Successors:  []StateID{2},
				Transitions: []TransitionID{2},
				LoopToSelf:  NoLoop,
				Preceding:   []TransitionID{1},
			},
			{
				Flags:       FlagFinal | FlagAnchoredFinal,
				Matchers:    []charclass.Matcher{charclass.Single('a')},
				Successors:  []StateID{2},
				Transitions: []TransitionID{3},
				LoopToSelf:  0,
				FastScan:    NewFastScan(charclass.Single('a'), Backward),
				Preceding:   []TransitionID{2, 3},
			},
		},
		Transitions: []LazyTransition{
			{Partials: []PartialTransition{upd(0, 1)}},
			{Partials: make([]PartialTransition, 1)},
			{Partials: make([]PartialTransition, 1), ToFinal: upd(0, 0), ToAnchoredFinal: upd(0, 0)},
			{Partials: make([]PartialTransition, 1), ToFinal: upd(0, 0), ToAnchoredFinal: upd(0, 0)},
		},
	}
}

// emptyStart has a start state with no edges; final selects whether it is
// anchored final.
func emptyStart(final bool) *Automaton {
	a := &Automaton{
		Width:     Width8,
		NumGroups: 1,
		NumRows:   1,
		States: []State{
			{LoopToSelf: NoLoop, Preceding: []TransitionID{0}},
		},
		Transitions: []LazyTransition{
			{ToFinal: upd(0, 0, 1), ToAnchoredFinal: upd(0, 0, 1)},
		},
	}
	if final {
		a.States[0].Flags = FlagAnchoredFinal
	}
	return a
}

// searchBPlus finds the leftmost b+. State 0 is the unanchored start
// skipping non-b bytes, state 1 the final b loop, state 2 the anchored
// start. Every match starts with "b".
func searchBPlus() *Automaton {
	notB := charclass.Not{M: charclass.Single('b')}
	return &Automaton{
		Width:     Width8,
		NumGroups: 1,
		NumRows:   1,
		States: []State{
			{
				Matchers:    []charclass.Matcher{charclass.Single('b'), notB},
				Successors:  []StateID{1, 0},
				Transitions: []TransitionID{1, 2},
				LoopToSelf:  1,
				FastScan:    NewFastScan(notB, Forward),
				Preceding:   []TransitionID{0, 2},
			},
			{
				Flags:       FlagFinal,
				Matchers:    []charclass.Matcher{charclass.Single('b')},
				Successors:  []StateID{1},
				Transitions: []TransitionID{3},
				LoopToSelf:  0,
				FastScan:    NewFastScan(charclass.Single('b'), Forward),
				Preceding:   []TransitionID{1, 3},
			},
			{
				Matchers:    []charclass.Matcher{charclass.Single('b')},
				Successors:  []StateID{1},
				Transitions: []TransitionID{1},
				LoopToSelf:  NoLoop,
				Preceding:   []TransitionID{4},
			},
		},
		Transitions: []LazyTransition{
			{Partials: []PartialTransition{upd(0, 0), {}}},
			{Partials: make([]PartialTransition, 1), ToFinal: upd(0, 1)},
			{Partials: []PartialTransition{upd(0, 0), {}}},
			{Partials: make([]PartialTransition, 1), ToFinal: upd(0, 1)},
			{Partials: []PartialTransition{upd(0, 0)}},
		},
		AnchoredStart:   2,
		UnanchoredStart: 0,
		AnchoredEntry:   4,
		UnanchoredEntry: 0,
		Prefixes:        [][]byte{[]byte("b")},
	}
}

// swapLoop is a+b with two candidate rows whose self-loop swaps them and
// stamps slot 2 of row 0. Applying that once is not the same as applying
// it per position, so the loop transition reports reorders.
func swapLoop(reorders bool) *Automaton {
	a := aPlusB('a', 'b', Width8)
	a.NumGroups = 2
	a.NumRows = 2
	loop := PartialTransition{
		Swaps:    []uint8{0, 1},
		Updates:  []IndexOp{{Row: 0, Slots: []uint8{2}}},
		Reorders: reorders,
	}
	a.Transitions[1].Partials[0] = loop
	a.Transitions[2].Partials[0] = loop.Clone()
	return a
}

func mustNew(tb interface {
	Helper()
	Fatalf(string, ...any)
}, a *Automaton) *DFA {
	tb.Helper()
	d, err := New(a)
	if err != nil {
		tb.Fatalf("New() error: %v", err)
	}
	return d
}
