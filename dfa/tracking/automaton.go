package tracking

import "github.com/coregx/cgdfa/charclass"

// StateID indexes Automaton.States.
type StateID uint16

// TransitionID indexes Automaton.Transitions.
type TransitionID uint16

// NoLoop marks a state without a self-loop edge.
const NoLoop = -1

// Flags holds per-state boolean properties.
type Flags uint8

const (
	// FlagFinal marks a state where a match may end at the current position.
	FlagFinal Flags = 1 << iota

	// FlagAnchoredFinal marks a state where a match may end only at the true
	// end of the input.
	FlagAnchoredFinal
)

// State is one DFA state.
//
// Matchers, Successors and Transitions are parallel: taking edge i reads a
// character accepted by Matchers[i], moves to Successors[i] and makes
// Transitions[i] the last applied lazy transition. Matchers are mutually
// exclusive.
type State struct {
	Flags Flags

	Matchers    []charclass.Matcher
	Successors  []StateID
	Transitions []TransitionID

	// LoopToSelf is the index of the edge leading back to this state, or
	// NoLoop.
	LoopToSelf int

	// Tree optionally replaces the linear scan over Matchers. It must select
	// the same edge for every character.
	Tree *charclass.Tree

	// FastScan optionally skips runs of characters that keep the self-loop
	// active. Requires LoopToSelf.
	FastScan *FastScan

	// Preceding lists every lazy transition that may enter this state.
	Preceding []TransitionID

	// AnchoredFinalTransition and UnanchoredFinalTransition are applied one
	// position past the match boundary when a match ends in this state.
	// They may only update and clear registers.
	AnchoredFinalTransition   PartialTransition
	UnanchoredFinalTransition PartialTransition
}

// IsFinal reports whether the state is final.
func (s *State) IsFinal() bool { return s.Flags&FlagFinal != 0 }

// IsAnchoredFinal reports whether the state is final at the true input end.
func (s *State) IsAnchoredFinal() bool { return s.Flags&FlagAnchoredFinal != 0 }

// HasLoopToSelf reports whether the state has a self-loop edge.
func (s *State) HasLoopToSelf() bool { return s.LoopToSelf >= 0 }

// LazyTransition carries the register mutations for one automaton edge.
// The mutations are applied only when the state it enters takes its next
// edge, which is when the surviving candidate rows are known.
type LazyTransition struct {
	// Partials is indexed by the edge index of the entered state.
	Partials []PartialTransition

	// ToFinal and ToAnchoredFinal are applied at the match boundary when
	// the entered state ends a match.
	ToFinal         PartialTransition
	ToAnchoredFinal PartialTransition
}

// Automaton is a compiled capture-group tracking DFA.
// It is produced by a pattern compiler and treated as read-only here.
type Automaton struct {
	// Width is the code unit width of inputs this automaton accepts.
	Width Width

	// Direction is the direction the automaton was compiled to step in.
	// Backward automatons read the input from the end and are meant for
	// reverse full matches.
	Direction Direction

	// NumGroups is the number of capture groups including group 0.
	NumGroups int

	// NumRows is the number of candidate register rows tracked in parallel.
	NumRows int

	States      []State
	Transitions []LazyTransition

	AnchoredStart   StateID
	UnanchoredStart StateID

	// AnchoredEntry and UnanchoredEntry act as the last applied lazy
	// transition when entering the respective start state.
	AnchoredEntry   TransitionID
	UnanchoredEntry TransitionID

	// Prefixes optionally lists literals every match starts with. Byte
	// automatons use them to find candidate start positions.
	Prefixes [][]byte
}

// Clone returns a deep copy of the automaton tables. Matchers, trees and
// fast-scan descriptors are immutable and shared.
func (a *Automaton) Clone() *Automaton {
	c := *a
	c.States = make([]State, len(a.States))
	for i := range a.States {
		s := a.States[i]
		s.Matchers = append([]charclass.Matcher(nil), s.Matchers...)
		s.Successors = append([]StateID(nil), s.Successors...)
		s.Transitions = append([]TransitionID(nil), s.Transitions...)
		s.Preceding = append([]TransitionID(nil), s.Preceding...)
		s.AnchoredFinalTransition = s.AnchoredFinalTransition.Clone()
		s.UnanchoredFinalTransition = s.UnanchoredFinalTransition.Clone()
		c.States[i] = s
	}
	c.Transitions = make([]LazyTransition, len(a.Transitions))
	for i := range a.Transitions {
		t := a.Transitions[i]
		partials := make([]PartialTransition, len(t.Partials))
		for j := range t.Partials {
			partials[j] = t.Partials[j].Clone()
		}
		t.Partials = partials
		t.ToFinal = t.ToFinal.Clone()
		t.ToAnchoredFinal = t.ToAnchoredFinal.Clone()
		c.Transitions[i] = t
	}
	c.Prefixes = make([][]byte, len(a.Prefixes))
	for i, p := range a.Prefixes {
		c.Prefixes[i] = append([]byte(nil), p...)
	}
	return &c
}

// SlotCount returns the register row length, two slots per group.
func (a *Automaton) SlotCount() int {
	return 2 * a.NumGroups
}
