package tracking

import (
	"github.com/coregx/cgdfa/charclass"
	"github.com/coregx/cgdfa/internal/conv"
	"github.com/coregx/cgdfa/internal/sparse"
)

const (
	maxGroups = 128
	maxRows   = 256
	maxIDs    = 1 << 16
)

// DFA is a validated automaton ready for execution.
// It is immutable and safe for concurrent use; each concurrent attempt
// needs its own Cache.
type DFA struct {
	a      *Automaton
	states []node
}

// node is the executable form of a State.
type node struct {
	*State
	prev dispatch

	// loopPartial is the self-loop partial transition applied while the
	// state keeps looping, nil without a self-loop.
	loopPartial *PartialTransition
}

// New validates a and prepares it for execution. The automaton is copied,
// so later changes to a do not affect the returned DFA.
func New(a *Automaton) (*DFA, error) {
	if a == nil {
		return nil, invalidf("nil automaton")
	}
	a = a.Clone()
	if err := validate(a); err != nil {
		return nil, err
	}

	d := &DFA{
		a:      a,
		states: make([]node, len(a.States)),
	}
	for i := range a.States {
		s := &a.States[i]
		n := node{
			State: s,
			prev:  newDispatch(a, s.Preceding),
		}
		if s.HasLoopToSelf() {
			loop := &a.Transitions[s.Transitions[s.LoopToSelf]]
			n.loopPartial = &loop.Partials[s.LoopToSelf]
		}
		d.states[i] = n
	}
	return d, nil
}

// NumGroups returns the number of capture groups including group 0.
func (d *DFA) NumGroups() int {
	return d.a.NumGroups
}

// NumStates returns the number of states.
func (d *DFA) NumStates() int {
	return len(d.states)
}

// Width returns the input code unit width.
func (d *DFA) Width() Width {
	return d.a.Width
}

// Direction returns the direction the automaton steps in.
func (d *DFA) Direction() Direction {
	return d.a.Direction
}

// Prefixes returns the literal prefixes declared by the automaton.
// The returned slices must not be modified.
func (d *DFA) Prefixes() [][]byte {
	return d.a.Prefixes
}

// validate returns the first defect found in a.
func validate(a *Automaton) error {
	if a.Width != Width8 && a.Width != Width16 {
		return invalidf("unsupported width %d", a.Width)
	}
	if a.Direction != Forward && a.Direction != Backward {
		return invalidf("unsupported direction %d", a.Direction)
	}
	if a.NumGroups < 1 || a.NumGroups > maxGroups {
		return invalidf("group count %d out of range [1, %d]", a.NumGroups, maxGroups)
	}
	if a.NumRows < 1 || a.NumRows > maxRows {
		return invalidf("row count %d out of range [1, %d]", a.NumRows, maxRows)
	}
	if len(a.States) == 0 || len(a.States) > maxIDs {
		return invalidf("state count %d out of range [1, %d]", len(a.States), maxIDs)
	}
	if len(a.Transitions) > maxIDs {
		return invalidf("transition count %d exceeds %d", len(a.Transitions), maxIDs)
	}
	if int(a.AnchoredStart) >= len(a.States) || int(a.UnanchoredStart) >= len(a.States) {
		return invalidf("start state out of range")
	}
	if int(a.AnchoredEntry) >= len(a.Transitions) || int(a.UnanchoredEntry) >= len(a.Transitions) {
		return invalidf("entry transition out of range")
	}
	for i, p := range a.Prefixes {
		if len(p) == 0 {
			return invalidf("prefix %d is empty", i)
		}
	}

	// target[t] is the state lazy transition t enters, or -1.
	target := make([]int, len(a.Transitions))
	for i := range target {
		target[i] = -1
	}
	bind := func(t TransitionID, s StateID) error {
		switch target[t] {
		case -1:
			target[t] = int(s)
		case int(s):
		default:
			return invalidf("transition %d enters both state %d and state %d", t, target[t], s)
		}
		return nil
	}
	if err := bind(a.AnchoredEntry, a.AnchoredStart); err != nil {
		return err
	}
	if err := bind(a.UnanchoredEntry, a.UnanchoredStart); err != nil {
		return err
	}

	for i := range a.States {
		if err := validateState(a, i); err != nil {
			return err
		}
		s := &a.States[i]
		for e, t := range s.Transitions {
			if err := bind(t, s.Successors[e]); err != nil {
				return err
			}
		}
	}

	if err := validatePreceding(a, target); err != nil {
		return err
	}

	for t := range a.Transitions {
		if target[t] < 0 {
			return invalidf("transition %d is never taken", t)
		}
		lt := &a.Transitions[t]
		if want := len(a.States[target[t]].Matchers); len(lt.Partials) != want {
			return invalidf("transition %d has %d partials, state %d has %d edges", t, len(lt.Partials), target[t], want)
		}
		for e := range lt.Partials {
			if err := validatePartial(a, &lt.Partials[e], false); err != nil {
				return invalidf("transition %d edge %d: %v", t, e, err.Cause)
			}
		}
		if err := validatePartial(a, &lt.ToFinal, false); err != nil {
			return invalidf("transition %d to final: %v", t, err.Cause)
		}
		if err := validatePartial(a, &lt.ToAnchoredFinal, false); err != nil {
			return invalidf("transition %d to anchored final: %v", t, err.Cause)
		}
	}

	return validateReachable(a)
}

func validateState(a *Automaton, i int) error {
	s := &a.States[i]
	n := len(s.Matchers)
	if len(s.Successors) != n || len(s.Transitions) != n {
		return invalidf("state %d: %d matchers, %d successors, %d transitions", i, n, len(s.Successors), len(s.Transitions))
	}
	for e := 0; e < n; e++ {
		if s.Matchers[e] == nil {
			return invalidf("state %d edge %d: nil matcher", i, e)
		}
		if int(s.Successors[e]) >= len(a.States) {
			return invalidf("state %d edge %d: successor %d out of range", i, e, s.Successors[e])
		}
		if int(s.Transitions[e]) >= len(a.Transitions) {
			return invalidf("state %d edge %d: transition %d out of range", i, e, s.Transitions[e])
		}
		if int(s.Successors[e]) == i && e != s.LoopToSelf {
			return invalidf("state %d edge %d: self edge is not the loop edge", i, e)
		}
	}
	if s.LoopToSelf != NoLoop {
		if s.LoopToSelf < 0 || s.LoopToSelf >= n {
			return invalidf("state %d: loop index %d out of range", i, s.LoopToSelf)
		}
		if int(s.Successors[s.LoopToSelf]) != i {
			return invalidf("state %d: loop edge %d leads to state %d", i, s.LoopToSelf, s.Successors[s.LoopToSelf])
		}
	}
	if s.Tree != nil && s.Tree.MaxEdge() >= n {
		return invalidf("state %d: tree selects edge %d of %d", i, s.Tree.MaxEdge(), n)
	}
	if s.FastScan != nil {
		if !s.HasLoopToSelf() {
			return invalidf("state %d: fast scan without self-loop", i)
		}
		if s.FastScan.Accept == nil {
			return invalidf("state %d: fast scan without accept set", i)
		}
		loop := s.Matchers[s.LoopToSelf]
		limit := charclass.MaxChar
		if a.Width == Width8 {
			limit = 0xFF
		}
		for c := uint32(0); c <= uint32(limit); c++ {
			if s.FastScan.Accept.Match(charclass.Char(c)) && !loop.Match(charclass.Char(c)) {
				return invalidf("state %d: fast scan accepts %#x outside the loop edge", i, c)
			}
		}
	}
	if len(s.Preceding) == 0 {
		return invalidf("state %d: no preceding transitions", i)
	}
	if err := validatePartial(a, &s.AnchoredFinalTransition, true); err != nil {
		return invalidf("state %d anchored final: %v", i, err.Cause)
	}
	if err := validatePartial(a, &s.UnanchoredFinalTransition, true); err != nil {
		return invalidf("state %d unanchored final: %v", i, err.Cause)
	}
	return nil
}

// validatePreceding checks that each state's preceding list is exactly the
// set of transitions entering it.
func validatePreceding(a *Automaton, target []int) error {
	entering := make([]int, len(a.States))
	for _, s := range target {
		if s >= 0 {
			entering[s]++
		}
	}
	seen := sparse.New(conv.IntToUint32(len(a.Transitions)))
	for i := range a.States {
		seen.Clear()
		for _, t := range a.States[i].Preceding {
			if int(t) >= len(a.Transitions) {
				return invalidf("state %d: preceding transition %d out of range", i, t)
			}
			if !seen.Insert(uint32(t)) {
				return invalidf("state %d: duplicate preceding transition %d", i, t)
			}
			if target[t] != i {
				return invalidf("state %d: preceding transition %d enters state %d", i, t, target[t])
			}
		}
		if seen.Len() != entering[i] {
			return invalidf("state %d: %d transitions enter it, %d listed as preceding", i, entering[i], seen.Len())
		}
	}
	return nil
}

// validateReachable checks that every state is reachable from a start state.
func validateReachable(a *Automaton) error {
	visited := sparse.New(conv.IntToUint32(len(a.States)))
	stack := []StateID{a.AnchoredStart, a.UnanchoredStart}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visited.Insert(uint32(s)) {
			continue
		}
		stack = append(stack, a.States[s].Successors...)
	}
	if visited.Len() != visited.Capacity() {
		for i := range a.States {
			if !visited.Contains(conv.IntToUint32(i)) {
				return invalidf("state %d is unreachable", i)
			}
		}
	}
	return nil
}

func validatePartial(a *Automaton, p *PartialTransition, final bool) *Error {
	if final && (len(p.Swaps) != 0 || len(p.Copies) != 0) {
		return invalidf("final-state transition swaps or copies rows")
	}
	if len(p.Swaps)%2 != 0 || len(p.Copies)%2 != 0 {
		return invalidf("odd swap or copy list")
	}
	for _, r := range p.Swaps {
		if int(r) >= a.NumRows {
			return invalidf("swap row %d out of range", r)
		}
	}
	for _, r := range p.Copies {
		if int(r) >= a.NumRows {
			return invalidf("copy row %d out of range", r)
		}
	}
	if int(p.PreFinalRow) >= a.NumRows {
		return invalidf("pre-final row %d out of range", p.PreFinalRow)
	}
	for _, ops := range [][]IndexOp{p.Updates, p.Clears} {
		for _, op := range ops {
			if int(op.Row) >= a.NumRows {
				return invalidf("row %d out of range", op.Row)
			}
			for _, s := range op.Slots {
				if int(s) >= a.SlotCount() {
					return invalidf("slot %d out of range", s)
				}
			}
		}
	}
	return nil
}
