package tracking

import "github.com/coregx/cgdfa/charclass"

// executor holds the locals of one match attempt.
type executor struct {
	d    *DFA
	in   Input
	regs *Registers

	index   int
	bound   int
	trueEnd int
	step    int

	searching bool
	direction Direction
	fastScan  bool

	// last is the most recently applied lazy transition.
	last TransitionID

	found   bool
	skipped int
}

// run steps from state s until no successor remains and reports whether a
// result was stored.
func (e *executor) run(s StateID) bool {
	for {
		next, ok := e.findSuccessor(&e.d.states[s])
		if !ok {
			return e.found
		}
		s = next
	}
}

// findSuccessor consumes one character in state n, or a run of them if n
// loops on itself and can be fast-scanned, and returns the next state.
// It returns false once no successor exists.
func (e *executor) findSuccessor(n *node) (StateID, bool) {
	lt := n.prev.lookup(e.last)
	if e.searching {
		e.checkFinalState(n, lt)
	}
	if e.index == e.bound {
		e.atEnd(n, lt)
		return 0, false
	}

	edge := e.matchEdge(n)
	if edge == charclass.NoEdge {
		return 0, false
	}
	e.applyPartialTransition(n, lt, edge)
	if edge == n.LoopToSelf && e.canFastScan(n) {
		e.skipLoop(n)
	}
	return n.Successors[edge], true
}

// matchEdge reads the character under the cursor, advances past it and
// returns the accepting edge, or charclass.NoEdge.
func (e *executor) matchEdge(n *node) int {
	pos := e.index
	if e.step < 0 {
		pos--
	}
	c := e.in.At(pos)
	e.index += e.step
	if n.Tree != nil {
		return n.Tree.Lookup(c)
	}
	return charclass.Linear(n.Matchers, c)
}

// applyPartialTransition applies edge's partial transition at the position
// before the consumed character and records the edge's lazy transition.
func (e *executor) applyPartialTransition(n *node, lt *LazyTransition, edge int) {
	lt.Partials[edge].Apply(e.regs, e.index-e.step)
	e.last = n.Transitions[edge]
}

func (e *executor) canFastScan(n *node) bool {
	return e.fastScan && n.FastScan != nil && n.FastScan.Direction == e.direction
}

// skipLoop advances the cursor over the run of characters n's fast-scan
// descriptor accepts. The cursor stops on the first rejected character, or
// at the bound; stepping resumes there as usual.
func (e *executor) skipLoop(n *node) {
	pre := e.index
	post := n.FastScan.Scan(e.in, pre, e.bound)
	e.applyLoopTransitions(n, pre, post)
	e.skipped += (post - pre) * e.step
	e.index = post
}

// applyLoopTransitions brings the registers up to date for the loop
// iterations between pre and post. A reordering loop transition is
// replayed at every position; any other is applied once at the last.
func (e *executor) applyLoopTransitions(n *node, pre, post int) {
	p := n.loopPartial
	if p.Reorders {
		for i := pre; i != post; i += e.step {
			p.Apply(e.regs, i)
		}
		return
	}
	if pre != post {
		p.Apply(e.regs, post-e.step)
	}
}

// atEnd resolves the attempt when the cursor reached the bound.
func (e *executor) atEnd(n *node, lt *LazyTransition) {
	if n.IsAnchoredFinal() && e.index == e.trueEnd {
		lt.ToAnchoredFinal.ApplyPreFinal(e.regs, e.searching, e.index)
		n.AnchoredFinalTransition.ApplyFinal(e.regs, e.searching, e.index+e.step)
		e.storeResult()
		return
	}
	if !e.searching {
		e.checkFinalState(n, lt)
	}
}

// checkFinalState records a match ending at the cursor if n is final.
func (e *executor) checkFinalState(n *node, lt *LazyTransition) {
	if !n.IsFinal() {
		return
	}
	lt.ToFinal.ApplyPreFinal(e.regs, e.searching, e.index)
	n.UnanchoredFinalTransition.ApplyFinal(e.regs, e.searching, e.index+e.step)
	e.storeResult()
}

func (e *executor) storeResult() {
	if !e.searching {
		e.regs.Export(0)
	}
	e.found = true
}
