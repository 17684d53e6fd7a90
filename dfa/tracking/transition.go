package tracking

// IndexOp addresses a set of slots in one logical register row.
type IndexOp struct {
	Row   uint8
	Slots []uint8
}

// PartialTransition mutates the candidate register rows as of one input
// position. Apply runs its parts in a fixed order: row swaps, row copies,
// slot updates, slot clears. Rows are always addressed logically, through
// the row order maintained by the swaps.
type PartialTransition struct {
	// Swaps holds pairs of logical rows whose order entries are exchanged.
	Swaps []uint8

	// Copies holds (src, dst) pairs of logical rows.
	Copies []uint8

	// Updates set slots to the current position.
	Updates []IndexOp

	// Clears reset slots to -1.
	Clears []IndexOp

	// PreFinalRow is the logical row holding the match when this
	// transition ends a match in search mode.
	PreFinalRow uint8

	// Reorders reports that applying this transition once at the end of a
	// range differs from applying it at every position of the range. It is
	// supplied by the compiler and never inferred.
	Reorders bool
}

// IsEmpty reports whether the transition mutates nothing.
func (p *PartialTransition) IsEmpty() bool {
	return len(p.Swaps) == 0 && len(p.Copies) == 0 && len(p.Updates) == 0 && len(p.Clears) == 0
}

// Apply mutates r as of position pos.
func (p *PartialTransition) Apply(r *Registers, pos int) {
	for i := 0; i+1 < len(p.Swaps); i += 2 {
		a, b := p.Swaps[i], p.Swaps[i+1]
		r.order[a], r.order[b] = r.order[b], r.order[a]
	}
	for i := 0; i+1 < len(p.Copies); i += 2 {
		copy(r.Row(int(p.Copies[i+1])), r.Row(int(p.Copies[i])))
	}
	for _, op := range p.Updates {
		setSlots(r.Row(int(op.Row)), op.Slots, pos)
	}
	for _, op := range p.Clears {
		setSlots(r.Row(int(op.Row)), op.Slots, -1)
	}
}

// ApplyPreFinal records a match boundary at pos.
//
// In full-match mode this is Apply: the match is exported from row 0 once
// stepping ends. In search mode the rows stay live, so row PreFinalRow is
// exported into the result and the updates and clears addressed to row 0
// are applied to the result only.
func (p *PartialTransition) ApplyPreFinal(r *Registers, searching bool, pos int) {
	if !searching {
		p.Apply(r, pos)
		return
	}
	r.Export(int(p.PreFinalRow))
	p.applyResult(r, pos)
}

// ApplyFinal applies a final-state transition at pos, one past the match
// boundary. Final-state transitions never swap or copy rows.
func (p *PartialTransition) ApplyFinal(r *Registers, searching bool, pos int) {
	if !searching {
		p.Apply(r, pos)
		return
	}
	p.applyResult(r, pos)
}

func (p *PartialTransition) applyResult(r *Registers, pos int) {
	for _, op := range p.Updates {
		if op.Row == 0 {
			setSlots(r.result, op.Slots, pos)
		}
	}
	for _, op := range p.Clears {
		if op.Row == 0 {
			setSlots(r.result, op.Slots, -1)
		}
	}
}

// Clone returns a deep copy.
func (p PartialTransition) Clone() PartialTransition {
	c := p
	c.Swaps = append([]uint8(nil), p.Swaps...)
	c.Copies = append([]uint8(nil), p.Copies...)
	c.Updates = cloneOps(p.Updates)
	c.Clears = cloneOps(p.Clears)
	return c
}

func cloneOps(ops []IndexOp) []IndexOp {
	if ops == nil {
		return nil
	}
	c := make([]IndexOp, len(ops))
	for i, op := range ops {
		c[i] = IndexOp{Row: op.Row, Slots: append([]uint8(nil), op.Slots...)}
	}
	return c
}

func setSlots(row []int, slots []uint8, v int) {
	for _, s := range slots {
		row[s] = v
	}
}
