package tracking

// Registers is the capture-group register file of one match attempt:
// NumRows candidate rows of 2*NumGroups slots, the logical row order, and
// the exported result.
type Registers struct {
	slots  []int
	rows   [][]int
	order  []int
	result []int
}

// NewRegisters allocates registers for numRows rows of numSlots slots.
func NewRegisters(numRows, numSlots int) *Registers {
	r := &Registers{
		slots:  make([]int, numRows*numSlots),
		rows:   make([][]int, numRows),
		order:  make([]int, numRows),
		result: make([]int, numSlots),
	}
	for i := range r.rows {
		r.rows[i] = r.slots[i*numSlots : (i+1)*numSlots : (i+1)*numSlots]
	}
	r.Reset()
	return r
}

// Reset clears every slot and restores the identity row order.
func (r *Registers) Reset() {
	for i := range r.slots {
		r.slots[i] = -1
	}
	for i := range r.order {
		r.order[i] = i
	}
	for i := range r.result {
		r.result[i] = -1
	}
}

// Row returns logical row i.
func (r *Registers) Row(i int) []int {
	return r.rows[r.order[i]]
}

// NumRows returns the number of candidate rows.
func (r *Registers) NumRows() int {
	return len(r.rows)
}

// Result returns the exported result slots.
func (r *Registers) Result() []int {
	return r.result
}

// Export copies logical row i into the result.
func (r *Registers) Export(i int) {
	copy(r.result, r.Row(i))
}
