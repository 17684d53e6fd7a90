package tracking

// dispatch selects the lazy transition that entered a state, keyed by the
// last applied transition id. States with a single preceding transition
// resolve it without a lookup.
type dispatch struct {
	single *LazyTransition

	// base is the smallest preceding id; table is indexed by id-base and
	// holds nil for ids that cannot precede the state.
	base  TransitionID
	table []*LazyTransition
}

func newDispatch(a *Automaton, preceding []TransitionID) dispatch {
	if len(preceding) == 1 {
		return dispatch{single: &a.Transitions[preceding[0]]}
	}
	lo, hi := preceding[0], preceding[0]
	for _, id := range preceding[1:] {
		lo = min(lo, id)
		hi = max(hi, id)
	}
	d := dispatch{
		base:  lo,
		table: make([]*LazyTransition, int(hi-lo)+1),
	}
	for _, id := range preceding {
		d.table[id-lo] = &a.Transitions[id]
	}
	return d
}

// lookup returns the lazy transition for last.
func (d *dispatch) lookup(last TransitionID) *LazyTransition {
	if d.single != nil {
		return d.single
	}
	i := int(last) - int(d.base)
	if i < 0 || i >= len(d.table) || d.table[i] == nil {
		inconsistent("transition %d does not precede state", last)
	}
	return d.table[i]
}
