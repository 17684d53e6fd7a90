package tracking

import (
	"math/rand"
	"slices"
	"testing"
	"testing/quick"

	"github.com/coregx/cgdfa/charclass"
)

func TestApplyOrder(t *testing.T) {
	r := NewRegisters(2, 4)
	first, second := upd(0, 0), upd(1, 1)
	first.Apply(r, 7)
	second.Apply(r, 9)

	// swap, then copy row 1 into row 0, then update and clear row 0
	p := PartialTransition{
		Swaps:   []uint8{0, 1},
		Copies:  []uint8{1, 0},
		Updates: []IndexOp{{Row: 0, Slots: []uint8{2}}},
		Clears:  []IndexOp{{Row: 0, Slots: []uint8{0}}},
	}
	p.Apply(r, 3)

	if got := r.Row(0); !slices.Equal(got, []int{-1, -1, 3, -1}) {
		t.Errorf("row 0 = %v", got)
	}
	if got := r.Row(1); !slices.Equal(got, []int{7, -1, -1, -1}) {
		t.Errorf("row 1 = %v", got)
	}

	r.Reset()
	if got := r.Row(0); !slices.Equal(got, []int{-1, -1, -1, -1}) {
		t.Errorf("row 0 after reset = %v", got)
	}
	if r.NumRows() != 2 {
		t.Errorf("NumRows() = %d", r.NumRows())
	}
}

func TestApplyPreFinalSearch(t *testing.T) {
	r := NewRegisters(2, 4)
	start := upd(1, 0)
	start.Apply(r, 5)

	p := PartialTransition{
		Swaps:       []uint8{0, 1},
		Updates:     []IndexOp{{Row: 0, Slots: []uint8{1}}, {Row: 1, Slots: []uint8{3}}},
		PreFinalRow: 1,
	}
	p.ApplyPreFinal(r, true, 8)

	if got := r.Result(); !slices.Equal(got, []int{5, 8, -1, -1}) {
		t.Errorf("result = %v, want [5 8 -1 -1]", got)
	}
	// rows stay live in search mode
	if got := r.Row(1); !slices.Equal(got, []int{5, -1, -1, -1}) {
		t.Errorf("row 1 mutated: %v", got)
	}

	final := PartialTransition{Clears: []IndexOp{{Row: 0, Slots: []uint8{0}}}}
	final.ApplyFinal(r, true, 9)
	if got := r.Result(); !slices.Equal(got, []int{-1, 8, -1, -1}) {
		t.Errorf("result after final = %v", got)
	}
}

func TestApplyPreFinalFullMatch(t *testing.T) {
	r := NewRegisters(2, 2)
	start := upd(1, 0)
	start.Apply(r, 5)

	p := PartialTransition{Swaps: []uint8{0, 1}, Updates: []IndexOp{{Row: 0, Slots: []uint8{1}}}}
	p.ApplyPreFinal(r, false, 8)
	var final PartialTransition
	final.ApplyFinal(r, false, 9)
	r.Export(0)
	if got := r.Result(); !slices.Equal(got, []int{5, 8}) {
		t.Errorf("exported = %v, want [5 8]", got)
	}
}

func TestIsEmpty(t *testing.T) {
	var p PartialTransition
	if !p.IsEmpty() {
		t.Error("zero transition should be empty")
	}
	p.Reorders = true
	p.PreFinalRow = 1
	if !p.IsEmpty() {
		t.Error("flags alone should not make a transition non-empty")
	}
	if q := upd(0, 1); q.IsEmpty() {
		t.Error("update should not be empty")
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := PartialTransition{Swaps: []uint8{0, 1}, Updates: []IndexOp{{Row: 0, Slots: []uint8{1}}}}
	c := p.Clone()
	c.Swaps[0] = 1
	c.Updates[0].Slots[0] = 0
	if p.Swaps[0] != 0 || p.Updates[0].Slots[0] != 1 {
		t.Error("Clone shares storage")
	}

	a := searchBPlus()
	b := a.Clone()
	b.Transitions[0].Partials[0].Updates[0].Slots[0] = 1
	b.States[0].Successors[0] = 0
	b.Prefixes[0][0] = 'x'
	if a.Transitions[0].Partials[0].Updates[0].Slots[0] != 0 || a.States[0].Successors[0] != 1 || a.Prefixes[0][0] != 'b' {
		t.Error("Automaton.Clone shares storage")
	}
}

// A transition that only updates and clears can be folded: applying it at
// every position of a range leaves the same registers as applying it once
// at the last position.
func TestFoldingProperty(t *testing.T) {
	const rows, slots = 2, 6

	prop := func(seed int64, length uint8) bool {
		rng := rand.New(rand.NewSource(seed))
		p := PartialTransition{}
		for i := rng.Intn(3); i >= 0; i-- {
			op := IndexOp{Row: uint8(rng.Intn(rows))}
			for j := rng.Intn(3); j >= 0; j-- {
				op.Slots = append(op.Slots, uint8(rng.Intn(slots)))
			}
			if rng.Intn(2) == 0 {
				p.Updates = append(p.Updates, op)
			} else {
				p.Clears = append(p.Clears, op)
			}
		}

		pre := rng.Intn(100)
		post := pre + int(length%64) + 1

		each := NewRegisters(rows, slots)
		once := NewRegisters(rows, slots)
		start := upd(0, 0)
		start.Apply(each, pre)
		start.Apply(once, pre)
		for i := pre; i < post; i++ {
			p.Apply(each, i)
		}
		p.Apply(once, post-1)
		for r := 0; r < rows; r++ {
			if !slices.Equal(each.Row(r), once.Row(r)) {
				return false
			}
		}
		return true
	}

	if err := quick.Check(prop, nil); err != nil {
		t.Error(err)
	}
}

func TestFastScan(t *testing.T) {
	tests := []struct {
		name   string
		accept charclass.Matcher
		input  string
		from   int
		want   int
	}{
		{name: "single exit", accept: charclass.Not{M: charclass.Single('x')}, input: "abcdefghijklmnopxq", want: 16},
		{name: "two exits", accept: charclass.MustParse(`^xy`), input: "aaaaaaaaaaay", want: 11},
		{name: "three exits", accept: charclass.MustParse(`^xyz`), input: "aaaaaaaaaz", from: 2, want: 9},
		{name: "table", accept: charclass.MustParse("a-c"), input: "abcabcabcabcd", want: 12},
		{name: "all bytes", accept: charclass.Any, input: "anything", want: 8},
		{name: "none accepted", accept: charclass.Single('q'), input: "abc", want: 0},
		{name: "to bound", accept: charclass.Single('a'), input: "aaaa", want: 4},
		{name: "from bound", accept: charclass.Single('a'), input: "aaaa", from: 4, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFastScan(tt.accept, Forward)
			in := Bytes(tt.input)
			if got := f.Scan(in, tt.from, len(in)); got != tt.want {
				t.Errorf("Scan() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFastScanBackward(t *testing.T) {
	f := NewFastScan(charclass.Single('a'), Backward)
	if got := f.Scan(Bytes("xaaa"), 4, 0); got != 1 {
		t.Errorf("backward Scan = %d, want 1", got)
	}
	if got := f.Scan(Bytes("aaaa"), 4, 2); got != 2 {
		t.Errorf("backward Scan to bound = %d, want 2", got)
	}
	if got := f.Scan(UTF16{'x', 'a', 'a'}, 3, 0); got != 1 {
		t.Errorf("backward UTF-16 Scan = %d, want 1", got)
	}
}

func TestFastScanUTF16(t *testing.T) {
	f := NewFastScan(charclass.MustParse(`一-鿿`), Forward)
	in := UTF16{0x4E00, 0x4E01, 0x9FFF, 'a'}
	if got := f.Scan(in, 0, len(in)); got != 3 {
		t.Errorf("Scan = %d, want 3", got)
	}
}

func TestFastScanMatchesStepping(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	accepts := []charclass.Matcher{
		charclass.Single('a'),
		charclass.MustParse("^b"),
		charclass.MustParse("a-m"),
		charclass.MustParse("^\x00-\x10"),
	}
	for _, accept := range accepts {
		f := NewFastScan(accept, Forward)
		for i := 0; i < 300; i++ {
			in := make(Bytes, rng.Intn(64))
			for j := range in {
				in[j] = byte('a' + rng.Intn(4))
				if rng.Intn(16) == 0 {
					in[j] = byte(rng.Intn(256))
				}
			}
			from := 0
			if len(in) > 0 {
				from = rng.Intn(len(in))
			}
			want := from
			for want < len(in) && accept.Match(in.At(want)) {
				want++
			}
			if got := f.Scan(in, from, len(in)); got != want {
				t.Fatalf("Scan(%q, %d) = %d, want %d", in, from, got, want)
			}
		}
	}
}
