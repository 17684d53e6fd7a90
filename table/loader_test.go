package table

import (
	"errors"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/coregx/cgdfa/dfa/tracking"
)

const minimalYAML = `name: single-a
groups: 1
start: {anchored: 0, unanchored: 0}
entry: {anchored: 0, unanchored: 0}
states:
  - edges:
      - {match: "a", to: 1, transition: 1}
    preceding: [0]
  - final: true
    anchored_final: true
    preceding: [1]
transitions:
  - partials: [{update: [{slots: [0]}]}]
  - to_final: {update: [{slots: [1]}]}
    to_anchored_final: {update: [{slots: [1]}]}
examples:
  - {input: "a", anchored: true, want: [0, 1]}
  - {input: "b", anchored: true}
`

func TestLoad_Valid(t *testing.T) {
	loader := NewLoader()

	tbl, err := loader.Load([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tbl.Name != "single-a" {
		t.Errorf("expected name single-a, got %s", tbl.Name)
	}
	if tbl.Direction != tracking.Forward {
		t.Errorf("expected forward direction, got %v", tbl.Direction)
	}
	a := tbl.Automaton
	if a.Width != tracking.Width8 {
		t.Errorf("expected width 8, got %v", a.Width)
	}
	if a.NumRows != 1 {
		t.Errorf("expected 1 row by default, got %d", a.NumRows)
	}
	if len(a.States) != 2 || len(a.Transitions) != 2 {
		t.Fatalf("expected 2 states and 2 transitions, got %d and %d", len(a.States), len(a.Transitions))
	}
	if !a.States[1].IsFinal() || !a.States[1].IsAnchoredFinal() {
		t.Error("expected state 1 to be final and anchored final")
	}
	if a.States[0].HasLoopToSelf() {
		t.Error("state 0 has no self edge")
	}
	if len(tbl.Examples) != 2 {
		t.Fatalf("expected 2 examples, got %d", len(tbl.Examples))
	}
	if tbl.Examples[1].Want != nil {
		t.Errorf("expected nil want for the negative example, got %v", tbl.Examples[1].Want)
	}
}

func TestLoad_LoopEdge(t *testing.T) {
	tbl, err := NewLoader().LoadBuiltin("search-b-plus")
	if err != nil {
		t.Fatalf("LoadBuiltin failed: %v", err)
	}
	s := tbl.Automaton.States[0]
	if s.LoopToSelf != 1 {
		t.Errorf("expected loop edge 1, got %d", s.LoopToSelf)
	}
	if s.FastScan == nil || s.FastScan.Direction != tracking.Forward {
		t.Errorf("expected a forward fast scan, got %+v", s.FastScan)
	}
	if len(tbl.Automaton.Prefixes) != 1 || string(tbl.Automaton.Prefixes[0]) != "b" {
		t.Errorf("expected prefix b, got %q", tbl.Automaton.Prefixes)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		invalid bool // error wraps tracking.ErrInvalidAutomaton
	}{
		{"syntax", "this is not valid yaml: [[[", false},
		{"width", "name: w\nwidth: 32\ngroups: 1\n", false},
		{"direction", "name: d\ndirection: sideways\ngroups: 1\n", false},
		{"class", `name: c
groups: 1
states:
  - edges: [{match: "z-a", to: 0, transition: 0}]
    preceding: [0]
transitions:
  - partials: [{}]
`, false},
		{"slot out of range", `name: s
groups: 1
states:
  - preceding: [0]
transitions:
  - to_final: {update: [{slots: [300]}]}
`, false},
		{"no states", "name: empty\ngroups: 1\n", true},
		{"unreachable", `name: u
groups: 1
states:
  - preceding: [0]
  - preceding: [1]
transitions:
  - {}
  - {}
`, true},
		{"partial count", `name: p
groups: 1
states:
  - edges: [{match: "a", to: 1, transition: 1}]
    preceding: [0]
  - preceding: [1]
transitions:
  - partials: [{}, {}]
  - {}
`, true},
	}

	loader := NewLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Load([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, tracking.ErrInvalidAutomaton); got != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalidAutomaton) = %v, want %v (err: %v)", got, tt.invalid, err)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := NewLoader().LoadFile("testdata/does-not-exist.yml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoaderWithFS(t *testing.T) {
	fsys := fstest.MapFS{
		"tables/single-a.yml": &fstest.MapFile{Data: []byte(minimalYAML)},
		"tables/README.md":    &fstest.MapFile{Data: []byte("not a table")},
	}
	loader := NewLoaderWithFS(fsys)

	names, err := loader.Builtins()
	if err != nil {
		t.Fatalf("Builtins failed: %v", err)
	}
	if !slices.Equal(names, []string{"single-a"}) {
		t.Errorf("expected [single-a], got %v", names)
	}

	tables, err := loader.LoadBuiltins()
	if err != nil {
		t.Fatalf("LoadBuiltins failed: %v", err)
	}
	if len(tables) != 1 || tables[0].Name != "single-a" {
		t.Errorf("expected one table single-a, got %d", len(tables))
	}

	if _, err := loader.LoadBuiltin("missing"); err == nil {
		t.Error("expected error for missing table")
	}
}

func TestLoaderWithFS_BadTable(t *testing.T) {
	fsys := fstest.MapFS{
		"tables/bad.yml": &fstest.MapFile{Data: []byte("name: bad\ngroups: 0\n")},
	}
	_, err := NewLoaderWithFS(fsys).LoadBuiltins()
	if err == nil {
		t.Fatal("expected error for invalid table")
	}
	if !errors.Is(err, tracking.ErrInvalidAutomaton) {
		t.Errorf("expected wrapped ErrInvalidAutomaton, got %v", err)
	}
}

func TestBuiltins(t *testing.T) {
	loader := NewLoader()

	names, err := loader.Builtins()
	if err != nil {
		t.Fatalf("Builtins failed: %v", err)
	}
	want := []string{
		"a-plus-b", "cjk-run", "empty", "key-value",
		"search-b-plus", "swap-rows", "two-groups", "two-groups-backward",
	}
	if !slices.Equal(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}

	tables, err := loader.LoadBuiltins()
	if err != nil {
		t.Fatalf("LoadBuiltins failed: %v", err)
	}
	if len(tables) != len(want) {
		t.Errorf("expected %d tables, got %d", len(want), len(tables))
	}
	for _, tbl := range tables {
		if tbl.Description == "" {
			t.Errorf("table %s has no description", tbl.Name)
		}
		if len(tbl.Examples) == 0 {
			t.Errorf("table %s has no examples", tbl.Name)
		}
	}
}

// TestBuiltinExamples runs every example of every built-in table, with and
// without loop fast-scanning.
func TestBuiltinExamples(t *testing.T) {
	tables, err := NewLoader().LoadBuiltins()
	if err != nil {
		t.Fatalf("LoadBuiltins failed: %v", err)
	}

	for _, tbl := range tables {
		d, err := tracking.New(tbl.Automaton)
		if err != nil {
			t.Fatalf("%s: New failed: %v", tbl.Name, err)
		}
		cache := d.NewCache()
		for _, ex := range tbl.Examples {
			for _, noFastScan := range []bool{false, true} {
				mode := ex.Mode(tbl.Direction)
				mode.NoFastScan = noFastScan
				in := tbl.Input(ex.Input)

				got, err := d.Exec(in, tbl.Start(in), mode, cache)
				if err != nil {
					t.Fatalf("%s %q: Exec failed: %v", tbl.Name, ex.Input, err)
				}
				if !slices.Equal(got, ex.Want) || (got == nil) != (ex.Want == nil) {
					t.Errorf("%s %q (%s, fast scan off %v): got %v, want %v",
						tbl.Name, ex.Input, mode.Policy, noFastScan, got, ex.Want)
				}
			}
		}
	}
}

func TestTableInput(t *testing.T) {
	tbl, err := NewLoader().LoadBuiltin("cjk-run")
	if err != nil {
		t.Fatalf("LoadBuiltin failed: %v", err)
	}
	in := tbl.Input("漢字")
	if in.Width() != tracking.Width16 || in.Len() != 2 {
		t.Errorf("expected 2 UTF-16 units, got width %v len %d", in.Width(), in.Len())
	}

	back, err := NewLoader().LoadBuiltin("two-groups-backward")
	if err != nil {
		t.Fatalf("LoadBuiltin failed: %v", err)
	}
	if got := back.Start(back.Input("ab")); got != 2 {
		t.Errorf("expected backward start 2, got %d", got)
	}
	if back.Automaton.Direction != tracking.Backward {
		t.Errorf("expected backward automaton, got %v", back.Automaton.Direction)
	}
}
