// Package table loads capture-group tracking automatons from YAML tables.
//
// A table is the serialized output of a pattern compiler: states with
// character-class guarded edges, lazy transitions with their partial
// transitions, and optional fast-scan and decision-tree hints. A handful of
// hand-built tables ship embedded and double as executable examples.
package table

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"
	"unicode/utf16"

	"github.com/coregx/cgdfa/charclass"
	"github.com/coregx/cgdfa/dfa/tracking"
	"github.com/coregx/cgdfa/internal/conv"
	"gopkg.in/yaml.v3"
)

// Table is a loaded automaton with its metadata.
type Table struct {
	Name        string
	Description string
	// Pattern is the source pattern, for documentation only.
	Pattern   string
	Direction tracking.Direction
	Automaton *tracking.Automaton
	Examples  []Example
}

// Example is an input paired with its expected capture slots.
type Example struct {
	Input    string
	Policy   tracking.Policy
	Anchored bool
	// Want is nil when the input must not match.
	Want []int
}

// Mode returns the execution mode the example runs with.
func (e Example) Mode(dir tracking.Direction) tracking.Mode {
	return tracking.Mode{Direction: dir, Policy: e.Policy, Anchored: e.Anchored}
}

// Input encodes s in the code units of the table's automaton.
func (t *Table) Input(s string) tracking.Input {
	if t.Automaton.Width == tracking.Width16 {
		return tracking.UTF16(utf16.Encode([]rune(s)))
	}
	return tracking.Bytes(s)
}

// Start returns the position an attempt over in starts from: 0 for
// forward tables, the end of in for backward ones.
func (t *Table) Start(in tracking.Input) int {
	if t.Direction == tracking.Backward {
		return in.Len()
	}
	return 0
}

// Loader handles loading automaton tables from YAML files.
type Loader struct {
	fs fs.FS // embedded filesystem for built-in tables
}

// NewLoader creates a loader with built-in tables from embedded filesystem.
func NewLoader() *Loader {
	return &Loader{
		fs: builtinTablesFS,
	}
}

// NewLoaderWithFS creates a loader with a custom filesystem. Built-in
// tables are read from its tables directory.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{
		fs: fsys,
	}
}

// Load loads a single table from YAML bytes and validates its automaton.
func (l *Loader) Load(data []byte) (*Table, error) {
	var yt yamlTable
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	t, err := convertYAMLTable(yt)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", yt.Name, err)
	}
	if _, err := tracking.New(t.Automaton); err != nil {
		return nil, fmt.Errorf("table %q: %w", yt.Name, err)
	}
	return t, nil
}

// LoadFile loads a table from a YAML file path.
func (l *Loader) LoadFile(filename string) (*Table, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return l.Load(data)
}

// LoadBuiltin loads the built-in table with the given name.
func (l *Loader) LoadBuiltin(name string) (*Table, error) {
	p := path.Join("tables", name+".yml")
	data, err := fs.ReadFile(l.fs, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return l.Load(data)
}

// Builtins returns the names of the built-in tables, sorted.
func (l *Loader) Builtins() ([]string, error) {
	matches, err := fs.Glob(l.fs, "tables/*.yml")
	if err != nil {
		return nil, err
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = strings.TrimSuffix(path.Base(m), ".yml")
	}
	slices.Sort(names)
	return names, nil
}

// LoadBuiltins loads all built-in tables.
func (l *Loader) LoadBuiltins() ([]*Table, error) {
	var tables []*Table

	err := fs.WalkDir(l.fs, "tables", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".yml" {
			return nil
		}

		data, err := fs.ReadFile(l.fs, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		t, err := l.Load(data)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
		tables = append(tables, t)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return tables, nil
}

// convertYAMLTable converts yamlTable to a Table.
func convertYAMLTable(yt yamlTable) (*Table, error) {
	width, err := convertWidth(yt.Width)
	if err != nil {
		return nil, err
	}
	dir, err := convertDirection(yt.Direction)
	if err != nil {
		return nil, err
	}
	rows := yt.Rows
	if rows == 0 {
		rows = 1
	}

	a := &tracking.Automaton{
		Width:     width,
		Direction: dir,
		NumGroups: yt.Groups,
		NumRows:   rows,
	}
	ids := []struct {
		name string
		v    int
		dst  *uint16
	}{
		{"anchored start", yt.Start.Anchored, (*uint16)(&a.AnchoredStart)},
		{"unanchored start", yt.Start.Unanchored, (*uint16)(&a.UnanchoredStart)},
		{"anchored entry", yt.Entry.Anchored, (*uint16)(&a.AnchoredEntry)},
		{"unanchored entry", yt.Entry.Unanchored, (*uint16)(&a.UnanchoredEntry)},
	}
	for _, id := range ids {
		if !conv.InUint16(id.v) {
			return nil, fmt.Errorf("%s %d out of range", id.name, id.v)
		}
		*id.dst = conv.IntToUint16(id.v)
	}
	for _, p := range yt.Prefixes {
		a.Prefixes = append(a.Prefixes, []byte(p))
	}

	a.States = make([]tracking.State, len(yt.States))
	for i, ys := range yt.States {
		s, err := convertYAMLState(ys, i, dir)
		if err != nil {
			return nil, fmt.Errorf("state %d: %w", i, err)
		}
		a.States[i] = s
	}

	a.Transitions = make([]tracking.LazyTransition, len(yt.Transitions))
	for i, ylt := range yt.Transitions {
		lt, err := convertYAMLTransition(ylt)
		if err != nil {
			return nil, fmt.Errorf("transition %d: %w", i, err)
		}
		a.Transitions[i] = lt
	}

	t := &Table{
		Name:        yt.Name,
		Description: yt.Description,
		Pattern:     yt.Pattern,
		Direction:   dir,
		Automaton:   a,
	}
	for _, ye := range yt.Examples {
		ex := Example{Input: ye.Input, Anchored: ye.Anchored, Want: ye.Want}
		if ye.Search {
			ex.Policy = tracking.Search
		}
		t.Examples = append(t.Examples, ex)
	}
	return t, nil
}

func convertWidth(w int) (tracking.Width, error) {
	switch w {
	case 0, 8:
		return tracking.Width8, nil
	case 16:
		return tracking.Width16, nil
	default:
		return 0, fmt.Errorf("unsupported width %d", w)
	}
}

func convertDirection(d string) (tracking.Direction, error) {
	switch d {
	case "", "forward":
		return tracking.Forward, nil
	case "backward":
		return tracking.Backward, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", d)
	}
}

// convertYAMLState converts state i. The first edge leading back to i
// becomes the self-loop edge.
func convertYAMLState(ys yamlState, i int, dir tracking.Direction) (tracking.State, error) {
	s := tracking.State{LoopToSelf: tracking.NoLoop}
	if ys.Final {
		s.Flags |= tracking.FlagFinal
	}
	if ys.AnchoredFinal {
		s.Flags |= tracking.FlagAnchoredFinal
	}

	for e, ye := range ys.Edges {
		m, err := charclass.Parse(ye.Match)
		if err != nil {
			return s, fmt.Errorf("edge %d: %w", e, err)
		}
		if !conv.InUint16(ye.To) || !conv.InUint16(ye.Transition) {
			return s, fmt.Errorf("edge %d: id out of range", e)
		}
		s.Matchers = append(s.Matchers, m)
		s.Successors = append(s.Successors, tracking.StateID(conv.IntToUint16(ye.To)))
		s.Transitions = append(s.Transitions, tracking.TransitionID(conv.IntToUint16(ye.Transition)))
		if ye.To == i && s.LoopToSelf == tracking.NoLoop {
			s.LoopToSelf = e
		}
	}

	for _, p := range ys.Preceding {
		if !conv.InUint16(p) {
			return s, fmt.Errorf("preceding transition %d out of range", p)
		}
		s.Preceding = append(s.Preceding, tracking.TransitionID(conv.IntToUint16(p)))
	}

	if ys.Tree {
		s.Tree = charclass.BuildTree(s.Matchers)
	}
	if ys.FastScan != "" {
		m, err := charclass.Parse(ys.FastScan)
		if err != nil {
			return s, fmt.Errorf("fastscan: %w", err)
		}
		s.FastScan = tracking.NewFastScan(m, dir)
	}

	var err error
	if s.AnchoredFinalTransition, err = convertYAMLPartial(ys.AnchoredFinalTransition); err != nil {
		return s, fmt.Errorf("anchored final transition: %w", err)
	}
	if s.UnanchoredFinalTransition, err = convertYAMLPartial(ys.UnanchoredFinalTransition); err != nil {
		return s, fmt.Errorf("unanchored final transition: %w", err)
	}
	return s, nil
}

func convertYAMLTransition(ylt yamlTransition) (tracking.LazyTransition, error) {
	var lt tracking.LazyTransition
	for e, yp := range ylt.Partials {
		p, err := convertYAMLPartial(yp)
		if err != nil {
			return lt, fmt.Errorf("partial %d: %w", e, err)
		}
		lt.Partials = append(lt.Partials, p)
	}
	var err error
	if lt.ToFinal, err = convertYAMLPartial(ylt.ToFinal); err != nil {
		return lt, fmt.Errorf("to final: %w", err)
	}
	if lt.ToAnchoredFinal, err = convertYAMLPartial(ylt.ToAnchoredFinal); err != nil {
		return lt, fmt.Errorf("to anchored final: %w", err)
	}
	return lt, nil
}

func convertYAMLPartial(yp yamlPartial) (tracking.PartialTransition, error) {
	p := tracking.PartialTransition{Reorders: yp.Reorders}
	var err error
	if p.Swaps, err = toUint8s(yp.Swaps); err != nil {
		return p, fmt.Errorf("swaps: %w", err)
	}
	if p.Copies, err = toUint8s(yp.Copies); err != nil {
		return p, fmt.Errorf("copies: %w", err)
	}
	if !conv.InUint8(yp.PreFinalRow) {
		return p, fmt.Errorf("prefinal row %d out of range", yp.PreFinalRow)
	}
	p.PreFinalRow = conv.IntToUint8(yp.PreFinalRow)
	if p.Updates, err = convertIndexOps(yp.Update); err != nil {
		return p, fmt.Errorf("update: %w", err)
	}
	if p.Clears, err = convertIndexOps(yp.Clear); err != nil {
		return p, fmt.Errorf("clear: %w", err)
	}
	return p, nil
}

func convertIndexOps(yops []yamlIndexOp) ([]tracking.IndexOp, error) {
	var ops []tracking.IndexOp
	for _, yop := range yops {
		if !conv.InUint8(yop.Row) {
			return nil, fmt.Errorf("row %d out of range", yop.Row)
		}
		slots, err := toUint8s(yop.Slots)
		if err != nil {
			return nil, err
		}
		ops = append(ops, tracking.IndexOp{Row: conv.IntToUint8(yop.Row), Slots: slots})
	}
	return ops, nil
}

func toUint8s(vs []int) ([]uint8, error) {
	if len(vs) == 0 {
		return nil, nil
	}
	out := make([]uint8, len(vs))
	for i, v := range vs {
		if !conv.InUint8(v) {
			return nil, fmt.Errorf("value %d out of range", v)
		}
		out[i] = conv.IntToUint8(v)
	}
	return out, nil
}
