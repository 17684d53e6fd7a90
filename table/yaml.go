package table

// yamlTable is the intermediate struct for parsing an automaton table file.
// One file holds one automaton.
type yamlTable struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Pattern     string `yaml:"pattern,omitempty"`

	Width     int    `yaml:"width,omitempty"`
	Direction string `yaml:"direction,omitempty"`
	Groups    int    `yaml:"groups"`
	Rows      int    `yaml:"rows,omitempty"`

	Start    yamlStartPair `yaml:"start"`
	Entry    yamlStartPair `yaml:"entry"`
	Prefixes []string      `yaml:"prefixes,omitempty"`

	States      []yamlState      `yaml:"states"`
	Transitions []yamlTransition `yaml:"transitions"`
	Examples    []yamlExample    `yaml:"examples,omitempty"`
}

// yamlStartPair names the anchored and unanchored variant of a start
// state or entry transition.
type yamlStartPair struct {
	Anchored   int `yaml:"anchored"`
	Unanchored int `yaml:"unanchored"`
}

// yamlState is one DFA state. The self-loop edge is the edge leading back
// to the state itself.
type yamlState struct {
	Final         bool `yaml:"final,omitempty"`
	AnchoredFinal bool `yaml:"anchored_final,omitempty"`

	Edges     []yamlEdge `yaml:"edges,omitempty"`
	Preceding []int      `yaml:"preceding,flow"`

	// Tree builds a decision tree from the edge matchers.
	Tree bool `yaml:"tree,omitempty"`
	// FastScan is the class body of characters skipped on the self-loop.
	FastScan string `yaml:"fastscan,omitempty"`

	AnchoredFinalTransition   yamlPartial `yaml:"anchored_final_transition,omitempty"`
	UnanchoredFinalTransition yamlPartial `yaml:"unanchored_final_transition,omitempty"`
}

// yamlEdge is one outgoing edge; Match is a character class body.
type yamlEdge struct {
	Match      string `yaml:"match"`
	To         int    `yaml:"to"`
	Transition int    `yaml:"transition"`
}

// yamlTransition is one lazy transition.
type yamlTransition struct {
	Partials        []yamlPartial `yaml:"partials,omitempty"`
	ToFinal         yamlPartial   `yaml:"to_final,omitempty"`
	ToAnchoredFinal yamlPartial   `yaml:"to_anchored_final,omitempty"`
}

// yamlPartial is one partial transition.
type yamlPartial struct {
	Swaps       []int         `yaml:"swaps,omitempty,flow"`
	Copies      []int         `yaml:"copies,omitempty,flow"`
	Update      []yamlIndexOp `yaml:"update,omitempty"`
	Clear       []yamlIndexOp `yaml:"clear,omitempty"`
	PreFinalRow int           `yaml:"prefinal_row,omitempty"`
	Reorders    bool          `yaml:"reorders,omitempty"`
}

// yamlIndexOp addresses slots of one row; the row defaults to 0.
type yamlIndexOp struct {
	Row   int   `yaml:"row,omitempty"`
	Slots []int `yaml:"slots,flow"`
}

// yamlExample is an input with its expected result. A missing want means
// no match.
type yamlExample struct {
	Input    string `yaml:"input"`
	Search   bool   `yaml:"search,omitempty"`
	Anchored bool   `yaml:"anchored,omitempty"`
	Want     []int  `yaml:"want,omitempty,flow"`
}
