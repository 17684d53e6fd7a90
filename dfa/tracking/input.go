package tracking

import "github.com/coregx/cgdfa/charclass"

// Width is the size in bytes of one input code unit.
type Width uint8

const (
	// Width8 is the width of byte inputs (Latin-1, ASCII, raw bytes).
	Width8 Width = 1

	// Width16 is the width of UTF-16 code unit inputs.
	Width16 Width = 2
)

// String returns the width name.
func (w Width) String() string {
	switch w {
	case Width8:
		return "8-bit"
	case Width16:
		return "16-bit"
	default:
		return "invalid"
	}
}

// Input is a random-access sequence of fixed-width code units.
type Input interface {
	// Len returns the number of code units.
	Len() int

	// At returns the code unit at position i.
	At(i int) charclass.Char

	// Width returns the code unit width.
	Width() Width
}

// Bytes is a byte input.
type Bytes []byte

// Len implements Input.
func (b Bytes) Len() int { return len(b) }

// At implements Input.
func (b Bytes) At(i int) charclass.Char { return charclass.Char(b[i]) }

// Width implements Input.
func (Bytes) Width() Width { return Width8 }

// UTF16 is a UTF-16 code unit input. Surrogate pairs are two units.
type UTF16 []uint16

// Len implements Input.
func (u UTF16) Len() int { return len(u) }

// At implements Input.
func (u UTF16) At(i int) charclass.Char { return charclass.Char(u[i]) }

// Width implements Input.
func (UTF16) Width() Width { return Width16 }
