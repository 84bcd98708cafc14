package template

import (
	"fmt"
	"strings"

	"github.com/donaldgifford/splicefmt/internal/tree"
)

// Location says where, relative to the anchor, a template is spliced.
type Location int

const (
	// ExpressionPrefix replaces the anchor expression.
	ExpressionPrefix Location = iota
	// StatementPrefix inserts at the anchor statement of a statement list.
	StatementPrefix
	// BlockEnd appends to the anchor block.
	BlockEnd
)

var locationNames = map[Location]string{
	ExpressionPrefix: "expression-prefix",
	StatementPrefix:  "statement-prefix",
	BlockEnd:         "block-end",
}

func (l Location) String() string {
	if s, ok := locationNames[l]; ok {
		return s
	}
	return fmt.Sprintf("location(%d)", int(l))
}

// ParseLocation parses the String form of a Location.
func ParseLocation(s string) (Location, error) {
	for l, name := range locationNames {
		if strings.EqualFold(s, name) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLocation, s)
}

// Mode says what happens to the anchor.
type Mode int

const (
	Before Mode = iota
	After
	Replace
)

var modeNames = map[Mode]string{
	Before:  "before",
	After:   "after",
	Replace: "replace",
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode parses the String form of a Mode.
func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Coordinates identify one splice point. Anchor is matched by identity,
// never by structure.
type Coordinates struct {
	Anchor   tree.Node
	Location Location
	Mode     Mode
}

// Validate reports a location or mode outside the known values.
func (c Coordinates) Validate() error {
	if _, ok := locationNames[c.Location]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidLocation, c.Location)
	}
	if _, ok := modeNames[c.Mode]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidMode, c.Mode)
	}
	if tree.IsNil(c.Anchor) {
		return fmt.Errorf("%w: no anchor", ErrAnchorNotFound)
	}
	return nil
}

func (c Coordinates) String() string {
	kind := "<nil>"
	if !tree.IsNil(c.Anchor) {
		kind = c.Anchor.Kind().String()
	}
	return fmt.Sprintf("%s %s %s", c.Mode, c.Location, kind)
}
