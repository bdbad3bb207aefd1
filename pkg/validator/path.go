package validator

import (
	"regexp"
	"strconv"
	"strings"
)

var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Segment is one step of a Path: a map key or a sequence index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key returns a segment addressing a map key.
func Key(name string) Segment {
	return Segment{key: name}
}

// Index returns a segment addressing a sequence position.
func Index(i int) Segment {
	return Segment{index: i, isIndex: true}
}

func (s Segment) IsIndex() bool { return s.isIndex }

// Name returns the key of a key segment.
func (s Segment) Name() string { return s.key }

// Position returns the index of an index segment.
func (s Segment) Position() int { return s.index }

// Value returns the segment as a string or an int.
func (s Segment) Value() any {
	if s.isIndex {
		return s.index
	}
	return s.key
}

func (s Segment) String() string {
	switch {
	case s.isIndex:
		return "[" + strconv.Itoa(s.index) + "]"
	case identRegex.MatchString(s.key):
		return "." + s.key
	default:
		return "[" + strconv.Quote(s.key) + "]"
	}
}

// Path locates a value inside nested input. The zero value is the root.
type Path []Segment

// Append returns a new path with seg added. The receiver is never modified,
// so paths may be shared freely between concurrent subtasks.
func (p Path) Append(seg Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// String renders the path as $, $.user.tags[2] or $["first name"].
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("$")
	for _, seg := range p {
		b.WriteString(seg.String())
	}
	return b.String()
}

// Segments returns the path as a list of string keys and int indices.
func (p Path) Segments() []any {
	out := make([]any, len(p))
	for i, seg := range p {
		out[i] = seg.Value()
	}
	return out
}

// Equal reports whether both paths address the same location.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
