package models

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: a field name for object descent or an index for array descent.
type Segment struct {
	Field   string
	Index   int
	IsIndex bool
}

// Path locates a node relative to the root of a Value tree.
// The empty Path addresses the root itself.
type Path []Segment

// Field returns a new path extended with an object field
func (p Path) Field(name string) Path {
	return p.with(Segment{Field: name})
}

// Index returns a new path extended with an array index
func (p Path) Index(i int) Path {
	return p.with(Segment{Index: i, IsIndex: true})
}

// with copies before appending so sibling paths never share a backing array
func (p Path) with(seg Segment) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, seg)
}

// IsRoot reports whether the path addresses the root
func (p Path) IsRoot() bool { return len(p) == 0 }

// String renders the path in dotted/bracketed form, e.g. a.b[2].c
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if seg.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.Index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Field)
	}
	return b.String()
}

// MarshalText renders the path for JSON and YAML encoders
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
