package models

import "encoding/json"

// Kind identifies which variant of the JSON value union a Value holds.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

// String returns the JSON type name for the kind
func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "boolean"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	case ObjectKind:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a parsed JSON value. The zero Value is JSON null.
// Values are treated as immutable once built; every transform returns a new tree.
type Value struct {
	kind    Kind
	boolean bool
	text    string // number literal or string contents
	items   []Value
	members []Member
}

// Member is a single key/value entry of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Null returns the JSON null value
func Null() Value {
	return Value{kind: NullKind}
}

// Bool returns a JSON boolean
func Bool(b bool) Value {
	return Value{kind: BoolKind, boolean: b}
}

// Number returns a JSON number holding the given literal text
func Number(literal json.Number) Value {
	return Value{kind: NumberKind, text: string(literal)}
}

// String returns a JSON string
func String(s string) Value {
	return Value{kind: StringKind, text: s}
}

// Array returns a JSON array of the given items
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: ArrayKind, items: items}
}

// Object returns a JSON object whose members keep the given order.
// A repeated key keeps its first position and takes the last value, so
// object keys are always unique.
func Object(members ...Member) Value {
	if members == nil {
		members = []Member{}
	}
	return Value{kind: ObjectKind, members: uniqueKeys(members)}
}

// uniqueKeys returns members unchanged unless a key repeats, in which case
// it returns a collapsed copy.
func uniqueKeys(members []Member) []Member {
	if len(members) < 2 {
		return members
	}
	seen := make(map[string]int, len(members))
	var out []Member
	for i, m := range members {
		j, dup := seen[m.Key]
		switch {
		case dup && out == nil:
			out = append(make([]Member, 0, len(members)), members[:i]...)
			out[j].Value = m.Value
		case dup:
			out[j].Value = m.Value
		case out != nil:
			seen[m.Key] = len(out)
			out = append(out, m)
		default:
			seen[m.Key] = i
		}
	}
	if out == nil {
		return members
	}
	return out
}

// M is shorthand for building an object Member
func M(key string, value Value) Member {
	return Member{Key: key, Value: value}
}

// Kind reports the variant held by v
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is JSON null
func (v Value) IsNull() bool { return v.kind == NullKind }

// IsObject reports whether v is a JSON object
func (v Value) IsObject() bool { return v.kind == ObjectKind }

// IsArray reports whether v is a JSON array
func (v Value) IsArray() bool { return v.kind == ArrayKind }

// Bool returns the boolean payload. It is false for every other kind.
func (v Value) Bool() bool { return v.boolean }

// Number returns the number literal. It is empty for every other kind.
func (v Value) Number() json.Number {
	if v.kind != NumberKind {
		return ""
	}
	return json.Number(v.text)
}

// Str returns the string payload. It is empty for every other kind.
func (v Value) Str() string {
	if v.kind != StringKind {
		return ""
	}
	return v.text
}

// Items returns the elements of an array
func (v Value) Items() []Value { return v.items }

// Members returns the members of an object in insertion order
func (v Value) Members() []Member { return v.members }

// Len returns the number of items or members, 0 for scalars
func (v Value) Len() int {
	switch v.kind {
	case ArrayKind:
		return len(v.items)
	case ObjectKind:
		return len(v.members)
	default:
		return 0
	}
}

// Keys returns the object keys in insertion order
func (v Value) Keys() []string {
	if v.kind != ObjectKind {
		return nil
	}
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	return keys
}

// Get returns the value stored under key and whether it exists
func (v Value) Get(key string) (Value, bool) {
	if v.kind != ObjectKind {
		return Value{}, false
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether the object has the given key
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// KeyIndex builds a key to position lookup for an object's members.
// Small objects are scanned linearly by Get; callers walking many keys use this instead.
func (v Value) KeyIndex() map[string]int {
	idx := make(map[string]int, len(v.members))
	for i, m := range v.members {
		idx[m.Key] = i
	}
	return idx
}
