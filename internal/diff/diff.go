// Package diff compares two JSON value trees and reports their differences.
//
// Objects are compared key by key. Arrays and scalars are compared as opaque
// values: an unequal pair yields a single Modified difference and arrays are
// never diffed element by element.
//
// Deep equality is byte equality of the canonical serialization (see
// encoder.Marshal), which makes member order significant. Callers that want
// order-insensitive comparison should pass both sides through sorter.SortKeys
// first.
//
// Differences are emitted depth-first. Within an object, the left object's
// keys come first in left order, followed by keys only present on the right
// in right order.
//
// A change of member order is reported as one Modified at the object's own
// path, and only when nothing inside that object differs. Reordering an
// object that also has added, removed or modified members is therefore
// not reported separately, while a reordered child object of it still is:
//
//	{"a":1,"b":2,"c":3} vs {"b":2,"a":1,"c":4}                 => c modified
//	{"o":{"a":1,"b":2},"c":3} vs {"o":{"b":2,"a":1},"c":4}     => o modified, c modified
package diff

import (
	"bytes"

	"github.com/mcncl/devkit/internal/encoder"
	"github.com/mcncl/devkit/internal/errors"
	"github.com/mcncl/devkit/internal/models"
	"github.com/mcncl/devkit/internal/parser"
)

// Compare reports the differences between left and right. It never fails.
func Compare(left, right models.Value) models.CompareResult {
	var out []models.Difference

	switch {
	case left.IsObject() && right.IsObject():
		out = compareObjects(nil, left, right, out)
	case !Equal(left, right):
		out = append(out, modified(nil, left, right))
	}

	return models.CompareResult{
		IsEqual:     len(out) == 0,
		Differences: out,
	}
}

// CompareText parses both documents and compares them.
// A parse failure on either side is returned as a parsing error and no result is produced.
func CompareText(leftText, rightText string, opts ...parser.Option) (models.CompareResult, error) {
	left, right, err := ParsePair(leftText, rightText, opts...)
	if err != nil {
		return models.CompareResult{}, err
	}
	return Compare(left, right), nil
}

// ParsePair parses the two sides of a comparison.
// The error names the side that failed, e.g. "left document: JSON syntax error ...".
func ParsePair(leftText, rightText string, opts ...parser.Option) (models.Value, models.Value, error) {
	left, err := parser.ParseString(leftText, opts...)
	if err != nil {
		return models.Value{}, models.Value{}, sideError("left", err)
	}
	right, err := parser.ParseString(rightText, opts...)
	if err != nil {
		return models.Value{}, models.Value{}, sideError("right", err)
	}
	return left, right, nil
}

func sideError(side string, err error) error {
	return errors.NewParsingError(side+" document: "+parser.Message(err), parser.Cause(err))
}

// Equal reports whether a and b have identical canonical serializations
func Equal(a, b models.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	return bytes.Equal(encoder.Marshal(a), encoder.Marshal(b))
}

// compareObjects appends the differences between two objects at path to out.
// Child objects are walked directly instead of serialized, so each node is
// visited once.
func compareObjects(path models.Path, left, right models.Value, out []models.Difference) []models.Difference {
	start := len(out)
	rightIdx := right.KeyIndex()
	rightMembers := right.Members()
	leftIdx := left.KeyIndex()

	for _, lm := range left.Members() {
		childPath := path.Field(lm.Key)
		ri, ok := rightIdx[lm.Key]
		if !ok {
			out = append(out, removed(childPath, lm.Value))
			continue
		}
		rv := rightMembers[ri].Value
		switch {
		case lm.Value.IsObject() && rv.IsObject():
			out = compareObjects(childPath, lm.Value, rv, out)
		case !Equal(lm.Value, rv):
			out = append(out, modified(childPath, lm.Value, rv))
		}
	}

	for _, rm := range rightMembers {
		if _, ok := leftIdx[rm.Key]; ok {
			continue
		}
		out = append(out, added(path.Field(rm.Key), rm.Value))
	}

	// Same members in a different order: serializations differ but no leaf does.
	if len(out) == start && !sameOrder(left.Members(), rightMembers) {
		out = append(out, modified(path, left, right))
	}
	return out
}

func sameOrder(left, right []models.Member) bool {
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if left[i].Key != right[i].Key {
			return false
		}
	}
	return true
}

func added(path models.Path, v models.Value) models.Difference {
	return models.Difference{Path: path, Kind: models.Added, NewValue: &v}
}

func removed(path models.Path, v models.Value) models.Difference {
	return models.Difference{Path: path, Kind: models.Removed, OldValue: &v}
}

func modified(path models.Path, oldValue, newValue models.Value) models.Difference {
	return models.Difference{Path: path, Kind: models.Modified, OldValue: &oldValue, NewValue: &newValue}
}
