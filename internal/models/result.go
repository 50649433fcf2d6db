package models

// DifferenceKind classifies a single difference
type DifferenceKind string

const (
	Added    DifferenceKind = "added"
	Removed  DifferenceKind = "removed"
	Modified DifferenceKind = "modified"
)

// Difference records one change between two value trees.
// Added sets only NewValue, Removed sets only OldValue, Modified sets both.
type Difference struct {
	Path     Path
	Kind     DifferenceKind
	OldValue *Value
	NewValue *Value
}

// CompareResult is the outcome of one comparison.
// IsEqual is true exactly when Differences is empty.
type CompareResult struct {
	IsEqual     bool
	Differences []Difference
}

// SearchHit is a single search match
type SearchHit struct {
	Path  Path
	Value Value
}

// Validation is the uniform result shape for validate-style helpers
type Validation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}
