// Package sorter produces key-sorted copies of JSON value trees for canonical formatting.
package sorter

import (
	"sort"

	"github.com/mcncl/devkit/internal/models"
)

// SortKeys returns a copy of v in which every object's keys are in ascending
// code-point order. Arrays keep their element order; scalars are returned as is.
func SortKeys(v models.Value) models.Value {
	switch v.Kind() {
	case models.ArrayKind:
		items := v.Items()
		sorted := make([]models.Value, len(items))
		for i, item := range items {
			sorted[i] = SortKeys(item)
		}
		return models.Array(sorted...)
	case models.ObjectKind:
		members := v.Members()
		sorted := make([]models.Member, len(members))
		for i, m := range members {
			sorted[i] = models.M(m.Key, SortKeys(m.Value))
		}
		// Byte order of UTF-8 strings is code-point order.
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Key < sorted[j].Key
		})
		return models.Object(sorted...)
	default:
		return v
	}
}
