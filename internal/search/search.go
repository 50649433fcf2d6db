// Package search finds object keys and string values matching a term.
package search

import (
	"strings"

	"github.com/mcncl/devkit/internal/models"
)

// Search walks v depth-first and returns every member whose key, or whose
// string value, contains term case-insensitively. A member matching on both
// its key and its value is reported twice, key hit first. An empty term
// matches nothing.
func Search(v models.Value, term string) []models.SearchHit {
	if term == "" {
		return nil
	}
	var hits []models.SearchHit
	walk(v, nil, strings.ToLower(term), &hits)
	return hits
}

func walk(v models.Value, path models.Path, term string, hits *[]models.SearchHit) {
	switch v.Kind() {
	case models.ArrayKind:
		for i, item := range v.Items() {
			walk(item, path.Index(i), term, hits)
		}
	case models.ObjectKind:
		for _, m := range v.Members() {
			childPath := path.Field(m.Key)
			if strings.Contains(strings.ToLower(m.Key), term) {
				*hits = append(*hits, models.SearchHit{Path: childPath, Value: m.Value})
			}
			if m.Value.Kind() == models.StringKind && strings.Contains(strings.ToLower(m.Value.Str()), term) {
				*hits = append(*hits, models.SearchHit{Path: childPath, Value: m.Value})
			}
			walk(m.Value, childPath, term, hits)
		}
	}
}
