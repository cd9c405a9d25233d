package engine

import (
	"strings"

	"github.com/ukaji3/jsonsheet-go/pkg/jsonsheet/models"
)

// keySep joins composite key parts. A unit separator never shows up in
// real column values, so concatenated keys cannot collide.
const keySep = "\x1f"

// CompositeKey derives the row's primary key by concatenating its values
// for the pk columns in order. The key is only computable when every pk
// column is present and non-empty; otherwise ok is false and the row is
// key-less.
func CompositeKey(r *models.Row, pk []string) (key string, ok bool) {
	if len(pk) == 0 {
		return "", false
	}
	parts := make([]string, 0, len(pk))
	for _, col := range pk {
		v, present := r.Get(col)
		if !present {
			return "", false
		}
		s := v.Display()
		if s == "" {
			return "", false
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, keySep), true
}

// Merge reconciles input rows against existing rows by composite primary
// key. A keyed input row replaces the existing row at the same key in
// place; everything else is appended in arrival order. An appended keyed
// row is indexed immediately, so a later input row with the same key
// updates it instead of appending a duplicate. With an empty pk spec every
// input row is appended.
func Merge(existing, input []*models.Row, pk []string) []*models.Row {
	merged := make([]*models.Row, len(existing))
	copy(merged, existing)

	if len(pk) == 0 {
		return append(merged, input...)
	}

	index := make(map[string]int, len(merged))
	for i, r := range merged {
		if key, ok := CompositeKey(r, pk); ok {
			index[key] = i
		}
	}
	for _, r := range input {
		key, ok := CompositeKey(r, pk)
		if !ok {
			merged = append(merged, r)
			continue
		}
		if i, hit := index[key]; hit {
			merged[i] = r
			continue
		}
		index[key] = len(merged)
		merged = append(merged, r)
	}
	return merged
}
