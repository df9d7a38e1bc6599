// Package pantry holds the client-side state of a user's pantry: the
// ingredient collection, the search filters, and the per-session view
// state that the search flow transitions through.
package pantry

import "strings"

// IngredientSet is an ordered collection of distinct ingredient names.
// Names are normalized (trimmed, lowercased) on every entry path, so no
// two entries ever differ only by case or surrounding whitespace.
// Insertion order is preserved for display.
//
// IngredientSet is not safe for concurrent use; Session serializes
// access to it.
type IngredientSet struct {
	names []string
	index map[string]struct{}
}

// NewIngredientSet creates an empty ingredient collection.
func NewIngredientSet() *IngredientSet {
	return &IngredientSet{index: make(map[string]struct{})}
}

// Normalize returns the canonical form of an ingredient name.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Add appends an ingredient to the collection. Blank input and
// duplicates are silently ignored. Reports whether the set changed.
func (s *IngredientSet) Add(raw string) bool {
	name := Normalize(raw)
	if name == "" {
		return false
	}
	if _, ok := s.index[name]; ok {
		return false
	}
	s.names = append(s.names, name)
	s.index[name] = struct{}{}
	return true
}

// Remove deletes an ingredient from the collection. Removing an absent
// name is a no-op. Reports whether the set changed.
func (s *IngredientSet) Remove(raw string) bool {
	name := Normalize(raw)
	if _, ok := s.index[name]; !ok {
		return false
	}
	delete(s.index, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return true
}

// MergeExtracted unions externally supplied names (typically from an
// image scan) into the collection. Existing items keep their positions;
// new items are appended in the order given. Returns how many entries
// were added.
func (s *IngredientSet) MergeExtracted(names []string) int {
	added := 0
	for _, raw := range names {
		if s.Add(raw) {
			added++
		}
	}
	return added
}

// Names returns a copy of the collection in insertion order.
func (s *IngredientSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of ingredients in the collection.
func (s *IngredientSet) Len() int { return len(s.names) }

// Empty reports whether the collection holds no ingredients. An empty
// collection disables search submission at the handler layer.
func (s *IngredientSet) Empty() bool { return len(s.names) == 0 }
