// internal/scoring/record.go
package scoring

import (
	"strings"
)

// Record is one institution's admissions attributes. The loader produces a
// flat mapping whose dot-separated keys denote nesting ("sat_scores.25th");
// NewRecord unflattens that into a tree once, at construction, so reads
// never have to split strings or guess at intermediate segments.
type Record struct {
	Key   string
	attrs map[string]interface{}
}

// NewRecord builds a Record from a flat attribute mapping. Intermediate
// nodes are created on write; a scalar already present at an intermediate
// segment is replaced by a subtree (last write wins, matching load order).
func NewRecord(key string, flat map[string]interface{}) *Record {
	root := make(map[string]interface{}, len(flat))
	for k, v := range flat {
		parts := strings.Split(k, ".")
		node := root
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]interface{})
			if !ok {
				child = make(map[string]interface{})
				node[p] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = v
	}
	return &Record{Key: key, attrs: root}
}

// Lookup walks the attribute tree along a dot-separated path. It fails fast:
// a missing or non-map intermediate segment returns ok=false, never a
// synthesized default.
func (r *Record) Lookup(path string) (interface{}, bool) {
	var node interface{} = r.attrs
	for _, p := range strings.Split(path, ".") {
		m, ok := node.(map[string]interface{})
		if !ok {
			return nil, false
		}
		node, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// Float reads a numeric attribute. JSON decoding yields float64; integer
// values stored directly are widened.
func (r *Record) Float(path string) (float64, bool) {
	v, ok := r.Lookup(path)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Bool reads a boolean attribute; absent or non-boolean values read false.
func (r *Record) Bool(path string) bool {
	v, ok := r.Lookup(path)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// String reads a string attribute.
func (r *Record) String(path string) (string, bool) {
	v, ok := r.Lookup(path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Map reads a nested attribute subtree, e.g. the subject-requirement table.
func (r *Record) Map(path string) (map[string]interface{}, bool) {
	v, ok := r.Lookup(path)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]interface{})
	return m, ok
}

// Level reads an importance-level attribute. Missing attributes default to
// "Not Considered"; the value is returned as stated either way, so callers
// decide how to treat unrecognized vocabulary.
func (r *Record) Level(attributeKey string) ImportanceLevel {
	s, ok := r.String(attributeKey)
	if !ok {
		return LevelNotConsidered
	}
	return ImportanceLevel(s)
}

// Name returns the institution's display name, falling back to the key.
func (r *Record) Name() string {
	if s, ok := r.String("name"); ok {
		return s
	}
	return r.Key
}

// State returns the institution's home state, if stated.
func (r *Record) State() string {
	s, _ := r.String("state")
	return s
}
