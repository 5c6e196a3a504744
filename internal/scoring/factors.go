// internal/scoring/factors.go
package scoring

import "strings"

// importanceSuffix is appended to a category name to form the attribute key
// under which an institution states that factor's importance level.
const importanceSuffix = "_importance"

// Category names for the scorable admission factors.
const (
	CategoryGPA       = "gpa"
	CategorySATACT    = "sat_act"
	CategoryResidency = "residency"
	CategoryAlumni    = "alumni"
)

// Factor links a scorable category to the institution attribute key that
// carries its stated importance level.
type Factor struct {
	Category     string
	AttributeKey string
}

// FactorTable is the static factor configuration, passed explicitly into
// each pipeline stage rather than read from package state.
type FactorTable []Factor

// DefaultFactors returns the standard four-factor table.
func DefaultFactors() FactorTable {
	return FactorTable{
		{Category: CategoryGPA, AttributeKey: CategoryGPA + importanceSuffix},
		{Category: CategorySATACT, AttributeKey: CategorySATACT + importanceSuffix},
		{Category: CategoryResidency, AttributeKey: CategoryResidency + importanceSuffix},
		{Category: CategoryAlumni, AttributeKey: CategoryAlumni + importanceSuffix},
	}
}

// AttributeKeys returns the importance attribute keys in table order.
func (t FactorTable) AttributeKeys() []string {
	keys := make([]string, 0, len(t))
	for _, f := range t {
		keys = append(keys, f.AttributeKey)
	}
	return keys
}

// CategoryFor resolves an importance attribute key to its bare category
// name, falling back to suffix stripping for keys outside the table.
func (t FactorTable) CategoryFor(attributeKey string) string {
	for _, f := range t {
		if f.AttributeKey == attributeKey {
			return f.Category
		}
	}
	return strings.TrimSuffix(attributeKey, importanceSuffix)
}

// AttributeKeyFor resolves a category to its importance attribute key.
func (t FactorTable) AttributeKeyFor(category string) (string, bool) {
	for _, f := range t {
		if f.Category == category {
			return f.AttributeKey, true
		}
	}
	return "", false
}
