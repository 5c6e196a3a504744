// internal/scoring/maxscore_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxScore(t *testing.T) {
	factors := DefaultFactors()
	budget := PointBudget{
		CategoryGPA:       35,
		CategorySATACT:    30,
		CategoryResidency: 20,
		CategoryAlumni:    15,
	}

	tests := []struct {
		name     string
		attrs    map[string]interface{}
		expected float64
	}{
		{
			name: "everything very important reaches full budget",
			attrs: map[string]interface{}{
				"gpa_importance":       "Very Important",
				"sat_act_importance":   "Very Important",
				"residency_importance": "Very Important",
				"alumni_importance":    "Very Important",
			},
			expected: 100,
		},
		{
			name: "mixed levels lower the ceiling",
			attrs: map[string]interface{}{
				"gpa_importance":       "Very Important",
				"sat_act_importance":   "Important",
				"residency_importance": "Considered",
				"alumni_importance":    "Not Considered",
			},
			expected: 35 + 22.5 + 10 + 0,
		},
		{
			name: "unstated categories contribute zero",
			attrs: map[string]interface{}{
				"gpa_importance": "Very Important",
			},
			expected: 35,
		},
		{
			name: "unrecognized level contributes zero",
			attrs: map[string]interface{}{
				"gpa_importance":     "Very Important",
				"sat_act_importance": "Critical",
			},
			expected: 35,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := NewRecord("inst", tt.attrs)
			assert.Equal(t, tt.expected, MaxScore(inst, budget, factors))
		})
	}
}

func TestMaxScore_MonotonicInBudget(t *testing.T) {
	factors := DefaultFactors()
	inst := NewRecord("inst", map[string]interface{}{
		"gpa_importance":       "Important",
		"sat_act_importance":   "Considered",
		"residency_importance": "Very Important",
		"alumni_importance":    "Considered",
	})

	base := PointBudget{
		CategoryGPA:       35,
		CategorySATACT:    30,
		CategoryResidency: 20,
		CategoryAlumni:    15,
	}
	baseline := MaxScore(inst, base, factors)

	for category := range base {
		raised := PointBudget{}
		for k, v := range base {
			raised[k] = v
		}
		raised[category] += 10

		assert.GreaterOrEqual(t, MaxScore(inst, raised, factors), baseline,
			"raising %s budget lowered the ceiling", category)
	}
}

func TestMaxScores_CoversCorpus(t *testing.T) {
	factors := DefaultFactors()
	budget := PointBudget{CategoryGPA: 100}

	corpus := map[string]*Record{
		"a": NewRecord("a", map[string]interface{}{"gpa_importance": "Very Important"}),
		"b": NewRecord("b", map[string]interface{}{"gpa_importance": "Considered"}),
		"c": NewRecord("c", map[string]interface{}{}),
	}

	scores := MaxScores(corpus, budget, factors)
	assert.Equal(t, map[string]float64{"a": 100, "b": 50, "c": 0}, scores)
}
