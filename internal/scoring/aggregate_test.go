// internal/scoring/aggregate_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func corpusFromLevels(levels ...map[string]interface{}) map[string]*Record {
	corpus := make(map[string]*Record, len(levels))
	for i, attrs := range levels {
		key := string(rune('a' + i))
		corpus[key] = NewRecord(key, attrs)
	}
	return corpus
}

func TestComputeAverageImportance(t *testing.T) {
	factors := DefaultFactors()

	tests := []struct {
		name     string
		corpus   map[string]*Record
		expected AverageWeights
	}{
		{
			name: "uniform very important",
			corpus: corpusFromLevels(
				map[string]interface{}{"gpa_importance": "Very Important"},
				map[string]interface{}{"gpa_importance": "Very Important"},
			),
			expected: AverageWeights{
				"gpa_importance":       1.0,
				"sat_act_importance":   0.0,
				"residency_importance": 0.0,
				"alumni_importance":    0.0,
			},
		},
		{
			name: "mixed levels average",
			corpus: corpusFromLevels(
				map[string]interface{}{"gpa_importance": "Very Important"},
				map[string]interface{}{"gpa_importance": "Considered"},
			),
			expected: AverageWeights{
				"gpa_importance":       0.75,
				"sat_act_importance":   0.0,
				"residency_importance": 0.0,
				"alumni_importance":    0.0,
			},
		},
		{
			name: "unrecognized level excluded from both sides",
			corpus: corpusFromLevels(
				map[string]interface{}{"gpa_importance": "Very Important"},
				map[string]interface{}{"gpa_importance": "Somewhat Important"},
			),
			expected: AverageWeights{
				"gpa_importance":       1.0,
				"sat_act_importance":   0.0,
				"residency_importance": 0.0,
				"alumni_importance":    0.0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg := ComputeAverageImportance(tt.corpus, factors)
			assert.Equal(t, tt.expected, avg)
		})
	}
}

func TestComputeAverageImportance_MissingLevelCountsAsNotConsidered(t *testing.T) {
	// One institution states Very Important, the other states nothing: the
	// absent one tallies as Not Considered and drags the average to 0.5.
	corpus := corpusFromLevels(
		map[string]interface{}{"gpa_importance": "Very Important"},
		map[string]interface{}{},
	)

	avg := ComputeAverageImportance(corpus, DefaultFactors())
	assert.Equal(t, 0.5, avg["gpa_importance"])
}

func TestComputeAverageImportance_WithinLevelWeightHull(t *testing.T) {
	corpus := corpusFromLevels(
		map[string]interface{}{
			"gpa_importance":       "Very Important",
			"sat_act_importance":   "Important",
			"residency_importance": "Considered",
			"alumni_importance":    "Not Considered",
		},
		map[string]interface{}{
			"gpa_importance":       "Important",
			"sat_act_importance":   "Considered",
			"residency_importance": "Very Important",
			"alumni_importance":    "Considered",
		},
		map[string]interface{}{
			"gpa_importance": "Considered",
		},
	)

	avg := ComputeAverageImportance(corpus, DefaultFactors())
	for key, w := range avg {
		assert.GreaterOrEqual(t, w, MinLevelWeight(), "factor %s below hull", key)
		assert.LessOrEqual(t, w, MaxLevelWeight(), "factor %s above hull", key)
	}
}

func TestComputeAverageImportance_RoundsToFourDecimals(t *testing.T) {
	// 1.0 + 0.75 + 0.5 over three institutions = 0.75; with a fourth Not
	// Considered the average is 2.25/4 = 0.5625 exactly, and 2.25/3 style
	// repeating fractions land on 4 decimals.
	corpus := corpusFromLevels(
		map[string]interface{}{"gpa_importance": "Very Important"},
		map[string]interface{}{"gpa_importance": "Very Important"},
		map[string]interface{}{"gpa_importance": "Considered"},
	)

	avg := ComputeAverageImportance(corpus, DefaultFactors())
	assert.Equal(t, 0.8333, avg["gpa_importance"])
}

func TestComputeAverageImportance_EmptyCorpus(t *testing.T) {
	avg := ComputeAverageImportance(map[string]*Record{}, DefaultFactors())
	for _, key := range DefaultFactors().AttributeKeys() {
		assert.Zero(t, avg[key])
	}
}
