// internal/scoring/levels.go
package scoring

// ImportanceLevel is a qualitative admission-factor weighting as published
// in an institution's Common Data Set record.
type ImportanceLevel string

const (
	LevelVeryImportant ImportanceLevel = "Very Important"
	LevelImportant     ImportanceLevel = "Important"
	LevelConsidered    ImportanceLevel = "Considered"
	LevelNotConsidered ImportanceLevel = "Not Considered"
)

// levelWeights maps each recognized level to its numeric weight.
// Weights are monotonic with importance and stay in [0, 1].
var levelWeights = map[ImportanceLevel]float64{
	LevelVeryImportant: 1.0,
	LevelImportant:     0.75,
	LevelConsidered:    0.5,
	LevelNotConsidered: 0.0,
}

// Weight returns the numeric weight for the level. The second return is
// false for levels outside the known vocabulary; callers must exclude
// those rather than defaulting them.
func (l ImportanceLevel) Weight() (float64, bool) {
	w, ok := levelWeights[l]
	return w, ok
}

// Recognized reports whether the level belongs to the known vocabulary.
func (l ImportanceLevel) Recognized() bool {
	_, ok := levelWeights[l]
	return ok
}

// MinLevelWeight and MaxLevelWeight bound every recognized level weight.
func MinLevelWeight() float64 { return 0.0 }
func MaxLevelWeight() float64 { return 1.0 }
