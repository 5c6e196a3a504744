// internal/workers/scoring/compute-point-budget/models.go
package computepointbudget

type Input struct {
	// Institutions optionally carries an inline corpus keyed by
	// institution key. When empty the shared corpus store is used.
	Institutions map[string]map[string]interface{} `json:"institutions,omitempty"`
	TotalPoints  float64                           `json:"totalPoints,omitempty"`
}

type Output struct {
	RunID            string             `json:"runId"`
	InstitutionCount int                `json:"institutionCount"`
	AverageWeights   map[string]float64 `json:"averageWeights"`
	PointBudget      map[string]float64 `json:"pointBudget"`
	MaxScores        map[string]float64 `json:"maxScores"`
}
