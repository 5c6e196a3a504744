// internal/scoring/allocate.go
package scoring

import "math"

// DefaultTotalPoints is the point pool shared across all factors.
const DefaultTotalPoints = 100.0

// PointBudget maps a bare category name to its point allocation.
type PointBudget map[string]float64

// AllocatePoints splits totalPoints across factors in proportion to their
// average importance weights. Each allocation is rounded to 2 decimals
// independently, so the sum only approximates totalPoints. A zero total
// weight means the corpus had no importance signal anywhere and is returned
// as ErrZeroImportanceSignal rather than producing NaN allocations.
func AllocatePoints(avg AverageWeights, factors FactorTable, totalPoints float64) (PointBudget, error) {
	var totalWeight float64
	for _, w := range avg {
		totalWeight += w
	}
	if totalWeight == 0 {
		return nil, ErrZeroImportanceSignal
	}

	budget := make(PointBudget, len(avg))
	for key, w := range avg {
		category := factors.CategoryFor(key)
		budget[category] = round2((w / totalWeight) * totalPoints)
	}
	return budget, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
