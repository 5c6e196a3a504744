// internal/scoring/aggregate.go
package scoring

// AverageWeights maps a factor's importance attribute key to the
// count-weighted average of its level weights across the corpus.
type AverageWeights map[string]float64

// ComputeAverageImportance reduces the corpus to one consensus weight per
// factor. Every institution contributes one tally for its stated level
// (defaulting to "Not Considered" when unstated); levels outside the known
// vocabulary are excluded from both numerator and denominator. A factor no
// institution reports a recognized level for averages to 0.
func ComputeAverageImportance(institutions map[string]*Record, factors FactorTable) AverageWeights {
	avg := make(AverageWeights, len(factors))
	for _, key := range factors.AttributeKeys() {
		counts := make(map[ImportanceLevel]int)
		for _, inst := range institutions {
			level := inst.Level(key)
			if !level.Recognized() {
				continue
			}
			counts[level]++
		}

		var weighted float64
		var total int
		for level, count := range counts {
			w, _ := level.Weight()
			weighted += w * float64(count)
			total += count
		}

		if total == 0 {
			avg[key] = 0
			continue
		}
		avg[key] = round4(weighted / float64(total))
	}
	return avg
}
