// internal/scoring/maxscore.go
package scoring

// MaxScore computes the weighted ceiling one institution's own importance
// declarations impose on the total achievable score. Two institutions with
// the same point budget can still have different ceilings, so every final
// score is normalized against its own institution's ceiling rather than a
// global one. Categories the institution does not state, or states with an
// unrecognized level, contribute 0.
func MaxScore(institution *Record, budget PointBudget, factors FactorTable) float64 {
	var max float64
	for category, points := range budget {
		attrKey, ok := factors.AttributeKeyFor(category)
		if !ok {
			continue
		}
		w, ok := institution.Level(attrKey).Weight()
		if !ok {
			continue
		}
		max += points * w
	}
	return max
}

// MaxScores computes the ceiling for every institution in the corpus.
func MaxScores(institutions map[string]*Record, budget PointBudget, factors FactorTable) map[string]float64 {
	out := make(map[string]float64, len(institutions))
	for key, inst := range institutions {
		out[key] = MaxScore(inst, budget, factors)
	}
	return out
}
