// internal/models/score.go
package models

// ScoreResult is the outcome of one applicant/institution scoring call.
// An ineligible applicant gets Score 0 and a non-empty Reason; an eligible
// one gets the normalized score and the per-category point breakdown.
type ScoreResult struct {
	ApplicantID string             `json:"applicantId"`
	Institution string             `json:"institution"`
	Score       float64            `json:"score"`
	Breakdown   map[string]float64 `json:"breakdown,omitempty"`
	Reason      string             `json:"reason,omitempty"`
}

// Eligible reports whether the result passed all hard eligibility gates.
func (r *ScoreResult) Eligible() bool {
	return r.Reason == ""
}
