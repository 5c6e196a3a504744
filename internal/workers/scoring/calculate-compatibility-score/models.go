// internal/workers/scoring/calculate-compatibility-score/models.go
package calculatecompatibilityscore

import "admissions-workers/internal/models"

type Input struct {
	Applicant      models.ApplicantProfile `json:"applicant"`
	InstitutionKey string                  `json:"institutionKey,omitempty"`

	// Institution optionally carries inline attributes, bypassing the
	// corpus store. Used by workflows that query institutions upstream.
	Institution map[string]interface{} `json:"institution,omitempty"`

	// PointBudget overrides the cached budget from the latest
	// compute-point-budget run.
	PointBudget map[string]float64 `json:"pointBudget,omitempty"`
}

type Output struct {
	ApplicantID string             `json:"applicantId"`
	Institution string             `json:"institution"`
	Score       float64            `json:"score"`
	Eligible    bool               `json:"eligible"`
	Reason      string             `json:"reason,omitempty"`
	Breakdown   map[string]float64 `json:"breakdown,omitempty"`
}
