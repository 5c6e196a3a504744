// internal/workers/scoring/validate-applicant-profile/models.go
package validateapplicantprofile

type Input struct {
	Applicant map[string]interface{} `json:"applicant"`
}

type Output struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}
