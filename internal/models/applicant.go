// internal/models/applicant.go
package models

// ApplicantProfile holds the identity, demographic, and achievement fields
// an applicant submits for scoring. No invariants are enforced here; the
// scorer checks presence at the point of use.
type ApplicantProfile struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	GPA                 float64            `json:"gpa"`
	SAT                 int                `json:"sat"`
	ACT                 int                `json:"act"`
	State               string             `json:"state"`
	International       bool               `json:"international"`
	Alumni              bool               `json:"alumni"`
	AlumniInstitutions  []string           `json:"alumniInstitutions"`
	VolunteerHours      int                `json:"volunteerHours"`
	HighSchoolCompleted bool               `json:"highSchoolCompleted"`
	SubjectUnits        map[string]float64 `json:"subjectUnits"`
}
