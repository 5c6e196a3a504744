// internal/scoring/scorer.go
package scoring

import (
	"fmt"
	"sort"
	"strings"

	"admissions-workers/internal/models"
)

// Institution attribute paths consumed by the gates and factor scoring.
const (
	attrRequiresHighSchool  = "requires_high_school"
	attrRequiresCollegePrep = "requires_college_prep"
	attrSubjectRequirements = "subject_requirements"
	attrRequiresSAT         = "requires_sat"
	attrRequiresACT         = "requires_act"
	attrRequiresSATOrACT    = "requires_sat_or_act"
	attrSATScores           = "sat_scores"
	attrACTScores           = "act_scores"
	attrAcceptanceRate      = "acceptance_rate"

	bandLower = "25th"
	bandUpper = "75th"
)

// Residency categories keyed under acceptance_rate.
const (
	ResidencyInState       = "in-state"
	ResidencyOutOfState    = "out-of-state"
	ResidencyInternational = "international"
)

const gpaScale = 4.0

// Scorer computes compatibility scores against a fixed factor table and
// point budget. It holds no mutable state: the same inputs always produce
// the same result, and independent calls may run concurrently.
type Scorer struct {
	factors FactorTable
	budget  PointBudget
}

func NewScorer(factors FactorTable, budget PointBudget) *Scorer {
	return &Scorer{factors: factors, budget: budget}
}

// Score runs the eligibility gates and, if they all pass, accumulates the
// weighted per-factor points and normalizes the total against the
// institution's own maximum score. Gate failure is a normal outcome
// (score 0, reason set), not an error; errors are reserved for missing
// institution data the computation cannot proceed without.
func (s *Scorer) Score(applicant *models.ApplicantProfile, institution *Record) (*models.ScoreResult, error) {
	reason, err := s.checkGates(applicant, institution)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return &models.ScoreResult{
			ApplicantID: applicant.ID,
			Institution: institution.Name(),
			Score:       0,
			Reason:      reason,
		}, nil
	}

	breakdown := make(map[string]float64, len(s.budget))
	var total float64

	add := func(category string, raw float64) {
		weighted := raw * s.importanceWeight(institution, category)
		total += weighted
		breakdown[category] = round2(weighted)
	}

	add(CategoryAlumni, s.alumniScore(applicant, institution))

	residency, err := s.residencyScore(applicant, institution)
	if err != nil {
		return nil, err
	}
	add(CategoryResidency, residency)

	testRaw, applies, err := s.standardizedTestScore(applicant, institution)
	if err != nil {
		return nil, err
	}
	if applies {
		add(CategorySATACT, testRaw)
	}

	// GPA ratio is deliberately unclamped: a weighted-GPA profile above the
	// 4.0 scale scores past the nominal category budget.
	add(CategoryGPA, applicant.GPA/gpaScale*s.budget[CategoryGPA])

	final := 0.0
	if max := MaxScore(institution, s.budget, s.factors); max > 0 {
		final = round2(total / max * 100)
	}

	return &models.ScoreResult{
		ApplicantID: applicant.ID,
		Institution: institution.Name(),
		Score:       final,
		Breakdown:   breakdown,
	}, nil
}

// checkGates runs the hard eligibility requirements in order and returns
// the first failure reason. All three standardized-test requirement flags
// are evaluated independently: an institution declaring more than one must
// have every declared condition satisfied.
func (s *Scorer) checkGates(applicant *models.ApplicantProfile, institution *Record) (string, error) {
	if institution.Bool(attrRequiresHighSchool) && !applicant.HighSchoolCompleted {
		return "high school completion required", nil
	}

	if institution.Bool(attrRequiresCollegePrep) {
		subjects, ok := institution.Map(attrSubjectRequirements)
		if !ok {
			return "", &MissingDataError{
				Stage:       "scoring",
				Factor:      "college_prep",
				Institution: institution.Key,
				Path:        attrSubjectRequirements,
			}
		}
		// check subjects in a fixed order so the reported shortfall is
		// stable across calls with the same inputs
		names := make([]string, 0, len(subjects))
		for subject := range subjects {
			names = append(names, subject)
		}
		sort.Strings(names)
		for _, subject := range names {
			min, ok := asFloat(subjects[subject])
			if !ok {
				continue
			}
			if applicant.SubjectUnits[subject] < min {
				return fmt.Sprintf("missing required subject units: %s", subject), nil
			}
		}
	}

	if institution.Bool(attrRequiresSAT) && applicant.SAT == 0 {
		return "SAT score required", nil
	}
	if institution.Bool(attrRequiresACT) && applicant.ACT == 0 {
		return "ACT score required", nil
	}
	if institution.Bool(attrRequiresSATOrACT) && applicant.SAT == 0 && applicant.ACT == 0 {
		return "SAT or ACT score required", nil
	}

	return "", nil
}

// alumniScore grants the full category budget only when the applicant is
// alumni-affiliated and the institution's own name appears in their list,
// compared case-insensitively. Everything else scores 0, regardless of the
// alumni flag on its own.
func (s *Scorer) alumniScore(applicant *models.ApplicantProfile, institution *Record) float64 {
	if !applicant.Alumni {
		return 0
	}
	name := institution.Name()
	for _, affiliated := range applicant.AlumniInstitutions {
		if strings.EqualFold(affiliated, name) {
			return s.budget[CategoryAlumni]
		}
	}
	return 0
}

// residencyScore scales the residency budget by the institution's
// acceptance rate for the applicant's residency category. The rate is a
// favorability fraction in [0, 1], not a probability to sample.
func (s *Scorer) residencyScore(applicant *models.ApplicantProfile, institution *Record) (float64, error) {
	category := ResidencyOutOfState
	switch {
	case applicant.International:
		category = ResidencyInternational
	case applicant.State == institution.State():
		category = ResidencyInState
	}

	path := attrAcceptanceRate + "." + category
	rate, ok := institution.Float(path)
	if !ok {
		return 0, &MissingDataError{
			Stage:       "scoring",
			Factor:      CategoryResidency,
			Institution: institution.Key,
			Path:        path,
		}
	}
	return rate * s.budget[CategoryResidency], nil
}

// standardizedTestScore interpolates the applicant's test score between the
// institution's 25th and 75th percentile bands. SAT takes priority when
// both scores are present; an applicant with neither contributes nothing to
// this factor (the gates above already decided eligibility separately).
func (s *Scorer) standardizedTestScore(applicant *models.ApplicantProfile, institution *Record) (float64, bool, error) {
	switch {
	case applicant.SAT > 0:
		raw, err := s.interpolateBand(float64(applicant.SAT), attrSATScores, institution)
		return raw, true, err
	case applicant.ACT > 0:
		raw, err := s.interpolateBand(float64(applicant.ACT), attrACTScores, institution)
		return raw, true, err
	default:
		return 0, false, nil
	}
}

// interpolateBand maps a score onto [0, budget]: at or below the 25th
// percentile scores 0, at or above the 75th scores the full budget, and
// anything between is linear.
func (s *Scorer) interpolateBand(score float64, bandPath string, institution *Record) (float64, error) {
	p25, ok := institution.Float(bandPath + "." + bandLower)
	if !ok {
		return 0, s.missingBand(institution, bandPath+"."+bandLower)
	}
	p75, ok := institution.Float(bandPath + "." + bandUpper)
	if !ok {
		return 0, s.missingBand(institution, bandPath+"."+bandUpper)
	}

	budget := s.budget[CategorySATACT]
	switch {
	case score <= p25:
		return 0, nil
	case score >= p75 || p75 <= p25:
		return budget, nil
	default:
		raw := (score - p25) / (p75 - p25) * budget
		if raw < 0 {
			return 0, nil
		}
		if raw > budget {
			return budget, nil
		}
		return raw, nil
	}
}

func (s *Scorer) missingBand(institution *Record, path string) error {
	return &MissingDataError{
		Stage:       "scoring",
		Factor:      CategorySATACT,
		Institution: institution.Key,
		Path:        path,
	}
}

// importanceWeight is the institution's declared weight for a category;
// unstated or unrecognized levels weigh 0, consistent with MaxScore.
func (s *Scorer) importanceWeight(institution *Record, category string) float64 {
	attrKey, ok := s.factors.AttributeKeyFor(category)
	if !ok {
		return 0
	}
	w, ok := institution.Level(attrKey).Weight()
	if !ok {
		return 0
	}
	return w
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
