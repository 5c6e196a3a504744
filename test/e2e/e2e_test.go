// test/e2e/e2e_test.go
package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admissions-workers/internal/models"
	"admissions-workers/internal/scoring"
)

// fixtureCorpus is a small but complete corpus: one institution with
// every gate enabled, one with none, and one that only weighs GPA.
func fixtureCorpus() map[string]*scoring.Record {
	return map[string]*scoring.Record{
		"state-tech": scoring.NewRecord("state-tech", map[string]interface{}{
			"name":                          "State Tech University",
			"state":                         "CA",
			"requires_high_school":          true,
			"requires_college_prep":         true,
			"subject_requirements.english":  4.0,
			"subject_requirements.math":     3.0,
			"requires_sat_or_act":           true,
			"sat_scores.25th":               1200.0,
			"sat_scores.75th":               1400.0,
			"act_scores.25th":               24.0,
			"act_scores.75th":               32.0,
			"acceptance_rate.in-state":      0.8,
			"acceptance_rate.out-of-state":  0.5,
			"acceptance_rate.international": 0.3,
			"gpa_importance":                "Very Important",
			"sat_act_importance":            "Very Important",
			"residency_importance":          "Important",
			"alumni_importance":             "Considered",
		}),
		"coastal-college": scoring.NewRecord("coastal-college", map[string]interface{}{
			"name":                          "Coastal College",
			"state":                         "CA",
			"sat_scores.25th":               1000.0,
			"sat_scores.75th":               1300.0,
			"act_scores.25th":               20.0,
			"act_scores.75th":               28.0,
			"acceptance_rate.in-state":      0.9,
			"acceptance_rate.out-of-state":  0.7,
			"acceptance_rate.international": 0.6,
			"gpa_importance":                "Important",
			"sat_act_importance":            "Considered",
			"residency_importance":          "Considered",
			"alumni_importance":             "Very Important",
		}),
		"lakeside-u": scoring.NewRecord("lakeside-u", map[string]interface{}{
			"name":                          "Lakeside University",
			"state":                         "MN",
			"sat_scores.25th":               1100.0,
			"sat_scores.75th":               1350.0,
			"act_scores.25th":               22.0,
			"act_scores.75th":               30.0,
			"acceptance_rate.in-state":      0.6,
			"acceptance_rate.out-of-state":  0.4,
			"acceptance_rate.international": 0.2,
			"gpa_importance":                "Very Important",
		}),
	}
}

func fixtureApplicants() []models.ApplicantProfile {
	return []models.ApplicantProfile{
		{
			ID:                  "app-strong",
			Name:                "Jordan Lee",
			GPA:                 4.0,
			SAT:                 1450,
			State:               "CA",
			HighSchoolCompleted: true,
			SubjectUnits:        map[string]float64{"english": 4, "math": 4},
			AlumniInstitutions:  []string{"Coastal College"},
		},
		{
			ID:                  "app-average",
			Name:                "Sam Rivera",
			GPA:                 3.2,
			ACT:                 28,
			State:               "TX",
			HighSchoolCompleted: true,
			SubjectUnits:        map[string]float64{"english": 4, "math": 3},
		},
		{
			ID:    "app-dropout",
			Name:  "Casey Morgan",
			GPA:   3.9,
			SAT:   1500,
			State: "CA",
		},
	}
}

// runPipeline executes the full scoring flow against the fixture corpus:
// aggregate importance, allocate the point budget, then score every
// applicant against every institution.
func runPipeline(t *testing.T) (scoring.PointBudget, map[string]map[string]*models.ScoreResult) {
	t.Helper()

	corpus := fixtureCorpus()
	factors := scoring.DefaultFactors()

	avg := scoring.ComputeAverageImportance(corpus, factors)
	budget, err := scoring.AllocatePoints(avg, factors, scoring.DefaultTotalPoints)
	require.NoError(t, err)

	scorer := scoring.NewScorer(factors, budget)

	results := make(map[string]map[string]*models.ScoreResult)
	for _, applicant := range fixtureApplicants() {
		applicant := applicant
		results[applicant.ID] = make(map[string]*models.ScoreResult)
		for key, institution := range corpus {
			result, err := scorer.Score(&applicant, institution)
			require.NoError(t, err, "scoring %s against %s", applicant.ID, key)
			results[applicant.ID][key] = result
		}
	}
	return budget, results
}

func TestPipeline_BudgetSpendsAllPoints(t *testing.T) {
	budget, _ := runPipeline(t)

	var total float64
	for _, points := range budget {
		assert.GreaterOrEqual(t, points, 0.0)
		total += points
	}
	assert.InDelta(t, scoring.DefaultTotalPoints, total, 0.05)
}

func TestPipeline_ScoresWithinBounds(t *testing.T) {
	_, results := runPipeline(t)

	for applicantID, byInstitution := range results {
		for key, result := range byInstitution {
			assert.GreaterOrEqual(t, result.Score, 0.0,
				"%s at %s", applicantID, key)
			assert.LessOrEqual(t, result.Score, 100.0,
				"%s at %s", applicantID, key)
		}
	}
}

func TestPipeline_GatesOnlyApplyWhereDeclared(t *testing.T) {
	_, results := runPipeline(t)

	// no high school diploma fails the gated institution only
	dropout := results["app-dropout"]
	assert.False(t, dropout["state-tech"].Eligible())
	assert.Equal(t, "high school completion required", dropout["state-tech"].Reason)
	assert.Zero(t, dropout["state-tech"].Score)

	assert.True(t, dropout["coastal-college"].Eligible())
	assert.True(t, dropout["lakeside-u"].Eligible())
}

func TestPipeline_EligibleResultsCarryBreakdowns(t *testing.T) {
	_, results := runPipeline(t)

	strong := results["app-strong"]["state-tech"]
	require.True(t, strong.Eligible())
	assert.Contains(t, strong.Breakdown, "gpa")
	assert.Contains(t, strong.Breakdown, "sat_act")
	assert.Contains(t, strong.Breakdown, "residency")
	assert.Contains(t, strong.Breakdown, "alumni")

	// alumni credit only where the institution matches
	assert.Zero(t, strong.Breakdown["alumni"])
	assert.Positive(t, results["app-strong"]["coastal-college"].Breakdown["alumni"])
}

func TestPipeline_StrongerProfileNeverScoresLower(t *testing.T) {
	_, results := runPipeline(t)

	// app-strong beats app-average on every factor at coastal-college
	strong := results["app-strong"]["coastal-college"].Score
	average := results["app-average"]["coastal-college"].Score
	assert.Greater(t, strong, average)
}

func TestPipeline_Deterministic(t *testing.T) {
	budget1, results1 := runPipeline(t)
	budget2, results2 := runPipeline(t)

	assert.Equal(t, budget1, budget2)
	for applicantID, byInstitution := range results1 {
		for key, result := range byInstitution {
			assert.Equal(t, result.Score, results2[applicantID][key].Score,
				"%s at %s", applicantID, key)
		}
	}
}

func TestPipeline_MissingAcceptanceRateSurfacesTypedError(t *testing.T) {
	corpus := fixtureCorpus()
	factors := scoring.DefaultFactors()

	avg := scoring.ComputeAverageImportance(corpus, factors)
	budget, err := scoring.AllocatePoints(avg, factors, scoring.DefaultTotalPoints)
	require.NoError(t, err)

	bare := scoring.NewRecord("bare-u", map[string]interface{}{
		"name":           "Bare University",
		"gpa_importance": "Very Important",
	})

	applicant := fixtureApplicants()[1]
	_, err = scoring.NewScorer(factors, budget).Score(&applicant, bare)
	require.Error(t, err)
	assert.True(t, scoring.IsMissingData(err))
}
