// internal/workers/scoring/validate-applicant-profile/handler_test.go
package validateapplicantprofile

import (
	"context"
	"testing"
	"time"

	"admissions-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(&Config{Timeout: 5 * time.Second}, logger.NewTestLogger(t))
}

func validProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":                  "app-001",
		"name":                "Jordan Lee",
		"gpa":                 3.8,
		"sat":                 1350,
		"state":               "CA",
		"highSchoolCompleted": true,
		"subjectUnits": map[string]interface{}{
			"english": 4.0,
			"math":    3.0,
		},
	}
}

// ==========================
// Validation Tests
// ==========================

func TestHandler_Execute_ValidProfile(t *testing.T) {
	h := createTestHandler(t)

	output, err := h.execute(context.Background(), &Input{Applicant: validProfile()})
	require.NoError(t, err)
	assert.True(t, output.Valid)
	assert.Empty(t, output.Errors)
}

func TestHandler_Execute_InvalidProfiles(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(profile map[string]interface{})
	}{
		{
			name:   "missing id",
			mutate: func(p map[string]interface{}) { delete(p, "id") },
		},
		{
			name:   "missing gpa",
			mutate: func(p map[string]interface{}) { delete(p, "gpa") },
		},
		{
			name:   "empty name",
			mutate: func(p map[string]interface{}) { p["name"] = "" },
		},
		{
			name:   "negative gpa",
			mutate: func(p map[string]interface{}) { p["gpa"] = -0.5 },
		},
		{
			name:   "sat above scale",
			mutate: func(p map[string]interface{}) { p["sat"] = 1700 },
		},
		{
			name:   "fractional sat",
			mutate: func(p map[string]interface{}) { p["sat"] = 1350.5 },
		},
		{
			name:   "act above scale",
			mutate: func(p map[string]interface{}) { p["act"] = 40 },
		},
		{
			name: "negative subject units",
			mutate: func(p map[string]interface{}) {
				p["subjectUnits"] = map[string]interface{}{"math": -1.0}
			},
		},
		{
			name: "alumni institutions not strings",
			mutate: func(p map[string]interface{}) {
				p["alumniInstitutions"] = []interface{}{42}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := createTestHandler(t)

			profile := validProfile()
			tt.mutate(profile)

			output, err := h.execute(context.Background(), &Input{Applicant: profile})
			require.NoError(t, err)
			assert.False(t, output.Valid)
			assert.NotEmpty(t, output.Errors)
		})
	}
}

func TestHandler_Execute_WeightedGPAAboveFourIsValid(t *testing.T) {
	h := createTestHandler(t)

	profile := validProfile()
	profile["gpa"] = 4.4

	output, err := h.execute(context.Background(), &Input{Applicant: profile})
	require.NoError(t, err)
	assert.True(t, output.Valid)
}

func TestHandler_Execute_MissingDocument(t *testing.T) {
	h := createTestHandler(t)

	output, err := h.execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.False(t, output.Valid)
	assert.NotEmpty(t, output.Errors)
}
