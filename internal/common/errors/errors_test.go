// internal/common/errors/errors_test.go
package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRetryCount(t *testing.T) {
	assert.Equal(t, 3, GetRetryCount(ErrCodeCorpusLoadFailed))
	assert.Equal(t, 3, GetRetryCount(ErrCodeDatabaseConnectionFailed))
	assert.Equal(t, 3, GetRetryCount(ErrCodeQueryExecutionFailed))
	assert.Equal(t, 2, GetRetryCount(ErrCodeQueryTimeout))
	assert.Equal(t, 0, GetRetryCount(ErrCodeMissingScoringData))
	assert.Equal(t, 0, GetRetryCount(ErrCodeZeroImportanceSignal))
	assert.Equal(t, 0, GetRetryCount(ErrorCode("SOMETHING_ELSE")))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "scoring", GetErrorCategory(ErrCodeScoringFailed))
	assert.Equal(t, "corpus", GetErrorCategory(ErrCodeUnknownInstitution))
	assert.Equal(t, "validation", GetErrorCategory(ErrCodeProfileValidationFailed))
	assert.Equal(t, "database", GetErrorCategory(ErrCodeQueryTimeout))
	assert.Equal(t, "internal", GetErrorCategory(ErrorCode("SOMETHING_ELSE")))
}

func TestConvertToBPMNError(t *testing.T) {
	stdErr := NewCorpusLoadFailedError(fmt.Errorf("connection refused"))

	bpmnErr := ConvertToBPMNError(stdErr)
	assert.Equal(t, "CORPUS_LOAD_FAILED", bpmnErr.Code)
	assert.Equal(t, stdErr.Message, bpmnErr.Message)
	assert.True(t, bpmnErr.Retryable)
	assert.Equal(t, 3, bpmnErr.Retries)
}

func TestBPMNError_ToErrorVariables(t *testing.T) {
	bpmnErr := &BPMNError{
		Code:      "MISSING_SCORING_DATA",
		Message:   "Institution record is missing data required for scoring",
		Details:   "stage: residency",
		Retryable: false,
		ErrorVariables: map[string]interface{}{
			"institutionKey": "state-tech",
		},
	}

	vars := bpmnErr.ToErrorVariables()
	assert.Equal(t, "MISSING_SCORING_DATA", vars["errorCode"])
	assert.Equal(t, "stage: residency", vars["errorDetails"])
	assert.Equal(t, false, vars["retryable"])
	assert.Equal(t, "state-tech", vars["institutionKey"])
}

func TestErrorConstructors_CodeAndRetryability(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{"zero importance", NewZeroImportanceSignalError("no signal"), ErrCodeZeroImportanceSignal, false},
		{"profile validation", NewProfileValidationFailedError("gpa: invalid type"), ErrCodeProfileValidationFailed, false},
		{"database connection", NewDatabaseConnectionFailedError(fmt.Errorf("refused")), ErrCodeDatabaseConnectionFailed, true},
		{"query execution", NewQueryExecutionFailedError("institution_record", fmt.Errorf("bad column")), ErrCodeQueryExecutionFailed, true},
		{"query timeout", NewQueryTimeoutError("institution_corpus"), ErrCodeQueryTimeout, true},
		{"invalid query type", NewInvalidQueryTypeError("institution_rumors"), ErrCodeInvalidQueryType, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
		})
	}
}

func TestStandardError_Error(t *testing.T) {
	stdErr := NewUnknownInstitutionError("ghost-u")
	assert.Contains(t, stdErr.Error(), "UNKNOWN_INSTITUTION")
}
