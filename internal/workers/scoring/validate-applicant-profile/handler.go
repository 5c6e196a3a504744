// internal/workers/scoring/validate-applicant-profile/handler.go
package validateapplicantprofile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"

	commonerrors "admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
)

const TaskType = "validate-applicant-profile"

// profileSchema constrains the applicant payload before it reaches the
// scoring workers. GPA has no upper bound: weighted high school scales
// legitimately exceed 4.0.
var profileSchema = map[string]interface{}{
	"type":     "object",
	"required": []string{"id", "name", "gpa"},
	"properties": map[string]interface{}{
		"id":   map[string]interface{}{"type": "string", "minLength": 1},
		"name": map[string]interface{}{"type": "string", "minLength": 1},
		"gpa": map[string]interface{}{
			"type":    "number",
			"minimum": 0,
		},
		"sat": map[string]interface{}{
			"type":    "integer",
			"minimum": 0,
			"maximum": 1600,
		},
		"act": map[string]interface{}{
			"type":    "integer",
			"minimum": 0,
			"maximum": 36,
		},
		"state":         map[string]interface{}{"type": "string"},
		"international": map[string]interface{}{"type": "boolean"},
		"alumniInstitutions": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string"},
		},
		"volunteerHours": map[string]interface{}{
			"type":    "integer",
			"minimum": 0,
		},
		"highSchoolCompleted": map[string]interface{}{"type": "boolean"},
		"subjectUnits": map[string]interface{}{
			"type": "object",
			"additionalProperties": map[string]interface{}{
				"type":    "number",
				"minimum": 0,
			},
		},
	},
}

type Handler struct {
	config   *Config
	logger   logger.Logger
	errorOut *commonerrors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		logger:   scoped,
		errorOut: commonerrors.NewErrorHandler(scoped),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "INTERNAL_ERROR").Inc()
		h.errorOut.HandleJobError(ctx, client, job, fmt.Errorf("parse input: %w", err))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		stdErr := commonerrors.NewProfileValidationFailedError(err.Error())
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
		h.errorOut.HandleJobError(ctx, client, job, stdErr)
		return
	}

	if !output.Valid {
		h.logger.Warn("applicant profile rejected", map[string]interface{}{
			"errors": output.Errors,
		})
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

// execute validates the raw applicant document against the profile
// schema. An invalid profile is a normal completion with Valid=false so
// the workflow can route to a rejection path; only schema machinery
// failures surface as errors.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.Applicant == nil {
		return &Output{
			Valid:  false,
			Errors: []string{"applicant document is missing"},
		}, nil
	}

	schemaLoader := gojsonschema.NewGoLoader(profileSchema)
	documentLoader := gojsonschema.NewGoLoader(input.Applicant)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return &Output{Valid: false, Errors: errs}, nil
	}

	return &Output{Valid: true}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}
