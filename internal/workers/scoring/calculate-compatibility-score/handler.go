// internal/workers/scoring/calculate-compatibility-score/handler.go
package calculatecompatibilityscore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	commonerrors "admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/corpus"
	"admissions-workers/internal/scoring"
)

const (
	TaskType = "calculate-compatibility-score"

	budgetCacheKey = "scoring:point-budget:latest"
)

var (
	ErrNoPointBudget = errors.New("no point budget available")
)

type Handler struct {
	config   *Config
	store    *corpus.Store
	redis    *redis.Client
	factors  scoring.FactorTable
	logger   logger.Logger
	errorOut *commonerrors.ErrorHandler
}

func NewHandler(config *Config, store *corpus.Store, rdb *redis.Client, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		store:    store,
		redis:    rdb,
		factors:  scoring.DefaultFactors(),
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
		stdErr := h.classifyError(err, &input)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
		h.errorOut.HandleJobError(ctx, client, job, stdErr)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	budget, err := h.resolveBudget(ctx, input)
	if err != nil {
		return nil, err
	}

	institution, err := h.resolveInstitution(ctx, input)
	if err != nil {
		return nil, err
	}

	scorer := scoring.NewScorer(h.factors, budget)
	result, err := scorer.Score(&input.Applicant, institution)
	if err != nil {
		return nil, err
	}

	if result.Eligible() {
		metrics.CompatibilityScores.Observe(result.Score)
	} else {
		metrics.IneligibleApplicants.WithLabelValues(result.Reason).Inc()
	}

	h.logger.Info("compatibility score calculated", map[string]interface{}{
		"applicantId": result.ApplicantID,
		"institution": result.Institution,
		"score":       result.Score,
		"eligible":    result.Eligible(),
	})

	return &Output{
		ApplicantID: result.ApplicantID,
		Institution: result.Institution,
		Score:       result.Score,
		Eligible:    result.Eligible(),
		Reason:      result.Reason,
		Breakdown:   result.Breakdown,
	}, nil
}

func (h *Handler) resolveBudget(ctx context.Context, input *Input) (scoring.PointBudget, error) {
	if len(input.PointBudget) > 0 {
		return scoring.PointBudget(input.PointBudget), nil
	}

	if h.redis == nil {
		return nil, ErrNoPointBudget
	}
	cached, err := h.redis.Get(ctx, budgetCacheKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoPointBudget
		}
		return nil, fmt.Errorf("fetch cached point budget: %w", err)
	}

	var stored struct {
		PointBudget map[string]float64 `json:"pointBudget"`
	}
	if err := json.Unmarshal([]byte(cached), &stored); err != nil {
		return nil, fmt.Errorf("decode cached point budget: %w", err)
	}
	if len(stored.PointBudget) == 0 {
		return nil, ErrNoPointBudget
	}
	return scoring.PointBudget(stored.PointBudget), nil
}

func (h *Handler) resolveInstitution(ctx context.Context, input *Input) (*scoring.Record, error) {
	if len(input.Institution) > 0 {
		key := input.InstitutionKey
		if key == "" {
			key = "inline"
		}
		return scoring.NewRecord(key, input.Institution), nil
	}

	if input.InstitutionKey == "" {
		return nil, fmt.Errorf("%w: no institution key or inline attributes", corpus.ErrInstitutionNotFound)
	}
	if h.store == nil {
		return nil, fmt.Errorf("no corpus store configured")
	}
	return h.store.Get(ctx, input.InstitutionKey)
}

// classifyError maps domain errors onto the standardized error codes the
// workflow error boundaries are keyed on.
func (h *Handler) classifyError(err error, input *Input) *commonerrors.StandardError {
	switch {
	case scoring.IsMissingData(err):
		return commonerrors.NewMissingScoringDataError(err.Error())
	case errors.Is(err, corpus.ErrInstitutionNotFound):
		return commonerrors.NewUnknownInstitutionError(input.InstitutionKey)
	case errors.Is(err, ErrNoPointBudget):
		// the budget artifact comes from a compute-point-budget run, a
		// retry gives that run time to land
		return commonerrors.NewCorpusLoadFailedError(err)
	default:
		return commonerrors.NewScoringFailedError("score", err)
	}
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
