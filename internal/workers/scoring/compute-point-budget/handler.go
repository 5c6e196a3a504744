// internal/workers/scoring/compute-point-budget/handler.go
package computepointbudget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	commonerrors "admissions-workers/internal/common/errors"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/metrics"
	"admissions-workers/internal/corpus"
	"admissions-workers/internal/scoring"
)

const (
	TaskType = "compute-point-budget"

	budgetCacheKey = "scoring:point-budget:latest"
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
		stdErr := h.classifyError(err)
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
		h.errorOut.HandleJobError(ctx, client, job, stdErr)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	institutions, err := h.resolveCorpus(ctx, input)
	if err != nil {
		return nil, err
	}

	totalPoints := h.config.TotalPoints
	if input.TotalPoints > 0 {
		totalPoints = input.TotalPoints
	}

	avg := scoring.ComputeAverageImportance(institutions, h.factors)
	budget, err := scoring.AllocatePoints(avg, h.factors, totalPoints)
	if err != nil {
		return nil, err
	}
	maxScores := scoring.MaxScores(institutions, budget, h.factors)

	metrics.CorpusInstitutions.Set(float64(len(institutions)))

	output := &Output{
		RunID:            uuid.New().String(),
		InstitutionCount: len(institutions),
		AverageWeights:   avg,
		PointBudget:      budget,
		MaxScores:        maxScores,
	}

	h.cacheBudget(ctx, output)

	h.logger.Info("point budget computed", map[string]interface{}{
		"runId":        output.RunID,
		"institutions": output.InstitutionCount,
		"budget":       output.PointBudget,
	})
	return output, nil
}

func (h *Handler) resolveCorpus(ctx context.Context, input *Input) (map[string]*scoring.Record, error) {
	if len(input.Institutions) > 0 {
		institutions := make(map[string]*scoring.Record, len(input.Institutions))
		for key, attrs := range input.Institutions {
			institutions[key] = scoring.NewRecord(key, attrs)
		}
		return institutions, nil
	}

	if h.store == nil {
		return nil, fmt.Errorf("no inline corpus and no corpus store configured")
	}
	institutions, err := h.store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return institutions, nil
}

// cacheBudget stores the latest budget so score workers on other
// process instances can pick it up without recomputing.
func (h *Handler) cacheBudget(ctx context.Context, output *Output) {
	if h.redis == nil {
		return
	}
	payload, err := json.Marshal(output)
	if err != nil {
		return
	}
	if err := h.redis.Set(ctx, budgetCacheKey, payload, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("failed to cache point budget", map[string]interface{}{
			"error": err.Error(),
		})
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

// classifyError maps budget computation errors onto the standardized
// error codes. A corpus with no importance signal cannot succeed on
// retry; everything else is treated as a transient corpus access failure.
func (h *Handler) classifyError(err error) *commonerrors.StandardError {
	if errors.Is(err, scoring.ErrZeroImportanceSignal) {
		return commonerrors.NewZeroImportanceSignalError(err.Error())
	}
	return commonerrors.NewCorpusLoadFailedError(err)
}
