// internal/workers/plant-data/query-machine-status/handler.go
package querymachinestatus

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"shopfloor-workers/internal/common/logger"
	"shopfloor-workers/internal/models"
	"shopfloor-workers/internal/workers/plant-data/query-machine-status/queries"
)

const (
	TaskType = "query-machine-status"
)

var (
	ErrQueryExecutionFailed = errors.New("QUERY_EXECUTION_FAILED")
	ErrQueryTimeout         = errors.New("QUERY_TIMEOUT")
	ErrInvalidQueryType     = errors.New("INVALID_QUERY_TYPE")
)

type Handler struct {
	config      *Config
	db          *sql.DB
	redisClient *redis.Client
	logger      logger.Logger
}

func NewHandler(config *Config, db *sql.DB, redisClient *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config:      config,
		db:          db,
		redisClient: redisClient,
		logger:      log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "QUERY_EXECUTION_FAILED"
		retries := int32(0)
		if errors.Is(err, ErrQueryTimeout) {
			errorCode = "QUERY_TIMEOUT"
			retries = 2
		} else if errors.Is(err, ErrInvalidQueryType) {
			errorCode = "INVALID_QUERY_TYPE"
			retries = 0
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	queryType := models.QueryType(input.QueryType)
	if _, exists := queries.Registry[queryType]; !exists {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQueryType, input.QueryType)
	}

	// Single-machine status lookups are the hot path; serve them from the
	// short-TTL cache when possible.
	if queryType == models.QueryTypeMachineStatus && input.MachineID != "" && h.redisClient != nil {
		if cached, ok := h.cachedMachineStatus(ctx, input.MachineID); ok {
			return cached, nil
		}
	}

	params := make(map[string]interface{})
	if input.MachineID != "" {
		params["machineId"] = input.MachineID
	}
	if input.Shift != "" {
		params["shift"] = input.Shift
	}
	if input.Limit > 0 {
		params["limit"] = input.Limit
	}

	data, rowCount, execTime, err := queries.Execute(ctx, h.db, queryType, params)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrQueryTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrQueryExecutionFailed, err)
	}

	output := &Output{
		Data:               data,
		RowCount:           rowCount,
		QueryExecutionTime: execTime,
	}

	if queryType == models.QueryTypeMachineStatus && input.MachineID != "" && h.redisClient != nil {
		h.cacheMachineStatus(ctx, input.MachineID, output)
	}

	return output, nil
}

func (h *Handler) cachedMachineStatus(ctx context.Context, machineID string) (*Output, bool) {
	val, err := h.redisClient.Get(ctx, machineStatusCacheKey(machineID)).Result()
	if err != nil {
		return nil, false
	}

	var cached Output
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, false
	}
	return &cached, true
}

func (h *Handler) cacheMachineStatus(ctx context.Context, machineID string, output *Output) {
	data, err := json.Marshal(output)
	if err != nil {
		return
	}
	h.redisClient.Set(ctx, machineStatusCacheKey(machineID), data, h.config.CacheTTL)
}

func machineStatusCacheKey(machineID string) string {
	return "plant:machine-status:" + machineID
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
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

// failJob retries transient failures through Zeebe's retry counter and
// escalates everything else as a BPMN error.
func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
	})

	if retries > 0 {
		_, err := client.NewFailJobCommand().
			JobKey(job.Key).
			Retries(retries).
			ErrorMessage(errorCode + ": " + errorMessage).
			Send(context.Background())
		if err != nil {
			h.logger.Error("failed to fail job", map[string]interface{}{
				"error": err,
			})
		}
		return
	}

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
