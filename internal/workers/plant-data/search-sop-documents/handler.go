package searchsopdocuments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"

	"shopfloor-workers/internal/common/logger"
	"shopfloor-workers/internal/workers/plant-data/search-sop-documents/queries"
)

const (
	TaskType = "search-sop-documents"
)

var (
	ErrSearchExecutionFailed = errors.New("SEARCH_EXECUTION_FAILED")
	ErrInvalidSearchRequest  = errors.New("INVALID_SEARCH_REQUEST")
)

type Handler struct {
	config *Config
	client *elasticsearch.Client
	logger logger.Logger
}

func NewHandler(config *Config, client *elasticsearch.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		client: client,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		errorCode := h.mapErrorToCode(err)
		retries := h.getRetryCount(err)
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	spec := queries.SearchSpec{
		Index:      h.config.SOPIndex,
		SearchText: input.SearchText,
		MachineID:  input.MachineID,
		Category:   input.Category,
	}
	spec.Pagination.From = input.Pagination.From
	spec.Pagination.Size = input.Pagination.Size

	result, err := queries.Execute(ctx, h.client, spec)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: search timed out", ErrSearchExecutionFailed)
		}
		if errors.Is(err, queries.ErrEmptySearch) || errors.Is(err, queries.ErrMissingIndex) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSearchRequest, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrSearchExecutionFailed, err)
	}

	h.logger.Info("search completed", map[string]interface{}{
		"totalHits": result.TotalHits,
		"returned":  len(result.Documents),
		"tookMs":    result.Took,
	})

	return &Output{
		Documents:           result.Documents,
		TotalHits:           result.TotalHits,
		SearchExecutionTime: result.Took,
	}, nil
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

func (h *Handler) mapErrorToCode(err error) string {
	if errors.Is(err, ErrInvalidSearchRequest) {
		return "INVALID_SEARCH_REQUEST"
	} else if errors.Is(err, ErrSearchExecutionFailed) {
		return "SEARCH_EXECUTION_FAILED"
	}
	return "UNKNOWN_ERROR"
}

func (h *Handler) getRetryCount(err error) int32 {
	if errors.Is(err, ErrSearchExecutionFailed) {
		return 2
	}
	return 0
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
