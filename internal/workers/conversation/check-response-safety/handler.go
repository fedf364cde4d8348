// internal/workers/conversation/check-response-safety/handler.go
package checkresponsesafety

import (
	"context"
	"encoding/json"
	"fmt"

	"shopfloor-workers/internal/assistant/safety"
	"shopfloor-workers/internal/common/logger"
	"shopfloor-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "check-response-safety"
)

type Handler struct {
	config     *Config
	guardrails *safety.Guardrails
	logger     logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})

	guardrails := safety.NewGuardrails(safety.DefaultConfig(), func(reason string) {
		scoped.Warn("response blocked", map[string]interface{}{
			"blocked": true,
			"reason":  reason,
		})
		metrics.SafetyBlocks.WithLabelValues(string(safety.LevelForbidden)).Inc()
	})

	return &Handler{
		config:     config,
		guardrails: guardrails,
		logger:     scoped,
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
		h.failJob(client, job, "PARSE_ERROR", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	level, explanation := h.guardrails.CheckSafety(input.Question, input.DraftAnswer)

	if level == safety.LevelRequiresConfirmation {
		metrics.SafetyBlocks.WithLabelValues(string(level)).Inc()
	}

	output := &Output{
		SafetyLevel:       string(level),
		SafetyExplanation: explanation,
		Deliverable:       level == safety.LevelAllowed,
	}

	h.logger.Info("safety check completed", map[string]interface{}{
		"safetyLevel": output.SafetyLevel,
		"deliverable": output.Deliverable,
	})

	return output, nil
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

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

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
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
