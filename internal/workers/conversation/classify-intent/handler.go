// internal/workers/conversation/classify-intent/handler.go
package classifyintent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"

	"shopfloor-workers/internal/assistant/intent"
	"shopfloor-workers/internal/common/metrics"
	"shopfloor-workers/internal/models"
)

const (
	TaskType = "classify-intent"
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

// safetyTopicHints maps question keywords to the disclaimer topic the
// sanitize step uses later. Checked in order; first match wins.
var safetyTopicHints = []struct {
	keyword string
	topic   string
}{
	{"lockout", "lockout_tagout"},
	{"tagout", "lockout_tagout"},
	{"guard", "guards"},
	{"ppe", "ppe"},
	{"protective", "ppe"},
	{"emergency", "emergency"},
}

type Handler struct {
	config      *Config
	classifier  *intent.Classifier
	redisClient *redis.Client
	logger      Logger
}

func NewHandler(config *Config, classifier *intent.Classifier, redisClient *redis.Client, log Logger) *Handler {
	return &Handler{
		config:      config,
		classifier:  classifier,
		redisClient: redisClient,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	cacheKey := h.buildCacheKey(input.Question)
	if h.redisClient != nil {
		if val, err := h.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var cached Output
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	result := h.classifier.Classify(input.Question)

	output := &Output{
		IntentAnalysis: models.IntentAnalysis{
			Intent:     string(result.Intent),
			Confidence: result.Confidence,
		},
		Entities:              result.Entities,
		ClarificationNeeded:   result.ClarificationNeeded,
		ClarificationQuestion: result.ClarificationQuestion,
		DataSources:           h.determineDataSources(result.Intent),
		SafetyTopic:           h.determineSafetyTopic(input.Question),
	}

	if result.ClarificationNeeded {
		metrics.Clarifications.WithLabelValues(string(result.Intent)).Inc()
	}

	if h.redisClient != nil {
		if data, err := json.Marshal(output); err == nil {
			h.redisClient.Set(ctx, cacheKey, data, h.config.CacheTTL)
		}
	}

	h.logger.Info("intent classified", map[string]interface{}{
		"intent":              result.Intent,
		"confidence":          result.Confidence,
		"entityCount":         len(result.Entities),
		"clarificationNeeded": result.ClarificationNeeded,
		"dataSources":         output.DataSources,
	})

	return output, nil
}

func (h *Handler) buildCacheKey(question string) string {
	return "assistant:intent:" + strings.ToLower(strings.TrimSpace(question))
}

// determineDataSources tells the knowledge worker which backends matter for
// the winning intent. Unlisted intents query nothing.
func (h *Handler) determineDataSources(in intent.Intent) []string {
	switch in {
	case intent.IntentProductionStatus:
		return []string{SourceMachineDB}
	case intent.IntentSOPLookup, intent.IntentTraining:
		return []string{SourceDocumentIndex}
	case intent.IntentMaintenanceRequest:
		return []string{SourceMachineDB, SourceMaintenanceHistory}
	case intent.IntentQualityCheck:
		return []string{SourceMachineDB, SourceDocumentIndex}
	case intent.IntentSafetyQuery:
		return []string{SourceDocumentIndex}
	}
	return []string{}
}

func (h *Handler) determineSafetyTopic(question string) string {
	normalized := strings.ToLower(question)
	for _, hint := range safetyTopicHints {
		if strings.Contains(normalized, hint.keyword) {
			return hint.topic
		}
	}
	return ""
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, _ = client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(errorCode + ": " + errorMessage).
		Send(context.Background())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
