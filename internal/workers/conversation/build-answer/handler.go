// internal/workers/conversation/build-answer/handler.go
package buildanswer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"shopfloor-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const TaskType = "build-answer"

var (
	ErrResponseBuildFailed    = errors.New("RESPONSE_BUILD_FAILED")
	ErrSchemaValidationFailed = errors.New("SCHEMA_VALIDATION_FAILED")
)

// outputSchema is the gate every composed draft passes before the job
// completes.
var outputSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"draftAnswer", "answerSource"},
	"properties": map[string]interface{}{
		"draftAnswer": map[string]interface{}{
			"type":      "string",
			"minLength": 1,
		},
		"answerSource": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{AnswerSourceClarification, AnswerSourceKnowledge, AnswerSourceFallback},
		},
		"templateId": map[string]interface{}{
			"type": "string",
		},
	},
}

type templateCacheEntry struct {
	template *AnswerTemplate
	loadedAt time.Time
}

type Handler struct {
	config *Config
	logger logger.Logger
	cache  map[string]*templateCacheEntry
	mu     sync.RWMutex
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		cache:  make(map[string]*templateCacheEntry),
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
		errorCode := "RESPONSE_BUILD_FAILED"
		if errors.Is(err, ErrSchemaValidationFailed) {
			errorCode = "SCHEMA_VALIDATION_FAILED"
		}
		h.failJob(client, job, errorCode, err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	draft, source, templateID := h.composeDraft(input)

	draft = strings.TrimSpace(draft)
	if draft == "" {
		return nil, fmt.Errorf("%w: empty draft for intent %s", ErrResponseBuildFailed, input.IntentAnalysis.Intent)
	}

	output := &Output{
		DraftAnswer:  draft,
		AnswerSource: source,
		TemplateID:   templateID,
	}

	if err := h.validateOutput(output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidationFailed, err)
	}

	h.logger.Info("draft answer composed", map[string]interface{}{
		"intent":       input.IntentAnalysis.Intent,
		"answerSource": source,
		"templateId":   templateID,
	})

	return output, nil
}

func (h *Handler) composeDraft(input *Input) (string, string, string) {
	if input.ClarificationNeeded {
		question := input.ClarificationQuestion
		if question == "" {
			question = "Could you share more detail about what you need?"
		}
		return question, AnswerSourceClarification, ""
	}

	tmpl, ok := h.loadTemplate(input.IntentAnalysis.Intent)
	if !ok {
		return "I'm not sure how to answer that yet. Try asking about machine status, procedures, maintenance, quality, or safety.",
			AnswerSourceFallback, ""
	}

	data := h.buildTemplateData(input)
	return renderTemplate(tmpl.Template, data), AnswerSourceKnowledge, tmpl.ID
}

func (h *Handler) loadTemplate(intentName string) (*AnswerTemplate, bool) {
	h.mu.RLock()
	if entry, ok := h.cache[intentName]; ok && time.Since(entry.loadedAt) < h.config.CacheTTL {
		h.mu.RUnlock()
		return entry.template, true
	}
	h.mu.RUnlock()

	tmpl, ok := answerTemplates()[intentName]
	if !ok {
		return nil, false
	}

	h.mu.Lock()
	h.cache[intentName] = &templateCacheEntry{
		template: tmpl,
		loadedAt: time.Now(),
	}
	h.mu.Unlock()
	return tmpl, true
}

func (h *Handler) buildTemplateData(input *Input) map[string]interface{} {
	data := map[string]interface{}{
		"question": input.Question,
		"intent":   input.IntentAnalysis.Intent,
	}
	for k, v := range input.Entities {
		data[k] = v
	}
	flattenKnowledge("", input.KnowledgeData, data)
	return data
}

// flattenKnowledge exposes nested knowledge data under dot paths. Arrays
// contribute a "<key>.count" entry and the fields of their first element,
// which is the row templates care about.
func flattenKnowledge(prefix string, value interface{}, out map[string]interface{}) {
	switch v := value.(type) {
	case map[string]interface{}:
		for k, child := range v {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flattenKnowledge(key, child, out)
		}
	case []interface{}:
		out[prefix+".count"] = len(v)
		if len(v) > 0 {
			flattenKnowledge(prefix, v[0], out)
		}
	default:
		if prefix != "" {
			out[prefix] = v
		}
	}
}

// Simplified template rendering with placeholder removal for missing values
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl

	for k, v := range data {
		placeholder := "{{" + k + "}}"
		value := ""
		if s, ok := v.(string); ok {
			value = s
		} else if i, ok := v.(int); ok {
			value = fmt.Sprintf("%d", i)
		} else if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, placeholder, value)
	}

	// Remove any remaining placeholders (missing values)
	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		end += start + 2
		result = result[:start] + result[end:]
	}

	return result
}

func (h *Handler) validateOutput(output *Output) error {
	schemaLoader := gojsonschema.NewGoLoader(outputSchema)
	documentLoader := gojsonschema.NewGoLoader(output)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("draft validation failed: %v", errs)
	}

	return nil
}

func answerTemplates() map[string]*AnswerTemplate {
	return map[string]*AnswerTemplate{
		"production_status": {
			ID:       "production-status-v1",
			Template: "Machine {{machine_id}} is {{machineStatus.state}} with an OEE of {{machineStatus.oee}}. Output this shift: {{machineStatus.outputCount}} units.",
		},
		"sop_lookup": {
			ID:       "sop-lookup-v1",
			Template: "Here is the closest matching procedure: {{documents.title}}. {{documents.body}}",
		},
		"maintenance_request": {
			ID:       "maintenance-request-v1",
			Template: "Noted the issue with machine {{machine_id}}. Most recent service on record: {{maintenanceHistory.description}} ({{maintenanceHistory.occurredAt}}).",
		},
		"quality_check": {
			ID:       "quality-check-v1",
			Template: "Quality data for machine {{machine_id}}: current OEE {{machineStatus.oee}}. Reference document: {{documents.title}}.",
		},
		"safety_query": {
			ID:       "safety-query-v1",
			Template: "Safety reference: {{documents.title}}. {{documents.body}}",
		},
		"training": {
			ID:       "training-v1",
			Template: "Training material found: {{documents.title}}. {{documents.body}}",
		},
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
