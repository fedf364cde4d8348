// internal/workers/conversation/query-knowledge-base/handler.go
package queryknowledgebase

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "query-knowledge-base"
)

var (
	ErrKnowledgeQueryFailed = errors.New("KNOWLEDGE_QUERY_FAILED")
)

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	With(fields map[string]interface{}) Logger
}

type Handler struct {
	config      *Config
	db          *sql.DB
	esClient    *elasticsearch.Client
	redisClient *redis.Client
	logger      Logger
}

func NewHandler(config *Config, db *sql.DB, esClient *elasticsearch.Client, redisClient *redis.Client, log Logger) *Handler {
	return &Handler{
		config:      config,
		db:          db,
		esClient:    esClient,
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
		retries := int32(0)
		if strings.Contains(err.Error(), "postgres") || strings.Contains(err.Error(), "elasticsearch") {
			retries = 2
		}
		h.failJob(client, job, "KNOWLEDGE_QUERY_FAILED", err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	cacheKey := h.buildCacheKey(input.IntentAnalysis.Intent, input.Entities)
	if h.redisClient != nil {
		if val, err := h.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var cached Output
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	machineID := input.Entities["machine_id"]

	var wg sync.WaitGroup
	var mu sync.Mutex
	results := make(map[string]interface{})
	errChan := make(chan error, 3)

	merge := func(data map[string]interface{}) {
		mu.Lock()
		for k, v := range data {
			results[k] = v
		}
		mu.Unlock()
	}

	if h.shouldQuery(input.DataSources, SourceMachineDB) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := h.queryMachineDB(ctx, machineID)
			if err != nil {
				errChan <- fmt.Errorf("postgres: %w", err)
				return
			}
			merge(data)
		}()
	}

	if h.shouldQuery(input.DataSources, SourceMaintenanceHistory) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := h.queryMaintenanceHistory(ctx, machineID)
			if err != nil {
				errChan <- fmt.Errorf("postgres: %w", err)
				return
			}
			merge(data)
		}()
	}

	if h.shouldQuery(input.DataSources, SourceDocumentIndex) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := h.queryDocumentIndex(ctx, input.Question, machineID)
			if err != nil {
				errChan <- fmt.Errorf("elasticsearch: %w", err)
				return
			}
			merge(data)
		}()
	}

	go func() {
		wg.Wait()
		close(errChan)
	}()

	for err := range errChan {
		return nil, fmt.Errorf("%w: %v", ErrKnowledgeQueryFailed, err)
	}

	output := &Output{
		KnowledgeData:  results,
		SourcesQueried: h.sourcesQueried(input.DataSources),
	}

	if h.redisClient != nil && len(results) > 0 {
		if data, err := json.Marshal(output); err == nil {
			h.redisClient.Set(ctx, cacheKey, data, h.config.CacheTTL)
		}
	}

	h.logger.Info("knowledge base queried", map[string]interface{}{
		"intent":         input.IntentAnalysis.Intent,
		"sourcesQueried": output.SourcesQueried,
		"resultKeys":     len(results),
	})

	return output, nil
}

func (h *Handler) buildCacheKey(intentName string, entityMap map[string]string) string {
	keys := make([]string, 0, len(entityMap))
	for k := range entityMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	parts = append(parts, intentName)
	for _, k := range keys {
		parts = append(parts, k+":"+entityMap[k])
	}
	return "assistant:knowledge:" + strings.Join(parts, "|")
}

func (h *Handler) shouldQuery(dataSources []string, source string) bool {
	for _, s := range dataSources {
		if s == source {
			return true
		}
	}
	return false
}

// sourcesQueried reports the requested sources in a fixed order so the
// output is deterministic regardless of input ordering.
func (h *Handler) sourcesQueried(dataSources []string) []string {
	queried := []string{}
	for _, source := range []string{SourceMachineDB, SourceMaintenanceHistory, SourceDocumentIndex} {
		if h.shouldQuery(dataSources, source) {
			queried = append(queried, source)
		}
	}
	return queried
}

func (h *Handler) queryMachineDB(ctx context.Context, machineID string) (map[string]interface{}, error) {
	results := make(map[string]interface{})

	var rows *sql.Rows
	var err error
	if machineID != "" {
		rows, err = h.db.QueryContext(ctx, `
			SELECT machine_id, name, area, state, oee, cycle_time_seconds, output_count, shift, updated_at
			FROM machine_status
			WHERE machine_id = $1`, machineID)
	} else {
		rows, err = h.db.QueryContext(ctx, `
			SELECT machine_id, name, area, state, oee, cycle_time_seconds, output_count, shift, updated_at
			FROM machine_status
			ORDER BY machine_id
			LIMIT $1`, h.config.MaxResults)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []map[string]interface{}
	for rows.Next() {
		var id, name, area, state, shift, updatedAt string
		var oee, cycleTime float64
		var outputCount int
		if err := rows.Scan(&id, &name, &area, &state, &oee, &cycleTime, &outputCount, &shift, &updatedAt); err != nil {
			return nil, err
		}
		statuses = append(statuses, map[string]interface{}{
			"machineId":        id,
			"name":             name,
			"area":             area,
			"state":            state,
			"oee":              oee,
			"cycleTimeSeconds": cycleTime,
			"outputCount":      outputCount,
			"shift":            shift,
			"updatedAt":        updatedAt,
		})
	}
	results["machineStatus"] = statuses

	summaries, err := h.queryProductionSummary(ctx, machineID)
	if err != nil {
		return nil, err
	}
	results["productionSummary"] = summaries

	return results, nil
}

func (h *Handler) queryProductionSummary(ctx context.Context, machineID string) ([]map[string]interface{}, error) {
	var rows *sql.Rows
	var err error
	if machineID != "" {
		rows, err = h.db.QueryContext(ctx, `
			SELECT machine_id, shift, units_produced, target_units, oee, avg_cycle_time, recorded_at
			FROM production_summary
			WHERE machine_id = $1
			ORDER BY recorded_at DESC
			LIMIT $2`, machineID, h.config.MaxResults)
	} else {
		rows, err = h.db.QueryContext(ctx, `
			SELECT machine_id, shift, units_produced, target_units, oee, avg_cycle_time, recorded_at
			FROM production_summary
			ORDER BY recorded_at DESC
			LIMIT $1`, h.config.MaxResults)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []map[string]interface{}
	for rows.Next() {
		var id, shift, recordedAt string
		var unitsProduced, targetUnits int
		var oee, avgCycleTime float64
		if err := rows.Scan(&id, &shift, &unitsProduced, &targetUnits, &oee, &avgCycleTime, &recordedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, map[string]interface{}{
			"machineId":     id,
			"shift":         shift,
			"unitsProduced": unitsProduced,
			"targetUnits":   targetUnits,
			"oee":           oee,
			"avgCycleTime":  avgCycleTime,
			"recordedAt":    recordedAt,
		})
	}
	return summaries, nil
}

func (h *Handler) queryMaintenanceHistory(ctx context.Context, machineID string) (map[string]interface{}, error) {
	var rows *sql.Rows
	var err error
	if machineID != "" {
		rows, err = h.db.QueryContext(ctx, `
			SELECT machine_id, event_type, description, performed_by, occurred_at
			FROM maintenance_events
			WHERE machine_id = $1
			ORDER BY occurred_at DESC
			LIMIT $2`, machineID, h.config.MaxResults)
	} else {
		rows, err = h.db.QueryContext(ctx, `
			SELECT machine_id, event_type, description, performed_by, occurred_at
			FROM maintenance_events
			ORDER BY occurred_at DESC
			LIMIT $1`, h.config.MaxResults)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []map[string]interface{}
	for rows.Next() {
		var id, eventType, description, performedBy, occurredAt string
		if err := rows.Scan(&id, &eventType, &description, &performedBy, &occurredAt); err != nil {
			return nil, err
		}
		events = append(events, map[string]interface{}{
			"machineId":   id,
			"eventType":   eventType,
			"description": description,
			"performedBy": performedBy,
			"occurredAt":  occurredAt,
		})
	}

	return map[string]interface{}{"maintenanceHistory": events}, nil
}

func (h *Handler) queryDocumentIndex(ctx context.Context, question, machineID string) (map[string]interface{}, error) {
	var mustClauses []interface{}
	if question != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  question,
				"fields": []string{"title^3", "body^2", "tags"},
			},
		})
	} else {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery := map[string]interface{}{"must": mustClauses}
	if machineID != "" {
		boolQuery["filter"] = []interface{}{
			map[string]interface{}{
				"term": map[string]interface{}{"machine_types": machineID},
			},
		}
	}

	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": boolQuery,
		},
		"size": h.config.MaxResults,
	}

	body, _ := json.Marshal(queryBody)
	req := esapi.SearchRequest{
		Index: []string{h.config.SOPIndex},
		Body:  strings.NewReader(string(body)),
	}

	res, err := req.Do(ctx, h.esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search failed: %s", res.String())
	}

	var r map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	hitsWrapper, ok := r["hits"].(map[string]interface{})
	if !ok {
		return map[string]interface{}{"documents": []interface{}{}}, nil
	}
	hits, ok := hitsWrapper["hits"].([]interface{})
	if !ok {
		return map[string]interface{}{"documents": []interface{}{}}, nil
	}

	var documents []map[string]interface{}
	for _, hit := range hits {
		if hm, ok := hit.(map[string]interface{}); ok {
			if source, ok := hm["_source"].(map[string]interface{}); ok {
				documents = append(documents, source)
			}
		}
	}

	return map[string]interface{}{"documents": documents}, nil
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
		"retries":      retries,
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
