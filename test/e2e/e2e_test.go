// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shopfloor-workers/internal/assistant/intent"
	"shopfloor-workers/internal/common/config"
	"shopfloor-workers/internal/common/database"
	"shopfloor-workers/internal/common/logger"
	"shopfloor-workers/internal/models"

	// Import all worker packages
	buildanswer "shopfloor-workers/internal/workers/conversation/build-answer"
	checkresponsesafety "shopfloor-workers/internal/workers/conversation/check-response-safety"
	classifyintent "shopfloor-workers/internal/workers/conversation/classify-intent"
	queryknowledgebase "shopfloor-workers/internal/workers/conversation/query-knowledge-base"
	sanitizeresponse "shopfloor-workers/internal/workers/conversation/sanitize-response"

	querymachinestatus "shopfloor-workers/internal/workers/plant-data/query-machine-status"
	searchsopdocuments "shopfloor-workers/internal/workers/plant-data/search-sop-documents"

	createmaintenanceticket "shopfloor-workers/internal/workers/maintenance/create-maintenance-ticket"
	notifysafetyevent "shopfloor-workers/internal/workers/maintenance/notify-safety-event"
)

var (
	zeebeClient zbc.Client
	zapLog      *zap.Logger
)

// Logger adapters to bridge logger.Logger to worker-specific Logger interfaces
type classifyIntentLoggerAdapter struct {
	logger.Logger
}

func (a *classifyIntentLoggerAdapter) With(fields map[string]interface{}) classifyintent.Logger {
	return &classifyIntentLoggerAdapter{a.Logger.With(fields)}
}

type queryKnowledgeBaseLoggerAdapter struct {
	logger.Logger
}

func (a *queryKnowledgeBaseLoggerAdapter) With(fields map[string]interface{}) queryknowledgebase.Logger {
	return &queryKnowledgeBaseLoggerAdapter{a.Logger.With(fields)}
}

func TestMain(m *testing.M) {
	// E2E tests need Zeebe, PostgreSQL, Elasticsearch and Redis running locally.
	if os.Getenv("E2E_TESTS") == "" {
		fmt.Println("Skipping E2E tests; set E2E_TESTS=1 to run against local services")
		os.Exit(0)
	}

	var err error

	// Initialize Zeebe client with real connection
	zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         "localhost:26500",
		UsePlaintextConnection: true,
	})
	if err != nil {
		panic(fmt.Sprintf("❌ Failed to connect to Zeebe: %v", err))
	}

	// Initialize logger
	zapLog, _ = zap.NewProduction()

	// Run tests
	code := m.Run()

	// Cleanup
	zeebeClient.Close()
	os.Exit(code)
}

func TestFullE2E(t *testing.T) {
	_, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Load config
	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	t.Log("🚀 Starting FULL E2E Test with real services...")

	// 1. Check all external services are available
	assertAllServicesConnectivity(t, cfg)

	// 2. Create DB tables if needed and insert test data
	createDatabaseTables(t, cfg)

	// 3. Deploy all BPMN files
	deployAllBPMN(t, cfg, zapLog)

	// 4. Test all 9 workers with real execution
	testAllWorkers(t, cfg, zapLog)

	t.Log("✅ ALL TESTS PASSED - Full E2E workflow successful!")
}

func assertAllServicesConnectivity(t *testing.T, cfg *config.Config) {
	t.Log("🔍 Checking service connectivity...")

	// 🔧 FORCE LOCALHOST FOR E2E TESTS
	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.URL = "http://localhost:9200"

	// --- PostgreSQL ---
	db, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "❌ PostgreSQL connection failed")
	assert.NoError(t, db.Ping(context.Background()), "❌ PostgreSQL ping failed")
	db.Close()
	t.Log("✅ PostgreSQL connected")

	// --- Redis ---
	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err, "❌ Redis client creation failed")
	assert.NoError(t, rdb.Ping(context.Background()), "❌ Redis ping failed")
	t.Log("✅ Redis connected")

	// --- Elasticsearch ---
	esURL := cfg.Database.Elasticsearch.GetURL()
	t.Logf("🔗 Elasticsearch URL: %s", esURL)

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{esURL},
	})
	require.NoError(t, err, "❌ Elasticsearch client creation failed")

	res, err := es.Info()
	require.NoError(t, err, "❌ Elasticsearch info request failed")
	assert.False(t, res.IsError(), "❌ Elasticsearch returned error")
	res.Body.Close()
	t.Log("✅ Elasticsearch connected")

	// --- Zeebe ---
	_, err = zeebeClient.NewTopologyCommand().Send(context.Background())
	assert.NoError(t, err, "❌ Zeebe topology request failed")
	t.Log("✅ Zeebe connected")
}

// ==========================
// 2. Database Tables Setup + Test Data
// ==========================
func createDatabaseTables(t *testing.T, cfg *config.Config) {
	t.Log("🔧 Creating database tables and inserting test data...")

	dbClient, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer dbClient.Close()

	db := dbClient.GetDB()

	// Create test tables if they don't exist
	queries := []string{
		`CREATE TABLE IF NOT EXISTS machine_status (
			machine_id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			area VARCHAR(100),
			state VARCHAR(50),
			oee NUMERIC(5,3),
			cycle_time_seconds NUMERIC(8,2),
			output_count INTEGER,
			shift VARCHAR(20),
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS production_summary (
			id SERIAL PRIMARY KEY,
			machine_id VARCHAR(64) NOT NULL,
			shift VARCHAR(20),
			units_produced INTEGER,
			target_units INTEGER,
			oee NUMERIC(5,3),
			avg_cycle_time NUMERIC(8,2),
			recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS downtime_log (
			id SERIAL PRIMARY KEY,
			machine_id VARCHAR(64) NOT NULL,
			reason TEXT,
			started_at TIMESTAMP,
			ended_at TIMESTAMP,
			minutes INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS maintenance_events (
			id SERIAL PRIMARY KEY,
			machine_id VARCHAR(64) NOT NULL,
			event_type VARCHAR(100),
			description TEXT,
			performed_by VARCHAR(100),
			occurred_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS maintenance_tickets (
			ticket_id VARCHAR(64) PRIMARY KEY,
			machine_id VARCHAR(64) NOT NULL,
			issue_description TEXT NOT NULL,
			issue_normalized TEXT NOT NULL,
			priority VARCHAR(20),
			reported_by VARCHAR(100),
			status VARCHAR(20) DEFAULT 'open',
			details JSONB,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS ticket_audit (
			id SERIAL PRIMARY KEY,
			ticket_id VARCHAR(64) NOT NULL,
			action VARCHAR(50),
			actor VARCHAR(100),
			occurred_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS supervisor_contacts (
			id SERIAL PRIMARY KEY,
			area VARCHAR(100) UNIQUE NOT NULL,
			name VARCHAR(255),
			email VARCHAR(255),
			phone VARCHAR(50)
		)`,
		`CREATE TABLE IF NOT EXISTS notification_log (
			id SERIAL PRIMARY KEY,
			notification_id VARCHAR(64) NOT NULL,
			event_type VARCHAR(100),
			area VARCHAR(100),
			machine_id VARCHAR(64),
			channels TEXT,
			sent_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, query := range queries {
		_, err := db.ExecContext(context.Background(), query)
		if err != nil {
			t.Logf("Warning: Failed to create table: %v", err)
		}
	}

	// Insert test data
	testData := []string{
		`INSERT INTO machine_status (machine_id, name, area, state, oee, cycle_time_seconds, output_count, shift)
		 VALUES ('press-12', 'Hydraulic Press 12', 'stamping', 'running', 0.84, 2.1, 1240, 'day')
		 ON CONFLICT (machine_id) DO NOTHING`,
		`INSERT INTO machine_status (machine_id, name, area, state, oee, cycle_time_seconds, output_count, shift)
		 VALUES ('mill-3', 'CNC Mill 3', 'machining', 'idle', 0.61, 4.7, 310, 'day')
		 ON CONFLICT (machine_id) DO NOTHING`,
		`INSERT INTO production_summary (machine_id, shift, units_produced, target_units, oee, avg_cycle_time)
		 VALUES ('press-12', 'day', 1240, 1500, 0.84, 2.1)`,
		`INSERT INTO downtime_log (machine_id, reason, started_at, ended_at, minutes)
		 VALUES ('press-12', 'die change', NOW() - INTERVAL '3 hours', NOW() - INTERVAL '2 hours', 60)`,
		`INSERT INTO maintenance_events (machine_id, event_type, description, performed_by)
		 VALUES ('press-12', 'inspection', 'Quarterly hydraulic inspection', 'm.keller')`,
		`INSERT INTO supervisor_contacts (area, name, email, phone)
		 VALUES ('stamping', 'R. Alvarez', 'r.alvarez@plant.example.com', '+15550100')
		 ON CONFLICT (area) DO NOTHING`,
		`INSERT INTO supervisor_contacts (area, name, email, phone)
		 VALUES ('general', 'Shift Office', 'shift-office@plant.example.com', '')
		 ON CONFLICT (area) DO NOTHING`,
	}

	for _, query := range testData {
		_, err := db.ExecContext(context.Background(), query)
		if err != nil {
			t.Logf("Warning: Failed to insert test data: %v", err)
		}
	}

	t.Log("✅ Database tables created/verified with test data")
}

// ==========================
// 3. Deploy All BPMN Files
// ==========================
func deployAllBPMN(t *testing.T, _ *config.Config, _ *zap.Logger) {
	t.Log("🏗️ Deploying BPMN files...")

	client := zeebeClient

	// Try multiple possible paths for BPMN directory
	possiblePaths := []string{
		"bpmn",
		"../bpmn",
		"../../bpmn",
		"./bpmn",
	}

	var bpmnDir string
	var files []os.DirEntry
	var err error

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			files, err = os.ReadDir(path)
			if err == nil {
				bpmnDir = path
				t.Logf("📁 Found BPMN directory: %s", bpmnDir)
				break
			}
		}
	}

	if bpmnDir == "" {
		t.Log("⚠️ BPMN directory not found in any expected location, skipping deployment")
		return
	}

	require.NoError(t, err, "❌ Cannot read BPMN directory")

	bpmnCount := 0
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(f.Name()), ".bpmn") {
			continue
		}

		path := fmt.Sprintf("%s/%s", bpmnDir, f.Name())
		t.Logf("📄 Deploying BPMN: %s", path)

		_, err := client.NewDeployResourceCommand().AddResourceFile(path).Send(context.Background())
		if err != nil {
			t.Logf("⚠️ Failed to deploy BPMN %s: %v", f.Name(), err)
			// Continue with other files instead of failing
		} else {
			t.Logf("✅ Deployed: %s", f.Name())
			bpmnCount++
		}
	}

	if bpmnCount == 0 {
		t.Log("ℹ️ No BPMN files were successfully deployed")
	} else {
		t.Logf("✅ Successfully deployed %d BPMN files", bpmnCount)
	}
}

// ==========================
// 4. Test All 9 Workers
// ==========================
func testAllWorkers(t *testing.T, cfg *config.Config, log *zap.Logger) {
	t.Log("🧪 Testing all 9 workers with real execution...")

	// Get clients for all services
	dbClient, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer dbClient.Close()

	db := dbClient.GetDB()

	esURL := cfg.Database.Elasticsearch.GetURL()
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{esURL}})
	require.NoError(t, err)

	rdbClient, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	defer rdbClient.Close()

	rdb := rdbClient.GetClient()

	// Worker test cases
	testCases := []struct {
		name   string
		testFn func(*testing.T, *config.Config, *zap.Logger, *sql.DB, *elasticsearch.Client, *redis.Client)
	}{
		{"classify-intent", testClassifyIntent},
		{"query-knowledge-base", testQueryKnowledgeBase},
		{"build-answer", testBuildAnswer},
		{"check-response-safety", testCheckResponseSafety},
		{"sanitize-response", testSanitizeResponse},
		{"query-machine-status", testQueryMachineStatus},
		{"search-sop-documents", testSearchSOPDocuments},
		{"create-maintenance-ticket", testCreateMaintenanceTicket},
		{"notify-safety-event", testNotifySafetyEvent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.testFn(t, cfg, log, db, es, rdb)
		})
	}
}

// ==========================
// Worker Test Functions
// ==========================

func testClassifyIntent(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	logAdapter := &classifyIntentLoggerAdapter{logger.NewZapAdapter(log)}
	classifier := intent.NewClassifier(intent.DefaultConfig())

	handler := classifyintent.NewHandler(&classifyintent.Config{
		Timeout:  10 * time.Second,
		CacheTTL: time.Minute,
	}, classifier, rdb, logAdapter)

	input := &classifyintent.Input{
		Question:  "show me the changeover steps for press 12",
		SessionID: fmt.Sprintf("e2e-%d", time.Now().UnixNano()),
	}
	result, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, "sop_lookup", result.IntentAnalysis.Intent)
	assert.Equal(t, "12", result.Entities["machine_id"])
	assert.False(t, result.ClarificationNeeded)
}

func testQueryKnowledgeBase(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	logAdapter := &queryKnowledgeBaseLoggerAdapter{logger.NewZapAdapter(log)}

	handler := queryknowledgebase.NewHandler(&queryknowledgebase.Config{
		Timeout:    10 * time.Second,
		CacheTTL:   time.Minute,
		MaxResults: 10,
		SOPIndex:   cfg.Assistant.SOPIndex,
	}, db, es, rdb, logAdapter)

	input := &queryknowledgebase.Input{
		Question: "what is the status of press-12",
		IntentAnalysis: models.IntentAnalysis{
			Intent:     "production_status",
			Confidence: 0.9,
		},
		Entities:    map[string]string{"machine_id": "press-12"},
		DataSources: []string{queryknowledgebase.SourceMachineDB, queryknowledgebase.SourceMaintenanceHistory},
	}
	result, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.NotEmpty(t, result.SourcesQueried)
}

func testBuildAnswer(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := buildanswer.NewHandler(&buildanswer.Config{
		Timeout:  10 * time.Second,
		CacheTTL: time.Minute,
	}, logger.NewZapAdapter(log))

	input := &buildanswer.Input{
		Question: "what is the status of press-12",
		IntentAnalysis: models.IntentAnalysis{
			Intent:     "production_status",
			Confidence: 0.9,
		},
		Entities: map[string]string{"machine_id": "press-12"},
		KnowledgeData: map[string]interface{}{
			"machineStatus": []interface{}{
				map[string]interface{}{
					"state":       "running",
					"oee":         0.84,
					"outputCount": float64(1240),
				},
			},
		},
	}
	result, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.NotEmpty(t, result.DraftAnswer)
	assert.Contains(t, result.DraftAnswer, "press-12")
}

func testCheckResponseSafety(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := checkresponsesafety.NewHandler(&checkresponsesafety.Config{
		Timeout: 10 * time.Second,
	}, logger.NewZapAdapter(log))

	input := &checkresponsesafety.Input{
		Question:    "what is the status of press-12",
		DraftAnswer: "Press 12 is running at 84% OEE on the day shift.",
	}
	result, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.True(t, result.Deliverable)
}

func testSanitizeResponse(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := sanitizeresponse.NewHandler(&sanitizeresponse.Config{
		Timeout:    10 * time.Second,
		AppVersion: "1.0.0",
	}, logger.NewZapAdapter(log))

	input := &sanitizeresponse.Input{
		DraftAnswer: "Press 12 is running at 84% OEE on the day shift.",
	}
	result, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.NotEmpty(t, result.FinalResponse)
}

func testQueryMachineStatus(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := querymachinestatus.NewHandler(&querymachinestatus.Config{
		Timeout:  10 * time.Second,
		CacheTTL: 30 * time.Second,
	}, db, rdb, logger.NewZapAdapter(log))

	input := &querymachinestatus.Input{
		QueryType: "machine_status",
		MachineID: "press-12",
	}
	result, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.RowCount)
}

func testSearchSOPDocuments(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := searchsopdocuments.NewHandler(&searchsopdocuments.Config{
		Timeout:  10 * time.Second,
		SOPIndex: "nonexistent",
	}, es, logger.NewZapAdapter(log))

	input := &searchsopdocuments.Input{
		SearchText: "hydraulic press changeover",
		Pagination: searchsopdocuments.Pagination{From: 0, Size: 10},
	}
	_, err := handler.Execute(context.Background(), input)
	assert.Error(t, err)
}

func testCreateMaintenanceTicket(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	workerCfg := config.GetWorkerConfig(cfg, "create-maintenance-ticket")

	handler, err := createmaintenanceticket.NewHandler(createmaintenanceticket.HandlerOptions{
		DB: db,
		CustomConfig: &createmaintenanceticket.Config{
			Enabled:       workerCfg.Enabled,
			MaxJobsActive: workerCfg.MaxJobsActive,
			Timeout:       time.Duration(workerCfg.Timeout) * time.Millisecond,
		},
		Logger: logger.NewZapAdapter(log),
	})
	require.NoError(t, err)

	uniqueID := fmt.Sprintf("%d", time.Now().UnixNano())
	input := &createmaintenanceticket.Input{
		MachineID:        "e2e-machine-" + uniqueID,
		IssueDescription: "Hydraulic leak at the ram seal",
		ReportedBy:       "e2e-test",
	}

	result, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err, "Should create maintenance ticket successfully")
	assert.NotEmpty(t, result.TicketID, "Should generate ticket ID")
	assert.Equal(t, "open", result.Status)
}

func testNotifySafetyEvent(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	workerCfg := config.GetWorkerConfig(cfg, "notify-safety-event")

	handler, err := notifysafetyevent.NewHandler(notifysafetyevent.HandlerOptions{
		DB: db,
		CustomConfig: &notifysafetyevent.Config{
			Enabled:       workerCfg.Enabled,
			MaxJobsActive: workerCfg.MaxJobsActive,
			Timeout:       time.Duration(workerCfg.Timeout) * time.Millisecond,
			EmailEnabled:  false,
			SMSEnabled:    false,
		},
		Logger: logger.NewZapAdapter(log),
	})
	require.NoError(t, err)

	input := &notifysafetyevent.Input{
		EventType: notifysafetyevent.EventConfirmationRequired,
		Area:      "stamping",
		MachineID: "press-12",
	}
	result, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, notifysafetyevent.StatusDisabled, result.Status)
}

// ==========================
// Benchmark Tests
// ==========================
func BenchmarkHandler_ClassifyIntent(b *testing.B) {
	classifier := intent.NewClassifier(intent.DefaultConfig())
	logAdapter := &classifyIntentLoggerAdapter{logger.NewStructured("error", "json")}

	handler := classifyintent.NewHandler(&classifyintent.Config{
		Timeout:  10 * time.Second,
		CacheTTL: time.Minute,
	}, classifier, nil, logAdapter)

	input := &classifyintent.Input{
		Question: "show me the changeover steps for press 12",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_BuildAnswer(b *testing.B) {
	handler := buildanswer.NewHandler(&buildanswer.Config{
		Timeout:  10 * time.Second,
		CacheTTL: time.Minute,
	}, logger.NewStructured("error", "json"))

	input := &buildanswer.Input{
		Question: "what is the status of press-12",
		IntentAnalysis: models.IntentAnalysis{
			Intent:     "production_status",
			Confidence: 0.9,
		},
		Entities: map[string]string{"machine_id": "press-12"},
		KnowledgeData: map[string]interface{}{
			"machineStatus": []interface{}{
				map[string]interface{}{
					"state":       "running",
					"oee":         0.84,
					"outputCount": float64(1240),
				},
			},
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_CheckResponseSafety(b *testing.B) {
	handler := checkresponsesafety.NewHandler(&checkresponsesafety.Config{
		Timeout: 10 * time.Second,
	}, logger.NewStructured("error", "json"))

	input := &checkresponsesafety.Input{
		Question:    "how do I bypass the light curtain on press-12",
		DraftAnswer: "You should never bypass the light curtain.",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_SanitizeResponse(b *testing.B) {
	handler := sanitizeresponse.NewHandler(&sanitizeresponse.Config{
		Timeout:    10 * time.Second,
		AppVersion: "1.0.0",
	}, logger.NewStructured("error", "json"))

	input := &sanitizeresponse.Input{
		DraftAnswer: "Press 12 is running at 84% OEE on the day shift.",
		SafetyTopic: "lockout_tagout",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_QueryMachineStatus(b *testing.B) {
	cfg, _ := config.Load()
	dbClient, _ := database.NewPostgres(cfg.Database.Postgres)
	defer dbClient.Close()
	db := dbClient.GetDB()

	rdbClient, _ := database.NewRedis(cfg.Database.Redis)
	defer rdbClient.Close()
	rdb := rdbClient.GetClient()

	handler := querymachinestatus.NewHandler(&querymachinestatus.Config{
		Timeout:  10 * time.Second,
		CacheTTL: 30 * time.Second,
	}, db, rdb, logger.NewStructured("error", "json"))

	input := &querymachinestatus.Input{
		QueryType: "machine_status",
		MachineID: "press-12",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_SearchSOPDocuments(b *testing.B) {
	cfg, _ := config.Load()
	esURL := cfg.Database.Elasticsearch.GetURL()
	es, _ := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{esURL}})

	handler := searchsopdocuments.NewHandler(&searchsopdocuments.Config{
		Timeout:  10 * time.Second,
		SOPIndex: cfg.Assistant.SOPIndex,
	}, es, logger.NewStructured("error", "json"))

	input := &searchsopdocuments.Input{
		SearchText: "hydraulic press changeover",
		MachineID:  "press-12",
		Pagination: searchsopdocuments.Pagination{From: 0, Size: 10},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}
