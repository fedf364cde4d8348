// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"shopfloor-workers/internal/assistant/intent"
	"shopfloor-workers/internal/common/config"
	"shopfloor-workers/internal/common/database"
	"shopfloor-workers/internal/common/logger"
	"shopfloor-workers/internal/common/observability"

	// Conversation Workers (5)
	ba "shopfloor-workers/internal/workers/conversation/build-answer"
	crs "shopfloor-workers/internal/workers/conversation/check-response-safety"
	ci "shopfloor-workers/internal/workers/conversation/classify-intent"
	qkb "shopfloor-workers/internal/workers/conversation/query-knowledge-base"
	sr "shopfloor-workers/internal/workers/conversation/sanitize-response"

	// Plant Data Workers (2)
	qms "shopfloor-workers/internal/workers/plant-data/query-machine-status"
	ssd "shopfloor-workers/internal/workers/plant-data/search-sop-documents"

	// Maintenance Workers (2)
	cmt "shopfloor-workers/internal/workers/maintenance/create-maintenance-ticket"
	nse "shopfloor-workers/internal/workers/maintenance/notify-safety-event"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	if cfg.Observability.TracingEnabled {
		tracer, err := observability.NewTracer("worker-manager", cfg.Observability.JaegerEndpoint)
		if err != nil {
			zapLog.Warn("tracing init failed, continuing without traces", zap.Error(err))
		} else {
			defer tracer.Shutdown()
			zapLog.Info("Tracing enabled", zap.String("endpoint", cfg.Observability.JaegerEndpoint))
		}
	}

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Intent Classifier ---
	// Keyword tables are fixed at construction, so one classifier instance is
	// shared by every classify-intent job.
	classifier := intent.NewClassifier(intent.DefaultConfig())
	zapLog.Info("Intent classifier initialized")

	// --- START: Register ALL 9 Workers ---

	// --- 1. Conversation Workers (5) ---
	// Create adapters for workers that declare their own Logger interfaces
	ciLogAdapter := &classifyIntentLoggerAdapter{log}
	qkbLogAdapter := &queryKnowledgeBaseLoggerAdapter{log}

	if cfg.Workers[ci.TaskType].Enabled {
		handler := ci.NewHandler(
			&ci.Config{
				Timeout:  time.Duration(cfg.Workers[ci.TaskType].Timeout) * time.Millisecond,
				CacheTTL: time.Duration(cfg.Assistant.IntentCacheTTL) * time.Millisecond,
			},
			classifier, redis.Client, ciLogAdapter,
		)
		startWorker(zeebeClient, ci.TaskType, cfg.Workers[ci.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[qkb.TaskType].Enabled {
		handler := qkb.NewHandler(
			&qkb.Config{
				Timeout:    time.Duration(cfg.Workers[qkb.TaskType].Timeout) * time.Millisecond,
				CacheTTL:   time.Duration(cfg.Assistant.KnowledgeCacheTTL) * time.Millisecond,
				MaxResults: cfg.Assistant.MaxSearchResults,
				SOPIndex:   cfg.Assistant.SOPIndex,
			},
			pg.DB, esClient.Client, redis.Client, qkbLogAdapter,
		)
		startWorker(zeebeClient, qkb.TaskType, cfg.Workers[qkb.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ba.TaskType].Enabled {
		handler := ba.NewHandler(
			&ba.Config{
				Timeout:  time.Duration(cfg.Workers[ba.TaskType].Timeout) * time.Millisecond,
				CacheTTL: 10 * time.Minute,
			},
			log,
		)
		startWorker(zeebeClient, ba.TaskType, cfg.Workers[ba.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[crs.TaskType].Enabled {
		handler := crs.NewHandler(
			&crs.Config{
				Timeout: time.Duration(cfg.Workers[crs.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, crs.TaskType, cfg.Workers[crs.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sr.TaskType].Enabled {
		handler := sr.NewHandler(
			&sr.Config{
				Timeout:    time.Duration(cfg.Workers[sr.TaskType].Timeout) * time.Millisecond,
				AppVersion: cfg.App.Version,
			},
			log,
		)
		startWorker(zeebeClient, sr.TaskType, cfg.Workers[sr.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Plant Data Workers (2) ---
	if cfg.Workers[qms.TaskType].Enabled {
		handler := qms.NewHandler(
			&qms.Config{
				Timeout:  time.Duration(cfg.Workers[qms.TaskType].Timeout) * time.Millisecond,
				CacheTTL: time.Duration(cfg.Assistant.MachineStatusCacheTTL) * time.Millisecond,
			},
			pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, qms.TaskType, cfg.Workers[qms.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ssd.TaskType].Enabled {
		handler := ssd.NewHandler(
			&ssd.Config{
				Timeout:  time.Duration(cfg.Workers[ssd.TaskType].Timeout) * time.Millisecond,
				SOPIndex: cfg.Assistant.SOPIndex,
			},
			esClient.Client, log,
		)
		startWorker(zeebeClient, ssd.TaskType, cfg.Workers[ssd.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Maintenance Workers (2) ---

	// Create Maintenance Ticket
	if taskType := "create-maintenance-ticket"; cfg.Workers[taskType].Enabled {
		handler, err := cmt.NewHandler(cmt.HandlerOptions{
			AppConfig: cfg,
			Camunda:   nil,
			DB:        pg.DB,
			Logger:    log,
		})
		if err != nil {
			zapLog.Fatal("failed to create create-maintenance-ticket handler", zap.Error(err))
		}
		startWorker(zeebeClient, taskType, cfg.Workers[taskType], handler.Handle, zapLog)
	}

	// Notify Safety Event
	if taskType := "notify-safety-event"; cfg.Workers[taskType].Enabled {
		handler, err := nse.NewHandler(nse.HandlerOptions{
			AppConfig: cfg,
			Camunda:   nil,
			DB:        pg.DB,
			Logger:    log,
		})
		if err != nil {
			zapLog.Fatal("failed to create notify-safety-event handler", zap.Error(err))
		}
		startWorker(zeebeClient, taskType, cfg.Workers[taskType], handler.Handle, zapLog)
	}
	zapLog.Info("All 9 workers registered successfully")

	// --- Health & Metrics Server ---
	managementAddr := fmt.Sprintf(":%d", cfg.Observability.ManagementPort)
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on " + managementAddr)
		if err := http.ListenAndServe(managementAddr, nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_ = shutdownCtx

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// Logger adapters for workers that declare their own Logger interfaces
type classifyIntentLoggerAdapter struct {
	logger.Logger
}

func (a *classifyIntentLoggerAdapter) With(fields map[string]interface{}) ci.Logger {
	return &classifyIntentLoggerAdapter{a.Logger.With(fields)}
}

type queryKnowledgeBaseLoggerAdapter struct {
	logger.Logger
}

func (a *queryKnowledgeBaseLoggerAdapter) With(fields map[string]interface{}) qkb.Logger {
	return &queryKnowledgeBaseLoggerAdapter{a.Logger.With(fields)}
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
