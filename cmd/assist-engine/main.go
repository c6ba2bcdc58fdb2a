// cmd/assist-engine/main.go
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

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bumperr/gPBL-G8/internal/audit"
	awsclients "github.com/bumperr/gPBL-G8/internal/common/aws"
	"github.com/bumperr/gPBL-G8/internal/common/config"
	"github.com/bumperr/gPBL-G8/internal/common/database"
	"github.com/bumperr/gPBL-G8/internal/common/errors"
	"github.com/bumperr/gPBL-G8/internal/common/logger"
	"github.com/bumperr/gPBL-G8/internal/common/observability"
	"github.com/bumperr/gPBL-G8/internal/engine"
	"github.com/bumperr/gPBL-G8/internal/engine/classifier"
	"github.com/bumperr/gPBL-G8/internal/engine/matcher"
	"github.com/bumperr/gPBL-G8/internal/engine/params"
	"github.com/bumperr/gPBL-G8/internal/models"
	"github.com/bumperr/gPBL-G8/internal/notify"
	"github.com/bumperr/gPBL-G8/internal/store"
	"github.com/bumperr/gPBL-G8/internal/transport"
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

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting assist engine...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(errors.NewDatabaseConnectionFailedError(err)))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis (transport degrades to simulation if this stays down) ---
	rdb, err := database.NewRedis(cfg.Database.Redis)
	if err != nil {
		zapLog.Fatal("redis client init failed", zap.Error(err))
	}
	defer rdb.Close()

	// --- Init Elasticsearch (audit is best effort, a dead cluster is not fatal) ---
	var esClient *database.ElasticsearchClient
	if cfg.Engine.AuditEnabled {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 3, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Warn("elasticsearch unavailable, audit disabled", zap.Error(err))
			esClient = nil
		} else {
			zapLog.Info("Elasticsearch connected successfully")
		}
	}

	// --- Init AWS clients for caregiver notifications ---
	var smsClient notify.SMSSender
	var emailClient notify.EmailSender
	if cfg.Notifications.SMS.Enabled {
		c, err := awsclients.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Warn("sns client init failed, sms disabled", zap.Error(err))
		} else {
			smsClient = c
		}
	}
	if cfg.Notifications.Email.Enabled {
		c, err := awsclients.NewSESClient(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Warn("ses client init failed, email disabled", zap.Error(err))
		} else {
			emailClient = c
		}
	}

	// --- Wire the engine ---
	st := store.New(pg.DB, log)
	cache := transport.NewStateCache()
	client := transport.NewClient(cfg.Transport, rdb, cache, log)
	if err := client.Connect(ctx); err != nil {
		zapLog.Fatal("transport connect failed", zap.Error(err))
	}
	defer client.Disconnect()

	recorder := audit.NewRecorder(esClient, cfg.Engine.AuditIndex, cfg.Engine.AuditEnabled && esClient != nil, log)
	notifier := notify.New(cfg.Notifications, cfg.Transport.AlertTopic, smsClient, emailClient, client, log)

	eng := engine.New(
		st,
		classifier.New(&classifier.Config{
			MinConfidence: cfg.Engine.MinConfidence,
			ScoreDivisor:  cfg.Engine.ScoreDivisor,
		}, st, log),
		matcher.New(st, log),
		params.New(log),
		client,
		recorder,
		notifier,
		obs,
		log,
	)

	zapLog.Info("Engine wired", zap.String("transport", client.GetState().String()))

	// --- HTTP API + Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "healthy",
			"transport": client.GetState().String(),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/resolve", handleResolve(eng, log))
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.Snapshot())
	})

	srv := &http.Server{
		Addr:    cfg.App.ListenAddr,
		Handler: mux,
	}
	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", cfg.App.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Assist engine stopped")
}

type resolveRequest struct {
	Text   string                `json:"text"`
	Caller *models.CallerContext `json:"caller,omitempty"`
}

func handleResolve(eng *engine.Engine, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req resolveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
			http.Error(w, "body must be JSON with a non-empty text field", http.StatusBadRequest)
			return
		}

		res, err := eng.ResolveAndDispatch(r.Context(), req.Text, req.Caller)
		if err != nil {
			log.WithError(err).Error("resolution failed", map[string]interface{}{
				"text": req.Text,
			})
			http.Error(w, "resolution failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res)
	}
}
