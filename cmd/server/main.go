package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel"

	"github.com/Skufu/pcos-risk/internal/assessment"
	"github.com/Skufu/pcos-risk/internal/logging"
)

const serviceName = "pcos-risk"

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Config struct {
	Port         string
	DatabaseURL  string
	EnableDB     bool
	AllowOrigins []string
	MaxBodyBytes int64
}

type routerDeps struct {
	DB           HealthChecker
	Model        *assessment.Model
	Metrics      *assessmentMetrics
	Logger       *slog.Logger
	AllowOrigins []string
	MaxBodyBytes int64
}

func main() {
	_ = godotenv.Load()
	gin.SetMode(getEnv("GIN_MODE", "release"))
	logger := logging.Init(serviceName)

	cfg, err := loadConfig()
	if err != nil {
		logger.Error("config error", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	var db HealthChecker
	if cfg.EnableDB {
		pool, err := connectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		db = pool
	}

	metrics, err := newAssessmentMetrics(otel.Meter("github.com/Skufu/pcos-risk"))
	if err != nil {
		logger.Error("metrics setup failed", "error", err)
		os.Exit(1)
	}

	model := assessment.MustNewModel(assessment.DefaultParameters())
	router := setupRouter(routerDeps{
		DB:           db,
		Model:        model,
		Metrics:      metrics,
		Logger:       logger,
		AllowOrigins: cfg.AllowOrigins,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("server listening", "port", cfg.Port, "modelVersion", model.Version(), "db", cfg.EnableDB)
	waitForShutdown(server, logger)
}

func loadConfig() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		EnableDB:     strings.EqualFold(getEnv("ENABLE_DB", "false"), "true"),
		AllowOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if cfg.EnableDB && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}

	if err := (cors.Config{AllowOrigins: cfg.AllowOrigins}).Validate(); err != nil {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS: %w", err)
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		return nil, fmt.Errorf("MAX_BODY_BYTES must be a positive integer")
	}
	cfg.MaxBodyBytes = maxBody

	return cfg, nil
}

func connectDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

func setupRouter(deps routerDeps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.MaxBodyBytes <= 0 {
		deps.MaxBodyBytes = 1 << 20
	}
	if len(deps.AllowOrigins) == 0 {
		deps.AllowOrigins = []string{"*"}
	}
	registerValidation()

	router := gin.New()
	router.Use(
		requestID(),
		requestLogger(deps.Logger),
		gin.Recovery(),
		limitBodySize(deps.MaxBodyBytes),
		cors.New(cors.Config{
			AllowOrigins:  deps.AllowOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
			ExposeHeaders: []string{requestIDHeader},
			MaxAge:        12 * time.Hour,
		}),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		if deps.DB == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := deps.DB.Ping(ctx); err != nil {
			dbStatus = fmt.Sprintf("unhealthy: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"db":     dbStatus,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"db":     dbStatus,
		})
	})

	api := router.Group("/api")
	api.GET("/model", modelInfoHandler(deps.Model))
	api.POST("/assessments", assessHandler(deps))

	return router
}

func modelInfoHandler(model *assessment.Model) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := model.Parameters()
		weights := make([]gin.H, 0, len(params.Weights))
		for _, w := range params.Weights {
			weights = append(weights, gin.H{"feature": w.Feature, "weight": w.Weight})
		}
		c.JSON(http.StatusOK, gin.H{
			"modelVersion": model.Version(),
			"features":     weights,
			"riskLevels":   assessment.RiskLevels,
		})
	}
}

func assessHandler(deps routerDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload assessmentRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			respondBindError(c, deps, err)
			return
		}

		result, err := deps.Model.Assess(payload.toInput())
		if err != nil {
			var fe *assessment.FieldError
			if errors.As(err, &fe) {
				respondValidation(c, deps, fe.Field, fe.Reason)
				return
			}
			deps.Logger.Error("assessment failed", "error", err, "requestId", c.GetString(requestIDKey))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "assessment_failed"})
			return
		}

		if deps.Metrics != nil {
			deps.Metrics.record(c.Request.Context(), result)
		}
		deps.Logger.Debug("assessment scored",
			"requestId", c.GetString(requestIDKey),
			"riskLevel", result.RiskLevel,
			"riskScore", result.RiskScore,
			"factors", len(result.RiskFactors),
		)
		c.JSON(http.StatusOK, result)
	}
}

func respondValidation(c *gin.Context, deps routerDeps, field, reason string) {
	if deps.Metrics != nil {
		deps.Metrics.reject(c.Request.Context(), field)
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":   "validation_failed",
		"field":   field,
		"message": fmt.Sprintf("%s %s", field, reason),
	})
}

func waitForShutdown(server *http.Server, logger *slog.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(text string) []string {
	out := []string{}
	for _, t := range strings.Split(text, ",") {
		trimmed := strings.TrimSpace(t)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// requestID keeps a caller-supplied UUID or mints a new one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"requestId", c.GetString(requestIDKey),
		)
	}
}
