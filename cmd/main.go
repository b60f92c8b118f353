package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/prometheus/client_golang/prometheus"

	"sneaker-fulfillment/handler"
	"sneaker-fulfillment/internal/integrations/paramstore"
	"sneaker-fulfillment/internal/integrations/sneakerdb"
	"sneaker-fulfillment/internal/metrics"
	"sneaker-fulfillment/internal/usecase"
)

const apiKeyParam = "sneaker-api-key"

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	port := envInt("PORT", 5000)
	logLevel := os.Getenv("LOG_LEVEL")
	staticKey := strings.TrimSpace(os.Getenv("SNEAKER_API_KEY"))
	paramPrefix := os.Getenv("PARAM_PREFIX")
	baseURL := envString("SNEAKER_API_BASE_URL", sneakerdb.DefaultBaseURL)
	apiHost := envString("SNEAKER_API_HOST", sneakerdb.DefaultHost)
	lookupTimeout := time.Duration(envInt("LOOKUP_TIMEOUT_SECONDS", 10)) * time.Second
	lambdaMode := os.Getenv("AWS_LAMBDA_RUNTIME_API") != ""

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(logLevel)}))
	slog.SetDefault(log)

	// ---- API key source ----
	keyName := paramstore.Name(paramPrefix, apiKeyParam)
	var keys paramstore.Getter
	if staticKey != "" {
		keys = paramstore.Static{keyName: staticKey}
	} else {
		if strings.TrimSpace(paramPrefix) == "" {
			log.Error("either SNEAKER_API_KEY or PARAM_PREFIX must be set")
			os.Exit(1)
		}
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			log.Error("failed to load AWS config", "err", err)
			os.Exit(1)
		}
		ssmClient, err := paramstore.New(awsssm.NewFromConfig(cfg))
		if err != nil {
			log.Error("failed to create SSM client", "err", err)
			os.Exit(1)
		}
		keys = ssmClient
	}

	// ---- Clients ----
	// Metrics are exported only by the HTTP server; in Lambda mode m stays nil.
	var (
		registry *prometheus.Registry
		m        *metrics.Metrics
	)
	if !lambdaMode {
		registry = prometheus.NewRegistry()
		m = metrics.New(registry)
	}

	lookup, err := sneakerdb.NewClient(keys, keyName,
		sneakerdb.WithBaseURL(baseURL),
		sneakerdb.WithHost(apiHost),
		sneakerdb.WithHTTPClient(&http.Client{Timeout: lookupTimeout}),
		sneakerdb.WithLogger(log),
		sneakerdb.WithMetrics(m),
	)
	if err != nil {
		log.Error("failed to create product lookup client", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	svc, err := usecase.NewFulfillmentService(lookup)
	if err != nil {
		log.Error("failed to create fulfillment service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(svc, handler.WithLogger(log), handler.WithMetrics(m))
	if err != nil {
		log.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	if lambdaMode {
		lambda.Start(h.Handle)
		return
	}

	if err := serve(log, net.JoinHostPort("0.0.0.0", strconv.Itoa(port)), handler.NewRouter(h, registry)); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func serve(log *slog.Logger, addr string, routes http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           routes,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-done:
		log.Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
