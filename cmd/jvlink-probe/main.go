// Command jvlink-probe is a smoke-test and demo binary for the Session
// Orchestrator: it opens a session against either the native JV-Link
// backend (Windows) or the in-memory Stub (every other platform),
// streams a bounded range of records, and serves Prometheus metrics
// while it runs. Grounded on the teacher's cmd/dittofs/main.go: a flag
// set per run mode, package-level logger/telemetry bootstrap, and a
// signal-driven graceful shutdown.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cariandrum22/Xanthos-sub000/internal/logger"
	"github.com/cariandrum22/Xanthos-sub000/internal/metrics"
	"github.com/cariandrum22/Xanthos-sub000/pkg/config"
	"github.com/cariandrum22/Xanthos-sub000/pkg/dispatcher"
	"github.com/cariandrum22/Xanthos-sub000/pkg/session"
	"github.com/cariandrum22/Xanthos-sub000/pkg/telemetry"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	sid := flag.String("sid", "", "calling application ID registered with the native component (required)")
	dataSpec := flag.String("spec", "RACE", "data spec to open (e.g. RACE, DIFF, TOKUUMA)")
	fromKey := flag.String("from-key", "", "from-key passed to Open")
	savePath := flag.String("save-path", "", "local directory to persist downloaded files under")
	limit := flag.Int("limit", 20, "maximum records to pull before cancelling (0 = unbounded, uses fetch_all)")
	logLevel := flag.String("log-level", "INFO", "DEBUG, INFO, WARN, or ERROR")
	logFormat := flag.String("log-format", "text", "text or json")
	metricsAddr := flag.String("metrics-addr", "", "address to serve Prometheus metrics on (e.g. :9090); empty disables the server")
	tracingEnabled := flag.Bool("tracing", false, "enable OpenTelemetry tracing (no span exporter is configured here, so spans are not exported)")
	profilingAddr := flag.String("pyroscope-addr", "", "Pyroscope server address; empty disables continuous profiling")
	flag.Parse()

	if err := logger.Init(logger.Config{Level: *logLevel, Format: *logFormat}); err != nil {
		fmt.Fprintf(os.Stderr, "jvlink-probe: failed to initialise logger: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Config{Sid: *sid, SavePath: *savePath, SaveFlag: *savePath != ""}
	if err := config.Validate(cfg); err != nil {
		logger.Error("jvlink-probe: invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	profilingShutdown, err := telemetry.InitProfiling(telemetry.ProfilingConfig{
		Enabled:       *profilingAddr != "",
		ServiceName:   "jvlink-probe",
		ServerAddress: *profilingAddr,
		ProfileTypes:  []string{"cpu", "alloc_objects"},
	})
	if err != nil {
		logger.Error("jvlink-probe: failed to start profiler", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := profilingShutdown(); err != nil {
			logger.Warn("jvlink-probe: profiler shutdown error", "error", err)
		}
	}()

	traceShutdown, err := telemetry.Init(ctx, telemetry.Config{Enabled: *tracingEnabled, ServiceName: "jvlink-probe"})
	if err != nil {
		logger.Error("jvlink-probe: failed to initialise telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := traceShutdown(ctx); err != nil {
			logger.Warn("jvlink-probe: telemetry shutdown error", "error", err)
		}
	}()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	var metricsServer *http.Server
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{Addr: *metricsAddr, Handler: mux}
		go func() {
			logger.Info("jvlink-probe: serving metrics", "addr", *metricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("jvlink-probe: metrics server failed", "error", err)
			}
		}()
	}

	backend, closeBackend, err := newBackend()
	if err != nil {
		logger.Error("jvlink-probe: failed to create backend", "error", err)
		os.Exit(1)
	}
	defer closeBackend()

	disp := dispatcher.New(dispatcher.Config{Metrics: m})
	disp.Start()

	orch := session.New(backend, disp, session.DefaultPolicy())
	orch.SetMetrics(m)

	if *savePath != "" {
		if err := orch.SetSavePath(ctx, *savePath); err != nil {
			logger.Warn("jvlink-probe: set-save-path failed", "error", err)
		}
		if err := orch.SetSaveFlag(ctx, true); err != nil {
			logger.Warn("jvlink-probe: set-save-flag failed", "error", err)
		}
	}

	logger.Info("jvlink-probe: starting",
		"version", version, "commit", commit, "backend", backendKind,
		"spec", *dataSpec, "from_key", *fromKey, "limit", *limit)

	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	req := session.Request{Spec: *dataSpec, FromKey: *fromKey}
	started := time.Now()

	var payloads []session.Payload
	if *limit > 0 {
		payloads, err = orch.FetchRange(runCtx, *sid, req, *limit)
	} else {
		payloads, err = orch.FetchAll(runCtx, *sid, req)
	}
	if err != nil {
		logger.Error("jvlink-probe: fetch failed", "error", err)
		shutdownMetricsServer(metricsServer)
		os.Exit(1)
	}

	logger.Info("jvlink-probe: fetch complete",
		"records", len(payloads), "elapsed", time.Since(started).String())

	diag := orch.Diagnostics()
	logger.Info("jvlink-probe: orchestrator diagnostics",
		"state", diag.State.String(), "poisoned", diag.Poisoned, "dispatcher_poisoned", diag.DispatcherPoisoned)

	if *metricsAddr != "" {
		logger.Info("jvlink-probe: run complete, metrics server still serving; press Ctrl+C to exit")
		<-runCtx.Done()
	}

	shutdownMetricsServer(metricsServer)
	disp.Stop(5 * time.Second)
}

func shutdownMetricsServer(srv *http.Server) {
	if srv == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("jvlink-probe: metrics server shutdown error", "error", err)
	}
}
