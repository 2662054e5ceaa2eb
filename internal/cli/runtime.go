package cli

import (
	"context"
	"fmt"
	"time"

	"happydash/internal/config"
	"happydash/internal/logging"
	"happydash/internal/metrics"
	"happydash/internal/telemetry"
)

const serviceName = "happydash"

// runtime holds the process-wide logger, tracer and metrics.
type runtime struct {
	Log     *logging.Logger
	Tracer  *telemetry.Tracer
	Metrics *metrics.Recorder
	server  *metrics.Server
}

// newRuntime builds the ambient services from cfg. The dashboard logs to
// cfg.LogFile only; subcommands (console) log to stderr.
func newRuntime(ctx context.Context, cfg *config.Config, console bool) (*runtime, error) {
	var (
		log *logging.Logger
		err error
	)
	if console && cfg.LogFile == "" {
		log, err = logging.NewConsole(cfg.LogLevel)
	} else {
		log, err = logging.New(cfg.LogLevel, cfg.LogFile)
	}
	if err != nil {
		return nil, err
	}

	tracer, err := telemetry.New(ctx, telemetry.Options{
		OTLPEndpoint: cfg.OTLPEndpoint,
		StdoutPath:   cfg.TraceStdout,
		ServiceName:  serviceName,
	})
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("tracing: %w", err)
	}

	rt := &runtime{Log: log, Tracer: tracer, Metrics: metrics.New()}
	if cfg.MetricsAddr != "" {
		rt.server = metrics.NewServer(cfg.MetricsAddr, rt.Metrics)
		if err := rt.server.Start(func(err error) { log.Error("metrics server", "error", err) }); err != nil {
			rt.Close(ctx)
			return nil, fmt.Errorf("metrics server: %w", err)
		}
		log.Info("serving metrics", "addr", rt.server.Addr())
	}
	return rt, nil
}

// Close stops the metrics server and flushes traces and logs.
func (r *runtime) Close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if r.server != nil {
		if err := r.server.Stop(ctx); err != nil {
			r.Log.Warn("stop metrics server", "error", err)
		}
	}
	if err := r.Tracer.Shutdown(ctx); err != nil {
		r.Log.Warn("flush traces", "error", err)
	}
	r.Log.Sync()
}
