package engine

import (
	"encoding/json"
	"fmt"
	"loadbearer/pkg/response"
	"loadbearer/pkg/utils/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"
)

const pidFileName = "loadbearer.pid"

// Run starts the reactor and the HTTP listener, then blocks until SIGINT or
// SIGTERM, at which point it drains the server and tears everything down.
func (engine *Engine) Run() {
	addr := fmt.Sprintf("%s:%d", engine.config.Server.Host, engine.config.Server.Port)
	engine.logger.Info(fmt.Sprintf("load-bearer engine starting on %s...", addr))

	if err := engine.storePid(); err != nil {
		engine.logger.Warn("Continuing without a pid file; 'down' will not find this process")
	}

	go engine.reactor.Run()

	server := &fasthttp.Server{
		Handler: engine.handleRequest,
		Name:    "load-bearer",
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(addr); err != nil {
			engine.logger.Error(fmt.Sprintf("Fatal server error: %v", err))
			os.Exit(1)
		}
	}()

	<-stop
	engine.logger.Info("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		engine.logger.Error(fmt.Sprintf("Server shutdown error: %v", err))
	}
	if cerr := engine.cleanup(); cerr != nil {
		engine.logger.Error(fmt.Sprintf("Cleanup error: %v", cerr))
	}
}

// handleRequest is the dispatch point: exact-path match, then the matched
// handler is queued onto the reactor while this transport goroutine parks on
// the handle until delivery. The metrics and stats surfaces are served here
// directly; they are operational endpoints, not load profiles, and must stay
// responsive even while the loop is deliberately stalled by /block.
func (engine *Engine) handleRequest(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())

	if engine.metrics != nil && path == engine.config.Metrics.Path {
		engine.metrics.Handler()(ctx)
		return
	}
	if engine.stats != nil && path == engine.config.Stats.Path {
		engine.handleStats(ctx)
		return
	}

	var handler func(*response.Handle)
	switch path {
	case nullRespPath:
		handler = engine.handleNull
	case delayedRespPath:
		handler = engine.handleDelayed
	case blockingRespPath:
		handler = engine.handleBlocking
	default:
		engine.logger.Debug(fmt.Sprintf("No handler for path %s; returning 404", path))
		ctx.Error("Not Found", fasthttp.StatusNotFound)
		return
	}

	if engine.metrics != nil {
		engine.metrics.RequestsTotal.WithLabelValues(path).Inc()
		engine.metrics.InFlight.Inc()
		defer engine.metrics.InFlight.Dec()
	}

	start := time.Now()
	handle := response.NewHandle(ctx)
	engine.reactor.Dispatch(func() { handler(handle) })
	handle.Wait()
	elapsed := time.Since(start)

	if engine.stats != nil {
		engine.stats.Record(path, elapsed)
	}
	if engine.metrics != nil && path != nullRespPath {
		engine.metrics.ResponseDelay.Observe(elapsed.Seconds())
	}
}

func (engine *Engine) handleStats(ctx *fasthttp.RequestCtx) {
	if err := engine.stats.Health(); err != nil {
		engine.logger.Error(fmt.Sprintf("Stats backend unhealthy: %v", err))
		ctx.Error("Stats backend unavailable", fasthttp.StatusServiceUnavailable)
		return
	}

	payload, err := json.Marshal(engine.stats.Snapshot())
	if err != nil {
		engine.logger.Error(fmt.Sprintf("Failed to encode stats snapshot: %v", err))
		ctx.Error("Internal Server Error", fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(payload)
}

func (engine *Engine) storePid() error {
	engine.logger.Info("Storing program id information...")

	storageDir := engine.config.Storage.Path
	path := filepath.Join(storageDir, pidFileName)

	if err := fs.EnsureDir(storageDir); err != nil {
		engine.logger.Error(fmt.Sprintf("Unable to create program storage path due to %v", err))
		return err
	}

	if err := os.WriteFile(path, []byte(fmt.Sprintf("%d", engine.pid)), 0o644); err != nil {
		engine.logger.Error(fmt.Sprintf("Unable to store program id due to %v", err))
		return err
	}

	engine.logger.Info(fmt.Sprintf("Stored program id information at %s", path))
	return nil
}

func (engine *Engine) cleanup() error {
	var err error

	engine.reactor.Stop()
	engine.logger.Info("Reactor stopped")

	if engine.stats != nil {
		if closeErr := engine.stats.Close(); closeErr != nil {
			engine.logger.Error(fmt.Sprintf("Failed to close the stats recorder: %v", closeErr))
			err = closeErr
		}
		engine.logger.Info("Stats recorder closed")
	}

	pidFile := filepath.Join(engine.config.Storage.Path, pidFileName)
	if rmErr := os.Remove(pidFile); rmErr != nil {
		engine.logger.Error(fmt.Sprintf("Failed to remove PID file: %v", rmErr))
		err = rmErr
	} else {
		engine.logger.Info("PID file removed.")
	}

	return err
}
