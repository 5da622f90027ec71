package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/bvarner/syslog"
	"github.com/bvarner/syslog/compat"
)

func main() {
	// Create and configure logger
	logger := syslog.NewLogger()
	err := logger.ApplyOverride(
		"file_name=/var/log/fasthttp/server-%f.log",
		"file_level=info",
		"max_file_size=1048576",
		"max_files=10",
		"console_color=auto",
	)
	if err != nil {
		panic(err)
	}
	defer logger.Shutdown()

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithDefaultLevel(syslog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	// Configure fasthttp server
	server := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			requestHandler(logger, ctx)
		},
		Logger: fasthttpAdapter,

		// Other server settings
		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	// Start server
	logger.Infof("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		logger.Criticalf("server stopped: %v", err)
	}
}

func requestHandler(logger *syslog.Logger, ctx *fasthttp.RequestCtx) {
	logger.Debugf("%s %s from %s", ctx.Method(), ctx.Path(), ctx.RemoteAddr())
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) int64 {
	// Custom logic to detect log levels
	// Can inspect specific fasthttp message patterns

	if strings.Contains(msg, "connection cannot be served") {
		return syslog.LevelWarn
	}
	if strings.Contains(msg, "error when serving connection") {
		return syslog.LevelError
	}

	// Use default detection
	return compat.DetectLogLevel(msg)
}
