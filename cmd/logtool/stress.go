package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bvarner/syslog"
)

type stressOptions struct {
	configFile     string
	overrides      []string
	workers        int
	messages       int
	maxMessageSize int
}

var stressLevels = []int64{
	syslog.LevelDebug,
	syslog.LevelInfo,
	syslog.LevelWarn,
	syslog.LevelError,
}

func stressCommand() *cobra.Command {
	opts := stressOptions{}

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Log from many goroutines at once to exercise rotation and retention",
		Long: `Starts a number of workers that each dispatch random messages at random
levels, then prints the logger counters. Configure the file sink with a
config file ([log] table) and/or key=value overrides, e.g.

  logtool stress --set file_level=debug --set file_name=logs/stress-%f.log \
      --set max_file_size=1000000 --set max_files=5 --set compression=true`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "TOML config file with a [log] table")
	cmd.Flags().StringArrayVar(&opts.overrides, "set", nil, "configuration override key=value (repeatable)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 50, "number of logging goroutines")
	cmd.Flags().IntVarP(&opts.messages, "messages", "n", 1000, "messages per worker")
	cmd.Flags().IntVar(&opts.maxMessageSize, "max-size", 200, "maximum random message length")
	return cmd
}

func runStress(cmd *cobra.Command, opts stressOptions) error {
	if opts.workers <= 0 || opts.messages <= 0 || opts.maxMessageSize <= 0 {
		return fmt.Errorf("workers, messages and max-size must be positive")
	}

	cfg := syslog.DefaultConfig()
	if opts.configFile != "" {
		loaded, err := syslog.NewConfigFromFile(opts.configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger := syslog.NewLogger()
	if err := logger.ApplyConfig(cfg); err != nil {
		return err
	}
	if err := logger.ApplyOverride(opts.overrides...); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting stress test: %d workers, %d messages each\n", opts.workers, opts.messages)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var stopped atomic.Bool
	done := make(chan struct{})
	go func() {
		select {
		case <-sigChan:
			stopped.Store(true)
		case <-done:
		}
	}()

	var wg sync.WaitGroup
	var sent atomic.Int64
	startTime := time.Now()
	for w := 0; w < opts.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < opts.messages && !stopped.Load(); i++ {
				level := stressLevels[rand.IntN(len(stressLevels))]
				msg := randomMessage(rand.IntN(opts.maxMessageSize) + 1)
				_ = logger.Logf(level, "wkr=%d seq=%d %s", worker, i, msg)
				sent.Add(1)
			}
		}(w)
	}
	wg.Wait()
	close(done)
	duration := time.Since(startTime)

	if err := logger.LogStats(syslog.LevelInfo); err != nil {
		return err
	}
	stats := logger.Stats()
	if err := logger.Shutdown(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Sent %d messages in %v", sent.Load(), duration.Round(time.Millisecond))
	if duration.Seconds() > 0 {
		fmt.Fprintf(out, " (%.0f/s)", float64(sent.Load())/duration.Seconds())
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Rotations: %d, deletions: %d, compressions: %d, failures: open=%d write=%d compress=%d\n",
		stats.Rotations, stats.Deletions, stats.Compressions,
		stats.OpenFailures, stats.WriteFailures, stats.CompressionFailures)
	return nil
}

func randomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.IntN(len(chars))])
	}
	return sb.String()
}
