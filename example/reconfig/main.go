package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/bvarner/syslog"
)

// Reconfigure the file sink rapidly while another goroutine logs
func main() {
	var count atomic.Int64

	dir, err := os.MkdirTemp("", "reconfig")
	if err != nil {
		fmt.Printf("Temp dir error: %v\n", err)
		return
	}
	fmt.Printf("Logging to %s\n", dir)

	logger := syslog.NewLogger()
	if err := logger.ApplyOverride("console_level=none", "file_level=debug", "file_name="+dir+"/reconfig-%f.log"); err != nil {
		fmt.Printf("Initial config error: %v\n", err)
		return
	}

	// Log something constantly
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			logger.Infof("Test log %d", i)
			count.Add(1)
			time.Sleep(time.Millisecond)
		}
	}()

	// Trigger multiple reconfigurations rapidly
	for i := 0; i < 10; i++ {
		err := logger.ApplyOverride(
			fmt.Sprintf("max_file_size=%d", 2000*(i+1)),
			fmt.Sprintf("max_files=%d", 2+i%3),
			fmt.Sprintf("compression=%t", i%2 == 0),
		)
		if err != nil {
			fmt.Printf("Reconfig error: %v\n", err)
		}
		// Minimal delay between reconfigurations
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(500 * time.Millisecond)
	close(stop)
	<-done

	stats := logger.Stats()
	fmt.Printf("Total logs attempted: %d\n", count.Load())
	fmt.Printf("Rotations: %d, deletions: %d, compressions: %d\n", stats.Rotations, stats.Deletions, stats.Compressions)

	if err := logger.Shutdown(); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}
}
