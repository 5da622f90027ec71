package main

import (
	"fmt"
	"time"

	"github.com/bvarner/syslog"
)

// TestPayload defines a struct for testing complex type rendering.
type TestPayload struct {
	RequestID uint64
	User      string
	Metrics   map[string]float64
}

func main() {
	fmt.Println("--- Logger Raw Output Test ---")

	logger := syslog.NewLogger()
	defer logger.Shutdown()
	if err := logger.SetConsoleLogLevel(syslog.LevelDebug); err != nil {
		fmt.Printf("Failed to configure logger: %v\n", err)
		return
	}

	// Raw text carries no preamble and no added newline, so a line can be
	// built from several calls.
	fmt.Println("\n[1] Progress line built with Raw")
	_ = logger.Logf(syslog.LevelInfo, "copying files")
	for pct := 0; pct <= 100; pct += 25 {
		_ = logger.Raw(syslog.LevelInfo, "%d%% ", pct)
		time.Sleep(50 * time.Millisecond)
	}
	_ = logger.Raw(syslog.LevelInfo, "\n")

	// Dump renders arbitrary values with their types.
	fmt.Println("\n[2] Values rendered with Dump")
	logger.Dump(syslog.LevelInfo, "Byte Record", []byte("binary\ndata\twith\x00null"))
	logger.Dump(syslog.LevelInfo, "Struct Record", TestPayload{
		RequestID: 9223372036854775807, // A large uint64
		User:      "test_user",
		Metrics: map[string]float64{
			"latency_ms":  15.7,
			"cpu_percent": 88.2,
		},
	})

	fmt.Println("\n[3] Stack trace")
	_ = logger.LogStackTrace(syslog.LevelDebug, 5)

	fmt.Println("\n--- Test Complete ---")
}
