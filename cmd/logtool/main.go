// Command logtool drives the syslog pipeline from the command line: a
// concurrent stress run against the file sink and helpers for the
// location code, duration and timestamp formats.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootCommand creates the root command with all subcommands attached.
func rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "logtool",
		Short:         "syslog pipeline tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		stressCommand(),
		codeCommand(),
		durationCommand(),
		timeCommand(),
	)
	return rootCmd
}
