package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bvarner/syslog/loccode"
	"github.com/bvarner/syslog/timefmt"
)

func codeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "code",
		Short: "Encode and decode source location codes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "encode FILE LINE",
		Short: "Print the location code of FILE:LINE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid line %q: %w", args[1], err)
			}
			key := loccode.Encode(args[0], line)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (key %d)\n", loccode.ToCode(key), key)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "decode CODE",
		Short: "Print the key of a location code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := loccode.FromCode(args[0])
			if key == 0 {
				return fmt.Errorf("invalid location code %q", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", key)
			return nil
		},
	})

	return cmd
}

func durationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duration",
		Short: "Parse and format human-readable durations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "parse TEXT",
		Short: "Print TEXT (e.g. \"1h 30m\") in microseconds",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			us := timefmt.ParseDurationString(strings.Join(args, " "))
			if us == timefmt.Never {
				fmt.Fprintln(cmd.OutOrStdout(), "never")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", us)
			return nil
		},
	})

	var clauses uint32
	var precision string
	formatCmd := &cobra.Command{
		Use:   "format MICROSECONDS",
		Short: "Print a microsecond count as a duration string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			us, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid microseconds %q: %w", args[0], err)
			}
			minPrecision := timefmt.ParseDurationString(precision)
			if minPrecision == timefmt.Never {
				return fmt.Errorf("invalid precision %q", precision)
			}
			s, exact := timefmt.FormatDurationString(us, clauses, minPrecision)
			if !exact {
				s += " (approx.)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	}
	formatCmd.Flags().Uint32Var(&clauses, "clauses", timefmt.NoLimit, "maximum number of unit clauses")
	formatCmd.Flags().StringVar(&precision, "precision", "0", "drop remainders at or below this duration")
	cmd.AddCommand(formatCmd)

	return cmd
}

func timeCommand() *cobra.Command {
	var utc bool
	zone := func() timefmt.Zone {
		if utc {
			return timefmt.ZoneUTC
		}
		return timefmt.ZoneLocal
	}

	cmd := &cobra.Command{
		Use:   "time",
		Short: "Parse timestamps and expand file name templates",
	}
	cmd.PersistentFlags().BoolVar(&utc, "utc", false, "use UTC instead of local time")

	cmd.AddCommand(&cobra.Command{
		Use:   "parse TEXT",
		Short: "Print \"YYYY/MM/DD hh:mm:ss\" as microseconds since the epoch",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts := timefmt.ParseHumanTimeString(strings.Join(args, " "), zone())
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", ts, timefmt.HumanTimeString(ts, zone()))
			return nil
		},
	})

	var at string
	expandCmd := &cobra.Command{
		Use:   "expand TEMPLATE",
		Short: "Expand the time tokens of a file name template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts := timefmt.Micros(time.Now())
			if at != "" {
				ts = timefmt.ParseHumanTimeString(at, zone())
			}
			v, err := timefmt.Decompose(ts, zone())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.ExpandTokens(args[0]))
			return nil
		},
	}
	expandCmd.Flags().StringVar(&at, "at", "", "timestamp to expand instead of now")
	cmd.AddCommand(expandCmd)

	return cmd
}
