package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:   "starwindow",
		Short: "Find threshold-crossing intervals such as satellite visibility windows",
		Long: `starwindow samples a scalar signal, brackets every threshold crossing and
refines it with Brent's method. The windows command applies this to satellite
elevation over a ground observer; roots runs the engine on a test polynomial.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error (env STARWINDOW_LOG_LEVEL)")

	root.AddCommand(newWindowsCmd(), newRootsCmd())
	return root
}

// newLogger builds the JSON logger for a command run.
func newLogger(cmd *cobra.Command, getenv func(string) string) *slog.Logger {
	level := slog.LevelInfo
	name := getenv("STARWINDOW_LOG_LEVEL")
	if f := cmd.Flag("log-level"); f != nil && f.Changed {
		name = f.Value.String()
	}

	var badLevel bool
	if name != "" {
		if err := level.UnmarshalText([]byte(name)); err != nil {
			level = slog.LevelInfo
			badLevel = true
		}
	}

	logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if badLevel {
		logger.Warn("invalid log level, using info", "value", name)
	}
	return logger
}
