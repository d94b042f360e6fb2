// learnctl is the command-line client for the Learn-Better generator: it
// lists the models a credential can reach and runs one-off generations.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cmlowerence/Learn-Better/internal/config"
	"github.com/cmlowerence/Learn-Better/internal/platform/logger"
	"github.com/spf13/cobra"
)

// Version metadata injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// errExit signals a non-zero exit after the command has already reported
// its own error.
var errExit = errors.New("exit")

// run executes the learnctl CLI with the given args.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errExit) {
			fmt.Fprintf(stderr, "learnctl: %v\n", err)
		}
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "learnctl",
		Short:         "Generate quiz items and flashcards from the command line",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			fmt.Fprintf(stderr, "learnctl: unknown command %q\n", args[0])
			return errExit
		},
	}
	root.PersistentFlags().String("config", "", "Path to a config.yaml (default: ./config.yaml if present)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log attempts to stderr")

	root.AddCommand(
		newModelsCmd(stdout, stderr),
		newGenerateCmd(stdout, stderr),
		newVersionCmd(stdout),
	)
	return root
}

// loadConfig reads configuration honoring the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// newLogger writes JSON logs to stderr; quiet unless --verbose is set.
func newLogger(cmd *cobra.Command, stderr io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return logger.New(stderr, level)
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Fprintf(stdout, "learnctl %s (commit: %s)\n", version, commit)
			return nil
		},
	}
}
