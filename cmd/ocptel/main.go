package main

import (
	"fmt"
	"os"

	"github.com/opencomputeproject/ocp-telemetry/internal/logging"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type rootFlags struct {
	verbose bool
	debug   bool
	logFile string
}

// logger builds the logger selected by the global flags.
func (f *rootFlags) logger() (*logging.Logger, error) {
	logger, err := logging.NewLogger(logging.LevelError, f.logFile)
	if err != nil {
		return nil, err
	}

	switch {
	case f.debug:
		logger.SetLevel(logging.LevelDebug)
	case f.verbose:
		logger.SetLevel(logging.LevelVerbose)
	}

	return logger, nil
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "ocptel",
		Short: "OCP NVMe telemetry log decoder and generator",
		Long: `ocptel decodes and validates OCP NVMe Telemetry Host-Initiated and
Controller-Initiated logs together with their strings logs, and generates
conformant log pairs from a YAML configuration.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log progress")
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Log every decoded and generated structure")
	rootCmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Also write the log to this file")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateCmd(flags))
	rootCmd.AddCommand(newDumpCmd(flags))
	rootCmd.AddCommand(newPackCmd(flags))
	rootCmd.AddCommand(newUnpackCmd(flags))
	rootCmd.AddCommand(newSampleConfigCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
