// Command penumbra-trace inspects trace databases recorded by the collector
// instrumentation.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/penumbralab/penumbra/tracing"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "penumbra-trace",
	Short: "Penumbra-trace reads collector trace databases and reports " +
		"cycles, pauses, and phase totals.",
	Long: `Penumbra-trace reads the SQLite trace databases written by the ` +
		`collector instrumentation. It can list recorded collection cycles ` +
		`and pauses and summarize the time spent in each phase.`,
}

func main() {
	// A .env file can provide PENUMBRA_TRACE as the default database path.
	_ = godotenv.Load()

	log.DefaultLogger = log.Logger{
		Level:      log.InfoLevel,
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			ColorOutput: true,
			Writer:      os.Stderr,
		},
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("trace", "",
		"Path of the trace database to read")
}

func openTraceReader(cmd *cobra.Command) *tracing.SQLiteTraceReader {
	path, _ := cmd.Flags().GetString("trace")
	if path == "" {
		path = os.Getenv("PENUMBRA_TRACE")
	}

	if path == "" {
		log.Fatal().Msg("no trace database given, " +
			"use --trace or set PENUMBRA_TRACE")
	}

	reader := tracing.NewSQLiteTraceReader(path)

	err := reader.Init()
	if err != nil {
		log.Fatal().Err(err).Str("path", path).
			Msg("cannot open trace database")
	}

	return reader
}
