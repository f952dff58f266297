package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"codectx/internal/batch"
	"codectx/internal/config"
	"codectx/internal/extractor"
	"codectx/internal/fetch"
	"codectx/internal/report"
)

var (
	batchCompress bool
	batchReport   string
	batchWorkers  int
	batchInclude  []string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <findings.json>",
	Short: "Extract function context for a findings list",
	Long: `Process a findings file - a JSON array of {"location", "line"} records,
the shape a static-analysis run produces - and extract the enclosing
function for each. Results print as JSON; with --report they are also
written to a SQLite database.

Example:
  codectx batch findings.json --compress --report report.db`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().BoolVarP(&batchCompress, "compress", "c", false, "compact each function instead of extracting it verbatim")
	batchCmd.Flags().StringVar(&batchReport, "report", "", "write results to this SQLite database")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "concurrent extractions (default from config)")
	batchCmd.Flags().StringSliceVar(&batchInclude, "include", nil, "glob patterns findings must match (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	workers := cfg.Batch.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}
	include := cfg.Batch.Include
	if len(batchInclude) > 0 {
		include = batchInclude
	}
	reportPath := cfg.Batch.ReportPath
	if batchReport != "" {
		reportPath = batchReport
	}

	findings, err := batch.LoadFindings(args[0])
	if err != nil {
		return err
	}

	fetcher := fetch.New(
		fetch.WithMaxBytes(cfg.Fetch.MaxBytes),
		fetch.WithTimeout(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second),
	)

	runner, err := batch.NewRunner(extractor.New(), fetcher, batch.Options{
		Include:  include,
		Compress: batchCompress,
		Workers:  workers,
		Progress: true,
	})
	if err != nil {
		return err
	}

	records, err := runner.Run(cmd.Context(), findings)
	if err != nil {
		return err
	}

	if reportPath != "" {
		store, err := report.Open(reportPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Write(records); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %d records to %s\n", len(records), reportPath)
	}

	return printRecords(records)
}
