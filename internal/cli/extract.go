package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"codectx/internal/config"
	"codectx/internal/extractor"
	"codectx/internal/fetch"
)

var (
	extractLine     int
	extractCompress bool
	extractIdents   []string
	extractJSON     bool
	extractLang     string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file-or-url>",
	Short: "Extract the function containing a source line",
	Long: `Extract the full text of the function containing the given line of a
source file. The file may be a local path, a file:// URL, or an http(s) URL;
GitHub blob URLs are rewritten to their raw form automatically.

Examples:
  codectx extract app.py --line 42
  codectx extract https://github.com/user/repo/blob/main/pkg/file.go --line 10
  codectx extract app.py --line 42 --compress --idents token,secret`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().IntVarP(&extractLine, "line", "l", 0, "1-based line number inside the function (required)")
	extractCmd.Flags().BoolVarP(&extractCompress, "compress", "c", false, "compact the function instead of returning it verbatim")
	extractCmd.Flags().StringSliceVar(&extractIdents, "idents", nil, "identifiers of interest for compaction (default: all bound names)")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "emit the full result as JSON instead of plain text")
	extractCmd.Flags().StringVar(&extractLang, "lang", "", "language override (default: derived from the file extension)")
	extractCmd.MarkFlagRequired("line")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fetcher := fetch.New(
		fetch.WithMaxBytes(cfg.Fetch.MaxBytes),
	)

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second)
	defer cancel()

	src, err := fetcher.Load(ctx, args[0])
	if err != nil {
		return err
	}

	hint := src.LanguageHint
	if extractLang != "" {
		hint = extractLang
	}

	e := extractor.New()
	var payload any
	var text string

	if extractCompress {
		result, err := e.CompressFunction(src.Text, hint, extractLine, &extractor.CompressOptions{
			Identifiers:            extractIdents,
			PreserveInlineComments: cfg.Compress.PreserveInlineComments,
		})
		if err != nil {
			return err
		}
		payload, text = result, result.Text
	} else {
		result, err := e.ExtractFunction(src.Text, hint, extractLine)
		if err != nil {
			return err
		}
		payload, text = result, result.Text
	}

	if extractJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
	fmt.Println(text)
	return nil
}
