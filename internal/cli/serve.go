package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"codectx/internal/config"
	"codectx/internal/extractor"
	"codectx/internal/fetch"
	"codectx/internal/server"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP extraction service",
	Long: `Run the HTTP service exposing POST /api/extract and /api/compress.
Requests carry JSON with either file_url or inline source+filename plus a
line_number. When server.auth_token is configured, requests need an
Authorization: Bearer header.

Example:
  codectx serve --addr :8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	addr := cfg.Server.Address
	if serveAddr != "" {
		addr = serveAddr
	}

	fetcher := fetch.New(
		fetch.WithMaxBytes(cfg.Fetch.MaxBytes),
		fetch.WithTimeout(time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second),
	)

	srv := server.New(extractor.New(), server.Options{
		Addr:         addr,
		AuthToken:    cfg.Server.AuthToken,
		MaxBodyBytes: int64(cfg.Server.MaxBodyKB) * 1024,
		Fetcher:      fetcher,
	})
	return srv.Start()
}
