package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/nfe-mapper/internal/logger"
	"github.com/rezonia/nfe-mapper/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for decoding and encoding NF-e documents.

The API provides endpoints for:
  - POST /api/v1/decode   - Decode XML to JSON (?profile=55 for model 55 checks)
  - POST /api/v1/encode   - Encode a JSON document to XML
  - POST /api/v1/check    - Decode/encode/decode round-trip check
  - POST /api/v1/info     - Access key breakdown and summary
  - GET  /health          - Health check

Examples:
  # Start server on default port
  nfe serve

  # Start on custom port in debug mode
  nfe serve --address :9090 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (env: NFE_SERVER_ADDR)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable gin debug mode (env: NFE_SERVER_DEBUG)")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 0, "HTTP read timeout (env: NFE_SERVER_READ_TIMEOUT)")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 0, "HTTP write timeout (env: NFE_SERVER_WRITE_TIMEOUT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	sc := cfg.Server
	flags := cmd.Flags()
	if flags.Changed("address") {
		sc.Addr = serverAddr
	}
	if flags.Changed("debug") {
		sc.Debug = serverDebug
	}
	if flags.Changed("read-timeout") {
		sc.ReadTimeout = readTimeout
	}
	if flags.Changed("write-timeout") {
		sc.WriteTimeout = writeTimeout
	}

	srv := server.NewServer(&server.Config{
		Address:      sc.Addr,
		ReadTimeout:  sc.ReadTimeout,
		WriteTimeout: sc.WriteTimeout,
		MaxBodyBytes: sc.MaxBodyBytes,
		Indent:       cfg.Encode.Indent,
		Debug:        sc.Debug,
		Logger:       logger.WithComponent("server"),
	})

	log := logger.WithComponent("serve")
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
