package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rezonia/nfe-mapper/internal/config"
	"github.com/rezonia/nfe-mapper/internal/logger"
	"github.com/rezonia/nfe-mapper/internal/processor"
)

var (
	version = "1.0.0"

	// Global flags
	cfgFile      string
	envFile      string
	verbose      bool
	outputFormat string
	logLevel     string
	indent       int
	workers      int

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "nfe",
	Short: "Map NF-e 4.00 XML to and from a typed model",
	Long: `nfe decodes Brazilian electronic invoices (NF-e, layout 4.00) into a
typed document model and encodes the model back into canonical XML.

Accepted inputs: <nfeProc>, <NFe> or a bare <infNFe>.

Examples:
  # Decode a document to JSON
  nfe decode nota.xml

  # Decode a directory and list the documents
  nfe decode notas/ -f table

  # Check that documents survive a decode/encode cycle
  nfe check notas/*.xml

  # Encode a JSON document back to XML
  nfe encode nota.json -o nota.xml`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with NFE_* variables")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table, csv)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (env: NFE_LOG_LEVEL)")
	rootCmd.PersistentFlags().IntVar(&indent, "indent", 0, "Indent encoded XML by n spaces (env: NFE_ENCODE_INDENT)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "Concurrent decodes (env: NFE_BATCH_WORKERS)")
}

// initConfig loads file and environment settings, then applies flags that
// were set explicitly
func initConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile, envFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		loaded.Log.Level = logLevel
	}
	if verbose {
		loaded.Log.Level = zerolog.LevelDebugValue
	}
	if flags.Changed("indent") {
		loaded.Encode.Indent = indent
	}
	if flags.Changed("workers") {
		loaded.Batch.Workers = workers
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if err := logger.Setup(loaded.GetLoggerConfig()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	cfg = loaded
	return nil
}

func newPipeline(opts ...processor.Option) *processor.Pipeline {
	base := []processor.Option{
		processor.WithLogger(logger.WithComponent("mapper")),
		processor.WithIndent(cfg.Encode.Indent),
		processor.WithWorkers(cfg.Batch.Workers),
	}
	return processor.NewPipeline(append(base, opts...)...)
}
