package cmd

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/nfe-mapper/internal/export"
	"github.com/rezonia/nfe-mapper/internal/logger"
	"github.com/rezonia/nfe-mapper/internal/model"
	"github.com/rezonia/nfe-mapper/internal/processor"
	"github.com/rezonia/nfe-mapper/internal/scalar"
)

var (
	outputFile   string
	timeout      time.Duration
	model55      bool
	itemsOnly    bool
	failOnErrors bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode [files...]",
	Short: "Decode NF-e XML files",
	Long: `Decode one or more NF-e XML files into the typed document model.

Directories are walked for *.xml files. Files are decoded concurrently and
reported in name order; a failing file does not stop the others.

Examples:
  nfe decode nota.xml
  nfe decode notas/ -f table
  nfe decode notas/*.xml -f csv --items -o itens.csv
  nfe decode nota.xml --model55`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	decodeCmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "Timeout for the whole run")
	decodeCmd.Flags().BoolVar(&model55, "model55", false, "Require a model 55 NF-e with a named, addressed recipient")
	decodeCmd.Flags().BoolVar(&itemsOnly, "items", false, "With -f csv, write one row per line item")
	decodeCmd.Flags().BoolVar(&failOnErrors, "strict", false, "Exit with an error when any file fails")
}

func runDecode(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to decode")
	}

	log := logger.WithComponent("decode")
	log.Debug().Int("files", len(files)).Msg("decoding")

	results, err := decodeFiles(files, processor.WithModel55(model55))
	if err != nil {
		return err
	}

	w, closeOut, err := openOutput(outputFile, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOut()

	switch outputFormat {
	case "json":
		err = outputJSON(w, results)
	case "table":
		err = outputTable(w, results)
	case "csv":
		err = outputCSV(w, results)
	default:
		err = fmt.Errorf("unsupported output format: %s", outputFormat)
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
			log.Warn().Str("file", r.File).Str("kind", r.Kind).Msg(r.Error)
		}
	}
	if failed > 0 && failOnErrors {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

func decodeFiles(files []string, opts ...processor.Option) ([]*DecodeResult, error) {
	inputs, err := readFiles(files)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	batch := newPipeline(opts...).ProcessBatch(ctx, inputs)
	results := make([]*DecodeResult, len(batch))
	for i, r := range batch {
		results[i] = newDecodeResult(files[i], r)
	}
	return results, nil
}

func newDecodeResult(file string, r *processor.Result) *DecodeResult {
	res := &DecodeResult{File: file, Document: r.Document, Warnings: r.Warnings}
	if r.Error != nil {
		res.Error = r.Error.Error()
		if kind, ok := model.KindOf(r.Error); ok {
			res.Kind = string(kind)
		}
	}
	return res
}

func outputJSON(w io.Writer, results []*DecodeResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if len(results) == 1 {
		return encoder.Encode(results[0])
	}
	return encoder.Encode(results)
}

func outputTable(w io.Writer, results []*DecodeResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tCHAVE\tNUMERO\tEMISSAO\tEMITENTE\tITENS\tVALOR")
	fmt.Fprintln(tw, "----\t-----\t------\t-------\t--------\t-----\t-----")

	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\tERROR: %s\t\t\t\t\t\n", r.File, r.Error)
			continue
		}
		d := r.Document
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%d\t%s\n",
			r.File,
			d.ChaveAcesso,
			d.Identificacao.Numero,
			d.Identificacao.Emissao.DataHora.Format("2006-01-02"),
			d.Emitente.RazaoSocial,
			len(d.Itens),
			scalar.EncodeDecimal(d.Total.ValorNota),
		)
	}
	return tw.Flush()
}

func outputCSV(w io.Writer, results []*DecodeResult) error {
	var docs []*model.Document
	for _, r := range results {
		if r.Document != nil {
			docs = append(docs, r.Document)
		}
	}

	header, rows := export.DocumentHeader, export.DocumentRows(docs)
	if itemsOnly {
		header, rows = export.ItemHeader, export.ItemRows(docs)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// DecodeResult holds the result of decoding a single file
type DecodeResult struct {
	File     string          `json:"file"`
	Document *model.Document `json:"document,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
	Error    string          `json:"error,omitempty"`
	Kind     string          `json:"kind,omitempty"`
}
