package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezonia/nfe-mapper/internal/export"
	"github.com/rezonia/nfe-mapper/internal/logger"
	"github.com/rezonia/nfe-mapper/internal/model"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export [files...]",
	Short: "Export documents and line items to an XLSX workbook",
	Long: `Decode NF-e files and write a workbook with two sheets:

  Documentos  one row per document
  Itens       one row per line item

Files that fail to decode are skipped and logged.

Examples:
  nfe export notas/ -o notas.xlsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "nfe.xlsx", "Output workbook")
}

func runExport(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to export")
	}

	results, err := decodeFiles(files)
	if err != nil {
		return err
	}

	log := logger.WithComponent("export")
	var docs []*model.Document
	for _, r := range results {
		if r.Error != "" {
			log.Warn().Str("file", r.File).Str("kind", r.Kind).Msg(r.Error)
			continue
		}
		docs = append(docs, r.Document)
	}

	w, closeOut, err := openOutput(exportOutput, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := export.WriteXLSX(w, docs); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}

	log.Info().Int("documents", len(docs)).Str("output", exportOutput).Msg("workbook written")
	return nil
}
