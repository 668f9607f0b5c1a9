package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rezonia/nfe-mapper/internal/model"
	"github.com/rezonia/nfe-mapper/internal/processor"
)

var encodeOutput string

var encodeCmd = &cobra.Command{
	Use:   "encode [file|-]",
	Short: "Encode a JSON document as NF-e XML",
	Long: `Encode a document in the JSON form produced by "nfe decode" back into
NF-e 4.00 XML. The output is compact canonical XML unless --indent is set.

A decode result object ({"file":...,"document":{...}}) is accepted as well
as a bare document. Use "-" to read from stdin.

Examples:
  nfe encode nota.json -o nota.xml
  nfe decode nota.xml | nfe encode - --indent 2`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringVarP(&encodeOutput, "output", "o", "", "Output file (default: stdout)")
	encodeCmd.Flags().BoolVar(&model55, "model55", false, "Require a model 55 NF-e with a named, addressed recipient")
}

func runEncode(cmd *cobra.Command, args []string) error {
	data, err := readInput(args[0], cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	doc, err := parseDocumentJSON(data)
	if err != nil {
		return err
	}

	out, err := newPipeline(processor.WithModel55(model55)).Encode(doc)
	if err != nil {
		return err
	}

	w, closeOut, err := openOutput(encodeOutput, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOut()

	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w)
	return err
}

// parseDocumentJSON accepts a bare document or a decode result wrapping one
func parseDocumentJSON(data []byte) (*model.Document, error) {
	var wrapped struct {
		Document *model.Document `json:"document"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("invalid document JSON: %w", err)
	}
	if wrapped.Document != nil {
		return wrapped.Document, nil
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid document JSON: %w", err)
	}
	return &doc, nil
}
