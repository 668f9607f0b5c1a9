package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rezonia/nfe-mapper/internal/codes"
)

var codesCmd = &cobra.Command{
	Use:   "codes [table]",
	Short: "List the code tables of layout 4.00",
	Long: `List the enumerated code tables and the variant each wire code maps to.
Without arguments every table is listed; pass a wire tag (e.g. modFrete) to
show one table.

Formats: table (default for this command), json, yaml.

Examples:
  nfe codes
  nfe codes indIEDest
  nfe codes -f yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCodes,
}

func init() {
	rootCmd.AddCommand(codesCmd)
}

func runCodes(cmd *cobra.Command, args []string) error {
	tables := codes.V400.Describe()
	if len(args) == 1 {
		var selected []codes.TableInfo
		for _, t := range tables {
			if t.Name == args[0] {
				selected = append(selected, t)
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("unknown code table: %s", args[0])
		}
		tables = selected
	}

	w := cmd.OutOrStdout()
	format := outputFormat
	if !cmd.Flags().Changed("format") {
		format = "table"
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(tables)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(tables); err != nil {
			return err
		}
		return encoder.Close()
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, t := range tables {
			fmt.Fprintf(tw, "%s (layout %s)\n", t.Name, t.Version)
			for _, e := range t.Entries {
				marker := ""
				if e.Variant == t.Default {
					marker = "default"
				}
				fmt.Fprintf(tw, "  %s\t%s\t%s\n", e.Code, e.Variant, marker)
			}
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
