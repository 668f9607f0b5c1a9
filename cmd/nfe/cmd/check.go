package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/nfe-mapper/internal/model"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Check that documents survive a decode/encode cycle",
	Long: `Decode each file, encode the result and decode it again.

Reported per file:
  STABLE     the second decode equals the first
  CANONICAL  re-encoding reproduced the input bytes

Examples:
  nfe check nota.xml
  nfe check notas/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to check")
	}
	inputs, err := readFiles(files)
	if err != nil {
		return err
	}

	pipeline := newPipeline()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSTATUS\tSTABLE\tCANONICAL\tDETAIL")

	failed := 0
	for i, data := range inputs {
		res := pipeline.Check(context.Background(), data)
		if res.Error != nil {
			failed++
			kind, _ := model.KindOf(res.Error)
			fmt.Fprintf(tw, "%s\tFAIL\t-\t-\t%s: %v\n", files[i], kind, res.Error)
			continue
		}
		status := "OK"
		if !res.Stable {
			status = "UNSTABLE"
			failed++
		}
		detail := ""
		if len(res.Warnings) > 0 {
			detail = res.Warnings[0]
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\t%t\t%s\n", files[i], status, res.Stable, res.Canonical, detail)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed the check", failed, len(files))
	}
	return nil
}
