package cmd

import (
	"github.com/itsmostafa/pdfextbook/internal/extract"
	"github.com/itsmostafa/pdfextbook/internal/outline"
	"github.com/spf13/cobra"
)

var listLabels bool

var listCmd = &cobra.Command{
	Use:   "list FILE",
	Short: "Print the resolved bookmark ranges as JSON",
	Long: `Print every bookmark that passes the level filter with its resolved page range
as a JSON array. An open end page (through the last page) is omitted.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := newRun(cmd, args[0])
		if err != nil {
			return err
		}

		ranges, err := extract.Ranges(cmd.Context(), run)
		if err != nil {
			return err
		}

		if listLabels {
			return extract.WriteLabels(cmd.OutOrStdout(), outline.Labels(ranges))
		}
		return extract.WriteRanges(cmd.OutOrStdout(), ranges)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listLabels, "labels", false, `Print "title [start-end]" labels instead of objects`)
	rootCmd.AddCommand(listCmd)
}
