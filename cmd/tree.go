package cmd

import (
	"path/filepath"

	"github.com/itsmostafa/pdfextbook/internal/extract"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:          "tree FILE",
	Short:        "Show the bookmark outline as a tree with page ranges",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := newRun(cmd, args[0])
		if err != nil {
			return err
		}

		nodes, err := extract.Tree(cmd.Context(), run)
		if err != nil {
			return err
		}

		extract.RenderTree(cmd.OutOrStdout(), filepath.Base(args[0]), nodes)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
