package cmd

import (
	"fmt"
	"os"

	"github.com/itsmostafa/pdfextbook/internal/extract"
	"github.com/itsmostafa/pdfextbook/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pdfextbook [flags] FILE",
	Short: "Extract PDF pages on bookmark boundaries",
	Long: `pdfextbook lists the bookmarks of a PDF with the page range each one covers,
lets you pick one with a fuzzy finder and saves those pages to a new file.

With --all-levels every bookmark of a level is extracted to PREFIX0.pdf,
PREFIX1.pdf, ... in outline order.

PDF bookmarks point to a single page, so the end page is found by scanning
forward: with --end-page-mode exact a bookmark ends where the next bookmark of
the same level starts; with less-or-equal (the default) it also ends at the
next bookmark of a higher level. The last bookmark runs to the last page.`,
	Example: `  pdfextbook book.pdf
  pdfextbook -m 1 -E pdftk book.pdf
  pdfextbook -a 1 --prefix out/chapter book.pdf`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := newRun(cmd, args[0])
		if err != nil {
			return err
		}
		return extract.Run(cmd.Context(), run)
	},
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Template("pdfextbook"))

	registerFlags(rootCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}
