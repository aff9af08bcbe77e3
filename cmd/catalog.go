package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/levelup/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate level catalogs",
}

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the levels and questions of the active catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, _ := cmd.Flags().GetBool("answers")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := resolveCatalog(cmd, cfg)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		printCatalog(cmd.OutOrStdout(), cat, answers)
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a JSON catalog file for errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d levels, %d questions)\n", args[0], cat.Len(), cat.QuestionCount())
		return nil
	},
}

func init() {
	catalogShowCmd.Flags().Bool("answers", false, "Mark the correct option of each question")

	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}

func printCatalog(w io.Writer, cat *catalog.Catalog, answers bool) {
	for _, l := range cat.Levels() {
		fmt.Fprintf(w, "Level %d  %s\n", l.Number, l.Title)
		fmt.Fprintln(w, strings.Repeat("─", 60))
		for i, q := range l.Questions {
			fmt.Fprintf(w, "%d. %s\n", i+1, q.Prompt)
			for _, opt := range q.Options {
				mark := " "
				if answers && q.IsCorrect(opt) {
					mark = "*"
				}
				fmt.Fprintf(w, "   %s %s\n", mark, opt)
			}
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d levels, %d questions\n", cat.Len(), cat.QuestionCount())
}
