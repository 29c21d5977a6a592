package cli

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"exsolver/internal/classify"
	"exsolver/internal/extract"
	"exsolver/internal/util"

	"github.com/spf13/cobra"
)

func requireText(text string) (string, error) {
	text = util.NormalizeText(text)
	if strings.TrimSpace(text) == "" {
		return "", errors.New("--text is required")
	}
	return text, nil
}

func newExtractCommand(root *rootOptions) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Show the accounting facts found in a text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := root.validateOutput(); err != nil {
				return err
			}
			t, err := requireText(text)
			if err != nil {
				return err
			}
			d := extract.Extract(t)
			if root.output == OutputJSON {
				return printJSON(cmd.OutOrStdout(), d)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Comptes : %s\n", strings.Join(d.Accounts, ", "))
			fmt.Fprintf(w, "Montants : %s\n", strings.Join(d.Amounts, " | "))
			fmt.Fprintf(w, "Dates : %s\n", strings.Join(d.Dates, ", "))
			fmt.Fprintf(w, "Opérations : %d\n", len(d.Transactions))
			fmt.Fprintf(w, "Mots-clés : %s\n", strings.Join(d.Keywords, ", "))
			for _, name := range sortedKeys(d.Entities) {
				fmt.Fprintf(w, "%s : %s\n", name, d.Entities[name])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "text to analyse")
	return cmd
}

func newClassifyCommand(root *rootOptions) *cobra.Command {
	var text string
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Show the topic detected for a text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := root.validateOutput(); err != nil {
				return err
			}
			t, err := requireText(text)
			if err != nil {
				return err
			}
			category := classify.Classify(t)
			scores := classify.Scores(t)
			if root.output == OutputJSON {
				return printJSON(cmd.OutOrStdout(), map[string]any{"category": category, "scores": scores})
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, category)
			for _, c := range classify.Categories() {
				fmt.Fprintf(w, "  %s: %d\n", c, scores[c])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "text to classify")
	return cmd
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
