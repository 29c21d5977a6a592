package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"exsolver/internal/config"
	"exsolver/internal/resolver"
	"exsolver/internal/similarity"

	"github.com/spf13/cobra"
)

type resolveOptions struct {
	text          string
	file          string
	topN          int
	minSimilarity float64
}

func newResolveCommand(cfg config.Config, root *rootOptions) *cobra.Command {
	opts := &resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Adapt the closest solved example to a new exercise",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd, root, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.text, "text", "", "exercise statement")
	f.StringVar(&opts.file, "file", "", "file holding the exercise statement, - for stdin")
	f.IntVar(&opts.topN, "top-n", cfg.TopN, "number of similar examples to keep")
	f.Float64Var(&opts.minSimilarity, "min-similarity", cfg.MinSimilarity, "minimum similarity of a kept example")
	cmd.MarkFlagsMutuallyExclusive("text", "file")
	cmd.MarkFlagsOneRequired("text", "file")
	return cmd
}

func (o *resolveOptions) problem(stdin io.Reader) (string, error) {
	if o.file == "" {
		return o.text, nil
	}
	var (
		b   []byte
		err error
	)
	if o.file == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(o.file)
	}
	if err != nil {
		return "", fmt.Errorf("read exercise: %w", err)
	}
	return string(b), nil
}

func runResolve(cmd *cobra.Command, root *rootOptions, opts *resolveOptions) error {
	if err := root.validateOutput(); err != nil {
		return err
	}
	if opts.topN <= 0 || opts.minSimilarity < 0 || opts.minSimilarity >= 1 {
		return errors.New("--top-n must be positive and --min-similarity within [0,1)")
	}
	problem, err := opts.problem(cmd.InOrStdin())
	if err != nil {
		return err
	}
	if strings.TrimSpace(problem) == "" {
		return errors.New("the exercise statement is empty")
	}

	repo, err := root.loadCorpus(cmd)
	if err != nil {
		return err
	}
	log, err := root.logger()
	if err != nil {
		return err
	}
	res := resolver.New(repo, log, nil).Resolve(problem, similarity.Options{TopN: opts.topN, MinSimilarity: opts.minSimilarity})

	if root.output == OutputJSON {
		return printJSON(cmd.OutOrStdout(), res)
	}
	printResult(cmd.OutOrStdout(), res)
	return nil
}

func printResult(w io.Writer, res resolver.Result) {
	fmt.Fprintln(w, res.Message)
	fmt.Fprintf(w, "Confiance : %.0f%%\n", res.Confidence*100)
	fmt.Fprintf(w, "Diagnostic : %s\n", res.Diagnostic)
	if len(res.SimilarExamples) > 0 {
		fmt.Fprintln(w, "Exemples similaires :")
		for _, ex := range res.SimilarExamples {
			fmt.Fprintf(w, "  - %s (%.2f, %s)\n", ex.ID, ex.Similarity, ex.Category)
		}
	}
	for _, warn := range res.Warnings {
		fmt.Fprintf(w, "Attention : %s\n", warn)
	}
	if res.Success {
		fmt.Fprintln(w)
		fmt.Fprintln(w, res.SolutionText)
	}
}
