// Package cli is the exsolver command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"exsolver/internal/config"
	"exsolver/internal/corpus"
	"exsolver/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

type rootOptions struct {
	examplesDir string
	logLevel    string
	output      string
}

// NewRootCommand builds the command tree. Defaults come from cfg.
func NewRootCommand(cfg config.Config) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "exsolver",
		Short:         "Solve accounting exercises from solved examples",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.examplesDir, "examples-dir", cfg.ExamplesDir, "directory of solved example documents")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.output, "output", "o", OutputText, "output format (text, json)")

	cmd.AddCommand(
		newResolveCommand(cfg, opts),
		newExamplesCommand(opts),
		newExtractCommand(opts),
		newClassifyCommand(opts),
	)
	return cmd
}

// logger writes console logs to stderr so stdout stays parseable.
func (o *rootOptions) logger() (*zap.Logger, error) {
	return logging.New(logging.Config{
		Level:       o.logLevel,
		Format:      "console",
		OutputPaths: []string{"stderr"},
	})
}

func (o *rootOptions) validateOutput() error {
	if o.output != OutputText && o.output != OutputJSON {
		return fmt.Errorf("unknown output format %q (want text or json)", o.output)
	}
	return nil
}

func (o *rootOptions) loadCorpus(cmd *cobra.Command) (*corpus.Repository, error) {
	log, err := o.logger()
	if err != nil {
		return nil, err
	}
	repo := corpus.NewRepository(o.examplesDir, log, nil)
	if err := repo.Reload(cmd.Context()); err != nil {
		return nil, err
	}
	return repo, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
