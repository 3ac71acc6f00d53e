// Package cli implements the journal command line tool on cobra. Every
// command opens the configured backend, runs one operation and closes it.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Anusha-2024/Mini-Journal/internal/app"
	"github.com/Anusha-2024/Mini-Journal/internal/config"
)

type runner struct {
	configPath string
}

// NewRootCommand builds the journal command tree.
func NewRootCommand() *cobra.Command {
	r := &runner{}

	root := &cobra.Command{
		Use:           "journal",
		Short:         "Mini Memory Journal",
		Long:          "Manage journal entries stored in the configured backend.",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&r.configPath, "config", "c", "", "path to config file (default $CONFIG_PATH or ./config.yaml)")

	root.AddCommand(
		r.listCommand(),
		r.getCommand(),
		r.saveCommand(),
		r.deleteCommand(),
		r.exportCommand(),
		r.importCommand(),
		r.statsCommand(),
	)
	return root
}

func (r *runner) loadConfig() (*config.Config, error) {
	if r.configPath != "" {
		return config.LoadFile(r.configPath, true)
	}
	return config.Load()
}

// withJournal opens the journal for the duration of fn.
func (r *runner) withJournal(cmd *cobra.Command, fn func(ctx context.Context, j *app.Journal) error) (err error) {
	cfg, err := r.loadConfig()
	if err != nil {
		return err
	}

	logger := app.NewLogger(cfg.Log)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	j, err := app.OpenJournal(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := j.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(ctx, j)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
