package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Anusha-2024/Mini-Journal/internal/app"
	"github.com/Anusha-2024/Mini-Journal/internal/service/journal"
)

func (r *runner) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the collection as a JSON backup",
		Long: "Write the collection as a JSON backup. Without --output the backup goes to stdout; " +
			"a directory as --output receives the dated backup filename.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withJournal(cmd, func(ctx context.Context, j *app.Journal) error {
				data, err := j.Service.ExportCollection(ctx)
				if err != nil {
					return err
				}

				if output == "" || output == "-" {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}

				path := output
				if info, err := os.Stat(output); err == nil && info.IsDir() {
					path = filepath.Join(output, journal.ExportFilename(time.Now().In(j.Location)))
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write backup: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "backup file or directory")
	return cmd
}

func (r *runner) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the collection with a JSON backup (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			return r.withJournal(cmd, func(ctx context.Context, j *app.Journal) error {
				entries, err := j.Service.ImportCollection(ctx, data)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries\n", len(entries))
				return nil
			})
		},
	}
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup: %w", err)
	}
	return data, nil
}
