package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Anusha-2024/Mini-Journal/internal/app"
	"github.com/Anusha-2024/Mini-Journal/internal/domain"
	"github.com/Anusha-2024/Mini-Journal/internal/service/browse"
	"github.com/Anusha-2024/Mini-Journal/internal/service/journal"
)

func (r *runner) listCommand() *cobra.Command {
	var search, mood, sortBy string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, optionally filtered and sorted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := browse.ParseSortKey(sortBy)
			if err != nil {
				return err
			}
			q := domain.EntryQuery{Search: search, Mood: mood, SortBy: key}
			if err := q.Validate(); err != nil {
				return err
			}

			return r.withJournal(cmd, func(ctx context.Context, j *app.Journal) error {
				entries := j.Browser.FilterAndSort(j.Service.ListEntries(ctx), q)
				return printJSON(cmd.OutOrStdout(), entries)
			})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "case-insensitive substring of title or text")
	cmd.Flags().StringVar(&mood, "mood", "", `mood to keep ("all" for every mood)`)
	cmd.Flags().StringVar(&sortBy, "sort", "newest", "newest, oldest or title")
	return cmd
}

func (r *runner) getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withJournal(cmd, func(ctx context.Context, j *app.Journal) error {
				e, ok := j.Service.GetEntry(ctx, args[0])
				if !ok {
					return fmt.Errorf("entry %s: %w", args[0], domain.ErrNotFound)
				}
				return printJSON(cmd.OutOrStdout(), e)
			})
		},
	}
}

func (r *runner) saveCommand() *cobra.Command {
	var in journal.SaveInput

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Create an entry, or replace the one named by --id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withJournal(cmd, func(ctx context.Context, j *app.Journal) error {
				saved, err := j.Service.SaveEntry(ctx, in)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), saved)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.ID, "id", "", "id of the entry to replace (empty creates a new one)")
	f.StringVar(&in.Title, "title", "", "entry title")
	f.StringVar(&in.Text, "text", "", "entry body")
	f.StringVar(&in.Mood, "mood", "", "mood emoji")
	f.StringArrayVar(&in.Stickers, "sticker", nil, "sticker to attach (repeatable)")
	f.StringVar(&in.ImageURL, "image", "", "image URL or data URL")
	f.StringVar(&in.DoodleDataURL, "doodle", "", "doodle data URL")
	f.StringVar(&in.MusicURL, "music", "", "music link")
	return cmd
}

func (r *runner) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withJournal(cmd, func(ctx context.Context, j *app.Journal) error {
				deleted, err := j.Service.DeleteEntry(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), map[string]bool{"deleted": deleted})
			})
		},
	}
}

func (r *runner) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withJournal(cmd, func(ctx context.Context, j *app.Journal) error {
				stats := browse.ComputeStats(j.Service.ListEntries(ctx), time.Now(), j.Location)
				return printJSON(cmd.OutOrStdout(), stats)
			})
		},
	}
}
