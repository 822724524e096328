package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/passforge/passforge-go/internal/crypto"
	"github.com/passforge/passforge-go/internal/service"
)

var errNoHistory = errors.New("no history database configured; pass --history or set history_dsn")

func (a *App) historyCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded generation statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.history == nil {
				return errNoHistory
			}
			ctx := cmd.Context()

			stats, err := service.NewHistoryService(a.history).Stats(ctx)
			if err != nil {
				return fmt.Errorf("loading history stats: %w", err)
			}

			fmt.Fprintf(a.Out, "Total generations: %d\n", stats.Total)
			for _, r := range []crypto.Rating{crypto.Weak, crypto.Medium, crypto.Strong, crypto.VeryStrong} {
				fmt.Fprintf(a.Out, "  %-12s %d\n", string(r), stats.ByStrength[string(r)])
			}

			if limit <= 0 {
				return nil
			}
			recent, err := a.history.Recent(ctx, limit)
			if err != nil {
				return fmt.Errorf("loading recent history: %w", err)
			}
			if len(recent) == 0 {
				return nil
			}

			fmt.Fprintln(a.Out, headerStyle.Render("Recent"))
			for _, rec := range recent {
				preset := rec.Preset
				if preset == "" {
					preset = "-"
				}
				fmt.Fprintf(a.Out, "  %s  %-4s %-12s %4d  %-12s %6.1f bits  %s\n",
					rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					rec.Source, preset, rec.Length, rec.Strength, rec.EntropyBits, rec.Classes)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of recent generations to list")
	return cmd
}
