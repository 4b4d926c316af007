package commands

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"git.home.luguber.info/inful/postbuilder/internal/logfields"
	"git.home.luguber.info/inful/postbuilder/internal/metrics"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	JSON bool `name:"json" help:"Print summaries as JSON"`
}

func (l *ListCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}

	store := NewStore(cfg, g.Logger, metrics.NoopRecorder{})
	summaries, err := store.SortedSummaries(ctx)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		g.Logger.Warn("No posts found",
			logfields.Root(store.Root()),
			slog.Any("extensions", store.Extensions()))
	}

	if l.JSON {
		return writeJSON(g.out(), summaries)
	}

	tw := tabwriter.NewWriter(g.out(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DATE\tID\tTITLE")
	for _, s := range summaries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Date, s.ID, s.Title)
	}
	return tw.Flush()
}
