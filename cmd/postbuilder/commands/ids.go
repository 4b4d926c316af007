package commands

import (
	"context"

	"git.home.luguber.info/inful/postbuilder/internal/metrics"
)

// IDsCmd implements the 'ids' command.
type IDsCmd struct{}

func (i *IDsCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}

	ids, err := NewStore(cfg, g.Logger, metrics.NoopRecorder{}).IDs(ctx)
	if err != nil {
		return err
	}
	return writeJSON(g.out(), ids)
}
