package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/postbuilder/internal/metrics"
	"git.home.luguber.info/inful/postbuilder/internal/posts"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	ID   string `arg:"" help:"Post id (filename without extension)"`
	JSON bool   `name:"json" help:"Print the rendered post as JSON"`
}

func (r *RenderCmd) Run(ctx context.Context, g *Global, root *CLI) error {
	cfg, err := root.LoadConfig(g)
	if err != nil {
		return err
	}

	store := NewStore(cfg, g.Logger, metrics.NoopRecorder{})
	var res posts.RenderResult
	select {
	case res = <-store.RenderAsync(ctx, r.ID):
	case <-ctx.Done():
		return ctx.Err()
	}
	if res.Err != nil {
		return res.Err
	}

	if r.JSON {
		return writeJSON(g.out(), res.Post)
	}
	_, err = fmt.Fprint(g.out(), res.Post.ContentHTML)
	return err
}
