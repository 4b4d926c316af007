package commands

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/postbuilder/internal/config"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
	"git.home.luguber.info/inful/postbuilder/internal/markdown"
	"git.home.luguber.info/inful/postbuilder/internal/metrics"
	"git.home.luguber.info/inful/postbuilder/internal/observability"
	"git.home.luguber.info/inful/postbuilder/internal/posts"
)

// Global carries state shared by all commands.
type Global struct {
	Logger *slog.Logger
	// Out receives command output; Err receives log records. Both default to
	// the process streams.
	Out io.Writer
	Err io.Writer
}

func (g *Global) out() io.Writer {
	if g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) errOut() io.Writer {
	if g.Err == nil {
		return os.Stderr
	}
	return g.Err
}

// CLI definition & global flags.
type CLI struct {
	Config   string           `short:"c" help:"Configuration file path" default:"postbuilder.yaml"`
	Verbose  bool             `short:"v" help:"Enable verbose logging"`
	PostsDir string           `name:"posts-dir" help:"Posts directory (overrides posts.directory)"`
	Version  kong.VersionFlag `name:"version" help:"Show version and exit"`

	List   ListCmd   `cmd:"" help:"List post summaries, newest first"`
	IDs    IDsCmd    `cmd:"" name:"ids" help:"Print post route identifiers as JSON"`
	Render RenderCmd `cmd:"" help:"Render a single post to HTML"`
	Export ExportCmd `cmd:"" help:"Write the post index, ids and rendered posts as JSON"`
	Init   InitCmd   `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; sets up logging until the
// configuration is loaded.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(observability.NewLogger(os.Stderr, c.level(slog.LevelInfo), false))
	return nil
}

func (c *CLI) level(fallback slog.Level) slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	return fallback
}

// LoadConfig loads the configuration file, applies flag overrides and
// reconfigures logging from it.
func (c *CLI) LoadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.PostsDir != "" {
		cfg.Posts.Directory = c.PostsDir
	}

	logger := observability.NewLogger(g.errOut(),
		c.level(cfg.Logging.Level.SlogLevel()),
		cfg.Logging.Format == config.LogFormatJSON)
	slog.SetDefault(logger)
	g.Logger = logger

	logger.Debug("Configuration loaded",
		slog.String("source", cfg.Source),
		logfields.Root(cfg.Posts.Directory))
	return cfg, nil
}

// NewStore builds the posts store described by cfg.
func NewStore(cfg *config.Config, logger *slog.Logger, recorder metrics.Recorder) *posts.Store {
	return posts.NewStore(cfg.Posts.Directory,
		posts.WithExtensions(cfg.Posts.Extensions...),
		posts.WithRenderer(markdown.NewRenderer(cfg.MarkdownOptions())),
		posts.WithRecorder(recorder),
		posts.WithLogger(logger),
	)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
