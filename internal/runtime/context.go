package runtime

import (
	"io"

	"kiro.dev/kiro-merge/internal/config"
	"kiro.dev/kiro-merge/internal/git"
	"kiro.dev/kiro-merge/internal/merge"
	"kiro.dev/kiro-merge/internal/output"
)

// Context provides access to configuration, output and the merger for commands
type Context struct {
	Config *config.Config
	Splog  *output.Splog
	Merger *merge.Merger
}

// NewContext creates a context from cfg, logging to the given streams.
// The caller must Close the context to flush the optional log file.
func NewContext(cfg *config.Config, stdout, stderr io.Writer) (*Context, error) {
	splog, err := output.NewSplogWithConfig(cfg, stdout, stderr)
	if err != nil {
		return nil, err
	}

	runner := git.NewCommandRunner(cfg.GitBinary)
	resolver := merge.NewEnvResolver(runner, cfg.TmpDir, splog)

	return &Context{
		Config: cfg,
		Splog:  splog,
		Merger: merge.NewMerger(splog, resolver),
	}, nil
}

// Close releases the log file, if any
func (c *Context) Close() error {
	return c.Splog.Close()
}
