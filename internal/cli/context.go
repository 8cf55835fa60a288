package cli

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/artisanexperiences/fieldcheck/internal/config"
	"github.com/artisanexperiences/fieldcheck/internal/engine"
	"github.com/artisanexperiences/fieldcheck/internal/fs"
	"github.com/artisanexperiences/fieldcheck/internal/rules"
	"github.com/artisanexperiences/fieldcheck/internal/ui"
)

// ProjectContext is the loaded project a command works on.
type ProjectContext struct {
	FS     fs.FS
	Config *config.Config
	Logger *log.Logger

	registry     *rules.Registry
	registryInit sync.Once
}

// OpenProject loads the configuration named by the --config flag.
func OpenProject(cmd *cobra.Command) (*ProjectContext, error) {
	return openProject(fs.Default, mustGetString(cmd, "config"), commandLogger(cmd))
}

func openProject(fsys fs.FS, path string, logger *log.Logger) (*ProjectContext, error) {
	cfg, err := config.LoadProject(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}
	logger.Debug("loaded config", "path", cfg.Path, "fields", cfg.Fields.Len())

	return &ProjectContext{
		FS:     fsys,
		Config: cfg,
		Logger: logger,
	}, nil
}

// commandLogger builds the logger for cmd from the global output flags.
func commandLogger(cmd *cobra.Command) *log.Logger {
	logger := ui.NewLogger(cmd.ErrOrStderr(), mustGetBool(cmd, "verbose"), mustGetBool(cmd, "quiet"))
	if noColor {
		ui.DisableColor(logger)
	}
	return logger
}

// Registry returns the rule registry for the project, logging through the
// project logger.
func (pc *ProjectContext) Registry() *rules.Registry {
	pc.registryInit.Do(func() {
		pc.registry = rules.Default().Clone().SetLogger(pc.Logger)
	})
	return pc.registry
}

// EngineOptions returns the engine options for the project configuration.
func (pc *ProjectContext) EngineOptions() engine.Options {
	opts := pc.Config.EngineOptions()
	opts.Registry = pc.Registry()
	opts.Logger = pc.Logger
	return opts
}
