// Package workspace assembles a filter system from configuration: filter
// definitions, the user's own filters and an optional scene.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/ivoronin/scenefilter/internal/command"
	"github.com/ivoronin/scenefilter/internal/config"
	"github.com/ivoronin/scenefilter/internal/filter"
	"github.com/ivoronin/scenefilter/internal/filtersystem"
	"github.com/ivoronin/scenefilter/internal/filterxml"
	"github.com/ivoronin/scenefilter/internal/logging"
	"github.com/ivoronin/scenefilter/internal/material"
	"github.com/ivoronin/scenefilter/internal/observe"
	"github.com/ivoronin/scenefilter/internal/scene"
	"github.com/ivoronin/scenefilter/internal/stock"
)

// Options are the collaborators of a workspace. Nil fields get defaults.
type Options struct {
	Logger  *slog.Logger
	Metrics *observe.Metrics
	// Scene overrides the configured scene path when non-empty.
	Scene string
}

// Workspace is a loaded filter system with its scene and materials.
type Workspace struct {
	System    *filtersystem.System
	Materials *material.Registry
	Commands  *command.Registry
	Scene     *scene.BaseNode

	cfg *config.Config
	log *slog.Logger
}

// Open builds a workspace. Broken filter definitions are logged and
// skipped; unreadable files and a broken scene are errors.
func Open(cfg *config.Config, opts Options) (*Workspace, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	ws := &Workspace{
		Materials: material.NewRegistry(),
		Commands:  command.NewRegistry(),
		cfg:       cfg,
		log:       log,
	}
	ws.System = filtersystem.New(filtersystem.Options{
		Logger:    log,
		Commands:  ws.Commands,
		Materials: ws.Materials,
		Metrics:   opts.Metrics,
		Matcher:   filter.NewMatcher(cfg.Regex.CacheSize, cfg.Regex.Timeout, log),
	})

	if err := ws.loadDefinitions(); err != nil {
		return nil, err
	}
	if err := ws.loadUserFilters(); err != nil {
		return nil, err
	}

	scenePath := cfg.Scene
	if opts.Scene != "" {
		scenePath = opts.Scene
	}
	if scenePath != "" {
		if err := ws.LoadScene(scenePath); err != nil {
			return nil, err
		}
	}

	for _, name := range cfg.Active {
		if _, ok := ws.System.Filter(name); !ok {
			return nil, fmt.Errorf("active filter %q: %w", name, filter.ErrNotFound)
		}
		ws.System.SetFilterState(name, true)
	}
	ws.System.Update()
	return ws, nil
}

func (ws *Workspace) loadDefinitions() error {
	if len(ws.cfg.Definitions) == 0 {
		ws.report("stock", ws.System.Load(stock.Document(), true))
		return nil
	}
	for _, path := range ws.cfg.Definitions {
		doc, err := filterxml.LoadFile(path)
		if err != nil {
			return fmt.Errorf("load definitions: %w", err)
		}
		ws.report(path, ws.System.Load(doc, true))
	}
	return nil
}

func (ws *Workspace) loadUserFilters() error {
	path := ws.cfg.UserFilters
	if path == "" {
		return nil
	}
	doc, err := filterxml.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		ws.log.Debug("no user filters", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load user filters: %w", err)
	}
	ws.report(path, ws.System.Load(doc, false))
	return nil
}

func (ws *Workspace) report(source string, err error) {
	if err == nil {
		return
	}
	for _, e := range unjoin(err) {
		ws.log.Warn("skipped filter definition", "source", source, "error", e)
	}
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}

// LoadScene replaces the scene and registers its materials.
func (ws *Workspace) LoadScene(path string) error {
	root, err := scene.Load(path)
	if err != nil {
		return err
	}
	ws.SetScene(root)
	return nil
}

// SetScene attaches root and updates it.
func (ws *Workspace) SetScene(root *scene.BaseNode) {
	ws.Scene = root
	for _, m := range scene.Materials(root) {
		ws.Materials.Capture(m)
	}
	ws.System.SetSceneRoot(root)
	ws.System.Update()
}

// SaveUserFilters writes the user filters, user groups and active filter
// names to the configured user filter file.
func (ws *Workspace) SaveUserFilters() error {
	path := ws.cfg.UserFilters
	if path == "" {
		return errors.New("no user filter file configured")
	}
	if err := filterxml.SaveFile(path, ws.System.Export()); err != nil {
		return fmt.Errorf("save user filters: %w", err)
	}
	ws.log.Debug("user filters saved", "path", path)
	return nil
}
