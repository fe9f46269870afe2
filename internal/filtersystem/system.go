// Package filtersystem holds the registry of scene filters, decides item
// visibility from the active ones and pushes the result into the scene
// graph.
package filtersystem

import (
	"context"
	"log/slog"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/ivoronin/scenefilter/internal/command"
	"github.com/ivoronin/scenefilter/internal/filter"
	"github.com/ivoronin/scenefilter/internal/logging"
	"github.com/ivoronin/scenefilter/internal/observe"
	"github.com/ivoronin/scenefilter/internal/scene"
	"github.com/ivoronin/scenefilter/internal/signal"
)

// Materials receives the visibility of every known shader on update.
type Materials interface {
	Names() []string
	SetVisible(name string, visible bool)
}

// Options configures a System. Zero values are replaced with working
// defaults.
type Options struct {
	Logger    *slog.Logger
	Commands  *command.Registry
	Materials Materials
	Metrics   *observe.Metrics
	// Matcher is shared by every filter the system builds. nil gets one
	// with default limits.
	Matcher   *filter.Matcher
}

type cacheKey struct {
	kind filter.Kind
	name string
}

type groupEntry struct {
	group    *filter.Group
	readOnly bool
}

// System is the filter system. It is not safe for concurrent use.
type System struct {
	log       *slog.Logger
	commands  *command.Registry
	materials Materials
	metrics   *observe.Metrics
	matcher   *filter.Matcher
	root      scene.Node

	available *filterTable
	active    *filterTable
	groups    *orderedmap.OrderedMap[string, groupEntry]
	states    []*filterTable
	adapters  map[*filter.Filter]*eventAdapter
	cache     map[cacheKey]bool

	configChanged     *signal.Signal
	collectionChanged *signal.Signal
}

// New creates an empty filter system and registers its global commands.
func New(opts Options) *System {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	cmds := opts.Commands
	if cmds == nil {
		cmds = command.NewRegistry()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = observe.DefaultMetrics()
	}
	matcher := opts.Matcher
	if matcher == nil {
		matcher = filter.NewMatcher(0, 0, log)
	}

	s := &System{
		log:               log,
		commands:          cmds,
		materials:         opts.Materials,
		metrics:           metrics,
		matcher:           matcher,
		available:         newFilterTable(),
		active:            newFilterTable(),
		groups:            orderedmap.New[string, groupEntry](),
		adapters:          make(map[*filter.Filter]*eventAdapter),
		cache:             make(map[cacheKey]bool),
		configChanged:     signal.New("filter-config-changed", log),
		collectionChanged: signal.New("filter-collection-changed", log),
	}
	s.registerGlobalCommands()
	return s
}

// SetSceneRoot sets the graph updated by Update. nil detaches the scene.
func (s *System) SetSceneRoot(root scene.Node) { s.root = root }

// SceneRoot returns the attached scene graph.
func (s *System) SceneRoot() scene.Node { return s.root }

// Commands returns the registry holding the filter commands.
func (s *System) Commands() *command.Registry { return s.commands }

// ConfigChanged fires whenever the set of active filters or the rules of an
// active filter change.
func (s *System) ConfigChanged() *signal.Signal { return s.configChanged }

// CollectionChanged fires when filters are added, removed or renamed.
func (s *System) CollectionChanged() *signal.Signal { return s.collectionChanged }

// IsVisible reports whether an item of the given kind is visible under the
// active filters. Results are cached until the next configuration change.
func (s *System) IsVisible(kind filter.Kind, name string) bool {
	key := cacheKey{kind: kind, name: name}
	if v, ok := s.cache[key]; ok {
		s.metrics.RecordQuery(context.Background(), true)
		return v
	}

	visible := true
	for _, f := range s.active.values() {
		if v, matched := f.Verdict(kind, name); matched {
			visible = v
		}
	}
	s.cache[key] = visible
	s.metrics.RecordQuery(context.Background(), false)
	return visible
}

// IsEntityVisible reports whether e is visible under the active filters.
func (s *System) IsEntityVisible(e filter.Entity) bool {
	visible := true
	for _, f := range s.active.values() {
		if v, matched := f.EntityVerdict(e); matched {
			visible = v
		}
	}
	return visible
}

func (s *System) invalidate() {
	clear(s.cache)
}

// configure runs after any change to the active configuration.
func (s *System) configure() {
	s.invalidate()
	s.configChanged.Emit()
	s.Update()
}
