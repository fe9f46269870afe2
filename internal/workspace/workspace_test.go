package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivoronin/scenefilter/internal/config"
	"github.com/ivoronin/scenefilter/internal/filter"
	"github.com/ivoronin/scenefilter/internal/scene"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.UserFilters = filepath.Join(t.TempDir(), "user.xml")
	return cfg
}

func TestOpenStock(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene = "testdata/room.yaml"
	cfg.Active = []string{"Caulk"}

	ws, err := Open(cfg, Options{})
	require.NoError(t, err)

	assert.Len(t, ws.System.FilterNames(), 19)
	assert.Equal(t, []string{"Caulk"}, ws.System.ActiveFilterNames())
	require.NotNil(t, ws.Scene)
	assert.True(t, scene.Find(ws.Scene, "floor").Filtered())
	assert.False(t, ws.Materials.IsVisible("textures/common/caulk"))
	assert.True(t, ws.Commands.Has("FilterCaulk"))
}

func TestOpenUnknownActive(t *testing.T) {
	cfg := testConfig(t)
	cfg.Active = []string{"Nope"}
	_, err := Open(cfg, Options{})
	assert.ErrorIs(t, err, filter.ErrNotFound)
}

func TestOpenDefinitionFiles(t *testing.T) {
	cfg := testConfig(t)
	cfg.Definitions = []string{"testdata/extra.xml"}

	ws, err := Open(cfg, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Lights"}, ws.System.FilterNames(), "bad definitions are skipped")

	cfg.Definitions = []string{"testdata/missing.xml"}
	_, err = Open(cfg, Options{})
	assert.Error(t, err)
}

func TestSceneOverride(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene = "testdata/missing.yaml"
	ws, err := Open(cfg, Options{Scene: "testdata/room.yaml"})
	require.NoError(t, err)
	assert.NotNil(t, ws.Scene)
}

func TestSaveAndReloadUserFilters(t *testing.T) {
	cfg := testConfig(t)
	ws, err := Open(cfg, Options{})
	require.NoError(t, err)

	r, err := filter.ParseRules("hide entityclass func_static")
	require.NoError(t, err)
	require.NoError(t, ws.System.AddFilter("No statics", r))
	ws.System.SetFilterState("No statics", true)
	require.NoError(t, ws.SaveUserFilters())

	again, err := Open(cfg, Options{})
	require.NoError(t, err)
	f, ok := again.System.Filter("No statics")
	require.True(t, ok)
	assert.False(t, f.IsReadOnly())
	assert.True(t, again.System.FilterState("No statics"))
	assert.Len(t, again.System.FilterNames(), 20)
}

func TestWatchedFiles(t *testing.T) {
	cfg := config.Default()
	cfg.Definitions = []string{"a.xml"}
	cfg.UserFilters = "user.xml"
	cfg.Scene = "scene.yaml"
	assert.Equal(t, []string{"a.xml", "user.xml", "scene.yaml"}, WatchedFiles(cfg, ""))
	assert.Equal(t, []string{"a.xml", "user.xml", "other.yaml"}, WatchedFiles(cfg, "other.yaml"))
}

func TestWatchReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entities: []\n"), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reloaded := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{path}, nil, func() {
			select {
			case reloaded <- struct{}{}:
			default:
			}
		})
	}()

	// give the watcher time to start, then keep touching the file until
	// a reload is observed
	ticker := time.NewTicker(3 * DebounceInterval)
	defer ticker.Stop()
	for {
		select {
		case <-reloaded:
			cancel()
			require.NoError(t, <-done)
			return
		case <-ticker.C:
			require.NoError(t, os.WriteFile(path, []byte("entities: []\n"), 0o644))
		case <-ctx.Done():
			t.Fatal("no reload observed")
		}
	}
}
