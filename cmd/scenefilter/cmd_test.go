package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivoronin/scenefilter/internal/filter"
	"github.com/ivoronin/scenefilter/internal/filterxml"
)

const roomScene = "testdata/room.yaml"

// isolate points the config directory at a temporary directory so tests
// never see the user's own settings, and returns the user filter path.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "SCENEFILTER_") {
			key, _, _ := strings.Cut(kv, "=")
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
	return filepath.Join(dir, "scenefilter", "filters.xml")
}

// executeCommand runs a fresh root command with args and returns captured
// stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()
	assert.Equal(t, "scenefilter", root.Use)

	want := []string{"list", "rules", "groups", "query", "eval", "select", "filter", "exec", "watch", "version"}
	var got []string
	for _, c := range root.Commands() {
		got = append(got, c.Name())
	}
	assert.ElementsMatch(t, want, got)
}

func TestListCommand(t *testing.T) {
	isolate(t)

	out, err := executeCommand(t, "list", "--active", "Caulk")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 20, "header plus 19 stock filters")
	assert.Contains(t, lines[0], "EVENT")
	assert.Contains(t, out, "FilterCaulk")

	out, err = executeCommand(t, "list", "--only-active", "-j", "--active", "Caulk")
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Caulk", entries[0]["name"])
	assert.Equal(t, true, entries[0]["read_only"])
}

func TestRulesCommand(t *testing.T) {
	isolate(t)

	out, err := executeCommand(t, "rules", "Lights")
	require.NoError(t, err)
	assert.Contains(t, out, "light_.*")

	_, err = executeCommand(t, "rules", "Nope")
	assert.ErrorIs(t, err, filter.ErrNotFound)
}

func TestGroupsCommand(t *testing.T) {
	isolate(t)

	out, err := executeCommand(t, "groups", "--enable", "Geometry")
	require.NoError(t, err)
	var geometry string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Geometry") {
			geometry = line
		}
	}
	assert.Contains(t, geometry, "yes")
	assert.Contains(t, geometry, "Brushes, Patches")

	_, err = executeCommand(t, "groups", "--enable", "Nope")
	assert.ErrorIs(t, err, filter.ErrNotFound)
}

func TestQueryCommand(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"inactive filter", []string{"query", "texture", "textures/common/caulk"}, true},
		{"active filter", []string{"query", "--active", "Caulk", "texture", "textures/common/caulk"}, false},
		{"with flag", []string{"query", "--with", "Lights", "entityclass", "light"}, false},
		{"object", []string{"query", "--active", "Patches", "object", "patch"}, false},
		{"entity", []string{"query", "--with", "Lights", "entity", "light", "name=light_1"}, false},
		{"entity other class", []string{"query", "--with", "Lights", "entity", "func_static"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, append(tt.args, "-j")...)
			require.NoError(t, err)
			var results []struct {
				Visible bool `json:"visible"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &results))
			require.Len(t, results, 1)
			assert.Equal(t, tt.want, results[0].Visible)
		})
	}

	_, err := executeCommand(t, "query", "shader", "x")
	assert.ErrorIs(t, err, filter.ErrInvalidRule)
	_, err = executeCommand(t, "query", "entity", "light", "novalue")
	assert.Error(t, err)
}

func TestEvalCommand(t *testing.T) {
	isolate(t)

	out, err := executeCommand(t, "eval", "--active", "Caulk", roomScene)
	require.NoError(t, err)
	assert.Contains(t, out, "2 of 8 nodes filtered; active filters: Caulk")
	assert.Contains(t, out, "hidden materials: textures/common/caulk")

	out, err = executeCommand(t, "eval", "-j", "--stats", "--active", "Lights", roomScene)
	require.NoError(t, err)
	var report struct {
		Nodes []struct {
			Name     string `json:"name"`
			Filtered bool   `json:"filtered"`
		} `json:"nodes"`
		Stats struct {
			Updates int64 `json:"updates"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	filtered := map[string]bool{}
	for _, n := range report.Nodes {
		filtered[n.Name] = n.Filtered
	}
	assert.True(t, filtered["light_1"])
	assert.True(t, filtered["light_0"])
	assert.False(t, filtered["floor"])
	assert.Positive(t, report.Stats.Updates)
}

func TestEvalFailOnFiltered(t *testing.T) {
	isolate(t)

	_, err := executeCommand(t, "eval", "--fail-on-filtered", "--active", "Lights", roomScene)
	require.Error(t, err)
	assert.Equal(t, ExitFiltered, exitCode(err))

	_, err = executeCommand(t, "eval", roomScene)
	assert.Equal(t, ExitSuccess, exitCode(err))

	_, err = executeCommand(t, "eval")
	assert.Equal(t, ExitInputError, exitCode(err), "no scene given")
}

func TestSelectCommand(t *testing.T) {
	isolate(t)

	out, err := executeCommand(t, "select", "-j", "Lights", roomScene)
	require.NoError(t, err)
	var report struct {
		Nodes []struct {
			Name     string `json:"name"`
			Selected bool   `json:"selected"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	var selected []string
	for _, n := range report.Nodes {
		if n.Selected {
			selected = append(selected, n.Name)
		}
	}
	assert.ElementsMatch(t, []string{"light_1", "light_0"}, selected)
}

func TestFilterCommands(t *testing.T) {
	userFile := isolate(t)

	_, err := executeCommand(t, "filter", "add", "No statics", "hide entityclass func_static")
	require.NoError(t, err)

	doc, err := filterxml.LoadFile(userFile)
	require.NoError(t, err)
	require.Len(t, doc.Filters, 1)
	assert.Equal(t, "No statics", doc.Filters[0].Name)

	_, err = executeCommand(t, "filter", "add", "No statics", "hide texture x")
	assert.ErrorIs(t, err, filter.ErrNameConflict)

	_, err = executeCommand(t, "filter", "set-rules", "No statics", "hide", "texture", "textures/base/.*")
	require.NoError(t, err)
	out, err := executeCommand(t, "rules", "No statics")
	require.NoError(t, err)
	assert.Contains(t, out, "textures/base/.*")

	_, err = executeCommand(t, "filter", "rename", "No statics", "No base")
	require.NoError(t, err)
	_, err = executeCommand(t, "filter", "enable", "No base")
	require.NoError(t, err)

	out, err = executeCommand(t, "list", "--only-active")
	require.NoError(t, err)
	assert.Contains(t, out, "FilterNoBase")

	_, err = executeCommand(t, "filter", "remove", "Caulk")
	assert.ErrorIs(t, err, filter.ErrReadOnly)

	_, err = executeCommand(t, "filter", "remove", "No base")
	require.NoError(t, err)
	doc, err = filterxml.LoadFile(userFile)
	require.NoError(t, err)
	assert.Empty(t, doc.Filters)
	assert.Empty(t, doc.ActiveNames())
}

func TestFilterAddInvalidRules(t *testing.T) {
	isolate(t)
	_, err := executeCommand(t, "filter", "add", "Broken", "hide texture (")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rules")
}

func TestExecCommand(t *testing.T) {
	isolate(t)

	out, err := executeCommand(t, "exec", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "FilterLights")
	assert.Contains(t, out, "ResetFilters")

	out, err = executeCommand(t, "exec", "-j", "FilterLights", "on")
	require.NoError(t, err)
	var entries []struct {
		Name   string `json:"name"`
		Active bool   `json:"active"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	for _, e := range entries {
		assert.Equal(t, e.Name == "Lights", e.Active, e.Name)
	}

	out, err = executeCommand(t, "exec", "--scene", roomScene, "ActivateAllFilters")
	require.NoError(t, err)
	assert.Contains(t, out, "8 of 8 nodes filtered")

	_, err = executeCommand(t, "exec", "NoSuchCommand")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	isolate(t)
	cfgFile := filepath.Join(t.TempDir(), "scenefilter.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("active: [Caulk]\nscene: "+roomScene+"\n"), 0o644))

	out, err := executeCommand(t, "eval", "--config", cfgFile)
	require.NoError(t, err)
	assert.Contains(t, out, "active filters: Caulk")

	_, err = executeCommand(t, "list", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = executeCommand(t, "list", "--log-level", "loud")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "scenefilter dev")

	out, err = executeCommand(t, "version", "-j")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"format":"1.0"`)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, exitCode(nil))
	assert.Equal(t, ExitInputError, exitCode(errors.New("bad")))
	assert.Equal(t, ExitFiltered, exitCode(&exitError{code: ExitFiltered}))
}
