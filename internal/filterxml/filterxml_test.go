package filterxml

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivoronin/scenefilter/internal/filter"
)

func TestDecodeFilter(t *testing.T) {
	const in = `<filter name="Lights">
  <filterCriterion type="entityclass" match="light" action="hide"/>
  <filterCriterion type="entityclass" match="light_.*" action="hide"/>
  <filterCriterion type="entitykeyvalue" key="noshadows" match="1" action="show"/>
</filter>`

	f, err := DecodeFilter(strings.NewReader(in), true)
	require.NoError(t, err)

	assert.Equal(t, "Lights", f.Name())
	assert.Equal(t, "FilterLights", f.EventName())
	assert.True(t, f.IsReadOnly())

	rules := f.Rules()
	require.Len(t, rules, 3)
	assert.Equal(t, filter.KindEntityClass, rules[1].Kind())
	assert.Equal(t, "light_.*", rules[1].Match())
	assert.False(t, rules[1].Show())
	assert.Equal(t, filter.KindSpawnarg, rules[2].Kind())
	assert.Equal(t, "noshadows", rules[2].EntityKey())
	assert.True(t, rules[2].Show())
}

func TestDecodeFilterRejectsBadCriteria(t *testing.T) {
	tests := []struct {
		name    string
		crit    string
		wantErr error
	}{
		{"unknown type", `type="shader" match="x" action="hide"`, filter.ErrInvalidRule},
		{"unknown action", `type="texture" match="x" action="toggle"`, filter.ErrInvalidRule},
		{"spawnarg without key", `type="entitykeyvalue" match="1" action="hide"`, filter.ErrInvalidRule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := `<filter name="Bad"><filterCriterion ` + tt.crit + `/></filter>`
			_, err := DecodeFilter(strings.NewReader(in), false)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := DecodeFilter(strings.NewReader(`<filter name="Bad"><filterCriterion type="texture" match="(" action="hide"/></filter>`), false)
	var perr *filter.PatternError
	assert.True(t, errors.As(err, &perr), "want *PatternError, got %v", err)
}

func TestFilterRoundTrip(t *testing.T) {
	f := filter.New("Round trip", false)
	require.NoError(t, f.AddRule(filter.TextureQuery{Match: "textures/common/caulk"}, false))
	require.NoError(t, f.AddRule(filter.PrimitiveQuery{Type: filter.PrimitivePatch}, true))
	require.NoError(t, f.AddRule(filter.SpawnArgQuery{Key: "hidden", ValueMatch: "1"}, false))

	var buf bytes.Buffer
	require.NoError(t, EncodeFilter(&buf, f))

	out := buf.String()
	assert.Contains(t, out, `<filter name="Round trip">`)
	assert.Contains(t, out, `type="object" match="patch" action="show"`)
	assert.Equal(t, 1, strings.Count(out, `key=`), "key is only written for entitykeyvalue")

	back, err := DecodeFilter(&buf, false)
	require.NoError(t, err)
	assert.Equal(t, f.Name(), back.Name())
	assert.True(t, back.Rules().Equal(f.Rules()))
}

func TestDecodeGroup(t *testing.T) {
	const in = `<filterGroup name="testGroup">
  <filters>
    <filter>Lights</filter>
    <filter>Brushes</filter>
  </filters>
</filterGroup>`

	g, err := DecodeGroup(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "testGroup", g.Name())
	assert.Equal(t, 2, g.Len())
	assert.True(t, g.Contains("Lights"))
	assert.True(t, g.Contains("Brushes"))
	assert.False(t, g.Contains("NotIncluded"))
}

func TestDecodeGroupWrongRoot(t *testing.T) {
	_, err := DecodeGroup(strings.NewReader(`<notAFilterGroup name="x"/>`))
	assert.ErrorIs(t, err, filter.ErrMalformed)

	_, err = DecodeGroup(strings.NewReader(``))
	assert.ErrorIs(t, err, filter.ErrMalformed)
}

func TestGroupRoundTrip(t *testing.T) {
	g := filter.NewGroup("Geometry", "Brushes", "Patches")

	var buf bytes.Buffer
	require.NoError(t, EncodeGroup(&buf, g))
	back, err := DecodeGroup(&buf)
	require.NoError(t, err)
	assert.Equal(t, g.FilterNames(), back.FilterNames())
}

func TestReadDocumentVersion(t *testing.T) {
	tests := []struct {
		name    string
		attr    string
		wantErr bool
	}{
		{"current", `version="1.0"`, false},
		{"missing", ``, false},
		{"future major", `version="2.0"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := `<filtersystem ` + tt.attr + `><filter name="A"/></filtersystem>`
			_, err := ReadDocument(strings.NewReader(in))
			if tt.wantErr {
				assert.ErrorIs(t, err, filter.ErrMalformed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDocumentFileRoundTrip(t *testing.T) {
	doc := &Document{
		Filters: []FilterElement{
			ElementFromFilter(mustFilter(t, "My Filter", filter.TextureQuery{Match: "textures/a"})),
		},
		Groups: []GroupElement{ElementFromGroup(filter.NewGroup("Mine", "My Filter"))},
		Active: []ActiveElement{{Name: "My Filter"}},
	}

	path := filepath.Join(t.TempDir(), "nested", "user.xml")
	require.NoError(t, SaveFile(path, doc))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "<?xml"))
	assert.Contains(t, string(raw), `<filtersystem version="1.0">`)

	back, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, back.Filters, 1)
	assert.Equal(t, "My Filter", back.Filters[0].Name)
	assert.Equal(t, []string{"My Filter"}, back.ActiveNames())
	require.Len(t, back.Groups, 1)
	assert.Equal(t, []string{"My Filter"}, back.Groups[0].Filters)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.xml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func mustFilter(t *testing.T, name string, q filter.Query) *filter.Filter {
	t.Helper()
	f := filter.New(name, false)
	require.NoError(t, f.AddRule(q, false))
	return f
}
