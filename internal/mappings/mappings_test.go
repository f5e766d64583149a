package mappings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/txclean/internal/model"
)

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.yaml")
	list := []model.Mapping{
		{From: "amazon mktpl", To: "Amazon"},
		{From: "John Smith", To: "J. Smith"},
	}
	require.NoError(t, Save(path, list))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, list, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "from: amazon mktpl")
	assert.Contains(t, string(data), "to: Amazon")
}

func TestLoad_Missing(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestLoad_JSONAndSanitize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.json")
	body := `[
  {"from": "  amazon   mktpl ", "to": "Amazon"},
  {"from": "", "to": "Nothing"},
  {"from": "blank to", "to": "   "},
  {"to": "missing from"},
  {"from": "GEICO", "to": "Geico  Insurance"}
]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []model.Mapping{
		{From: "amazon mktpl", To: "Amazon"},
		{From: "GEICO", To: "Geico Insurance"},
	}, got)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("from: [unclosed"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing mappings")
}

func TestUpsert(t *testing.T) {
	list := []model.Mapping{{From: "Foo", To: "A"}, {From: "Bar", To: "B"}}

	got, err := Upsert(list, "  FOO ", "Z")
	require.NoError(t, err)
	assert.Equal(t, []model.Mapping{{From: "FOO", To: "Z"}, {From: "Bar", To: "B"}}, got)
	assert.Equal(t, "A", list[0].To, "input untouched")

	got, err = Upsert(list, "Baz", " C ")
	require.NoError(t, err)
	assert.Equal(t, model.Mapping{From: "Baz", To: "C"}, got[2])
	assert.Len(t, list, 2)

	_, err = Upsert(list, " ", "x")
	assert.ErrorIs(t, err, ErrEmptyMapping)
	_, err = Upsert(list, "x", "")
	assert.ErrorIs(t, err, ErrEmptyMapping)
}

func TestRemove(t *testing.T) {
	list := []model.Mapping{{From: "Foo", To: "A"}, {From: "Bar", To: "B"}}

	got, ok := Remove(list, "bar")
	assert.True(t, ok)
	assert.Equal(t, []model.Mapping{{From: "Foo", To: "A"}}, got)
	assert.Len(t, list, 2)

	got, ok = Remove(list, "nope")
	assert.False(t, ok)
	assert.Equal(t, list, got)
}

func TestRemoveAt(t *testing.T) {
	list := []model.Mapping{{From: "a", To: "1"}, {From: "b", To: "2"}, {From: "c", To: "3"}}

	got, err := RemoveAt(list, 1)
	require.NoError(t, err)
	assert.Equal(t, []model.Mapping{{From: "a", To: "1"}, {From: "c", To: "3"}}, got)
	assert.Equal(t, "b", list[1].From)

	_, err = RemoveAt(list, 3)
	assert.Error(t, err)
	_, err = RemoveAt(list, -1)
	assert.Error(t, err)
}
