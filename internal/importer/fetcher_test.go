package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSourceDataFirstMatchWins(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.json")
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")
	require.NoError(t, os.WriteFile(first, []byte(`[{"name":"first"}]`), 0o644))
	require.NoError(t, os.WriteFile(second, []byte(`[{"name":"second"}]`), 0o644))

	data, path, err := FindSourceData([]string{missing, first, second})
	require.NoError(t, err)
	assert.Equal(t, first, path)

	records := toRecords(data)
	require.Len(t, records, 1)
	assert.Equal(t, "first", records[0]["name"])
}

func TestFindSourceDataSkipsUnparseable(t *testing.T) {
	dir := t.TempDir()

	corrupt := filepath.Join(dir, "corrupt.json")
	valid := filepath.Join(dir, "valid.json")
	require.NoError(t, os.WriteFile(corrupt, []byte(`{not json`), 0o644))
	require.NoError(t, os.WriteFile(valid, []byte(`{"name":"ok"}`), 0o644))

	_, path, err := FindSourceData([]string{corrupt, valid})
	require.NoError(t, err)
	assert.Equal(t, valid, path)
}

func TestFindSourceDataNotFound(t *testing.T) {
	dir := t.TempDir()

	_, _, err := FindSourceData([]string{filepath.Join(dir, "nope.json")})
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestToRecordsWrapsSingleObject(t *testing.T) {
	records := toRecords(map[string]interface{}{"name": "solo"})
	require.Len(t, records, 1)
	assert.Equal(t, "solo", records[0]["name"])
}

func TestToRecordsNonObjectElements(t *testing.T) {
	records := toRecords([]interface{}{"just a string", float64(5)})
	require.Len(t, records, 2)
	assert.Empty(t, records[0])
	assert.Empty(t, records[1])
}
