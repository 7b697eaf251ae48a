package fetcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVReadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	header := []string{"model_name", "count"}
	rows := [][]string{
		{"ModelA", "2"},
		{"ModelB", "1"},
	}

	require.NoError(t, WriteCSV(path, header, rows))

	got, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, header, got[0])
	assert.Equal(t, rows[0], got[1])
	assert.Equal(t, rows[1], got[2])
}

func TestWriteCSVNoHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, WriteCSV(path, nil, [][]string{{"only", "data"}}))

	got, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"only", "data"}, got[0])
}

func TestWriteColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "phones.csv")

	require.NoError(t, WriteColumn(path, []string{"13800000001", "13800000002"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "13800000001\n13800000002\n", string(data))
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestReadCSVVariableFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "var.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\nd,e\n"), 0o644))

	got, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0], 3)
	assert.Len(t, got[1], 2)
}
