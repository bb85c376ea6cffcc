package csv

import (
	stdcsv "encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := stdcsv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	header := []string{"login", "followers", "bio"}

	t.Run("writes the header immediately", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.csv")
		w, err := NewWriter(path, header)
		require.NoError(t, err)
		defer w.Close()

		rows := readAll(t, path)
		require.Len(t, rows, 1)
		assert.Equal(t, header, rows[0])
	})

	t.Run("round trips values exactly", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.csv")
		w, err := NewWriter(path, header)
		require.NoError(t, err)

		record := []string{"octocat", "12345", "likes, commas\nand newlines"}
		require.NoError(t, w.Write(record))
		require.NoError(t, w.Close())

		rows := readAll(t, path)
		require.Len(t, rows, 2)
		assert.Equal(t, record, rows[1])
	})

	t.Run("rows are readable before the writer is closed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.csv")
		w, err := NewWriter(path, header)
		require.NoError(t, err)
		defer w.Close()

		require.NoError(t, w.Write([]string{"a", "1", ""}))
		require.NoError(t, w.Write([]string{"b", "2", ""}))

		// Every row is flushed as it is written, so a crashed run
		// leaves all previously written rows intact.
		rows := readAll(t, path)
		assert.Len(t, rows, 3)
		assert.Equal(t, 2, w.Rows())
	})

	t.Run("rejects rows that do not match the header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "users.csv")
		w, err := NewWriter(path, header)
		require.NoError(t, err)
		defer w.Close()

		err = w.Write([]string{"only-one-field"})
		require.Error(t, err)
		assert.Equal(t, 0, w.Rows())
	})

	t.Run("fails when the directory does not exist", func(t *testing.T) {
		_, err := NewWriter(filepath.Join(t.TempDir(), "missing", "users.csv"), header)
		require.Error(t, err)
	})
}
