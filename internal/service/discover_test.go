package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/batchenc/internal/domain"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestDiscoverInputs(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.MOV"))
	touch(t, filepath.Join(dir, "a.mov"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "day2", "c.MOV"))

	tests := []struct {
		name      string
		pattern   string
		recursive bool
		want      []string
	}{
		{
			name: "default filter is case-insensitive",
			want: []string{filepath.Join(dir, "a.mov"), filepath.Join(dir, "b.MOV")},
		},
		{
			name:      "recursive",
			recursive: true,
			want: []string{
				filepath.Join(dir, "a.mov"),
				filepath.Join(dir, "b.MOV"),
				filepath.Join(dir, "day2", "c.MOV"),
			},
		},
		{
			name:    "custom filter",
			pattern: "*.txt",
			want:    []string{filepath.Join(dir, "notes.txt")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DiscoverInputs(dir, tt.pattern, tt.recursive)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscoverInputs_Errors(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "notes.txt"))

	_, err := DiscoverInputs(filepath.Join(dir, "missing"), "", false)
	assert.ErrorIs(t, err, domain.ErrInputDirNotFound)

	_, err = DiscoverInputs(filepath.Join(dir, "notes.txt"), "", false)
	assert.ErrorIs(t, err, domain.ErrInputDirNotFound)

	_, err = DiscoverInputs(dir, "", false)
	assert.ErrorIs(t, err, domain.ErrNoFiles)

	_, err = DiscoverInputs(dir, "[", false)
	assert.Error(t, err)
}
