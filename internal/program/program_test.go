package program

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hassan/langcore/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_CleanProgramHasNoErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app.lc", `mutable struct Point {
    mutable x: int32;
    mutable y: int32;

    constructor(x: int32, y: int32) {
        this.x = x;
        this.y = y;
    }
}
`)

	res, err := Run(context.Background(), config.Default(), zap.NewNop(), []string{path})
	require.NoError(t, err)
	assert.False(t, res.HasErrors(), "parse=%v collect=%v resolve=%v", res.ParseErrors, res.CollectErrors, res.ResolveErrors)
	assert.Len(t, res.Files, 1)
}

func TestRun_CollectsErrorsAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.lc", `struct Good {
    immutable x: int32;
}
`)
	bad := writeFile(t, dir, "bad.lc", `struct Bad {
    mutable x: int32;
}
`)

	res, err := Run(context.Background(), config.Default(), zap.NewNop(), []string{good, bad})
	require.NoError(t, err)
	assert.True(t, res.HasErrors())
	assert.NotEmpty(t, res.ResolveErrors)
}

func TestRun_MissingFileErrors(t *testing.T) {
	_, err := Run(context.Background(), config.Default(), zap.NewNop(), []string{"/no/such/file.lc"})
	assert.Error(t, err)
}
