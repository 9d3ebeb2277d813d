package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestOptionsGraphIsComplete(t *testing.T) {
	require.NoError(t, fx.ValidateApp(Options("")...))
}

func TestOptionsWithConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plume.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  port: 9099\n"), 0o644))

	assert.NoError(t, fx.ValidateApp(Options(path)...))
}
