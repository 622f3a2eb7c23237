package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigRequiresProjectPath(t *testing.T) {
	_, err := NewConfig(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ProjectPath")
}

func TestNewConfigKeepsValues(t *testing.T) {
	cfg, err := NewConfig(Config{
		ProjectPath: "casa.hcl",
		LogLevel:    "debug",
		UseCatalog:  true,
		RayTrace:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "casa.hcl", cfg.ProjectPath)
	assert.True(t, cfg.UseCatalog)
	assert.True(t, cfg.RayTrace)
}
