package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validProject = `
building "casa" {
  climate = "D3"
}

polygon "planta" {
  vertices = ["0,0", "10,0", "10,5", "0,5"]
}

material "fabrica" {
  conductivity = 0.5
  density      = 1200
}

wall_cons "fachada" {
  layers = "fabrica:0.25"
}

space "salon" {
  polygon = "planta"
  height  = 3

  wall "muro_sur" {
    bounds       = "EXTERIOR"
    construction = "fachada"
    location     = "V1"
    azimuth      = 180
  }
}
`

func TestRun_ReportsProject(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "casa.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(validProject), 0o600))

	out := &bytes.Buffer{}
	err := run(out, []string{"-log-level", "error", filePath})
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	require.Contains(t, report, "K_data")
	require.Contains(t, report, "n50_data")
}

func TestRun_InvalidProjectFails(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "roto.hcl")
	require.NoError(t, os.WriteFile(filePath, []byte(`space "a" {`), 0o600))

	out := &bytes.Buffer{}
	err := run(out, []string{"-log-level", "error", filePath})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load project")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"--this-is-not-a-valid-flag"})
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
