package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHGB(t *testing.T) {
	var (
		dir       = t.TempDir()
		inputFile = filepath.Join(dir, "hgb.yaml")
		hstFile   = filepath.Join(dir, "hgb.hst")
	)
	fileInput := []byte(`
Title: Test Case
Grid:
  nx1: 8
  nx2: 16
  nx3: 4
  x1min: -0.5
  x1max: 0.5
  x2min: -2.
  x2max: 2.
  x3min: -0.5
  x3max: 0.5
Problem:
  amp: 0.025
  beta: 4000
  ifield: 4
  ipert: 1
`)
	require.NoError(t, os.WriteFile(inputFile, fileInput, 0o644))
	{
		var out bytes.Buffer
		m := &ModelHGB{InputFile: inputFile, HistoryFile: hstFile, ParallelDegree: 2}
		require.NoError(t, RunHGB(m, &out))
		assert.Contains(t, out.String(), "Net Toroidal And Vertical Field")
		assert.Contains(t, out.String(), "Bz")
		assert.Contains(t, out.String(), "= Title")
		assert.NotContains(t, out.String(), "NaN")
		data, err := os.ReadFile(hstFile)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "#   [1]=time    [2]=mass"))
		assert.Contains(t, lines[0], "[9]=<-Bx By>")
		assert.Len(t, strings.Fields(lines[1]), 9)
	}
	{ // Restart writes only the history header, to the output stream
		var out bytes.Buffer
		m := &ModelHGB{InputFile: inputFile, ParallelDegree: 1, Restart: true}
		require.NoError(t, RunHGB(m, &out))
		assert.Contains(t, out.String(), "[3]=<rho Vx dVy>")
		assert.NotContains(t, out.String(), "StdDev")
		assert.NotContains(t, out.String(), "NaN")
		var hst []string
		for _, line := range strings.Split(out.String(), "\n") {
			if strings.HasPrefix(line, "#   [1]=time") {
				hst = append(hst, line)
			}
		}
		assert.Len(t, hst, 1)
		assert.NotContains(t, out.String(), "0.000000e+00") // no history row
		assert.NotContains(t, out.String(), "[10]=<dEw2>")
	}
	{ // Counting instructions falls back to a plain run when perf events are unavailable
		var out bytes.Buffer
		m := &ModelHGB{InputFile: inputFile, ParallelDegree: 1, Perf: true}
		require.NoError(t, RunHGB(m, &out))
		assert.Contains(t, out.String(), "StdDev")
	}
}

func TestRunHGBErrors(t *testing.T) {
	var out bytes.Buffer
	err := RunHGB(&ModelHGB{}, &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), "Example File")

	err = RunHGB(&ModelHGB{InputFile: filepath.Join(t.TempDir(), "missing.yaml")}, &out)
	assert.Error(t, err)

	err = RunHGB(&ModelHGB{ProfileMode: "block"}, &out)
	assert.Error(t, err)

	inputFile := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(inputFile, []byte(`
Grid: {nx1: 8, nx2: 8, x1min: 0, x1max: 1, x2min: 0, x2max: 1, x3min: 0, x3max: 1}
Problem: {amp: 0.1, beta: 100, ipert: 9}
`), 0o644))
	err = RunHGB(&ModelHGB{InputFile: inputFile}, &out)
	assert.Error(t, err)
}
