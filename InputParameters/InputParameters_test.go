package InputParameters

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hgbInput = []byte(`
Title: HGB zero net flux
Grid:
  nx1: 32
  nx2: 64
  nx3: 32
  x1min: -0.5
  x1max: 0.5
  x2min: -2.0
  x2max: 2.0
  x3min: -0.5
  x3max: 0.5
Problem:
  amp: 0.025
  beta: 4000
  ipert: 3
Physics:
  EOS: isothermal
  IsoCsound: 0.001
`)

func TestParse(t *testing.T) {
	var ip InputParametersHGB
	require.NoError(t, ip.Parse(hgbInput))
	assert.Equal(t, "HGB zero net flux", ip.Title)
	assert.Equal(t, 64, ip.Grid.Nx2)
	assert.Equal(t, 0.025, *ip.Problem.Amp)
	assert.Equal(t, 4000., *ip.Problem.Beta)
	assert.Equal(t, 3, *ip.Problem.IPert)
	// Defaults
	assert.Equal(t, DefaultOmega, *ip.Problem.Omega)
	assert.Equal(t, DefaultIField, *ip.Problem.IField)
	assert.Equal(t, 1, *ip.Problem.Nwz)
	assert.True(t, *ip.Physics.MHD)
	assert.False(t, ip.Adiabatic())
	assert.Equal(t, 0.001, *ip.Physics.IsoCsound)
	Nx, Xmin, Xmax := ip.GridBounds()
	assert.Equal(t, [3]int{32, 64, 32}, Nx)
	assert.Equal(t, [3]float64{-0.5, -2, -0.5}, Xmin)
	assert.Equal(t, [3]float64{0.5, 2, 0.5}, Xmax)
	var buf bytes.Buffer
	ip.Print(&buf)
	assert.Contains(t, buf.String(), "[32 x 64 x 32]\t\t= Grid")
	assert.Contains(t, buf.String(), "[isothermal]\t\t= EOS")
}

func TestValidate(t *testing.T) {
	var ip InputParametersHGB
	err := ip.Parse([]byte(`
Grid: {nx1: 8, nx2: 8, x1min: 0, x1max: 1, x2min: 0, x2max: 1, x3min: 0, x3max: 1}
Problem: {beta: 100}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Problem/amp")
	assert.Equal(t, 1, ip.Grid.Nx3)

	ip = InputParametersHGB{}
	err = ip.Parse([]byte(`
Grid: {x1min: 0, x1max: 1, x2min: 0, x2max: 1, x3min: 0, x3max: 1}
Problem: {amp: 0.1, beta: 100}
Physics: {Ohmic: true}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Problem/eta")

	ip = InputParametersHGB{}
	err = ip.Parse([]byte(`
Grid: {x1min: 0, x1max: 1, x2min: 0, x2max: 1, x3min: 0, x3max: 1}
Problem: {amp: 0.1, beta: 100}
Physics: {EOS: polytropic}
`))
	assert.Error(t, err)

	ip = InputParametersHGB{}
	err = ip.Parse([]byte(`
Grid: {x1min: 0, x1max: 1, x2min: 0, x2max: 1, x3min: 0}
Problem: {amp: 0.1, beta: 100}
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Grid/x3max")

	ip = InputParametersHGB{}
	assert.Error(t, ip.Parse([]byte("Grid: [")))
}

func TestReadFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "hgb.yaml")
	require.NoError(t, os.WriteFile(fileName, hgbInput, 0o644))
	ip, err := ReadFile(fileName)
	require.NoError(t, err)
	assert.Equal(t, 32, ip.Grid.Nx1)
	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
