package InputParameters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const paraDoc = `
program:
  scalar_switch: false
  Only_longitudinal: true
  2D_switch: false
  Processors_X: 4
grid:
  Nx: 64
  Ny: 32
  Nz: 16
domain_dimension:
  Lx: 1.0
  Ly: 0.5
  Lz: 0.25
structure_function:
  q1: 1
  q2: 4
test:
  test_switch: true
`

func TestParse(t *testing.T) {
	ip := &Parameters{}
	require.NoError(t, ip.Parse([]byte(paraDoc)))
	assert.False(t, ip.Program.ScalarSwitch)
	assert.True(t, ip.Program.OnlyLongitudinal)
	assert.False(t, ip.Program.TwoDSwitch)
	assert.Equal(t, 4, ip.Program.ProcessorsX)
	assert.Equal(t, 64, ip.Grid.Nx)
	assert.Equal(t, 32, ip.Grid.Ny)
	assert.Equal(t, 16, ip.Grid.Nz)
	assert.Equal(t, 1.0, ip.DomainDimension.Lx)
	assert.Equal(t, 0.5, ip.DomainDimension.Ly)
	assert.Equal(t, 0.25, ip.DomainDimension.Lz)
	assert.Equal(t, 1, ip.StructureFunction.Q1)
	assert.Equal(t, 4, ip.StructureFunction.Q2)
	assert.True(t, ip.Test.TestSwitch)
}

func TestReadParameters(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "para.yaml")
	require.NoError(t, os.WriteFile(path, []byte(paraDoc), 0644))
	ip, err := ReadParameters(path)
	require.NoError(t, err)
	assert.Equal(t, 64, ip.Grid.Nx)

	_, err = ReadParameters(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	var ce *ConfigError
	assert.ErrorAs(t, err, &ce)
}

func TestStrToBool(t *testing.T) {
	for s, want := range map[string]bool{
		"true": true, "1": true, "false": false, "0": false,
	} {
		v, err := StrToBool(s)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	_, err := StrToBool("yes")
	assert.Error(t, err)
}
