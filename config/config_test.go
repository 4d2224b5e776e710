package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vpic "github.com/delaossa/VisualPIC"
)

const run = `
[simulation]
code = osiris
folder = /data/lwfa
plasma-density = 1e24
`

func TestReadString(Te *testing.T) {
	c, err := ReadString(run)
	require.NoError(Te, err)
	require.NoError(Te, c.Validate())
	code, err := c.Code()
	require.NoError(Te, err)
	assert.Equal(Te, vpic.Osiris, code)
	assert.Equal(Te, "/data/lwfa", c.Simulation.Folder)
	assert.False(Te, c.Simulation.LaserWavelength.Set)
	p := c.Params()
	np, err := p.PlasmaDensity()
	require.NoError(Te, err)
	assert.Equal(Te, 1e24, np)
	l, err := p.LaserWavelength()
	require.NoError(Te, err)
	assert.Equal(Te, vpic.DefaultLaserWavelength, l)
}

func TestReadFile(Te *testing.T) {
	fname := filepath.Join(Te.TempDir(), "run.gcfg")
	require.NoError(Te, os.WriteFile(fname, []byte(run+"laser-wavelength = 1e-6\n"), 0o644))
	c, err := ReadFile(fname)
	require.NoError(Te, err)
	l, err := c.Params().LaserWavelength()
	require.NoError(Te, err)
	assert.Equal(Te, 1e-6, l)
	_, err = ReadFile(filepath.Join(Te.TempDir(), "none.gcfg"))
	assert.Error(Te, err)
}

func TestValidate(Te *testing.T) {
	c, err := ReadString("[simulation]\ncode = warpx\nplasma-density = -1\n")
	require.NoError(Te, err)
	err = c.Validate()
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, vpic.ErrUnsupportedCode))
	assert.Contains(Te, err.Error(), "no folder")
	assert.Contains(Te, err.Error(), "plasma density")
	_, err = ReadString("[simulation]\nplasma-density = lots\n")
	assert.Error(Te, err)
}

func TestDefaults(Te *testing.T) {
	Te.Setenv("VPIC_DATA", "/scratch")
	d, err := ParseDefaults(strings.NewReader(`
[defaults]
code = HiPACE
folder = $VPIC_DATA/run
laser-wavelength = 0.4e-6
`))
	require.NoError(Te, err)
	c, err := ReadString("[simulation]\ncode = openPMD\n")
	require.NoError(Te, err)
	require.NoError(Te, c.ApplyDefaults(d))
	assert.Equal(Te, "openPMD", c.Simulation.Code)
	assert.Equal(Te, "/scratch/run", c.Simulation.Folder)
	assert.False(Te, c.Simulation.PlasmaDensity.Set)
	assert.Equal(Te, OptFloat{Value: 0.4e-6, Set: true}, c.Simulation.LaserWavelength)
	require.NoError(Te, c.Validate())
}

func TestReadDefaults(Te *testing.T) {
	d, err := ReadDefaults(filepath.Join(Te.TempDir(), "missing"))
	require.NoError(Te, err)
	c := &Config{}
	require.NoError(Te, c.ApplyDefaults(d))
	assert.Equal(Te, Simulation{}, c.Simulation)

	fname := filepath.Join(Te.TempDir(), ".vpic")
	require.NoError(Te, os.WriteFile(fname, []byte("[defaults]\nplasma-density = x\n"), 0o644))
	d, err = ReadDefaults(fname)
	require.NoError(Te, err)
	assert.Error(Te, c.ApplyDefaults(d))

	Te.Setenv("HOME", "/home/someone")
	assert.Equal(Te, "/home/someone/.vpic", DefaultsFile())
}
