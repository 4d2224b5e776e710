package picongpu

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vpic "github.com/delaossa/VisualPIC"
	"github.com/delaossa/VisualPIC/h5/h5test"
)

func TestPIConGPU(Te *testing.T) {
	dir := Te.TempDir()
	fs := h5test.New()
	fs.Add(filepath.Join(dir, "simData_2000.h5")).
		SetAttr("data/2000", "time", 2.0).
		SetAttr("data/2000", "timeUnitSI", 1e-16).
		SetAttr("data/2000/meshes/E", "unitDimension", []float64{1, 1, -3, -1, 0, 0, 0}).
		AddDataset("data/2000/meshes/E/y", [][]float64{{1, 2}, {3, 4}}, nil).
		SetAttr("data/2000/particles/e/position", "unitDimension", []float64{1, 0, 0, 0, 0, 0, 0}).
		AddDataset("data/2000/particles/e/position/y", []float64{1, 2}, nil)
	require.NoError(Te, fs.Touch())
	S := NewScanner(fs)

	fields, err := S.Fields(dir)
	require.NoError(Te, err)
	require.Len(Te, fields, 1)
	assert.Equal(Te, "Ey", fields[0].Name())
	a, err := fields[0].Data(2000)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{1, 2, 3, 4}, a.Data)

	species, err := S.Species(dir)
	require.NoError(Te, err)
	require.Len(Te, species, 1)
	assert.Equal(Te, []string{"y"}, species[0].RawDataSetNames())
	assert.Equal(Te, []int{2000}, species[0].Timesteps())
	y, err := species[0].RawDataSet("y")
	require.NoError(Te, err)
	_, err = y.Data(2000)
	assert.ErrorIs(Te, err, vpic.ErrUnsupportedCode)
	_, err = y.Units()
	assert.ErrorIs(Te, err, vpic.ErrUnsupportedCode)
	_, err = y.Time(2000)
	assert.ErrorIs(Te, err, vpic.ErrUnsupportedCode)

	_, err = S.Fields(filepath.Join(dir, "nope"))
	assert.ErrorIs(Te, err, vpic.ErrNotFound)
}
