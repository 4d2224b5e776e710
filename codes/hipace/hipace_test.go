package hipace

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vpic "github.com/delaossa/VisualPIC"
	"github.com/delaossa/VisualPIC/h5/h5test"
)

func folder(Te *testing.T) (string, *h5test.FS) {
	dir := Te.TempDir()
	fs := h5test.New()
	for _, i := range []int{10, 20, 30} {
		fs.Add(filepath.Join(dir, fmt.Sprintf("raw_drive_beam_%06d.h5", i))).
			SetAttr("", "TIME", []float64{float64(i)}).
			AddDataset("x1", []float64{1, 2, 3}, nil).
			AddDataset("p1", []float64{100, 200, 300}, nil).
			AddDataset("q", []float64{1e-15, 1e-15, 1e-15}, nil).
			AddDataset("tag", []float64{0, 1, 2}, nil)
		fs.Add(filepath.Join(dir, fmt.Sprintf("field_ExmBy_%06d.h5", i))).
			SetAttr("", "TIME", []float64{float64(i)}).
			AddDataset("ExmBy", [][][]float64{{{1, 2}, {3, 4}}, {{5, 6}, {7, 8}}}, nil)
	}
	fs.Add(filepath.Join(dir, "density_plasma_000020.h5")).
		SetAttr("", "TIME", []float64{20}).
		AddDataset("density", [][]float64{{1, 1}, {1, 1}}, nil)
	require.NoError(Te, fs.Touch())
	return dir, fs
}

func TestSpecies(Te *testing.T) {
	dir, fs := folder(Te)
	S := NewScanner(fs, vpic.DefaultParams())
	species, err := S.Species(dir)
	require.NoError(Te, err)
	require.Len(Te, species, 1)
	sp := species[0]
	assert.Equal(Te, "drive_beam", sp.Name())
	assert.Equal(Te, []int{10, 20, 30}, sp.Timesteps())
	x1, err := sp.RawDataSet("x1")
	require.NoError(Te, err)
	a, err := x1.Data(20)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{1, 2, 3}, a.Data)
	t, err := x1.Time(20)
	require.NoError(Te, err)
	assert.Equal(Te, 20.0, t)
	u, err := x1.Units()
	require.NoError(Te, err)
	assert.Equal(Te, `c/\omega_p`, u)
	tu, err := x1.TimeUnits()
	require.NoError(Te, err)
	assert.Equal(Te, `1/\omega_p`, tu)
	q, err := sp.RawDataSet("q")
	require.NoError(Te, err)
	u, err = q.Units()
	require.NoError(Te, err)
	assert.Equal(Te, "C", u)

	//No unit is made up for a dataset the table does not know.
	tag, err := sp.RawDataSet("tag")
	require.NoError(Te, err)
	_, err = tag.Units()
	assert.ErrorIs(Te, err, vpic.ErrMalformedSource)
	assert.Equal(Te, 0, fs.OpenFiles())
}

func TestNoTime(Te *testing.T) {
	dir := Te.TempDir()
	fs := h5test.New()
	fs.Add(filepath.Join(dir, "raw_witness_000005.h5")).
		AddDataset("x1", []float64{4, 5}, nil)
	require.NoError(Te, fs.Touch())
	species, err := NewScanner(fs, vpic.DefaultParams()).Species(dir)
	require.NoError(Te, err)
	require.Len(Te, species, 1)
	x1, err := species[0].RawDataSet("x1")
	require.NoError(Te, err)
	a, err := x1.Data(5)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{4, 5}, a.Data)
	_, err = x1.Time(5)
	assert.ErrorIs(Te, err, vpic.ErrMalformedSource)
	assert.Equal(Te, 0, fs.OpenFiles())
}

func TestUnitTables(Te *testing.T) {
	dir, fs := folder(Te)
	raw := DefaultRawUnits()
	raw.Data["tag"] = "1"
	raw.Time = "fs"
	assert.NotContains(Te, DefaultRawUnits().Data, "tag")
	S := NewScanner(fs, vpic.DefaultParams()).WithUnits(raw, DefaultFieldUnits())
	raw.Data["tag"] = "2"
	species, err := S.Species(dir)
	require.NoError(Te, err)
	tag, err := species[0].RawDataSet("tag")
	require.NoError(Te, err)
	u, err := tag.Units()
	require.NoError(Te, err)
	assert.Equal(Te, "1", u)
	tu, err := tag.TimeUnits()
	require.NoError(Te, err)
	assert.Equal(Te, "fs", tu)
}

func TestFields(Te *testing.T) {
	dir, fs := folder(Te)
	S := NewScanner(fs, vpic.DefaultParams())
	fields, err := S.Fields(dir)
	require.NoError(Te, err)
	require.Len(Te, fields, 2)
	wx := fields[0]
	assert.Equal(Te, "Wx", wx.Name())
	assert.Equal(Te, []int{10, 20, 30}, wx.Timesteps())
	g, err := wx.Geometry(10)
	require.NoError(Te, err)
	assert.Equal(Te, vpic.Cartesian3D, g)
	a, err := wx.Data(30)
	require.NoError(Te, err)
	assert.Equal(Te, []int{2, 2, 2}, a.Shape)
	u, err := wx.Units()
	require.NoError(Te, err)
	assert.Equal(Te, `m_e c \omega_p e^{-1}`, u)

	rho := fields[1]
	assert.Equal(Te, "rho", rho.Name())
	assert.Equal(Te, "plasma", rho.Species())
	assert.Equal(Te, []int{20}, rho.Timesteps())
	g, err = rho.Geometry(20)
	require.NoError(Te, err)
	assert.Equal(Te, vpic.Cartesian2D, g)
}

func TestSI(Te *testing.T) {
	dir, fs := folder(Te)
	S := NewScanner(fs, vpic.DefaultParams().SetPlasmaDensity(1e23))
	fields, err := S.Fields(dir)
	require.NoError(Te, err)
	u, err := fields[0].Units()
	require.NoError(Te, err)
	assert.Equal(Te, "V/m", u)
	tu, err := fields[0].TimeUnits()
	require.NoError(Te, err)
	assert.Equal(Te, "s", tu)
	t, err := fields[0].Time(10)
	require.NoError(Te, err)
	assert.Less(Te, t, 1e-9)
}

func TestFieldName(Te *testing.T) {
	assert.Equal(Te, "Wy", FieldName("EypBx"))
	assert.Equal(Te, "Ez", FieldName("Ez"))
}
