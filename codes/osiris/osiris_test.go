package osiris

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vpic "github.com/delaossa/VisualPIC"
	"github.com/delaossa/VisualPIC/h5/h5test"
	"github.com/delaossa/VisualPIC/units"
)

func rawPath(dir string, step int) string {
	return filepath.Join(dir, "MS", "RAW", "electrons", fmt.Sprintf("RAW-electrons-%06d.h5", step))
}

//rawFolder builds an Osiris folder with the electrons species at steps 0 to 10.
func rawFolder(Te *testing.T) (string, *h5test.FS) {
	dir := Te.TempDir()
	fs := h5test.New()
	for i := 0; i <= 10; i++ {
		fs.Add(rawPath(dir, i)).
			SetAttr("", "TIME", []float64{float64(i) * 0.5}).
			SetAttr("", "TIME UNITS", `1/\omega_p`).
			AddDataset("x1", []float64{float64(i), float64(i) + 1}, map[string]interface{}{"UNITS": `c/\omega_p`}).
			AddDataset("p1", []float64{10, 20}, map[string]interface{}{"UNITS": `m_e c`})
	}
	require.NoError(Te, fs.Touch())
	return dir, fs
}

func TestRawCaching(Te *testing.T) {
	dir, fs := rawFolder(Te)
	S := NewScanner(fs, vpic.DefaultParams())
	species, err := S.Species(dir)
	require.NoError(Te, err)
	require.Len(Te, species, 1)
	sp := species[0]
	assert.Equal(Te, "electrons", sp.Name())
	assert.ElementsMatch(Te, []string{"p1", "x1"}, sp.RawDataSetNames())
	assert.Equal(Te, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, sp.Timesteps())
	x1, err := sp.RawDataSet("x1")
	require.NoError(Te, err)

	a, err := x1.Data(5)
	require.NoError(Te, err)
	b, err := x1.Data(5)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{5, 6}, a.Data)
	assert.Equal(Te, a, b)
	assert.Equal(Te, 1, fs.Opens(rawPath(dir, 5)))
	t, err := x1.Time(5)
	require.NoError(Te, err)
	assert.Equal(Te, 2.5, t)
	assert.Equal(Te, 1, fs.Opens(rawPath(dir, 5)))

	_, err = x1.Data(6)
	require.NoError(Te, err)
	_, err = x1.Data(5)
	require.NoError(Te, err)
	assert.Equal(Te, 2, fs.Opens(rawPath(dir, 5)))
	assert.Equal(Te, 0, fs.OpenFiles())

	u, err := x1.Units()
	require.NoError(Te, err)
	assert.Equal(Te, `c/\omega_p`, u)
	tu, err := x1.TimeUnits()
	require.NoError(Te, err)
	assert.Equal(Te, `1/\omega_p`, tu)

	_, err = x1.Data(11)
	assert.ErrorIs(Te, err, vpic.ErrNotFound)
}

func TestRawSI(Te *testing.T) {
	dir, fs := rawFolder(Te)
	p := vpic.DefaultParams().SetPlasmaDensity(1e24)
	S := NewScanner(fs, p)
	species, err := S.Species(dir)
	require.NoError(Te, err)
	x1, err := species[0].RawDataSet("x1")
	require.NoError(Te, err)
	n := units.NewNormalizer(1e24)
	a, err := x1.Data(2)
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{2 * n.SkinDepth(), 3 * n.SkinDepth()}, a.Data, 1e-15)
	t, err := x1.Time(2)
	require.NoError(Te, err)
	assert.InDelta(Te, 1/n.PlasmaFrequency(), t, 1e-25)
	u, _ := x1.Units()
	assert.Equal(Te, "m", u)
	tu, _ := x1.TimeUnits()
	assert.Equal(Te, "s", tu)
	//momenta are left alone
	p1, err := species[0].RawDataSet("p1")
	require.NoError(Te, err)
	b, err := p1.Data(2)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{10, 20}, b.Data)
}

func TestFields(Te *testing.T) {
	dir := Te.TempDir()
	fs := h5test.New()
	for _, i := range []int{0, 100, 200} {
		fs.Add(filepath.Join(dir, "MS", "FLD", "e1", fmt.Sprintf("e1-%06d.h5", i))).
			SetAttr("", "TIME", []float64{float64(i)}).
			SetAttr("", "TIME UNITS", `1/\omega_p`).
			AddDataset("AXIS/AXIS1", []float64{0, 10}, nil).
			AddDataset("AXIS/AXIS2", []float64{-5, 5}, nil).
			AddDataset("e1", [][]float64{{1, 2, 3}, {4, 5, 6}}, map[string]interface{}{"UNITS": `m_e c \omega_p e^{-1}`})
	}
	fs.Add(filepath.Join(dir, "MS", "DENSITY", "electrons", "charge", "charge-electrons-000100.h5")).
		SetAttr("", "TIME", []float64{100}).
		SetAttr("", "TIME UNITS", `1/\omega_p`).
		AddDataset("charge", [][]float64{{-1, -1}, {-1, -1}}, map[string]interface{}{"UNITS": `e \omega_p^2 / c^2`})
	require.NoError(Te, fs.Touch())

	S := NewScanner(fs, vpic.DefaultParams())
	fields, err := S.Fields(dir)
	require.NoError(Te, err)
	require.Len(Te, fields, 2)
	ez := fields[0]
	assert.Equal(Te, "Ez", ez.Name())
	assert.Equal(Te, "", ez.Species())
	assert.Equal(Te, []int{0, 100, 200}, ez.Timesteps())
	g, err := ez.Geometry(100)
	require.NoError(Te, err)
	assert.Equal(Te, vpic.Cartesian2D, g)
	a, err := ez.Data(200)
	require.NoError(Te, err)
	assert.Equal(Te, []int{2, 3}, a.Shape)
	assert.Equal(Te, 6.0, a.At(1, 2))

	rho := fields[1]
	assert.Equal(Te, "rho", rho.Name())
	assert.Equal(Te, "electrons", rho.Species())
	assert.Equal(Te, []int{100}, rho.Timesteps())
	u, err := rho.Units()
	require.NoError(Te, err)
	assert.Equal(Te, `e \omega_p^2 / c^2`, u)
	assert.Equal(Te, 0, fs.OpenFiles())

	//The MS folder works as well.
	fields, err = S.Fields(filepath.Join(dir, "MS"))
	require.NoError(Te, err)
	assert.Len(Te, fields, 2)
}

//A run can be compressed part way through: each step is read from its own file.
func TestMixedCompression(Te *testing.T) {
	dir := Te.TempDir()
	fs := h5test.New()
	fld := filepath.Join(dir, "MS", "FLD", "e1")
	for i, name := range []string{"e1-000000.h5", "e1-000001.h5.zst", "e1-000002.h5.gz"} {
		fs.Add(filepath.Join(fld, name)).
			SetAttr("", "TIME", []float64{float64(i)}).
			SetAttr("", "TIME UNITS", `1/\omega_p`).
			AddDataset("e1", []float64{float64(i), float64(i)}, map[string]interface{}{"UNITS": `m_e c \omega_p e^{-1}`})
	}
	raw := filepath.Join(dir, "MS", "RAW", "beam")
	fs.Add(filepath.Join(raw, "RAW-beam-000000.h5.zst")).
		SetAttr("", "TIME", []float64{0}).
		AddDataset("x1", []float64{1}, nil)
	fs.Add(filepath.Join(raw, "RAW-beam-000001.h5")).
		SetAttr("", "TIME", []float64{1}).
		AddDataset("x1", []float64{2}, nil)
	require.NoError(Te, fs.Touch())

	S := NewScanner(fs, vpic.DefaultParams())
	fields, err := S.Fields(dir)
	require.NoError(Te, err)
	require.Len(Te, fields, 1)
	ez := fields[0]
	assert.Equal(Te, []int{0, 1, 2}, ez.Timesteps())
	for i, name := range []string{"e1-000000.h5", "e1-000001.h5.zst", "e1-000002.h5.gz"} {
		a, err := ez.Data(i)
		require.NoError(Te, err)
		assert.Equal(Te, float64(i), a.Data[0])
		assert.Equal(Te, 1, fs.Opens(filepath.Join(fld, name)), name)
	}

	species, err := S.Species(dir)
	require.NoError(Te, err)
	require.Len(Te, species, 1)
	x1, err := species[0].RawDataSet("x1")
	require.NoError(Te, err)
	a, err := x1.Data(1)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{2}, a.Data)
	a, err = x1.Data(0)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{1}, a.Data)
	assert.Equal(Te, 0, fs.OpenFiles())
}

func TestMalformed(Te *testing.T) {
	dir := Te.TempDir()
	fs := h5test.New()
	fs.Add(filepath.Join(dir, "MS", "FLD", "b2", "b2-000000.h5")).
		AddDataset("b2", []float64{1, 2}, map[string]interface{}{"UNITS": "x"})
	require.NoError(Te, fs.Touch())
	S := NewScanner(fs, vpic.DefaultParams())
	fields, err := S.Fields(dir)
	require.NoError(Te, err)
	require.Len(Te, fields, 1)
	assert.Equal(Te, "Bx", fields[0].Name())
	_, err = fields[0].Data(0)
	assert.ErrorIs(Te, err, vpic.ErrMalformedSource)
	_, err = fields[0].TimeUnits()
	assert.ErrorIs(Te, err, vpic.ErrMalformedSource)
	g, err := fields[0].Geometry(0)
	require.NoError(Te, err)
	assert.Equal(Te, vpic.Geometry1D, g)

	_, err = S.Fields(filepath.Join(dir, "nothing"))
	assert.ErrorIs(Te, err, vpic.ErrNotFound)
	_, err = S.Species(filepath.Join(dir, "nothing"))
	assert.ErrorIs(Te, err, vpic.ErrNotFound)
}

func TestFieldName(Te *testing.T) {
	assert.Equal(Te, "Ez", FieldName("e1"))
	assert.Equal(Te, "Jy", FieldName("j3"))
	assert.Equal(Te, "psi", FieldName("psi"))
}
