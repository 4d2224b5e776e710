package derived

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vpic "github.com/delaossa/VisualPIC"
	"github.com/delaossa/VisualPIC/units"
)

//memField is a vpic.Field with its data in memory.
type memField struct {
	name, species string
	data          map[int]*vpic.Array
	reads         int
}

func newMemField(name string, steps map[int][]float64) *memField {
	f := &memField{name: name, data: make(map[int]*vpic.Array)}
	for s, d := range steps {
		f.data[s] = vpic.NewArray(d, len(d))
	}
	return f
}

func (F *memField) Name() string    { return F.name }
func (F *memField) Species() string { return F.species }
func (F *memField) Timesteps() []int {
	set := make(map[int]bool)
	for s := range F.data {
		set[s] = true
	}
	return vpic.SortedSteps(set)
}
func (F *memField) Data(step int) (*vpic.Array, error) {
	F.reads++
	a, ok := F.data[step]
	if !ok {
		return nil, vpic.NewError(vpic.ErrNotFound, "no step", "", "memField")
	}
	return a, nil
}
func (F *memField) Time(step int) (float64, error) { return float64(step) * 0.1, nil }
func (F *memField) Units() (string, error)         { return "V/m", nil }
func (F *memField) TimeUnits() (string, error)     { return "s", nil }

func names(fields []*Field) []string {
	var ret []string
	for _, f := range fields {
		ret = append(ret, f.Name())
	}
	return ret
}

func defNames(defs []*Definition) []string {
	var ret []string
	for _, d := range defs {
		ret = append(ret, d.Name)
	}
	return ret
}

func TestResolve(Te *testing.T) {
	got := defNames(Resolve(Catalogue, vpic.Cartesian2D, []string{"Ex", "Ey"}))
	assert.NotContains(Te, got, "E")
	assert.Contains(Te, got, "I")
	assert.Contains(Te, got, "a")

	got = defNames(Resolve(Catalogue, vpic.Cartesian2D, []string{"Ex", "Ey", "Ez"}))
	assert.Contains(Te, got, "E")
	assert.Contains(Te, got, "Ez/E0")

	//The same names in thetaMode need Er and Et.
	got = defNames(Resolve(Catalogue, vpic.ThetaMode, []string{"Ex", "Ey", "Ez"}))
	assert.Equal(Te, []string{"Ez/E0"}, got)

	//Wx has no 1d requirements.
	got = defNames(Resolve(Catalogue, vpic.Geometry1D, []string{"Ex", "By"}))
	assert.NotContains(Te, got, "Wx")

	assert.Empty(Te, Resolve(Catalogue, vpic.Cartesian3D, nil))
	assert.Empty(Te, Resolve(Catalogue, vpic.UnknownGeometry, []string{"Ex", "Ey", "Ez"}))
}

func TestMonotonic(Te *testing.T) {
	all := []string{"Ex", "Ey", "Ez", "Bx", "By", "Bz"}
	full := defNames(Resolve(Catalogue, vpic.Cartesian3D, all))
	for i := range all {
		fewer := append(append([]string(nil), all[:i]...), all[i+1:]...)
		part := defNames(Resolve(Catalogue, vpic.Cartesian3D, fewer))
		assert.Less(Te, len(part), len(full), "removing %s", all[i])
		for _, p := range part {
			assert.Contains(Te, full, p)
		}
	}
}

func TestGenerate(Te *testing.T) {
	ex := newMemField("Ex", map[int][]float64{0: {1, 2}, 1: {3, 4}, 2: {5, 6}})
	by := newMemField("By", map[int][]float64{1: {1, 1}, 2: {2, 2}, 3: {0, 0}})
	rho := newMemField("rho", map[int][]float64{1: {0, 0}})
	rho.species = "electrons"
	p := vpic.DefaultParams().ForCode(vpic.Osiris)
	fields := Generate(Catalogue, vpic.Cartesian2D, []vpic.Field{ex, by, rho}, p)
	require.Equal(Te, []string{"Wx"}, names(fields))
	wx := fields[0]
	assert.Equal(Te, "", wx.Species())
	assert.Equal(Te, []int{1, 2}, wx.Timesteps())

	a, err := wx.Data(2)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{3, 4}, a.Data)
	//inputs untouched
	assert.Equal(Te, []float64{5, 6}, ex.data[2].Data)
	//no caching
	_, err = wx.Data(2)
	require.NoError(Te, err)
	assert.Equal(Te, 2, ex.reads)

	t, err := wx.Time(2)
	require.NoError(Te, err)
	assert.Equal(Te, 0.2, t)
	u, err := wx.Units()
	require.NoError(Te, err)
	assert.Equal(Te, eNorm, u)

	_, err = wx.Data(0)
	assert.ErrorIs(Te, err, vpic.ErrNotFound)

	//In SI, c multiplies B.
	fields = Generate(Catalogue, vpic.Cartesian2D, []vpic.Field{ex, by}, vpic.DefaultParams().ForCode(vpic.OpenPMD))
	a, err = fields[0].Data(1)
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{3 - units.C, 4 - units.C}, a.Data, 1e-6)
	u, _ = fields[0].Units()
	assert.Equal(Te, "V/m", u)

	assert.Empty(Te, Generate(Catalogue, vpic.UnknownGeometry, []vpic.Field{ex, by}, p))
	assert.Empty(Te, Generate(Catalogue, vpic.Cartesian2D, nil, p))
}

func TestStoredWins(Te *testing.T) {
	ex := newMemField("Ex", map[int][]float64{0: {1}})
	by := newMemField("By", map[int][]float64{0: {1}})
	wx := newMemField("Wx", map[int][]float64{0: {1}})
	fields := Generate(Catalogue, vpic.Cartesian3D, []vpic.Field{ex, by, wx}, vpic.DefaultParams())
	assert.NotContains(Te, names(fields), "Wx")
}

func TestMissingParameter(Te *testing.T) {
	ez := newMemField("Ez", map[int][]float64{0: {1, 2}})
	//SI data without a plasma density can't be normalized to E0.
	fields := Generate(Catalogue, vpic.Cartesian3D, []vpic.Field{ez}, vpic.DefaultParams().ForCode(vpic.OpenPMD))
	require.Equal(Te, []string{"Ez/E0"}, names(fields))
	_, err := fields[0].Data(0)
	assert.ErrorIs(Te, err, vpic.ErrMissingParameter)

	p := vpic.DefaultParams().SetPlasmaDensity(1e24).ForCode(vpic.OpenPMD)
	fields = Generate(Catalogue, vpic.Cartesian3D, []vpic.Field{ez}, p)
	a, err := fields[0].Data(0)
	require.NoError(Te, err)
	e0 := units.NewNormalizer(1e24).WaveBreakingField()
	assert.InDeltaSlice(Te, []float64{1 / e0, 2 / e0}, a.Data, 1e-20)

	//Normalized data is already in units of E0.
	fields = Generate(Catalogue, vpic.Cartesian3D, []vpic.Field{ez}, vpic.DefaultParams().ForCode(vpic.Osiris))
	a, err = fields[0].Data(0)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{1, 2}, a.Data)

	ex := newMemField("Ex", map[int][]float64{0: {3}})
	ey := newMemField("Ey", map[int][]float64{0: {4}})
	fields = Generate(Catalogue, vpic.Cartesian2D, []vpic.Field{ex, ey}, vpic.DefaultParams().ForCode(vpic.HiPACE))
	for _, f := range fields {
		if f.Name() == "I" || f.Name() == "a" {
			_, err := f.Data(0)
			assert.ErrorIs(Te, err, vpic.ErrMissingParameter, f.Name())
		}
	}
	fields = Generate(Catalogue, vpic.Cartesian2D, []vpic.Field{ex, ey}, vpic.DefaultParams().UnsetLaserWavelength().ForCode(vpic.OpenPMD))
	for _, f := range fields {
		switch f.Name() {
		case "a":
			_, err := f.Data(0)
			assert.ErrorIs(Te, err, vpic.ErrMissingParameter)
		case "I":
			a, err := f.Data(0)
			require.NoError(Te, err)
			assert.InDelta(Te, units.C*units.Eps0/2*25, a.Data[0], 1e-12)
		}
	}
}

func TestRecipes(Te *testing.T) {
	x := vpic.NewArray([]float64{3, 0}, 2)
	y := vpic.NewArray([]float64{4, 0}, 2)
	z := vpic.NewArray([]float64{0, 2}, 2)
	m, err := magnitude([]*vpic.Array{x, y, z}, vpic.DefaultParams())
	require.NoError(Te, err)
	assert.Equal(Te, []float64{5, 2}, m.Data)

	_, err = magnitude([]*vpic.Array{x, y, vpic.Zeros(3)}, vpic.DefaultParams())
	assert.ErrorIs(Te, err, vpic.ErrMalformedSource)

	p := vpic.DefaultParams().SetLaserWavelength(1e-6)
	a, err := vectorPotential([]*vpic.Array{x, y}, p)
	require.NoError(Te, err)
	w0 := 2 * math.Pi * units.C / 1e-6
	assert.InDelta(Te, 5*units.E/(units.Me*units.C*w0), a.Data[0], 1e-20)
	assert.Equal(Te, 0.0, a.Data[1])
	assert.Equal(Te, []float64{3, 0}, x.Data)
}
