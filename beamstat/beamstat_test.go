package beamstat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vpic "github.com/delaossa/VisualPIC"
)

//memReader is a vpic.DataReader with its data in memory.
type memReader map[int][]float64

func (M memReader) Data(step int) (*vpic.Array, error) {
	d, ok := M[step]
	if !ok {
		return nil, vpic.NewError(vpic.ErrNotFound, "", "", "memReader")
	}
	return vpic.NewArray(d, len(d)), nil
}
func (M memReader) Time(step int) (float64, error) { return float64(step) / 10, nil }
func (M memReader) DataUnits() (string, error)     { return "", nil }
func (M memReader) TimeUnits() (string, error)     { return "", nil }

func species(sets map[string]memReader) *vpic.ParticleSpecies {
	var list []*vpic.RawDataSet
	for name, r := range sets {
		set := make(map[int]bool)
		for s := range r {
			set[s] = true
		}
		list = append(list, vpic.NewRawDataSet(name, "beam", vpic.SortedSteps(set), r))
	}
	return vpic.NewParticleSpecies("beam", list...)
}

func TestCompute(Te *testing.T) {
	sp := species(map[string]memReader{
		"x2": {0: {-1, 1, -1, 1}},
		"p2": {0: {-1, -1, 1, 1}},
		"p1": {0: {1, 1, 1, 1}},
		"q":  {0: {-1, -1, -1, -1}},
	})
	s, err := Compute(sp, NamesFor(vpic.Osiris), 0)
	require.NoError(Te, err)
	assert.Equal(Te, 4, s.Particles)
	assert.Equal(Te, -4.0, s.Charge)
	assert.InDelta(Te, 0, s.MeanX, 1e-12)
	assert.InDelta(Te, 1, s.RmsX, 1e-12)
	assert.InDelta(Te, 1, s.RmsXp, 1e-12)
	assert.InDelta(Te, 1, s.Emittance, 1e-12)
	assert.InDelta(Te, 1, s.MeanPz, 1e-12)
	assert.InDelta(Te, 0, s.Spread, 1e-12)

	//Fully correlated x and x' have no emittance.
	sp = species(map[string]memReader{
		"x2": {0: {-1, 0, 1}},
		"p2": {0: {-2, 0, 2}},
		"p1": {0: {1, 1, 1}},
		"q":  {0: {1, 1, 1}},
	})
	s, err = Compute(sp, OsirisNames, 0)
	require.NoError(Te, err)
	assert.InDelta(Te, 0, s.Emittance, 1e-9)
}

func TestWeights(Te *testing.T) {
	sp := species(map[string]memReader{
		"x":  {5: {0, 4}},
		"px": {5: {0, 0}},
		"pz": {5: {10, 20}},
		"q":  {5: {-1, -1}},
		"w":  {5: {1, 3}},
	})
	s, err := Compute(sp, NamesFor(vpic.OpenPMD), 5)
	require.NoError(Te, err)
	assert.Equal(Te, -4.0, s.Charge)
	assert.InDelta(Te, 3, s.MeanX, 1e-12)
	assert.InDelta(Te, 17.5, s.MeanPz, 1e-12)
	assert.Equal(Te, 0.5, s.Time)

	//The cached raw data is left alone.
	q, _ := sp.RawDataSet("q")
	a, _ := q.Data(5)
	assert.Equal(Te, []float64{-1, -1}, a.Data)

	h, err := Spectrum(sp, OpenPMDNames, 5, 2)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{1, 3}, h.View())
}

func TestErrors(Te *testing.T) {
	sp := species(map[string]memReader{
		"x2": {0: {1, 2}},
		"p2": {0: {1}},
		"p1": {0: {1, 1}},
		"q":  {0: {1, 1}},
	})
	_, err := Compute(sp, OsirisNames, 0)
	assert.ErrorIs(Te, err, vpic.ErrMalformedSource)
	_, err = Compute(sp, OpenPMDNames, 0)
	assert.ErrorIs(Te, err, vpic.ErrNotFound)
	_, err = Compute(sp, OsirisNames, 3)
	assert.ErrorIs(Te, err, vpic.ErrNotFound)
}

func TestSeries(Te *testing.T) {
	sp := species(map[string]memReader{
		"x2": {0: {1, 1}, 1: {2, 2}, 2: {3, 3}},
		"p2": {0: {0, 0}, 1: {0, 0}, 2: {0, 0}},
		"p1": {0: {1, 3}, 1: {1, 3}, 2: {1, 3}},
		"q":  {0: {1, 1}, 1: {1, 1}, 2: {1, 1}},
	})
	series, err := Series(sp, OsirisNames)
	require.NoError(Te, err)
	require.Len(Te, series, 3)
	for i, s := range series {
		assert.Equal(Te, i, s.Step)
		assert.InDelta(Te, float64(i+1), s.MeanX, 1e-12)
		assert.InDelta(Te, 0.5, s.Spread, 1e-12)
	}
	c := CentroidCorrelation(series)
	assert.Len(Te, c, 3)
	assert.InDelta(Te, 1, c[0], 1e-12)

	h, err := Spectrum(sp, OsirisNames, 1, 4)
	require.NoError(Te, err)
	assert.InDelta(Te, 2, h.Sum(), 1e-12)
}

func TestCorrelation(Te *testing.T) {
	n := 64
	c := make([]float64, n)
	for i := range c {
		c[i] = math.Sin(2 * math.Pi * float64(i) / 16)
	}
	r := Correlation(c, c)
	require.Len(Te, r, n)
	assert.InDelta(Te, 1, r[0], 1e-9)
	//half a period later the signal is reversed
	assert.Less(Te, r[8], -0.5)
	assert.Greater(Te, r[16], 0.5)

	flat := []float64{2, 2, 2}
	assert.Equal(Te, []float64{0, 0, 0}, Correlation(flat, flat))
	assert.Nil(Te, Correlation(nil, nil))
}
