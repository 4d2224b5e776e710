/*
 * histo.go, part of VisualPIC.
 *
 * Copyright 2024 The VisualPIC authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package histo builds weighted histograms, such as the charge spectra of particle beams.
package histo

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Data is a weighted histogram.
type Data struct {
	normalized bool
	total      float64 //total weight binned
	dividers   []float64
	histo      []float64
}

//Dividers returns n+1 evenly spaced dividers for n bins between min and max.
func Dividers(min, max float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	return floats.Span(make([]float64, n+1), min, max)
}

//NewData returns a new histogram from the dividers, values and weights given.
//values can be nil, in which case an empty histogram is created, and weights can
//be nil, in which case all values weight 1. Values outside the dividers are omitted.
func NewData(dividers, values, weights []float64) *Data {
	d := new(Data)
	//I prefer to copy the slice to avoid somebody changing it from outside
	d.dividers = append([]float64(nil), dividers...)
	d.histo = make([]float64, len(dividers)-1)
	if values != nil {
		d.ReHisto(d.dividers, values, weights)
	}
	return d
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Normalized bool      `json:"normalized"`
		Total      float64   `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}{
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a struct {
		Normalized bool      `json:"normalized"`
		Total      float64   `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) != len(a.Histo)+1 {
		return fmt.Errorf("histo: %d dividers for %d bins", len(a.Dividers), len(a.Histo))
	}
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

//String prints a -hopefully- pretty string representation of
//the histogram. The representation uses 3 lines of text.
func (D *Data) String() string {
	ret := fmt.Sprintf("Normalized: %v, TotalWeight: %g\n", D.normalized, D.total)
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2g-%4.2g", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3g", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

//AddData adds a data point with the given weight to the histogram.
func (D *Data) AddData(value, weight float64) {
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	//Values that are not smaller than the last divider are just omitted.
	i := sort.SearchFloat64s(D.dividers, value)
	if i < len(D.dividers) && D.dividers[i] == value {
		i++
	}
	if i > 0 && i < len(D.dividers) {
		D.histo[i-1] += weight
		D.total += weight
	}
	if norma {
		D.Normalize()
	}
}

//Normalized Returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize scales the histogram so its bins add up to 1.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

//UnNormalize undoes Normalize.
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total == 0 || D.normalized == normalize {
		return
	}
	n := D.total
	D.normalized = normalize
	if normalize {
		n = 1 / D.total
	}
	floats.Scale(n, D.histo)
}

//Total returns the total weight in the histogram.
func (D *Data) Total() float64 {
	return D.total
}

//CopyDividers copies the dividers of the histogram into dest, if given and large enough,
//or into a new slice.
func (D *Data) CopyDividers(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.dividers), dest...)
	copy(d, D.dividers)
	return d
}

//Copy copies the bins of the histogram into dest, if given and large enough,
//or into a new slice.
func (D *Data) Copy(dest ...[]float64) []float64 {
	d := getCopySlice(len(D.histo), dest...)
	copy(d, D.histo)
	return d
}

//View returns the bins of the histogram. They should not be modified.
func (D *Data) View() []float64 {
	return D.histo
}

//Centers returns the center of each bin.
func (D *Data) Centers() []float64 {
	c := make([]float64, len(D.histo))
	floats.AddTo(c, D.dividers[:len(D.histo)], D.dividers[1:])
	floats.Scale(0.5, c)
	return c
}

//Add adds the histograms a and b putting the result in the receiver.
func (D *Data) Add(a, b *Data) {
	if !floats.Equal(a.dividers, b.dividers) {
		panic("histo.Data.Add: Dividers must match in added histograms")
	}
	D.dividers = a.CopyDividers(D.dividers)
	D.histo = getCopySlice(len(a.histo), D.histo)
	floats.AddTo(D.histo, a.histo, b.histo)
	D.total = a.total + b.total
	D.normalized = false
}

//Sum returns the sum of the bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

//ReHisto replaces the contents of the histogram with the given values and weights.
//values and weights are not modified.
func (D *Data) ReHisto(dividers, values, weights []float64) {
	if weights != nil && len(weights) != len(values) {
		panic("histo.Data.ReHisto: values and weights of different lengths")
	}
	idx := make([]int, 0, len(values))
	lo, hi := dividers[0], dividers[len(dividers)-1]
	for i, v := range values {
		//stat.Histogram just panics instead of omitting the values that are off limits
		//so we remove them here before the call.
		if v >= lo && v < hi {
			idx = append(idx, i)
		}
	}
	sort.Slice(idx, func(i, j int) bool { return values[idx[i]] < values[idx[j]] })
	x := make([]float64, len(idx))
	var w []float64
	if weights != nil {
		w = make([]float64, len(idx))
	}
	for i, j := range idx {
		x[i] = values[j]
		if w != nil {
			w[i] = weights[j]
		}
	}
	D.dividers = append(D.dividers[:0], dividers...)
	D.normalized = false
	D.histo = stat.Histogram(nil, D.dividers, x, w)
	D.total = floats.Sum(D.histo)
}

func getCopySlice(N int, dest ...[]float64) []float64 {
	if len(dest) > 0 && len(dest[0]) >= N {
		return dest[0][:N]
	}
	return make([]float64, N)
}
