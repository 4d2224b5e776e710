/*
 * corr.go, part of VisualPIC.
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

package beamstat

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

func cmplxMulConj(dst, b []complex128) {
	if len(dst) != len(b) {
		panic(fmt.Sprintf("complex conjugate multiplication of slices: Both slices should have the same len %d, %d", len(dst), len(b)))
	}
	for i, v := range b {
		dst[i] *= cmplx.Conj(v)
	}
}

//Correlation returns the normalized cross-correlation of c1 and c2, which must have the same length,
//for lags from 0 to len(c1)-1. It is computed with FFTs, zero-padding to avoid wrap-around.
//If c1 and c2 are the same, the result is the autocorrelation, which is 1 at lag 0.
func Correlation(c1, c2 []float64) []float64 {
	if len(c1) != len(c2) {
		panic(fmt.Sprintf("beamstat.Correlation: Both slices should have the same len %d, %d", len(c1), len(c2)))
	}
	n := len(c1)
	if n == 0 {
		return nil
	}
	c1mean, c1std := stat.Mean(c1, nil), stat.PopStdDev(c1, nil)
	c2mean, c2std := stat.Mean(c2, nil), stat.PopStdDev(c2, nil)
	c1pad := make([]complex128, 2*n)
	c2pad := make([]complex128, 2*n)
	for i, v := range c1 {
		c1pad[i] = complex(v-c1mean, 0)
		c2pad[i] = complex(c2[i]-c2mean, 0)
	}
	f := fourier.NewCmplxFFT(len(c1pad))
	f.Coefficients(c1pad, c1pad)
	f.Coefficients(c2pad, c2pad)
	cmplxMulConj(c1pad, c2pad)
	f.Sequence(c1pad, c1pad)
	ret := make([]float64, n)
	if c1std == 0 || c2std == 0 {
		return ret
	}
	//1/len(c1pad) normalizes the FFT.
	scale := 1 / float64(len(c1pad)) / (c1std * c2std) / float64(n)
	for i := range ret {
		ret[i] = real(c1pad[i]) * scale
	}
	return ret
}

//CentroidCorrelation returns the autocorrelation of the beam centroid along a series,
//whose oscillations show the betatron motion of the beam.
func CentroidCorrelation(series []*Stats) []float64 {
	c := make([]float64, len(series))
	for i, s := range series {
		c[i] = s.MeanX
	}
	return Correlation(c, c)
}
