/*
 * catalogue.go, part of VisualPIC.
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

package derived

import (
	"math"

	"gonum.org/v1/gonum/floats"

	vpic "github.com/delaossa/VisualPIC"
	"github.com/delaossa/VisualPIC/units"
)

const eNorm = `m_e c \omega_p e^{-1}`

func cartesian(names ...string) map[vpic.Geometry][]string {
	return map[vpic.Geometry][]string{
		vpic.Geometry1D:  names,
		vpic.Cartesian2D: names,
		vpic.Cartesian3D: names,
	}
}

//Catalogue is the list of the derived fields known.
var Catalogue = []*Definition{
	{
		Name:            "Wx",
		Units:           "V/m",
		NormalizedUnits: eNorm,
		Requirements: map[vpic.Geometry][]string{
			vpic.Cartesian2D: {"Ex", "By"},
			vpic.Cartesian3D: {"Ex", "By"},
			vpic.ThetaMode:   {"Er", "Bt"},
		},
		Recipe: transverseWake(-1),
	},
	{
		Name:            "Wy",
		Units:           "V/m",
		NormalizedUnits: eNorm,
		Requirements: map[vpic.Geometry][]string{
			vpic.Cartesian2D: {"Ey", "Bx"},
			vpic.Cartesian3D: {"Ey", "Bx"},
			vpic.ThetaMode:   {"Et", "Br"},
		},
		Recipe: transverseWake(1),
	},
	{
		Name:            "E",
		Units:           "V/m",
		NormalizedUnits: eNorm,
		Requirements:    withTheta(cartesian("Ex", "Ey", "Ez"), "Er", "Et", "Ez"),
		Recipe:          magnitude,
	},
	{
		Name:            "B",
		Units:           "T",
		NormalizedUnits: `m_e \omega_p e^{-1}`,
		Requirements:    withTheta(cartesian("Bx", "By", "Bz"), "Br", "Bt", "Bz"),
		Recipe:          magnitude,
	},
	{
		Name:         "I",
		Units:        "W/m^2",
		Requirements: withTheta(cartesian("Ex", "Ey"), "Er", "Et"),
		Recipe:       intensity,
	},
	{
		Name:         "a",
		Requirements: withTheta(cartesian("Ex", "Ey"), "Er", "Et"),
		Recipe:       vectorPotential,
	},
	{
		Name:         "Ez/E0",
		Requirements: withTheta(cartesian("Ez"), "Ez"),
		Recipe:       waveBreaking,
	},
}

func withTheta(m map[vpic.Geometry][]string, names ...string) map[vpic.Geometry][]string {
	m[vpic.ThetaMode] = names
	return m
}

//check verifies that the recipe got n arrays of the same shape.
func check(base []*vpic.Array, n int, caller string) error {
	if len(base) != n {
		return vpic.Errorf(vpic.ErrMalformedSource, "", caller, "expected %d base fields, got %d", n, len(base))
	}
	for _, b := range base[1:] {
		if !b.SameShape(base[0]) {
			return vpic.Errorf(vpic.ErrMalformedSource, "", caller, "base fields with different shapes %v and %v", base[0].Shape, b.Shape)
		}
	}
	return nil
}

//requireSI returns an error if the base fields are in normalized units, as there is no
//plasma density to convert them.
func requireSI(p *vpic.Params, caller string) error {
	if p.Normalized() {
		return vpic.NewError(vpic.ErrMissingParameter, "plasma density, to convert normalized fields to SI", "", caller)
	}
	return nil
}

//sumSquares returns the element-wise sum of the squares of the arrays.
func sumSquares(base []*vpic.Array) []float64 {
	dst := make([]float64, base[0].Len())
	tmp := make([]float64, len(dst))
	for _, b := range base {
		floats.MulTo(tmp, b.Data, b.Data)
		floats.Add(dst, tmp)
	}
	return dst
}

//transverseWake returns the recipe for E + sign*c*B, that is, Ex - cBy or Ey + cBx.
func transverseWake(sign float64) Recipe {
	return func(base []*vpic.Array, p *vpic.Params) (*vpic.Array, error) {
		if err := check(base, 2, "derived.transverseWake"); err != nil {
			return nil, err
		}
		dst := make([]float64, base[0].Len())
		floats.AddScaledTo(dst, base[0].Data, sign*p.LightSpeed(), base[1].Data)
		return vpic.NewArray(dst, base[0].Shape...), nil
	}
}

func magnitude(base []*vpic.Array, p *vpic.Params) (*vpic.Array, error) {
	if err := check(base, 3, "derived.magnitude"); err != nil {
		return nil, err
	}
	dst := sumSquares(base)
	for i, v := range dst {
		dst[i] = math.Sqrt(v)
	}
	return vpic.NewArray(dst, base[0].Shape...), nil
}

//intensity is c eps0 |E_perp|^2 / 2.
func intensity(base []*vpic.Array, p *vpic.Params) (*vpic.Array, error) {
	if err := check(base, 2, "derived.intensity"); err != nil {
		return nil, err
	}
	if err := requireSI(p, "derived.intensity"); err != nil {
		return nil, err
	}
	dst := sumSquares(base)
	floats.Scale(units.C*units.Eps0/2, dst)
	return vpic.NewArray(dst, base[0].Shape...), nil
}

//vectorPotential is the normalized vector potential e |E_perp| / (m_e c w0) of a laser
//with the wavelength in p.
func vectorPotential(base []*vpic.Array, p *vpic.Params) (*vpic.Array, error) {
	if err := check(base, 2, "derived.vectorPotential"); err != nil {
		return nil, err
	}
	if err := requireSI(p, "derived.vectorPotential"); err != nil {
		return nil, err
	}
	l0, err := p.LaserWavelength()
	if err != nil {
		return nil, vpic.Decorate(err, "derived.vectorPotential")
	}
	w0 := 2 * math.Pi * units.C / l0
	dst := sumSquares(base)
	k := units.E / (units.Me * units.C * w0)
	for i, v := range dst {
		dst[i] = k * math.Sqrt(v)
	}
	return vpic.NewArray(dst, base[0].Shape...), nil
}

//waveBreaking is Ez over the cold wave-breaking field. Normalized Ez is already in those units.
func waveBreaking(base []*vpic.Array, p *vpic.Params) (*vpic.Array, error) {
	if err := check(base, 1, "derived.waveBreaking"); err != nil {
		return nil, err
	}
	if p.Normalized() {
		return base[0].Copy(), nil
	}
	np, err := p.PlasmaDensity()
	if err != nil {
		return nil, vpic.Decorate(err, "derived.waveBreaking")
	}
	dst := make([]float64, base[0].Len())
	floats.ScaleTo(dst, 1/units.NewNormalizer(np).WaveBreakingField(), base[0].Data)
	return vpic.NewArray(dst, base[0].Shape...), nil
}
