/*
 * units.go, part of VisualPIC.
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

//Package units converts between the plasma-normalized units used by codes like
//Osiris or HiPACE and SI, and writes SI unit strings for openPMD unit dimensions.
package units

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/unit/constant"
)

//Physical constants, SI.
var (
	C    = float64(constant.LightSpeedInVacuum)
	E    = float64(constant.ElementaryCharge)
	Eps0 = float64(constant.ElectricConstant)
)

//Me is the electron mass in kg.
const Me = 9.1093837015e-31

//Quantity is the kind of physical magnitude stored in a dataset, as far as unit
//conversion is concerned.
type Quantity int

const (
	Unknown Quantity = iota //left untouched
	Length
	Time
	ElectricField
	MagneticField
	ChargeDensity
	CurrentDensity
)

var siUnits = map[Quantity]string{
	Length:         "m",
	Time:           "s",
	ElectricField:  "V/m",
	MagneticField:  "T",
	ChargeDensity:  "C/m^3",
	CurrentDensity: "A/m^2",
}

//SI returns the SI unit string for q, or an empty string for Unknown.
func (q Quantity) SI() string {
	return siUnits[q]
}

//QuantityOf returns the quantity stored in a field or dataset with the given
//(VisualPIC-convention) name.
func QuantityOf(name string) Quantity {
	switch name {
	case "x", "y", "z", "r":
		return Length
	case "rho":
		return ChargeDensity
	}
	if len(name) != 2 {
		return Unknown
	}
	if !strings.ContainsRune("xyzrt", rune(name[1])) {
		return Unknown
	}
	switch name[0] {
	case 'E', 'W':
		return ElectricField
	case 'B':
		return MagneticField
	case 'J':
		return CurrentDensity
	}
	return Unknown
}

//Normalizer turns plasma-normalized values into SI, for a given plasma density.
type Normalizer struct {
	np float64 //m^-3
	wp float64 //plasma frequency, rad/s
}

//NewNormalizer returns a normalizer for the plasma density np, in m^-3.
func NewNormalizer(np float64) *Normalizer {
	return &Normalizer{np: np, wp: math.Sqrt(np * E * E / (Eps0 * Me))}
}

//PlasmaFrequency returns the plasma frequency in rad/s.
func (N *Normalizer) PlasmaFrequency() float64 { return N.wp }

//SkinDepth returns the plasma skin depth c/w_p in m.
func (N *Normalizer) SkinDepth() float64 { return C / N.wp }

//WaveBreakingField returns the cold non-relativistic wave-breaking field m_e c w_p / e, in V/m.
func (N *Normalizer) WaveBreakingField() float64 { return Me * C * N.wp / E }

//Factor returns the number a normalized value of quantity q must be multiplied by
//to get it in SI.
func (N *Normalizer) Factor(q Quantity) float64 {
	switch q {
	case Length:
		return N.SkinDepth()
	case Time:
		return 1 / N.wp
	case ElectricField:
		return N.WaveBreakingField()
	case MagneticField:
		return Me * N.wp / E
	case ChargeDensity:
		return E * N.np
	case CurrentDensity:
		return E * N.np * C
	}
	return 1
}

//Convert scales data, in place, from normalized units to SI and returns the new unit
//string. For Unknown quantities the data is not touched and old is returned.
func (N *Normalizer) Convert(q Quantity, data []float64, old string) string {
	if q == Unknown {
		return old
	}
	f := N.Factor(q)
	for i := range data {
		data[i] *= f
	}
	return q.SI()
}

var baseSymbols = [7]string{"m", "kg", "s", "A", "K", "mol", "cd"}

//named are the derived SI units worth recognising in openPMD unitDimension arrays.
var named = []struct {
	dim  [7]float64
	name string
}{
	{[7]float64{1, 1, -3, -1}, "V/m"},
	{[7]float64{0, 1, -2, -1}, "T"},
	{[7]float64{-3, 0, 1, 1}, "C/m^3"},
	{[7]float64{-2, 0, 0, 1}, "A/m^2"},
	{[7]float64{0, 0, 1, 1}, "C"},
	{[7]float64{1, 1, -1}, "kg*m/s"},
	{[7]float64{1, 0, -1}, "m/s"},
	{[7]float64{2, 1, -3}, "W"},
	{[7]float64{0, 1, -3}, "W/m^2"},
	{[7]float64{2, 1, -2}, "J"},
}

//FromDimension returns a unit string for the openPMD unitDimension dim, the powers
//of (L, M, T, I, theta, N, J). A dimensionless quantity gives an empty string.
func FromDimension(dim [7]float64) string {
	for _, n := range named {
		if n.dim == dim {
			return n.name
		}
	}
	parts := make([]string, 0, 7)
	for i, p := range dim {
		switch {
		case p == 0:
			continue
		case p == 1:
			parts = append(parts, baseSymbols[i])
		default:
			parts = append(parts, fmt.Sprintf("%s^%g", baseSymbols[i], p))
		}
	}
	return strings.Join(parts, "*")
}
