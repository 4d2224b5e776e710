/*
 * params.go, part of VisualPIC.
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

package vpic

import (
	"github.com/delaossa/VisualPIC/units"
)

//DefaultLaserWavelength is the laser wavelength, in metres, assumed when none is given.
const DefaultLaserWavelength = 0.8e-6

//Params holds the physical constants of a simulation that can't be read from its data,
//but are needed for unit conversion and for some derived fields.
//All the values are optional. Asking for one that was not set returns an error
//wrapping ErrMissingParameter.
type Params struct {
	np         float64 //plasma density in m^-3
	lambda0    float64 //laser wavelength in m
	hasNp      bool
	hasLambda0 bool
	normalized bool
}

//DefaultParams returns parameters with only the default laser wavelength set.
func DefaultParams() *Params {
	return &Params{lambda0: DefaultLaserWavelength, hasLambda0: true}
}

//SetPlasmaDensity sets the plasma density (m^-3) and returns the receiver.
func (P *Params) SetPlasmaDensity(n float64) *Params {
	P.np = n
	P.hasNp = true
	return P
}

//SetLaserWavelength sets the laser wavelength (m) and returns the receiver.
func (P *Params) SetLaserWavelength(l float64) *Params {
	P.lambda0 = l
	P.hasLambda0 = true
	return P
}

//UnsetLaserWavelength removes the laser wavelength, default included.
func (P *Params) UnsetLaserWavelength() *Params {
	P.lambda0 = 0
	P.hasLambda0 = false
	return P
}

//HasPlasmaDensity returns true if the plasma density was given.
func (P *Params) HasPlasmaDensity() bool {
	return P.hasNp
}

//PlasmaDensity returns the plasma density in m^-3.
func (P *Params) PlasmaDensity() (float64, error) {
	if !P.hasNp {
		return 0, NewError(ErrMissingParameter, "plasma density", "", "Params.PlasmaDensity")
	}
	return P.np, nil
}

//LaserWavelength returns the laser wavelength in m.
func (P *Params) LaserWavelength() (float64, error) {
	if !P.hasLambda0 {
		return 0, NewError(ErrMissingParameter, "laser wavelength", "", "Params.LaserWavelength")
	}
	return P.lambda0, nil
}

//Normalized returns true if the data these parameters go with is in plasma-normalized
//units, that is, it comes from a normalized code and no plasma density was given
//to convert it to SI.
func (P *Params) Normalized() bool {
	return P.normalized
}

//ForCode returns a copy of the parameters set up for data coming from code c.
func (P *Params) ForCode(c Code) *Params {
	r := *P
	r.normalized = c.Normalized() && !P.hasNp
	return &r
}

//LightSpeed returns the speed of light in the unit system of the data: 1 for
//normalized data, the SI value otherwise.
func (P *Params) LightSpeed() float64 {
	if P.normalized {
		return 1
	}
	return units.C
}

//Normalizer returns the converter from normalized units to SI for these parameters,
//or nil if there is no plasma density to build it from.
func (P *Params) Normalizer() *units.Normalizer {
	if !P.hasNp {
		return nil
	}
	return units.NewNormalizer(P.np)
}
