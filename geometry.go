/*
 * geometry.go, part of VisualPIC.
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

//Geometry is the coordinate and dimensionality convention of a simulation's output.
//It selects which derived field requirements and formulas apply.
type Geometry string

const (
	UnknownGeometry Geometry = ""
	Geometry1D      Geometry = "1d"
	Cartesian2D     Geometry = "2dcartesian"
	Cartesian3D     Geometry = "3dcartesian"
	ThetaMode       Geometry = "thetaMode"
)

//CartesianGeometry returns the cartesian geometry for data with the given number of
//dimensions, or UnknownGeometry.
func CartesianGeometry(dims int) Geometry {
	switch dims {
	case 1:
		return Geometry1D
	case 2:
		return Cartesian2D
	case 3:
		return Cartesian3D
	}
	return UnknownGeometry
}
