/*
 * spectrum.go, part of VisualPIC.
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
	"gonum.org/v1/gonum/floats"

	vpic "github.com/delaossa/VisualPIC"
	"github.com/delaossa/VisualPIC/histo"
)

//Spectrum returns the charge-weighted histogram of the longitudinal momentum of the
//species at the given step, with bins evenly spaced between the smallest and largest momenta.
func Spectrum(sp *vpic.ParticleSpecies, n Names, step, bins int) (*histo.Data, error) {
	p, err := read(sp, n, step)
	if err != nil {
		return nil, vpic.Decorate(err, "beamstat.Spectrum")
	}
	if len(p.pz) == 0 {
		return histo.NewData(histo.Dividers(0, 1, bins), nil, nil), nil
	}
	min, max := floats.Min(p.pz), floats.Max(p.pz)
	if min == max {
		min, max = min-0.5, max+0.5
	}
	//The last divider is exclusive, so it is nudged to keep the fastest particles.
	max += (max - min) * 1e-9
	return histo.NewData(histo.Dividers(min, max, bins), p.pz, weights(p.q)), nil
}
