/*
 * beamstat.go, part of VisualPIC.
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

//Package beamstat computes the statistics of particle beams from their raw data: charge,
//charge-weighted centroid and size, divergence, trace-space emittance and momentum spread,
//at one timestep or along the whole simulation.
package beamstat

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	vpic "github.com/delaossa/VisualPIC"
)

//Names gives the names of the raw datasets holding each particle attribute, which
//depend on the simulation code.
type Names struct {
	X  string //transverse position
	Px string //transverse momentum
	Pz string //longitudinal momentum
	Q  string //charge
	W  string //weighting, if the charge is per real particle. Optional.
}

//OsirisNames are the names used by Osiris and HiPACE, where x1 is the longitudinal direction.
var OsirisNames = Names{X: "x2", Px: "p2", Pz: "p1", Q: "q"}

//OpenPMDNames are the names used for openPMD data.
var OpenPMDNames = Names{X: "x", Px: "px", Pz: "pz", Q: "q", W: "w"}

//NamesFor returns the dataset names for code.
func NamesFor(code vpic.Code) Names {
	if code == vpic.Osiris || code == vpic.HiPACE {
		return OsirisNames
	}
	return OpenPMDNames
}

//Stats are the statistics of a beam at one timestep. Averages are weighted by the
//absolute value of the charge of each macroparticle.
type Stats struct {
	Step      int
	Time      float64
	Particles int
	Charge    float64 //total charge, with sign
	MeanX     float64
	RmsX      float64
	MeanXp    float64 //divergence, px/pz
	RmsXp     float64
	Emittance float64 //rms trace-space emittance
	MeanPz    float64
	Spread    float64 //relative rms spread of pz
}

//particles holds the attributes of the particles of a beam at one timestep.
type particles struct {
	x, px, pz, q []float64
	time         float64
}

func read(sp *vpic.ParticleSpecies, n Names, step int) (*particles, error) {
	names := []string{n.X, n.Px, n.Pz, n.Q}
	if n.W != "" {
		names = append(names, n.W)
	}
	arrays := make([][]float64, len(names))
	var time float64
	for i, name := range names {
		r, err := sp.RawDataSet(name)
		if err != nil {
			return nil, vpic.Decorate(err, "beamstat.read")
		}
		a, err := r.Data(step)
		if err != nil {
			return nil, vpic.Decorate(err, "beamstat.read")
		}
		if i > 0 && a.Len() != len(arrays[0]) {
			return nil, vpic.Errorf(vpic.ErrMalformedSource, "", "beamstat.read", "dataset %s has %d particles, %s has %d", name, a.Len(), names[0], len(arrays[0]))
		}
		arrays[i] = a.Data
		if i == 0 {
			if time, err = r.Time(step); err != nil {
				return nil, vpic.Decorate(err, "beamstat.read")
			}
		}
	}
	p := &particles{x: arrays[0], px: arrays[1], pz: arrays[2], time: time}
	//The arrays belong to the readers' caches, so the charge is built in a new slice.
	p.q = make([]float64, len(p.x))
	copy(p.q, arrays[3])
	if n.W != "" {
		floats.Mul(p.q, arrays[4])
	}
	return p, nil
}

//weights returns the absolute values of q.
func weights(q []float64) []float64 {
	w := make([]float64, len(q))
	for i, v := range q {
		w[i] = math.Abs(v)
	}
	return w
}

//Compute returns the statistics of the species at the given timestep.
func Compute(sp *vpic.ParticleSpecies, n Names, step int) (*Stats, error) {
	p, err := read(sp, n, step)
	if err != nil {
		return nil, vpic.Decorate(err, "beamstat.Compute")
	}
	s := &Stats{Step: step, Time: p.time, Particles: len(p.x), Charge: floats.Sum(p.q)}
	w := weights(p.q)
	if len(w) == 0 || floats.Sum(w) == 0 {
		return s, nil
	}
	xp := make([]float64, len(p.x))
	floats.DivTo(xp, p.px, p.pz)
	var vx, vxp, vpz float64
	s.MeanX, vx = stat.PopMeanVariance(p.x, w)
	s.MeanXp, vxp = stat.PopMeanVariance(xp, w)
	s.MeanPz, vpz = stat.PopMeanVariance(p.pz, w)
	s.RmsX = math.Sqrt(vx)
	s.RmsXp = math.Sqrt(vxp)
	if s.MeanPz != 0 {
		s.Spread = math.Sqrt(vpz) / math.Abs(s.MeanPz)
	}
	xxp := make([]float64, len(p.x))
	floats.MulTo(xxp, p.x, xp)
	cov := stat.Mean(xxp, w) - s.MeanX*s.MeanXp
	s.Emittance = math.Sqrt(math.Max(vx*vxp-cov*cov, 0))
	return s, nil
}

//Series returns the statistics of the species at every timestep of its position dataset.
func Series(sp *vpic.ParticleSpecies, n Names) ([]*Stats, error) {
	x, err := sp.RawDataSet(n.X)
	if err != nil {
		return nil, vpic.Decorate(err, "beamstat.Series")
	}
	ret := make([]*Stats, 0, len(x.Timesteps()))
	for _, step := range x.Timesteps() {
		s, err := Compute(sp, n, step)
		if err != nil {
			return nil, vpic.Decorate(err, "beamstat.Series")
		}
		ret = append(ret, s)
	}
	return ret, nil
}
