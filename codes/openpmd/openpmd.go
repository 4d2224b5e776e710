/*
 * openpmd.go, part of VisualPIC.
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

//Package openpmd reads file-based openPMD series stored in HDF5, as written by
//FBPIC, WarpX, PIConGPU and other codes.
//
//Each file holds one iteration. The root attributes basePath, meshesPath and particlesPath
//say where the iteration, its meshes and its particles are. All data is in SI units after
//multiplying by the unitSI attribute of each record component, and time by timeUnitSI.
package openpmd

import (
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	vpic "github.com/delaossa/VisualPIC"
	"github.com/delaossa/VisualPIC/h5"
	"github.com/delaossa/VisualPIC/units"
)

const (
	defaultBase      = "/data/%T/"
	defaultMeshes    = "meshes/"
	defaultParticles = "particles/"
)

//layout is where things are in the files of a series.
type layout struct {
	base      string
	meshes    string
	particles string
}

func stringAttr(f h5.File, group, name, def string) string {
	v, ok := f.GroupAttr(group, name)
	if !ok {
		return def
	}
	s, ok := h5.String(v)
	if !ok || s == "" {
		return def
	}
	return s
}

func readLayout(f h5.File) layout {
	return layout{
		base:      stringAttr(f, "", "basePath", defaultBase),
		meshes:    stringAttr(f, "", "meshesPath", defaultMeshes),
		particles: stringAttr(f, "", "particlesPath", defaultParticles),
	}
}

//iteration returns the path of the group of the given iteration.
func (L layout) iteration(step int) string {
	return h5.Clean(strings.ReplaceAll(L.base, "%T", strconv.Itoa(step)))
}

func (L layout) meshPath(step int) string {
	return h5.Clean(L.iteration(step) + "/" + L.meshes)
}

func (L layout) particlePath(step int) string {
	return h5.Clean(L.iteration(step) + "/" + L.particles)
}

//series is a file-based openPMD series, one file per iteration.
type series struct {
	opener h5.Opener
	files  map[int]string
	steps  []int
}

func (S *series) path(step int) string {
	return S.files[step]
}

//recordAttr returns the attribute name of the record or component at path, which
//can be a group or a dataset.
func recordAttr(f h5.File, path, name string) (interface{}, bool) {
	if v, ok := f.GroupAttr(path, name); ok {
		return v, true
	}
	d, err := f.DatasetInfo(path)
	if err != nil {
		return nil, false
	}
	return d.Attr(name)
}

func floatAttr(f h5.File, path, name string, def float64) float64 {
	v, ok := recordAttr(f, path, name)
	if !ok {
		return def
	}
	x, ok := h5.Float(v)
	if !ok {
		return def
	}
	return x
}

//isConstant returns true if the group at path is a constant record component.
func isConstant(f h5.File, path string) bool {
	_, ok := f.GroupAttr(path, "value")
	return ok
}

//component reads the record component at path, in SI units. Constant components are
//expanded to their full shape.
func component(f h5.File, path string) (*vpic.Array, error) {
	if d, err := f.Dataset(path); err == nil {
		data, shape, err := d.Float64s()
		if err != nil {
			return nil, err
		}
		si := 1.0
		if v, ok := d.Attr("unitSI"); ok {
			if x, ok := h5.Float(v); ok {
				si = x
			}
		}
		if si != 1 {
			floats.Scale(si, data)
		}
		return vpic.NewArray(data, shape...), nil
	}
	v, ok := f.GroupAttr(path, "value")
	if !ok {
		return nil, vpic.Errorf(vpic.ErrMalformedSource, "", "openpmd.component", "no record component at %s", path)
	}
	value, ok := h5.Float(v)
	if !ok {
		return nil, vpic.Errorf(vpic.ErrMalformedSource, "", "openpmd.component", "non-numeric constant at %s", path)
	}
	shape := []int{1}
	if sv, ok := f.GroupAttr(path, "shape"); ok {
		if s, ok := h5.Floats(sv); ok && len(s) > 0 {
			shape = make([]int, len(s))
			for i, x := range s {
				shape[i] = int(x)
			}
		}
	}
	return vpic.Full(value*floatAttr(f, path, "unitSI", 1), shape...), nil
}

//componentRank returns the number of dimensions of the component at path.
func componentRank(f h5.File, path string) (int, error) {
	if d, err := f.DatasetInfo(path); err == nil {
		return d.Rank, nil
	}
	if !isConstant(f, path) {
		return 0, vpic.Errorf(vpic.ErrMalformedSource, "", "openpmd.componentRank", "no record component at %s", path)
	}
	sv, _ := f.GroupAttr(path, "shape")
	s, ok := h5.Floats(sv)
	if !ok {
		return 1, nil
	}
	return len(s), nil
}

//ThetaPlane turns a thetaMode field, stored as azimuthal modes with shape [2m-1, nr, nz]
//(mode 0, then the real and imaginary parts of each higher mode), into its values in the
//plane θ=0,π. The result has shape [2nr, nz]: the θ=π half with r decreasing, followed by
//the θ=0 half with r increasing.
func ThetaPlane(a *vpic.Array) (*vpic.Array, error) {
	if a.Dims() != 3 || a.Shape[0]%2 != 1 {
		return nil, vpic.Errorf(vpic.ErrMalformedSource, "", "openpmd.ThetaPlane", "bad shape %v for a thetaMode field", a.Shape)
	}
	nm, nr, nz := a.Shape[0], a.Shape[1], a.Shape[2]
	out := vpic.Zeros(2*nr, nz)
	for i := 0; i < nr; i++ {
		for j := 0; j < nz; j++ {
			up := a.At(0, i, j)
			down := up
			//sin(m theta) vanishes on the plane, so only the real parts count.
			for m := 1; 2*m-1 < nm; m++ {
				c := a.At(2*m-1, i, j)
				up += c
				if m%2 == 1 {
					down -= c
				} else {
					down += c
				}
			}
			out.Data[(nr+i)*nz+j] = up
			out.Data[(nr-1-i)*nz+j] = down
		}
	}
	return out, nil
}

//loader reads one record component of a mesh or particle species from a series.
//It implements vpic.Loader.
type loader struct {
	s      *series
	lay    layout
	parent func(layout, int) string //the meshes group or the particle species group, for a step
	record string
	comp   string //empty for scalar records
	first  int    //the first iteration with this record
	mesh   bool
	offset bool //positions get positionOffset added
}

func (L *loader) Path(step int) string {
	return L.s.path(step)
}

func (L *loader) recordPath(step int) string {
	return h5.Clean(L.parent(L.lay, step) + "/" + L.record)
}

func (L *loader) componentPath(step int) string {
	if L.comp == "" {
		return L.recordPath(step)
	}
	return L.recordPath(step) + "/" + L.comp
}

func (L *loader) open(step int, caller string) (h5.File, error) {
	if _, ok := L.s.files[step]; !ok {
		return nil, vpic.Errorf(vpic.ErrNotFound, "", caller, "no file for iteration %d", step)
	}
	f, err := L.s.opener.Open(L.Path(step))
	if err != nil {
		return nil, vpic.NewError(vpic.ErrMalformedSource, err.Error(), L.Path(step), caller)
	}
	return f, nil
}

func (L *loader) ReadData(step int) (*vpic.Array, float64, error) {
	f, err := L.open(step, "openpmd.ReadData")
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	a, err := component(f, L.componentPath(step))
	if err != nil {
		return nil, 0, vpic.NewError(vpic.ErrMalformedSource, err.Error(), L.Path(step), "openpmd.ReadData")
	}
	if L.offset {
		off := h5.Clean(L.parent(L.lay, step) + "/positionOffset/" + L.comp)
		if o, err := component(f, off); err == nil {
			switch {
			case o.Len() == 1:
				floats.AddConst(o.Data[0], a.Data)
			case o.Len() == a.Len():
				floats.Add(a.Data, o.Data)
			}
		}
	}
	if L.mesh {
		g, _ := recordAttr(f, L.recordPath(step), "geometry")
		if s, _ := h5.String(g); s == "thetaMode" {
			if a, err = ThetaPlane(a); err != nil {
				return nil, 0, vpic.NewError(vpic.ErrMalformedSource, err.Error(), L.Path(step), "openpmd.ReadData")
			}
		}
	}
	iter := L.lay.iteration(step)
	tv, ok := f.GroupAttr(iter, "time")
	t, ok2 := h5.Float(tv)
	if !ok || !ok2 {
		return nil, 0, vpic.Errorf(vpic.ErrMalformedSource, L.Path(step), "openpmd.ReadData", "no time attribute in %s", iter)
	}
	tu := 1.0
	if v, ok := f.GroupAttr(iter, "timeUnitSI"); ok {
		if x, ok := h5.Float(v); ok {
			tu = x
		}
	}
	return a, t * tu, nil
}

//ReadUnits renders the unitDimension of the record, read from the first file that has it.
func (L *loader) ReadUnits() (string, string, error) {
	step := L.first
	f, err := L.open(step, "openpmd.ReadUnits")
	if err != nil {
		return "", "", err
	}
	defer f.Close()
	v, ok := recordAttr(f, L.recordPath(step), "unitDimension")
	dim, ok2 := h5.Floats(v)
	if !ok || !ok2 || len(dim) != 7 {
		return "", "", vpic.Errorf(vpic.ErrMalformedSource, L.Path(step), "openpmd.ReadUnits", "no valid unitDimension for %s", L.recordPath(step))
	}
	var d [7]float64
	copy(d[:], dim)
	return units.FromDimension(d), units.Time.SI(), nil
}

//ReadGeometry reads the geometry attribute of a mesh. Cartesian meshes are told apart by rank.
func (L *loader) ReadGeometry(step int) (vpic.Geometry, error) {
	f, err := L.open(step, "openpmd.ReadGeometry")
	if err != nil {
		return vpic.UnknownGeometry, err
	}
	defer f.Close()
	v, _ := recordAttr(f, L.recordPath(step), "geometry")
	g, _ := h5.String(v)
	switch g {
	case "thetaMode":
		return vpic.ThetaMode, nil
	case "cartesian", "":
		rank, err := componentRank(f, L.componentPath(step))
		if err != nil {
			return vpic.UnknownGeometry, vpic.NewError(vpic.ErrMalformedSource, err.Error(), L.Path(step), "openpmd.ReadGeometry")
		}
		if cg := vpic.CartesianGeometry(rank); cg != vpic.UnknownGeometry {
			return cg, nil
		}
		return vpic.UnknownGeometry, vpic.Errorf(vpic.ErrMalformedSource, L.Path(step), "openpmd.ReadGeometry", "can't tell the geometry of a %d-dimensional mesh", rank)
	}
	return vpic.UnknownGeometry, vpic.Errorf(vpic.ErrUnsupportedCode, L.Path(step), "openpmd.ReadGeometry", "unsupported mesh geometry '%s'", g)
}
