/*
 * osiris.go, part of VisualPIC.
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

//Package osiris reads the HDF5 output of the Osiris PIC code.
//
//Osiris writes one file per quantity and timestep, in normalized units:
//
//	MS/FLD/<field>/<field>-NNNNNN.h5                     domain fields
//	MS/DENSITY/<species>/<field>/<field>-<species>-NNNNNN.h5  species fields
//	MS/RAW/<species>/RAW-<species>-NNNNNN.h5             particle data
//
//The simulation time is the TIME attribute of each file, its units the TIME UNITS attribute,
//and the units of each dataset are in its UNITS attribute.
package osiris

import (
	"path/filepath"

	vpic "github.com/delaossa/VisualPIC"
	"github.com/delaossa/VisualPIC/codes/internal/scan"
	"github.com/delaossa/VisualPIC/h5"
	"github.com/delaossa/VisualPIC/units"
)

//fieldNames maps Osiris field names to the VisualPIC ones. x1 is the longitudinal direction in Osiris.
var fieldNames = map[string]string{
	"e1":     "Ez",
	"e2":     "Ex",
	"e3":     "Ey",
	"b1":     "Bz",
	"b2":     "Bx",
	"b3":     "By",
	"j1":     "Jz",
	"j2":     "Jx",
	"j3":     "Jy",
	"charge": "rho",
}

//rawNames maps raw dataset names to VisualPIC quantities, only for unit conversion.
//The datasets keep their Osiris names.
var rawNames = map[string]string{
	"x1": "z",
	"x2": "x",
	"x3": "y",
}

//FieldName returns the VisualPIC name of the Osiris field name. Unknown names are returned as they are.
func FieldName(name string) string {
	if n, ok := fieldNames[name]; ok {
		return n
	}
	return name
}

//loader reads one dataset from a series of Osiris files, one per timestep. It implements vpic.Loader.
type loader struct {
	opener  h5.Opener
	dir     string
	prefix  string         //file name up to the timestep
	ext     map[int]string //file extension of each step
	dataset string
	first   int //a timestep known to exist, for reading units
	q       units.Quantity
	norm    *units.Normalizer
}

func (L *loader) Path(step int) string {
	return filepath.Join(L.dir, scan.File(L.prefix, step, L.ext))
}

func (L *loader) open(step int, caller string) (h5.File, error) {
	path := L.Path(step)
	f, err := L.opener.Open(path)
	if err != nil {
		return nil, vpic.NewError(vpic.ErrMalformedSource, err.Error(), path, caller)
	}
	return f, nil
}

func (L *loader) ReadData(step int) (*vpic.Array, float64, error) {
	f, err := L.open(step, "osiris.ReadData")
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	d, err := f.Dataset(L.dataset)
	if err != nil {
		return nil, 0, vpic.Errorf(vpic.ErrMalformedSource, L.Path(step), "osiris.ReadData", "dataset '%s': %v", L.dataset, err)
	}
	data, shape, err := d.Float64s()
	if err != nil {
		return nil, 0, vpic.NewError(vpic.ErrMalformedSource, err.Error(), L.Path(step), "osiris.ReadData")
	}
	tv, _ := f.GroupAttr("", "TIME")
	t, ok := h5.Float(tv)
	if !ok {
		return nil, 0, vpic.NewError(vpic.ErrMalformedSource, "no TIME attribute", L.Path(step), "osiris.ReadData")
	}
	if L.norm != nil {
		L.norm.Convert(L.q, data, "")
		t *= L.norm.Factor(units.Time)
	}
	return vpic.NewArray(data, shape...), t, nil
}

func (L *loader) ReadUnits() (string, string, error) {
	f, err := L.open(L.first, "osiris.ReadUnits")
	if err != nil {
		return "", "", err
	}
	defer f.Close()
	d, err := f.DatasetInfo(L.dataset)
	if err != nil {
		return "", "", vpic.Errorf(vpic.ErrMalformedSource, L.Path(L.first), "osiris.ReadUnits", "dataset '%s': %v", L.dataset, err)
	}
	du, ok := h5.String(d.Attrs["UNITS"])
	if !ok {
		return "", "", vpic.NewError(vpic.ErrMalformedSource, "no UNITS attribute in "+L.dataset, L.Path(L.first), "osiris.ReadUnits")
	}
	tv, _ := f.GroupAttr("", "TIME UNITS")
	tu, ok := h5.String(tv)
	if !ok {
		return "", "", vpic.NewError(vpic.ErrMalformedSource, "no TIME UNITS attribute", L.Path(L.first), "osiris.ReadUnits")
	}
	if L.norm != nil {
		du = L.norm.Convert(L.q, nil, du)
		tu = units.Time.SI()
	}
	return du, tu, nil
}

//fieldLoader also knows the geometry of the grid.
type fieldLoader struct {
	loader
}

//ReadGeometry tells the geometry from the number of axes in the AXIS group. If there is no such
//group, the rank of the dataset is used.
func (L *fieldLoader) ReadGeometry(step int) (vpic.Geometry, error) {
	f, err := L.open(step, "osiris.ReadGeometry")
	if err != nil {
		return vpic.UnknownGeometry, err
	}
	defer f.Close()
	n := 0
	if axes, err := f.Datasets("AXIS"); err == nil {
		for _, a := range axes {
			if a == "AXIS1" || a == "AXIS2" || a == "AXIS3" {
				n++
			}
		}
	}
	if n == 0 {
		d, err := f.DatasetInfo(L.dataset)
		if err != nil {
			return vpic.UnknownGeometry, vpic.Errorf(vpic.ErrMalformedSource, L.Path(step), "osiris.ReadGeometry", "dataset '%s': %v", L.dataset, err)
		}
		n = d.Rank
	}
	g := vpic.CartesianGeometry(n)
	if g == vpic.UnknownGeometry {
		return g, vpic.Errorf(vpic.ErrMalformedSource, L.Path(step), "osiris.ReadGeometry", "can't tell the geometry of a %d-dimensional grid", n)
	}
	return g, nil
}
