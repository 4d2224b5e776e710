/*
 * hipace.go, part of VisualPIC.
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

//Package hipace reads the HDF5 output of the HiPACE quasi-static PIC code.
//
//HiPACE writes one file per quantity and timestep, in normalized units:
//
//	field_<field>_NNNNNN.h5
//	density_<species>_NNNNNN.h5
//	raw_<species>_NNNNNN.h5
//
//either in the output folder or in its DATA subfolder. The files carry the simulation
//time in a TIME attribute but no unit information, so units come from tables.
package hipace

import (
	"math"
	"path/filepath"

	vpic "github.com/delaossa/VisualPIC"
	"github.com/delaossa/VisualPIC/codes/internal/scan"
	"github.com/delaossa/VisualPIC/h5"
	"github.com/delaossa/VisualPIC/units"
)

//UnitTable gives the units of the datasets of a HiPACE file, by dataset name, and the
//unit of the simulation time.
type UnitTable struct {
	Data map[string]string
	Time string
}

//Copy returns a deep copy of the table.
func (U UnitTable) Copy() UnitTable {
	r := UnitTable{Data: make(map[string]string, len(U.Data)), Time: U.Time}
	for k, v := range U.Data {
		r.Data[k] = v
	}
	return r
}

const (
	lengthUnit = `c/\omega_p`
	timeUnit   = `1/\omega_p`
	eUnit      = `m_e c \omega_p e^{-1}`
	bUnit      = `m_e \omega_p e^{-1}`
)

//DefaultRawUnits returns the units of HiPACE particle data.
func DefaultRawUnits() UnitTable {
	return UnitTable{
		Data: map[string]string{
			"x1": lengthUnit,
			"x2": lengthUnit,
			"x3": lengthUnit,
			"p1": lengthUnit,
			"p2": lengthUnit,
			"p3": lengthUnit,
			"q":  "C",
		},
		Time: timeUnit,
	}
}

//DefaultFieldUnits returns the units of HiPACE fields, by their VisualPIC name.
func DefaultFieldUnits() UnitTable {
	return UnitTable{
		Data: map[string]string{
			"Ez":  eUnit,
			"Ex":  eUnit,
			"Ey":  eUnit,
			"Wx":  eUnit,
			"Wy":  eUnit,
			"Bx":  bUnit,
			"By":  bUnit,
			"Bz":  bUnit,
			"rho": `e n_p`,
			"Jz":  `e n_p c`,
		},
		Time: timeUnit,
	}
}

var fieldNames = map[string]string{
	"ExmBy": "Wx",
	"EypBx": "Wy",
}

var rawNames = map[string]string{
	"x1": "z",
	"x2": "x",
	"x3": "y",
}

//FieldName returns the VisualPIC name for a HiPACE field name.
func FieldName(name string) string {
	if n, ok := fieldNames[name]; ok {
		return n
	}
	return name
}

//loader reads one dataset from the HiPACE files named prefix + timestep. It implements vpic.Loader.
type loader struct {
	opener  h5.Opener
	dir     string
	prefix  string
	ext     map[int]string //file extension of each step
	dataset string         //if empty, the only dataset in the root group is read
	name    string         //VisualPIC name, for the unit table
	table   UnitTable
	q       units.Quantity
	norm    *units.Normalizer
}

func (L *loader) Path(step int) string {
	return filepath.Join(L.dir, scan.File(L.prefix, step, L.ext))
}

func (L *loader) open(step int, caller string) (h5.File, error) {
	f, err := L.opener.Open(L.Path(step))
	if err != nil {
		return nil, vpic.NewError(vpic.ErrMalformedSource, err.Error(), L.Path(step), caller)
	}
	return f, nil
}

//target returns the name of the dataset to read from f.
func (L *loader) target(f h5.File, step int) (string, error) {
	if L.dataset != "" {
		return L.dataset, nil
	}
	names, err := f.Datasets("")
	if err != nil {
		return "", vpic.NewError(vpic.ErrMalformedSource, err.Error(), L.Path(step), "hipace.target")
	}
	if len(names) != 1 {
		return "", vpic.Errorf(vpic.ErrMalformedSource, L.Path(step), "hipace.target", "expected one dataset, found %d", len(names))
	}
	return names[0], nil
}

func (L *loader) ReadData(step int) (*vpic.Array, float64, error) {
	f, err := L.open(step, "hipace.ReadData")
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	name, err := L.target(f, step)
	if err != nil {
		return nil, 0, err
	}
	d, err := f.Dataset(name)
	if err != nil {
		return nil, 0, vpic.Errorf(vpic.ErrMalformedSource, L.Path(step), "hipace.ReadData", "dataset '%s': %v", name, err)
	}
	data, shape, err := d.Float64s()
	if err != nil {
		return nil, 0, vpic.NewError(vpic.ErrMalformedSource, err.Error(), L.Path(step), "hipace.ReadData")
	}
	t := math.NaN()
	if tv, ok := f.GroupAttr("", "TIME"); ok {
		if x, ok := h5.Float(tv); ok {
			t = x
		}
	}
	if L.norm != nil {
		L.norm.Convert(L.q, data, "")
		t *= L.norm.Factor(units.Time)
	}
	return vpic.NewArray(data, shape...), t, nil
}

//ReadUnits looks the units up in the table. No file is read.
func (L *loader) ReadUnits() (string, string, error) {
	du, ok := L.table.Data[L.name]
	if !ok {
		return "", "", vpic.Errorf(vpic.ErrMalformedSource, "", "hipace.ReadUnits", "no units known for '%s'", L.name)
	}
	tu := L.table.Time
	if tu == "" {
		return "", "", vpic.NewError(vpic.ErrMalformedSource, "no time unit known", "", "hipace.ReadUnits")
	}
	if L.norm != nil {
		du = L.norm.Convert(L.q, nil, du)
		tu = units.Time.SI()
	}
	return du, tu, nil
}

type fieldLoader struct {
	loader
}

//ReadGeometry tells the geometry from the rank of the field.
func (L *fieldLoader) ReadGeometry(step int) (vpic.Geometry, error) {
	f, err := L.open(step, "hipace.ReadGeometry")
	if err != nil {
		return vpic.UnknownGeometry, err
	}
	defer f.Close()
	name, err := L.target(f, step)
	if err != nil {
		return vpic.UnknownGeometry, err
	}
	d, err := f.DatasetInfo(name)
	if err != nil {
		return vpic.UnknownGeometry, vpic.Errorf(vpic.ErrMalformedSource, L.Path(step), "hipace.ReadGeometry", "dataset '%s': %v", name, err)
	}
	g := vpic.CartesianGeometry(d.Rank)
	if g == vpic.UnknownGeometry {
		return g, vpic.Errorf(vpic.ErrMalformedSource, L.Path(step), "hipace.ReadGeometry", "can't tell the geometry of a %d-dimensional grid", d.Rank)
	}
	return g, nil
}
