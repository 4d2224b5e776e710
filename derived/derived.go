/*
 * derived.go, part of VisualPIC.
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

//Package derived computes fields that are not stored in a simulation folder, but follow
//from the stored ones through a fixed formula.
//
//The formulas live in a catalogue of Definitions. Each definition says which base fields
//it needs for each geometry. Resolve tells, without any I/O, which definitions can be
//computed from a set of field names, and Generate binds them to actual fields.
package derived

import (
	vpic "github.com/delaossa/VisualPIC"
)

//Recipe computes a derived field from its base fields, given in the order of the
//requirements. It must not modify its arguments.
type Recipe func(base []*vpic.Array, p *vpic.Params) (*vpic.Array, error)

//Definition describes a derived field.
type Definition struct {
	Name            string
	Units           string //units of the result when the base fields are in SI
	NormalizedUnits string //units of the result when the base fields are in normalized units
	//Requirements lists, per geometry, the names of the base fields needed. A geometry
	//that is not in the map can't produce the field.
	Requirements    map[vpic.Geometry][]string
	Recipe          Recipe
}

//Resolve returns the definitions in catalogue that can be computed in geometry g from
//fields with the given names, in catalogue order.
func Resolve(catalogue []*Definition, g vpic.Geometry, names []string) []*Definition {
	avail := make(map[string]bool, len(names))
	for _, n := range names {
		avail[n] = true
	}
	var ret []*Definition
	for _, d := range catalogue {
		req, ok := d.Requirements[g]
		if !ok || len(req) == 0 {
			continue
		}
		all := true
		for _, r := range req {
			if !avail[r] {
				all = false
				break
			}
		}
		if all {
			ret = append(ret, d)
		}
	}
	return ret
}

//Generate returns the derived fields from catalogue that can be computed from fields in geometry g.
//Fields are matched by their display name, so only domain fields can be asked for by bare name.
func Generate(catalogue []*Definition, g vpic.Geometry, fields []vpic.Field, p *vpic.Params) []*Field {
	if g == vpic.UnknownGeometry || len(fields) == 0 {
		return nil
	}
	byName := make(map[string]vpic.Field, len(fields))
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		n := vpic.DisplayName(f.Name(), f.Species())
		if _, ok := byName[n]; ok {
			continue
		}
		byName[n] = f
		names = append(names, n)
	}
	var ret []*Field
	for _, d := range Resolve(catalogue, g, names) {
		//A stored field wins over a derived one with the same name.
		if _, ok := byName[d.Name]; ok {
			continue
		}
		req := d.Requirements[g]
		base := make([]vpic.Field, len(req))
		for i, r := range req {
			base[i] = byName[r]
		}
		ret = append(ret, NewField(d, base, p))
	}
	return ret
}

//Field is a Definition bound to its base fields. It implements vpic.Field.
//Nothing is cached: every call to Data reads the base fields and applies the recipe.
type Field struct {
	def   *Definition
	base  []vpic.Field
	p     *vpic.Params
	steps []int
}

//NewField binds d to the base fields, which must be in the order of d's requirements.
//The field is available at the timesteps where all its base fields are.
func NewField(d *Definition, base []vpic.Field, p *vpic.Params) *Field {
	if p == nil {
		p = vpic.DefaultParams()
	}
	count := make(map[int]int)
	for _, b := range base {
		for _, s := range b.Timesteps() {
			count[s]++
		}
	}
	set := make(map[int]bool)
	for s, n := range count {
		if n == len(base) {
			set[s] = true
		}
	}
	return &Field{def: d, base: base, p: p, steps: vpic.SortedSteps(set)}
}

//Name returns the name of the derived field.
func (F *Field) Name() string { return F.def.Name }

//Species returns an empty string, derived fields are domain fields.
func (F *Field) Species() string { return "" }

//Timesteps returns the steps at which all base fields are available.
func (F *Field) Timesteps() []int { return F.steps }

//Definition returns the definition of the field.
func (F *Field) Definition() *Definition { return F.def }

func (F *Field) check(step int, caller string) error {
	for _, s := range F.steps {
		if s == step {
			return nil
		}
	}
	return vpic.Errorf(vpic.ErrNotFound, "", caller, "timestep %d not available for derived field '%s'. Available timesteps are %v", step, F.def.Name, F.steps)
}

//Data computes the field at the given timestep.
func (F *Field) Data(step int) (*vpic.Array, error) {
	if err := F.check(step, "derived.Data"); err != nil {
		return nil, err
	}
	arrays := make([]*vpic.Array, len(F.base))
	for i, b := range F.base {
		a, err := b.Data(step)
		if err != nil {
			return nil, vpic.Decorate(err, "derived.Data "+F.def.Name)
		}
		arrays[i] = a
	}
	r, err := F.def.Recipe(arrays, F.p)
	if err != nil {
		return nil, vpic.Decorate(err, "derived.Data "+F.def.Name)
	}
	return r, nil
}

//Time returns the simulation time at the given timestep, as given by the first base field.
func (F *Field) Time(step int) (float64, error) {
	if err := F.check(step, "derived.Time"); err != nil {
		return 0, err
	}
	return F.base[0].Time(step)
}

//Units returns the units of the field, which depend on whether the data is normalized.
func (F *Field) Units() (string, error) {
	if F.p.Normalized() {
		return F.def.NormalizedUnits, nil
	}
	return F.def.Units, nil
}

//TimeUnits returns the time units of the first base field.
func (F *Field) TimeUnits() (string, error) {
	return F.base[0].TimeUnits()
}
