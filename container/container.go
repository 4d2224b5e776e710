/*
 * container.go, part of VisualPIC.
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

//Package container provides Container, the entry point to the data of a simulation folder.
//A Container scans the folder with the scanner for the simulation code that wrote it,
//keeps the resulting field and species handles, and adds the derived fields that can
//be computed from the stored ones.
package container

import (
	"log"

	vpic "github.com/delaossa/VisualPIC"
	"github.com/delaossa/VisualPIC/codes/hipace"
	"github.com/delaossa/VisualPIC/codes/openpmd"
	"github.com/delaossa/VisualPIC/codes/osiris"
	"github.com/delaossa/VisualPIC/codes/picongpu"
	"github.com/delaossa/VisualPIC/derived"
)

//Container gives access to all the data in a simulation folder.
//It is not safe for concurrent use.
type Container struct {
	code     vpic.Code
	folder   string
	params   *vpic.Params
	opts     *Options
	scanner  vpic.Scanner
	loaded   bool
	fields   []*vpic.FolderField
	species  []*vpic.ParticleSpecies
	derived  []*derived.Field
	geometry vpic.Geometry
}

//scannerFor returns the scanner for code.
func scannerFor(code vpic.Code, p *vpic.Params, o *Options) (vpic.Scanner, error) {
	switch code {
	case vpic.Osiris:
		return osiris.NewScanner(o.opener, p), nil
	case vpic.HiPACE:
		return hipace.NewScanner(o.opener, p).WithUnits(o.rawUnits, o.fieldUnits), nil
	case vpic.OpenPMD:
		return openpmd.NewScanner(o.opener), nil
	case vpic.PIConGPU:
		return picongpu.NewScanner(o.opener), nil
	}
	return nil, vpic.Errorf(vpic.ErrUnsupportedCode, "", "container.scannerFor", "unknown code %d", int(code))
}

//New returns a container for the data that code wrote in folder. p may be nil, in which
//case the default parameters are used, and so can o. Nothing is read until Load is called.
func New(code vpic.Code, folder string, p *vpic.Params, o *Options) (*Container, error) {
	if p == nil {
		p = vpic.DefaultParams()
	}
	if o == nil {
		o = DefaultOptions()
	}
	C := &Container{code: code, folder: folder, params: p.ForCode(code), opts: o}
	if o.scanner != nil {
		C.scanner = o.scanner
		return C, nil
	}
	s, err := scannerFor(code, C.params, o)
	if err != nil {
		return nil, vpic.Decorate(err, "container.New")
	}
	C.scanner = s
	return C, nil
}

//Code returns the simulation code of the container.
func (C *Container) Code() vpic.Code { return C.code }

//Folder returns the data folder of the container.
func (C *Container) Folder() string { return C.folder }

//Params returns the simulation parameters, set up for the container's code.
func (C *Container) Params() *vpic.Params { return C.params }

//Geometry returns the geometry of the simulation, as found in the last load.
//It is UnknownGeometry if there are no fields.
func (C *Container) Geometry() vpic.Geometry { return C.geometry }

//Load scans the folder. If the container was already loaded it does nothing,
//unless force is true. On error, the container keeps whatever it had before.
func (C *Container) Load(force bool) error {
	if C.loaded && !force {
		return nil
	}
	fields, err := C.scanner.Fields(C.folder)
	if err != nil {
		return vpic.Decorate(err, "container.Load")
	}
	species, err := C.scanner.Species(C.folder)
	if err != nil {
		return vpic.Decorate(err, "container.Load")
	}
	g, err := geometryOf(fields)
	if err != nil {
		return vpic.Decorate(err, "container.Load")
	}
	base := make([]vpic.Field, len(fields))
	for i, f := range fields {
		base[i] = f
	}
	der := derived.Generate(C.opts.catalogue, g, base, C.params)
	C.fields, C.species, C.derived, C.geometry = fields, species, der, g
	C.loaded = true
	log.Printf("container: %s folder %s: %d fields, %d derived fields, %d species, geometry '%s'", C.code, C.folder, len(fields), len(der), len(species), g)
	return nil
}

//geometryOf returns the geometry shared by all the fields, checked at the first timestep of
//each. Fields whose geometry can't be read are skipped. If the fields disagree, the error
//wraps ErrMixedGeometry.
func geometryOf(fields []*vpic.FolderField) (vpic.Geometry, error) {
	g := vpic.UnknownGeometry
	first := ""
	for _, f := range fields {
		steps := f.Timesteps()
		if len(steps) == 0 {
			continue
		}
		fg, err := f.Geometry(steps[0])
		if err != nil {
			log.Printf("container: can't tell the geometry of %s: %v", vpic.DisplayName(f.Name(), f.Species()), err)
			continue
		}
		name := vpic.DisplayName(f.Name(), f.Species())
		if g == vpic.UnknownGeometry {
			g, first = fg, name
			continue
		}
		if fg != g {
			return vpic.UnknownGeometry, vpic.Errorf(vpic.ErrMixedGeometry, "", "container.geometryOf", "%s is '%s' but %s is '%s'", first, g, name, fg)
		}
	}
	return g, nil
}

//FieldNames returns the display names of the fields, stored ones first, then the derived
//ones if includeDerived is true.
func (C *Container) FieldNames(includeDerived bool) []string {
	ret := make([]string, 0, len(C.fields)+len(C.derived))
	for _, f := range C.fields {
		ret = append(ret, vpic.DisplayName(f.Name(), f.Species()))
	}
	if includeDerived {
		for _, f := range C.derived {
			ret = append(ret, vpic.DisplayName(f.Name(), f.Species()))
		}
	}
	return ret
}

//Field returns the field with the given name and species. species is empty for domain fields.
func (C *Container) Field(name, species string) (vpic.Field, error) {
	for _, f := range C.fields {
		if f.Name() == name && f.Species() == species {
			return f, nil
		}
	}
	for _, f := range C.derived {
		if f.Name() == name && f.Species() == species {
			return f, nil
		}
	}
	return nil, vpic.Errorf(vpic.ErrNotFound, "", "container.Field", "field '%s' not found. Available fields are %v", vpic.DisplayName(name, species), C.FieldNames(true))
}

//SpeciesNames returns the names of the particle species.
func (C *Container) SpeciesNames() []string {
	ret := make([]string, 0, len(C.species))
	for _, s := range C.species {
		ret = append(ret, s.Name())
	}
	return ret
}

//Species returns the particle species with the given name.
func (C *Container) Species(name string) (*vpic.ParticleSpecies, error) {
	for _, s := range C.species {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, vpic.Errorf(vpic.ErrNotFound, "", "container.Species", "species '%s' not found. Available species are %v", name, C.SpeciesNames())
}
