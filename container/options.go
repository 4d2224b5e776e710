/*
 * options.go, part of VisualPIC.
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

package container

import (
	vpic "github.com/delaossa/VisualPIC"
	"github.com/delaossa/VisualPIC/codes/hipace"
	"github.com/delaossa/VisualPIC/derived"
	"github.com/delaossa/VisualPIC/h5"
)

//Options contains the optional settings of a Container.
type Options struct {
	opener     h5.Opener
	catalogue  []*derived.Definition
	scanner    vpic.Scanner //if set, used instead of the one for the simulation code
	rawUnits   hipace.UnitTable
	fieldUnits hipace.UnitTable
}

//DefaultOptions returns options to read HDF5 files from disk and offer all the
//known derived fields.
func DefaultOptions() *Options {
	r := new(Options)
	r.opener = h5.HDF5{}
	r.catalogue = derived.Catalogue
	r.rawUnits = hipace.DefaultRawUnits()
	r.fieldUnits = hipace.DefaultFieldUnits()
	return r
}

//Opener returns the opener for HDF5 files, and sets it to a new value, if given.
func (O *Options) Opener(o ...h5.Opener) h5.Opener {
	if len(o) > 0 && o[0] != nil {
		O.opener = o[0]
	}
	return O.opener
}

//Catalogue returns the derived field definitions to use, and sets them to a new value, if given.
//An empty catalogue means no derived fields.
func (O *Options) Catalogue(c ...[]*derived.Definition) []*derived.Definition {
	if len(c) > 0 {
		O.catalogue = c[0]
	}
	return O.catalogue
}

//Scanner returns the scanner set to replace the one of the simulation code, or nil,
//and sets it to a new value, if given.
func (O *Options) Scanner(s ...vpic.Scanner) vpic.Scanner {
	if len(s) > 0 {
		O.scanner = s[0]
	}
	return O.scanner
}

//HiPACEUnits returns the unit tables for HiPACE particle data and fields, and sets them
//to new values, if given.
func (O *Options) HiPACEUnits(tables ...hipace.UnitTable) (hipace.UnitTable, hipace.UnitTable) {
	if len(tables) > 0 {
		O.rawUnits = tables[0].Copy()
	}
	if len(tables) > 1 {
		O.fieldUnits = tables[1].Copy()
	}
	return O.rawUnits, O.fieldUnits
}
