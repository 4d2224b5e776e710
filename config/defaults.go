/*
 * defaults.go, part of VisualPIC.
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

package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	ini "github.com/lars-t-hansen/ini"
)

//The defaults file. Constant after initialization.
var (
	parser                 = ini.NewParser()
	defaultsSection        = parser.AddSection("defaults")
	defaultCode            = defaultsSection.AddString("code")
	defaultFolder          = defaultsSection.AddString("folder")
	defaultPlasmaDensity   = defaultsSection.AddString("plasma-density")
	defaultLaserWavelength = defaultsSection.AddString("laser-wavelength")
)

//Defaults holds the values of the user's defaults file, which has a single [defaults]
//section with the same variables as the [simulation] section of a run file.
type Defaults struct {
	store *ini.Store
}

//DefaultsFile returns the path of the user's defaults file, $HOME/.vpic, or an empty
//string if there is no home directory.
func DefaultsFile() string {
	home := os.Getenv("HOME")
	if home == "" {
		return ""
	}
	return filepath.Join(filepath.Clean(home), ".vpic")
}

//ParseDefaults reads defaults from r.
func ParseDefaults(r io.Reader) (*Defaults, error) {
	store, err := parser.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Defaults{store: store}, nil
}

//ReadDefaults reads the defaults file fname. A file that does not exist gives empty
//defaults, not an error.
func ReadDefaults(fname string) (*Defaults, error) {
	if fname == "" {
		return &Defaults{}, nil
	}
	input, err := os.Open(fname)
	if errors.Is(err, os.ErrNotExist) {
		return &Defaults{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer input.Close()
	return ParseDefaults(input)
}

func (D *Defaults) apply(sp *string, f *ini.Field) bool {
	if *sp != "" || D == nil || D.store == nil || !f.Present(D.store) {
		return false
	}
	*sp = os.ExpandEnv(f.StringVal(D.store))
	return true
}

func (D *Defaults) applyFloat(o *OptFloat, f *ini.Field) error {
	if o.Set {
		return nil
	}
	var s string
	if !D.apply(&s, f) {
		return nil
	}
	return o.UnmarshalText([]byte(s))
}

//ApplyDefaults fills in the values C lacks from d. Environment variables in the
//default values are expanded.
func (C *Config) ApplyDefaults(d *Defaults) error {
	s := &C.Simulation
	d.apply(&s.Code, defaultCode)
	d.apply(&s.Folder, defaultFolder)
	if err := d.applyFloat(&s.PlasmaDensity, defaultPlasmaDensity); err != nil {
		return err
	}
	return d.applyFloat(&s.LaserWavelength, defaultLaserWavelength)
}
