/*
 * config.go, part of VisualPIC.
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

//Package config reads the description of a simulation to load: which code wrote it, where
//it is, and the physical parameters that can't be read from the data.
//
//Runs are described in gcfg (INI-like) files:
//
//	[simulation]
//	code = Osiris
//	folder = /data/lwfa
//	plasma-density = 1e24
//	laser-wavelength = 0.8e-6
//
//Values left out can be taken from the user's defaults file, see ReadDefaults.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"

	vpic "github.com/delaossa/VisualPIC"
)

//OptFloat is a float64 that may not be set.
type OptFloat struct {
	Value float64
	Set   bool
}

//UnmarshalText implements encoding.TextUnmarshaler, so gcfg can read OptFloats.
func (O *OptFloat) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*O = OptFloat{}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("config: bad number '%s': %w", s, err)
	}
	*O = OptFloat{Value: v, Set: true}
	return nil
}

//Simulation is the [simulation] section of a run file.
type Simulation struct {
	Code            string
	Folder          string
	PlasmaDensity   OptFloat `gcfg:"plasma-density"`
	LaserWavelength OptFloat `gcfg:"laser-wavelength"`
}

//Config is the contents of a run file.
type Config struct {
	Simulation Simulation
}

//ReadFile reads the run file fname. The result is not validated, as values may still
//come from the defaults.
func ReadFile(fname string) (*Config, error) {
	c := new(Config)
	if err := gcfg.ReadFileInto(c, fname); err != nil {
		return nil, err
	}
	return c, nil
}

//ReadString is like ReadFile, but reads the run description from s.
func ReadString(s string) (*Config, error) {
	c := new(Config)
	if err := gcfg.ReadStringInto(c, s); err != nil {
		return nil, err
	}
	return c, nil
}

//Validate checks that the configuration describes a loadable simulation.
func (C *Config) Validate() error {
	s := C.Simulation
	var errs []error
	if _, err := vpic.ParseCode(s.Code); err != nil {
		errs = append(errs, err)
	}
	if s.Folder == "" {
		errs = append(errs, errors.New("config: no folder given"))
	}
	if s.PlasmaDensity.Set && s.PlasmaDensity.Value <= 0 {
		errs = append(errs, fmt.Errorf("config: plasma density must be positive, not %g", s.PlasmaDensity.Value))
	}
	if s.LaserWavelength.Set && s.LaserWavelength.Value <= 0 {
		errs = append(errs, fmt.Errorf("config: laser wavelength must be positive, not %g", s.LaserWavelength.Value))
	}
	return errors.Join(errs...)
}

//Code returns the simulation code.
func (C *Config) Code() (vpic.Code, error) {
	return vpic.ParseCode(C.Simulation.Code)
}

//Params returns the simulation parameters. The laser wavelength takes its default
//value if not given.
func (C *Config) Params() *vpic.Params {
	p := vpic.DefaultParams()
	if C.Simulation.PlasmaDensity.Set {
		p.SetPlasmaDensity(C.Simulation.PlasmaDensity.Value)
	}
	if C.Simulation.LaserWavelength.Set {
		p.SetLaserWavelength(C.Simulation.LaserWavelength.Value)
	}
	return p
}
