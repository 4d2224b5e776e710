/*
 * main.go, part of VisualPIC.
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

//picinfo loads a simulation folder and prints what it contains, the evolution of a field
//along the simulation or the statistics of a particle beam.
//
//Usage:
//
//	picinfo [-config run.gcfg] [-code Osiris] [-folder dir] [-np 1e24] [-lambda 0.8e-6]
//	        [-field Ez [-species electrons]] [-beam electrons [-spectrum step]]
//
//Values not given in the flags or the config file are taken from $HOME/.vpic.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	vpic "github.com/delaossa/VisualPIC"
	"github.com/delaossa/VisualPIC/beamstat"
	"github.com/delaossa/VisualPIC/config"
	"github.com/delaossa/VisualPIC/container"
)

func main() {
	cfgFile := flag.String("config", "", "Run file, in gcfg format, with a [simulation] section")
	code := flag.String("code", "", "Simulation code: Osiris, HiPACE, openPMD or PIConGPU")
	folder := flag.String("folder", "", "Data folder")
	np := flag.Float64("np", 0, "Plasma density in m^-3. Normalized data is converted to SI if given")
	lambda := flag.Float64("lambda", 0, "Laser wavelength in m")
	field := flag.String("field", "", "Print the minimum and maximum of this field at every timestep")
	species := flag.String("species", "", "Species of the field given with -field, if any")
	beam := flag.String("beam", "", "Print the beam statistics of this species at every timestep")
	spectrum := flag.Int("spectrum", -1, "With -beam, print the longitudinal momentum spectrum at this timestep as JSON")
	bins := flag.Int("bins", 100, "Number of bins of the spectrum")
	verbose := flag.Bool("v", false, "Log what is being loaded")
	flag.Parse()
	log.SetFlags(0)
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := &config.Config{}
	var err error
	if *cfgFile != "" {
		cfg, err = config.ReadFile(*cfgFile)
		if err != nil {
			fatal(err)
		}
	}
	sim := &cfg.Simulation
	if *code != "" {
		sim.Code = *code
	}
	if *folder != "" {
		sim.Folder = *folder
	}
	if *np > 0 {
		sim.PlasmaDensity = config.OptFloat{Value: *np, Set: true}
	}
	if *lambda > 0 {
		sim.LaserWavelength = config.OptFloat{Value: *lambda, Set: true}
	}
	defaults, err := config.ReadDefaults(config.DefaultsFile())
	if err != nil {
		fatal(err)
	}
	if err = cfg.ApplyDefaults(defaults); err != nil {
		fatal(err)
	}
	if err = cfg.Validate(); err != nil {
		fatal(err)
	}
	c, _ := cfg.Code()
	cont, err := container.New(c, sim.Folder, cfg.Params(), nil)
	if err != nil {
		fatal(err)
	}
	if err = cont.Load(false); err != nil {
		fatal(err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	switch {
	case *field != "":
		err = fieldEvolution(w, cont, *field, *species)
	case *beam != "" && *spectrum >= 0:
		err = beamSpectrum(cont, *beam, *spectrum, *bins)
	case *beam != "":
		err = beamSeries(w, cont, *beam)
	default:
		err = summary(w, cont)
	}
	if err != nil {
		w.Flush()
		fatal(err)
	}
}

func fatal(err error) {
	log.SetOutput(os.Stderr)
	log.Fatal("picinfo: ", err)
}

//steps shortens a list of timesteps for printing.
func steps(s []int) string {
	if len(s) == 0 {
		return "none"
	}
	if len(s) <= 6 {
		return strings.Trim(fmt.Sprint(s), "[]")
	}
	return fmt.Sprintf("%d %d %d ... %d (%d steps)", s[0], s[1], s[2], s[len(s)-1], len(s))
}

func summary(w *tabwriter.Writer, c *container.Container) error {
	fmt.Fprintf(w, "%s simulation in %s, geometry '%s'\n\n", c.Code(), c.Folder(), c.Geometry())
	fmt.Fprintln(w, "Field\tUnits\tTimesteps")
	for _, name := range c.FieldNames(true) {
		f, err := fieldByDisplayName(c, name)
		if err != nil {
			return err
		}
		u, err := f.Units()
		if err != nil {
			u = "?"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, u, steps(f.Timesteps()))
	}
	fmt.Fprintln(w, "\nSpecies\tDatasets\tTimesteps")
	for _, name := range c.SpeciesNames() {
		sp, err := c.Species(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, strings.Join(sp.RawDataSetNames(), " "), steps(sp.Timesteps()))
	}
	return nil
}

//fieldByDisplayName takes apart "name [species]" and looks the field up.
func fieldByDisplayName(c *container.Container, display string) (vpic.Field, error) {
	name, species := display, ""
	if i := strings.Index(display, " ["); i > 0 && strings.HasSuffix(display, "]") {
		name, species = display[:i], display[i+2:len(display)-1]
	}
	return c.Field(name, species)
}

func fieldEvolution(w *tabwriter.Writer, c *container.Container, name, species string) error {
	f, err := c.Field(name, species)
	if err != nil {
		return err
	}
	u, _ := f.Units()
	tu, _ := f.TimeUnits()
	fmt.Fprintf(w, "Step\tTime [%s]\tMin [%s]\tMax [%s]\n", tu, u, u)
	for _, step := range f.Timesteps() {
		d, err := f.Data(step)
		if err != nil {
			return err
		}
		t, err := f.Time(step)
		if err != nil {
			return err
		}
		if d.Len() == 0 {
			fmt.Fprintf(w, "%d\t%g\t-\t-\n", step, t)
			continue
		}
		fmt.Fprintf(w, "%d\t%g\t%g\t%g\n", step, t, d.Min(), d.Max())
	}
	return nil
}

func beamSeries(w *tabwriter.Writer, c *container.Container, name string) error {
	sp, err := c.Species(name)
	if err != nil {
		return err
	}
	series, err := beamstat.Series(sp, beamstat.NamesFor(c.Code()))
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "Step\tTime\tParticles\tCharge\t<x>\tx_rms\t<x'>\tx'_rms\tEmittance\t<pz>\tSpread")
	for _, s := range series {
		fmt.Fprintf(w, "%d\t%g\t%d\t%g\t%g\t%g\t%g\t%g\t%g\t%g\t%g\n", s.Step, s.Time, s.Particles, s.Charge,
			s.MeanX, s.RmsX, s.MeanXp, s.RmsXp, s.Emittance, s.MeanPz, s.Spread)
	}
	corr := beamstat.CentroidCorrelation(series)
	if len(corr) > 1 {
		fmt.Fprintf(w, "\nCentroid autocorrelation at lag 1: %.4f\n", corr[1])
	}
	return nil
}

func beamSpectrum(c *container.Container, name string, step, bins int) error {
	sp, err := c.Species(name)
	if err != nil {
		return err
	}
	h, err := beamstat.Spectrum(sp, beamstat.NamesFor(c.Code()), step, bins)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(h)
}
