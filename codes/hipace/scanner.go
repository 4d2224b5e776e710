/*
 * scanner.go, part of VisualPIC.
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

package hipace

import (
	"log"
	"path/filepath"
	"strings"

	vpic "github.com/delaossa/VisualPIC"
	"github.com/delaossa/VisualPIC/codes/internal/scan"
	"github.com/delaossa/VisualPIC/h5"
	"github.com/delaossa/VisualPIC/units"
)

//Scanner finds the fields and particle species in a HiPACE output folder.
//It implements vpic.Scanner.
type Scanner struct {
	opener     h5.Opener
	norm       *units.Normalizer
	rawUnits   UnitTable
	fieldUnits UnitTable
}

//NewScanner returns a scanner that reads files with o and takes units from the
//default tables. If p carries a plasma density, the data is converted to SI.
func NewScanner(o h5.Opener, p *vpic.Params) *Scanner {
	S := &Scanner{opener: o, rawUnits: DefaultRawUnits(), fieldUnits: DefaultFieldUnits()}
	if p != nil {
		S.norm = p.Normalizer()
	}
	return S
}

//WithUnits replaces the unit tables used for particle data and for fields, and returns
//the receiver. The tables are copied.
func (S *Scanner) WithUnits(raw, fields UnitTable) *Scanner {
	S.rawUnits = raw.Copy()
	S.fieldUnits = fields.Copy()
	return S
}

//dataFolder returns the folder with the HiPACE files: DATA if it exists, folder otherwise.
func dataFolder(folder string) string {
	d := filepath.Join(folder, "DATA")
	if scan.IsDir(d) {
		return d
	}
	return folder
}

//series groups the files in dir named kind_<key>_NNNNNN by key.
func series(dir, kind string) (*scan.Set, error) {
	files, err := scan.Containers(dir)
	if err != nil {
		return nil, err
	}
	set := scan.NewSet()
	for _, e := range files {
		if !strings.HasPrefix(e.Base, kind+"_") {
			continue
		}
		key, step, ok := scan.SplitStep(strings.TrimPrefix(e.Base, kind), "_")
		if !ok || len(key) < 2 {
			log.Printf("hipace: ignoring unexpected file %s", filepath.Join(dir, e.Name))
			continue
		}
		set.Add(key[1:], step, e.Ext)
	}
	return set, nil
}

//Fields returns the fields in the folder: first the field_ files, then the density_ ones,
//which are the charge density (rho) of a species.
func (S *Scanner) Fields(folder string) ([]*vpic.FolderField, error) {
	if err := scan.CheckFolder(folder); err != nil {
		return nil, vpic.NewError(vpic.ErrNotFound, err.Error(), folder, "hipace.Fields")
	}
	dir := dataFolder(folder)
	var ret []*vpic.FolderField
	for _, kind := range []string{"field", "density"} {
		set, err := series(dir, kind)
		if err != nil {
			return nil, vpic.NewError(vpic.ErrMalformedSource, err.Error(), dir, "hipace.Fields")
		}
		for _, key := range set.Keys() {
			name, species := FieldName(key), ""
			if kind == "density" {
				name, species = "rho", key
			}
			l := &fieldLoader{loader{
				opener: S.opener,
				dir:    dir,
				prefix: kind + "_" + key + "_",
				ext:    set.Exts(key),
				name:   name,
				table:  S.fieldUnits,
				q:      units.QuantityOf(name),
				norm:   S.norm,
			}}
			steps := vpic.SortedSteps(set.Steps(key))
			ret = append(ret, vpic.NewFolderField(name, species, steps, vpic.NewReader(l)))
		}
	}
	return ret, nil
}

//Species returns the particle species in the folder. The datasets of each are the ones
//in the root group of its first readable raw file.
func (S *Scanner) Species(folder string) ([]*vpic.ParticleSpecies, error) {
	if err := scan.CheckFolder(folder); err != nil {
		return nil, vpic.NewError(vpic.ErrNotFound, err.Error(), folder, "hipace.Species")
	}
	dir := dataFolder(folder)
	set, err := series(dir, "raw")
	if err != nil {
		return nil, vpic.NewError(vpic.ErrMalformedSource, err.Error(), dir, "hipace.Species")
	}
	var ret []*vpic.ParticleSpecies
	for _, sp := range set.Keys() {
		template := loader{
			opener: S.opener,
			dir:    dir,
			prefix: "raw_" + sp + "_",
			ext:    set.Exts(sp),
			table:  S.rawUnits,
			norm:   S.norm,
		}
		steps := vpic.SortedSteps(set.Steps(sp))
		names := S.datasets(&template, steps)
		if len(names) == 0 {
			continue
		}
		sets := make([]*vpic.RawDataSet, 0, len(names))
		for _, n := range names {
			l := template
			l.dataset = n
			l.name = n
			l.q = units.QuantityOf(rawNames[n])
			sets = append(sets, vpic.NewRawDataSet(n, sp, steps, vpic.NewReader(&l)))
		}
		ret = append(ret, vpic.NewParticleSpecies(sp, sets...))
	}
	return ret, nil
}

//datasets lists the root datasets of the first file of the series that can be read.
func (S *Scanner) datasets(l *loader, steps []int) []string {
	for _, step := range steps {
		f, err := S.opener.Open(l.Path(step))
		if err != nil {
			log.Printf("hipace: can't read %s: %v", l.Path(step), err)
			continue
		}
		names, err := f.Datasets("")
		f.Close()
		if err == nil {
			return names
		}
		log.Printf("hipace: can't list datasets in %s: %v", l.Path(step), err)
	}
	return nil
}
