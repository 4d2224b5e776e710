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

package osiris

import (
	"log"
	"path/filepath"
	"strings"

	vpic "github.com/delaossa/VisualPIC"
	"github.com/delaossa/VisualPIC/codes/internal/scan"
	"github.com/delaossa/VisualPIC/h5"
	"github.com/delaossa/VisualPIC/units"
)

//Scanner finds the fields and particle species in an Osiris output folder.
//It implements vpic.Scanner.
type Scanner struct {
	opener h5.Opener
	norm   *units.Normalizer
}

//NewScanner returns a scanner that reads files with o. If p carries a plasma density, the data
//is converted to SI units, otherwise it stays in the normalized units Osiris writes.
func NewScanner(o h5.Opener, p *vpic.Params) *Scanner {
	S := &Scanner{opener: o}
	if p != nil {
		S.norm = p.Normalizer()
	}
	return S
}

//msFolder returns the folder with the Osiris output tree. The MS folder itself
//or its parent are both accepted.
func msFolder(folder string) string {
	ms := filepath.Join(folder, "MS")
	if scan.IsDir(ms) {
		return ms
	}
	return folder
}

//Fields returns the fields in the folder, domain fields first, then species fields.
func (S *Scanner) Fields(folder string) ([]*vpic.FolderField, error) {
	if err := scan.CheckFolder(folder); err != nil {
		return nil, vpic.NewError(vpic.ErrNotFound, err.Error(), folder, "osiris.Fields")
	}
	ms := msFolder(folder)
	var ret []*vpic.FolderField
	fld := filepath.Join(ms, "FLD")
	names, err := scan.Subdirs(fld)
	if err != nil {
		return nil, vpic.NewError(vpic.ErrMalformedSource, err.Error(), fld, "osiris.Fields")
	}
	for _, q := range names {
		dir := filepath.Join(fld, q)
		f, err := S.fieldSeries(dir, q, q+"-", "")
		if err != nil {
			return nil, err
		}
		ret = append(ret, f...)
	}
	dens := filepath.Join(ms, "DENSITY")
	species, err := scan.Subdirs(dens)
	if err != nil {
		return nil, vpic.NewError(vpic.ErrMalformedSource, err.Error(), dens, "osiris.Fields")
	}
	for _, sp := range species {
		spdir := filepath.Join(dens, sp)
		names, err := scan.Subdirs(spdir)
		if err != nil {
			return nil, vpic.NewError(vpic.ErrMalformedSource, err.Error(), spdir, "osiris.Fields")
		}
		for _, q := range names {
			f, err := S.fieldSeries(filepath.Join(spdir, q), q, q+"-"+sp+"-", sp)
			if err != nil {
				return nil, err
			}
			ret = append(ret, f...)
		}
	}
	return ret, nil
}

//fieldSeries builds the field stored in dir, in files named prefix + timestep.
//The result has zero or one element.
func (S *Scanner) fieldSeries(dir, q, prefix, species string) ([]*vpic.FolderField, error) {
	files, err := scan.Containers(dir)
	if err != nil {
		return nil, vpic.NewError(vpic.ErrMalformedSource, err.Error(), dir, "osiris.fieldSeries")
	}
	set := scan.NewSet()
	for _, e := range files {
		step, ok := scan.Step(e.Base, prefix)
		if !ok {
			log.Printf("osiris: ignoring unexpected file %s", filepath.Join(dir, e.Name))
			continue
		}
		set.Add(q, step, e.Ext)
	}
	if len(set.Keys()) == 0 {
		return nil, nil
	}
	steps := vpic.SortedSteps(set.Steps(q))
	name := FieldName(q)
	l := &fieldLoader{loader{
		opener:  S.opener,
		dir:     dir,
		prefix:  prefix,
		ext:     set.Exts(q),
		dataset: q,
		first:   steps[0],
		q:       units.QuantityOf(name),
		norm:    S.norm,
	}}
	return []*vpic.FolderField{vpic.NewFolderField(name, species, steps, vpic.NewReader(l))}, nil
}

//rawLocations returns the folders where Osiris raw files may be, most specific first.
//Files are matched by name, so the folder itself is also searched.
func rawLocations(folder string) []string {
	var ret []string
	for _, raw := range []string{filepath.Join(folder, "MS", "RAW"), filepath.Join(folder, "RAW")} {
		sub, _ := scan.Subdirs(raw)
		for _, s := range sub {
			ret = append(ret, filepath.Join(raw, s))
		}
		ret = append(ret, raw)
	}
	return append(ret, folder)
}

//Species returns the particle species in the folder. A species is found from files named
//RAW-<species>-NNNNNN.h5. The datasets of the species are the ones in the root group of
//its first readable file.
func (S *Scanner) Species(folder string) ([]*vpic.ParticleSpecies, error) {
	if err := scan.CheckFolder(folder); err != nil {
		return nil, vpic.NewError(vpic.ErrNotFound, err.Error(), folder, "osiris.Species")
	}
	var ret []*vpic.ParticleSpecies
	seen := make(map[string]bool)
	for _, dir := range rawLocations(folder) {
		files, err := scan.Containers(dir)
		if err != nil {
			return nil, vpic.NewError(vpic.ErrMalformedSource, err.Error(), dir, "osiris.Species")
		}
		set := scan.NewSet()
		for _, e := range files {
			prefix, step, ok := scan.SplitStep(e.Base, "-")
			if !ok || !strings.HasPrefix(prefix, "RAW-") || len(prefix) == len("RAW-") {
				continue
			}
			set.Add(strings.TrimPrefix(prefix, "RAW-"), step, e.Ext)
		}
		for _, sp := range set.Keys() {
			if seen[sp] {
				log.Printf("osiris: species %s found again in %s, ignored", sp, dir)
				continue
			}
			s := S.species(dir, sp, set.Exts(sp), vpic.SortedSteps(set.Steps(sp)))
			if s != nil {
				seen[sp] = true
				ret = append(ret, s)
			}
		}
	}
	return ret, nil
}

//species builds the species sp, with the given steps. It returns nil if none of its
//files can be read.
func (S *Scanner) species(dir, sp string, ext map[int]string, steps []int) *vpic.ParticleSpecies {
	template := loader{opener: S.opener, dir: dir, prefix: "RAW-" + sp + "-", ext: ext, norm: S.norm}
	var names []string
	for _, step := range steps {
		f, err := S.opener.Open(template.Path(step))
		if err != nil {
			log.Printf("osiris: can't read %s: %v", template.Path(step), err)
			continue
		}
		names, err = f.Datasets("")
		f.Close()
		if err == nil {
			template.first = step
			break
		}
		log.Printf("osiris: can't list datasets in %s: %v", template.Path(step), err)
	}
	if len(names) == 0 {
		return nil
	}
	sets := make([]*vpic.RawDataSet, 0, len(names))
	for _, n := range names {
		l := template
		l.dataset = n
		l.q = units.QuantityOf(rawNames[n])
		sets = append(sets, vpic.NewRawDataSet(n, sp, steps, vpic.NewReader(&l)))
	}
	return vpic.NewParticleSpecies(sp, sets...)
}
