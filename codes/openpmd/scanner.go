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

package openpmd

import (
	"log"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	vpic "github.com/delaossa/VisualPIC"
	"github.com/delaossa/VisualPIC/codes/internal/scan"
	"github.com/delaossa/VisualPIC/h5"
)

//Scanner finds the meshes and particle species of a file-based openPMD series.
//It implements vpic.Scanner.
type Scanner struct {
	opener h5.Opener
}

//NewScanner returns a scanner that reads files with o.
func NewScanner(o h5.Opener) *Scanner {
	return &Scanner{opener: o}
}

//splitIteration splits a file name like data00000100 into its prefix and iteration.
func splitIteration(base string) (string, int, bool) {
	i := len(base)
	for i > 0 && base[i-1] >= '0' && base[i-1] <= '9' {
		i--
	}
	if i == len(base) {
		return "", 0, false
	}
	n, err := strconv.Atoi(base[i:])
	if err != nil {
		return "", 0, false
	}
	return base[:i], n, true
}

//seriesIn finds the series in folder, or in its hdf5 subfolder. If there are files with
//different prefixes, only the first prefix is used.
func (S *Scanner) seriesIn(folder string) (*series, error) {
	if err := scan.CheckFolder(folder); err != nil {
		return nil, vpic.NewError(vpic.ErrNotFound, err.Error(), folder, "openpmd.series")
	}
	dir := folder
	if d := filepath.Join(folder, "hdf5"); scan.IsDir(d) {
		dir = d
	}
	files, err := scan.Containers(dir)
	if err != nil {
		return nil, vpic.NewError(vpic.ErrMalformedSource, err.Error(), dir, "openpmd.series")
	}
	s := &series{opener: S.opener, files: make(map[int]string)}
	prefix, found := "", false
	for _, e := range files {
		p, step, ok := splitIteration(e.Base)
		if !ok {
			continue
		}
		if !found {
			prefix, found = p, true
		}
		if p != prefix {
			log.Printf("openpmd: ignoring %s, not in the series %s", e.Name, prefix)
			continue
		}
		if _, ok := s.files[step]; ok {
			log.Printf("openpmd: iteration %d found twice, ignoring %s", step, e.Name)
			continue
		}
		s.files[step] = filepath.Join(dir, e.Name)
		s.steps = append(s.steps, step)
	}
	sort.Ints(s.steps)
	return s, nil
}

//each calls fn with every readable file of the series, in iteration order, with the
//iteration and the layout of the file. The file is closed after fn returns.
func (s *series) each(fn func(f h5.File, step int, lay layout)) {
	for _, step := range s.steps {
		f, err := s.opener.Open(s.path(step))
		if err != nil {
			log.Printf("openpmd: can't read %s: %v", s.path(step), err)
			continue
		}
		fn(f, step, readLayout(f))
		f.Close()
	}
}

//recordKey joins a record and one of its components into a scan.Set key.
func recordKey(record, comp string) string {
	return record + "/" + comp
}

func splitKey(key string) (string, string) {
	record, comp, _ := strings.Cut(key, "/")
	return record, comp
}

//components returns the components of the record group at path: datasets and constant
//components. A record that is itself a constant has one component with empty name.
func components(f h5.File, path string) []string {
	if isConstant(f, path) {
		return []string{""}
	}
	ret, _ := f.Datasets(path)
	groups, _ := f.Groups(path)
	for _, g := range groups {
		if isConstant(f, path+"/"+g) {
			ret = append(ret, g)
		}
	}
	sort.Strings(ret)
	return ret
}

//meshName returns the field name and species of a mesh record component.
//E/x is Ex, and the scalar mesh rho_electrons is the rho of the electrons.
func meshName(record, comp string) (string, string) {
	if comp == "" && strings.HasPrefix(record, "rho_") && len(record) > len("rho_") {
		return "rho", strings.TrimPrefix(record, "rho_")
	}
	return record + comp, ""
}

//particleNames maps openPMD particle records to VisualPIC names. The component is
//appended, so momentum/x is px.
var particleNames = map[string]string{
	"position":  "",
	"momentum":  "p",
	"charge":    "q",
	"mass":      "m",
	"weighting": "w",
}

func particleName(record, comp string) string {
	if n, ok := particleNames[record]; ok {
		return n + comp
	}
	return record + comp
}

//Fields returns the mesh record components of the series. Every file is listed, so a
//mesh written only at some iterations has just those timesteps.
func (S *Scanner) Fields(folder string) ([]*vpic.FolderField, error) {
	s, err := S.seriesIn(folder)
	if err != nil {
		return nil, err
	}
	set := scan.NewSet()
	var lay layout
	found := false
	s.each(func(f h5.File, step int, L layout) {
		if !found {
			lay, found = L, true
		}
		meshes := L.meshPath(step)
		groups, _ := f.Groups(meshes)
		for _, g := range groups {
			for _, c := range components(f, meshes+"/"+g) {
				set.Add(recordKey(g, c), step, "")
			}
		}
		scalars, _ := f.Datasets(meshes)
		for _, d := range scalars {
			set.Add(recordKey(d, ""), step, "")
		}
	})
	parent := func(L layout, step int) string { return L.meshPath(step) }
	var ret []*vpic.FolderField
	for _, key := range set.Keys() {
		record, comp := splitKey(key)
		name, species := meshName(record, comp)
		steps := vpic.SortedSteps(set.Steps(key))
		l := &loader{s: s, lay: lay, parent: parent, record: record, comp: comp, first: steps[0], mesh: true}
		ret = append(ret, vpic.NewFolderField(name, species, steps, vpic.NewReader(l)))
	}
	return ret, nil
}

//Species returns the particle species of the series. Every file is listed, so a species
//that appears late in the run is found too, and each record has the timesteps it is written at.
//positionOffset is not a dataset of its own, it is added to the positions.
func (S *Scanner) Species(folder string) ([]*vpic.ParticleSpecies, error) {
	s, err := S.seriesIn(folder)
	if err != nil {
		return nil, err
	}
	var order []string
	records := make(map[string]*scan.Set)
	var lay layout
	found := false
	s.each(func(f h5.File, step int, L layout) {
		if !found {
			lay, found = L, true
		}
		particles := L.particlePath(step)
		names, _ := f.Groups(particles)
		for _, sp := range names {
			set, ok := records[sp]
			if !ok {
				set = scan.NewSet()
				records[sp] = set
				order = append(order, sp)
			}
			spPath := particles + "/" + sp
			groups, _ := f.Groups(spPath)
			for _, r := range groups {
				if r == "positionOffset" || r == "particlePatches" {
					continue
				}
				for _, c := range components(f, spPath+"/"+r) {
					set.Add(recordKey(r, c), step, "")
				}
			}
			scalars, _ := f.Datasets(spPath)
			for _, d := range scalars {
				set.Add(recordKey(d, ""), step, "")
			}
		}
	})
	var ret []*vpic.ParticleSpecies
	for _, sp := range order {
		sp := sp
		parent := func(L layout, step int) string { return L.particlePath(step) + "/" + sp }
		set := records[sp]
		var sets []*vpic.RawDataSet
		for _, key := range set.Keys() {
			record, comp := splitKey(key)
			steps := vpic.SortedSteps(set.Steps(key))
			l := &loader{s: s, lay: lay, parent: parent, record: record, comp: comp, first: steps[0], offset: record == "position"}
			sets = append(sets, vpic.NewRawDataSet(particleName(record, comp), sp, steps, vpic.NewReader(l)))
		}
		if len(sets) == 0 {
			log.Printf("openpmd: species %s has no records, ignored", sp)
			continue
		}
		ret = append(ret, vpic.NewParticleSpecies(sp, sets...))
	}
	return ret, nil
}
