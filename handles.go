/*
 * handles.go, part of VisualPIC.
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

package vpic

import (
	"fmt"
	"sort"
)

//DisplayName returns the name shown to users for a field: the bare name for domain fields,
//"name [species]" for fields that belong to a particle species.
func DisplayName(name, species string) string {
	if species == "" {
		return name
	}
	return fmt.Sprintf("%s [%s]", name, species)
}

//SortedSteps returns the timesteps in set, in increasing order.
func SortedSteps(set map[int]bool) []int {
	ret := make([]int, 0, len(set))
	for k := range set {
		ret = append(ret, k)
	}
	sort.Ints(ret)
	return ret
}

func hasStep(steps []int, step int) bool {
	i := sort.SearchInts(steps, step)
	return i < len(steps) && steps[i] == step
}

//handle is what fields and raw datasets read from a folder have in common.
type handle struct {
	name    string
	species string
	steps   []int
}

func newHandle(name, species string, steps []int) handle {
	s := append([]int(nil), steps...)
	sort.Ints(s)
	return handle{name: name, species: species, steps: s}
}

//Name returns the name of the dataset.
func (H *handle) Name() string { return H.name }

//Species returns the species name, or an empty string if there is none.
func (H *handle) Species() string { return H.species }

//Timesteps returns the timesteps at which the dataset exists.
//The slice belongs to the handle and should not be modified.
func (H *handle) Timesteps() []int { return H.steps }

func (H *handle) check(step int, caller string) error {
	if !hasStep(H.steps, step) {
		return Errorf(ErrNotFound, "", caller, "timestep %d not available for '%s'. Available timesteps are %v", step, DisplayName(H.name, H.species), H.steps)
	}
	return nil
}

//FolderField is a gridded field stored in a data folder. It reads lazily through its
//FieldReader and adds no caching of its own.
type FolderField struct {
	handle
	r FieldReader
}

//NewFolderField returns a handle for the field name (of species, which may be empty), available
//at steps, and read with r.
func NewFolderField(name, species string, steps []int, r FieldReader) *FolderField {
	return &FolderField{handle: newHandle(name, species, steps), r: r}
}

//Data returns the field at the given timestep.
func (F *FolderField) Data(step int) (*Array, error) {
	if err := F.check(step, "FolderField.Data"); err != nil {
		return nil, err
	}
	return F.r.Data(step)
}

//Time returns the simulation time at the given timestep.
func (F *FolderField) Time(step int) (float64, error) {
	if err := F.check(step, "FolderField.Time"); err != nil {
		return 0, err
	}
	return F.r.Time(step)
}

//Units returns the units of the field.
func (F *FolderField) Units() (string, error) { return F.r.DataUnits() }

//TimeUnits returns the units of the simulation time.
func (F *FolderField) TimeUnits() (string, error) { return F.r.TimeUnits() }

//Geometry returns the geometry of the field at the given timestep.
func (F *FolderField) Geometry(step int) (Geometry, error) {
	if err := F.check(step, "FolderField.Geometry"); err != nil {
		return UnknownGeometry, err
	}
	return F.r.Geometry(step)
}

//RawDataSet is one particle attribute (a position or momentum component, the charge...)
//for one species.
type RawDataSet struct {
	handle
	r DataReader
}

//NewRawDataSet returns a handle for the dataset name of species, available at steps and read with r.
func NewRawDataSet(name, species string, steps []int, r DataReader) *RawDataSet {
	return &RawDataSet{handle: newHandle(name, species, steps), r: r}
}

//Data returns the values of the attribute for every particle at the given timestep.
func (R *RawDataSet) Data(step int) (*Array, error) {
	if err := R.check(step, "RawDataSet.Data"); err != nil {
		return nil, err
	}
	return R.r.Data(step)
}

//Time returns the simulation time at the given timestep.
func (R *RawDataSet) Time(step int) (float64, error) {
	if err := R.check(step, "RawDataSet.Time"); err != nil {
		return 0, err
	}
	return R.r.Time(step)
}

//Units returns the units of the attribute.
func (R *RawDataSet) Units() (string, error) { return R.r.DataUnits() }

//TimeUnits returns the units of the simulation time.
func (R *RawDataSet) TimeUnits() (string, error) { return R.r.TimeUnits() }

//ParticleSpecies is a particle species with raw data in a folder, and the datasets available for it.
type ParticleSpecies struct {
	name  string
	order []string
	sets  map[string]*RawDataSet
}

//NewParticleSpecies returns a species with the given datasets, kept in the order given.
//Datasets with a repeated name are ignored.
func NewParticleSpecies(name string, sets ...*RawDataSet) *ParticleSpecies {
	P := &ParticleSpecies{name: name, sets: make(map[string]*RawDataSet, len(sets))}
	for _, v := range sets {
		if _, ok := P.sets[v.Name()]; ok {
			continue
		}
		P.order = append(P.order, v.Name())
		P.sets[v.Name()] = v
	}
	return P
}

//Name returns the name of the species.
func (P *ParticleSpecies) Name() string { return P.name }

//RawDataSetNames returns the names of the available datasets.
func (P *ParticleSpecies) RawDataSetNames() []string {
	return append([]string(nil), P.order...)
}

//HasRawDataSet returns true if the species has a dataset with the given name.
func (P *ParticleSpecies) HasRawDataSet(name string) bool {
	_, ok := P.sets[name]
	return ok
}

//RawDataSet returns the dataset with the given name.
func (P *ParticleSpecies) RawDataSet(name string) (*RawDataSet, error) {
	if r, ok := P.sets[name]; ok {
		return r, nil
	}
	return nil, Errorf(ErrNotFound, "", "ParticleSpecies.RawDataSet", "dataset '%s' not found for species '%s'. Available datasets are %v", name, P.name, P.order)
}

//Timesteps returns the timesteps at which any dataset of the species is available.
func (P *ParticleSpecies) Timesteps() []int {
	set := make(map[int]bool)
	for _, v := range P.sets {
		for _, s := range v.Timesteps() {
			set[s] = true
		}
	}
	return SortedSteps(set)
}
