/*
 * hdf5.go, part of VisualPIC.
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

package h5

import (
	"fmt"

	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/hdf5"
)

//HDF5 is the Opener for files on disk. It reads HDF5 natively (no cgo), and
//decompresses .zst and .gz files first.
type HDF5 struct{}

//Open opens the file at path for reading.
func (HDF5) Open(path string) (File, error) {
	src, cleanup, err := prepSource(path)
	if err != nil {
		return nil, err
	}
	root, err := hdf5.Open(src)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("h5: can't open %s: %w", path, err)
	}
	return &file{name: path, root: root, cleanup: cleanup}, nil
}

type file struct {
	name    string
	root    api.Group
	cleanup func()
}

//group returns the group at p and the function that releases it. Each subgroup
//holds its own reference to the file, which stays open until all are released.
func (f *file) group(p string) (api.Group, func(), error) {
	p = Clean(p)
	if p == "" {
		return f.root, func() {}, nil
	}
	g, err := f.root.GetGroup(p)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: group %s in %s", ErrNotExist, p, f.name)
	}
	return g, g.Close, nil
}

func attrMap(a api.AttributeMap) map[string]interface{} {
	m := make(map[string]interface{})
	if a == nil {
		return m
	}
	for _, k := range a.Keys() {
		if v, ok := a.Get(k); ok {
			m[k] = v
		}
	}
	return m
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (f *file) Groups(group string) ([]string, error) {
	g, release, err := f.group(group)
	if err != nil {
		return nil, err
	}
	defer release()
	return g.ListSubgroups(), nil
}

func (f *file) Datasets(group string) ([]string, error) {
	g, release, err := f.group(group)
	if err != nil {
		return nil, err
	}
	defer release()
	return g.ListVariables(), nil
}

func (f *file) GroupAttr(group, name string) (interface{}, bool) {
	g, release, err := f.group(group)
	if err != nil {
		return nil, false
	}
	defer release()
	a := g.Attributes()
	if a == nil {
		return nil, false
	}
	return a.Get(name)
}

func (f *file) Dataset(path string) (*Dataset, error) {
	dir, name := Split(path)
	g, release, err := f.group(dir)
	if err != nil {
		return nil, err
	}
	defer release()
	if !contains(g.ListVariables(), name) {
		return nil, fmt.Errorf("%w: dataset %s in %s", ErrNotExist, path, f.name)
	}
	v, err := g.GetVariable(name)
	if err != nil {
		return nil, fmt.Errorf("h5: reading %s in %s: %w", path, f.name, err)
	}
	_, shape, err := Flatten(v.Values)
	rank := len(v.Dimensions)
	if err == nil {
		rank = len(shape)
	}
	return &Dataset{Name: name, Rank: rank, Values: v.Values, Attrs: attrMap(v.Attributes)}, nil
}

func (f *file) DatasetInfo(path string) (*Dataset, error) {
	dir, name := Split(path)
	g, release, err := f.group(dir)
	if err != nil {
		return nil, err
	}
	defer release()
	if !contains(g.ListVariables(), name) {
		return nil, fmt.Errorf("%w: dataset %s in %s", ErrNotExist, path, f.name)
	}
	vg, err := g.GetVarGetter(name)
	if err != nil {
		return nil, fmt.Errorf("h5: reading %s in %s: %w", path, f.name, err)
	}
	return &Dataset{Name: name, Rank: len(vg.Shape()), Attrs: attrMap(vg.Attributes())}, nil
}

func (f *file) Close() error {
	f.root.Close()
	f.cleanup()
	return nil
}
