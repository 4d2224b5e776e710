/*
 * h5test.go, part of VisualPIC.
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

//Package h5test provides an in-memory implementation of h5.Opener, for tests
//of the code that reads HDF5 files. It counts how many times each file is opened and closed.
package h5test

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/delaossa/VisualPIC/h5"
)

//FS is a set of in-memory HDF5 files, indexed by path.
type FS struct {
	files  map[string]*File
	opens  map[string]int
	closes int
}

//New returns an empty FS.
func New() *FS {
	return &FS{files: make(map[string]*File), opens: make(map[string]int)}
}

//Add creates an empty file at path, replacing any file there, and returns it.
func (F *FS) Add(path string) *File {
	f := &File{
		attrs:    make(map[string]map[string]interface{}),
		datasets: make(map[string]*h5.Dataset),
		groups:   map[string]bool{"": true},
	}
	F.files[filepath.Clean(path)] = f
	return f
}

//Touch creates, on the real file system, empty files with the paths of all the files in F, so
//folder scanners can find them.
func (F *FS) Touch() error {
	for p := range F.files {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			return err
		}
	}
	return nil
}

//Open implements h5.Opener.
func (F *FS) Open(path string) (h5.File, error) {
	path = filepath.Clean(path)
	f, ok := F.files[path]
	if !ok {
		return nil, fmt.Errorf("h5test: open %s: %w", path, os.ErrNotExist)
	}
	F.opens[path]++
	return &handle{File: f, fs: F}, nil
}

//Opens returns the number of times the file at path has been opened.
func (F *FS) Opens(path string) int {
	return F.opens[filepath.Clean(path)]
}

//TotalOpens returns the number of times any file has been opened.
func (F *FS) TotalOpens() int {
	n := 0
	for _, v := range F.opens {
		n += v
	}
	return n
}

//OpenFiles returns the number of files currently open.
func (F *FS) OpenFiles() int {
	return F.TotalOpens() - F.closes
}

//File is an in-memory HDF5 file.
type File struct {
	attrs    map[string]map[string]interface{}
	datasets map[string]*h5.Dataset
	groups   map[string]bool
}

func (f *File) addGroup(p string) {
	for p != "" {
		f.groups[p] = true
		p, _ = h5.Split(p)
	}
}

//AddGroup adds an (empty) group, and its parents.
func (f *File) AddGroup(path string) *File {
	f.addGroup(h5.Clean(path))
	return f
}

//SetAttr sets the attribute name of group to v. The group is created if needed.
func (f *File) SetAttr(group, name string, v interface{}) *File {
	group = h5.Clean(group)
	f.addGroup(group)
	if f.attrs[group] == nil {
		f.attrs[group] = make(map[string]interface{})
	}
	f.attrs[group][name] = v
	return f
}

//AddDataset adds a dataset with the given values and attributes. attrs may be nil.
func (f *File) AddDataset(path string, values interface{}, attrs map[string]interface{}) *File {
	path = h5.Clean(path)
	dir, name := h5.Split(path)
	f.addGroup(dir)
	if attrs == nil {
		attrs = make(map[string]interface{})
	}
	f.datasets[path] = &h5.Dataset{Name: name, Values: values, Attrs: attrs}
	return f
}

type handle struct {
	*File
	fs     *FS
	closed bool
}

func (h *handle) Groups(group string) ([]string, error) {
	group = h5.Clean(group)
	if !h.groups[group] {
		return nil, fmt.Errorf("%w: group %s", h5.ErrNotExist, group)
	}
	var ret []string
	for g := range h.groups {
		if g == "" {
			continue
		}
		if dir, name := h5.Split(g); dir == group {
			ret = append(ret, name)
		}
	}
	sort.Strings(ret)
	return ret, nil
}

func (h *handle) Datasets(group string) ([]string, error) {
	group = h5.Clean(group)
	if !h.groups[group] {
		return nil, fmt.Errorf("%w: group %s", h5.ErrNotExist, group)
	}
	var ret []string
	for p, d := range h.datasets {
		if dir, _ := h5.Split(p); dir == group {
			ret = append(ret, d.Name)
		}
	}
	sort.Strings(ret)
	return ret, nil
}

func (h *handle) GroupAttr(group, name string) (interface{}, bool) {
	v, ok := h.attrs[h5.Clean(group)][name]
	return v, ok
}

func (h *handle) get(path string) (*h5.Dataset, error) {
	if h.closed {
		return nil, fmt.Errorf("h5test: file already closed")
	}
	d, ok := h.datasets[h5.Clean(path)]
	if !ok {
		return nil, fmt.Errorf("%w: dataset %s", h5.ErrNotExist, path)
	}
	r := *d
	r.Rank = 0
	if _, shape, err := h5.Flatten(d.Values); err == nil {
		r.Rank = len(shape)
	}
	return &r, nil
}

func (h *handle) Dataset(path string) (*h5.Dataset, error) {
	return h.get(path)
}

func (h *handle) DatasetInfo(path string) (*h5.Dataset, error) {
	d, err := h.get(path)
	if err != nil {
		return nil, err
	}
	d.Values = nil
	return d, nil
}

func (h *handle) Close() error {
	if !h.closed {
		h.closed = true
		h.fs.closes++
	}
	return nil
}

//Paths returns the paths of all the files, sorted.
func (F *FS) Paths() []string {
	ret := make([]string, 0, len(F.files))
	for p := range F.files {
		ret = append(ret, p)
	}
	sort.Strings(ret)
	return ret
}
