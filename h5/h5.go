/*
 * h5.go, part of VisualPIC.
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

//Package h5 is the thin layer between the simulation code readers and the HDF5 files.
//It hides the HDF5 library behind the File and Opener interfaces, so the readers can
//be tested without real files, and it takes care of compressed files.
package h5

import (
	"errors"
	"path"
	"strings"
)

//ErrNotExist is returned when a group, dataset or attribute is not in the file.
var ErrNotExist = errors.New("h5: object does not exist")

//File is an open HDF5 file. Object paths are slash-separated and relative to the
//root group. "" and "/" both name the root group.
type File interface {

	//Groups returns the names of the subgroups of group.
	Groups(group string) ([]string, error)

	//Datasets returns the names of the datasets in group.
	Datasets(group string) ([]string, error)

	//GroupAttr returns the attribute name of group.
	GroupAttr(group, name string) (interface{}, bool)

	//Dataset reads the dataset at path, values included.
	Dataset(path string) (*Dataset, error)

	//DatasetInfo returns the dataset at path, with its attributes and rank but
	//without reading its values.
	DatasetInfo(path string) (*Dataset, error)

	Close() error
}

//Opener opens HDF5 files.
type Opener interface {
	Open(path string) (File, error)
}

//Dataset is an HDF5 dataset. Values is nil if the values were not read.
type Dataset struct {
	Name   string
	Rank   int
	Values interface{}
	Attrs  map[string]interface{}
}

//Attr returns the attribute name of the dataset.
func (D *Dataset) Attr(name string) (interface{}, bool) {
	v, ok := D.Attrs[name]
	return v, ok
}

//Float64s returns the values of the dataset flattened, and their shape.
func (D *Dataset) Float64s() ([]float64, []int, error) {
	if D.Values == nil {
		return nil, nil, errors.New("h5: dataset " + D.Name + " has no values loaded")
	}
	return Flatten(D.Values)
}

//Clean turns an object path into the form used by this package: no leading or trailing slashes.
func Clean(p string) string {
	p = path.Clean("/" + p)
	return strings.Trim(p, "/")
}

//Split splits an object path into its group and its last element.
func Split(p string) (string, string) {
	p = Clean(p)
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return "", p
	}
	return p[:i], p[i+1:]
}

var containerExt = []string{".h5", ".hdf5", ".h5.zst", ".hdf5.zst", ".h5.gz", ".hdf5.gz"}

//Container checks whether name is the name of an HDF5 file, compressed or not. If so, it returns
//the name without the extension, and the extension, and true.
func Container(name string) (string, string, bool) {
	//compressed extensions are checked first.
	for i := len(containerExt) - 1; i >= 0; i-- {
		ext := containerExt[i]
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return name[:len(name)-len(ext)], ext, true
		}
	}
	return "", "", false
}
