/*
 * scan.go, part of VisualPIC.
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

//Package scan has the directory walking helpers shared by the folder scanners of all codes.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/delaossa/VisualPIC/h5"
)

//Entry is an HDF5 file found in a folder.
type Entry struct {
	Name string //full file name
	Base string //file name without extension
	Ext  string //extension, including any compression suffix
}

//CheckFolder returns an error if folder does not exist or is not a directory.
func CheckFolder(folder string) error {
	st, err := os.Stat(folder)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return &fs.PathError{Op: "scan", Path: folder, Err: errors.New("not a directory")}
	}
	return nil
}

//Containers returns the HDF5 files in dir, sorted by name. A directory that does not
//exist has no files, which is not an error.
func Containers(dir string) ([]Entry, error) {
	list, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ret []Entry
	for _, v := range list {
		if v.IsDir() {
			continue
		}
		if base, ext, ok := h5.Container(v.Name()); ok {
			ret = append(ret, Entry{Name: v.Name(), Base: base, Ext: ext})
		}
	}
	return ret, nil
}

//Subdirs returns the names of the directories in dir, sorted. A directory that
//does not exist has no subdirectories.
func Subdirs(dir string) ([]string, error) {
	list, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ret []string
	for _, v := range list {
		if v.IsDir() {
			ret = append(ret, v.Name())
		}
	}
	sort.Strings(ret)
	return ret, nil
}

//IsDir returns true if path is an existing directory.
func IsDir(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.IsDir()
}

//Step parses names of the form prefix + digits, returning the number. The digits
//must be all that follows the prefix.
func Step(name, prefix string) (int, bool) {
	if !strings.HasPrefix(name, prefix) {
		return 0, false
	}
	digits := name[len(prefix):]
	if digits == "" {
		return 0, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

//SplitStep splits names of the form something + sep + digits into the something and the number.
func SplitStep(name, sep string) (string, int, bool) {
	i := strings.LastIndex(name, sep)
	if i <= 0 {
		return "", 0, false
	}
	n, ok := Step(name[i:], sep)
	if !ok {
		return "", 0, false
	}
	return name[:i], n, true
}

//Set accumulates the timesteps of named datasets, remembering the order in which the names
//first appeared and the file extension of each step. Steps of one series may be stored
//with different compressions.
type Set struct {
	order []string
	steps map[string]map[int]bool
	ext   map[string]map[int]string
}

//NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{steps: make(map[string]map[int]bool), ext: make(map[string]map[int]string)}
}

//Add records that key exists at step, in a file with extension ext. If a step is found
//twice, the first extension is kept.
func (S *Set) Add(key string, step int, ext string) {
	if _, ok := S.steps[key]; !ok {
		S.order = append(S.order, key)
		S.steps[key] = make(map[int]bool)
		S.ext[key] = make(map[int]string)
	}
	if S.steps[key][step] {
		return
	}
	S.steps[key][step] = true
	S.ext[key][step] = ext
}

//Keys returns the keys in the order they were first added.
func (S *Set) Keys() []string {
	return S.order
}

//Steps returns the set of steps for key.
func (S *Set) Steps(key string) map[int]bool {
	return S.steps[key]
}

//Exts returns the extension of the file of each step of key.
func (S *Set) Exts(key string) map[int]string {
	return S.ext[key]
}

//File returns the name of the file of a step, given the part of the name before the
//six-digit step and the extensions of the series. Unknown steps get a plain .h5 name.
func File(prefix string, step int, exts map[int]string) string {
	ext, ok := exts[step]
	if !ok {
		ext = ".h5"
	}
	return fmt.Sprintf("%s%06d%s", prefix, step, ext)
}
