/*
 * values.go, part of VisualPIC.
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
	"reflect"
	"strings"
)

//Flatten turns the values of a dataset or attribute (a number, or a possibly nested slice of numbers, as
//returned by the HDF5 library) into a flat []float64 in row-major order, plus its shape.
//Nested slices must be rectangular.
func Flatten(v interface{}) ([]float64, []int, error) {
	switch t := v.(type) {
	case []float64:
		return append([]float64(nil), t...), []int{len(t)}, nil
	case []float32:
		r := make([]float64, len(t))
		for i, w := range t {
			r[i] = float64(w)
		}
		return r, []int{len(t)}, nil
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, nil, fmt.Errorf("h5: no values")
	}
	var shape []int
	for s := rv; s.Kind() == reflect.Slice || s.Kind() == reflect.Array; {
		shape = append(shape, s.Len())
		if s.Len() == 0 {
			break
		}
		s = s.Index(0)
	}
	n := 1
	for _, d := range shape {
		n *= d
	}
	out := make([]float64, 0, n)
	var walk func(reflect.Value, int) error
	walk = func(s reflect.Value, depth int) error {
		if depth == len(shape) {
			f, ok := number(s)
			if !ok {
				return fmt.Errorf("h5: non-numeric value of type %s", s.Type())
			}
			out = append(out, f)
			return nil
		}
		if s.Kind() != reflect.Slice && s.Kind() != reflect.Array || s.Len() != shape[depth] {
			return fmt.Errorf("h5: ragged values at depth %d", depth)
		}
		for i := 0; i < s.Len(); i++ {
			if err := walk(s.Index(i), depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(rv, 0); err != nil {
		return nil, nil, err
	}
	if len(shape) == 0 {
		shape = []int{1}
	}
	return out, shape, nil
}

func number(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Interface:
		return number(v.Elem())
	}
	return 0, false
}

//Float returns the first element of a numeric attribute.
func Float(v interface{}) (float64, bool) {
	d, _, err := Flatten(v)
	if err != nil || len(d) == 0 {
		return 0, false
	}
	return d[0], true
}

//Floats returns a numeric attribute as a flat slice.
func Floats(v interface{}) ([]float64, bool) {
	d, _, err := Flatten(v)
	return d, err == nil
}

//String returns a string attribute. For arrays of strings, the first element is returned.
//Fixed-length strings come padded with NULs, which are removed, and some writers
//store backslashes escaped, so those are unescaped too.
func String(v interface{}) (string, bool) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case []string:
		if len(t) == 0 {
			return "", false
		}
		s = t[0]
	case []byte:
		s = string(t)
	case [][]byte:
		if len(t) == 0 {
			return "", false
		}
		s = string(t[0])
	default:
		return "", false
	}
	s = strings.TrimRight(s, "\x00")
	return strings.ReplaceAll(s, `\\`, `\`), true
}
