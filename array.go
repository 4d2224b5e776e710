/*
 * array.go, part of VisualPIC.
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

	"gonum.org/v1/gonum/floats"
)

//Array is an n-dimensional array of float64, stored row-major (the last index
//varies fastest), as HDF5 stores it.
type Array struct {
	Data  []float64
	Shape []int
}

//NewArray wraps data in an Array with the given shape. If no shape is given
//the array is 1-dimensional. It panics if the shape doesn't match len(data).
func NewArray(data []float64, shape ...int) *Array {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	if size(shape) != len(data) {
		panic(fmt.Sprintf("vpic.NewArray: shape %v does not hold %d elements", shape, len(data)))
	}
	return &Array{Data: data, Shape: append([]int(nil), shape...)}
}

//Zeros returns a zero-filled array with the given shape.
func Zeros(shape ...int) *Array {
	return NewArray(make([]float64, size(shape)), shape...)
}

//Full returns an array with the given shape and every element set to v.
func Full(v float64, shape ...int) *Array {
	A := Zeros(shape...)
	for i := range A.Data {
		A.Data[i] = v
	}
	return A
}

func size(shape []int) int {
	n := 1
	for _, v := range shape {
		n *= v
	}
	return n
}

//Len returns the total number of elements.
func (A *Array) Len() int {
	return len(A.Data)
}

//Dims returns the number of dimensions.
func (A *Array) Dims() int {
	return len(A.Shape)
}

//Copy returns a deep copy of the array.
func (A *Array) Copy() *Array {
	d := make([]float64, len(A.Data))
	copy(d, A.Data)
	return NewArray(d, A.Shape...)
}

//SameShape returns true if A and B have identical shapes.
func (A *Array) SameShape(B *Array) bool {
	if len(A.Shape) != len(B.Shape) {
		return false
	}
	for i, v := range A.Shape {
		if B.Shape[i] != v {
			return false
		}
	}
	return true
}

//At returns the element at the given indexes. It panics if the number of indexes doesn't match
//the number of dimensions.
func (A *Array) At(idx ...int) float64 {
	if len(idx) != len(A.Shape) {
		panic(fmt.Sprintf("vpic.Array.At: %d indexes for a %d-dimensional array", len(idx), len(A.Shape)))
	}
	flat := 0
	for i, v := range idx {
		if v < 0 || v >= A.Shape[i] {
			panic(fmt.Sprintf("vpic.Array.At: index %d out of range in dimension %d", v, i))
		}
		flat = flat*A.Shape[i] + v
	}
	return A.Data[flat]
}

//Min returns the smallest element. It panics for an empty array.
func (A *Array) Min() float64 {
	return floats.Min(A.Data)
}

//Max returns the largest element. It panics for an empty array.
func (A *Array) Max() float64 {
	return floats.Max(A.Data)
}

func (A *Array) String() string {
	return fmt.Sprintf("Array%v", A.Shape)
}
