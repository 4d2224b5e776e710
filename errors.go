/*
 * errors.go, part of VisualPIC.
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
	"errors"
	"fmt"
	"strings"
)

//Error kinds. Every error returned by this library wraps exactly one of them,
//so callers can tell them apart with errors.Is.
var (
	//ErrNotFound means that a requested field, species or dataset does not exist.
	ErrNotFound = errors.New("not found")
	//ErrUnsupportedCode means that the simulation code is unknown, or that the requested
	//operation is not implemented for it.
	ErrUnsupportedCode = errors.New("unsupported simulation code")
	//ErrMissingParameter means that a computation needs a simulation parameter that was never given.
	ErrMissingParameter = errors.New("missing simulation parameter")
	//ErrMalformedSource means that a file exists but lacks the expected dataset or attribute.
	ErrMalformedSource = errors.New("malformed source")
	//ErrMixedGeometry means that the fields in one folder do not share a geometry.
	ErrMixedGeometry = errors.New("mixed simulation geometries")
)

//Error is the general structure for errors in this library. It keeps the name of the
//file involved (if any) and a list of "decorations", the names of the functions the error
//went through.
type Error struct {
	kind     error
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

//NewError returns an error of the given kind. kind should be one of the Err* values of this package.
func NewError(kind error, message, filename string, caller string) *Error {
	e := &Error{kind: kind, message: message, filename: filename, critical: true}
	if caller != "" {
		e.deco = []string{caller}
	}
	//Not finding something is something the caller can always recover from.
	if kind == ErrNotFound {
		e.critical = false
	}
	return e
}

//Errorf is like NewError, but formats the message.
func Errorf(kind error, filename, caller, format string, a ...interface{}) *Error {
	return NewError(kind, fmt.Sprintf(format, a...), filename, caller)
}

func (err *Error) Error() string {
	var b strings.Builder
	b.WriteString(err.kind.Error())
	if err.filename != "" {
		fmt.Fprintf(&b, " (file %s)", err.filename)
	}
	if err.message != "" {
		b.WriteString(": ")
		b.WriteString(err.message)
	}
	return b.String()
}

//Unwrap returns the kind of the error.
func (err *Error) Unwrap() error { return err.kind }

//Decorate adds the name of a caller to the error, and returns all the decorations so far.
//If passed an empty string, it just returns the current decorations.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file associated to the error, or an empty string.
func (err *Error) FileName() string { return err.filename }

//Critical returns true if the operation that produced the error can't be retried as is.
func (err *Error) Critical() bool { return err.critical }

//Decorate decorates err with caller if err is an *Error, and returns it.
//Other errors are returned untouched.
func Decorate(err error, caller string) error {
	var e *Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}
