/*
 * reader.go, part of VisualPIC.
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

import "math"

//StepCache holds the data and time of the last timestep read. It holds one step only:
//asking for any other step is a miss.
type StepCache struct {
	step  int
	data  *Array
	time  float64
	valid bool
}

//Get returns the cached data and time if step is the cached timestep.
func (S *StepCache) Get(step int) (*Array, float64, bool) {
	if !S.valid || S.step != step {
		return nil, 0, false
	}
	return S.data, S.time, true
}

//Set replaces the contents of the cache.
func (S *StepCache) Set(step int, data *Array, time float64) {
	S.step = step
	S.data = data
	S.time = time
	S.valid = true
}

//Reset empties the cache.
func (S *StepCache) Reset() {
	*S = StepCache{}
}

//Reader implements DataReader and FieldReader on top of a code-specific Loader, adding the
//single-timestep cache and the lazily read units. A Reader is not safe for concurrent use.
type Reader struct {
	l         Loader
	cache     StepCache
	dataUnits string
	timeUnits string
	hasUnits  bool
}

//NewReader returns a Reader that gets its data from l.
func NewReader(l Loader) *Reader {
	return &Reader{l: l}
}

//Path returns the file that holds the given timestep.
func (R *Reader) Path(step int) string {
	return R.l.Path(step)
}

func (R *Reader) load(step int) error {
	if _, _, ok := R.cache.Get(step); ok {
		return nil
	}
	if step < 0 {
		return Errorf(ErrNotFound, "", "Reader.load", "negative timestep %d", step)
	}
	data, time, err := R.l.ReadData(step)
	if err != nil {
		//The cache keeps whatever it had, so a failed read doesn't spoil it.
		return Decorate(err, "Reader.load")
	}
	R.cache.Set(step, data, time)
	return nil
}

//Data returns the data at the given timestep. Asking twice in a row for the same
//step returns the same array without touching the file.
func (R *Reader) Data(step int) (*Array, error) {
	if err := R.load(step); err != nil {
		return nil, Decorate(err, "Reader.Data")
	}
	d, _, _ := R.cache.Get(step)
	return d, nil
}

//Time returns the simulation time at the given timestep. It shares the cache with Data.
//It fails if the file doesn't say the time.
func (R *Reader) Time(step int) (float64, error) {
	if err := R.load(step); err != nil {
		return 0, Decorate(err, "Reader.Time")
	}
	_, t, _ := R.cache.Get(step)
	if math.IsNaN(t) {
		return 0, NewError(ErrMalformedSource, "the simulation time is not stored", R.l.Path(step), "Reader.Time")
	}
	return t, nil
}

func (R *Reader) units() error {
	if R.hasUnits {
		return nil
	}
	d, t, err := R.l.ReadUnits()
	if err != nil {
		return Decorate(err, "Reader.units")
	}
	R.dataUnits, R.timeUnits, R.hasUnits = d, t, true
	return nil
}

//DataUnits returns the units of the data. They are read once and kept.
func (R *Reader) DataUnits() (string, error) {
	if err := R.units(); err != nil {
		return "", err
	}
	return R.dataUnits, nil
}

//TimeUnits returns the units of the simulation time. They are read once and kept.
func (R *Reader) TimeUnits() (string, error) {
	if err := R.units(); err != nil {
		return "", err
	}
	return R.timeUnits, nil
}

//Geometry returns the geometry of the data at the given step. It requires the
//Loader to implement GeometryLoader.
func (R *Reader) Geometry(step int) (Geometry, error) {
	gl, ok := R.l.(GeometryLoader)
	if !ok {
		return UnknownGeometry, NewError(ErrUnsupportedCode, "no geometry information for this dataset", R.l.Path(step), "Reader.Geometry")
	}
	g, err := gl.ReadGeometry(step)
	if err != nil {
		return UnknownGeometry, Decorate(err, "Reader.Geometry")
	}
	return g, nil
}
