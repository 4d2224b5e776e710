/*
 * interfaces.go, part of VisualPIC.
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

//DataReader reads one named dataset (a gridded field, or a particle attribute) of a simulation,
//one timestep at a time.
type DataReader interface {

	//Data returns the dataset at the given timestep. The returned array may be kept by
	//the reader, so it should not be modified.
	Data(step int) (*Array, error)

	//Time returns the simulation time at the given timestep.
	Time(step int) (float64, error)

	//DataUnits returns the units of the dataset.
	DataUnits() (string, error)

	//TimeUnits returns the units of the simulation time.
	TimeUnits() (string, error)
}

//FieldReader is a DataReader for gridded fields, which can also tell the geometry of the grid.
type FieldReader interface {
	DataReader
	Geometry(step int) (Geometry, error)
}

//Loader does the actual file access for one dataset of one simulation code. Each call opens
//the file for the step, reads what it needs and closes it before returning.
//Caching is not the loader's business, see Reader.
type Loader interface {

	//Path returns the file that holds the given timestep.
	Path(step int) string

	//ReadData reads the data and the simulation time at the given timestep.
	//If the file doesn't say the time, the time is NaN.
	ReadData(step int) (*Array, float64, error)

	//ReadUnits reads the units of the data and of the time.
	ReadUnits() (data string, time string, err error)
}

//GeometryLoader is implemented by the Loaders of gridded fields.
type GeometryLoader interface {
	ReadGeometry(step int) (Geometry, error)
}

//Field is anything that can be handled as a gridded field, whether read from
//a folder or derived from other fields.
type Field interface {

	//Name returns the name of the field, in VisualPIC convention (i.e. Ez, rho).
	Name() string

	//Species returns the name of the particle species the field belongs to, or
	//an empty string for domain fields.
	Species() string

	//Timesteps returns the ordered timesteps at which the field is available.
	Timesteps() []int

	Data(step int) (*Array, error)
	Time(step int) (float64, error)
	Units() (string, error)
	TimeUnits() (string, error)
}

//Scanner discovers the fields and particle species in a data folder written by a given
//simulation code. It returns handles, no data is loaded.
type Scanner interface {

	//Fields returns the gridded fields in the folder, or an empty slice if there are none.
	Fields(folder string) ([]*FolderField, error)

	//Species returns the particle species with raw data in the folder, or an empty slice if there are none.
	Species(folder string) ([]*ParticleSpecies, error)
}
