/*
 * doc.go, part of VisualPIC.
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

/*Package vpic is the data layer of VisualPIC. It gives uniform, lazy access to the output
of particle-in-cell (PIC) plasma simulations written by different codes, and computes
derived fields from the stored ones.



	**Layout**


    vpic (this package) has the types shared by every simulation code: the
	Array type, the field and particle species handles, the cached Reader and
	the error kinds.

    codes/osiris, codes/hipace, codes/openpmd and codes/picongpu implement the
	folder scanning and file reading for each code.

    derived has the catalogue of derived fields and the engine that decides which of
	them can be computed from the fields in a folder.

    container has the Container type, the entry point for programs using the library.

    beamstat computes beam parameters (mean, rms size, emittance) from the raw
	particle data, timestep by timestep.

    h5 wraps the HDF5 reading library, and decompresses zstd or gzip'ed files on the fly.

    units converts plasma-normalized quantities to SI.

    histo has weighted histograms, used for beam spectra.

    config reads run files and the user's defaults. cmd/picinfo is a small
	command-line tool built on all of the above.



Data is read one timestep at a time, and only when asked for. Each dataset keeps
the last timestep read, so asking twice for the same step does not touch the disk.
No file is kept open between calls.

*/
package vpic
