/*
 * picongpu.go, part of VisualPIC.
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

//Package picongpu handles PIConGPU output. PIConGPU writes openPMD, so folders are
//scanned and fields are read as in the openpmd package, but reading its particle data
//is not supported: the species and their datasets are listed, and any read fails
//with ErrUnsupportedCode.
package picongpu

import (
	vpic "github.com/delaossa/VisualPIC"
	"github.com/delaossa/VisualPIC/codes/openpmd"
	"github.com/delaossa/VisualPIC/h5"
)

//Scanner implements vpic.Scanner for PIConGPU folders.
type Scanner struct {
	pmd *openpmd.Scanner
}

//NewScanner returns a scanner that reads files with o.
func NewScanner(o h5.Opener) *Scanner {
	return &Scanner{pmd: openpmd.NewScanner(o)}
}

//Fields returns the meshes in the folder.
func (S *Scanner) Fields(folder string) ([]*vpic.FolderField, error) {
	f, err := S.pmd.Fields(folder)
	if err != nil {
		return nil, vpic.Decorate(err, "picongpu.Fields")
	}
	return f, nil
}

//Species returns the particle species in the folder, bound to readers that always fail.
func (S *Scanner) Species(folder string) ([]*vpic.ParticleSpecies, error) {
	list, err := S.pmd.Species(folder)
	if err != nil {
		return nil, vpic.Decorate(err, "picongpu.Species")
	}
	ret := make([]*vpic.ParticleSpecies, 0, len(list))
	for _, sp := range list {
		var sets []*vpic.RawDataSet
		for _, n := range sp.RawDataSetNames() {
			old, _ := sp.RawDataSet(n)
			sets = append(sets, vpic.NewRawDataSet(n, sp.Name(), old.Timesteps(), unsupported{}))
		}
		ret = append(ret, vpic.NewParticleSpecies(sp.Name(), sets...))
	}
	return ret, nil
}

//unsupported is a vpic.DataReader that fails on every read.
type unsupported struct{}

func (unsupported) err(caller string) error {
	return vpic.NewError(vpic.ErrUnsupportedCode, "reading PIConGPU particle data is not implemented", "", caller)
}

func (U unsupported) Data(step int) (*vpic.Array, error) {
	return nil, U.err("picongpu.Data")
}

func (U unsupported) Time(step int) (float64, error) {
	return 0, U.err("picongpu.Time")
}

func (U unsupported) DataUnits() (string, error) {
	return "", U.err("picongpu.DataUnits")
}

func (U unsupported) TimeUnits() (string, error) {
	return "", U.err("picongpu.TimeUnits")
}
