/*
 * code.go, part of VisualPIC.
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
	"strings"
)

//Code identifies the simulation code that produced a data folder.
type Code int

const (
	Osiris Code = iota
	HiPACE
	OpenPMD
	PIConGPU
)

var codeNames = map[Code]string{
	Osiris:   "Osiris",
	HiPACE:   "HiPACE",
	OpenPMD:  "openPMD",
	PIConGPU: "PIConGPU",
}

func (C Code) String() string {
	if s, ok := codeNames[C]; ok {
		return s
	}
	return "Unknown"
}

//Normalized returns true if the code writes its data in plasma-normalized units
//rather than in SI.
func (C Code) Normalized() bool {
	return C == Osiris || C == HiPACE
}

//ParseCode returns the Code with the given name. The comparison is case-insensitive.
func ParseCode(name string) (Code, error) {
	for c, s := range codeNames {
		if strings.EqualFold(s, name) {
			return c, nil
		}
	}
	return -1, Errorf(ErrUnsupportedCode, "", "ParseCode", "unknown code '%s'. Possible values are 'Osiris', 'HiPACE', 'openPMD' or 'PIConGPU'", name)
}
