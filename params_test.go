/*
 * params_test.go, part of VisualPIC.
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
	"testing"

	"github.com/delaossa/VisualPIC/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams(Te *testing.T) {
	P := DefaultParams()
	_, err := P.PlasmaDensity()
	assert.True(Te, errors.Is(err, ErrMissingParameter))
	l, err := P.LaserWavelength()
	require.NoError(Te, err)
	assert.Equal(Te, 0.8e-6, l)
	assert.Nil(Te, P.Normalizer())

	osiris := P.ForCode(Osiris)
	assert.True(Te, osiris.Normalized())
	assert.Equal(Te, 1.0, osiris.LightSpeed())
	assert.False(Te, P.Normalized(), "ForCode must not modify the receiver")

	P.SetPlasmaDensity(1e24)
	osiris = P.ForCode(Osiris)
	assert.False(Te, osiris.Normalized())
	assert.Equal(Te, units.C, osiris.LightSpeed())
	assert.NotNil(Te, P.Normalizer())

	P.UnsetLaserWavelength()
	_, err = P.LaserWavelength()
	assert.True(Te, errors.Is(err, ErrMissingParameter))
}

func TestParseCode(Te *testing.T) {
	c, err := ParseCode("osiris")
	require.NoError(Te, err)
	assert.Equal(Te, Osiris, c)
	c, err = ParseCode("openPMD")
	require.NoError(Te, err)
	assert.Equal(Te, "openPMD", c.String())
	_, err = ParseCode("Smilei")
	assert.True(Te, errors.Is(err, ErrUnsupportedCode))
	assert.True(Te, HiPACE.Normalized())
	assert.False(Te, OpenPMD.Normalized())
}

func TestArray(Te *testing.T) {
	A := NewArray([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	assert.Equal(Te, 2, A.Dims())
	assert.Equal(Te, 6.0, A.At(1, 2))
	assert.Equal(Te, 2.0, A.At(0, 1))
	B := A.Copy()
	B.Data[0] = 100
	assert.Equal(Te, 1.0, A.Data[0])
	assert.True(Te, A.SameShape(B))
	assert.False(Te, A.SameShape(Zeros(3, 2)))
	assert.Equal(Te, 1.0, A.Min())
	assert.Equal(Te, 100.0, B.Max())
	assert.Equal(Te, []float64{7, 7}, Full(7, 2).Data)
	assert.Panics(Te, func() { NewArray([]float64{1, 2}, 3) })
}

func TestErrorKinds(Te *testing.T) {
	e := NewError(ErrNotFound, "field 'a'", "", "Container.Field")
	assert.False(Te, e.Critical())
	assert.Equal(Te, "not found: field 'a'", e.Error())
	e.Decorate("main")
	assert.Equal(Te, []string{"Container.Field", "main"}, e.Decorate(""))
	m := NewError(ErrMalformedSource, "no TIME attribute", "a.h5", "")
	assert.True(Te, m.Critical())
	assert.Equal(Te, "malformed source (file a.h5): no TIME attribute", m.Error())
}
