/*
 * fromgeom_test.go, part of gozmat
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package zmat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	v3 "github.com/rmera/gozmat/v3"
)

func TestFromGeometryRoundTrip(Te *testing.T) {
	Z := hoohZMatrix(Te)
	geo, err := Z.Geometry()
	require.NoError(Te, err)
	Z2, rowOf, err := FromGeometryKeys(Z.Symbols(), geo)
	require.NoError(Te, err)
	assert.Equal(Te, []int{0, 1, 2, 3}, rowOf)
	assert.True(Te, Z2.IsStandardForm())
	assert.True(Te, Z2.Equal(Z, 1e-8), "got\n%s\nexpected\n%s", Z2, Z)
}

func TestFromGeometryOrder(Te *testing.T) {
	//water, with the oxygen last
	syms := []string{"H", "H", "O"}
	geo := v3.FromVecs([]r3.Vec{{X: 1.43, Y: 1.11}, {X: -1.43, Y: 1.11}, {}})
	Z, err := FromGeometry(syms, geo)
	require.NoError(Te, err)
	assert.Equal(Te, syms, Z.Symbols())
	assert.Equal(Te, [3]int{0, 1, N}, Z.Row(2).Keys)
	geo2, err := Z.Geometry()
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, pairDistances(geo), pairDistances(geo2), 1e-9)
}

func TestFromGeometryLinear(Te *testing.T) {
	syms := []string{"O", "C", "O"}
	geo := v3.FromVecs([]r3.Vec{{Z: -2.2}, {}, {Z: 2.2}})
	Z, rowOf, err := FromGeometryKeys(syms, geo)
	require.NoError(Te, err)
	assert.Equal(Te, []string{"O", "C", "X", "O"}, Z.Symbols())
	assert.Equal(Te, []int{0, 1, 3}, rowOf)
	assert.Equal(Te, []int{2}, Z.DummyKeys())
	assert.Equal(Te, [3]int{1, 0, N}, Z.Row(2).Keys)
	assert.Equal(Te, [3]int{1, 2, 0}, Z.Row(3).Keys)
	assert.True(Te, Z.IsStandardForm())
	v, _ := Z.Value("R2")
	assert.InDelta(Te, A2Bohr, v, 1e-10)
	v, _ = Z.Value("A2")
	assert.InDelta(Te, 90*Deg2Rad, v, 1e-10)

	geo2, err := Z.Geometry()
	require.NoError(Te, err)
	assert.InDelta(Te, 4.4, Distance(geo2.Vec(0), geo2.Vec(3)), 1e-9)
	assert.InDelta(Te, 2.2, Distance(geo2.Vec(1), geo2.Vec(3)), 1e-9)
}

func TestFromGeometryLinearTail(Te *testing.T) {
	//HCCH-like chain after a bent start: the last H is collinear with its references,
	//so a dummy atom has to be placed before it.
	syms := []string{"H", "C", "C", "H"}
	geo := v3.FromVecs([]r3.Vec{{X: -2.0, Y: 1.0}, {}, {X: 2.28}, {X: 4.28}})
	Z, rowOf, err := FromGeometryKeys(syms, geo)
	require.NoError(Te, err)
	assert.Equal(Te, []string{"H", "C", "C", "X", "H"}, Z.Symbols())
	assert.Equal(Te, 4, rowOf[3])
	assert.Equal(Te, [3]int{2, 1, 0}, Z.Row(3).Keys)
	assert.Equal(Te, [3]int{2, 3, 1}, Z.Row(4).Keys)
	geo2, err := Z.Geometry()
	require.NoError(Te, err)
	atoms := v3.Zeros(4)
	atoms.SomeVecs(geo2, rowOf)
	assert.InDeltaSlice(Te, pairDistances(geo), pairDistances(atoms), 1e-8)
}

func TestFromGeometryErrors(Te *testing.T) {
	_, err := FromGeometry(nil, nil)
	assert.Error(Te, err)
	_, err = FromGeometry([]string{"O", "H"}, v3.FromVecs([]r3.Vec{{}}))
	assert.Error(Te, err)
}
