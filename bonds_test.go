/*
 * bonds_test.go, part of gozmat
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

func TestAssignBonds(Te *testing.T) {
	syms := []string{"O", "H", "H", "X"}
	geo := v3.FromVecs([]r3.Vec{{}, {X: 1.43, Y: 1.11}, {X: -1.43, Y: 1.11}, {Z: 1.0}})
	bonds, err := AssignBonds(syms, geo)
	require.NoError(Te, err)
	require.Len(Te, bonds, 2)
	for _, b := range bonds {
		assert.Equal(Te, 0, b.At1)
		assert.Equal(Te, b.At1, b.Cross(b.At2))
		assert.InDelta(Te, 0.958, b.Dist, 1e-3)
	}
	assert.Panics(Te, func() { bonds[0].Cross(3) })

	//the hydrogen can only keep its shortest bond.
	syms = []string{"F", "H", "F"}
	geo = v3.FromVecs([]r3.Vec{{}, {X: 1.8}, {X: 3.9}})
	bonds, err = AssignBonds(syms, geo)
	require.NoError(Te, err)
	require.Len(Te, bonds, 1)
	assert.Equal(Te, [2]int{0, 1}, [2]int{bonds[0].At1, bonds[0].At2})

	_, err = AssignBonds([]string{"Xe", "H"}, v3.FromVecs([]r3.Vec{{}, {X: 2}}))
	assert.Error(Te, err)
	_, err = AssignBonds([]string{"H"}, geo)
	assert.Error(Te, err)
}
