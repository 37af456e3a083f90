/*
 * zmatrix_test.go, part of gozmat
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
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	v3 "github.com/rmera/gozmat/v3"
)

func hoohZMatrix(Te *testing.T) *ZMatrix {
	Te.Helper()
	vals := map[string]float64{
		"R1": 0.97 * A2Bohr,
		"R2": 1.45 * A2Bohr,
		"R3": 0.97 * A2Bohr,
		"A2": 100 * Deg2Rad,
		"A3": 100 * Deg2Rad,
		"D3": 115 * Deg2Rad,
	}
	Z, err := NewZMatrix(hoohVMatrix(Te), vals)
	require.NoError(Te, err)
	return Z
}

func waterZMatrix(Te *testing.T) *ZMatrix {
	Te.Helper()
	Z, err := ZMatrixFromData([]string{"O", "H", "H"},
		[][3]int{{N, N, N}, {0, N, N}, {0, 1, N}},
		[][3]string{{"", "", ""}, {"R1", "", ""}, {"R2", "A2", ""}},
		map[string]float64{"R1": 1.81, "R2": 1.81, "A2": 104.5 * Deg2Rad}, false)
	require.NoError(Te, err)
	return Z
}

func TestValues(Te *testing.T) {
	Z := hoohZMatrix(Te)
	v, ok := Z.Value("D3")
	assert.True(Te, ok)
	assert.InDelta(Te, 115*Deg2Rad, v, 1e-12)
	_, ok = Z.Value("D4")
	assert.False(Te, ok)
	assert.InDelta(Te, 100*Deg2Rad, Z.ValueMatrix()[3][1], 1e-12)

	W, err := Z.SetValues(map[string]float64{"D3": math.Pi})
	require.NoError(Te, err)
	v, _ = W.Value("D3")
	assert.Equal(Te, math.Pi, v)
	v, _ = Z.Value("D3")
	assert.InDelta(Te, 115*Deg2Rad, v, 1e-12)
	_, err = Z.SetValues(map[string]float64{"D9": 1})
	assert.True(Te, errors.Is(err, ErrUnknownName))

	vals := Z.Values()
	delete(vals, "A3")
	_, err = NewZMatrix(Z.Var(), vals)
	assert.True(Te, errors.Is(err, ErrMissingValue))

	//values follow their names
	S, err := Z.SetNames(map[string]string{"D3": "tors"})
	require.NoError(Te, err)
	v, ok = S.Value("tors")
	assert.True(Te, ok)
	assert.InDelta(Te, 115*Deg2Rad, v, 1e-12)
	assert.True(Te, S.StandardForm(0).Equal(Z, 1e-12))

	W, err = Z.SetValues(map[string]float64{"D3": 115*Deg2Rad + 1e-6})
	require.NoError(Te, err)
	assert.True(Te, W.Equal(Z, 1e-5))
	assert.False(Te, W.Equal(Z, 1e-8))
	assert.False(Te, S.Equal(Z, 1), "different names")
}

func TestGeometry(Te *testing.T) {
	Z := hoohZMatrix(Te)
	geo, err := Z.Geometry()
	require.NoError(Te, err)
	require.Equal(Te, 4, geo.NVecs())
	assert.Equal(Te, r3.Vec{}, geo.Vec(0))
	assertVec(Te, r3.Vec{Z: 0.97 * A2Bohr}, geo.Vec(1), 1e-10)
	assert.InDelta(Te, 1.45*A2Bohr, Distance(geo.Vec(1), geo.Vec(2)), 1e-10)
	assert.InDelta(Te, 0.97*A2Bohr, Distance(geo.Vec(2), geo.Vec(3)), 1e-10)
	ang, err := CentralAngle(geo.Vec(3), geo.Vec(2), geo.Vec(1))
	require.NoError(Te, err)
	assert.InDelta(Te, 100*Deg2Rad, ang, 1e-10)
	dih, err := DihedralAngle(geo.Vec(3), geo.Vec(2), geo.Vec(1), geo.Vec(0))
	require.NoError(Te, err)
	assert.InDelta(Te, 115*Deg2Rad, dih, 1e-10)

	//a linear reference triple can't define a dihedral
	L, err := Z.SetValues(map[string]float64{"A2": math.Pi})
	require.NoError(Te, err)
	_, err = L.Geometry()
	assert.True(Te, errors.Is(err, ErrDegenerate))
}

func TestJoin(Te *testing.T) {
	base := hoohZMatrix(Te)
	add, err := ZMatrixFromData([]string{"H", "H"}, [][3]int{{N, N, N}, {0, N, N}},
		[][3]string{{"", "", ""}, {"R1", "", ""}}, map[string]float64{"R1": 1.4}, false)
	require.NoError(Te, err)
	add = add.StandardForm(base.Count())
	joinKeys := [][3]int{{1, 0, 2}, {N, 1, 0}}
	joinNames := [][3]string{{"rts", "aabs1", "babs1"}, {"", "aabs2", "babs2"}}
	joinVals := map[string]float64{"rts": 3.0, "aabs1": 85 * Deg2Rad, "babs1": 170 * Deg2Rad,
		"aabs2": 85 * Deg2Rad, "babs2": 85 * Deg2Rad}
	J, err := Join(base, add, joinKeys, joinNames, joinVals)
	require.NoError(Te, err)
	assert.Equal(Te, 6, J.Count())
	assert.Equal(Te, [3]int{1, 0, 2}, J.Row(4).Keys)
	assert.Equal(Te, [3]int{4, 1, 0}, J.Row(5).Keys)
	assert.Equal(Te, [3]string{"R5", "aabs2", "babs2"}, J.Row(5).Names)
	v, _ := J.Value("R5")
	assert.Equal(Te, 1.4, v)
	geo, err := J.Geometry()
	require.NoError(Te, err)
	assert.InDelta(Te, 3.0, Distance(geo.Vec(4), geo.Vec(1)), 1e-10)
	assert.InDelta(Te, 1.4, Distance(geo.Vec(4), geo.Vec(5)), 1e-10)

	delete(joinVals, "babs2")
	_, err = Join(base, add, joinKeys, joinNames, joinVals)
	assert.True(Te, errors.Is(err, ErrMissingValue))
	_, err = Join(base, add, [][3]int{{1, 0, 2}, {3, 1, 0}},
		[][3]string{{"rts", "aabs1", "babs1"}, {"x", "aabs2", "babs2"}}, map[string]float64{})
	assert.True(Te, errors.Is(err, ErrMalformed))
}

func TestInsertDummyAtom(Te *testing.T) {
	W := waterZMatrix(Te)
	keyRows := [][3]int{{0, N, N}, {N, 1, N}, {N, N, 1}}
	nameRows := [][3]string{{"rx", "", ""}, {"", "ax", ""}, {"", "", "dx"}}
	vals := map[string]float64{"rx": A2Bohr, "ax": 90 * Deg2Rad, "dx": 180 * Deg2Rad}
	D, err := InsertDummyAtom(W, 1, keyRows, nameRows, vals)
	require.NoError(Te, err)
	assert.Equal(Te, []string{"O", "X", "H", "H"}, D.Symbols())
	assert.Equal(Te, []int{1}, D.DummyKeys())
	assert.Equal(Te, [3]int{0, 1, N}, D.Row(2).Keys)
	assert.Equal(Te, [3]int{0, 2, 1}, D.Row(3).Keys)
	geo, err := D.Geometry()
	require.NoError(Te, err)
	assert.InDelta(Te, 1.81, Distance(geo.Vec(0), geo.Vec(2)), 1e-10)
	assert.InDelta(Te, 1.81, Distance(geo.Vec(0), geo.Vec(3)), 1e-10)
	assert.InDelta(Te, A2Bohr, Distance(geo.Vec(0), geo.Vec(1)), 1e-10)
	ang, err := CentralAngle(geo.Vec(2), geo.Vec(0), geo.Vec(3))
	require.NoError(Te, err)
	assert.InDelta(Te, 104.5*Deg2Rad, ang, 1e-10)

	_, err = InsertDummyAtom(W, 5, keyRows, nameRows, vals)
	assert.True(Te, errors.Is(err, ErrMalformed))
	_, err = InsertDummyAtom(W, 1, keyRows[:1], nameRows[:1], vals)
	assert.Error(Te, err, "the rows after the dummy are left without enough references")
}

//pairDistances returns all the interatomic distances in coord, skipping the rows in skip.
func pairDistances(coord *v3.Matrix, skip ...int) []float64 {
	s := make(map[int]bool)
	for _, v := range skip {
		s[v] = true
	}
	ret := make([]float64, 0)
	for i := 0; i < coord.NVecs(); i++ {
		for j := i + 1; j < coord.NVecs(); j++ {
			if s[i] || s[j] {
				continue
			}
			ret = append(ret, Distance(coord.Vec(i), coord.Vec(j)))
		}
	}
	return ret
}
