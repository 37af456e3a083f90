/*
 * bimolecular_test.go, part of gozmat
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

package ts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	zmat "github.com/rmera/gozmat"
	"github.com/rmera/gozmat/chemgraph"
)

func oxygen(Te *testing.T) *zmat.ZMatrix {
	return fromAngstrom(Te, "O O", [3]float64{}, [3]float64{1.21, 0, 0})
}

//carbonDioxide has no dummy atom, so its three atoms are collinear.
func carbonDioxide(Te *testing.T) *zmat.ZMatrix {
	Z, err := zmat.ZMatrixFromData([]string{"O", "C", "O"},
		[][3]int{{N, N, N}, {0, N, N}, {1, 0, N}},
		[][3]string{{}, {"R1", "", ""}, {"R2", "A2", ""}},
		map[string]float64{"R1": 1.16 * zmat.A2Bohr, "R2": 1.16 * zmat.A2Bohr, "A2": 180 * zmat.Deg2Rad},
		false)
	require.NoError(Te, err)
	return Z
}

func hydrocarboxyl(Te *testing.T) *zmat.ZMatrix {
	return fromAngstrom(Te, "O C O H",
		[3]float64{}, [3]float64{1.35, 0, 0}, [3]float64{2.038, 0.983, 0}, [3]float64{-0.2836, -0.9276, 0})
}

func methylene(Te *testing.T) *zmat.ZMatrix {
	return fromAngstrom(Te, "C H H", [3]float64{}, [3]float64{1.1, 0, 0}, [3]float64{-0.2287, 1.0760, 0})
}

func chloromethane(Te *testing.T) *zmat.ZMatrix {
	return fromAngstrom(Te, "C Cl H H H",
		[3]float64{}, [3]float64{0, 0, 1.78}, [3]float64{1.03, 0, -0.36},
		[3]float64{-0.515, 0.892, -0.36}, [3]float64{-0.515, -0.892, -0.36})
}

func TestJoinAtomKeys(Te *testing.T) {
	G, err := chemgraph.FromZMatrix(methane(Te))
	require.NoError(Te, err)
	a2, a3 := joinAtomKeys(G, 1)
	assert.Equal(Te, []int{0, 2}, []int{a2, a3})
	a2, a3 = joinAtomKeys(G, 0)
	assert.Equal(Te, []int{1, 2}, []int{a2, a3})
	G, err = chemgraph.FromZMatrix(hydrogen(Te))
	require.NoError(Te, err)
	a2, a3 = joinAtomKeys(G, 0)
	assert.Equal(Te, []int{1, N}, []int{a2, a3})
	G, err = chemgraph.FromZMatrix(atom(Te, "H"))
	require.NoError(Te, err)
	a2, a3 = joinAtomKeys(G, 0)
	assert.Equal(Te, []int{N, N}, []int{a2, a3})
}

func TestNonLinearThird(Te *testing.T) {
	tol := DefaultConfig().linearTol()
	c, err := nonLinearThird(carbonDioxide(Te), 0, 1, tol)
	require.NoError(Te, err)
	assert.Equal(Te, N, c)
	co2 := fromAngstrom(Te, "O C O", [3]float64{-1.16, 0, 0}, [3]float64{}, [3]float64{1.16, 0, 0})
	c, err = nonLinearThird(co2, 0, 1, tol)
	require.NoError(Te, err)
	assert.Equal(Te, 2, c) //the dummy atom
	assert.Equal(Te, "X", co2.Row(c).Symbol)
}

func TestAddition(Te *testing.T) {
	B := newBuilder(Te)
	//the single atom goes second
	R, err := B.Addition(zmas(atom(Te, "H"), oxygen(Te)), zmas(hydroperoxyl(Te)))
	require.NoError(Te, err)
	Z := R.ZMatrix
	assert.Equal(Te, []string{"O", "O", "H"}, Z.Symbols())
	assert.Equal(Te, [3]int{0, 1, N}, Z.Row(2).Keys)
	assert.Equal(Te, "R2", R.DistName)
	assert.Empty(Te, R.TorsionNames)
	assert.Empty(Te, Z.DihedralAngleNames())
	assert.Equal(Te, []bk{{0, 2}}, R.FormedKeys)
	v, _ := Z.Value("R2")
	assert.InDelta(Te, 3.0, v, 1e-12)
	v, _ = Z.Value("A2")
	assert.InDelta(Te, 85*zmat.Deg2Rad, v, 1e-12)

	_, err = B.Addition(zmas(atom(Te, "H"), atom(Te, "H")), zmas(hydrogen(Te)))
	assert.ErrorIs(Te, err, ErrNotApplicable)
	_, err = B.Addition(zmas(oxygen(Te)), zmas(oxygen(Te)))
	assert.ErrorIs(Te, err, ErrNotApplicable)
}

func TestAdditionLinear(Te *testing.T) {
	B := newBuilder(Te)
	R, err := B.Addition(zmas(carbonDioxide(Te), atom(Te, "H")), zmas(hydrocarboxyl(Te)))
	require.NoError(Te, err)
	Z := R.ZMatrix
	assert.Equal(Te, []string{"O", "C", "X", "O", "H"}, Z.Symbols())
	assert.Equal(Te, [3]int{0, 1, 2}, Z.Row(4).Keys)
	assert.Equal(Te, "R4", R.DistName)
	assert.Equal(Te, 2, R.Attempts)
	assert.Equal(Te, []bk{{0, 4}}, R.FormedKeys)
	geo, err := Z.Geometry()
	require.NoError(Te, err)
	assert.InDelta(Te, 3.0, zmat.Distance(geo.Vec(0), geo.Vec(4)), 1e-8)
}

func TestInsertion(Te *testing.T) {
	B := newBuilder(Te)
	methane := methane(Te)
	for _, rcts := range [][]*zmat.ZMatrix{
		zmas(hydrogen(Te), methylene(Te)),
		zmas(methylene(Te), hydrogen(Te)), //the reactant with the broken bond goes first
	} {
		R, err := B.Insertion(rcts, zmas(methane))
		require.NoError(Te, err)
		Z := R.ZMatrix
		assert.Equal(Te, []string{"H", "H", "X", "C", "H", "H"}, Z.Symbols())
		assert.Equal(Te, [3]int{0, 1, N}, Z.Row(2).Keys)
		assert.Equal(Te, [3]int{0, 2, 1}, Z.Row(3).Keys)
		assert.Equal(Te, [3]int{3, 0, 2}, Z.Row(4).Keys)
		assert.Equal(Te, [3]int{3, 4, 0}, Z.Row(5).Keys)
		assert.Equal(Te, "R3", R.DistName)
		assert.Empty(Te, R.TorsionNames)
		assert.Equal(Te, []bk{{0, 3}, {1, 3}}, R.FormedKeys)
		assert.Equal(Te, []bk{{0, 1}}, R.BrokenKeys)
		_, err = Z.Geometry()
		assert.NoError(Te, err)
	}
}

func TestSubstitution(Te *testing.T) {
	B := newBuilder(Te)
	R, err := B.Substitution(zmas(atom(Te, "H"), chloromethane(Te)), zmas(methane(Te), atom(Te, "Cl")))
	require.NoError(Te, err)
	Z := R.ZMatrix
	assert.Equal(Te, []string{"C", "Cl", "H", "H", "H", "X", "H"}, Z.Symbols())
	assert.Equal(Te, [3]int{0, 1, 2}, Z.Row(5).Keys)
	assert.Equal(Te, [3]int{0, 5, 1}, Z.Row(6).Keys)
	assert.Equal(Te, "R6", R.DistName)
	assert.Empty(Te, R.TorsionNames)
	assert.Equal(Te, []bk{{0, 6}}, R.FormedKeys)
	assert.Equal(Te, []bk{{0, 1}}, R.BrokenKeys)
	v, _ := Z.Value("R5")
	assert.InDelta(Te, zmat.A2Bohr, v, 1e-12)

	//two molecules
	_, err = B.Substitution(zmas(methane(Te), chloromethane(Te)), zmas(methane(Te), chloromethane(Te)))
	assert.ErrorIs(Te, err, ErrNotApplicable)
}

func TestRadicalFirst(Te *testing.T) {
	Z, err := radicalFirst(hydroxyl(Te, true))
	require.NoError(Te, err)
	assert.Equal(Te, []string{"O", "H"}, Z.Symbols())
	Z, err = radicalFirst(methyl(Te))
	require.NoError(Te, err)
	assert.Equal(Te, "C", Z.Row(0).Symbol)
	keys, err := radicalKeys(fromAngstrom(Te, "C O", [3]float64{}, [3]float64{1.13, 0, 0}))
	require.NoError(Te, err)
	assert.Empty(Te, keys)
}

func TestHydrogenAbstraction(Te *testing.T) {
	B := newBuilder(Te)
	//the reactants and products are sorted, and the radical atom is moved first
	R, err := B.HydrogenAbstraction(zmas(hydroxyl(Te, true), methane(Te)), zmas(water(Te), methyl(Te)), false)
	require.NoError(Te, err)
	Z := R.ZMatrix
	assert.Equal(Te, []string{"C", "H", "H", "H", "H", "X", "O", "H"}, Z.Symbols())
	assert.Equal(Te, [3]int{1, 0, 2}, Z.Row(5).Keys)
	assert.Equal(Te, [3]int{1, 5, 0}, Z.Row(6).Keys)
	assert.Equal(Te, [3]int{6, 1, 5}, Z.Row(7).Keys)
	assert.Equal(Te, "R6", R.DistName)
	assert.Equal(Te, []string{"D7"}, R.TorsionNames)
	assert.Equal(Te, []bk{{1, 6}}, R.FormedKeys)
	assert.Equal(Te, []bk{{0, 1}}, R.BrokenKeys)
	v, _ := Z.Value("A6")
	assert.InDelta(Te, 85*zmat.Deg2Rad, v, 1e-12)
	v, _ = Z.Value("D6")
	assert.InDelta(Te, 170*zmat.Deg2Rad, v, 1e-12)
	_, err = Z.Geometry()
	assert.NoError(Te, err)

	_, err = B.HydrogenAbstraction(zmas(methane(Te), hydroxyl(Te, false)), zmas(methane(Te), water(Te)), false)
	assert.ErrorIs(Te, err, ErrNotApplicable)
}

func TestHydrogenAbstractionSigma(Te *testing.T) {
	B := newBuilder(Te)
	R, err := B.HydrogenAbstraction(zmas(methane(Te), hydroxyl(Te, false)), zmas(methyl(Te), water(Te)), true)
	require.NoError(Te, err)
	Z := R.ZMatrix
	assert.Equal(Te, []string{"C", "H", "H", "H", "H", "X", "O", "X", "H"}, Z.Symbols())
	assert.Equal(Te, [3]int{6, 1, 5}, Z.Row(7).Keys)
	assert.Equal(Te, [3]int{6, 7, 1}, Z.Row(8).Keys)
	assert.Equal(Te, "R6", R.DistName)
	assert.Equal(Te, []string{"D7"}, R.TorsionNames)
	assert.Equal(Te, []bk{{1, 6}}, R.FormedKeys)
	v, _ := Z.Value("D8")
	assert.InDelta(Te, 170*zmat.Deg2Rad, v, 1e-12)
	_, err = Z.Geometry()
	assert.NoError(Te, err)

	//without reordering, the attacking atom has to be the first one
	_, err = B.HydrogenAbstraction(zmas(methane(Te), hydroxyl(Te, true)), zmas(methyl(Te), water(Te)), true)
	assert.ErrorIs(Te, err, ErrInvariant)
}
