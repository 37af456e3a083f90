/*
 * unimolecular_test.go, part of gozmat
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
	"github.com/rmera/gozmat/trans"
)

//ethylScrambled is ethyl with the migrating hydrogen right after the carbons, so
//the atoms bonded to C0 are defined from it.
func ethylScrambled(Te *testing.T) *zmat.ZMatrix {
	return fromAngstrom(Te, "C C H H H H H",
		[3]float64{}, [3]float64{1.49, 0, 0}, [3]float64{1.80, 0, 1.05},
		[3]float64{-0.54, 0.935, 0}, [3]float64{-0.54, -0.935, 0},
		[3]float64{1.88, -0.8816, -0.509}, [3]float64{1.88, 0.8816, -0.509})
}

//ethylperoxy is CH3CH2OO with one methyl hydrogen (4) close to the terminal oxygen.
func ethylperoxy(Te *testing.T) *zmat.ZMatrix {
	return fromAngstrom(Te, "C C O O H H H H H",
		[3]float64{0, 0, 0}, [3]float64{1.52, 0, 0},
		[3]float64{1.9856, 1.3521, 0}, [3]float64{0.9565, 2.1875, 0.1089},
		[3]float64{-0.3728, 1.0243, 0}, [3]float64{-0.3728, -0.5121, -0.8870},
		[3]float64{-0.3728, -0.5121, 0.8870}, [3]float64{1.8928, -0.5121, 0.8870},
		[3]float64{1.8928, -0.5121, -0.8870})
}

func ethylene(Te *testing.T) *zmat.ZMatrix {
	return fromAngstrom(Te, "C C H H H H",
		[3]float64{}, [3]float64{1.33, 0, 0}, [3]float64{-0.56, 0.93, 0}, [3]float64{-0.56, -0.93, 0},
		[3]float64{1.89, 0.93, 0}, [3]float64{1.89, -0.93, 0})
}

func TestHydrogenMigration(Te *testing.T) {
	B := newBuilder(Te)
	R, err := B.HydrogenMigration(zmas(ethyl(Te)), zmas(ethyl(Te)))
	require.NoError(Te, err)
	Z := R.ZMatrix
	assert.True(Te, Z.IsStandardForm())
	assert.Equal(Te, 1, R.Attempts)
	assert.Equal(Te, [3]int{0, 1, 2}, Z.Row(4).Keys)
	assert.Equal(Te, "R4", R.DistName)
	assert.Equal(Te, []bk{{0, 4}}, R.FormedKeys)
	assert.Equal(Te, []bk{{1, 4}}, R.BrokenKeys)
	assert.Empty(Te, R.TorsionNames)
	v, ok := Z.Value(R.DistName)
	require.True(Te, ok)
	assert.InDelta(Te, 2.0839*zmat.A2Bohr, v, 1e-3)
	//the geometry is still the reactant's
	geo, err := Z.Geometry()
	require.NoError(Te, err)
	assert.InDelta(Te, 1.49*zmat.A2Bohr, zmat.Distance(geo.Vec(0), geo.Vec(1)), 1e-8)

	k, err := B.MinHydrogenMigrationDistance(zmas(ethyl(Te)), zmas(ethyl(Te)))
	require.NoError(Te, err)
	assert.Equal(Te, bk{0, 4}, k)
}

func TestHydrogenMigrationRebuild(Te *testing.T) {
	B := newBuilder(Te)
	R, err := B.HydrogenMigration(zmas(ethylScrambled(Te)), zmas(ethyl(Te)))
	require.NoError(Te, err)
	assert.Equal(Te, 2, R.Attempts)
	assert.Equal(Te, "R6", R.DistName)
	assert.Equal(Te, []bk{{0, 6}}, R.FormedKeys)
	assert.Equal(Te, [3]int{0, 1, 4}, R.ZMatrix.Row(6).Keys)
	_, err = R.ZMatrix.Geometry()
	assert.NoError(Te, err)

	//a reorderer that changes nothing never gets there
	same := func(zma *zmat.ZMatrix, a1, mig int) (*zmat.ZMatrix, error) { return zma, nil }
	B = newBuilder(Te, WithReorderer(same))
	_, err = B.HydrogenMigration(zmas(ethylScrambled(Te)), zmas(ethyl(Te)))
	assert.ErrorIs(Te, err, ErrRebuildExhausted)
}

func TestHydrogenMigrationNotApplicable(Te *testing.T) {
	B := newBuilder(Te)
	_, err := B.HydrogenMigration(zmas(ethyl(Te), atom(Te, "H")), zmas(ethyl(Te)))
	assert.ErrorIs(Te, err, ErrNotApplicable)
	_, err = B.HydrogenMigration(zmas(ethyl(Te)), zmas(ethylene(Te), atom(Te, "H")))
	assert.ErrorIs(Te, err, ErrNotApplicable)
}

func TestConcertedElimination(Te *testing.T) {
	B := newBuilder(Te)
	R, err := B.ConcertedElimination(zmas(ethylperoxy(Te)), zmas(ethylene(Te), hydroperoxyl(Te)))
	require.NoError(Te, err)
	Z := R.ZMatrix
	assert.Equal(Te, 1, R.Attempts)
	assert.Equal(Te, [3]int{3, 2, 1}, Z.Row(4).Keys)
	assert.Equal(Te, "R4", R.DistName)
	assert.Equal(Te, "R2", R.BreakDistName)
	assert.Equal(Te, []bk{{3, 4}}, R.FormedKeys)
	assert.Equal(Te, []bk{{0, 4}, {1, 2}}, R.BrokenKeys)
	assert.Empty(Te, R.TorsionNames)
	v, _ := Z.Value("R4")
	assert.InDelta(Te, 1.770*zmat.A2Bohr, v, 2e-3)

	k, err := B.MinEliminationDistance(zmas(ethylperoxy(Te)), zmas(ethylene(Te), hydroperoxyl(Te)))
	require.NoError(Te, err)
	assert.Equal(Te, bk{3, 4}, k)
}

//fixedOracle always returns the same transformations.
type fixedOracle []trans.Transformation

func (F fixedOracle) BondChanges(trans.Class, *chemgraph.Graph, *chemgraph.Graph) ([]trans.Transformation, error) {
	return F, nil
}

//peroxide is HOOH with the atoms in the order O O H H, each hydrogen on the closest oxygen.
func peroxide(Te *testing.T) *zmat.ZMatrix {
	return fromAngstrom(Te, "O O H H",
		[3]float64{}, [3]float64{1.40, 0, 0}, [3]float64{-0.2347, 0.9412, 0},
		[3]float64{1.6347, -0.4706, 0.8151})
}

func TestConcertedEliminationFewReferences(Te *testing.T) {
	//the hydrogen 3 moves to O0, and the O1 neighbors can't give a third reference
	tra := trans.Transformation{Formed: []bk{{0, 3}}, Broken: []bk{{1, 2}, {1, 3}}}
	B := newBuilder(Te, WithOracle(fixedOracle{tra}))
	R, err := B.ConcertedElimination(zmas(peroxide(Te)), zmas(hydroxyl(Te, false), hydroxyl(Te, false)))
	require.NoError(Te, err)
	assert.Equal(Te, 1, R.Attempts)
	assert.Equal(Te, [3]int{0, 1, 2}, R.ZMatrix.Row(3).Keys)
	assert.Equal(Te, "R3", R.DistName)
	v, _ := R.ZMatrix.Value("R3")
	assert.InDelta(Te, 1.8863*zmat.A2Bohr, v, 1e-3)
	geo, err := R.ZMatrix.Geometry()
	require.NoError(Te, err)
	assert.InDelta(Te, 0.97*zmat.A2Bohr, zmat.Distance(geo.Vec(1), geo.Vec(3)), 1e-3)

	//rows before the fourth one need less than three references
	M := &migration{mig: 2, refs: [3]int{0, 1, N}}
	assert.False(Te, M.needsRebuild(false))
	M = &migration{mig: 1, refs: [3]int{0, N, N}}
	assert.False(Te, M.needsRebuild(false))
}

func TestBetaScission(Te *testing.T) {
	//HOOH with non-standard names
	hooh, err := zmat.ZMatrixFromData([]string{"H", "O", "O", "H"},
		[][3]int{{N, N, N}, {0, N, N}, {1, 0, N}, {2, 1, 0}},
		[][3]string{{}, {"roh", "", ""}, {"roo", "aooh", ""}, {"roh", "aooh", "dhooh"}},
		map[string]float64{"roh": 0.97 * zmat.A2Bohr, "roo": 1.45 * zmat.A2Bohr, "aooh": 100 * zmat.Deg2Rad, "dhooh": 120 * zmat.Deg2Rad},
		false)
	require.NoError(Te, err)
	B := newBuilder(Te)
	R, err := B.BetaScission(zmas(hooh), zmas(hydroxyl(Te, false), hydroxyl(Te, false)))
	require.NoError(Te, err)
	assert.True(Te, R.ZMatrix.IsStandardForm())
	assert.Equal(Te, "R2", R.DistName)
	assert.Equal(Te, []string{"D3"}, R.TorsionNames)
	assert.Equal(Te, []bk{{1, 2}}, R.BrokenKeys)
	assert.Empty(Te, R.FormedKeys)
	v, _ := R.ZMatrix.Value("R2")
	assert.InDelta(Te, 1.45*zmat.A2Bohr, v, 1e-10)

	_, err = B.BetaScission(zmas(hooh, hooh), zmas(hydroxyl(Te, false), hydroxyl(Te, false)))
	assert.ErrorIs(Te, err, ErrNotApplicable)
}
