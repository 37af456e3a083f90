/*
 * formula_test.go, part of gozmat
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

package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormula(Te *testing.T) {
	ethanol := FromSymbols([]string{"C", "C", "O", "H", "H", "H", "H", "H", "H", "X"})
	assert.Equal(Te, 9, ethanol.Count())
	assert.Equal(Te, 2, ethanol.AtomCount("C"))
	assert.Equal(Te, 0, ethanol.AtomCount("X"))
	assert.Equal(Te, 6, ethanol.HydrogenCount())
	assert.Equal(Te, "C2H6O", ethanol.String())
	assert.Equal(Te, 26, ethanol.ElectronCount())

	water := FromSymbols([]string{"H", "O", "H"})
	assert.Equal(Te, "H2O", water.String())
	assert.Equal(Te, "ClH", FromSymbols([]string{"H", "Cl"}).String())

	oh, err := water.AddHydrogen(-1)
	require.NoError(Te, err)
	assert.Equal(Te, "HO", oh.String())
	assert.Equal(Te, 2, water.HydrogenCount(), "the original is not modified")
	o, err := oh.AddHydrogen(-1)
	require.NoError(Te, err)
	assert.True(Te, o.Equal(Formula{"O": 1}))
	_, err = o.AddHydrogen(-1)
	assert.Error(Te, err)
	co2, err := Formula{"C": 1, "O": 1}.AddElement("O", 1)
	require.NoError(Te, err)
	assert.Equal(Te, "CO2", co2.String())

	j := Join(water, oh)
	assert.Equal(Te, "H3O2", j.String())
	assert.True(Te, Formula{"H": 1, "N": 0}.Equal(Formula{"H": 1}))
	assert.False(Te, water.Equal(oh))
}

func TestArgsortHydrogenAbstraction(Te *testing.T) {
	ch4 := Formula{"C": 1, "H": 4}
	oh := Formula{"O": 1, "H": 1}
	ch3 := Formula{"C": 1, "H": 3}
	h2o := Formula{"O": 1, "H": 2}

	rct, prd, ok := ArgsortHydrogenAbstraction([]Formula{ch4, oh}, []Formula{ch3, h2o})
	require.True(Te, ok)
	assert.Equal(Te, [2]int{0, 1}, rct)
	assert.Equal(Te, [2]int{0, 1}, prd)

	rct, prd, ok = ArgsortHydrogenAbstraction([]Formula{oh, ch4}, []Formula{h2o, ch3})
	require.True(Te, ok)
	assert.Equal(Te, [2]int{1, 0}, rct)
	assert.Equal(Te, [2]int{1, 0}, prd)

	_, _, ok = ArgsortHydrogenAbstraction([]Formula{ch4, oh}, []Formula{ch4, oh})
	assert.False(Te, ok)
	_, _, ok = ArgsortHydrogenAbstraction([]Formula{ch4}, []Formula{ch3, h2o})
	assert.False(Te, ok)
}
