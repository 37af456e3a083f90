/*
 * chemistry.go, part of gozmat
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

package chemgraph

import (
	"sort"

	zmat "github.com/rmera/gozmat"
)

//deficits returns, for each atom with a known valence, how many bonds it lacks
//to reach it.
func (G *Graph) deficits() map[int]int {
	ret := make(map[int]int)
	for _, k := range G.AtomKeys() {
		v, ok := zmat.Valence(G.Symbol(k))
		if !ok {
			continue
		}
		if d := v - G.Degree(k); d > 0 {
			ret[k] = d
		}
	}
	return ret
}

//UnsaturatedAtomKeys returns the keys of the atoms with less bonds than their valence.
func (G *Graph) UnsaturatedAtomKeys() []int {
	d := G.deficits()
	ret := make([]int, 0, len(d))
	for k := range d {
		ret = append(ret, k)
	}
	sort.Ints(ret)
	return ret
}

//pairUnsaturated pairs unsaturated neighbors into pi bonds. Atoms with only one
//unsaturated neighbor are paired first. It returns the pi bonds (a bond appears once per
//extra bond order) and the deficits left.
func (G *Graph) pairUnsaturated() ([]BondKey, map[int]int) {
	def := G.deficits()
	pi := make([]BondKey, 0)
	unsatNeighbors := func(k int) []int {
		ret := make([]int, 0)
		for _, n := range G.NeighborKeys(k) {
			if def[n] > 0 {
				ret = append(ret, n)
			}
		}
		return ret
	}
	for {
		keys := make([]int, 0, len(def))
		for k, d := range def {
			if d > 0 {
				keys = append(keys, k)
			}
		}
		sort.Ints(keys)
		a, b := -1, -1
		for _, k := range keys {
			if n := unsatNeighbors(k); len(n) == 1 {
				a, b = k, n[0]
				break
			}
		}
		if a < 0 {
			for _, k := range keys {
				if n := unsatNeighbors(k); len(n) > 0 {
					a, b = k, n[0]
					break
				}
			}
		}
		if a < 0 {
			break
		}
		def[a]--
		def[b]--
		pi = append(pi, NewBondKey(a, b))
	}
	return pi, def
}

//RadicalAtomKeys returns the keys of the atoms that keep unpaired electrons after
//pairing unsaturated neighbors into multiple bonds.
func (G *Graph) RadicalAtomKeys() []int {
	_, def := G.pairUnsaturated()
	ret := make([]int, 0)
	for k, d := range def {
		if d > 0 {
			ret = append(ret, k)
		}
	}
	sort.Ints(ret)
	return ret
}

//PiBondKeys returns the bonds with order larger than one, each once.
func (G *Graph) PiBondKeys() []BondKey {
	pi, _ := G.pairUnsaturated()
	seen := make(map[BondKey]bool)
	ret := make([]BondKey, 0, len(pi))
	for _, b := range pi {
		if !seen[b] {
			seen[b] = true
			ret = append(ret, b)
		}
	}
	sortBondKeys(ret)
	return ret
}

//RotationalBondKeys returns the single bonds, not in rings, between atoms that
//have other neighbors. Torsions around them are soft coordinates.
func (G *Graph) RotationalBondKeys() []BondKey {
	pi := make(map[BondKey]bool)
	for _, b := range G.PiBondKeys() {
		pi[b] = true
	}
	ret := make([]BondKey, 0)
	for _, b := range G.BondKeys() {
		if pi[b] || G.Degree(b[0]) < 2 || G.Degree(b[1]) < 2 || G.InRing(b) {
			continue
		}
		ret = append(ret, b)
	}
	return ret
}

//TorsionCoordinateNames returns the names of the dihedrals in Z that describe a rotation
//around a rotational bond of G. The atom keys of G must be rows of Z.
func (G *Graph) TorsionCoordinateNames(Z *zmat.VMatrix) []string {
	keys := Z.KeyMatrix(0)
	names := Z.NameMatrix()
	ret := make([]string, 0)
	seen := make(map[string]bool)
	for _, b := range G.RotationalBondKeys() {
		for i := 3; i < len(keys); i++ {
			if NewBondKey(keys[i][0], keys[i][1]) != b {
				continue
			}
			if name := names[i][2]; !seen[name] {
				seen[name] = true
				ret = append(ret, name)
			}
			break
		}
	}
	return ret
}
