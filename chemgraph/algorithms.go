/*
 * algorithms.go, part of gozmat
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

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"
)

//ConnectedComponents returns one graph per connected component of G, sorted by
//their smallest atom key.
func (G *Graph) ConnectedComponents() []*Graph {
	keys := G.ComponentKeys()
	ret := make([]*Graph, 0, len(keys))
	for _, k := range keys {
		ret = append(ret, G.Subgraph(k))
	}
	return ret
}

//ComponentKeys returns the atom keys of each connected component, sorted.
func (G *Graph) ComponentKeys() [][]int {
	comps := topo.ConnectedComponents(G.g)
	ret := make([][]int, 0, len(comps))
	for _, c := range comps {
		keys := make([]int, 0, len(c))
		for _, n := range c {
			keys = append(keys, int(n.ID()))
		}
		sort.Ints(keys)
		ret = append(ret, keys)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

//ComponentOf returns the keys of the atoms in the same connected component as key.
func (G *Graph) ComponentOf(key int) []int {
	for _, c := range G.ComponentKeys() {
		for _, k := range c {
			if k == key {
				return c
			}
		}
	}
	return nil
}

//LongestChain returns the longest chain of bonded atoms starting from key.
//Among chains of the same length, the one found first when visiting
//neighbors in increasing key order is returned.
func (G *Graph) LongestChain(key int) []int {
	if !G.HasAtom(key) {
		return nil
	}
	best := []int{key}
	visited := map[int]bool{key: true}
	chain := []int{key}
	var walk func()
	walk = func() {
		if len(chain) > len(best) {
			best = append([]int(nil), chain...)
		}
		last := chain[len(chain)-1]
		for _, n := range G.NeighborKeys(last) {
			if visited[n] {
				continue
			}
			visited[n] = true
			chain = append(chain, n)
			walk()
			chain = chain[:len(chain)-1]
			visited[n] = false
		}
	}
	walk()
	return best
}

//LongestChains returns the longest chain starting from each atom.
func (G *Graph) LongestChains() map[int][]int {
	ret := make(map[int][]int, G.Count())
	for _, k := range G.AtomKeys() {
		ret[k] = G.LongestChain(k)
	}
	return ret
}

//BranchAtomKeys returns the keys of the atoms on the branch that starts at the
//atom of axis that is not from, and doesn't go through from. The result includes the
//starting atom, but not from. It returns nil if from is not in axis.
func (G *Graph) BranchAtomKeys(from int, axis BondKey) []int {
	start := axis.Other(from)
	if start < 0 || !G.HasAtom(start) {
		return nil
	}
	ret := make([]int, 0)
	dfs := traverse.DepthFirst{
		Traverse: func(e graph.Edge) bool {
			return int(e.From().ID()) != from && int(e.To().ID()) != from
		},
		Visit: func(n graph.Node) {
			ret = append(ret, int(n.ID()))
		},
	}
	startNode, _ := G.atom(start)
	dfs.Walk(G.g, startNode, nil)
	sort.Ints(ret)
	return ret
}

//InRing returns true if the bond b is part of a ring.
func (G *Graph) InRing(b BondKey) bool {
	if !G.HasBond(b[0], b[1]) {
		return false
	}
	H := G.RemoveBonds([]BondKey{b})
	a1, _ := H.atom(b[0])
	a2, _ := H.atom(b[1])
	return topo.PathExistsIn(H.g, a1, a2)
}

//FullIsomorphism returns a map from the keys of G to the keys of H such that atoms
//have the same symbols and bonded atoms map to bonded atoms. It returns false if there
//is no such map.
func FullIsomorphism(G, H *Graph) (map[int]int, bool) {
	gkeys, hkeys := G.AtomKeys(), H.AtomKeys()
	if len(gkeys) != len(hkeys) || len(G.BondKeys()) != len(H.BondKeys()) {
		return nil, false
	}
	iso := make(map[int]int, len(gkeys))
	used := make(map[int]bool, len(hkeys))
	var match func(i int) bool
	match = func(i int) bool {
		if i == len(gkeys) {
			return true
		}
		g := gkeys[i]
		for _, h := range hkeys {
			if used[h] || G.Symbol(g) != H.Symbol(h) || G.Degree(g) != H.Degree(h) {
				continue
			}
			ok := true
			for _, prev := range gkeys[:i] {
				if G.HasBond(g, prev) != H.HasBond(h, iso[prev]) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			iso[g] = h
			used[h] = true
			if match(i + 1) {
				return true
			}
			delete(iso, g)
			used[h] = false
		}
		return false
	}
	if !match(0) {
		return nil, false
	}
	return iso, true
}

//Isomorphic returns true if G and H are isomorphic.
func Isomorphic(G, H *Graph) bool {
	_, ok := FullIsomorphism(G, H)
	return ok
}
