/*
 * graph.go, part of gozmat
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
	"fmt"
	"sort"

	zmat "github.com/rmera/gozmat"
	v3 "github.com/rmera/gozmat/v3"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

//Atom is a node of the molecular graph. Its key is the row of the atom in
//the z-matrix the graph was built from.
type Atom struct {
	Key    int
	Symbol string
}

//ID implements gonum's graph.Node
func (A *Atom) ID() int64 {
	return int64(A.Key)
}

//Bond is an edge of the molecular graph.
type Bond struct {
	At1, At2 *Atom
}

func (B *Bond) From() graph.Node {
	return B.At1
}

func (B *Bond) To() graph.Node {
	return B.At2
}

//ReversedEdge returns a new bond with the atoms switched.
func (B *Bond) ReversedEdge() graph.Edge {
	return &Bond{At1: B.At2, At2: B.At1}
}

//Key returns the bond key of B.
func (B *Bond) Key() BondKey {
	return NewBondKey(B.At1.Key, B.At2.Key)
}

//BondKey identifies a bond by the keys of its atoms, the smallest first.
type BondKey [2]int

//NewBondKey returns the bond key for the atoms a and b, in any order.
func NewBondKey(a, b int) BondKey {
	if a > b {
		a, b = b, a
	}
	return BondKey{a, b}
}

//Contains returns true if key is one of the atoms of the bond.
func (B BondKey) Contains(key int) bool {
	return B[0] == key || B[1] == key
}

//Other returns the atom of the bond that is not key, or -1 if key is not in the bond.
func (B BondKey) Other(key int) int {
	switch key {
	case B[0]:
		return B[1]
	case B[1]:
		return B[0]
	}
	return -1
}

func sortBondKeys(b []BondKey) {
	sort.Slice(b, func(i, j int) bool {
		if b[i][0] != b[j][0] {
			return b[i][0] < b[j][0]
		}
		return b[i][1] < b[j][1]
	})
}

//Graph is an undirected molecular graph, implemented on top of gonum's simple.UndirectedGraph.
//Dummy atoms are never part of it. Graphs are not modified after creation.
type Graph struct {
	g *simple.UndirectedGraph
}

func newGraph() *Graph {
	return &Graph{g: simple.NewUndirectedGraph()}
}

//New returns a graph with the atoms in symbols (key to symbol) and the bonds given.
func New(symbols map[int]string, bonds []BondKey) (*Graph, error) {
	G := newGraph()
	for k, s := range symbols {
		if k < 0 {
			return nil, fmt.Errorf("chemgraph.New: invalid atom key %d", k)
		}
		if zmat.IsDummy(s) {
			continue
		}
		G.g.AddNode(&Atom{Key: k, Symbol: s})
	}
	if err := G.setBonds(bonds); err != nil {
		return nil, fmt.Errorf("chemgraph.New: %w", err)
	}
	return G, nil
}

func (G *Graph) setBonds(bonds []BondKey) error {
	for _, b := range bonds {
		a1, ok1 := G.atom(b[0])
		a2, ok2 := G.atom(b[1])
		if !ok1 || !ok2 {
			return fmt.Errorf("bond %v has atoms not in the graph", b)
		}
		if b[0] == b[1] {
			return fmt.Errorf("atom %d can't be bonded to itself", b[0])
		}
		G.g.SetEdge(&Bond{At1: a1, At2: a2})
	}
	return nil
}

//FromGeometry returns the graph for the atoms with symbols syms and coordinates coord (bohr),
//with bonds assigned from the distances. Dummy atoms are left out, but the keys of the other atoms
//are still their indexes in syms.
func FromGeometry(syms []string, coord *v3.Matrix) (*Graph, error) {
	bonds, err := zmat.AssignBonds(syms, coord)
	if err != nil {
		return nil, fmt.Errorf("chemgraph.FromGeometry: %w", err)
	}
	symbols := make(map[int]string, len(syms))
	for i, s := range syms {
		symbols[i] = s
	}
	keys := make([]BondKey, 0, len(bonds))
	for _, b := range bonds {
		keys = append(keys, NewBondKey(b.At1, b.At2))
	}
	return New(symbols, keys)
}

//FromZMatrix returns the graph of the molecule described by the z-matrix. Atom keys are z-matrix rows.
func FromZMatrix(Z *zmat.ZMatrix) (*Graph, error) {
	geo, err := Z.Geometry()
	if err != nil {
		return nil, fmt.Errorf("chemgraph.FromZMatrix: %w", err)
	}
	return FromGeometry(Z.Symbols(), geo)
}

func (G *Graph) atom(key int) (*Atom, bool) {
	n := G.g.Node(int64(key))
	if n == nil {
		return nil, false
	}
	return n.(*Atom), true
}

//Copy returns a new graph identical to G.
func (G *Graph) Copy() *Graph {
	H := newGraph()
	for _, k := range G.AtomKeys() {
		a, _ := G.atom(k)
		H.g.AddNode(&Atom{Key: a.Key, Symbol: a.Symbol})
	}
	H.setBonds(G.BondKeys()) //can't fail, the atoms are the same.
	return H
}

//Count returns the number of atoms in the graph.
func (G *Graph) Count() int {
	return G.g.Nodes().Len()
}

//AtomKeys returns the keys of all the atoms, in increasing order.
func (G *Graph) AtomKeys() []int {
	nodes := graph.NodesOf(G.g.Nodes())
	ret := make([]int, 0, len(nodes))
	for _, n := range nodes {
		ret = append(ret, int(n.ID()))
	}
	sort.Ints(ret)
	return ret
}

//HasAtom returns true if an atom with the given key is in the graph.
func (G *Graph) HasAtom(key int) bool {
	_, ok := G.atom(key)
	return ok
}

//Symbol returns the symbol of the atom with the given key, or an empty string if it is not in the graph.
func (G *Graph) Symbol(key int) string {
	a, ok := G.atom(key)
	if !ok {
		return ""
	}
	return a.Symbol
}

//Symbols returns a map from atom keys to symbols.
func (G *Graph) Symbols() map[int]string {
	ret := make(map[int]string, G.Count())
	for _, k := range G.AtomKeys() {
		ret[k] = G.Symbol(k)
	}
	return ret
}

//NeighborKeys returns the keys of the atoms bonded to key, in increasing order.
func (G *Graph) NeighborKeys(key int) []int {
	if !G.HasAtom(key) {
		return nil
	}
	nodes := graph.NodesOf(G.g.From(int64(key)))
	ret := make([]int, 0, len(nodes))
	for _, n := range nodes {
		ret = append(ret, int(n.ID()))
	}
	sort.Ints(ret)
	return ret
}

//Degree returns the number of atoms bonded to key.
func (G *Graph) Degree(key int) int {
	return len(G.NeighborKeys(key))
}

//BondKeys returns the keys of all the bonds, sorted.
func (G *Graph) BondKeys() []BondKey {
	edges := graph.EdgesOf(G.g.Edges())
	ret := make([]BondKey, 0, len(edges))
	for _, e := range edges {
		ret = append(ret, NewBondKey(int(e.From().ID()), int(e.To().ID())))
	}
	sortBondKeys(ret)
	return ret
}

//HasBond returns true if the atoms a and b are bonded.
func (G *Graph) HasBond(a, b int) bool {
	return G.g.HasEdgeBetween(int64(a), int64(b))
}

//AddBonds returns a new graph with the bonds given added.
func (G *Graph) AddBonds(bonds []BondKey) (*Graph, error) {
	H := G.Copy()
	if err := H.setBonds(bonds); err != nil {
		return nil, fmt.Errorf("AddBonds: %w", err)
	}
	return H, nil
}

//RemoveBonds returns a new graph without the bonds given. Bonds not in G are ignored.
func (G *Graph) RemoveBonds(bonds []BondKey) *Graph {
	H := G.Copy()
	for _, b := range bonds {
		H.g.RemoveEdge(int64(b[0]), int64(b[1]))
	}
	return H
}

//ShiftKeys returns a new graph where all the keys are increased by by.
func (G *Graph) ShiftKeys(by int) *Graph {
	H := newGraph()
	for _, k := range G.AtomKeys() {
		H.g.AddNode(&Atom{Key: k + by, Symbol: G.Symbol(k)})
	}
	bonds := G.BondKeys()
	for i := range bonds {
		bonds[i] = BondKey{bonds[i][0] + by, bonds[i][1] + by}
	}
	H.setBonds(bonds)
	return H
}

//Subgraph returns the graph with only the atoms in keys and the bonds among them.
func (G *Graph) Subgraph(keys []int) *Graph {
	in := make(map[int]bool, len(keys))
	H := newGraph()
	for _, k := range keys {
		if a, ok := G.atom(k); ok && !in[k] {
			in[k] = true
			H.g.AddNode(&Atom{Key: a.Key, Symbol: a.Symbol})
		}
	}
	bonds := make([]BondKey, 0)
	for _, b := range G.BondKeys() {
		if in[b[0]] && in[b[1]] {
			bonds = append(bonds, b)
		}
	}
	H.setBonds(bonds)
	return H
}

//Union returns a graph with the atoms and bonds of all the graphs given.
//The graphs can't share atom keys.
func Union(graphs ...*Graph) (*Graph, error) {
	U := newGraph()
	for _, G := range graphs {
		for _, k := range G.AtomKeys() {
			if U.HasAtom(k) {
				return nil, fmt.Errorf("chemgraph.Union: atom key %d is repeated", k)
			}
			U.g.AddNode(&Atom{Key: k, Symbol: G.Symbol(k)})
		}
	}
	for _, G := range graphs {
		U.setBonds(G.BondKeys())
	}
	return U, nil
}

func (G *Graph) String() string {
	return fmt.Sprintf("atoms: %v bonds: %v", G.Symbols(), G.BondKeys())
}
