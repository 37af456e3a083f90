/*
 * matcher.go, part of gozmat
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

package trans

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rmera/gozmat/chemgraph"
	"github.com/rmera/gozmat/formula"
)

//Matcher finds bond-change transformations by brute force: it enumerates every change
//with the shape of the reaction class, and keeps those that turn the reactant graph
//into a graph isomorphic to the product graph. It is meant for small molecules.
type Matcher struct{}

//NewMatcher returns a new Matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

//BondChanges returns the transformations of the given class that turn rct into prd, in
//a deterministic order. An empty slice means the class doesn't apply.
func (M *Matcher) BondChanges(class Class, rct, prd *chemgraph.Graph) ([]Transformation, error) {
	if rct == nil || prd == nil {
		return nil, fmt.Errorf("trans.BondChanges: nil graph")
	}
	if !graphFormula(rct).Equal(graphFormula(prd)) {
		return nil, nil
	}
	cands, err := candidates(class, rct)
	if err != nil {
		return nil, err
	}
	prdSig := signature(prd)
	seen := make(map[string]bool)
	ret := make([]Transformation, 0, 1)
	for _, c := range cands {
		id := c.String()
		if seen[id] {
			continue
		}
		seen[id] = true
		H, err := c.Apply(rct)
		if err != nil {
			return nil, fmt.Errorf("trans.BondChanges: %w", err)
		}
		if signature(H) != prdSig || !chemgraph.Isomorphic(H, prd) {
			continue
		}
		ret = append(ret, c)
	}
	return ret, nil
}

func graphFormula(G *chemgraph.Graph) formula.Formula {
	syms := make([]string, 0, G.Count())
	for _, k := range G.AtomKeys() {
		syms = append(syms, G.Symbol(k))
	}
	return formula.FromSymbols(syms)
}

//signature is a cheap invariant of a graph: its sorted symbol:degree pairs.
func signature(G *chemgraph.Graph) string {
	s := make([]string, 0, G.Count())
	for _, k := range G.AtomKeys() {
		s = append(s, fmt.Sprintf("%s:%d", G.Symbol(k), G.Degree(k)))
	}
	sort.Strings(s)
	return strings.Join(s, ",")
}

//newTransformation copies and sorts the bonds, so a given bond change always has the same form.
func newTransformation(formed, broken []chemgraph.BondKey) Transformation {
	return Transformation{Formed: sortedBonds(formed), Broken: sortedBonds(broken)}
}

func sortedBonds(bonds []chemgraph.BondKey) []chemgraph.BondKey {
	ret := append([]chemgraph.BondKey(nil), bonds...)
	sort.Slice(ret, func(i, j int) bool {
		return ret[i][0] < ret[j][0] || (ret[i][0] == ret[j][0] && ret[i][1] < ret[j][1])
	})
	return ret
}

//hydrogenBonds returns the bonds to hydrogens as pairs (hydrogen, other atom).
func hydrogenBonds(G *chemgraph.Graph) [][2]int {
	ret := make([][2]int, 0)
	for _, b := range G.BondKeys() {
		if G.Symbol(b[0]) == "H" {
			ret = append(ret, [2]int{b[0], b[1]})
		}
		if G.Symbol(b[1]) == "H" {
			ret = append(ret, [2]int{b[1], b[0]})
		}
	}
	return ret
}

func componentMap(G *chemgraph.Graph) map[int]int {
	ret := make(map[int]int, G.Count())
	for i, c := range G.ComponentKeys() {
		for _, k := range c {
			ret[k] = i
		}
	}
	return ret
}

func candidates(class Class, G *chemgraph.Graph) ([]Transformation, error) {
	comp := componentMap(G)
	keys := G.AtomKeys()
	bonds := G.BondKeys()
	nb := chemgraph.NewBondKey
	ret := make([]Transformation, 0)
	switch class {
	case HydrogenMigration:
		for _, ha := range hydrogenBonds(G) {
			h, a := ha[0], ha[1]
			for _, b := range keys {
				if b == h || b == a || comp[b] != comp[h] || G.HasBond(h, b) || G.Symbol(b) == "H" {
					continue
				}
				ret = append(ret, newTransformation([]chemgraph.BondKey{nb(h, b)}, []chemgraph.BondKey{nb(h, a)}))
			}
		}
	case BetaScission:
		for _, b := range bonds {
			ret = append(ret, newTransformation(nil, []chemgraph.BondKey{b}))
		}
	case Addition:
		unsat := G.UnsaturatedAtomKeys()
		for i, a := range unsat {
			for _, b := range unsat[i+1:] {
				if comp[a] != comp[b] {
					ret = append(ret, newTransformation([]chemgraph.BondKey{nb(a, b)}, nil))
				}
			}
		}
	case HydrogenAbstraction:
		for _, ha := range hydrogenBonds(G) {
			h, a := ha[0], ha[1]
			for _, b := range keys {
				if comp[b] == comp[h] {
					continue
				}
				ret = append(ret, newTransformation([]chemgraph.BondKey{nb(h, b)}, []chemgraph.BondKey{nb(h, a)}))
			}
		}
	case Elimination:
		//m moves from x to a, while the bond yz, away from both, breaks.
		for _, m := range keys {
			for _, a := range keys {
				if a == m || comp[a] != comp[m] || G.HasBond(m, a) {
					continue
				}
				for _, x := range G.NeighborKeys(m) {
					if x == a {
						continue
					}
					for _, yz := range bonds {
						if yz.Contains(m) || yz.Contains(x) || yz.Contains(a) || comp[yz[0]] != comp[m] {
							continue
						}
						ret = append(ret, newTransformation([]chemgraph.BondKey{nb(m, a)}, []chemgraph.BondKey{nb(m, x), yz}))
					}
				}
			}
		}
	case Insertion:
		for _, ab := range bonds {
			for _, x := range keys {
				if comp[x] == comp[ab[0]] {
					continue
				}
				ret = append(ret, newTransformation([]chemgraph.BondKey{nb(x, ab[0]), nb(x, ab[1])}, []chemgraph.BondKey{ab}))
			}
		}
	case Substitution:
		for _, ab := range bonds {
			for _, pair := range [][2]int{{ab[0], ab[1]}, {ab[1], ab[0]}} {
				a := pair[0]
				for _, x := range keys {
					if comp[x] == comp[a] {
						continue
					}
					ret = append(ret, newTransformation([]chemgraph.BondKey{nb(x, a)}, []chemgraph.BondKey{ab}))
				}
			}
		}
	default:
		return nil, fmt.Errorf("trans: unknown reaction class %s", class)
	}
	return ret, nil
}
