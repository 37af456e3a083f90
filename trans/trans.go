/*
 * trans.go, part of gozmat
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

//Package trans describes reactions as changes in the bonds of a molecular graph, and finds the
//bond changes that turn a reactant graph into a product graph.
package trans

import (
	"fmt"
	"strings"

	"github.com/rmera/gozmat/chemgraph"
)

//Class is a reaction class.
type Class int

const (
	HydrogenMigration Class = iota
	Elimination
	Insertion
	Substitution
	BetaScission
	Addition
	HydrogenAbstraction
)

var classNames = map[Class]string{
	HydrogenMigration:   "hydrogen migration",
	Elimination:         "elimination",
	Insertion:           "insertion",
	Substitution:        "substitution",
	BetaScission:        "beta scission",
	Addition:            "addition",
	HydrogenAbstraction: "hydrogen abstraction",
}

func (C Class) String() string {
	if s, ok := classNames[C]; ok {
		return s
	}
	return fmt.Sprintf("Class(%d)", int(C))
}

//Transformation is the set of bonds formed and broken in a reaction step.
type Transformation struct {
	Formed []chemgraph.BondKey
	Broken []chemgraph.BondKey
}

//FormedBondKeys returns the bonds formed by T.
func FormedBondKeys(T Transformation) []chemgraph.BondKey {
	return append([]chemgraph.BondKey(nil), T.Formed...)
}

//BrokenBondKeys returns the bonds broken by T.
func BrokenBondKeys(T Transformation) []chemgraph.BondKey {
	return append([]chemgraph.BondKey(nil), T.Broken...)
}

//Apply returns the graph that results from breaking and forming the bonds of T in G.
func (T Transformation) Apply(G *chemgraph.Graph) (*chemgraph.Graph, error) {
	for _, b := range T.Broken {
		if !G.HasBond(b[0], b[1]) {
			return nil, fmt.Errorf("trans.Apply: bond %v to break is not in the graph", b)
		}
	}
	H, err := G.RemoveBonds(T.Broken).AddBonds(T.Formed)
	if err != nil {
		return nil, fmt.Errorf("trans.Apply: %w", err)
	}
	return H, nil
}

func (T Transformation) String() string {
	f := make([]string, 0, len(T.Formed))
	for _, b := range T.Formed {
		f = append(f, fmt.Sprint(b))
	}
	br := make([]string, 0, len(T.Broken))
	for _, b := range T.Broken {
		br = append(br, fmt.Sprint(b))
	}
	return fmt.Sprintf("formed: [%s] broken: [%s]", strings.Join(f, " "), strings.Join(br, " "))
}
