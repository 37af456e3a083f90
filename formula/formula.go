/*
 * formula.go, part of gozmat
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

//Package formula handles molecular formulas, as element counts.
package formula

import (
	"fmt"
	"sort"
	"strings"

	zmat "github.com/rmera/gozmat"
)

//Formula maps element symbols to the number of atoms of each element.
//Formulas are not modified by the functions in this package.
type Formula map[string]int

//FromSymbols returns the formula for the atoms with the given symbols. Dummy atoms are ignored.
func FromSymbols(syms []string) Formula {
	f := make(Formula)
	for _, s := range syms {
		if zmat.IsDummy(s) {
			continue
		}
		f[s]++
	}
	return f
}

func (F Formula) copied() Formula {
	ret := make(Formula, len(F))
	for k, v := range F {
		if v != 0 {
			ret[k] = v
		}
	}
	return ret
}

//Count returns the total number of atoms.
func (F Formula) Count() int {
	var n int
	for _, v := range F {
		n += v
	}
	return n
}

//AtomCount returns the number of atoms of the element sym.
func (F Formula) AtomCount(sym string) int {
	return F[sym]
}

//HydrogenCount returns the number of hydrogens.
func (F Formula) HydrogenCount() int {
	return F["H"]
}

//AddElement returns a new formula with n atoms of sym added. n can be negative, but
//the resulting count can't.
func (F Formula) AddElement(sym string, n int) (Formula, error) {
	ret := F.copied()
	ret[sym] += n
	if ret[sym] < 0 {
		return nil, fmt.Errorf("formula.AddElement: can't remove %d %s atoms from %s", -n, sym, F)
	}
	if ret[sym] == 0 {
		delete(ret, sym)
	}
	return ret, nil
}

//AddHydrogen is AddElement for hydrogen.
func (F Formula) AddHydrogen(n int) (Formula, error) {
	return F.AddElement("H", n)
}

//Join returns the formula of the atoms in F and G together.
func Join(F, G Formula) Formula {
	ret := F.copied()
	for k, v := range G {
		ret[k] += v
	}
	return ret.copied()
}

//ElectronCount returns the number of electrons in the neutral molecule.
func (F Formula) ElectronCount() int {
	var n int
	for k, v := range F {
		if z := zmat.AtomicNumber(k); z > 0 {
			n += z * v
		}
	}
	return n
}

//Equal returns true if both formulas have the same element counts.
func (F Formula) Equal(G Formula) bool {
	f, g := F.copied(), G.copied()
	if len(f) != len(g) {
		return false
	}
	for k, v := range f {
		if g[k] != v {
			return false
		}
	}
	return true
}

//String returns the formula in Hill order: carbon, then hydrogen, then the other elements
//alphabetically. Without carbon, all the elements are sorted alphabetically.
func (F Formula) String() string {
	f := F.copied()
	syms := make([]string, 0, len(f))
	for k := range f {
		syms = append(syms, k)
	}
	_, carbon := f["C"]
	rank := func(s string) int {
		if !carbon {
			return 2
		}
		switch s {
		case "C":
			return 0
		case "H":
			return 1
		}
		return 2
	}
	sort.Slice(syms, func(i, j int) bool {
		ri, rj := rank(syms[i]), rank(syms[j])
		if ri != rj {
			return ri < rj
		}
		return syms[i] < syms[j]
	})
	var b strings.Builder
	for _, s := range syms {
		b.WriteString(s)
		if f[s] != 1 {
			b.WriteString(fmt.Sprint(f[s]))
		}
	}
	return b.String()
}

//ArgsortHydrogenAbstraction returns the order in which reactants and products have to
//be taken so that the first reactant gives a hydrogen to the second one, i.e.
//rct1 = prd1 + H and prd2 = rct2 + H. It returns false if there are not 2 reactants and
//2 products or if no order matches.
func ArgsortHydrogenAbstraction(rcts, prds []Formula) (rctIdx, prdIdx [2]int, ok bool) {
	if len(rcts) != 2 || len(prds) != 2 {
		return rctIdx, prdIdx, false
	}
	perms := [][2]int{{0, 1}, {1, 0}}
	for _, ri := range perms {
		for _, pi := range perms {
			rct1, rct2 := rcts[ri[0]], rcts[ri[1]]
			prd1, prd2 := prds[pi[0]], prds[pi[1]]
			rct2H, _ := rct2.AddHydrogen(1)
			prd1H, _ := prd1.AddHydrogen(1)
			if rct1.Equal(prd1H) && prd2.Equal(rct2H) {
				return ri, pi, true
			}
		}
	}
	return rctIdx, prdIdx, false
}
