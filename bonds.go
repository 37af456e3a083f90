/*
 * bonds.go, part of gozmat
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
	"sort"

	v3 "github.com/rmera/gozmat/v3"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

//Bond joins the atoms with keys At1 and At2 (At1<At2).
//Dist is in A.
type Bond struct {
	Index int
	At1   int
	At2   int
	Dist  float64
}

//Cross returns the key of the atom at the other end of the bond from origin.
func (B *Bond) Cross(origin int) int {
	if origin == B.At1 {
		return B.At2
	}
	if origin == B.At2 {
		return B.At1
	}
	panic("Trying to cross a bond: The origin atom given is not present in the bond!") //I think this got to be a programming error, so a panic is warranted.
}

//AssignBonds assigns bonds to the atoms with symbols syms and coordinates coord (in bohr)
//based on a simple distance criterium, similar to that described in DOI:10.1186/1758-2946-3-33.
//Dummy atoms are skipped. The keys in the returned bonds are indexes in syms.
func AssignBonds(syms []string, coord *v3.Matrix) ([]*Bond, error) {
	// might get slow for large systems. It's really not thought
	//for proteins or macromolecules.
	if coord.NVecs() != len(syms) {
		return nil, newError(ErrMalformed, "AssignBonds", "%d symbols but %d coordinates", len(syms), coord.NVecs())
	}
	tot := len(syms)
	bonds := make([]*Bond, 0, tot)
	perAtom := make([][]*Bond, tot)
	var nextIndex int
	for i := 0; i < tot; i++ {
		if IsDummy(syms[i]) {
			continue
		}
		cov1 := symbolCovrad[syms[i]]
		if cov1 == 0 {
			return nil, newError(ErrMalformed, "AssignBonds", "Couldn't find the covalent radii for %s %d", syms[i], i)
		}
		t1 := coord.Vec(i)
		for j := i + 1; j < tot; j++ {
			if IsDummy(syms[j]) {
				continue
			}
			cov2 := symbolCovrad[syms[j]]
			if cov2 == 0 {
				return nil, newError(ErrMalformed, "AssignBonds", "Couldn't find the covalent radii for %s %d", syms[j], j)
			}
			d := Distance(t1, coord.Vec(j)) * Bohr2A
			if d < cov1+cov2+bondtol && d > tooclose {
				b := &Bond{Index: nextIndex, Dist: d, At1: i, At2: j}
				perAtom[i] = append(perAtom[i], b)
				perAtom[j] = append(perAtom[j], b)
				bonds = append(bonds, b)
				nextIndex++
			}
		}
	}

	//Now we check that no atom has too many bonds.
	removed := make(map[int]bool)
	for i := 0; i < tot; i++ {
		max := symbolMaxBonds[syms[i]]
		if max == 0 { //means there is not a specified number of bonds for this atom.
			continue
		}
		alive := make([]*Bond, 0, len(perAtom[i]))
		for _, b := range perAtom[i] {
			if !removed[b.Index] {
				alive = append(alive, b)
			}
		}
		sort.SliceStable(alive, func(i, j int) bool { return alive[i].Dist < alive[j].Dist })
		for _, b := range alive[min(max, len(alive)):] {
			removed[b.Index] = true //we remove the longest bonds
		}
	}
	ret := make([]*Bond, 0, len(bonds))
	for _, b := range bonds {
		if !removed[b.Index] {
			ret = append(ret, b)
		}
	}
	return ret, nil
}
