/*
 * fromgeom.go, part of gozmat
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
	"fmt"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	v3 "github.com/rmera/gozmat/v3"
)

//zbuilder holds the state of a Cartesian to z-matrix conversion.
type zbuilder struct {
	syms   []string
	coord  *v3.Matrix
	bonded []map[int]bool //by input index

	rows   []Row
	pos    []r3.Vec
	input  []int //input index of each row, -1 for inserted dummies
	rowOf  []int //row of each input atom
	values map[string]float64
}

//FromGeometry returns a z-matrix, in standard form, for the atoms with symbols syms and
//coordinates coord (bohr). The rows follow the order of the atoms. References are chosen
//following the connectivity, and dummy atoms are inserted where an atom would be
//collinear with its references.
func FromGeometry(syms []string, coord *v3.Matrix) (*ZMatrix, error) {
	Z, _, err := FromGeometryKeys(syms, coord)
	return Z, errDecorate(err, "FromGeometry")
}

//FromGeometryKeys is like FromGeometry, but it also returns the row of each atom in the z-matrix,
//which can differ from the atom's index when dummy atoms are inserted.
func FromGeometryKeys(syms []string, coord *v3.Matrix) (*ZMatrix, []int, error) {
	if len(syms) == 0 {
		return nil, nil, newError(ErrMalformed, "FromGeometryKeys", "no atoms")
	}
	bonds, err := AssignBonds(syms, coord)
	if err != nil {
		return nil, nil, errDecorate(err, "FromGeometryKeys")
	}
	B := &zbuilder{
		syms:   syms,
		coord:  coord,
		bonded: make([]map[int]bool, len(syms)),
		rowOf:  make([]int, len(syms)),
		values: make(map[string]float64),
	}
	for i := range B.bonded {
		B.bonded[i] = make(map[int]bool)
	}
	for _, b := range bonds {
		B.bonded[b.At1][b.At2] = true
		B.bonded[b.At2][b.At1] = true
	}
	for i := range syms {
		if err := B.place(i); err != nil {
			return nil, nil, errDecorate(err, "FromGeometryKeys")
		}
	}
	vma, err := newVMatrix(B.rows)
	if err != nil {
		return nil, nil, errDecorate(err, "FromGeometryKeys")
	}
	Z, err := NewZMatrix(vma, B.values)
	if err != nil {
		return nil, nil, errDecorate(err, "FromGeometryKeys")
	}
	return Z, B.rowOf, nil
}

func (B *zbuilder) realRow(r int) bool {
	return B.input[r] >= 0 && !IsDummy(B.syms[B.input[r]])
}

func (B *zbuilder) rowsBondedTo(in int) []int {
	ret := make([]int, 0, 4)
	if in < 0 {
		return ret
	}
	for r := range B.rows {
		if B.input[r] >= 0 && B.bonded[in][B.input[r]] {
			ret = append(ret, r)
		}
	}
	return ret
}

//byDistance returns the placed rows sorted by their distance to p. If realOnly is true,
//dummy rows are left out.
func (B *zbuilder) byDistance(p r3.Vec, realOnly bool) []int {
	ret := make([]int, 0, len(B.rows))
	for r := range B.rows {
		if realOnly && !B.realRow(r) {
			continue
		}
		ret = append(ret, r)
	}
	sort.SliceStable(ret, func(i, j int) bool {
		return Distance(p, B.pos[ret[i]]) < Distance(p, B.pos[ret[j]])
	})
	return ret
}

func firstNotIn(cands []int, excl ...int) int {
	for _, c := range cands {
		ok := true
		for _, e := range excl {
			if c == e {
				ok = false
				break
			}
		}
		if ok {
			return c
		}
	}
	return None
}

//refA picks the earliest placed real atom bonded to p, or the closest one.
func (B *zbuilder) refA(in int, p r3.Vec) int {
	for _, r := range B.rowsBondedTo(in) {
		if B.realRow(r) {
			return r
		}
	}
	if a := firstNotIn(B.byDistance(p, true)); a != None {
		return a
	}
	return B.byDistance(p, false)[0]
}

func (B *zbuilder) refB(a int) int {
	if b := firstNotIn(B.rowsBondedTo(B.input[a]), a); b != None {
		return b
	}
	return firstNotIn(B.byDistance(B.pos[a], false), a)
}

//refC picks a row that is not collinear with a and b, preferring
//atoms bonded to b, then to a, then the ones closest to b.
func (B *zbuilder) refC(a, b int) int {
	cands := append(B.rowsBondedTo(B.input[b]), B.rowsBondedTo(B.input[a])...)
	cands = append(cands, B.byDistance(B.pos[b], false)...)
	for _, c := range cands {
		if c == a || c == b {
			continue
		}
		if !IsLinear([]r3.Vec{B.pos[a], B.pos[b], B.pos[c]}, DefaultLinearTol) {
			return c
		}
	}
	return None
}

func (B *zbuilder) addRow(in int, sym string, p r3.Vec, keys []int) error {
	r := len(B.rows)
	row := Row{Symbol: sym, Keys: emptyKeys()}
	pts := []r3.Vec{p}
	for j, k := range keys {
		row.Keys[j] = k
		pts = append(pts, B.pos[k])
	}
	var err error
	var v float64
	if len(keys) > 0 {
		row.Names[0] = fmt.Sprintf("R%d", r)
		B.values[row.Names[0]] = Distance(pts[0], pts[1])
	}
	if len(keys) > 1 {
		row.Names[1] = fmt.Sprintf("A%d", r)
		if v, err = CentralAngle(pts[0], pts[1], pts[2]); err != nil {
			return errDecorate(err, "addRow")
		}
		B.values[row.Names[1]] = v
	}
	if len(keys) > 2 {
		row.Names[2] = fmt.Sprintf("D%d", r)
		if v, err = DihedralAngle(pts[0], pts[1], pts[2], pts[3]); err != nil {
			return errDecorate(err, "addRow")
		}
		B.values[row.Names[2]] = v
	}
	B.rows = append(B.rows, row)
	B.pos = append(B.pos, p)
	B.input = append(B.input, in)
	if in >= 0 {
		B.rowOf[in] = r
	}
	return nil
}

//addDummy places a dummy atom 1 A away from a, perpendicular to the a-b line. If c is given,
//the dummy is also perpendicular to the a-b-c plane, and c is its third reference.
func (B *zbuilder) addDummy(a, b, c int, p r3.Vec) (int, error) {
	var perp r3.Vec
	var err error
	keys := []int{a, b}
	if c != None {
		perp, err = UnitPerpendicular(B.pos[b], B.pos[c], B.pos[a], false)
		keys = append(keys, c)
	} else {
		perp, err = anyPerpendicular(r3.Sub(B.pos[b], B.pos[a]))
	}
	if err != nil {
		return None, errDecorate(err, "addDummy")
	}
	x := r3.Add(B.pos[a], r3.Scale(A2Bohr, perp))
	if err := B.addRow(-1, DummySymbol, x, keys); err != nil {
		return None, errDecorate(err, "addDummy")
	}
	return len(B.rows) - 1, nil
}

func anyPerpendicular(v r3.Vec) (r3.Vec, error) {
	for _, t := range []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}} {
		p, err := UnitPerpendicular(v, t, r3.Vec{}, true)
		if err != nil {
			return r3.Vec{}, err
		}
		if r3.Norm(p) > 0 {
			return p, nil
		}
	}
	return r3.Vec{}, newError(ErrDegenerate, "anyPerpendicular", "zero vector")
}

func (B *zbuilder) place(in int) error {
	p := B.coord.Vec(in)
	sym := B.syms[in]
	nrows := len(B.rows)
	if nrows == 0 {
		return B.addRow(in, sym, p, nil)
	}
	a := B.refA(in, p)
	if nrows == 1 {
		return B.addRow(in, sym, p, []int{a})
	}
	b := B.refB(a)
	linear := IsLinear([]r3.Vec{p, B.pos[a], B.pos[b]}, DefaultLinearTol)
	if nrows == 2 {
		if !linear {
			return B.addRow(in, sym, p, []int{a, b})
		}
		x, err := B.addDummy(a, b, None, p)
		if err != nil {
			return errDecorate(err, "place")
		}
		return B.addRow(in, sym, p, []int{a, x, b})
	}
	c := B.refC(a, b)
	if c == None {
		return newError(ErrDegenerate, "place", "no non-collinear reference for atom %d", in)
	}
	if !linear {
		return B.addRow(in, sym, p, []int{a, b, c})
	}
	x, err := B.addDummy(a, b, c, p)
	if err != nil {
		return errDecorate(err, "place")
	}
	return B.addRow(in, sym, p, []int{a, x, b})
}
