/*
 * vmatrix.go, part of gozmat
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
	"strings"
)

//CoordKey identifies the atoms a coordinate measures: the key of the row
//that defines it, followed by its reference keys. Distances have 2 keys,
//central angles 3 and dihedrals 4.
type CoordKey []int

func (C CoordKey) String() string {
	s := make([]string, len(C))
	for i, v := range C {
		s[i] = fmt.Sprint(v)
	}
	return "(" + strings.Join(s, ",") + ")"
}

//Equal returns true if both keys contain the same atoms in the same order.
func (C CoordKey) Equal(D CoordKey) bool {
	if len(C) != len(D) {
		return false
	}
	for i := range C {
		if C[i] != D[i] {
			return false
		}
	}
	return true
}

//Row is a z-matrix row: a symbol, up to 3 reference keys and up to 3 coordinate names.
//Absent keys are None, absent names are empty strings.
type Row struct {
	Symbol string
	Keys   [3]int
	Names  [3]string
}

func emptyKeys() [3]int { return [3]int{None, None, None} }

//keyCount is the number of references a row at position i has.
func keyCount(i int) int {
	return min(i, 3)
}

//VMatrix is a variable z-matrix, i.e. a z-matrix without values.
//It is never modified after creation, all the methods that change it
//return a new VMatrix.
type VMatrix struct {
	rows []Row
}

//FromData returns a new VMatrix from the symbols, keys and names given, one row per atom.
//Absent keys must be None and absent names empty. If oneIndexed is true, all
//present keys are taken to start from 1.
func FromData(syms []string, keyMat [][3]int, nameMat [][3]string, oneIndexed bool) (*VMatrix, error) {
	if len(syms) != len(keyMat) || len(syms) != len(nameMat) {
		return nil, newError(ErrMalformed, "FromData", "%d symbols, %d key rows and %d name rows", len(syms), len(keyMat), len(nameMat))
	}
	rows := make([]Row, len(syms))
	for i := range syms {
		rows[i] = Row{Symbol: syms[i], Keys: keyMat[i], Names: nameMat[i]}
		if oneIndexed {
			for j, k := range rows[i].Keys {
				if k != None {
					rows[i].Keys[j] = k - 1
				}
			}
		}
	}
	V, err := newVMatrix(rows)
	return V, errDecorate(err, "FromData")
}

func newVMatrix(rows []Row) (*VMatrix, error) {
	if err := validateRows(rows); err != nil {
		return nil, errDecorate(err, "newVMatrix")
	}
	r := make([]Row, len(rows))
	copy(r, rows)
	return &VMatrix{rows: r}, nil
}

func validateRows(rows []Row) error {
	for i, row := range rows {
		if row.Symbol == "" {
			return newError(ErrMalformed, "validateRows", "row %d has no symbol", i)
		}
		n := keyCount(i)
		for j := 0; j < 3; j++ {
			k, name := row.Keys[j], row.Names[j]
			if j >= n {
				if k != None || name != "" {
					return newError(ErrMalformed, "validateRows", "row %d can only have %d references", i, n)
				}
				continue
			}
			if k == None || name == "" {
				return newError(ErrMalformed, "validateRows", "row %d is missing reference %d", i, j)
			}
			if k < 0 {
				return newError(ErrMalformed, "validateRows", "row %d has the invalid key %d", i, k)
			}
			if k >= i {
				return newError(ErrForwardReference, "validateRows", "row %d references atom %d", i, k)
			}
			for l := 0; l < j; l++ {
				if row.Keys[l] == k {
					return newError(ErrMalformed, "validateRows", "row %d references atom %d twice", i, k)
				}
			}
		}
	}
	return nil
}

//IsValid returns true if the symbols, keys and names form a valid z-matrix.
//Each element of keys and names needs to have exactly 3 elements.
func IsValid(syms []string, keys [][]int, names [][]string) bool {
	if len(syms) != len(keys) || len(syms) != len(names) {
		return false
	}
	k3 := make([][3]int, len(keys))
	n3 := make([][3]string, len(names))
	for i := range keys {
		if len(keys[i]) != 3 || len(names[i]) != 3 {
			return false
		}
		copy(k3[i][:], keys[i])
		copy(n3[i][:], names[i])
	}
	_, err := FromData(syms, k3, n3, false)
	return err == nil
}

//Count returns the number of rows (atoms and dummy atoms) in the matrix.
func (V *VMatrix) Count() int {
	return len(V.rows)
}

//Row returns a copy of the ith row.
func (V *VMatrix) Row(i int) Row {
	return V.rows[i]
}

//Symbols returns the symbols, by row.
func (V *VMatrix) Symbols() []string {
	ret := make([]string, len(V.rows))
	for i, r := range V.rows {
		ret[i] = r.Symbol
	}
	return ret
}

//KeyMatrix returns the reference keys, by row and column. shift is added to
//all the keys present.
func (V *VMatrix) KeyMatrix(shift int) [][3]int {
	ret := make([][3]int, len(V.rows))
	for i, r := range V.rows {
		ret[i] = r.Keys
		for j, k := range r.Keys {
			if k != None {
				ret[i][j] = k + shift
			}
		}
	}
	return ret
}

//NameMatrix returns the coordinate names, by row and column.
func (V *VMatrix) NameMatrix() [][3]string {
	ret := make([][3]string, len(V.rows))
	for i, r := range V.rows {
		ret[i] = r.Names
	}
	return ret
}

//CoordinateKeyMatrix returns the coordinate keys, by row and column. Absent coordinates
//are nil. shift is added to every key.
func (V *VMatrix) CoordinateKeyMatrix(shift int) [][3]CoordKey {
	keys := V.KeyMatrix(shift)
	ret := make([][3]CoordKey, len(keys))
	for i, row := range keys {
		for j := 0; j < keyCount(i); j++ {
			ck := make(CoordKey, 0, j+2)
			ck = append(ck, i+shift)
			ck = append(ck, row[:j+1]...)
			ret[i][j] = ck
		}
	}
	return ret
}

//Coordinates returns, for each coordinate name, the coordinate keys of all the
//coordinates with that name, in row-major order.
func (V *VMatrix) Coordinates(shift int) map[string][]CoordKey {
	ckm := V.CoordinateKeyMatrix(shift)
	ret := make(map[string][]CoordKey)
	for i, r := range V.rows {
		for j, name := range r.Names {
			if name == "" {
				continue
			}
			ret[name] = append(ret[name], ckm[i][j])
		}
	}
	return ret
}

//CoordinateName returns the name of the coordinate with the key ck.
func (V *VMatrix) CoordinateName(ck CoordKey) (string, bool) {
	if len(ck) < 2 || len(ck) > 4 || ck[0] < 0 || ck[0] >= len(V.rows) {
		return "", false
	}
	r := V.rows[ck[0]]
	col := len(ck) - 2
	for j := 0; j <= col; j++ {
		if r.Keys[j] != ck[j+1] {
			return "", false
		}
	}
	return r.Names[col], true
}

//BondCoordinateName returns the name of the distance coordinate between the
//atoms a and b, in either order.
func (V *VMatrix) BondCoordinateName(a, b int) (string, bool) {
	if a < b {
		a, b = b, a
	}
	return V.CoordinateName(CoordKey{a, b})
}

func uniqueNonEmpty(names []string) []string {
	seen := make(map[string]bool, len(names))
	ret := make([]string, 0, len(names))
	for _, v := range names {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		ret = append(ret, v)
	}
	return ret
}

func (V *VMatrix) column(col, from int) []string {
	ret := make([]string, 0, len(V.rows))
	for i := from; i < len(V.rows); i++ {
		ret = append(ret, V.rows[i].Names[col])
	}
	return ret
}

//Names returns all the coordinate names, distances first, then
//central angles, then dihedrals.
func (V *VMatrix) Names() []string {
	all := make([]string, 0, 3*len(V.rows))
	for col := 0; col < 3; col++ {
		all = append(all, V.column(col, 0)...)
	}
	return uniqueNonEmpty(all)
}

//DistanceNames returns the names of the distance coordinates, in order of
//first appearance.
func (V *VMatrix) DistanceNames() []string {
	return uniqueNonEmpty(V.column(0, 1))
}

//CentralAngleNames returns the names of the central angle coordinates.
func (V *VMatrix) CentralAngleNames() []string {
	return uniqueNonEmpty(V.column(1, 2))
}

//DihedralAngleNames returns the names of the dihedral angle coordinates.
func (V *VMatrix) DihedralAngleNames() []string {
	return uniqueNonEmpty(V.column(2, 3))
}

//AngleNames returns the central angle names followed by the dihedral names.
func (V *VMatrix) AngleNames() []string {
	return append(V.CentralAngleNames(), V.DihedralAngleNames()...)
}

//DummyKeys returns the keys of the dummy atoms.
func (V *VMatrix) DummyKeys() []int {
	ret := make([]int, 0, 2)
	for i, r := range V.rows {
		if IsDummy(r.Symbol) {
			ret = append(ret, i)
		}
	}
	return ret
}

//DummyCoordinateNames returns, for each dummy atom and column, the first
//coordinate name found in that column starting from the dummy row.
func (V *VMatrix) DummyCoordinateNames() []string {
	ret := make([]string, 0)
	for _, d := range V.DummyKeys() {
		for col := 0; col < 3; col++ {
			for _, name := range V.column(col, d) {
				if name != "" {
					ret = append(ret, name)
					break
				}
			}
		}
	}
	return uniqueNonEmpty(ret)
}

//SetNames returns a new VMatrix with the coordinates renamed according to
//nameMap (old name to new name). Names not in nameMap are kept.
func (V *VMatrix) SetNames(nameMap map[string]string) (*VMatrix, error) {
	known := make(map[string]bool)
	for _, n := range V.Names() {
		known[n] = true
	}
	for k := range nameMap {
		if !known[k] {
			return nil, newError(ErrUnknownName, "SetNames", "%q", k)
		}
	}
	rows := make([]Row, len(V.rows))
	copy(rows, V.rows)
	for i := range rows {
		for j, name := range rows[i].Names {
			if n, ok := nameMap[name]; ok && name != "" {
				rows[i].Names[j] = n
			}
		}
	}
	W, err := newVMatrix(rows)
	return W, errDecorate(err, "SetNames")
}

//StandardNames returns a map from the current coordinate names to the standard ones.
//Distances are named R<n>, central angles A<n> and dihedrals D<n>, numbered by first
//appearance. shift is added to all the numbers.
func (V *VMatrix) StandardNames(shift int) map[string]string {
	ret := make(map[string]string)
	for n, name := range V.DistanceNames() {
		ret[name] = fmt.Sprintf("R%d", n+shift+1)
	}
	for n, name := range V.CentralAngleNames() {
		ret[name] = fmt.Sprintf("A%d", n+shift+2)
	}
	for n, name := range V.DihedralAngleNames() {
		ret[name] = fmt.Sprintf("D%d", n+shift+3)
	}
	return ret
}

//StandardForm returns a new VMatrix with standard coordinate names.
func (V *VMatrix) StandardForm(shift int) *VMatrix {
	W, err := V.SetNames(V.StandardNames(shift))
	if err != nil {
		panic("StandardForm: standard names not in the matrix. This shouldn't happen: " + err.Error())
	}
	return W
}

//IsStandardForm returns true if the VMatrix already has standard names.
func (V *VMatrix) IsStandardForm() bool {
	return equalStrings(V.Names(), V.StandardForm(0).Names())
}

//SetKeys returns a new VMatrix where the rows in keyMap have the given reference keys.
func (V *VMatrix) SetKeys(keyMap map[int][3]int) (*VMatrix, error) {
	rows := make([]Row, len(V.rows))
	copy(rows, V.rows)
	for i, k := range keyMap {
		if i < 0 || i >= len(rows) {
			return nil, newError(ErrMalformed, "SetKeys", "row %d out of range", i)
		}
		rows[i].Keys = k
	}
	W, err := newVMatrix(rows)
	return W, errDecorate(err, "SetKeys")
}

//Equal returns true if both matrices have the same rows.
func (V *VMatrix) Equal(W *VMatrix) bool {
	if V.Count() != W.Count() {
		return false
	}
	for i := range V.rows {
		if V.rows[i] != W.rows[i] {
			return false
		}
	}
	return true
}

//shiftedRow returns row with all the keys equal or larger than from incremented by by.
func shiftedRow(row Row, from, by int) Row {
	for j, k := range row.Keys {
		if k != None && k >= from {
			row.Keys[j] = k + by
		}
	}
	return row
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
