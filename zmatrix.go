/*
 * zmatrix.go, part of gozmat
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
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"

	v3 "github.com/rmera/gozmat/v3"
)

//The default positions used to place the second and third rows of a z-matrix.
var (
	defaultRefB = r3.Vec{X: 0, Y: 0, Z: 1}
	defaultRefC = r3.Vec{X: 0, Y: 1, Z: 0}
)

//ZMatrix is a VMatrix with a value for each coordinate name. Distances are
//in bohr, angles in radians. Like VMatrix, it is never modified after creation.
type ZMatrix struct {
	*VMatrix
	values map[string]float64
}

//NewZMatrix returns a ZMatrix with the variables of vma and the values given.
//Every name in vma needs a value. Values for names not in vma are ignored.
func NewZMatrix(vma *VMatrix, values map[string]float64) (*ZMatrix, error) {
	vals := make(map[string]float64, len(values))
	for _, name := range vma.Names() {
		v, ok := values[name]
		if !ok {
			return nil, newError(ErrMissingValue, "NewZMatrix", "%q", name)
		}
		vals[name] = v
	}
	return &ZMatrix{VMatrix: vma, values: vals}, nil
}

//ZMatrixFromData builds a ZMatrix from its symbols, keys, names and values. See FromData.
func ZMatrixFromData(syms []string, keyMat [][3]int, nameMat [][3]string, values map[string]float64, oneIndexed bool) (*ZMatrix, error) {
	vma, err := FromData(syms, keyMat, nameMat, oneIndexed)
	if err != nil {
		return nil, errDecorate(err, "ZMatrixFromData")
	}
	Z, err := NewZMatrix(vma, values)
	return Z, errDecorate(err, "ZMatrixFromData")
}

//Var returns the VMatrix of the z-matrix.
func (Z *ZMatrix) Var() *VMatrix {
	return Z.VMatrix
}

//Values returns a copy of the coordinate values.
func (Z *ZMatrix) Values() map[string]float64 {
	ret := make(map[string]float64, len(Z.values))
	for k, v := range Z.values {
		ret[k] = v
	}
	return ret
}

//Value returns the value of the coordinate name, and false if the name is not present.
func (Z *ZMatrix) Value(name string) (float64, bool) {
	v, ok := Z.values[name]
	return v, ok
}

//ValueMatrix returns the values, by row and column. Absent coordinates are 0.
func (Z *ZMatrix) ValueMatrix() [][3]float64 {
	ret := make([][3]float64, Z.Count())
	for i, r := range Z.rows {
		for j, name := range r.Names {
			if name != "" {
				ret[i][j] = Z.values[name]
			}
		}
	}
	return ret
}

//SetValues returns a new ZMatrix with the values in vals replacing the current ones.
func (Z *ZMatrix) SetValues(vals map[string]float64) (*ZMatrix, error) {
	nv := Z.Values()
	for k, v := range vals {
		if _, ok := nv[k]; !ok {
			return nil, newError(ErrUnknownName, "SetValues", "%q", k)
		}
		nv[k] = v
	}
	return &ZMatrix{VMatrix: Z.VMatrix, values: nv}, nil
}

//SetNames returns a new ZMatrix with the coordinates renamed according to nameMap.
//Values follow their coordinates.
func (Z *ZMatrix) SetNames(nameMap map[string]string) (*ZMatrix, error) {
	vma, err := Z.VMatrix.SetNames(nameMap)
	if err != nil {
		return nil, errDecorate(err, "SetNames")
	}
	vals := make(map[string]float64, len(Z.values))
	for old, v := range Z.values {
		name := old
		if n, ok := nameMap[old]; ok {
			name = n
		}
		if _, ok := vals[name]; !ok || name == old {
			vals[name] = v
		}
	}
	W, err := NewZMatrix(vma, vals)
	return W, errDecorate(err, "SetNames")
}

//StandardForm returns a new ZMatrix with standard coordinate names. See VMatrix.StandardNames.
func (Z *ZMatrix) StandardForm(shift int) *ZMatrix {
	W, err := Z.SetNames(Z.StandardNames(shift))
	if err != nil {
		panic("StandardForm: can't set standard names. This shouldn't happen: " + err.Error())
	}
	return W
}

//SetKeys returns a new ZMatrix where the rows in keyMap have the given reference keys.
//Values are kept, so the geometry will usually change.
func (Z *ZMatrix) SetKeys(keyMap map[int][3]int) (*ZMatrix, error) {
	vma, err := Z.VMatrix.SetKeys(keyMap)
	if err != nil {
		return nil, errDecorate(err, "SetKeys")
	}
	return &ZMatrix{VMatrix: vma, values: Z.Values()}, nil
}

//Equal returns true if both z-matrices have the same rows and the same
//values, within tol.
func (Z *ZMatrix) Equal(W *ZMatrix, tol float64) bool {
	if !Z.VMatrix.Equal(W.VMatrix) || len(Z.values) != len(W.values) {
		return false
	}
	for k, v := range Z.values {
		w, ok := W.values[k]
		if !ok || !scalar.EqualWithinAbs(v, w, tol) {
			return false
		}
	}
	return true
}

//Geometry returns the cartesian coordinates, in bohr, of all the rows in the matrix,
//dummy atoms included. The first atom is at the origin and the second along the Z axis.
func (Z *ZMatrix) Geometry() (*v3.Matrix, error) {
	if Z.Count() == 0 {
		return nil, newError(ErrMalformed, "Geometry", "empty z-matrix")
	}
	geo := v3.Zeros(Z.Count())
	for i, row := range Z.rows {
		if i == 0 {
			continue
		}
		var ang, dih float64
		refB, refC := defaultRefB, defaultRefC
		dist := Z.values[row.Names[0]]
		refA := geo.Vec(row.Keys[0])
		if i >= 2 {
			ang = Z.values[row.Names[1]]
			refB = geo.Vec(row.Keys[1])
		}
		if i >= 3 {
			dih = Z.values[row.Names[2]]
			refC = geo.Vec(row.Keys[2])
		}
		p, err := FromInternals(dist, ang, dih, refA, refB, refC)
		if err != nil {
			return nil, newError(ErrDegenerate, "Geometry", "can't place row %d: %s", i, err.Error())
		}
		geo.SetVec(i, p)
	}
	return geo, nil
}

//Join returns a new ZMatrix with the rows of add after those of base. The
//keys of add are shifted by the number of rows in base. joinKeys and joinNames fill, by row,
//the references of the first rows of add that point outside add. Their keys refer to
//base. joinValues has a value for each new name in joinNames.
func Join(base, add *ZMatrix, joinKeys [][3]int, joinNames [][3]string, joinValues map[string]float64) (*ZMatrix, error) {
	n1, n2 := base.Count(), add.Count()
	if len(joinKeys) != len(joinNames) {
		return nil, newError(ErrMalformed, "Join", "%d key rows but %d name rows", len(joinKeys), len(joinNames))
	}
	if len(joinKeys) > n2 {
		return nil, newError(ErrMalformed, "Join", "%d join rows for %d new rows", len(joinKeys), n2)
	}
	rows := make([]Row, 0, n1+n2)
	rows = append(rows, base.rows...)
	for j, r := range add.rows {
		r = shiftedRow(r, 0, n1)
		if j < len(joinKeys) {
			for col := 0; col < 3; col++ {
				k := joinKeys[j][col]
				if k == None {
					continue
				}
				if r.Keys[col] != None {
					return nil, newError(ErrMalformed, "Join", "row %d column %d is already defined", j, col)
				}
				r.Keys[col] = k
				r.Names[col] = joinNames[j][col]
			}
		}
		rows = append(rows, r)
	}
	vma, err := newVMatrix(rows)
	if err != nil {
		return nil, errDecorate(err, "Join")
	}
	vals := base.Values()
	for k, v := range add.values {
		vals[k] = v
	}
	for j := range joinKeys {
		for col, name := range joinNames[j] {
			if joinKeys[j][col] == None || name == "" {
				continue
			}
			v, ok := joinValues[name]
			if !ok {
				return nil, newError(ErrMissingValue, "Join", "%q", name)
			}
			vals[name] = v
		}
	}
	Z, err := NewZMatrix(vma, vals)
	return Z, errDecorate(err, "Join")
}

//InsertDummyAtom returns a new ZMatrix with a dummy atom inserted at row at. All the keys
//in keyRows are given in the numbering after the insertion. keyRows[0] and nameRows[0] define
//the dummy row, and keyRows[j] (j>0) fill the undefined references of row at+j, which
//allows the rows after the dummy to use it as a reference. values has a value for each name in nameRows.
func InsertDummyAtom(zma *ZMatrix, at int, keyRows [][3]int, nameRows [][3]string, values map[string]float64) (*ZMatrix, error) {
	n := zma.Count()
	if at < 0 || at > n {
		return nil, newError(ErrMalformed, "InsertDummyAtom", "can't insert at row %d of %d", at, n)
	}
	if len(keyRows) == 0 || len(keyRows) != len(nameRows) {
		return nil, newError(ErrMalformed, "InsertDummyAtom", "%d key rows and %d name rows", len(keyRows), len(nameRows))
	}
	rows := make([]Row, 0, n+1)
	rows = append(rows, zma.rows[:at]...)
	rows = append(rows, Row{Symbol: DummySymbol, Keys: emptyKeys()})
	for _, r := range zma.rows[at:] {
		rows = append(rows, shiftedRow(r, at, 1))
	}
	for j := range keyRows {
		i := at + j
		if i >= len(rows) {
			return nil, newError(ErrMalformed, "InsertDummyAtom", "template row %d beyond the matrix", j)
		}
		for col := 0; col < 3; col++ {
			k := keyRows[j][col]
			if k == None {
				continue
			}
			if j > 0 && rows[i].Keys[col] != None {
				return nil, newError(ErrMalformed, "InsertDummyAtom", "row %d column %d is already defined", i, col)
			}
			rows[i].Keys[col] = k
			rows[i].Names[col] = nameRows[j][col]
		}
	}
	vma, err := newVMatrix(rows)
	if err != nil {
		return nil, errDecorate(err, "InsertDummyAtom")
	}
	vals := zma.Values()
	for k, v := range values {
		vals[k] = v
	}
	Z, err := NewZMatrix(vma, vals)
	return Z, errDecorate(err, "InsertDummyAtom")
}
