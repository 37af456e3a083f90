/*
 * gonum.go, part of gozmat
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

//gonum.go contains the Matrix type and what is needed to go back and forth between
//it and the gonum types (mat.Dense and r3.Vec).

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//Matrix is a set of vectors in 3D space.
//Within the package it is understood that a "vector" is a row vector, i.e. the
//cartesian coordinates of a point in 3D space. The name of some functions in
//the library reflect this.
type Matrix struct {
	*mat.Dense
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d: %d", l, cols, l%cols), []string{"NewMatrix"}}
	}
	if rows == 0 {
		return nil, Error{"Empty input slice", []string{"NewMatrix"}}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//FromVecs returns a Matrix with one row per vector in vecs.
//It panics if vecs is empty.
func FromVecs(vecs []r3.Vec) *Matrix {
	if len(vecs) == 0 {
		panic(ErrNotEnoughElements)
	}
	data := make([]float64, 0, 3*len(vecs))
	for _, v := range vecs {
		data = append(data, v.X, v.Y, v.Z)
	}
	return &Matrix{mat.NewDense(len(vecs), 3, data)}
}

//Vec returns the ith vector of the matrix as an r3.Vec.
func (F *Matrix) Vec(i int) r3.Vec {
	if i < 0 || i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	return r3.Vec{X: F.At(i, 0), Y: F.At(i, 1), Z: F.At(i, 2)}
}

//SetVec copies v into the ith vector of the receiver.
func (F *Matrix) SetVec(i int, v r3.Vec) {
	if i < 0 || i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	F.Set(i, 0, v.X)
	F.Set(i, 1, v.Y)
	F.Set(i, 2, v.Z)
}

//Vecs returns all the vectors in the matrix as a slice of r3.Vec.
func (F *Matrix) Vecs() []r3.Vec {
	n := F.NVecs()
	ret := make([]r3.Vec, n)
	for i := range ret {
		ret[i] = F.Vec(i)
	}
	return ret
}

type Error struct {
	message string
	deco    []string
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return err.message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix      = PanicMsg("gozmat/v3: A VecMatrix should have 3 columns")
	ErrNotEnoughElements = PanicMsg("gozmat/v3: not enough elements in Matrix")
	ErrShape             = PanicMsg("gozmat/v3: Dimension mismatch")
	ErrIndexOutOfRange   = PanicMsg("gozmat/v3: index out of range")
)
