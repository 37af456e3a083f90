/*
 * atomicdata.go, part of gozmat
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

import "strings"

//A map for assigning covalent radii to elements
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
//Note that just common elements are present
var symbolCovrad = map[string]float64{
	"H":  0.4, // 0.31 I altered this one. Since H always has only one bond, it doesn't matter if I set a longer radius, the extra bonds will get eliminated later.
	"He": 0.28,
	"Li": 1.28,
	"Be": 0.96,
	"B":  0.84,
	"C":  0.76, //the sp3 radius
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Ne": 0.58,
	"Na": 1.66,
	"Mg": 1.41,
	"Al": 1.21,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"Ar": 1.06,
	"K":  2.03,
	"Ca": 1.76,
	"Se": 1.2,
	"Br": 1.2,
	"I":  1.39,
}

//The maximum number of bonds for each element. Elements not in the map
//are not restricted.
var symbolMaxBonds = map[string]int{
	"H":  1, //this is the only one truly important.
	"C":  4,
	"N":  4,
	"O":  2,
	"F":  1,
	"Cl": 1,
	"Br": 1,
	"I":  1,
}

//Usual (lowest) valence of each element, used to count
//unpaired electrons and pi bonds.
var symbolValence = map[string]int{
	"H":  1,
	"He": 0,
	"Li": 1,
	"Be": 2,
	"B":  3,
	"C":  4,
	"N":  3,
	"O":  2,
	"F":  1,
	"Ne": 0,
	"Na": 1,
	"Mg": 2,
	"Al": 3,
	"Si": 4,
	"P":  3,
	"S":  2,
	"Cl": 1,
	"Ar": 0,
	"K":  1,
	"Ca": 2,
	"Se": 2,
	"Br": 1,
	"I":  1,
}

var symbolZ = map[string]int{
	"H":  1,
	"He": 2,
	"Li": 3,
	"Be": 4,
	"B":  5,
	"C":  6,
	"N":  7,
	"O":  8,
	"F":  9,
	"Ne": 10,
	"Na": 11,
	"Mg": 12,
	"Al": 13,
	"Si": 14,
	"P":  15,
	"S":  16,
	"Cl": 17,
	"Ar": 18,
	"K":  19,
	"Ca": 20,
	"Se": 34,
	"Br": 35,
	"I":  53,
}

//IsDummy returns true if sym is the symbol of a dummy atom.
func IsDummy(sym string) bool {
	return strings.EqualFold(sym, DummySymbol)
}

//AtomicNumber returns the atomic number for the symbol sym, 0 for a dummy atom and
//-1 for an unknown element.
func AtomicNumber(sym string) int {
	if IsDummy(sym) {
		return 0
	}
	z, ok := symbolZ[sym]
	if !ok {
		return -1
	}
	return z
}

//Valence returns the usual valence of the element, and false if it is not known.
func Valence(sym string) (int, bool) {
	v, ok := symbolValence[sym]
	return v, ok
}

//CovalentRadius returns the covalent radius of the element in A, or 0 if not known.
func CovalentRadius(sym string) float64 {
	return symbolCovrad[sym]
}
