/*
 * files.go, part of gozmat
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	v3 "github.com/rmera/gozmat/v3"
)

//String returns the matrix block of the VMatrix, one row per line, with
//one-indexed keys:
//	C
//	O  1  R1
//	H  2  R2  1  A2
func (V *VMatrix) String() string {
	var b strings.Builder
	for i, r := range V.rows {
		line := fmt.Sprintf("%-2s", r.Symbol)
		for j := 0; j < keyCount(i); j++ {
			line += fmt.Sprintf("  %3d  %-6s", r.Keys[j]+1, r.Names[j])
		}
		b.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	return b.String()
}

//String returns the matrix block of the ZMatrix followed by an empty line and
//one "name = value" line per coordinate. Distances are written in A and
//angles in degrees.
func (Z *ZMatrix) String() string {
	var b strings.Builder
	b.WriteString(Z.VMatrix.String())
	b.WriteString("\n")
	dists := make(map[string]bool)
	for _, n := range Z.DistanceNames() {
		dists[n] = true
	}
	for _, name := range Z.Names() {
		v := Z.values[name]
		if dists[name] {
			v *= Bohr2A
		} else {
			v *= Rad2Deg
		}
		b.WriteString(fmt.Sprintf("%-6s = %s\n", name, strconv.FormatFloat(v, 'f', 10, 64)))
	}
	return b.String()
}

//ParseVMatrix reads a matrix block, as written by VMatrix.String.
func ParseVMatrix(s string) (*VMatrix, error) {
	V, err := readMatrixBlock(strings.Split(strings.TrimSpace(s), "\n"))
	return V, errDecorate(err, "ParseVMatrix")
}

func readMatrixBlock(lines []string) (*VMatrix, error) {
	syms := make([]string, 0, len(lines))
	keys := make([][3]int, 0, len(lines))
	names := make([][3]string, 0, len(lines))
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields)%2 != 1 || len(fields) > 7 {
			return nil, newError(ErrWrongFormat, "readMatrixBlock", "line %d: %q", i, line)
		}
		k := emptyKeys()
		var n [3]string
		for j := 0; 2*j+1 < len(fields); j++ {
			key, err := strconv.Atoi(fields[2*j+1])
			if err != nil {
				return nil, newError(ErrWrongFormat, "readMatrixBlock", "line %d: %s", i, err.Error())
			}
			k[j] = key
			n[j] = fields[2*j+2]
		}
		syms = append(syms, fields[0])
		keys = append(keys, k)
		names = append(names, n)
	}
	return FromData(syms, keys, names, true)
}

//ParseZMatrix reads a z-matrix as written by ZMatrix.String. The matrix block and the
//values are separated by at least one empty line. Values are given in A and degrees.
func ParseZMatrix(s string) (*ZMatrix, error) {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	split := len(lines)
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			split = i
			break
		}
	}
	vma, err := readMatrixBlock(lines[:split])
	if err != nil {
		return nil, errDecorate(err, "ParseZMatrix")
	}
	dists := make(map[string]bool)
	for _, n := range vma.DistanceNames() {
		dists[n] = true
	}
	vals := make(map[string]float64)
	for _, l := range lines[split:] {
		if strings.TrimSpace(l) == "" {
			continue
		}
		f := strings.SplitN(l, "=", 2)
		if len(f) != 2 {
			return nil, newError(ErrWrongFormat, "ParseZMatrix", "%q is not a name = value line", l)
		}
		name := strings.TrimSpace(f[0])
		v, err := strconv.ParseFloat(strings.TrimSpace(f[1]), 64)
		if err != nil {
			return nil, newError(ErrWrongFormat, "ParseZMatrix", "value of %s: %s", name, err.Error())
		}
		if dists[name] {
			v *= A2Bohr
		} else {
			v *= Deg2Rad
		}
		vals[name] = v
	}
	Z, err := NewZMatrix(vma, vals)
	return Z, errDecorate(err, "ParseZMatrix")
}

//XYZString returns the atoms with symbols syms and coordinates coord (in bohr) in the XYZ format.
//Coordinates are written in A.
func XYZString(syms []string, coord *v3.Matrix, comment string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-4d\n", len(syms)))
	b.WriteString(strings.ReplaceAll(comment, "\n", " ") + "\n")
	for i, s := range syms {
		c := coord.Vec(i)
		b.WriteString(fmt.Sprintf("%-2s  %12.6f%12.6f%12.6f\n", s, c.X*Bohr2A, c.Y*Bohr2A, c.Z*Bohr2A))
	}
	return b.String()
}

//ParseXYZ reads a molecule in the XYZ format. It returns the symbols and the coordinates, in bohr.
func ParseXYZ(r io.Reader) ([]string, *v3.Matrix, error) {
	xyz := bufio.NewScanner(r)
	if !xyz.Scan() {
		return nil, nil, newError(ErrWrongFormat, "ParseXYZ", "empty input")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(xyz.Text()))
	if err != nil || natoms <= 0 {
		return nil, nil, newError(ErrWrongFormat, "ParseXYZ", "ill formatted XYZ: %q is not a number of atoms", xyz.Text())
	}
	xyz.Scan() //We dont care about the comment line
	syms := make([]string, 0, natoms)
	coords := make([]float64, 0, natoms*3)
	for i := 0; i < natoms; i++ {
		if !xyz.Scan() {
			return nil, nil, newError(ErrWrongFormat, "ParseXYZ", "expected %d atoms, found %d", natoms, i)
		}
		fields := strings.Fields(xyz.Text())
		if len(fields) < 4 {
			return nil, nil, newError(ErrWrongFormat, "ParseXYZ", "line for atom %d ill formed", i)
		}
		syms = append(syms, fields[0])
		for _, f := range fields[1:4] {
			c, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, nil, newError(ErrWrongFormat, "ParseXYZ", "atom %d: %s", i, err.Error())
			}
			coords = append(coords, c*A2Bohr)
		}
	}
	if err := xyz.Err(); err != nil {
		return nil, nil, err
	}
	coord, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, nil, err
	}
	return syms, coord, nil
}
