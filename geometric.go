/*
 * geometric.go, part of gozmat
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package zmat

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

//Norms of cross products below this are considered zero, i.e.
//the vectors are taken as parallel.
const parallelTol = 1e-7

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//DefaultLinearTol is the default tolerance, in radians, for IsLinear.
const DefaultLinearTol = 2 * Deg2Rad

//UnitNorm returns v normalized to 1. It fails for the zero vector.
func UnitNorm(v r3.Vec) (r3.Vec, error) {
	n := r3.Norm(v)
	if n <= appzero {
		return r3.Vec{}, newError(ErrDegenerate, "UnitNorm", "zero-length vector")
	}
	return r3.Scale(1/n, v), nil
}

//UnitDirection returns the unit vector pointing from a to b.
func UnitDirection(a, b r3.Vec) (r3.Vec, error) {
	u, err := UnitNorm(r3.Sub(b, a))
	return u, errDecorate(err, "UnitDirection")
}

//UnitPerpendicular returns the unit vector perpendicular to a-origin and b-origin.
//If both are (anti)parallel, it returns the zero vector if allowParallel is true,
//and fails otherwise.
func UnitPerpendicular(a, b, origin r3.Vec, allowParallel bool) (r3.Vec, error) {
	c := r3.Cross(r3.Sub(a, origin), r3.Sub(b, origin))
	if r3.Norm(c) > parallelTol {
		u, err := UnitNorm(c)
		return u, errDecorate(err, "UnitPerpendicular")
	}
	if allowParallel {
		return r3.Vec{}, nil
	}
	return r3.Vec{}, newError(ErrDegenerate, "UnitPerpendicular", "parallel vectors have no unique perpendicular")
}

//UnitBisector returns the unit vector bisecting the angle a-origin-b.
func UnitBisector(a, b, origin r3.Vec) (r3.Vec, error) {
	ang, err := CentralAngle(a, origin, b)
	if err != nil {
		return r3.Vec{}, errDecorate(err, "UnitBisector")
	}
	axis, err := UnitPerpendicular(a, b, origin, false)
	if err != nil {
		return r3.Vec{}, errDecorate(err, "UnitBisector")
	}
	rot, err := Rotator(axis, ang/2, origin)
	if err != nil {
		return r3.Vec{}, errDecorate(err, "UnitBisector")
	}
	u, err := UnitNorm(r3.Sub(rot(a), origin))
	return u, errDecorate(err, "UnitBisector")
}

//Distance returns the distance between a and b.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

//CentralAngle returns the angle a-b-c, with b as the vertex, in the [0,pi] range.
func CentralAngle(a, b, c r3.Vec) (float64, error) {
	u21, err := UnitDirection(b, a)
	if err != nil {
		return 0, errDecorate(err, "CentralAngle")
	}
	u23, err := UnitDirection(b, c)
	if err != nil {
		return 0, errDecorate(err, "CentralAngle")
	}
	cos := math.Max(-1, math.Min(1, r3.Dot(u21, u23)))
	return math.Acos(cos), nil
}

//DihedralAngle returns the signed dihedral angle a-b-c-d in radians, in the (-pi, pi] range.
//It is obtained with atan2, so it stays accurate close to 0 and pi.
func DihedralAngle(a, b, c, d r3.Vec) (float64, error) {
	b1, b2, b3 := r3.Sub(b, a), r3.Sub(c, b), r3.Sub(d, c)
	for _, v := range []r3.Vec{b1, b2, b3} {
		if _, err := UnitNorm(v); err != nil {
			return 0, errDecorate(err, "DihedralAngle")
		}
	}
	var zero r3.Vec
	if _, err := UnitPerpendicular(b1, b2, zero, false); err != nil {
		return 0, errDecorate(err, "DihedralAngle")
	}
	if _, err := UnitPerpendicular(b2, b3, zero, false); err != nil {
		return 0, errDecorate(err, "DihedralAngle")
	}
	n1, n2 := r3.Cross(b1, b2), r3.Cross(b2, b3)
	y := r3.Norm(b2) * r3.Dot(b1, n2)
	x := r3.Dot(n1, n2)
	ang := math.Atan2(y, x)
	if ang <= -math.Pi {
		ang = math.Pi
	}
	return ang, nil
}

//Rotator returns a function that rotates points by angle radians around the
//line that goes through origin along axis.
func Rotator(axis r3.Vec, angle float64, origin r3.Vec) (func(r3.Vec) r3.Vec, error) {
	u, err := UnitNorm(axis)
	if err != nil {
		return nil, errDecorate(err, "Rotator")
	}
	rot := r3.NewRotation(angle, u)
	return func(p r3.Vec) r3.Vec {
		return r3.Add(rot.Rotate(r3.Sub(p, origin)), origin)
	}, nil
}

//FromInternals returns the position of a point at distance dist from refA, forming
//the angle ang with refA and refB, and the dihedral dih with refA, refB and refC.
//Angles are in radians.
func FromInternals(dist, ang, dih float64, refA, refB, refC r3.Vec) (r3.Vec, error) {
	x, y, z, err := localAxes(refA, refB, refC)
	if err != nil {
		return r3.Vec{}, errDecorate(err, "FromInternals")
	}
	sa, ca := math.Sincos(ang)
	sd, cd := math.Sincos(dih)
	pos := refA
	pos = r3.Add(pos, r3.Scale(dist*sa*sd, x))
	pos = r3.Add(pos, r3.Scale(dist*sa*cd, y))
	pos = r3.Add(pos, r3.Scale(dist*ca, z))
	return pos, nil
}

//localAxes builds the frame used by FromInternals. The z axis goes from a to b,
//and the y axis lies on the plane of a, b and c.
func localAxes(a, b, c r3.Vec) (x, y, z r3.Vec, err error) {
	var zero r3.Vec
	z, err = UnitDirection(a, b)
	if err != nil {
		return
	}
	u23, err := UnitDirection(b, c)
	if err != nil {
		return
	}
	perp, err := UnitPerpendicular(u23, z, zero, false)
	if err != nil {
		return
	}
	y, err = UnitPerpendicular(z, perp, zero, false)
	if err != nil {
		return
	}
	x, err = UnitPerpendicular(y, z, zero, false)
	return
}

//IsLinear returns true if every three consecutive points form an angle within tol
//radians of 0 or pi. A single point is not linear, two points always are.
func IsLinear(points []r3.Vec, tol float64) bool {
	if len(points) < 2 {
		return false
	}
	for i := 0; i+2 < len(points); i++ {
		ang, err := CentralAngle(points[i], points[i+1], points[i+2])
		if err != nil {
			continue //overlapping points don't break linearity.
		}
		if !(ang < tol || math.Abs(ang-math.Pi) < tol) {
			return false
		}
	}
	return true
}
