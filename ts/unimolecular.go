/*
 * unimolecular.go, part of gozmat
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

package ts

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	zmat "github.com/rmera/gozmat"
	"github.com/rmera/gozmat/chemgraph"
	"github.com/rmera/gozmat/trans"
	v3 "github.com/rmera/gozmat/v3"
)

//migration is the state of a hydrogen migration or elimination for one
//reactant z-matrix.
type migration struct {
	rct  *fragment
	geo  *v3.Matrix
	tra  trans.Transformation
	mig  int //the moving atom
	refs [3]int
}

func singleReactant(rcts []*zmat.ZMatrix) error {
	if len(rcts) != 1 {
		return fmt.Errorf("%w: %d reactants, need 1", ErrNotApplicable, len(rcts))
	}
	return nil
}

//closestMigration canonicalizes the reactant, and picks the transformation with the
//shortest formed bond.
func (B *Builder) closestMigration(class trans.Class, zma *zmat.ZMatrix, prd *side) (*migration, error) {
	rct, err := canonicalize([]*zmat.ZMatrix{zma})
	if err != nil {
		return nil, err
	}
	tras, err := B.transformations(class, rct, prd)
	if err != nil {
		return nil, err
	}
	M := &migration{rct: rct.frags[0]}
	if M.geo, err = M.rct.zma.Geometry(); err != nil {
		return nil, err
	}
	var dist float64
	if M.tra, dist, err = closest(tras, M.geo); err != nil {
		return nil, err
	}
	B.log.Debug("candidate selected", zap.Stringer("class", class), zap.Stringer("transformation", M.tra),
		zap.Float64("distance", dist))
	return M, nil
}

//needsRebuild returns true if the row mig can't be redefined from the references of M
//in the current atom order. If dependents is true, rows after mig that use it as a
//reference also force a rebuild, since mig can move.
func (M *migration) needsRebuild(dependents bool) bool {
	n := min(M.mig, 3)
	for _, r := range M.refs[:n] {
		if r == none || r >= M.mig {
			return true
		}
	}
	if !dependents {
		return false
	}
	keys := M.rct.zma.KeyMatrix(0)
	for i := M.mig + 1; i < len(keys); i++ {
		for _, k := range keys[i] {
			if k == M.mig {
				return true
			}
		}
	}
	return false
}

//redefine returns the reactant z-matrix with the row of the moving atom defined from
//M's references, with the values measured on the reactant geometry. The row gets its own
//coordinate names, as other rows may share the old ones. With nudge, a dihedral close to
//0 or 180 degrees is moved away from there.
func (B *Builder) redefine(M *migration, nudge bool) (*zmat.ZMatrix, error) {
	n := min(M.mig, 3)
	keys := [3]int{none, none, none}
	copy(keys[:n], M.refs[:n])
	names := [3]string{}
	copy(names[:n], []string{"rmig", "amig", "dmig"}[:n])
	keyMat, nameMat := M.rct.zma.KeyMatrix(0), M.rct.zma.NameMatrix()
	keyMat[M.mig], nameMat[M.mig] = keys, names

	vals := M.rct.zma.Values()
	p := M.geo.Vec(M.mig)
	vals[names[0]] = zmat.Distance(p, M.geo.Vec(keys[0]))
	var err error
	if n > 1 {
		if vals[names[1]], err = zmat.CentralAngle(p, M.geo.Vec(keys[0]), M.geo.Vec(keys[1])); err != nil {
			return nil, err
		}
	}
	if n > 2 {
		dih, err := zmat.DihedralAngle(p, M.geo.Vec(keys[0]), M.geo.Vec(keys[1]), M.geo.Vec(keys[2]))
		if err != nil {
			return nil, err
		}
		if nudge && B.flatDihedral(dih) {
			B.log.Debug("nudging flat dihedral", zap.Int("row", M.mig), zap.Float64("value", dih))
			dih -= B.cfg.DihedralNudge * zmat.Deg2Rad
		}
		vals[names[2]] = dih
	}
	return zmat.ZMatrixFromData(M.rct.zma.Symbols(), keyMat, nameMat, vals, false)
}

//completeReferences fills the references of M that the graph couldn't provide with earlier
//rows of the z-matrix. A third reference must not be collinear with the other two.
func (B *Builder) completeReferences(M *migration) {
	tol := B.cfg.linearTol()
	for j := 1; j < min(M.mig, 3); j++ {
		if M.refs[j] != none {
			continue
		}
		for k := 0; k < M.mig; k++ {
			if k == M.refs[0] || k == M.refs[1] || k == M.refs[2] {
				continue
			}
			if j == 2 && (M.refs[0] == none || M.refs[1] == none || M.refs[1] >= M.mig ||
				zmat.IsLinear([]r3.Vec{M.geo.Vec(M.refs[0]), M.geo.Vec(M.refs[1]), M.geo.Vec(k)}, tol)) {
				continue
			}
			B.log.Debug("reference taken from the z-matrix", zap.Int("row", M.mig), zap.Int("position", j), zap.Int("reference", k))
			M.refs[j] = k
			break
		}
	}
}

//flatDihedral returns true if dih is within the configured tolerance of 0, 180 or 360 degrees.
func (B *Builder) flatDihedral(dih float64) bool {
	tol := B.cfg.DihedralTolerance * zmat.Deg2Rad
	a := math.Abs(dih)
	return a < tol || math.Abs(a-math.Pi) < tol || math.Abs(a-2*math.Pi) < tol
}

//migrationHydrogen returns the hydrogen and the acceptor atom of the formed bond.
func migrationHydrogen(syms []string, frm chemgraph.BondKey) (h, a1 int, err error) {
	h, a1 = none, none
	for _, k := range []int{frm[1], frm[0]} {
		if syms[k] == "H" && h == none {
			h = k
		} else {
			a1 = k
		}
	}
	if h == none || a1 == none {
		return none, none, fmt.Errorf("%w: formed bond %v doesn't join a hydrogen to another atom", ErrInvariant, frm)
	}
	return h, a1, nil
}

//migrationReferences picks the atoms that define the migrating hydrogen h from the acceptor a1:
//the next two atoms in the longest chain from a1, or other neighbors when the chain
//goes through h or uses atoms after h.
func migrationReferences(G *chemgraph.Graph, a1, h int) (a2, a3 int) {
	a2, a3 = none, none
	chain := G.LongestChain(a1)
	if len(chain) > 1 {
		a2 = chain[1]
	}
	if len(chain) > 2 {
		a3 = chain[2]
	}
	if a3 == h || a3 == none {
		a3 = none
		for _, k := range G.NeighborKeys(a1) {
			if k != h && k != a2 {
				a3 = k
				break
			}
		}
	}
	if a2 < h && a3 < h {
		return a2, a3
	}
	for _, n := range G.NeighborKeys(a1) {
		if n == h || n > h {
			continue
		}
		for _, m := range G.NeighborKeys(n) {
			if m != a1 && m != h && m < h {
				return n, m
			}
		}
	}
	return a2, a3
}

//MinHydrogenMigrationDistance returns the formed bond, among all the hydrogen migrations that turn
//the reactant into the products, that is shortest in the reactant.
func (B *Builder) MinHydrogenMigrationDistance(rcts, prds []*zmat.ZMatrix) (chemgraph.BondKey, error) {
	return B.minDistance("MinHydrogenMigrationDistance", trans.HydrogenMigration, rcts, prds)
}

//MinEliminationDistance is MinHydrogenMigrationDistance for concerted eliminations.
func (B *Builder) MinEliminationDistance(rcts, prds []*zmat.ZMatrix) (chemgraph.BondKey, error) {
	return B.minDistance("MinEliminationDistance", trans.Elimination, rcts, prds)
}

func (B *Builder) minDistance(caller string, class trans.Class, rcts, prds []*zmat.ZMatrix) (chemgraph.BondKey, error) {
	if err := singleReactant(rcts); err != nil {
		return chemgraph.BondKey{}, fmt.Errorf("ts.%s: %w", caller, err)
	}
	prd, err := canonicalize(prds)
	if err != nil {
		return chemgraph.BondKey{}, fmt.Errorf("ts.%s: %w", caller, err)
	}
	M, err := B.closestMigration(class, rcts[0], prd)
	if err != nil {
		return chemgraph.BondKey{}, fmt.Errorf("ts.%s: %w", caller, err)
	}
	return M.tra.Formed[0], nil
}

//HydrogenMigration builds the transition state for the migration of a hydrogen
//atom within one molecule. The reaction coordinate is the distance between the hydrogen
//and the atom it moves to. If the reactant z-matrix uses the hydrogen to define other atoms,
//it is rebuilt in a different atom order, up to the configured number of attempts.
func (B *Builder) HydrogenMigration(rcts, prds []*zmat.ZMatrix) (*Result, error) {
	if err := singleReactant(rcts); err != nil {
		return nil, fmt.Errorf("ts.HydrogenMigration: %w", err)
	}
	prd, err := canonicalize(prds)
	if err != nil {
		return nil, fmt.Errorf("ts.HydrogenMigration: %w", err)
	}
	zma := rcts[0]
	var M *migration
	var a1 int
	attempt := 1
	for ; ; attempt++ {
		if M, err = B.closestMigration(trans.HydrogenMigration, zma, prd); err != nil {
			return nil, fmt.Errorf("ts.HydrogenMigration: %w", err)
		}
		if M.mig, a1, err = migrationHydrogen(M.rct.zma.Symbols(), M.tra.Formed[0]); err != nil {
			return nil, fmt.Errorf("ts.HydrogenMigration: %w", err)
		}
		a2, a3 := migrationReferences(M.rct.graph, a1, M.mig)
		M.refs = [3]int{a1, a2, a3}
		if !M.needsRebuild(true) {
			break
		}
		if attempt >= B.cfg.MaxRebuildAttempts {
			return nil, fmt.Errorf("ts.HydrogenMigration: %w: hydrogen %d still can't be defined from %v after %d attempts",
				ErrRebuildExhausted, M.mig, M.refs, attempt)
		}
		B.log.Debug("rebuilding reactant", zap.Int("attempt", attempt), zap.Int("hydrogen", M.mig), zap.Int("acceptor", a1))
		if zma, err = B.reorder(M.rct.zma, a1, M.mig); err != nil {
			return nil, fmt.Errorf("ts.HydrogenMigration: %w", err)
		}
	}
	Z, err := B.redefine(M, true)
	if err != nil {
		return nil, fmt.Errorf("ts.HydrogenMigration: %w", err)
	}
	Z = Z.StandardForm(0)
	R := &Result{
		ZMatrix:    Z,
		FormedKeys: trans.FormedBondKeys(M.tra),
		BrokenKeys: trans.BrokenBondKeys(M.tra),
		Attempts:   attempt,
	}
	R.DistName, _ = Z.BondCoordinateName(M.mig, a1)
	if R.TorsionNames, err = tsTorsions(Z, M.mig, a1); err != nil {
		return nil, fmt.Errorf("ts.HydrogenMigration: %w", err)
	}
	return R, nil
}

//tsTorsions returns the torsions of the transition state Z that keep k1 and k2 on the same side.
func tsTorsions(Z *zmat.ZMatrix, k1, k2 int) ([]string, error) {
	G, err := chemgraph.FromZMatrix(Z)
	if err != nil {
		return nil, err
	}
	return softTorsions(Z, G, G.TorsionCoordinateNames(Z.Var()), k1, k2), nil
}

//ConcertedElimination builds the transition state for a concerted unimolecular elimination, where
//an atom moves to form a bond while two bonds break. DistName is the forming bond, and
//BreakDistName the broken bond that doesn't involve the moving atom.
func (B *Builder) ConcertedElimination(rcts, prds []*zmat.ZMatrix) (*Result, error) {
	if err := singleReactant(rcts); err != nil {
		return nil, fmt.Errorf("ts.ConcertedElimination: %w", err)
	}
	prd, err := canonicalize(prds)
	if err != nil {
		return nil, fmt.Errorf("ts.ConcertedElimination: %w", err)
	}
	zma := rcts[0]
	var M *migration
	var a1 int
	attempt := 1
	for ; ; attempt++ {
		if M, err = B.closestMigration(trans.Elimination, zma, prd); err != nil {
			return nil, fmt.Errorf("ts.ConcertedElimination: %w", err)
		}
		if M.mig, a1, err = eliminationAtoms(M.tra); err != nil {
			return nil, fmt.Errorf("ts.ConcertedElimination: %w", err)
		}
		a2, a3 := eliminationReferences(M.rct.graph, a1, M.mig)
		M.refs = [3]int{a1, a2, a3}
		B.completeReferences(M)
		if !M.needsRebuild(false) {
			break
		}
		if attempt >= B.cfg.MaxRebuildAttempts {
			return nil, fmt.Errorf("ts.ConcertedElimination: %w: atom %d still can't be defined from %v after %d attempts",
				ErrRebuildExhausted, M.mig, M.refs, attempt)
		}
		B.log.Debug("rebuilding reactant", zap.Int("attempt", attempt), zap.Int("moving", M.mig), zap.Int("acceptor", a1))
		if zma, err = B.reorder(M.rct.zma, a1, M.mig); err != nil {
			return nil, fmt.Errorf("ts.ConcertedElimination: %w", err)
		}
	}
	Z, err := B.redefine(M, false)
	if err != nil {
		return nil, fmt.Errorf("ts.ConcertedElimination: %w", err)
	}
	Z = Z.StandardForm(0)
	R := &Result{
		ZMatrix:    Z,
		FormedKeys: trans.FormedBondKeys(M.tra),
		BrokenKeys: trans.BrokenBondKeys(M.tra),
		Attempts:   attempt,
	}
	R.DistName, _ = Z.BondCoordinateName(M.mig, a1)
	frm := M.tra.Formed[0]
	for _, b := range M.tra.Broken {
		if !b.Contains(frm[0]) && !b.Contains(frm[1]) {
			R.BreakDistName, _ = Z.BondCoordinateName(b[0], b[1])
		}
	}
	if R.BreakDistName == "" {
		for _, b := range M.tra.Broken {
			if name, ok := Z.BondCoordinateName(b[0], b[1]); ok {
				R.BreakDistName = name
				break
			}
		}
	}
	if R.TorsionNames, err = tsTorsions(Z, M.mig, a1); err != nil {
		return nil, fmt.Errorf("ts.ConcertedElimination: %w", err)
	}
	return R, nil
}

//eliminationAtoms returns the moving atom, shared by the formed bond and a broken
//one, and the atom it bonds to.
func eliminationAtoms(tra trans.Transformation) (mig, a1 int, err error) {
	if len(tra.Formed) != 1 || len(tra.Broken) != 2 {
		return none, none, fmt.Errorf("%w: elimination needs 1 formed and 2 broken bonds, got %v", ErrInvariant, tra)
	}
	frm := tra.Formed[0]
	mig = none
	for _, b := range tra.Broken {
		for _, k := range frm {
			if b.Contains(k) {
				mig = k
			}
		}
	}
	if mig == none {
		return none, none, fmt.Errorf("%w: no broken bond shares an atom with %v", ErrInvariant, frm)
	}
	return mig, frm.Other(mig), nil
}

//eliminationReferences picks a neighbor of a1 with other neighbors, and one of its neighbors.
//The moving atom is never used.
func eliminationReferences(G *chemgraph.Graph, a1, mig int) (a2, a3 int) {
	a2, a3 = none, none
	for _, k := range G.NeighborKeys(a1) {
		if k != mig && G.Degree(k) > 1 {
			a2 = k
			break
		}
	}
	if a2 == none {
		return
	}
	for _, k := range G.NeighborKeys(a2) {
		if k != mig && k != a1 {
			a3 = k
			break
		}
	}
	return
}

//BetaScission builds the transition state for the breaking of one bond in a molecule. The
//reactant z-matrix is used as it is, and DistName is the name of the distance
//of the breaking bond.
func (B *Builder) BetaScission(rcts, prds []*zmat.ZMatrix) (*Result, error) {
	if err := singleReactant(rcts); err != nil {
		return nil, fmt.Errorf("ts.BetaScission: %w", err)
	}
	rct, err := canonicalize(rcts)
	if err != nil {
		return nil, fmt.Errorf("ts.BetaScission: %w", err)
	}
	prd, err := canonicalize(prds)
	if err != nil {
		return nil, fmt.Errorf("ts.BetaScission: %w", err)
	}
	tras, err := B.transformations(trans.BetaScission, rct, prd)
	if err != nil {
		return nil, fmt.Errorf("ts.BetaScission: %w", err)
	}
	tra := tras[0]
	if len(tra.Broken) != 1 {
		return nil, fmt.Errorf("ts.BetaScission: %w: expected one broken bond, got %v", ErrInvariant, tra)
	}
	Z := rct.frags[0].zma
	brk := tra.Broken[0]
	name, ok := Z.BondCoordinateName(brk[0], brk[1])
	if !ok {
		return nil, fmt.Errorf("ts.BetaScission: %w: the z-matrix has no distance for bond %v", zmat.ErrUnknownName, brk)
	}
	return &Result{
		ZMatrix:      Z,
		DistName:     name,
		BrokenKeys:   trans.BrokenBondKeys(tra),
		TorsionNames: rct.frags[0].graph.TorsionCoordinateNames(Z.Var()),
		Attempts:     1,
	}, nil
}
