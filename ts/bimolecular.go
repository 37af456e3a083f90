/*
 * bimolecular.go, part of gozmat
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

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	zmat "github.com/rmera/gozmat"
	"github.com/rmera/gozmat/chemgraph"
	"github.com/rmera/gozmat/formula"
	"github.com/rmera/gozmat/trans"
)

//Names of the coordinates that join the second reactant to the first. They are
//replaced by standard names in the final z-matrix.
const (
	rtsName   = "rts"
	aabs1Name = "aabs1"
	aabs2Name = "aabs2"
	babs1Name = "babs1"
	babs2Name = "babs2"
	babs3Name = "babs3"
)

//anchor is the first reactant with the atoms the second reactant is attached to.
//a1 is the attacked atom. rowOf maps the rows of the canonical reactant to the rows of zma,
//which differ if the reactant had to be rebuilt.
type anchor struct {
	zma        *zmat.ZMatrix
	graph      *chemgraph.Graph
	rowOf      []int
	a1, a2, a3 int
	attempts   int
}

func identity(n int) []int {
	ret := make([]int, n)
	for i := range ret {
		ret[i] = i
	}
	return ret
}

//joinAtomKeys follows the longest chain from a1 to pick the two other atoms that define
//the position of an attacking atom.
func joinAtomKeys(G *chemgraph.Graph, a1 int) (a2, a3 int) {
	chain := G.LongestChain(a1)
	switch {
	case len(chain) <= 1:
		return none, none
	case len(chain) == 2:
		a2, a3 = chain[1], none
		for _, k := range G.NeighborKeys(a1) {
			if k != a2 {
				a3 = k
				break
			}
		}
		return a2, a3
	default:
		return chain[1], chain[2]
	}
}

//additionAtomKeys prefers an unsaturated neighbor of a1 as the second atom.
func additionAtomKeys(G *chemgraph.Graph, a1 int) (a2, a3 int) {
	a2, a3 = none, none
	nbrs := G.NeighborKeys(a1)
	unsat := keySet(G.UnsaturatedAtomKeys())
	for _, k := range nbrs {
		if unsat[k] {
			a2 = k
			break
		}
	}
	if a2 == none && len(nbrs) > 0 {
		a2 = nbrs[0]
	}
	if a2 == none {
		return
	}
	for _, k := range nbrs {
		if k != a2 {
			return a2, k
		}
	}
	for _, k := range G.NeighborKeys(a2) {
		if k != a1 {
			return a2, k
		}
	}
	return
}

//nonLinearThird looks for a row of zma that is not collinear with a1 and a2. It tries first
//the rows next to a2 and a1 in the z-matrix, dummy atoms included, then every row.
//It returns None if there is no such row.
func nonLinearThird(zma *zmat.ZMatrix, a1, a2 int, tol float64) (int, error) {
	geo, err := zma.Geometry()
	if err != nil {
		return none, err
	}
	keys := zma.KeyMatrix(0)
	cands := make([]int, 0, 2*len(keys))
	for _, a := range []int{a2, a1} {
		if keys[a][0] != none {
			cands = append(cands, keys[a][0])
		}
		for i, k := range keys {
			if k[0] == a {
				cands = append(cands, i)
			}
		}
	}
	cands = append(cands, identity(len(keys))...)
	p1, p2 := geo.Vec(a1), geo.Vec(a2)
	for _, c := range cands {
		if c == a1 || c == a2 {
			continue
		}
		if !zmat.IsLinear([]r3.Vec{p1, p2, geo.Vec(c)}, tol) {
			return c, nil
		}
	}
	return none, nil
}

//anchor picks the atoms of the first reactant F used to attach the second reactant to a1.
//If the picked atoms are collinear, another atom is searched for and, if there is none,
//the reactant is rebuilt, which adds dummy atoms where atoms are collinear.
func (B *Builder) anchor(F *fragment, a1 int, refs func(*chemgraph.Graph, int) (int, int)) (*anchor, error) {
	A := &anchor{zma: F.zma, graph: F.graph, rowOf: identity(F.zma.Count()), a1: a1, attempts: 1}
	A.a2, A.a3 = refs(F.graph, a1)
	if A.a2 == none {
		return A, nil
	}
	tol := B.cfg.linearTol()
	if A.a3 != none {
		geo, err := A.zma.Geometry()
		if err != nil {
			return nil, err
		}
		if !zmat.IsLinear([]r3.Vec{geo.Vec(A.a1), geo.Vec(A.a2), geo.Vec(A.a3)}, tol) {
			return A, nil
		}
	}
	c, err := nonLinearThird(A.zma, A.a1, A.a2, tol)
	if err != nil {
		return nil, err
	}
	if c != none || A.zma.Count() <= 2 {
		A.a3 = c
		return A, nil
	}
	B.log.Debug("rebuilding first reactant with dummy atoms", zap.Int("a1", A.a1), zap.Int("a2", A.a2))
	Z, rowOf, err := fromOrder(A.zma, identity(A.zma.Count()))
	if err != nil {
		return nil, err
	}
	G, err := chemgraph.FromZMatrix(Z)
	if err != nil {
		return nil, err
	}
	A.zma, A.graph, A.rowOf, A.attempts = Z, G, rowOf, 2
	A.a1, A.a2 = rowOf[A.a1], rowOf[A.a2]
	if c, err = nonLinearThird(A.zma, A.a1, A.a2, tol); err != nil {
		return nil, err
	}
	if c == none {
		return nil, fmt.Errorf("%w: no atom defines a plane with atoms %d and %d", zmat.ErrDegenerate, A.a1, A.a2)
	}
	A.a3 = c
	return A, nil
}

//joinDummy returns the z-matrix of A with a dummy atom added at the end. The dummy atom is
//bonded to a1, perpendicular to the a1-a2 axis.
func (B *Builder) joinDummy(A *anchor) (*zmat.ZMatrix, error) {
	n := A.zma.Count()
	keys := [3]int{A.a1, A.a2, A.a3}
	names := [3]string{"rx", "ax", "dx"}
	for j := range keys {
		if j >= min(n, 3) || keys[j] == none {
			keys[j], names[j] = none, ""
		}
	}
	r, a, d := B.cfg.dummyValues()
	X, err := zmat.ZMatrixFromData([]string{zmat.DummySymbol}, [][3]int{{none, none, none}}, [][3]string{{}}, nil, false)
	if err != nil {
		return nil, err
	}
	B.log.Debug("adding dummy atom", zap.Int("row", n), zap.Ints("keys", keys[:]))
	return zmat.Join(A.zma, X, [][3]int{keys}, [][3]string{names}, map[string]float64{"rx": r, "ax": a, "dx": d})
}

//joinTemplate cuts the template rows to the n rows of the added z-matrix that exist, and
//removes the references that the row, at position start+j, can't have.
func joinTemplate(start, n int, keys [][3]int, names [][3]string) ([][3]int, [][3]string) {
	n = min(n, len(keys))
	k := make([][3]int, n)
	nm := make([][3]string, n)
	for j := 0; j < n; j++ {
		for col := 0; col < 3; col++ {
			if keys[j][col] == none || col >= min(start+j, 3) {
				k[j][col] = none
				continue
			}
			k[j][col] = keys[j][col]
			nm[j][col] = names[j][col]
		}
	}
	return k, nm
}

//joint collects what is needed to join the second reactant to the first one.
type joint struct {
	anc   *anchor
	rct2  *fragment
	n1    int //rows of the first reactant before any rebuild
	tra   trans.Transformation
	dummy bool //join through a dummy atom bonded to a1
	sigma bool //the second reactant gets a dummy atom at row 1
	//babs2 is always a torsion, otherwise only if the first reactant is not linear.
	alwaysBabs2 bool
}

//includeBabs3 is true if the second reactant has more than 2 atoms and its attacking atom,
//at row 0, is terminal.
func includeBabs3(G *chemgraph.Graph) bool {
	return G.Count() > 2 && G.Degree(0) == 1
}

//assemble joins the reactants of J into the transition state z-matrix.
func (B *Builder) assemble(J *joint) (*Result, error) {
	A := J.anc
	base := A.zma
	x := none
	var err error
	if J.dummy {
		if base, err = B.joinDummy(A); err != nil {
			return nil, err
		}
		x = A.zma.Count()
	}
	start := base.Count()
	add := J.rct2.zma.StandardForm(A.zma.Count())
	tors := A.graph.TorsionCoordinateNames(A.zma.Var())
	tors = append(tors, J.rct2.graph.TorsionCoordinateNames(add.Var())...)
	r, a, d := B.cfg.dummyValues()
	deg := zmat.Deg2Rad
	vals := map[string]float64{
		rtsName:   B.cfg.JoinDistance,
		aabs1Name: B.cfg.JoinAngle * deg,
		aabs2Name: B.cfg.JoinAngle * deg,
		babs1Name: B.cfg.JoinLinearAngle * deg,
		babs2Name: B.cfg.JoinAngle * deg,
		babs3Name: B.cfg.JoinAngle * deg,
	}
	if J.sigma {
		vals[babs3Name] = B.cfg.JoinLinearAngle * deg
		B.log.Debug("adding dummy atom to the second reactant", zap.Int("row", 1))
		add, err = zmat.InsertDummyAtom(add, 1,
			[][3]int{{0, none, none}, {none, 1, none}, {none, none, 1}}[:min(add.Count(), 3)],
			[][3]string{{"rx2", "", ""}, {"", "ax2", ""}, {"", "", "dx2"}}[:min(add.Count(), 3)],
			map[string]float64{"rx2": r, "ax2": a, "dx2": d})
		if err != nil {
			return nil, err
		}
	}
	names := [][3]string{
		{rtsName, aabs1Name, babs1Name},
		{"", aabs2Name, babs2Name},
		{"", "", babs3Name},
	}
	var keys [][3]int
	if J.dummy {
		keys = [][3]int{{A.a1, x, A.a2}, {none, A.a1, x}, {none, none, A.a1}}
	} else {
		keys = [][3]int{{A.a1, A.a2, A.a3}, {none, A.a1, A.a2}, {none, none, A.a1}}
		for _, n := range []string{aabs1Name, aabs2Name, babs1Name, babs2Name, babs3Name} {
			vals[n] = B.cfg.AdditionAngle * deg
		}
	}
	jk, jn := joinTemplate(start, add.Count(), keys, names)
	ts, err := zmat.Join(base, add, jk, jn, vals)
	if err != nil {
		return nil, err
	}
	std := ts.StandardNames(0)
	R := &Result{ZMatrix: ts.StandardForm(0), DistName: std[rtsName], Attempts: A.attempts}
	R.TorsionNames = make([]string, 0, len(tors)+2)
	for _, t := range tors {
		R.TorsionNames = append(R.TorsionNames, std[t])
	}
	if n, ok := std[babs2Name]; ok {
		lin, err := isLinearMolecule(A.zma, B.cfg.linearTol())
		if err != nil {
			return nil, err
		}
		if J.alwaysBabs2 || !lin {
			R.TorsionNames = append(R.TorsionNames, n)
		}
	}
	if n, ok := std[babs3Name]; ok && includeBabs3(J.rct2.graph) {
		R.TorsionNames = append(R.TorsionNames, n)
	}
	row := func(k int) int {
		if k < J.n1 {
			return A.rowOf[k]
		}
		k -= J.n1
		if J.sigma && k >= 1 {
			k++
		}
		return k + start
	}
	R.FormedKeys = mapBondKeys(J.tra.Formed, row)
	R.BrokenKeys = mapBondKeys(J.tra.Broken, row)
	return R, nil
}

func mapBondKeys(bonds []chemgraph.BondKey, row func(int) int) []chemgraph.BondKey {
	ret := make([]chemgraph.BondKey, 0, len(bonds))
	for _, b := range bonds {
		ret = append(ret, chemgraph.NewBondKey(row(b[0]), row(b[1])))
	}
	return ret
}

func pairOfReactants(rcts []*zmat.ZMatrix) ([2]*zmat.ZMatrix, error) {
	if len(rcts) != 2 {
		return [2]*zmat.ZMatrix{}, fmt.Errorf("%w: %d reactants, need 2", ErrNotApplicable, len(rcts))
	}
	return [2]*zmat.ZMatrix{rcts[0], rcts[1]}, nil
}

//Addition builds the transition state for the addition of the second reactant to an
//unsaturated atom of the first one. The larger reactant goes first. The attacking atom is placed
//at the configured join distance, with no dummy atoms unless the first reactant is linear.
func (B *Builder) Addition(rcts, prds []*zmat.ZMatrix) (*Result, error) {
	zs, err := pairOfReactants(rcts)
	if err != nil {
		return nil, fmt.Errorf("ts.Addition: %w", err)
	}
	n1, n2 := zs[0].Count(), zs[1].Count()
	if n1 == 1 && n2 == 1 {
		return nil, fmt.Errorf("ts.Addition: %w: two single atoms", ErrNotApplicable)
	}
	if n1 == 1 || n1 < n2 {
		zs[0], zs[1] = zs[1], zs[0]
	}
	var rct *side
	var tra trans.Transformation
	for pass := 0; ; pass++ {
		var x int
		if rct, tra, x, err = B.bimolecular(trans.Addition, zs, prds); err != nil {
			return nil, fmt.Errorf("ts.Addition: %w", err)
		}
		if len(tra.Formed) != 1 || len(tra.Broken) != 0 {
			return nil, fmt.Errorf("ts.Addition: %w: an addition forms one bond, got %v", ErrInvariant, tra)
		}
		if x = tra.Formed[0][1] - x; x == 0 {
			break
		}
		if pass > 0 || x < 0 {
			return nil, fmt.Errorf("ts.Addition: %w: attacking atom %d is not the first of its reactant", ErrInvariant, x)
		}
		if zs[1], err = reorderFirst(zs[1], x); err != nil {
			return nil, fmt.Errorf("ts.Addition: %w", err)
		}
	}
	A, err := B.anchor(rct.frags[0], tra.Formed[0][0], additionAtomKeys)
	if err != nil {
		return nil, fmt.Errorf("ts.Addition: %w", err)
	}
	R, err := B.assemble(&joint{anc: A, rct2: rct.frags[1], n1: rct.frags[1].shift, tra: tra, alwaysBabs2: true})
	if err != nil {
		return nil, fmt.Errorf("ts.Addition: %w", err)
	}
	return R, nil
}

//bimolecular canonicalizes the reactants and products and returns the first transformation
//of the class, with the number of rows in the first reactant.
func (B *Builder) bimolecular(class trans.Class, zs [2]*zmat.ZMatrix, prds []*zmat.ZMatrix) (*side, trans.Transformation, int, error) {
	rct, err := canonicalize(zs[:])
	if err != nil {
		return nil, trans.Transformation{}, 0, err
	}
	prd, err := canonicalize(prds)
	if err != nil {
		return nil, trans.Transformation{}, 0, err
	}
	tras, err := B.transformations(class, rct, prd)
	if err != nil {
		return nil, trans.Transformation{}, 0, err
	}
	return rct, tras[0], rct.frags[1].shift, nil
}

//Insertion builds the transition state for the insertion of an atom of one reactant into a bond
//of the other. The reactant with the broken bond goes first, and the inserting atom is moved
//to the first row of the second reactant.
func (B *Builder) Insertion(rcts, prds []*zmat.ZMatrix) (*Result, error) {
	zs, err := pairOfReactants(rcts)
	if err != nil {
		return nil, fmt.Errorf("ts.Insertion: %w", err)
	}
	var rct *side
	var tra trans.Transformation
	var n1, x int
	for pass := 0; ; pass++ {
		if pass > 2 {
			return nil, fmt.Errorf("ts.Insertion: %w: can't put the inserting atom first", ErrInvariant)
		}
		if rct, tra, n1, err = B.bimolecular(trans.Insertion, zs, prds); err != nil {
			return nil, fmt.Errorf("ts.Insertion: %w", err)
		}
		if len(tra.Formed) != 2 || len(tra.Broken) != 1 {
			return nil, fmt.Errorf("ts.Insertion: %w: an insertion forms 2 bonds and breaks one, got %v", ErrInvariant, tra)
		}
		brk := tra.Broken[0]
		if brk[0] >= n1 {
			zs[0], zs[1] = zs[1], zs[0]
			continue
		}
		x = tra.Formed[0].Other(brk[0])
		if x == none {
			x = tra.Formed[0].Other(brk[1])
		}
		if x < n1 {
			return nil, fmt.Errorf("ts.Insertion: %w: inserting atom %d is in the first reactant", ErrInvariant, x)
		}
		if x == n1 {
			break
		}
		if zs[1], err = reorderFirst(zs[1], x-n1); err != nil {
			return nil, fmt.Errorf("ts.Insertion: %w", err)
		}
	}
	A, err := B.anchor(rct.frags[0], tra.Formed[0].Other(x), joinAtomKeys)
	if err != nil {
		return nil, fmt.Errorf("ts.Insertion: %w", err)
	}
	R, err := B.assemble(&joint{anc: A, rct2: rct.frags[1], n1: n1, tra: tra, dummy: true})
	if err != nil {
		return nil, fmt.Errorf("ts.Insertion: %w", err)
	}
	return R, nil
}

//radicalKeys returns the radical atoms of zma. Carbon monoxide is not taken as a radical.
func radicalKeys(zma *zmat.ZMatrix) ([]int, error) {
	G, err := chemgraph.FromZMatrix(zma)
	if err != nil {
		return nil, err
	}
	if formula.FromSymbols(zma.Symbols()).String() == "CO" {
		return nil, nil
	}
	return G.RadicalAtomKeys(), nil
}

//radicalFirst returns zma, rebuilt if needed so that its first atom is a radical atom.
//Molecules without radical atoms are returned unchanged.
func radicalFirst(zma *zmat.ZMatrix) (*zmat.ZMatrix, error) {
	keys, err := radicalKeys(zma)
	if err != nil || len(keys) == 0 || keys[0] == 0 {
		return zma, err
	}
	Z, err := reorderFirst(zma, keys[0])
	if err != nil {
		return nil, err
	}
	if keys, err = radicalKeys(Z); err != nil {
		return nil, err
	}
	if len(keys) == 0 || keys[0] != 0 {
		return nil, fmt.Errorf("%w: radical atom not first after reordering", ErrInvariant)
	}
	return Z, nil
}

//Substitution builds the transition state for the attack of a radical on a molecule, which
//loses a group. The radical goes second, with its radical atom first.
func (B *Builder) Substitution(rcts, prds []*zmat.ZMatrix) (*Result, error) {
	zs, err := pairOfReactants(rcts)
	if err != nil {
		return nil, fmt.Errorf("ts.Substitution: %w", err)
	}
	var rad [2]bool
	for i, z := range zs {
		keys, err := radicalKeys(z)
		if err != nil {
			return nil, fmt.Errorf("ts.Substitution: %w", err)
		}
		rad[i] = len(keys) > 0
	}
	if rad[0] == rad[1] {
		return nil, fmt.Errorf("ts.Substitution: %w: need one radical and one molecule", ErrNotApplicable)
	}
	if rad[0] {
		zs[0], zs[1] = zs[1], zs[0]
	}
	if zs[1], err = radicalFirst(zs[1]); err != nil {
		return nil, fmt.Errorf("ts.Substitution: %w", err)
	}
	rct, err := canonicalize(zs[:])
	if err != nil {
		return nil, fmt.Errorf("ts.Substitution: %w", err)
	}
	prd, err := canonicalize(prds)
	if err != nil {
		return nil, fmt.Errorf("ts.Substitution: %w", err)
	}
	tras, err := B.transformations(trans.Substitution, rct, prd)
	if err != nil {
		return nil, fmt.Errorf("ts.Substitution: %w", err)
	}
	n1 := rct.frags[1].shift
	var tra trans.Transformation
	found := false
	for _, t := range tras {
		if len(t.Formed) == 1 && len(t.Broken) == 1 && t.Broken[0][1] < n1 {
			tra, found = t, true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("ts.Substitution: %w: no transformation breaks a bond of the molecule", ErrInvariant)
	}
	frm := tra.Formed[0]
	if frm[1] != n1 {
		return nil, fmt.Errorf("ts.Substitution: %w: attacking atom %d is not the radical atom %d", ErrInvariant, frm[1], n1)
	}
	A, err := B.anchor(rct.frags[0], frm[0], joinAtomKeys)
	if err != nil {
		return nil, fmt.Errorf("ts.Substitution: %w", err)
	}
	R, err := B.assemble(&joint{anc: A, rct2: rct.frags[1], n1: n1, tra: tra, dummy: true})
	if err != nil {
		return nil, fmt.Errorf("ts.Substitution: %w", err)
	}
	return R, nil
}

func formulas(zmas []*zmat.ZMatrix) []formula.Formula {
	ret := make([]formula.Formula, 0, len(zmas))
	for _, z := range zmas {
		ret = append(ret, formula.FromSymbols(z.Symbols()))
	}
	return ret
}

//mirror returns tra with the roles of the two reactants exchanged. iso maps the keys of the
//second reactant, starting from 0, to those of the first one. Both reactants have n1 rows.
func mirror(tra trans.Transformation, iso map[int]int, n1 int) trans.Transformation {
	inv := make(map[int]int, len(iso))
	for k, v := range iso {
		inv[v] = k
	}
	swap := func(bonds []chemgraph.BondKey) []chemgraph.BondKey {
		ret := make([]chemgraph.BondKey, 0, len(bonds))
		for _, b := range bonds {
			var m [2]int
			for i, k := range b {
				if k < n1 {
					m[i] = inv[k] + n1
				} else {
					m[i] = iso[k-n1]
				}
			}
			ret = append(ret, chemgraph.NewBondKey(m[0], m[1]))
		}
		return ret
	}
	return trans.Transformation{Formed: swap(tra.Formed), Broken: swap(tra.Broken)}
}

//HydrogenAbstraction builds the transition state for the transfer of a hydrogen atom from
//one reactant to the other. The reactant that loses the hydrogen goes first. If sigma is true,
//the second reactant is a sigma radical and gets a dummy atom so the attack is collinear
//with the hydrogen. Otherwise its radical atom is moved to its first row.
func (B *Builder) HydrogenAbstraction(rcts, prds []*zmat.ZMatrix, sigma bool) (*Result, error) {
	if len(rcts) != 2 || len(prds) != 2 {
		return nil, fmt.Errorf("ts.HydrogenAbstraction: %w: need 2 reactants and 2 products", ErrNotApplicable)
	}
	ri, pi, ok := formula.ArgsortHydrogenAbstraction(formulas(rcts), formulas(prds))
	if !ok {
		return nil, fmt.Errorf("ts.HydrogenAbstraction: %w: formulas don't match a hydrogen transfer", ErrNotApplicable)
	}
	zs := [2]*zmat.ZMatrix{rcts[ri[0]], rcts[ri[1]]}
	ps := []*zmat.ZMatrix{prds[pi[0]], prds[pi[1]]}
	var err error
	if !sigma {
		if zs[1], err = radicalFirst(zs[1]); err != nil {
			return nil, fmt.Errorf("ts.HydrogenAbstraction: %w", err)
		}
	}
	rct, tra, n1, err := B.bimolecular(trans.HydrogenAbstraction, zs, ps)
	if err != nil {
		return nil, fmt.Errorf("ts.HydrogenAbstraction: %w", err)
	}
	if len(tra.Formed) != 1 || len(tra.Broken) != 1 {
		return nil, fmt.Errorf("ts.HydrogenAbstraction: %w: expected 1 formed and 1 broken bond, got %v", ErrInvariant, tra)
	}
	h := sharedKey(tra.Formed[0], tra.Broken[0])
	if h == none {
		return nil, fmt.Errorf("ts.HydrogenAbstraction: %w: formed and broken bonds share no atom in %v", ErrInvariant, tra)
	}
	if h >= n1 {
		iso, ok := chemgraph.FullIsomorphism(rct.frags[1].graph, rct.frags[0].graph)
		if !ok || rct.frags[1].zma.Count() != n1 {
			return nil, fmt.Errorf("ts.HydrogenAbstraction: %w: hydrogen %d given by the second reactant", ErrInvariant, h)
		}
		tra = mirror(tra, iso, n1)
		h = sharedKey(tra.Formed[0], tra.Broken[0])
	}
	if x := tra.Formed[0].Other(h); x != n1 {
		return nil, fmt.Errorf("ts.HydrogenAbstraction: %w: attacking atom %d is not the first of its reactant", ErrInvariant, x)
	}
	B.log.Debug("abstracted hydrogen", zap.Int("hydrogen", h), zap.Bool("sigma", sigma))
	A, err := B.anchor(rct.frags[0], h, joinAtomKeys)
	if err != nil {
		return nil, fmt.Errorf("ts.HydrogenAbstraction: %w", err)
	}
	R, err := B.assemble(&joint{anc: A, rct2: rct.frags[1], n1: n1, tra: tra, dummy: true, sigma: sigma})
	if err != nil {
		return nil, fmt.Errorf("ts.HydrogenAbstraction: %w", err)
	}
	return R, nil
}

func sharedKey(a, b chemgraph.BondKey) int {
	for _, k := range a {
		if b.Contains(k) {
			return k
		}
	}
	return none
}
