/*
 * builder.go, part of gozmat
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

//Package ts builds z-matrices for the transition states of reactions, from the
//z-matrices of the reactants and products. There is one builder per reaction class.
//The bonds formed and broken come from an Oracle, which maps reactant and product graphs
//to bond changes.
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

const none = zmat.None

//Oracle gives the bond-change transformations of a reaction class that turn
//the reactant graph into the product graph. An empty result means the class doesn't apply.
type Oracle interface {
	BondChanges(class trans.Class, rct, prd *chemgraph.Graph) ([]trans.Transformation, error)
}

//Reorderer returns a z-matrix of the same molecule as zma, with an atom order that allows
//the atom mig to be defined from a1 and the atoms near it.
type Reorderer func(zma *zmat.ZMatrix, a1, mig int) (*zmat.ZMatrix, error)

//Result is a transition state z-matrix with the information needed to use it.
type Result struct {
	ZMatrix *zmat.ZMatrix
	//DistName is the name of the reaction coordinate.
	DistName string
	//BreakDistName is the distance of the second broken bond, for eliminations.
	BreakDistName string
	//Bonds formed and broken, as rows of ZMatrix.
	FormedKeys []chemgraph.BondKey
	BrokenKeys []chemgraph.BondKey
	//TorsionNames are the dihedrals that can be scanned without
	//affecting the reaction coordinate.
	TorsionNames []string
	//Attempts is the number of reactant z-matrices tried.
	Attempts int
}

//Builder builds transition state z-matrices. It holds no mutable state, so
//it can be used from several goroutines.
type Builder struct {
	cfg     Config
	log     *zap.Logger
	oracle  Oracle
	reorder Reorderer
}

//New returns a Builder with the given options applied over the defaults.
func New(opts ...Option) (*Builder, error) {
	B := &Builder{
		cfg:     DefaultConfig(),
		log:     zap.NewNop(),
		oracle:  trans.NewMatcher(),
		reorder: ReorderForMigration,
	}
	for _, o := range opts {
		o(B)
	}
	if err := B.cfg.Validate(); err != nil {
		return nil, err
	}
	return B, nil
}

//Config returns the configuration of the builder.
func (B *Builder) Config() Config {
	return B.cfg
}

//fragment is a reactant or product in standard form. Its graph keys are rows of zma,
//shift is the offset of those rows in the reaction numbering.
type fragment struct {
	zma   *zmat.ZMatrix
	graph *chemgraph.Graph
	shift int
}

//side holds all the reactants or all the products of a reaction, numbered consecutively.
type side struct {
	frags []*fragment
	union *chemgraph.Graph
}

func canonicalize(zmas []*zmat.ZMatrix) (*side, error) {
	if len(zmas) == 0 {
		return nil, fmt.Errorf("%w: no z-matrices given", ErrNotApplicable)
	}
	S := &side{frags: make([]*fragment, 0, len(zmas))}
	graphs := make([]*chemgraph.Graph, 0, len(zmas))
	shift := 0
	for i, z := range zmas {
		if z == nil {
			return nil, fmt.Errorf("%w: z-matrix %d is nil", zmat.ErrMalformed, i)
		}
		G, err := chemgraph.FromZMatrix(z)
		if err != nil {
			return nil, err
		}
		S.frags = append(S.frags, &fragment{zma: z.StandardForm(shift), graph: G, shift: shift})
		graphs = append(graphs, G.ShiftKeys(shift))
		shift += z.Count()
	}
	U, err := chemgraph.Union(graphs...)
	if err != nil {
		return nil, err
	}
	S.union = U
	return S, nil
}

func (B *Builder) transformations(class trans.Class, rct, prd *side) ([]trans.Transformation, error) {
	tras, err := B.oracle.BondChanges(class, rct.union, prd.union)
	if err != nil {
		return nil, err
	}
	if len(tras) == 0 {
		return nil, fmt.Errorf("%w: no %s connects reactants and products", ErrNotApplicable, class)
	}
	B.log.Debug("bond changes found", zap.Stringer("class", class), zap.Int("candidates", len(tras)))
	return tras, nil
}

//closest returns the transformation whose formed bond is the shortest in geo.
//Ties go to the first transformation. Only the reactant geometry is considered.
func closest(tras []trans.Transformation, geo *v3.Matrix) (trans.Transformation, float64, error) {
	best, dist := -1, math.Inf(1)
	for i, t := range tras {
		if len(t.Formed) != 1 {
			return trans.Transformation{}, 0, fmt.Errorf("%w: expected one formed bond, got %v", ErrInvariant, t)
		}
		f := t.Formed[0]
		if f[0] < 0 || f[1] >= geo.NVecs() {
			return trans.Transformation{}, 0, fmt.Errorf("%w: formed bond %v out of the reactant", ErrInvariant, f)
		}
		if d := zmat.Distance(geo.Vec(f[0]), geo.Vec(f[1])); d < dist {
			best, dist = i, d
		}
	}
	return tras[best], dist, nil
}

func isDummyRow(zma *zmat.ZMatrix, i int) bool {
	return zmat.IsDummy(zma.Row(i).Symbol)
}

//isLinearMolecule returns true if all the real atoms of zma are on a line.
func isLinearMolecule(zma *zmat.ZMatrix, tol float64) (bool, error) {
	geo, err := zma.Geometry()
	if err != nil {
		return false, err
	}
	pts := make([]r3.Vec, 0, zma.Count())
	for i, p := range geo.Vecs() {
		if !isDummyRow(zma, i) {
			pts = append(pts, p)
		}
	}
	return len(pts) > 1 && zmat.IsLinear(pts, tol), nil
}

//softTorsions returns the torsions in names whose axis doesn't separate the atoms k1 and k2
//in the graph G. Rotating around such an axis would move one of the atoms in the reaction
//coordinate and leave the other one in place.
func softTorsions(zma *zmat.ZMatrix, G *chemgraph.Graph, names []string, k1, k2 int) []string {
	coords := zma.Coordinates(0)
	ret := make([]string, 0, len(names))
	for _, name := range names {
		cks := coords[name]
		if len(cks) == 0 || len(cks[0]) != 4 {
			continue
		}
		axis := chemgraph.BondKey{cks[0][1], cks[0][2]}
		grp1 := keySet(G.BranchAtomKeys(axis[0], axis))
		grp2 := keySet(G.BranchAtomKeys(axis[1], axis))
		if (grp1[k1] && grp2[k2]) || (grp2[k1] && grp1[k2]) {
			continue
		}
		ret = append(ret, name)
	}
	return ret
}

func keySet(keys []int) map[int]bool {
	ret := make(map[int]bool, len(keys))
	for _, k := range keys {
		ret[k] = true
	}
	return ret
}

//ReorderForMigration rebuilds zma from its geometry, with the atoms in this order: the heavy
//atoms of the longest chain that starts at a1, the other heavy atoms, the hydrogens, and
//finally mig. Dummy atoms are dropped, and inserted again where needed.
func ReorderForMigration(zma *zmat.ZMatrix, a1, mig int) (*zmat.ZMatrix, error) {
	G, err := chemgraph.FromZMatrix(zma)
	if err != nil {
		return nil, fmt.Errorf("ts.ReorderForMigration: %w", err)
	}
	syms := zma.Symbols()
	order := make([]int, 0, len(syms))
	in := map[int]bool{mig: true}
	add := func(k int) {
		if !in[k] && !zmat.IsDummy(syms[k]) {
			in[k] = true
			order = append(order, k)
		}
	}
	for _, k := range G.LongestChain(a1) {
		if syms[k] != "H" {
			add(k)
		}
	}
	for k, s := range syms {
		if s != "H" {
			add(k)
		}
	}
	for k := range syms {
		add(k)
	}
	order = append(order, mig)
	Z, _, err := fromOrder(zma, order)
	if err != nil {
		return nil, fmt.Errorf("ts.ReorderForMigration: %w", err)
	}
	return Z, nil
}

//reorderFirst rebuilds zma from its geometry with the atom key swapped with the first atom.
func reorderFirst(zma *zmat.ZMatrix, key int) (*zmat.ZMatrix, error) {
	order := make([]int, 0, zma.Count())
	for i := 0; i < zma.Count(); i++ {
		switch {
		case i == 0:
			order = append(order, key)
		case i == key:
			order = append(order, 0)
		default:
			order = append(order, i)
		}
	}
	Z, _, err := fromOrder(zma, order)
	return Z, err
}

//fromOrder builds a z-matrix from the geometry of the rows of zma given in order, skipping
//dummy rows. It also returns, for each row of zma, its row in the new z-matrix (None for
//dummy rows).
func fromOrder(zma *zmat.ZMatrix, order []int) (*zmat.ZMatrix, []int, error) {
	geo, err := zma.Geometry()
	if err != nil {
		return nil, nil, err
	}
	syms := make([]string, 0, len(order))
	input := make([]int, 0, len(order))
	for _, k := range order {
		if k < 0 || k >= zma.Count() {
			return nil, nil, fmt.Errorf("%w: row %d not in a z-matrix of %d rows", zmat.ErrMalformed, k, zma.Count())
		}
		if isDummyRow(zma, k) {
			continue
		}
		syms = append(syms, zma.Row(k).Symbol)
		input = append(input, k)
	}
	if len(input) == 0 {
		return nil, nil, fmt.Errorf("%w: no atoms to rebuild from", zmat.ErrMalformed)
	}
	atoms := v3.Zeros(len(input))
	if err = atoms.SomeVecsSafe(geo, input); err != nil {
		return nil, nil, err
	}
	Z, rowOf, err := zmat.FromGeometryKeys(syms, atoms)
	if err != nil {
		return nil, nil, err
	}
	newRow := make([]int, zma.Count())
	for i := range newRow {
		newRow[i] = none
	}
	for j, k := range input {
		newRow[k] = rowOf[j]
	}
	return Z, newRow, nil
}
