/*
 * errors.go, part of gozmat
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

import "errors"

//The outcomes of a builder other than success. Errors returned by the builders
//wrap one of these, or an error from the zmat package.
var (
	//ErrNotApplicable means that the reaction class doesn't describe the given
	//reactants and products. It is an expected result, not a failure.
	ErrNotApplicable = errors.New("reaction class not applicable")
	//ErrRebuildExhausted means no atom ordering that allows to define the moving
	//atom was found within the allowed number of attempts.
	ErrRebuildExhausted = errors.New("z-matrix rebuild attempts exhausted")
	//ErrInvariant signals that the oracle and the builder disagree about the atoms
	//involved in the reaction. It is a programming error.
	ErrInvariant = errors.New("builder invariant violated")
)
