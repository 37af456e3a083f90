/*
 * doc.go, part of gozmat
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

/*Package zmat is the main package of the gozmat library. It provides variable z-matrices
(internal coordinates without values) and z-matrices, the vector geometry needed to go from internal to
Cartesian coordinates and back, and facilities for reading and writing z-matrices.

	**gozmat Capabilities**

    Builds z-matrices from their symbols, reference keys and coordinate names, checking
	that every row only references earlier rows.

    Renames coordinates, brings z-matrices to the standard naming (R1, A2, D3...).

    Joins z-matrices and inserts dummy atoms in them.

    Converts z-matrices to Cartesian coordinates, and Cartesian coordinates to
	z-matrices, inserting dummy atoms where three reference atoms are collinear.

    Assigns bonds from Cartesian coordinates.

    Reads/writes z-matrices and XYZ files, and compressed archives of z-matrices.

The subpackages build on this one: chemgraph (molecular graphs), formula, trans
(bond-change transformations between reactants and products) and ts (z-matrices for
transition states).

Distances are in bohr and angles in radians everywhere, except in the text formats.
*/
package zmat
