/*
 * options.go, part of gozmat
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
	"go.uber.org/zap"

	"github.com/rmera/gozmat/trans"
)

//Option configures a Builder.
type Option func(*Builder)

//WithConfig sets the builder configuration. It is validated by New.
func WithConfig(C Config) Option {
	return func(B *Builder) {
		B.cfg = C
	}
}

//WithLogger sets the logger. The default logger discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(B *Builder) {
		if log == nil {
			log = zap.NewNop()
		}
		B.log = log
	}
}

//WithOracle sets the source of bond-change transformations. The default is a trans.Matcher.
func WithOracle(O Oracle) Option {
	return func(B *Builder) {
		if O == nil {
			O = trans.NewMatcher()
		}
		B.oracle = O
	}
}

//WithReorderer sets the function used to rebuild the reactant z-matrix when the migrating
//atom can't be redefined. The default is ReorderForMigration.
func WithReorderer(R Reorderer) Option {
	return func(B *Builder) {
		if R == nil {
			R = ReorderForMigration
		}
		B.reorder = R
	}
}
