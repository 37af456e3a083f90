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

package zmat

import (
	"errors"
	"fmt"
)

//Errors

//Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
//error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call also returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it should just return the current value, not add the empty string to the slice.
}

//The sentinel errors of the package. Errors returned by the package wrap one of these,
//so they can be checked with errors.Is.
var (
	ErrDegenerate       = errors.New("degenerate geometry")
	ErrMalformed        = errors.New("malformed z-matrix")
	ErrForwardReference = errors.New("forward reference in z-matrix")
	ErrMissingValue     = errors.New("missing coordinate value")
	ErrUnknownName      = errors.New("unknown coordinate name")
	ErrWrongFormat      = errors.New("wrong format")
)

//CError is the error type for the zmat package. It carries one of the sentinel
//errors, a message and the list of functions it went through.
type CError struct {
	msg  string
	kind error
	deco []string
}

func newError(kind error, caller string, format string, a ...interface{}) *CError {
	return &CError{msg: fmt.Sprintf(format, a...), kind: kind, deco: []string{caller}}
}

func (err *CError) Error() string {
	if err.kind == nil {
		return err.msg
	}
	return fmt.Sprintf("%s: %s", err.kind, err.msg)
}

//Unwrap returns the sentinel error wrapped by err.
func (err *CError) Unwrap() error { return err.kind }

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//errDecorate decorates the error with the caller's name before returning it, if
//the error implements Error. Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}
