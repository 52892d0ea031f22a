/*
 * errors.go, part of gocg.
 *
 * Copyright 2024 The gocg developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package gocg

import "strings"

//CError is the concrete, general error type of the library. It implements
//the Error interface and is shared by the packages that don't need to
//carry trajectory information in their errors.
type CError struct {
	Msg  string
	Deco []string
}

func (err CError) Error() string {
	if len(err.Deco) == 0 {
		return err.Msg
	}
	return err.Msg + " (" + strings.Join(err.Deco, ", ") + ")"
}

//Decorate adds new information to the error and returns the current
//decoration. An empty string only returns the current value.
func (err CError) Decorate(deco string) []string {
	//This method does not use a pointer receiver but still alters the
	//receiver, since Deco is a slice, and hence a pointer itself.
	if deco != "" {
		err.Deco = append(err.Deco, deco)
	}
	return err.Deco
}

//ErrDecorate asserts that err implements the gocg Error interface and
//decorates it with the caller's name before returning it. Errors of any
//other type are returned unchanged.
func ErrDecorate(err error, caller string) error {
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}
