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

package ftf

//Error implements the gocg.TrajError interface.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return "ftf file " + err.filename + " error: " + err.message
}

//Decorate adds the string dec to the decoration slice of strings of the
//error, and returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//FileName returns the name of the file with which the error was associated.
func (err Error) FileName() string {
	return err.filename
}

//Format returns the format of the file with which the error was associated.
func (err Error) Format() string {
	return "ftf"
}

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool {
	return err.critical
}

//errDecorate annotates err with the caller name when err is a gocg-style
//error, and passes it through unchanged otherwise.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(interface{ Decorate(string) []string }); ok {
		e.Decorate(caller)
		return err
	}
	return Error{err.Error(), "", []string{caller}, true}
}

//Error messages.
const (
	TrajUnIniRead  = "Traj object uninitialized to read"
	TrajUnIniWrite = "Traj object uninitialized to write"
	ReadError      = "Error reading frame"
	UnableToOpen   = "Unable to open file"
	WrongFormat    = "Wrong format in the ftf file or frame"
	NilFrame       = "Nil frame given"
	NoForces       = "Frame carries no forces but the file requires them"
	ChecksumFailed = "Frame checksum mismatch, file is likely corrupted"
)

//lastFrameError signals that a trajectory has been fully read. It is not
//really an error.
type lastFrameError struct {
	fileName string
	deco     []string
}

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Format() string { return "ftf" }

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) Decorate(dec string) []string {
	if dec != "" {
		E.deco = append(E.deco, dec)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	return &lastFrameError{fileName: filename, deco: []string{caller}}
}
