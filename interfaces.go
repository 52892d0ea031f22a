/*
 * interfaces.go, part of gocg.
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

//Traj is the interface for any trajectory object that can feed frames to
//an analysis. The frame passed to Next is overwritten on every call.
type Traj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//Next reads the next frame into f: positions, box, and forces if the
	//trajectory carries them (f.HasForces reports which). A trajectory
	//that runs out of frames returns a LastFrameError.
	Next(f *Frame) error

	//Len returns the number of beads per frame.
	Len() int
}

//Error is the interface for errors that all packages in this library
//implement. The Decorate method allows to add and retrieve info from the
//error without changing its type or wrapping it in something else. The
//decoration slice should contain the functions in the calling stack, plus,
//for each, any relevant information, in the format "FunctionName: Extra info".
type Error interface {
	Error() string
	Decorate(string) []string //If passed an empty string, it just returns the current decoration without adding to it.
}

//TrajError is the interface for errors in trajectories.
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

//LastFrameError has a useless method to distinguish the harmless
//end-of-trajectory errors, so they can be filtered in a typeswitch that
//looks for this interface.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination() //does nothing, just to separate this interface from other TrajError's
}
