/*
 * ibi.go, part of gocg.
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

package update

import (
	"math"

	gocg "github.com/cgmatch/gocg"
)

//IBIUpdate performs one Boltzmann-inversion refinement step on the
//potential uCur: ΔU = kBT·ln(gCur/gTgt) pointwise, with points where
//either distribution vanishes or is flagged out of range excluded and the
//core region filled by constant extrapolation of the first valid update.
//The three tables must share the same grid.
func IBIUpdate(uCur, gTgt, gCur *Table, kBT float64) (*Table, error) {
	n := uCur.Len()
	if gTgt.Len() != n || gCur.Len() != n {
		return nil, gocg.CError{Msg: "IBIUpdate: tables have different lengths", Deco: []string{"update.IBIUpdate"}}
	}
	for i := range uCur.X {
		if !closeTo(gTgt.X[i], uCur.X[i]) || !closeTo(gCur.X[i], uCur.X[i]) {
			return nil, gocg.CError{Msg: "IBIUpdate: tables are on different grids", Deco: []string{"update.IBIUpdate"}}
		}
	}
	du := make([]float64, n)
	flag := make([]byte, n)
	for i := 0; i < n; i++ {
		if gTgt.Y[i] > 0 && gCur.Y[i] > 0 &&
			gTgt.Flag[i] != FlagOut && gCur.Flag[i] != FlagOut {
			du[i] = kBT * math.Log(gCur.Y[i]/gTgt.Y[i])
			flag[i] = FlagIn
		} else {
			du[i] = math.NaN()
			flag[i] = FlagOut
		}
	}
	du, err := ExtrapolateLeftConstant(du, flag)
	if err != nil {
		return nil, gocg.ErrDecorate(err, "update.IBIUpdate")
	}
	out := NewTable(n)
	copy(out.X, uCur.X)
	for i := 0; i < n; i++ {
		if math.IsNaN(du[i]) {
			out.Y[i] = uCur.Y[i]
			out.Flag[i] = FlagOut
			continue
		}
		out.Y[i] = uCur.Y[i] + du[i]
		out.Flag[i] = uCur.Flag[i]
		if flag[i] == FlagOut {
			out.Flag[i] = FlagOut
		}
	}
	return out, nil
}
