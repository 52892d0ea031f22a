/*
 * table.go, part of gocg.
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

/*
Package update implements tabulated-potential bookkeeping for iterative
coarse-graining refinement: the 3-column table format, grid checks, the
radial Fourier transform, and the constrained Gauss-Newton step.
*/
package update

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	gocg "github.com/cgmatch/gocg"
)

//Range flags for table points.
const (
	FlagIn        byte = 'i' //point is in range, value is valid
	FlagOut       byte = 'o' //point is out of range, value is not to be used
	FlagUndefined byte = 'u' //no information about the point
)

//Table is a tabulated function: a grid, the values on it and a per-point
//range flag.
type Table struct {
	X    []float64
	Y    []float64
	Flag []byte
}

//NewTable returns a Table of n points with all flags set to 'u'.
func NewTable(n int) *Table {
	T := &Table{
		X:    make([]float64, n),
		Y:    make([]float64, n),
		Flag: make([]byte, n),
	}
	for i := range T.Flag {
		T.Flag[i] = FlagUndefined
	}
	return T
}

//Len returns the number of points in the table.
func (T *Table) Len() int {
	return len(T.X)
}

//ReadTable parses a 3-column table (x, y, flag) from r. Lines starting
//with '#' or '@' and blank lines are skipped. A missing flag column is
//read as 'u'.
func ReadTable(r io.Reader) (*Table, error) {
	T := &Table{}
	scanner := bufio.NewScanner(r)
	nline := 0
	for scanner.Scan() {
		nline++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "@") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, gocg.CError{Msg: fmt.Sprintf("ReadTable: line %d: need at least 2 columns", nline), Deco: []string{"update.ReadTable"}}
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, gocg.CError{Msg: fmt.Sprintf("ReadTable: line %d: %s", nline, err.Error()), Deco: []string{"update.ReadTable"}}
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, gocg.CError{Msg: fmt.Sprintf("ReadTable: line %d: %s", nline, err.Error()), Deco: []string{"update.ReadTable"}}
		}
		flag := FlagUndefined
		if len(fields) >= 3 {
			flag = fields[2][0]
		}
		T.X = append(T.X, x)
		T.Y = append(T.Y, y)
		T.Flag = append(T.Flag, flag)
	}
	if err := scanner.Err(); err != nil {
		return nil, gocg.CError{Msg: "ReadTable: " + err.Error(), Deco: []string{"update.ReadTable"}}
	}
	if len(T.X) == 0 {
		return nil, gocg.CError{Msg: "ReadTable: no data lines found", Deco: []string{"update.ReadTable"}}
	}
	return T, nil
}

//WriteTable writes the table to w in the 3-column format, preceded by
//the given comment lines, each prefixed with "# ".
func (T *Table) WriteTable(w io.Writer, comments ...string) error {
	bw := bufio.NewWriter(w)
	for _, c := range comments {
		if _, err := fmt.Fprintf(bw, "# %s\n", c); err != nil {
			return gocg.CError{Msg: "WriteTable: " + err.Error(), Deco: []string{"update.WriteTable"}}
		}
	}
	for i := range T.X {
		if _, err := fmt.Fprintf(bw, "%e %e %c\n", T.X[i], T.Y[i], T.Flag[i]); err != nil {
			return gocg.CError{Msg: "WriteTable: " + err.Error(), Deco: []string{"update.WriteTable"}}
		}
	}
	return bw.Flush()
}

//GridSpacing returns the spacing of the equidistant grid. It fails if the
//spacing varies by more than the given relative tolerance.
func GridSpacing(grid []float64, relTol float64) (float64, error) {
	if len(grid) < 2 {
		return 0, gocg.CError{Msg: "GridSpacing: need at least 2 grid points", Deco: []string{"update.GridSpacing"}}
	}
	min, max := math.Inf(1), math.Inf(-1)
	mean := 0.0
	for i := 1; i < len(grid); i++ {
		d := grid[i] - grid[i-1]
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
		mean += d
	}
	if math.Abs((max-min)/max) > relTol {
		return 0, gocg.CError{Msg: "GridSpacing: the grid is not equidistant", Deco: []string{"update.GridSpacing"}}
	}
	return mean / float64(len(grid)-1), nil
}

//FlagSmallRDF returns a copy of flag with points set to 'o' wherever the
//distribution g falls below gMin.
func FlagSmallRDF(flag []byte, g []float64, gMin float64) []byte {
	out := append([]byte(nil), flag...)
	for i, gg := range g {
		if gg < gMin {
			out[i] = FlagOut
		}
	}
	return out
}

//MergeFlags returns a copy of flag with points set to 'o' wherever the
//other flag slice is 'o'.
func MergeFlags(flag, other []byte) []byte {
	out := append([]byte(nil), flag...)
	for i, of := range other {
		if of == FlagOut {
			out[i] = FlagOut
		}
	}
	return out
}

//ExtrapolateLeftConstant returns a copy of du where the points left of
//the first 'i'-flagged one take that first valid value. It fails if no
//point is flagged 'i'.
func ExtrapolateLeftConstant(du []float64, flag []byte) ([]float64, error) {
	first := -1
	for i, f := range flag {
		if f == FlagIn {
			first = i
			break
		}
	}
	if first < 0 {
		return nil, gocg.CError{Msg: "ExtrapolateLeftConstant: no valid points", Deco: []string{"update.ExtrapolateLeftConstant"}}
	}
	out := append([]float64(nil), du...)
	for i := 0; i < first; i++ {
		if flag[i] != FlagIn {
			out[i] = du[first]
		}
	}
	return out, nil
}
