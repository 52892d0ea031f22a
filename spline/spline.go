/*
 * spline.go, part of gocg.
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
Package spline implements a cubic-spline basis on a 1D grid, in the
parametrization used for fitting: the 2(n+1) coefficients of a spline with
n intervals are the function values at the n+1 grid points followed by the
second derivatives at the same points. The basis can inject its
contributions for a given coordinate, and its smoothness conditions, as
rows of an external fit matrix.
*/
package spline

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

//Cubic is a cubic spline over an equidistant grid.
type Cubic struct {
	r  []float64 //grid points
	f  []float64 //function values at the grid points
	f2 []float64 //second derivatives at the grid points
}

//New returns an empty spline. GenerateGrid must be called before
//any other method.
func New() *Cubic {
	return new(Cubic)
}

//GenerateGrid builds an equidistant grid from min to max with the given
//step, extending the last interval to max if the range is not divisible by
//step. It returns the number of grid points (one more than the number of
//spline intervals).
func (S *Cubic) GenerateGrid(min, max, step float64) int {
	if step <= 0 || max <= min {
		panic(fmt.Sprintf("spline.GenerateGrid: invalid grid %g:%g:%g", min, step, max))
	}
	vec := max - min
	n := int(vec / step)
	if float64(n)*step < vec-1e-9*step {
		n++
	}
	S.r = make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		S.r = append(S.r, min+float64(i)*step)
	}
	S.r[n] = max
	S.f = make([]float64, n+1)
	S.f2 = make([]float64, n+1)
	return len(S.r)
}

//NIntervals returns the number of spline intervals n.
func (S *Cubic) NIntervals() int {
	return len(S.r) - 1
}

//GridPoint returns the ith grid point.
func (S *Cubic) GridPoint(i int) float64 {
	return S.r[i]
}

//Interval returns the index of the interval containing x, clamped to the
//first or last interval for out-of-grid values.
func (S *Cubic) Interval(x float64) int {
	if x <= S.r[0] {
		return 0
	}
	n := len(S.r) - 1
	for i := 1; i <= n; i++ {
		if x < S.r[i] {
			return i - 1
		}
	}
	return n - 1
}

//the four basis functions on the interval containing x, in the
//standard second-derivative parametrization.
func (S *Cubic) basis(x float64) (i int, a, b, c, d float64) {
	i = S.Interval(x)
	h := S.r[i+1] - S.r[i]
	b = (x - S.r[i]) / h
	a = 1 - b
	c = (a*a*a - a) * h * h / 6
	d = (b*b*b - b) * h * h / 6
	return i, a, b, c, d
}

//SetCoeffs loads the 2(n+1) spline coefficients: the n+1 function values
//followed by the n+1 second derivatives. It panics on a length mismatch,
//as that is always a logic error in the caller.
func (S *Cubic) SetCoeffs(coeffs []float64) {
	np := len(S.r)
	if len(coeffs) != 2*np {
		panic(fmt.Sprintf("spline.SetCoeffs: got %d coefficients, want %d", len(coeffs), 2*np))
	}
	copy(S.f, coeffs[:np])
	copy(S.f2, coeffs[np:])
}

//Eval returns the value of the spline at x, using the currently loaded
//coefficients. Values outside the grid are extrapolated with the
//polynomial of the nearest interval.
func (S *Cubic) Eval(x float64) float64 {
	i, a, b, c, d := S.basis(x)
	return a*S.f[i] + b*S.f[i+1] + c*S.f2[i] + d*S.f2[i+1]
}

//EvalDeriv returns the first derivative of the spline at x.
func (S *Cubic) EvalDeriv(x float64) float64 {
	i, a, b, _, _ := S.basis(x)
	h := S.r[i+1] - S.r[i]
	return (S.f[i+1]-S.f[i])/h -
		(3*a*a-1)*h/6*S.f2[i] +
		(3*b*b-1)*h/6*S.f2[i+1]
}

//AddToFitMatrix adds the basis contributions of the coordinate x, scaled
//by scale, into the given row of m. The spline's coefficient block starts
//at column colOffset: function values first, then second derivatives.
func (S *Cubic) AddToFitMatrix(m mat.Mutable, x float64, row, colOffset int, scale float64) {
	i, a, b, c, d := S.basis(x)
	np := len(S.r)
	add := func(col int, v float64) {
		m.Set(row, col, m.At(row, col)+v*scale)
	}
	add(colOffset+i, a)
	add(colOffset+i+1, b)
	add(colOffset+np+i, c)
	add(colOffset+np+i+1, d)
}

//AddBCToFitMatrix writes the n+1 smoothness conditions of the spline into
//m, starting at the given row and column offsets: n-1 rows imposing
//continuity of the first derivative at the interior grid points, plus the
//two natural boundary conditions (zero second derivative at both ends).
//The rows are overwritten, not accumulated.
func (S *Cubic) AddBCToFitMatrix(m mat.Mutable, rowOffset, colOffset int) {
	np := len(S.r)
	n := np - 1
	for i := 1; i < n; i++ {
		h1 := S.r[i] - S.r[i-1]
		h2 := S.r[i+1] - S.r[i]
		row := rowOffset + i
		m.Set(row, colOffset+i-1, -1/h1)
		m.Set(row, colOffset+i, 1/h1+1/h2)
		m.Set(row, colOffset+i+1, -1/h2)
		m.Set(row, colOffset+np+i-1, h1/6)
		m.Set(row, colOffset+np+i, (h1+h2)/3)
		m.Set(row, colOffset+np+i+1, h2/6)
	}
	m.Set(rowOffset, colOffset+np, 1)
	m.Set(rowOffset+n, colOffset+2*np-1, 1)
}
