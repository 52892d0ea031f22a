/*
 * spline_test.go, part of gocg.
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

package spline

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestGenerateGrid(t *testing.T) {
	S := New()
	if np := S.GenerateGrid(0, 1, 0.25); np != 5 {
		t.Fatalf("expected 5 grid points, got %d", np)
	}
	if S.NIntervals() != 4 {
		t.Errorf("expected 4 intervals, got %d", S.NIntervals())
	}
	for i := 0; i < 5; i++ {
		if math.Abs(S.GridPoint(i)-0.25*float64(i)) > 1e-12 {
			t.Errorf("grid point %d is %g", i, S.GridPoint(i))
		}
	}
	//a step that doesn't divide the range: the last point lands on max
	S = New()
	if np := S.GenerateGrid(0, 1, 0.3); np != 5 {
		t.Fatalf("expected 5 grid points, got %d", np)
	}
	if S.GridPoint(4) != 1.0 {
		t.Errorf("last grid point should be the range end, got %g", S.GridPoint(4))
	}
	if math.Abs(S.GridPoint(3)-0.9) > 1e-12 {
		t.Errorf("grid point 3 is %g", S.GridPoint(3))
	}
}

func TestInterval(t *testing.T) {
	S := New()
	S.GenerateGrid(0, 1, 0.25)
	cases := []struct {
		x    float64
		want int
	}{
		{-0.5, 0}, {0, 0}, {0.1, 0}, {0.25, 1}, {0.5, 2}, {0.99, 3}, {1.0, 3}, {2.0, 3},
	}
	for _, c := range cases {
		if got := S.Interval(c.x); got != c.want {
			t.Errorf("Interval(%g) = %d, want %d", c.x, got, c.want)
		}
	}
}

//with zero second derivatives the spline is piecewise linear and must
//reproduce a straight line exactly.
func TestEvalLinear(t *testing.T) {
	S := New()
	np := S.GenerateGrid(0.5, 1.5, 0.1)
	coeffs := make([]float64, 2*np)
	for i := 0; i < np; i++ {
		coeffs[i] = 2*S.GridPoint(i) + 1
	}
	S.SetCoeffs(coeffs)
	for x := 0.5; x <= 1.5; x += 0.013 {
		if got := S.Eval(x); math.Abs(got-(2*x+1)) > 1e-12 {
			t.Errorf("Eval(%g) = %g, want %g", x, got, 2*x+1)
		}
		if got := S.EvalDeriv(x); math.Abs(got-2) > 1e-12 {
			t.Errorf("EvalDeriv(%g) = %g, want 2", x, got)
		}
	}
}

//at the grid points the value is the function coefficient itself, whatever
//the second derivatives are.
func TestEvalAtGridPoints(t *testing.T) {
	S := New()
	np := S.GenerateGrid(0, 2, 0.5)
	coeffs := make([]float64, 2*np)
	for i := 0; i < np; i++ {
		coeffs[i] = math.Sin(float64(i))
		coeffs[np+i] = float64(i) - 2
	}
	S.SetCoeffs(coeffs)
	for i := 0; i < np-1; i++ {
		if got := S.Eval(S.GridPoint(i)); math.Abs(got-coeffs[i]) > 1e-12 {
			t.Errorf("Eval at grid point %d = %g, want %g", i, got, coeffs[i])
		}
	}
}

//a fit-matrix row dotted with the coefficient vector must equal Eval.
func TestAddToFitMatrix(t *testing.T) {
	S := New()
	np := S.GenerateGrid(0, 1, 0.2)
	coeffs := make([]float64, 2*np)
	for i := range coeffs {
		coeffs[i] = math.Cos(float64(i) * 0.9)
	}
	S.SetCoeffs(coeffs)
	const off = 3
	m := mat.NewDense(2, off+2*np, nil)
	for _, x := range []float64{0.05, 0.3, 0.77, 1.0} {
		m.Zero()
		S.AddToFitMatrix(m, x, 0, off, 1)
		S.AddToFitMatrix(m, x, 1, off, -2.5)
		dot := 0.0
		for j := 0; j < 2*np; j++ {
			dot += m.At(0, off+j) * coeffs[j]
		}
		if want := S.Eval(x); math.Abs(dot-want) > 1e-12 {
			t.Errorf("row at x=%g gives %g, Eval gives %g", x, dot, want)
		}
		for j := 0; j < 2*np; j++ {
			if math.Abs(m.At(1, off+j)+2.5*m.At(0, off+j)) > 1e-12 {
				t.Errorf("scaled row at x=%g is not -2.5 times the plain row", x)
			}
		}
		for j := 0; j < off; j++ {
			if m.At(0, j) != 0 {
				t.Errorf("column %d before the offset was touched", j)
			}
		}
	}
	//contributions accumulate
	m.Zero()
	S.AddToFitMatrix(m, 0.3, 0, off, 1)
	S.AddToFitMatrix(m, 0.3, 0, off, 1)
	dot := 0.0
	for j := 0; j < 2*np; j++ {
		dot += m.At(0, off+j) * coeffs[j]
	}
	if want := 2 * S.Eval(0.3); math.Abs(dot-want) > 1e-12 {
		t.Errorf("two additions give %g, want %g", dot, want)
	}
}

//the smoothing rows must vanish on the coefficients of a straight line:
//the continuity conditions hold trivially and the natural boundary
//second derivatives are zero.
func TestSmoothingRowsOnLine(t *testing.T) {
	S := New()
	np := S.GenerateGrid(0, 1, 0.2)
	n := S.NIntervals()
	coeffs := make([]float64, 2*np)
	for i := 0; i < np; i++ {
		coeffs[i] = -3*S.GridPoint(i) + 0.7
	}
	m := mat.NewDense(n+1, 2*np, nil)
	S.AddBCToFitMatrix(m, 0, 0)
	for i := 0; i <= n; i++ {
		dot := 0.0
		for j := 0; j < 2*np; j++ {
			dot += m.At(i, j) * coeffs[j]
		}
		if math.Abs(dot) > 1e-12 {
			t.Errorf("smoothing row %d gives %g on a straight line", i, dot)
		}
	}
	//every smoothing row must touch at least one coefficient
	for i := 0; i <= n; i++ {
		row := mat.Row(nil, i, m)
		nonzero := 0
		for _, v := range row {
			if v != 0 {
				nonzero++
			}
		}
		if nonzero == 0 {
			t.Errorf("smoothing row %d is empty", i)
		}
	}
}
