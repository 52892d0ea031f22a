/*
 * gaussnewton.go, part of gocg.
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
	"log"
	"math"

	gocg "github.com/cgmatch/gocg"
	"gonum.org/v1/gonum/mat"
)

//GaussNewtonConstrained solves the least-squares problem min ‖Ax−b‖
//subject to Cx=d, by eliminating the constraint first. C may have zero
//rows (no constraint) or one row; more than one is not supported. The
//constrained coordinate is pivoted on the largest entry of C, eliminated
//from A and b, the reduced problem is solved through its normal
//equations, and the pivot is re-inserted from the constraint.
func GaussNewtonConstrained(A, C *mat.Dense, b, d []float64) ([]float64, error) {
	m, n := A.Dims()
	p, n2 := C.Dims()
	if n != n2 && p > 0 {
		return nil, gocg.CError{Msg: "GaussNewtonConstrained: A and C column counts differ", Deco: []string{"update.GaussNewtonConstrained"}}
	}
	if len(b) != m {
		return nil, gocg.CError{Msg: "GaussNewtonConstrained: b length does not match A rows", Deco: []string{"update.GaussNewtonConstrained"}}
	}
	if len(d) != p {
		return nil, gocg.CError{Msg: "GaussNewtonConstrained: d length does not match C rows", Deco: []string{"update.GaussNewtonConstrained"}}
	}
	if p > 1 {
		return nil, gocg.CError{Msg: "GaussNewtonConstrained: not implemented for more than one constraint", Deco: []string{"update.GaussNewtonConstrained"}}
	}
	if p == 0 {
		return solveNormal(A, b)
	}
	pivot := 0
	for j := 1; j < n; j++ {
		if math.Abs(C.At(0, j)) > math.Abs(C.At(0, pivot)) {
			pivot = j
		}
	}
	cp := C.At(0, pivot)
	if cp == 0 {
		return nil, gocg.CError{Msg: "GaussNewtonConstrained: constraint row is all zeros", Deco: []string{"update.GaussNewtonConstrained"}}
	}
	AElim := mat.NewDense(m, n-1, nil)
	bElim := make([]float64, m)
	for i := 0; i < m; i++ {
		ap := A.At(i, pivot)
		jj := 0
		for j := 0; j < n; j++ {
			if j == pivot {
				continue
			}
			AElim.Set(i, jj, A.At(i, j)-ap*C.At(0, j)/cp)
			jj++
		}
		bElim[i] = b[i] - ap*d[0]/cp
	}
	var xElim []float64
	if n == 1 {
		log.Printf("WARNING: solution of Gauss-Newton update determined fully by constraints")
	} else {
		var err error
		xElim, err = solveNormal(AElim, bElim)
		if err != nil {
			return nil, gocg.ErrDecorate(err, "update.GaussNewtonConstrained")
		}
	}
	xPivot := d[0]
	jj := 0
	for j := 0; j < n; j++ {
		if j == pivot {
			continue
		}
		xPivot -= C.At(0, j) * xElim[jj]
		jj++
	}
	xPivot /= cp
	x := make([]float64, 0, n)
	x = append(x, xElim[:pivot]...)
	x = append(x, xPivot)
	x = append(x, xElim[pivot:]...)
	return x, nil
}

//solveNormal solves min ‖Ax−b‖ through the normal equations AᵀAx=Aᵀb.
func solveNormal(A *mat.Dense, b []float64) ([]float64, error) {
	_, n := A.Dims()
	var G mat.Dense
	G.Mul(A.T(), A)
	var rhs mat.VecDense
	rhs.MulVec(A.T(), mat.NewVecDense(len(b), b))
	var x mat.VecDense
	if err := x.SolveVec(&G, &rhs); err != nil {
		return nil, gocg.CError{Msg: "solveNormal: " + err.Error(), Deco: []string{"update.solveNormal"}}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out, nil
}
