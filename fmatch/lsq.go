//go:build !purego
// +build !purego

/*
 * lsq.go, part of gocg.
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

package fmatch

import (
	"log"

	gocg "github.com/cgmatch/gocg"
	"gonum.org/v1/gonum/mat"
)

//leastSquares solves min ||Ax-b|| via QR. Rank-deficient systems are not
//treated as an error: they fall back to the minimum-norm solution, which
//is then silently accepted.
func leastSquares(A *mat.Dense, b *mat.VecDense) (*mat.VecDense, error) {
	_, c := A.Dims()
	x := mat.NewVecDense(c, nil)
	var qr mat.QR
	qr.Factorize(A)
	if err := qr.SolveVecTo(x, false, b); err != nil {
		log.Printf("fmatch: fit matrix is (near) rank deficient, using the minimum-norm solution")
		return minNormSolve(A, b)
	}
	return x, nil
}

//minNormSolve returns the minimum-norm least-squares solution of Ax=b,
//built from the thin SVD with small singular values dropped.
func minNormSolve(A *mat.Dense, b *mat.VecDense) (*mat.VecDense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDThin); !ok {
		return nil, gocg.CError{Msg: "SVD of the fit matrix did not converge", Deco: []string{"minNormSolve"}}
	}
	r, c := A.Dims()
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)
	big := r
	if c > big {
		big = c
	}
	tol := float64(big) * 2.220446049250313e-16 * s[0]
	x := mat.NewVecDense(c, nil)
	for j, sj := range s {
		if sj <= tol {
			break //singular values come sorted
		}
		var utb float64
		for i := 0; i < r; i++ {
			utb += u.At(i, j) * b.AtVec(i)
		}
		utb /= sj
		for i := 0; i < c; i++ {
			x.SetVec(i, x.AtVec(i)+v.At(i, j)*utb)
		}
	}
	return x, nil
}

//nullspaceSolve solves min ||Ax-b|| subject to Bx=0. The transposed
//constraint matrix is QR-factorized; the orthogonal factor's trailing
//columns span the null space of B, the design matrix is projected onto
//them, the free coefficients are solved by ordinary least squares and the
//solution is rotated back. The result satisfies Bx=0 to floating-point
//accuracy.
func nullspaceSolve(A *mat.Dense, b *mat.VecDense, B *mat.Dense) (*mat.VecDense, error) {
	p, n := B.Dims()
	m, an := A.Dims()
	if an != n {
		panic("fmatch: design and constraint matrices disagree on the coefficient count")
	}
	if p >= n {
		return nil, gocg.CError{Msg: "constraints leave no free coefficients", Deco: []string{"nullspaceSolve"}}
	}
	Bt := mat.DenseCopyOf(B.T())
	var qr mat.QR
	qr.Factorize(Bt)
	var Q mat.Dense
	qr.QTo(&Q) //n x n; columns p..n-1 are an orthonormal basis of the null space of B
	var AQ mat.Dense
	AQ.Mul(A, &Q)
	A2 := mat.DenseCopyOf(AQ.Slice(0, m, p, n))
	xfree, err := leastSquares(A2, b)
	if err != nil {
		return nil, gocg.ErrDecorate(err, "nullspaceSolve")
	}
	//the first p rotated coefficients stay zero, which is what keeps Bx=0
	xq := mat.NewVecDense(n, nil)
	for i := 0; i < n-p; i++ {
		xq.SetVec(p+i, xfree.AtVec(i))
	}
	x := mat.NewVecDense(n, nil)
	x.MulVec(&Q, xq)
	return x, nil
}
