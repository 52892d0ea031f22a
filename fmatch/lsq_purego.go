//go:build purego
// +build purego

/*
 * lsq_purego.go, part of gocg.
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

//Legacy solver path backed by go.matrix, kept for builds that must avoid
//the LAPACK-style routines. It solves the normal equations instead of
//using a factorization of A itself, so it is less accurate on badly
//conditioned blocks than the default path.

package fmatch

import (
	"math"

	gocg "github.com/cgmatch/gocg"
	matrix "github.com/skelterjohn/go.matrix"
	"gonum.org/v1/gonum/mat"
)

//leastSquares solves min ||Ax-b|| through the normal equations
//A'A x = A'b, with Gauss-Jordan elimination in the manner of go.matrix.
//A zero pivot leaves the corresponding coefficient at zero rather than
//failing, which approximates the minimum-norm behavior of the default
//solver.
func leastSquares(A *mat.Dense, b *mat.VecDense) (*mat.VecDense, error) {
	r, c := A.Dims()
	G := matrix.Zeros(c, c)
	rhs := make([]float64, c)
	for i := 0; i < c; i++ {
		for j := i; j < c; j++ {
			var s float64
			for k := 0; k < r; k++ {
				s += A.At(k, i) * A.At(k, j)
			}
			G.Set(i, j, s)
			G.Set(j, i, s)
		}
		var s float64
		for k := 0; k < r; k++ {
			s += A.At(k, i) * b.AtVec(k)
		}
		rhs[i] = s
	}
	x, err := solveGaussJordan(G, rhs)
	if err != nil {
		return nil, err
	}
	ret := mat.NewVecDense(c, nil)
	for i, v := range x {
		ret.SetVec(i, v)
	}
	return ret, nil
}

func solveGaussJordan(G *matrix.DenseMatrix, rhs []float64) ([]float64, error) {
	c := len(rhs)
	aug, err := G.Augment(matrix.MakeDenseMatrix(rhs, c, 1))
	if err != nil {
		return nil, gocg.CError{Msg: "can't augment the normal equations: " + err.Error(), Deco: []string{"solveGaussJordan"}}
	}
	scale := aug.Get(0, 0)
	for i := 1; i < c; i++ {
		if v := math.Abs(aug.Get(i, i)); v > scale {
			scale = v
		}
	}
	tiny := 1e-14 * scale
	for i := 0; i < c; i++ {
		j := i
		for k := i; k < c; k++ {
			if math.Abs(aug.Get(k, i)) > math.Abs(aug.Get(j, i)) {
				j = k
			}
		}
		if j != i {
			aug.SwapRows(i, j)
		}
		piv := aug.Get(i, i)
		if math.Abs(piv) <= tiny {
			//dependent column: force the coefficient to zero
			for k := 0; k < c; k++ {
				aug.Set(i, k, 0)
			}
			aug.Set(i, i, 1)
			aug.Set(i, c, 0)
			continue
		}
		aug.ScaleRow(i, 1.0/piv)
		for k := 0; k < c; k++ {
			if k == i {
				continue
			}
			aug.ScaleAddRow(k, i, -aug.Get(k, i))
		}
	}
	x := make([]float64, c)
	for i := 0; i < c; i++ {
		x[i] = aug.Get(i, c)
	}
	return x, nil
}

//nullspaceSolve solves min ||Ax-b|| subject to Bx=0, reconstructing the
//orthogonal factor of B' explicitly from its Householder reflectors and
//restricting the solve to the trailing, null-space columns.
func nullspaceSolve(A *mat.Dense, b *mat.VecDense, B *mat.Dense) (*mat.VecDense, error) {
	p, n := B.Dims()
	m, an := A.Dims()
	if an != n {
		panic("fmatch: design and constraint matrices disagree on the coefficient count")
	}
	if p >= n {
		return nil, gocg.CError{Msg: "constraints leave no free coefficients", Deco: []string{"nullspaceSolve"}}
	}
	//R starts as B' and is triangularized in place; Q accumulates the
	//reflector product so that B' = Q R.
	R := matrix.Zeros(n, p)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			R.Set(i, j, B.At(j, i))
		}
	}
	Q := matrix.Eye(n)
	v := make([]float64, n)
	for k := 0; k < p; k++ {
		var nrm float64
		for i := k; i < n; i++ {
			nrm += R.Get(i, k) * R.Get(i, k)
		}
		nrm = math.Sqrt(nrm)
		if nrm == 0 {
			continue
		}
		alpha := -nrm
		if R.Get(k, k) < 0 {
			alpha = nrm
		}
		for i := 0; i < k; i++ {
			v[i] = 0
		}
		v[k] = R.Get(k, k) - alpha
		for i := k + 1; i < n; i++ {
			v[i] = R.Get(i, k)
		}
		var vv float64
		for i := k; i < n; i++ {
			vv += v[i] * v[i]
		}
		if vv == 0 {
			continue
		}
		beta := 2 / vv
		for j := k; j < p; j++ { //R = H R
			var s float64
			for i := k; i < n; i++ {
				s += v[i] * R.Get(i, j)
			}
			s *= beta
			for i := k; i < n; i++ {
				R.Set(i, j, R.Get(i, j)-s*v[i])
			}
		}
		for i := 0; i < n; i++ { //Q = Q H
			var s float64
			for j := k; j < n; j++ {
				s += Q.Get(i, j) * v[j]
			}
			s *= beta
			for j := k; j < n; j++ {
				Q.Set(i, j, Q.Get(i, j)-s*v[j])
			}
		}
	}
	//project A onto the null-space columns of Q
	free := n - p
	A2 := mat.NewDense(m, free, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < free; j++ {
			var s float64
			for k := 0; k < n; k++ {
				s += A.At(i, k) * Q.Get(k, p+j)
			}
			A2.Set(i, j, s)
		}
	}
	xfree, err := leastSquares(A2, b)
	if err != nil {
		return nil, gocg.ErrDecorate(err, "nullspaceSolve")
	}
	x := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		var s float64
		for j := 0; j < free; j++ {
			s += Q.Get(i, p+j) * xfree.AtVec(j)
		}
		x.SetVec(i, s)
	}
	return x, nil
}
