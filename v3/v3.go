/*
 * v3.go, part of gocg.
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

//Package v3 implements a Matrix type representing a row-major Nx3 matrix.
//It is used to represent the Cartesian coordinates, forces and gradients of
//sets of beads in gocg. It is based on gonum's Dense type, with restrictions
//owed to the fixed number of columns.
package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space, one per row.
type Matrix struct {
	*mat.Dense
}

//Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//New returns a Matrix with 3 columns filled from data, or an error if
//the length of data is not divisible by 3.
func New(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, fmt.Errorf("v3.New: input slice length %d not divisible by 3", l)
	}
	return &Matrix{mat.NewDense(rows, cols, data)}, nil
}

//Dense2Matrix converts a 3-column gonum Dense to a Matrix, sharing the data.
//It panics if A does not have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic("v3.Dense2Matrix: given matrix doesn't have 3 columns")
	}
	return &Matrix{A}
}

//Matrix2Dense returns the gonum Dense underlying A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

//VecView returns a view of the ith vector of the matrix. Changes in the
//view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	return &Matrix{F.Slice(i, i+1, 0, 3).(*mat.Dense)}
}

//SetVec sets the ith vector of the receiver to the first vector of A.
func (F *Matrix) SetVec(i int, A *Matrix) {
	for k := 0; k < 3; k++ {
		F.Set(i, k, A.At(0, k))
	}
}

//Norm returns the Euclidean norm of the first vector of the matrix.
func (F *Matrix) Norm() float64 {
	return math.Sqrt(F.Dot(F))
}

//Dot returns the dot product between the first vectors of F and B.
func (F *Matrix) Dot(B *Matrix) float64 {
	var d float64
	for k := 0; k < 3; k++ {
		d += F.At(0, k) * B.At(0, k)
	}
	return d
}

//Cross puts the cross product of the first vectors of a and b in the
//first vector of the receiver.
func (F *Matrix) Cross(a, b *Matrix) {
	ax, ay, az := a.At(0, 0), a.At(0, 1), a.At(0, 2)
	bx, by, bz := b.At(0, 0), b.At(0, 1), b.At(0, 2)
	F.Set(0, 0, ay*bz-az*by)
	F.Set(0, 1, az*bx-ax*bz)
	F.Set(0, 2, ax*by-ay*bx)
}

//Unit normalizes the first vector of a into the first vector of the
//receiver. It panics on a zero vector, as the direction is undefined.
func (F *Matrix) Unit(a *Matrix) {
	n := a.Norm()
	if n == 0 {
		panic("v3.Unit: zero vector")
	}
	for k := 0; k < 3; k++ {
		F.Set(0, k, a.At(0, k)/n)
	}
}
