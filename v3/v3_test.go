/*
 * v3_test.go, part of gocg.
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

package v3

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	A, err := New([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}
	if A.NVecs() != 2 {
		t.Errorf("expected 2 vectors, got %d", A.NVecs())
	}
	if A.At(1, 2) != 6 {
		t.Errorf("wrong element at 1,2: %g", A.At(1, 2))
	}
	if _, err := New([]float64{1, 2, 3, 4}); err == nil {
		t.Error("expected an error for a slice not divisible by 3")
	}
}

func TestVecView(t *testing.T) {
	A, _ := New([]float64{1, 2, 3, 4, 5, 6})
	v := A.VecView(1)
	if v.At(0, 0) != 4 {
		t.Errorf("view has wrong first element: %g", v.At(0, 0))
	}
	v.Set(0, 0, 40)
	if A.At(1, 0) != 40 {
		t.Error("changes in the view should reflect in the original")
	}
	B := Zeros(3)
	B.SetVec(2, v)
	if B.At(2, 0) != 40 || B.At(2, 2) != 6 {
		t.Errorf("SetVec copied the wrong values: %v", B.RawRowView(2))
	}
}

func TestVectorOps(t *testing.T) {
	x, _ := New([]float64{1, 0, 0})
	y, _ := New([]float64{0, 1, 0})
	if d := x.Dot(y); d != 0 {
		t.Errorf("expected orthogonal vectors, dot is %g", d)
	}
	z := Zeros(1)
	z.Cross(x, y)
	if z.At(0, 2) != 1 || z.At(0, 0) != 0 || z.At(0, 1) != 0 {
		t.Errorf("x cross y should be z, got %v", z.RawRowView(0))
	}
	a, _ := New([]float64{3, 4, 0})
	if n := a.Norm(); math.Abs(n-5) > 1e-12 {
		t.Errorf("expected norm 5, got %g", n)
	}
	u := Zeros(1)
	u.Unit(a)
	if math.Abs(u.Norm()-1) > 1e-12 || math.Abs(u.At(0, 0)-0.6) > 1e-12 {
		t.Errorf("wrong unit vector: %v", u.RawRowView(0))
	}
}
