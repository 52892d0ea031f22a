/*
 * interactions_test.go, part of gocg.
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

import (
	"math"
	"testing"
)

//a generic, non-symmetric 4-bead configuration.
func gradTestFrame() *Frame {
	f := NewFrame(4)
	pos := [][3]float64{
		{0.1, 0.2, 0.0},
		{1.1, 0.0, 0.1},
		{1.3, 1.0, -0.2},
		{2.0, 1.2, 0.8},
	}
	for i, p := range pos {
		for k := 0; k < 3; k++ {
			f.Pos.Set(i, k, p[k])
		}
	}
	return f
}

//checkGrad compares the analytic gradient of a bonded interaction against
//central finite differences of its value.
func checkGrad(t *testing.T, b Bonded, f *Frame) {
	t.Helper()
	const h = 1e-6
	const tol = 1e-6
	for ki, bead := range b.Beads() {
		g := b.Grad(f, ki)
		for ax := 0; ax < 3; ax++ {
			orig := f.Pos.At(bead, ax)
			f.Pos.Set(bead, ax, orig+h)
			vp := b.Val(f)
			f.Pos.Set(bead, ax, orig-h)
			vm := b.Val(f)
			f.Pos.Set(bead, ax, orig)
			num := (vp - vm) / (2 * h)
			if math.Abs(num-g[ax]) > tol {
				t.Errorf("%T: bead %d axis %d: analytic %g, numeric %g", b, ki, ax, g[ax], num)
			}
		}
	}
}

func TestBondGrad(t *testing.T) {
	checkGrad(t, &Bond{I: 0, J: 1}, gradTestFrame())
}

func TestAngleGrad(t *testing.T) {
	checkGrad(t, &Angle{I: 0, J: 1, K: 2}, gradTestFrame())
}

func TestDihedralGrad(t *testing.T) {
	checkGrad(t, &Dihedral{I: 0, J: 1, K: 2, L: 3}, gradTestFrame())
}

func TestAngleVal(t *testing.T) {
	f := NewFrame(3)
	f.Pos.Set(0, 0, 1) //I on x
	f.Pos.Set(2, 1, 1) //K on y, vertex J at origin
	a := &Angle{I: 0, J: 1, K: 2}
	if got := a.Val(f); math.Abs(got-math.Pi/2) > 1e-12 {
		t.Errorf("expected a right angle, got %g", got)
	}
}

func TestDihedralVal(t *testing.T) {
	f := NewFrame(4)
	//planar cis configuration: I and L on the same side of the J-K axis
	f.Pos.Set(0, 1, 1)
	f.Pos.Set(2, 0, 1)
	f.Pos.Set(3, 0, 1)
	f.Pos.Set(3, 1, 1)
	d := &Dihedral{I: 0, J: 1, K: 2, L: 3}
	if got := d.Val(f); math.Abs(got) > 1e-12 {
		t.Errorf("expected a zero torsion, got %g", got)
	}
	//move L out of plane and the torsion must follow the right-hand rule
	f.Pos.Set(3, 2, 0.1)
	if got := d.Val(f); got <= 0 {
		t.Errorf("expected a positive torsion, got %g", got)
	}
}
