/*
 * interactions.go, part of gocg.
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

import "math"

//Bonded is a bonded interaction of a topology: a bond, an angle or a
//dihedral. Beads returns the indexes of the participating beads, Val the
//scalar internal coordinate of the interaction in a frame (bond length,
//angle, dihedral angle) and Grad the gradient of that coordinate with
//respect to the Cartesian position of the kth participating bead.
type Bonded interface {
	Beads() []int
	Val(f *Frame) float64
	Grad(f *Frame, k int) [3]float64
}

//small-vector helpers. These work on [3]float64 instead of v3.Matrix to
//avoid allocating inside the per-frame loops.

func dot3(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross3(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func norm3(a [3]float64) float64 {
	return math.Sqrt(dot3(a, a))
}

func scale3(a [3]float64, s float64) [3]float64 {
	return [3]float64{a[0] * s, a[1] * s, a[2] * s}
}

func add3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

//Bond is a two-bead bonded interaction; its internal coordinate is the
//distance between the beads.
type Bond struct {
	I, J int
}

func (B *Bond) Beads() []int { return []int{B.I, B.J} }

//Val returns the bond length in the given frame.
func (B *Bond) Val(f *Frame) float64 {
	r, _ := f.Dist(B.I, B.J)
	return r
}

//Grad returns the gradient of the bond length with respect to the kth
//participating bead: the normalized I->J vector, negated for the first bead.
func (B *Bond) Grad(f *Frame, k int) [3]float64 {
	_, dir := f.Dist(B.I, B.J)
	if k == 0 {
		return scale3(dir, -1)
	}
	return dir
}

//Angle is a three-bead bonded interaction with the vertex at the middle
//bead; its internal coordinate is the I-J-K angle in radians.
type Angle struct {
	I, J, K int //J is the vertex
}

func (A *Angle) Beads() []int { return []int{A.I, A.J, A.K} }

//Val returns the angle, in radians, in the given frame.
func (A *Angle) Val(f *Frame) float64 {
	a := f.distVec(A.J, A.I)
	b := f.distVec(A.J, A.K)
	c := dot3(a, b) / (norm3(a) * norm3(b))
	//floating point can push |c| slightly past 1
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

//Grad returns the gradient of the angle with respect to the kth
//participating bead (0: I, 1: J, 2: K).
func (A *Angle) Grad(f *Frame, k int) [3]float64 {
	a := f.distVec(A.J, A.I)
	b := f.distVec(A.J, A.K)
	na := norm3(a)
	nb := norm3(b)
	c := dot3(a, b) / (na * nb)
	s := math.Sqrt(1 - c*c)
	if s < 1e-12 {
		//collinear configuration, gradient ill-defined
		return [3]float64{}
	}
	gi := scale3(add3(scale3(a, c/(na*na)), scale3(b, -1/(na*nb))), 1/s)
	gk := scale3(add3(scale3(b, c/(nb*nb)), scale3(a, -1/(na*nb))), 1/s)
	switch k {
	case 0:
		return gi
	case 2:
		return gk
	case 1:
		return scale3(add3(gi, gk), -1)
	}
	panic("Angle.Grad: bead index must be 0, 1 or 2")
}

//Dihedral is a four-bead bonded interaction; its internal coordinate is the
//torsion angle around the J-K axis, in radians and in (-pi, pi].
type Dihedral struct {
	I, J, K, L int
}

func (D *Dihedral) Beads() []int { return []int{D.I, D.J, D.K, D.L} }

//Val returns the torsion angle in the given frame.
func (D *Dihedral) Val(f *Frame) float64 {
	b1 := f.distVec(D.I, D.J)
	b2 := f.distVec(D.J, D.K)
	b3 := f.distVec(D.K, D.L)
	m := cross3(b1, b2)
	n := cross3(b2, b3)
	y := dot3(cross3(m, n), scale3(b2, 1/norm3(b2)))
	x := dot3(m, n)
	return math.Atan2(y, x)
}

//Grad returns the gradient of the torsion angle with respect to the kth
//participating bead (0: I, 1: J, 2: K, 3: L).
func (D *Dihedral) Grad(f *Frame, k int) [3]float64 {
	b1 := f.distVec(D.I, D.J)
	b2 := f.distVec(D.J, D.K)
	b3 := f.distVec(D.K, D.L)
	m := cross3(b1, b2)
	n := cross3(b2, b3)
	nb2 := norm3(b2)
	gi := scale3(m, -nb2/dot3(m, m))
	gl := scale3(n, nb2/dot3(n, n))
	switch k {
	case 0:
		return gi
	case 3:
		return gl
	}
	p := dot3(b1, b2) / (nb2 * nb2)
	q := dot3(b3, b2) / (nb2 * nb2)
	switch k {
	case 1:
		return add3(scale3(gi, p-1), scale3(gl, -q))
	case 2:
		return add3(scale3(gl, q-1), scale3(gi, -p))
	}
	panic("Dihedral.Grad: bead index must be 0, 1, 2 or 3")
}
