/*
 * gocg.go, part of gocg.
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
	"fmt"
	"math"

	v3 "github.com/cgmatch/gocg/v3"
)

//Bead is a coarse-grained particle, representing one or more atoms of the
//underlying topology. Positions and forces are not kept here but in a Frame,
//where they live in a matrix, one row per bead.
type Bead struct {
	Name   string
	Type   string
	ID     int
	Mass   float64
	Charge float64
}

//Copy returns a copy of the Bead object.
func (B *Bead) Copy() *Bead {
	if B == nil {
		panic("Attempted to copy a nil bead")
	}
	nb := new(Bead)
	*nb = *B
	return nb
}

//Topology holds the beads of a coarse-grained system together with its named
//bonded-interaction groups. Interactions refer to beads by index into the
//bead table, never by pointer.
type Topology struct {
	beads  []*Bead
	groups map[string][]Bonded
	order  []string //group names, in registration order
}

//NewTopology returns a Topology with no beads or interactions.
func NewTopology() *Topology {
	ret := new(Topology)
	ret.beads = make([]*Bead, 0, 10)
	ret.groups = make(map[string][]Bonded)
	return ret
}

//AppendBead adds a bead at the end of the bead table and returns its index.
func (T *Topology) AppendBead(b *Bead) int {
	T.beads = append(T.beads, b)
	return len(T.beads) - 1
}

//Bead returns the bead corresponding to the index i. It panics if
//out of range, as it is a fundamental function.
func (T *Topology) Bead(i int) *Bead {
	if i < 0 || i >= len(T.beads) {
		panic(fmt.Sprintf("gocg: bead index %d out of range (%d beads)", i, len(T.beads)))
	}
	return T.beads[i]
}

//Len returns the number of beads in the topology.
func (T *Topology) Len() int {
	return len(T.beads)
}

//AddInteraction registers a bonded interaction under the named group,
//creating the group if needed. It returns an error if any of the
//interaction's bead indexes is out of range.
func (T *Topology) AddInteraction(group string, b Bonded) error {
	for _, i := range b.Beads() {
		if i < 0 || i >= len(T.beads) {
			return CError{fmt.Sprintf("interaction in group %s refers to bead %d, but topology has %d beads", group, i, len(T.beads)), []string{"AddInteraction"}}
		}
	}
	if _, ok := T.groups[group]; !ok {
		T.order = append(T.order, group)
	}
	T.groups[group] = append(T.groups[group], b)
	return nil
}

//InteractionsInGroup returns the bonded interactions registered under the
//given name, or nil if the group doesn't exist.
func (T *Topology) InteractionsInGroup(name string) []Bonded {
	return T.groups[name]
}

//Groups returns the names of the bonded-interaction groups, in
//registration order.
func (T *Topology) Groups() []string {
	return T.order
}

//BeadsOfType returns the indexes of all beads of the given type.
//An empty type selects every bead.
func (T *Topology) BeadsOfType(btype string) []int {
	ret := make([]int, 0, len(T.beads))
	for i, b := range T.beads {
		if btype == "" || b.Type == btype {
			ret = append(ret, i)
		}
	}
	return ret
}

//Frame is one trajectory snapshot: positions and, optionally, forces for
//every bead, plus the orthorhombic box lengths (zero if unset). A Frame is
//overwritten on every read, so it must not be retained across Next calls.
type Frame struct {
	Pos  *v3.Matrix
	F    *v3.Matrix
	Box  [3]float64
	hasF bool
}

//NewFrame returns a Frame with room for n beads, with no forces marked.
func NewFrame(n int) *Frame {
	ret := new(Frame)
	ret.Pos = v3.Zeros(n)
	ret.F = v3.Zeros(n)
	return ret
}

//Len returns the number of beads the frame holds.
func (f *Frame) Len() int {
	return f.Pos.NVecs()
}

//HasForces reports whether the frame carries force data.
func (f *Frame) HasForces() bool {
	return f.hasF
}

//SetHasForces marks whether the frame carries force data.
func (f *Frame) SetHasForces(has bool) {
	f.hasF = has
}

//distVec returns the vector from bead i to bead j, applying the
//minimum-image convention on the box axes that are set.
func (f *Frame) distVec(i, j int) [3]float64 {
	var d [3]float64
	for k := 0; k < 3; k++ {
		d[k] = f.Pos.At(j, k) - f.Pos.At(i, k)
		if f.Box[k] > 0 {
			for d[k] > 0.5*f.Box[k] {
				d[k] -= f.Box[k]
			}
			for d[k] < -0.5*f.Box[k] {
				d[k] += f.Box[k]
			}
		}
	}
	return d
}

//Dist returns the distance between beads i and j, applying the minimum-image
//convention on the box axes that are set, and the normalized direction
//vector from i to j.
func (f *Frame) Dist(i, j int) (float64, [3]float64) {
	d := f.distVec(i, j)
	r := math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
	if r > 0 {
		for k := 0; k < 3; k++ {
			d[k] /= r
		}
	}
	return r, d
}
