/*
 * rdf.go, part of gocg.
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

//Package rdf accumulates radial distribution functions over trajectory
//frames. The resulting tables are the inputs of the Boltzmann-inversion
//update step.
package rdf

import (
	"fmt"
	"math"

	gocg "github.com/cgmatch/gocg"
	"github.com/cgmatch/gocg/update"
	"gonum.org/v1/gonum/floats"
)

//Accumulator histograms the pair distances between two bead selections,
//frame by frame. It is not safe for concurrent use.
type Accumulator struct {
	beads1, beads2 []int
	sameType       bool
	nb             *gocg.NeighborList

	dividers []float64 //len bins+1, from 0 to rMax
	counts   []float64
	frames   int
	volSum   float64
}

//New returns an Accumulator for the pairs between the two bead types of
//the topology, with equidistant bins up to rMax. An empty type selects
//every bead.
func New(top *gocg.Topology, type1, type2 string, rMax float64, bins int) (*Accumulator, error) {
	if rMax <= 0 || bins <= 0 {
		return nil, gocg.CError{Msg: fmt.Sprintf("rdf.New: invalid histogram %g/%d", rMax, bins), Deco: []string{"rdf.New"}}
	}
	a := new(Accumulator)
	a.beads1 = top.BeadsOfType(type1)
	a.beads2 = top.BeadsOfType(type2)
	a.sameType = type1 == type2
	if len(a.beads1) == 0 || len(a.beads2) == 0 {
		return nil, gocg.CError{Msg: fmt.Sprintf("rdf.New: no beads of types %q, %q", type1, type2), Deco: []string{"rdf.New"}}
	}
	a.nb = gocg.NewNeighborList(rMax)
	a.dividers = floats.Span(make([]float64, bins+1), 0, rMax)
	a.counts = make([]float64, bins)
	return a, nil
}

//Bins returns the number of histogram bins.
func (a *Accumulator) Bins() int {
	return len(a.counts)
}

//Counts returns a view of the raw, un-normalized bin counts.
func (a *Accumulator) Counts() []float64 {
	return a.counts
}

//Frames returns the number of frames accumulated so far.
func (a *Accumulator) Frames() int {
	return a.frames
}

//AddFrame histograms the pair distances of one frame. The frame must have
//a box on all three axes, as the normalization needs its volume.
func (a *Accumulator) AddFrame(f *gocg.Frame) error {
	if f.Box[0] <= 0 || f.Box[1] <= 0 || f.Box[2] <= 0 {
		return gocg.CError{Msg: "AddFrame: frame has no box", Deco: []string{"rdf.AddFrame"}}
	}
	var pairs []gocg.Pair
	if a.sameType {
		pairs = a.nb.Generate(f, a.beads1)
	} else {
		pairs = a.nb.Generate(f, a.beads1, a.beads2)
	}
	rMax := a.dividers[len(a.dividers)-1]
	width := rMax / float64(len(a.counts))
	for _, p := range pairs {
		bin := int(p.Dist / width)
		if bin >= len(a.counts) {
			continue
		}
		a.counts[bin]++
	}
	a.frames++
	a.volSum += f.Box[0] * f.Box[1] * f.Box[2]
	return nil
}

//RDF normalizes the accumulated histogram by the ideal-gas pair density
//at the average box volume and returns it as a table: bin centers,
//g values, every point flagged in range.
func (a *Accumulator) RDF() (*update.Table, error) {
	if a.frames == 0 {
		return nil, gocg.CError{Msg: "RDF: no frames were accumulated", Deco: []string{"rdf.RDF"}}
	}
	vol := a.volSum / float64(a.frames)
	//unordered pairs for a self-RDF, ordered selections otherwise
	npairs := float64(len(a.beads1)) * float64(len(a.beads2))
	if a.sameType {
		n := float64(len(a.beads1))
		npairs = n * (n - 1) / 2
	}
	T := update.NewTable(a.Bins())
	for i := range a.counts {
		lo, hi := a.dividers[i], a.dividers[i+1]
		shell := 4 * math.Pi / 3 * (hi*hi*hi - lo*lo*lo)
		ideal := npairs * shell / vol
		T.X[i] = (lo + hi) / 2
		T.Y[i] = a.counts[i] / (float64(a.frames) * ideal)
		T.Flag[i] = update.FlagIn
	}
	return T, nil
}
