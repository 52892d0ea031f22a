/*
 * rdf_test.go, part of gocg.
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

package rdf

import (
	"math"
	"testing"

	gocg "github.com/cgmatch/gocg"
	"github.com/cgmatch/gocg/update"
)

func lineTopology(n int) *gocg.Topology {
	top := gocg.NewTopology()
	for i := 0; i < n; i++ {
		top.AppendBead(&gocg.Bead{Name: "CG", Type: "A", ID: i})
	}
	return top
}

func TestAccumulator(t *testing.T) {
	//three beads on a line, pair distances 0.33, 0.33 and 0.66
	top := lineTopology(3)
	a, err := New(top, "A", "A", 1.0, 10)
	if err != nil {
		t.Fatal(err)
	}
	f := gocg.NewFrame(3)
	f.Box = [3]float64{2, 2, 2}
	for i := 0; i < 3; i++ {
		f.Pos.Set(i, 0, 0.33*float64(i))
	}
	if err := a.AddFrame(f); err != nil {
		t.Fatal(err)
	}
	counts := a.Counts()
	for i, want := range []float64{0, 0, 0, 2, 0, 0, 1, 0, 0, 0} {
		if counts[i] != want {
			t.Errorf("bin %d has count %g, want %g", i, counts[i], want)
		}
	}
	T, err := a.RDF()
	if err != nil {
		t.Fatal(err)
	}
	if T.Len() != 10 {
		t.Fatalf("table has %d points, want 10", T.Len())
	}
	if math.Abs(T.X[3]-0.35) > 1e-12 {
		t.Errorf("bin 3 center is %g, want 0.35", T.X[3])
	}
	//g of the populated bins, by the ideal-gas normalization:
	//count/(frames * npairs * Vshell/V) with 3 unordered pairs and V=8
	shell := 4 * math.Pi / 3 * (math.Pow(0.4, 3) - math.Pow(0.3, 3))
	want := 2 / (3 * shell / 8)
	if math.Abs(T.Y[3]-want) > 1e-10 {
		t.Errorf("g at bin 3 is %g, want %g", T.Y[3], want)
	}
	if T.Y[0] != 0 || T.Flag[0] != update.FlagIn {
		t.Errorf("empty bin should read g=0 with an in-range flag, got %g %c", T.Y[0], T.Flag[0])
	}
}

func TestAccumulatorChecks(t *testing.T) {
	top := lineTopology(2)
	if _, err := New(top, "B", "A", 1.0, 10); err == nil {
		t.Error("expected an error for a type with no beads")
	}
	if _, err := New(top, "A", "A", -1, 10); err == nil {
		t.Error("expected an error for a negative range")
	}
	a, err := New(top, "A", "A", 1.0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.AddFrame(gocg.NewFrame(2)); err == nil {
		t.Error("expected an error for a frame without a box")
	}
	if _, err := a.RDF(); err == nil {
		t.Error("expected an error with no frames accumulated")
	}
}
