/*
 * gocg_test.go, part of gocg.
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
	"strings"
	"testing"
)

func testTopology() *Topology {
	top := NewTopology()
	for i := 0; i < 4; i++ {
		name := "CG" + string(rune('A'+i))
		btype := "A"
		if i >= 2 {
			btype = "B"
		}
		top.AppendBead(&Bead{Name: name, Type: btype, ID: i, Mass: 72.0})
	}
	return top
}

func TestTopology(t *testing.T) {
	top := testTopology()
	if top.Len() != 4 {
		t.Fatalf("expected 4 beads, got %d", top.Len())
	}
	if b := top.Bead(2); b.Type != "B" {
		t.Errorf("bead 2 has type %s, expected B", b.Type)
	}
	a := top.BeadsOfType("A")
	if len(a) != 2 || a[0] != 0 || a[1] != 1 {
		t.Errorf("wrong beads of type A: %v", a)
	}
	all := top.BeadsOfType("")
	if len(all) != 4 {
		t.Errorf("empty type should select every bead, got %v", all)
	}
	if err := top.AddInteraction("bonds", &Bond{I: 0, J: 1}); err != nil {
		t.Fatal(err)
	}
	if err := top.AddInteraction("bonds", &Bond{I: 1, J: 2}); err != nil {
		t.Fatal(err)
	}
	if err := top.AddInteraction("bonds", &Bond{I: 1, J: 7}); err == nil {
		t.Error("expected an error for an out of range bead index")
	}
	if got := len(top.InteractionsInGroup("bonds")); got != 2 {
		t.Errorf("expected 2 bonds, got %d", got)
	}
	if got := top.Groups(); len(got) != 1 || got[0] != "bonds" {
		t.Errorf("wrong group list: %v", got)
	}
}

func TestFrameDist(t *testing.T) {
	f := NewFrame(2)
	f.Pos.Set(0, 0, 0.1)
	f.Pos.Set(1, 0, 0.5)
	r, dir := f.Dist(0, 1)
	if math.Abs(r-0.4) > 1e-12 {
		t.Errorf("expected distance 0.4, got %g", r)
	}
	if dir != [3]float64{1, 0, 0} {
		t.Errorf("wrong direction: %v", dir)
	}
	//with a periodic box the image at -0.6 is closer
	f.Box = [3]float64{1, 1, 1}
	f.Pos.Set(1, 0, 0.9)
	r, dir = f.Dist(0, 1)
	if math.Abs(r-0.2) > 1e-12 {
		t.Errorf("expected minimum-image distance 0.2, got %g", r)
	}
	if dir[0] != -1 {
		t.Errorf("minimum image should point backwards, got %v", dir)
	}
}

func TestNeighborList(t *testing.T) {
	f := NewFrame(4)
	//a line of beads 0.3 apart
	for i := 0; i < 4; i++ {
		f.Pos.Set(i, 0, 0.3*float64(i))
	}
	nb := NewNeighborList(0.35)
	pairs := nb.Generate(f, []int{0, 1, 2, 3})
	if len(pairs) != 3 {
		t.Fatalf("expected 3 pairs within the cutoff, got %d", len(pairs))
	}
	for _, p := range pairs {
		if p.J != p.I+1 {
			t.Errorf("unexpected pair %d-%d", p.I, p.J)
		}
		if math.Abs(p.Dist-0.3) > 1e-12 {
			t.Errorf("pair %d-%d has distance %g", p.I, p.J, p.Dist)
		}
		if p.Dir[0] != 1 {
			t.Errorf("pair %d-%d has direction %v", p.I, p.J, p.Dir)
		}
	}
	//two lists: cross pairs only, shared indexes skipped
	pairs = nb.Generate(f, []int{0, 1}, []int{1, 2})
	if len(pairs) != 2 {
		t.Fatalf("expected pairs 0-1 and 1-2, got %d pairs", len(pairs))
	}
	wider := NewNeighborList(10)
	if got := len(wider.Generate(f, []int{0, 1, 2, 3})); got != 6 {
		t.Errorf("expected all 6 pairs, got %d", got)
	}
}

func TestTopologyJSON(t *testing.T) {
	top := testTopology()
	top.AddInteraction("bonds", &Bond{I: 0, J: 1})
	top.AddInteraction("angles", &Angle{I: 0, J: 1, K: 2})
	top.AddInteraction("dihedrals", &Dihedral{I: 0, J: 1, K: 2, L: 3})
	var buf strings.Builder
	if err := WriteTopologyJSON(&buf, top); err != nil {
		t.Fatal(err)
	}
	got, err := ReadTopologyJSON(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != top.Len() {
		t.Fatalf("expected %d beads, got %d", top.Len(), got.Len())
	}
	if got.Bead(3).Name != top.Bead(3).Name || got.Bead(3).Type != top.Bead(3).Type {
		t.Errorf("bead 3 round-trip mismatch: %+v", got.Bead(3))
	}
	for _, group := range []string{"bonds", "angles", "dihedrals"} {
		want := top.InteractionsInGroup(group)
		have := got.InteractionsInGroup(group)
		if len(want) != len(have) {
			t.Fatalf("group %s: expected %d interactions, got %d", group, len(want), len(have))
		}
		wb := want[0].Beads()
		hb := have[0].Beads()
		if len(wb) != len(hb) {
			t.Fatalf("group %s: bead count mismatch", group)
		}
		for i := range wb {
			if wb[i] != hb[i] {
				t.Errorf("group %s: bead %d mismatch", group, i)
			}
		}
	}
}
