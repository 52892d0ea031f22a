/*
 * nblist.go, part of gocg.
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

//Pair is a non-bonded bead pair within a cutoff. Dist is the pair distance
//and Dir the normalized direction vector from bead I to bead J, both with
//the minimum-image convention applied.
type Pair struct {
	I, J int
	Dist float64
	Dir  [3]float64
}

//NeighborList enumerates bead pairs within a cutoff.
//It keeps its pair storage between calls to Generate, so a single list can
//be reused over the frames of a trajectory without reallocating.
type NeighborList struct {
	cutoff float64
	pairs  []Pair
}

//NewNeighborList returns a NeighborList with the given cutoff.
//It panics if the cutoff is not positive.
func NewNeighborList(cutoff float64) *NeighborList {
	if cutoff <= 0 {
		panic("gocg.NewNeighborList: cutoff must be positive")
	}
	ret := new(NeighborList)
	ret.cutoff = cutoff
	ret.pairs = make([]Pair, 0, 100)
	return ret
}

//Cutoff returns the cutoff of the list.
func (nb *NeighborList) Cutoff() float64 {
	return nb.cutoff
}

//Generate returns the pairs of beads within the cutoff in the given frame.
//With one bead list, every unordered pair from the list is considered
//(each pair appears once, with I < J in list order). With a second list
//given, pairs are formed across the two lists, skipping pairs where both
//members are the same bead. The returned slice is valid until the
//next call to Generate on the same NeighborList.
func (nb *NeighborList) Generate(f *Frame, list1 []int, list2 ...[]int) []Pair {
	nb.pairs = nb.pairs[:0]
	if len(list2) == 0 {
		for a := 0; a < len(list1); a++ {
			for b := a + 1; b < len(list1); b++ {
				nb.addIfClose(f, list1[a], list1[b])
			}
		}
		return nb.pairs
	}
	for _, i := range list1 {
		for _, j := range list2[0] {
			if i == j {
				continue
			}
			nb.addIfClose(f, i, j)
		}
	}
	return nb.pairs
}

func (nb *NeighborList) addIfClose(f *Frame, i, j int) {
	r, dir := f.Dist(i, j)
	if r < nb.cutoff {
		nb.pairs = append(nb.pairs, Pair{I: i, J: j, Dist: r, Dir: dir})
	}
}
