/*
 * json.go, part of gocg.
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
	"encoding/json"
	"fmt"
	"io"
)

//The JSON topology format. One document holds the bead table and the named
//bonded-interaction groups; interactions name their kind ("bond", "angle"
//or "dihedral") and list bead indexes into the table.

type jsonBead struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Mass   float64 `json:"mass,omitempty"`
	Charge float64 `json:"charge,omitempty"`
}

type jsonBonded struct {
	Kind  string `json:"kind"`
	Beads []int  `json:"beads"`
}

type jsonTopology struct {
	Beads  []jsonBead              `json:"beads"`
	Groups map[string][]jsonBonded `json:"groups,omitempty"`
}

//ReadTopologyJSON reads a topology from its JSON representation.
func ReadTopologyJSON(r io.Reader) (*Topology, error) {
	var jt jsonTopology
	if err := json.NewDecoder(r).Decode(&jt); err != nil {
		return nil, CError{"failed to decode topology: " + err.Error(), []string{"ReadTopologyJSON"}}
	}
	T := NewTopology()
	for i, b := range jt.Beads {
		T.AppendBead(&Bead{Name: b.Name, Type: b.Type, ID: i, Mass: b.Mass, Charge: b.Charge})
	}
	for name, group := range jt.Groups {
		for _, b := range group {
			bonded, err := bondedFromJSON(b)
			if err != nil {
				return nil, ErrDecorate(err, "ReadTopologyJSON")
			}
			if err := T.AddInteraction(name, bonded); err != nil {
				return nil, ErrDecorate(err, "ReadTopologyJSON")
			}
		}
	}
	return T, nil
}

func bondedFromJSON(b jsonBonded) (Bonded, error) {
	wrong := func(want int) error {
		return CError{fmt.Sprintf("%s needs %d beads, got %d", b.Kind, want, len(b.Beads)), []string{"bondedFromJSON"}}
	}
	switch b.Kind {
	case "bond":
		if len(b.Beads) != 2 {
			return nil, wrong(2)
		}
		return &Bond{b.Beads[0], b.Beads[1]}, nil
	case "angle":
		if len(b.Beads) != 3 {
			return nil, wrong(3)
		}
		return &Angle{b.Beads[0], b.Beads[1], b.Beads[2]}, nil
	case "dihedral":
		if len(b.Beads) != 4 {
			return nil, wrong(4)
		}
		return &Dihedral{b.Beads[0], b.Beads[1], b.Beads[2], b.Beads[3]}, nil
	}
	return nil, CError{"unknown interaction kind " + b.Kind, []string{"bondedFromJSON"}}
}

//WriteTopologyJSON writes the JSON representation of a topology.
func WriteTopologyJSON(w io.Writer, T *Topology) error {
	jt := jsonTopology{Beads: make([]jsonBead, 0, T.Len())}
	for i := 0; i < T.Len(); i++ {
		b := T.Bead(i)
		jt.Beads = append(jt.Beads, jsonBead{Name: b.Name, Type: b.Type, Mass: b.Mass, Charge: b.Charge})
	}
	if len(T.Groups()) > 0 {
		jt.Groups = make(map[string][]jsonBonded)
	}
	for _, name := range T.Groups() {
		for _, bonded := range T.InteractionsInGroup(name) {
			var kind string
			switch bonded.(type) {
			case *Bond:
				kind = "bond"
			case *Angle:
				kind = "angle"
			case *Dihedral:
				kind = "dihedral"
			default:
				return CError{fmt.Sprintf("can't serialize interaction of type %T", bonded), []string{"WriteTopologyJSON"}}
			}
			jt.Groups[name] = append(jt.Groups[name], jsonBonded{Kind: kind, Beads: bonded.Beads()})
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	if err := enc.Encode(jt); err != nil {
		return CError{"failed to encode topology: " + err.Error(), []string{"WriteTopologyJSON"}}
	}
	return nil
}
