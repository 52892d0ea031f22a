/*
 * main.go, part of gocg.
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

/*
gofmatch derives coarse-grained force tables from a mapped trajectory
with forces, by block-averaged force matching.

	gofmatch -options run.json -top topol.json -trj traj.ftf [-out dir] [-plot]

It writes one .force table per interaction channel to the output
directory, and optionally a plot of each fitted curve.
*/
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	gocg "github.com/cgmatch/gocg"
	"github.com/cgmatch/gocg/cgplot"
	"github.com/cgmatch/gocg/fmatch"
	"github.com/cgmatch/gocg/traj/ftf"
)

func main() {
	optfile := flag.String("options", "run.json", "force-matching options file")
	topfile := flag.String("top", "topol.json", "topology file")
	trjfile := flag.String("trj", "traj.ftf", "trajectory with forces")
	outdir := flag.String("out", ".", "directory for the .force tables")
	doplot := flag.Bool("plot", false, "also write a plot per channel")
	flag.Parse()

	opts, err := readOptions(*optfile)
	if err != nil {
		log.Fatalf("cannot read options: %v", err)
	}
	top, err := readTopology(*topfile)
	if err != nil {
		log.Fatalf("cannot read topology: %v", err)
	}
	trj, err := ftf.New(*trjfile)
	if err != nil {
		log.Fatalf("cannot open trajectory: %v", err)
	}
	defer trj.Close()
	if trj.Len() != top.Len() {
		log.Fatalf("trajectory has %d beads, topology %d", trj.Len(), top.Len())
	}
	if !trj.HasForces() {
		log.Fatalf("trajectory %s carries no forces", *trjfile)
	}

	matcher, err := fmatch.New(top, opts)
	if err != nil {
		log.Fatalf("cannot set up force matching: %v", err)
	}
	frame := gocg.NewFrame(trj.Len())
	frames := 0
	for {
		err := trj.Next(frame)
		if err != nil {
			if _, ok := err.(gocg.LastFrameError); ok {
				break
			}
			log.Fatalf("reading frame %d: %v", frames, err)
		}
		if err := matcher.EvalFrame(frame); err != nil {
			log.Fatalf("evaluating frame %d: %v", frames, err)
		}
		frames++
	}
	log.Printf("processed %d frames in %d blocks", frames, matcher.Blocks())
	if err := matcher.Finalize(*outdir); err != nil {
		log.Fatalf("finalize: %v", err)
	}
	if *doplot {
		if err := plotChannels(matcher, *outdir); err != nil {
			log.Fatalf("plotting: %v", err)
		}
	}
}

func readOptions(name string) (*fmatch.Options, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	opts := new(fmatch.Options)
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

func readTopology(name string) (*gocg.Topology, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return gocg.ReadTopologyJSON(f)
}

func plotChannels(matcher *fmatch.Matcher, dir string) error {
	for _, c := range matcher.Channels() {
		n := c.NOut()
		x := make([]float64, n)
		y := make([]float64, n)
		yerr := make([]float64, n)
		for i := 0; i < n; i++ {
			x[i] = c.OutputX(i)
			y[i] = -c.Result[i] //tables hold the force, the fit holds its negative
			yerr[i] = c.Err[i]
		}
		name := filepath.Join(dir, c.Name+".png")
		if err := cgplot.ForceCurve(name, c.Name, x, y, yerr); err != nil {
			return err
		}
		log.Printf("wrote %s", name)
	}
	return nil
}
