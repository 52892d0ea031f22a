/*
 * fmatch.go, part of gocg.
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
Package fmatch implements force matching of coarse-grained interactions.
Each named interaction (a bonded group or a non-bonded pair of bead types)
is a channel backed by a cubic spline. For every trajectory frame, the
spline-basis gradients of the interaction coordinates are accumulated into
a design matrix with one row per bead and Cartesian axis, and the observed
bead forces into the right-hand side. After every block of frames the
resulting least-squares problem is solved, either directly or restricted to
the null space of the spline-smoothness constraints, and the fitted curves
are evaluated and accumulated so that Finalize can report per-point means
with error bars over the blocks.
*/
package fmatch

import (
	"bufio"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"

	gocg "github.com/cgmatch/gocg"
	"github.com/cgmatch/gocg/spline"
	"gonum.org/v1/gonum/mat"
)

//ChannelOptions configures one force-matched interaction. Bonded channels
//name a bonded-interaction group of the topology; non-bonded channels give
//one or two bead types, and Max doubles as the pair cutoff.
type ChannelOptions struct {
	Name      string  `json:"name"`
	Type1     string  `json:"type1,omitempty"` //non-bonded only; empty selects every bead
	Type2     string  `json:"type2,omitempty"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Step      float64 `json:"step"`
	OutPoints int     `json:"out_points,omitempty"` //output points per spline interval, default 10
}

//Options configures a force-matching run.
type Options struct {
	FramesPerBlock int              `json:"frames_per_block"`
	Constrained    bool             `json:"constrained_ls"` //constrained instead of simple least squares
	Bonded         []ChannelOptions `json:"bonded,omitempty"`
	NonBonded      []ChannelOptions `json:"non_bonded,omitempty"`
}

//DefaultOutPoints is the number of output grid points per spline interval
//used when a channel doesn't set its own.
const DefaultOutPoints = 10

//SplineChannel is one force-matched interaction: its spline, its column
//block in the design matrix, and its running block statistics.
type SplineChannel struct {
	Index  int
	Name   string
	Bonded bool
	Type1  string //non-bonded only
	Type2  string

	Spline    *spline.Cubic
	N         int //spline intervals
	MatrPos   int //first column of this channel's coefficient block
	OutPoints int

	//Result and Err hold the mean force curve and its standard error
	//per output grid point. They are filled by Finalize.
	Result []float64
	Err    []float64

	delX     float64
	blockRes []float64
	resSum   []float64
	resSum2  []float64

	beads1, beads2 []int
	nb             *gocg.NeighborList
}

//NOut returns the number of output grid points of the channel.
func (c *SplineChannel) NOut() int {
	return len(c.resSum)
}

//OutputX returns the coordinate of the ith output grid point.
func (c *SplineChannel) OutputX(i int) float64 {
	return c.Spline.GridPoint(0) + float64(i)*c.delX
}

func newSplineChannel(index int, bonded bool, matrPos int, o ChannelOptions) (*SplineChannel, error) {
	if o.Name == "" {
		return nil, gocg.CError{Msg: "channel without a name", Deco: []string{"newSplineChannel"}}
	}
	if o.Step <= 0 || o.Max <= o.Min {
		return nil, gocg.CError{Msg: fmt.Sprintf("channel %s: invalid grid %g:%g:%g", o.Name, o.Min, o.Step, o.Max), Deco: []string{"newSplineChannel"}}
	}
	c := new(SplineChannel)
	c.Index = index
	c.Name = o.Name
	c.Bonded = bonded
	c.Type1 = o.Type1
	c.Type2 = o.Type2
	c.Spline = spline.New()
	c.N = c.Spline.GenerateGrid(o.Min, o.Max, o.Step) - 1
	c.MatrPos = matrPos
	c.OutPoints = o.OutPoints
	if c.OutPoints <= 0 {
		c.OutPoints = DefaultOutPoints
	}
	nout := c.OutPoints * (c.N + 1)
	c.Result = make([]float64, nout)
	c.Err = make([]float64, nout)
	c.resSum = make([]float64, nout)
	c.resSum2 = make([]float64, nout)
	c.blockRes = make([]float64, 2*(c.N+1))
	c.delX = (c.Spline.GridPoint(c.N) - c.Spline.GridPoint(0)) / float64(nout)
	if !bonded {
		c.nb = gocg.NewNeighborList(o.Max)
	}
	log.Printf("fmatch: %d spline intervals for interaction %s", c.N, c.Name)
	return c, nil
}

//Matcher assembles and solves the force-matching least-squares problem.
//It is single threaded: frames are fed one at a time through EvalFrame and
//the matrices are owned by the Matcher for the whole run.
type Matcher struct {
	top      *gocg.Topology
	channels []*SplineChannel

	constrained    bool
	framesPerBlock int
	nBeads         int

	constrRows int //total smoothness rows over all channels
	cols       int
	lsqOffset  int //first sample row of A (smoothness rows come first in simple mode)

	A *mat.Dense
	b *mat.VecDense
	B *mat.Dense //constraint matrix, constrained mode only

	frame  int //frame counter within the current block
	blocks int
}

//New returns a Matcher for the given topology and options, with its
//matrices sized for one block of frames and the smoothness conditions
//already seeded.
func New(top *gocg.Topology, opts *Options) (*Matcher, error) {
	if opts.FramesPerBlock <= 0 {
		return nil, gocg.CError{Msg: "frames_per_block must be positive", Deco: []string{"fmatch.New"}}
	}
	if len(opts.Bonded)+len(opts.NonBonded) == 0 {
		return nil, gocg.CError{Msg: "no interaction channels given", Deco: []string{"fmatch.New"}}
	}
	M := new(Matcher)
	M.top = top
	M.constrained = opts.Constrained
	M.framesPerBlock = opts.FramesPerBlock
	M.nBeads = top.Len()
	for _, o := range opts.Bonded {
		c, err := newSplineChannel(len(M.channels), true, M.cols, o)
		if err != nil {
			return nil, gocg.ErrDecorate(err, "fmatch.New")
		}
		if len(top.InteractionsInGroup(c.Name)) == 0 {
			log.Printf("fmatch: warning: bonded group %s has no interactions in the topology", c.Name)
		}
		M.constrRows += c.N + 1
		M.cols += 2 * (c.N + 1)
		M.channels = append(M.channels, c)
	}
	for _, o := range opts.NonBonded {
		c, err := newSplineChannel(len(M.channels), false, M.cols, o)
		if err != nil {
			return nil, gocg.ErrDecorate(err, "fmatch.New")
		}
		c.beads1 = top.BeadsOfType(c.Type1)
		c.beads2 = top.BeadsOfType(c.Type2)
		if len(c.beads1) == 0 || len(c.beads2) == 0 {
			log.Printf("fmatch: warning: non-bonded channel %s selects no beads (types %q, %q)", c.Name, c.Type1, c.Type2)
		}
		M.constrRows += c.N + 1
		M.cols += 2 * (c.N + 1)
		M.channels = append(M.channels, c)
	}
	sampleRows := 3 * M.nBeads * M.framesPerBlock
	if M.constrained {
		M.lsqOffset = 0
		M.A = mat.NewDense(sampleRows, M.cols, nil)
		M.b = mat.NewVecDense(sampleRows, nil)
		M.B = mat.NewDense(M.constrRows, M.cols, nil)
		M.seedSmoothingRows(M.B)
	} else {
		M.lsqOffset = M.constrRows
		M.A = mat.NewDense(M.constrRows+sampleRows, M.cols, nil)
		M.b = mat.NewVecDense(M.constrRows+sampleRows, nil)
		M.seedSmoothingRows(M.A)
	}
	return M, nil
}

//Channels returns the channels of the run, in design-matrix column order.
func (M *Matcher) Channels() []*SplineChannel {
	return M.channels
}

//Blocks returns the number of blocks solved so far.
func (M *Matcher) Blocks() int {
	return M.blocks
}

//seedSmoothingRows writes the spline smoothness conditions of every
//channel into the given matrix: into A itself for simple least squares,
//into the constraint matrix for the constrained variant.
func (M *Matcher) seedSmoothingRows(dst mat.Mutable) {
	row, col := 0, 0
	for _, c := range M.channels {
		c.Spline.AddBCToFitMatrix(dst, row, col)
		row += c.N + 1
		col += 2 * (c.N + 1)
	}
}

//EvalFrame samples one trajectory frame: every channel adds its rows to
//the design matrix, and the frame's forces fill the right-hand side. A
//frame without force data is reported via the log and leaves its
//right-hand-side rows zero; this is not fatal. When the frame completes a
//block, the block is solved and accumulated before EvalFrame returns.
func (M *Matcher) EvalFrame(f *gocg.Frame) error {
	if f.Len() != M.nBeads {
		return gocg.CError{Msg: fmt.Sprintf("frame has %d beads, topology has %d", f.Len(), M.nBeads), Deco: []string{"EvalFrame"}}
	}
	for _, c := range M.channels {
		if c.Bonded {
			M.evalBonded(f, c)
		} else {
			M.evalNonbonded(f, c)
		}
	}
	if f.HasForces() {
		row := M.lsqOffset + 3*M.nBeads*M.frame
		for i := 0; i < M.nBeads; i++ {
			M.b.SetVec(row+i, f.F.At(i, 0))
			M.b.SetVec(row+M.nBeads+i, f.F.At(i, 1))
			M.b.SetVec(row+2*M.nBeads+i, f.F.At(i, 2))
		}
	} else {
		log.Printf("fmatch: ERROR: no forces in frame %d of block %d", M.frame, M.blocks+1)
	}
	M.frame++
	if M.frame == M.framesPerBlock {
		if err := M.endBlock(); err != nil {
			return gocg.ErrDecorate(err, "EvalFrame")
		}
	}
	return nil
}

func (M *Matcher) evalBonded(f *gocg.Frame, c *SplineChannel) {
	row := M.lsqOffset + 3*M.nBeads*M.frame
	for _, inter := range M.top.InteractionsInGroup(c.Name) {
		v := inter.Val(f)
		for k, bead := range inter.Beads() {
			g := inter.Grad(f, k)
			c.Spline.AddToFitMatrix(M.A, v, row+bead, c.MatrPos, g[0])
			c.Spline.AddToFitMatrix(M.A, v, row+M.nBeads+bead, c.MatrPos, g[1])
			c.Spline.AddToFitMatrix(M.A, v, row+2*M.nBeads+bead, c.MatrPos, g[2])
		}
	}
}

func (M *Matcher) evalNonbonded(f *gocg.Frame, c *SplineChannel) {
	var pairs []gocg.Pair
	if c.Type1 == c.Type2 {
		pairs = c.nb.Generate(f, c.beads1)
	} else {
		pairs = c.nb.Generate(f, c.beads1, c.beads2)
	}
	row := M.lsqOffset + 3*M.nBeads*M.frame
	for _, p := range pairs {
		//the pair contributes equal and opposite rows for its two beads
		c.Spline.AddToFitMatrix(M.A, p.Dist, row+p.I, c.MatrPos, p.Dir[0])
		c.Spline.AddToFitMatrix(M.A, p.Dist, row+M.nBeads+p.I, c.MatrPos, p.Dir[1])
		c.Spline.AddToFitMatrix(M.A, p.Dist, row+2*M.nBeads+p.I, c.MatrPos, p.Dir[2])
		c.Spline.AddToFitMatrix(M.A, p.Dist, row+p.J, c.MatrPos, -p.Dir[0])
		c.Spline.AddToFitMatrix(M.A, p.Dist, row+M.nBeads+p.J, c.MatrPos, -p.Dir[1])
		c.Spline.AddToFitMatrix(M.A, p.Dist, row+2*M.nBeads+p.J, c.MatrPos, -p.Dir[2])
	}
}

//endBlock solves the current block, accumulates the fitted curves into the
//running sums and resets the matrices for the next block.
func (M *Matcher) endBlock() error {
	var x *mat.VecDense
	var err error
	if M.constrained {
		x, err = nullspaceSolve(M.A, M.b, M.B)
	} else {
		x, err = leastSquares(M.A, M.b)
	}
	if err != nil {
		return gocg.ErrDecorate(err, "endBlock")
	}
	M.blocks++
	for _, c := range M.channels {
		for i := range c.blockRes {
			c.blockRes[i] = x.AtVec(c.MatrPos + i)
		}
		c.Spline.SetCoeffs(c.blockRes)
		outX := c.Spline.GridPoint(0)
		for i := range c.resSum {
			v := c.Spline.Eval(outX)
			c.resSum[i] += v
			c.resSum2[i] += v * v
			outX += c.delX
		}
	}
	log.Printf("fmatch: block %d done", M.blocks)
	M.resetBlock()
	return nil
}

//Abort discards the partially filled current block without touching the
//statistics of the blocks already solved.
func (M *Matcher) Abort() {
	if M.frame > 0 {
		log.Printf("fmatch: discarding partial block with %d frames", M.frame)
	}
	M.resetBlock()
}

func (M *Matcher) resetBlock() {
	M.checkDims()
	M.frame = 0
	M.A.Zero()
	M.b.Zero()
	if M.constrained {
		M.seedSmoothingRows(M.B)
	} else {
		M.seedSmoothingRows(M.A)
	}
}

//checkDims asserts the matrix-layout invariants: the channel coefficient
//blocks partition the columns without overlap, and the allocated dimensions
//match the registered channels. A violation is a logic error, so it panics.
func (M *Matcher) checkDims() {
	col, rows := 0, 0
	for _, c := range M.channels {
		if c.MatrPos != col {
			panic(fmt.Sprintf("fmatch: channel %s starts at column %d, want %d", c.Name, c.MatrPos, col))
		}
		col += 2 * (c.N + 1)
		rows += c.N + 1
	}
	if col != M.cols || rows != M.constrRows {
		panic(fmt.Sprintf("fmatch: channels need %dx%d, matrices allocated for %dx%d", rows, col, M.constrRows, M.cols))
	}
	ar, ac := M.A.Dims()
	if ac != M.cols || ar != M.lsqOffset+3*M.nBeads*M.framesPerBlock {
		panic(fmt.Sprintf("fmatch: design matrix is %dx%d, want %dx%d", ar, ac, M.lsqOffset+3*M.nBeads*M.framesPerBlock, M.cols))
	}
}

//Finalize computes, for every channel and output grid point, the mean
//force over the solved blocks and its standard error, and writes one
//<name>.force file per channel in dir, each line holding the grid
//coordinate, the negated mean force and the error.
func (M *Matcher) Finalize(dir string) error {
	if M.blocks == 0 {
		return gocg.CError{Msg: "no complete blocks were accumulated", Deco: []string{"Finalize"}}
	}
	for _, c := range M.channels {
		for i := range c.Result {
			c.Result[i] = c.resSum[i] / float64(M.blocks)
			c.Err[i] = math.Sqrt(c.resSum2[i]/float64(M.blocks) - c.Result[i]*c.Result[i])
		}
		if err := writeForceFile(dir, c); err != nil {
			return gocg.ErrDecorate(err, "Finalize")
		}
	}
	return nil
}

func writeForceFile(dir string, c *SplineChannel) error {
	name := filepath.Join(dir, c.Name+".force")
	fout, err := os.Create(name)
	if err != nil {
		return gocg.CError{Msg: "can't create " + name + ": " + err.Error(), Deco: []string{"writeForceFile"}}
	}
	defer fout.Close()
	w := bufio.NewWriter(fout)
	fmt.Fprintf(w, "# interaction No. %d\n", c.Index)
	for i := range c.Result {
		fmt.Fprintf(w, "%g %g %g\n", c.OutputX(i), -c.Result[i], c.Err[i])
	}
	if err := w.Flush(); err != nil {
		return gocg.CError{Msg: "can't write " + name + ": " + err.Error(), Deco: []string{"writeForceFile"}}
	}
	return nil
}
