/*
 * ftf.go, part of gocg.
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
Package ftf implements the force-trajectory format, a compressed binary
frame stream that, unlike the usual coordinate-only trajectory formats,
carries the per-bead forces that force matching needs. Each frame is a
single compressed record (zstd or lz4) with an xxhash checksum, holding the
box, the positions and, optionally, the forces of every bead.
*/
package ftf

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	gocg "github.com/cgmatch/gocg"
	"github.com/cespare/xxhash/v2"
)

const magic = "FTF1"

//header flags
const (
	flagForces uint8 = 1 << 0
)

//per-frame encoding marker: a frame that doesn't shrink under the file's
//codec is stored raw.
const (
	encRaw uint8 = iota
	encCodec
)

type header struct {
	NAtoms int32
	Flags  uint8
	Codec  uint8
	_      int16
}

//Writer writes an ftf trajectory.
type Writer struct {
	f         *os.File
	natoms    int
	forces    bool
	codec     codec
	codecID   uint8
	filename  string
	writeable bool
	buf       []byte
}

//NewWriter creates an ftf file for natoms beads. withForces declares
//whether frames will carry force data. The optional codec is one of
//"zstd" (the default), "lz4" or "raw".
func NewWriter(name string, natoms int, withForces bool, codecName ...string) (*Writer, error) {
	W := new(Writer)
	W.filename = name
	W.natoms = natoms
	W.forces = withForces
	cname := "zstd"
	if len(codecName) > 0 {
		cname = codecName[0]
	}
	var err error
	W.codec, W.codecID, err = codecByName(cname)
	if err != nil {
		return nil, errDecorate(err, "NewWriter")
	}
	W.f, err = os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	if _, err := W.f.WriteString(magic); err != nil {
		return nil, Error{err.Error(), name, []string{"NewWriter"}, true}
	}
	h := header{NAtoms: int32(natoms), Codec: W.codecID}
	if withForces {
		h.Flags |= flagForces
	}
	if err := binary.Write(W.f, binary.LittleEndian, &h); err != nil {
		return nil, Error{err.Error(), name, []string{"NewWriter"}, true}
	}
	W.buf = make([]byte, W.payloadSize())
	W.writeable = true
	return W, nil
}

func (W *Writer) payloadSize() int {
	per := 1
	if W.forces {
		per = 2
	}
	return 8 * (3 + W.natoms*3*per)
}

//Len returns the number of beads per frame.
func (W *Writer) Len() int {
	return W.natoms
}

//WNext writes one frame. The frame must carry force data if the file was
//created with forces, and have the bead count the file was created with.
func (W *Writer) WNext(f *gocg.Frame) error {
	if !W.writeable {
		return Error{TrajUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	if f == nil {
		return Error{NilFrame, W.filename, []string{"WNext"}, true}
	}
	if f.Len() != W.natoms {
		return Error{fmt.Sprintf("%d beads given, %d expected", f.Len(), W.natoms), W.filename, []string{"WNext"}, true}
	}
	if W.forces && !f.HasForces() {
		return Error{NoForces, W.filename, []string{"WNext"}, true}
	}
	off := 0
	put := func(v float64) {
		binary.LittleEndian.PutUint64(W.buf[off:], math.Float64bits(v))
		off += 8
	}
	for k := 0; k < 3; k++ {
		put(f.Box[k])
	}
	for i := 0; i < W.natoms; i++ {
		for k := 0; k < 3; k++ {
			put(f.Pos.At(i, k))
		}
	}
	if W.forces {
		for i := 0; i < W.natoms; i++ {
			for k := 0; k < 3; k++ {
				put(f.F.At(i, k))
			}
		}
	}
	enc := encRaw
	payload := W.buf
	if W.codecID != codecRawID {
		compressed, err := W.codec.compress(W.buf)
		if err != nil {
			return Error{err.Error(), W.filename, []string{"WNext"}, true}
		}
		if len(compressed) > 0 && len(compressed) < len(W.buf) {
			enc = encCodec
			payload = compressed
		}
	}
	rec := struct {
		Enc  uint8
		Len  int32
		Sum  uint64
	}{enc, int32(len(payload)), xxhash.Sum64(payload)}
	if err := binary.Write(W.f, binary.LittleEndian, &rec); err != nil {
		return Error{err.Error(), W.filename, []string{"WNext"}, true}
	}
	if _, err := W.f.Write(payload); err != nil {
		return Error{err.Error(), W.filename, []string{"WNext"}, true}
	}
	return nil
}

//Close flushes and closes the file. A closed Writer rejects further frames.
func (W *Writer) Close() error {
	if W == nil || !W.writeable {
		return nil
	}
	W.writeable = false
	return W.f.Close()
}

//Reader reads an ftf trajectory. It implements gocg.Traj.
type Reader struct {
	f        *os.File
	natoms   int
	forces   bool
	codec    codec
	codecID  uint8
	filename string
	readable bool
	buf      []byte //raw payload
	cbuf     []byte //compressed payload
}

//New opens an ftf trajectory for reading and parses its header.
func New(name string) (*Reader, error) {
	R := new(Reader)
	R.filename = name
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
	}
	m := make([]byte, len(magic))
	if _, err := io.ReadFull(R.f, m); err != nil {
		return nil, Error{WrongFormat + ": short header", name, []string{"New"}, true}
	}
	if string(m) != magic {
		return nil, Error{WrongFormat + ": bad magic number", name, []string{"New"}, true}
	}
	var h header
	if err := binary.Read(R.f, binary.LittleEndian, &h); err != nil {
		return nil, Error{WrongFormat + ": " + err.Error(), name, []string{"New"}, true}
	}
	if h.NAtoms <= 0 {
		return nil, Error{WrongFormat + ": non-positive bead count", name, []string{"New"}, true}
	}
	R.natoms = int(h.NAtoms)
	R.forces = h.Flags&flagForces != 0
	R.codec, err = codecByID(h.Codec)
	if err != nil {
		return nil, errDecorate(err, "New")
	}
	R.codecID = h.Codec
	per := 1
	if R.forces {
		per = 2
	}
	R.buf = make([]byte, 8*(3+R.natoms*3*per))
	R.readable = true
	return R, nil
}

//Readable returns true if the object is ready to have frames read
//from it.
func (R *Reader) Readable() bool {
	return R.readable
}

//Len returns the number of beads per frame.
func (R *Reader) Len() int {
	return R.natoms
}

//HasForces reports whether the trajectory carries force data.
func (R *Reader) HasForces() bool {
	return R.forces
}

//Next reads the next frame into f, which must have room for Len() beads.
//After the last frame it returns a gocg.LastFrameError.
func (R *Reader) Next(f *gocg.Frame) error {
	if !R.readable {
		return Error{TrajUnIniRead, R.filename, []string{"Next"}, true}
	}
	if f == nil {
		return Error{NilFrame, R.filename, []string{"Next"}, true}
	}
	if f.Len() != R.natoms {
		return Error{fmt.Sprintf("frame has room for %d beads, %d needed", f.Len(), R.natoms), R.filename, []string{"Next"}, true}
	}
	var rec struct {
		Enc  uint8
		Len  int32
		Sum  uint64
	}
	if err := binary.Read(R.f, binary.LittleEndian, &rec); err != nil {
		if err == io.EOF {
			R.readable = false
			return newlastFrameError(R.filename, "Next")
		}
		return Error{ReadError + ": " + err.Error(), R.filename, []string{"Next"}, true}
	}
	if rec.Len <= 0 || (rec.Enc == encRaw && int(rec.Len) != len(R.buf)) {
		return Error{WrongFormat + ": bad frame record length", R.filename, []string{"Next"}, true}
	}
	if cap(R.cbuf) < int(rec.Len) {
		R.cbuf = make([]byte, rec.Len)
	}
	R.cbuf = R.cbuf[:rec.Len]
	if _, err := io.ReadFull(R.f, R.cbuf); err != nil {
		return Error{ReadError + ": " + err.Error(), R.filename, []string{"Next"}, true}
	}
	if xxhash.Sum64(R.cbuf) != rec.Sum {
		return Error{ChecksumFailed, R.filename, []string{"Next"}, true}
	}
	payload := R.cbuf
	if rec.Enc == encCodec {
		var err error
		payload, err = R.codec.decompress(R.cbuf, R.buf)
		if err != nil {
			return Error{ReadError + ": " + err.Error(), R.filename, []string{"Next"}, true}
		}
	}
	if len(payload) != len(R.buf) {
		return Error{WrongFormat + ": bad frame payload size", R.filename, []string{"Next"}, true}
	}
	off := 0
	get := func() float64 {
		v := math.Float64frombits(binary.LittleEndian.Uint64(payload[off:]))
		off += 8
		return v
	}
	for k := 0; k < 3; k++ {
		f.Box[k] = get()
	}
	for i := 0; i < R.natoms; i++ {
		for k := 0; k < 3; k++ {
			f.Pos.Set(i, k, get())
		}
	}
	if R.forces {
		for i := 0; i < R.natoms; i++ {
			for k := 0; k < 3; k++ {
				f.F.Set(i, k, get())
			}
		}
	}
	f.SetHasForces(R.forces)
	return nil
}

//Close closes the underlying file. Further reads return an error.
func (R *Reader) Close() error {
	if R == nil || !R.readable {
		return nil
	}
	R.readable = false
	return R.f.Close()
}
