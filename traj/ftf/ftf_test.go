/*
 * ftf_test.go, part of gocg.
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

package ftf

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	gocg "github.com/cgmatch/gocg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFrame(natoms, seed int) *gocg.Frame {
	f := gocg.NewFrame(natoms)
	f.Box = [3]float64{5, 5, 5}
	for i := 0; i < natoms; i++ {
		for k := 0; k < 3; k++ {
			f.Pos.Set(i, k, math.Sin(float64(seed+i*3+k)))
			f.F.Set(i, k, math.Cos(float64(seed+i*3+k)))
		}
	}
	f.SetHasForces(true)
	return f
}

func writeTestFile(t *testing.T, name, codec string, natoms, frames int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	w, err := NewWriter(path, natoms, true, codec)
	require.NoError(t, err)
	for s := 0; s < frames; s++ {
		require.NoError(t, w.WNext(testFrame(natoms, s)))
	}
	require.NoError(t, w.Close())
	return path
}

func TestRoundTrip(t *testing.T) {
	const natoms = 7
	const frames = 4
	for _, codec := range []string{"zstd", "lz4", "raw"} {
		t.Run(codec, func(t *testing.T) {
			path := writeTestFile(t, "traj.ftf", codec, natoms, frames)
			r, err := New(path)
			require.NoError(t, err)
			defer r.Close()
			assert.Equal(t, natoms, r.Len())
			assert.True(t, r.HasForces())
			f := gocg.NewFrame(natoms)
			for s := 0; s < frames; s++ {
				require.NoError(t, r.Next(f))
				want := testFrame(natoms, s)
				assert.Equal(t, want.Box, f.Box)
				assert.True(t, f.HasForces())
				for i := 0; i < natoms; i++ {
					for k := 0; k < 3; k++ {
						assert.Equal(t, want.Pos.At(i, k), f.Pos.At(i, k))
						assert.Equal(t, want.F.At(i, k), f.F.At(i, k))
					}
				}
			}
			err = r.Next(f)
			require.Error(t, err)
			_, ok := err.(gocg.LastFrameError)
			assert.True(t, ok, "end of trajectory should be a LastFrameError, got %v", err)
		})
	}
}

func TestNoForces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noforces.ftf")
	w, err := NewWriter(path, 3, false)
	require.NoError(t, err)
	f := testFrame(3, 0)
	f.SetHasForces(false)
	require.NoError(t, w.WNext(f))
	require.NoError(t, w.Close())
	r, err := New(path)
	require.NoError(t, err)
	defer r.Close()
	assert.False(t, r.HasForces())
	g := gocg.NewFrame(3)
	g.SetHasForces(true)
	require.NoError(t, r.Next(g))
	assert.False(t, g.HasForces())
}

func TestCorruptedFrame(t *testing.T) {
	path := writeTestFile(t, "traj.ftf", "zstd", 5, 2)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xff //flip a payload byte of the last frame
	bad := filepath.Join(t.TempDir(), "bad.ftf")
	require.NoError(t, os.WriteFile(bad, data, 0644))

	r, err := New(bad)
	require.NoError(t, err)
	defer r.Close()
	f := gocg.NewFrame(5)
	require.NoError(t, r.Next(f))
	err = r.Next(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum")
}

func TestBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ftf")
	require.NoError(t, os.WriteFile(path, []byte("not an ftf file at all"), 0644))
	_, err := New(path)
	require.Error(t, err)
}

func TestWriterChecks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traj.ftf")
	_, err := NewWriter(path, 3, true, "nosuchcodec")
	require.Error(t, err)

	w, err := NewWriter(path, 3, true)
	require.NoError(t, err)
	assert.Error(t, w.WNext(nil))
	assert.Error(t, w.WNext(testFrame(4, 0))) //wrong bead count
	bare := testFrame(3, 0)
	bare.SetHasForces(false)
	assert.Error(t, w.WNext(bare)) //forces required but missing
	require.NoError(t, w.Close())
	assert.Error(t, w.WNext(testFrame(3, 0))) //closed
}
