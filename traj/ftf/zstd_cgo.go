/*
 * zstd_cgo.go, part of gocg.
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

//go:build cgozstd

package ftf

import (
	"github.com/valyala/gozstd"
)

//zstdCodec wraps libzstd through cgo. It is faster than the pure-Go
//implementation on large frames but needs the C library at build time.
type zstdCodec struct{}

func newZstdCodec() (codec, error) {
	return zstdCodec{}, nil
}

func (zstdCodec) compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

func (zstdCodec) decompress(data, dst []byte) ([]byte, error) {
	return gozstd.Decompress(dst[:0], data)
}
