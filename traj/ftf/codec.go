/*
 * codec.go, part of gocg.
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
	"fmt"

	"github.com/pierrec/lz4/v4"
)

const (
	codecRawID  uint8 = 0
	codecZstdID uint8 = 1
	codecLz4ID  uint8 = 2
)

//codec compresses and decompresses whole frame payloads. decompress
//writes into dst when the implementation allows it, and returns the
//decompressed data in either case.
type codec interface {
	compress(data []byte) ([]byte, error)
	decompress(data, dst []byte) ([]byte, error)
}

func codecByName(name string) (codec, uint8, error) {
	switch name {
	case "raw":
		return rawCodec{}, codecRawID, nil
	case "zstd":
		c, err := newZstdCodec()
		return c, codecZstdID, err
	case "lz4":
		return &lz4Codec{}, codecLz4ID, nil
	}
	return nil, 0, Error{fmt.Sprintf("unknown codec %q", name), "", nil, true}
}

func codecByID(id uint8) (codec, error) {
	switch id {
	case codecRawID:
		return rawCodec{}, nil
	case codecZstdID:
		return newZstdCodec()
	case codecLz4ID:
		return &lz4Codec{}, nil
	}
	return nil, Error{fmt.Sprintf("%s: unknown codec id %d", WrongFormat, id), "", nil, true}
}

type rawCodec struct{}

func (rawCodec) compress(data []byte) ([]byte, error) { return data, nil }

func (rawCodec) decompress(data, dst []byte) ([]byte, error) { return data, nil }

type lz4Codec struct {
	c   lz4.Compressor
	dst []byte
}

func (l *lz4Codec) compress(data []byte) ([]byte, error) {
	bound := lz4.CompressBlockBound(len(data))
	if cap(l.dst) < bound {
		l.dst = make([]byte, bound)
	}
	n, err := l.c.CompressBlock(data, l.dst[:bound])
	if err != nil {
		return nil, err
	}
	//n==0 means the block is incompressible, the caller stores it raw.
	return l.dst[:n], nil
}

func (l *lz4Codec) decompress(data, dst []byte) ([]byte, error) {
	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}
