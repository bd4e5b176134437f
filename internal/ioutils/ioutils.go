// Package ioutils provides length-prefixed section encoding helpers for the
// constraint system serialization format.
package ioutils

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/ronanh/intcomp"
)

var errInvalidLength = errors.New("invalid data length")

// CompressAndWriteUints32 compresses a slice of uint32 and writes it to w.
// It returns the compression buffer (possibly extended) for future use.
func CompressAndWriteUints32(w io.Writer, input []uint32, buffer []uint32) ([]uint32, error) {
	buffer = buffer[:0]
	buffer = intcomp.CompressUint32(input, buffer)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(buffer))); err != nil {
		return buffer, err
	}
	return buffer, binary.Write(w, binary.LittleEndian, buffer)
}

// ReadAndDecompressUints32 reads a compressed slice of uint32 from in and
// decompresses it. It returns the compression buffer for future use, the
// number of bytes consumed and the decompressed slice.
func ReadAndDecompressUints32(in []byte, buffer []uint32) ([]uint32, int, []uint32, error) {
	if len(in) < 8 {
		return buffer, 0, nil, errInvalidLength
	}
	length := binary.LittleEndian.Uint64(in[:8])
	if uint64(len(in)-8) < 4*length {
		return buffer, 8, nil, errInvalidLength
	}
	buffer = buffer[:0]
	for i := uint64(0); i < length; i++ {
		buffer = append(buffer, binary.LittleEndian.Uint32(in[8+4*i:]))
	}
	return buffer, 8 + 4*int(length), intcomp.UncompressUint32(buffer, nil), nil
}

// WriteUints64 writes a length-prefixed little-endian slice of uint64 to w.
// No compression is applied; callers use this for high-entropy data such as
// coefficient limbs.
func WriteUints64(w io.Writer, input []uint64) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(len(input))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, input)
}

// ReadUints64 reads a length-prefixed little-endian slice of uint64 from in.
// It returns the number of bytes consumed and the decoded slice.
func ReadUints64(in []byte) (int, []uint64, error) {
	if len(in) < 8 {
		return 0, nil, errInvalidLength
	}
	length := binary.LittleEndian.Uint64(in[:8])
	if uint64(len(in)-8) < 8*length {
		return 8, nil, errInvalidLength
	}
	out := make([]uint64, length)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(in[8+8*i:])
	}
	return 8 + 8*int(length), out, nil
}
