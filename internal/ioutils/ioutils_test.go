package ioutils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUints32RoundTrip(t *testing.T) {
	assert := require.New(t)

	input := []uint32{0, 1, 1, 2, 3, 5, 8, 13, 1 << 30, 42}

	var buf bytes.Buffer
	_, err := CompressAndWriteUints32(&buf, input, nil)
	assert.NoError(err)

	_, n, out, err := ReadAndDecompressUints32(buf.Bytes(), nil)
	assert.NoError(err)
	assert.Equal(buf.Len(), n)
	assert.Equal(input, out)
}

func TestUints64RoundTrip(t *testing.T) {
	assert := require.New(t)

	input := []uint64{0, 1, 1 << 60, 0xdeadbeef, ^uint64(0)}

	var buf bytes.Buffer
	assert.NoError(WriteUints64(&buf, input))

	n, out, err := ReadUints64(buf.Bytes())
	assert.NoError(err)
	assert.Equal(buf.Len(), n)
	assert.Equal(input, out)
}

func TestReadTruncated(t *testing.T) {
	assert := require.New(t)

	var buf bytes.Buffer
	_, err := CompressAndWriteUints32(&buf, []uint32{1, 2, 3}, nil)
	assert.NoError(err)

	_, _, _, err = ReadAndDecompressUints32(buf.Bytes()[:buf.Len()-1], nil)
	assert.Error(err)

	_, _, err = ReadUints64([]byte{0, 1})
	assert.Error(err)
}
