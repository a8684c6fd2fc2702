package gonativeblock

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// readStep is the largest read served by a single allocation. Larger reads
// grow with the data actually received.
const readStep = 64 << 10

// Buffer is the byte source columns decode from. It is owned by the transport
// layer and consumed by exactly one decode at a time.
type Buffer interface {
	// Read returns exactly n bytes or an error. The returned slice must not be
	// reused by the buffer afterwards: decoded arrays may alias it.
	Read(n int) ([]byte, error)
	// ReadStrings reads n length-prefixed strings.
	ReadStrings(n int) ([]string, error)
}

// ReadBuffer is a Buffer over an io.Reader using the native wire layout:
// little-endian fixed-width values and uvarint length-prefixed strings.
type ReadBuffer struct {
	r *bufio.Reader
}

// NewReadBuffer wraps r in a ReadBuffer.
func NewReadBuffer(r io.Reader) *ReadBuffer {
	if br, ok := r.(*bufio.Reader); ok {
		return &ReadBuffer{r: br}
	}
	return &ReadBuffer{r: bufio.NewReader(r)}
}

// Read implements Buffer.
func (b *ReadBuffer) Read(n int) ([]byte, error) {
	switch {
	case n < 0:
		return nil, errSizeOutOfRange(n)
	case n == 0:
		return []byte{}, nil
	case n <= readStep:
		p := make([]byte, n)
		if _, err := io.ReadFull(b.r, p); err != nil {
			return nil, errShortBuffer(n, err)
		}
		return p, nil
	}
	var out bytes.Buffer
	out.Grow(readStep)
	if _, err := io.CopyN(&out, b.r, int64(n)); err != nil {
		return nil, errShortBuffer(n, err)
	}
	return out.Bytes(), nil
}

// ReadUvarint reads an unsigned LEB128 integer.
func (b *ReadBuffer) ReadUvarint() (uint64, error) {
	v, err := binary.ReadUvarint(b.r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, err
		}
		return 0, errShortBuffer(1, err)
	}
	return v, nil
}

// ReadString reads one uvarint length-prefixed string.
func (b *ReadBuffer) ReadString() (string, error) {
	size, err := b.ReadUvarint()
	if errors.Is(err, io.EOF) {
		return "", errShortBuffer(1, err)
	} else if err != nil {
		return "", err
	}
	n, err := wireSize(size)
	if err != nil {
		return "", err
	}
	p, err := b.Read(n)
	if err != nil {
		return "", err
	}
	return string(p), nil
}

// ReadStrings implements Buffer.
func (b *ReadBuffer) ReadStrings(n int) ([]string, error) {
	if n < 0 {
		return nil, errSizeOutOfRange(n)
	}
	items := make([]string, 0, min(n, readStep))
	for i := 0; i < n; i++ {
		s, err := b.ReadString()
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, nil
}

// wireSize converts a size field read from the wire to an int.
func wireSize(v uint64) (int, error) {
	if v > math.MaxInt {
		return 0, errSizeOutOfRange(v)
	}
	return int(v), nil
}

// readUint64 reads one little-endian UInt64 from buf.
func readUint64(buf Buffer) (uint64, error) {
	p, err := buf.Read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(p), nil
}
