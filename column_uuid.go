package gonativeblock

import (
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/google/uuid"
)

const uuidWidth = 16

// uuidColumn decodes UUIDs, written as two little-endian UInt64 halves, into
// a GenericSequence of uuid.UUID values.
type uuidColumn struct{}

func (c *uuidColumn) Type() string { return "UUID" }

func (c *uuidColumn) DataType() arrow.DataType { return nil }

func (c *uuidColumn) Decode(buf Buffer, n int, _ DecodeMode) (Chunk, error) {
	if n < 0 || n > math.MaxInt/uuidWidth {
		return Chunk{}, errSizeOutOfRange(n)
	}
	if n == 0 {
		return Chunk{Kind: GenericSequence, Values: []interface{}{}}, nil
	}
	data, err := buf.Read(n * uuidWidth)
	if err != nil {
		return Chunk{}, err
	}
	values := make([]interface{}, n)
	for i := range values {
		values[i] = uuidFromWire(data[i*uuidWidth : (i+1)*uuidWidth])
	}
	return Chunk{Kind: GenericSequence, Values: values}, nil
}

func uuidFromWire(p []byte) uuid.UUID {
	var id uuid.UUID
	for i := 0; i < 8; i++ {
		id[i] = p[7-i]
		id[8+i] = p[15-i]
	}
	return id
}
