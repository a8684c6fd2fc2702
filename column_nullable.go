package gonativeblock

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/bitutil"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// nullableColumn reads a null map of n bytes (1 marks a null) followed by n
// values of the nested column.
type nullableColumn struct {
	name   string
	nested Column
	mem    memory.Allocator
}

func (c *nullableColumn) Type() string { return c.name }

func (c *nullableColumn) DataType() arrow.DataType { return c.nested.DataType() }

// Nested returns the wrapped column.
func (c *nullableColumn) Nested() Column { return c.nested }

func (c *nullableColumn) Decode(buf Buffer, n int, mode DecodeMode) (Chunk, error) {
	if n == 0 || mode.Has(SkipNullMap) {
		return c.nested.Decode(buf, n, mode&^SkipNullMap)
	}
	nullMap, err := buf.Read(n)
	if err != nil {
		return Chunk{}, err
	}
	values, err := c.nested.Decode(buf, n, mode)
	if err != nil {
		return Chunk{}, err
	}
	return applyNullMap(values, nullMap), nil
}

// applyNullMap marks the rows flagged in nullMap as missing.
func applyNullMap(chunk Chunk, nullMap []byte) Chunk {
	nulls := 0
	for _, flag := range nullMap {
		if flag != 0 {
			nulls++
		}
	}
	if nulls == 0 {
		return chunk
	}

	if chunk.Kind == GenericSequence {
		for i, flag := range nullMap {
			if flag != 0 {
				chunk.Values[i] = nil
			}
		}
		return chunk
	}

	n := len(nullMap)
	validity := make([]byte, bitutil.BytesForBits(int64(n)))
	for i, flag := range nullMap {
		if flag == 0 {
			bitutil.SetBit(validity, i)
		}
	}

	src := chunk.Array.Data()
	buffers := make([]*memory.Buffer, len(src.Buffers()))
	copy(buffers, src.Buffers())
	buffers[0] = memory.NewBufferBytes(validity)

	data := array.NewData(src.DataType(), src.Len(), buffers, src.Children(), nulls, src.Offset())
	defer data.Release()
	out := array.MakeFromData(data)
	chunk.Array.Release()
	return Chunk{Kind: chunk.Kind, Array: out}
}
