package gonativeblock

import (
	"io"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// DecodeMode adjusts how a column consumes the buffer for one decode call.
type DecodeMode uint8

const (
	// DecodeDefault decodes a column exactly as laid out on the wire.
	DecodeDefault DecodeMode = 0
	// SkipNullMap tells a Nullable column that no null map precedes the values.
	// Dictionary indexes are written this way.
	SkipNullMap DecodeMode = 1 << 0
)

// Has reports whether all flags of f are set.
func (m DecodeMode) Has(f DecodeMode) bool {
	return m&f == f
}

// ChunkKind tags the representation of a decoded chunk.
type ChunkKind int

const (
	// RawArray is a plain arrow array (numbers, strings, timestamps, ...).
	RawArray ChunkKind = iota
	// DictionaryCoded is an arrow dictionary array.
	DictionaryCoded
	// GenericSequence is a slice of Go values with no arrow representation.
	GenericSequence
)

func (k ChunkKind) String() string {
	switch k {
	case RawArray:
		return "raw"
	case DictionaryCoded:
		return "dictionary"
	case GenericSequence:
		return "sequence"
	}
	return "unknown"
}

// Chunk is one decoded run of column values.
type Chunk struct {
	Kind ChunkKind
	// Array holds the values for RawArray and DictionaryCoded chunks.
	Array arrow.Array
	// Values holds the values for GenericSequence chunks.
	Values []interface{}
}

// Len returns the number of values in the chunk.
func (c Chunk) Len() int {
	if c.Kind == GenericSequence {
		return len(c.Values)
	}
	if c.Array == nil {
		return 0
	}
	return c.Array.Len()
}

// Value returns the i-th value as a Go value, nil for nulls.
func (c Chunk) Value(i int) interface{} {
	if c.Kind == GenericSequence {
		return c.Values[i]
	}
	return arrowValue(c.Array, i)
}

// Release releases the arrow memory held by the chunk.
func (c Chunk) Release() {
	if c.Array != nil {
		c.Array.Release()
	}
}

// Column decodes runs of values of one wire type. A Column has no write
// capability; see EncoderFor.
type Column interface {
	// Type returns the type descriptor the column was built for.
	Type() string
	// DataType returns the arrow type of decoded chunks, nil for GenericSequence columns.
	DataType() arrow.DataType
	// Decode reads n values from buf.
	Decode(buf Buffer, n int, mode DecodeMode) (Chunk, error)
}

// Encoder is the write capability a codec could offer. No codec in this
// package implements it.
type Encoder interface {
	Encode(w io.Writer, items Chunk) error
}

// EncoderFor returns the write path of col, which fails with
// ErrUnsupportedOperation for every column of this package.
func EncoderFor(col Column) (Encoder, error) {
	if enc, ok := col.(Encoder); ok {
		return enc, nil
	}
	return nil, &WireError{
		Number:      ErrCodeUnsupportedOperation,
		Message:     errMsgUnsupportedOperation,
		MessageArgs: []interface{}{col.Type()},
	}
}

// fixedColumn decodes fixed-width values by reinterpreting the wire bytes as an
// arrow values buffer, without a per-item loop.
type fixedColumn struct {
	name  string
	dtype arrow.DataType
	width int
	mem   memory.Allocator
}

func newFixedColumn(name string, dtype arrow.DataType, width int, mem memory.Allocator) *fixedColumn {
	return &fixedColumn{name: name, dtype: dtype, width: width, mem: mem}
}

func (c *fixedColumn) Type() string { return c.name }

func (c *fixedColumn) DataType() arrow.DataType { return c.dtype }

// Width returns the number of bytes per item.
func (c *fixedColumn) Width() int { return c.width }

func (c *fixedColumn) Decode(buf Buffer, n int, _ DecodeMode) (Chunk, error) {
	if n == 0 {
		return Chunk{Kind: RawArray, Array: emptyArray(c.mem, c.dtype)}, nil
	}
	if n < 0 || n > math.MaxInt/c.width {
		return Chunk{}, errSizeOutOfRange(n)
	}
	data, err := buf.Read(n * c.width)
	if err != nil {
		return Chunk{}, err
	}
	return Chunk{Kind: RawArray, Array: arrayFromBytes(c.dtype, data, n)}, nil
}

// arrayFromBytes wraps data as the values buffer of a fixed-width arrow array.
func arrayFromBytes(dtype arrow.DataType, data []byte, n int) arrow.Array {
	arrData := array.NewData(dtype, n, []*memory.Buffer{nil, memory.NewBufferBytes(data)}, nil, 0, 0)
	defer arrData.Release()
	return array.MakeFromData(arrData)
}

func emptyArray(mem memory.Allocator, dtype arrow.DataType) arrow.Array {
	b := array.NewBuilder(mem, dtype)
	defer b.Release()
	return b.NewArray()
}

// stringColumn decodes length-prefixed strings through the buffer's bulk reader.
type stringColumn struct {
	mem memory.Allocator
}

func (c *stringColumn) Type() string { return "String" }

func (c *stringColumn) DataType() arrow.DataType { return arrow.BinaryTypes.String }

func (c *stringColumn) Decode(buf Buffer, n int, _ DecodeMode) (Chunk, error) {
	if n < 0 {
		return Chunk{}, errSizeOutOfRange(n)
	}
	if n == 0 {
		return Chunk{Kind: RawArray, Array: emptyArray(c.mem, arrow.BinaryTypes.String)}, nil
	}
	items, err := buf.ReadStrings(n)
	if err != nil {
		return Chunk{}, err
	}
	b := array.NewStringBuilder(c.mem)
	defer b.Release()
	b.AppendValues(items, nil)
	return Chunk{Kind: RawArray, Array: b.NewArray()}, nil
}
