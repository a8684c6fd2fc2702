package gonativeblock

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// wireWriter builds Native wire payloads for tests.
type wireWriter struct {
	bytes.Buffer
}

func (w *wireWriter) u8(values ...uint8) *wireWriter {
	w.Write(values)
	return w
}

func (w *wireWriter) u16(values ...uint16) *wireWriter {
	for _, v := range values {
		w.Write(binary.LittleEndian.AppendUint16(nil, v))
	}
	return w
}

func (w *wireWriter) u32(values ...uint32) *wireWriter {
	for _, v := range values {
		w.Write(binary.LittleEndian.AppendUint32(nil, v))
	}
	return w
}

func (w *wireWriter) u64(values ...uint64) *wireWriter {
	for _, v := range values {
		w.Write(binary.LittleEndian.AppendUint64(nil, v))
	}
	return w
}

func (w *wireWriter) i32(values ...int32) *wireWriter {
	for _, v := range values {
		w.u32(uint32(v))
	}
	return w
}

func (w *wireWriter) f64(values ...float64) *wireWriter {
	for _, v := range values {
		w.u64(math.Float64bits(v))
	}
	return w
}

func (w *wireWriter) uvarint(v uint64) *wireWriter {
	w.Write(binary.AppendUvarint(nil, v))
	return w
}

func (w *wireWriter) str(values ...string) *wireWriter {
	for _, s := range values {
		w.uvarint(uint64(len(s)))
		w.WriteString(s)
	}
	return w
}

func (w *wireWriter) buffer() *sliceBuffer {
	return &sliceBuffer{data: w.Bytes()}
}

func (w *wireWriter) readBuffer() *ReadBuffer {
	return NewReadBuffer(bytes.NewReader(w.Bytes()))
}

// sliceBuffer is a Buffer over a byte slice that tracks consumption.
type sliceBuffer struct {
	data []byte
	pos  int
}

func (b *sliceBuffer) Read(n int) ([]byte, error) {
	if n < 0 {
		return nil, errSizeOutOfRange(n)
	}
	if n > len(b.data)-b.pos {
		return nil, errShortBuffer(n, nil)
	}
	p := make([]byte, n)
	copy(p, b.data[b.pos:b.pos+n])
	b.pos += n
	return p, nil
}

func (b *sliceBuffer) ReadStrings(n int) ([]string, error) {
	var items []string
	for i := 0; i < n; i++ {
		size, read := binary.Uvarint(b.data[b.pos:])
		if read <= 0 {
			return nil, errShortBuffer(1, nil)
		}
		b.pos += read
		length, err := wireSize(size)
		if err != nil {
			return nil, err
		}
		p, err := b.Read(length)
		if err != nil {
			return nil, err
		}
		items = append(items, string(p))
	}
	return items, nil
}

func (b *sliceBuffer) remaining() int {
	return len(b.data) - b.pos
}

func mustColumn(t *testing.T, descriptor string, ctx *Context) Column {
	t.Helper()
	col, err := NewColumn(descriptor, ctx)
	assertNilF(t, err, "NewColumn", descriptor)
	return col
}

func decodeColumn(t *testing.T, descriptor string, ctx *Context, w *wireWriter, n int) Chunk {
	t.Helper()
	buf := w.buffer()
	chunk, err := mustColumn(t, descriptor, ctx).Decode(buf, n, DecodeDefault)
	assertNilF(t, err, "Decode", descriptor)
	assertEqualE(t, buf.remaining(), 0, "unconsumed bytes for", descriptor)
	return chunk
}

func chunkValues(c Chunk) []interface{} {
	values := make([]interface{}, c.Len())
	for i := range values {
		values[i] = c.Value(i)
	}
	return values
}

func uint32Chunk(values ...uint32) Chunk {
	b := array.NewUint32Builder(memory.DefaultAllocator)
	defer b.Release()
	b.AppendValues(values, nil)
	return Chunk{Kind: RawArray, Array: b.NewArray()}
}

func stringChunk(values ...string) Chunk {
	b := array.NewStringBuilder(memory.DefaultAllocator)
	defer b.Release()
	b.AppendValues(values, nil)
	return Chunk{Kind: RawArray, Array: b.NewArray()}
}

// dictionaryChunk builds a LowCardinality(String) chunk with UInt8 keys.
func dictionaryChunk(t *testing.T, index []string, keys ...uint8) Chunk {
	t.Helper()
	w := (&wireWriter{}).u64(0).u64(uint64(len(index))).str(index...).u64(uint64(len(keys))).u8(keys...)
	return decodeColumn(t, "LowCardinality(String)", nil, w, len(keys))
}

func newTestBlock(t *testing.T, columns []ColumnWithType, chunks ...Chunk) *Block {
	t.Helper()
	rows := 0
	if len(chunks) > 0 {
		rows = chunks[0].Len()
	}
	block, err := NewBlock(columns, chunks, rows)
	assertNilF(t, err, "NewBlock")
	return block
}

func headerBlock(t *testing.T, columns ...ColumnWithType) *Block {
	t.Helper()
	chunks := make([]Chunk, len(columns))
	for i, c := range columns {
		chunks[i] = Chunk{Kind: RawArray, Array: emptyArray(memory.DefaultAllocator, mustColumn(t, c.Type, nil).DataType())}
	}
	block, err := NewBlock(columns, chunks, 0)
	assertNilF(t, err, "NewBlock header")
	return block
}

func isDictionary(arr arrow.Array) bool {
	_, ok := arr.(*array.Dictionary)
	return ok
}
