package gonativeblock

import (
	"context"
	"errors"
	"io"
)

// ColumnWithType is a column name paired with its type descriptor.
type ColumnWithType struct {
	Name string
	Type string
}

// Block is one decoded batch of rows: a header plus one chunk per column.
type Block struct {
	columns []ColumnWithType
	data    []Chunk
	rows    int
}

// NewBlock assembles a block from already decoded chunks. Every chunk must
// hold exactly rows values.
func NewBlock(columns []ColumnWithType, data []Chunk, rows int) (*Block, error) {
	if len(columns) != len(data) {
		return nil, &WireError{
			Number:      ErrCodeInvalidBlock,
			Message:     errMsgInvalidBlockColumnsLength,
			MessageArgs: []interface{}{len(columns), len(data)},
		}
	}
	if len(data) == 0 && rows != 0 {
		return nil, &WireError{
			Number:      ErrCodeInvalidBlock,
			Message:     errMsgInvalidBlockRows,
			MessageArgs: []interface{}{rows},
		}
	}
	for i, chunk := range data {
		if chunk.Len() != rows {
			return nil, withColumn(&WireError{
				Number:      ErrCodeInvalidBlock,
				Message:     errMsgInvalidBlockColumnRows,
				MessageArgs: []interface{}{chunk.Len(), rows},
			}, columns[i].Name)
		}
	}
	return &Block{columns: columns, data: data, rows: rows}, nil
}

// Rows returns the number of rows in the block.
func (b *Block) Rows() int {
	return b.rows
}

// ColumnsWithTypes returns the block header.
func (b *Block) ColumnsWithTypes() []ColumnWithType {
	return b.columns
}

// GetColumns returns one chunk per column.
func (b *Block) GetColumns() []Chunk {
	return b.data
}

// GetRows transposes the block into rows of Go values.
func (b *Block) GetRows() [][]interface{} {
	rows := make([][]interface{}, b.rows)
	for i := range rows {
		row := make([]interface{}, len(b.data))
		for j, chunk := range b.data {
			row[j] = chunk.Value(i)
		}
		rows[i] = row
	}
	return rows
}

// Release releases the arrow memory of every chunk.
func (b *Block) Release() {
	for _, chunk := range b.data {
		chunk.Release()
	}
}

// statePrefixReader is implemented by columns that read a per-column prefix
// before the first row of a block.
type statePrefixReader interface {
	ReadStatePrefix(buf Buffer) error
}

// ReadBlock decodes one block in the Native format: column count and row
// count as uvarints, then for every column its name, its type descriptor and
// its data. It returns io.EOF when buf is exhausted before a new block starts.
func ReadBlock(buf *ReadBuffer, ctx *Context) (*Block, error) {
	numColumns, err := buf.ReadUvarint()
	if err != nil {
		return nil, err
	}
	numRows, err := buf.ReadUvarint()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errShortBuffer(1, err)
		}
		return nil, err
	}
	rows, err := wireSize(numRows)
	if err != nil {
		return nil, err
	}

	var columns []ColumnWithType
	var data []Chunk
	release := func() {
		for _, chunk := range data {
			chunk.Release()
		}
	}
	for i := uint64(0); i < numColumns; i++ {
		name, err := buf.ReadString()
		if err != nil {
			release()
			return nil, err
		}
		typ, err := buf.ReadString()
		if err != nil {
			release()
			return nil, withColumn(err, name)
		}
		chunk, err := readColumn(buf, typ, rows, ctx)
		if err != nil {
			release()
			return nil, withColumn(err, name)
		}
		columns = append(columns, ColumnWithType{Name: name, Type: typ})
		data = append(data, chunk)
	}
	logger.Debugf("read block: %v columns, %v rows", numColumns, rows)
	return NewBlock(columns, data, rows)
}

func readColumn(buf Buffer, typ string, rows int, ctx *Context) (Chunk, error) {
	col, err := NewColumn(typ, ctx)
	if err != nil {
		return Chunk{}, err
	}
	if pr, ok := col.(statePrefixReader); ok && rows > 0 {
		if err = pr.ReadStatePrefix(buf); err != nil {
			return Chunk{}, err
		}
	}
	return col.Decode(buf, rows, DecodeDefault)
}

type blockStream struct {
	buf *ReadBuffer
	ctx *Context
}

// NewBlockStream returns a PacketStream yielding one block packet per Native
// block read from r.
func NewBlockStream(r io.Reader, ctx *Context) PacketStream {
	return &blockStream{buf: NewReadBuffer(r), ctx: ctx}
}

func (s *blockStream) Next(ctx context.Context) (*Packet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	block, err := ReadBlock(s.buf, s.ctx)
	if err != nil {
		return nil, err
	}
	return &Packet{Block: block}, nil
}
