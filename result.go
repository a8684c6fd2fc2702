package gonativeblock

import (
	"context"
	"errors"
	"io"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

type queryResultConfig struct {
	withColumnTypes bool
	columnar        bool
	mem             memory.Allocator
}

// QueryResultOption configures QueryResult, ProgressQueryResult and IterQueryResult.
type QueryResultOption func(*queryResultConfig)

// WithColumnTypes includes the result header in the returned result.
func WithColumnTypes() QueryResultOption {
	return func(c *queryResultConfig) {
		c.withColumnTypes = true
	}
}

// Columnar returns one merged chunk per column instead of rows.
func Columnar() QueryResultOption {
	return func(c *queryResultConfig) {
		c.columnar = true
	}
}

// WithAllocator sets the allocator used to merge columnar results.
func WithAllocator(mem memory.Allocator) QueryResultOption {
	return func(c *queryResultConfig) {
		c.mem = mem
	}
}

func newQueryResultConfig(opts []QueryResultOption) queryResultConfig {
	cfg := queryResultConfig{mem: memory.DefaultAllocator}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Result is the aggregated outcome of a query. Exactly one of Rows and
// Columns is populated, depending on the Columnar option.
type Result struct {
	Rows             [][]interface{}
	Columns          []Chunk
	ColumnsWithTypes []ColumnWithType
}

// QueryResult accumulates the blocks of a packet stream into one Result.
type QueryResult struct {
	packets PacketStream
	cfg     queryResultConfig

	columnsWithTypes []ColumnWithType
	rows             [][]interface{}
	blocks           [][]Chunk

	result *Result
	err    error
}

// NewQueryResult returns a QueryResult pulling from packets.
func NewQueryResult(packets PacketStream, opts ...QueryResultOption) *QueryResult {
	return &QueryResult{
		packets: packets,
		cfg:     newQueryResultConfig(opts),
	}
}

// Store adds the block carried by packet, if any. A block without rows
// only contributes its header, and only the first such header is kept.
// In columnar mode the result takes over the block's chunks and releases
// them once they are merged.
func (r *QueryResult) Store(packet *Packet) {
	block := packet.Block
	if block == nil {
		return
	}
	if block.Rows() > 0 {
		if r.cfg.columnar {
			r.blocks = append(r.blocks, block.GetColumns())
		} else {
			r.rows = append(r.rows, block.GetRows()...)
		}
		return
	}
	if r.columnsWithTypes == nil {
		r.columnsWithTypes = block.ColumnsWithTypes()
		logger.Debugf("captured result header with %v columns", len(r.columnsWithTypes))
	}
}

// GetResult pulls every remaining packet and returns the aggregated result.
// The result is computed once; later calls return the same value.
func (r *QueryResult) GetResult(ctx context.Context) (*Result, error) {
	if r.result != nil || r.err != nil {
		return r.result, r.err
	}
	if err := r.drain(ctx); err != nil {
		return nil, err
	}
	r.result, r.err = r.finalize()
	return r.result, r.err
}

func (r *QueryResult) drain(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		packet, err := r.packets.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		r.Store(packet)
	}
}

func (r *QueryResult) finalize() (*Result, error) {
	result := &Result{}
	if r.cfg.withColumnTypes {
		result.ColumnsWithTypes = r.columnsWithTypes
	}
	if !r.cfg.columnar {
		result.Rows = r.rows
		if result.Rows == nil {
			result.Rows = [][]interface{}{}
		}
		return result, nil
	}

	columns, err := r.mergeColumns()
	if err != nil {
		return nil, err
	}
	result.Columns = columns
	return result, nil
}

// mergeColumns transposes the stored blocks into per-column chunk lists and
// merges each list.
func (r *QueryResult) mergeColumns() ([]Chunk, error) {
	if len(r.blocks) == 0 {
		return []Chunk{}, nil
	}
	defer r.releaseBlocks()
	numColumns := len(r.blocks[0])
	columns := make([]Chunk, numColumns)
	for j := 0; j < numColumns; j++ {
		chunks := make([]Chunk, len(r.blocks))
		for i, block := range r.blocks {
			if len(block) != numColumns {
				for _, c := range columns[:j] {
					c.Release()
				}
				return nil, &WireError{
					Number:      ErrCodeInvalidBlock,
					Message:     errMsgInvalidBlockColumnsLength,
					MessageArgs: []interface{}{numColumns, len(block)},
				}
			}
			chunks[i] = block[j]
		}
		merged, err := mergeChunks(chunks, r.cfg.mem)
		if err != nil {
			if j < len(r.columnsWithTypes) {
				err = withColumn(err, r.columnsWithTypes[j].Name)
			}
			for _, c := range columns[:j] {
				c.Release()
			}
			return nil, err
		}
		columns[j] = merged
	}
	logger.Debugf("merged %v blocks into %v columns", len(r.blocks), numColumns)
	return columns, nil
}

// releaseBlocks drops the stored per-block chunks. Merged columns hold their
// own references.
func (r *QueryResult) releaseBlocks() {
	for _, block := range r.blocks {
		for _, c := range block {
			c.Release()
		}
	}
	r.blocks = nil
}

// ProgressTotals are the cumulative progress counters reported by
// ProgressQueryResult.
type ProgressTotals struct {
	Rows      uint64
	TotalRows uint64
}

// ProgressQueryResult is a QueryResult that can be advanced one progress
// report at a time.
type ProgressQueryResult struct {
	*QueryResult
	totals Progress
}

// NewProgressQueryResult returns a ProgressQueryResult pulling from packets.
func NewProgressQueryResult(packets PacketStream, opts ...QueryResultOption) *ProgressQueryResult {
	return &ProgressQueryResult{QueryResult: NewQueryResult(packets, opts...)}
}

// Next pulls packets up to the next progress report and returns the running
// totals. Blocks met on the way are stored. It returns io.EOF when the
// stream ends.
func (r *ProgressQueryResult) Next(ctx context.Context) (ProgressTotals, error) {
	for {
		if err := ctx.Err(); err != nil {
			return ProgressTotals{}, err
		}
		packet, err := r.packets.Next(ctx)
		if err != nil {
			return ProgressTotals{}, err
		}
		if p := packet.Progress; p != nil {
			r.totals.Rows += p.Rows
			r.totals.Bytes += p.Bytes
			r.totals.TotalRows += p.TotalRows
			return ProgressTotals{Rows: r.totals.Rows, TotalRows: r.totals.TotalRows}, nil
		}
		r.Store(packet)
	}
}

// GetResult pulls the remaining packets through Next, so that their progress
// is added to Totals, and returns the aggregated result.
func (r *ProgressQueryResult) GetResult(ctx context.Context) (*Result, error) {
	if r.result == nil && r.err == nil {
		for {
			_, err := r.Next(ctx)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return nil, err
			}
		}
	}
	return r.QueryResult.GetResult(ctx)
}

// Totals returns the accumulated progress, bytes included.
func (r *ProgressQueryResult) Totals() Progress {
	return r.totals
}

// RowsChunk is the output of one IterQueryResult step.
type RowsChunk struct {
	// ColumnsWithTypes is set on the first chunk carrying a block, when
	// column types were requested.
	ColumnsWithTypes []ColumnWithType
	Rows             [][]interface{}
}

// IterQueryResult hands out the rows of each packet as it is pulled, without
// buffering across calls.
type IterQueryResult struct {
	packets    PacketStream
	cfg        queryResultConfig
	headerSent bool
}

// NewIterQueryResult returns an IterQueryResult pulling from packets.
func NewIterQueryResult(packets PacketStream, opts ...QueryResultOption) *IterQueryResult {
	return &IterQueryResult{
		packets: packets,
		cfg:     newQueryResultConfig(opts),
	}
}

// Next pulls one packet. Packets without a block yield an empty chunk. It
// returns io.EOF when the stream ends.
func (r *IterQueryResult) Next(ctx context.Context) (*RowsChunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	packet, err := r.packets.Next(ctx)
	if err != nil {
		return nil, err
	}
	chunk := &RowsChunk{Rows: [][]interface{}{}}
	block := packet.Block
	if block == nil {
		return chunk, nil
	}
	if r.cfg.withColumnTypes && !r.headerSent {
		r.headerSent = true
		chunk.ColumnsWithTypes = block.ColumnsWithTypes()
	}
	chunk.Rows = block.GetRows()
	return chunk, nil
}
