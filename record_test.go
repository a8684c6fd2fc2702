package gonativeblock

import (
	"context"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

func TestResultToRecord(t *testing.T) {
	columns := []ColumnWithType{{Name: "id", Type: "UInt32"}, {Name: "s", Type: "LowCardinality(String)"}}
	packets := NewPacketSlice(
		&Packet{Block: headerBlock(t, columns...)},
		&Packet{Block: newTestBlock(t, columns, uint32Chunk(1, 2), dictionaryChunk(t, []string{"a", "b"}, 1, 0))},
		&Packet{Block: newTestBlock(t, columns, uint32Chunk(3), dictionaryChunk(t, []string{"b"}, 0))},
	)
	result, err := NewQueryResult(packets, Columnar(), WithColumnTypes()).GetResult(context.Background())
	assertNilF(t, err)

	rec, err := result.ToRecord()
	assertNilF(t, err)
	defer rec.Release()
	assertEqualE(t, rec.NumRows(), int64(3))
	assertEqualE(t, rec.NumCols(), int64(2))
	assertEqualE(t, rec.Schema().Field(0).Name, "id")
	assertEqualE(t, rec.Schema().Field(1).Name, "s")
	assertEqualE(t, rec.Column(1).DataType().ID(), arrow.DICTIONARY)
	assertEqualE(t, rec.Column(0).(*array.Uint32).Value(2), uint32(3))
}

func TestResultToRecordDefaultNames(t *testing.T) {
	result := &Result{Columns: []Chunk{uint32Chunk(1)}}
	rec, err := result.ToRecord()
	assertNilF(t, err)
	defer rec.Release()
	assertEqualE(t, rec.Schema().Field(0).Name, "col_0")
}

func TestResultToRecordRejected(t *testing.T) {
	_, err := (&Result{Rows: [][]interface{}{}}).ToRecord()
	assertErrIsE(t, err, ErrUnsupportedOperation)

	result := &Result{
		Columns:          []Chunk{{Kind: GenericSequence, Values: []interface{}{"x"}}},
		ColumnsWithTypes: []ColumnWithType{{Name: "u", Type: "UUID"}},
	}
	_, err = result.ToRecord()
	assertErrIsE(t, err, ErrUnsupportedOperation)
	assertStringContainsE(t, err.Error(), "column u")
}
