package gonativeblock

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// naiveSecondType is the arrow type of decoded DateTime columns: second
// resolution wall-clock values without a zone attached.
var naiveSecondType = &arrow.TimestampType{Unit: arrow.Second}

// dateTimeColumn decodes UInt32 epoch seconds. When loc is set, values are
// moved to loc's wall clock and the zone is dropped.
type dateTimeColumn struct {
	name string
	loc  *time.Location
	raw  *fixedColumn
	mem  memory.Allocator
}

func newDateTimeColumn(name string, loc *time.Location, mem memory.Allocator) *dateTimeColumn {
	return &dateTimeColumn{
		name: name,
		loc:  loc,
		raw:  newFixedColumn("UInt32", arrow.PrimitiveTypes.Uint32, 4, mem),
		mem:  mem,
	}
}

func (c *dateTimeColumn) Type() string { return c.name }

func (c *dateTimeColumn) DataType() arrow.DataType { return naiveSecondType }

// Location returns the timezone values are shifted to, nil for none.
func (c *dateTimeColumn) Location() *time.Location { return c.loc }

func (c *dateTimeColumn) Decode(buf Buffer, n int, mode DecodeMode) (Chunk, error) {
	if n == 0 {
		return Chunk{Kind: RawArray, Array: emptyArray(c.mem, naiveSecondType)}, nil
	}
	raw, err := c.raw.Decode(buf, n, mode)
	if err != nil {
		return Chunk{}, err
	}
	defer raw.Release()

	epochs := raw.Array.(*array.Uint32).Uint32Values()
	seconds := make([]int64, len(epochs))
	if c.loc == nil || c.loc == time.UTC {
		for i, v := range epochs {
			seconds[i] = int64(v)
		}
	} else {
		for i, v := range epochs {
			seconds[i] = wallClockSeconds(int64(v), c.loc)
		}
	}
	return Chunk{Kind: RawArray, Array: arrayFromBytes(naiveSecondType, arrow.GetBytes(seconds), n)}, nil
}

// wallClockSeconds converts a UTC epoch second to the seconds of the same
// wall-clock reading in loc, interpreted as UTC.
func wallClockSeconds(epoch int64, loc *time.Location) int64 {
	_, offset := time.Unix(epoch, 0).In(loc).Zone()
	return epoch + int64(offset)
}

// dateColumn decodes UInt16 day numbers since the epoch into date32 values.
type dateColumn struct {
	raw *fixedColumn
	mem memory.Allocator
}

func newDateColumn(mem memory.Allocator) *dateColumn {
	return &dateColumn{
		raw: newFixedColumn("UInt16", arrow.PrimitiveTypes.Uint16, 2, mem),
		mem: mem,
	}
}

func (c *dateColumn) Type() string { return "Date" }

func (c *dateColumn) DataType() arrow.DataType { return arrow.FixedWidthTypes.Date32 }

func (c *dateColumn) Decode(buf Buffer, n int, mode DecodeMode) (Chunk, error) {
	if n == 0 {
		return Chunk{Kind: RawArray, Array: emptyArray(c.mem, arrow.FixedWidthTypes.Date32)}, nil
	}
	raw, err := c.raw.Decode(buf, n, mode)
	if err != nil {
		return Chunk{}, err
	}
	defer raw.Release()

	days := raw.Array.(*array.Uint16).Uint16Values()
	widened := make([]int32, len(days))
	for i, d := range days {
		widened[i] = int32(d)
	}
	return Chunk{Kind: RawArray, Array: arrayFromBytes(arrow.FixedWidthTypes.Date32, arrow.GetBytes(widened), n)}, nil
}
