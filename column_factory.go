package gonativeblock

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/nativeblock/gonativeblock/internal/types"
)

// numericArrowTypes maps an item width to its arrow type, for signed,
// unsigned and float kinds respectively.
var numericArrowTypes = [3]map[int]arrow.DataType{
	{1: arrow.PrimitiveTypes.Int8, 2: arrow.PrimitiveTypes.Int16, 4: arrow.PrimitiveTypes.Int32, 8: arrow.PrimitiveTypes.Int64},
	{1: arrow.PrimitiveTypes.Uint8, 2: arrow.PrimitiveTypes.Uint16, 4: arrow.PrimitiveTypes.Uint32, 8: arrow.PrimitiveTypes.Uint64},
	{4: arrow.PrimitiveTypes.Float32, 8: arrow.PrimitiveTypes.Float64},
}

func numericArrowType(d *types.Descriptor) arrow.DataType {
	switch {
	case d.Kind == types.FloatKind:
		return numericArrowTypes[2][d.Width]
	case d.Signed():
		return numericArrowTypes[0][d.Width]
	}
	return numericArrowTypes[1][d.Width]
}

// NewColumn builds the column codec for a type descriptor such as "UInt32",
// "DateTime('Europe/Berlin')" or "LowCardinality(Nullable(String))".
func NewColumn(descriptor string, ctx *Context) (Column, error) {
	d, err := types.Parse(descriptor)
	if err != nil {
		return nil, unknownColumnType(descriptor, err)
	}
	return newColumn(d, ctx)
}

func newColumn(d *types.Descriptor, ctx *Context) (Column, error) {
	mem := ctx.allocator()
	switch d.Kind {
	case types.IntKind, types.UIntKind, types.FloatKind:
		dtype := numericArrowType(d)
		if dtype == nil {
			return nil, unknownColumnType(d.Name, nil)
		}
		return newFixedColumn(d.Name, dtype, d.Width, mem), nil
	case types.FixedStringKind:
		return newFixedColumn(d.Name, &arrow.FixedSizeBinaryType{ByteWidth: d.Width}, d.Width, mem), nil
	case types.StringKind:
		return &stringColumn{mem: mem}, nil
	case types.DateKind:
		return newDateColumn(mem), nil
	case types.DateTimeKind:
		loc, err := resolveTimezone(d, ctx)
		if err != nil {
			return nil, err
		}
		return newDateTimeColumn(d.Name, loc, mem), nil
	case types.UUIDKind:
		return &uuidColumn{}, nil
	case types.NullableKind:
		if d.Nested.Kind == types.LowCardinalityKind {
			return nil, unknownColumnType(d.Name, nil)
		}
		nested, err := newColumn(d.Nested, ctx)
		if err != nil {
			return nil, err
		}
		return &nullableColumn{name: d.Name, nested: nested, mem: mem}, nil
	case types.LowCardinalityKind:
		nested, err := newColumn(d.Nested, ctx)
		if err != nil {
			return nil, err
		}
		if nested.DataType() == nil {
			return nil, unknownColumnType(d.Name, nil)
		}
		return &lowCardinalityColumn{name: d.Name, nested: nested, nullable: d.Nested.Nullable(), mem: mem}, nil
	}
	return nil, unknownColumnType(d.Name, nil)
}

// resolveTimezone picks the zone DateTime values are shown in: the zone named
// in the descriptor, else the server zone unless the client zone is requested.
func resolveTimezone(d *types.Descriptor, ctx *Context) (*time.Location, error) {
	name := d.Timezone
	if name == "" && ctx != nil && !ctx.Settings.UseClientTimeZone {
		name = ctx.ServerInfo.Timezone
	}
	if name == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &WireError{
			Number:      ErrCodeUnknownTimezone,
			Message:     errMsgUnknownTimezone,
			MessageArgs: []interface{}{name},
			cause:       err,
		}
	}
	return loc, nil
}

func unknownColumnType(descriptor string, cause error) error {
	return &WireError{
		Number:      ErrCodeUnknownColumnType,
		Message:     errMsgUnknownColumnType,
		MessageArgs: []interface{}{descriptor},
		cause:       cause,
	}
}
