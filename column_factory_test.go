package gonativeblock

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
)

func TestNewColumnTypes(t *testing.T) {
	testcases := []struct {
		descriptor string
		dtype      arrow.DataType
	}{
		{"Int8", arrow.PrimitiveTypes.Int8},
		{"Int16", arrow.PrimitiveTypes.Int16},
		{"Int32", arrow.PrimitiveTypes.Int32},
		{"Int64", arrow.PrimitiveTypes.Int64},
		{"UInt8", arrow.PrimitiveTypes.Uint8},
		{"UInt16", arrow.PrimitiveTypes.Uint16},
		{"UInt32", arrow.PrimitiveTypes.Uint32},
		{"UInt64", arrow.PrimitiveTypes.Uint64},
		{"Float32", arrow.PrimitiveTypes.Float32},
		{"Float64", arrow.PrimitiveTypes.Float64},
		{"String", arrow.BinaryTypes.String},
		{"FixedString(16)", &arrow.FixedSizeBinaryType{ByteWidth: 16}},
		{"Date", arrow.FixedWidthTypes.Date32},
		{"DateTime", &arrow.TimestampType{Unit: arrow.Second}},
		{"DateTime('Europe/Berlin')", &arrow.TimestampType{Unit: arrow.Second}},
		{"Nullable(Float64)", arrow.PrimitiveTypes.Float64},
		{"LowCardinality(String)", &arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Uint8, ValueType: arrow.BinaryTypes.String}},
		{"LowCardinality(Nullable(String))", &arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Uint8, ValueType: arrow.BinaryTypes.String}},
	}
	for _, tc := range testcases {
		t.Run(tc.descriptor, func(t *testing.T) {
			col := mustColumn(t, tc.descriptor, nil)
			assertEqualE(t, col.Type(), tc.descriptor)
			assertTrueE(t, arrow.TypeEqual(col.DataType(), tc.dtype), col.DataType().String())
		})
	}
}

func TestNewColumnNested(t *testing.T) {
	col := mustColumn(t, "LowCardinality(Nullable(String))", nil)
	lc, ok := col.(*lowCardinalityColumn)
	assertTrueE(t, ok)
	if ok {
		assertTrueE(t, lc.nullable)
		nullable, ok := lc.nested.(*nullableColumn)
		assertTrueE(t, ok)
		if ok {
			assertEqualE(t, nullable.Nested().Type(), "String")
		}
	}
}

func TestNewColumnNotNullableDictionary(t *testing.T) {
	for _, descriptor := range []string{"LowCardinality(String)", "LowCardinality(UInt32)"} {
		lc := mustColumn(t, descriptor, nil).(*lowCardinalityColumn)
		assertFalseE(t, lc.nullable, descriptor)
	}
}

func TestNewColumnUnknown(t *testing.T) {
	for _, descriptor := range []string{
		"", "Decimal(10, 2)", "Array(String)", "Nullable(Nullable(Int8))",
		"LowCardinality(UUID)", "Nullable(LowCardinality(String))", "FixedString(x)", "Int128",
	} {
		_, err := NewColumn(descriptor, nil)
		assertErrIsE(t, err, ErrUnknownColumnType, descriptor)
	}
}
