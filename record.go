package gonativeblock

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// ToRecord exports a columnar result as an arrow.Record. Field names come
// from the result header when it was requested, and default to col_<i>.
// The caller owns the record and must release it.
func (r *Result) ToRecord() (arrow.Record, error) {
	if r.Columns == nil {
		return nil, &WireError{
			Number:  ErrCodeUnsupportedOperation,
			Message: errMsgUnsupportedRecordRows,
		}
	}

	fields := make([]arrow.Field, len(r.Columns))
	cols := make([]arrow.Array, len(r.Columns))
	var rows int64
	for i, c := range r.Columns {
		name := fmt.Sprintf("col_%d", i)
		if i < len(r.ColumnsWithTypes) {
			name = r.ColumnsWithTypes[i].Name
		}
		if c.Kind == GenericSequence {
			return nil, withColumn(&WireError{
				Number:      ErrCodeUnsupportedOperation,
				Message:     errMsgUnsupportedRecordColumn,
				MessageArgs: []interface{}{c.Kind},
			}, name)
		}
		fields[i] = arrow.Field{Name: name, Type: c.Array.DataType(), Nullable: c.Array.NullN() > 0}
		cols[i] = c.Array
		rows = int64(c.Array.Len())
	}
	schema := arrow.NewSchema(fields, nil)
	return array.NewRecord(schema, cols, rows), nil
}
