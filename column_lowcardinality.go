package gonativeblock

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/bitutil"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

const (
	// keyWidthMask selects the key type bits of the serialization type.
	keyWidthMask = 0xf
	// sharedDictionariesWithAdditionalKeys is the only keys serialization
	// version written in a block's column prefix.
	sharedDictionariesWithAdditionalKeys = 1
)

var dictionaryKeyTypes = []struct {
	name  string
	dtype arrow.DataType
	width int
}{
	{"UInt8", arrow.PrimitiveTypes.Uint8, 1},
	{"UInt16", arrow.PrimitiveTypes.Uint16, 2},
	{"UInt32", arrow.PrimitiveTypes.Uint32, 4},
	{"UInt64", arrow.PrimitiveTypes.Uint64, 8},
}

// lowCardinalityColumn decodes dictionary-coded data. The wire layout is:
// serialization type (UInt64), index size (UInt64), index values, key count
// (UInt64), keys. For a Nullable nested type, index slot 0 is the null
// placeholder and keys address the index shifted by one.
type lowCardinalityColumn struct {
	name     string
	nested   Column
	nullable bool
	mem      memory.Allocator
}

func (c *lowCardinalityColumn) Type() string { return c.name }

func (c *lowCardinalityColumn) DataType() arrow.DataType {
	return c.dictionaryType(arrow.PrimitiveTypes.Uint8)
}

func (c *lowCardinalityColumn) dictionaryType(keyType arrow.DataType) *arrow.DictionaryType {
	return &arrow.DictionaryType{IndexType: keyType, ValueType: c.nested.DataType()}
}

// ReadStatePrefix consumes the keys serialization version that precedes the
// column data of a non-empty block.
func (c *lowCardinalityColumn) ReadStatePrefix(buf Buffer) error {
	version, err := readUint64(buf)
	if err != nil {
		return err
	}
	if version != sharedDictionariesWithAdditionalKeys {
		return &WireError{
			Number:      ErrCodeUnknownSerializationType,
			Message:     errMsgUnknownKeysVersion,
			MessageArgs: []interface{}{version},
		}
	}
	return nil
}

func (c *lowCardinalityColumn) Decode(buf Buffer, n int, mode DecodeMode) (Chunk, error) {
	if n == 0 {
		return Chunk{Kind: DictionaryCoded, Array: emptyArray(c.mem, c.DataType())}, nil
	}

	serializationType, err := readUint64(buf)
	if err != nil {
		return Chunk{}, err
	}
	keySlot := serializationType & keyWidthMask
	if keySlot >= uint64(len(dictionaryKeyTypes)) {
		return Chunk{}, &WireError{
			Number:      ErrCodeUnknownSerializationType,
			Message:     errMsgUnknownSerializationType,
			MessageArgs: []interface{}{serializationType},
		}
	}
	keyType := dictionaryKeyTypes[keySlot]
	keyColumn := newFixedColumn(keyType.name, keyType.dtype, keyType.width, c.mem)

	indexSize, err := readUint64(buf)
	if err != nil {
		return Chunk{}, err
	}
	size, err := wireSize(indexSize)
	if err != nil {
		return Chunk{}, err
	}
	index, err := c.nested.Decode(buf, size, mode|SkipNullMap)
	if err != nil {
		return Chunk{}, err
	}
	defer index.Release()

	// key count repeats n
	if _, err = readUint64(buf); err != nil {
		return Chunk{}, err
	}
	keys, err := keyColumn.Decode(buf, n, DecodeDefault)
	if err != nil {
		return Chunk{}, err
	}
	defer keys.Release()

	dict := index.Array
	keyArray := keys.Array
	if c.nullable {
		if dict.Len() == 0 {
			return Chunk{}, &WireError{
				Number:      ErrCodeInvalidDictionaryKey,
				Message:     errMsgInvalidDictionaryKey,
				MessageArgs: []interface{}{0, 0, 0},
			}
		}
		dict = array.NewSlice(dict, 1, int64(dict.Len()))
		defer dict.Release()
		keyArray = shiftNullableKeys(keyArray)
		defer keyArray.Release()
	}

	if err = checkDictionaryKeys(keyArray, dict.Len()); err != nil {
		return Chunk{}, err
	}
	logger.Tracef("%v: %v rows over %v distinct values", c.name, n, dict.Len())
	return Chunk{
		Kind:  DictionaryCoded,
		Array: array.NewDictionaryArray(c.dictionaryType(keyType.dtype), keyArray, dict),
	}, nil
}

type dictionaryKey interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// shiftNullableKeys applies the null slot rule: key 0 becomes null, every
// other key is decremented.
func shiftNullableKeys(keys arrow.Array) arrow.Array {
	var values []byte
	var validity []byte
	var nulls int
	switch k := keys.(type) {
	case *array.Uint8:
		values, validity, nulls = shiftKeys(k.Uint8Values())
	case *array.Uint16:
		values, validity, nulls = shiftKeys(k.Uint16Values())
	case *array.Uint32:
		values, validity, nulls = shiftKeys(k.Uint32Values())
	case *array.Uint64:
		values, validity, nulls = shiftKeys(k.Uint64Values())
	}
	data := array.NewData(keys.DataType(), keys.Len(),
		[]*memory.Buffer{memory.NewBufferBytes(validity), memory.NewBufferBytes(values)}, nil, nulls, 0)
	defer data.Release()
	return array.MakeFromData(data)
}

func shiftKeys[K dictionaryKey](keys []K) (values []byte, validity []byte, nulls int) {
	shifted := make([]K, len(keys))
	validity = make([]byte, bitutil.BytesForBits(int64(len(keys))))
	for i, k := range keys {
		if k == 0 {
			nulls++
			continue
		}
		shifted[i] = k - 1
		bitutil.SetBit(validity, i)
	}
	return arrow.GetBytes(shifted), validity, nulls
}

// checkDictionaryKeys verifies every non-null key addresses the index.
func checkDictionaryKeys(keys arrow.Array, indexLen int) error {
	switch k := keys.(type) {
	case *array.Uint8:
		return checkKeys(k, k.Uint8Values(), indexLen)
	case *array.Uint16:
		return checkKeys(k, k.Uint16Values(), indexLen)
	case *array.Uint32:
		return checkKeys(k, k.Uint32Values(), indexLen)
	case *array.Uint64:
		return checkKeys(k, k.Uint64Values(), indexLen)
	}
	return nil
}

func checkKeys[K dictionaryKey](keys arrow.Array, values []K, indexLen int) error {
	limit := uint64(indexLen)
	for i, v := range values {
		if keys.IsNull(i) {
			continue
		}
		if uint64(v) >= limit {
			return &WireError{
				Number:      ErrCodeInvalidDictionaryKey,
				Message:     errMsgInvalidDictionaryKey,
				MessageArgs: []interface{}{v, i, indexLen},
			}
		}
	}
	return nil
}
