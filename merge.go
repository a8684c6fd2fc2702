package gonativeblock

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// mergeChunks joins the chunks of one column, in order, into a single chunk.
// The chunks must all be of the same kind.
func mergeChunks(chunks []Chunk, mem memory.Allocator) (Chunk, error) {
	kind := chunks[0].Kind
	for _, c := range chunks[1:] {
		if c.Kind != kind {
			return Chunk{}, &WireError{
				Number:      ErrCodeChunkKindMismatch,
				Message:     errMsgChunkKindMismatch,
				MessageArgs: []interface{}{c.Kind, kind},
			}
		}
	}

	switch kind {
	case RawArray:
		return concatArrays(chunks, mem)
	case DictionaryCoded:
		return unionDictionaries(chunks, mem)
	default:
		return flattenSequences(chunks), nil
	}
}

func concatArrays(chunks []Chunk, mem memory.Allocator) (Chunk, error) {
	arrs := make([]arrow.Array, len(chunks))
	for i, c := range chunks {
		arrs[i] = c.Array
	}
	if len(arrs) == 1 {
		arrs[0].Retain()
		return Chunk{Kind: RawArray, Array: arrs[0]}, nil
	}
	merged, err := array.Concatenate(arrs, mem)
	if err != nil {
		return Chunk{}, err
	}
	return Chunk{Kind: RawArray, Array: merged}, nil
}

// unionDictionaries builds one dictionary holding every distinct value of the
// chunks' dictionaries and remaps each chunk's keys into it. Chunks may use
// different key widths; the merged keys are int32.
func unionDictionaries(chunks []Chunk, mem memory.Allocator) (Chunk, error) {
	valueType := chunks[0].Array.DataType().(*arrow.DictionaryType).ValueType
	unifier, err := array.NewDictionaryUnifier(mem, valueType)
	if err != nil {
		return Chunk{}, err
	}
	defer unifier.Release()

	keys := array.NewInt32Builder(mem)
	defer keys.Release()
	for _, c := range chunks {
		dict := c.Array.(*array.Dictionary)
		transposed, err := unifier.UnifyAndTranspose(dict.Dictionary())
		if err != nil {
			return Chunk{}, err
		}
		remap := arrow.Int32Traits.CastFromBytes(transposed.Bytes())
		for i := 0; i < dict.Len(); i++ {
			if dict.IsNull(i) {
				keys.AppendNull()
				continue
			}
			keys.Append(remap[dict.GetValueIndex(i)])
		}
		transposed.Release()
	}

	values, err := unifier.GetResultWithIndexType(arrow.PrimitiveTypes.Int32)
	if err != nil {
		return Chunk{}, err
	}
	defer values.Release()
	indices := keys.NewArray()
	defer indices.Release()

	dtype := &arrow.DictionaryType{IndexType: arrow.PrimitiveTypes.Int32, ValueType: valueType}
	logger.Tracef("merged %v dictionary chunks into %v distinct values", len(chunks), values.Len())
	return Chunk{Kind: DictionaryCoded, Array: array.NewDictionaryArray(dtype, indices, values)}, nil
}

func flattenSequences(chunks []Chunk) Chunk {
	total := 0
	for _, c := range chunks {
		total += len(c.Values)
	}
	values := make([]interface{}, 0, total)
	for _, c := range chunks {
		values = append(values, c.Values...)
	}
	return Chunk{Kind: GenericSequence, Values: values}
}
