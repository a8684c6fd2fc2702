package gonativeblock

import (
	"fmt"
)

// WireError is the error type returned by every decode, factory and aggregation call.
type WireError struct {
	Number      int
	Column      string
	Message     string
	MessageArgs []interface{}
	cause       error
}

func (we *WireError) Error() string {
	message := we.Message
	if len(we.MessageArgs) > 0 {
		message = fmt.Sprintf(we.Message, we.MessageArgs...)
	}
	if we.Column != "" {
		message = fmt.Sprintf("column %s: %s", we.Column, message)
	}
	if we.cause != nil {
		return fmt.Sprintf("%06d: %s: %v", we.Number, message, we.cause)
	}
	return fmt.Sprintf("%06d: %s", we.Number, message)
}

// Unwrap returns the underlying error, typically an I/O error from the buffer.
func (we *WireError) Unwrap() error {
	return we.cause
}

// Is matches any *WireError carrying the same Number, so the preformatted
// errors below can be used with errors.Is.
func (we *WireError) Is(target error) bool {
	t, ok := target.(*WireError)
	if !ok {
		return false
	}
	return t.Number == we.Number
}

const (
	// decode

	// ErrCodeShortBuffer is an error code for the case where the buffer holds fewer bytes than the declared type needs.
	ErrCodeShortBuffer = 270001
	// ErrCodeUnknownSerializationType is an error code for an unrecognized dictionary serialization tag.
	ErrCodeUnknownSerializationType = 270002
	// ErrCodeInvalidDictionaryKey is an error code for a dictionary key outside of the index.
	ErrCodeInvalidDictionaryKey = 270003
	// ErrCodeChunkKindMismatch is an error code for a column whose chunks were decoded with different representations.
	ErrCodeChunkKindMismatch = 270004
	// ErrCodeInvalidBlock is an error code for a malformed block header or column layout.
	ErrCodeInvalidBlock = 270005

	// unsupported

	// ErrCodeUnsupportedOperation is an error code for write/encode attempts on a decode-only codec.
	ErrCodeUnsupportedOperation = 270100

	// configuration

	// ErrCodeUnknownColumnType is an error code for a type descriptor the factory cannot resolve.
	ErrCodeUnknownColumnType = 270200
	// ErrCodeUnknownTimezone is an error code for a timezone name that cannot be loaded.
	ErrCodeUnknownTimezone = 270201
	// ErrCodeInvalidSettings is an error code for an unreadable or malformed settings file.
	ErrCodeInvalidSettings = 270202
)

const (
	errMsgShortBuffer               = "not enough data: need %v bytes"
	errMsgUnknownSerializationType  = "unknown key width in serialization type %#x"
	errMsgUnknownKeysVersion        = "unknown keys serialization version %v"
	errMsgInvalidDictionaryKey      = "key %v at row %v is out of index range %v"
	errMsgChunkKindMismatch         = "cannot merge %v chunk with %v chunks"
	errMsgUnsupportedOperation      = "write is not supported for %v"
	errMsgUnsupportedRecordColumn   = "arrow export is not supported for %v chunks"
	errMsgUnsupportedRecordRows     = "arrow export needs a columnar result"
	errMsgUnknownColumnType         = "unknown column type %q"
	errMsgUnknownTimezone           = "cannot load timezone %q"
	errMsgInvalidSettings           = "invalid settings file %v"
	errMsgInvalidBlockColumnRows    = "column has %v rows, block has %v"
	errMsgInvalidBlockColumnsLength = "block has %v column types for %v columns"
	errMsgInvalidBlockRows          = "block has %v rows and no columns"
	errMsgSizeOutOfRange            = "size %v is out of range"
)

var (
	// preformatted errors, for use with errors.Is

	// ErrShortBuffer is matched by every truncated-buffer decode error.
	ErrShortBuffer = &WireError{
		Number:  ErrCodeShortBuffer,
		Message: "not enough data",
	}
	// ErrUnknownSerializationType is matched by unknown dictionary serialization tags.
	ErrUnknownSerializationType = &WireError{
		Number:  ErrCodeUnknownSerializationType,
		Message: "unknown serialization type",
	}
	// ErrInvalidDictionaryKey is matched by out of range dictionary keys.
	ErrInvalidDictionaryKey = &WireError{
		Number:  ErrCodeInvalidDictionaryKey,
		Message: "invalid dictionary key",
	}
	// ErrChunkKindMismatch is matched when chunks of one column cannot be merged.
	ErrChunkKindMismatch = &WireError{
		Number:  ErrCodeChunkKindMismatch,
		Message: "chunk kind mismatch",
	}
	// ErrInvalidBlock is matched by malformed blocks.
	ErrInvalidBlock = &WireError{
		Number:  ErrCodeInvalidBlock,
		Message: "invalid block",
	}
	// ErrUnsupportedOperation is matched by every write/encode attempt.
	ErrUnsupportedOperation = &WireError{
		Number:  ErrCodeUnsupportedOperation,
		Message: "unsupported operation",
	}
	// ErrUnknownColumnType is matched by unresolvable type descriptors.
	ErrUnknownColumnType = &WireError{
		Number:  ErrCodeUnknownColumnType,
		Message: "unknown column type",
	}
	// ErrUnknownTimezone is matched by unloadable timezone names.
	ErrUnknownTimezone = &WireError{
		Number:  ErrCodeUnknownTimezone,
		Message: "unknown timezone",
	}
	// ErrInvalidSettings is matched by settings loading failures.
	ErrInvalidSettings = &WireError{
		Number:  ErrCodeInvalidSettings,
		Message: "invalid settings",
	}
)

func errShortBuffer(need int, cause error) error {
	return &WireError{
		Number:      ErrCodeShortBuffer,
		Message:     errMsgShortBuffer,
		MessageArgs: []interface{}{need},
		cause:       cause,
	}
}

func errSizeOutOfRange(size interface{}) error {
	return &WireError{
		Number:      ErrCodeInvalidBlock,
		Message:     errMsgSizeOutOfRange,
		MessageArgs: []interface{}{size},
	}
}

// withColumn annotates a WireError with the column it was raised for.
func withColumn(err error, column string) error {
	if we, ok := err.(*WireError); ok && we.Column == "" {
		annotated := *we
		annotated.Column = column
		return &annotated
	}
	return err
}
