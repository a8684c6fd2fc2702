/*
Package gonativeblock decodes ClickHouse Native protocol blocks into Apache
Arrow arrays and aggregates them into query results.

# Blocks

ReadBlock decodes one block from a ReadBuffer: a column count and a row count
as uvarints, then the name, type descriptor and data of every column.
NewBlockStream turns an io.Reader carrying consecutive blocks into a
PacketStream.

# Columns

NewColumn builds the codec for a type descriptor. Fixed-width types decode by
reinterpreting the wire bytes, LowCardinality columns decode into arrow
dictionary arrays, and UUID columns decode into a slice of uuid.UUID values.
Columns are decode-only; EncoderFor reports ErrUnsupportedOperation.

# Results

QueryResult collects the blocks of a stream, either as rows of Go values or,
with the Columnar option, as one merged chunk per column. ProgressQueryResult
also accumulates progress packets, and IterQueryResult hands out rows packet
by packet.

# Errors

Every failure is a *WireError carrying a numeric code. Use errors.Is with the
preformatted errors, for example ErrShortBuffer, to match a class of failure.

# Settings

LoadContext and LoadDefaultContext read settings.toml, which holds the client
settings, the server timezone and the log level.
*/
package gonativeblock
