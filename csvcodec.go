// # csvcodec: a streaming, multi-encoding CSV codec for Go
//
// csvcodec parses textual CSV byte streams into rows of fields and
// serializes rows of fields back to CSV bytes, then layers a structured
// codec — keyed, unkeyed, and single-value containers over a file → record
// → field hierarchy — on top, so a CSV file can be mapped onto nested data
// types in either sequential or random-access order.
//
// # Features
//
//   - Streaming Reader/Writer over configurable, multi-scalar field and row
//     delimiters, with BOM-sniffing encoding detection across UTF-8,
//     UTF-16, UTF-32, and ASCII.
//   - Structured error reporting via CodecError, partitioned by Kind across
//     the reader, writer, codec bridge, and container layers.
//   - Source/Sink codec bridge giving (row,field)-addressed random access
//     over the otherwise-sequential Reader/Writer, backed by a pluggable
//     row buffer (see package rowbuffer).
//   - Container tree (see package container) modeling file/record/field
//     nodes with keyed, unkeyed, and single-value access.
//
// # Getting started
//
// The module path is github.com/brightfield/csvcodec.
package csvcodec
