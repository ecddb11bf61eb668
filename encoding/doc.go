// Package encoding implements the count field shared by podcodec codecs.
//
// A count field stores an unsigned integer in the smallest of four widths:
//
//	Mode | Width   | Values
//	-----|---------|---------------------------------
//	0    | 1 byte  | v < 255
//	1    | 2 bytes | 255 <= v < 65535
//	2    | 4 bytes | 65535 <= v < 4294967295
//	3    | 8 bytes | v >= 4294967295
//
// AppendCount writes the mode byte followed by the value, so a field is 2, 3,
// 5 or 9 bytes long. Streams where every value shares one width, such as the
// dictionary codec's index stream, persist the mode once and write values with
// AppendCountWithMode. Values use the host byte order.
//
// Run-length codecs use count fields for run lengths; the LZ4 compressor uses
// one to record the uncompressed block size.
package encoding
