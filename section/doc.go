// Package section defines the fixed binary structures shared by podcodec codecs.
//
// Every integer field is written in host-native byte order (see package endian);
// there is no magic number, version tag or checksum. A buffer is only meaningful
// to the codec that produced it.
//
// # Chunk Table
//
// The parallel chunked codec prefixes its output with a chunk table:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Chunk count N (8 bytes)                                 │
//	├─────────────────────────────────────────────────────────┤
//	│ N × ChunkEntry (16 bytes each)                          │
//	│  - Offset (8 bytes): start within the chunk data region │
//	│  - Count  (8 bytes): compressed byte length             │
//	├─────────────────────────────────────────────────────────┤
//	│ Chunk data region                                       │
//	│  - Compressed chunks concatenated in chunk order        │
//	└─────────────────────────────────────────────────────────┘
//
// Entries tile the data region exactly: entry i starts where entry i-1 ends and
// the counts sum to the region length.
//
// # Lookup Header
//
// The dictionary codec starts with a 32-byte header:
//
//	Bytes  | Field       | Description
//	-------|-------------|-------------------------------------------------
//	0-7    | WindowSize  | Elements per dictionary window (0 for empty input)
//	8-15   | Phase       | Leading elements stored verbatim before the first window
//	16-23  | EntryCount  | Number of dictionary entries
//	24-31  | TailLength  | Elements in the trailing short window (0 if none)
//
// followed by the dictionary entries, an 8-byte index mode, the phase prefix
// and the index stream.
package section
