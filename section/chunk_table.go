package section

import (
	"fmt"

	"github.com/arloliu/podcodec/endian"
	"github.com/arloliu/podcodec/errs"
)

// ChunkEntry locates one compressed chunk inside the chunk data region.
// It is a fixed size of 16 bytes.
type ChunkEntry struct {
	// Offset is the byte offset of the chunk from the start of the data region.
	//
	// Offset: 0, Size: 8 bytes
	Offset uint64

	// Count is the compressed byte length of the chunk.
	//
	// Offset: 8, Size: 8 bytes
	Count uint64
}

// Bytes returns the entry as a 16-byte slice using the specified endian engine.
func (e ChunkEntry) Bytes(engine endian.EndianEngine) []byte {
	var b [ChunkEntrySize]byte
	engine.PutUint64(b[0:8], e.Offset)
	engine.PutUint64(b[8:16], e.Count)

	return b[:]
}

// Parse parses the entry from data, which must hold at least ChunkEntrySize bytes.
func (e *ChunkEntry) Parse(data []byte, engine endian.EndianEngine) error {
	if len(data) < ChunkEntrySize {
		return fmt.Errorf("%w: chunk entry needs %d bytes, have %d", errs.ErrMalformedInput, ChunkEntrySize, len(data))
	}

	e.Offset = engine.Uint64(data[0:8])
	e.Count = engine.Uint64(data[8:16])

	return nil
}

// ChunkTable is the ordered list of chunk locations written by the parallel chunked codec.
//
// The table order is the original chunk order; it is the only source of truth
// for reassembly, regardless of the order in which workers finished.
type ChunkTable struct {
	Entries []ChunkEntry
}

// NewChunkTable builds a table from compressed chunk sizes, assigning running offsets.
//
// Parameters:
//   - sizes: Compressed byte length of each chunk, in chunk order
//
// Returns:
//   - ChunkTable: Table whose entries tile a region of sum(sizes) bytes
func NewChunkTable(sizes []int) ChunkTable {
	entries := make([]ChunkEntry, len(sizes))

	var offset uint64
	for i, size := range sizes {
		entries[i] = ChunkEntry{Offset: offset, Count: uint64(size)} //nolint: gosec
		offset += uint64(size)                                      //nolint: gosec
	}

	return ChunkTable{Entries: entries}
}

// Len returns the number of chunks.
func (t ChunkTable) Len() int {
	return len(t.Entries)
}

// Size returns the encoded size of the table: the count field plus all entries.
func (t ChunkTable) Size() int {
	return ChunkCountSize + len(t.Entries)*ChunkEntrySize
}

// DataSize returns the total byte length of the chunk data region described by the table.
func (t ChunkTable) DataSize() uint64 {
	var total uint64
	for _, e := range t.Entries {
		total += e.Count
	}

	return total
}

// AppendTo appends the encoded table (count followed by entries) to dst.
func (t ChunkTable) AppendTo(dst []byte, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint64(dst, uint64(len(t.Entries)))
	for _, e := range t.Entries {
		dst = append(dst, e.Bytes(engine)...)
	}

	return dst
}

// Chunk returns the bytes of chunk i within region.
//
// The table must have been validated against region by ParseChunkTable.
func (t ChunkTable) Chunk(region []byte, i int) []byte {
	e := t.Entries[i]
	return region[e.Offset : e.Offset+e.Count]
}

// ParseChunkTable parses a chunk table from the start of data.
//
// The entries are validated so that they tile the remaining bytes exactly:
// each entry starts where the previous one ended and the last one ends at the
// end of data.
//
// Parameters:
//   - data: Buffer starting with a chunk count field
//   - engine: Endian engine used when the table was written
//
// Returns:
//   - ChunkTable: Parsed table
//   - []byte: The chunk data region following the table
//   - error: ErrMalformedInput if data is truncated, ErrChunkTableMismatch if entries do not tile the region
func ParseChunkTable(data []byte, engine endian.EndianEngine) (ChunkTable, []byte, error) {
	if len(data) < ChunkCountSize {
		return ChunkTable{}, nil, fmt.Errorf("%w: missing chunk count", errs.ErrMalformedInput)
	}

	count := engine.Uint64(data[:ChunkCountSize])
	rest := data[ChunkCountSize:]
	if count > uint64(len(rest)/ChunkEntrySize) {
		return ChunkTable{}, nil, fmt.Errorf("%w: %d chunk entries do not fit in %d bytes",
			errs.ErrMalformedInput, count, len(rest))
	}

	entries := make([]ChunkEntry, count)
	for i := range entries {
		if err := entries[i].Parse(rest[i*ChunkEntrySize:], engine); err != nil {
			return ChunkTable{}, nil, err
		}
	}
	region := rest[int(count)*ChunkEntrySize:] //nolint: gosec

	var expected uint64
	for i, e := range entries {
		if e.Offset != expected {
			return ChunkTable{}, nil, fmt.Errorf("%w: chunk %d starts at %d, expected %d",
				errs.ErrChunkTableMismatch, i, e.Offset, expected)
		}
		if e.Count > uint64(len(region))-expected {
			return ChunkTable{}, nil, fmt.Errorf("%w: chunk %d overruns data region",
				errs.ErrChunkTableMismatch, i)
		}
		expected += e.Count
	}

	if expected != uint64(len(region)) {
		return ChunkTable{}, nil, fmt.Errorf("%w: chunks cover %d of %d data bytes",
			errs.ErrChunkTableMismatch, expected, len(region))
	}

	return ChunkTable{Entries: entries}, region, nil
}
