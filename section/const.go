package section

const (
	ChunkCountSize   = 8  // size of the chunk count field in bytes
	ChunkEntrySize   = 16 // size of one chunk table entry in bytes
	LookupHeaderSize = 32 // size of the fixed dictionary header in bytes
	LookupModeSize   = 8  // size of the index mode field that follows the dictionary

	// MaxLookupWindowSize is the largest dictionary window size searched.
	MaxLookupWindowSize = 63
)
