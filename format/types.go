package format

type (
	CodecType       uint8
	CompressionType uint8
)

const (
	CodecRaw               CodecType = 0x1 // CodecRaw stores element bytes verbatim.
	CodecRunLength         CodecType = 0x2 // CodecRunLength stores runs with a fixed 8-byte count.
	CodecVariableRunLength CodecType = 0x3 // CodecVariableRunLength stores runs with a variable-width count.
	CodecDictionary        CodecType = 0x4 // CodecDictionary stores dictionary indices of fixed-size windows.
	CodecDelta             CodecType = 0x5 // CodecDelta stores the first element followed by successive differences.
	CodecHybrid            CodecType = 0x6 // CodecHybrid stores the smallest output of several candidates.
	CodecParallelChunked   CodecType = 0x7 // CodecParallelChunked stores independently compressed chunks.
	CodecStaged            CodecType = 0x8 // CodecStaged runs a byte compressor over an element codec's output.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CodecType) String() string {
	switch c {
	case CodecRaw:
		return "Raw"
	case CodecRunLength:
		return "RunLength"
	case CodecVariableRunLength:
		return "VariableRunLength"
	case CodecDictionary:
		return "Dictionary"
	case CodecDelta:
		return "Delta"
	case CodecHybrid:
		return "Hybrid"
	case CodecParallelChunked:
		return "ParallelChunked"
	case CodecStaged:
		return "Staged"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
