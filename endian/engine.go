// Package endian resolves the host byte order used by every podcodec wire format.
//
// All header fields, counts and element bytes are written in host-native order.
// Compressed buffers are therefore only portable between hosts that share the
// same byte order; callers that move artifacts across machines must track that
// themselves.
//
// # Basic Usage
//
//	engine := endian.NativeEngine()
//	buf = engine.AppendUint64(buf, chunkCount)
//	count := engine.Uint64(buf[0:8])
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var nativeEngine = probeNativeEngine()

// NativeEngine returns the engine matching the host's byte order.
//
// Element bytes are copied straight out of memory, so header fields use the
// same order to keep a compressed buffer internally consistent.
func NativeEngine() EndianEngine {
	return nativeEngine
}

func probeNativeEngine() EndianEngine {
	// 0x0100 is 256. A little-endian host stores the low byte (0x00) first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))

	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}
