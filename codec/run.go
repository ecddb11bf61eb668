package codec

import "bytes"

// forEachRun calls fn for every maximal run of bit-identical elements in b.
//
// b holds whole elements of size bytes each. fn receives the byte offset of
// the run's first element and the run length in elements.
func forEachRun(b []byte, size int, fn func(offset, count int)) {
	n := len(b) / size
	if n == 0 {
		return
	}

	start := 0
	for i := 1; i < n; i++ {
		if !bytes.Equal(b[i*size:(i+1)*size], b[start*size:(start+1)*size]) {
			fn(start*size, i-start)
			start = i
		}
	}
	fn(start*size, n-start)
}
