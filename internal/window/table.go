// Package window tracks distinct fixed-length byte windows for the dictionary codec.
package window

import (
	"bytes"

	"github.com/arloliu/podcodec/internal/hash"
)

// Entry describes one distinct window.
type Entry struct {
	Offset int // byte offset of the first occurrence in the tracked data
	Length int // window length in bytes
	Count  int // number of occurrences seen so far

	next int // next entry in the same hash chain, -1 terminates
}

// Table assigns contiguous indices to distinct windows in first-occurrence order.
//
// Windows are keyed by the xxHash64 of their bytes. Entries sharing a hash are
// chained and resolved by byte comparison, so hash collisions never merge two
// different windows.
type Table struct {
	data     []byte
	heads    map[uint64]int // hash -> first entry index in chain
	entries  []Entry
	maxCount int
}

// NewTable creates a table over data, which must stay unmodified while the table is used.
//
// Parameters:
//   - data: Byte view of the element sequence being windowed
//   - sizeHint: Expected number of distinct windows (0 if unknown)
func NewTable(data []byte, sizeHint int) *Table {
	return &Table{
		data:    data,
		heads:   make(map[uint64]int, sizeHint),
		entries: make([]Entry, 0, sizeHint),
	}
}

// Track records one occurrence of data[offset:offset+length].
//
// Returns:
//   - int: Index of the window (stable for the table's lifetime)
//   - bool: true if this is the window's first occurrence
func (t *Table) Track(offset, length int) (int, bool) {
	win := t.data[offset : offset+length]
	h := hash.Bytes(win)

	head, ok := t.heads[h]
	if ok {
		for i := head; i >= 0; i = t.entries[i].next {
			e := &t.entries[i]
			if e.Length == length && bytes.Equal(t.data[e.Offset:e.Offset+e.Length], win) {
				e.Count++
				if e.Count > t.maxCount {
					t.maxCount = e.Count
				}

				return i, false
			}
		}
	} else {
		head = -1
	}

	idx := len(t.entries)
	t.entries = append(t.entries, Entry{Offset: offset, Length: length, Count: 1, next: head})
	t.heads[h] = idx
	if t.maxCount == 0 {
		t.maxCount = 1
	}

	return idx, true
}

// Len returns the number of distinct windows.
func (t *Table) Len() int {
	return len(t.entries)
}

// MaxCount returns the highest occurrence count of any single window, 0 if nothing was tracked.
func (t *Table) MaxCount() int {
	return t.maxCount
}

// Window returns the bytes of entry i.
func (t *Table) Window(i int) []byte {
	e := t.entries[i]
	return t.data[e.Offset : e.Offset+e.Length]
}

// Reset clears all tracked windows and rebinds the table to data, keeping allocated capacity.
func (t *Table) Reset(data []byte) {
	clear(t.heads)
	t.data = data
	t.entries = t.entries[:0]
	t.maxCount = 0
}
