// Package pod validates element types and exposes zero-copy byte views over them.
//
// Codecs treat an element as an opaque fixed-size byte pattern. That is only
// sound for value types without pointers, so every codec resolves the layout of
// its element type through Size before touching memory.
package pod

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
	"unsafe"

	"github.com/arloliu/podcodec/errs"
)

type layout struct {
	size int
	err  error
}

var layoutCache sync.Map // reflect.Type -> layout

// Size returns the in-memory byte size of T.
//
// It fails with errs.ErrUnsupportedElement when T holds pointers, strings,
// slices, maps, interfaces, channels or funcs, or when T has zero size.
// The result is cached per type.
func Size[T any]() (int, error) {
	typ := reflect.TypeFor[T]()
	if cached, ok := layoutCache.Load(typ); ok {
		l, _ := cached.(layout)
		return l.size, l.err
	}

	l := layout{size: int(typ.Size())}
	if err := checkPlain(typ); err != nil {
		l = layout{err: fmt.Errorf("%w: %s: %w", errs.ErrUnsupportedElement, typ, err)}
	} else if l.size == 0 {
		l = layout{err: fmt.Errorf("%w: %s has zero size", errs.ErrUnsupportedElement, typ)}
	}

	layoutCache.Store(typ, l)

	return l.size, l.err
}

func checkPlain(typ reflect.Type) error {
	switch typ.Kind() { //nolint: exhaustive
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return nil
	case reflect.Array:
		return checkPlain(typ.Elem())
	case reflect.Struct:
		for i := range typ.NumField() {
			if err := checkPlain(typ.Field(i).Type); err != nil {
				return fmt.Errorf("field %s: %w", typ.Field(i).Name, err)
			}
		}

		return nil
	default:
		return fmt.Errorf("kind %s is not a plain value", typ.Kind())
	}
}

// AsBytes reinterprets s as its underlying bytes without copying.
//
// The returned slice aliases s; it must not outlive s and must not be written
// through unless s itself may be modified.
func AsBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}

	var zero T

	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*int(unsafe.Sizeof(zero)))
}

// AppendBytes decodes whole elements from b and appends them to dst.
//
// len(b) must be a multiple of the element size; trailing partial bytes are ignored.
func AppendBytes[T any](dst []T, b []byte) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	n := len(b) / size
	if n == 0 {
		return dst
	}

	start := len(dst)
	dst = slices.Grow(dst, n)[:start+n]
	copy(AsBytes(dst[start:]), b[:n*size])

	return dst
}

// AppendRepeat appends count copies of the element stored in b to dst.
//
// b must hold exactly one element.
func AppendRepeat[T any](dst []T, b []byte, count int) []T {
	if count <= 0 {
		return dst
	}

	var v T
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&v)), unsafe.Sizeof(v)), b)

	start := len(dst)
	dst = slices.Grow(dst, count)[:start+count]
	tail := dst[start:]
	for i := range tail {
		tail[i] = v
	}

	return dst
}
