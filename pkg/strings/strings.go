// Package strings provides zero-copy string utilities with pooling for strtemporal
package strings

import (
	"fmt"
	"sync"
	"unsafe"
)

// BytesToString converts byte slice to string without allocation
// WARNING: The returned string shares memory with the byte slice.
// Do not modify the byte slice after calling this function.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// StringToBytes converts string to byte slice without allocation
// WARNING: The returned byte slice shares memory with the string.
// Do not modify the returned slice.
func StringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// Builder provides efficient string building over a reusable buffer
type Builder struct {
	buf []byte
}

// NewBuilder creates a new string builder
func NewBuilder(capacity int) *Builder {
	return &Builder{
		buf: make([]byte, 0, capacity),
	}
}

// WriteString appends a string to the builder
func (b *Builder) WriteString(s string) {
	b.buf = append(b.buf, s...)
}

// WriteByte appends a single byte to the builder
func (b *Builder) WriteByte(c byte) error {
	b.buf = append(b.buf, c)
	return nil
}

// Write implements io.Writer
func (b *Builder) Write(p []byte) (n int, err error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// String returns a copy of the accumulated bytes
func (b *Builder) String() string {
	return string(b.buf)
}

// Len returns the number of accumulated bytes
func (b *Builder) Len() int {
	return len(b.buf)
}

// Reset empties the builder, keeping its capacity
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
}

var builderPool = sync.Pool{
	New: func() interface{} {
		return NewBuilder(256)
	},
}

// GetBuilder takes a builder from the shared pool
func GetBuilder() *Builder {
	return builderPool.Get().(*Builder)
}

// PutBuilder returns a builder to the shared pool. Oversized builders are
// dropped so the pool does not pin large buffers.
func PutBuilder(b *Builder) {
	if cap(b.buf) > 64*1024 {
		return
	}
	b.Reset()
	builderPool.Put(b)
}

// Sprintf formats into a pooled builder
func Sprintf(format string, args ...interface{}) string {
	b := GetBuilder()
	defer PutBuilder(b)
	fmt.Fprintf(b, format, args...)
	return b.String()
}
