// Package codegen translates instruction sequences into x86-64 machine
// code ready for an executable mapping.
package codegen

import "encoding/binary"

// Buffer is a growable machine-code buffer. Besides appending it supports
// overwriting at an arbitrary offset, which the second emission pass needs
// to patch forward-jump displacements in place.
type Buffer struct {
	buf []byte
}

func (b *Buffer) Len() int {
	return len(b.buf)
}

func (b *Buffer) Emit(code ...byte) {
	b.buf = append(b.buf, code...)
}

// EmitInt32 appends v as a little-endian 32-bit immediate.
func (b *Buffer) EmitInt32(v int32) {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, uint32(v))
}

// PatchInt32 overwrites the four bytes at offset with v, little-endian.
// The bytes must already have been emitted.
func (b *Buffer) PatchInt32(offset int, v int32) {
	binary.LittleEndian.PutUint32(b.buf[offset:offset+4], uint32(v))
}

// Bytes returns the emitted code. The slice aliases the buffer's storage;
// callers must not emit further once they hold it.
func (b *Buffer) Bytes() []byte {
	return b.buf
}
