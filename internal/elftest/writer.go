package elftest

import (
	"bytes"
	"encoding/binary"
)

// Writer appends fixed-width integers in a chosen byte order.
type Writer struct {
	buf   *bytes.Buffer
	order binary.ByteOrder
}

// NewWriter creates a new Writer.
func NewWriter(order binary.ByteOrder) *Writer {
	return &Writer{buf: &bytes.Buffer{}, order: order}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Byte writes a single byte.
func (w *Writer) Byte(b byte) {
	w.buf.WriteByte(b)
}

// WriteBytes writes a byte slice.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// Zero writes n zero bytes.
func (w *Writer) Zero(n int) {
	for i := 0; i < n; i++ {
		w.buf.WriteByte(0)
	}
}

// PadTo writes zero bytes until the buffer is n bytes long.
func (w *Writer) PadTo(n int) {
	if w.buf.Len() < n {
		w.Zero(n - w.buf.Len())
	}
}

// U16 writes a 2-byte integer.
func (w *Writer) U16(v uint16) {
	var b [2]byte
	w.order.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

// U32 writes a 4-byte integer.
func (w *Writer) U32(v uint32) {
	var b [4]byte
	w.order.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// U64 writes an 8-byte integer.
func (w *Writer) U64(v uint64) {
	var b [8]byte
	w.order.PutUint64(b[:], v)
	w.buf.Write(b[:])
}

// Word writes v as 8 bytes when wide is set, 4 bytes otherwise.
func (w *Writer) Word(wide bool, v uint64) {
	if wide {
		w.U64(v)
		return
	}
	w.U32(uint32(v))
}
