package binary

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a read would run past the end of the image.
var ErrOutOfBounds = errors.New("read out of bounds")

// Reader is a position-tracking cursor over an immutable byte image.
// Every multi-byte read uses the byte order given at construction.
type Reader struct {
	order binary.ByteOrder
	data  []byte
	pos   int
}

// NewReader creates a Reader over data positioned at offset 0.
func NewReader(data []byte, order binary.ByteOrder) *Reader {
	return &Reader{data: data, order: order}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Len returns the length of the underlying image.
func (r *Reader) Len() int {
	return len(r.data)
}

// Order returns the byte order used for multi-byte reads.
func (r *Reader) Order() binary.ByteOrder {
	return r.order
}

// SetOrder switches the byte order. The identity bytes of an ELF image are
// read before the order is known.
func (r *Reader) SetOrder(order binary.ByteOrder) {
	r.order = order
}

// Seek moves the cursor to pos. Seeking to len(data) is allowed; reads from
// there fail.
func (r *Reader) Seek(pos uint64) error {
	if pos > uint64(len(r.data)) {
		return r.boundsError(int(min(pos, uint64(maxInt))), 0)
	}
	r.pos = int(pos)
	return nil
}

// Skip advances the cursor by n bytes without decoding them.
func (r *Reader) Skip(n int) error {
	if err := r.check(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() (uint8, error) {
	if err := r.check(1); err != nil {
		return 0, err
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadU16 reads a 2-byte unsigned integer.
func (r *Reader) ReadU16() (uint16, error) {
	if err := r.check(2); err != nil {
		return 0, err
	}
	v := r.order.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// ReadU32 reads a 4-byte unsigned integer.
func (r *Reader) ReadU32() (uint32, error) {
	if err := r.check(4); err != nil {
		return 0, err
	}
	v := r.order.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// ReadU64 reads an 8-byte unsigned integer.
func (r *Reader) ReadU64() (uint64, error) {
	if err := r.check(8); err != nil {
		return 0, err
	}
	v := r.order.Uint64(r.data[r.pos:])
	r.pos += 8
	return v, nil
}

// ReadWord reads a target-width word: 8 bytes when wide is set, 4 otherwise.
func (r *Reader) ReadWord(wide bool) (uint64, error) {
	if wide {
		return r.ReadU64()
	}
	v, err := r.ReadU32()
	return uint64(v), err
}

// ReadBytes reads exactly n bytes. The result aliases the image.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.check(n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}

// Slice returns data[off:off+n] without moving the cursor.
func (r *Reader) Slice(off, n uint64) ([]byte, error) {
	end := off + n
	if end < off || end > uint64(len(r.data)) {
		return nil, &ParseError{
			Err:      ErrOutOfBounds,
			Position: int(min(off, uint64(maxInt))),
			Width:    int(min(n, uint64(maxInt))),
			Length:   len(r.data),
		}
	}
	return r.data[off:end:end], nil
}

// CString returns the NUL-terminated string starting at off. The search for
// the terminator stops at limit; a string reaching limit without a NUL is
// returned as is.
func (r *Reader) CString(off, limit uint64) (string, error) {
	if limit > uint64(len(r.data)) {
		limit = uint64(len(r.data))
	}
	if off >= limit {
		return "", &ParseError{
			Err:      ErrOutOfBounds,
			Position: int(min(off, uint64(maxInt))),
			Width:    1,
			Length:   int(limit),
		}
	}
	b := r.data[off:limit]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b), nil
}

const maxInt = int(^uint(0) >> 1)

func (r *Reader) check(n int) error {
	if n < 0 || r.pos+n > len(r.data) || r.pos+n < r.pos {
		return r.boundsError(r.pos, n)
	}
	return nil
}

func (r *Reader) boundsError(pos, width int) error {
	return &ParseError{
		Err:      ErrOutOfBounds,
		Position: pos,
		Width:    width,
		Length:   len(r.data),
	}
}

// ParseError represents a failed read with position information.
type ParseError struct {
	Err      error
	Field    string
	Position int
	Width    int
	Length   int
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("elf: %s at position %d: %v", e.Field, e.Position, e.Err)
	}
	return fmt.Sprintf("elf: at position %d: %v", e.Position, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WrapError attaches a field name to err if it is a ParseError.
func WrapError(field string, err error) error {
	var pe *ParseError
	if errors.As(err, &pe) && pe.Field == "" {
		pe.Field = field
		return pe
	}
	return err
}
