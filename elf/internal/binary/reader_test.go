package binary

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestReaderReadU8(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	r := NewReader(data, binary.LittleEndian)

	for i, want := range data {
		if r.Position() != i {
			t.Errorf("position before read %d: got %d, want %d", i, r.Position(), i)
		}
		b, err := r.ReadU8()
		if err != nil {
			t.Fatalf("ReadU8 %d: %v", i, err)
		}
		if b != want {
			t.Errorf("ReadU8 %d: got 0x%02x, want 0x%02x", i, b, want)
		}
	}

	_, err := r.ReadU8()
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestReaderByteOrder(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	tests := []struct {
		name  string
		order binary.ByteOrder
		u16   uint16
		u32   uint32
		u64   uint64
	}{
		{"little", binary.LittleEndian, 0x0201, 0x04030201, 0x0807060504030201},
		{"big", binary.BigEndian, 0x0102, 0x01020304, 0x0102030405060708},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(data, tt.order)
			u16, err := r.ReadU16()
			if err != nil || u16 != tt.u16 {
				t.Errorf("ReadU16: got %#x, %v; want %#x", u16, err, tt.u16)
			}

			if err := r.Seek(0); err != nil {
				t.Fatalf("Seek: %v", err)
			}
			u32, err := r.ReadU32()
			if err != nil || u32 != tt.u32 {
				t.Errorf("ReadU32: got %#x, %v; want %#x", u32, err, tt.u32)
			}

			if err := r.Seek(0); err != nil {
				t.Fatalf("Seek: %v", err)
			}
			u64, err := r.ReadU64()
			if err != nil || u64 != tt.u64 {
				t.Errorf("ReadU64: got %#x, %v; want %#x", u64, err, tt.u64)
			}
			if r.Position() != 8 {
				t.Errorf("position: got %d, want 8", r.Position())
			}
		})
	}
}

func TestReaderReadWord(t *testing.T) {
	data := []byte{0xEF, 0xBE, 0xAD, 0xDE, 0x01, 0x00, 0x00, 0x00}

	r := NewReader(data, binary.LittleEndian)
	v, err := r.ReadWord(false)
	if err != nil || v != 0xDEADBEEF {
		t.Errorf("ReadWord(32): got %#x, %v", v, err)
	}
	if r.Position() != 4 {
		t.Errorf("position after 32-bit word: got %d, want 4", r.Position())
	}

	r = NewReader(data, binary.LittleEndian)
	v, err = r.ReadWord(true)
	if err != nil || v != 0x1DEADBEEF {
		t.Errorf("ReadWord(64): got %#x, %v", v, err)
	}
}

func TestReaderOutOfBoundsDoesNotAdvance(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	widths := []struct {
		name string
		read func(*Reader) error
	}{
		{"u16", func(r *Reader) error { _, err := r.ReadU16(); return err }},
		{"u32", func(r *Reader) error { _, err := r.ReadU32(); return err }},
		{"u64", func(r *Reader) error { _, err := r.ReadU64(); return err }},
		{"bytes", func(r *Reader) error { _, err := r.ReadBytes(3); return err }},
		{"skip", func(r *Reader) error { return r.Skip(3) }},
	}

	for _, w := range widths {
		t.Run(w.name, func(t *testing.T) {
			r := NewReader(data, binary.BigEndian)
			if err := r.Seek(1); err != nil {
				t.Fatalf("Seek: %v", err)
			}
			err := w.read(r)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("expected ErrOutOfBounds, got %v", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if pe.Position != 1 || pe.Length != 3 {
				t.Errorf("ParseError position=%d length=%d, want 1 and 3", pe.Position, pe.Length)
			}
			if r.Position() != 1 {
				t.Errorf("position moved to %d after failed read", r.Position())
			}
		})
	}
}

func TestReaderSeek(t *testing.T) {
	r := NewReader(make([]byte, 4), binary.LittleEndian)
	if err := r.Seek(4); err != nil {
		t.Errorf("Seek to end: %v", err)
	}
	if err := r.Seek(5); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Seek past end: got %v", err)
	}
	if err := r.Seek(^uint64(0)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Seek to max uint64: got %v", err)
	}
}

func TestReaderSlice(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5}
	r := NewReader(data, binary.LittleEndian)

	b, err := r.Slice(2, 3)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if len(b) != 3 || b[0] != 2 || b[2] != 4 {
		t.Errorf("Slice: got %v", b)
	}
	if cap(b) != 3 {
		t.Errorf("Slice capacity: got %d, want 3", cap(b))
	}
	if r.Position() != 0 {
		t.Errorf("Slice moved the cursor to %d", r.Position())
	}

	if _, err := r.Slice(4, 3); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Slice past end: got %v", err)
	}
	if _, err := r.Slice(2, ^uint64(0)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Slice with overflowing size: got %v", err)
	}
}

func TestReaderCString(t *testing.T) {
	data := []byte(".text\x00.data\x00tail")
	r := NewReader(data, binary.LittleEndian)

	tests := []struct {
		off, limit uint64
		want       string
	}{
		{0, uint64(len(data)), ".text"},
		{6, uint64(len(data)), ".data"},
		{7, uint64(len(data)), "data"},
		{12, uint64(len(data)), "tail"},
		{0, 3, ".te"},
		{0, 1000, ".text"},
	}
	for _, tt := range tests {
		got, err := r.CString(tt.off, tt.limit)
		if err != nil {
			t.Errorf("CString(%d, %d): %v", tt.off, tt.limit, err)
			continue
		}
		if got != tt.want {
			t.Errorf("CString(%d, %d) = %q, want %q", tt.off, tt.limit, got, tt.want)
		}
	}

	if _, err := r.CString(6, 6); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("CString at limit: got %v", err)
	}
}

func TestWrapError(t *testing.T) {
	r := NewReader(nil, binary.LittleEndian)
	_, err := r.ReadU32()
	err = WrapError("flags", err)

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Field != "flags" {
		t.Errorf("Field = %q, want flags", pe.Field)
	}
	if pe.Error() != "elf: flags at position 0: read out of bounds" {
		t.Errorf("unexpected message %q", pe.Error())
	}

	plain := errors.New("plain")
	if WrapError("x", plain) != plain {
		t.Error("WrapError should pass through non-ParseError values")
	}
}
