package elf_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/wippyai/elfkit/elf"
	"github.com/wippyai/elfkit/internal/elftest"
)

func TestParseHeader64LittleEndian(t *testing.T) {
	img := elftest.New64()
	img.OSABI = byte(elf.ELFOSABI_LINUX)
	img.Flags = 0x5
	img.Progs = []elftest.Prog{{Type: uint32(elf.PT_LOAD)}}
	img.Sections = []elftest.Section{{}, {Type: uint32(elf.SHT_STRTAB), Data: []byte{0}}}
	img.ShStrNdx = 1
	data, lay := img.Build()

	h, err := elf.ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}

	if got, want := h.Entry, binary.LittleEndian.Uint64(data[0x18:]); got != want {
		t.Errorf("Entry = %#x, want the 8 bytes at 0x18 (%#x)", got, want)
	}

	checks := []struct {
		name      string
		got, want any
	}{
		{"class", h.Class, elf.ELFCLASS64},
		{"data", h.Data, elf.ELFDATA2LSB},
		{"ident version", h.IdentVersion, uint8(1)},
		{"osabi", h.OSABI, elf.ELFOSABI_LINUX},
		{"abi version", h.ABIVersion, uint8(0)},
		{"type", h.Type, elf.ET_EXEC},
		{"machine", h.Machine, elf.EM_X86_64},
		{"version", h.Version, uint32(1)},
		{"entry", h.Entry, uint64(0x401000)},
		{"phoff", h.PhOff, lay.PhOff},
		{"shoff", h.ShOff, lay.ShOff},
		{"flags", h.Flags, uint32(0x5)},
		{"ehsize", h.EhSize, uint16(elftest.EhSize64)},
		{"phentsize", h.PhEntSize, uint16(elftest.PhEntSize64)},
		{"phnum", h.PhNum, uint16(1)},
		{"shentsize", h.ShEntSize, uint16(elftest.ShEntSize64)},
		{"shnum", h.ShNum, uint16(2)},
		{"shstrndx", h.ShStrNdx, uint16(1)},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if string(h.Ident[:4]) != "\x7fELF" {
		t.Errorf("Ident magic = % x", h.Ident[:4])
	}
	if h.ByteOrder() != binary.LittleEndian {
		t.Errorf("ByteOrder = %v, want little endian", h.ByteOrder())
	}
}

func TestParseHeader32BigEndian(t *testing.T) {
	img := elftest.New32().BigEndian()
	img.Machine = uint16(elf.EM_PPC)
	img.Entry = 0x10000100
	img.Progs = []elftest.Prog{{Type: uint32(elf.PT_LOAD)}, {Type: uint32(elf.PT_NOTE)}}
	data, lay := img.Build()

	h, err := elf.ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if h.Class != elf.ELFCLASS32 || h.Data != elf.ELFDATA2MSB {
		t.Errorf("class/data = %v/%v", h.Class, h.Data)
	}
	if h.Machine != elf.EM_PPC {
		t.Errorf("Machine = %v, want PowerPC", h.Machine)
	}
	if h.Entry != 0x10000100 {
		t.Errorf("Entry = %#x, want 0x10000100", h.Entry)
	}
	if got := binary.BigEndian.Uint32(data[0x18:]); uint64(got) != h.Entry {
		t.Errorf("Entry does not match the 4 bytes at 0x18: %#x", got)
	}
	if h.PhOff != lay.PhOff || h.PhNum != 2 || h.PhEntSize != elftest.PhEntSize32 {
		t.Errorf("program geometry = %#x/%d/%d", h.PhOff, h.PhNum, h.PhEntSize)
	}
	if h.EhSize != elftest.EhSize32 {
		t.Errorf("EhSize = %d, want %d", h.EhSize, elftest.EhSize32)
	}
}

func TestParseHeaderFatalErrors(t *testing.T) {
	valid := func() []byte {
		data, _ := elftest.New64().Build()
		return data
	}

	tests := []struct {
		name   string
		mutate func([]byte) []byte
		want   error
	}{
		{"zero magic", func(b []byte) []byte { copy(b, []byte{0, 0, 0, 0}); return b }, elf.ErrMalformedMagic},
		{"lowercase magic", func(b []byte) []byte { b[1] = 'e'; return b }, elf.ErrMalformedMagic},
		{"class 3", func(b []byte) []byte { b[4] = 3; return b }, elf.ErrUnsupportedClass},
		{"class 0", func(b []byte) []byte { b[4] = 0; return b }, elf.ErrUnsupportedClass},
		{"data 0", func(b []byte) []byte { b[5] = 0; return b }, elf.ErrUnsupportedEncoding},
		{"data 3", func(b []byte) []byte { b[5] = 3; return b }, elf.ErrUnsupportedEncoding},
		{"osabi 0x42", func(b []byte) []byte { b[7] = 0x42; return b }, elf.ErrUnsupportedABI},
		{"type 5", func(b []byte) []byte { binary.LittleEndian.PutUint16(b[16:], 5); return b }, elf.ErrUnsupportedType},
		{"type 0xFDFF", func(b []byte) []byte { binary.LittleEndian.PutUint16(b[16:], 0xFDFF); return b }, elf.ErrUnsupportedType},
		{"machine 0x10", func(b []byte) []byte { binary.LittleEndian.PutUint16(b[18:], 0x10); return b }, elf.ErrUnsupportedInstructionSet},
		{"machine 0x1234", func(b []byte) []byte { binary.LittleEndian.PutUint16(b[18:], 0x1234); return b }, elf.ErrUnsupportedInstructionSet},
		{"empty", func(b []byte) []byte { return nil }, elf.ErrOutOfBounds},
		{"magic only", func(b []byte) []byte { return b[:4] }, elf.ErrOutOfBounds},
		{"truncated tail", func(b []byte) []byte { return b[:len(b)-1] }, elf.ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := elf.ParseHeader(tt.mutate(valid()))
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if h != nil {
				t.Error("expected no partial header")
			}
		})
	}
}

func TestParseHeaderEveryTruncation(t *testing.T) {
	for _, img := range []*elftest.Image{elftest.New32(), elftest.New64()} {
		data, _ := img.Build()
		for n := 0; n < len(data); n++ {
			if _, err := elf.ParseHeader(data[:n]); !errors.Is(err, elf.ErrOutOfBounds) {
				t.Fatalf("class %d, %d bytes: got %v, want out of bounds", img.Class, n, err)
			}
		}
		if _, err := elf.ParseHeader(data); err != nil {
			t.Fatalf("class %d full header: %v", img.Class, err)
		}
	}
}

func TestParseHeaderReservedRanges(t *testing.T) {
	tests := []struct {
		typ     uint16
		machine uint16
		str     string
	}{
		{0xFE00, 0x3E, "OS-specific(0xfe00)"},
		{0xFEFF, 0x0B, "OS-specific(0xfeff)"},
		{0xFF00, 0x0E, "Processor-specific(0xff00)"},
		{0xFFFF, 0x23, "Processor-specific(0xffff)"},
	}
	for _, tt := range tests {
		img := elftest.New64()
		img.Type = tt.typ
		img.Machine = tt.machine
		data, _ := img.Build()

		h, err := elf.ParseHeader(data)
		if err != nil {
			t.Errorf("type %#x machine %#x: %v", tt.typ, tt.machine, err)
			continue
		}
		if h.Type.String() != tt.str {
			t.Errorf("Type.String() = %q, want %q", h.Type.String(), tt.str)
		}
	}
}

// The same bytes decoded under each byte order must disagree on every
// multi-byte field. Type and machine are chosen so both readings are valid;
// machine 0x0101 reads the same either way, which is unavoidable because
// no other pair of valid machine codes are byte swaps of each other.
func TestParseHeaderByteOrderChangesValues(t *testing.T) {
	img := elftest.New64()
	img.Type = 0xFFFE
	img.Machine = 0x0101
	img.Flags = 0x12
	img.Progs = []elftest.Prog{{}}
	img.Sections = []elftest.Section{{}}
	img.ShStrNdx = 1
	le, _ := img.Build()

	be := append([]byte(nil), le...)
	be[5] = byte(elf.ELFDATA2MSB)

	hl, err := elf.ParseHeader(le)
	if err != nil {
		t.Fatalf("ParseHeader(LE): %v", err)
	}
	hb, err := elf.ParseHeader(be)
	if err != nil {
		t.Fatalf("ParseHeader(BE): %v", err)
	}

	fields := []struct {
		name   string
		lv, bv uint64
	}{
		{"type", uint64(hl.Type), uint64(hb.Type)},
		{"version", uint64(hl.Version), uint64(hb.Version)},
		{"entry", hl.Entry, hb.Entry},
		{"phoff", hl.PhOff, hb.PhOff},
		{"shoff", hl.ShOff, hb.ShOff},
		{"flags", uint64(hl.Flags), uint64(hb.Flags)},
		{"ehsize", uint64(hl.EhSize), uint64(hb.EhSize)},
		{"phentsize", uint64(hl.PhEntSize), uint64(hb.PhEntSize)},
		{"phnum", uint64(hl.PhNum), uint64(hb.PhNum)},
		{"shentsize", uint64(hl.ShEntSize), uint64(hb.ShEntSize)},
		{"shnum", uint64(hl.ShNum), uint64(hb.ShNum)},
		{"shstrndx", uint64(hl.ShStrNdx), uint64(hb.ShStrNdx)},
	}
	for _, f := range fields {
		if f.lv == f.bv {
			t.Errorf("%s decoded to %#x under both byte orders", f.name, f.lv)
		}
	}

	if hl.Class != hb.Class || hl.OSABI != hb.OSABI || hl.IdentVersion != hb.IdentVersion {
		t.Error("single-byte identity fields must not depend on byte order")
	}
	if hl.Type != 0xFFFE || hb.Type != 0xFEFF {
		t.Errorf("type LE/BE = %#x/%#x, want 0xfffe/0xfeff", hl.Type, hb.Type)
	}
}

func TestHeaderCheckBounds(t *testing.T) {
	img := elftest.New64()
	img.Progs = []elftest.Prog{{}, {}}
	data, _ := img.Build()

	h, err := elf.ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if err := h.CheckBounds(len(data)); err != nil {
		t.Errorf("CheckBounds on a complete image: %v", err)
	}
	if err := h.CheckBounds(len(data) - 1); !errors.Is(err, elf.ErrOutOfBounds) {
		t.Errorf("CheckBounds on a short image: got %v", err)
	}

	h.ShOff = ^uint64(0) - 8
	h.ShEntSize = 64
	h.ShNum = 2
	if err := h.CheckBounds(len(data)); !errors.Is(err, elf.ErrOutOfBounds) {
		t.Errorf("CheckBounds with overflowing extent: got %v", err)
	}
}
