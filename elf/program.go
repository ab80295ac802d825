package elf

import (
	elfbin "github.com/wippyai/elfkit/elf/internal/binary"
	"github.com/wippyai/elfkit/errors"
)

// ParsePrograms decodes the program header table described by h.
//
// Entries that cannot be decoded are dropped and listed in the returned
// *errors.TableError; every other entry is returned in table order.
// Unrecognized segment types and flag values are not errors: they keep
// their raw code.
func ParsePrograms(data []byte, h *Header) ([]ProgHeader, error) {
	natural, decode := uint64(progEntSize32), decodeProg32
	if h.Class.Wide() {
		natural, decode = progEntSize64, decodeProg64
	}
	g := newGeometry(errors.PhaseProgram, h.PhOff, h.PhEntSize, h.PhNum, natural)
	return decodeTable(data, h, g, decode)
}

// decodeProg64 reads an Elf64_Phdr: flags follow the type directly.
func decodeProg64(r *elfbin.Reader) (ProgHeader, error) {
	var p ProgHeader

	typ, err := r.ReadU32()
	if err != nil {
		return p, elfbin.WrapError("type", err)
	}
	p.Type = ProgType(typ)

	flags, err := r.ReadU32()
	if err != nil {
		return p, elfbin.WrapError("flags", err)
	}
	p.Flags = ProgFlag(flags)

	for _, f := range []struct {
		name string
		dst  *uint64
	}{
		{"offset", &p.Off},
		{"vaddr", &p.Vaddr},
		{"paddr", &p.Paddr},
		{"filesz", &p.Filesz},
		{"memsz", &p.Memsz},
		{"align", &p.Align},
	} {
		if *f.dst, err = r.ReadU64(); err != nil {
			return p, elfbin.WrapError(f.name, err)
		}
	}
	return p, nil
}

// decodeProg32 reads an Elf32_Phdr: flags come after memsz, just before
// align.
func decodeProg32(r *elfbin.Reader) (ProgHeader, error) {
	var p ProgHeader

	typ, err := r.ReadU32()
	if err != nil {
		return p, elfbin.WrapError("type", err)
	}
	p.Type = ProgType(typ)

	for _, f := range []struct {
		name string
		dst  *uint64
	}{
		{"offset", &p.Off},
		{"vaddr", &p.Vaddr},
		{"paddr", &p.Paddr},
		{"filesz", &p.Filesz},
		{"memsz", &p.Memsz},
	} {
		v, err := r.ReadU32()
		if err != nil {
			return p, elfbin.WrapError(f.name, err)
		}
		*f.dst = uint64(v)
	}

	flags, err := r.ReadU32()
	if err != nil {
		return p, elfbin.WrapError("flags", err)
	}
	p.Flags = ProgFlag(flags)

	align, err := r.ReadU32()
	if err != nil {
		return p, elfbin.WrapError("align", err)
	}
	p.Align = uint64(align)
	return p, nil
}
