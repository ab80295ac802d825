package elf

import (
	elfbin "github.com/wippyai/elfkit/elf/internal/binary"
	"github.com/wippyai/elfkit/errors"
)

// ParseSections decodes the section header table described by h. Names are
// not resolved; see ResolveNames.
//
// The failure policy matches ParsePrograms: bad entries are dropped and
// reported in a *errors.TableError alongside the entries that decoded.
func ParseSections(data []byte, h *Header) ([]SectionHeader, error) {
	natural, decode := uint64(sectionEntSize32), decodeSection32
	if h.Class.Wide() {
		natural, decode = sectionEntSize64, decodeSection64
	}
	g := newGeometry(errors.PhaseSection, h.ShOff, h.ShEntSize, h.ShNum, natural)
	return decodeTable(data, h, g, decode)
}

func decodeSection64(r *elfbin.Reader) (SectionHeader, error) {
	var s SectionHeader
	var err error

	if s.NameOff, err = r.ReadU32(); err != nil {
		return s, elfbin.WrapError("name", err)
	}
	typ, err := r.ReadU32()
	if err != nil {
		return s, elfbin.WrapError("type", err)
	}
	s.Type = SectionType(typ)

	flags, err := r.ReadU64()
	if err != nil {
		return s, elfbin.WrapError("flags", err)
	}
	s.Flags = SectionFlag(flags)

	if s.Addr, err = r.ReadU64(); err != nil {
		return s, elfbin.WrapError("addr", err)
	}
	if s.Offset, err = r.ReadU64(); err != nil {
		return s, elfbin.WrapError("offset", err)
	}
	if s.Size, err = r.ReadU64(); err != nil {
		return s, elfbin.WrapError("size", err)
	}
	if s.Link, err = r.ReadU32(); err != nil {
		return s, elfbin.WrapError("link", err)
	}
	if s.Info, err = r.ReadU32(); err != nil {
		return s, elfbin.WrapError("info", err)
	}
	if s.Addralign, err = r.ReadU64(); err != nil {
		return s, elfbin.WrapError("addralign", err)
	}
	if s.Entsize, err = r.ReadU64(); err != nil {
		return s, elfbin.WrapError("entsize", err)
	}
	return s, nil
}

func decodeSection32(r *elfbin.Reader) (SectionHeader, error) {
	var s SectionHeader
	var err error

	if s.NameOff, err = r.ReadU32(); err != nil {
		return s, elfbin.WrapError("name", err)
	}
	typ, err := r.ReadU32()
	if err != nil {
		return s, elfbin.WrapError("type", err)
	}
	s.Type = SectionType(typ)

	flags, err := r.ReadU32()
	if err != nil {
		return s, elfbin.WrapError("flags", err)
	}
	s.Flags = SectionFlag(flags)

	for _, f := range []struct {
		name string
		dst  *uint64
	}{
		{"addr", &s.Addr},
		{"offset", &s.Offset},
		{"size", &s.Size},
	} {
		v, err := r.ReadU32()
		if err != nil {
			return s, elfbin.WrapError(f.name, err)
		}
		*f.dst = uint64(v)
	}

	if s.Link, err = r.ReadU32(); err != nil {
		return s, elfbin.WrapError("link", err)
	}
	if s.Info, err = r.ReadU32(); err != nil {
		return s, elfbin.WrapError("info", err)
	}
	align, err := r.ReadU32()
	if err != nil {
		return s, elfbin.WrapError("addralign", err)
	}
	s.Addralign = uint64(align)
	entsize, err := r.ReadU32()
	if err != nil {
		return s, elfbin.WrapError("entsize", err)
	}
	s.Entsize = uint64(entsize)
	return s, nil
}
