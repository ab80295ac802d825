package elf

import (
	"strconv"

	elfbin "github.com/wippyai/elfkit/elf/internal/binary"
	"github.com/wippyai/elfkit/errors"
)

// SHN_UNDEF in ShStrNdx means the image has no section name table.
const SHN_UNDEF = 0

// ResolveNames sets Name on every section to the NUL-terminated string at
// NameOff within the section name string table (sections[h.ShStrNdx]).
//
// Lookup is by offset, so the order of sections need not match the order
// of strings in the table, and names may share suffixes. A name whose
// offset falls outside the string table is left empty and reported in a
// *errors.TableError; the other sections are still named.
func ResolveNames(data []byte, h *Header, sections []SectionHeader) error {
	if h.ShStrNdx == SHN_UNDEF {
		return nil
	}
	if int(h.ShStrNdx) >= len(sections) {
		return errors.New(errors.PhaseNames, errors.KindNotFound).
			Path("shstrndx").
			Value(h.ShStrNdx).
			Detail("string table index %d, have %d sections", h.ShStrNdx, len(sections)).
			Build()
	}

	return resolveNames(data, sections[h.ShStrNdx], sections)
}

func resolveNames(data []byte, strtab SectionHeader, sections []SectionHeader) error {
	end := strtab.Offset + strtab.Size
	if end < strtab.Offset || end > uint64(len(data)) {
		return errors.New(errors.PhaseNames, errors.KindOutOfBounds).
			Path("strtab").
			Offset(int64(strtab.Offset)).
			Value(strtab.Size).
			Detail("string table of %d bytes exceeds image length %d", strtab.Size, len(data)).
			Build()
	}

	// Only CString is used, which is order independent.
	r := elfbin.NewReader(data, nil)
	failed := &errors.TableError{Phase: errors.PhaseNames}
	for i := range sections {
		name, err := r.CString(strtab.Offset+uint64(sections[i].NameOff), end)
		if err != nil {
			failed.Add(i, readError(errors.PhaseNames, []string{"entry", strconv.Itoa(i), "name"}, err))
			continue
		}
		sections[i].Name = name
	}
	return failed.OrNil()
}
