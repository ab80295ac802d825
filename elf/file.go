package elf

import (
	stderrors "errors"
	"fmt"
	"os"
	"slices"

	"go.uber.org/zap"

	elfbin "github.com/wippyai/elfkit/elf/internal/binary"
	"github.com/wippyai/elfkit/errors"
)

// File is a decoded ELF image. The header is decoded eagerly; the program
// and section tables are decoded on each request and never cached, so a
// File is immutable and safe for concurrent use.
type File struct {
	raw []byte
	Header
}

// Decode decodes the header of data. data must not be modified while the
// File is in use.
func Decode(data []byte) (*File, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if err := h.CheckBounds(len(data)); err != nil {
		Logger().Warn("header tables exceed image", zap.Error(err))
	}
	return &File{raw: data, Header: *h}, nil
}

// ReadImage reads the whole file at path. An empty file is an error.
func ReadImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseRead, errors.KindNotFound, err, fmt.Sprintf("read %s", path))
	}
	if len(data) == 0 {
		return nil, errors.EmptyFile(path)
	}
	return data, nil
}

// Open reads and decodes the file at path.
func Open(path string) (*File, error) {
	data, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return f, nil
}

// Raw returns the image the File was decoded from. Callers must not modify it.
func (f *File) Raw() []byte {
	return f.raw
}

// Programs decodes the program header table. On a non-nil error the
// returned entries are those that decoded.
func (f *File) Programs() ([]ProgHeader, error) {
	return ParsePrograms(f.raw, &f.Header)
}

// Sections decodes the section header table and resolves section names.
// On a non-nil error the returned entries are those that decoded.
func (f *File) Sections() ([]SectionHeader, error) {
	sections, err := ParseSections(f.raw, &f.Header)
	if f.ShStrNdx == SHN_UNDEF {
		return sections, err
	}

	// Dropped entries shift the string table's position in sections.
	var dropped []int
	var te *errors.TableError
	if stderrors.As(err, &te) {
		dropped = te.Indices()
	}
	idx := int(f.ShStrNdx)
	if slices.Contains(dropped, idx) {
		nerr := errors.New(errors.PhaseNames, errors.KindNotFound).
			Path("shstrndx").
			Value(f.ShStrNdx).
			Detail("string table section %d was not decoded", idx).
			Build()
		return sections, stderrors.Join(err, nerr)
	}
	for _, d := range dropped {
		if d < idx {
			idx--
		}
	}
	if idx >= len(sections) {
		return sections, stderrors.Join(err, errors.NotFound(errors.PhaseNames, "section", fmt.Sprint(f.ShStrNdx)))
	}

	nerr := resolveNames(f.raw, sections[idx], sections)
	return sections, stderrors.Join(err, nerr)
}

// Section returns the first section named name.
func (f *File) Section(name string) (*SectionHeader, error) {
	sections, err := f.Sections()
	for i := range sections {
		if sections[i].Name == name {
			return &sections[i], nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("section %q: %w", name, err)
	}
	return nil, errors.NotFound(errors.PhaseNames, "section", name)
}

// SectionsOfType returns the sections of type t in table order.
func (f *File) SectionsOfType(t SectionType) ([]SectionHeader, error) {
	sections, err := f.Sections()
	var out []SectionHeader
	for _, s := range sections {
		if s.Type == t {
			out = append(out, s)
		}
	}
	return out, err
}

// SectionData returns a copy of the bytes of s. SHT_NOBITS sections occupy
// no file space and yield an empty slice.
func (f *File) SectionData(s *SectionHeader) ([]byte, error) {
	if s.Type == SHT_NOBITS {
		return []byte{}, nil
	}
	r := elfbin.NewReader(f.raw, f.ByteOrder())
	b, err := r.Slice(s.Offset, s.Size)
	if err != nil {
		return nil, readError(errors.PhaseDump, []string{"section", s.Name}, err)
	}
	return slices.Clone(b), nil
}
