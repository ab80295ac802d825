// Package dump extracts and renders the contents of program-data sections.
package dump

import (
	stderrors "errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/elfkit/elf"
	"github.com/wippyai/elfkit/errors"
)

// DefaultLimit is the number of bytes taken from each section when
// Options.Limit is zero.
const DefaultLimit = 16

const bytesPerRow = 16

// Options selects what Sections extracts.
type Options struct {
	// Names restricts the dump to these sections. Empty means every
	// SHT_PROGBITS section.
	Names []string
	// Limit caps the bytes taken from each section. Zero means
	// DefaultLimit; a negative value takes the whole section.
	Limit int
}

// Entry is the leading data of one section.
type Entry struct {
	Name      string
	Data      []byte
	Addr      uint64
	Offset    uint64
	Size      uint64
	Truncated bool
}

// Sections returns the leading bytes of the program-data sections of f in
// table order. Sections whose data lies outside the image are reported in a
// TableError indexed by position among the program-data sections. Requested
// names with no program-data section are reported as not found. In both
// cases the remaining entries are still returned.
func Sections(f *elf.File, opts Options) ([]Entry, error) {
	limit := opts.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	progbits, err := f.SectionsOfType(elf.SHT_PROGBITS)
	failed := &errors.TableError{Phase: errors.PhaseDump}

	var out []Entry
	for i := range progbits {
		s := &progbits[i]
		if len(opts.Names) > 0 && !slices.Contains(opts.Names, s.Name) {
			continue
		}
		e, derr := extract(f, s, limit)
		if derr != nil {
			elf.Logger().Warn("skipping section", zap.String("section", s.Name), zap.Error(derr))
			failed.Add(i, derr)
			continue
		}
		out = append(out, e)
	}

	errs := []error{err, failed.OrNil()}
	for _, name := range opts.Names {
		if !slices.ContainsFunc(progbits, func(s elf.SectionHeader) bool { return s.Name == name }) {
			errs = append(errs, errors.NotFound(errors.PhaseDump, "program data section", name))
		}
	}
	return out, stderrors.Join(errs...)
}

func extract(f *elf.File, s *elf.SectionHeader, limit int) (Entry, error) {
	e := Entry{
		Name:   s.Name,
		Addr:   s.Addr,
		Offset: s.Offset,
		Size:   s.Size,
	}
	head := *s
	if limit > 0 && s.Size > uint64(limit) {
		head.Size = uint64(limit)
		e.Truncated = true
	}
	data, err := f.SectionData(&head)
	if err != nil {
		return Entry{}, err
	}
	e.Data = data
	return e, nil
}

// Hex writes e as a hexdump of 16 bytes per row. The address column starts
// at the section's virtual address.
func Hex(w io.Writer, e Entry) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Hex dump of section '%s':\n", e.Name)
	for off := 0; off < len(e.Data); off += bytesPerRow {
		row := e.Data[off:min(off+bytesPerRow, len(e.Data))]
		fmt.Fprintf(&b, "  0x%08x ", e.Addr+uint64(off))
		for i := 0; i < bytesPerRow; i++ {
			if i == bytesPerRow/2 {
				b.WriteByte(' ')
			}
			if i < len(row) {
				fmt.Fprintf(&b, " %02x", row[i])
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteString("  |")
		for _, c := range row {
			if c >= 0x20 && c < 0x7F {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString("|\n")
	}
	if e.Truncated {
		fmt.Fprintf(&b, "  ... %d of %d bytes shown\n", len(e.Data), e.Size)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
