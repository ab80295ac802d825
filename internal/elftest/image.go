// Package elftest builds synthetic ELF images for decoder tests.
package elftest

import (
	"encoding/binary"
)

// Header, program entry, and section entry sizes per word class.
const (
	EhSize32    = 52
	EhSize64    = 64
	PhEntSize32 = 32
	PhEntSize64 = 56
	ShEntSize32 = 40
	ShEntSize64 = 64
)

// Prog is a program header entry as laid out in the image.
type Prog struct {
	Type   uint32
	Flags  uint32
	Off    uint64
	Vaddr  uint64
	Paddr  uint64
	Filesz uint64
	Memsz  uint64
	Align  uint64
}

// Section is a section header entry. When Data is non-nil the builder places
// it in the image and fills Offset and Size.
type Section struct {
	Data      []byte
	Flags     uint64
	Addr      uint64
	Offset    uint64
	Size      uint64
	Addralign uint64
	Entsize   uint64
	NameOff   uint32
	Type      uint32
	Link      uint32
	Info      uint32
}

// Image describes a synthetic ELF file. Zero-valued geometry fields are
// computed from the tables.
type Image struct {
	Order      binary.ByteOrder
	Progs      []Prog
	Sections   []Section
	Entry      uint64
	Version    uint32
	Flags      uint32
	Type       uint16
	Machine    uint16
	PhEntSize  uint16
	ShEntSize  uint16
	PhNum      uint16
	ShNum      uint16
	ShStrNdx   uint16
	Wide       bool
	Class      byte
	Data       byte
	OSABI      byte
	ABIVersion byte
}

// Layout reports where Build placed each table.
type Layout struct {
	PhOff      uint64
	ShOff      uint64
	SectionOff []uint64
}

// New64 returns a 64-bit little-endian x86-64 executable image.
func New64() *Image {
	return &Image{
		Order:   binary.LittleEndian,
		Wide:    true,
		Class:   2,
		Data:    1,
		Version: 1,
		Type:    2,
		Machine: 0x3E,
		Entry:   0x401000,
	}
}

// New32 returns a 32-bit little-endian i386 executable image.
func New32() *Image {
	return &Image{
		Order:   binary.LittleEndian,
		Class:   1,
		Data:    1,
		Version: 1,
		Type:    2,
		Machine: 0x03,
		Entry:   0x8048000,
	}
}

// BigEndian switches the image to big-endian encoding.
func (img *Image) BigEndian() *Image {
	img.Order = binary.BigEndian
	img.Data = 2
	return img
}

// Build lays out header, program table, section payloads, and section table
// in that order.
func (img *Image) Build() ([]byte, Layout) {
	var lay Layout

	ehsize, phent, shent := EhSize32, PhEntSize32, ShEntSize32
	if img.Wide {
		ehsize, phent, shent = EhSize64, PhEntSize64, ShEntSize64
	}
	if img.PhEntSize != 0 {
		phent = int(img.PhEntSize)
	}
	if img.ShEntSize != 0 {
		shent = int(img.ShEntSize)
	}

	phnum := img.PhNum
	if phnum == 0 {
		phnum = uint16(len(img.Progs))
	}
	shnum := img.ShNum
	if shnum == 0 {
		shnum = uint16(len(img.Sections))
	}

	body := NewWriter(img.Order)
	body.PadTo(ehsize)

	if len(img.Progs) > 0 {
		lay.PhOff = uint64(body.Len())
		for _, p := range img.Progs {
			start := body.Len()
			img.writeProg(body, p)
			body.PadTo(start + phent)
		}
	}

	sections := make([]Section, len(img.Sections))
	copy(sections, img.Sections)
	lay.SectionOff = make([]uint64, len(sections))
	for i := range sections {
		if sections[i].Data == nil {
			lay.SectionOff[i] = sections[i].Offset
			continue
		}
		sections[i].Offset = uint64(body.Len())
		if sections[i].Size == 0 {
			sections[i].Size = uint64(len(sections[i].Data))
		}
		lay.SectionOff[i] = sections[i].Offset
		body.WriteBytes(sections[i].Data)
	}

	if len(sections) > 0 {
		body.PadTo((body.Len() + 7) &^ 7)
		lay.ShOff = uint64(body.Len())
		for _, s := range sections {
			start := body.Len()
			img.writeSection(body, s)
			body.PadTo(start + shent)
		}
	}

	out := body.Bytes()
	hdr := NewWriter(img.Order)
	hdr.WriteBytes([]byte{0x7F, 'E', 'L', 'F', img.Class, img.Data, 1, img.OSABI, img.ABIVersion})
	hdr.Zero(7)
	hdr.U16(img.Type)
	hdr.U16(img.Machine)
	hdr.U32(img.Version)
	hdr.Word(img.Wide, img.Entry)
	hdr.Word(img.Wide, lay.PhOff)
	hdr.Word(img.Wide, lay.ShOff)
	hdr.U32(img.Flags)
	hdr.U16(uint16(ehsize))
	hdr.U16(uint16(phent))
	hdr.U16(phnum)
	hdr.U16(uint16(shent))
	hdr.U16(shnum)
	hdr.U16(img.ShStrNdx)
	copy(out, hdr.Bytes())

	return out, lay
}

func (img *Image) writeProg(w *Writer, p Prog) {
	w.U32(p.Type)
	if img.Wide {
		w.U32(p.Flags)
		w.U64(p.Off)
		w.U64(p.Vaddr)
		w.U64(p.Paddr)
		w.U64(p.Filesz)
		w.U64(p.Memsz)
		w.U64(p.Align)
		return
	}
	w.U32(uint32(p.Off))
	w.U32(uint32(p.Vaddr))
	w.U32(uint32(p.Paddr))
	w.U32(uint32(p.Filesz))
	w.U32(uint32(p.Memsz))
	w.U32(p.Flags)
	w.U32(uint32(p.Align))
}

func (img *Image) writeSection(w *Writer, s Section) {
	w.U32(s.NameOff)
	w.U32(s.Type)
	w.Word(img.Wide, s.Flags)
	w.Word(img.Wide, s.Addr)
	w.Word(img.Wide, s.Offset)
	w.Word(img.Wide, s.Size)
	w.U32(s.Link)
	w.U32(s.Info)
	w.Word(img.Wide, s.Addralign)
	w.Word(img.Wide, s.Entsize)
}

// StringTable joins names into a NUL-terminated string table and returns
// the offset of each name.
func StringTable(names ...string) ([]byte, []uint32) {
	var buf []byte
	offs := make([]uint32, len(names))
	for i, n := range names {
		offs[i] = uint32(len(buf))
		buf = append(buf, n...)
		buf = append(buf, 0)
	}
	return buf, offs
}
