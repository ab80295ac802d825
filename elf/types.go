package elf

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Magic is the 4-byte identity every ELF image starts with.
var Magic = [4]byte{0x7F, 'E', 'L', 'F'}

// Class is the word width of the target.
type Class uint8

const (
	ELFCLASSNONE Class = 0
	ELFCLASS32   Class = 1
	ELFCLASS64   Class = 2
)

// Wide reports whether addresses and offsets are 8 bytes.
func (c Class) Wide() bool { return c == ELFCLASS64 }

// Bits returns 32 or 64, or 0 for an invalid class.
func (c Class) Bits() int {
	switch c {
	case ELFCLASS32:
		return 32
	case ELFCLASS64:
		return 64
	}
	return 0
}

func (c Class) String() string { return classTable.describe(c, "Invalid") }

// Data is the byte order of multi-byte fields.
type Data uint8

const (
	ELFDATANONE Data = 0
	ELFDATA2LSB Data = 1
	ELFDATA2MSB Data = 2
)

// ByteOrder returns the encoding/binary order for d, or nil if d is invalid.
func (d Data) ByteOrder() binary.ByteOrder {
	switch d {
	case ELFDATA2LSB:
		return binary.LittleEndian
	case ELFDATA2MSB:
		return binary.BigEndian
	}
	return nil
}

func (d Data) String() string { return dataTable.describe(d, "Invalid") }

// OSABI identifies the operating system and ABI.
type OSABI uint8

const (
	ELFOSABI_NONE       OSABI = 0x00
	ELFOSABI_HPUX       OSABI = 0x01
	ELFOSABI_NETBSD     OSABI = 0x02
	ELFOSABI_LINUX      OSABI = 0x03
	ELFOSABI_HURD       OSABI = 0x04
	ELFOSABI_SOLARIS    OSABI = 0x06
	ELFOSABI_AIX        OSABI = 0x07
	ELFOSABI_IRIX       OSABI = 0x08
	ELFOSABI_FREEBSD    OSABI = 0x09
	ELFOSABI_TRU64      OSABI = 0x0A
	ELFOSABI_MODESTO    OSABI = 0x0B
	ELFOSABI_OPENBSD    OSABI = 0x0C
	ELFOSABI_OPENVMS    OSABI = 0x0D
	ELFOSABI_NSK        OSABI = 0x0E
	ELFOSABI_AROS       OSABI = 0x0F
	ELFOSABI_FENIXOS    OSABI = 0x10
	ELFOSABI_CLOUDABI   OSABI = 0x11
	ELFOSABI_OPENVOS    OSABI = 0x12
)

func (a OSABI) String() string { return osabiTable.describe(a, "Unknown") }

// Type is the object file type.
type Type uint16

const (
	ET_NONE   Type = 0
	ET_REL    Type = 1
	ET_EXEC   Type = 2
	ET_DYN    Type = 3
	ET_CORE   Type = 4
	ET_LOOS   Type = 0xFE00
	ET_HIOS   Type = 0xFEFF
	ET_LOPROC Type = 0xFF00
	ET_HIPROC Type = 0xFFFF
)

func (t Type) String() string { return typeTable.describe(t, "Unknown") }

// Machine is the target instruction set.
type Machine uint16

const (
	EM_NONE      Machine = 0x00
	EM_SPARC     Machine = 0x02
	EM_386       Machine = 0x03
	EM_68K       Machine = 0x04
	EM_MIPS      Machine = 0x08
	EM_PPC       Machine = 0x14
	EM_PPC64     Machine = 0x15
	EM_S390      Machine = 0x16
	EM_ARM       Machine = 0x28
	EM_SH        Machine = 0x2A
	EM_SPARCV9   Machine = 0x2B
	EM_IA_64     Machine = 0x32
	EM_X86_64    Machine = 0x3E
	EM_AARCH64   Machine = 0xB7
	EM_RISCV     Machine = 0xF3
	EM_BPF       Machine = 0xF7
	EM_LOONGARCH Machine = 0x102
)

func (m Machine) String() string { return machineTable.describe(m, "Unknown") }

// ProgType is a segment type. Codes outside the named set and the reserved
// ranges are kept as is and reported as Unknown.
type ProgType uint32

const (
	PT_NULL         ProgType = 0
	PT_LOAD         ProgType = 1
	PT_DYNAMIC      ProgType = 2
	PT_INTERP       ProgType = 3
	PT_NOTE         ProgType = 4
	PT_SHLIB        ProgType = 5
	PT_PHDR         ProgType = 6
	PT_TLS          ProgType = 7
	PT_LOOS         ProgType = 0x60000000
	PT_GNU_EH_FRAME ProgType = 0x6474E550
	PT_GNU_STACK    ProgType = 0x6474E551
	PT_GNU_RELRO    ProgType = 0x6474E552
	PT_GNU_PROPERTY ProgType = 0x6474E553
	PT_HIOS         ProgType = 0x6FFFFFFF
	PT_LOPROC       ProgType = 0x70000000
	PT_HIPROC       ProgType = 0x7FFFFFFF
)

// Known reports whether t is a named type or lies in a reserved range.
func (t ProgType) Known() bool {
	_, ok := progTypeTable.lookup(t)
	return ok
}

func (t ProgType) String() string { return progTypeTable.describe(t, "Unknown") }

// ProgFlag holds segment permission bits. Only a value with exactly one of
// the named bits set is Known; combinations keep the raw value and are
// reported as UnknownFlags. Use Has to test individual bits.
type ProgFlag uint32

const (
	PF_X ProgFlag = 0x1
	PF_W ProgFlag = 0x2
	PF_R ProgFlag = 0x4
)

// Known reports whether f is exactly one named flag.
func (f ProgFlag) Known() bool {
	_, ok := progFlagTable.lookup(f)
	return ok
}

// Has reports whether every bit of mask is set in f.
func (f ProgFlag) Has(mask ProgFlag) bool { return f&mask == mask }

func (f ProgFlag) String() string { return progFlagTable.describe(f, "UnknownFlags") }

// Perm renders f as a readelf-style RWE column, inspecting raw bits.
func (f ProgFlag) Perm() string {
	b := []byte("   ")
	if f.Has(PF_R) {
		b[0] = 'R'
	}
	if f.Has(PF_W) {
		b[1] = 'W'
	}
	if f.Has(PF_X) {
		b[2] = 'E'
	}
	return string(b)
}

// SectionType is a section's content class. Unrecognized codes are kept
// and reported as Null.
type SectionType uint32

const (
	SHT_NULL          SectionType = 0x0
	SHT_PROGBITS      SectionType = 0x1
	SHT_SYMTAB        SectionType = 0x2
	SHT_STRTAB        SectionType = 0x3
	SHT_RELA          SectionType = 0x4
	SHT_HASH          SectionType = 0x5
	SHT_DYNAMIC       SectionType = 0x6
	SHT_NOTE          SectionType = 0x7
	SHT_NOBITS        SectionType = 0x8
	SHT_REL           SectionType = 0x9
	SHT_SHLIB         SectionType = 0xA
	SHT_DYNSYM        SectionType = 0xB
	SHT_INIT_ARRAY    SectionType = 0xE
	SHT_FINI_ARRAY    SectionType = 0xF
	SHT_PREINIT_ARRAY SectionType = 0x10
	SHT_GROUP         SectionType = 0x11
	SHT_SYMTAB_SHNDX  SectionType = 0x12
	SHT_NUM           SectionType = 0x13
	SHT_LOOS          SectionType = 0x60000000
)

// Known reports whether t is a named section type.
func (t SectionType) Known() bool {
	_, ok := sectionTypeTable.lookup(t)
	return ok
}

func (t SectionType) String() string { return sectionTypeTable.describe(t, "Null") }

// SectionFlag holds section attribute bits, word-sized in the image. Like
// ProgFlag, only a single named bit is Known.
type SectionFlag uint64

const (
	SHF_WRITE            SectionFlag = 0x1
	SHF_ALLOC            SectionFlag = 0x2
	SHF_EXECINSTR        SectionFlag = 0x4
	SHF_MERGE            SectionFlag = 0x10
	SHF_STRINGS          SectionFlag = 0x20
	SHF_INFO_LINK        SectionFlag = 0x40
	SHF_LINK_ORDER       SectionFlag = 0x80
	SHF_OS_NONCONFORMING SectionFlag = 0x100
	SHF_GROUP            SectionFlag = 0x200
	SHF_TLS              SectionFlag = 0x400
	SHF_COMPRESSED       SectionFlag = 0x800
	SHF_ORDERED          SectionFlag = 0x4000000
	SHF_EXCLUDE          SectionFlag = 0x8000000
)

// Known reports whether f is exactly one named flag.
func (f SectionFlag) Known() bool {
	_, ok := sectionFlagTable.lookup(f)
	return ok
}

// Has reports whether every bit of mask is set in f.
func (f SectionFlag) Has(mask SectionFlag) bool { return f&mask == mask }

func (f SectionFlag) String() string { return sectionFlagTable.describe(f, "Null") }

// Letters renders f as readelf-style flag letters from the raw bits.
func (f SectionFlag) Letters() string {
	var b strings.Builder
	for _, l := range []struct {
		bit SectionFlag
		c   byte
	}{
		{SHF_WRITE, 'W'},
		{SHF_ALLOC, 'A'},
		{SHF_EXECINSTR, 'X'},
		{SHF_MERGE, 'M'},
		{SHF_STRINGS, 'S'},
		{SHF_INFO_LINK, 'I'},
		{SHF_LINK_ORDER, 'L'},
		{SHF_OS_NONCONFORMING, 'O'},
		{SHF_GROUP, 'G'},
		{SHF_TLS, 'T'},
		{SHF_COMPRESSED, 'C'},
		{SHF_EXCLUDE, 'E'},
	} {
		if f.Has(l.bit) {
			b.WriteByte(l.c)
		}
	}
	return b.String()
}

// Header is the decoded ELF file header.
type Header struct {
	Ident        [16]byte
	Entry        uint64
	PhOff        uint64
	ShOff        uint64
	Version      uint32
	Flags        uint32
	Type         Type
	Machine      Machine
	EhSize       uint16
	PhEntSize    uint16
	PhNum        uint16
	ShEntSize    uint16
	ShNum        uint16
	ShStrNdx     uint16
	Class        Class
	Data         Data
	IdentVersion uint8
	OSABI        OSABI
	ABIVersion   uint8
}

// ByteOrder returns the order of all fields after the identity bytes.
func (h *Header) ByteOrder() binary.ByteOrder { return h.Data.ByteOrder() }

// Table bounds that CheckBounds verifies.
const (
	tablePrograms = "program header table"
	tableSections = "section header table"
)

// CheckBounds reports an error for each table whose extent,
// offset + entsize*count, does not fit in an image of size bytes.
func (h *Header) CheckBounds(size int) error {
	for _, t := range []struct {
		name  string
		off   uint64
		ent   uint16
		count uint16
	}{
		{tablePrograms, h.PhOff, h.PhEntSize, h.PhNum},
		{tableSections, h.ShOff, h.ShEntSize, h.ShNum},
	} {
		if t.count == 0 {
			continue
		}
		end := t.off + uint64(t.ent)*uint64(t.count)
		if end < t.off || end > uint64(size) {
			return fmt.Errorf("%s [%#x, %#x) exceeds image size %#x: %w",
				t.name, t.off, end, size, ErrOutOfBounds)
		}
	}
	return nil
}

// ProgHeader is a decoded program header entry. Both word classes decode
// into this type.
type ProgHeader struct {
	Off    uint64
	Vaddr  uint64
	Paddr  uint64
	Filesz uint64
	Memsz  uint64
	Align  uint64
	Type   ProgType
	Flags  ProgFlag
}

// SectionHeader is a decoded section header entry. Name is filled in by
// ResolveNames.
type SectionHeader struct {
	Name      string
	Addr      uint64
	Offset    uint64
	Size      uint64
	Addralign uint64
	Entsize   uint64
	Flags     SectionFlag
	NameOff   uint32
	Type      SectionType
	Link      uint32
	Info      uint32
}
