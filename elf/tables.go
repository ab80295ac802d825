package elf

import "fmt"

// codeRange maps a code, or an inclusive range of reserved codes, to a name.
type codeRange[T ~uint8 | ~uint16 | ~uint32 | ~uint64] struct {
	name     string
	lo, hi   T
	reserved bool
}

// codeTable is an ordered list of code ranges. The first matching entry
// wins, so specific codes inside a reserved range must precede it.
type codeTable[T ~uint8 | ~uint16 | ~uint32 | ~uint64] []codeRange[T]

func (t codeTable[T]) lookup(v T) (codeRange[T], bool) {
	for _, c := range t {
		if v >= c.lo && v <= c.hi {
			return c, true
		}
	}
	return codeRange[T]{}, false
}

// describe renders v for diagnostics. Codes inside a reserved range carry
// their value; unrecognized codes are rendered by unknown.
func (t codeTable[T]) describe(v T, unknown string) string {
	c, ok := t.lookup(v)
	if !ok {
		return fmt.Sprintf("%s(%#x)", unknown, uint64(v))
	}
	if c.reserved {
		return fmt.Sprintf("%s(%#x)", c.name, uint64(v))
	}
	return c.name
}

func one[T ~uint8 | ~uint16 | ~uint32 | ~uint64](v T, name string) codeRange[T] {
	return codeRange[T]{lo: v, hi: v, name: name}
}

func span[T ~uint8 | ~uint16 | ~uint32 | ~uint64](lo, hi T, name string) codeRange[T] {
	return codeRange[T]{lo: lo, hi: hi, name: name, reserved: true}
}

var classTable = codeTable[Class]{
	one(ELFCLASS32, "ELF32"),
	one(ELFCLASS64, "ELF64"),
}

var dataTable = codeTable[Data]{
	one(ELFDATA2LSB, "little-endian"),
	one(ELFDATA2MSB, "big-endian"),
}

var osabiTable = codeTable[OSABI]{
	one(ELFOSABI_NONE, "UNIX - System V"),
	one(ELFOSABI_HPUX, "HP-UX"),
	one(ELFOSABI_NETBSD, "NetBSD"),
	one(ELFOSABI_LINUX, "Linux"),
	one(ELFOSABI_HURD, "GNU Hurd"),
	one(ELFOSABI_SOLARIS, "Solaris"),
	one(ELFOSABI_AIX, "AIX (Monterey)"),
	one(ELFOSABI_IRIX, "IRIX"),
	one(ELFOSABI_FREEBSD, "FreeBSD"),
	one(ELFOSABI_TRU64, "Tru64"),
	one(ELFOSABI_MODESTO, "Novell Modesto"),
	one(ELFOSABI_OPENBSD, "OpenBSD"),
	one(ELFOSABI_OPENVMS, "OpenVMS"),
	one(ELFOSABI_NSK, "NonStop Kernel"),
	one(ELFOSABI_AROS, "AROS"),
	one(ELFOSABI_FENIXOS, "FenixOS"),
	one(ELFOSABI_CLOUDABI, "Nuxi CloudABI"),
	one(ELFOSABI_OPENVOS, "Stratus Technologies OpenVOS"),
}

var typeTable = codeTable[Type]{
	one(ET_NONE, "NONE (Unknown)"),
	one(ET_REL, "REL (Relocatable file)"),
	one(ET_EXEC, "EXEC (Executable file)"),
	one(ET_DYN, "DYN (Shared object file)"),
	one(ET_CORE, "CORE (Core file)"),
	span(ET_LOOS, ET_HIOS, "OS-specific"),
	span(ET_LOPROC, ET_HIPROC, "Processor-specific"),
}

var machineTable = codeTable[Machine]{
	one(EM_NONE, "No specific instruction set"),
	one[Machine](0x01, "AT&T WE 32100"),
	one(EM_SPARC, "SPARC"),
	one(EM_386, "Intel 80386"),
	one(EM_68K, "Motorola 68000"),
	one[Machine](0x05, "Motorola 88000"),
	one[Machine](0x06, "Intel MCU"),
	one[Machine](0x07, "Intel 80860"),
	one(EM_MIPS, "MIPS"),
	one[Machine](0x09, "IBM System/370"),
	one[Machine](0x0A, "MIPS RS3000 Little-endian"),
	span[Machine](0x0B, 0x0E, "Reserved"),
	one[Machine](0x0F, "Hewlett-Packard PA-RISC"),
	one[Machine](0x13, "Intel 80960"),
	one(EM_PPC, "PowerPC"),
	one(EM_PPC64, "PowerPC64"),
	one(EM_S390, "IBM S/390"),
	one[Machine](0x17, "IBM SPU/SPC"),
	span[Machine](0x18, 0x23, "Reserved"),
	one[Machine](0x24, "NEC V800"),
	one[Machine](0x25, "Fujitsu FR20"),
	one[Machine](0x26, "TRW RH-32"),
	one[Machine](0x27, "Motorola RCE"),
	one(EM_ARM, "ARM"),
	one[Machine](0x29, "Digital Alpha"),
	one(EM_SH, "Renesas / SuperH SH"),
	one(EM_SPARCV9, "SPARC Version 9"),
	one[Machine](0x2C, "Siemens TriCore"),
	one[Machine](0x2D, "Argonaut RISC Core"),
	one[Machine](0x2E, "Hitachi H8/300"),
	one[Machine](0x2F, "Hitachi H8/300H"),
	one[Machine](0x30, "Hitachi H8S"),
	one[Machine](0x31, "Hitachi H8/500"),
	one(EM_IA_64, "Intel IA-64"),
	one[Machine](0x33, "Stanford MIPS-X"),
	one[Machine](0x34, "Motorola ColdFire"),
	one[Machine](0x35, "Motorola M68HC12"),
	one[Machine](0x36, "Fujitsu MMA Multimedia Accelerator"),
	one[Machine](0x37, "Siemens PCP"),
	one[Machine](0x38, "Sony nCPU embedded RISC"),
	one[Machine](0x39, "Denso NDR1"),
	one[Machine](0x3A, "Motorola Star*Core"),
	one[Machine](0x3B, "Toyota ME16"),
	one[Machine](0x3C, "STMicroelectronics ST100"),
	one[Machine](0x3D, "Advanced Logic Corp. TinyJ"),
	one(EM_X86_64, "Advanced Micro Devices X86-64"),
	one[Machine](0x3F, "Sony DSP Processor"),
	one[Machine](0x40, "Digital Equipment Corp. PDP-10"),
	one[Machine](0x41, "Digital Equipment Corp. PDP-11"),
	one[Machine](0x42, "Siemens FX66"),
	one[Machine](0x43, "STMicroelectronics ST9+"),
	one[Machine](0x44, "STMicroelectronics ST7"),
	one[Machine](0x45, "Motorola MC68HC16"),
	one[Machine](0x46, "Motorola MC68HC11"),
	one[Machine](0x47, "Motorola MC68HC08"),
	one[Machine](0x48, "Motorola MC68HC05"),
	one[Machine](0x49, "Silicon Graphics SVx"),
	one[Machine](0x4A, "STMicroelectronics ST19"),
	one[Machine](0x4B, "Digital VAX"),
	one[Machine](0x4C, "Axis Communications 32-bit embedded processor"),
	one[Machine](0x4D, "Infineon Technologies 32-bit embedded processor"),
	one[Machine](0x4E, "Element 14 64-bit DSP Processor"),
	one[Machine](0x4F, "LSI Logic 16-bit DSP Processor"),
	one[Machine](0x8C, "TMS320C6000 Family"),
	one[Machine](0xAF, "MCST Elbrus e2k"),
	one(EM_AARCH64, "AArch64"),
	one[Machine](0xDC, "Zilog Z80"),
	one(EM_RISCV, "RISC-V"),
	one(EM_BPF, "Linux BPF"),
	one[Machine](0x101, "WDC 65C816"),
	one(EM_LOONGARCH, "LoongArch"),
}

var progTypeTable = codeTable[ProgType]{
	one(PT_NULL, "NULL"),
	one(PT_LOAD, "LOAD"),
	one(PT_DYNAMIC, "DYNAMIC"),
	one(PT_INTERP, "INTERP"),
	one(PT_NOTE, "NOTE"),
	one(PT_SHLIB, "SHLIB"),
	one(PT_PHDR, "PHDR"),
	one(PT_TLS, "TLS"),
	one(PT_GNU_EH_FRAME, "GNU_EH_FRAME"),
	one(PT_GNU_STACK, "GNU_STACK"),
	one(PT_GNU_RELRO, "GNU_RELRO"),
	one(PT_GNU_PROPERTY, "GNU_PROPERTY"),
	span(PT_LOOS, PT_HIOS, "LOOS"),
	span(PT_LOPROC, PT_HIPROC, "LOPROC"),
}

var progFlagTable = codeTable[ProgFlag]{
	one(PF_X, "X"),
	one(PF_W, "W"),
	one(PF_R, "R"),
}

var sectionTypeTable = codeTable[SectionType]{
	one(SHT_NULL, "NULL"),
	one(SHT_PROGBITS, "PROGBITS"),
	one(SHT_SYMTAB, "SYMTAB"),
	one(SHT_STRTAB, "STRTAB"),
	one(SHT_RELA, "RELA"),
	one(SHT_HASH, "HASH"),
	one(SHT_DYNAMIC, "DYNAMIC"),
	one(SHT_NOTE, "NOTE"),
	one(SHT_NOBITS, "NOBITS"),
	one(SHT_REL, "REL"),
	one(SHT_SHLIB, "SHLIB"),
	one(SHT_DYNSYM, "DYNSYM"),
	one(SHT_INIT_ARRAY, "INIT_ARRAY"),
	one(SHT_FINI_ARRAY, "FINI_ARRAY"),
	one(SHT_PREINIT_ARRAY, "PREINIT_ARRAY"),
	one(SHT_GROUP, "GROUP"),
	one(SHT_SYMTAB_SHNDX, "SYMTAB_SHNDX"),
	one(SHT_NUM, "NUM"),
	one(SHT_LOOS, "LOOS"),
}

var sectionFlagTable = codeTable[SectionFlag]{
	one(SHF_WRITE, "WRITE"),
	one(SHF_ALLOC, "ALLOC"),
	one(SHF_EXECINSTR, "EXECINSTR"),
	one(SHF_MERGE, "MERGE"),
	one(SHF_STRINGS, "STRINGS"),
	one(SHF_INFO_LINK, "INFO_LINK"),
	one(SHF_LINK_ORDER, "LINK_ORDER"),
	one(SHF_OS_NONCONFORMING, "OS_NONCONFORMING"),
	one(SHF_GROUP, "GROUP"),
	one(SHF_TLS, "TLS"),
	one(SHF_COMPRESSED, "COMPRESSED"),
	one(SHF_ORDERED, "ORDERED"),
	one(SHF_EXCLUDE, "EXCLUDE"),
}
