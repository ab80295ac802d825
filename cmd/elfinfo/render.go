package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/wippyai/elfkit/elf"
)

func hex(v uint64) string {
	return fmt.Sprintf("%#x", v)
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func printHeader(w io.Writer, h *elf.Header) {
	table := newTable(w, "Field", "Value")
	table.AppendBulk([][]string{
		{"Magic", fmt.Sprintf("% x", h.Ident[:])},
		{"Class", h.Class.String()},
		{"Data", h.Data.String()},
		{"Ident version", strconv.Itoa(int(h.IdentVersion))},
		{"OS/ABI", h.OSABI.String()},
		{"ABI version", strconv.Itoa(int(h.ABIVersion))},
		{"Type", h.Type.String()},
		{"Machine", h.Machine.String()},
		{"Version", hex(uint64(h.Version))},
		{"Entry point", hex(h.Entry)},
		{"Program headers offset", hex(h.PhOff)},
		{"Section headers offset", hex(h.ShOff)},
		{"Flags", hex(uint64(h.Flags))},
		{"Header size", strconv.Itoa(int(h.EhSize))},
		{"Program header size", strconv.Itoa(int(h.PhEntSize))},
		{"Program header count", strconv.Itoa(int(h.PhNum))},
		{"Section header size", strconv.Itoa(int(h.ShEntSize))},
		{"Section header count", strconv.Itoa(int(h.ShNum))},
		{"Section name table index", strconv.Itoa(int(h.ShStrNdx))},
	})
	table.Render()
}

func printPrograms(w io.Writer, progs []elf.ProgHeader) {
	table := newTable(w, "#", "Type", "Offset", "VirtAddr", "PhysAddr", "FileSiz", "MemSiz", "Flags", "Perm", "Align")
	for i, p := range progs {
		table.Append([]string{
			strconv.Itoa(i),
			p.Type.String(),
			hex(p.Off),
			hex(p.Vaddr),
			hex(p.Paddr),
			hex(p.Filesz),
			hex(p.Memsz),
			p.Flags.String(),
			p.Flags.Perm(),
			hex(p.Align),
		})
	}
	table.Render()
}

func printSections(w io.Writer, sections []elf.SectionHeader) {
	table := newTable(w, "#", "Name", "Type", "Address", "Offset", "Size", "", "EntSize", "Flags", "Link", "Info", "Align")
	for i, s := range sections {
		table.Append([]string{
			strconv.Itoa(i),
			s.Name,
			s.Type.String(),
			hex(s.Addr),
			hex(s.Offset),
			hex(s.Size),
			humanize.IBytes(s.Size),
			hex(s.Entsize),
			s.Flags.Letters(),
			strconv.FormatUint(uint64(s.Link), 10),
			strconv.FormatUint(uint64(s.Info), 10),
			strconv.FormatUint(s.Addralign, 10),
		})
	}
	table.Render()
}
