package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/elfkit/dump"
	"github.com/wippyai/elfkit/elf"
)

// detailLimit caps the section bytes shown in the detail pane.
const detailLimit = 256

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#666666"))

	activeTabStyle = tabStyle.
			Foreground(lipgloss.Color("#FAFAFA")).
			Underline(true)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browsePane int

const (
	paneSections browsePane = iota
	panePrograms
)

type browseModel struct {
	err      error
	file     *elf.File
	filename string
	sections []elf.SectionHeader
	progs    []elf.ProgHeader
	detail   viewport.Model
	pane     browsePane
	selected int
	loaded   bool
}

type tablesMsg struct {
	err      error
	sections []elf.SectionHeader
	progs    []elf.ProgHeader
}

func newBrowseModel(filename string, f *elf.File) *browseModel {
	return &browseModel{
		file:     f,
		filename: filename,
		detail:   viewport.New(72, 20),
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.loadTables
}

func (m *browseModel) loadTables() tea.Msg {
	sections, serr := m.file.Sections()
	progs, perr := m.file.Programs()
	err := serr
	if err == nil {
		err = perr
	}
	return tablesMsg{sections: sections, progs: progs, err: err}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "tab":
			if m.pane == paneSections {
				m.pane = panePrograms
			} else {
				m.pane = paneSections
			}
			m.selected = 0
			m.refresh()

		case "up", "k":
			if m.selected > 0 {
				m.selected--
				m.refresh()
			}

		case "down", "j":
			if m.selected < m.rows()-1 {
				m.selected++
				m.refresh()
			}

		default:
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.detail.Width = max(msg.Width/2, 20)
		m.detail.Height = max(msg.Height-6, 5)

	case tablesMsg:
		m.sections = msg.sections
		m.progs = msg.progs
		m.err = msg.err
		m.loaded = true
		m.refresh()
	}

	return m, nil
}

func (m *browseModel) rows() int {
	if m.pane == panePrograms {
		return len(m.progs)
	}
	return len(m.sections)
}

// refresh rebuilds the detail pane for the selected row.
func (m *browseModel) refresh() {
	var content string
	switch {
	case m.rows() == 0:
		content = "(empty table)"
	case m.pane == panePrograms:
		content = programDetail(m.progs[m.selected])
	default:
		content = m.sectionDetail(m.sections[m.selected])
	}
	m.detail.SetContent(content)
	m.detail.GotoTop()
}

func programDetail(p elf.ProgHeader) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Type      %s\n", p.Type)
	fmt.Fprintf(&b, "Flags     %s (%s)\n", p.Flags, strings.TrimSpace(p.Flags.Perm()))
	fmt.Fprintf(&b, "Offset    %#x\n", p.Off)
	fmt.Fprintf(&b, "VirtAddr  %#x\n", p.Vaddr)
	fmt.Fprintf(&b, "PhysAddr  %#x\n", p.Paddr)
	fmt.Fprintf(&b, "FileSiz   %#x\n", p.Filesz)
	fmt.Fprintf(&b, "MemSiz    %#x\n", p.Memsz)
	fmt.Fprintf(&b, "Align     %#x\n", p.Align)
	return b.String()
}

func (m *browseModel) sectionDetail(s elf.SectionHeader) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name      %s\n", s.Name)
	fmt.Fprintf(&b, "Type      %s\n", s.Type)
	fmt.Fprintf(&b, "Flags     %s [%s]\n", s.Flags, s.Flags.Letters())
	fmt.Fprintf(&b, "Address   %#x\n", s.Addr)
	fmt.Fprintf(&b, "Offset    %#x\n", s.Offset)
	fmt.Fprintf(&b, "Size      %#x\n", s.Size)
	fmt.Fprintf(&b, "Link      %d\n", s.Link)
	fmt.Fprintf(&b, "Info      %d\n", s.Info)
	fmt.Fprintf(&b, "Align     %d\n", s.Addralign)
	fmt.Fprintf(&b, "EntSize   %#x\n", s.Entsize)

	if s.Type == elf.SHT_NOBITS || s.Size == 0 {
		return b.String()
	}
	head := s
	if head.Size > detailLimit {
		head.Size = detailLimit
	}
	data, err := m.file.SectionData(&head)
	if err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(err.Error()))
		return b.String()
	}
	b.WriteString("\n")
	_ = dump.Hex(&b, dump.Entry{
		Name:      s.Name,
		Addr:      s.Addr,
		Offset:    s.Offset,
		Size:      s.Size,
		Data:      data,
		Truncated: s.Size > detailLimit,
	})
	return b.String()
}

func (m *browseModel) View() string {
	if !m.loaded {
		return "Decoding " + m.filename + "..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("ELF Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(" ")
	b.WriteString(typeStyle.Render(fmt.Sprintf("%s %s %s", m.file.Class, m.file.Machine, m.file.Type)))
	b.WriteString("\n")

	secTab, progTab := activeTabStyle, tabStyle
	if m.pane == panePrograms {
		secTab, progTab = tabStyle, activeTabStyle
	}
	b.WriteString(secTab.Render(fmt.Sprintf("Sections (%d)", len(m.sections))))
	b.WriteString(progTab.Render(fmt.Sprintf("Segments (%d)", len(m.progs))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.listView(), "  ", detailStyle.Render(m.detail.View())))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Warning: %v", m.err)))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ select • tab sections/segments • pgup/pgdn scroll • q quit"))
	return b.String()
}

func (m *browseModel) listView() string {
	var lines []string
	for i, n := 0, m.rows(); i < n; i++ {
		var line string
		if m.pane == panePrograms {
			p := m.progs[i]
			line = fmt.Sprintf("%2d %-14s %s", i, p.Type, p.Flags.Perm())
		} else {
			s := m.sections[i]
			name := s.Name
			if name == "" {
				name = "<none>"
			}
			line = fmt.Sprintf("%2d %-20s %s", i, name, s.Type)
		}
		if i == m.selected {
			lines = append(lines, selectedStyle.Render("> "+line))
		} else {
			lines = append(lines, "  "+nameStyle.Render(line))
		}
	}
	if len(lines) == 0 {
		return "(none)"
	}
	return strings.Join(lines, "\n")
}

func runBrowser(filename string, f *elf.File) error {
	p := tea.NewProgram(newBrowseModel(filename, f), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
