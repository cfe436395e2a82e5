package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ctypes/internal/catalog"
	"ctypes/internal/layout"
	"ctypes/internal/printer"
)

// InspectEntry is one browsable catalog row: its layout (if computable) and
// its pre-rendered declarator/dump text, computed once up front so the TUI
// itself never touches the layout engine or printer while running.
type InspectEntry struct {
	Sample  catalog.Sample
	Declared string
	Dump     string
	Layout   layout.Layout
	Err      string
}

// BuildInspectEntries renders every sample in samples through p and eng,
// the data NewInspectModel's View renders from.
func BuildInspectEntries(samples []catalog.Sample, p *printer.Printer, eng *layout.Engine) []InspectEntry {
	entries := make([]InspectEntry, len(samples))
	for i, s := range samples {
		e := InspectEntry{Sample: s, Declared: p.Print(s.Type), Dump: p.Dump(s.Type)}
		l, err := eng.LayoutOf(s.Type)
		if err != nil {
			e.Err = err.Error()
		} else {
			e.Layout = l
		}
		entries[i] = e
	}
	return entries
}

type inspectModel struct {
	title   string
	entries []InspectEntry
	cursor  int
	width   int
	height  int
}

// NewInspectModel returns a Bubble Tea model that browses entries with
// up/down/j/k, quitting on "q"/ctrl-c/esc.
func NewInspectModel(title string, entries []InspectEntry) tea.Model {
	return &inspectModel{title: title, entries: entries, width: 100, height: 30}
}

func (m *inspectModel) Init() tea.Cmd { return nil }

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *inspectModel) View() string {
	if len(m.entries) == 0 {
		return "no catalog samples\n"
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	plainStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	listWidth := 28
	if m.width > 0 && m.width/3 < listWidth {
		listWidth = m.width / 3
	}

	var list strings.Builder
	for i, e := range m.entries {
		style := plainStyle
		cursor := "  "
		if i == m.cursor {
			style, cursor = selectedStyle, "> "
		}
		name := e.Sample.Name
		if len(name) > listWidth-3 {
			name = name[:listWidth-3]
		}
		list.WriteString(style.Render(cursor+name) + "\n")
	}

	cur := m.entries[m.cursor]
	var detail strings.Builder
	fmt.Fprintf(&detail, "%s\n\n", titleStyle.Render(cur.Sample.Name))
	fmt.Fprintf(&detail, "declarator: %s\n\n", cur.Declared)
	if cur.Err != "" {
		fmt.Fprintf(&detail, "layout: error: %s\n\n", cur.Err)
	} else if cur.Layout.Ok {
		fmt.Fprintf(&detail, "size=%d align=%d bits=%d\n\n", cur.Layout.SizeBytes, cur.Layout.Align, cur.Layout.SizeBits)
	} else {
		fmt.Fprintf(&detail, "layout: unknown (incomplete/unsized)\n\n")
	}
	detail.WriteString(cur.Dump)

	listBox := lipgloss.NewStyle().Width(listWidth).Render(list.String())
	detailBox := lipgloss.NewStyle().Render(detail.String())
	body := lipgloss.JoinHorizontal(lipgloss.Top, listBox, "  ", detailBox)

	return titleStyle.Render(m.title) + "\n\n" + body + "\n\n" + plainStyle.Render("up/down to browse, q to quit") + "\n"
}
