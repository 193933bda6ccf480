package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/hostref"
	"github.com/wippyai/hostref/table"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	handleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type inspectorState int

const (
	stateBrowse inspectorState = iota
	stateEditInfo
)

type row struct {
	ref    hostref.Ref
	handle table.Handle
	group  string
}

type inspectorModel struct {
	tbl    *table.Table
	rows   []row
	events []string
	input  textinput.Model
	errMsg string
	cursor int
	state  inspectorState
}

func runInspector(tbl *table.Table) error {
	m := newInspectorModel(tbl)
	tbl.Subscribe(m)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newInspectorModel(tbl *table.Table) *inspectorModel {
	input := textinput.New()
	input.Placeholder = "host info"
	input.CharLimit = 64

	m := &inspectorModel{
		tbl:   tbl,
		input: input,
	}
	m.refresh()
	return m
}

// OnHandleEvent implements table.Observer. Table operations only happen
// inside Update, so appending here is single-goroutine.
func (m *inspectorModel) OnHandleEvent(e table.Event) {
	verbs := map[table.EventType]string{
		table.EventInserted:       "inserted",
		table.EventRemoved:        "removed",
		table.EventBorrowed:       "borrowed",
		table.EventBorrowReturned: "returned",
	}
	m.events = append(m.events, fmt.Sprintf("%s handle %d (%s)", verbs[e.Type], e.Handle, e.Ref))
	if len(m.events) > 5 {
		m.events = m.events[len(m.events)-5:]
	}
}

// refresh rebuilds the row list and assigns identity group labels: rows
// whose refs compare identical under Same share a label.
func (m *inspectorModel) refresh() {
	rows := make([]row, 0, m.tbl.Len())
	m.tbl.Each(func(h table.Handle, ref hostref.Ref) bool {
		rows = append(rows, row{handle: h, ref: ref})
		return true
	})

	next := 'A'
	for i := range rows {
		for j := 0; j < i; j++ {
			if rows[i].ref.Same(rows[j].ref) {
				rows[i].group = rows[j].group
				break
			}
		}
		if rows[i].group == "" {
			rows[i].group = string(next)
			next++
		}
	}

	m.rows = rows
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *inspectorModel) Init() tea.Cmd {
	return nil
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateEditInfo {
		return m.updateEditInfo(keyMsg)
	}
	return m.updateBrowse(keyMsg)
}

func (m *inspectorModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "c":
		if r, ok := m.selected(); ok {
			if _, err := m.tbl.Insert(r.ref); err != nil {
				m.errMsg = err.Error()
			}
			m.refresh()
		}

	case "d":
		if r, ok := m.selected(); ok {
			if _, removed := m.tbl.Remove(r.handle); !removed {
				m.errMsg = fmt.Sprintf("handle %d cannot be removed", r.handle)
			}
			m.refresh()
		}

	case "i":
		if _, ok := m.selected(); ok {
			m.state = stateEditInfo
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		}

	case "x":
		if r, ok := m.selected(); ok {
			if err := r.ref.SetHostInfo(nil); err != nil {
				m.errMsg = err.Error()
			}
		}
	}

	return m, nil
}

func (m *inspectorModel) updateEditInfo(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if r, ok := m.selected(); ok {
			if err := r.ref.SetHostInfo(m.input.Value()); err != nil {
				m.errMsg = err.Error()
			}
		}
		m.state = stateBrowse
		m.input.Blur()
		return m, nil

	case "esc":
		m.state = stateBrowse
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *inspectorModel) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *inspectorModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("refwatch"))
	fmt.Fprintf(&b, "  %d live handles\n\n", m.tbl.Len())

	if len(m.rows) == 0 {
		b.WriteString(helpStyle.Render("  (table is empty)"))
		b.WriteString("\n")
	}

	for i, r := range m.rows {
		line := fmt.Sprintf("  %s  %s  group %s  %s",
			handleStyle.Render(fmt.Sprintf("#%-4d", r.handle)),
			kindStyle.Render(fmt.Sprintf("%-8s", r.ref.String())),
			r.group,
			infoStyle.Render(renderInfo(r.ref)),
		)
		if i == m.cursor && m.state == stateBrowse {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.state == stateEditInfo {
		b.WriteString("\n  host info: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("  " + m.errMsg))
		b.WriteString("\n")
	}

	if len(m.events) > 0 {
		b.WriteString("\n")
		for _, ev := range m.events {
			b.WriteString(helpStyle.Render("  " + ev))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("  ↑/↓ move · c clone · d drop · i set info · x clear info · q quit"))
	b.WriteString("\n")

	return b.String()
}

func renderInfo(ref hostref.Ref) string {
	info, err := ref.HostInfo()
	if err != nil {
		return "info: <" + err.Error() + ">"
	}
	if info == nil {
		return ""
	}
	return fmt.Sprintf("info: %v", info)
}
