package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chdigius/awake.fm-artist-server-sub000/pkg/content"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// treeRow is one visible line of the tree.
type treeRow struct {
	path        string
	depth       int
	hasChildren bool
}

// TreeModel is the bubbletea model for interactive content tree browsing.
type TreeModel struct {
	Graph    *content.Graph
	Selected string

	rows     []treeRow
	expanded map[string]bool
	cursor   int
	offset   int
	height   int
}

// NewTreeModel creates a tree model with the root level expanded.
func NewTreeModel(g *content.Graph) TreeModel {
	m := TreeModel{
		Graph:    g,
		expanded: map[string]bool{},
		height:   15,
	}
	for _, root := range m.roots() {
		m.expanded[root] = true
	}
	m.rebuild()
	return m
}

// roots returns the paths with no declared parent, the graph root first.
func (m TreeModel) roots() []string {
	var out []string
	for _, path := range m.Graph.Paths() {
		if node := m.Graph.Node(path); node.Meta.ParentPath == "" {
			if path == m.Graph.RootPath() {
				out = append([]string{path}, out...)
				continue
			}
			out = append(out, path)
		}
	}
	return out
}

// rebuild recomputes the visible rows from the expand state.
func (m *TreeModel) rebuild() {
	m.rows = m.rows[:0]
	for _, root := range m.roots() {
		m.appendRows(root, 0)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
}

func (m *TreeModel) appendRows(path string, depth int) {
	children := m.Graph.Children(path)
	m.rows = append(m.rows, treeRow{path: path, depth: depth, hasChildren: len(children) > 0})
	if !m.expanded[path] {
		return
	}
	for _, child := range children {
		m.appendRows(child, depth+1)
	}
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case " ", "tab":
			if len(m.rows) == 0 {
				return m, nil
			}
			row := m.rows[m.cursor]
			if row.hasChildren {
				m.expanded[row.path] = !m.expanded[row.path]
				m.rebuild()
			}
		case "enter":
			if len(m.rows) == 0 {
				return m, nil
			}
			m.Selected = m.rows[m.cursor].path
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m TreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Content Tree"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space expand  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		node := m.Graph.Node(row.path)

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		marker := "  "
		if row.hasChildren {
			marker = "▸ "
			if m.expanded[row.path] {
				marker = "▾ "
			}
		}

		meta := node.Meta.Layout
		if meta == "" {
			meta = m.Graph.ResolveTheme(row.path)
		}

		line := cursor + strings.Repeat("  ", row.depth) + marker + row.path
		if meta != "" {
			line += "  " + listDimStyle.Render(meta)
		}

		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.rows))))

	return b.String()
}
