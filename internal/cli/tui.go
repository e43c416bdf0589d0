package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/flowpad/flowpad/pkg/diagram"
	"github.com/flowpad/flowpad/pkg/export"
	"github.com/flowpad/flowpad/pkg/layout"
	"github.com/flowpad/flowpad/pkg/render"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// pane identifies which list has focus in the editor.
type pane int

const (
	paneNodes pane = iota
	paneEdges
)

// promptAction names the pending text-entry operation.
type promptAction int

const (
	promptNone promptAction = iota
	promptAddNode
	promptRename
	promptConnect
	promptEdgeLabel
)

// EditorModel is the bubbletea model for the interactive diagram editor.
//
// It operates directly on a diagram session state: adding, deleting,
// renaming, duplicating, and connecting nodes, labeling edges, toggling
// direction and theme, re-running auto-layout, and saving back to disk.
type EditorModel struct {
	State  *diagram.State
	Engine *layout.Layered
	Path   string // save target; empty disables saving

	pane    pane
	cursor  int
	offset  int
	height  int
	mode    promptAction
	input   string
	status  string
	isError bool
	dirty   bool
}

// NewEditorModel creates an editor over the given session state.
func NewEditorModel(st *diagram.State, eng *layout.Layered, path string) EditorModel {
	return EditorModel{
		State:  st,
		Engine: eng,
		Path:   path,
		height: 12,
	}
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != promptNone {
			return m.updatePrompt(msg)
		}
		return m.updateNormal(msg)
	case tea.WindowSizeMsg:
		m.height = msg.Height - 10
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m EditorModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "tab":
		if m.pane == paneNodes {
			m.pane = paneEdges
		} else {
			m.pane = paneNodes
		}
		m.cursor, m.offset = 0, 0

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}

	case "down", "j":
		if m.cursor < m.listLen()-1 {
			m.cursor++
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}

	case "a":
		m.mode = promptAddNode
		m.input = ""

	case "r":
		if n, ok := m.selectedNode(); ok {
			m.mode = promptRename
			m.input = n.Label
		}

	case "c":
		if _, ok := m.selectedNode(); ok {
			m.mode = promptConnect
			m.input = ""
		}

	case "e":
		if e, ok := m.selectedEdge(); ok {
			m.mode = promptEdgeLabel
			m.input = e.Label
		}

	case "d":
		m = m.deleteSelected()

	case "y":
		if n, ok := m.selectedNode(); ok {
			dup, err := m.State.Duplicate(n.ID, true)
			if err != nil {
				m = m.fail(err.Error())
				break
			}
			m = m.ok(fmt.Sprintf("Duplicated %s as %s", n.ID, dup.ID))
		}

	case "o":
		dir := diagram.LeftToRight
		if m.State.Direction == diagram.LeftToRight {
			dir = diagram.TopToBottom
		}
		if err := m.State.SetDirection(dir); err != nil {
			m = m.fail(err.Error())
			break
		}
		m = m.ok(fmt.Sprintf("Direction %s", dir))

	case "t":
		m.State.SetTheme(nextTheme(m.State.Theme))
		m = m.ok(fmt.Sprintf("Theme %s", m.State.Theme))

	case "l":
		if err := layout.AutoLayout(m.State, m.Engine); err != nil {
			m = m.fail(err.Error())
			break
		}
		m = m.ok(fmt.Sprintf("Arranged %d nodes", len(m.State.Nodes)))

	case "s":
		m = m.save()
	}
	return m, nil
}

func (m EditorModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.mode = promptNone
		m.input = ""
	case "enter":
		m = m.applyPrompt()
	case "backspace":
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.input += string(msg.Runes)
		case tea.KeySpace:
			m.input += " "
		}
	}
	return m, nil
}

func (m EditorModel) applyPrompt() EditorModel {
	action, text := m.mode, strings.TrimSpace(m.input)
	m.mode = promptNone
	m.input = ""

	switch action {
	case promptAddNode:
		if text == "" {
			return m.fail("Label cannot be empty")
		}
		n := m.State.AddNode(text, diagram.Position{})
		return m.ok(fmt.Sprintf("Added %s", n.ID))

	case promptRename:
		n, ok := m.selectedNode()
		if !ok {
			return m
		}
		if err := m.State.RenameNode(n.ID, text); err != nil {
			return m.fail(err.Error())
		}
		return m.ok(fmt.Sprintf("Renamed %s", n.ID))

	case promptConnect:
		src, ok := m.selectedNode()
		if !ok {
			return m
		}
		dst, ok := m.findNode(text)
		if !ok {
			return m.fail(fmt.Sprintf("No node %q", text))
		}
		e, err := m.State.Connect(src.ID, dst.ID)
		if err != nil {
			return m.fail(err.Error())
		}
		return m.ok(fmt.Sprintf("Connected %s → %s (%s)", src.ID, dst.ID, e.ID))

	case promptEdgeLabel:
		e, ok := m.selectedEdge()
		if !ok {
			return m
		}
		if err := m.State.SetEdgeLabel(e.ID, text); err != nil {
			return m.fail(err.Error())
		}
		return m.ok(fmt.Sprintf("Labeled %s", e.ID))
	}
	return m
}

func (m EditorModel) deleteSelected() EditorModel {
	if m.pane == paneNodes {
		n, ok := m.selectedNode()
		if !ok {
			return m
		}
		m.State.DeleteNodes(n.ID)
		m = m.ok(fmt.Sprintf("Deleted %s", n.ID))
	} else {
		e, ok := m.selectedEdge()
		if !ok {
			return m
		}
		m.State.DeleteEdges(e.ID)
		m = m.ok(fmt.Sprintf("Deleted %s", e.ID))
	}
	if m.cursor >= m.listLen() && m.cursor > 0 {
		m.cursor--
	}
	return m
}

func (m EditorModel) save() EditorModel {
	if m.Path == "" {
		return m.fail("No file to save to (start with a path)")
	}
	data, err := export.Marshal(m.State)
	if err != nil {
		return m.fail(err.Error())
	}
	if err := os.WriteFile(m.Path, data, 0644); err != nil {
		return m.fail(err.Error())
	}
	m.dirty = false
	m.status = fmt.Sprintf("Saved %s", m.Path)
	m.isError = false
	return m
}

func (m EditorModel) ok(msg string) EditorModel {
	m.status = msg
	m.isError = false
	m.dirty = true
	return m
}

func (m EditorModel) fail(msg string) EditorModel {
	m.status = msg
	m.isError = true
	return m
}

func (m EditorModel) listLen() int {
	if m.pane == paneNodes {
		return len(m.State.Nodes)
	}
	return len(m.State.Edges)
}

func (m EditorModel) selectedNode() (diagram.Node, bool) {
	if m.pane != paneNodes || m.cursor >= len(m.State.Nodes) {
		return diagram.Node{}, false
	}
	return m.State.Nodes[m.cursor], true
}

func (m EditorModel) selectedEdge() (diagram.Edge, bool) {
	if m.pane != paneEdges || m.cursor >= len(m.State.Edges) {
		return diagram.Edge{}, false
	}
	return m.State.Edges[m.cursor], true
}

// findNode resolves a user-entered reference: an exact node ID first, then
// a case-insensitive label match.
func (m EditorModel) findNode(ref string) (diagram.Node, bool) {
	for _, n := range m.State.Nodes {
		if n.ID == ref {
			return n, true
		}
	}
	for _, n := range m.State.Nodes {
		if strings.EqualFold(n.Label, ref) {
			return n, true
		}
	}
	return diagram.Node{}, false
}

func nextTheme(current string) string {
	names := render.ThemeNames()
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	if len(names) > 0 {
		return names[0]
	}
	return current
}

func (m EditorModel) View() string {
	var b strings.Builder

	title := "Flowpad Editor"
	if m.Path != "" {
		title += "  " + m.Path
	}
	if m.dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("direction %s  theme %s  %d nodes  %d edges",
		m.State.Direction, m.State.Theme, len(m.State.Nodes), len(m.State.Edges))))
	b.WriteString("\n\n")

	if m.pane == paneNodes {
		b.WriteString(m.nodesTable())
	} else {
		b.WriteString(m.edgesTable())
	}
	b.WriteString("\n")

	if m.mode != promptNone {
		b.WriteString(StyleHighlight.Render(promptLabel(m.mode)+": ") + m.input + "█")
	} else if m.status != "" {
		if m.isError {
			b.WriteString(StyleError.Render(m.status))
		} else {
			b.WriteString(StyleSuccess.Render(m.status))
		}
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("a add  d delete  r rename  c connect  y dup  e edge label  l layout  o direction  t theme  s save  tab pane  q quit"))

	return b.String()
}

func promptLabel(a promptAction) string {
	switch a {
	case promptAddNode:
		return "New node label"
	case promptRename:
		return "Rename to"
	case promptConnect:
		return "Connect to (id or label)"
	case promptEdgeLabel:
		return "Edge label"
	}
	return ""
}

func (m EditorModel) nodesTable() string {
	end := m.offset + m.height
	if end > len(m.State.Nodes) {
		end = len(m.State.Nodes)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		n := m.State.Nodes[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor, n.ID, n.Label,
			fmt.Sprintf("%.0f", n.Position.X), fmt.Sprintf("%.0f", n.Position.Y),
		})
	}

	return m.renderTable([]string{"", "ID", "Label", "X", "Y"}, rows)
}

func (m EditorModel) edgesTable() string {
	end := m.offset + m.height
	if end > len(m.State.Edges) {
		end = len(m.State.Edges)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		e := m.State.Edges[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, e.ID, e.Source, e.Target, e.Label})
	}

	return m.renderTable([]string{"", "ID", "Source", "Target", "Label"}, rows)
}

func (m EditorModel) renderTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.offset+row == m.cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	return t.Render()
}

// newTUICmd creates the edit command: the interactive terminal editor.
func newTUICmd() *cobra.Command {
	var (
		direction string
		theme     string
	)

	cmd := &cobra.Command{
		Use:   "edit [diagram.json]",
		Short: "Edit a diagram interactively in the terminal",
		Long: `Edit opens a terminal session on a diagram file (or a new empty
diagram). Nodes and edges can be added, renamed, connected, duplicated,
and deleted; auto-layout, direction, and theme apply live.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())

			dir, err := parseDirection(direction)
			if err != nil {
				return err
			}
			if theme == "" {
				theme = cfg.Theme
			}

			var st *diagram.State
			path := ""
			if len(args) == 1 {
				path = args[0]
				if _, statErr := os.Stat(path); statErr == nil {
					st, err = readDiagram(path, dir, theme)
					if err != nil {
						return err
					}
				}
			}
			if st == nil {
				st = diagram.NewState(dir, theme)
			}

			model := NewEditorModel(st, engineFromConfig(cfg), path)
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&direction, "direction", "d", "TB", "layout direction: TB or LR")
	cmd.Flags().StringVarP(&theme, "theme", "t", "", "theme name (light, dark, mono)")
	return cmd
}
