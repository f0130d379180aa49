package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// One terminal cell covers this many screen units. Terminal cells are about
// twice as tall as they are wide, so the vertical scale doubles to keep
// diagrams roughly square on screen.
const (
	cellPxX = 10.0
	cellPxY = 20.0
)

var (
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24"))
	overlayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("130")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	selectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
)

func (m model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.help {
		return m.renderHelp()
	}
	if m.mode == ModeStartup {
		return m.renderStartup()
	}

	canvasRows := m.height - 1
	grid := make([][]rune, canvasRows)
	for i := range grid {
		grid[i] = make([]rune, m.width)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	// Boundaries under everything, then flows, then components.
	for i := range m.diagram.nodes {
		n := &m.diagram.nodes[i]
		if n.Kind == KindBoundary {
			m.drawNode(grid, n)
		}
	}
	for i := range m.diagram.flows {
		m.drawFlow(grid, &m.diagram.flows[i])
	}
	for i := range m.diagram.nodes {
		n := &m.diagram.nodes[i]
		if n.Kind == KindComponent {
			m.drawNode(grid, n)
		}
	}

	lines := make([]string, 0, m.height)
	for _, row := range grid {
		lines = append(lines, string(row))
	}

	if overlay := m.protocolOverlay(); overlay != "" && len(lines) > 0 {
		lines[0] = overlay
	}
	lines = append(lines, m.renderStatusBar())
	return strings.Join(lines, "\n")
}

// cellOf projects a flow-space point onto the terminal grid.
func (m *model) cellOf(x, y float64) (int, int) {
	sx, sy := m.viewport.ToScreen(x, y)
	return int(sx / cellPxX), int(sy / cellPxY)
}

func (m *model) drawNode(grid [][]rune, n *Node) {
	col0, row0 := m.cellOf(n.X, n.Y)
	col1, row1 := m.cellOf(n.X+n.Width, n.Y+n.Height)
	if col1 <= col0 {
		col1 = col0 + 1
	}
	if row1 <= row0 {
		row1 = row0 + 1
	}

	selected := n.ID == m.selectedNode
	h, v, corner := '─', '│', '+'
	if n.Kind == KindBoundary {
		h, v, corner = '╌', '┆', '·'
	}
	if selected || n.PendingTarget {
		h, v, corner = '═', '║', '#'
	}

	for col := col0; col <= col1; col++ {
		putRune(grid, row0, col, h)
		putRune(grid, row1, col, h)
	}
	for row := row0; row <= row1; row++ {
		putRune(grid, row, col0, v)
		putRune(grid, row, col1, v)
	}
	putRune(grid, row0, col0, corner)
	putRune(grid, row0, col1, corner)
	putRune(grid, row1, col0, corner)
	putRune(grid, row1, col1, corner)

	// Interior fill for components so flows do not run through them.
	if n.Kind == KindComponent {
		for row := row0 + 1; row < row1; row++ {
			for col := col0 + 1; col < col1; col++ {
				putRune(grid, row, col, ' ')
			}
		}
	}

	if n.Label != "" {
		maxLen := col1 - col0 - 1
		if maxLen > 0 {
			label := []rune(n.Label)
			if len(label) > maxLen {
				label = label[:maxLen]
			}
			row := (row0 + row1) / 2
			col := col0 + 1 + (col1-col0-1-len(label))/2
			for i, r := range label {
				putRune(grid, row, col+i, r)
			}
		}
	}

	if n.FocusedHandle != "" {
		hx, hy := HandlePosition(n, n.FocusedHandle)
		hcol, hrow := m.cellOf(hx, hy)
		putRune(grid, hrow, hcol, '◉')
	}
}

// drawFlow draws the connection as an elbow between its two handle cells:
// horizontal first, then vertical, with an arrowhead at the target end.
func (m *model) drawFlow(grid [][]rune, f *Flow) {
	src := m.diagram.NodeByID(f.Source)
	dst := m.diagram.NodeByID(f.Target)
	if src == nil || dst == nil {
		return
	}
	x0, y0 := HandlePosition(src, f.SourceHandle)
	x1, y1 := HandlePosition(dst, f.TargetHandle)
	col0, row0 := m.cellOf(x0, y0)
	col1, row1 := m.cellOf(x1, y1)

	selected := f.ID == m.selectedFlow
	h, v := '─', '│'
	if selected {
		h, v = '═', '║'
	}

	step := 1
	if col1 < col0 {
		step = -1
	}
	for col := col0; col != col1; col += step {
		putRune(grid, row0, col, h)
	}
	if row0 != row1 {
		putRune(grid, row0, col1, '+')
	}
	step = 1
	if row1 < row0 {
		step = -1
	}
	for row := row0; row != row1; row += step {
		putRune(grid, row, col1, v)
	}

	arrow := '▼'
	switch {
	case row1 < row0:
		arrow = '▲'
	case row1 == row0 && col1 > col0:
		arrow = '▶'
	case row1 == row0 && col1 < col0:
		arrow = '◀'
	}
	putRune(grid, row1, col1, arrow)

	if f.Label != "" {
		mx, my, ok := m.diagram.FlowMidpoint(f)
		if ok {
			col, row := m.cellOf(mx, my)
			for i, r := range []rune(f.Label) {
				putRune(grid, row, col+i, r)
			}
		}
	}
}

func putRune(grid [][]rune, row, col int, r rune) {
	if row < 0 || row >= len(grid) {
		return
	}
	if col < 0 || col >= len(grid[row]) {
		return
	}
	grid[row][col] = r
}

// protocolOverlay is the authoring prompt shown while a connection protocol
// is active.
func (m *model) protocolOverlay() string {
	var text string
	switch m.creation.phase {
	case creationSourceHandle:
		text = " new flow · pick source handle (arrows) · Enter confirm · Esc cancel "
	case creationTargetNode:
		text = " new flow · pick target node (arrows) · Enter confirm · Backspace back "
	case creationTargetHandle:
		text = " new flow · pick target handle (arrows) · Enter create · Backspace back "
	}
	switch m.reconnect.phase {
	case reconnectSourceNode:
		text = " re-point flow · pick source node (arrows) · Enter confirm · Esc cancel "
	case reconnectSourceHandle:
		text = " re-point flow · pick source handle (arrows) · Enter confirm · Backspace back "
	case reconnectTargetNode:
		text = " re-point flow · pick target node (arrows) · Enter confirm · Backspace back "
	case reconnectTargetHandle:
		text = " re-point flow · pick target handle (arrows) · Enter apply · Backspace back "
	}
	if text == "" {
		return ""
	}
	return overlayStyle.Render(padLine(text, m.width))
}

func (m *model) renderStatusBar() string {
	switch m.mode {
	case ModeEditing:
		return statusStyle.Render(padLine(fmt.Sprintf(" label: %s▏ (Enter save · Esc cancel)", m.editText), m.width))
	case ModeFileInput:
		verb := "save as"
		if m.fileOp == FileOpOpen {
			verb = "open"
		} else if m.fileOp == FileOpSavePNG {
			verb = "export PNG as"
		}
		line := fmt.Sprintf(" %s: %s▏", verb, m.filename)
		if m.fileOp == FileOpOpen && len(m.fileList) > 0 {
			line += fmt.Sprintf("  [%d/%d files, ↑/↓]", m.selectedFileIndex+1, len(m.fileList))
		}
		if m.errorMessage != "" {
			line += "  " + errorStyle.Render(m.errorMessage)
		}
		return statusStyle.Render(padLine(line, m.width))
	case ModeConfirm:
		return statusStyle.Render(padLine(" "+m.confirmPrompt()+" (y/n)", m.width))
	case ModeMove:
		return statusStyle.Render(padLine(" move: arrows to move · Enter confirm · Esc cancel", m.width))
	}

	var parts []string
	switch {
	case m.selectedNode != "":
		if n := m.diagram.NodeByID(m.selectedNode); n != nil {
			label := n.Label
			if label == "" {
				label = n.ID[:8]
			}
			parts = append(parts, selectionStyle.Render(fmt.Sprintf("%s %q", n.Kind, label)))
		}
	case m.selectedFlow != "":
		parts = append(parts, selectionStyle.Render("data flow"))
	default:
		parts = append(parts, "nothing selected")
	}
	if m.errorMessage != "" {
		parts = append(parts, errorStyle.Render(m.errorMessage))
	} else if m.successMessage != "" {
		parts = append(parts, successStyle.Render(m.successMessage))
	}
	parts = append(parts, "? help")
	return statusStyle.Render(padLine(" "+strings.Join(parts, " · "), m.width))
}

func (m *model) confirmPrompt() string {
	switch m.confirmAction {
	case ConfirmDeleteNode:
		return "delete selected element and its flows?"
	case ConfirmDeleteFlow:
		return "delete selected flow?"
	case ConfirmQuit:
		return "quit flowstate?"
	case ConfirmNewDiagram:
		return "discard current diagram?"
	case ConfirmOverwriteFile:
		return fmt.Sprintf("overwrite %s?", m.filename)
	}
	return "are you sure?"
}

// padLine pads to the terminal width in cells, not bytes; the status and
// overlay strings carry multibyte runes.
func padLine(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func (m *model) renderStartup() string {
	lines := []string{
		"",
		"  flowstate",
		"  keyboard-only threat model diagrams",
		"",
		"  'n'  new diagram",
		"  'o'  open an existing diagram",
		"  'q'  quit",
		"",
	}
	if m.errorMessage != "" {
		lines = append(lines, "  "+errorStyle.Render(m.errorMessage))
	}
	return strings.Join(lines, "\n")
}

var helpLines = []string{
	"flowstate help",
	"==============",
	"",
	"Selection:",
	"  arrows            move selection to the nearest element in that direction",
	"  (two arrows held near-simultaneously select diagonally)",
	"",
	"Canvas:",
	"  n / N             insert component / trust boundary",
	"  e                 edit label of the selected element",
	"  m                 move the selected node (arrows, Enter to finish)",
	"  x / delete        delete the selected element",
	"  c / p             copy selected node / paste from clipboard",
	"",
	"Flows:",
	"  d on a node       start a new flow: handle -> target -> handle, Enter to",
	"                    confirm each phase, Backspace to step back, Esc to cancel",
	"  d on a flow       re-point the flow's endpoints, seeded from the current",
	"                    ones; pressing Enter four times keeps everything as-is",
	"",
	"Viewport:",
	"  shift+arrows      pan",
	"  + / -             zoom",
	"",
	"Files:",
	"  s / o             save / open (YAML)",
	"  S                 export PNG",
	"  ctrl+n            discard and start a new diagram",
	"",
	"General:",
	"  u / U             undo / redo",
	"  Esc               cancel / clear selection",
	"  ?                 toggle this help",
	"  q / ctrl+c        quit",
}

func (m *model) renderHelp() string {
	visible := m.height - 1
	if visible < 1 {
		visible = 1
	}
	start := m.helpScroll
	if start > len(helpLines)-1 {
		start = len(helpLines) - 1
	}
	end := start + visible
	if end > len(helpLines) {
		end = len(helpLines)
	}
	out := strings.Join(helpLines[start:end], "\n")
	return out + "\n" + statusStyle.Render(padLine(" j/k scroll · q/Esc close", m.width))
}
