package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// navTickMsg drives the two-tick arrow debounce. The generation counter
// lets a newer key press supersede a pending evaluation.
type navTickMsg struct {
	gen int
}

// panAnimMsg drives animated viewport pans.
type panAnimMsg struct {
	gen int
}

// handleArrowKey accumulates an arrow press into the held-chord set and
// (re)schedules the debounce. Terminals deliver no key-release events, so
// the chord set drains when the debounce fires; two near-simultaneous
// presses within the two-tick window still merge into one diagonal
// evaluation, which is the behavior that matters.
func (m *model) handleArrowKey(dir Direction) tea.Cmd {
	if time.Now().Before(m.selectionHoldUntil) {
		return nil
	}
	m.heldArrows[dir] = true
	m.navGen++
	m.navTicks = 0
	gen := m.navGen
	return tea.Tick(navTickInterval, func(time.Time) tea.Msg { return navTickMsg{gen: gen} })
}

// handleNavTick advances the debounce. The evaluation only runs on the
// second tick of the latest generation; stale ticks are dropped.
func (m *model) handleNavTick(msg navTickMsg) tea.Cmd {
	if msg.gen != m.navGen {
		return nil
	}
	m.navTicks++
	if m.navTicks < navTickCount {
		gen := m.navGen
		return tea.Tick(navTickInterval, func(time.Time) tea.Msg { return navTickMsg{gen: gen} })
	}

	dir, ok := deriveDirection(m.heldArrows)
	m.heldArrows = make(map[Direction]bool)
	if !ok {
		return nil
	}
	return m.navigateSelection(dir)
}

// deriveDirection collapses the held-chord set into a single direction.
// Diagonal combinations take priority over single axes; opposing keys on
// the same axis cancel.
func deriveDirection(held map[Direction]bool) (Direction, bool) {
	h := func(d Direction) bool { return held[d] }
	horiz := 0
	if h(DirLeft) {
		horiz--
	}
	if h(DirRight) {
		horiz++
	}
	vert := 0
	if h(DirUp) {
		vert--
	}
	if h(DirDown) {
		vert++
	}

	switch {
	case horiz < 0 && vert < 0:
		return DirUpLeft, true
	case horiz > 0 && vert < 0:
		return DirUpRight, true
	case horiz < 0 && vert > 0:
		return DirDownLeft, true
	case horiz > 0 && vert > 0:
		return DirDownRight, true
	case horiz < 0:
		return DirLeft, true
	case horiz > 0:
		return DirRight, true
	case vert < 0:
		return DirUp, true
	case vert > 0:
		return DirDown, true
	}
	return 0, false
}

// navigateSelection moves selection to the closest other item in the given
// direction and pans it into view. Node and flow selection are mutually
// exclusive; no qualifying candidate means the selection stays put.
func (m *model) navigateSelection(dir Direction) tea.Cmd {
	ox, oy, cur, ok := m.selectionOrigin()
	if !ok {
		return nil
	}

	items := m.diagram.SelectableItems()
	hit := findClosestInDirection(ox, oy, dir, items, map[string]bool{cur: true})
	if hit == nil {
		return nil
	}

	switch hit.Kind {
	case ItemNode:
		m.selectedNode = hit.ID
		m.selectedFlow = ""
		if n := m.diagram.NodeByID(hit.ID); n != nil {
			return m.startPan(panToNode(n, &m.viewport))
		}
	case ItemFlow:
		m.selectedFlow = hit.ID
		m.selectedNode = ""
		return m.startPan(panToPoint(hit.X, hit.Y, &m.viewport))
	}
	return nil
}

// selectionOrigin returns the flow-space point the current selection lives
// at, plus its id. When nothing is selected there is nowhere to navigate
// from.
func (m *model) selectionOrigin() (float64, float64, string, bool) {
	if m.selectedNode != "" {
		if n := m.diagram.NodeByID(m.selectedNode); n != nil {
			cx, cy := n.Center()
			return cx, cy, n.ID, true
		}
	}
	if m.selectedFlow != "" {
		if f := m.diagram.FlowByID(m.selectedFlow); f != nil {
			if mx, my, ok := m.diagram.FlowMidpoint(f); ok {
				return mx, my, f.ID, true
			}
		}
	}
	return 0, 0, "", false
}

// startPan begins executing a pan command: animated over a few frames when
// the command and config ask for it, instantly otherwise. A nil command is
// a no-op.
func (m *model) startPan(cmd *PanCommand) tea.Cmd {
	if cmd == nil {
		return nil
	}
	if !cmd.Animate || !m.config.AnimatePan {
		m.viewport.Apply(cmd)
		m.panFrames = 0
		return nil
	}

	m.panGen++
	m.panFrames = panAnimFrames
	m.panFromX, m.panFromY = m.viewport.X, m.viewport.Y

	target := m.viewport
	target.CenterOn(cmd.X, cmd.Y)
	m.panToX, m.panToY = target.X, target.Y

	gen := m.panGen
	return tea.Tick(panAnimInterval, func(time.Time) tea.Msg { return panAnimMsg{gen: gen} })
}

// handlePanAnim advances an in-flight animated pan by one frame.
func (m *model) handlePanAnim(msg panAnimMsg) tea.Cmd {
	if msg.gen != m.panGen || m.panFrames <= 0 {
		return nil
	}
	m.panFrames--
	t := 1 - float64(m.panFrames)/float64(panAnimFrames)
	// Ease-out.
	t = 1 - (1-t)*(1-t)
	m.viewport.X = m.panFromX + (m.panToX-m.panFromX)*t
	m.viewport.Y = m.panFromY + (m.panToY-m.panFromY)*t

	if m.panFrames == 0 {
		return nil
	}
	gen := m.panGen
	return tea.Tick(panAnimInterval, func(time.Time) tea.Msg { return panAnimMsg{gen: gen} })
}
