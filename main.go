package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	p := tea.NewProgram(
		initialModel(),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

type model struct {
	width  int
	height int

	diagram  *Diagram
	viewport Viewport
	config   *Config

	mode       Mode
	help       bool
	helpScroll int

	selectedNode string
	selectedFlow string

	creation  creationMachine
	reconnect reconnectMachine

	undoStack []Action
	redoStack []Action

	// Label editing.
	editTarget    string
	editIsFlow    bool
	editText      string
	editCursorPos int

	// Move mode.
	moveOrigX float64
	moveOrigY float64

	// File input.
	fileOp            FileOperation
	filename          string
	fileList          []string
	selectedFileIndex int
	fromStartup       bool

	confirmAction ConfirmAction

	errorMessage   string
	successMessage string

	// Arrow chord debounce.
	heldArrows         map[Direction]bool
	navGen             int
	navTicks           int
	selectionHoldUntil time.Time

	// Animated pan.
	panGen    int
	panFrames int
	panFromX  float64
	panFromY  float64
	panToX    float64
	panToY    float64
}

func initialModel() model {
	return model{
		diagram:    NewDiagram(),
		viewport:   Viewport{Zoom: 1},
		config:     loadConfig(),
		mode:       ModeStartup,
		heldArrows: make(map[Direction]bool),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// viewportCenterFlow is the flow-space point currently at the screen
// center, used as the insertion target for new elements.
func (m *model) viewportCenterFlow() (float64, float64) {
	return m.viewport.ToFlow(m.viewport.Width/2, m.viewport.Height/2)
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = float64(msg.Width) * cellPxX
		m.viewport.Height = float64(msg.Height-1) * cellPxY
		return m, nil

	case navTickMsg:
		return m, m.handleNavTick(msg)

	case panAnimMsg:
		return m, m.handlePanAnim(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help && m.mode != ModeStartup {
		switch msg.String() {
		case "j", "down":
			max := len(helpLines) - (m.height - 1)
			if max < 0 {
				max = 0
			}
			if m.helpScroll < max {
				m.helpScroll++
			}
		case "k", "up":
			if m.helpScroll > 0 {
				m.helpScroll--
			}
		default:
			m.help = false
			m.helpScroll = 0
		}
		return m, nil
	}

	switch m.mode {
	case ModeStartup:
		return m.handleStartupKey(msg)
	case ModeNormal:
		return m.handleNormalKey(msg)
	case ModeEditing:
		return m.handleEditingKey(msg)
	case ModeMove:
		return m.handleMoveKey(msg)
	case ModeFileInput:
		return m.handleFileInputKey(msg)
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	}
	return m, nil
}

func (m model) handleStartupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.diagram = NewDiagram()
		m.mode = ModeNormal
		m.clearMessages()
		return m, nil
	case "o":
		m.mode = ModeFileInput
		m.fileOp = FileOpOpen
		m.filename = ""
		m.fromStartup = true
		m.clearMessages()
		m.scanDiagramFiles()
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An active protocol machine owns the keyboard; at most one can be
	// active since both enter on 'd' from mutually exclusive selections.
	if m.creation.active() {
		return m.handleCreationKey(msg)
	}
	if m.reconnect.active() {
		return m.handleReconnectKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.mode = ModeConfirm
		m.confirmAction = ConfirmQuit
		return m, nil

	case "esc":
		m.selectedNode = ""
		m.selectedFlow = ""
		m.clearMessages()
		return m, nil

	case "?":
		m.help = !m.help
		return m, nil

	case "up", "down", "left", "right":
		return m, m.handleArrowKey(arrowDirection(msg.String()))

	case "shift+up":
		m.viewport.Y += cellPxY * 2
		return m, nil
	case "shift+down":
		m.viewport.Y -= cellPxY * 2
		return m, nil
	case "shift+left":
		m.viewport.X += cellPxX * 4
		return m, nil
	case "shift+right":
		m.viewport.X -= cellPxX * 4
		return m, nil

	case "+", "=":
		m.zoomBy(1.25)
		return m, nil
	case "-":
		m.zoomBy(0.8)
		return m, nil

	case "d":
		return m.startProtocol()

	case "n":
		return m.insertNode(KindComponent)
	case "N":
		return m.insertNode(KindBoundary)

	case "ctrl+n":
		if !m.config.Confirmations {
			m.diagram = NewDiagram()
			m.selectedNode = ""
			m.selectedFlow = ""
			m.undoStack = nil
			m.redoStack = nil
			m.clearMessages()
			return m, nil
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmNewDiagram
		return m, nil

	case "e":
		m.startLabelEdit()
		return m, nil

	case "m":
		if n := m.diagram.NodeByID(m.selectedNode); n != nil {
			m.moveOrigX, m.moveOrigY = n.X, n.Y
			m.mode = ModeMove
		}
		return m, nil

	case "x", "delete":
		return m.deleteSelected()

	case "c":
		if n := m.diagram.NodeByID(m.selectedNode); n != nil {
			if err := copyNodeToClipboard(n); err != nil {
				m.errorMessage = fmt.Sprintf("copy failed: %v", err)
			} else {
				m.clearMessages()
				m.successMessage = "copied"
			}
		}
		return m, nil
	case "p":
		return m.pasteNode()

	case "u":
		m.undo()
		m.clearMessages()
		return m, nil
	case "U":
		m.redo()
		m.clearMessages()
		return m, nil

	case "s":
		m.mode = ModeFileInput
		m.fileOp = FileOpSave
		m.clearMessages()
		return m, nil
	case "S":
		m.mode = ModeFileInput
		m.fileOp = FileOpSavePNG
		m.filename = "diagram"
		m.clearMessages()
		return m, nil
	case "o":
		m.mode = ModeFileInput
		m.fileOp = FileOpOpen
		m.filename = ""
		m.fromStartup = false
		m.clearMessages()
		m.scanDiagramFiles()
		return m, nil
	}
	return m, nil
}

func arrowDirection(key string) Direction {
	switch key {
	case "up":
		return DirUp
	case "down":
		return DirDown
	case "left":
		return DirLeft
	default:
		return DirRight
	}
}

func (m *model) zoomBy(factor float64) {
	cx, cy := m.viewportCenterFlow()
	zoom := m.viewport.Zoom * factor
	if zoom < 0.25 {
		zoom = 0.25
	}
	if zoom > 3 {
		zoom = 3
	}
	m.viewport.Zoom = zoom
	m.viewport.CenterOn(cx, cy)
}

// startProtocol enters flow creation when a node is selected, flow
// reconnection when a flow is selected.
func (m model) startProtocol() (tea.Model, tea.Cmd) {
	m.clearMessages()
	if m.selectedNode != "" {
		if m.creation.start(m.diagram, m.selectedNode) {
			var cmd tea.Cmd
			if n := m.diagram.NodeByID(m.selectedNode); n != nil {
				cmd = m.startPan(panToNodeAuthoring(n, &m.viewport))
			}
			return m, cmd
		}
	} else if m.selectedFlow != "" {
		if m.reconnect.start(m.diagram, m.selectedFlow) {
			var cmd tea.Cmd
			if n := m.reconnect.focusedNodeForPan(m.diagram); n != nil {
				cmd = m.startPan(panToNodeAuthoring(n, &m.viewport))
			}
			return m, cmd
		}
		m.errorMessage = "flow endpoints no longer exist"
	}
	return m, nil
}

func (m model) handleCreationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.creation.cancel(m.diagram)
		return m, nil
	case "backspace":
		m.creation.back(m.diagram)
		return m, nil
	case "enter":
		if req := m.creation.confirm(m.diagram); req != nil {
			return m.applyConnect(*req)
		}
		return m, nil
	case "up", "down", "left", "right":
		dir := arrowDirection(msg.String())
		if m.creation.phase == creationTargetNode {
			if n := m.creation.moveTargetFocus(m.diagram, dir); n != nil {
				return m, m.startPan(panToNodeAuthoring(n, &m.viewport))
			}
			return m, nil
		}
		m.creation.cycleHandle(m.diagram, dir)
		return m, nil
	}
	return m, nil
}

func (m model) applyConnect(req ConnectRequest) (tea.Model, tea.Cmd) {
	id := m.diagram.Connect(req)
	if id == "" {
		m.errorMessage = "connection endpoints no longer exist"
		return m, nil
	}
	f := m.diagram.FlowByID(id)
	m.recordAction(ActionConnect, FlowActionData{Flow: *f}, FlowActionData{Flow: *f})
	m.selectedFlow = id
	m.selectedNode = ""
	m.clearMessages()
	m.successMessage = "flow created"
	return m, nil
}

func (m model) handleReconnectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.reconnect.cancel(m.diagram)
		return m, nil
	case "backspace":
		m.reconnect.back(m.diagram)
		return m, nil
	case "enter":
		flowID := m.reconnect.flowID
		var old ReconnectRequest
		if f := m.diagram.FlowByID(flowID); f != nil {
			old = ReconnectRequest{
				FlowID:       f.ID,
				Source:       f.Source,
				Target:       f.Target,
				SourceHandle: f.SourceHandle,
				TargetHandle: f.TargetHandle,
			}
		}
		if req := m.reconnect.confirm(m.diagram); req != nil {
			if m.diagram.Reconnect(*req) {
				m.recordAction(ActionReconnect,
					ReconnectActionData{FlowID: req.FlowID, Old: old, New: *req},
					ReconnectActionData{FlowID: req.FlowID, Old: old, New: *req})
				m.clearMessages()
				m.successMessage = "flow re-pointed"
			} else {
				m.errorMessage = "flow no longer exists"
			}
		}
		return m, nil
	case "up", "down", "left", "right":
		dir := arrowDirection(msg.String())
		switch m.reconnect.phase {
		case reconnectSourceNode, reconnectTargetNode:
			if n := m.reconnect.moveNodeFocus(m.diagram, dir); n != nil {
				return m, m.startPan(panToNodeAuthoring(n, &m.viewport))
			}
		default:
			m.reconnect.cycleHandle(m.diagram, dir)
		}
		return m, nil
	}
	return m, nil
}

func (m model) insertNode(kind NodeKind) (tea.Model, tea.Cmd) {
	x, y := m.viewportCenterFlow()
	if n := m.diagram.NodeByID(m.selectedNode); n != nil {
		x, y = n.Center()
	}
	label := "component"
	if kind == KindBoundary {
		label = "boundary"
	}
	id := m.diagram.AddNode(x, y, kind, label)
	n := m.diagram.NodeByID(id)
	m.recordAction(ActionAddNode, NodeActionData{Node: *n}, NodeActionData{Node: *n})
	m.selectedNode = id
	m.selectedFlow = ""
	m.clearMessages()
	return m, m.startPan(panToNode(n, &m.viewport))
}

func (m model) pasteNode() (tea.Model, tea.Cmd) {
	x, y := m.viewportCenterFlow()
	id, err := pasteNodeFromClipboard(m.diagram, x, y)
	if err != nil {
		m.errorMessage = fmt.Sprintf("paste failed: %v", err)
		return m, nil
	}
	n := m.diagram.NodeByID(id)
	m.recordAction(ActionAddNode, NodeActionData{Node: *n}, NodeActionData{Node: *n})
	m.selectedNode = id
	m.selectedFlow = ""
	m.clearMessages()
	return m, m.startPan(panToNode(n, &m.viewport))
}

func (m *model) startLabelEdit() {
	if n := m.diagram.NodeByID(m.selectedNode); n != nil {
		m.mode = ModeEditing
		m.editTarget = n.ID
		m.editIsFlow = false
		m.editText = n.Label
		m.editCursorPos = len(m.editText)
		return
	}
	if f := m.diagram.FlowByID(m.selectedFlow); f != nil {
		m.mode = ModeEditing
		m.editTarget = f.ID
		m.editIsFlow = true
		m.editText = f.Label
		m.editCursorPos = len(m.editText)
	}
}

func (m model) deleteSelected() (tea.Model, tea.Cmd) {
	switch {
	case m.selectedNode != "":
		if !m.config.Confirmations {
			return m.performDelete(ConfirmDeleteNode)
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmDeleteNode
	case m.selectedFlow != "":
		if !m.config.Confirmations {
			return m.performDelete(ConfirmDeleteFlow)
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmDeleteFlow
	}
	return m, nil
}

func (m model) performDelete(action ConfirmAction) (tea.Model, tea.Cmd) {
	switch action {
	case ConfirmDeleteNode:
		node, flows := m.diagram.DeleteNode(m.selectedNode)
		if node.ID != "" {
			data := NodeActionData{Node: node, Flows: flows}
			m.recordAction(ActionDeleteNode, data, data)
		}
		m.selectedNode = ""
	case ConfirmDeleteFlow:
		if flow, ok := m.diagram.DeleteFlow(m.selectedFlow); ok {
			data := FlowActionData{Flow: flow}
			m.recordAction(ActionDeleteFlow, data, data)
		}
		m.selectedFlow = ""
	}
	m.mode = ModeNormal
	m.clearMessages()
	return m, nil
}

func (m model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEscape:
		m.exitEditing()
		return m, nil
	case msg.Type == tea.KeyEnter:
		if m.editIsFlow {
			if f := m.diagram.FlowByID(m.editTarget); f != nil {
				f.Label = m.editText
			}
		} else {
			if old, ok := m.diagram.RenameNode(m.editTarget, m.editText); ok {
				m.recordAction(ActionRenameNode,
					RenameActionData{ID: m.editTarget, Label: m.editText},
					RenameActionData{ID: m.editTarget, Label: old})
			}
		}
		m.exitEditing()
		return m, nil
	case msg.String() == "left":
		if m.editCursorPos > 0 {
			m.editCursorPos--
		}
		return m, nil
	case msg.String() == "right":
		if m.editCursorPos < len(m.editText) {
			m.editCursorPos++
		}
		return m, nil
	case msg.Type == tea.KeyBackspace:
		if m.editCursorPos > 0 {
			m.editText = m.editText[:m.editCursorPos-1] + m.editText[m.editCursorPos:]
			m.editCursorPos--
		}
		return m, nil
	default:
		keyStr := msg.String()
		if len(keyStr) == 1 {
			m.editText = m.editText[:m.editCursorPos] + keyStr + m.editText[m.editCursorPos:]
			m.editCursorPos++
		}
		return m, nil
	}
}

// exitEditing leaves label editing and opens the short hold during which
// arrow input does not move selection, so a key still settling from the
// edit does not immediately jump the selection.
func (m *model) exitEditing() {
	m.mode = ModeNormal
	m.editTarget = ""
	m.editText = ""
	m.editCursorPos = 0
	m.selectionHoldUntil = time.Now().Add(editExitHold)
}

func (m model) handleMoveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.diagram.NodeByID(m.selectedNode)
	if n == nil {
		m.mode = ModeNormal
		return m, nil
	}

	step := moveStep
	key := msg.String()
	if strings.HasPrefix(key, "shift+") {
		step = moveStepFast
		key = strings.TrimPrefix(key, "shift+")
	}

	switch key {
	case "esc":
		m.diagram.SetNodePosition(n.ID, m.moveOrigX, m.moveOrigY)
		m.mode = ModeNormal
		return m, nil
	case "left":
		m.diagram.MoveNode(n.ID, -step, 0)
	case "right":
		m.diagram.MoveNode(n.ID, step, 0)
	case "up":
		m.diagram.MoveNode(n.ID, 0, -step)
	case "down":
		m.diagram.MoveNode(n.ID, 0, step)
	case "enter":
		if n.X != m.moveOrigX || n.Y != m.moveOrigY {
			m.recordAction(ActionMoveNode,
				MoveActionData{ID: n.ID, X: n.X, Y: n.Y},
				MoveActionData{ID: n.ID, X: m.moveOrigX, Y: m.moveOrigY})
		}
		m.mode = ModeNormal
		return m, nil
	}
	return m, m.startPan(panToNode(n, &m.viewport))
}

func (m *model) scanDiagramFiles() {
	m.fileList = nil
	m.selectedFileIndex = -1

	dir := m.config.SaveDirectory
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(strings.ToLower(entry.Name()), ".yaml") {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)
	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.filename = strings.TrimSuffix(m.fileList[0], ".yaml")
	}
}

func (m model) handleFileInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEscape:
		if m.fromStartup {
			m.mode = ModeStartup
			m.fromStartup = false
		} else {
			m.mode = ModeNormal
		}
		m.filename = ""
		m.errorMessage = ""
		return m, nil

	case msg.String() == "up" && m.fileOp == FileOpOpen && len(m.fileList) > 0:
		if m.selectedFileIndex <= 0 {
			m.selectedFileIndex = len(m.fileList) - 1
		} else {
			m.selectedFileIndex--
		}
		m.filename = strings.TrimSuffix(m.fileList[m.selectedFileIndex], ".yaml")
		return m, nil

	case msg.String() == "down" && m.fileOp == FileOpOpen && len(m.fileList) > 0:
		if m.selectedFileIndex >= len(m.fileList)-1 {
			m.selectedFileIndex = 0
		} else {
			m.selectedFileIndex++
		}
		m.filename = strings.TrimSuffix(m.fileList[m.selectedFileIndex], ".yaml")
		return m, nil

	case msg.Type == tea.KeyEnter:
		return m.executeFileOp()

	case msg.Type == tea.KeyBackspace:
		if len(m.filename) > 0 {
			m.filename = m.filename[:len(m.filename)-1]
		}
		return m, nil

	default:
		keyStr := msg.String()
		if len(keyStr) == 1 {
			m.filename += keyStr
		}
		return m, nil
	}
}

func (m model) executeFileOp() (tea.Model, tea.Cmd) {
	if strings.TrimSpace(m.filename) == "" {
		m.errorMessage = "please enter a filename"
		return m, nil
	}

	switch m.fileOp {
	case FileOpSave:
		filename := m.filename
		if !strings.HasSuffix(strings.ToLower(filename), ".yaml") {
			filename += ".yaml"
		}
		m.filename = filename
		path := m.config.GetSavePath(filename)
		if _, err := os.Stat(path); err == nil && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			return m, nil
		}
		return m.doSave()

	case FileOpSavePNG:
		filename := m.filename
		if !strings.HasSuffix(strings.ToLower(filename), ".png") {
			filename += ".png"
		}
		path := m.config.GetSavePath(filename)
		if err := m.diagram.ExportToPNG(path); err != nil {
			m.errorMessage = fmt.Sprintf("export failed: %v", err)
			return m, nil
		}
		m.mode = ModeNormal
		m.clearMessages()
		m.successMessage = "exported " + filename
		return m, nil

	case FileOpOpen:
		filename := m.filename
		if !strings.HasSuffix(strings.ToLower(filename), ".yaml") {
			filename += ".yaml"
		}
		path := m.config.GetSavePath(filename)
		diagram := NewDiagram()
		if err := diagram.LoadFromFile(path); err != nil {
			m.errorMessage = fmt.Sprintf("open failed: %v", err)
			return m, nil
		}
		m.diagram = diagram
		m.selectedNode = ""
		m.selectedFlow = ""
		m.undoStack = nil
		m.redoStack = nil
		m.viewport = Viewport{Zoom: 1, Width: m.viewport.Width, Height: m.viewport.Height}
		m.mode = ModeNormal
		m.fromStartup = false
		m.clearMessages()
		m.successMessage = "opened " + filename
		return m, nil
	}
	return m, nil
}

func (m model) doSave() (tea.Model, tea.Cmd) {
	path := m.config.GetSavePath(m.filename)
	if err := m.diagram.SaveToFile(path); err != nil {
		m.errorMessage = fmt.Sprintf("save failed: %v", err)
		m.mode = ModeFileInput
		return m, nil
	}
	m.mode = ModeNormal
	m.clearMessages()
	m.successMessage = "saved " + m.filename
	return m, nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmDeleteNode, ConfirmDeleteFlow:
			return m.performDelete(m.confirmAction)
		case ConfirmNewDiagram:
			m.diagram = NewDiagram()
			m.selectedNode = ""
			m.selectedFlow = ""
			m.undoStack = nil
			m.redoStack = nil
			m.mode = ModeNormal
			m.clearMessages()
			return m, nil
		case ConfirmOverwriteFile:
			return m.doSave()
		}
	case "n", "N", "esc":
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
		} else {
			m.mode = ModeNormal
		}
		return m, nil
	}
	return m, nil
}
