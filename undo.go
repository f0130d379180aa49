package main

// Action is one undoable diagram mutation. Data carries what redo needs,
// Inverse what undo needs.
type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

type NodeActionData struct {
	Node  Node
	Flows []Flow
}

type FlowActionData struct {
	Flow Flow
}

type ReconnectActionData struct {
	FlowID string
	Old    ReconnectRequest
	New    ReconnectRequest
}

type RenameActionData struct {
	ID    string
	Label string
}

type MoveActionData struct {
	ID string
	X  float64
	Y  float64
}

func (m *model) recordAction(actionType ActionType, data, inverse interface{}) {
	m.undoStack = append(m.undoStack, Action{Type: actionType, Data: data, Inverse: inverse})
	m.redoStack = m.redoStack[:0]
}

func (m *model) undo() {
	if len(m.undoStack) == 0 {
		return
	}
	last := len(m.undoStack) - 1
	action := m.undoStack[last]
	m.undoStack = m.undoStack[:last]

	m.applyInverse(action)
	m.redoStack = append(m.redoStack, action)
}

func (m *model) redo() {
	if len(m.redoStack) == 0 {
		return
	}
	last := len(m.redoStack) - 1
	action := m.redoStack[last]
	m.redoStack = m.redoStack[:last]

	m.applyForward(action)
	m.undoStack = append(m.undoStack, action)
}

func (m *model) applyInverse(action Action) {
	switch action.Type {
	case ActionAddNode:
		data := action.Data.(NodeActionData)
		m.diagram.DeleteNode(data.Node.ID)
		m.dropSelection(data.Node.ID)
	case ActionDeleteNode:
		data := action.Inverse.(NodeActionData)
		m.diagram.RestoreNode(data.Node)
		for _, f := range data.Flows {
			m.diagram.RestoreFlow(f)
		}
	case ActionConnect:
		data := action.Data.(FlowActionData)
		m.diagram.DeleteFlow(data.Flow.ID)
		m.dropSelection(data.Flow.ID)
	case ActionDeleteFlow:
		data := action.Inverse.(FlowActionData)
		m.diagram.RestoreFlow(data.Flow)
	case ActionReconnect:
		data := action.Data.(ReconnectActionData)
		m.diagram.Reconnect(data.Old)
	case ActionRenameNode:
		data := action.Inverse.(RenameActionData)
		m.diagram.RenameNode(data.ID, data.Label)
	case ActionMoveNode:
		data := action.Inverse.(MoveActionData)
		m.diagram.SetNodePosition(data.ID, data.X, data.Y)
	}
}

func (m *model) applyForward(action Action) {
	switch action.Type {
	case ActionAddNode:
		data := action.Data.(NodeActionData)
		m.diagram.RestoreNode(data.Node)
	case ActionDeleteNode:
		data := action.Inverse.(NodeActionData)
		m.diagram.DeleteNode(data.Node.ID)
		m.dropSelection(data.Node.ID)
	case ActionConnect:
		data := action.Data.(FlowActionData)
		m.diagram.RestoreFlow(data.Flow)
	case ActionDeleteFlow:
		data := action.Inverse.(FlowActionData)
		m.diagram.DeleteFlow(data.Flow.ID)
		m.dropSelection(data.Flow.ID)
	case ActionReconnect:
		data := action.Data.(ReconnectActionData)
		m.diagram.Reconnect(data.New)
	case ActionRenameNode:
		data := action.Data.(RenameActionData)
		m.diagram.RenameNode(data.ID, data.Label)
	case ActionMoveNode:
		data := action.Data.(MoveActionData)
		m.diagram.SetNodePosition(data.ID, data.X, data.Y)
	}
}

// dropSelection clears selection when the element it pointed at was just
// removed by an undo/redo step.
func (m *model) dropSelection(id string) {
	if m.selectedNode == id {
		m.selectedNode = ""
	}
	if m.selectedFlow == id {
		m.selectedFlow = ""
	}
}
