package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndoRedoAddNode(t *testing.T) {
	m := testModel()
	id := m.diagram.AddNode(0, 0, KindComponent, "web")
	m.recordAction(ActionAddNode, NodeActionData{Node: *m.diagram.NodeByID(id)}, nil)
	m.selectedNode = id

	m.undo()
	assert.Nil(t, m.diagram.NodeByID(id))
	assert.Empty(t, m.selectedNode, "selection must not point at a removed element")

	m.redo()
	require.NotNil(t, m.diagram.NodeByID(id))
	assert.Equal(t, "web", m.diagram.NodeByID(id).Label)
}

func TestUndoDeleteNodeRestoresFlows(t *testing.T) {
	m := testModel()
	a := m.diagram.AddNode(0, 0, KindComponent, "a")
	b := m.diagram.AddNode(400, 0, KindComponent, "b")
	fid := m.diagram.Connect(ConnectRequest{Source: a, Target: b,
		SourceHandle: HandleRight2, TargetHandle: HandleLeft2})

	removed, detached := m.diagram.DeleteNode(b)
	m.recordAction(ActionDeleteNode, nil, NodeActionData{Node: removed, Flows: detached})

	m.undo()
	require.NotNil(t, m.diagram.NodeByID(b))
	require.NotNil(t, m.diagram.FlowByID(fid), "cascaded flow must come back with the node")

	m.redo()
	assert.Nil(t, m.diagram.NodeByID(b))
	assert.Nil(t, m.diagram.FlowByID(fid))
}

func TestUndoRedoConnect(t *testing.T) {
	m := testModel()
	a := m.diagram.AddNode(0, 0, KindComponent, "a")
	b := m.diagram.AddNode(400, 0, KindComponent, "b")
	fid := m.diagram.Connect(ConnectRequest{Source: a, Target: b,
		SourceHandle: HandleRight2, TargetHandle: HandleLeft2})
	m.recordAction(ActionConnect, FlowActionData{Flow: *m.diagram.FlowByID(fid)}, nil)
	m.selectedFlow = fid

	m.undo()
	assert.Nil(t, m.diagram.FlowByID(fid))
	assert.Empty(t, m.selectedFlow)

	m.redo()
	f := m.diagram.FlowByID(fid)
	require.NotNil(t, f)
	assert.Equal(t, HandleRight2, f.SourceHandle)
}

func TestUndoRedoReconnect(t *testing.T) {
	m := testModel()
	a := m.diagram.AddNode(0, 0, KindComponent, "a")
	b := m.diagram.AddNode(400, 0, KindComponent, "b")
	c := m.diagram.AddNode(800, 0, KindComponent, "c")
	fid := m.diagram.Connect(ConnectRequest{Source: a, Target: b,
		SourceHandle: HandleRight2, TargetHandle: HandleLeft2})

	old := ReconnectRequest{FlowID: fid, Source: a, Target: b,
		SourceHandle: HandleRight2, TargetHandle: HandleLeft2}
	upd := ReconnectRequest{FlowID: fid, Source: a, Target: c,
		SourceHandle: HandleRight2, TargetHandle: HandleLeft1}
	require.True(t, m.diagram.Reconnect(upd))
	m.recordAction(ActionReconnect, ReconnectActionData{FlowID: fid, Old: old, New: upd}, nil)

	m.undo()
	f := m.diagram.FlowByID(fid)
	require.NotNil(t, f)
	assert.Equal(t, b, f.Target)
	assert.Equal(t, HandleLeft2, f.TargetHandle)

	m.redo()
	assert.Equal(t, c, f.Target)
	assert.Equal(t, HandleLeft1, f.TargetHandle)
}

func TestUndoRedoRename(t *testing.T) {
	m := testModel()
	id := m.diagram.AddNode(0, 0, KindComponent, "old name")
	oldLabel, ok := m.diagram.RenameNode(id, "new name")
	require.True(t, ok)
	m.recordAction(ActionRenameNode,
		RenameActionData{ID: id, Label: "new name"},
		RenameActionData{ID: id, Label: oldLabel})

	m.undo()
	assert.Equal(t, "old name", m.diagram.NodeByID(id).Label)
	m.redo()
	assert.Equal(t, "new name", m.diagram.NodeByID(id).Label)
}

func TestUndoRedoMove(t *testing.T) {
	m := testModel()
	id := m.diagram.AddNode(0, 0, KindComponent, "a")
	m.diagram.SetNodePosition(id, 100, 50)
	m.recordAction(ActionMoveNode,
		MoveActionData{ID: id, X: 100, Y: 50},
		MoveActionData{ID: id, X: 0, Y: 0})

	m.undo()
	n := m.diagram.NodeByID(id)
	assert.Equal(t, 0.0, n.X)
	m.redo()
	assert.Equal(t, 100.0, n.X)
	assert.Equal(t, 50.0, n.Y)
}

func TestRecordActionClearsRedo(t *testing.T) {
	m := testModel()
	a := m.diagram.AddNode(0, 0, KindComponent, "a")
	m.recordAction(ActionAddNode, NodeActionData{Node: *m.diagram.NodeByID(a)}, nil)

	m.undo()
	require.Len(t, m.redoStack, 1)

	b := m.diagram.AddNode(300, 0, KindComponent, "b")
	m.recordAction(ActionAddNode, NodeActionData{Node: *m.diagram.NodeByID(b)}, nil)
	assert.Empty(t, m.redoStack, "a fresh action invalidates the redo branch")
}

func TestUndoRedoEmptyStacks(t *testing.T) {
	m := testModel()
	m.undo()
	m.redo()
	assert.Empty(t, m.undoStack)
	assert.Empty(t, m.redoStack)
}
