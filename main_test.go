package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	escKey       = tea.KeyMsg{Type: tea.KeyEscape}
	enterKey     = tea.KeyMsg{Type: tea.KeyEnter}
	backspaceKey = tea.KeyMsg{Type: tea.KeyBackspace}
	rightKey     = tea.KeyMsg{Type: tea.KeyRight}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// press routes one key event the way Update does and returns the next model
// state.
func press(t *testing.T, m model, msg tea.KeyMsg) model {
	t.Helper()
	next, _ := m.handleKey(msg)
	return next.(model)
}

func dispatchModel() model {
	m := *testModel()
	m.width = 80
	m.height = 30
	return m
}

func TestEscKeyClearsSelection(t *testing.T) {
	m := dispatchModel()
	a := m.diagram.AddNode(0, 0, KindComponent, "a")
	m.selectedNode = a

	m = press(t, m, escKey)
	assert.Empty(t, m.selectedNode)
}

func TestEscKeyCancelsCreation(t *testing.T) {
	m := dispatchModel()
	a := m.diagram.AddNode(0, 0, KindComponent, "a")
	m.diagram.AddNode(400, 0, KindComponent, "b")
	m.selectedNode = a

	m = press(t, m, runeKey('d'))
	require.True(t, m.creation.active())

	m = press(t, m, escKey)
	assert.False(t, m.creation.active())
	assert.Empty(t, m.diagram.NodeByID(a).FocusedHandle, "cancel must clear hints")
	assert.Equal(t, ModeNormal, m.mode)
}

func TestEscKeyCancelsReconnect(t *testing.T) {
	m := dispatchModel()
	a := m.diagram.AddNode(0, 0, KindComponent, "a")
	b := m.diagram.AddNode(400, 0, KindComponent, "b")
	fid := m.diagram.Connect(ConnectRequest{Source: a, Target: b,
		SourceHandle: HandleRight2, TargetHandle: HandleLeft2})
	m.selectedFlow = fid

	m = press(t, m, runeKey('d'))
	require.True(t, m.reconnect.active())

	m = press(t, m, escKey)
	assert.False(t, m.reconnect.active())
	assert.False(t, m.diagram.NodeByID(a).PendingTarget)
}

func TestEscKeyCancelsMove(t *testing.T) {
	m := dispatchModel()
	a := m.diagram.AddNode(0, 0, KindComponent, "a")
	m.selectedNode = a

	m = press(t, m, runeKey('m'))
	require.Equal(t, ModeMove, m.mode)
	m = press(t, m, rightKey)
	require.Equal(t, moveStep, m.diagram.NodeByID(a).X)

	m = press(t, m, escKey)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 0.0, m.diagram.NodeByID(a).X, "cancel must restore the origin")
}

func TestEscKeyDeclinesConfirm(t *testing.T) {
	m := dispatchModel()
	a := m.diagram.AddNode(0, 0, KindComponent, "a")
	m.selectedNode = a

	m = press(t, m, runeKey('x'))
	require.Equal(t, ModeConfirm, m.mode)

	m = press(t, m, escKey)
	assert.Equal(t, ModeNormal, m.mode)
	assert.NotNil(t, m.diagram.NodeByID(a), "declined delete must keep the node")

	m = press(t, m, runeKey('x'))
	m = press(t, m, runeKey('y'))
	assert.Nil(t, m.diagram.NodeByID(a))
}

func TestCreationDrivenByKeyEvents(t *testing.T) {
	m := dispatchModel()
	a := m.diagram.AddNode(0, 0, KindComponent, "a")
	b := m.diagram.AddNode(400, 0, KindComponent, "b")
	m.selectedNode = a

	m = press(t, m, runeKey('d'))
	m = press(t, m, enterKey)
	m = press(t, m, rightKey)
	m = press(t, m, enterKey)
	m = press(t, m, enterKey)

	require.NotEmpty(t, m.selectedFlow)
	f := m.diagram.FlowByID(m.selectedFlow)
	require.NotNil(t, f)
	assert.Equal(t, b, f.Source)
	assert.Equal(t, a, f.Target)
	assert.False(t, m.creation.active())
	assert.Len(t, m.undoStack, 1, "the commit records exactly one action")
}

func TestBackspaceKeyStepsProtocolBack(t *testing.T) {
	m := dispatchModel()
	a := m.diagram.AddNode(0, 0, KindComponent, "a")
	b := m.diagram.AddNode(400, 0, KindComponent, "b")
	fid := m.diagram.Connect(ConnectRequest{Source: a, Target: b,
		SourceHandle: HandleRight2, TargetHandle: HandleLeft2})
	m.selectedFlow = fid

	m = press(t, m, runeKey('d'))
	m = press(t, m, enterKey)
	require.Equal(t, reconnectSourceHandle, m.reconnect.phase)

	m = press(t, m, backspaceKey)
	assert.Equal(t, reconnectSourceNode, m.reconnect.phase)
	assert.Equal(t, a, m.reconnect.focusedNode)
}
