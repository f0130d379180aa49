package main

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadLineCountsCellsNotBytes(t *testing.T) {
	// "▏" and "·" are multibyte but one cell wide; byte-based padding would
	// come up short.
	s := " label: text▏ · done"
	require.Greater(t, len(s), lipgloss.Width(s))

	assert.Equal(t, 40, lipgloss.Width(padLine(s, 40)))
	assert.Equal(t, s, padLine(s, 5), "lines at or over width pass through")
}

func TestProtocolOverlayFillsWidth(t *testing.T) {
	m := dispatchModel()
	a := m.diagram.AddNode(0, 0, KindComponent, "a")
	require.True(t, m.creation.start(m.diagram, a))

	overlay := m.protocolOverlay()
	require.NotEmpty(t, overlay)
	assert.Equal(t, m.width, lipgloss.Width(overlay))
}
