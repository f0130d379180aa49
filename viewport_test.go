package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testViewport() Viewport {
	return Viewport{X: 0, Y: 0, Zoom: 1, Width: 800, Height: 600}
}

func TestViewportTransformRoundtrip(t *testing.T) {
	v := Viewport{X: 37, Y: -14, Zoom: 1.5, Width: 800, Height: 600}
	sx, sy := v.ToScreen(120, 80)
	fx, fy := v.ToFlow(sx, sy)
	assert.InDelta(t, 120, fx, 1e-9)
	assert.InDelta(t, 80, fy, 1e-9)
}

func TestPanToNodeVisibleIsNoop(t *testing.T) {
	v := testViewport()
	n := &Node{ID: "a", X: 200, Y: 150, Width: 160, Height: 80}
	assert.Nil(t, panToNode(n, &v))
}

func TestPanToNodeOffscreenRecenters(t *testing.T) {
	v := testViewport()
	n := &Node{ID: "a", X: 1000, Y: 100, Width: 160, Height: 80}

	cmd := panToNode(n, &v)
	require.NotNil(t, cmd)
	assert.True(t, cmd.Animate)
	assert.Equal(t, 1080.0, cmd.X)
	// Downward bias keeps the node clear of the status bar.
	assert.Equal(t, 140.0+panBiasY, cmd.Y)

	v.Apply(cmd)
	sx, _ := v.ToScreen(n.X, n.Y)
	assert.Greater(t, sx, 0.0)
	assert.Less(t, sx+n.Width*v.Zoom, v.Width)
}

func TestPanToNodeStatusBarCounts(t *testing.T) {
	// Fully on screen but underneath the bottom status strip still pans.
	v := testViewport()
	n := &Node{ID: "a", X: 200, Y: 460, Width: 160, Height: 80}
	assert.NotNil(t, panToNode(n, &v))
}

func TestPanToPoint(t *testing.T) {
	v := testViewport()
	assert.Nil(t, panToPoint(400, 300, &v))
	assert.NotNil(t, panToPoint(-50, 300, &v))
}

func TestPanToNodeAuthoringUsesTallerExclusion(t *testing.T) {
	v := testViewport()
	// Clear of the status bar and of the normal padding, but inside the
	// taller authoring overlay zone at the top.
	n := &Node{ID: "a", X: 200, Y: 100, Width: 160, Height: 80}
	assert.Nil(t, panToNode(n, &v))

	cmd := panToNodeAuthoring(n, &v)
	require.NotNil(t, cmd)

	// Applying the command puts the node center at 40% viewport height.
	v.Apply(cmd)
	cx, cy := n.Center()
	_, sy := v.ToScreen(cx, cy)
	assert.InDelta(t, v.Height*authoringCenterFraction, sy, 1e-9)
}

func TestPanToNodeAuthoringVisibleIsNoop(t *testing.T) {
	v := testViewport()
	n := &Node{ID: "a", X: 200, Y: 250, Width: 160, Height: 80}
	assert.Nil(t, panToNodeAuthoring(n, &v))
}
