package main

// Viewport is the camera over flow space: screen = flow*Zoom + translation.
// Width and Height are the usable screen size in screen units.
type Viewport struct {
	X      float64
	Y      float64
	Zoom   float64
	Width  float64
	Height float64
}

// ToScreen converts a flow-space point to screen coordinates.
func (v *Viewport) ToScreen(x, y float64) (float64, float64) {
	return x*v.Zoom + v.X, y*v.Zoom + v.Y
}

// ToFlow converts a screen point back to flow space.
func (v *Viewport) ToFlow(sx, sy float64) (float64, float64) {
	return (sx - v.X) / v.Zoom, (sy - v.Y) / v.Zoom
}

// CenterOn moves the camera so the flow-space point sits at the screen
// center.
func (v *Viewport) CenterOn(x, y float64) {
	v.X = v.Width/2 - x*v.Zoom
	v.Y = v.Height/2 - y*v.Zoom
}

// Apply executes a pan command immediately.
func (v *Viewport) Apply(cmd *PanCommand) {
	if cmd == nil {
		return
	}
	v.CenterOn(cmd.X, cmd.Y)
}

// panToNode checks whether the node's on-screen box has left the padded
// visible area and, if so, returns a re-center command for it. The visible
// area excludes the status bar strip at the bottom of the screen, and the
// pan target carries a downward bias so the element lands above the bar
// rather than behind it. Returns nil when no pan is needed.
func panToNode(n *Node, v *Viewport) *PanCommand {
	sx, sy := v.ToScreen(n.X, n.Y)
	sw := n.Width * v.Zoom
	sh := n.Height * v.Zoom

	minX := viewportPadding
	minY := viewportPadding
	maxX := v.Width - viewportPadding
	maxY := v.Height - statusOverlayHeight - viewportPadding

	if sx >= minX && sy >= minY && sx+sw <= maxX && sy+sh <= maxY {
		return nil
	}

	cx, cy := n.Center()
	return &PanCommand{X: cx, Y: cy + panBiasY/v.Zoom, Animate: true}
}

// panToPoint is panToNode for a dimensionless focus point, used when a flow
// midpoint gains selection.
func panToPoint(x, y float64, v *Viewport) *PanCommand {
	sx, sy := v.ToScreen(x, y)

	if sx >= viewportPadding && sx <= v.Width-viewportPadding &&
		sy >= viewportPadding && sy <= v.Height-statusOverlayHeight-viewportPadding {
		return nil
	}
	return &PanCommand{X: x, Y: y + panBiasY/v.Zoom, Animate: true}
}

// panToNodeAuthoring is the connection-protocol variant: the protocol
// overlay at the top of the screen is taller than the status bar, so the
// exclusion zone is larger (and scales with zoom), and the camera re-centers
// the node toward 40% of the viewport height instead of dead center.
func panToNodeAuthoring(n *Node, v *Viewport) *PanCommand {
	sx, sy := v.ToScreen(n.X, n.Y)
	sw := n.Width * v.Zoom
	sh := n.Height * v.Zoom

	exclusion := authoringOverlayHeight * v.Zoom
	minX := viewportPadding
	minY := exclusion
	maxX := v.Width - viewportPadding
	maxY := v.Height - statusOverlayHeight - viewportPadding

	if sx >= minX && sy >= minY && sx+sw <= maxX && sy+sh <= maxY {
		return nil
	}

	cx, cy := n.Center()
	// The caller recognizes the authoring bias by re-centering to the 40%
	// line rather than the middle.
	return &PanCommand{X: cx, Y: cy + authoringTargetOffset(v), Animate: true}
}

// authoringTargetOffset shifts the pan target so that centering on it puts
// the node at authoringCenterFraction of the viewport height.
func authoringTargetOffset(v *Viewport) float64 {
	if v.Zoom == 0 {
		return 0
	}
	return (v.Height/2 - v.Height*authoringCenterFraction) / v.Zoom
}
