package main

// creationPhase tags the flow-creation protocol's state. The zero value is
// idle, so a zero creationMachine is inactive.
type creationPhase int

const (
	creationIdle creationPhase = iota
	creationSourceHandle
	creationTargetNode
	creationTargetHandle
)

// creationMachine authors a brand-new flow across three confirmations:
// pick a handle on the selected source node, pick a target node, pick a
// handle on the target. Escape discards everything; Backspace steps back one
// phase restoring the previous focus.
type creationMachine struct {
	phase         creationPhase
	sourceID      string
	sourceHandle  HandleID // confirmed on leaving creationSourceHandle
	focusedHandle HandleID
	targetID      string // confirmed on leaving creationTargetNode
	focusedNode   string
}

func (c *creationMachine) active() bool {
	return c.phase != creationIdle
}

// start enters the protocol from idle. It only fires while exactly one node
// is selected; the initial handle focus is the ring's first handle.
func (c *creationMachine) start(d *Diagram, nodeID string) bool {
	if c.phase != creationIdle {
		return false
	}
	if d.NodeByID(nodeID) == nil {
		return false
	}
	c.phase = creationSourceHandle
	c.sourceID = nodeID
	c.focusedHandle = handleRing[0]
	d.SetFocusedHandle(nodeID, c.focusedHandle)
	return true
}

// cycleHandle moves the focused handle around the ring in a handle phase.
func (c *creationMachine) cycleHandle(d *Diagram, dir Direction) {
	switch c.phase {
	case creationSourceHandle:
		c.focusedHandle = getNextHandle(c.focusedHandle, dir)
		d.SetFocusedHandle(c.sourceID, c.focusedHandle)
	case creationTargetHandle:
		c.focusedHandle = getNextHandle(c.focusedHandle, dir)
		d.SetFocusedHandle(c.targetID, c.focusedHandle)
	}
}

// moveTargetFocus shifts the focused target candidate in the target-node
// phase: a directional search over nodes of the source's kind, the source
// itself excluded. Returns the newly focused node for the caller to pan to,
// or nil when nothing qualifies.
func (c *creationMachine) moveTargetFocus(d *Diagram, dir Direction) *Node {
	if c.phase != creationTargetNode {
		return nil
	}
	src := d.NodeByID(c.sourceID)
	if src == nil {
		c.reset(d)
		return nil
	}

	var ox, oy float64
	if cur := d.NodeByID(c.focusedNode); cur != nil {
		ox, oy = cur.Center()
	} else {
		ox, oy = src.Center()
	}

	exclude := map[string]bool{c.sourceID: true}
	items := nodeItems(d.Nodes(), src.Kind, true, exclude)
	hit := findClosestInDirection(ox, oy, dir, items, map[string]bool{c.focusedNode: true})
	if hit == nil {
		return nil
	}
	c.focusedNode = hit.ID
	d.SetPendingTarget(hit.ID)
	return d.NodeByID(hit.ID)
}

// confirm advances one phase. On the final confirmation it returns the
// connect request and resets to idle; otherwise nil. A confirmation with no
// focused item is a no-op, and a deleted source or target aborts the whole
// protocol.
func (c *creationMachine) confirm(d *Diagram) *ConnectRequest {
	switch c.phase {
	case creationSourceHandle:
		if d.NodeByID(c.sourceID) == nil {
			c.reset(d)
			return nil
		}
		c.sourceHandle = c.focusedHandle
		c.phase = creationTargetNode
		c.focusedNode = ""
		return nil

	case creationTargetNode:
		if d.NodeByID(c.sourceID) == nil {
			c.reset(d)
			return nil
		}
		if c.focusedNode == "" || d.NodeByID(c.focusedNode) == nil {
			return nil
		}
		c.targetID = c.focusedNode
		c.phase = creationTargetHandle
		c.focusedHandle = handleRing[0]
		d.SetFocusedHandle(c.targetID, c.focusedHandle)
		return nil

	case creationTargetHandle:
		if d.NodeByID(c.sourceID) == nil || d.NodeByID(c.targetID) == nil {
			c.reset(d)
			return nil
		}
		// Source and target swap relative to selection order: the node the
		// user picked second becomes the flow's source. Host edge-direction
		// convention.
		req := &ConnectRequest{
			Source:       c.targetID,
			Target:       c.sourceID,
			SourceHandle: c.focusedHandle,
			TargetHandle: c.sourceHandle,
		}
		c.reset(d)
		return req
	}
	return nil
}

// back steps one phase backwards, restoring the focus that phase had before
// it was confirmed. From the first phase it cancels.
func (c *creationMachine) back(d *Diagram) {
	switch c.phase {
	case creationTargetHandle:
		c.phase = creationTargetNode
		c.focusedNode = c.targetID
		c.targetID = ""
		d.SetFocusedHandle("", "")
		d.SetPendingTarget(c.focusedNode)
	case creationTargetNode:
		c.phase = creationSourceHandle
		c.focusedNode = ""
		c.focusedHandle = c.sourceHandle
		d.SetPendingTarget("")
		d.SetFocusedHandle(c.sourceID, c.focusedHandle)
	case creationSourceHandle:
		c.reset(d)
	}
}

// cancel discards all progress.
func (c *creationMachine) cancel(d *Diagram) {
	c.reset(d)
}

func (c *creationMachine) reset(d *Diagram) {
	*c = creationMachine{}
	d.ClearHints()
}

// focusedNodeForPan returns the node the viewport should track in the
// current phase, if any.
func (c *creationMachine) focusedNodeForPan(d *Diagram) *Node {
	switch c.phase {
	case creationSourceHandle:
		return d.NodeByID(c.sourceID)
	case creationTargetNode:
		if c.focusedNode != "" {
			return d.NodeByID(c.focusedNode)
		}
	case creationTargetHandle:
		return d.NodeByID(c.targetID)
	}
	return nil
}
