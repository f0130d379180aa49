package main

// reconnectPhase tags the flow-reconnection protocol's state.
type reconnectPhase int

const (
	reconnectIdle reconnectPhase = iota
	reconnectSourceNode
	reconnectSourceHandle
	reconnectTargetNode
	reconnectTargetHandle
)

// reconnectMachine re-points an existing flow's two ends across four
// confirmations. Unlike creation, every phase is seeded from the flow's
// current endpoints, so accepting each default with Enter re-commits the
// status quo and re-pointing a single end takes minimal keystrokes.
type reconnectMachine struct {
	phase  reconnectPhase
	flowID string

	sourceID     string // confirmed
	sourceHandle HandleID
	targetID     string

	focusedNode   string
	focusedHandle HandleID
}

func (r *reconnectMachine) active() bool {
	return r.phase != reconnectIdle
}

// start enters the protocol for the selected flow, seeding focus from its
// current source.
func (r *reconnectMachine) start(d *Diagram, flowID string) bool {
	if r.phase != reconnectIdle {
		return false
	}
	f := d.FlowByID(flowID)
	if f == nil {
		return false
	}
	if d.NodeByID(f.Source) == nil || d.NodeByID(f.Target) == nil {
		return false
	}
	r.phase = reconnectSourceNode
	r.flowID = flowID
	r.focusedNode = f.Source
	d.SetPendingTarget(r.focusedNode)
	return true
}

// moveNodeFocus shifts the focused node in a node phase. The search excludes
// the flow's other endpoint so the protocol cannot author a degenerate
// self-loop.
func (r *reconnectMachine) moveNodeFocus(d *Diagram, dir Direction) *Node {
	f := d.FlowByID(r.flowID)
	if f == nil {
		r.reset(d)
		return nil
	}

	var other string
	switch r.phase {
	case reconnectSourceNode:
		other = f.Target
	case reconnectTargetNode:
		other = r.sourceID
	default:
		return nil
	}

	cur := d.NodeByID(r.focusedNode)
	if cur == nil {
		r.reset(d)
		return nil
	}
	ox, oy := cur.Center()

	items := nodeItems(d.Nodes(), 0, false, map[string]bool{other: true})
	hit := findClosestInDirection(ox, oy, dir, items, map[string]bool{r.focusedNode: true})
	if hit == nil {
		return nil
	}
	r.focusedNode = hit.ID
	d.SetPendingTarget(hit.ID)
	return d.NodeByID(hit.ID)
}

// cycleHandle moves the focused handle around the ring in a handle phase.
func (r *reconnectMachine) cycleHandle(d *Diagram, dir Direction) {
	switch r.phase {
	case reconnectSourceHandle:
		r.focusedHandle = getNextHandle(r.focusedHandle, dir)
		d.SetFocusedHandle(r.sourceID, r.focusedHandle)
	case reconnectTargetHandle:
		r.focusedHandle = getNextHandle(r.focusedHandle, dir)
		d.SetFocusedHandle(r.targetID, r.focusedHandle)
	}
}

// confirm advances one phase, returning the update request from the final
// confirmation. Each confirmation re-validates that the flow and every
// referenced node still exist; anything dangling aborts the whole protocol
// rather than emitting a broken update.
func (r *reconnectMachine) confirm(d *Diagram) *ReconnectRequest {
	f := d.FlowByID(r.flowID)
	if f == nil {
		r.reset(d)
		return nil
	}

	switch r.phase {
	case reconnectSourceNode:
		if r.focusedNode == "" || d.NodeByID(r.focusedNode) == nil {
			return nil
		}
		r.sourceID = r.focusedNode
		r.phase = reconnectSourceHandle
		if r.sourceID == f.Source && validHandle(f.SourceHandle) {
			r.focusedHandle = f.SourceHandle
		} else {
			r.focusedHandle = handleRing[0]
		}
		d.SetFocusedHandle(r.sourceID, r.focusedHandle)
		return nil

	case reconnectSourceHandle:
		if d.NodeByID(r.sourceID) == nil {
			r.reset(d)
			return nil
		}
		r.sourceHandle = r.focusedHandle
		r.phase = reconnectTargetNode
		if d.NodeByID(f.Target) != nil && f.Target != r.sourceID {
			r.focusedNode = f.Target
		} else {
			r.focusedNode = ""
		}
		d.SetFocusedHandle("", "")
		d.SetPendingTarget(r.focusedNode)
		return nil

	case reconnectTargetNode:
		if d.NodeByID(r.sourceID) == nil {
			r.reset(d)
			return nil
		}
		if r.focusedNode == "" || d.NodeByID(r.focusedNode) == nil {
			return nil
		}
		r.targetID = r.focusedNode
		r.phase = reconnectTargetHandle
		if r.targetID == f.Target && validHandle(f.TargetHandle) {
			r.focusedHandle = f.TargetHandle
		} else {
			r.focusedHandle = handleRing[0]
		}
		d.SetFocusedHandle(r.targetID, r.focusedHandle)
		return nil

	case reconnectTargetHandle:
		if d.NodeByID(r.sourceID) == nil || d.NodeByID(r.targetID) == nil {
			r.reset(d)
			return nil
		}
		req := &ReconnectRequest{
			FlowID:       r.flowID,
			Source:       r.sourceID,
			Target:       r.targetID,
			SourceHandle: r.sourceHandle,
			TargetHandle: r.focusedHandle,
		}
		r.reset(d)
		return req
	}
	return nil
}

// back steps one phase backwards, restoring the focus that phase had before
// it was confirmed. From the first phase it cancels.
func (r *reconnectMachine) back(d *Diagram) {
	f := d.FlowByID(r.flowID)
	if f == nil {
		r.reset(d)
		return
	}

	switch r.phase {
	case reconnectTargetHandle:
		r.phase = reconnectTargetNode
		r.focusedNode = r.targetID
		r.targetID = ""
		d.SetFocusedHandle("", "")
		d.SetPendingTarget(r.focusedNode)
	case reconnectTargetNode:
		r.phase = reconnectSourceHandle
		r.focusedHandle = r.sourceHandle
		if r.focusedHandle == "" {
			r.focusedHandle = handleRing[0]
		}
		d.SetPendingTarget("")
		d.SetFocusedHandle(r.sourceID, r.focusedHandle)
	case reconnectSourceHandle:
		r.phase = reconnectSourceNode
		r.focusedNode = r.sourceID
		r.sourceID = ""
		d.SetFocusedHandle("", "")
		d.SetPendingTarget(r.focusedNode)
	case reconnectSourceNode:
		r.reset(d)
	}
}

func (r *reconnectMachine) cancel(d *Diagram) {
	r.reset(d)
}

func (r *reconnectMachine) reset(d *Diagram) {
	*r = reconnectMachine{}
	d.ClearHints()
}

// focusedNodeForPan returns the node the viewport should track in the
// current phase, if any.
func (r *reconnectMachine) focusedNodeForPan(d *Diagram) *Node {
	switch r.phase {
	case reconnectSourceNode, reconnectTargetNode:
		if r.focusedNode != "" {
			return d.NodeByID(r.focusedNode)
		}
	case reconnectSourceHandle:
		return d.NodeByID(r.sourceID)
	case reconnectTargetHandle:
		return d.NodeByID(r.targetID)
	}
	return nil
}
