package main

import (
	"math"

	"github.com/google/uuid"
)

// Diagram owns the element collections. The interaction machines read nodes
// and flows fresh on every operation and mutate only through the request
// methods below.
type Diagram struct {
	nodes []Node
	flows []Flow
}

func NewDiagram() *Diagram {
	return &Diagram{
		nodes: make([]Node, 0),
		flows: make([]Flow, 0),
	}
}

func (d *Diagram) Nodes() []Node { return d.nodes }
func (d *Diagram) Flows() []Flow { return d.flows }

func (d *Diagram) NodeByID(id string) *Node {
	for i := range d.nodes {
		if d.nodes[i].ID == id {
			return &d.nodes[i]
		}
	}
	return nil
}

func (d *Diagram) FlowByID(id string) *Flow {
	for i := range d.flows {
		if d.flows[i].ID == id {
			return &d.flows[i]
		}
	}
	return nil
}

// AddNode inserts a new element near the requested point, routed through the
// placement solver so it does not land on top of an existing component.
// Returns the new node's id.
func (d *Diagram) AddNode(x, y float64, kind NodeKind, label string) string {
	width, height := componentWidth, componentHeight
	if kind == KindBoundary {
		width, height = boundaryWidth, boundaryHeight
	}
	px, py := findUnoccupiedPosition(x, y, d.nodes, width, height)
	n := Node{
		ID:     uuid.NewString(),
		X:      px,
		Y:      py,
		Width:  width,
		Height: height,
		Kind:   kind,
		Label:  label,
	}
	d.nodes = append(d.nodes, n)
	return n.ID
}

// RestoreNode re-inserts a previously deleted node verbatim (undo path).
func (d *Diagram) RestoreNode(n Node) {
	n.FocusedHandle = ""
	n.PendingTarget = false
	d.nodes = append(d.nodes, n)
}

// DeleteNode removes the node and every flow touching it, returning both for
// the undo record.
func (d *Diagram) DeleteNode(id string) (Node, []Flow) {
	var removed Node
	kept := d.nodes[:0]
	for _, n := range d.nodes {
		if n.ID == id {
			removed = n
			continue
		}
		kept = append(kept, n)
	}
	d.nodes = kept

	var detached []Flow
	keptFlows := d.flows[:0]
	for _, f := range d.flows {
		if f.Source == id || f.Target == id {
			detached = append(detached, f)
			continue
		}
		keptFlows = append(keptFlows, f)
	}
	d.flows = keptFlows
	return removed, detached
}

func (d *Diagram) DeleteFlow(id string) (Flow, bool) {
	for i, f := range d.flows {
		if f.ID == id {
			d.flows = append(d.flows[:i], d.flows[i+1:]...)
			return f, true
		}
	}
	return Flow{}, false
}

func (d *Diagram) RestoreFlow(f Flow) {
	d.flows = append(d.flows, f)
}

// Connect creates a new flow from a completed creation protocol. Returns the
// new flow's id, or "" when either endpoint no longer exists.
func (d *Diagram) Connect(req ConnectRequest) string {
	if d.NodeByID(req.Source) == nil || d.NodeByID(req.Target) == nil {
		return ""
	}
	f := Flow{
		ID:           uuid.NewString(),
		Source:       req.Source,
		Target:       req.Target,
		SourceHandle: req.SourceHandle,
		TargetHandle: req.TargetHandle,
	}
	d.flows = append(d.flows, f)
	return f.ID
}

// Reconnect re-points an existing flow's endpoints in place. Returns false
// when the flow or either referenced node is gone.
func (d *Diagram) Reconnect(req ReconnectRequest) bool {
	f := d.FlowByID(req.FlowID)
	if f == nil {
		return false
	}
	if d.NodeByID(req.Source) == nil || d.NodeByID(req.Target) == nil {
		return false
	}
	f.Source = req.Source
	f.Target = req.Target
	f.SourceHandle = req.SourceHandle
	f.TargetHandle = req.TargetHandle
	return true
}

func (d *Diagram) RenameNode(id, label string) (string, bool) {
	n := d.NodeByID(id)
	if n == nil {
		return "", false
	}
	old := n.Label
	n.Label = label
	return old, true
}

func (d *Diagram) MoveNode(id string, dx, dy float64) bool {
	n := d.NodeByID(id)
	if n == nil {
		return false
	}
	n.X += dx
	n.Y += dy
	return true
}

func (d *Diagram) SetNodePosition(id string, x, y float64) bool {
	n := d.NodeByID(id)
	if n == nil {
		return false
	}
	n.X = x
	n.Y = y
	return true
}

// HandlePosition returns the flow-space position of a handle on the node.
// The handle's logical offset marks the start of its third of the side; its
// anchor point sits in the middle of that third.
func HandlePosition(n *Node, h HandleID) (float64, float64) {
	frac := h.Offset() + 0.17
	switch h.Side() {
	case SideTop:
		return n.X + n.Width*frac, n.Y
	case SideBottom:
		return n.X + n.Width*frac, n.Y + n.Height
	case SideLeft:
		return n.X, n.Y + n.Height*frac
	default:
		return n.X + n.Width, n.Y + n.Height*frac
	}
}

// handleNormal is the outward direction of the handle's side, used to shape
// the flow's curve.
func handleNormal(h HandleID) (float64, float64) {
	switch h.Side() {
	case SideTop:
		return 0, -1
	case SideBottom:
		return 0, 1
	case SideLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// FlowMidpoint evaluates the flow's cubic Bézier at t=0.5, which is where
// the selection navigator treats the flow as living. The curve's control
// points extend outward from each endpoint along its handle's side normal.
// Reports false when either endpoint node is missing.
func (d *Diagram) FlowMidpoint(f *Flow) (float64, float64, bool) {
	src := d.NodeByID(f.Source)
	dst := d.NodeByID(f.Target)
	if src == nil || dst == nil {
		return 0, 0, false
	}
	x0, y0 := HandlePosition(src, f.SourceHandle)
	x3, y3 := HandlePosition(dst, f.TargetHandle)

	ext := curveExtent(x0, y0, x3, y3)
	nx0, ny0 := handleNormal(f.SourceHandle)
	nx3, ny3 := handleNormal(f.TargetHandle)
	x1, y1 := x0+nx0*ext, y0+ny0*ext
	x2, y2 := x3+nx3*ext, y3+ny3*ext

	// Cubic Bézier at t=0.5: (P0 + 3P1 + 3P2 + P3) / 8.
	mx := (x0 + 3*x1 + 3*x2 + x3) / 8
	my := (y0 + 3*y1 + 3*y2 + y3) / 8
	return mx, my, true
}

// curveExtent is half the endpoint distance, clamped to a sane curve bulge.
func curveExtent(x0, y0, x1, y1 float64) float64 {
	half := 0.5 * math.Hypot(x1-x0, y1-y0)
	if half < 40 {
		return 40
	}
	if half > 150 {
		return 150
	}
	return half
}

// SelectableItems projects the current element sets into the ephemeral form
// the selection navigator searches over: node centers plus flow curve
// midpoints. Flows with a dangling endpoint are skipped. Computed fresh on
// every call.
func (d *Diagram) SelectableItems() []SelectableItem {
	items := make([]SelectableItem, 0, len(d.nodes)+len(d.flows))
	for i := range d.nodes {
		cx, cy := d.nodes[i].Center()
		items = append(items, SelectableItem{ID: d.nodes[i].ID, X: cx, Y: cy, Kind: ItemNode})
	}
	for i := range d.flows {
		mx, my, ok := d.FlowMidpoint(&d.flows[i])
		if !ok {
			continue
		}
		items = append(items, SelectableItem{ID: d.flows[i].ID, X: mx, Y: my, Kind: ItemFlow})
	}
	return items
}

// ClearHints wipes every per-node render hint. Called whenever a protocol
// machine resets.
func (d *Diagram) ClearHints() {
	for i := range d.nodes {
		d.nodes[i].FocusedHandle = ""
		d.nodes[i].PendingTarget = false
	}
}

func (d *Diagram) SetFocusedHandle(id string, h HandleID) {
	for i := range d.nodes {
		if d.nodes[i].ID == id {
			d.nodes[i].FocusedHandle = h
		} else {
			d.nodes[i].FocusedHandle = ""
		}
	}
}

func (d *Diagram) SetPendingTarget(id string) {
	for i := range d.nodes {
		d.nodes[i].PendingTarget = d.nodes[i].ID == id
	}
}
