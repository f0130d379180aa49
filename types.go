package main

// NodeKind distinguishes the two placeable element kinds.
type NodeKind int

const (
	KindComponent NodeKind = iota
	KindBoundary
)

func (k NodeKind) String() string {
	switch k {
	case KindComponent:
		return "component"
	case KindBoundary:
		return "boundary"
	default:
		return "unknown"
	}
}

// Node is a placeable element on the canvas. Positions are in flow space
// (y grows downward). FocusedHandle and PendingTarget are render hints
// written by the protocol machines and never persisted.
type Node struct {
	ID     string
	X      float64
	Y      float64
	Width  float64
	Height float64
	Kind   NodeKind
	Label  string

	FocusedHandle HandleID
	PendingTarget bool
}

// Center returns the node's center point in flow space.
func (n *Node) Center() (float64, float64) {
	return n.X + n.Width/2, n.Y + n.Height/2
}

// Flow is a directed connection between two nodes, anchored at a handle on
// each end.
type Flow struct {
	ID           string
	Source       string
	Target       string
	SourceHandle HandleID
	TargetHandle HandleID
	Label        string
}

// ItemKind tags a SelectableItem as a node or a flow.
type ItemKind int

const (
	ItemNode ItemKind = iota
	ItemFlow
)

// SelectableItem is the ephemeral projection the selection navigator
// searches over. Recomputed from the live diagram on every query, never
// stored.
type SelectableItem struct {
	ID   string
	X    float64
	Y    float64
	Kind ItemKind
}

// Direction is one of the eight arrow-key directions.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
	DirUp
	DirDown
	DirUpLeft
	DirUpRight
	DirDownLeft
	DirDownRight
)

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirUpLeft:
		return "up-left"
	case DirUpRight:
		return "up-right"
	case DirDownLeft:
		return "down-left"
	case DirDownRight:
		return "down-right"
	default:
		return "unknown"
	}
}

// Diagonal reports whether d is one of the four diagonal directions.
func (d Direction) Diagonal() bool {
	switch d {
	case DirUpLeft, DirUpRight, DirDownLeft, DirDownRight:
		return true
	}
	return false
}

// Vector returns the unit-component direction vector in flow space
// (y grows downward).
func (d Direction) Vector() (float64, float64) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirUpLeft:
		return -1, -1
	case DirUpRight:
		return 1, -1
	case DirDownLeft:
		return -1, 1
	case DirDownRight:
		return 1, 1
	default:
		return 0, 0
	}
}

// ConnectRequest asks the host to create a new flow.
type ConnectRequest struct {
	Source       string
	Target       string
	SourceHandle HandleID
	TargetHandle HandleID
}

// ReconnectRequest asks the host to re-point an existing flow's endpoints
// in place.
type ReconnectRequest struct {
	FlowID       string
	Source       string
	Target       string
	SourceHandle HandleID
	TargetHandle HandleID
}

// PanCommand re-centers the viewport on a flow-space point.
type PanCommand struct {
	X       float64
	Y       float64
	Animate bool
}
