package main

// HandleID names one of the 12 fixed connection points on a node: three per
// side, numbered clockwise-from-the-start of each side (top and bottom count
// left to right, left and right count top to bottom).
type HandleID string

const (
	HandleTop1    HandleID = "top-1"
	HandleTop2    HandleID = "top-2"
	HandleTop3    HandleID = "top-3"
	HandleRight1  HandleID = "right-1"
	HandleRight2  HandleID = "right-2"
	HandleRight3  HandleID = "right-3"
	HandleBottom1 HandleID = "bottom-1"
	HandleBottom2 HandleID = "bottom-2"
	HandleBottom3 HandleID = "bottom-3"
	HandleLeft1   HandleID = "left-1"
	HandleLeft2   HandleID = "left-2"
	HandleLeft3   HandleID = "left-3"
)

// handleRing lists all 12 handles clockwise from the top-left. Its first
// entry is the default focus when a handle phase begins and the fallback for
// unknown ids.
var handleRing = [12]HandleID{
	HandleTop1, HandleTop2, HandleTop3,
	HandleRight1, HandleRight2, HandleRight3,
	HandleBottom3, HandleBottom2, HandleBottom1,
	HandleLeft3, HandleLeft2, HandleLeft1,
}

type HandleSide int

const (
	SideTop HandleSide = iota
	SideRight
	SideBottom
	SideLeft
)

// Side returns the node side the handle sits on.
func (h HandleID) Side() HandleSide {
	switch h {
	case HandleTop1, HandleTop2, HandleTop3:
		return SideTop
	case HandleRight1, HandleRight2, HandleRight3:
		return SideRight
	case HandleBottom1, HandleBottom2, HandleBottom3:
		return SideBottom
	default:
		return SideLeft
	}
}

// Offset returns the handle's logical offset along its side: 0, 0.33 or
// 0.66 for the first, second and third handle.
func (h HandleID) Offset() float64 {
	switch h {
	case HandleTop1, HandleRight1, HandleBottom1, HandleLeft1:
		return 0
	case HandleTop2, HandleRight2, HandleBottom2, HandleLeft2:
		return 0.33
	default:
		return 0.66
	}
}

// getNextHandle maps (current handle, arrow direction) to the next focused
// handle. The 12 handles are fixed points on a rectangle, so "next handle in
// direction X" has no single geometric answer at corners; the mapping is a
// hand-authored exhaustive table with intentional wrap-around (the left-most
// handle plus "left" wraps to the right side, the top-left corner plus "up"
// wraps to the bottom-left corner) and opposite-side jumps for the middle
// handles moving toward or away from their own side.
//
// Only cardinal directions cycle the focus; a diagonal leaves it unchanged.
// An unknown handle id falls back to the ring's first handle.
func getNextHandle(current HandleID, dir Direction) HandleID {
	if dir.Diagonal() {
		return current
	}
	switch current {
	// Corners.
	case HandleTop1:
		switch dir {
		case DirUp:
			return HandleBottom1
		case DirDown:
			return HandleLeft1
		case DirLeft:
			return HandleRight1
		case DirRight:
			return HandleTop2
		}
	case HandleTop3:
		switch dir {
		case DirUp:
			return HandleBottom3
		case DirDown:
			return HandleRight1
		case DirLeft:
			return HandleTop2
		case DirRight:
			return HandleLeft1
		}
	case HandleBottom1:
		switch dir {
		case DirUp:
			return HandleLeft3
		case DirDown:
			return HandleTop1
		case DirLeft:
			return HandleRight3
		case DirRight:
			return HandleBottom2
		}
	case HandleBottom3:
		switch dir {
		case DirUp:
			return HandleRight3
		case DirDown:
			return HandleTop3
		case DirLeft:
			return HandleBottom2
		case DirRight:
			return HandleLeft3
		}

	// Edge middles: vertical movement from a horizontal side (and
	// horizontal movement from a vertical side) jumps to the opposite
	// side's middle.
	case HandleTop2:
		switch dir {
		case DirUp, DirDown:
			return HandleBottom2
		case DirLeft:
			return HandleTop1
		case DirRight:
			return HandleTop3
		}
	case HandleBottom2:
		switch dir {
		case DirUp, DirDown:
			return HandleTop2
		case DirLeft:
			return HandleBottom1
		case DirRight:
			return HandleBottom3
		}
	case HandleLeft2:
		switch dir {
		case DirUp:
			return HandleLeft1
		case DirDown:
			return HandleLeft3
		case DirLeft, DirRight:
			return HandleRight2
		}
	case HandleRight2:
		switch dir {
		case DirUp:
			return HandleRight1
		case DirDown:
			return HandleRight3
		case DirLeft, DirRight:
			return HandleLeft2
		}

	// Edge off-middles on the vertical sides.
	case HandleLeft1:
		switch dir {
		case DirUp:
			return HandleTop1
		case DirDown:
			return HandleLeft2
		case DirLeft:
			return HandleRight1
		case DirRight:
			return HandleRight1
		}
	case HandleLeft3:
		switch dir {
		case DirUp:
			return HandleLeft2
		case DirDown:
			return HandleBottom1
		case DirLeft:
			return HandleRight3
		case DirRight:
			return HandleRight3
		}
	case HandleRight1:
		switch dir {
		case DirUp:
			return HandleTop3
		case DirDown:
			return HandleRight2
		case DirLeft:
			return HandleLeft1
		case DirRight:
			return HandleLeft1
		}
	case HandleRight3:
		switch dir {
		case DirUp:
			return HandleRight2
		case DirDown:
			return HandleBottom3
		case DirLeft:
			return HandleLeft3
		case DirRight:
			return HandleLeft3
		}
	}
	return handleRing[0]
}

// validHandle reports whether h is one of the 12 known handles.
func validHandle(h HandleID) bool {
	for _, id := range handleRing {
		if id == h {
			return true
		}
	}
	return false
}
