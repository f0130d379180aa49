package main

// findUnoccupiedPosition picks a collision-free spot for a new element near
// the requested target. It walks the hand-ordered placementOffsets sequence
// and returns the first candidate whose box does not overlap any existing
// component; when every candidate collides it returns the target unchanged,
// since a little overlap is visually tolerable and an unbounded search is
// not.
//
// Boundaries are containers, not obstacles, and never block placement. The
// overlap test carries a small negative padding, so slight contact between
// boxes is allowed.
func findUnoccupiedPosition(targetX, targetY float64, nodes []Node, width, height float64) (float64, float64) {
	for _, off := range placementOffsets {
		x := targetX + off[0]*placementStepX
		y := targetY + off[1]*placementStepY
		if !placementCollides(x, y, width, height, nodes) {
			return x, y
		}
	}
	return targetX, targetY
}

func placementCollides(x, y, width, height float64, nodes []Node) bool {
	for i := range nodes {
		n := &nodes[i]
		if n.Kind == KindBoundary {
			continue
		}
		if boxesOverlap(x, y, width, height, n.X, n.Y, n.Width, n.Height, placementPadding) {
			return true
		}
	}
	return false
}

// boxesOverlap is an AABB test with padding applied to the gap; a negative
// padding permits that much overlap before the boxes count as colliding.
func boxesOverlap(ax, ay, aw, ah, bx, by, bw, bh, pad float64) bool {
	return ax < bx+bw+pad &&
		bx < ax+aw+pad &&
		ay < by+bh+pad &&
		by < ay+ah+pad
}
