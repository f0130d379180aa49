package main

import "math"

// findClosestInDirection returns the candidate that best matches moving from
// the origin in the given direction, or nil when nothing qualifies.
//
// Distances are evaluated in expanding tolerance bands rather than as a
// single nearest-neighbor query: a globally closest item can still be
// perceptually "off to the side" of the requested direction, so each band
// first admits only candidates tightly aligned with the axis and the
// tolerance relaxes band by band. The first band with any qualifier wins.
//
// Cardinal directions qualify a candidate when its perpendicular offset is
// within the band tolerance, its signed offset along the primary axis points
// the right way, and the primary-axis distance is at least
// searchMinDistance; ties resolve to the smallest primary-axis distance.
// Diagonal directions qualify by an angular window around the exact bearing,
// widening from diagAngleBase to diagAngleMax across bands, ranked by
// Euclidean distance.
func findClosestInDirection(originX, originY float64, dir Direction, candidates []SelectableItem, exclude map[string]bool) *SelectableItem {
	numBands := int(searchBandMax / searchBandStep)
	for band := 0; band < numBands; band++ {
		tolerance := searchBandStep * float64(band+1)
		var best *SelectableItem
		bestScore := math.MaxFloat64

		for i := range candidates {
			c := &candidates[i]
			if exclude != nil && exclude[c.ID] {
				continue
			}
			dx := c.X - originX
			dy := c.Y - originY

			if dir.Diagonal() {
				dist := math.Hypot(dx, dy)
				if dist < searchMinDistance || dist > tolerance {
					continue
				}
				if !withinAngle(dx, dy, dir, angleToleranceFor(band, numBands)) {
					continue
				}
				if dist < bestScore {
					best, bestScore = c, dist
				}
			} else {
				primary, perp := axisOffsets(dx, dy, dir)
				if primary < searchMinDistance {
					continue
				}
				if math.Abs(perp) > tolerance {
					continue
				}
				if primary < bestScore {
					best, bestScore = c, primary
				}
			}
		}
		if best != nil {
			return best
		}
	}
	return nil
}

// axisOffsets splits a candidate offset into the signed distance along the
// requested cardinal axis and the perpendicular offset.
func axisOffsets(dx, dy float64, dir Direction) (primary, perp float64) {
	switch dir {
	case DirRight:
		return dx, dy
	case DirLeft:
		return -dx, dy
	case DirDown:
		return dy, dx
	case DirUp:
		return -dy, dx
	default:
		return 0, 0
	}
}

// angleToleranceFor widens the diagonal angular window linearly from
// diagAngleBase on the innermost band to diagAngleMax on the outermost.
func angleToleranceFor(band, numBands int) float64 {
	if numBands <= 1 {
		return diagAngleBase
	}
	return diagAngleBase + (diagAngleMax-diagAngleBase)*float64(band)/float64(numBands-1)
}

// withinAngle reports whether the offset vector lies within toleranceDeg of
// the direction's exact bearing.
func withinAngle(dx, dy float64, dir Direction, toleranceDeg float64) bool {
	vx, vy := dir.Vector()
	dot := dx*vx + dy*vy
	mag := math.Hypot(dx, dy) * math.Hypot(vx, vy)
	if mag == 0 {
		return false
	}
	cos := dot / mag
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)*180/math.Pi <= toleranceDeg
}

// nodeItems projects nodes into selectable items, optionally restricted to a
// single kind. Used by the protocol machines for node-only searches.
func nodeItems(nodes []Node, kind NodeKind, restrictKind bool, exclude map[string]bool) []SelectableItem {
	items := make([]SelectableItem, 0, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		if restrictKind && n.Kind != kind {
			continue
		}
		if exclude != nil && exclude[n.ID] {
			continue
		}
		cx, cy := n.Center()
		items = append(items, SelectableItem{ID: n.ID, X: cx, Y: cy, Kind: ItemNode})
	}
	return items
}
