// Package focus picks which window keyboard navigation should focus next.
// It only reads window records; the caller dispatches the FocusWindow
// command for the id it returns.
package focus

import (
	"math"

	"github.com/yourusername/desk-cli/internal/window"
)

// Direction is a keyboard navigation direction
type Direction string

const (
	DirLeft  Direction = "left"
	DirRight Direction = "right"
	DirUp    Direction = "up"
	DirDown  Direction = "down"
)

// ParseDirection converts a string to a Direction
func ParseDirection(s string) (Direction, bool) {
	switch d := Direction(s); d {
	case DirLeft, DirRight, DirUp, DirDown:
		return d, true
	}
	return "", false
}

type point struct{ x, y float64 }

func center(w window.Record) point {
	return point{
		x: float64(w.Position.X) + float64(w.Size.Width)/2,
		y: float64(w.Position.Y) + float64(w.Size.Height)/2,
	}
}

// visible returns the candidates for navigation, keyed by id
func visible(windows []window.Record) map[string]point {
	out := make(map[string]point, len(windows))
	for _, w := range windows {
		if w.Visible() {
			out[w.ID] = center(w)
		}
	}
	return out
}

// Neighbor finds the visible window whose center lies in direction dir from
// the window fromID, preferring windows in line with it. If wrap is true and
// nothing lies that way, the most aligned window on the opposite edge is
// returned instead. Ties go to the lower id so results are stable.
func Neighbor(windows []window.Record, fromID string, dir Direction, wrap bool) (string, bool) {
	centers := visible(windows)
	from, ok := centers[fromID]
	if !ok {
		return "", false
	}

	best, found := pick(centers, fromID, func(id string, p point) (float64, bool) {
		if !isInDirection(from, p, dir) {
			return 0, false
		}
		return distanceInDirection(from, p, dir), true
	})
	if found || !wrap {
		return best, found
	}

	lo, hi := bounds(centers)
	return pick(centers, fromID, func(id string, p point) (float64, bool) {
		if !isOnOppositeEdge(p, dir, lo, hi) {
			return 0, false
		}
		return perpendicularDistance(from, p, dir), true
	})
}

// pick returns the candidate with the lowest score
func pick(centers map[string]point, skip string, score func(string, point) (float64, bool)) (string, bool) {
	var best string
	bestScore := math.MaxFloat64
	for id, p := range centers {
		if id == skip {
			continue
		}
		s, ok := score(id, p)
		if !ok {
			continue
		}
		if s < bestScore || (s == bestScore && id < best) {
			best, bestScore = id, s
		}
	}
	return best, best != ""
}

// isInDirection checks if target is in the specified direction from source
func isInDirection(source, target point, dir Direction) bool {
	switch dir {
	case DirLeft:
		return target.x < source.x
	case DirRight:
		return target.x > source.x
	case DirUp:
		return target.y < source.y
	case DirDown:
		return target.y > source.y
	default:
		return false
	}
}

// distanceInDirection weights movement off the axis double, so windows in
// line with the direction win over closer diagonal ones
func distanceInDirection(source, target point, dir Direction) float64 {
	dx := math.Abs(target.x - source.x)
	dy := math.Abs(target.y - source.y)

	switch dir {
	case DirLeft, DirRight:
		return dx + dy*2
	default:
		return dy + dx*2
	}
}

func bounds(centers map[string]point) (lo, hi point) {
	lo = point{math.MaxFloat64, math.MaxFloat64}
	hi = point{-math.MaxFloat64, -math.MaxFloat64}
	for _, p := range centers {
		lo.x, lo.y = math.Min(lo.x, p.x), math.Min(lo.y, p.y)
		hi.x, hi.y = math.Max(hi.x, p.x), math.Max(hi.y, p.y)
	}
	return lo, hi
}

// isOnOppositeEdge reports whether target is within 10% of the far edge
// for wrap-around
func isOnOppositeEdge(target point, dir Direction, lo, hi point) bool {
	xThreshold := math.Max((hi.x-lo.x)*0.1, 1)
	yThreshold := math.Max((hi.y-lo.y)*0.1, 1)

	switch dir {
	case DirLeft:
		return target.x >= hi.x-xThreshold
	case DirRight:
		return target.x <= lo.x+xThreshold
	case DirUp:
		return target.y >= hi.y-yThreshold
	case DirDown:
		return target.y <= lo.y+yThreshold
	default:
		return false
	}
}

// perpendicularDistance returns the distance across the direction's axis
func perpendicularDistance(source, target point, dir Direction) float64 {
	switch dir {
	case DirLeft, DirRight:
		return math.Abs(target.y - source.y)
	default:
		return math.Abs(target.x - source.x)
	}
}

// frontToBack returns the visible windows, topmost first
func frontToBack(windows []window.Record) []window.Record {
	var out []window.Record
	for _, w := range windows {
		if w.Visible() {
			out = append(out, w)
		}
	}
	window.SortByStackOrder(out)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Cycle returns the backmost visible window. Focusing it raises it, so
// repeated calls visit every visible window in turn.
func Cycle(windows []window.Record, fromID string) (string, bool) {
	order := frontToBack(windows)
	if len(order) == 0 {
		return "", false
	}
	last := order[len(order)-1]
	if last.ID == fromID {
		return "", false
	}
	return last.ID, true
}

// Last returns the window directly beneath the topmost one, the window
// that was in front before the current one was raised.
func Last(windows []window.Record) (string, bool) {
	order := frontToBack(windows)
	if len(order) < 2 {
		return "", false
	}
	return order[1].ID, true
}
