package display

// Monitor represents a physical display.
type Monitor struct {
	ID      string
	Name    string
	Rect    Rect // Position and size in global coordinate space
	Primary bool
}

// Bounds returns the monitor's boundaries.
func (m *Monitor) Bounds() (x1, y1, x2, y2 int32) {
	return m.Rect.Left, m.Rect.Top, m.Rect.Right, m.Rect.Bottom
}

// Contains checks if a point is within this monitor.
func (m *Monitor) Contains(x, y int32) bool {
	return m.Rect.Contains(x, y)
}

// Nearest returns the monitor whose bounds have the largest overlap with
// rect, falling back to the monitor whose center is closest to the
// rectangle's center. Mirrors the "nearest monitor" resolution windowing
// systems apply to windows straddling displays.
func Nearest(monitors []*Monitor, rect Rect) *Monitor {
	if len(monitors) == 0 {
		return nil
	}

	var best *Monitor
	var bestArea int64
	for _, m := range monitors {
		ov := m.Rect.Intersect(rect)
		area := int64(ov.Width()) * int64(ov.Height())
		if area > bestArea {
			bestArea = area
			best = m
		}
	}
	if best != nil {
		return best
	}

	// No overlap at all: pick by center distance.
	cx := int64(rect.Left) + int64(rect.Width())/2
	cy := int64(rect.Top) + int64(rect.Height())/2
	var bestDist int64 = -1
	for _, m := range monitors {
		mx := int64(m.Rect.Left) + int64(m.Rect.Width())/2
		my := int64(m.Rect.Top) + int64(m.Rect.Height())/2
		dx, dy := cx-mx, cy-my
		dist := dx*dx + dy*dy
		if bestDist < 0 || dist < bestDist {
			bestDist = dist
			best = m
		}
	}
	return best
}
