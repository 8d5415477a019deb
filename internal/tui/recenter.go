package tui

// recenterOffset returns the viewport offset that keeps row visible.
//
// With threshold <= 0 the view only scrolls once row leaves it. Otherwise it
// recentres when row drifts more than threshold rows from the middle.
func recenterOffset(row, offset, height, threshold, total int) int {
	if height <= 0 {
		return offset
	}
	center := offset + height/2
	drift := row - center
	if drift < 0 {
		drift = -drift
	}
	outside := row < offset || row >= offset+height
	if threshold <= 0 && !outside {
		return offset
	}
	if threshold > 0 && drift <= threshold && !outside {
		return offset
	}
	next := row - height/2
	if maxOffset := total - height; next > maxOffset {
		next = maxOffset
	}
	if next < 0 {
		next = 0
	}
	return next
}
