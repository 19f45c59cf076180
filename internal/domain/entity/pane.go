package entity

// VisibleIndex returns the position of the first visible pane in a
// visibility vector, or 0 when none is visible. The fallback is the same
// value a caller gets for "pane 0 is visible", so callers that need to tell
// the two apart must check CountVisible.
func VisibleIndex(visibility []bool) int {
	for i, visible := range visibility {
		if visible {
			return i
		}
	}
	return 0
}

// CountVisible returns how many entries of a visibility vector are true.
func CountVisible(visibility []bool) int {
	count := 0
	for _, visible := range visibility {
		if visible {
			count++
		}
	}
	return count
}

// SoleVisibility builds the visibility vector where only position active is
// visible. An out-of-range active index yields an all-hidden vector.
func SoleVisibility(count, active int) []bool {
	if count < 0 {
		count = 0
	}
	visibility := make([]bool, count)
	if active >= 0 && active < count {
		visibility[active] = true
	}
	return visibility
}
