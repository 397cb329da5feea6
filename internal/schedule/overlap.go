package schedule

// Overlaps reports whether the half-open time intervals [start1, end1) and
// [start2, end2) intersect. Zero-padded "HH:MM" strings compare correctly
// as plain strings, so no parsing is needed here. Touching boundaries
// (end1 == start2) do not overlap, and zero-width intervals overlap nothing.
func Overlaps(start1, end1, start2, end2 string) bool {
	return start1 < end2 && start2 < end1
}
