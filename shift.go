package roster

import "strings"

// SplitShiftCell parses the combined shift cell of a trip-chart row, e.g.
// "SR-14\n05:00-13:00". With exactly two lines the first becomes the shift
// code and the second is parsed as a timing range. A timing line that fails
// to parse degrades gracefully: the shift is kept, the timing is dropped
// and ok is false so the caller can record a warning. Any other line count
// keeps the whole cell verbatim as the shift with no timing.
func SplitShiftCell(cell string) (shift string, timing *TimeRange, ok bool) {
	normalized := strings.ReplaceAll(cell, "\r", "")
	lines := splitCellLines(normalized)

	if len(lines) != 2 {
		return strings.TrimSpace(normalized), nil, true
	}

	shift = lines[0]
	tr, err := ParseTimeRange(lines[1])
	if err != nil {
		return shift, nil, false
	}
	return shift, &tr, true
}

// splitCellLines splits a cell on embedded line breaks, trimming each line
// and dropping empty ones.
func splitCellLines(cell string) []string {
	var lines []string
	for _, line := range strings.Split(cell, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
