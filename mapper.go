package roster

import (
	"fmt"
	"strings"
)

// Column positions are fixed by convention across all supported reports:
// employee name, personnel number, scheduling row, then (for trip charts
// only) the combined shift cell, then one column per calendar day. The
// last column may be a paid-time total instead of a day.
const (
	colEmployee   = 0
	colPersonnel  = 1
	colScheduling = 2
	colShift      = 3
)

// How many trailing-column values to sample when deciding whether the last
// column is a paid-time total rather than a day column.
const paidTimeSampleSize = 5

// mapRecords converts the rows of a classified table into attendance
// records. Rows without a parseable personnel number are header or footer
// noise repeated across pages and are dropped silently; rows with malformed
// identity cells are dropped with a warning.
func mapRecords(table RawTable, kind LayoutKind, parse DurationParser) ([]AttendanceRecord, []Warning) {
	dayStart := colShift
	if kind == LayoutTripChart {
		dayStart = colShift + 1
	}

	var records []AttendanceRecord
	var warnings []Warning

	for _, row := range table.Rows {
		if len(row) <= dayStart {
			continue
		}

		personnel := strings.TrimSpace(firstLine(row[colPersonnel]))
		if !looksLikePersonnelNumber(personnel) {
			continue
		}

		if err := validateIdentityCells(row); err != nil {
			warnings = append(warnings, Warning{
				Kind:            WarnMalformedCell,
				Page:            table.Page,
				PersonnelNumber: personnel,
				Message:         err.Error(),
			})
			continue
		}

		record := AttendanceRecord{
			// Names routinely wrap inside their cell; rejoin them.
			Employee:        collapseLines(row[colEmployee]),
			PersonnelNumber: personnel,
			SchedulingRow:   strings.TrimSpace(row[colScheduling]),
		}

		if kind == LayoutTripChart {
			shift, timing, ok := SplitShiftCell(row[colShift])
			record.Shift = shift
			record.ShiftTiming = timing
			if !ok {
				warnings = append(warnings, Warning{
					Kind:            WarnShiftTiming,
					Page:            table.Page,
					PersonnelNumber: personnel,
					Message:         fmt.Sprintf("timing line of shift cell %q is not HH:MM-HH:MM", collapseLines(row[colShift])),
				})
			}
		}

		for _, cell := range row[dayStart:] {
			record.DailyCodes = append(record.DailyCodes, cleanCode(cell))
		}
		records = append(records, record)
	}

	maxCodes := 0
	for _, r := range records {
		if len(r.DailyCodes) > maxCodes {
			maxCodes = len(r.DailyCodes)
		}
	}
	if detectPaidTimeColumn(records, maxCodes, parse) {
		records, warnings = splitPaidTimeColumn(records, warnings, table.Page, maxCodes, parse)
	}

	return records, warnings
}

// detectPaidTimeColumn samples the trailing column and reports whether a
// majority of the sampled values parse as durations. Only rows reaching
// the table's full width are sampled: a short row's last cell is a day
// code, not the paid-time column, because the locator strips trailing
// blanks. Attendance code tokens (letters) never parse, so a genuine final
// day column keeps its codes.
func detectPaidTimeColumn(records []AttendanceRecord, maxCodes int, parse DurationParser) bool {
	var sampled, parsed int
	for _, r := range records {
		if sampled == paidTimeSampleSize {
			break
		}
		if len(r.DailyCodes) != maxCodes || maxCodes == 0 {
			continue
		}
		last := r.DailyCodes[len(r.DailyCodes)-1]
		if last == "" {
			continue
		}
		sampled++
		if _, ok := parse(last); ok {
			parsed++
		}
	}
	return sampled > 0 && parsed*2 > sampled
}

// splitPaidTimeColumn pops the trailing cell off every full-width record
// and assigns it as paid time. Short records never reach the paid-time
// column and keep all their day codes with paid time unset. A full-width
// value that fails to parse leaves the record's paid time unset with a
// warning rather than guessing.
func splitPaidTimeColumn(records []AttendanceRecord, warnings []Warning, page int, maxCodes int, parse DurationParser) ([]AttendanceRecord, []Warning) {
	for i := range records {
		codes := records[i].DailyCodes
		if len(codes) != maxCodes {
			continue
		}
		last := codes[len(codes)-1]
		records[i].DailyCodes = codes[:len(codes)-1]
		if last == "" {
			continue
		}
		if d, ok := parse(last); ok {
			records[i].PaidTime = &d
		} else {
			warnings = append(warnings, Warning{
				Kind:            WarnMalformedCell,
				Page:            page,
				PersonnelNumber: records[i].PersonnelNumber,
				Message:         fmt.Sprintf("paid-time value %q is not a recognized duration", last),
			})
		}
	}
	return records, warnings
}

// looksLikePersonnelNumber reports whether the cell holds an actual
// personnel number rather than repeated header text.
func looksLikePersonnelNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// validateIdentityCells verifies the cells that must hold a single line and
// returns a *MalformedCellError for the first violation.
func validateIdentityCells(row []string) error {
	cells := []struct {
		index int
		role  string
	}{
		{colPersonnel, "personnel number"},
		{colScheduling, "scheduling row"},
	}
	for _, c := range cells {
		if lines := splitCellLines(row[c.index]); len(lines) > 1 {
			return &MalformedCellError{Column: c.role, Lines: len(lines)}
		}
	}
	return nil
}

// firstLine returns the first non-empty line of a cell.
func firstLine(cell string) string {
	lines := splitCellLines(cell)
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

// collapseLines rejoins a wrapped cell into one whitespace-normalized line.
func collapseLines(cell string) string {
	return strings.Join(strings.Fields(cell), " ")
}

// cleanCode strips line breaks and surrounding whitespace from a day code.
func cleanCode(cell string) string {
	cell = strings.ReplaceAll(cell, "\n", "")
	cell = strings.ReplaceAll(cell, "\r", "")
	return strings.TrimSpace(cell)
}
