package roster

import "fmt"

// assemble validates the dataset-wide invariants over the mapped records
// and produces the final immutable dataset. Short records are padded to the
// document's day count with MissingCode (the locator strips trailing blank
// cells), and duplicate personnel numbers keep their first occurrence only.
// Both recoveries leave a warning so nothing is silently altered.
func assemble(kind LayoutKind, records []AttendanceRecord, warnings []Warning) *AttendanceDataset {
	dayCount := 0
	hasPaidTime := false
	for _, r := range records {
		if len(r.DailyCodes) > dayCount {
			dayCount = len(r.DailyCodes)
		}
		if r.PaidTime != nil {
			hasPaidTime = true
		}
	}

	seen := make(map[string]bool, len(records))
	kept := make([]AttendanceRecord, 0, len(records))
	for _, r := range records {
		if seen[r.PersonnelNumber] {
			warnings = append(warnings, Warning{
				Kind:            WarnDuplicateKey,
				PersonnelNumber: r.PersonnelNumber,
				Message:         "duplicate personnel number, keeping first occurrence",
			})
			continue
		}
		seen[r.PersonnelNumber] = true

		if len(r.DailyCodes) < dayCount {
			warnings = append(warnings, Warning{
				Kind:            WarnLengthMismatch,
				PersonnelNumber: r.PersonnelNumber,
				Message: fmt.Sprintf("record has %d day columns, padded to %d",
					len(r.DailyCodes), dayCount),
			})
			for len(r.DailyCodes) < dayCount {
				r.DailyCodes = append(r.DailyCodes, MissingCode)
			}
		}
		kept = append(kept, r)
	}

	return &AttendanceDataset{
		Layout:      kind,
		DayCount:    dayCount,
		HasPaidTime: hasPaidTime,
		Records:     kept,
		Warnings:    warnings,
	}
}
