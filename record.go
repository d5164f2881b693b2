package roster

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DepartmentHint is the caller-declared report type. The hint is
// authoritative: it selects the column layout, it is never inferred from
// table content.
type DepartmentHint int

const (
	HintStations DepartmentHint = iota
	HintOCC
	HintTrainOpsTripChart
	HintTrainOpsRoster
)

// String returns the human-readable department name.
func (h DepartmentHint) String() string {
	switch h {
	case HintStations:
		return "Stations"
	case HintOCC:
		return "OCC"
	case HintTrainOpsTripChart:
		return "Train Operations (Trip Chart)"
	case HintTrainOpsRoster:
		return "Train Operations (Roster)"
	default:
		return fmt.Sprintf("DepartmentHint(%d)", int(h))
	}
}

// Layout returns the record shape the hint's tables encode.
func (h DepartmentHint) Layout() LayoutKind {
	if h == HintTrainOpsTripChart {
		return LayoutTripChart
	}
	return LayoutSimple
}

// ParseDepartmentHint parses a department name as accepted by the CLI.
func ParseDepartmentHint(s string) (DepartmentHint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stations":
		return HintStations, nil
	case "occ":
		return HintOCC, nil
	case "tripchart", "trip-chart", "trip_chart":
		return HintTrainOpsTripChart, nil
	case "roster", "trainops", "train-ops":
		return HintTrainOpsRoster, nil
	default:
		return 0, errors.Errorf("unknown department %q (want stations, occ, tripchart or roster)", s)
	}
}

// LayoutKind identifies which record shape a document's tables encode.
// It is chosen once per extraction and held for the whole run.
type LayoutKind int

const (
	// LayoutSimple covers Stations, OCC and Train Operations roster
	// reports: identity columns followed directly by day columns.
	LayoutSimple LayoutKind = iota

	// LayoutTripChart covers Train Operations trip charts, which carry a
	// combined shift + timing column before the day columns.
	LayoutTripChart
)

// String returns the layout name.
func (k LayoutKind) String() string {
	if k == LayoutTripChart {
		return "TripChart"
	}
	return "Simple"
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// String formats the time as HH:MM.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay parses "H:MM" or "HH:MM".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return TimeOfDay{}, errors.Wrapf(err, "invalid time of day %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, errors.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// TimeRange is a shift timing window.
type TimeRange struct {
	Start TimeOfDay
	End   TimeOfDay
}

// String formats the range as HH:MM-HH:MM.
func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// ParseTimeRange parses "HH:MM-HH:MM".
func ParseTimeRange(s string) (TimeRange, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return TimeRange{}, errors.Errorf("invalid timing range %q", s)
	}
	start, err := ParseTimeOfDay(parts[0])
	if err != nil {
		return TimeRange{}, err
	}
	end, err := ParseTimeOfDay(parts[1])
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: start, End: end}, nil
}

// MissingCode is the sentinel written into day columns that the table
// locator stripped as trailing blanks.
const MissingCode = "--"

// AttendanceRecord is the canonical per-employee unit.
type AttendanceRecord struct {
	Employee        string
	PersonnelNumber string
	SchedulingRow   string

	// Shift and ShiftTiming are populated only for trip-chart layouts.
	// ShiftTiming is nil when the timing line was absent or unparseable.
	Shift       string
	ShiftTiming *TimeRange

	// PaidTime is the total compensated hours for the reporting period,
	// set only when a trailing paid-time column was detected.
	PaidTime *decimal.Decimal

	// DailyCodes holds one attendance code per calendar day column, in
	// chronological order. Every record in a dataset has the same length.
	DailyCodes []string
}

// WarningKind classifies a non-fatal extraction issue.
type WarningKind int

const (
	WarnMalformedLayout WarningKind = iota
	WarnMalformedCell
	WarnShiftTiming
	WarnLengthMismatch
	WarnDuplicateKey
)

// String returns the warning kind name.
func (k WarningKind) String() string {
	switch k {
	case WarnMalformedLayout:
		return "MalformedLayout"
	case WarnMalformedCell:
		return "MalformedCell"
	case WarnShiftTiming:
		return "ShiftTiming"
	case WarnLengthMismatch:
		return "LengthMismatch"
	case WarnDuplicateKey:
		return "DuplicateKey"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning records a dropped row, padded record or degraded parse so the
// caller can surface it instead of silently hiding it.
type Warning struct {
	Kind            WarningKind
	Page            int    // Page the owning table was found on, 0 if unknown
	PersonnelNumber string // Affected record, empty for table-level warnings
	Message         string
}

// String formats the warning for display.
func (w Warning) String() string {
	var b strings.Builder
	b.WriteString(w.Kind.String())
	if w.Page > 0 {
		fmt.Fprintf(&b, " (page %d)", w.Page)
	}
	if w.PersonnelNumber != "" {
		fmt.Fprintf(&b, " [%s]", w.PersonnelNumber)
	}
	b.WriteString(": ")
	b.WriteString(w.Message)
	return b.String()
}

// AttendanceDataset is the assembled output of one extraction: one record
// per employee, all sharing the same layout and day-column count. It is
// immutable once returned.
type AttendanceDataset struct {
	Layout      LayoutKind
	DayCount    int
	HasPaidTime bool
	Records     []AttendanceRecord
	Warnings    []Warning
}
