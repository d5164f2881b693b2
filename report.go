package roster

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Duty categories for train operations roster shifts.
const (
	DutyRRTS  = "Working Shift RRTS"
	DutyMRTS  = "Working Shift MRTS"
	DutyOther = "Other Shifts"
)

// Shift-code prefixes per corridor. HSB standby duties split by the letter
// after the prefix ("HSB A-1" is RRTS, "HSB M-2" is MRTS).
var (
	rrtsShifts = map[string]bool{"SR": true, "WDR": true, "RR": true, "HSB A": true, "HSB B": true}
	mrtsShifts = map[string]bool{"SM": true, "WDM": true, "HSB M": true}
)

// rosterLeaveCodes is the extended leave vocabulary of roster reports,
// longest first so embedded forms ("LMCL") resolve to the most specific
// code.
var rosterLeaveCodes = []string{"CL", "SL", "WL", "CO", "EL", "AP", "LM", "WO"}

var shiftCodePattern = regexp.MustCompile(`^([A-Za-z ]+-?\d+)`)
var shiftPrefixPattern = regexp.MustCompile(`^[A-Z]+`)

// IsRosterLeave reports whether a roster cell is a leave entry, including
// embedded forms like "LMCL".
func IsRosterLeave(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || code == MissingCode {
		return false
	}
	for _, leave := range rosterLeaveCodes {
		if strings.Contains(code, leave) {
			return true
		}
	}
	return false
}

// RosterLeaveType extracts the leave code from a roster cell. Exact matches
// win, then the longest embedded code ("LMCL" resolves to a known leave);
// unknown values fall back to their first two characters.
func RosterLeaveType(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "Unknown"
	}
	for _, leave := range rosterLeaveCodes {
		if code == leave {
			return leave
		}
	}
	longest := ""
	for _, leave := range rosterLeaveCodes {
		if strings.Contains(code, leave) && len(leave) > len(longest) {
			longest = leave
		}
	}
	if longest != "" {
		return longest
	}
	if len(code) >= 2 {
		return code[:2]
	}
	return code
}

// RosterShiftCode extracts the shift prefix from a duty value like "RR-01",
// "WDM-13" or "HSB A-1". Returns empty for blanks and values with no
// recognizable code.
func RosterShiftCode(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "\n", " "))
	value = strings.ReplaceAll(value, "\r", "")
	if value == "" {
		return ""
	}

	m := shiftCodePattern.FindStringSubmatch(value)
	if m == nil {
		return ""
	}
	code := strings.TrimSpace(m[1])

	if strings.HasPrefix(code, "HSB") {
		// Keep the standby letter: "HSB A-1" categorizes as "HSB A".
		if i := strings.IndexByte(code, '-'); i >= 0 {
			code = code[:i]
		}
		return strings.TrimSpace(code)
	}
	return shiftPrefixPattern.FindString(code)
}

// CategorizeShift maps a shift prefix to its duty category.
func CategorizeShift(shiftCode string) string {
	switch {
	case shiftCode == "":
		return DutyOther
	case rrtsShifts[shiftCode]:
		return DutyRRTS
	case mrtsShifts[shiftCode]:
		return DutyMRTS
	default:
		return DutyOther
	}
}

// RosterSummary holds document-level duty and leave totals.
type RosterSummary struct {
	TotalEmployees int
	Period         string
	TotalShifts    int
	TotalLeaves    int
	TotalRecords   int
}

// RosterDailyTrend is one day's duty and leave breakdown.
type RosterDailyTrend struct {
	Day         int
	TotalShifts int
	Leaves      map[string]int
	Blank       int
}

// RosterEmployeeDetail is one employee's duty and leave breakdown.
type RosterEmployeeDetail struct {
	Employee        string
	PersonnelNumber string
	RRTS            int
	MRTS            int
	OtherShifts     int
	Leaves          map[string]int
	Total           int
}

// RosterReport generates duty analysis for train operations roster data.
type RosterReport struct {
	dataset *AttendanceDataset
}

// NewRosterReport creates a report generator over an extracted dataset.
func NewRosterReport(d *AttendanceDataset) *RosterReport {
	return &RosterReport{dataset: d}
}

// Summary computes document-level totals.
func (g *RosterReport) Summary() RosterSummary {
	summary := RosterSummary{
		TotalEmployees: len(g.dataset.Records),
		Period:         fmt.Sprintf("%d days", g.dataset.DayCount),
	}

	blank := 0
	for _, r := range g.dataset.Records {
		for _, val := range r.DailyCodes {
			switch {
			case isBlankCode(val):
				blank++
			case IsRosterLeave(val):
				summary.TotalLeaves++
			default:
				summary.TotalShifts++
			}
		}
	}
	summary.TotalRecords = summary.TotalShifts + summary.TotalLeaves + blank
	return summary
}

// DailyTrends computes per-day duty counts and leave breakdowns.
func (g *RosterReport) DailyTrends() []RosterDailyTrend {
	trends := make([]RosterDailyTrend, 0, g.dataset.DayCount)
	for day := 0; day < g.dataset.DayCount; day++ {
		trend := RosterDailyTrend{Day: day + 1, Leaves: make(map[string]int)}
		for _, r := range g.dataset.Records {
			val := r.DailyCodes[day]
			switch {
			case isBlankCode(val):
				trend.Blank++
			case IsRosterLeave(val):
				trend.Leaves[RosterLeaveType(val)]++
			default:
				trend.TotalShifts++
			}
		}
		trends = append(trends, trend)
	}
	return trends
}

// ShiftAnalysis computes duty-category and leave-type totals.
func (g *RosterReport) ShiftAnalysis() (shifts map[string]int, leaves map[string]int) {
	shifts = map[string]int{DutyRRTS: 0, DutyMRTS: 0, DutyOther: 0}
	leaves = make(map[string]int)
	for _, r := range g.dataset.Records {
		for _, val := range r.DailyCodes {
			switch {
			case isBlankCode(val):
			case IsRosterLeave(val):
				leaves[RosterLeaveType(val)]++
			default:
				shifts[CategorizeShift(RosterShiftCode(val))]++
			}
		}
	}
	return shifts, leaves
}

// EmployeeDetails computes per-employee duty and leave breakdowns in record
// order. Every detail carries the same leave keys so the rows tabulate
// cleanly.
func (g *RosterReport) EmployeeDetails() []RosterEmployeeDetail {
	_, allLeaves := g.ShiftAnalysis()
	leaveTypes := make([]string, 0, len(allLeaves))
	for leave := range allLeaves {
		leaveTypes = append(leaveTypes, leave)
	}
	sort.Strings(leaveTypes)

	details := make([]RosterEmployeeDetail, 0, len(g.dataset.Records))
	for _, r := range g.dataset.Records {
		detail := RosterEmployeeDetail{
			Employee:        r.Employee,
			PersonnelNumber: r.PersonnelNumber,
			Leaves:          make(map[string]int, len(leaveTypes)),
		}
		for _, leave := range leaveTypes {
			detail.Leaves[leave] = 0
		}

		for _, val := range r.DailyCodes {
			switch {
			case isBlankCode(val):
			case IsRosterLeave(val):
				detail.Leaves[RosterLeaveType(val)]++
			default:
				switch CategorizeShift(RosterShiftCode(val)) {
				case DutyRRTS:
					detail.RRTS++
				case DutyMRTS:
					detail.MRTS++
				default:
					detail.OtherShifts++
				}
			}
		}

		detail.Total = detail.RRTS + detail.MRTS + detail.OtherShifts
		for _, n := range detail.Leaves {
			detail.Total += n
		}
		details = append(details, detail)
	}
	return details
}

func isBlankCode(val string) bool {
	val = strings.TrimSpace(val)
	return val == "" || val == MissingCode
}
