package roster_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	roster "github.com/rockhard07/Attendance-roster"
)

func TestRosterShiftCode(t *testing.T) {
	tests := map[string]string{
		"RR-01":              "RR",
		"SR-14":              "SR",
		"SM-05":              "SM",
		"WDR-22":             "WDR",
		"WDM-13":             "WDM",
		"HSB A-1":            "HSB A",
		"HSB M-2":            "HSB M",
		"SR-14\n05:00-13:00": "SR",
		"":                   "",
		"??":                 "",
	}
	for input, want := range tests {
		require.Equal(t, want, roster.RosterShiftCode(input), "input %q", input)
	}
}

func TestCategorizeShift(t *testing.T) {
	require.Equal(t, roster.DutyRRTS, roster.CategorizeShift("SR"))
	require.Equal(t, roster.DutyRRTS, roster.CategorizeShift("HSB A"))
	require.Equal(t, roster.DutyRRTS, roster.CategorizeShift("HSB B"))
	require.Equal(t, roster.DutyMRTS, roster.CategorizeShift("SM"))
	require.Equal(t, roster.DutyMRTS, roster.CategorizeShift("WDM"))
	require.Equal(t, roster.DutyMRTS, roster.CategorizeShift("HSB M"))
	require.Equal(t, roster.DutyOther, roster.CategorizeShift("XYZ"))
	require.Equal(t, roster.DutyOther, roster.CategorizeShift(""))
}

func TestRosterLeaveDetection(t *testing.T) {
	require.True(t, roster.IsRosterLeave("CL"))
	require.True(t, roster.IsRosterLeave("WO"))
	require.True(t, roster.IsRosterLeave("LMCL"))
	require.False(t, roster.IsRosterLeave("SR-14"))
	require.False(t, roster.IsRosterLeave(""))
	require.False(t, roster.IsRosterLeave("--"))

	require.Equal(t, "CL", roster.RosterLeaveType("CL"))
	require.Equal(t, "WO", roster.RosterLeaveType("WO"))
	require.Equal(t, "CL", roster.RosterLeaveType("LMCL"))
	require.Equal(t, "ZZ", roster.RosterLeaveType("ZZZZ"))
}

func rosterDataset() *roster.AttendanceDataset {
	return &roster.AttendanceDataset{
		Layout:   roster.LayoutSimple,
		DayCount: 4,
		Records: []roster.AttendanceRecord{
			{
				Employee:        "KUMAR A",
				PersonnelNumber: "55501",
				DailyCodes:      []string{"SR-14", "RR-01", "CL", "WO"},
			},
			{
				Employee:        "SINGH B",
				PersonnelNumber: "55502",
				DailyCodes:      []string{"SM-05", "WDM-13", "SR-02", "--"},
			},
		},
	}
}

func TestRosterReportSummary(t *testing.T) {
	summary := roster.NewRosterReport(rosterDataset()).Summary()

	require.Equal(t, 2, summary.TotalEmployees)
	require.Equal(t, "4 days", summary.Period)
	require.Equal(t, 5, summary.TotalShifts)
	require.Equal(t, 2, summary.TotalLeaves)
	require.Equal(t, 8, summary.TotalRecords)
}

func TestRosterReportShiftAnalysis(t *testing.T) {
	shifts, leaves := roster.NewRosterReport(rosterDataset()).ShiftAnalysis()

	require.Equal(t, 3, shifts[roster.DutyRRTS])
	require.Equal(t, 2, shifts[roster.DutyMRTS])
	require.Equal(t, 0, shifts[roster.DutyOther])
	require.Equal(t, map[string]int{"CL": 1, "WO": 1}, leaves)
}

func TestRosterReportDailyTrends(t *testing.T) {
	trends := roster.NewRosterReport(rosterDataset()).DailyTrends()
	require.Len(t, trends, 4)

	require.Equal(t, 1, trends[0].Day)
	require.Equal(t, 2, trends[0].TotalShifts)
	require.Empty(t, trends[0].Leaves)

	require.Equal(t, 1, trends[2].TotalShifts)
	require.Equal(t, map[string]int{"CL": 1}, trends[2].Leaves)

	require.Equal(t, 0, trends[3].TotalShifts)
	require.Equal(t, map[string]int{"WO": 1}, trends[3].Leaves)
	require.Equal(t, 1, trends[3].Blank)
}

func TestRosterReportEmployeeDetails(t *testing.T) {
	details := roster.NewRosterReport(rosterDataset()).EmployeeDetails()
	require.Len(t, details, 2)

	first := details[0]
	require.Equal(t, "55501", first.PersonnelNumber)
	require.Equal(t, 2, first.RRTS)
	require.Equal(t, 0, first.MRTS)
	require.Equal(t, map[string]int{"CL": 1, "WO": 1}, first.Leaves)
	require.Equal(t, 4, first.Total)

	second := details[1]
	require.Equal(t, 2, second.MRTS)
	require.Equal(t, 1, second.RRTS)
	require.Equal(t, map[string]int{"CL": 0, "WO": 0}, second.Leaves)
	require.Equal(t, 3, second.Total)
}
