package roster_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	roster "github.com/rockhard07/Attendance-roster"
)

func TestParseAttendanceCode(t *testing.T) {
	tests := []struct {
		input string
		want  roster.ParsedCode
	}{
		{"M", roster.ParsedCode{Shift: "M", Raw: "M"}},
		{"m", roster.ParsedCode{Shift: "M", Raw: "M"}},
		{"M-NASH", roster.ParsedCode{Shift: "M", Station: "NASH", Raw: "M-NASH"}},
		{"N-RITH22:00-07:00", roster.ParsedCode{Shift: "N", Station: "RITH", Raw: "N-RITH22:00-07:00"}},
		{"SL", roster.ParsedCode{IsLeave: true, Raw: "SL"}},
		{"CL", roster.ParsedCode{IsLeave: true, Raw: "CL"}},
		{"PH", roster.ParsedCode{IsLeave: true, Raw: "PH"}},
		{"WO", roster.ParsedCode{IsWeeklyOff: true, Raw: "WO"}},
		{"WO-SUN", roster.ParsedCode{IsWeeklyOff: true, Raw: "WO-SUN"}},
		{"AB", roster.ParsedCode{IsAbsent: true, Raw: "AB"}},
		{"", roster.ParsedCode{}},
		{"--", roster.ParsedCode{}},
		{"X", roster.ParsedCode{Raw: "X"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.want, roster.ParseAttendanceCode(tt.input))
		})
	}
}

func analyzedDataset() *roster.AttendanceDataset {
	return &roster.AttendanceDataset{
		Layout:   roster.LayoutSimple,
		DayCount: 6,
		Records: []roster.AttendanceRecord{
			{
				Employee:        "SMITH JOHN",
				PersonnelNumber: "12345",
				DailyCodes:      []string{"M", "M-NASH", "WO", "SL", "AB", "E"},
			},
			{
				Employee:        "DOE JANE",
				PersonnelNumber: "12346",
				DailyCodes:      []string{"M", "E", "WO", "N", "G", "M"},
			},
		},
	}
}

func TestAnalyzerEmployeeStats(t *testing.T) {
	stats := roster.NewAnalyzer(analyzedDataset()).EmployeeStats()
	require.Len(t, stats, 2)

	s := stats[0]
	require.Equal(t, "12345", s.PersonnelNumber)
	require.Equal(t, 6, s.TotalDays)
	require.Equal(t, 3, s.PresentDays)
	require.Equal(t, 1, s.AbsentDays)
	require.Equal(t, 1, s.LeaveDays)
	require.Equal(t, 1, s.WeeklyOffs)
	// 3 present over (6 - 1 weekly off - 1 leave) expected working days.
	require.Equal(t, 75.0, s.AttendanceRate)
	require.Equal(t, []string{"NASH"}, s.Stations)
	require.Equal(t, "M", s.MostCommonShift())

	require.Equal(t, 100.0, stats[1].AttendanceRate)
	require.Empty(t, stats[1].Stations)
}

func TestAnalyzerEmployeeStats_SkipsEmptyDays(t *testing.T) {
	d := &roster.AttendanceDataset{
		Layout:   roster.LayoutSimple,
		DayCount: 4,
		Records: []roster.AttendanceRecord{
			{PersonnelNumber: "1", DailyCodes: []string{"M", "", "--", "E"}},
		},
	}
	s := roster.NewAnalyzer(d).EmployeeStats()[0]
	require.Equal(t, 2, s.TotalDays)
	require.Equal(t, 2, s.PresentDays)
	require.Equal(t, 100.0, s.AttendanceRate)
}

func TestAnalyzerDailyStats(t *testing.T) {
	daily := roster.NewAnalyzer(analyzedDataset()).DailyStats()
	require.Len(t, daily, 6)

	day3 := daily[2]
	require.Equal(t, 3, day3.Day)
	require.Equal(t, 2, day3.WeeklyOff)
	require.Equal(t, 0, day3.ExpectedWorking)
	require.Equal(t, 0.0, day3.AttendanceRate)

	day5 := daily[4]
	require.Equal(t, 1, day5.Present)
	require.Equal(t, 1, day5.Absent)
	require.Equal(t, 2, day5.ExpectedWorking)
	require.Equal(t, 50.0, day5.AttendanceRate)
}

func TestAnalyzerDailyStats_SkipsEmptyColumns(t *testing.T) {
	d := &roster.AttendanceDataset{
		Layout:   roster.LayoutSimple,
		DayCount: 3,
		Records: []roster.AttendanceRecord{
			{PersonnelNumber: "1", DailyCodes: []string{"M", "", "E"}},
			{PersonnelNumber: "2", DailyCodes: []string{"E", "", "M"}},
		},
	}
	daily := roster.NewAnalyzer(d).DailyStats()
	require.Len(t, daily, 2)
	require.Equal(t, 1, daily[0].Day)
	require.Equal(t, 3, daily[1].Day)
}

func TestAnalyzerShiftDistribution(t *testing.T) {
	shares := roster.NewAnalyzer(analyzedDataset()).ShiftDistribution()
	require.Len(t, shares, 4)

	byCode := map[string]roster.ShiftShare{}
	for _, s := range shares {
		byCode[s.Code] = s
	}
	require.Equal(t, 4, byCode["M"].Count)
	require.Equal(t, 2, byCode["E"].Count)
	require.Equal(t, 1, byCode["N"].Count)
	require.Equal(t, 1, byCode["G"].Count)
	require.Equal(t, 50.0, byCode["M"].Percentage)
}

func TestAnalyzerSummary(t *testing.T) {
	summary := roster.NewAnalyzer(analyzedDataset()).Summary()

	require.Equal(t, 2, summary.TotalEmployees)
	require.Equal(t, 87.5, summary.AverageAttendanceRate)
	require.Equal(t, 87.5, summary.MedianAttendanceRate)
	require.Equal(t, 75.0, summary.MinAttendanceRate)
	require.Equal(t, 100.0, summary.MaxAttendanceRate)
	require.Equal(t, 8, summary.TotalPresentDays)
	require.Equal(t, 1, summary.TotalAbsentDays)
	require.Equal(t, 1, summary.TotalLeaveDays)
	require.Equal(t, 2, summary.TotalWeeklyOffs)
	require.Equal(t, 1, summary.PerfectAttendance)
	require.Equal(t, 1, summary.Below80Percent)
	require.Equal(t, 1, summary.Below90Percent)
	require.Equal(t, 1, summary.Above95Percent)
}

func TestAnalyzerSummary_Empty(t *testing.T) {
	summary := roster.NewAnalyzer(&roster.AttendanceDataset{}).Summary()
	require.Zero(t, summary.TotalEmployees)
	require.Zero(t, summary.AverageAttendanceRate)
}
