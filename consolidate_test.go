package roster_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	roster "github.com/rockhard07/Attendance-roster"
)

func TestParseReportFilename(t *testing.T) {
	tests := []struct {
		name string
		want roster.ReportPeriod
	}{
		{"APR_2025_SO-SC.pdf", roster.ReportPeriod{Year: 2025, Month: time.April}},
		{"Nov BCC-DC.pdf", roster.ReportPeriod{Year: 2024, Month: time.November}},
		{"sept_attendance.pdf", roster.ReportPeriod{Year: 2024, Month: time.September}},
		{"OCT_2025_SO-SC.pdf", roster.ReportPeriod{Year: 2025, Month: time.October}},
		{"january-2023.xlsx", roster.ReportPeriod{Year: 2023, Month: time.January}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, err := roster.ParseReportFilename(tt.name, 2024)
			require.NoError(t, err)
			require.Equal(t, tt.want, period)
		})
	}
}

func TestParseReportFilename_NoMonth(t *testing.T) {
	_, err := roster.ParseReportFilename("attendance_report.pdf", 2024)
	require.Error(t, err)
}

func monthlyDataset(t *testing.T, personnel string) *roster.AttendanceDataset {
	t.Helper()
	table := roster.RawTable{
		Page: 1,
		Rows: [][]string{{"SMITH JOHN", personnel, "A-1", "M", "E", "WO"}},
	}
	return roster.BuildDataset([]roster.RawTable{table}, roster.HintStations, roster.DefaultConfig())
}

func TestConsolidator_RejectsMixedLayouts(t *testing.T) {
	c := roster.NewConsolidator()
	require.NoError(t, c.Add(roster.ReportPeriod{Year: 2025, Month: time.April}, monthlyDataset(t, "12345")))

	trip := &roster.AttendanceDataset{Layout: roster.LayoutTripChart, DayCount: 3}
	err := c.Add(roster.ReportPeriod{Year: 2025, Month: time.May}, trip)
	require.Error(t, err)
	require.Contains(t, err.Error(), "layout mismatch")
}

func TestConsolidator_YearSheets(t *testing.T) {
	c := roster.NewConsolidator()
	require.NoError(t, c.Add(roster.ReportPeriod{Year: 2025, Month: time.April}, monthlyDataset(t, "12345")))
	require.NoError(t, c.Add(roster.ReportPeriod{Year: 2024, Month: time.December}, monthlyDataset(t, "12346")))
	require.NoError(t, c.Add(roster.ReportPeriod{Year: 2025, Month: time.January}, monthlyDataset(t, "12347")))
	require.Equal(t, 3, c.Len())

	var buf bytes.Buffer
	require.NoError(t, c.WriteXLSX(&buf))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	require.ElementsMatch(t, []string{"2024", "2025"}, f.GetSheetList())

	rows, err := f.GetRows("2025")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Year", "Month", "Month_Num"}, rows[0][:3])

	// January sorts before April.
	require.Equal(t, "January", rows[1][1])
	require.Equal(t, "1", rows[1][2])
	require.Equal(t, "12347", rows[1][4])
	require.Equal(t, "April", rows[2][1])

	rows, err = f.GetRows("2024")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "December", rows[1][1])
	require.Equal(t, "12", rows[1][2])
}

func TestConsolidator_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, roster.NewConsolidator().WriteXLSX(&buf))
}
