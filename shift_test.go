package roster_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	roster "github.com/rockhard07/Attendance-roster"
)

func TestSplitShiftCell_ShiftWithTiming(t *testing.T) {
	shift, timing, ok := roster.SplitShiftCell("SR-14\n05:00-13:00")
	require.True(t, ok)
	require.Equal(t, "SR-14", shift)
	require.NotNil(t, timing)
	require.Equal(t, roster.TimeOfDay{Hour: 5}, timing.Start)
	require.Equal(t, roster.TimeOfDay{Hour: 13}, timing.End)
}

func TestSplitShiftCell_BadTimingKeepsShift(t *testing.T) {
	shift, timing, ok := roster.SplitShiftCell("SR-09\nmorning duty")
	require.False(t, ok)
	require.Equal(t, "SR-09", shift)
	require.Nil(t, timing)
}

func TestSplitShiftCell_SingleLineVerbatim(t *testing.T) {
	shift, timing, ok := roster.SplitShiftCell("WDR-03")
	require.True(t, ok)
	require.Equal(t, "WDR-03", shift)
	require.Nil(t, timing)
}

func TestSplitShiftCell_ThreeLinesVerbatim(t *testing.T) {
	shift, timing, ok := roster.SplitShiftCell("HSB A-1\n05:00-13:00\nrelief")
	require.True(t, ok)
	require.Equal(t, "HSB A-1\n05:00-13:00\nrelief", shift)
	require.Nil(t, timing)
}

func TestSplitShiftCell_TrimsWindowsLineEndings(t *testing.T) {
	shift, timing, ok := roster.SplitShiftCell("RR-01\r\n22:00-06:00")
	require.True(t, ok)
	require.Equal(t, "RR-01", shift)
	require.NotNil(t, timing)
	require.Equal(t, "22:00-06:00", timing.String())
}
