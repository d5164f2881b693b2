package roster_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	roster "github.com/rockhard07/Attendance-roster"
)

func tableWithColumns(n int) roster.RawTable {
	row := make([]string, n)
	for i := range row {
		row[i] = "x"
	}
	return roster.RawTable{Page: 1, Rows: [][]string{row, row}}
}

func TestClassify_SimpleLayouts(t *testing.T) {
	for _, hint := range []roster.DepartmentHint{roster.HintStations, roster.HintOCC, roster.HintTrainOpsRoster} {
		kind, err := roster.Classify(tableWithColumns(4), hint)
		require.NoError(t, err)
		require.Equal(t, roster.LayoutSimple, kind)
	}
}

func TestClassify_TripChart(t *testing.T) {
	kind, err := roster.Classify(tableWithColumns(5), roster.HintTrainOpsTripChart)
	require.NoError(t, err)
	require.Equal(t, roster.LayoutTripChart, kind)
}

func TestClassify_TooFewColumns(t *testing.T) {
	_, err := roster.Classify(tableWithColumns(3), roster.HintStations)
	require.Error(t, err)

	var layoutErr *roster.MalformedLayoutError
	require.True(t, errors.As(err, &layoutErr))
	require.Equal(t, 3, layoutErr.Columns)
	require.Equal(t, 4, layoutErr.MinColumns)
	require.Equal(t, 1, layoutErr.Page)
}

func TestClassify_TripChartNeedsShiftColumn(t *testing.T) {
	// Four columns are enough for a simple layout but not a trip chart.
	_, err := roster.Classify(tableWithColumns(4), roster.HintTrainOpsTripChart)
	require.Error(t, err)

	var layoutErr *roster.MalformedLayoutError
	require.True(t, errors.As(err, &layoutErr))
	require.Equal(t, 5, layoutErr.MinColumns)
}
