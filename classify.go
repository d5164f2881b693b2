package roster

// Identity columns are employee name, personnel number and scheduling row.
// A classifiable table needs those plus at least one day column; trip
// charts additionally carry the combined shift column.
const (
	minColumnsSimple    = 4
	minColumnsTripChart = 5
)

// Classify decides which record shape a located table encodes. The
// department hint is authoritative; classification only verifies the table
// is wide enough for the declared hint. Failure aborts extraction for this
// table, other tables in the document may still succeed.
func Classify(table RawTable, hint DepartmentHint) (LayoutKind, error) {
	kind := hint.Layout()
	min := minColumnsSimple
	if kind == LayoutTripChart {
		min = minColumnsTripChart
	}
	if cols := table.ColumnCount(); cols < min {
		return 0, &MalformedLayoutError{
			Page:       table.Page,
			Hint:       hint,
			Columns:    cols,
			MinColumns: min,
		}
	}
	return kind, nil
}
