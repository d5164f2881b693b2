package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names match the original report tooling.
const (
	sheetSimple    = "Attendance Data"
	sheetTripChart = "Trip Chart Data"
)

// SheetName returns the worksheet name used when exporting a layout.
func SheetName(kind LayoutKind) string {
	if kind == LayoutTripChart {
		return sheetTripChart
	}
	return sheetSimple
}

// Columns returns the export header for this dataset: Employee,
// Personnel_Number, Scheduling_Row, then Shift/Shift_Timings for trip
// charts, Paid_Time when detected, then Day_1..Day_N.
func (d *AttendanceDataset) Columns() []string {
	cols := []string{"Employee", "Personnel_Number", "Scheduling_Row"}
	if d.Layout == LayoutTripChart {
		cols = append(cols, "Shift", "Shift_Timings")
	}
	if d.HasPaidTime {
		cols = append(cols, "Paid_Time")
	}
	for i := 1; i <= d.DayCount; i++ {
		cols = append(cols, fmt.Sprintf("Day_%d", i))
	}
	return cols
}

// rowValues renders one record in the dataset's column order.
func (d *AttendanceDataset) rowValues(r AttendanceRecord) []string {
	row := []string{r.Employee, r.PersonnelNumber, r.SchedulingRow}
	if d.Layout == LayoutTripChart {
		timing := ""
		if r.ShiftTiming != nil {
			timing = r.ShiftTiming.String()
		}
		row = append(row, r.Shift, timing)
	}
	if d.HasPaidTime {
		paid := ""
		if r.PaidTime != nil {
			paid = r.PaidTime.String()
		}
		row = append(row, paid)
	}
	return append(row, r.DailyCodes...)
}

// WriteXLSX serializes the dataset as a single-sheet workbook, one record
// per row.
func WriteXLSX(d *AttendanceDataset, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(d.Layout)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.Wrap(err, "failed to name sheet")
	}
	if err := writeSheet(f, sheet, d); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to write workbook")
	}
	return nil
}

// writeSheet writes the dataset's header and rows into a worksheet.
func writeSheet(f *excelize.File, sheet string, d *AttendanceDataset) error {
	if err := setRow(f, sheet, 1, d.Columns()); err != nil {
		return err
	}
	for i, r := range d.Records {
		if err := setRow(f, sheet, i+2, d.rowValues(r)); err != nil {
			return err
		}
	}
	return nil
}

// ReadXLSX reads a workbook produced by WriteXLSX back into a dataset.
// Warnings are not serialized and do not round-trip.
func ReadXLSX(r io.Reader) (*AttendanceDataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %s", sheets[0])
	}
	return datasetFromRows(rows)
}

// WriteCSV serializes the dataset with the same column contract as the
// workbook export.
func WriteCSV(d *AttendanceDataset, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Columns()); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	for _, r := range d.Records {
		if err := cw.Write(d.rowValues(r)); err != nil {
			return errors.Wrap(err, "failed to write record")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to flush csv")
}

// ReadCSV reads a file produced by WriteCSV back into a dataset.
func ReadCSV(r io.Reader) (*AttendanceDataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv")
	}
	return datasetFromRows(rows)
}

// datasetFromRows rebuilds a dataset from exported header + data rows.
func datasetFromRows(rows [][]string) (*AttendanceDataset, error) {
	if len(rows) == 0 {
		return nil, errors.New("exported file has no header row")
	}
	header := rows[0]

	layout := LayoutSimple
	hasPaidTime := false
	dayCount := 0
	for _, col := range header {
		switch {
		case col == "Shift":
			layout = LayoutTripChart
		case col == "Paid_Time":
			hasPaidTime = true
		case strings.HasPrefix(col, "Day_"):
			dayCount++
		}
	}

	cellAt := func(row []string, i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	d := &AttendanceDataset{Layout: layout, DayCount: dayCount, HasPaidTime: hasPaidTime}
	for _, row := range rows[1:] {
		col := 0
		next := func() string {
			v := cellAt(row, col)
			col++
			return v
		}

		r := AttendanceRecord{
			Employee:        next(),
			PersonnelNumber: next(),
			SchedulingRow:   next(),
		}
		if layout == LayoutTripChart {
			r.Shift = next()
			if timing := next(); timing != "" {
				tr, err := ParseTimeRange(timing)
				if err != nil {
					return nil, errors.Wrapf(err, "record %s", r.PersonnelNumber)
				}
				r.ShiftTiming = &tr
			}
		}
		if hasPaidTime {
			if paid := next(); paid != "" {
				v, err := decimal.NewFromString(paid)
				if err != nil {
					return nil, errors.Wrapf(err, "record %s has invalid paid time", r.PersonnelNumber)
				}
				r.PaidTime = &v
			}
		}
		for i := 0; i < dayCount; i++ {
			r.DailyCodes = append(r.DailyCodes, next())
		}
		d.Records = append(d.Records, r)
	}
	return d, nil
}
