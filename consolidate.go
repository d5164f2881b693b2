package roster

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// ReportPeriod is the calendar month a report covers.
type ReportPeriod struct {
	Year  int
	Month time.Month
}

// String formats the period as "January 2025".
func (p ReportPeriod) String() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

var yearPattern = regexp.MustCompile(`\b(20\d{2})\b`)

// ParseReportFilename extracts the covered month and year from a report
// filename. Reports are named like "APR_2025_SO-SC.pdf" or "Nov BCC-DC.pdf";
// the month is matched by name prefix against any token and the year falls
// back to defaultYear when the filename carries none.
func ParseReportFilename(name string, defaultYear int) (ReportPeriod, error) {
	base := name
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}

	period := ReportPeriod{Year: defaultYear}
	if m := yearPattern.FindString(base); m != "" {
		period.Year, _ = strconv.Atoi(m)
	}

	for _, token := range strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	}) {
		if month, ok := matchMonth(token); ok {
			period.Month = month
			return period, nil
		}
	}
	return ReportPeriod{}, errors.Errorf("no month name found in filename %q", name)
}

// matchMonth matches a filename token against month names. Three letters or
// more are enough ("apr", "april", "sept").
func matchMonth(token string) (time.Month, bool) {
	token = strings.ToLower(token)
	if len(token) < 3 {
		return 0, false
	}
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if strings.HasPrefix(name, token) || strings.HasPrefix(token, name[:3]) {
			return m, true
		}
	}
	return 0, false
}

type consolidatedEntry struct {
	period  ReportPeriod
	dataset *AttendanceDataset
}

// Consolidator merges monthly datasets of the same layout into one workbook
// with a sheet per year, each row tagged with its reporting month.
type Consolidator struct {
	entries []consolidatedEntry
}

// NewConsolidator creates an empty consolidator.
func NewConsolidator() *Consolidator {
	return &Consolidator{}
}

// Add registers a dataset for the given period. All added datasets must
// share one layout; mixing trip charts with plain attendance data would
// produce rows with incompatible columns.
func (c *Consolidator) Add(period ReportPeriod, d *AttendanceDataset) error {
	if len(c.entries) > 0 && d.Layout != c.entries[0].dataset.Layout {
		return errors.Errorf("layout mismatch: consolidator holds %s data, got %s",
			c.entries[0].dataset.Layout, d.Layout)
	}
	c.entries = append(c.entries, consolidatedEntry{period: period, dataset: d})
	return nil
}

// Len returns the number of datasets added so far.
func (c *Consolidator) Len() int {
	return len(c.entries)
}

// WriteXLSX writes the consolidated workbook. Sheets are named by year in
// ascending order; within a sheet rows are sorted chronologically by month.
// Day columns are unified to the widest dataset, shorter ones padded with
// the missing sentinel.
func (c *Consolidator) WriteXLSX(w io.Writer) error {
	if len(c.entries) == 0 {
		return errors.New("nothing to consolidate")
	}

	sort.SliceStable(c.entries, func(i, j int) bool {
		a, b := c.entries[i].period, c.entries[j].period
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})

	// Union shape across all datasets.
	shape := &AttendanceDataset{Layout: c.entries[0].dataset.Layout}
	for _, e := range c.entries {
		if e.dataset.DayCount > shape.DayCount {
			shape.DayCount = e.dataset.DayCount
		}
		if e.dataset.HasPaidTime {
			shape.HasPaidTime = true
		}
	}
	header := append([]string{"Year", "Month", "Month_Num"}, shape.Columns()...)

	f := excelize.NewFile()
	defer f.Close()

	rowIdx := map[int]int{}
	for _, e := range c.entries {
		sheet := strconv.Itoa(e.period.Year)
		if _, ok := rowIdx[e.period.Year]; !ok {
			if _, err := f.NewSheet(sheet); err != nil {
				return errors.Wrapf(err, "failed to create sheet %s", sheet)
			}
			if err := setRow(f, sheet, 1, header); err != nil {
				return err
			}
			rowIdx[e.period.Year] = 2
		}
		for _, r := range e.dataset.Records {
			values := append([]string{
				strconv.Itoa(e.period.Year),
				e.period.Month.String(),
				strconv.Itoa(int(e.period.Month)),
			}, paddedRowValues(shape, r)...)
			if err := setRow(f, sheet, rowIdx[e.period.Year], values); err != nil {
				return err
			}
			rowIdx[e.period.Year]++
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.Wrap(err, "failed to remove default sheet")
	}
	return errors.Wrap(f.Write(w), "failed to write workbook")
}

// paddedRowValues renders a record against the union shape, padding its day
// codes to the widest dataset.
func paddedRowValues(shape *AttendanceDataset, r AttendanceRecord) []string {
	for len(r.DailyCodes) < shape.DayCount {
		r.DailyCodes = append(r.DailyCodes, MissingCode)
	}
	return shape.rowValues(r)
}

// setRow writes one row of string values starting at column A.
func setRow(f *excelize.File, sheet string, rowIdx int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return errors.Wrap(err, "failed to build cell name")
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return errors.Wrapf(f.SetSheetRow(sheet, cell, &row), "failed to write row %d of %s", rowIdx, sheet)
}
