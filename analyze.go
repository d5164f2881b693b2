package roster

import (
	"math"
	"sort"
	"strings"
)

// ShiftCodes are the working-day codes and their shift windows.
var ShiftCodes = map[string]string{
	"M": "Morning Shift (07:00-15:00)",
	"E": "Evening Shift (15:00-22:00)",
	"N": "Night Shift (22:00-07:00)",
	"G": "General Shift (09:00-17:00)",
}

// LeaveCodes are excluded from the attendance-rate denominator.
var LeaveCodes = map[string]string{
	"SL": "Sick Leave",
	"CL": "Casual Leave",
	"EL": "Earned Leave",
	"OH": "Off/Holiday",
	"CO": "Compensatory Off",
	"PH": "Public Holiday",
}

// ParsedCode is the interpretation of a single day-column value.
type ParsedCode struct {
	// Shift is "M", "E", "N" or "G" on a working day, empty otherwise.
	Shift string

	// Station is the duty location suffix of codes like "M-NASH", empty
	// when the code carries none.
	Station string

	IsLeave     bool
	IsAbsent    bool
	IsWeeklyOff bool

	// Raw is the uppercased, trimmed input.
	Raw string
}

// ParseAttendanceCode interprets one day cell. Codes come in several forms:
// bare shifts ("M"), shifts with a station ("M-NASH"), shifts with station
// and timing ("N-RITH22:00-07:00"), leave codes ("SL", also embedded as a
// prefix like "SLAB"), weekly offs ("WO") and absences ("AB"). Unknown
// codes and the missing sentinel parse as empty days.
func ParseAttendanceCode(code string) ParsedCode {
	raw := strings.ToUpper(strings.TrimSpace(code))
	parsed := ParsedCode{Raw: raw}
	if raw == "" || raw == MissingCode {
		parsed.Raw = ""
		return parsed
	}

	if raw == "WO" || strings.HasPrefix(raw, "WO-") || strings.HasPrefix(raw, "WO ") {
		parsed.IsWeeklyOff = true
		return parsed
	}
	if raw == "AB" || strings.HasPrefix(raw, "AB-") || strings.HasPrefix(raw, "AB ") {
		parsed.IsAbsent = true
		return parsed
	}
	for leave := range LeaveCodes {
		if strings.HasPrefix(raw, leave) {
			parsed.IsLeave = true
			return parsed
		}
	}

	first := raw[:1]
	if _, ok := ShiftCodes[first]; ok {
		parsed.Shift = first
		parsed.Station = stationSuffix(raw)
	}
	return parsed
}

// stationSuffix extracts the station name from codes like "M-NASH" or
// "N-RITH22:00-07:00": everything after the first hyphen, cut before any
// inline timing.
func stationSuffix(raw string) string {
	i := strings.IndexByte(raw, '-')
	if i < 0 || i+1 == len(raw) {
		return ""
	}
	station := raw[i+1:]
	if j := strings.IndexByte(station, ':'); j >= 0 {
		station = station[:j]
		// Timing hours glue onto the station name ("RITH22"), strip them.
		station = strings.TrimRight(station, "0123456789")
	}
	return station
}

// EmployeeStats summarizes one employee's month.
type EmployeeStats struct {
	Employee        string
	PersonnelNumber string

	// TotalDays counts day columns carrying data, not calendar days.
	TotalDays   int
	PresentDays int
	AbsentDays  int
	LeaveDays   int
	WeeklyOffs  int

	// AttendanceRate is present days over expected working days
	// (total minus weekly offs minus leaves), as a percentage.
	AttendanceRate float64

	// ShiftDays counts worked days per shift code.
	ShiftDays map[string]int

	// Stations lists the duty locations seen, sorted.
	Stations []string
}

// MostCommonShift returns the shift code worked most often, empty when the
// employee worked no shifts.
func (s EmployeeStats) MostCommonShift() string {
	best, bestCount := "", 0
	for _, code := range []string{"M", "E", "N", "G"} {
		if s.ShiftDays[code] > bestCount {
			best, bestCount = code, s.ShiftDays[code]
		}
	}
	return best
}

// DailyStats summarizes one day column across all employees.
type DailyStats struct {
	Day             int
	Present         int
	Absent          int
	OnLeave         int
	WeeklyOff       int
	ExpectedWorking int
	AttendanceRate  float64
}

// ShiftShare is one row of the document-wide shift distribution.
type ShiftShare struct {
	Code       string
	Name       string
	Count      int
	Percentage float64
}

// Summary holds document-level attendance insights.
type Summary struct {
	TotalEmployees        int
	AverageAttendanceRate float64
	MedianAttendanceRate  float64
	MinAttendanceRate     float64
	MaxAttendanceRate     float64
	TotalPresentDays      int
	TotalAbsentDays       int
	TotalLeaveDays        int
	TotalWeeklyOffs       int
	PerfectAttendance     int
	Below80Percent        int
	Below90Percent        int
	Above95Percent        int
}

// Analyzer computes attendance statistics over an extracted dataset.
type Analyzer struct {
	dataset *AttendanceDataset
}

// NewAnalyzer creates an analyzer over a dataset.
func NewAnalyzer(d *AttendanceDataset) *Analyzer {
	return &Analyzer{dataset: d}
}

// EmployeeStats computes per-employee statistics in record order.
func (a *Analyzer) EmployeeStats() []EmployeeStats {
	stats := make([]EmployeeStats, 0, len(a.dataset.Records))
	for _, r := range a.dataset.Records {
		stats = append(stats, employeeStats(r))
	}
	return stats
}

func employeeStats(r AttendanceRecord) EmployeeStats {
	s := EmployeeStats{
		Employee:        r.Employee,
		PersonnelNumber: r.PersonnelNumber,
		ShiftDays:       make(map[string]int),
	}

	stations := make(map[string]bool)
	for _, code := range r.DailyCodes {
		parsed := ParseAttendanceCode(code)
		if parsed.Raw == "" {
			continue
		}
		s.TotalDays++
		switch {
		case parsed.IsWeeklyOff:
			s.WeeklyOffs++
		case parsed.IsLeave:
			s.LeaveDays++
		case parsed.IsAbsent:
			s.AbsentDays++
		case parsed.Shift != "":
			s.PresentDays++
			s.ShiftDays[parsed.Shift]++
			if parsed.Station != "" {
				stations[parsed.Station] = true
			}
		}
	}

	if expected := s.TotalDays - s.WeeklyOffs - s.LeaveDays; expected > 0 {
		s.AttendanceRate = round2(float64(s.PresentDays) / float64(expected) * 100)
	}
	for station := range stations {
		s.Stations = append(s.Stations, station)
	}
	sort.Strings(s.Stations)
	return s
}

// DailyStats computes per-day statistics, skipping day columns with no data.
func (a *Analyzer) DailyStats() []DailyStats {
	var daily []DailyStats
	for day := 0; day < a.dataset.DayCount; day++ {
		d := DailyStats{Day: day + 1}
		hasData := false
		for _, r := range a.dataset.Records {
			parsed := ParseAttendanceCode(r.DailyCodes[day])
			if parsed.Raw == "" {
				continue
			}
			hasData = true
			switch {
			case parsed.IsWeeklyOff:
				d.WeeklyOff++
			case parsed.IsLeave:
				d.OnLeave++
			case parsed.IsAbsent:
				d.Absent++
			case parsed.Shift != "":
				d.Present++
			}
		}
		if !hasData {
			continue
		}
		d.ExpectedWorking = len(a.dataset.Records) - d.WeeklyOff - d.OnLeave
		if d.ExpectedWorking > 0 {
			d.AttendanceRate = round2(float64(d.Present) / float64(d.ExpectedWorking) * 100)
		}
		daily = append(daily, d)
	}
	return daily
}

// ShiftDistribution computes the document-wide share of each shift code.
func (a *Analyzer) ShiftDistribution() []ShiftShare {
	counts := make(map[string]int)
	total := 0
	for _, r := range a.dataset.Records {
		for _, code := range r.DailyCodes {
			if parsed := ParseAttendanceCode(code); parsed.Shift != "" {
				counts[parsed.Shift]++
				total++
			}
		}
	}

	shares := make([]ShiftShare, 0, len(ShiftCodes))
	for _, code := range []string{"M", "E", "N", "G"} {
		share := ShiftShare{Code: code, Name: ShiftCodes[code], Count: counts[code]}
		if total > 0 {
			share.Percentage = round2(float64(counts[code]) / float64(total) * 100)
		}
		shares = append(shares, share)
	}
	return shares
}

// Summary computes document-level insights over all employees.
func (a *Analyzer) Summary() Summary {
	stats := a.EmployeeStats()
	summary := Summary{TotalEmployees: len(stats)}
	if len(stats) == 0 {
		return summary
	}

	rates := make([]float64, 0, len(stats))
	for _, s := range stats {
		rates = append(rates, s.AttendanceRate)
		summary.TotalPresentDays += s.PresentDays
		summary.TotalAbsentDays += s.AbsentDays
		summary.TotalLeaveDays += s.LeaveDays
		summary.TotalWeeklyOffs += s.WeeklyOffs
		if s.AttendanceRate == 100 {
			summary.PerfectAttendance++
		}
		if s.AttendanceRate < 80 {
			summary.Below80Percent++
		}
		if s.AttendanceRate < 90 {
			summary.Below90Percent++
		}
		if s.AttendanceRate >= 95 {
			summary.Above95Percent++
		}
	}

	sort.Float64s(rates)
	sum := 0.0
	for _, rate := range rates {
		sum += rate
	}
	summary.AverageAttendanceRate = round2(sum / float64(len(rates)))
	summary.MedianAttendanceRate = median(rates)
	summary.MinAttendanceRate = rates[0]
	summary.MaxAttendanceRate = rates[len(rates)-1]
	return summary
}

// median expects a sorted slice.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return round2((sorted[n/2-1] + sorted[n/2]) / 2)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
