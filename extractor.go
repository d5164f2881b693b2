package roster

import (
	"log"
	"os"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/pkg/errors"
)

// Config controls extraction behavior.
type Config struct {
	// TableSettings configures table detection (default: DefaultTableSettings()).
	TableSettings TableSettings

	// PaidTimeParser decides whether a trailing column value is a paid-time
	// total and converts it to hours (default: ParsePaidTime).
	PaidTimeParser DurationParser

	// EnableMetricsLogging logs timing and dataset statistics (default: false).
	EnableMetricsLogging bool
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() Config {
	return Config{
		TableSettings:  DefaultTableSettings(),
		PaidTimeParser: ParsePaidTime,
	}
}

// Extractor converts attendance report PDFs into datasets using pdfium
// text extraction. One Extractor may serve many documents, but each Extract
// call is an independent, self-contained invocation: no state is shared
// between calls and identical input always yields an identical dataset.
type Extractor struct {
	instance pdfium.Pdfium
	config   Config
}

// NewExtractor creates an extractor with the default configuration.
func NewExtractor(instance pdfium.Pdfium) *Extractor {
	return &Extractor{instance: instance, config: DefaultConfig()}
}

// NewExtractorWithConfig creates an extractor with a custom configuration.
func NewExtractorWithConfig(instance pdfium.Pdfium, config Config) *Extractor {
	if config.PaidTimeParser == nil {
		config.PaidTimeParser = ParsePaidTime
	}
	return &Extractor{instance: instance, config: config}
}

// Extract runs the full pipeline over raw PDF bytes: preflight, table
// location, classification, field mapping and assembly. The returned
// dataset carries the non-fatal warnings accumulated along the way;
// unreadable documents fail with ErrUnreadablePDF.
func (e *Extractor) Extract(pdfBytes []byte, hint DepartmentHint) (*AttendanceDataset, error) {
	start := time.Now()

	pages, err := Preflight(pdfBytes)
	if err != nil {
		return nil, err
	}

	tables, err := e.locateTables(pdfBytes)
	if err != nil {
		return nil, err
	}

	dataset := BuildDataset(tables, hint, e.config)

	if e.config.EnableMetricsLogging {
		log.Printf("extracted %d record(s) from %d table(s) across %d page(s) in %v (%d warning(s))",
			len(dataset.Records), len(tables), pages, time.Since(start).Round(time.Millisecond), len(dataset.Warnings))
	}
	return dataset, nil
}

// ExtractFile reads a PDF from disk and extracts it.
func (e *Extractor) ExtractFile(path string, hint DepartmentHint) (*AttendanceDataset, error) {
	pdfBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return e.Extract(pdfBytes, hint)
}

// BuildDataset runs classification, mapping and assembly over located
// tables. It is the pure tail of the pipeline: deterministic in its inputs,
// usable directly when tables come from somewhere other than a PDF.
func BuildDataset(tables []RawTable, hint DepartmentHint, config Config) *AttendanceDataset {
	parse := config.PaidTimeParser
	if parse == nil {
		parse = ParsePaidTime
	}

	kind := hint.Layout()
	var records []AttendanceRecord
	var warnings []Warning

	for _, table := range tables {
		if _, err := Classify(table, hint); err != nil {
			warnings = append(warnings, Warning{
				Kind:    WarnMalformedLayout,
				Page:    table.Page,
				Message: err.Error(),
			})
			continue
		}
		recs, warns := mapRecords(table, kind, parse)
		records = append(records, recs...)
		warnings = append(warnings, warns...)
	}

	return assemble(kind, records, warnings)
}
