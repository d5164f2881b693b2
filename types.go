package roster

// Rect represents a bounding box in page coordinates with the origin at the
// top-left (after conversion from PDF coordinates).
type Rect struct {
	X0 float64 // Left
	Y0 float64 // Top
	X1 float64 // Right
	Y1 float64 // Bottom
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 {
	return (r.X0 + r.X1) / 2
}

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 {
	return (r.Y0 + r.Y1) / 2
}

// Word is a positioned run of text on a page.
type Word struct {
	Text string
	Box  Rect
}

// Edge represents a horizontal or vertical line segment used for table
// detection. Based on pdfplumber's edge structure.
type Edge struct {
	X0          float64
	X1          float64
	Top         float64
	Bottom      float64
	Width       float64 // For horizontal edges
	Height      float64 // For vertical edges
	Orientation string  // "h" or "v"
}

// Point is an (x, y) coordinate where edges intersect.
type Point struct {
	X float64
	Y float64
}

// CellBBox is a table cell expressed as a bounding box.
type CellBBox struct {
	X0     float64
	Top    float64
	X1     float64
	Bottom float64
}

// RawTable is a table region as read from a page: ordered rows of cell
// text. Cells may contain embedded line breaks when the source cell wraps.
// RawTables are ephemeral; they exist only inside a single extraction call.
type RawTable struct {
	Page int
	Rows [][]string
}

// ColumnCount returns the widest row length in the table.
func (t RawTable) ColumnCount() int {
	max := 0
	for _, row := range t.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// TableSettings configures table detection behavior.
// Based on pdfplumber's TableSettings.
type TableSettings struct {
	// Tolerances for snapping close edges together and joining edges that
	// lie on the same line.
	SnapTolerance float64
	JoinTolerance float64

	// Minimum edge length to consider.
	EdgeMinLength float64

	// Minimum number of aligned words required to infer an edge from text
	// alignment when the page has no ruling lines.
	MinWordsVertical   int
	MinWordsHorizontal int

	// Tolerance for finding edge intersections.
	IntersectionTolerance float64
}

// DefaultTableSettings returns the default table detection settings.
func DefaultTableSettings() TableSettings {
	return TableSettings{
		SnapTolerance:         3.0,
		JoinTolerance:         3.0,
		EdgeMinLength:         3.0,
		MinWordsVertical:      3,
		MinWordsHorizontal:    1,
		IntersectionTolerance: 3.0,
	}
}
