package roster

import (
	"math"
	"sort"
	"strings"
)

// DetectTables finds table grids among the words of one page and returns
// them as raw cell-text tables. Explicit ruling lines are preferred; pages
// without rulings fall back to word-alignment detection, following
// pdfplumber's TableFinder strategies.
func DetectTables(words []Word, rulings []Edge, page int, settings TableSettings) []RawTable {
	if len(words) == 0 {
		return nil
	}

	var vEdges, hEdges []Edge
	for _, e := range rulings {
		if e.Orientation == "v" {
			vEdges = append(vEdges, e)
		} else {
			hEdges = append(hEdges, e)
		}
	}
	if len(vEdges) == 0 {
		vEdges = textEdgesVertical(words, settings.MinWordsVertical)
	}
	if len(hEdges) == 0 {
		hEdges = textEdgesHorizontal(words, settings.MinWordsHorizontal)
	}

	edges := append(snapEdges(vEdges, "v", settings.SnapTolerance),
		snapEdges(hEdges, "h", settings.SnapTolerance)...)
	edges = joinEdges(edges, settings.JoinTolerance)
	edges = filterEdgesByLength(edges, settings.EdgeMinLength)
	if len(edges) == 0 {
		return nil
	}

	cells := intersectionsToCells(findIntersections(edges, settings.IntersectionTolerance))
	groups := groupCellsIntoTables(cells)

	var tables []RawTable
	for _, group := range groups {
		table := gridFromCells(group, words, page)
		// A plausible attendance table needs at least a header-like row
		// plus one data row, and more than one column.
		if len(table.Rows) >= 2 && table.ColumnCount() >= 2 {
			tables = append(tables, table)
		}
	}
	return tables
}

// textEdgesHorizontal infers horizontal edges from rows of words sharing a
// top coordinate. Based on pdfplumber's words_to_edges_h.
func textEdgesHorizontal(words []Word, minWords int) []Edge {
	clusters := clusterWordsBy(words, func(w Word) float64 { return w.Box.Y0 })

	minX0, maxX1 := math.MaxFloat64, -math.MaxFloat64
	var rows [][]Word
	for _, c := range clusters {
		if len(c) < minWords {
			continue
		}
		rows = append(rows, c)
		for _, w := range c {
			minX0 = math.Min(minX0, w.Box.X0)
			maxX1 = math.Max(maxX1, w.Box.X1)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	var edges []Edge
	for _, row := range rows {
		top, bottom := row[0].Box.Y0, row[0].Box.Y1
		for _, w := range row {
			bottom = math.Max(bottom, w.Box.Y1)
		}
		edges = append(edges,
			Edge{X0: minX0, X1: maxX1, Top: top, Bottom: top, Width: maxX1 - minX0, Orientation: "h"},
			Edge{X0: minX0, X1: maxX1, Top: bottom, Bottom: bottom, Width: maxX1 - minX0, Orientation: "h"},
		)
	}
	return edges
}

// textEdgesVertical infers vertical edges from columns of words sharing a
// left, right or center coordinate. Based on pdfplumber's words_to_edges_v.
func textEdgesVertical(words []Word, minWords int) []Edge {
	type column struct {
		words []Word
		box   Rect
	}

	var candidates []column
	for _, getX := range []func(Word) float64{
		func(w Word) float64 { return w.Box.X0 },
		func(w Word) float64 { return w.Box.X1 },
		func(w Word) float64 { return w.Box.CenterX() },
	} {
		for _, c := range clusterWordsBy(words, getX) {
			if len(c) < minWords {
				continue
			}
			box := c[0].Box
			for _, w := range c {
				box.X0 = math.Min(box.X0, w.Box.X0)
				box.Y0 = math.Min(box.Y0, w.Box.Y0)
				box.X1 = math.Max(box.X1, w.Box.X1)
				box.Y1 = math.Max(box.Y1, w.Box.Y1)
			}
			candidates = append(candidates, column{words: c, box: box})
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	// Largest clusters first, then discard columns overlapping an already
	// accepted one.
	sort.Slice(candidates, func(i, j int) bool {
		return len(candidates[i].words) > len(candidates[j].words)
	})
	var columns []column
	for _, cand := range candidates {
		overlaps := false
		for _, kept := range columns {
			if cand.box.X0 <= kept.box.X1 && cand.box.X1 >= kept.box.X0 &&
				cand.box.Y0 <= kept.box.Y1 && cand.box.Y1 >= kept.box.Y0 {
				overlaps = true
				break
			}
		}
		if !overlaps {
			columns = append(columns, cand)
		}
	}

	minTop, maxBottom, maxX1 := math.MaxFloat64, -math.MaxFloat64, -math.MaxFloat64
	for _, c := range columns {
		minTop = math.Min(minTop, c.box.Y0)
		maxBottom = math.Max(maxBottom, c.box.Y1)
		maxX1 = math.Max(maxX1, c.box.X1)
	}

	var edges []Edge
	for _, c := range columns {
		edges = append(edges, Edge{
			X0: c.box.X0, X1: c.box.X0,
			Top: minTop, Bottom: maxBottom,
			Height: maxBottom - minTop, Orientation: "v",
		})
	}
	// Close the grid on the right.
	edges = append(edges, Edge{
		X0: maxX1, X1: maxX1,
		Top: minTop, Bottom: maxBottom,
		Height: maxBottom - minTop, Orientation: "v",
	})
	return edges
}

// clusterWordsBy groups words whose key coordinate lies within one pixel.
func clusterWordsBy(words []Word, key func(Word) float64) [][]Word {
	type cluster struct {
		value float64
		words []Word
	}
	var clusters []cluster
	for _, w := range words {
		v := key(w)
		found := false
		for i := range clusters {
			if math.Abs(clusters[i].value-v) < 1.0 {
				clusters[i].words = append(clusters[i].words, w)
				found = true
				break
			}
		}
		if !found {
			clusters = append(clusters, cluster{value: v, words: []Word{w}})
		}
	}
	out := make([][]Word, len(clusters))
	for i, c := range clusters {
		out[i] = c.words
	}
	return out
}

// snapEdges snaps edges of one orientation whose positions lie within
// tolerance onto their cluster's average position.
func snapEdges(edges []Edge, orientation string, tolerance float64) []Edge {
	position := func(e Edge) float64 {
		if orientation == "v" {
			return e.X0
		}
		return e.Top
	}

	type cluster struct {
		value   float64
		indices []int
	}
	var clusters []cluster
	for i, e := range edges {
		v := position(e)
		found := false
		for j := range clusters {
			if math.Abs(clusters[j].value-v) <= tolerance {
				clusters[j].indices = append(clusters[j].indices, i)
				sum := clusters[j].value * float64(len(clusters[j].indices)-1)
				clusters[j].value = (sum + v) / float64(len(clusters[j].indices))
				found = true
				break
			}
		}
		if !found {
			clusters = append(clusters, cluster{value: v, indices: []int{i}})
		}
	}

	snapped := make([]Edge, len(edges))
	copy(snapped, edges)
	for _, c := range clusters {
		for _, i := range c.indices {
			if orientation == "v" {
				diff := c.value - snapped[i].X0
				snapped[i].X0 = c.value
				snapped[i].X1 += diff
			} else {
				diff := c.value - snapped[i].Top
				snapped[i].Top = c.value
				snapped[i].Bottom += diff
			}
		}
	}
	return snapped
}

// joinEdges merges edges that lie on the same line and touch or overlap
// within tolerance.
func joinEdges(edges []Edge, tolerance float64) []Edge {
	type lineKey struct {
		orientation string
		position    float64
	}
	grouped := make(map[lineKey][]Edge)
	for _, e := range edges {
		key := lineKey{orientation: e.Orientation, position: e.Top}
		if e.Orientation == "v" {
			key.position = e.X0
		}
		grouped[key] = append(grouped[key], e)
	}

	spanMin := func(e Edge) float64 {
		if e.Orientation == "h" {
			return e.X0
		}
		return e.Top
	}
	spanMax := func(e Edge) float64 {
		if e.Orientation == "h" {
			return e.X1
		}
		return e.Bottom
	}

	var result []Edge
	for _, group := range grouped {
		sort.Slice(group, func(i, j int) bool { return spanMin(group[i]) < spanMin(group[j]) })
		joined := []Edge{group[0]}
		for _, e := range group[1:] {
			last := &joined[len(joined)-1]
			if spanMin(e) <= spanMax(*last)+tolerance {
				if spanMax(e) > spanMax(*last) {
					if e.Orientation == "h" {
						last.X1 = e.X1
						last.Width = last.X1 - last.X0
					} else {
						last.Bottom = e.Bottom
						last.Height = last.Bottom - last.Top
					}
				}
			} else {
				joined = append(joined, e)
			}
		}
		result = append(result, joined...)
	}
	return result
}

// filterEdgesByLength drops edges shorter than minLength.
func filterEdgesByLength(edges []Edge, minLength float64) []Edge {
	if minLength <= 0 {
		return edges
	}
	kept := make([]Edge, 0, len(edges))
	for _, e := range edges {
		length := e.Width
		if e.Orientation == "v" {
			length = e.Height
		}
		if length >= minLength {
			kept = append(kept, e)
		}
	}
	return kept
}

// crossing holds the edge indices meeting at one intersection point, used
// to check that cell corners are connected by actual edges.
type crossing struct {
	vertical   map[int]bool
	horizontal map[int]bool
}

// findIntersections finds every point where a vertical edge crosses a
// horizontal edge within tolerance.
func findIntersections(edges []Edge, tolerance float64) map[Point]crossing {
	var vEdges, hEdges []Edge
	var vIdx, hIdx []int
	for i, e := range edges {
		if e.Orientation == "v" {
			vEdges = append(vEdges, e)
			vIdx = append(vIdx, i)
		} else {
			hEdges = append(hEdges, e)
			hIdx = append(hIdx, i)
		}
	}

	intersections := make(map[Point]crossing)
	for vi, v := range vEdges {
		for hi, h := range hEdges {
			if v.Top <= h.Top+tolerance && v.Bottom >= h.Top-tolerance &&
				v.X0 >= h.X0-tolerance && v.X0 <= h.X1+tolerance {
				p := Point{X: v.X0, Y: h.Top}
				c, ok := intersections[p]
				if !ok {
					c = crossing{vertical: map[int]bool{}, horizontal: map[int]bool{}}
					intersections[p] = c
				}
				c.vertical[vIdx[vi]] = true
				c.horizontal[hIdx[hi]] = true
			}
		}
	}
	return intersections
}

// intersectionsToCells forms minimal rectangular cells from intersection
// points whose corners are connected by shared edges.
func intersectionsToCells(intersections map[Point]crossing) []CellBBox {
	if len(intersections) == 0 {
		return nil
	}

	points := make([]Point, 0, len(intersections))
	for p := range intersections {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y == points[j].Y {
			return points[i].X < points[j].X
		}
		return points[i].Y < points[j].Y
	})

	sharesEdge := func(a, b map[int]bool) bool {
		for i := range a {
			if b[i] {
				return true
			}
		}
		return false
	}
	connected := func(p1, p2 Point) bool {
		c1, c2 := intersections[p1], intersections[p2]
		if p1.X == p2.X {
			return sharesEdge(c1.vertical, c2.vertical)
		}
		if p1.Y == p2.Y {
			return sharesEdge(c1.horizontal, c2.horizontal)
		}
		return false
	}

	var cells []CellBBox
	for i, pt := range points {
		var right, below *Point
		for j := i + 1; j < len(points); j++ {
			p := points[j]
			if p.X == pt.X && p.Y > pt.Y && (below == nil || p.Y < below.Y) {
				below = &points[j]
			}
			if p.Y == pt.Y && p.X > pt.X && (right == nil || p.X < right.X) {
				right = &points[j]
			}
		}
		if right == nil || below == nil || !connected(pt, *right) || !connected(pt, *below) {
			continue
		}
		corner := Point{X: right.X, Y: below.Y}
		if _, ok := intersections[corner]; !ok {
			continue
		}
		if connected(corner, *right) && connected(corner, *below) {
			cells = append(cells, CellBBox{X0: pt.X, Top: pt.Y, X1: corner.X, Bottom: corner.Y})
		}
	}
	return cells
}

// groupCellsIntoTables groups cells that share corners into contiguous
// tables.
func groupCellsIntoTables(cells []CellBBox) [][]CellBBox {
	if len(cells) == 0 {
		return nil
	}

	remaining := make([]CellBBox, len(cells))
	copy(remaining, cells)

	var tables [][]CellBBox
	var current []CellBBox
	corners := make(map[Point]bool)

	cellCorners := func(c CellBBox) [4]Point {
		return [4]Point{
			{c.X0, c.Top}, {c.X0, c.Bottom},
			{c.X1, c.Top}, {c.X1, c.Bottom},
		}
	}

	for len(remaining) > 0 {
		before := len(current)
		for i := 0; i < len(remaining); i++ {
			cell := remaining[i]
			cs := cellCorners(cell)

			adopt := len(current) == 0
			if !adopt {
				for _, c := range cs {
					if corners[c] {
						adopt = true
						break
					}
				}
			}
			if adopt {
				current = append(current, cell)
				for _, c := range cs {
					corners[c] = true
				}
				remaining = append(remaining[:i], remaining[i+1:]...)
				i--
			}
		}
		if len(current) == before {
			if len(current) > 1 {
				tables = append(tables, current)
			}
			current = nil
			corners = make(map[Point]bool)
		}
	}
	if len(current) > 1 {
		tables = append(tables, current)
	}
	return tables
}

// gridFromCells arranges a table's cells into rows and columns and fills
// each cell with the words whose centers fall inside it. Words stacked
// vertically within a cell are joined with a line break; words on the same
// line with a space.
func gridFromCells(cells []CellBBox, words []Word, page int) RawTable {
	type rowGroup struct {
		top   float64
		cells []CellBBox
	}
	var rows []rowGroup
	for _, cell := range cells {
		found := false
		for i := range rows {
			if math.Abs(rows[i].top-cell.Top) < 1.0 {
				rows[i].cells = append(rows[i].cells, cell)
				found = true
				break
			}
		}
		if !found {
			rows = append(rows, rowGroup{top: cell.Top, cells: []CellBBox{cell}})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].top < rows[j].top })
	for i := range rows {
		sort.Slice(rows[i].cells, func(j, k int) bool {
			return rows[i].cells[j].X0 < rows[i].cells[k].X0
		})
	}

	table := RawTable{Page: page}
	for _, row := range rows {
		cellsText := make([]string, 0, len(row.cells))
		empty := true
		for _, bbox := range row.cells {
			text := cellText(bbox, words)
			if text != "" {
				empty = false
			}
			cellsText = append(cellsText, text)
		}
		if !empty {
			table.Rows = append(table.Rows, cellsText)
		}
	}
	return table
}

// cellText collects the words inside one cell in reading order.
func cellText(bbox CellBBox, words []Word) string {
	const tolerance = 1.0

	var inside []Word
	for _, w := range words {
		cx, cy := w.Box.CenterX(), w.Box.CenterY()
		if cx >= bbox.X0-tolerance && cx <= bbox.X1+tolerance &&
			cy >= bbox.Top-tolerance && cy <= bbox.Bottom+tolerance {
			inside = append(inside, w)
		}
	}
	sort.Slice(inside, func(i, j int) bool {
		if math.Abs(inside[i].Box.Y0-inside[j].Box.Y0) < 2.0 {
			return inside[i].Box.X0 < inside[j].Box.X0
		}
		return inside[i].Box.Y0 < inside[j].Box.Y0
	})

	var b strings.Builder
	for i, w := range inside {
		if i > 0 {
			if w.Box.Y0-inside[i-1].Box.Y1 > 2.0 {
				b.WriteString("\n")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString(w.Text)
	}
	return b.String()
}
