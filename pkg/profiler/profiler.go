// Package profiler implements the advisory dataset profiler (spec §4.2,
// component C3). Its output feeds inference and the standard
// generator's explanations; scoring never consults it directly.
package profiler

import (
	"fmt"
	"math"
	"sort"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// NumericStats summarizes a numeric column.
type NumericStats struct {
	Min, Max, Mean, Median float64
	Q1, Q3                 float64
	OutlierCount           int
}

// TextStats summarizes a text column.
type TextStats struct {
	MinLength, MaxLength int
	AvgLength            float64
	Patterns             []string
}

// ColumnProfile summarizes one column of the dataset.
type ColumnProfile struct {
	Name               string
	DeclaredType       adri.Kind
	RowCount           int
	NullCount          int
	NullPercentage     float64
	DistinctCount      int
	DistinctPercentage float64
	KindCounts         map[adri.Kind]int
	Numeric            *NumericStats
	Text               *TextStats
}

// QualityAssessment summarizes table-level quality patterns: how much
// of the table is filled in, which columns carry nulls, and whole-row
// duplication. Like the rest of the profile it is advisory.
type QualityAssessment struct {
	OverallCompleteness  float64 // percent, 0-100
	FieldsWithNulls      int
	CompletelyNullFields int
	DuplicateRows        int
	PotentialIssues      []string
}

// TableProfile summarizes the whole dataset.
type TableProfile struct {
	TotalRows            int
	ColumnCount           int
	TypeHistogram         map[string]int
	EstimatedMemoryBytes  int64
	OverallCompleteness   float64
	Columns               map[string]ColumnProfile
	ColumnOrder           []string
	Quality               QualityAssessment
	Recommendations       []string
}

// Config bounds profiling cost on large datasets.
type Config struct {
	// MaxRows caps how many rows are scanned; 0 means no cap.
	MaxRows int
}

// Profile computes a TableProfile for the dataset. It is advisory only
// (spec §4.2): nothing downstream of the validation engine may consult
// it directly.
func Profile(ds *adri.Dataset, cfg Config) TableProfile {
	rows := ds.RowCount
	if cfg.MaxRows > 0 && rows > cfg.MaxRows {
		rows = cfg.MaxRows
	}

	tp := TableProfile{
		TotalRows:     rows,
		ColumnCount:   len(ds.Columns),
		TypeHistogram: map[string]int{},
		Columns:       map[string]ColumnProfile{},
		ColumnOrder:   ds.ColumnNames(),
	}

	var totalCells, nullCells int64
	var memEstimate int64

	for _, col := range ds.Columns {
		cells := col.Cells
		if rows < len(cells) {
			cells = cells[:rows]
		}
		cp := profileColumn(col.Name, cells)
		tp.Columns[col.Name] = cp
		tp.TypeHistogram[cp.DeclaredType.String()]++

		totalCells += int64(cp.RowCount)
		nullCells += int64(cp.NullCount)
		memEstimate += estimateColumnBytes(cells)
	}

	tp.EstimatedMemoryBytes = memEstimate
	if totalCells > 0 {
		tp.OverallCompleteness = 1.0 - float64(nullCells)/float64(totalCells)
	} else {
		tp.OverallCompleteness = 1.0
	}
	tp.Quality = assessQualityPatterns(ds, rows, &tp)
	tp.Recommendations = recommend(&tp)
	return tp
}

// assessQualityPatterns computes the table-level quality summary:
// completeness percentage, null-carrying and fully-null column counts,
// whole-row duplicates, and a short list of issues worth a look.
func assessQualityPatterns(ds *adri.Dataset, rows int, tp *TableProfile) QualityAssessment {
	qa := QualityAssessment{OverallCompleteness: tp.OverallCompleteness * 100}

	var highNullFields int
	for _, name := range tp.ColumnOrder {
		cp := tp.Columns[name]
		if cp.NullCount > 0 {
			qa.FieldsWithNulls++
		}
		if cp.RowCount > 0 && cp.NullCount == cp.RowCount {
			qa.CompletelyNullFields++
		}
		if cp.RowCount > 0 && float64(cp.NullCount)/float64(cp.RowCount) > 0.5 {
			highNullFields++
		}
	}

	seen := make(map[string]bool, rows)
	for r := 0; r < rows; r++ {
		key := ""
		for _, col := range ds.Columns {
			key += "\x1f" + col.Cells[r].AsString()
		}
		if seen[key] {
			qa.DuplicateRows++
		}
		seen[key] = true
	}

	if highNullFields > 0 {
		qa.PotentialIssues = append(qa.PotentialIssues, fmt.Sprintf("High null rate in %d fields", highNullFields))
	}
	if qa.DuplicateRows > 0 {
		qa.PotentialIssues = append(qa.PotentialIssues, fmt.Sprintf("%d duplicate rows found", qa.DuplicateRows))
	}
	for _, name := range tp.ColumnOrder {
		if mixedTypes(tp.Columns[name]) {
			qa.PotentialIssues = append(qa.PotentialIssues, "Mixed data types in field: "+name)
		}
	}
	return qa
}

// mixedTypes reports whether a text-dominant column also carries
// numeric cells, the tabular analog of numbers hiding inside an object
// column.
func mixedTypes(cp ColumnProfile) bool {
	if cp.DeclaredType != adri.KindText {
		return false
	}
	for kind, n := range cp.KindCounts {
		if n > 0 && (kind == adri.KindInt || kind == adri.KindFloat) {
			return true
		}
	}
	return false
}

func recommend(tp *TableProfile) []string {
	var recs []string
	if tp.Quality.OverallCompleteness < 90 {
		recs = append(recs, "Consider addressing missing values to improve completeness")
	}
	if tp.TypeHistogram[adri.KindText.String()] > 0 {
		recs = append(recs, "Review string fields for consistent formatting")
	}
	if tp.TotalRows > 10000 {
		recs = append(recs, "Consider data sampling for large datasets")
	}
	return recs
}

func profileColumn(name string, cells []adri.Cell) ColumnProfile {
	cp := ColumnProfile{Name: name, RowCount: len(cells)}

	typeCounts := map[adri.Kind]int{}
	distinct := map[string]struct{}{}
	var nullCount int
	var numericValues []float64
	var textLengths []int
	var textValues []string

	for _, c := range cells {
		if c.Null() {
			nullCount++
			continue
		}
		typeCounts[c.Kind]++
		distinct[c.AsString()] = struct{}{}

		if f, ok := c.AsFloat(); ok && (c.Kind == adri.KindInt || c.Kind == adri.KindFloat) {
			numericValues = append(numericValues, f)
		}
		if c.Kind == adri.KindText {
			s := c.AsString()
			textLengths = append(textLengths, len([]rune(s)))
			textValues = append(textValues, s)
		}
	}

	cp.NullCount = nullCount
	if cp.RowCount > 0 {
		cp.NullPercentage = 100 * float64(nullCount) / float64(cp.RowCount)
	}
	cp.DistinctCount = len(distinct)
	nonNull := cp.RowCount - nullCount
	if nonNull > 0 {
		cp.DistinctPercentage = 100 * float64(cp.DistinctCount) / float64(nonNull)
	}
	cp.DeclaredType = dominantKind(typeCounts)
	cp.KindCounts = typeCounts

	if len(numericValues) > 0 && (cp.DeclaredType == adri.KindInt || cp.DeclaredType == adri.KindFloat) {
		cp.Numeric = numericStats(numericValues)
	}
	if len(textLengths) > 0 && cp.DeclaredType == adri.KindText {
		cp.Text = textStats(textLengths, textValues)
	}
	return cp
}

func dominantKind(counts map[adri.Kind]int) adri.Kind {
	best := adri.KindText
	bestCount := -1
	// Deterministic iteration order over the fixed set of kinds.
	order := []adri.Kind{adri.KindInt, adri.KindFloat, adri.KindBool, adri.KindDateTime, adri.KindDate, adri.KindText}
	for _, k := range order {
		if n, ok := counts[k]; ok && n > bestCount {
			best, bestCount = k, n
		}
	}
	if bestCount == -1 {
		return adri.KindNull
	}
	return best
}

func numericStats(values []float64) *NumericStats {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := len(sorted)
	min, max := sorted[0], sorted[n-1]
	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)
	median := percentile(sorted, 0.5)
	q1 := percentile(sorted, 0.25)
	q3 := percentile(sorted, 0.75)
	iqr := q3 - q1

	outliers := 0
	lo, hi := q1-1.5*iqr, q3+1.5*iqr
	for _, v := range sorted {
		if v < lo || v > hi {
			outliers++
		}
	}

	return &NumericStats{
		Min: min, Max: max, Mean: mean, Median: median,
		Q1: q1, Q3: q3, OutlierCount: outliers,
	}
}

// percentile computes a linear-interpolated percentile over an
// already-sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	idx := p * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

func textStats(lengths []int, values []string) *TextStats {
	min, max, sum := lengths[0], lengths[0], 0
	for _, l := range lengths {
		if l < min {
			min = l
		}
		if l > max {
			max = l
		}
		sum += l
	}
	return &TextStats{
		MinLength: min,
		MaxLength: max,
		AvgLength: float64(sum) / float64(len(lengths)),
		Patterns:  DetectPatterns(values),
	}
}

func estimateColumnBytes(cells []adri.Cell) int64 {
	var total int64
	for _, c := range cells {
		switch c.Kind {
		case adri.KindText:
			total += int64(len(c.Text)) + 16
		case adri.KindDate, adri.KindDateTime:
			total += 24
		default:
			total += 16
		}
	}
	return total
}
