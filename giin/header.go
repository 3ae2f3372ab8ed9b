package giin

import (
	"slices"
	"strings"
)

// Column names shared by both header layouts.
const (
	FieldID            = "id"
	FieldPrefecture    = "todoufuken"
	FieldDistrict      = "senkyoku"
	FieldParty         = "seitou"
	FieldTitle         = "title"
	FieldReading       = "yomi"
	FieldDetail        = "detail"
	FieldAge           = "age"
	FieldTuboHantei    = "tubohantei"
	FieldTuboNaiyou    = "tubonaiyou"
	FieldTuboURL       = "tuboURL"
	FieldUraganeHantei = "uraganehantei"
	FieldUraganeNaiyou = "uraganenaiyou"
	FieldUraganeURL    = "uraganeURL"
)

// Layout identifies one of the recognized CSV header variants.
type Layout int

const (
	// LayoutUnknown is the zero value and never matches a header.
	LayoutUnknown Layout = iota
	// LayoutBase is the 13 column layout without a reading field.
	LayoutBase
	// LayoutWithReading inserts the yomi column after title.
	LayoutWithReading
)

var baseColumns = []string{
	FieldID,
	FieldPrefecture,
	FieldDistrict,
	FieldParty,
	FieldTitle,
	FieldDetail,
	FieldAge,
	FieldTuboHantei,
	FieldTuboNaiyou,
	FieldTuboURL,
	FieldUraganeHantei,
	FieldUraganeNaiyou,
	FieldUraganeURL,
}

var readingColumns = []string{
	FieldID,
	FieldPrefecture,
	FieldDistrict,
	FieldParty,
	FieldTitle,
	FieldReading,
	FieldDetail,
	FieldAge,
	FieldTuboHantei,
	FieldTuboNaiyou,
	FieldTuboURL,
	FieldUraganeHantei,
	FieldUraganeNaiyou,
	FieldUraganeURL,
}

var layoutIndex = map[Layout]map[string]int{
	LayoutBase:        indexColumns(baseColumns),
	LayoutWithReading: indexColumns(readingColumns),
}

func indexColumns(cols []string) map[string]int {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[c] = i
	}
	return idx
}

// Layouts returns the recognized layouts in detection order.
func Layouts() []Layout {
	return []Layout{LayoutBase, LayoutWithReading}
}

// Columns returns a copy of the ordered column names for the layout.
func (l Layout) Columns() []string {
	switch l {
	case LayoutBase:
		return cloneStrings(baseColumns)
	case LayoutWithReading:
		return cloneStrings(readingColumns)
	default:
		return nil
	}
}

// Width is the number of columns every row must carry.
func (l Layout) Width() int {
	return len(layoutIndex[l])
}

// HasReading reports whether the layout carries the yomi column.
func (l Layout) HasReading() bool {
	_, ok := layoutIndex[l][FieldReading]
	return ok
}

func (l Layout) String() string {
	switch l {
	case LayoutBase:
		return "base"
	case LayoutWithReading:
		return "with-reading"
	default:
		return "unknown"
	}
}

// Value returns the cleaned cell for field, or "" when the layout lacks the
// field or the row is too short.
func (l Layout) Value(row Row, field string) string {
	i, ok := layoutIndex[l][field]
	if !ok || i >= len(row.Fields) {
		return ""
	}
	return cleanCell(row.Fields[i])
}

// DetectLayout matches the header row exactly against the known layouts.
func DetectLayout(header []string) (Layout, error) {
	found := make([]string, len(header))
	for i, cell := range header {
		found[i] = cleanCell(cell)
	}
	for _, l := range Layouts() {
		if slices.Equal(found, l.Columns()) {
			return l, nil
		}
	}
	expected := make([][]string, 0, len(Layouts()))
	for _, l := range Layouts() {
		expected = append(expected, l.Columns())
	}
	return LayoutUnknown, &HeaderError{Expected: expected, Found: found}
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
