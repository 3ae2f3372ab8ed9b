package giin

import (
	"strings"
	"unicode"
)

// ProportionalDistrict is the district value that places a candidate in the
// nationwide proportional bucket.
const ProportionalDistrict = "比例"

var prefectureExceptions = map[string]string{
	"北海道": "北海道",
	"東京":  "東京都",
	"大阪":  "大阪府",
	"京都":  "京都府",
}

var prefectureSuffixes = []string{"都", "道", "府", "県"}

const defaultPrefectureSuffix = "県"

// Highlight colors used for the card theme depending on the assessment fields.
const (
	TuboColor    = "#ff0000"
	UraganeColor = "#ff31ba"
	BothColor    = "#800080"
	NoIssueColor = "#000000"
)

// cleanCell trims whitespace, strips a leading BOM and drops control
// characters other than newlines and tabs.
func cleanCell(v string) string {
	v = strings.TrimPrefix(v, "\ufeff")
	v = strings.TrimSpace(v)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, v)
}

// NormalizePrefecture expands short prefecture names to their administrative form.
func NormalizePrefecture(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	if full, ok := prefectureExceptions[name]; ok {
		return full
	}
	for _, suffix := range prefectureSuffixes {
		if strings.HasSuffix(name, suffix) {
			return name
		}
	}
	return name + defaultPrefectureSuffix
}

// IsProportional reports whether the district belongs to the proportional bucket.
func IsProportional(district string) bool {
	return strings.TrimSpace(district) == ProportionalDistrict
}

// IssueColor picks the theme color from the tubo and uragane assessments.
func IssueColor(tuboHantei, uraganeHantei string) string {
	hasTubo := strings.TrimSpace(tuboHantei) != ""
	hasUragane := strings.TrimSpace(uraganeHantei) != ""
	switch {
	case hasTubo && hasUragane:
		return BothColor
	case hasUragane:
		return UraganeColor
	case hasTubo:
		return TuboColor
	default:
		return NoIssueColor
	}
}
