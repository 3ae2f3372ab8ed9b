package giin

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// KanaRow is one of the ten gojūon rows used for phonetic grouping.
type KanaRow struct {
	// Key is the romanized row id used by the UI ("a", "ka", ...).
	Key string
	// Label is the row head kana and doubles as the output key.
	Label string
	kana  string
}

var kanaRows = []KanaRow{
	{Key: "a", Label: "あ", kana: "あいうえお"},
	{Key: "ka", Label: "か", kana: "かきくけこ"},
	{Key: "sa", Label: "さ", kana: "さしすせそ"},
	{Key: "ta", Label: "た", kana: "たちつてと"},
	{Key: "na", Label: "な", kana: "なにぬねの"},
	{Key: "ha", Label: "は", kana: "はひふへほ"},
	{Key: "ma", Label: "ま", kana: "まみむめも"},
	{Key: "ya", Label: "や", kana: "やゆよ"},
	{Key: "ra", Label: "ら", kana: "らりるれろ"},
	{Key: "wa", Label: "わ", kana: "わを"},
}

// KanaRows returns the ten rows in gojūon order.
func KanaRows() []KanaRow {
	out := make([]KanaRow, len(kanaRows))
	copy(out, kanaRows)
	return out
}

// PhoneticRow classifies the first character of a reading. Katakana and
// half-width forms are folded to hiragana and voiced marks are stripped, so
// "ガ" and "ｶﾞ" both land in the か row.
func PhoneticRow(reading string) (KanaRow, bool) {
	reading = strings.TrimSpace(reading)
	if reading == "" {
		return KanaRow{}, false
	}
	decomposed := norm.NFD.String(norm.NFKC.String(reading))
	r, _ := utf8.DecodeRuneInString(decomposed)
	r = toHiragana(r)
	for _, row := range kanaRows {
		if strings.ContainsRune(row.kana, r) {
			return row, true
		}
	}
	return KanaRow{}, false
}

func toHiragana(r rune) rune {
	if r >= 'ァ' && r <= 'ヶ' {
		return r - ('ァ' - 'ぁ')
	}
	return r
}
