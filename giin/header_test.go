package giin

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectLayout(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   Layout
	}{
		{name: "base", header: baseHeader, want: LayoutBase},
		{name: "with reading", header: readingHeader, want: LayoutWithReading},
		{name: "bom and padding", header: "\ufeffid, todoufuken ,senkyoku,seitou,title,detail,age,tubohantei,tubonaiyou,tuboURL,uraganehantei,uraganenaiyou,uraganeURL", want: LayoutBase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectLayout(strings.Split(tt.header, ","))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectLayoutRejects(t *testing.T) {
	swapped := strings.Split(baseHeader, ",")
	swapped[1], swapped[2] = swapped[2], swapped[1]

	tests := []struct {
		name   string
		header []string
	}{
		{name: "swapped columns", header: swapped},
		{name: "missing column", header: strings.Split(baseHeader, ",")[:12]},
		{name: "extra column", header: append(strings.Split(baseHeader, ","), "memo")},
		{name: "reading in wrong place", header: append(strings.Split(baseHeader, ","), "yomi")},
		{name: "empty", header: []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := DetectLayout(tt.header)
			require.Error(t, err)
			assert.Equal(t, LayoutUnknown, layout)
			assert.True(t, errors.Is(err, ErrHeaderMismatch))

			var headerErr *HeaderError
			require.True(t, errors.As(err, &headerErr))
			assert.Len(t, headerErr.Expected, 2)
			assert.Equal(t, len(tt.header), len(headerErr.Found))
		})
	}
}

func TestLayoutValue(t *testing.T) {
	row := Row{Line: 2, Fields: strings.Split(readingLine("c1", " 東京 ", "1区", "自民", "やまだ"), ",")}
	assert.Equal(t, "東京", LayoutWithReading.Value(row, FieldPrefecture))
	assert.Equal(t, "やまだ", LayoutWithReading.Value(row, FieldReading))
	assert.Equal(t, "50", LayoutWithReading.Value(row, FieldAge))
	assert.Equal(t, "", LayoutBase.Value(row, FieldReading))
	assert.Equal(t, "", LayoutBase.Value(Row{Fields: []string{"c1"}}, FieldAge))
}

func TestLayoutColumns(t *testing.T) {
	assert.Equal(t, 13, LayoutBase.Width())
	assert.Equal(t, 14, LayoutWithReading.Width())
	assert.False(t, LayoutBase.HasReading())
	assert.True(t, LayoutWithReading.HasReading())

	cols := LayoutBase.Columns()
	cols[0] = "mutated"
	assert.Equal(t, FieldID, LayoutBase.Columns()[0])
	assert.Equal(t, FieldReading, LayoutWithReading.Columns()[5])
}
