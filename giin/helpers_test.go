package giin

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	baseHeader    = "id,todoufuken,senkyoku,seitou,title,detail,age,tubohantei,tubonaiyou,tuboURL,uraganehantei,uraganenaiyou,uraganeURL"
	readingHeader = "id,todoufuken,senkyoku,seitou,title,yomi,detail,age,tubohantei,tubonaiyou,tuboURL,uraganehantei,uraganenaiyou,uraganeURL"
)

// baseLine renders a 13 column row with empty assessment fields.
func baseLine(id, pref, district, party, age string) string {
	return strings.Join([]string{id, pref, district, party, "title-" + id, "detail-" + id, age, "", "", "", "", "", ""}, ",")
}

// readingLine renders a 14 column row with empty assessment fields.
func readingLine(id, pref, district, party, yomi string) string {
	return strings.Join([]string{id, pref, district, party, "title-" + id, yomi, "detail-" + id, "50", "", "", "", "", "", ""}, ",")
}

func csvDoc(header string, lines ...string) string {
	return header + "\n" + strings.Join(lines, "\n") + "\n"
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func baseRow(line int, id, pref, district, party, age string) Row {
	return Row{Line: line, Fields: strings.Split(baseLine(id, pref, district, party, age), ",")}
}

// topLevelKeys returns the keys of a JSON object in document order.
func topLevelKeys(t *testing.T, data []byte) []string {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(string(data)))
	tok, err := dec.Token()
	require.NoError(t, err)
	require.Equal(t, json.Delim('{'), tok)
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		require.NoError(t, err)
		keys = append(keys, tok.(string))
		var skip json.RawMessage
		require.NoError(t, dec.Decode(&skip))
	}
	return keys
}

// chdir changes the working directory for the duration of the test,
// standing in for testing.T.Chdir on toolchains older than Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
