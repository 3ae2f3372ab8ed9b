package giin

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// ReadTable reads a whole CSV document. Blank rows are dropped and every
// row keeps the source line it started on.
func ReadTable(r io.Reader, encoding string) (*Table, error) {
	decoded, err := decodeReader(r, encoding)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, errors.Wrap(err, "read header")
	}
	line, _ := reader.FieldPos(0)
	table := &Table{HeaderLine: line, Header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read row")
		}
		if isBlankRecord(record) {
			continue
		}
		line, _ := reader.FieldPos(0)
		table.Rows = append(table.Rows, Row{Line: line, Fields: record})
	}
	return table, nil
}

// OpenTable reads the CSV file at path.
func OpenTable(path, encoding string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(ErrFileNotFound, path)
		}
		return nil, errors.Wrapf(err, "open %s", filepath.Base(path))
	}
	defer f.Close()
	table, err := ReadTable(f, encoding)
	if err != nil {
		return nil, errors.Wrap(err, filepath.Base(path))
	}
	return table, nil
}

func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return r, nil
	case EncodingShiftJIS, "sjis", "shift-jis", "cp932":
		return transform.NewReader(r, japanese.ShiftJIS.NewDecoder()), nil
	default:
		return nil, errors.Errorf("unsupported encoding %q", encoding)
	}
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// EncodeTree writes tree as indented JSON without escaping HTML or non-ASCII text.
func EncodeTree(w io.Writer, tree *Tree, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", indent))
	if err := enc.Encode(tree); err != nil {
		return errors.Wrap(err, "encode tree")
	}
	return nil
}

// WriteTree writes tree to path through a temporary file in the same
// directory, so a failed write never leaves a partial document behind.
func WriteTree(path string, tree *Tree, indent int) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp output")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if err := EncodeTree(tmp, tree, indent); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp output")
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return errors.Wrap(err, "chmod output")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "rename output")
	}
	return nil
}
