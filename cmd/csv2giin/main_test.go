package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openceo2025/giindb3d/giin"
	"github.com/openceo2025/giindb3d/internal/app"
)

const testHeader = "id,todoufuken,senkyoku,seitou,title,detail,age,tubohantei,tubonaiyou,tuboURL,uraganehantei,uraganenaiyou,uraganeURL"

// fakePicker fills in fixed paths and runs the check like the dialog flow.
type fakePicker struct {
	input  string
	output string
	err    error
	calls  int
}

func (f *fakePicker) Pick(_ context.Context, sel app.Selection, check app.CheckFunc) (app.Selection, error) {
	f.calls++
	if f.err != nil {
		return sel, f.err
	}
	if sel.Input == "" {
		sel.Input = f.input
	}
	if err := check(sel.Input); err != nil {
		return sel, err
	}
	if sel.Output == "" {
		sel.Output = f.output
	}
	return sel, nil
}

func writeCSV(t *testing.T, dir string, rows ...string) string {
	t.Helper()
	path := filepath.Join(dir, "giin.csv")
	content := testHeader + "\n" + strings.Join(rows, "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func validRows() []string {
	return []string{
		"c1,東京,1,自民,title,detail,50,,,,,,",
		"c2,,比例,立憲,title,detail,,,,,,,",
	}
}

func execute(t *testing.T, picker app.Picker, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	var out bytes.Buffer
	cmd := newRootCmd(&out, picker)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConvertWithBothPaths(t *testing.T) {
	dir := t.TempDir()
	in := writeCSV(t, dir, validRows()...)
	outPath := filepath.Join(dir, "out.json")
	picker := &fakePicker{}

	out, err := execute(t, picker, in, outPath, "--indent", "4")
	require.NoError(t, err)
	assert.Zero(t, picker.calls)
	assert.Contains(t, out, "Validation completed successfully\n")
	assert.Contains(t, out, "JSON written to "+outPath+"\n")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n    \"選挙区\""))
}

func TestConvertAsksForMissingOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeCSV(t, dir, validRows()...)
	picker := &fakePicker{output: filepath.Join(dir, "picked.json")}

	out, err := execute(t, picker, in)
	require.NoError(t, err)
	assert.Equal(t, 1, picker.calls)
	assert.Contains(t, out, "JSON written to "+picker.output+"\n")
	assert.FileExists(t, picker.output)
	assert.Equal(t, 1, strings.Count(out, "[Header Check]"))
}

func TestConvertAsksForBothPaths(t *testing.T) {
	dir := t.TempDir()
	picker := &fakePicker{
		input:  writeCSV(t, dir, validRows()...),
		output: filepath.Join(dir, "picked.json"),
	}
	_, err := execute(t, picker)
	require.NoError(t, err)
	assert.FileExists(t, picker.output)
}

func TestConvertInvalidFromPicker(t *testing.T) {
	dir := t.TempDir()
	picker := &fakePicker{
		input:  writeCSV(t, dir, "c1,東京,1,UNKNOWN_PARTY,title,detail,50,,,,,,"),
		output: filepath.Join(dir, "picked.json"),
	}
	out, err := execute(t, picker)
	require.ErrorIs(t, err, giin.ErrValidation)
	assert.Contains(t, out, "Row 2: unknown party 'UNKNOWN_PARTY'\n")
	assert.Contains(t, out, "Aborting JSON output due to validation errors\n")
	assert.NoFileExists(t, picker.output)
}

func TestConvertCancelled(t *testing.T) {
	out, err := execute(t, &fakePicker{err: app.ErrCancelled})
	require.ErrorIs(t, err, app.ErrCancelled)
	assert.Equal(t, "File selection cancelled\n", out)
}

func TestConvertMissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, &fakePicker{}, filepath.Join(dir, "none.csv"), filepath.Join(dir, "out.json"))
	require.ErrorIs(t, err, giin.ErrFileNotFound)
	assert.NoFileExists(t, filepath.Join(dir, "out.json"))
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeCSV(t, dir, "c1,東京,1,自民,title,detail,3.5,,,,,,")

	out, err := execute(t, &fakePicker{}, "validate", in)
	require.ErrorIs(t, err, giin.ErrValidation)
	assert.Contains(t, out, "Row 2: age is not an integer\n")
	assert.Contains(t, out, "Validation completed with 1 error rows\n")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeCSV(t, dir, validRows()...)
	outPath := filepath.Join(dir, "out.json")
	_, err := execute(t, &fakePicker{}, in, outPath)
	require.NoError(t, err)

	out, err := execute(t, &fakePicker{}, "diff", in, outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "No changes\n"))
}

func TestInitConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "giin.json")

	out, err := execute(t, &fakePicker{}, "init-config", path)
	require.NoError(t, err)
	assert.Equal(t, "Config written to "+path+"\n", out)

	out, err = execute(t, &fakePicker{}, "init-config", path)
	require.NoError(t, err)
	assert.Equal(t, "Config "+path+" already exists\n", out)

	cfg, err := giin.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, giin.DefaultConfig(), cfg)
}

func TestInitConfigDefaultPath(t *testing.T) {
	out, err := execute(t, &fakePicker{}, "init-config")
	require.NoError(t, err)
	assert.Equal(t, "Config written to "+giin.DefaultConfigFile+"\n", out)
	assert.FileExists(t, giin.DefaultConfigFile)
	assert.NoFileExists(t, "giin.json")
}

func TestConfigFlag(t *testing.T) {
	dir := t.TempDir()
	in := writeCSV(t, dir, validRows()...)
	_, err := execute(t, &fakePicker{}, "--config", filepath.Join(dir, "missing.json"), in, filepath.Join(dir, "out.json"))
	assert.ErrorContains(t, err, "load config")

	_, err = execute(t, &fakePicker{}, "--encoding", "latin1", in, filepath.Join(dir, "out.json"))
	assert.ErrorContains(t, err, "init converter")
}

func TestNewLoggerRejectsLevel(t *testing.T) {
	_, err := newLogger("loud")
	assert.Error(t, err)
	logger, err := newLogger("warn")
	require.NoError(t, err)
	assert.NotNil(t, logger)
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
