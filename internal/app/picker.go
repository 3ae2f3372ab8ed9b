package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const fyneAppID = "com.openceo2025.csv2giin"

// ErrCancelled is returned when the user dismisses a file dialog.
var ErrCancelled = errors.New("file selection cancelled")

// Selection is the pair of paths a conversion needs.
type Selection struct {
	Input  string
	Output string
}

// CheckFunc inspects the chosen input before an output path is requested.
// A non-nil error ends the selection without asking for the output.
type CheckFunc func(input string) error

// Picker fills in the missing paths of a Selection.
type Picker interface {
	Pick(ctx context.Context, sel Selection, check CheckFunc) (Selection, error)
}

// DialogPicker asks for paths with native Fyne file dialogs.
type DialogPicker struct {
	Title string
}

// NewDialogPicker returns the desktop picker.
func NewDialogPicker() *DialogPicker {
	return &DialogPicker{Title: "csv2giin"}
}

// Pick opens a CSV file dialog when sel.Input is empty, runs check, then
// opens a save dialog when sel.Output is empty. The Fyne event loop only
// starts when a dialog is needed and runs until both paths are known or the
// user cancels.
func (p *DialogPicker) Pick(ctx context.Context, sel Selection, check CheckFunc) (Selection, error) {
	if err := ctx.Err(); err != nil {
		return sel, err
	}
	if sel.Input != "" {
		if err := runCheck(check, sel.Input); err != nil {
			return sel, err
		}
		if sel.Output != "" {
			return sel, nil
		}
	}

	a := fyneapp.NewWithID(fyneAppID)
	w := a.NewWindow(p.Title)
	w.Resize(fyne.NewSize(800, 600))
	status := widget.NewLabel("CSVファイルを選択してください")
	w.SetContent(status)

	result := ErrCancelled
	done := false
	finish := func(err error) {
		if done {
			return
		}
		done = true
		result = err
		a.Quit()
	}
	w.SetOnClosed(func() { finish(ErrCancelled) })

	askOutput := func() {
		if sel.Output != "" {
			finish(nil)
			return
		}
		status.SetText("保存先のJSONファイルを選択してください")
		fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
			if err != nil {
				finish(err)
				return
			}
			if uc == nil {
				finish(ErrCancelled)
				return
			}
			chosen := uc.URI().Path()
			_ = uc.Close()
			sel.Output = withJSONExt(chosen)
			if sel.Output != chosen {
				removeIfEmpty(chosen)
			}
			finish(nil)
		}, w)
		fd.SetFileName(defaultOutputName(sel.Input))
		fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
		if dir, err := storage.ListerForURI(storage.NewFileURI(filepath.Dir(sel.Input))); err == nil {
			fd.SetLocation(dir)
		}
		fd.Show()
	}

	if sel.Input != "" {
		askOutput()
	} else {
		fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				finish(err)
				return
			}
			if rc == nil {
				finish(ErrCancelled)
				return
			}
			sel.Input = rc.URI().Path()
			_ = rc.Close()
			if err := runCheck(check, sel.Input); err != nil {
				finish(err)
				return
			}
			askOutput()
		}, w)
		fd.SetFilter(storage.NewExtensionFileFilter([]string{".csv"}))
		fd.Show()
	}

	w.ShowAndRun()
	return sel, result
}

func runCheck(check CheckFunc, input string) error {
	if check == nil {
		return nil
	}
	return check(input)
}

// defaultOutputName proposes <input stem>.json.
func defaultOutputName(input string) string {
	base := filepath.Base(input)
	if input == "" || base == "." || base == string(filepath.Separator) {
		return "giin.json"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}

// withJSONExt appends .json to paths chosen without an extension.
func withJSONExt(path string) string {
	if filepath.Ext(path) == "" {
		return path + ".json"
	}
	return path
}

// removeIfEmpty deletes the placeholder the save dialog creates.
func removeIfEmpty(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() != 0 {
		return
	}
	_ = os.Remove(path)
}
