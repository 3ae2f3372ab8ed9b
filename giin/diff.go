package giin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/wI2L/jsondiff"
)

// Diff rebuilds input and compares the result with the JSON document at
// existing. The patch turns the existing document into the rebuilt one.
func (c *Converter) Diff(ctx context.Context, input, existing string) (jsondiff.Patch, error) {
	res, err := c.Build(ctx, input)
	if err != nil {
		return nil, err
	}
	before, err := os.ReadFile(existing)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", existing)
	}
	var after bytes.Buffer
	if err := EncodeTree(&after, res.Tree, c.cfg.Indent); err != nil {
		return nil, err
	}
	patch, err := jsondiff.CompareJSON(before, after.Bytes())
	if err != nil {
		return nil, errors.Wrapf(err, "compare with %s", existing)
	}
	return patch, nil
}

// PrintPatch writes one line per patch operation.
func PrintPatch(w io.Writer, patch jsondiff.Patch) {
	if len(patch) == 0 {
		fmt.Fprintln(w, "No changes")
		return
	}
	for _, op := range patch {
		switch op.Type {
		case jsondiff.OperationRemove:
			fmt.Fprintf(w, "%s %s\n", op.Type, op.Path)
		case jsondiff.OperationMove, jsondiff.OperationCopy:
			fmt.Fprintf(w, "%s %s -> %s\n", op.Type, op.From, op.Path)
		default:
			value, err := json.Marshal(op.Value)
			if err != nil {
				value = []byte("?")
			}
			fmt.Fprintf(w, "%s %s %s\n", op.Type, op.Path, value)
		}
	}
	fmt.Fprintf(w, "%d changes\n", len(patch))
}
