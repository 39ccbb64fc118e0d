package annex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	diffpatch "github.com/sourcegraph/go-diff-patch"
)

// UniqueName returns path if nothing exists there, otherwise the first of
// name_1.ext, name_2.ext, ... that is free.
func UniqueName(path string) string {
	if !exists(path) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		cand := fmt.Sprintf("%s_%d%s", base, i, ext)
		if !exists(cand) {
			return cand
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// ReplaceExt swaps the extension of path, e.g. form.docx -> form_data.xlsx
// with suffix "_data" and ext ".xlsx".
func ReplaceExt(path, suffix, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + suffix + ext
}

// Render formats a document one row per block, for review and diffing.
func Render(doc *Document) string {
	var b strings.Builder
	for i, row := range doc.Rows {
		fmt.Fprintf(&b, "[%d] %s\n", i+1, row.AnnexRef)
		for _, f := range Fields[1:] {
			v := row.Value(f)
			if v == "" {
				continue
			}
			fmt.Fprintf(&b, "  %s %s\n", f.Header(), strings.ReplaceAll(v, "\n", "\n    "))
		}
	}
	return b.String()
}

// Diff returns a unified diff between the renderings of two documents, or
// the empty string when they render the same.
func Diff(name string, before, after *Document) string {
	a, b := Render(before), Render(after)
	if a == b {
		return ""
	}
	return diffpatch.GeneratePatch(name, a, b)
}
