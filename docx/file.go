// Package docx reads and edits the table of a legacy word-processing form
// directly in its OOXML container.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	documentPart = "word/document.xml"
	settingsPart = "word/settings.xml"
)

type part struct {
	header zip.FileHeader
	data   []byte
}

// File is an opened .docx document. Only the main document and settings
// parts are parsed; every other part is carried through unchanged.
type File struct {
	parts    []part
	document *node
	settings *node
}

func Open(path string) (*File, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Read(bytes.NewReader(bs), int64(len(bs)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

func Read(r io.ReaderAt, size int64) (*File, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}

	var f File
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", zf.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", zf.Name, err)
		}

		switch zf.Name {
		case documentPart:
			if f.document, err = parseXML(data); err != nil {
				return nil, fmt.Errorf("parse %s: %w", zf.Name, err)
			}
		case settingsPart:
			if f.settings, err = parseXML(data); err != nil {
				return nil, fmt.Errorf("parse %s: %w", zf.Name, err)
			}
		}
		f.parts = append(f.parts, part{header: zf.FileHeader, data: data})
	}

	if f.document == nil {
		return nil, errors.New(documentPart + " not found")
	}
	return &f, nil
}

// Write serialises the document, including any edits, as a zip container.
func (f *File) Write(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, p := range f.parts {
		data := p.data
		switch p.header.Name {
		case documentPart:
			data = f.document.bytes()
		case settingsPart:
			if f.settings != nil {
				data = f.settings.bytes()
			}
		}

		fh := &zip.FileHeader{
			Name:     p.header.Name,
			Comment:  p.header.Comment,
			Method:   p.header.Method,
			Modified: p.header.Modified,
		}
		pw, err := zw.CreateHeader(fh)
		if err != nil {
			return fmt.Errorf("create %s: %w", p.header.Name, err)
		}
		if _, err := pw.Write(data); err != nil {
			return fmt.Errorf("write %s: %w", p.header.Name, err)
		}
	}
	return zw.Close()
}

// Save writes the document to path. The file only appears once it has
// been completely written.
func (f *File) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".annex-*.docx")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (f *File) body() *node {
	var body *node
	f.document.walk(func(n *node) bool {
		if body != nil {
			return false
		}
		if n.is("body") {
			body = n
			return false
		}
		return true
	})
	return body
}
