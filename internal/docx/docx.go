// Package docx loads and saves .docx packages, mapping the main document
// part onto the internal/doc model. Package parts other than
// word/document.xml are retained verbatim so a load/save round trip only
// rewrites what the formatter touched.
package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/smartdoc-io/smartdoc/internal/doc"
)

const documentPart = "word/document.xml"

// File is a document handle: the mutable model plus everything needed to
// write the package back out.
type File struct {
	Doc *doc.Document

	parts      map[string][]byte // passthrough package parts
	sectPr     string            // raw section properties from the source body
	styleNames map[string]string // style ID -> display name
}

// New creates an empty in-memory document backed by minimal default
// package parts.
func New() *File {
	return &File{
		Doc:        doc.New(),
		parts:      nil, // defaults are materialized at save time
		styleNames: nil,
	}
}

// Load opens a .docx file and parses its main document part. Missing or
// corrupt files are hard failures; a legacy binary .doc is rejected with a
// targeted error.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	format, err := DetectFormatFromReader(f)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatDoc:
		return nil, rejectLegacyDoc(path)
	case FormatDocx:
		// fall through
	default:
		return nil, fmt.Errorf("%s is not a .docx file", path)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open docx package: %w", err)
	}
	defer zr.Close()

	file := &File{
		Doc:        doc.New(),
		parts:      make(map[string][]byte),
		styleNames: make(map[string]string),
	}

	var docData []byte
	for _, zf := range zr.File {
		data, err := readZipFile(zf)
		if err != nil {
			return nil, fmt.Errorf("failed to read package part %s: %w", zf.Name, err)
		}
		if zf.Name == documentPart {
			docData = data
			continue
		}
		file.parts[zf.Name] = data
	}

	if docData == nil {
		return nil, fmt.Errorf("%s not found in %s", documentPart, path)
	}

	if stylesData, ok := file.parts["word/styles.xml"]; ok {
		file.styleNames = parseStyleNames(stylesData)
	}

	if err := file.parseDocument(docData); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", documentPart, err)
	}

	return file, nil
}

// Save writes the document to path, regenerating the main document part and
// passing the retained parts through. A fresh document gets minimal default
// parts.
func (f *File) Save(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	parts := f.parts
	if len(parts) == 0 {
		parts = defaultParts()
	}

	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("failed to write package part %s: %w", name, err)
		}
		if _, err := w.Write(parts[name]); err != nil {
			return fmt.Errorf("failed to write package part %s: %w", name, err)
		}
	}

	w, err := zw.Create(documentPart)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", documentPart, err)
	}
	if _, err := w.Write(f.renderDocument()); err != nil {
		return fmt.Errorf("failed to write %s: %w", documentPart, err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize docx package: %w", err)
	}
	return nil
}

func readZipFile(zf *zip.File) ([]byte, error) {
	rc, err := zf.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
