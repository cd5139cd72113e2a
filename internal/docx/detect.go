package docx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/richardlehane/mscfb"
)

// Format represents a word-processing file format.
type Format int

const (
	FormatUnknown Format = iota
	FormatDocx           // OOXML zip package
	FormatDoc            // legacy binary .doc (OLE compound file)
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatDocx:
		return "docx"
	case FormatDoc:
		return "doc"
	default:
		return "unknown"
	}
}

// DetectFormat detects the document format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".docx", ".docm":
		return FormatDocx
	case ".doc":
		return FormatDoc
	default:
		return FormatUnknown
	}
}

// DetectFormatFromReader detects the format by reading magic bytes.
func DetectFormatFromReader(r io.ReaderAt) (Format, error) {
	buf := make([]byte, 8)
	n, err := r.ReadAt(buf, 0)
	if err != nil && err != io.EOF {
		return FormatUnknown, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if n < 4 {
		return FormatUnknown, fmt.Errorf("file too small to detect format")
	}

	// ZIP magic number (OOXML package)
	if buf[0] == 'P' && buf[1] == 'K' {
		return FormatDocx, nil
	}

	// OLE/CFBF magic number (legacy .doc)
	if buf[0] == 0xD0 && buf[1] == 0xCF && buf[2] == 0x11 && buf[3] == 0xE0 {
		return FormatDoc, nil
	}

	return FormatUnknown, nil
}

// rejectLegacyDoc inspects an OLE compound file and reports a targeted
// error: legacy Word binaries carry a WordDocument stream, other compound
// files do not.
func rejectLegacyDoc(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	cfb, err := mscfb.New(f)
	if err != nil {
		return fmt.Errorf("failed to parse OLE compound file: %w", err)
	}

	for _, entry := range cfb.File {
		if entry.Name == "WordDocument" {
			return fmt.Errorf("%s is a legacy binary .doc file; convert it to .docx first", path)
		}
	}
	return fmt.Errorf("%s is an OLE compound file but not a Word document", path)
}
