package edinet

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"
)

// Archive member markers. EDINET packages carry the narrative chapters in
// "honbun" iXBRL files and the cover-page fields in a "header" file.
const (
	fullTextMarker   = "honbun"
	structuredMarker = "ixbrl"
	headerMarker     = "header"
)

// FilingArchive is the decoded content of one downloaded document package.
type FilingArchive struct {
	Sections []SectionFile // full-text iXBRL chapters
	Header   *SectionFile  // cover-page header, nil when absent
}

// OpenFilingArchive selects and reads the relevant members of a document
// package. A package without full-text members is not an error; extraction
// simply degrades downstream.
func OpenFilingArchive(data []byte) (*FilingArchive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open document package: %w", err)
	}

	arc := &FilingArchive{}
	for _, f := range zr.File {
		name := f.Name
		isFullText := strings.Contains(name, fullTextMarker) && strings.Contains(name, structuredMarker)
		isHeader := strings.Contains(name, headerMarker)
		if !isFullText && !isHeader {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			log.Printf("Warning: failed to open archive member %s: %v", name, err)
			continue
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			log.Printf("Warning: failed to read archive member %s: %v", name, err)
			continue
		}

		sec := SectionFile{Name: name, Content: string(content)}
		if isHeader && arc.Header == nil {
			arc.Header = &sec
			continue
		}
		if isFullText {
			arc.Sections = append(arc.Sections, sec)
		}
	}
	return arc, nil
}
