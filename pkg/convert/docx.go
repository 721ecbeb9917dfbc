package convert

import (
	"fmt"
	"io"

	"github.com/fumiama/go-docx"
)

// DocxMediaType is the media type of the documents written by WriteDocx.
const DocxMediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// WriteDocx writes a WordprocessingML package containing pages, one
// paragraph per line and a page break between pages. An empty page becomes an
// empty paragraph so page boundaries survive.
func WriteDocx(w io.Writer, pages [][]string) error {
	doc := docx.New().WithDefaultTheme()

	for i, lines := range pages {
		if i > 0 {
			doc.AddParagraph().AddPageBreaks()
		}
		if len(lines) == 0 {
			doc.AddParagraph()
			continue
		}
		for _, line := range lines {
			doc.AddParagraph().AddText(line)
		}
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx package: %w", err)
	}
	return nil
}
