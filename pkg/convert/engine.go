package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var (
	// ErrInvalidPDF is returned when an input does not carry a PDF header.
	ErrInvalidPDF = errors.New("input is not a PDF document")

	// ErrInvalidQuality is returned by ParseQuality for unknown names.
	ErrInvalidQuality = errors.New("invalid compression quality")

	// ErrTooFewInputs is returned by Merge when given fewer than two documents.
	ErrTooFewInputs = errors.New("at least 2 PDF files required")
)

// pdfHeader is the magic every PDF file starts with.
var pdfHeader = []byte("%PDF-")

var disableConfigDir sync.Once

// Engine runs conversions. The zero value is not usable; call NewEngine.
type Engine struct {
	tempDir string
}

// NewEngine returns an engine that creates scratch directories under tempDir
// (os.TempDir() when empty).
func NewEngine(tempDir string) *Engine {
	// pdfcpu would otherwise create a configuration directory in the
	// user's home on first use.
	disableConfigDir.Do(api.DisableConfigDir)
	return &Engine{tempDir: tempDir}
}

func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Compress rewrites the PDF in data with pdfcpu's optimizer using the write
// options selected by q.
func (e *Engine) Compress(ctx context.Context, data []byte, q Quality) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := sniff(data); err != nil {
		return nil, err
	}

	conf := newConfiguration()
	q.apply(conf)

	var out bytes.Buffer
	if err := api.Optimize(bytes.NewReader(data), &out, conf); err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}
	return out.Bytes(), nil
}

// Merge concatenates the pages of inputs, in order, into one document.
func (e *Engine) Merge(ctx context.Context, inputs [][]byte) ([]byte, error) {
	if len(inputs) < 2 {
		return nil, ErrTooFewInputs
	}

	readers := make([]io.ReadSeeker, 0, len(inputs))
	for i, data := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := sniff(data); err != nil {
			return nil, fmt.Errorf("input %d: %w", i+1, err)
		}
		readers = append(readers, bytes.NewReader(data))
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, newConfiguration()); err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}
	return out.Bytes(), nil
}

// PDFToWord extracts the text of every page and returns it as a DOCX
// document, one paragraph per text line and a page break between pages.
// Layout, images and fonts are not carried over.
func (e *Engine) PDFToWord(ctx context.Context, data []byte) ([]byte, error) {
	pages, err := e.ExtractText(ctx, data)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := WriteDocx(&out, pages); err != nil {
		return nil, fmt.Errorf("write docx: %w", err)
	}
	return out.Bytes(), nil
}

// ExtractText returns the decoded text lines of each page.
func (e *Engine) ExtractText(ctx context.Context, data []byte) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := sniff(data); err != nil {
		return nil, err
	}

	count, err := api.PageCount(bytes.NewReader(data), newConfiguration())
	if err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}

	dir, err := os.MkdirTemp(e.tempDir, "pdftools-extract-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	const base = "doc"
	if err := api.ExtractContent(bytes.NewReader(data), dir, base, nil, newConfiguration()); err != nil {
		return nil, fmt.Errorf("extract content: %w", err)
	}

	pages := make([][]string, count)
	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := filepath.Join(dir, base+"_Content_page_"+strconv.Itoa(i)+".txt")
		stream, err := os.ReadFile(name)
		if errors.Is(err, os.ErrNotExist) {
			// Pages without a content stream produce no file.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read page %d: %w", i, err)
		}
		pages[i-1] = TextLines(stream)
	}
	return pages, nil
}

func sniff(data []byte) error {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), pdfHeader) {
		return ErrInvalidPDF
	}
	return nil
}
