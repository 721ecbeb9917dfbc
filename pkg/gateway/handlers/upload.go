package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
)

// multipartMemory is the part of a multipart body kept in memory before
// parts spill to temporary files.
const multipartMemory = 32 << 20

// Client-facing detail messages.
const (
	detailFileRequired = "File is required"
	detailInvalidForm  = "Invalid multipart form"
	detailFileTooLarge = "File too large"
	detailMustBePDF    = "File must be a PDF"
	detailMustBeWord   = "File must be a Word document"
	detailNeedTwoFiles = "At least 2 PDF files required"
	detailWordToPDF    = "Word to PDF conversion requires additional server setup. Please use the compress or merge tools instead."
)

const (
	mediaTypePDF     = "application/pdf"
	mergedFilename   = "merged.pdf"
	compressedSuffix = "-compressed.pdf"
)

// httpError is a failure that maps to a client-facing status and detail.
type httpError struct {
	status int
	detail string
}

func (e *httpError) Error() string {
	return e.detail
}

func badRequest(detail string) *httpError {
	return &httpError{status: http.StatusBadRequest, detail: detail}
}

// parseUpload applies the body size limit and parses the multipart form.
func parseUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &httpError{status: http.StatusRequestEntityTooLarge, detail: detailFileTooLarge}
		}
		return badRequest(detailInvalidForm)
	}
	return nil
}

// formFile returns the single uploaded file stored under field.
func formFile(r *http.Request, field string) (*multipart.FileHeader, error) {
	if r.MultipartForm == nil {
		return nil, badRequest(detailFileRequired)
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil, badRequest(detailFileRequired)
	}
	return files[0], nil
}

// readFile reads the whole content of an uploaded file.
func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}
	return data, nil
}

// hasExt reports whether name ends with one of exts, ignoring case.
func hasExt(name string, exts ...string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// replaceExt swaps the extension of name for suffix.
func replaceExt(name, suffix string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		base = "document"
	}
	return base + suffix
}

// writeAttachment streams body as a download named filename.
func writeAttachment(w http.ResponseWriter, mediaType, filename string, body []byte) {
	h := w.Header()
	h.Set("Content-Type", mediaType)
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	h.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
