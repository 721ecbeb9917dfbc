package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdftools/gateway/pkg/config"
	"pdftools/gateway/pkg/convert"
	"pdftools/gateway/pkg/gateway/types"
	"pdftools/gateway/pkg/telemetry/logging"
	"pdftools/gateway/pkg/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConverter records its inputs and returns canned results.
type fakeConverter struct {
	out     []byte
	err     error
	quality convert.Quality
	inputs  [][]byte
}

func (f *fakeConverter) Compress(ctx context.Context, data []byte, q convert.Quality) ([]byte, error) {
	f.quality = q
	f.inputs = [][]byte{data}
	return f.out, f.err
}

func (f *fakeConverter) Merge(ctx context.Context, inputs [][]byte) ([]byte, error) {
	f.inputs = inputs
	return f.out, f.err
}

func (f *fakeConverter) PDFToWord(ctx context.Context, data []byte) ([]byte, error) {
	f.inputs = [][]byte{data}
	return f.out, f.err
}

type upload struct {
	field, name string
	body        []byte
}

func multipartRequest(t *testing.T, path string, uploads ...upload) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, u := range uploads {
		fw, err := mw.CreateFormFile(u.field, u.name)
		require.NoError(t, err)
		_, err = fw.Write(u.body)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newTestHandler(t *testing.T, conv Converter) (*ConvertHandler, *prometheus.Registry) {
	t.Helper()

	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector("pdf-tools", nil, reg)
	require.NoError(t, err)

	cfg := config.ConvertConfig{MaxUploadBytes: 1 << 20, MaxMergeFiles: 3}
	return NewConvertHandler(conv, collector, logging.Discard(), cfg), reg
}

func series(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) []*dto.Metric {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	var out []*dto.Metric
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	next:
		for _, m := range mf.GetMetric() {
			got := make(map[string]string)
			for _, lp := range m.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if got[k] != v {
					continue next
				}
			}
			out = append(out, m)
		}
	}
	return out
}

func conversions(t *testing.T, reg *prometheus.Registry, conversion, status string) float64 {
	t.Helper()
	var total float64
	for _, m := range series(t, reg, metrics.ConversionTotal, map[string]string{"conversion_type": conversion, "status": status}) {
		total += m.GetCounter().GetValue()
	}
	return total
}

func sizeObservations(t *testing.T, reg *prometheus.Registry, operation string) uint64 {
	t.Helper()
	var total uint64
	for _, m := range series(t, reg, metrics.FileSizeBytes, map[string]string{"operation": operation}) {
		total += m.GetHistogram().GetSampleCount()
	}
	return total
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body types.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body.Detail
}

var samplePDF = []byte("%PDF-1.4\nsample")

func TestRootAndHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Root("1.2.3")(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"PDF Tools API","version":"1.2.3","description":"Free PDF tools - Smallpdf alternative"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Health()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"pdf-tools"}`, rec.Body.String())
}

func TestCompress(t *testing.T) {
	conv := &fakeConverter{out: []byte("%PDF-small")}
	h, reg := newTestHandler(t, conv)

	req := multipartRequest(t, "/compress?quality=high", upload{"file", "report.PDF", samplePDF})
	rec := httptest.NewRecorder()
	h.Compress(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=report-compressed.pdf`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "15", rec.Header().Get("X-Original-Size"))
	assert.Equal(t, "10", rec.Header().Get("X-Compressed-Size"))
	assert.Equal(t, "%PDF-small", rec.Body.String())

	assert.Equal(t, convert.QualityHigh, conv.quality)
	assert.Equal(t, samplePDF, conv.inputs[0])
	assert.Equal(t, 1.0, conversions(t, reg, ConversionCompress, StatusSuccess))
	assert.Equal(t, uint64(1), sizeObservations(t, reg, "compress_input"))
	assert.Equal(t, uint64(1), sizeObservations(t, reg, "compress_output"))
}

func TestCompress_UnknownQualityUsesDefault(t *testing.T) {
	conv := &fakeConverter{out: []byte("%PDF-small")}
	h, reg := newTestHandler(t, conv)

	rec := httptest.NewRecorder()
	h.Compress(rec, multipartRequest(t, "/compress?quality=ultra", upload{"file", "a.pdf", samplePDF}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, convert.DefaultQuality, conv.quality)
	assert.Equal(t, 1.0, conversions(t, reg, ConversionCompress, StatusSuccess))
}

func TestCompress_Validation(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		uploads    []upload
		wantStatus int
		wantDetail string
	}{
		{
			name:       "not a pdf",
			path:       "/compress",
			uploads:    []upload{{"file", "notes.txt", []byte("hello")}},
			wantStatus: http.StatusBadRequest,
			wantDetail: "File must be a PDF",
		},
		{
			name:       "missing file",
			path:       "/compress",
			uploads:    []upload{{"other", "a.pdf", samplePDF}},
			wantStatus: http.StatusBadRequest,
			wantDetail: "File is required",
		},
		{
			name:       "too large",
			path:       "/compress",
			uploads:    []upload{{"file", "a.pdf", bytes.Repeat([]byte("x"), 2<<20)}},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantDetail: "File too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := &fakeConverter{}
			h, reg := newTestHandler(t, conv)

			rec := httptest.NewRecorder()
			h.Compress(rec, multipartRequest(t, tt.path, tt.uploads...))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantDetail, detail(t, rec))
			assert.Nil(t, conv.inputs)
			assert.Zero(t, conversions(t, reg, ConversionCompress, StatusError))
		})
	}
}

func TestCompress_NotMultipart(t *testing.T) {
	h, _ := newTestHandler(t, &fakeConverter{})

	req := httptest.NewRequest(http.MethodPost, "/compress", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Compress(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid multipart form", detail(t, rec))
}

func TestCompress_ConverterErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid pdf", convert.ErrInvalidPDF, http.StatusBadRequest},
		{"library failure", errors.New("optimize: xref table corrupt"), http.StatusInternalServerError},
		{"cancelled", context.Canceled, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, reg := newTestHandler(t, &fakeConverter{err: tt.err})

			rec := httptest.NewRecorder()
			h.Compress(rec, multipartRequest(t, "/compress", upload{"file", "a.pdf", samplePDF}))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.err.Error(), detail(t, rec))
			assert.Equal(t, 1.0, conversions(t, reg, ConversionCompress, StatusError))
			assert.Zero(t, conversions(t, reg, ConversionCompress, StatusSuccess))
			assert.Equal(t, uint64(1), sizeObservations(t, reg, "compress_input"))
			assert.Zero(t, sizeObservations(t, reg, "compress_output"))
		})
	}
}

func TestMerge(t *testing.T) {
	conv := &fakeConverter{out: []byte("%PDF-merged")}
	h, reg := newTestHandler(t, conv)

	req := multipartRequest(t, "/merge",
		upload{"files", "a.pdf", []byte("%PDF-a")},
		upload{"files", "b.pdf", []byte("%PDF-b")},
	)
	rec := httptest.NewRecorder()
	h.Merge(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, `attachment; filename=merged.pdf`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, [][]byte{[]byte("%PDF-a"), []byte("%PDF-b")}, conv.inputs)
	assert.Equal(t, 1.0, conversions(t, reg, ConversionMerge, StatusSuccess))
	assert.Equal(t, uint64(2), sizeObservations(t, reg, "merge_input"))
	assert.Equal(t, uint64(1), sizeObservations(t, reg, "merge_output"))
}

func TestMerge_Validation(t *testing.T) {
	pdf := func(name string) upload { return upload{"files", name, samplePDF} }

	tests := []struct {
		name       string
		uploads    []upload
		wantDetail string
	}{
		{"one file", []upload{pdf("a.pdf")}, "At least 2 PDF files required"},
		{"no files", nil, "At least 2 PDF files required"},
		{"non pdf member", []upload{pdf("a.pdf"), pdf("b.docx")}, "File b.docx is not a PDF"},
		{"too many", []upload{pdf("a.pdf"), pdf("b.pdf"), pdf("c.pdf"), pdf("d.pdf")}, "At most 3 PDF files can be merged"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := &fakeConverter{}
			h, reg := newTestHandler(t, conv)

			rec := httptest.NewRecorder()
			h.Merge(rec, multipartRequest(t, "/merge", tt.uploads...))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantDetail, detail(t, rec))
			assert.Nil(t, conv.inputs)
			assert.Zero(t, conversions(t, reg, ConversionMerge, StatusError))
		})
	}
}

func TestPDFToWord(t *testing.T) {
	conv := &fakeConverter{out: []byte("PK-docx")}
	h, reg := newTestHandler(t, conv)

	rec := httptest.NewRecorder()
	h.PDFToWord(rec, multipartRequest(t, "/pdf-to-word", upload{"file", "thesis.pdf", samplePDF}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, convert.DocxMediaType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=thesis.docx`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, 1.0, conversions(t, reg, ConversionPDFToWord, StatusSuccess))
	assert.Equal(t, uint64(1), sizeObservations(t, reg, "pdf_to_word_output"))
}

func TestPDFToWord_RejectsNonPDF(t *testing.T) {
	h, _ := newTestHandler(t, &fakeConverter{})

	rec := httptest.NewRecorder()
	h.PDFToWord(rec, multipartRequest(t, "/pdf-to-word", upload{"file", "test.txt", []byte("hello")}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, detail(t, rec), "PDF")
}

func TestWordToPDF(t *testing.T) {
	h, reg := newTestHandler(t, &fakeConverter{})

	rec := httptest.NewRecorder()
	h.WordToPDF(rec, multipartRequest(t, "/word-to-pdf", upload{"file", "letter.docx", []byte("PK")}))

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Contains(t, detail(t, rec), "Word to PDF conversion requires additional server setup")
	assert.Equal(t, uint64(1), sizeObservations(t, reg, "word_to_pdf_input"))
	assert.Zero(t, conversions(t, reg, ConversionWordToPDF, StatusError))

	rec = httptest.NewRecorder()
	h.WordToPDF(rec, multipartRequest(t, "/word-to-pdf", upload{"file", "test.pdf", []byte("hello")}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "File must be a Word document", detail(t, rec))
}

func TestReplaceExt(t *testing.T) {
	assert.Equal(t, "report-compressed.pdf", replaceExt("report.pdf", compressedSuffix))
	assert.Equal(t, "a.b.docx", replaceExt("a.b.pdf", ".docx"))
	assert.Equal(t, "document.docx", replaceExt(".pdf", ".docx"))
}
