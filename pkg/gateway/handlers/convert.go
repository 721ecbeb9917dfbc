package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"pdftools/gateway/pkg/config"
	"pdftools/gateway/pkg/convert"
	"pdftools/gateway/pkg/gateway/types"
	"pdftools/gateway/pkg/telemetry/metrics"
)

// Conversion types used as the conversion_type label.
const (
	ConversionCompress  = "compress"
	ConversionMerge     = "merge"
	ConversionPDFToWord = "pdf_to_word"
	ConversionWordToPDF = "word_to_pdf"
)

// Conversion outcomes used as the status label of conversion_total.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Converter performs the document conversions. *convert.Engine implements it.
type Converter interface {
	Compress(ctx context.Context, data []byte, q convert.Quality) ([]byte, error)
	Merge(ctx context.Context, inputs [][]byte) ([]byte, error)
	PDFToWord(ctx context.Context, data []byte) ([]byte, error)
}

// ConvertHandler serves the /api/v1/convert endpoints.
type ConvertHandler struct {
	converter      Converter
	metrics        *metrics.Collector
	logger         *slog.Logger
	maxUploadBytes int64
	maxMergeFiles  int
}

// NewConvertHandler creates a handler that delegates to converter and
// records into collector.
func NewConvertHandler(converter Converter, collector *metrics.Collector, logger *slog.Logger, cfg config.ConvertConfig) *ConvertHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConvertHandler{
		converter:      converter,
		metrics:        collector,
		logger:         logger,
		maxUploadBytes: cfg.MaxUploadBytes,
		maxMergeFiles:  cfg.MaxMergeFiles,
	}
}

// Compress handles POST /compress. The optional quality query parameter is
// one of low, medium or high; any other value compresses at the default
// quality.
func (h *ConvertHandler) Compress(w http.ResponseWriter, r *http.Request) {
	if err := parseUpload(w, r, h.maxUploadBytes); err != nil {
		h.writeError(w, err)
		return
	}
	fh, err := formFile(r, "file")
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !hasExt(fh.Filename, ".pdf") {
		h.writeError(w, badRequest(detailMustBePDF))
		return
	}
	quality, err := convert.ParseQuality(r.URL.Query().Get("quality"))
	if err != nil {
		h.logger.WarnContext(r.Context(), "unknown compression quality, using default",
			"quality", r.URL.Query().Get("quality"),
			"default", convert.DefaultQuality,
		)
		quality = convert.DefaultQuality
	}

	start := time.Now()
	data, err := readFile(fh)
	if err != nil {
		h.fail(w, r, ConversionCompress, err)
		return
	}
	h.observeSize(r.Context(), ConversionCompress+"_input", len(data))

	out, err := h.converter.Compress(r.Context(), data, quality)
	if err != nil {
		h.fail(w, r, ConversionCompress, err)
		return
	}
	h.observeSize(r.Context(), ConversionCompress+"_output", len(out))
	h.succeed(r, ConversionCompress, len(data), len(out), start)

	w.Header().Set("X-Original-Size", strconv.Itoa(len(data)))
	w.Header().Set("X-Compressed-Size", strconv.Itoa(len(out)))
	writeAttachment(w, mediaTypePDF, replaceExt(fh.Filename, compressedSuffix), out)
}

// Merge handles POST /merge. Files are merged in upload order.
func (h *ConvertHandler) Merge(w http.ResponseWriter, r *http.Request) {
	if err := parseUpload(w, r, h.maxUploadBytes); err != nil {
		h.writeError(w, err)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) < 2 {
		h.writeError(w, badRequest(detailNeedTwoFiles))
		return
	}
	if h.maxMergeFiles > 0 && len(files) > h.maxMergeFiles {
		h.writeError(w, badRequest(fmt.Sprintf("At most %d PDF files can be merged", h.maxMergeFiles)))
		return
	}
	for _, fh := range files {
		if !hasExt(fh.Filename, ".pdf") {
			h.writeError(w, badRequest(fmt.Sprintf("File %s is not a PDF", fh.Filename)))
			return
		}
	}

	start := time.Now()
	inputs := make([][]byte, 0, len(files))
	total := 0
	for _, fh := range files {
		data, err := readFile(fh)
		if err != nil {
			h.fail(w, r, ConversionMerge, err)
			return
		}
		h.observeSize(r.Context(), ConversionMerge+"_input", len(data))
		inputs = append(inputs, data)
		total += len(data)
	}

	out, err := h.converter.Merge(r.Context(), inputs)
	if err != nil {
		h.fail(w, r, ConversionMerge, err)
		return
	}
	h.observeSize(r.Context(), ConversionMerge+"_output", len(out))
	h.succeed(r, ConversionMerge, total, len(out), start)

	writeAttachment(w, mediaTypePDF, mergedFilename, out)
}

// PDFToWord handles POST /pdf-to-word.
func (h *ConvertHandler) PDFToWord(w http.ResponseWriter, r *http.Request) {
	if err := parseUpload(w, r, h.maxUploadBytes); err != nil {
		h.writeError(w, err)
		return
	}
	fh, err := formFile(r, "file")
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !hasExt(fh.Filename, ".pdf") {
		h.writeError(w, badRequest(detailMustBePDF))
		return
	}

	start := time.Now()
	data, err := readFile(fh)
	if err != nil {
		h.fail(w, r, ConversionPDFToWord, err)
		return
	}
	h.observeSize(r.Context(), ConversionPDFToWord+"_input", len(data))

	out, err := h.converter.PDFToWord(r.Context(), data)
	if err != nil {
		h.fail(w, r, ConversionPDFToWord, err)
		return
	}
	h.observeSize(r.Context(), ConversionPDFToWord+"_output", len(out))
	h.succeed(r, ConversionPDFToWord, len(data), len(out), start)

	writeAttachment(w, convert.DocxMediaType, replaceExt(fh.Filename, ".docx"), out)
}

// WordToPDF handles POST /word-to-pdf. The upload is validated and measured,
// then the request is answered with 501 because no Word renderer is
// installed. Answering 501 is not counted as a failed conversion.
func (h *ConvertHandler) WordToPDF(w http.ResponseWriter, r *http.Request) {
	if err := parseUpload(w, r, h.maxUploadBytes); err != nil {
		h.writeError(w, err)
		return
	}
	fh, err := formFile(r, "file")
	if err != nil {
		h.writeError(w, err)
		return
	}
	if !hasExt(fh.Filename, ".doc", ".docx") {
		h.writeError(w, badRequest(detailMustBeWord))
		return
	}

	data, err := readFile(fh)
	if err != nil {
		h.fail(w, r, ConversionWordToPDF, err)
		return
	}
	h.observeSize(r.Context(), ConversionWordToPDF+"_input", len(data))

	types.WriteDetail(w, http.StatusNotImplemented, detailWordToPDF)
}

// fail records a failed conversion and writes the matching error response.
// Inputs rejected by the converter answer 400, everything else 500.
func (h *ConvertHandler) fail(w http.ResponseWriter, r *http.Request, conversion string, err error) {
	h.recordConversion(r.Context(), conversion, StatusError)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, convert.ErrInvalidPDF), errors.Is(err, convert.ErrTooFewInputs):
		status = http.StatusBadRequest
		h.logger.InfoContext(r.Context(), "conversion rejected input",
			"conversion_type", conversion,
			"error", err,
		)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logger.WarnContext(r.Context(), "conversion cancelled",
			"conversion_type", conversion,
			"error", err,
		)
	default:
		h.logger.ErrorContext(r.Context(), "conversion failed",
			"conversion_type", conversion,
			"error", err,
		)
	}

	types.WriteDetail(w, status, err.Error())
}

func (h *ConvertHandler) succeed(r *http.Request, conversion string, inBytes, outBytes int, start time.Time) {
	h.recordConversion(r.Context(), conversion, StatusSuccess)
	h.logger.InfoContext(r.Context(), "conversion completed",
		"conversion_type", conversion,
		"input_bytes", inBytes,
		"output_bytes", outBytes,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (h *ConvertHandler) writeError(w http.ResponseWriter, err error) {
	var he *httpError
	if errors.As(err, &he) {
		types.WriteDetail(w, he.status, he.detail)
		return
	}
	types.WriteDetail(w, http.StatusInternalServerError, err.Error())
}

func (h *ConvertHandler) recordConversion(ctx context.Context, conversion, status string) {
	if err := h.metrics.RecordConversion(conversion, status); err != nil {
		h.logger.ErrorContext(ctx, "failed to record conversion",
			"conversion_type", conversion,
			"status", status,
			"error", err,
		)
	}
}

func (h *ConvertHandler) observeSize(ctx context.Context, operation string, size int) {
	if err := h.metrics.ObserveFileSize(operation, int64(size)); err != nil {
		h.logger.ErrorContext(ctx, "failed to record file size",
			"operation", operation,
			"error", err,
		)
	}
}
