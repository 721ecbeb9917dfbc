// Package handlers implements the HTTP endpoints of the PDF tools gateway.
//
// Service endpoints:
//   - GET / returns the service name, version and description
//   - GET /health returns {"status":"healthy","service":"pdf-tools"}
//
// Conversion endpoints, mounted under /api/v1/convert:
//   - POST /compress rewrites a PDF with the requested quality
//   - POST /merge concatenates two or more PDFs
//   - POST /pdf-to-word extracts the text of a PDF into a DOCX document
//   - POST /word-to-pdf validates the upload and answers 501
//
// Every conversion observes file_size_bytes for its inputs and outputs and
// counts conversion_total with status "success" or "error". Error bodies use
// the {"detail": "<message>"} shape from package types.
package handlers
