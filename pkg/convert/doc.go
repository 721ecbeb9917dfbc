// Package convert implements the gateway's document conversions on top of
// pdfcpu: compression (optimize), merging, and a text-only PDF to DOCX
// conversion.
//
// PDF parsing and writing are delegated to pdfcpu. This package decides
// which pdfcpu options each request maps to, turns extracted content streams
// into text lines, and packages those lines as a WordprocessingML document.
//
// An Engine is safe for concurrent use; every call builds its own pdfcpu
// configuration.
package convert
