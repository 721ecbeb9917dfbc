// Pdftools serves the PDF Tools API: PDF compression, merging and PDF to
// Word conversion, instrumented with Prometheus metrics and crawler
// detection.
//
// Usage:
//
//	# Start the server with defaults (listens on 0.0.0.0:8000)
//	pdftools serve
//
//	# Start with a configuration file and a .env file
//	pdftools serve --config /etc/pdftools/config.yaml --env-file /etc/pdftools/.env
//
//	# Print the effective configuration after validation
//	pdftools config validate --config config.yaml
//
//	# Show version information
//	pdftools version
package main

import "os"

func main() {
	os.Exit(Execute())
}
