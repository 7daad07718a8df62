package mockserver

import _ "embed"

// samplePDF is served by /preview-pdf.
//
//go:embed testdata/sample.pdf
var samplePDF []byte
