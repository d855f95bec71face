// Package web carries the console's page templates and browser assets in
// the binary.
package web

import "embed"

// Templates holds layouts, partials, pages and the printable documents.
//
//go:embed templates/layouts templates/partials templates/pages templates/documents
var Templates embed.FS

// Static holds the stylesheet, the page script and images served under /static/.
//
//go:embed static/css static/js static/img
var Static embed.FS
