package parser

import (
	"io"

	"golang.org/x/net/html/charset"
)

// NewUTF8Reader converts an HTML body to UTF-8 before it reaches goquery.
//
// contentType is the response Content-Type header and may be empty. The
// encoding is taken from its charset parameter when present, otherwise from
// a BOM or a <meta> declaration in the first bytes of the document.
// UTF-8 input passes through unchanged.
func NewUTF8Reader(body io.Reader, contentType string) (io.Reader, error) {
	return charset.NewReader(body, contentType)
}
