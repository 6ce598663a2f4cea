package utils

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// DecodeHTML converts body to UTF-8 using the charset declared in contentType
// or, failing that, in the document's own meta tags.
func DecodeHTML(body []byte, contentType string) (io.Reader, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode html: %w", err)
	}
	return r, nil
}
