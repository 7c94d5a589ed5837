// Package htmlmd converts crawled HTML bodies to markdown for the
// content operation.
package htmlmd

import (
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Convert renders an HTML document as markdown. Empty input yields
// empty output without touching the converter.
func Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}
	md, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}
