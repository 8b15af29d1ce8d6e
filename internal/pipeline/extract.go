package pipeline

import (
	"bytes"
	"fmt"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// ExtractPDFText pulls the plain text out of a bulletin PDF, page by page.
// Pages that fail to decode are skipped; the parser tolerates the resulting
// gaps.
func ExtractPDFText(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString("\n")
		b.WriteString(text)
		b.WriteString("\n")
	}
	return b.String(), nil
}
