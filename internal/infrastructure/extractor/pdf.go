package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
)

func fromPDF(raw []byte) (domain.ExtractedText, error) {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return domain.ExtractedText{}, fmt.Errorf("parse pdf: %w", err)
	}

	var builder strings.Builder
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not fail the document.
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return domain.ExtractedText{
		Text:      strings.TrimSpace(builder.String()),
		PageCount: pages,
	}, nil
}
