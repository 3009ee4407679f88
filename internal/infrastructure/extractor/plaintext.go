package extractor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
)

func fromPlainText(raw []byte, filename string) (domain.ExtractedText, error) {
	if !utf8.Valid(raw) {
		return domain.ExtractedText{}, fmt.Errorf("unsupported binary format: %s", filename)
	}
	text := strings.TrimSpace(string(raw))
	pages := 0
	if text != "" {
		pages = 1
	}
	return domain.ExtractedText{Text: text, PageCount: pages}, nil
}
