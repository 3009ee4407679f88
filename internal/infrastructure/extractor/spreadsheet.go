package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kucp1127/clarityvault-gateway/internal/core/domain"
)

func fromSpreadsheet(raw []byte) (domain.ExtractedText, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return domain.ExtractedText{}, fmt.Errorf("parse spreadsheet: %w", err)
	}
	defer func() { _ = workbook.Close() }()

	var builder strings.Builder
	sheets := workbook.GetSheetList()
	for _, sheet := range sheets {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			continue
		}
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, " "))
			if line == "" {
				continue
			}
			builder.WriteString(line)
			builder.WriteString("\n")
		}
	}

	return domain.ExtractedText{
		Text:      strings.TrimSpace(builder.String()),
		PageCount: len(sheets),
	}, nil
}
