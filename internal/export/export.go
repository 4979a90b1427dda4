// Package export writes the visitor list as an XLSX workbook.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/diewo77/go-visitors/i18n"
	"github.com/diewo77/go-visitors/internal/models"
	"github.com/xuri/excelize/v2"
)

const dateTimeLayout = "2006-01-02 15:04"

func headers(lang i18n.Lang) []string {
	keys := []i18n.Key{
		i18n.ColNo, i18n.ColName, i18n.ColCompany, i18n.ColHost, i18n.HostEmail,
		i18n.ColPhone, i18n.Email, i18n.CheckIn, i18n.CheckOut, i18n.Status,
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = i18n.Text(lang, k)
	}
	return out
}

var columnWidths = []float64{6, 28, 24, 22, 28, 16, 28, 18, 18, 12}

// GuestListXLSX renders visitors, one row each, in list order. Times are
// written in loc (UTC when nil).
func GuestListXLSX(visitors []models.Visitor, lang i18n.Lang, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := excelize.NewFile()
	defer f.Close()

	sheet := i18n.Text(lang, i18n.SheetGuests)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DCDCDC"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	hdr := headers(lang)
	if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(hdr), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	for i, w := range columnWidths {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, name, name, w); err != nil {
			return nil, fmt.Errorf("column width: %w", err)
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	for i, v := range visitors {
		out := ""
		if t, ok := v.CheckedOutAt(); ok {
			out = t.In(loc).Format(dateTimeLayout)
		}
		status := i18n.Text(lang, i18n.StatusIn)
		if !v.IsCheckedIn() {
			status = i18n.Text(lang, i18n.StatusOut)
		}
		row := []any{
			i + 1, v.FullName, v.CompanyName, v.HostName, v.HostEmail,
			v.Phone, v.Email, v.CheckInTime.In(loc).Format(dateTimeLayout), out, status,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
