package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"billdiff/internal/model"
)

const exportSheetName = "账单差异"

// ExportHeaders 导出结果的列头；两列费用带上各自的月份
func ExportHeaders(monthA, monthB string) []string {
	return []string{
		model.ColDevice,
		model.ColAmount + "_" + monthA,
		model.ColAmount + "_" + monthB,
		"差异金额",
		"差异百分比",
	}
}

// BuildWorkbook 将对比结果写入新工作簿
// 差异百分比列：普通值写数字（已取 2 位），哨兵写文本 inf
func BuildWorkbook(rows []model.ComparisonRow, monthA, monthB string) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", exportSheetName)

	for i, h := range ExportHeaders(monthA, monthB) {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(exportSheetName, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err == nil {
		f.SetRowStyle(exportSheetName, 1, 1, headerStyle)
	}

	for i, row := range rows {
		r := i + 2
		f.SetCellValue(exportSheetName, fmt.Sprintf("A%d", r), row.DeviceID)
		f.SetCellValue(exportSheetName, fmt.Sprintf("B%d", r), row.AmountMonthA)
		f.SetCellValue(exportSheetName, fmt.Sprintf("C%d", r), row.AmountMonthB)
		f.SetCellValue(exportSheetName, fmt.Sprintf("D%d", r), row.Diff)
		if row.DiffPercent.Inf {
			f.SetCellValue(exportSheetName, fmt.Sprintf("E%d", r), "inf")
		} else {
			f.SetCellValue(exportSheetName, fmt.Sprintf("E%d", r), row.DiffPercent.Value)
		}
	}

	f.SetColWidth(exportSheetName, "A", "A", 20)
	f.SetColWidth(exportSheetName, "B", "E", 16)

	return f, nil
}

// WriteCSV 将对比结果写为 CSV
// 带 UTF-8 BOM，保证 Excel 直接打开时中文表头不乱码
func WriteCSV(w io.Writer, rows []model.ComparisonRow, monthA, monthB string) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeaders(monthA, monthB)); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.DeviceID,
			formatAmount(row.AmountMonthA),
			formatAmount(row.AmountMonthB),
			formatAmount(row.Diff),
			row.DiffPercent.String(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveComparison 按输出路径的扩展名选择导出格式
func SaveComparison(path string, rows []model.ComparisonRow, monthA, monthB string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		wb, err := BuildWorkbook(rows, monthA, monthB)
		if err != nil {
			return err
		}
		defer wb.Close()
		return wb.SaveAs(path)
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return WriteCSV(f, rows, monthA, monthB)
	default:
		return fmt.Errorf("不支持的输出格式: %s", filepath.Ext(path))
	}
}

// formatAmount 金额全精度输出，不带多余的尾零
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
