package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"billdiff/internal/model"
)

// 文件头魔数：PK 为 xlsx（ZIP 容器），D0 CF 11 E0 为二进制 .xls（OLE2）
var (
	magicZip  = []byte{'P', 'K'}
	magicOLE2 = []byte{0xD0, 0xCF, 0x11, 0xE0}
)

// 二进制 .xls 单表行数上限
const maxXLSRows = 65536

type fileFormat int

const (
	formatUnknown fileFormat = iota
	formatXLSX
	formatXLS
	formatCSV
)

// detectFormat 优先按文件内容识别格式，扩展名只做兜底
// 扩展名为 .xls 但内容是 ZIP/XML 的文件在实际账单导出里很常见
func detectFormat(head []byte, ext string) fileFormat {
	switch {
	case bytes.HasPrefix(head, magicZip):
		return formatXLSX
	case bytes.HasPrefix(head, magicOLE2):
		return formatXLS
	}
	switch ext {
	case ".xlsx":
		return formatXLSX
	case ".xls":
		return formatXLS
	case ".csv":
		return formatCSV
	}
	return formatUnknown
}

// ReadTable 读取表格文件（.xlsx/.xls/.csv）的第一张工作表，首行作为表头
func ReadTable(path string) (model.RawTable, error) {
	head, err := readHead(path)
	if err != nil {
		return model.RawTable{}, fmt.Errorf("读取文件失败: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch detectFormat(head, ext) {
	case formatXLSX:
		return readXLSX(path)
	case formatXLS:
		return readXLS(path)
	case formatCSV:
		return readCSV(path)
	default:
		return model.RawTable{}, fmt.Errorf("不支持的文件格式: %s", ext)
	}
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, 8)
	n, _ := f.Read(head)
	return head[:n], nil
}

func readXLSX(path string) (model.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return model.RawTable{}, fmt.Errorf("打开 Excel 失败: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return model.RawTable{}, fmt.Errorf("读取工作表失败: %w", err)
	}
	return toTable(rows)
}

func readXLS(path string) (model.RawTable, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return model.RawTable{}, fmt.Errorf("打开 xls 失败: %w", err)
	}
	return toTable(wb.ReadAllCells(maxXLSRows))
}

func readCSV(path string) (model.RawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.RawTable{}, fmt.Errorf("读取 CSV 失败: %w", err)
	}
	// 去掉 UTF-8 BOM（Excel 另存的 CSV 通常带 BOM）
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return model.RawTable{}, fmt.Errorf("解析 CSV 失败: %w", err)
	}
	return toTable(rows)
}

func toTable(rows [][]string) (model.RawTable, error) {
	if len(rows) == 0 {
		return model.RawTable{}, model.ErrEmptyInput
	}
	return model.RawTable{
		Header: rows[0],
		Rows:   rows[1:],
	}, nil
}
