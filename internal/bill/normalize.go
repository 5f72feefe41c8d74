package bill

import (
	"strconv"
	"strings"

	"billdiff/internal/model"
	"billdiff/internal/parser"
)

// Normalize 将原始表格规整为账单记录
// 表头缺少必需列时整体失败（SchemaError），不做任何行级处理；
// 行级失败不中断整批：账单费用解析失败记 0，账务周期解析失败则月份为空。
// 设备号码为空的行视为格式行跳过。
func Normalize(table model.RawTable) ([]model.BillingRecord, error) {
	colIndex := make(map[string]int)
	for i, col := range table.Header {
		colIndex[strings.TrimSpace(col)] = i
	}

	var missing []string
	for _, col := range model.RequiredColumns {
		if _, ok := colIndex[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &model.SchemaError{Missing: missing}
	}

	records := make([]model.BillingRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		getValue := func(col string) string {
			if idx := colIndex[col]; idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		device := getValue(model.ColDevice)
		if device == "" {
			continue
		}

		cycle := getValue(model.ColCycle)
		records = append(records, model.BillingRecord{
			DeviceID: device,
			Cycle:    cycle,
			Amount:   parseAmount(getValue(model.ColAmount)),
			Month:    parser.ParseCycleMonth(cycle),
		})
	}

	if len(records) == 0 {
		return nil, model.ErrEmptyInput
	}
	return records, nil
}

// parseAmount 金额文本转数值，去掉千分位分隔符，解析失败记 0
func parseAmount(s string) float64 {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "，", "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
