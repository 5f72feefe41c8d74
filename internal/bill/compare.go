package bill

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"billdiff/internal/model"
)

// Compare 对比两个月份每台设备的账单差异
// 取两个月份聚合结果的设备并集，任一月份缺席的设备费用记 0；
// 差异为 0 的设备被过滤掉。输出按设备号码升序，保证结果可复现。
func Compare(records []model.BillingRecord, monthA, monthB string) []model.ComparisonRow {
	aggA := AggregateByDevice(records, monthA)
	aggB := AggregateByDevice(records, monthB)

	devices := lo.Uniq(append(lo.Keys(aggA), lo.Keys(aggB)...))
	sort.Strings(devices)

	rows := make([]model.ComparisonRow, 0, len(devices))
	for _, device := range devices {
		amountA := aggA[device]
		amountB := aggB[device]
		diff := amountB - amountA
		if diff == 0 {
			continue
		}

		row := model.ComparisonRow{
			DeviceID:     device,
			AmountMonthA: amountA,
			AmountMonthB: amountB,
			Diff:         diff,
		}
		if amountA != 0 {
			row.DiffPercent = model.Percent(round2(diff / amountA * 100))
		} else {
			row.DiffPercent = model.InfPercent()
		}
		rows = append(rows, row)
	}
	return rows
}

// round2 四舍五入到 2 位小数；差异金额与两月费用保留全精度，只有百分比取整
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
