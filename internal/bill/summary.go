package bill

import (
	"math"

	"billdiff/internal/model"
)

// Summarize 汇总对比结果：总差异、平均差异、绝对差异最大的设备
// 并列时取先出现的行。空结果集返回 ErrEmptyResult，绝不产出 NaN 平均值。
func Summarize(rows []model.ComparisonRow) (model.ComparisonSummary, error) {
	if len(rows) == 0 {
		return model.ComparisonSummary{}, model.ErrEmptyResult
	}

	var total float64
	maxIdx := 0
	for i, row := range rows {
		total += row.Diff
		if math.Abs(row.Diff) > math.Abs(rows[maxIdx].Diff) {
			maxIdx = i
		}
	}

	return model.ComparisonSummary{
		TotalDiff:  total,
		AvgDiff:    total / float64(len(rows)),
		MaxDiffRow: rows[maxIdx],
	}, nil
}
