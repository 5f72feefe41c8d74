package model

import "strconv"

// DiffPercent 差异百分比
// 基期（月份A）费用为 0 时无法计算百分比，用 inf 哨兵表示，避免除零
type DiffPercent struct {
	Inf   bool
	Value float64
}

// Percent 普通百分比值
func Percent(v float64) DiffPercent {
	return DiffPercent{Value: v}
}

// InfPercent 基期为 0 时的哨兵值
func InfPercent() DiffPercent {
	return DiffPercent{Inf: true}
}

// MarshalJSON 普通值输出数字，哨兵输出字符串 "inf"
func (d DiffPercent) MarshalJSON() ([]byte, error) {
	if d.Inf {
		return []byte(`"inf"`), nil
	}
	return []byte(strconv.FormatFloat(d.Value, 'f', -1, 64)), nil
}

// String 表格导出时的单元格文本
func (d DiffPercent) String() string {
	if d.Inf {
		return "inf"
	}
	return strconv.FormatFloat(d.Value, 'f', 2, 64)
}

// ComparisonRow 单台设备在两个月份间的账单差异
// Diff 为 0 的设备不会出现在结果集里
type ComparisonRow struct {
	DeviceID     string      `json:"deviceId"`
	AmountMonthA float64     `json:"amountMonthA"`
	AmountMonthB float64     `json:"amountMonthB"`
	Diff         float64     `json:"diff"`
	DiffPercent  DiffPercent `json:"diffPercent"`
}

// ComparisonSummary 差异汇总信息
type ComparisonSummary struct {
	TotalDiff  float64       `json:"totalDiff"`
	AvgDiff    float64       `json:"avgDiff"`
	MaxDiffRow ComparisonRow `json:"maxDiffRow"`
}
