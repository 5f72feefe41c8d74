package bill

import (
	"sort"

	"github.com/samber/lo"

	"billdiff/internal/model"
)

// DistinctMonths 记录集中出现过的月份，去重升序
// YYYY-MM 的字典序即时间序。返回空序列表示没有任何记录带可用月份，
// 调用方应视为无法进入对比，而不是"空文件"。
func DistinctMonths(records []model.BillingRecord) []string {
	months := lo.FilterMap(records, func(r model.BillingRecord, _ int) (string, bool) {
		return r.Month, r.Month != ""
	})
	months = lo.Uniq(months)
	sort.Strings(months)
	return months
}

// CountUnmonthed 账务周期无法解析、不参与按月运算的记录数
func CountUnmonthed(records []model.BillingRecord) int {
	return lo.CountBy(records, func(r model.BillingRecord) bool {
		return r.Month == ""
	})
}
