package bill

import "billdiff/internal/model"

// AggregateByDevice 过滤出指定月份的记录并按设备号码汇总账单费用
// 同月同设备的多行费用相加。该月没有记录的设备不出现在结果里（而非记 0），
// Compare 的并集语义依赖这一点。
func AggregateByDevice(records []model.BillingRecord, month string) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range records {
		if r.Month == month {
			out[r.DeviceID] += r.Amount
		}
	}
	return out
}
