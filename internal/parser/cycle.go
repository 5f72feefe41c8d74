package parser

import "strings"

// ParseCycleMonth 从账务周期字符串中提取月份
// 账务周期形如 [20240701]2024-07-01:2024-07-31，取方括号内 8 位日期的年月部分，
// 返回 "2024-07" 形式。无法解析时返回空串而不报错：坏行降级为"无月份"记录，
// 不中断整批处理。
//
// 方括号后不足 8 位、或 8 位中混有非数字的，一律按解析失败处理。
func ParseCycleMonth(cycle string) string {
	head, _, found := strings.Cut(cycle, "]")
	if !found {
		return ""
	}
	head = strings.TrimPrefix(strings.TrimSpace(head), "[")
	if len(head) < 8 {
		return ""
	}
	head = head[:8]
	for _, ch := range []byte(head) {
		if ch < '0' || ch > '9' {
			return ""
		}
	}
	return head[:4] + "-" + head[4:6]
}
