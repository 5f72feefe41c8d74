package util

import "fmt"

// FormatAmount 金额展示（保留 2 位）
func FormatAmount(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// FormatSignedAmount 带符号的金额展示，正数加 + 前缀
func FormatSignedAmount(value float64) string {
	if value > 0 {
		return fmt.Sprintf("+%.2f", value)
	}
	return fmt.Sprintf("%.2f", value)
}
