package model

// 上传文件必需的表头列名（与数据文件逐字一致，不可配置）
const (
	ColDevice = "设备号码"
	ColCycle  = "账务周期"
	ColAmount = "账单费用"
)

// RequiredColumns 上传文件必须包含的三列
var RequiredColumns = []string{ColDevice, ColCycle, ColAmount}

// RawTable 从上传文件解析出的原始表格：首行表头 + 数据行
type RawTable struct {
	Header []string
	Rows   [][]string
}

// BillingRecord 规整后的账单记录
// Month 由账务周期派生；周期无法解析时为空串，该记录不参与按月运算
type BillingRecord struct {
	DeviceID string  `json:"deviceId"`
	Cycle    string  `json:"cycle"`
	Amount   float64 `json:"amount"`
	Month    string  `json:"month"`
}
