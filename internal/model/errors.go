package model

import (
	"errors"
	"fmt"
	"strings"
)

// SchemaError 上传文件缺少必需列，整批导入失败
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("数据文件缺少必要的列: %s", strings.Join(e.Missing, "、"))
}

var (
	// ErrEmptyInput 文件没有可用的数据行
	ErrEmptyInput = errors.New("数据文件没有有效的数据行")

	// ErrNoUsableMonth 没有任何一行能从账务周期解析出月份，无法进入对比
	ErrNoUsableMonth = errors.New("未能从账务周期列解析出有效月份")

	// ErrEmptyResult 对比结果为空（两个月份账单完全一致），无法汇总
	ErrEmptyResult = errors.New("对比结果为空")
)
