package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"billdiff/internal/bill"
	"billdiff/internal/excel"
	"billdiff/internal/model"
	"billdiff/internal/store"
)

type uploadResponse struct {
	DatasetID      string   `json:"datasetId"`
	FileName       string   `json:"fileName"`
	RowCount       int      `json:"rowCount"`
	UnmonthedCount int      `json:"unmonthedCount"`
	Months         []string `json:"months"`
}

// Upload 上传账单文件并解析为数据集
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	uploadedFile := files[0]
	if uploadedFile.Size > h.maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "文件过大"})
		return
	}

	ext := strings.ToLower(filepath.Ext(uploadedFile.Filename))
	switch ext {
	case ".xlsx", ".xls", ".csv":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "仅支持 Excel 或 CSV 文件（.xlsx/.xls/.csv）"})
		return
	}

	// 保存到临时目录再解析，解析完即删除
	tempFilePath := filepath.Join(os.TempDir(),
		fmt.Sprintf("billdiff_upload_%d%s", time.Now().UnixNano(), ext))
	if err := c.SaveUploadedFile(uploadedFile, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}
	defer os.Remove(tempFilePath)

	table, err := excel.ReadTable(tempFilePath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": uploadErrorMessage(err)})
		return
	}

	records, err := bill.Normalize(table)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": uploadErrorMessage(err)})
		return
	}

	months := bill.DistinctMonths(records)
	if len(months) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": model.ErrNoUsableMonth.Error()})
		return
	}

	dataset := store.Dataset{
		ID:         uuid.New().String(),
		FileName:   uploadedFile.Filename,
		Records:    records,
		Months:     months,
		Unmonthed:  bill.CountUnmonthed(records),
		UploadedAt: time.Now(),
	}
	h.store.Put(dataset)

	c.JSON(http.StatusOK, uploadResponse{
		DatasetID:      dataset.ID,
		FileName:       dataset.FileName,
		RowCount:       len(records),
		UnmonthedCount: dataset.Unmonthed,
		Months:         months,
	})
}

// uploadErrorMessage 按错误种类选择用户可读的提示
func uploadErrorMessage(err error) string {
	var schemaErr *model.SchemaError
	switch {
	case errors.As(err, &schemaErr):
		return schemaErr.Error()
	case errors.Is(err, model.ErrEmptyInput):
		return model.ErrEmptyInput.Error()
	default:
		return "文件解析失败: " + err.Error()
	}
}
