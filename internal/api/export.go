package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"billdiff/internal/bill"
	"billdiff/internal/excel"
)

type exportRequest struct {
	DatasetID string `json:"datasetId"`
	MonthA    string `json:"monthA"`
	MonthB    string `json:"monthB"`
	Format    string `json:"format"` // xlsx（默认）或 csv
}

type exportResponse struct {
	DownloadURL string `json:"downloadUrl"`
	RowCount    int    `json:"rowCount"`
}

// Export 生成对比结果文件并返回一次性下载地址
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	format := req.Format
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "不支持的导出格式: " + format})
		return
	}

	dataset, ok := h.resolveComparable(c, req.DatasetID, req.MonthA, req.MonthB)
	if !ok {
		return
	}

	rows := bill.Compare(dataset.Records, req.MonthA, req.MonthB)

	tempPath := filepath.Join(os.TempDir(),
		fmt.Sprintf("billdiff_export_%d_%d.%s", time.Now().UnixNano(), os.Getpid(), format))
	if err := excel.SaveComparison(tempPath, rows, req.MonthA, req.MonthB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写入导出文件失败: " + err.Error()})
		_ = os.Remove(tempPath)
		return
	}

	token := h.downloads.put(tempPath, req.MonthA, req.MonthB, format, h.exportTTL)

	c.JSON(http.StatusOK, exportResponse{
		DownloadURL: "/api/export/download/" + token,
		RowCount:    len(rows),
	})
}

// DownloadExport 下载导出文件；链接一次性使用，下载后即删除
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "导出文件不存在"})
		return
	}

	c.FileAttachment(item.filePath, item.fileName())

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}
