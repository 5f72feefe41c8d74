package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"billdiff/internal/config"
	"billdiff/internal/store"
)

// Handler API 处理器
type Handler struct {
	store          *store.Store
	downloads      *exportDownloadStore
	maxUploadBytes int64
	exportTTL      time.Duration
}

// NewHandler 创建 API 处理器
func NewHandler(st *store.Store, cfg *config.AppConfig) *Handler {
	return &Handler{
		store:          st,
		downloads:      newExportDownloadStore(),
		maxUploadBytes: int64(cfg.Upload.MaxSizeMB) << 20,
		exportTTL:      time.Duration(cfg.Data.ExportTTLMinutes) * time.Minute,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 账单上传
	router.POST("/upload", h.Upload)

	// 可用月份
	router.GET("/datasets/:id/months", h.ListMonths)

	// 差异对比
	router.POST("/compare", h.Compare)

	// 结果导出
	router.POST("/export", h.Export)
	router.GET("/export/download/:token", h.DownloadExport)
}
