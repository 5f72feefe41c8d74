package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized  bool `json:"initialized"`  // 是否有已上传的数据集
	DatasetCount int  `json:"datasetCount"` // 存活的数据集数量
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	count := h.store.Count()
	c.JSON(http.StatusOK, StatusResponse{
		Initialized:  count > 0,
		DatasetCount: count,
	})
}
