package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type monthsResponse struct {
	DatasetID string   `json:"datasetId"`
	Months    []string `json:"months"`
}

// ListMonths 获取数据集的可用月份列表（升序）
// GET /api/datasets/:id/months
func (h *Handler) ListMonths(c *gin.Context) {
	dataset, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "数据集不存在或已过期"})
		return
	}

	c.JSON(http.StatusOK, monthsResponse{
		DatasetID: dataset.ID,
		Months:    dataset.Months,
	})
}
