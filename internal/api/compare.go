package api

import (
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"billdiff/internal/bill"
	"billdiff/internal/model"
	"billdiff/internal/store"
)

type compareRequest struct {
	DatasetID string `json:"datasetId"`
	MonthA    string `json:"monthA"`
	MonthB    string `json:"monthB"`
}

type compareResponse struct {
	MonthA  string                   `json:"monthA"`
	MonthB  string                   `json:"monthB"`
	Rows    []model.ComparisonRow    `json:"rows"`
	Summary *model.ComparisonSummary `json:"summary"`
	Message string                   `json:"message,omitempty"`
}

// Compare 对比两个月份的账单差异
// POST /api/compare
func (h *Handler) Compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	dataset, ok := h.resolveComparable(c, req.DatasetID, req.MonthA, req.MonthB)
	if !ok {
		return
	}

	rows := bill.Compare(dataset.Records, req.MonthA, req.MonthB)

	resp := compareResponse{
		MonthA: req.MonthA,
		MonthB: req.MonthB,
		Rows:   rows,
	}
	summary, err := bill.Summarize(rows)
	if err != nil {
		if !errors.Is(err, model.ErrEmptyResult) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		// 两个月份账单完全一致：空结果不是错误，但没有汇总
		resp.Message = "对比结果为空：两个月份的账单没有差异"
	} else {
		resp.Summary = &summary
	}

	c.JSON(http.StatusOK, resp)
}

// resolveComparable 取出数据集并校验两个月份均有数据；失败时已写好响应
func (h *Handler) resolveComparable(c *gin.Context, datasetID, monthA, monthB string) (store.Dataset, bool) {
	if monthA == "" || monthB == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请选择要对比的两个月份"})
		return store.Dataset{}, false
	}

	dataset, ok := h.store.Get(datasetID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "数据集不存在或已过期"})
		return store.Dataset{}, false
	}

	for _, month := range []string{monthA, monthB} {
		if !slices.Contains(dataset.Months, month) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "月份 " + month + " 没有数据"})
			return store.Dataset{}, false
		}
	}
	return dataset, true
}
