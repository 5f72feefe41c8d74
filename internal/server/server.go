package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"billdiff/internal/api"
	"billdiff/internal/config"
	"billdiff/internal/store"
)

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	datasetStore := store.New(time.Duration(cfg.Data.DatasetTTLMinutes) * time.Minute)
	apiHandler := api.NewHandler(datasetStore, cfg)

	s := &Server{
		router: gin.Default(),
		store:  datasetStore,
		api:    apiHandler,
	}

	s.setupRoutes()

	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// API 路由
	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	// 首页：接口说明
	s.router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK,
			"账单差异对比服务\n\n"+
				"POST /api/upload                    上传账单文件 (.xlsx/.xls/.csv)\n"+
				"GET  /api/datasets/:id/months       查询可用月份\n"+
				"POST /api/compare                   对比两个月份 {datasetId, monthA, monthB}\n"+
				"POST /api/export                    导出对比结果 {datasetId, monthA, monthB, format}\n"+
				"GET  /api/export/download/:token    下载导出文件\n"+
				"GET  /api/status                    服务状态\n")
	})
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router 获取路由（用于测试）
func (s *Server) Router() *gin.Engine {
	return s.router
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.Store {
	return s.store
}
