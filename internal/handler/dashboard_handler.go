package handler

import (
	"github.com/bitfantasy/weldshop/internal/service"
	"github.com/gin-gonic/gin"
)

// DashboardHandler 仪表盘处理器
type DashboardHandler struct {
	svc *service.DashboardService
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats 仪表盘统计计数
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, stats)
}

// Health 数据库连通性探测
func (h *DashboardHandler) Health(c *gin.Context) {
	Success(c, h.svc.Probe(c.Request.Context()))
}
