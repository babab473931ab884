package handler

import (
	"github.com/bitfantasy/weldshop/internal/repository"
	"github.com/bitfantasy/weldshop/internal/service"
	"github.com/gin-gonic/gin"
)

// ProjectHandler 工单处理器
type ProjectHandler struct {
	svc *service.ProjectService
}

// NewProjectHandler 创建工单处理器
func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// List 工单列表，?search= 匹配标题与客户名，?status= 过滤状态
func (h *ProjectHandler) List(c *gin.Context) {
	params := repository.ProjectListParams{
		Search: c.Query("search"),
		Status: c.Query("status"),
	}
	projects, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"projects": projects})
}

// Get 工单详情
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFindError(c, err, "Project not found")
		return
	}
	Success(c, project)
}

// Create 创建工单
func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	project, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, project)
}

// Update 更新工单
func (h *ProjectHandler) Update(c *gin.Context) {
	var req service.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	project, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondFindError(c, err, "Project not found")
		return
	}
	Success(c, project)
}

// Delete 删除工单
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondFindError(c, err, "Project not found")
		return
	}
	Success(c, nil)
}
