package handler

import (
	"github.com/bitfantasy/weldshop/internal/repository"
	"github.com/bitfantasy/weldshop/internal/service"
	"github.com/gin-gonic/gin"
)

// InventoryHandler 库存处理器
type InventoryHandler struct {
	svc *service.InventoryService
}

// NewInventoryHandler 创建库存处理器
func NewInventoryHandler(svc *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func listParams(c *gin.Context) repository.InventoryListParams {
	return repository.InventoryListParams{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
}

// List 库存列表，?search=/?category= 过滤，total_value 按过滤集合计算
func (h *InventoryHandler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), listParams(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, result)
}

// Get 物料详情
func (h *InventoryHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondFindError(c, err, "Inventory item not found")
		return
	}
	Success(c, item)
}

// Create 创建物料
func (h *InventoryHandler) Create(c *gin.Context) {
	var req service.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	item, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, item)
}

// Update 更新物料
func (h *InventoryHandler) Update(c *gin.Context) {
	var req service.InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondFindError(c, err, "Inventory item not found")
		return
	}
	Success(c, item)
}

// Delete 删除物料
func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondFindError(c, err, "Inventory item not found")
		return
	}
	Success(c, nil)
}

// LowStock 低库存（含缺货）物料列表
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.svc.LowStock(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"items": items, "count": len(items)})
}

// Export 导出库存为xlsx
func (h *InventoryHandler) Export(c *gin.Context) {
	f, filename, err := h.svc.Export(c.Request.Context(), listParams(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write xlsx: "+err.Error())
	}
}
