package handler

import (
	"errors"

	"github.com/bitfantasy/weldshop/internal/service"
	"github.com/gin-gonic/gin"
)

// TimesheetHandler 工时处理器
type TimesheetHandler struct {
	svc *service.TimesheetService
}

// NewTimesheetHandler 创建工时处理器
func NewTimesheetHandler(svc *service.TimesheetService) *TimesheetHandler {
	return &TimesheetHandler{svc: svc}
}

// CreateWorkOrder 现场开单，按客户名复用或新建客户
func (h *TimesheetHandler) CreateWorkOrder(c *gin.Context) {
	var req service.WorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	project, err := h.svc.CreateWorkOrder(c.Request.Context(), req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, project)
}

// ClockInRequest 上班打卡请求
type ClockInRequest struct {
	ProjectID string `json:"project_id" binding:"required"`
}

// ClockIn 上班打卡
func (h *TimesheetHandler) ClockIn(c *gin.Context) {
	var req ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	entry, err := h.svc.ClockIn(c.Request.Context(), GetUserID(c), req.ProjectID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyClockedIn) {
			Error(c, 40900, "Already clocked in")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Created(c, entry)
}

// Active 当前打卡中的工时记录
func (h *TimesheetHandler) Active(c *gin.Context) {
	entry, err := h.svc.ActiveEntry(c.Request.Context(), GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrNoActiveEntry) {
			Success(c, nil)
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, entry)
}

// ClockOut 下班打卡结算。库存扣减失败返回422并附逐项失败明细，
// 此时工时与用料已落库，客户端可对该记录发起重试。
func (h *TimesheetHandler) ClockOut(c *gin.Context) {
	var req service.ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	entry, err := h.svc.ClockOut(c.Request.Context(), GetUserID(c), req)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveEntry) {
			Error(c, 40901, "Not clocked in")
			return
		}
		respondSettleError(c, entry, err)
		return
	}
	Success(c, entry)
}

// Retry 从持久化的 stage 重试结算
func (h *TimesheetHandler) Retry(c *gin.Context) {
	entry, err := h.svc.Retry(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEntryNotSubmitted) {
			BadRequest(c, "Entry has not been submitted")
			return
		}
		if entry == nil {
			respondFindError(c, err, "Timesheet entry not found")
			return
		}
		respondSettleError(c, entry, err)
		return
	}
	Success(c, entry)
}

// List 当前员工的工时记录
func (h *TimesheetHandler) List(c *gin.Context) {
	entries, err := h.svc.ListByEmployee(c.Request.Context(), GetUserID(c))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"entries": entries})
}

// Usage 某条工时记录的用料明细
func (h *TimesheetHandler) Usage(c *gin.Context) {
	rows, err := h.svc.Usage(c.Request.Context(), c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"materials": rows})
}

// respondSettleError 结算失败响应，库存扣减失败时附带失败明细与当前记录
func respondSettleError(c *gin.Context, entry interface{}, err error) {
	var updateErr *service.InventoryUpdateError
	if errors.As(err, &updateErr) {
		c.JSON(422, Response{
			Code:    42200,
			Message: updateErr.Message,
			Data: gin.H{
				"error": updateErr,
				"entry": entry,
			},
		})
		return
	}
	InternalError(c, err.Error())
}
