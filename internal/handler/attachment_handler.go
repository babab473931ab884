package handler

import (
	"strconv"

	"github.com/bitfantasy/weldshop/internal/service"
	"github.com/gin-gonic/gin"
)

// AttachmentHandler 工单附件处理器
type AttachmentHandler struct {
	svc *service.AttachmentService
}

// NewAttachmentHandler 创建附件处理器
func NewAttachmentHandler(svc *service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{svc: svc}
}

// Upload 上传附件（multipart form，字段名 file）
func (h *AttachmentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	attachment, err := h.svc.Upload(
		c.Request.Context(),
		c.Param("id"),
		GetUserID(c),
		fileHeader.Filename,
		contentType,
		file,
		fileHeader.Size,
	)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, attachment)
}

// List 工单附件列表
func (h *AttachmentHandler) List(c *gin.Context) {
	attachments, err := h.svc.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, gin.H{"attachments": attachments})
}

// Download 下载附件
func (h *AttachmentHandler) Download(c *gin.Context) {
	reader, attachment, err := h.svc.Download(c.Request.Context(), c.Param("attachmentId"))
	if err != nil {
		if attachment != nil {
			InternalError(c, err.Error())
			return
		}
		respondFindError(c, err, "Attachment not found")
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", "attachment; filename="+attachment.Filename)
	c.Header("Content-Type", attachment.ContentType)
	c.Header("Content-Length", strconv.FormatInt(attachment.Size, 10))
	c.DataFromReader(200, attachment.Size, attachment.ContentType, reader, nil)
}

// Delete 删除附件
func (h *AttachmentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("attachmentId")); err != nil {
		respondFindError(c, err, "Attachment not found")
		return
	}
	Success(c, nil)
}
