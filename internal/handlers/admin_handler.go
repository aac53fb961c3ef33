package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ci-research/learninghub-service/internal/services"
	"github.com/ci-research/learninghub-service/internal/utils"
)

type AdminHandler struct {
	BaseHandler
	adminService  services.AdminService
	exportService services.ExportService
}

func NewAdminHandler(adminService services.AdminService, exportService services.ExportService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:   NewBaseHandler(logger),
		adminService:  adminService,
		exportService: exportService,
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

// PromoteUser raises a user to ADMIN, subject to the admin ceiling.
func (h *AdminHandler) PromoteUser(c *gin.Context) {
	userID := c.Param("id")

	h.LogRequest(c, "Promoting user", "target_user_id", userID)

	if err := h.adminService.PromoteUser(c.Request.Context(), userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "User promoted"})
}

func (h *AdminHandler) DemoteUser(c *gin.Context) {
	userID := c.Param("id")

	h.LogRequest(c, "Demoting user", "target_user_id", userID)

	if err := h.adminService.DemoteUser(c.Request.Context(), userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "User demoted"})
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportJSON streams the full state as a JSON attachment.
func (h *AdminHandler) ExportJSON(c *gin.Context) {
	data, err := h.exportService.SnapshotJSON(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("learninghub_%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", data)
}

// ExportWorkbook streams the stats workbook as an xlsx attachment.
func (h *AdminHandler) ExportWorkbook(c *gin.Context) {
	data, err := h.exportService.StatsWorkbook(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("learninghub_stats_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
