package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ci-research/learninghub-service/internal/services"
	"github.com/ci-research/learninghub-service/internal/utils"
)

type EnrollmentHandler struct {
	BaseHandler
	enrollmentService services.EnrollmentService
}

func NewEnrollmentHandler(enrollmentService services.EnrollmentService, logger utils.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		enrollmentService: enrollmentService,
	}
}

// UpdateEnrollment upserts the session user's progress on a course.
func (h *EnrollmentHandler) UpdateEnrollment(c *gin.Context) {
	courseID := c.Param("course_id")

	var req services.EnrollmentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	enrollment, err := h.enrollmentService.UpdateEnrollment(c.Request.Context(), courseID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: enrollment})
}

// MyLearning returns the session user's enrollments grouped by progress.
func (h *EnrollmentHandler) MyLearning(c *gin.Context) {
	resp, err := h.enrollmentService.MyLearning(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
