package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ci-research/learninghub-service/internal/services"
	"github.com/ci-research/learninghub-service/internal/utils"
)

type CourseHandler struct {
	BaseHandler
	courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService, logger utils.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler:   NewBaseHandler(logger),
		courseService: courseService,
	}
}

// ListCourses returns the catalog, optionally filtered by search text and
// category and ordered by "latest" or "rating".
func (h *CourseHandler) ListCourses(c *gin.Context) {
	query := services.CatalogQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		SortBy:   c.DefaultQuery("sort_by", "latest"),
	}

	resp, err := h.courseService.Catalog(c.Request.Context(), query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req services.CourseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	course, err := h.courseService.Add(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Data: course})
}

// DeleteCourse removes a course together with its enrollments and
// feedback. Admin only.
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	courseID := c.Param("course_id")

	h.LogRequest(c, "Deleting course", "course_id", courseID)

	if err := h.courseService.Remove(c.Request.Context(), courseID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Course deleted"})
}

func (h *CourseHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.courseService.Categories()})
}
