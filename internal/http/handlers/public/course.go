package public

import (
	"errors"
	"strconv"

	handlershared "github.com/relearn-next/internal/http/handlers/shared"
	"github.com/relearn-next/internal/http/response"
	"github.com/relearn-next/internal/repository"
	"github.com/relearn-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CourseList 上架课程列表
func (h *Handler) CourseList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	courses, total, err := h.CourseService.ListPublic(repository.CourseListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "list courses failed", err)
		return
	}

	response.SuccessWithPage(c, courses, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// CourseDetail 根据 slug 获取课程
func (h *Handler) CourseDetail(c *gin.Context) {
	course, err := h.CourseService.GetPublicBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "course not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "get course failed", err)
		return
	}
	response.Success(c, course)
}
