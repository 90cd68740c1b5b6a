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

// ArticleList 文章列表
func (h *Handler) ArticleList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	articles, total, err := h.ArticleService.List(repository.ArticleListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "list articles failed", err)
		return
	}

	response.SuccessWithPage(c, articles, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// ArticleDetail 根据 slug 获取文章
func (h *Handler) ArticleDetail(c *gin.Context) {
	article, err := h.ArticleService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "article not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "get article failed", err)
		return
	}
	response.Success(c, article)
}

// ArticleUpsertRequest 文章创建/更新请求
type ArticleUpsertRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

// ArticleCreate 创建文章（需内容管理能力）
func (h *Handler) ArticleCreate(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req ArticleUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	article, err := h.ArticleService.Create(userID, service.ArticleInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondArticleWriteError(c, err)
		return
	}
	response.Created(c, "Article created", article)
}

// ArticleUpdate 按 slug 更新文章（需内容管理能力）
func (h *Handler) ArticleUpdate(c *gin.Context) {
	var req ArticleUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	article, err := h.ArticleService.Update(c.Param("slug"), service.ArticleInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		respondArticleWriteError(c, err)
		return
	}
	response.Success(c, article)
}

// ArticleDelete 按 slug 删除文章（需内容管理能力）
func (h *Handler) ArticleDelete(c *gin.Context) {
	if err := h.ArticleService.Delete(c.Param("slug")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "article not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "delete article failed", err)
		return
	}
	response.SuccessWithMsg(c, "Article deleted", nil)
}

func respondArticleWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeBadRequest, "an article with this slug already exists", nil)
	case errors.Is(err, service.ErrSlugInvalid):
		respondError(c, response.CodeBadRequest, "title cannot be turned into a slug", nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "article not found", nil)
	default:
		respondError(c, response.CodeInternal, "save article failed", err)
	}
}
