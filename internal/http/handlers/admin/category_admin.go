package admin

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/nivran-shop/storefront-api/internal/http/response"
	"github.com/nivran-shop/storefront-api/internal/models"
	"github.com/nivran-shop/storefront-api/internal/service"
)

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Key       string `json:"key" binding:"required"`
	Name      string `json:"name" binding:"required"`
	SortOrder int    `json:"sort_order"`
}

// GetCategories 分类列表 (Admin)
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryAdminService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类 (Admin)
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	category := &models.Category{Key: req.Key, Name: req.Name, SortOrder: req.SortOrder}
	if err := h.CategoryAdminService.Create(category); err != nil {
		respondCategoryWriteError(c, err)
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类 (Admin)
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	category := &models.Category{Key: req.Key, Name: req.Name, SortOrder: req.SortOrder}
	category.ID = id
	if err := h.CategoryAdminService.Update(category); err != nil {
		respondCategoryWriteError(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类 (Admin)
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.CategoryAdminService.Delete(id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, nil)
}

func respondCategoryWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeNotFound, "error.category_not_found", nil)
	case errors.Is(err, service.ErrCategoryInvalid):
		respondError(c, response.CodeBadRequest, "error.category_invalid", nil)
	case errors.Is(err, service.ErrCategoryConflict):
		respondError(c, response.CodeConflict, "error.category_conflict", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
