package admin

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nivran-shop/storefront-api/internal/http/response"
	"github.com/nivran-shop/storefront-api/internal/models"
	"github.com/nivran-shop/storefront-api/internal/repository"
	"github.com/nivran-shop/storefront-api/internal/service"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	Slug        string             `json:"slug" binding:"required"`
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	CategoryKey string             `json:"category_key"`
	PriceAmount models.Money       `json:"price_amount"`
	Images      models.StringArray `json:"images"`
	IsActive    *bool              `json:"is_active"`
	SortOrder   int                `json:"sort_order"`
}

// VariantRequest 规格创建/更新请求
type VariantRequest struct {
	ProductID   uint         `json:"product_id"`
	Label       string       `json:"label" binding:"required"`
	PriceAmount models.Money `json:"price_amount"`
	IsDefault   bool         `json:"is_default"`
	IsActive    *bool        `json:"is_active"`
	SortOrder   int          `json:"sort_order"`
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

// GetProducts 商品列表 (Admin)
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductAdminService.ListProducts(repository.ProductListFilter{
		CategoryKey: c.Query("category"),
		Search:      c.Query("search"),
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.catalog_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 商品详情 (Admin)
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	product, err := h.ProductAdminService.GetProduct(id)
	if err != nil {
		if errors.Is(err, service.ErrProductInvalid) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.catalog_fetch_failed", err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品 (Admin)
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	product := productFromRequest(&req)
	if err := h.ProductAdminService.CreateProduct(product); err != nil {
		respondProductWriteError(c, err)
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品 (Admin)
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	product := productFromRequest(&req)
	product.ID = id
	if err := h.ProductAdminService.UpdateProduct(product); err != nil {
		respondProductWriteError(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品 (Admin)
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProductAdminService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductInvalid) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, nil)
}

// CreateVariant 创建规格 (Admin)
func (h *Handler) CreateVariant(c *gin.Context) {
	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	variant := variantFromRequest(&req)
	if err := h.ProductAdminService.CreateVariant(variant); err != nil {
		respondVariantWriteError(c, err)
		return
	}
	response.Success(c, variant)
}

// UpdateVariant 更新规格 (Admin)
func (h *Handler) UpdateVariant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req VariantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	variant := variantFromRequest(&req)
	variant.ID = id
	if err := h.ProductAdminService.UpdateVariant(variant); err != nil {
		respondVariantWriteError(c, err)
		return
	}
	response.Success(c, variant)
}

// DeleteVariant 删除规格 (Admin)
func (h *Handler) DeleteVariant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.ProductAdminService.DeleteVariant(id); err != nil {
		if errors.Is(err, service.ErrVariantInvalid) {
			respondError(c, response.CodeNotFound, "error.variant_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, nil)
}

func productFromRequest(req *ProductRequest) *models.Product {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return &models.Product{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		CategoryKey: req.CategoryKey,
		PriceAmount: req.PriceAmount,
		Images:      req.Images,
		IsActive:    isActive,
		SortOrder:   req.SortOrder,
	}
}

func variantFromRequest(req *VariantRequest) *models.ProductVariant {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return &models.ProductVariant{
		ProductID:   req.ProductID,
		Label:       req.Label,
		PriceAmount: req.PriceAmount,
		IsDefault:   req.IsDefault,
		IsActive:    isActive,
		SortOrder:   req.SortOrder,
	}
}

func respondProductWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductInvalid):
		respondError(c, response.CodeBadRequest, "error.product_invalid", nil)
	case errors.Is(err, service.ErrSlugConflict):
		respondError(c, response.CodeConflict, "error.product_slug_conflict", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}

func respondVariantWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductInvalid):
		respondError(c, response.CodeNotFound, "error.product_not_found", nil)
	case errors.Is(err, service.ErrVariantInvalid):
		respondError(c, response.CodeNotFound, "error.variant_not_found", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
