package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nivran-shop/storefront-api/internal/http/response"
	"github.com/nivran-shop/storefront-api/internal/models"
	"github.com/nivran-shop/storefront-api/internal/repository"
	"github.com/nivran-shop/storefront-api/internal/service"
)

// PromotionRequest 促销创建/更新请求
type PromotionRequest struct {
	Kind          string             `json:"kind" binding:"required"`
	Code          *string            `json:"code"`
	Title         string             `json:"title" binding:"required"`
	DiscountType  string             `json:"discount_type" binding:"required"`
	DiscountValue models.Money       `json:"discount_value"`
	MinOrder      models.Money       `json:"min_order"`
	UsageLimit    *int               `json:"usage_limit"`
	CategoryScope models.StringArray `json:"category_scope"`
	SlugScope     models.StringArray `json:"slug_scope"`
	Priority      int                `json:"priority"`
	StartsAt      *time.Time         `json:"starts_at"`
	EndsAt        *time.Time         `json:"ends_at"`
	IsActive      *bool              `json:"is_active"`
}

// GetPromotions 促销列表 (Admin)
func (h *Handler) GetPromotions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.PromotionListFilter{
		Kind:     c.Query("kind"),
		Code:     c.Query("code"),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	promotions, total, err := h.PromotionAdminService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, promotions, response.NewPagination(page, pageSize, total))
}

// GetPromotion 促销详情 (Admin)
func (h *Handler) GetPromotion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	promo, err := h.PromotionAdminService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPromoNotFound) {
			respondError(c, response.CodeNotFound, "error.promotion_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, promo)
}

// CreatePromotion 创建促销 (Admin)
func (h *Handler) CreatePromotion(c *gin.Context) {
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	promo := promotionFromRequest(&req)
	if err := h.PromotionAdminService.Create(promo); err != nil {
		respondPromotionWriteError(c, err)
		return
	}
	response.Success(c, promo)
}

// UpdatePromotion 更新促销 (Admin)
func (h *Handler) UpdatePromotion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	promo := promotionFromRequest(&req)
	promo.ID = id
	if err := h.PromotionAdminService.Update(promo); err != nil {
		respondPromotionWriteError(c, err)
		return
	}
	response.Success(c, promo)
}

// DeletePromotion 删除促销 (Admin)
func (h *Handler) DeletePromotion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.PromotionAdminService.Delete(id); err != nil {
		if errors.Is(err, service.ErrPromoNotFound) {
			respondError(c, response.CodeNotFound, "error.promotion_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, nil)
}

func promotionFromRequest(req *PromotionRequest) *models.Promotion {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return &models.Promotion{
		Kind:          req.Kind,
		Code:          req.Code,
		Title:         req.Title,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MinOrder:      req.MinOrder,
		UsageLimit:    req.UsageLimit,
		CategoryScope: req.CategoryScope,
		SlugScope:     req.SlugScope,
		Priority:      req.Priority,
		StartsAt:      req.StartsAt,
		EndsAt:        req.EndsAt,
		IsActive:      isActive,
	}
}

func respondPromotionWriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPromoNotFound):
		respondError(c, response.CodeNotFound, "error.promotion_not_found", nil)
	case errors.Is(err, service.ErrPromoCodeRequired):
		respondError(c, response.CodeBadRequest, "error.promotion_code_required", nil)
	case errors.Is(err, service.ErrPromoCodeConflict):
		respondError(c, response.CodeConflict, "error.promotion_code_conflict", nil)
	case errors.Is(err, service.ErrPromoInvalid):
		respondError(c, response.CodeBadRequest, "error.promo_invalid", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
