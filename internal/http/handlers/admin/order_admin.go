package admin

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nivran-shop/storefront-api/internal/http/response"
	"github.com/nivran-shop/storefront-api/internal/repository"
	"github.com/nivran-shop/storefront-api/internal/service"
)

// GetOrders 订单列表 (Admin)
func (h *Handler) GetOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.List(repository.OrderListFilter{
		Status:    c.Query("status"),
		CartID:    c.Query("cart_id"),
		Phone:     c.Query("phone"),
		PromoCode: c.Query("promo_code"),
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 订单详情 (Admin)
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetByID(id)
	if err != nil {
		respondOrderStateError(c, err)
		return
	}
	response.Success(c, order)
}

// MarkOrderPaid 标记订单已支付 (Admin)
func (h *Handler) MarkOrderPaid(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.MarkPaid(id)
	if err != nil {
		respondOrderStateError(c, err)
		return
	}
	response.Success(c, order)
}

// CancelOrder 取消订单 (Admin)，释放码类促销占用的名额
func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.CancelOrder(id)
	if err != nil {
		respondOrderStateError(c, err)
		return
	}
	response.Success(c, order)
}

func respondOrderStateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		respondError(c, response.CodeNotFound, "error.order_not_found", nil)
	case errors.Is(err, service.ErrOrderStateConflict):
		respondError(c, response.CodeBadRequest, "error.order_status_invalid", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}
