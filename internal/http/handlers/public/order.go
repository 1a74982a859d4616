package public

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nivran-shop/storefront-api/internal/http/response"
	"github.com/nivran-shop/storefront-api/internal/i18n"
	"github.com/nivran-shop/storefront-api/internal/service"
)

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	Items         []service.CartItem    `json:"items"`
	DiscountMode  string                `json:"discountMode"`
	PromoCode     string                `json:"promoCode"`
	Customer      service.OrderCustomer `json:"customer"`
	Shipping      service.OrderShipping `json:"shipping"`
	PaymentMethod string                `json:"paymentMethod"`
	Locale        string                `json:"locale"`
}

// CreateOrder 创建订单。金额服务端从原始购物车重算，与报价同一条路径。
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, i18n.T(i18n.ResolveLocale(c), "error.bad_request"), "", nil)
		return
	}
	i18n.SetLocale(c, req.Locale)
	locale := i18n.ResolveLocale(c)

	// 必填字段在定价之前校验
	if len(req.Items) == 0 {
		response.Fail(c, http.StatusBadRequest, i18n.T(locale, "error.bad_request"), "", nil)
		return
	}
	if strings.TrimSpace(req.Customer.Name) == "" || strings.TrimSpace(req.Customer.Phone) == "" {
		response.Fail(c, http.StatusBadRequest, i18n.T(locale, "error.customer_required"), "", nil)
		return
	}
	if strings.TrimSpace(req.Shipping.City) == "" || strings.TrimSpace(req.Shipping.Address) == "" {
		response.Fail(c, http.StatusBadRequest, i18n.T(locale, "error.shipping_required"), "", nil)
		return
	}

	order, quote, err := h.OrderService.CreateOrder(service.CreateOrderInput{
		Items:         req.Items,
		DiscountMode:  req.DiscountMode,
		PromoCode:     req.PromoCode,
		Customer:      req.Customer,
		Shipping:      req.Shipping,
		PaymentMethod: req.PaymentMethod,
		Locale:        locale,
		ClientIP:      c.ClientIP(),
	})
	if err != nil {
		respondOrderError(c, err)
		return
	}

	response.OK(c, gin.H{
		"cartId":   order.CartID,
		"status":   order.Status,
		"totals":   quote.Totals,
		"discount": quote.Discount,
	})
}

// GetOrder 按购物车标识查询订单状态
func (h *Handler) GetOrder(c *gin.Context) {
	cartID := strings.TrimSpace(c.Param("cartId"))
	if cartID == "" {
		response.Fail(c, http.StatusBadRequest, i18n.T(i18n.ResolveLocale(c), "error.bad_request"), "", nil)
		return
	}

	order, err := h.OrderService.GetByCartID(cartID)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	response.OK(c, gin.H{"order": order})
}
