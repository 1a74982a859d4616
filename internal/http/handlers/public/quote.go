package public

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nivran-shop/storefront-api/internal/http/response"
	"github.com/nivran-shop/storefront-api/internal/i18n"
	"github.com/nivran-shop/storefront-api/internal/service"
)

// QuoteRequest 购物车报价请求
type QuoteRequest struct {
	Items        []service.CartItem `json:"items"`
	DiscountMode string             `json:"discountMode"`
	PromoCode    string             `json:"promoCode"`
	Locale       string             `json:"locale"`
}

// Quote 购物车报价。空购物车返回零值报价；促销校验失败返回
// ok:false + 原因码，并附带零折扣报价供前端展示。
func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, i18n.T(i18n.ResolveLocale(c), "error.bad_request"), "", nil)
		return
	}
	i18n.SetLocale(c, req.Locale)

	quote, err := h.QuoteService.Quote(req.Items, req.DiscountMode, req.PromoCode)
	if err != nil {
		respondQuoteError(c, err, quote)
		return
	}
	response.OK(c, gin.H{"quote": quote})
}
