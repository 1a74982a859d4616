package public

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nivran-shop/storefront-api/internal/http/handlers/shared"
	"github.com/nivran-shop/storefront-api/internal/http/response"
	"github.com/nivran-shop/storefront-api/internal/i18n"
	"github.com/nivran-shop/storefront-api/internal/service"
)

// messageKeyForReason 原因码到国际化文案键的映射
var messageKeyForReason = map[string]string{
	service.ReasonPromoInactive:           "error.promo_inactive",
	service.ReasonPromoNotStarted:         "error.promo_not_started",
	service.ReasonPromoExpired:            "error.promo_expired",
	service.ReasonPromoUsageLimit:         "error.promo_usage_limit",
	service.ReasonPromoMinOrder:           "error.promo_min_order",
	service.ReasonPromoCategoryMismatch:   "error.promo_category_mismatch",
	service.ReasonPromoInvalid:            "error.promo_invalid",
	service.ReasonPromoNotFound:           "error.promo_not_found",
	service.ReasonDiscountModeUnsupported: "error.discount_mode_unsupported",
	service.ReasonInvalidProduct:          "error.product_invalid",
	service.ReasonInvalidVariant:          "error.variant_invalid",
}

// respondQuoteError 报价接口的失败响应。
// 对真实促销求值的失败走 HTTP 200 + ok:false + 原因码，附带零折扣报价供
// 前端继续展示；请求形状问题（模式与码不匹配、CODE 模式缺码）和购物车
// 与目录不一致（商品/款式失效）走 400；其余 500。
func respondQuoteError(c *gin.Context, err error, fallbackQuote *service.Quote) {
	reason := service.ReasonForError(err)
	switch {
	case reason == "":
		shared.RequestLog(c).Errorw("quote_failed", "error", err)
		response.Fail(c, http.StatusInternalServerError, i18n.T(i18n.ResolveLocale(c), "error.quote_failed"), "", nil)
	case errors.Is(err, service.ErrDiscountModeUnsupported), errors.Is(err, service.ErrPromoCodeRequired):
		response.Fail(c, http.StatusBadRequest, reasonMessage(c, reason), reason, nil)
	case reason == service.ReasonInvalidProduct, reason == service.ReasonInvalidVariant:
		response.Fail(c, http.StatusBadRequest, reasonMessage(c, reason), reason, nil)
	default:
		extra := gin.H{}
		if fallbackQuote != nil {
			extra["quote"] = fallbackQuote
		}
		response.Fail(c, http.StatusOK, reasonMessage(c, reason), reason, extra)
	}
}

// respondOrderError 下单接口的硬失败：业务错误一律 400，订单不创建。
func respondOrderError(c *gin.Context, err error) {
	reason := service.ReasonForError(err)
	if reason != "" {
		response.Fail(c, http.StatusBadRequest, reasonMessage(c, reason), reason, nil)
		return
	}
	locale := i18n.ResolveLocale(c)
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		response.Fail(c, http.StatusBadRequest, i18n.T(locale, "error.bad_request"), "", nil)
	case errors.Is(err, service.ErrOrderNotFound):
		response.Fail(c, http.StatusNotFound, i18n.T(locale, "error.order_not_found"), "", nil)
	default:
		shared.RequestLog(c).Errorw("order_request_failed", "error", err)
		response.Fail(c, http.StatusInternalServerError, i18n.T(locale, "error.internal"), "", nil)
	}
}

func reasonMessage(c *gin.Context, reason string) string {
	locale := i18n.ResolveLocale(c)
	if key, ok := messageKeyForReason[reason]; ok {
		return i18n.T(locale, key)
	}
	return i18n.T(locale, "error.bad_request")
}
