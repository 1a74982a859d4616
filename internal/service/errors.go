package service

import "errors"

// 业务哨兵错误。处理层通过 errors.Is 匹配并映射到响应码与文案。
var (
	// 目录
	ErrProductInvalid = errors.New("product invalid")
	ErrVariantInvalid = errors.New("variant invalid")

	// 促销校验流水线（按校验顺序声明）
	ErrPromoNotFound         = errors.New("promotion not found")
	ErrPromoInactive         = errors.New("promotion inactive")
	ErrPromoNotStarted       = errors.New("promotion not started")
	ErrPromoExpired          = errors.New("promotion expired")
	ErrPromoUsageLimit       = errors.New("promotion usage limit reached")
	ErrPromoMinOrder         = errors.New("promotion min order not met")
	ErrPromoCategoryMismatch = errors.New("promotion scope mismatch")
	ErrPromoInvalid          = errors.New("promotion invalid")

	// 报价（缺码同时被后台促销校验复用）
	ErrDiscountModeUnsupported = errors.New("discount mode unsupported")
	ErrPromoCodeRequired       = errors.New("promotion code required")
	ErrEmptyCart               = errors.New("cart is empty")

	// 订单
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderStateConflict = errors.New("order state conflict")
	ErrCartConflict       = errors.New("cart already committed")

	// 后台管理
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryInvalid   = errors.New("category invalid")
	ErrCategoryConflict  = errors.New("category key exists")
	ErrSlugConflict      = errors.New("product slug exists")
	ErrPromoCodeConflict = errors.New("promotion code exists")

	// 认证
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// 稳定的机器可读原因码，随 ok=false 响应返回给前端。
const (
	ReasonPromoInactive           = "PROMO_INACTIVE"
	ReasonPromoNotStarted         = "PROMO_NOT_STARTED"
	ReasonPromoExpired            = "PROMO_EXPIRED"
	ReasonPromoUsageLimit         = "PROMO_USAGE_LIMIT"
	ReasonPromoMinOrder           = "PROMO_MIN_ORDER"
	ReasonPromoCategoryMismatch   = "PROMO_CATEGORY_MISMATCH"
	ReasonPromoInvalid            = "PROMO_INVALID"
	ReasonPromoNotFound           = "PROMO_NOT_FOUND"
	ReasonDiscountModeUnsupported = "DISCOUNT_MODE_UNSUPPORTED"
	ReasonInvalidProduct          = "INVALID_PRODUCT"
	ReasonInvalidVariant          = "INVALID_VARIANT"
)

var reasonByError = []struct {
	err    error
	reason string
}{
	{ErrPromoInactive, ReasonPromoInactive},
	{ErrPromoNotStarted, ReasonPromoNotStarted},
	{ErrPromoExpired, ReasonPromoExpired},
	{ErrPromoUsageLimit, ReasonPromoUsageLimit},
	{ErrPromoMinOrder, ReasonPromoMinOrder},
	{ErrPromoCategoryMismatch, ReasonPromoCategoryMismatch},
	{ErrPromoInvalid, ReasonPromoInvalid},
	// 缺码属于请求形状问题，原因码仍复用 PROMO_INVALID
	{ErrPromoCodeRequired, ReasonPromoInvalid},
	{ErrPromoNotFound, ReasonPromoNotFound},
	{ErrDiscountModeUnsupported, ReasonDiscountModeUnsupported},
	{ErrProductInvalid, ReasonInvalidProduct},
	{ErrVariantInvalid, ReasonInvalidVariant},
}

// ReasonForError 返回业务错误对应的原因码；无匹配时返回空串。
func ReasonForError(err error) string {
	for _, entry := range reasonByError {
		if errors.Is(err, entry.err) {
			return entry.reason
		}
	}
	return ""
}
