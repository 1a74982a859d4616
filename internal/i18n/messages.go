package i18n

// messages 文案表（en 为兜底语言）
var messages = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":               "invalid request",
		"error.product_invalid":           "product not available",
		"error.variant_invalid":           "product variant not available",
		"error.promo_not_found":           "promo code not found",
		"error.promo_inactive":            "this promotion is not active",
		"error.promo_not_started":         "this promotion has not started yet",
		"error.promo_expired":             "this promotion has expired",
		"error.promo_usage_limit":         "promo code usage limit reached",
		"error.promo_min_order":           "order total is below the promotion minimum",
		"error.promo_category_mismatch":   "promotion does not apply to these items",
		"error.promo_invalid":             "invalid promotion",
		"error.discount_mode_unsupported": "promo code not allowed in this discount mode",
		"error.customer_required":         "customer name, phone and email are required",
		"error.shipping_required":         "shipping city and address are required",
		"error.order_create_failed":       "failed to create order",
		"error.order_not_found":           "order not found",
		"error.order_status_invalid":      "order status does not allow this operation",
		"error.order_fetch_failed":        "failed to fetch orders",
		"error.quote_failed":              "failed to price the cart",
		"error.config_fetch_failed":       "failed to fetch configuration",
		"error.catalog_fetch_failed":      "failed to fetch catalog",
		"error.product_slug_conflict":     "product slug already exists",
		"error.category_conflict":         "category key already exists",
		"error.category_invalid":          "invalid category",
		"error.promotion_code_required":   "a code promotion requires a unique code",
		"error.promotion_code_conflict":   "promo code already exists",
		"error.promotion_not_found":       "promotion not found",
		"error.category_not_found":        "category not found",
		"error.product_not_found":         "product not found",
		"error.variant_not_found":         "variant not found",
		"error.setting_update_failed":     "failed to update settings",
		"error.unauthorized":              "unauthorized",
		"error.auth_header_missing":       "authorization header missing",
		"error.auth_header_invalid":       "authorization header invalid",
		"error.token_invalid":             "invalid token",
		"error.jwt_secret_missing":        "jwt secret not configured",
		"error.login_failed":              "invalid username or password",
		"error.login_too_many":            "too many login attempts, try again later",
		"error.rate_limit_unavailable":    "rate limiter unavailable",
		"error.internal":                  "internal error",
	},
	LocaleAR: {
		"error.bad_request":               "طلب غير صالح",
		"error.product_invalid":           "المنتج غير متوفر",
		"error.variant_invalid":           "خيار المنتج غير متوفر",
		"error.promo_not_found":           "رمز الخصم غير موجود",
		"error.promo_inactive":            "هذا العرض غير مفعل",
		"error.promo_not_started":         "لم يبدأ هذا العرض بعد",
		"error.promo_expired":             "انتهت صلاحية هذا العرض",
		"error.promo_usage_limit":         "تم استنفاد عدد مرات استخدام الرمز",
		"error.promo_min_order":           "قيمة الطلب أقل من الحد الأدنى للعرض",
		"error.promo_category_mismatch":   "العرض لا ينطبق على هذه المنتجات",
		"error.promo_invalid":             "عرض غير صالح",
		"error.discount_mode_unsupported": "رمز الخصم غير مسموح في هذا الوضع",
		"error.customer_required":         "اسم العميل وهاتفه وبريده مطلوبة",
		"error.shipping_required":         "مدينة وعنوان التوصيل مطلوبان",
		"error.order_create_failed":       "فشل إنشاء الطلب",
		"error.order_not_found":           "الطلب غير موجود",
		"error.order_status_invalid":      "حالة الطلب لا تسمح بهذه العملية",
		"error.order_fetch_failed":        "فشل جلب الطلبات",
		"error.quote_failed":              "فشل تسعير السلة",
		"error.config_fetch_failed":       "فشل جلب الإعدادات",
		"error.catalog_fetch_failed":      "فشل جلب المنتجات",
		"error.login_failed":              "اسم المستخدم أو كلمة المرور غير صحيحة",
		"error.login_too_many":            "محاولات دخول كثيرة، حاول لاحقًا",
		"error.internal":                  "خطأ داخلي",
	},
}
