package constants

// 币种
const (
	CurrencyJOD = "JOD"
)

// 优惠模式（报价/下单请求里的 discountMode）
const (
	DiscountModeNone = "NONE"
	DiscountModeAuto = "AUTO"
	DiscountModeCode = "CODE"
)

// 促销活动类型
const (
	PromotionKindAuto = "auto"
	PromotionKindCode = "code"
)

// 折扣类型
const (
	DiscountTypePercent = "percent"
	DiscountTypeFixed   = "fixed"
)

// 优惠来源（订单/报价里的 discount.source）
const (
	DiscountSourceNone = "none"
	DiscountSourceAuto = "auto"
	DiscountSourceCode = "code"
)

// 订单状态
const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusPaid           = "paid"
	OrderStatusCanceled       = "canceled"
)

// 定价常量
const (
	// MinLineQuantity 单行最小数量
	MinLineQuantity = 1
	// MaxLineQuantity 单行最大数量
	MaxLineQuantity = 99
	// AutoPromotionCandidateLimit 自动活动候选加载上限
	AutoPromotionCandidateLimit = 30
)

// 运费常量（JOD）
const (
	// BaseShippingRateJOD 固定基础运费
	BaseShippingRateJOD = 3.5
	// DefaultFreeShippingThresholdJOD 包邮门槛兜底值（设置表不可用时使用）
	DefaultFreeShippingThresholdJOD = 69
)

// 设置键
const (
	SettingKeyShippingConfig          = "shipping_config"
	SettingFieldFreeShippingThreshold = "free_shipping_threshold"
	SettingKeyOrderConfig             = "order_config"
	SettingFieldPaymentExpireMinutes  = "payment_expire_minutes"
	DefaultOrderPaymentExpireMinutes  = 60
)

// 队列
const (
	QueueDefault           = "default"
	TaskOrderTimeoutCancel = "order:timeout_cancel"
)
