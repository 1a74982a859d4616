package service

import (
	"strings"

	"github.com/nivran-shop/storefront-api/internal/constants"
	"github.com/nivran-shop/storefront-api/internal/logger"
	"github.com/nivran-shop/storefront-api/internal/models"
)

// QuoteTotals 报价金额汇总
type QuoteTotals struct {
	SubtotalBeforeDiscount models.Money `json:"subtotalBeforeDiscountJod"`
	Discount               models.Money `json:"discountJod"`
	SubtotalAfterDiscount  models.Money `json:"subtotalAfterDiscountJod"`
	Shipping               models.Money `json:"shippingJod"`
	Total                  models.Money `json:"totalJod"`
	FreeShippingThreshold  models.Money `json:"freeShippingThresholdJod"`
}

// QuoteDiscount 折扣来源信息
type QuoteDiscount struct {
	Source      string     `json:"source"`
	Code        *string    `json:"code"`
	PromotionID *uint      `json:"promotionId"`
	Meta        *PromoMeta `json:"meta,omitempty"`
}

// Quote 完整报价。临时计算结果，不落库；下单时作为订单快照的来源。
type Quote struct {
	Lines             []models.PricedLine `json:"lines"`
	Totals            QuoteTotals         `json:"totals"`
	Discount          QuoteDiscount       `json:"discount"`
	DegradedThreshold bool                `json:"-"`
}

// QuoteService 报价编排服务。
// 预览购物车与创建订单都必须走同一个 Quote 入口，服务端永远从原始
// 购物车重新计算，不信任客户端传来的任何金额。
type QuoteService struct {
	pricing   *PricingService
	promotion *PromotionService
	setting   *SettingService
}

// NewQuoteService 创建报价服务
func NewQuoteService(pricing *PricingService, promotion *PromotionService, setting *SettingService) *QuoteService {
	return &QuoteService{pricing: pricing, promotion: promotion, setting: setting}
}

// Quote 计算完整报价。
// 促销校验失败时仍返回一份零折扣报价供前端展示，错误由调用方决定呈现层级：
// 报价接口以 ok=false 软失败返回，下单接口视为硬错误。
func (s *QuoteService) Quote(items []CartItem, discountMode, promoCode string) (*Quote, error) {
	lines, subtotal, err := s.pricing.PriceLines(items)
	if err != nil {
		return nil, err
	}

	mode := strings.ToUpper(strings.TrimSpace(discountMode))
	if mode == "" {
		mode = constants.DiscountModeNone
	}
	code := strings.TrimSpace(promoCode)

	switch mode {
	case constants.DiscountModeNone, constants.DiscountModeAuto:
		// 非 CODE 模式不得携带促销码：静默忽略会让客户误以为码已生效
		if code != "" {
			return s.compose(lines, subtotal, nil, constants.DiscountSourceNone), ErrDiscountModeUnsupported
		}
	case constants.DiscountModeCode:
		if code == "" {
			return s.compose(lines, subtotal, nil, constants.DiscountSourceNone), ErrPromoCodeRequired
		}
	default:
		return s.compose(lines, subtotal, nil, constants.DiscountSourceNone), ErrDiscountModeUnsupported
	}

	var (
		result *PromoEvalResult
		source = constants.DiscountSourceNone
	)
	if len(lines) > 0 {
		switch mode {
		case constants.DiscountModeCode:
			result, err = s.promotion.EvaluateCode(code, lines, subtotal)
			if err != nil {
				if ReasonForError(err) == "" {
					return nil, err
				}
				// 客户明确尝试了码，校验失败要上抛；附带零折扣报价供展示
				return s.compose(lines, subtotal, nil, constants.DiscountSourceNone), err
			}
			source = constants.DiscountSourceCode
		case constants.DiscountModeAuto:
			result, err = s.promotion.EvaluateAuto(lines, subtotal)
			if err != nil {
				return nil, err
			}
			if result != nil {
				source = constants.DiscountSourceAuto
			}
		}
	}

	return s.compose(lines, subtotal, result, source), nil
}

// compose 汇总折扣、运费与总价
func (s *QuoteService) compose(lines []models.PricedLine, subtotal models.Money, result *PromoEvalResult, source string) *Quote {
	discount := models.ZeroMoney()
	after := subtotal
	quoteDiscount := QuoteDiscount{Source: source}

	if result != nil {
		discount = result.Discount
		after = result.SubtotalAfterDiscount
		promotionID := result.PromotionID
		quoteDiscount.Code = result.PromoCode
		quoteDiscount.PromotionID = &promotionID
		meta := result.Meta
		quoteDiscount.Meta = &meta
	}

	threshold := s.setting.FreeShippingThreshold()
	if threshold.Degraded {
		logger.Warnw("免邮阈值降级为默认值", "reason", threshold.Reason)
	}

	shipping := ShippingForSubtotal(after, len(lines) > 0, threshold.Value)

	return &Quote{
		Lines: lines,
		Totals: QuoteTotals{
			SubtotalBeforeDiscount: subtotal,
			Discount:               discount,
			SubtotalAfterDiscount:  after,
			Shipping:               shipping,
			Total:                  after.Add(shipping),
			FreeShippingThreshold:  threshold.Value,
		},
		Discount:          quoteDiscount,
		DegradedThreshold: threshold.Degraded,
	}
}
