package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nivran-shop/storefront-api/internal/constants"
	"github.com/nivran-shop/storefront-api/internal/models"
	"github.com/nivran-shop/storefront-api/internal/repository"
)

// PromoMeta 中选促销的展示元信息
type PromoMeta struct {
	Title         string       `json:"title"`
	DiscountType  string       `json:"discountType"`
	DiscountValue models.Money `json:"discountValue"`
	Priority      int          `json:"priority"`
}

// PromoEvalResult 促销评估成功结果。
// 评估本身只读，使用次数只在下单事务内递增。
type PromoEvalResult struct {
	PromotionID           uint
	PromoCode             *string
	Discount              models.Money
	EligibleSubtotal      models.Money
	SubtotalAfterDiscount models.Money
	Meta                  PromoMeta
}

// PromotionService 促销评估服务
type PromotionService struct {
	promotionRepo repository.PromotionRepository
}

// NewPromotionService 创建促销评估服务
func NewPromotionService(promotionRepo repository.PromotionRepository) *PromotionService {
	return &PromotionService{promotionRepo: promotionRepo}
}

// EvaluateCode 按码评估：精确匹配一条 code 类促销并走校验流水线。
// 任一校验失败即返回对应哨兵错误，由调用方决定呈现方式。
func (s *PromotionService) EvaluateCode(code string, lines []models.PricedLine, subtotal models.Money) (*PromoEvalResult, error) {
	promo, err := s.promotionRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, ErrPromoNotFound
	}
	return s.evaluate(promo, lines, subtotal, time.Now())
}

// EvaluateAuto 自动评估：加载候选促销逐一过流水线，按
// priority 降序 → 折扣额降序 → id 降序取唯一赢家。
// 无任何候选通过时返回 (nil, nil)：自动折扣是机会性的，不构成错误。
func (s *PromotionService) EvaluateAuto(lines []models.PricedLine, subtotal models.Money) (*PromoEvalResult, error) {
	candidates, err := s.promotionRepo.ListActiveAuto(constants.AutoPromotionCandidateLimit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var winner *PromoEvalResult
	for i := range candidates {
		result, evalErr := s.evaluate(&candidates[i], lines, subtotal, now)
		if evalErr != nil {
			continue
		}
		if winner == nil || betterAutoResult(result, winner) {
			winner = result
		}
	}
	return winner, nil
}

// betterAutoResult 判断 a 是否优于 b（全序，保证重复评估结果一致）
func betterAutoResult(a, b *PromoEvalResult) bool {
	if a.Meta.Priority != b.Meta.Priority {
		return a.Meta.Priority > b.Meta.Priority
	}
	if cmp := a.Discount.Decimal.Cmp(b.Discount.Decimal); cmp != 0 {
		return cmp > 0
	}
	return a.PromotionID > b.PromotionID
}

// evaluate 单条促销的校验流水线。校验顺序固定，首个失败项即为上报原因。
func (s *PromotionService) evaluate(promo *models.Promotion, lines []models.PricedLine, subtotal models.Money, now time.Time) (*PromoEvalResult, error) {
	if !promo.IsActive {
		return nil, ErrPromoInactive
	}
	if promo.StartsAt != nil && now.Before(*promo.StartsAt) {
		return nil, ErrPromoNotStarted
	}
	if promo.EndsAt != nil && now.After(*promo.EndsAt) {
		return nil, ErrPromoExpired
	}
	if promo.UsageLimit != nil && promo.UsedCount >= *promo.UsageLimit {
		return nil, ErrPromoUsageLimit
	}
	if promo.MinOrder.Decimal.IsPositive() && subtotal.Decimal.LessThan(promo.MinOrder.Decimal) {
		return nil, ErrPromoMinOrder
	}

	eligible := eligibleSubtotal(promo, lines)
	if !eligible.Decimal.IsPositive() {
		return nil, ErrPromoCategoryMismatch
	}

	if !promo.DiscountValue.Decimal.IsPositive() {
		return nil, ErrPromoInvalid
	}

	var raw decimal.Decimal
	switch promo.DiscountType {
	case constants.DiscountTypePercent:
		raw = eligible.Decimal.Mul(promo.DiscountValue.Decimal).Div(decimal.NewFromInt(100))
	case constants.DiscountTypeFixed:
		raw = promo.DiscountValue.Decimal
	default:
		return nil, ErrPromoInvalid
	}

	// 折扣收敛到 [0, 可享小计]：定额券永远不会超出它所覆盖的范围
	if raw.IsNegative() {
		raw = decimal.Zero
	}
	if raw.GreaterThan(eligible.Decimal) {
		raw = eligible.Decimal
	}
	discount := models.NewMoneyFromDecimal(raw)

	after := subtotal.Sub(discount)
	if after.Decimal.IsNegative() {
		after = models.ZeroMoney()
	}

	return &PromoEvalResult{
		PromotionID:           promo.ID,
		PromoCode:             promo.Code,
		Discount:              discount,
		EligibleSubtotal:      eligible,
		SubtotalAfterDiscount: after,
		Meta: PromoMeta{
			Title:         promo.Title,
			DiscountType:  promo.DiscountType,
			DiscountValue: promo.DiscountValue,
			Priority:      promo.Priority,
		},
	}, nil
}

// eligibleSubtotal 按范围计算可享小计。
// 两个范围均为 NULL 时全部行可享；否则命中任一范围即可享（并集语义）。
func eligibleSubtotal(promo *models.Promotion, lines []models.PricedLine) models.Money {
	unscoped := promo.CategoryScope == nil && promo.SlugScope == nil
	total := models.ZeroMoney()
	for _, line := range lines {
		if unscoped || promo.CategoryScope.Contains(line.CategoryKey) || promo.SlugScope.Contains(line.Slug) {
			total = total.Add(line.LineTotal)
		}
	}
	return total
}
