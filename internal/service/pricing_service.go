package service

import (
	"fmt"

	"github.com/nivran-shop/storefront-api/internal/constants"
	"github.com/nivran-shop/storefront-api/internal/models"
	"github.com/nivran-shop/storefront-api/internal/repository"
)

// CartItem 购物车条目，来自客户端原始输入。
type CartItem struct {
	Slug      string `json:"slug" binding:"required"`
	Quantity  int    `json:"qty"`
	VariantID *uint  `json:"variantId"`
}

// PricingService 逐行定价服务。只读，不产生副作用。
type PricingService struct {
	productRepo repository.ProductRepository
	variantRepo repository.ProductVariantRepository
}

// NewPricingService 创建定价服务
func NewPricingService(productRepo repository.ProductRepository, variantRepo repository.ProductVariantRepository) *PricingService {
	return &PricingService{productRepo: productRepo, variantRepo: variantRepo}
}

// clampQuantity 数量收敛到 [1, 99]
func clampQuantity(qty int) int {
	if qty < constants.MinLineQuantity {
		return constants.MinLineQuantity
	}
	if qty > constants.MaxLineQuantity {
		return constants.MaxLineQuantity
	}
	return qty
}

// PriceLines 将购物车条目逐条解析为定价行，并返回折前小计。
// 行金额按行四舍五入到两位小数，小计为各行之和。
func (s *PricingService) PriceLines(items []CartItem) ([]models.PricedLine, models.Money, error) {
	lines := make([]models.PricedLine, 0, len(items))
	subtotal := models.ZeroMoney()

	for _, item := range items {
		product, err := s.productRepo.GetBySlug(item.Slug)
		if err != nil {
			return nil, models.ZeroMoney(), err
		}
		if product == nil || !product.IsActive {
			return nil, models.ZeroMoney(), fmt.Errorf("%w: %s", ErrProductInvalid, item.Slug)
		}

		qty := clampQuantity(item.Quantity)

		var (
			variantID *uint
			label     string
			unitPrice = product.PriceAmount
		)

		if item.VariantID != nil {
			variant, err := s.variantRepo.GetByID(*item.VariantID)
			if err != nil {
				return nil, models.ZeroMoney(), err
			}
			if variant == nil || variant.ProductID != product.ID || !variant.IsActive {
				return nil, models.ZeroMoney(), fmt.Errorf("%w: %s", ErrVariantInvalid, item.Slug)
			}
			variantID = &variant.ID
			label = variant.Label
			unitPrice = variant.PriceAmount
		} else {
			// 未指定款式时按确定性全序挑选默认款；无在售款式则回落商品基础价
			variant, err := s.variantRepo.GetDefaultForProduct(product.ID)
			if err != nil {
				return nil, models.ZeroMoney(), err
			}
			if variant != nil {
				variantID = &variant.ID
				label = variant.Label
				unitPrice = variant.PriceAmount
			}
		}

		lineTotal := unitPrice.MulInt(qty)
		lines = append(lines, models.PricedLine{
			Slug:        product.Slug,
			VariantID:   variantID,
			Title:       product.Title,
			Label:       label,
			CategoryKey: product.CategoryKey,
			Quantity:    qty,
			UnitPrice:   unitPrice,
			LineTotal:   lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}

	return lines, subtotal, nil
}
