package service

import (
	"github.com/nivran-shop/storefront-api/internal/constants"
	"github.com/nivran-shop/storefront-api/internal/models"
)

// ShippingForSubtotal 运费纯函数。
// 空购物车运费为 0；折后小计达到阈值（阈值为正时）免运费，
// 否则收取固定基础运费。免邮判定用折后小计：促销码可以把客户推过免邮线。
func ShippingForSubtotal(subtotalAfterDiscount models.Money, hasItems bool, threshold models.Money) models.Money {
	if !hasItems {
		return models.ZeroMoney()
	}
	if threshold.Decimal.IsPositive() && subtotalAfterDiscount.Decimal.GreaterThanOrEqual(threshold.Decimal) {
		return models.ZeroMoney()
	}
	return models.NewMoneyFromFloat(constants.BaseShippingRateJOD)
}
